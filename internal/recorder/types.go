package recorder

// ClassPrefix is the script path that precedes every recorder class name.
const ClassPrefix = "/Script/Icarus."

// Recorder component types, as returned by Record.Type.
const (
	TypePlayer            = "PlayerRecorderComponent"
	TypePlayerState       = "PlayerStateRecorderComponent"
	TypeRocketSpawn       = "RocketSpawnRecorderComponent"
	TypeRocket            = "RocketRecorderComponent"
	TypePlayerHistory     = "PlayerHistoryRecorderComponent"
	TypePrebuiltStructure = "PrebuiltStructureRecorderComponent"
	TypeBuildingGrid      = "BuildingGridRecorderComponent"
)

// Fields of the StateRecorderBlob struct that wraps each recorder.
const (
	BlobStructType  = "StateRecorderBlob"
	FieldClassName  = "ComponentClassName"
	FieldBinaryData = "BinaryData"
)

// Fields found inside recorder payloads.
const (
	FieldActorID             = "IcarusActorGUID"
	FieldCharacterID         = "PlayerCharacterID"
	FieldPlayerID            = "PlayerID"
	FieldSlot                = "ChrSlot"
	FieldAssignedRocketSpawn = "AssignedRocketSpawnID"
	FieldAssignedRocket      = "AssignedRocketID"
	FieldTransform           = "ActorTransform"
	FieldTranslation         = "Translation"
	FieldPlayerHistory       = "PlayerHistory"
	FieldCachedName          = "CachedCharacterName"
	FieldStructureName       = "StructureName"
	FieldRelevantActors      = "RelevantActors"
	FieldBuildingTypes       = "BuildingTypes"
	FieldBuildingInstances   = "BuildingInstances"
)

// Struct type names used when building recorder payloads.
const (
	StructCharacterID      = "PlayerCharacterID"
	StructHistoryEntry     = "PlayerHistoryData"
	StructTransform        = "Transform"
	StructBuildingType     = "BuildingTypeData"
	StructBuildingInstance = "BuildingInstanceData"
)

// ClassName returns the full class name for a recorder type.
func ClassName(typ string) string {
	return ClassPrefix + typ
}
