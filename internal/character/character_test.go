package character

import (
	"testing"

	"github.com/pixil98/go-prospect/internal/property"
	"github.com/pixil98/go-prospect/internal/prospect"
	"github.com/pixil98/go-prospect/internal/recorder"
)

const testPlayer = "76561100000000000"

type fakeStore struct {
	arr         recorder.Array
	members     []prospect.Member
	blobMembers []prospect.Member
	memberErr   error
	sets        int
}

func (s *fakeStore) Recorders() (recorder.Array, error) {
	return s.arr, nil
}

func (s *fakeStore) SetRecorders(arr recorder.Array) error {
	s.sets++
	s.arr = arr
	return nil
}

func (s *fakeStore) RemoveMembers(match prospect.MemberMatcher) (prospect.MembersRemoved, error) {
	if s.memberErr != nil {
		return prospect.MembersRemoved{}, s.memberErr
	}
	var out prospect.MembersRemoved
	s.members, out.Header = filterMembers(s.members, match)
	s.blobMembers, out.Blob = filterMembers(s.blobMembers, match)
	return out, nil
}

func filterMembers(in []prospect.Member, match prospect.MemberMatcher) ([]prospect.Member, int) {
	var out []prospect.Member
	for _, m := range in {
		if !match(m.UserID, m.Slot) {
			out = append(out, m)
		}
	}
	return out, len(in) - len(out)
}

func characterID(playerID string, slot int32) *property.Property {
	return property.NewStruct(recorder.FieldCharacterID, recorder.StructCharacterID,
		property.NewString(recorder.FieldPlayerID, playerID),
		property.NewInt(recorder.FieldSlot, slot),
	)
}

func mustRecord(t *testing.T, typ string, fields ...*property.Property) *recorder.Record {
	t.Helper()
	r, err := recorder.New(typ, fields)
	if err != nil {
		t.Fatalf("building %s: %v", typ, err)
	}
	return r
}

func playerRec(t *testing.T, playerID string, slot, spawn, rocket int32) *recorder.Record {
	return mustRecord(t, recorder.TypePlayer,
		characterID(playerID, slot),
		property.NewInt(recorder.FieldAssignedRocketSpawn, spawn),
		property.NewInt(recorder.FieldAssignedRocket, rocket),
	)
}

func stateRec(t *testing.T, playerID string, slot int32) *recorder.Record {
	return mustRecord(t, recorder.TypePlayerState, characterID(playerID, slot))
}

func spawnRec(t *testing.T, actor int32, at property.Vector) *recorder.Record {
	return mustRecord(t, recorder.TypeRocketSpawn,
		property.NewInt(recorder.FieldActorID, actor),
		property.NewStruct(recorder.FieldTransform, recorder.StructTransform,
			property.NewVector(recorder.FieldTranslation, at),
		),
	)
}

func rocketRec(t *testing.T, actor int32) *recorder.Record {
	return mustRecord(t, recorder.TypeRocket, property.NewInt(recorder.FieldActorID, actor))
}

type historyEntry struct {
	playerID string
	slot     int32
	name     string
}

func historyRec(t *testing.T, entries ...historyEntry) *recorder.Record {
	elems := make([]property.List, len(entries))
	for i, e := range entries {
		elems[i] = property.List{
			characterID(e.playerID, e.slot),
			property.NewString(recorder.FieldCachedName, e.name),
		}
	}
	return mustRecord(t, recorder.TypePlayerHistory,
		property.NewStructArray(recorder.FieldPlayerHistory, recorder.StructHistoryEntry, elems...),
	)
}

func unknownRec(payload []byte) *property.Property {
	return property.NewStruct("", recorder.BlobStructType,
		property.NewString(recorder.FieldClassName, recorder.ClassName("WeatherRecorderComponent")),
		property.NewByteArray(recorder.FieldBinaryData, payload),
	)
}

// buildArray lays the records out as a loaded save would, numbering them
// by position.
func buildArray(t *testing.T, elems ...any) recorder.Array {
	t.Helper()
	props := make([]*property.Property, len(elems))
	for i, e := range elems {
		switch v := e.(type) {
		case *recorder.Record:
			props[i] = v.Element()
		case *property.Property:
			props[i] = v
		default:
			t.Fatalf("unsupported element %T", e)
		}
	}
	arr, err := recorder.FromArray(&property.Array{
		ElemType:   property.TypeStruct,
		StructType: recorder.BlobStructType,
		Elems:      props,
	})
	if err != nil {
		t.Fatalf("wrapping array: %v", err)
	}
	return arr
}

// scenarioArray is one complete character plus an orphaned player state
// for player 999.
func scenarioArray(t *testing.T) recorder.Array {
	return buildArray(t,
		playerRec(t, testPlayer, 0, 10, 20),
		stateRec(t, testPlayer, 0),
		spawnRec(t, 10, property.Vector{X: 100, Y: 200, Z: 300}),
		rocketRec(t, 20),
		stateRec(t, "999", 0),
	)
}

func types(arr recorder.Array) []string {
	out := make([]string, len(arr))
	for i, r := range arr {
		out[i] = r.Type()
	}
	return out
}
