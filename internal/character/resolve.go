package character

import (
	"fmt"
	"log/slog"
	"maps"
	"sort"

	"github.com/pixil98/go-prospect/internal/property"
	"github.com/pixil98/go-prospect/internal/recorder"
)

// NoHistory is the HistoryIndex of a character absent from the history
// array.
const NoHistory = -1

// Character is a player character assembled from its recorders. Player is
// always set; the others are nil when the save has no matching record.
type Character struct {
	ID           ID
	Name         string
	HistoryIndex int

	Player      *recorder.Record
	PlayerState *recorder.Record
	RocketSpawn *recorder.Record
	Rocket      *recorder.Record
}

// Records returns every recorder owned by the character.
func (c *Character) Records() []*recorder.Record {
	out := []*recorder.Record{c.Player}
	for _, r := range []*recorder.Record{c.PlayerState, c.RocketSpawn, c.Rocket} {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// Location is the translation of the character's rocket spawn.
func (c *Character) Location() (property.Vector, bool) {
	if c.RocketSpawn == nil {
		return property.Vector{}, false
	}
	fields, err := c.RocketSpawn.Fields()
	if err != nil {
		return property.Vector{}, false
	}
	transform, err := fields.Struct(recorder.FieldTransform)
	if err != nil {
		return property.Vector{}, false
	}
	v, err := transform.Vector(recorder.FieldTranslation)
	if err != nil {
		return property.Vector{}, false
	}
	return v, true
}

// Resolution is the outcome of joining the index into characters. The
// unowned pools hold records no character claimed, in array order.
type Resolution struct {
	Characters []*Character

	UnownedPlayerStates []*recorder.Record
	UnownedRocketSpawns []*recorder.Record
	UnownedRockets      []*recorder.Record

	History *History
}

// Unowned returns every record across the three unowned pools.
func (r *Resolution) Unowned() []*recorder.Record {
	out := make([]*recorder.Record, 0, len(r.UnownedPlayerStates)+len(r.UnownedRocketSpawns)+len(r.UnownedRockets))
	out = append(out, r.UnownedPlayerStates...)
	out = append(out, r.UnownedRocketSpawns...)
	out = append(out, r.UnownedRockets...)
	return out
}

// Sort orders characters by player id then slot.
func (r *Resolution) Sort() {
	sort.SliceStable(r.Characters, func(i, j int) bool {
		a, b := r.Characters[i].ID, r.Characters[j].ID
		if a.PlayerID != b.PlayerID {
			return a.PlayerID < b.PlayerID
		}
		return a.Slot < b.Slot
	})
}

// Resolve joins each player recorder with the records it owns. Each record
// can be claimed once. The index is not modified.
func Resolve(idx *Index) (*Resolution, error) {
	states := maps.Clone(idx.PlayerStates)
	spawns := maps.Clone(idx.RocketSpawns)
	rockets := maps.Clone(idx.Rockets)

	res := &Resolution{History: idx.History}
	for _, p := range idx.Players {
		fields, err := p.Fields()
		if err != nil {
			return nil, err
		}

		if _, ok := fields.Lookup(recorder.FieldCharacterID); !ok {
			slog.Warn("player recorder has no character id", "recorder", p.String())
			continue
		}
		id, err := idFromFields(fields)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}

		c := &Character{
			ID:           id,
			HistoryIndex: NoHistory,
			Player:       p,
		}

		c.PlayerState = claim(states, id)

		spawnID, ok, err := optionalInt(fields, recorder.FieldAssignedRocketSpawn)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		if ok {
			c.RocketSpawn = claim(spawns, spawnID)
		}

		rocketID, ok, err := optionalInt(fields, recorder.FieldAssignedRocket)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		if ok {
			c.Rocket = claim(rockets, rocketID)
		}

		if e, ok := idx.History.Lookup(id); ok {
			c.HistoryIndex = e.Index
			c.Name = e.Name
		}

		res.Characters = append(res.Characters, c)
	}

	res.UnownedPlayerStates = byIndex(states)
	res.UnownedRocketSpawns = byIndex(spawns)
	res.UnownedRockets = byIndex(rockets)

	return res, nil
}

// ResolveArray builds the index for arr and resolves it.
func ResolveArray(arr recorder.Array) (*Resolution, error) {
	idx, err := BuildIndex(arr)
	if err != nil {
		return nil, err
	}
	return Resolve(idx)
}

func claim[K comparable](pool map[K]*recorder.Record, key K) *recorder.Record {
	r, ok := pool[key]
	if !ok {
		return nil
	}
	delete(pool, key)
	return r
}

func optionalInt(fields property.List, name string) (int32, bool, error) {
	p, ok := fields.Lookup(name)
	if !ok {
		return 0, false, nil
	}
	if p.Kind != property.KindInt {
		return 0, false, fmt.Errorf("%w: %s is %s, expected %s", property.ErrWrongKind, name, p.Kind, property.KindInt)
	}
	return p.Int, true, nil
}

func byIndex[K comparable](pool map[K]*recorder.Record) []*recorder.Record {
	out := make([]*recorder.Record, 0, len(pool))
	for _, r := range pool {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}
