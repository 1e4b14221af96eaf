package character

import (
	"fmt"

	"github.com/pixil98/go-prospect/internal/property"
	"github.com/pixil98/go-prospect/internal/recorder"
)

// indexedTypes are the only recorder types whose payload is decoded while
// indexing. Everything else passes through untouched.
var indexedTypes = map[string]bool{
	recorder.TypePlayer:        true,
	recorder.TypePlayerState:   true,
	recorder.TypeRocketSpawn:   true,
	recorder.TypeRocket:        true,
	recorder.TypePlayerHistory: true,
}

// Index holds keyed lookups over the character related recorders. When a
// key appears twice the later record wins.
type Index struct {
	Players      []*recorder.Record
	PlayerStates map[ID]*recorder.Record
	RocketSpawns map[int32]*recorder.Record
	Rockets      map[int32]*recorder.Record
	History      *History
}

// HistoryEntry is the position and cached name of a character in the
// history array.
type HistoryEntry struct {
	Index int
	Name  string
}

// History is the decoded player history recorder.
type History struct {
	Record  *recorder.Record
	Entries *property.Array

	byID map[ID]HistoryEntry
}

// Lookup finds a history entry by exact id. Wildcards do not match.
func (h *History) Lookup(id ID) (HistoryEntry, bool) {
	if h == nil {
		return HistoryEntry{}, false
	}
	e, ok := h.byID[id]
	return e, ok
}

// BuildIndex scans the recorder array once. A record of an indexed type
// that cannot be decoded fails the whole build.
func BuildIndex(arr recorder.Array) (*Index, error) {
	idx := &Index{
		PlayerStates: make(map[ID]*recorder.Record),
		RocketSpawns: make(map[int32]*recorder.Record),
		Rockets:      make(map[int32]*recorder.Record),
	}

	for _, r := range arr {
		if !indexedTypes[r.Type()] {
			continue
		}

		fields, err := r.Fields()
		if err != nil {
			return nil, err
		}

		switch r.Type() {
		case recorder.TypePlayer:
			idx.Players = append(idx.Players, r)

		case recorder.TypePlayerState:
			id, err := idFromFields(fields)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", r, err)
			}
			idx.PlayerStates[id] = r

		case recorder.TypeRocketSpawn:
			id, err := requireActorID(r)
			if err != nil {
				return nil, err
			}
			idx.RocketSpawns[id] = r

		case recorder.TypeRocket:
			id, err := requireActorID(r)
			if err != nil {
				return nil, err
			}
			idx.Rockets[id] = r

		case recorder.TypePlayerHistory:
			h, err := buildHistory(r, fields)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", r, err)
			}
			idx.History = h
		}
	}

	return idx, nil
}

func requireActorID(r *recorder.Record) (int32, error) {
	id, ok, err := r.ActorID()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%s: %w: %s", r, property.ErrFieldNotFound, recorder.FieldActorID)
	}
	return id, nil
}

func buildHistory(r *recorder.Record, fields property.List) (*History, error) {
	entries, err := fields.Array(recorder.FieldPlayerHistory)
	if err != nil {
		return nil, err
	}
	if entries.ElemType != property.TypeStruct {
		return nil, fmt.Errorf("%w: %s holds %s", property.ErrWrongKind, recorder.FieldPlayerHistory, entries.ElemType)
	}

	h := &History{
		Record:  r,
		Entries: entries,
		byID:    make(map[ID]HistoryEntry, len(entries.Elems)),
	}
	for i, e := range entries.Elems {
		id, err := idFromFields(e.Fields)
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", recorder.FieldPlayerHistory, i, err)
		}

		entry := HistoryEntry{Index: i}
		if p, ok := e.Fields.Lookup(recorder.FieldCachedName); ok && p.Kind == property.KindString {
			entry.Name = p.Str
		}
		h.byID[id] = entry
	}
	return h, nil
}
