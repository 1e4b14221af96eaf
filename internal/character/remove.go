package character

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/pixil98/go-prospect/internal/property"
	"github.com/pixil98/go-prospect/internal/prospect"
	"github.com/pixil98/go-prospect/internal/recorder"
)

// Store is the part of a prospect the removal operations edit.
type Store interface {
	Recorders() (recorder.Array, error)
	SetRecorders(recorder.Array) error
	RemoveMembers(match prospect.MemberMatcher) (prospect.MembersRemoved, error)
}

// Removal describes what RemovePlayers took out of the store.
type Removal struct {
	Characters     []*Character
	Members        int
	BlobMembers    int
	HistoryEntries int
	Records        int
}

// Empty reports whether nothing was selected.
func (r *Removal) Empty() bool {
	return len(r.Characters) == 0
}

// Select returns every character matching any of the targets, once each,
// in array order.
func Select(chars []*Character, targets []ID) []*Character {
	var out []*Character
	for _, c := range chars {
		for _, t := range targets {
			if t.Matches(c.ID) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// RemovePlayers removes the characters matching targets along with their
// membership entries, history entries and recorders. All changes are
// computed from the state before the first edit and the recorder array is
// rebuilt in a single pass.
func RemovePlayers(store Store, targets []ID) (*Removal, error) {
	arr, err := store.Recorders()
	if err != nil {
		return nil, err
	}

	res, err := ResolveArray(arr)
	if err != nil {
		return nil, err
	}

	selected := Select(res.Characters, targets)
	if len(selected) == 0 {
		slog.Info("no characters match", "targets", fmt.Sprint(targets))
		return &Removal{}, nil
	}

	remove := make(map[int]bool)
	historyDrop := make(map[int]bool)
	for _, c := range selected {
		indices := make([]int, 0, 4)
		for _, r := range c.Records() {
			remove[r.Index] = true
			indices = append(indices, r.Index)
		}
		if c.HistoryIndex != NoHistory {
			historyDrop[c.HistoryIndex] = true
		}
		slog.Info("removing character", "id", c.ID.String(), "name", c.Name, "recorders", fmt.Sprint(indices))
	}

	replace := make(map[int]*recorder.Record)
	if len(historyDrop) > 0 {
		rec, err := dropHistory(res.History, historyDrop)
		if err != nil {
			return nil, err
		}
		replace[rec.Index] = rec
	}

	rebuilt := arr.Rebuild(remove, replace)

	match := func(userID string, slot int) bool {
		id := ID{PlayerID: userID, Slot: slot}
		for _, c := range selected {
			if c.ID == id {
				return true
			}
		}
		return false
	}

	// RemoveMembers validates both lists before writing either. Once
	// Recorders has succeeded SetRecorders cannot fail.
	members, err := store.RemoveMembers(match)
	if err != nil {
		return nil, fmt.Errorf("removing members: %w", err)
	}
	if err := store.SetRecorders(rebuilt); err != nil {
		return nil, err
	}

	return &Removal{
		Characters:     selected,
		Members:        members.Header,
		BlobMembers:    members.Blob,
		HistoryEntries: len(historyDrop),
		Records:        len(remove),
	}, nil
}

// dropHistory returns a copy of the history recorder without the entries
// at the given positions.
func dropHistory(h *History, drop map[int]bool) (*recorder.Record, error) {
	fields, err := h.Record.Fields()
	if err != nil {
		return nil, err
	}
	prop, err := fields.Get(recorder.FieldPlayerHistory, property.KindArray)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", h.Record, err)
	}

	dropped := make([]int, 0, len(drop))
	for i := range drop {
		dropped = append(dropped, i)
	}
	sort.Ints(dropped)
	slog.Info("removing history entries", "recorder", h.Record.String(), "entries", fmt.Sprint(dropped))

	cp := *prop
	cp.Array = prop.Array.Filter(func(i int, _ *property.Property) bool { return !drop[i] })

	return h.Record.WithFields(fields.Replace(&cp))
}
