package prebuilt

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/pixil98/go-prospect/internal/recorder"
)

var ErrInvalidOrdinal = errors.New("invalid structure ordinal")

// Store is the part of a prospect structure removal edits.
type Store interface {
	Recorders() (recorder.Array, error)
	SetRecorders(recorder.Array) error
}

// Removal describes what a structure removal took out of the store.
type Removal struct {
	Structures []*Structure
	Dependents []*recorder.Record

	// Ambiguous actors were referenced by several recorders and left alone.
	Ambiguous []int32
	// Missing actors were referenced by no recorder.
	Missing []int32
}

// Empty reports whether no structure was selected.
func (r *Removal) Empty() bool {
	return len(r.Structures) == 0
}

// ParseOrdinals parses a comma separated list of structure ordinals.
// Duplicates collapse.
func ParseOrdinals(s string) ([]int, error) {
	seen := make(map[int]bool)
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOrdinal, part)
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out, nil
}

// List returns every prebuilt structure in ordinal order.
func List(store Store) ([]*Structure, error) {
	arr, err := store.Recorders()
	if err != nil {
		return nil, err
	}
	return structures(arr), nil
}

// Remove removes the structures at the given ordinals and every recorder
// whose actor is referenced only by one of them.
func Remove(store Store, ordinals []int) (*Removal, error) {
	return remove(store, func(g *Graph) ([]*Structure, error) {
		out := make([]*Structure, 0, len(ordinals))
		for _, o := range ordinals {
			if o < 0 || o >= len(g.Structures) {
				return nil, fmt.Errorf("%w: %d, have %d structures", ErrInvalidOrdinal, o, len(g.Structures))
			}
			out = append(out, g.Structures[o])
		}
		return out, nil
	})
}

// Clear removes every structure and the recorders they uniquely reference.
func Clear(store Store) (*Removal, error) {
	return remove(store, func(g *Graph) ([]*Structure, error) {
		return g.Structures, nil
	})
}

func remove(store Store, selectFn func(*Graph) ([]*Structure, error)) (*Removal, error) {
	arr, err := store.Recorders()
	if err != nil {
		return nil, err
	}

	g := Scan(arr)
	selected, err := selectFn(g)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		slog.Info("no structures selected")
		return &Removal{}, nil
	}

	out := &Removal{Structures: selected}
	drop := make(map[int]bool)
	candidates := make(map[int32]bool)
	for _, s := range selected {
		actors, err := s.Actors()
		if err != nil {
			return nil, err
		}
		for _, a := range actors {
			candidates[a] = true
		}
		drop[s.Record.Index] = true
		slog.Info("removing structure", "ordinal", s.Ordinal, "name", s.Name, "recorder", s.Record.String())
	}

	actors := make([]int32, 0, len(candidates))
	for a := range candidates {
		actors = append(actors, a)
	}
	sort.Slice(actors, func(i, j int) bool { return actors[i] < actors[j] })

	for _, a := range actors {
		owners := g.Owners(a)
		switch len(owners) {
		case 0:
			slog.Info("actor not found", "actor", a)
			out.Missing = append(out.Missing, a)
		case 1:
			idx := owners[0]
			if drop[idx] {
				continue
			}
			drop[idx] = true
			out.Dependents = append(out.Dependents, arr[idx])
			slog.Info("removing dependent recorder", "actor", a, "recorder", arr[idx].String())
		default:
			slog.Warn("actor referenced by several recorders, skipping", "actor", a, "recorders", fmt.Sprint(owners))
			out.Ambiguous = append(out.Ambiguous, a)
		}
	}

	if err := store.SetRecorders(arr.Rebuild(drop, nil)); err != nil {
		return nil, err
	}
	return out, nil
}
