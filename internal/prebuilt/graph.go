package prebuilt

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-prospect/internal/property"
	"github.com/pixil98/go-prospect/internal/recorder"
)

// Structure is a prebuilt structure recorder. Ordinal is its position among
// structures, not its position in the recorder array.
type Structure struct {
	Ordinal int
	Name    string
	Record  *recorder.Record
}

// Actors decodes the actor ids the structure lists as relevant. A
// structure without the field references nothing.
func (s *Structure) Actors() ([]int32, error) {
	fields, err := s.Record.Fields()
	if err != nil {
		return nil, err
	}
	a, err := fields.Array(recorder.FieldRelevantActors)
	if errors.Is(err, property.ErrFieldNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Record, err)
	}
	if a.ElemType != property.TypeInt {
		return nil, fmt.Errorf("%s: %w: %s holds %s", s.Record, property.ErrWrongKind, recorder.FieldRelevantActors, a.ElemType)
	}

	out := make([]int32, len(a.Elems))
	for i, e := range a.Elems {
		out[i] = e.Int
	}
	return out, nil
}

// Graph maps each actor id to the recorders that mention it.
type Graph struct {
	Structures []*Structure

	refs map[int32][]int
}

// Owners returns the indices of the recorders referencing actor.
func (g *Graph) Owners(actor int32) []int {
	return g.refs[actor]
}

// Scan walks the recorder array once. Records that cannot be decoded are
// logged and contribute no references.
func Scan(arr recorder.Array) *Graph {
	g := &Graph{
		Structures: structures(arr),
		refs:       make(map[int32][]int),
	}

	for _, r := range arr {
		actors, err := actorRefs(r)
		if err != nil {
			slog.Warn("skipping undecodable recorder", "recorder", r.String(), "error", err)
			continue
		}

		seen := make(map[int32]bool, len(actors))
		for _, a := range actors {
			if seen[a] {
				continue
			}
			seen[a] = true
			g.refs[a] = append(g.refs[a], r.Index)
		}
	}

	return g
}

// structures returns the prebuilt structure recorders numbered by ordinal.
func structures(arr recorder.Array) []*Structure {
	recs := arr.OfType(recorder.TypePrebuiltStructure)
	out := make([]*Structure, len(recs))
	for i, r := range recs {
		out[i] = newStructure(i, r)
	}
	return out
}

func newStructure(ordinal int, r *recorder.Record) *Structure {
	s := &Structure{Ordinal: ordinal, Record: r}
	fields, err := r.Fields()
	if err != nil {
		return s
	}
	if p, ok := fields.Lookup(recorder.FieldStructureName); ok && p.Kind == property.KindString {
		s.Name = p.Str
	}
	return s
}

// actorRefs extracts the actor ids a record carries: its own id and, for
// building grids, one per building instance.
func actorRefs(r *recorder.Record) ([]int32, error) {
	fields, err := r.Fields()
	if err != nil {
		return nil, err
	}

	var out []int32
	if p, ok := fields.Lookup(recorder.FieldActorID); ok && p.Kind == property.KindInt {
		out = append(out, p.Int)
	}

	if r.Type() != recorder.TypeBuildingGrid {
		return out, nil
	}

	types, ok := structArray(fields, recorder.FieldBuildingTypes)
	if !ok {
		return out, nil
	}
	for _, t := range types.Elems {
		instances, ok := structArray(t.Fields, recorder.FieldBuildingInstances)
		if !ok {
			continue
		}
		for _, inst := range instances.Elems {
			if p, ok := inst.Fields.Lookup(recorder.FieldActorID); ok && p.Kind == property.KindInt {
				out = append(out, p.Int)
			}
		}
	}
	return out, nil
}

func structArray(fields property.List, name string) (*property.Array, bool) {
	p, ok := fields.Lookup(name)
	if !ok || p.Kind != property.KindArray || p.Array.ElemType != property.TypeStruct {
		return nil, false
	}
	return p.Array, true
}
