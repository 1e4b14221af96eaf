package recorder

import (
	"fmt"

	"github.com/pixil98/go-prospect/internal/property"
)

// Array is the ordered recorder array. A record's identity is its position,
// so removals must go through Rebuild.
type Array []*Record

// FromArray wraps every element of a StateRecorderBlob array.
func FromArray(a *property.Array) (Array, error) {
	if a.ElemType != property.TypeStruct {
		return nil, fmt.Errorf("%w: recorder array holds %s", property.ErrWrongKind, a.ElemType)
	}

	out := make(Array, 0, len(a.Elems))
	for i, e := range a.Elems {
		r, err := FromElement(i, e)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Elements returns the struct elements for writing the array back.
func (a Array) Elements() []*property.Property {
	out := make([]*property.Property, len(a))
	for i, r := range a {
		out[i] = r.Element()
	}
	return out
}

// Rebuild produces a new array in a single pass. Records whose index is in
// remove are dropped and records in replace are substituted by index.
// Survivors keep their relative order and are renumbered from zero.
func (a Array) Rebuild(remove map[int]bool, replace map[int]*Record) Array {
	out := make(Array, 0, len(a))
	for _, r := range a {
		if remove[r.Index] {
			continue
		}
		if rep, ok := replace[r.Index]; ok {
			r = rep
		}
		cp := *r
		cp.Index = len(out)
		out = append(out, &cp)
	}
	return out
}

// OfType returns the records of the given type in array order.
func (a Array) OfType(typ string) []*Record {
	var out []*Record
	for _, r := range a {
		if r.Type() == typ {
			out = append(out, r)
		}
	}
	return out
}
