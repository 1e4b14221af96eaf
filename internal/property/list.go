package property

import (
	"errors"
	"fmt"
)

var (
	ErrFieldNotFound = errors.New("field not found")
	ErrWrongKind     = errors.New("unexpected property kind")
)

// List is an ordered list of named properties.
type List []*Property

// Lookup returns the first property with the given name.
func (l List) Lookup(name string) (*Property, bool) {
	for _, p := range l {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Get returns the named property and checks that it has the expected kind.
func (l List) Get(name string, kind Kind) (*Property, error) {
	p, ok := l.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, name)
	}
	if p.Kind != kind {
		return nil, fmt.Errorf("%w: %s is %s, expected %s", ErrWrongKind, name, p.Kind, kind)
	}
	return p, nil
}

func (l List) Str(name string) (string, error) {
	p, err := l.Get(name, KindString)
	if err != nil {
		return "", err
	}
	return p.Str, nil
}

func (l List) Int(name string) (int32, error) {
	p, err := l.Get(name, KindInt)
	if err != nil {
		return 0, err
	}
	return p.Int, nil
}

func (l List) Bool(name string) (bool, error) {
	p, err := l.Get(name, KindBool)
	if err != nil {
		return false, err
	}
	return p.Bool, nil
}

func (l List) Vector(name string) (Vector, error) {
	p, err := l.Get(name, KindVector)
	if err != nil {
		return Vector{}, err
	}
	return p.Vector, nil
}

// Struct returns the field list of a nested struct.
func (l List) Struct(name string) (List, error) {
	p, err := l.Get(name, KindStruct)
	if err != nil {
		return nil, err
	}
	return p.Fields, nil
}

func (l List) Array(name string) (*Array, error) {
	p, err := l.Get(name, KindArray)
	if err != nil {
		return nil, err
	}
	return p.Array, nil
}

// Replace returns a copy of the list with the property of the same name
// swapped for p. If no such property exists p is appended.
func (l List) Replace(p *Property) List {
	out := make(List, 0, len(l)+1)
	replaced := false
	for _, cur := range l {
		if !replaced && cur.Name == p.Name {
			out = append(out, p)
			replaced = true
			continue
		}
		out = append(out, cur)
	}
	if !replaced {
		out = append(out, p)
	}
	return out
}
