package prospect

import (
	"fmt"

	"github.com/pixil98/go-prospect/internal/property"
	"github.com/pixil98/go-prospect/internal/recorder"
)

const fieldRecorders = "StateRecorderBlobs"

// Recorders wraps the blob's recorder array.
func (p *Prospect) Recorders() (recorder.Array, error) {
	a, err := p.blob.Fields.Array(fieldRecorders)
	if err != nil {
		return nil, fmt.Errorf("reading recorders: %w", err)
	}
	return recorder.FromArray(a)
}

// SetRecorders replaces the whole recorder array.
func (p *Prospect) SetRecorders(arr recorder.Array) error {
	prop, err := p.blob.Fields.Get(fieldRecorders, property.KindArray)
	if err != nil {
		return fmt.Errorf("writing recorders: %w", err)
	}

	a := *prop.Array
	a.Elems = arr.Elements()

	cp := *prop
	cp.Array = &a
	p.blob.Fields = p.blob.Fields.Replace(&cp)
	return nil
}
