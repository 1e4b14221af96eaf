package recorder

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-prospect/internal/property"
)

// Record is one entry of the recorder array. Its payload is decoded on
// first use.
type Record struct {
	ClassName string
	Index     int

	elem    property.List
	payload []byte
	doc     *property.Document
}

// FromElement wraps a StateRecorderBlob struct element.
func FromElement(index int, elem *property.Property) (*Record, error) {
	if elem.Kind != property.KindStruct {
		return nil, fmt.Errorf("recorder %d: %w: element is %s", index, property.ErrWrongKind, elem.Kind)
	}

	name, err := elem.Fields.Str(FieldClassName)
	if err != nil {
		return nil, fmt.Errorf("recorder %d: %w", index, err)
	}

	data, err := elem.Fields.Array(FieldBinaryData)
	if err != nil {
		return nil, fmt.Errorf("recorder %d: %w", index, err)
	}
	if data.Bytes == nil {
		return nil, fmt.Errorf("recorder %d: %w: %s is not a byte array", index, property.ErrWrongKind, FieldBinaryData)
	}

	return &Record{
		ClassName: name,
		Index:     index,
		elem:      elem.Fields,
		payload:   data.Bytes,
	}, nil
}

// New builds a record of the given type from its payload fields.
func New(typ string, fields property.List) (*Record, error) {
	r := &Record{
		ClassName: ClassName(typ),
		elem: property.List{
			property.NewString(FieldClassName, ClassName(typ)),
			property.NewByteArray(FieldBinaryData, nil),
		},
		doc: &property.Document{},
	}
	return r.WithFields(fields)
}

// Type is the class name without its script path.
func (r *Record) Type() string {
	if i := strings.LastIndexByte(r.ClassName, '.'); i >= 0 {
		return r.ClassName[i+1:]
	}
	return r.ClassName
}

// Fields decodes the payload. The result is cached.
func (r *Record) Fields() (property.List, error) {
	if r.doc == nil {
		doc, err := property.Decode(r.payload)
		if err != nil {
			return nil, fmt.Errorf("decoding %s at %d: %w", r.Type(), r.Index, err)
		}
		r.doc = doc
	}
	return r.doc.Fields, nil
}

// WithFields returns a copy of the record whose payload is the encoding
// of fields. The receiver is left untouched.
func (r *Record) WithFields(fields property.List) (*Record, error) {
	doc := &property.Document{Fields: fields}
	if r.doc != nil {
		doc.Trailer = r.doc.Trailer
	}

	payload, err := doc.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding %s at %d: %w", r.Type(), r.Index, err)
	}

	return &Record{
		ClassName: r.ClassName,
		Index:     r.Index,
		elem:      r.elem.Replace(property.NewByteArray(FieldBinaryData, payload)),
		payload:   payload,
		doc:       doc,
	}, nil
}

// Element returns the StateRecorderBlob struct element for this record.
func (r *Record) Element() *property.Property {
	return &property.Property{
		Kind:   property.KindStruct,
		Type:   BlobStructType,
		Fields: r.elem,
	}
}

// Size is the length of the encoded payload.
func (r *Record) Size() int {
	return len(r.payload)
}

func (r *Record) String() string {
	return fmt.Sprintf("%s[%d]", r.Type(), r.Index)
}

// ActorID returns the record's direct actor identifier, if it has one.
func (r *Record) ActorID() (int32, bool, error) {
	fields, err := r.Fields()
	if err != nil {
		return 0, false, err
	}
	p, ok := fields.Lookup(FieldActorID)
	if !ok {
		return 0, false, nil
	}
	if p.Kind != property.KindInt {
		return 0, false, fmt.Errorf("%s: %w: %s is %s", r, property.ErrWrongKind, FieldActorID, p.Kind)
	}
	return p.Int, true, nil
}
