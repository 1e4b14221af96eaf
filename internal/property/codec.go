package property

import (
	"fmt"
)

const terminator = "None"

// Structs serialized as three floats instead of a property list.
var vectorStructs = map[string]bool{
	"Vector":  true,
	"Rotator": true,
}

// Structs with a fixed binary layout. Their bytes are preserved as is.
var nativeStructs = map[string]bool{
	"Quat":        true,
	"LinearColor": true,
	"Color":       true,
	"Guid":        true,
	"DateTime":    true,
	"Timespan":    true,
	"IntPoint":    true,
	"Vector2D":    true,
	"Vector4":     true,
	"Box":         true,
}

// Document is a top level property list along with any bytes that follow
// its terminator.
type Document struct {
	Fields  List
	Trailer []byte
}

// Decode parses a serialized property list.
func Decode(data []byte) (*Document, error) {
	r := newReader(data)
	fields, err := decodeList(r)
	if err != nil {
		return nil, err
	}

	trailer, _ := r.take(r.remaining())
	return &Document{Fields: fields, Trailer: trailer}, nil
}

// Encode serializes the document.
func (d *Document) Encode() ([]byte, error) {
	w := &writer{}
	encodeList(w, d.Fields)
	w.raw(d.Trailer)
	return w.bytes()
}

func decodeList(r *reader) (List, error) {
	var l List
	for {
		p, err := decodeProperty(r)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return l, nil
		}
		l = append(l, p)
	}
}

func decodeProperty(r *reader) (*Property, error) {
	name, err := r.fstring()
	if err != nil {
		return nil, fmt.Errorf("reading property name: %w", err)
	}
	if name == terminator {
		return nil, nil
	}

	typ, err := r.fstring()
	if err != nil {
		return nil, fmt.Errorf("%s: reading type: %w", name, err)
	}
	size, err := r.i64()
	if err != nil {
		return nil, fmt.Errorf("%s: reading size: %w", name, err)
	}

	p := &Property{Name: name}
	var header []string
	var boolVal byte
	var innerType string

	switch typ {
	case TypeStruct:
		if p.Type, err = r.fstring(); err != nil {
			return nil, fmt.Errorf("%s: reading struct type: %w", name, err)
		}
		if p.StructGuid, err = r.guid(); err != nil {
			return nil, fmt.Errorf("%s: reading struct guid: %w", name, err)
		}
	case TypeArray:
		if innerType, err = r.fstring(); err != nil {
			return nil, fmt.Errorf("%s: reading inner type: %w", name, err)
		}
	case TypeEnum:
		if p.Type, err = r.fstring(); err != nil {
			return nil, fmt.Errorf("%s: reading enum type: %w", name, err)
		}
	case TypeBool:
		if boolVal, err = r.u8(); err != nil {
			return nil, fmt.Errorf("%s: reading bool: %w", name, err)
		}
	default:
		header, err = decodeRawHeader(r, typ)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	hasGuid, err := r.u8()
	if err != nil {
		return nil, fmt.Errorf("%s: reading guid flag: %w", name, err)
	}
	if hasGuid != 0 {
		g, err := r.guid()
		if err != nil {
			return nil, fmt.Errorf("%s: reading property guid: %w", name, err)
		}
		p.Guid = &g
	}

	if size < 0 || size > int64(r.remaining()) {
		return nil, fmt.Errorf("%s: %w: value size %d exceeds remaining %d", name, ErrShortData, size, r.remaining())
	}
	value, _ := r.take(int(size))
	vr := newReader(value)

	switch typ {
	case TypeStr:
		p.Kind = KindString
		p.Str, err = vr.fstring()
	case TypeInt:
		p.Kind = KindInt
		p.Int, err = vr.i32()
	case TypeBool:
		p.Kind = KindBool
		p.Bool = boolVal != 0
	case TypeEnum:
		p.Kind = KindEnum
		p.Str, err = vr.fstring()
	case TypeStruct:
		err = decodeStructValue(vr, p, len(value))
	case TypeArray:
		p.Kind = KindArray
		p.Array, err = decodeArray(vr, innerType)
	default:
		p.Kind = KindRaw
		p.Raw = &Raw{Type: typ, Header: header, Data: value}
		vr.off = len(value)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if vr.remaining() != 0 {
		return nil, fmt.Errorf("%s: %d unread bytes in %s value", name, vr.remaining(), typ)
	}

	return p, nil
}

// decodeRawHeader reads the type specific header of a property kind that
// is not interpreted.
func decodeRawHeader(r *reader, typ string) ([]string, error) {
	var n int
	switch typ {
	case TypeByte, TypeSet:
		n = 1
	case TypeMap:
		n = 2
	}

	header := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s, err := r.fstring()
		if err != nil {
			return nil, fmt.Errorf("reading %s header: %w", typ, err)
		}
		header = append(header, s)
	}
	return header, nil
}

func decodeStructValue(r *reader, p *Property, size int) error {
	var err error
	switch {
	case vectorStructs[p.Type] && size == 12:
		p.Kind = KindVector
		p.Vector, err = r.vector()
	case nativeStructs[p.Type] || vectorStructs[p.Type]:
		p.Kind = KindStruct
		p.Native, err = r.take(size)
	default:
		p.Kind = KindStruct
		p.Fields, err = decodeList(r)
	}
	return err
}

func decodeArray(r *reader, innerType string) (*Array, error) {
	count, err := r.i32()
	if err != nil {
		return nil, fmt.Errorf("reading element count: %w", err)
	}
	if count < 0 {
		return nil, fmt.Errorf("negative element count %d", count)
	}

	a := &Array{ElemType: innerType}

	switch innerType {
	case TypeStruct:
		return a, decodeStructArray(r, a, int(count))
	case TypeInt:
		a.Elems = make([]*Property, 0, count)
		for i := 0; i < int(count); i++ {
			v, err := r.i32()
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			a.Elems = append(a.Elems, &Property{Kind: KindInt, Int: v})
		}
	case TypeStr, TypeEnum:
		kind := KindString
		if innerType == TypeEnum {
			kind = KindEnum
		}
		a.Elems = make([]*Property, 0, count)
		for i := 0; i < int(count); i++ {
			s, err := r.fstring()
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			a.Elems = append(a.Elems, &Property{Kind: kind, Str: s})
		}
	case TypeBool:
		a.Elems = make([]*Property, 0, count)
		for i := 0; i < int(count); i++ {
			b, err := r.u8()
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			a.Elems = append(a.Elems, &Property{Kind: KindBool, Bool: b != 0})
		}
	case TypeByte:
		if r.remaining() == int(count) {
			a.Bytes, _ = r.take(int(count))
			break
		}
		// enum backed byte arrays store names, keep them verbatim
		a.Count = count
		a.Data, _ = r.take(r.remaining())
	default:
		a.Count = count
		a.Data, _ = r.take(r.remaining())
	}

	return a, nil
}

func decodeStructArray(r *reader, a *Array, count int) error {
	// struct arrays carry one tag describing every element
	if _, err := r.fstring(); err != nil {
		return fmt.Errorf("reading element tag name: %w", err)
	}
	typ, err := r.fstring()
	if err != nil {
		return fmt.Errorf("reading element tag type: %w", err)
	}
	if typ != TypeStruct {
		return fmt.Errorf("element tag type %q, expected %s", typ, TypeStruct)
	}
	size, err := r.i64()
	if err != nil {
		return fmt.Errorf("reading element size: %w", err)
	}
	if a.StructType, err = r.fstring(); err != nil {
		return fmt.Errorf("reading element struct type: %w", err)
	}
	if a.StructGuid, err = r.guid(); err != nil {
		return fmt.Errorf("reading element struct guid: %w", err)
	}
	hasGuid, err := r.u8()
	if err != nil {
		return fmt.Errorf("reading element guid flag: %w", err)
	}
	if hasGuid != 0 {
		g, err := r.guid()
		if err != nil {
			return fmt.Errorf("reading element guid: %w", err)
		}
		a.ElemGuid = &g
	}

	elemSize := 0
	if count > 0 {
		elemSize = int(size) / count
	}

	a.Elems = make([]*Property, 0, count)
	for i := 0; i < count; i++ {
		e := &Property{Type: a.StructType}
		switch {
		case vectorStructs[a.StructType] && elemSize == 12:
			e.Kind = KindVector
			e.Vector, err = r.vector()
		case nativeStructs[a.StructType] || vectorStructs[a.StructType]:
			e.Kind = KindStruct
			e.Native, err = r.take(elemSize)
		default:
			e.Kind = KindStruct
			e.Fields, err = decodeList(r)
		}
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		a.Elems = append(a.Elems, e)
	}
	return nil
}

func encodeList(w *writer, l List) {
	for _, p := range l {
		encodeProperty(w, p)
	}
	w.fstring(terminator)
}

func encodeProperty(w *writer, p *Property) {
	value := &writer{}
	encodeValue(value, p)
	data, err := value.bytes()
	if err != nil && w.err == nil {
		w.err = fmt.Errorf("%s: %w", p.Name, err)
	}

	w.fstring(p.Name)

	switch p.Kind {
	case KindString:
		w.fstring(TypeStr)
	case KindInt:
		w.fstring(TypeInt)
	case KindBool:
		w.fstring(TypeBool)
	case KindEnum:
		w.fstring(TypeEnum)
	case KindVector, KindStruct:
		w.fstring(TypeStruct)
	case KindArray:
		w.fstring(TypeArray)
	case KindRaw:
		w.fstring(p.Raw.Type)
	}

	w.i64(int64(len(data)))

	switch p.Kind {
	case KindBool:
		if p.Bool {
			w.u8(1)
		} else {
			w.u8(0)
		}
	case KindEnum:
		w.fstring(p.Type)
	case KindVector, KindStruct:
		w.fstring(p.Type)
		w.raw(p.StructGuid[:])
	case KindArray:
		w.fstring(p.Array.ElemType)
	case KindRaw:
		for _, h := range p.Raw.Header {
			w.fstring(h)
		}
	}

	if p.Guid != nil {
		w.u8(1)
		w.raw(p.Guid[:])
	} else {
		w.u8(0)
	}

	w.raw(data)
}

func encodeValue(w *writer, p *Property) {
	switch p.Kind {
	case KindString, KindEnum:
		w.fstring(p.Str)
	case KindInt:
		w.i32(p.Int)
	case KindBool:
		// stored in the tag
	case KindVector:
		w.vector(p.Vector)
	case KindStruct:
		encodeStructBody(w, p)
	case KindArray:
		encodeArray(w, p.Name, p.Array)
	case KindRaw:
		w.raw(p.Raw.Data)
	}
}

func encodeStructBody(w *writer, p *Property) {
	switch {
	case p.Kind == KindVector:
		w.vector(p.Vector)
	case p.Native != nil:
		w.raw(p.Native)
	default:
		encodeList(w, p.Fields)
	}
}

func encodeArray(w *writer, name string, a *Array) {
	switch {
	case a.Bytes != nil:
		w.i32(int32(len(a.Bytes)))
		w.raw(a.Bytes)
		return
	case a.Data != nil:
		w.i32(a.Count)
		w.raw(a.Data)
		return
	}

	w.i32(int32(len(a.Elems)))

	switch a.ElemType {
	case TypeStruct:
		elems := &writer{}
		for _, e := range a.Elems {
			encodeStructBody(elems, e)
		}
		data, err := elems.bytes()
		if err != nil && w.err == nil {
			w.err = err
		}

		w.fstring(name)
		w.fstring(TypeStruct)
		w.i64(int64(len(data)))
		w.fstring(a.StructType)
		w.raw(a.StructGuid[:])
		if a.ElemGuid != nil {
			w.u8(1)
			w.raw(a.ElemGuid[:])
		} else {
			w.u8(0)
		}
		w.raw(data)
	case TypeInt:
		for _, e := range a.Elems {
			w.i32(e.Int)
		}
	case TypeStr, TypeEnum:
		for _, e := range a.Elems {
			w.fstring(e.Str)
		}
	case TypeBool:
		for _, e := range a.Elems {
			if e.Bool {
				w.u8(1)
			} else {
				w.u8(0)
			}
		}
	default:
		if w.err == nil {
			w.err = fmt.Errorf("array %s: cannot encode %s elements", name, a.ElemType)
		}
	}
}
