package property

import "fmt"

// Kind identifies how a property value is interpreted.
type Kind int

const (
	KindRaw Kind = iota // preserved verbatim, never interpreted
	KindString
	KindInt
	KindBool
	KindEnum
	KindVector
	KindStruct
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	case KindVector:
		return "vector"
	case KindStruct:
		return "struct"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Serialized property type names.
const (
	TypeStr    = "StrProperty"
	TypeInt    = "IntProperty"
	TypeBool   = "BoolProperty"
	TypeEnum   = "EnumProperty"
	TypeStruct = "StructProperty"
	TypeArray  = "ArrayProperty"
	TypeByte   = "ByteProperty"
	TypeSet    = "SetProperty"
	TypeMap    = "MapProperty"
)

// Vector is a three component float vector (Vector and Rotator structs).
type Vector struct {
	X float32
	Y float32
	Z float32
}

func (v Vector) String() string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", v.X, v.Y, v.Z)
}

// Property is a single named value in a property tree. Only the fields
// relevant to Kind are populated.
type Property struct {
	Name string
	Kind Kind

	// Type is the struct type for Struct and Vector kinds and the enum
	// type for Enum kinds.
	Type string

	Str    string // String and Enum
	Int    int32
	Bool   bool
	Vector Vector

	Fields     List     // Struct with a nested property list
	Native     []byte   // Struct with a fixed-size native layout
	StructGuid [16]byte // Struct and Vector

	Array *Array
	Raw   *Raw

	// Guid is set when the serialized tag carried a property guid.
	Guid *[16]byte
}

// Array holds the elements of an ArrayProperty. Elements have no name.
type Array struct {
	ElemType   string // serialized inner type, e.g. StructProperty
	StructType string
	StructGuid [16]byte
	// ElemGuid is set when the element tag carried a property guid.
	ElemGuid *[16]byte

	Elems []*Property

	// Bytes holds the payload of ByteProperty arrays.
	Bytes []byte

	// Count and Data hold arrays whose element type is not interpreted.
	Count int32
	Data  []byte
}

// Len returns the number of elements in the array.
func (a *Array) Len() int {
	switch {
	case a.Bytes != nil:
		return len(a.Bytes)
	case a.Data != nil:
		return int(a.Count)
	default:
		return len(a.Elems)
	}
}

// Filter returns a copy of the array holding only the elements for which
// keep returns true. Element indices passed to keep refer to the original.
func (a *Array) Filter(keep func(int, *Property) bool) *Array {
	out := *a
	out.Elems = make([]*Property, 0, len(a.Elems))
	for i, e := range a.Elems {
		if keep(i, e) {
			out.Elems = append(out.Elems, e)
		}
	}
	return &out
}

// Raw is a property whose value is carried through untouched.
type Raw struct {
	Type   string
	Header []string
	Data   []byte
}

func NewString(name, v string) *Property {
	return &Property{Name: name, Kind: KindString, Str: v}
}

func NewInt(name string, v int32) *Property {
	return &Property{Name: name, Kind: KindInt, Int: v}
}

func NewBool(name string, v bool) *Property {
	return &Property{Name: name, Kind: KindBool, Bool: v}
}

func NewEnum(name, enumType, v string) *Property {
	return &Property{Name: name, Kind: KindEnum, Type: enumType, Str: v}
}

func NewVector(name string, v Vector) *Property {
	return &Property{Name: name, Kind: KindVector, Type: "Vector", Vector: v}
}

func NewStruct(name, structType string, fields ...*Property) *Property {
	return &Property{Name: name, Kind: KindStruct, Type: structType, Fields: fields}
}

// NewIntArray builds an IntProperty array.
func NewIntArray(name string, vals ...int32) *Property {
	elems := make([]*Property, len(vals))
	for i, v := range vals {
		elems[i] = &Property{Kind: KindInt, Int: v}
	}
	return &Property{Name: name, Kind: KindArray, Array: &Array{ElemType: TypeInt, Elems: elems}}
}

// NewStructArray builds a StructProperty array whose elements hold the given field lists.
func NewStructArray(name, structType string, elems ...List) *Property {
	props := make([]*Property, len(elems))
	for i, fields := range elems {
		props[i] = &Property{Kind: KindStruct, Type: structType, Fields: fields}
	}
	return &Property{
		Name: name,
		Kind: KindArray,
		Array: &Array{
			ElemType:   TypeStruct,
			StructType: structType,
			Elems:      props,
		},
	}
}

func NewByteArray(name string, b []byte) *Property {
	if b == nil {
		b = []byte{}
	}
	return &Property{Name: name, Kind: KindArray, Array: &Array{ElemType: TypeByte, Bytes: b}}
}
