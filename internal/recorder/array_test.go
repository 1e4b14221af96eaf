package recorder

import (
	"errors"
	"testing"

	"github.com/pixil98/go-prospect/internal/property"
	"github.com/pixil98/go-testutil"
)

func mustNew(t *testing.T, typ string, fields ...*property.Property) *Record {
	t.Helper()
	r, err := New(typ, fields)
	if err != nil {
		t.Fatalf("building %s: %v", typ, err)
	}
	return r
}

func buildArray(t *testing.T, recs ...*Record) Array {
	t.Helper()
	elems := make([]*property.Property, len(recs))
	for i, r := range recs {
		elems[i] = r.Element()
	}
	arr, err := FromArray(&property.Array{
		ElemType:   property.TypeStruct,
		StructType: BlobStructType,
		Elems:      elems,
	})
	if err != nil {
		t.Fatalf("wrapping array: %v", err)
	}
	return arr
}

func TestRecord_Fields(t *testing.T) {
	r := mustNew(t, TypeRocket, property.NewInt(FieldActorID, 20))

	testutil.AssertEqual(t, "type", r.Type(), TypeRocket)
	testutil.AssertEqual(t, "class", r.ClassName, "/Script/Icarus.RocketRecorderComponent")

	// Decode from the element, as a loaded save would.
	loaded, err := FromElement(3, r.Element())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "index", loaded.Index, 3)

	id, ok, err := loaded.ActorID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "has actor id", ok, true)
	testutil.AssertEqual(t, "actor id", id, int32(20))
}

func TestRecord_WithFields(t *testing.T) {
	r := mustNew(t, TypeRocket, property.NewInt(FieldActorID, 20))

	updated, err := r.WithFields(property.List{property.NewInt(FieldActorID, 21)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	orig, _, err := r.ActorID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "original actor id", orig, int32(20))

	reloaded, err := FromElement(0, updated.Element())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id, _, err := reloaded.ActorID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "updated actor id", id, int32(21))
}

func TestFromElement_Errors(t *testing.T) {
	tests := map[string]struct {
		elem   *property.Property
		expErr string
	}{
		"not a struct": {
			elem:   property.NewInt("", 1),
			expErr: "element is int",
		},
		"missing class name": {
			elem:   property.NewStruct("", BlobStructType, property.NewByteArray(FieldBinaryData, nil)),
			expErr: FieldClassName,
		},
		"missing binary data": {
			elem:   property.NewStruct("", BlobStructType, property.NewString(FieldClassName, ClassName(TypeRocket))),
			expErr: FieldBinaryData,
		},
		"binary data not bytes": {
			elem: property.NewStruct("", BlobStructType,
				property.NewString(FieldClassName, ClassName(TypeRocket)),
				property.NewIntArray(FieldBinaryData, 1),
			),
			expErr: "is not a byte array",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromElement(0, tt.elem)
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestRecord_ActorID_WrongKind(t *testing.T) {
	r := mustNew(t, TypeRocket, property.NewString(FieldActorID, "twenty"))

	_, _, err := r.ActorID()
	if !errors.Is(err, property.ErrWrongKind) {
		t.Fatalf("expected wrong kind error, got %v", err)
	}
}

func TestRecord_Fields_Corrupt(t *testing.T) {
	elem := property.NewStruct("", BlobStructType,
		property.NewString(FieldClassName, ClassName(TypePlayer)),
		property.NewByteArray(FieldBinaryData, []byte{1, 2}),
	)
	r, err := FromElement(4, elem)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = r.Fields()
	testutil.AssertErrorContains(t, err, "decoding PlayerRecorderComponent at 4")
}

func TestArray_Rebuild(t *testing.T) {
	arr := buildArray(t,
		mustNew(t, TypePlayer),
		mustNew(t, TypePlayerState),
		mustNew(t, TypeRocket, property.NewInt(FieldActorID, 1)),
		mustNew(t, TypeRocketSpawn),
		mustNew(t, TypeRocket, property.NewInt(FieldActorID, 2)),
	)

	replacement, err := arr[4].WithFields(property.List{property.NewInt(FieldActorID, 99)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := map[string]struct {
		remove   map[int]bool
		replace  map[int]*Record
		expTypes []string
	}{
		"nothing removed": {
			expTypes: []string{TypePlayer, TypePlayerState, TypeRocket, TypeRocketSpawn, TypeRocket},
		},
		"remove several": {
			remove:   map[int]bool{0: true, 3: true},
			expTypes: []string{TypePlayerState, TypeRocket, TypeRocket},
		},
		"remove all": {
			remove:   map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true},
			expTypes: []string{},
		},
		"remove unknown index": {
			remove:   map[int]bool{42: true},
			expTypes: []string{TypePlayer, TypePlayerState, TypeRocket, TypeRocketSpawn, TypeRocket},
		},
		"replace survivor": {
			remove:   map[int]bool{2: true},
			replace:  map[int]*Record{4: replacement},
			expTypes: []string{TypePlayer, TypePlayerState, TypeRocketSpawn, TypeRocket},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out := arr.Rebuild(tt.remove, tt.replace)

			testutil.AssertEqual(t, "length", len(out), len(tt.expTypes))
			for i, r := range out {
				testutil.AssertEqual(t, "type", r.Type(), tt.expTypes[i])
				testutil.AssertEqual(t, "index", r.Index, i)
			}

			// the source array keeps its numbering
			for i, r := range arr {
				testutil.AssertEqual(t, "source index", r.Index, i)
			}
		})
	}

	out := arr.Rebuild(map[int]bool{2: true}, map[int]*Record{4: replacement})
	id, _, err := out[3].ActorID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "replaced actor id", id, int32(99))
}

func TestArray_OfType(t *testing.T) {
	arr := buildArray(t,
		mustNew(t, TypeRocket),
		mustNew(t, TypePlayer),
		mustNew(t, TypeRocket),
	)

	rockets := arr.OfType(TypeRocket)
	testutil.AssertEqual(t, "count", len(rockets), 2)
	testutil.AssertEqual(t, "first index", rockets[0].Index, 0)
	testutil.AssertEqual(t, "second index", rockets[1].Index, 2)
}
