package nbt

import (
	"strconv"

	"github.com/eluv-io/errors-go"
)

// Type is the one-byte tag type ID that identifies each of the 13 NBT tag
// variants and drives both decode and encode dispatch.
type Type uint8

const (
	TypeEnd Type = iota
	TypeByte
	TypeShort
	TypeInt
	TypeLong
	TypeFloat
	TypeDouble
	TypeByteArray
	TypeString
	TypeList
	TypeCompound
	TypeIntArray
	TypeLongArray
)

// maxType is the largest valid tag type ID.
const maxType = TypeLongArray

var typeNames = [maxType + 1]string{
	"TAG_End",
	"TAG_Byte",
	"TAG_Short",
	"TAG_Int",
	"TAG_Long",
	"TAG_Float",
	"TAG_Double",
	"TAG_Byte_Array",
	"TAG_String",
	"TAG_List",
	"TAG_Compound",
	"TAG_Int_Array",
	"TAG_Long_Array",
}

// String returns the conventional name of the tag type, e.g. "TAG_Compound",
// or "TAG_Invalid(n)" for an ID outside the defined range.
func (t Type) String() string {
	if !t.Valid() {
		return "TAG_Invalid(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// Valid reports whether t is one of the 13 defined tag type IDs.
func (t Type) Valid() bool {
	return t <= maxType
}

// Tag is a single typed value node of an NBT tree: one of the closed set of
// variants End, Byte, Short, Int, Long, Float, Double, ByteArray, String,
// List, Compound, IntArray and LongArray. The set is sealed; external types
// cannot implement Tag.
//
// Tags are treated as immutable snapshots by the codec: Decode produces a
// fresh tree and Encode never mutates its input. A built tree is therefore
// safe for concurrent read-only traversal. Callers that mutate the slices or
// maps inside a tree must synchronize externally.
type Tag interface {
	// Type returns the tag's type ID.
	Type() Type

	sealed()
}

// End is the compound terminator. It has no payload and appears in a tree
// only as the element type of an empty List.
type End struct{}

// Byte is an 8-bit signed integer tag.
type Byte int8

// Short is a 16-bit signed integer tag.
type Short int16

// Int is a 32-bit signed integer tag.
type Int int32

// Long is a 64-bit signed integer tag.
type Long int64

// Float is a 32-bit IEEE-754 floating point tag.
type Float float32

// Double is a 64-bit IEEE-754 floating point tag.
type Double float64

// ByteArray is a length-prefixed sequence of bytes.
type ByteArray []byte

// String is a length-prefixed UTF-8 string tag.
type String string

// IntArray is a length-prefixed sequence of 32-bit signed integers.
type IntArray []int32

// LongArray is a length-prefixed sequence of 64-bit signed integers.
type LongArray []int64

// Compound maps unique names to child tags. Entry order affects only the
// serialized byte order, never equality.
type Compound map[string]Tag

// List is a homogeneous sequence of tags: all elements share one declared
// element type. The zero value is the empty list, which declares element
// type End per convention.
type List struct {
	elem  Type
	items []Tag
}

func (End) Type() Type       { return TypeEnd }
func (Byte) Type() Type      { return TypeByte }
func (Short) Type() Type     { return TypeShort }
func (Int) Type() Type       { return TypeInt }
func (Long) Type() Type      { return TypeLong }
func (Float) Type() Type     { return TypeFloat }
func (Double) Type() Type    { return TypeDouble }
func (ByteArray) Type() Type { return TypeByteArray }
func (String) Type() Type    { return TypeString }
func (List) Type() Type      { return TypeList }
func (Compound) Type() Type  { return TypeCompound }
func (IntArray) Type() Type  { return TypeIntArray }
func (LongArray) Type() Type { return TypeLongArray }

func (End) sealed()       {}
func (Byte) sealed()      {}
func (Short) sealed()     {}
func (Int) sealed()       {}
func (Long) sealed()      {}
func (Float) sealed()     {}
func (Double) sealed()    {}
func (ByteArray) sealed() {}
func (String) sealed()    {}
func (List) sealed()      {}
func (Compound) sealed()  {}
func (IntArray) sealed()  {}
func (LongArray) sealed() {}

// NewList creates a List with the given declared element type. It fails with
// an InvalidTag error if elem is not a valid type ID or any item's type
// differs from elem. An empty list may declare any valid element type,
// conventionally End.
func NewList(elem Type, items ...Tag) (List, error) {
	e := errors.Template("nbt.NewList", errors.K.Invalid, "reason", InvalidTag)
	if !elem.Valid() {
		return List{}, e("element_type", int(elem))
	}
	if elem == TypeEnd && len(items) > 0 {
		return List{}, e("element_type", elem.String(), "count", len(items))
	}
	for i, item := range items {
		if item == nil || item.Type() != elem {
			return List{}, e("element_type", elem.String(), "index", i)
		}
	}
	return List{elem: elem, items: append([]Tag(nil), items...)}, nil
}

// MustList is like NewList but panics on error. Intended for building
// literal trees in tests and fixtures.
func MustList(elem Type, items ...Tag) List {
	l, err := NewList(elem, items...)
	if err != nil {
		panic(err)
	}
	return l
}

// ElementType returns the declared element type of the list.
func (l List) ElementType() Type {
	return l.elem
}

// Len returns the number of elements.
func (l List) Len() int {
	return len(l.items)
}

// At returns the element at index i.
func (l List) At(i int) Tag {
	return l.items[i]
}

// Items returns a copy of the element slice.
func (l List) Items() []Tag {
	return append([]Tag(nil), l.items...)
}

// Keys returns the compound's key set in unspecified order.
func (c Compound) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}
