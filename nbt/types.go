package nbt

import (
	"fmt"
	"math"
	"sort"
)

// TagType identifies a tag's wire variant. The numeric values are the
// on-wire type ids and must never change.
type TagType uint8

const (
	TypeEnd       TagType = 0 // compound terminator, never a value
	TypeByte      TagType = 1
	TypeShort     TagType = 2
	TypeInt       TagType = 3
	TypeLong      TagType = 4
	TypeFloat     TagType = 5
	TypeDouble    TagType = 6
	TypeByteArray TagType = 7
	TypeString    TagType = 8
	TypeList      TagType = 9
	TypeCompound  TagType = 10
	TypeIntArray  TagType = 11
	TypeLongArray TagType = 12
)

// String returns the type name.
func (t TagType) String() string {
	switch t {
	case TypeEnd:
		return "end"
	case TypeByte:
		return "byte"
	case TypeShort:
		return "short"
	case TypeInt:
		return "int"
	case TypeLong:
		return "long"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	case TypeByteArray:
		return "byte_array"
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	case TypeCompound:
		return "compound"
	case TypeIntArray:
		return "int_array"
	case TypeLongArray:
		return "long_array"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// isValue reports whether t is one of the twelve value variants
// (everything except End and out-of-range ids).
func (t TagType) isValue() bool {
	return t >= TypeByte && t <= TypeLongArray
}

// Tag is one node of an NBT value tree. Exactly one payload field is valid,
// selected by typ. Tags are immutable once built; the codec only constructs
// new trees, never rewrites existing ones.
type Tag struct {
	typ TagType

	// Scalar values (only one valid based on typ)
	byteVal   int8
	shortVal  int16
	intVal    int32
	longVal   int64
	floatVal  float32
	doubleVal float64
	strVal    string

	// Array values
	byteArr []int8
	intArr  []int32
	longArr []int64

	// Container values
	listVal     []*Tag
	compoundVal map[string]*Tag
}

// Document is one complete serialized unit: a display name (possibly empty)
// plus a root tag that must be a compound.
type Document struct {
	Name string
	Root *Tag
}

// ============================================================
// Constructors
// ============================================================

// Byte creates a byte tag.
func Byte(v int8) *Tag {
	return &Tag{typ: TypeByte, byteVal: v}
}

// Short creates a short tag.
func Short(v int16) *Tag {
	return &Tag{typ: TypeShort, shortVal: v}
}

// Int creates an int tag.
func Int(v int32) *Tag {
	return &Tag{typ: TypeInt, intVal: v}
}

// Long creates a long tag.
func Long(v int64) *Tag {
	return &Tag{typ: TypeLong, longVal: v}
}

// Float creates a float tag.
func Float(v float32) *Tag {
	return &Tag{typ: TypeFloat, floatVal: v}
}

// Double creates a double tag.
func Double(v float64) *Tag {
	return &Tag{typ: TypeDouble, doubleVal: v}
}

// ByteArray creates a byte array tag.
func ByteArray(v []int8) *Tag {
	return &Tag{typ: TypeByteArray, byteArr: v}
}

// Str creates a string tag.
func Str(v string) *Tag {
	return &Tag{typ: TypeString, strVal: v}
}

// List creates a list tag. Elements must share one variant; the codec
// enforces this at encode time.
func List(elems ...*Tag) *Tag {
	return &Tag{typ: TypeList, listVal: elems}
}

// Compound creates a compound tag from a name → tag map. A nil map is an
// empty compound.
func Compound(entries map[string]*Tag) *Tag {
	if entries == nil {
		entries = make(map[string]*Tag)
	}
	return &Tag{typ: TypeCompound, compoundVal: entries}
}

// IntArray creates an int array tag.
func IntArray(v []int32) *Tag {
	return &Tag{typ: TypeIntArray, intArr: v}
}

// LongArray creates a long array tag.
func LongArray(v []int64) *Tag {
	return &Tag{typ: TypeLongArray, longArr: v}
}

// ============================================================
// Accessors
// ============================================================

// Type returns the tag's variant.
func (t *Tag) Type() TagType {
	if t == nil {
		return TypeEnd
	}
	return t.typ
}

// AsByte returns the byte value.
func (t *Tag) AsByte() (int8, error) {
	if t == nil {
		return 0, fmt.Errorf("nbt: nil tag")
	}
	if t.typ != TypeByte {
		return 0, fmt.Errorf("nbt: expected byte, got %s", t.typ)
	}
	return t.byteVal, nil
}

// AsShort returns the short value.
func (t *Tag) AsShort() (int16, error) {
	if t == nil {
		return 0, fmt.Errorf("nbt: nil tag")
	}
	if t.typ != TypeShort {
		return 0, fmt.Errorf("nbt: expected short, got %s", t.typ)
	}
	return t.shortVal, nil
}

// AsInt returns the int value.
func (t *Tag) AsInt() (int32, error) {
	if t == nil {
		return 0, fmt.Errorf("nbt: nil tag")
	}
	if t.typ != TypeInt {
		return 0, fmt.Errorf("nbt: expected int, got %s", t.typ)
	}
	return t.intVal, nil
}

// AsLong returns the long value.
func (t *Tag) AsLong() (int64, error) {
	if t == nil {
		return 0, fmt.Errorf("nbt: nil tag")
	}
	if t.typ != TypeLong {
		return 0, fmt.Errorf("nbt: expected long, got %s", t.typ)
	}
	return t.longVal, nil
}

// AsFloat returns the float value.
func (t *Tag) AsFloat() (float32, error) {
	if t == nil {
		return 0, fmt.Errorf("nbt: nil tag")
	}
	if t.typ != TypeFloat {
		return 0, fmt.Errorf("nbt: expected float, got %s", t.typ)
	}
	return t.floatVal, nil
}

// AsDouble returns the double value.
func (t *Tag) AsDouble() (float64, error) {
	if t == nil {
		return 0, fmt.Errorf("nbt: nil tag")
	}
	if t.typ != TypeDouble {
		return 0, fmt.Errorf("nbt: expected double, got %s", t.typ)
	}
	return t.doubleVal, nil
}

// AsByteArray returns the byte array value.
func (t *Tag) AsByteArray() ([]int8, error) {
	if t == nil {
		return nil, fmt.Errorf("nbt: nil tag")
	}
	if t.typ != TypeByteArray {
		return nil, fmt.Errorf("nbt: expected byte_array, got %s", t.typ)
	}
	return t.byteArr, nil
}

// AsStr returns the string value.
func (t *Tag) AsStr() (string, error) {
	if t == nil {
		return "", fmt.Errorf("nbt: nil tag")
	}
	if t.typ != TypeString {
		return "", fmt.Errorf("nbt: expected string, got %s", t.typ)
	}
	return t.strVal, nil
}

// AsList returns the list elements.
func (t *Tag) AsList() ([]*Tag, error) {
	if t == nil {
		return nil, fmt.Errorf("nbt: nil tag")
	}
	if t.typ != TypeList {
		return nil, fmt.Errorf("nbt: expected list, got %s", t.typ)
	}
	return t.listVal, nil
}

// AsCompound returns the compound's entry map.
func (t *Tag) AsCompound() (map[string]*Tag, error) {
	if t == nil {
		return nil, fmt.Errorf("nbt: nil tag")
	}
	if t.typ != TypeCompound {
		return nil, fmt.Errorf("nbt: expected compound, got %s", t.typ)
	}
	return t.compoundVal, nil
}

// AsIntArray returns the int array value.
func (t *Tag) AsIntArray() ([]int32, error) {
	if t == nil {
		return nil, fmt.Errorf("nbt: nil tag")
	}
	if t.typ != TypeIntArray {
		return nil, fmt.Errorf("nbt: expected int_array, got %s", t.typ)
	}
	return t.intArr, nil
}

// AsLongArray returns the long array value.
func (t *Tag) AsLongArray() ([]int64, error) {
	if t == nil {
		return nil, fmt.Errorf("nbt: nil tag")
	}
	if t.typ != TypeLongArray {
		return nil, fmt.Errorf("nbt: expected long_array, got %s", t.typ)
	}
	return t.longArr, nil
}

// Get returns a compound entry by name, or nil for missing entries and
// non-compound tags.
func (t *Tag) Get(name string) *Tag {
	if t == nil || t.typ != TypeCompound {
		return nil
	}
	return t.compoundVal[name]
}

// Len returns the number of elements in a list, array, or compound, and 0
// for scalars.
func (t *Tag) Len() int {
	if t == nil {
		return 0
	}
	switch t.typ {
	case TypeByteArray:
		return len(t.byteArr)
	case TypeIntArray:
		return len(t.intArr)
	case TypeLongArray:
		return len(t.longArr)
	case TypeList:
		return len(t.listVal)
	case TypeCompound:
		return len(t.compoundVal)
	default:
		return 0
	}
}

// Keys returns a compound's entry names in sorted order.
func (t *Tag) Keys() []string {
	if t == nil || t.typ != TypeCompound {
		return nil
	}
	keys := make([]string, 0, len(t.compoundVal))
	for k := range t.compoundVal {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ============================================================
// Equality
// ============================================================

// Equal reports deep structural equality. Compound comparison is
// order-independent; floats compare bit-exact so NaN payloads round-trip.
func (t *Tag) Equal(other *Tag) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.typ != other.typ {
		return false
	}

	switch t.typ {
	case TypeByte:
		return t.byteVal == other.byteVal
	case TypeShort:
		return t.shortVal == other.shortVal
	case TypeInt:
		return t.intVal == other.intVal
	case TypeLong:
		return t.longVal == other.longVal
	case TypeFloat:
		return math.Float32bits(t.floatVal) == math.Float32bits(other.floatVal)
	case TypeDouble:
		return math.Float64bits(t.doubleVal) == math.Float64bits(other.doubleVal)
	case TypeString:
		return t.strVal == other.strVal
	case TypeByteArray:
		if len(t.byteArr) != len(other.byteArr) {
			return false
		}
		for i, v := range t.byteArr {
			if v != other.byteArr[i] {
				return false
			}
		}
		return true
	case TypeIntArray:
		if len(t.intArr) != len(other.intArr) {
			return false
		}
		for i, v := range t.intArr {
			if v != other.intArr[i] {
				return false
			}
		}
		return true
	case TypeLongArray:
		if len(t.longArr) != len(other.longArr) {
			return false
		}
		for i, v := range t.longArr {
			if v != other.longArr[i] {
				return false
			}
		}
		return true
	case TypeList:
		if len(t.listVal) != len(other.listVal) {
			return false
		}
		for i, v := range t.listVal {
			if !v.Equal(other.listVal[i]) {
				return false
			}
		}
		return true
	case TypeCompound:
		if len(t.compoundVal) != len(other.compoundVal) {
			return false
		}
		for k, v := range t.compoundVal {
			if !v.Equal(other.compoundVal[k]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Equal reports whether two documents have the same name and equal trees.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Name == other.Name && d.Root.Equal(other.Root)
}
