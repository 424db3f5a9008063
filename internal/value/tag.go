// Package value implements the simulation engine's primitive value model:
// tagged scalars and arrays with a declared type, implicit numeric
// coercion, and the generic dispatch helpers the graph interpreter uses to
// evaluate operators without knowing an operand's concrete tag at compile
// time.
package value

import "fmt"

// Tag enumerates the primitive type tags a Value's payload can carry.
type Tag int

const (
	// Invalid is the zero Tag; no Value should ever carry it.
	Invalid Tag = iota
	Int32
	Int64
	Float32
	Float64
	Bool
	String
)

func (t Tag) String() string {
	switch t {
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	case Float32:
		return "FLOAT32"
	case Float64:
		return "FLOAT64"
	case Bool:
		return "BOOL"
	case String:
		return "STRING"
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

// IsNumeric reports whether t is one of the four numeric tags.
func (t Tag) IsNumeric() bool {
	switch t {
	case Int32, Int64, Float32, Float64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether t is one of the two floating-point tags.
func (t Tag) IsFloat() bool {
	return t == Float32 || t == Float64
}

// IsInt reports whether t is one of the two integer tags.
func (t Tag) IsInt() bool {
	return t == Int32 || t == Int64
}

// width orders the numeric tags for widening comparisons. Float tags are
// always wider than int tags, per the promotion rule in spec §4.6.
func (t Tag) width() int {
	switch t {
	case Int32:
		return 0
	case Int64:
		return 1
	case Float32:
		return 2
	case Float64:
		return 3
	default:
		return -1
	}
}

// Type is a declared type: either a bare primitive tag, or an array of a
// declared element type with a fixed dimensionality.
type Type struct {
	Tag       Tag
	IsArray   bool
	ElemTag   Tag // valid only when IsArray
	NumDims   int // valid only when IsArray; 0 means unspecified rank
}

// Primitive constructs a non-array declared type.
func Primitive(tag Tag) Type {
	return Type{Tag: tag}
}

// ArrayType constructs a declared array type with the given element tag
// and rank.
func ArrayType(elem Tag, numDims int) Type {
	return Type{IsArray: true, ElemTag: elem, NumDims: numDims}
}

func (t Type) String() string {
	if t.IsArray {
		return fmt.Sprintf("[]%s", t.ElemTag)
	}
	return t.Tag.String()
}

// Equal reports whether two declared types are identical.
func (t Type) Equal(o Type) bool {
	if t.IsArray != o.IsArray {
		return false
	}
	if t.IsArray {
		return t.ElemTag == o.ElemTag && t.NumDims == o.NumDims
	}
	return t.Tag == o.Tag
}
