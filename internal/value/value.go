package value

import (
	"fmt"

	"github.com/joeltio/simforge/internal/simerr"
)

// payload holds exactly one primitive field, selected by tag. Using a
// single concrete struct (rather than an interface{} or Go generics) keeps
// Value comparable and avoids heap allocation for the scalar case; this is
// the "table-driven match on the tag" design called for in spec §9, with
// the compile-time generic expansion of the original collapsed to a
// runtime switch.
type payload struct {
	tag Tag
	i32 int32
	i64 int64
	f32 float32
	f64 float64
	b   bool
	s   string
}

// Array holds a dense, row-major array payload.
type Array struct {
	Element    Tag
	Dimensions []int
	Values     []payload
}

// Value is a tagged primitive or array value together with its declared
// type (spec §3). The zero Value is not meaningful; use one of the
// constructors below.
type Value struct {
	declared Type
	prim     payload
	arr      *Array
}

// Declared returns the value's declared type.
func (v Value) Declared() Type {
	return v.declared
}

// IsArray reports whether v holds an array payload.
func (v Value) IsArray() bool {
	return v.declared.IsArray
}

// PayloadTag returns the tag of the stored payload (not necessarily equal
// to the declared type's tag — see DeclaredTypeMatchesPayload).
func (v Value) PayloadTag() Tag {
	if v.declared.IsArray {
		return v.arr.Element
	}
	return v.prim.tag
}

// IsTag is the is_tag<T> predicate from spec §4.1.
func (v Value) IsTag(t Tag) bool {
	return !v.declared.IsArray && v.prim.tag == t
}

// DeclaredTypeMatchesPayload implements spec §4.1's
// declared_type_matches_payload predicate.
func (v Value) DeclaredTypeMatchesPayload() bool {
	if v.declared.IsArray {
		return v.arr != nil && v.declared.ElemTag == v.arr.Element
	}
	return v.declared.Tag == v.prim.tag
}

// --- constructors (the "set(val, payload)" operation of spec §4.1,
// specialized per primitive tag since Go lacks the original's single
// overloaded setter) ---

func NewInt32(x int32) Value   { return Value{declared: Primitive(Int32), prim: payload{tag: Int32, i32: x}} }
func NewInt64(x int64) Value   { return Value{declared: Primitive(Int64), prim: payload{tag: Int64, i64: x}} }
func NewFloat32(x float32) Value {
	return Value{declared: Primitive(Float32), prim: payload{tag: Float32, f32: x}}
}
func NewFloat64(x float64) Value {
	return Value{declared: Primitive(Float64), prim: payload{tag: Float64, f64: x}}
}
func NewBool(x bool) Value     { return Value{declared: Primitive(Bool), prim: payload{tag: Bool, b: x}} }
func NewString(x string) Value { return Value{declared: Primitive(String), prim: payload{tag: String, s: x}} }

// NewArray constructs an array Value whose rank is len(dims). It does not
// check that len(values) equals the product of dims (the interpreter only
// ever copies a whole incoming array payload — spec §9).
func NewArray(elem Tag, dims []int, values []payload) Value {
	return Value{
		declared: ArrayType(elem, len(dims)),
		arr:      &Array{Element: elem, Dimensions: append([]int(nil), dims...), Values: values},
	}
}

// --- typed getters: get<T>(val) from spec §4.1 ---

func GetInt32(v Value) (int32, error) {
	if v.declared.IsArray || v.prim.tag != Int32 {
		return 0, typeMismatch(v, Int32)
	}
	return v.prim.i32, nil
}

func GetInt64(v Value) (int64, error) {
	if v.declared.IsArray || v.prim.tag != Int64 {
		return 0, typeMismatch(v, Int64)
	}
	return v.prim.i64, nil
}

func GetFloat32(v Value) (float32, error) {
	if v.declared.IsArray || v.prim.tag != Float32 {
		return 0, typeMismatch(v, Float32)
	}
	return v.prim.f32, nil
}

func GetFloat64(v Value) (float64, error) {
	if v.declared.IsArray || v.prim.tag != Float64 {
		return 0, typeMismatch(v, Float64)
	}
	return v.prim.f64, nil
}

func GetBool(v Value) (bool, error) {
	if v.declared.IsArray || v.prim.tag != Bool {
		return false, typeMismatch(v, Bool)
	}
	return v.prim.b, nil
}

func GetString(v Value) (string, error) {
	if v.declared.IsArray || v.prim.tag != String {
		return "", typeMismatch(v, String)
	}
	return v.prim.s, nil
}

func GetArray(v Value) (*Array, error) {
	if !v.declared.IsArray {
		return nil, typeMismatch(v, Invalid)
	}
	return v.arr, nil
}

func typeMismatch(v Value, want Tag) error {
	return simerr.New(simerr.TypeMismatch, "value tag %s does not match requested tag %s", v.PayloadTag(), want)
}

// AsFloat64 returns the payload widened to float64, for numeric ops that
// want a single working precision (Random's uniform sampling, the
// ArcSin/ArcCos domain check).
// It fails for non-numeric tags.
func (v Value) AsFloat64() (float64, error) {
	if v.declared.IsArray || !v.prim.tag.IsNumeric() {
		return 0, simerr.New(simerr.TypeMismatch, "expected a numeric value, got %s", v.PayloadTag())
	}
	switch v.prim.tag {
	case Int32:
		return float64(v.prim.i32), nil
	case Int64:
		return float64(v.prim.i64), nil
	case Float32:
		return float64(v.prim.f32), nil
	case Float64:
		return v.prim.f64, nil
	}
	panic("unreachable")
}

// String implements fmt.Stringer for debugging/log output.
func (v Value) String() string {
	if v.declared.IsArray {
		return fmt.Sprintf("%s%v", v.declared, v.arr.Values)
	}
	switch v.prim.tag {
	case Int32:
		return fmt.Sprintf("%d", v.prim.i32)
	case Int64:
		return fmt.Sprintf("%d", v.prim.i64)
	case Float32:
		return fmt.Sprintf("%g", v.prim.f32)
	case Float64:
		return fmt.Sprintf("%g", v.prim.f64)
	case Bool:
		return fmt.Sprintf("%t", v.prim.b)
	case String:
		return v.prim.s
	default:
		return "<invalid>"
	}
}
