package value

import (
	"golang.org/x/exp/constraints"

	"github.com/joeltio/simforge/internal/simerr"
)

// UnaryNumeric is a dispatch table of per-tag closures, one for each of the
// four numeric payload representations. It is the runtime collapse of
// spec §4.1's run_fn_with_val<AllowedTags...>(x, f) combinator: rather than
// a compile-time generic expansion, the interpreter supplies one closure
// per concrete tag and ApplyUnaryNumeric selects the right one by a
// runtime tag switch.
type UnaryNumeric struct {
	I32 func(int32) int32
	I64 func(int64) int64
	F32 func(float32) float32
	F64 func(float64) float64
}

// ApplyUnaryNumeric runs the matching closure in ops against v's numeric
// payload and wraps the result in a new Value whose declared type is the
// natural tag of the closure's return, per spec §4.1.
func ApplyUnaryNumeric(v Value, ops UnaryNumeric) (Value, error) {
	if v.declared.IsArray {
		return Value{}, simerr.New(simerr.TypeMismatch, "expected numeric scalar, got array")
	}
	switch v.prim.tag {
	case Int32:
		return NewInt32(ops.I32(v.prim.i32)), nil
	case Int64:
		return NewInt64(ops.I64(v.prim.i64)), nil
	case Float32:
		return NewFloat32(ops.F32(v.prim.f32)), nil
	case Float64:
		return NewFloat64(ops.F64(v.prim.f64)), nil
	default:
		return Value{}, simerr.New(simerr.TypeMismatch, "expected numeric operand, got %s", v.prim.tag)
	}
}

// BinaryNumeric is the two-operand counterpart of UnaryNumeric.
type BinaryNumeric struct {
	I32 func(int32, int32) int32
	I64 func(int64, int64) int64
	F32 func(float32, float32) float32
	F64 func(float64, float64) float64
}

// ApplyBinaryNumeric promotes x and y to a common tag (spec §4.6), then
// runs the matching closure in ops against the widened payloads. The
// result's declared type is the promoted tag, matching
// run_fn_with_val<AllowedTags...>(x, y, f)'s ambient numeric promotion.
func ApplyBinaryNumeric(x, y Value, ops BinaryNumeric) (Value, error) {
	if x.declared.IsArray || y.declared.IsArray {
		return Value{}, simerr.New(simerr.TypeMismatch, "numeric operator does not support array operands")
	}
	tag, err := Promote(x.prim.tag, y.prim.tag)
	if err != nil {
		return Value{}, err
	}
	xw, yw := WidenTo(x, tag), WidenTo(y, tag)
	switch tag {
	case Int32:
		return NewInt32(ops.I32(xw.prim.i32, yw.prim.i32)), nil
	case Int64:
		return NewInt64(ops.I64(xw.prim.i64, yw.prim.i64)), nil
	case Float32:
		return NewFloat32(ops.F32(xw.prim.f32, yw.prim.f32)), nil
	case Float64:
		return NewFloat64(ops.F64(xw.prim.f64, yw.prim.f64)), nil
	default:
		panic("unreachable: Promote only returns numeric tags")
	}
}

// numeric is the constraint satisfied by all four payload representations;
// it lets Max/Min below share one generic body instead of four
// near-identical closures.
type numeric interface {
	constraints.Integer | constraints.Float
}

// maxT returns the larger of a and b; ties return a (spec §4.6: "Max/Min:
// numeric; ties return x").
func maxT[T numeric](a, b T) T {
	if a >= b {
		return a
	}
	return b
}

// minT returns the smaller of a and b; ties return a.
func minT[T numeric](a, b T) T {
	if a <= b {
		return a
	}
	return b
}

// Max returns the larger of two numeric Values; ties return x (spec §4.6).
func Max(x, y Value) (Value, error) {
	return ApplyBinaryNumeric(x, y, BinaryNumeric{
		I32: maxT[int32], I64: maxT[int64], F32: maxT[float32], F64: maxT[float64],
	})
}

// Min returns the smaller of two numeric Values; ties return x (spec §4.6).
func Min(x, y Value) (Value, error) {
	return ApplyBinaryNumeric(x, y, BinaryNumeric{
		I32: minT[int32], I64: minT[int64], F32: minT[float32], F64: minT[float64],
	})
}
