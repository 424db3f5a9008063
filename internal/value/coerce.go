package value

import "github.com/joeltio/simforge/internal/simerr"

// CoerceTo implements spec §4.1's implicit numeric coercion: a value is
// assignable to a declared target type if the tags match exactly, or if
// both target and source are numeric (in which case the payload is
// converted using Go's native numeric conversion rules — truncation for
// float->int, sign/width changes for int narrowing). Array targets require
// an exact element-type match; no element-wise coercion is performed
// (spec §9).
func CoerceTo(target Type, v Value) (Value, error) {
	if target.IsArray {
		if !v.declared.IsArray {
			return Value{}, simerr.New(simerr.TypeMismatch, "expected array of %s, got scalar %s", target.ElemTag, v.PayloadTag())
		}
		if target.ElemTag != v.arr.Element {
			return Value{}, simerr.New(simerr.TypeMismatch, "array element type %s does not match declared %s", v.arr.Element, target.ElemTag)
		}
		return Value{declared: target, arr: v.arr}, nil
	}
	if v.declared.IsArray {
		return Value{}, simerr.New(simerr.TypeMismatch, "expected scalar %s, got array", target.Tag)
	}
	if target.Tag == v.prim.tag {
		return Value{declared: target, prim: v.prim}, nil
	}
	if target.Tag.IsNumeric() && v.prim.tag.IsNumeric() {
		return WidenTo(v, target.Tag), nil
	}
	return Value{}, simerr.New(simerr.TypeMismatch, "cannot coerce %s to %s", v.PayloadTag(), target.Tag)
}

// WidenTo converts a numeric Value's payload to the given numeric tag. The
// caller must ensure v holds a numeric scalar payload; it is used both by
// CoerceTo and by the interpreter's binary-operator type promotion (spec
// §4.6), where both operand tags are already known to be numeric.
func WidenTo(v Value, target Tag) Value {
	switch target {
	case Int32:
		return NewInt32(toI32(v.prim))
	case Int64:
		return NewInt64(toI64(v.prim))
	case Float32:
		return NewFloat32(toF32(v.prim))
	case Float64:
		return NewFloat64(toF64(v.prim))
	default:
		panic("WidenTo: target is not a numeric tag")
	}
}

func toI32(p payload) int32 {
	switch p.tag {
	case Int32:
		return p.i32
	case Int64:
		return int32(p.i64)
	case Float32:
		return int32(p.f32)
	case Float64:
		return int32(p.f64)
	default:
		panic("toI32: non-numeric payload")
	}
}

func toI64(p payload) int64 {
	switch p.tag {
	case Int32:
		return int64(p.i32)
	case Int64:
		return p.i64
	case Float32:
		return int64(p.f32)
	case Float64:
		return int64(p.f64)
	default:
		panic("toI64: non-numeric payload")
	}
}

func toF32(p payload) float32 {
	switch p.tag {
	case Int32:
		return float32(p.i32)
	case Int64:
		return float32(p.i64)
	case Float32:
		return p.f32
	case Float64:
		return float32(p.f64)
	default:
		panic("toF32: non-numeric payload")
	}
}

func toF64(p payload) float64 {
	switch p.tag {
	case Int32:
		return float64(p.i32)
	case Int64:
		return float64(p.i64)
	case Float32:
		return float64(p.f32)
	case Float64:
		return p.f64
	default:
		panic("toF64: non-numeric payload")
	}
}

// Promote implements the binary numeric type-promotion rule from spec
// §4.6: int32+int32 -> int32, int32+int64 -> int64, any int + any float ->
// the float operand's width, float32+float64 -> float64.
func Promote(a, b Tag) (Tag, error) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return Invalid, simerr.New(simerr.TypeMismatch, "numeric operator requires numeric operands, got %s and %s", a, b)
	}
	if a == b {
		return a, nil
	}
	switch {
	case a.IsFloat() && b.IsFloat():
		if a.width() > b.width() {
			return a, nil
		}
		return b, nil
	case a.IsFloat():
		return a, nil
	case b.IsFloat():
		return b, nil
	default:
		if a.width() > b.width() {
			return a, nil
		}
		return b, nil
	}
}
