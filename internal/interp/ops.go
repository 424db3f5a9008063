package interp

import (
	"math"

	"github.com/joeltio/simforge/internal/simerr"
	"github.com/joeltio/simforge/internal/value"
)

func (in *Interpreter) div(node *Node) (value.Value, error) {
	x, y, err := in.evalChildren2(node)
	if err != nil {
		return value.Value{}, err
	}
	tag, err := value.Promote(x.PayloadTag(), y.PayloadTag())
	if err != nil {
		return value.Value{}, err
	}
	xw, yw := value.WidenTo(x, tag), value.WidenTo(y, tag)
	switch tag {
	case value.Int32:
		xi, _ := value.GetInt32(xw)
		yi, _ := value.GetInt32(yw)
		if yi == 0 {
			return value.Value{}, simerr.New(simerr.DomainError, "integer division by zero")
		}
		return value.NewInt32(xi / yi), nil // Go truncates toward zero, matching spec §8 property 9.
	case value.Int64:
		xi, _ := value.GetInt64(xw)
		yi, _ := value.GetInt64(yw)
		if yi == 0 {
			return value.Value{}, simerr.New(simerr.DomainError, "integer division by zero")
		}
		return value.NewInt64(xi / yi), nil
	case value.Float32:
		xf, _ := value.GetFloat32(xw)
		yf, _ := value.GetFloat32(yw)
		return value.NewFloat32(xf / yf), nil // IEEE-754: yf==0 yields +/-Inf or NaN, no error.
	case value.Float64:
		xf, _ := value.GetFloat64(xw)
		yf, _ := value.GetFloat64(yw)
		return value.NewFloat64(xf / yf), nil
	default:
		panic("unreachable")
	}
}

func (in *Interpreter) mod(node *Node) (value.Value, error) {
	x, y, err := in.evalChildren2(node)
	if err != nil {
		return value.Value{}, err
	}
	if x.PayloadTag().IsFloat() || y.PayloadTag().IsFloat() {
		return value.Value{}, simerr.New(simerr.DomainError, "Mod requires integer operands, got %s and %s", x.PayloadTag(), y.PayloadTag())
	}
	tag, err := value.Promote(x.PayloadTag(), y.PayloadTag())
	if err != nil {
		return value.Value{}, err
	}
	xw, yw := value.WidenTo(x, tag), value.WidenTo(y, tag)
	switch tag {
	case value.Int32:
		xi, _ := value.GetInt32(xw)
		yi, _ := value.GetInt32(yw)
		if yi == 0 {
			return value.Value{}, simerr.New(simerr.DomainError, "modulo by zero")
		}
		return value.NewInt32(xi % yi), nil // Go's % follows the dividend's sign, same as C++'s.
	case value.Int64:
		xi, _ := value.GetInt64(xw)
		yi, _ := value.GetInt64(yw)
		if yi == 0 {
			return value.Value{}, simerr.New(simerr.DomainError, "modulo by zero")
		}
		return value.NewInt64(xi % yi), nil
	default:
		panic("unreachable: Mod operands are int-only by the check above")
	}
}

func (in *Interpreter) abs(node *Node) (value.Value, error) {
	x, err := in.Evaluate(node.Children[0])
	if err != nil {
		return value.Value{}, err
	}
	return value.ApplyUnaryNumeric(x, value.UnaryNumeric{
		I32: func(v int32) int32 {
			if v < 0 {
				return -v
			}
			return v
		},
		I64: func(v int64) int64 {
			if v < 0 {
				return -v
			}
			return v
		},
		F32: func(v float32) float32 { return float32(math.Abs(float64(v))) },
		F64: math.Abs,
	})
}

func (in *Interpreter) floor(node *Node) (value.Value, error) {
	x, err := in.Evaluate(node.Children[0])
	if err != nil {
		return value.Value{}, err
	}
	return value.ApplyUnaryNumeric(x, value.UnaryNumeric{
		I32: identityI32,
		I64: identityI64,
		F32: func(v float32) float32 { return float32(math.Floor(float64(v))) },
		F64: math.Floor,
	})
}

func (in *Interpreter) ceil(node *Node) (value.Value, error) {
	x, err := in.Evaluate(node.Children[0])
	if err != nil {
		return value.Value{}, err
	}
	return value.ApplyUnaryNumeric(x, value.UnaryNumeric{
		I32: identityI32,
		I64: identityI64,
		F32: func(v float32) float32 { return float32(math.Ceil(float64(v))) },
		F64: math.Ceil,
	})
}

func identityI32(v int32) int32 { return v }
func identityI64(v int64) int64 { return v }

func (in *Interpreter) pow(node *Node) (value.Value, error) {
	x, y, err := in.evalChildren2(node)
	if err != nil {
		return value.Value{}, err
	}
	return value.ApplyBinaryNumeric(x, y, value.BinaryNumeric{
		I32: func(a, b int32) int32 { return int32(math.Pow(float64(a), float64(b))) },
		I64: func(a, b int64) int64 { return int64(math.Pow(float64(a), float64(b))) },
		F32: func(a, b float32) float32 { return float32(math.Pow(float64(a), float64(b))) },
		F64: math.Pow,
	})
}

func (in *Interpreter) trig(node *Node, f func(float64) float64) (value.Value, error) {
	x, err := in.Evaluate(node.Children[0])
	if err != nil {
		return value.Value{}, err
	}
	return value.ApplyUnaryNumeric(x, value.UnaryNumeric{
		I32: func(v int32) int32 { return int32(f(float64(v))) },
		I64: func(v int64) int64 { return int64(f(float64(v))) },
		F32: func(v float32) float32 { return float32(f(float64(v))) },
		F64: f,
	})
}

var (
	sinFn    = math.Sin
	cosFn    = math.Cos
	tanFn    = math.Tan
	arcTanFn = math.Atan
	arcSinFn = math.Asin
	arcCosFn = math.Acos
)

// inverseTrig handles ArcSin/ArcCos, whose domain is checked to [-1, 1]
// before evaluation (spec §4.6, §8 property 11).
func (in *Interpreter) inverseTrig(node *Node, f func(float64) float64) (value.Value, error) {
	x, err := in.Evaluate(node.Children[0])
	if err != nil {
		return value.Value{}, err
	}
	xf, err := x.AsFloat64()
	if err != nil {
		return value.Value{}, err
	}
	if xf < -1 || xf > 1 {
		return value.Value{}, simerr.New(simerr.DomainError, "value %g outside [-1, 1]", xf)
	}
	return in.trigValue(x, f)
}

func (in *Interpreter) trigValue(x value.Value, f func(float64) float64) (value.Value, error) {
	return value.ApplyUnaryNumeric(x, value.UnaryNumeric{
		I32: func(v int32) int32 { return int32(f(float64(v))) },
		I64: func(v int64) int64 { return int64(f(float64(v))) },
		F32: func(v float32) float32 { return float32(f(float64(v))) },
		F64: f,
	})
}

func (in *Interpreter) random(node *Node) (value.Value, error) {
	low, high, err := in.evalChildren2(node)
	if err != nil {
		return value.Value{}, err
	}
	if low.PayloadTag() != high.PayloadTag() || !low.PayloadTag().IsFloat() {
		return value.Value{}, simerr.New(simerr.DomainError, "Random requires float32 or float64 bounds of the same tag, got %s and %s", low.PayloadTag(), high.PayloadTag())
	}
	lo, _ := low.AsFloat64()
	hi, _ := high.AsFloat64()
	var sample float64
	if lo == hi {
		sample = lo // spec §8 property 12: equal bounds yield exactly that value.
	} else {
		sample = lo + in.Rand.Float64()*(hi-lo)
	}
	if low.PayloadTag() == value.Float32 {
		return value.NewFloat32(float32(sample)), nil
	}
	return value.NewFloat64(sample), nil
}

func (in *Interpreter) eq(node *Node) (value.Value, error) {
	x, y, err := in.evalChildren2(node)
	if err != nil {
		return value.Value{}, err
	}
	if x.PayloadTag().IsNumeric() && y.PayloadTag().IsNumeric() {
		tag, err := value.Promote(x.PayloadTag(), y.PayloadTag())
		if err != nil {
			return value.Value{}, err
		}
		xw, yw := value.WidenTo(x, tag), value.WidenTo(y, tag)
		switch tag {
		case value.Int32:
			a, _ := value.GetInt32(xw)
			b, _ := value.GetInt32(yw)
			return value.NewBool(a == b), nil
		case value.Int64:
			a, _ := value.GetInt64(xw)
			b, _ := value.GetInt64(yw)
			return value.NewBool(a == b), nil
		case value.Float32:
			a, _ := value.GetFloat32(xw)
			b, _ := value.GetFloat32(yw)
			return value.NewBool(a == b), nil // exact, no epsilon (spec §4.6).
		case value.Float64:
			a, _ := value.GetFloat64(xw)
			b, _ := value.GetFloat64(yw)
			return value.NewBool(a == b), nil
		}
	}
	if x.PayloadTag() != y.PayloadTag() {
		return value.Value{}, simerr.New(simerr.TypeMismatch, "Eq requires same-tag operands, got %s and %s", x.PayloadTag(), y.PayloadTag())
	}
	switch x.PayloadTag() {
	case value.Bool:
		a, _ := value.GetBool(x)
		b, _ := value.GetBool(y)
		return value.NewBool(a == b), nil
	case value.String:
		a, _ := value.GetString(x)
		b, _ := value.GetString(y)
		return value.NewBool(a == b), nil
	default:
		return value.Value{}, simerr.New(simerr.TypeMismatch, "Eq does not support tag %s", x.PayloadTag())
	}
}

func (in *Interpreter) compare(node *Node, accept func(cmp int) bool) (value.Value, error) {
	x, y, err := in.evalChildren2(node)
	if err != nil {
		return value.Value{}, err
	}
	if !x.PayloadTag().IsNumeric() || !y.PayloadTag().IsNumeric() {
		return value.Value{}, simerr.New(simerr.DomainError, "comparison requires numeric operands, got %s and %s", x.PayloadTag(), y.PayloadTag())
	}
	tag, err := value.Promote(x.PayloadTag(), y.PayloadTag())
	if err != nil {
		return value.Value{}, err
	}
	xw, yw := value.WidenTo(x, tag), value.WidenTo(y, tag)
	var cmp int
	switch tag {
	case value.Int32:
		a, _ := value.GetInt32(xw)
		b, _ := value.GetInt32(yw)
		cmp = cmpOrdered(a, b)
	case value.Int64:
		a, _ := value.GetInt64(xw)
		b, _ := value.GetInt64(yw)
		cmp = cmpOrdered(a, b)
	case value.Float32:
		a, _ := value.GetFloat32(xw)
		b, _ := value.GetFloat32(yw)
		cmp = cmpOrdered(a, b)
	case value.Float64:
		a, _ := value.GetFloat64(xw)
		b, _ := value.GetFloat64(yw)
		cmp = cmpOrdered(a, b)
	}
	return value.NewBool(accept(cmp)), nil
}

func cmpOrdered[T int32 | int64 | float32 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
