package interp

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/joeltio/simforge/internal/ecs"
	"github.com/joeltio/simforge/internal/simerr"
	"github.com/joeltio/simforge/internal/value"
)

// Interpreter evaluates Node trees against a component store and its
// indices (spec §4.6). It is single-threaded: no node runs concurrently
// with another, and Interpreter carries no internal locking (spec §5).
type Interpreter struct {
	Store *ecs.Store
	Index *ecs.IndexStore
	Rand  *rand.Rand
}

// New constructs an Interpreter over the given store and index, with a
// random source seeded with the fixed value 1, so Random() yields the same
// sequence on every run. Set Rand directly to use a different source.
func New(store *ecs.Store, index *ecs.IndexStore) *Interpreter {
	return &Interpreter{Store: store, Index: index, Rand: rand.New(rand.NewSource(1))}
}

// RunGraph executes every output in document order as a Mutate (spec
// §4.6: "run_graph(graph) iterates graph.outputs in document order and
// executes each as a Mutate"). The first failing output aborts the run;
// already-applied mutations from earlier outputs are not rolled back
// (spec §4.6 failure semantics).
func (in *Interpreter) RunGraph(g *Graph) error {
	for i, out := range g.Outputs {
		if out.Op != OpMutate {
			return simerr.New(simerr.Internal, "graph output %d is not a Mutate node", i)
		}
		if _, err := in.Evaluate(out); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate walks node eagerly, depth-first, left-to-right (spec §4.6) and
// returns its value. Retrieve and Mutate sub-nodes have the side effect of
// reading/writing the component store.
func (in *Interpreter) Evaluate(node *Node) (value.Value, error) {
	switch node.Op {
	case OpConst:
		return node.ConstValue, nil

	case OpRetrieve:
		return in.retrieve(node.Ref)

	case OpMutate:
		return in.mutate(node)

	case OpSwitch:
		return in.evalSwitch(node)

	case OpAdd:
		return in.binaryNumeric(node, value.BinaryNumeric{
			I32: func(a, b int32) int32 { return a + b },
			I64: func(a, b int64) int64 { return a + b },
			F32: func(a, b float32) float32 { return a + b },
			F64: func(a, b float64) float64 { return a + b },
		})
	case OpSub:
		return in.binaryNumeric(node, value.BinaryNumeric{
			I32: func(a, b int32) int32 { return a - b },
			I64: func(a, b int64) int64 { return a - b },
			F32: func(a, b float32) float32 { return a - b },
			F64: func(a, b float64) float64 { return a - b },
		})
	case OpMul:
		return in.binaryNumeric(node, value.BinaryNumeric{
			I32: func(a, b int32) int32 { return a * b },
			I64: func(a, b int64) int64 { return a * b },
			F32: func(a, b float32) float32 { return a * b },
			F64: func(a, b float64) float64 { return a * b },
		})
	case OpDiv:
		return in.div(node)
	case OpMax:
		return in.binaryNumericValues(node, value.Max)
	case OpMin:
		return in.binaryNumericValues(node, value.Min)
	case OpAbs:
		return in.abs(node)
	case OpFloor:
		return in.floor(node)
	case OpCeil:
		return in.ceil(node)
	case OpPow:
		return in.pow(node)
	case OpMod:
		return in.mod(node)
	case OpSin:
		return in.trig(node, sinFn)
	case OpCos:
		return in.trig(node, cosFn)
	case OpTan:
		return in.trig(node, tanFn)
	case OpArcSin:
		return in.inverseTrig(node, arcSinFn)
	case OpArcCos:
		return in.inverseTrig(node, arcCosFn)
	case OpArcTan:
		return in.trig(node, arcTanFn)
	case OpRandom:
		return in.random(node)
	case OpAnd:
		return in.boolBinary(node, func(a, b bool) bool { return a && b })
	case OpOr:
		return in.boolBinary(node, func(a, b bool) bool { return a || b })
	case OpNot:
		return in.boolUnary(node)
	case OpEq:
		return in.eq(node)
	case OpGt:
		return in.compare(node, func(c int) bool { return c > 0 })
	case OpLt:
		return in.compare(node, func(c int) bool { return c < 0 })
	case OpGe:
		return in.compare(node, func(c int) bool { return c >= 0 })
	case OpLe:
		return in.compare(node, func(c int) bool { return c <= 0 })
	default:
		return value.Value{}, simerr.New(simerr.Internal, "unknown operator %v", node.Op)
	}
}

func (in *Interpreter) retrieve(ref ecs.AttributeRef) (value.Value, error) {
	h, err := in.Index.Resolve(in.Store, ref)
	if err != nil {
		return value.Value{}, err
	}
	c, err := in.Store.Get(h)
	if err != nil {
		return value.Value{}, err
	}
	return c.Get(ref.Attribute)
}

func (in *Interpreter) mutate(node *Node) (value.Value, error) {
	src, err := in.Evaluate(node.Children[0])
	if err != nil {
		return value.Value{}, err
	}
	h, err := in.Index.Resolve(in.Store, node.Ref)
	if err != nil {
		return value.Value{}, err
	}
	c, err := in.Store.Get(h)
	if err != nil {
		return value.Value{}, err
	}
	if err := c.Set(node.Ref.Attribute, src); err != nil {
		return value.Value{}, errors.Wrapf(err, "mutating %s.%s on entity %d", node.Ref.Component, node.Ref.Attribute, node.Ref.Entity)
	}
	return value.Value{}, nil
}

func (in *Interpreter) evalSwitch(node *Node) (value.Value, error) {
	condVal, err := in.Evaluate(node.Children[0])
	if err != nil {
		return value.Value{}, err
	}
	cond, err := value.GetBool(condVal)
	if err != nil {
		return value.Value{}, err
	}
	if cond {
		return in.Evaluate(node.Children[1])
	}
	return in.Evaluate(node.Children[2])
}

func (in *Interpreter) evalChildren2(node *Node) (value.Value, value.Value, error) {
	x, err := in.Evaluate(node.Children[0])
	if err != nil {
		return value.Value{}, value.Value{}, err
	}
	y, err := in.Evaluate(node.Children[1])
	if err != nil {
		return value.Value{}, value.Value{}, err
	}
	return x, y, nil
}

func (in *Interpreter) binaryNumeric(node *Node, ops value.BinaryNumeric) (value.Value, error) {
	x, y, err := in.evalChildren2(node)
	if err != nil {
		return value.Value{}, err
	}
	return value.ApplyBinaryNumeric(x, y, ops)
}

func (in *Interpreter) binaryNumericValues(node *Node, f func(x, y value.Value) (value.Value, error)) (value.Value, error) {
	x, y, err := in.evalChildren2(node)
	if err != nil {
		return value.Value{}, err
	}
	return f(x, y)
}

func (in *Interpreter) boolBinary(node *Node, f func(a, b bool) bool) (value.Value, error) {
	x, y, err := in.evalChildren2(node)
	if err != nil {
		return value.Value{}, err
	}
	a, err := value.GetBool(x)
	if err != nil {
		return value.Value{}, domainErr(err)
	}
	b, err := value.GetBool(y)
	if err != nil {
		return value.Value{}, domainErr(err)
	}
	return value.NewBool(f(a, b)), nil
}

func (in *Interpreter) boolUnary(node *Node) (value.Value, error) {
	x, err := in.Evaluate(node.Children[0])
	if err != nil {
		return value.Value{}, err
	}
	a, err := value.GetBool(x)
	if err != nil {
		return value.Value{}, domainErr(err)
	}
	return value.NewBool(!a), nil
}

// domainErr reclassifies a TypeMismatch as a DomainError: spec §7 assigns
// And/Or/Not and Gt/Lt/Ge/Le's non-bool/non-numeric operand failures to
// DomainError specifically, distinct from the TypeMismatch that
// value.GetBool naturally raises.
func domainErr(err error) error {
	if simerr.Of(err, simerr.TypeMismatch) {
		return simerr.Wrap(err, simerr.DomainError, "%s", err.Error())
	}
	return err
}
