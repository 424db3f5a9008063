// Package interp implements the graph interpreter: a recursive, eager,
// depth-first evaluator over trees of typed operators that read and write
// the ECS store (spec §4.6).
package interp

import (
	"github.com/joeltio/simforge/internal/ecs"
	"github.com/joeltio/simforge/internal/value"
)

// Op identifies a Node's operator. The set is closed and falls into five
// classes: constants, store access (Retrieve/Mutate), control flow
// (Switch), arithmetic/trig/random, and boolean/comparison (spec §4.6).
type Op int

const (
	OpConst Op = iota
	OpRetrieve
	OpMutate
	OpSwitch
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMax
	OpMin
	OpAbs
	OpFloor
	OpCeil
	OpPow
	OpMod
	OpSin
	OpCos
	OpTan
	OpArcSin
	OpArcCos
	OpArcTan
	OpRandom
	OpAnd
	OpOr
	OpNot
	OpEq
	OpGt
	OpLt
	OpGe
	OpLe
)

func (op Op) String() string {
	switch op {
	case OpConst:
		return "Const"
	case OpRetrieve:
		return "Retrieve"
	case OpMutate:
		return "Mutate"
	case OpSwitch:
		return "Switch"
	case OpAdd:
		return "Add"
	case OpSub:
		return "Sub"
	case OpMul:
		return "Mul"
	case OpDiv:
		return "Div"
	case OpMax:
		return "Max"
	case OpMin:
		return "Min"
	case OpAbs:
		return "Abs"
	case OpFloor:
		return "Floor"
	case OpCeil:
		return "Ceil"
	case OpPow:
		return "Pow"
	case OpMod:
		return "Mod"
	case OpSin:
		return "Sin"
	case OpCos:
		return "Cos"
	case OpTan:
		return "Tan"
	case OpArcSin:
		return "ArcSin"
	case OpArcCos:
		return "ArcCos"
	case OpArcTan:
		return "ArcTan"
	case OpRandom:
		return "Random"
	case OpAnd:
		return "And"
	case OpOr:
		return "Or"
	case OpNot:
		return "Not"
	case OpEq:
		return "Eq"
	case OpGt:
		return "Gt"
	case OpLt:
		return "Lt"
	case OpGe:
		return "Ge"
	case OpLe:
		return "Le"
	default:
		return "Op(?)"
	}
}

// Node is one operator application. Every Node carries exactly one
// operator; Children holds its sub-expressions, whose meaning depends on
// Op:
//
//	Const:            no children; ConstValue holds the result.
//	Retrieve:         no children; Ref names the attribute to read.
//	Mutate:           Children[0] is the source expression; Ref names the
//	                  attribute to write. Output-only: never a subexpression.
//	Switch:           Children[0] cond, [1] true-branch, [2] false-branch.
//	Random:           Children[0] low, [1] high.
//	binary arithmetic/comparison: Children[0] x, [1] y.
//	unary arithmetic/trig/Not:    Children[0] x.
type Node struct {
	Op         Op
	ConstValue value.Value
	Ref        ecs.AttributeRef
	Children   []*Node
}

// Const constructs a Const node.
func Const(v value.Value) *Node { return &Node{Op: OpConst, ConstValue: v} }

// Retrieve constructs a Retrieve node.
func Retrieve(ref ecs.AttributeRef) *Node { return &Node{Op: OpRetrieve, Ref: ref} }

// Mutate constructs a Mutate node; source is fully evaluated before the
// store write (spec §4.6, §5).
func Mutate(ref ecs.AttributeRef, source *Node) *Node {
	return &Node{Op: OpMutate, Ref: ref, Children: []*Node{source}}
}

// Switch constructs a Switch node.
func Switch(cond, whenTrue, whenFalse *Node) *Node {
	return &Node{Op: OpSwitch, Children: []*Node{cond, whenTrue, whenFalse}}
}

// Binary constructs a two-operand arithmetic/comparison node.
func Binary(op Op, x, y *Node) *Node { return &Node{Op: op, Children: []*Node{x, y}} }

// Unary constructs a one-operand arithmetic/trig/Not node.
func Unary(op Op, x *Node) *Node { return &Node{Op: op, Children: []*Node{x}} }

// Random constructs a Random node sampling uniformly in [low, high); when
// low == high it yields exactly low.
func Random(low, high *Node) *Node { return &Node{Op: OpRandom, Children: []*Node{low, high}} }

// Graph is a dataflow graph of Nodes rooted at a list of Mutate outputs
// (spec §4.6, glossary). Inputs is advisory — tooling/dependency-analysis
// metadata that the interpreter does not consult.
type Graph struct {
	Inputs  []*Node
	Outputs []*Node
}
