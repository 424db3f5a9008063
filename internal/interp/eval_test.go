package interp_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeltio/simforge/internal/ecs"
	"github.com/joeltio/simforge/internal/interp"
	"github.com/joeltio/simforge/internal/simerr"
	"github.com/joeltio/simforge/internal/value"
)

func newFixture(t *testing.T) (*ecs.Store, *ecs.IndexStore, ecs.EntityID, ecs.AttributeRef) {
	t.Helper()
	store := ecs.NewStore()
	idx := ecs.NewIndexStore()
	def := &ecs.ComponentDef{Name: "Pos", Schema: map[string]value.Type{
		"x": value.Primitive(value.Int64),
	}}
	typeIdx := idx.Types.AddType("Pos")
	entity := idx.Entities.NewEntity()
	h := store.Add(ecs.NewUserComponent(def), typeIdx)
	idx.Entities.Attach(entity, h)
	ref := ecs.AttributeRef{Component: "Pos", Entity: entity, Attribute: "x"}
	return store, idx, entity, ref
}

func TestMutateThenRetrieve(t *testing.T) {
	store, idx, _, ref := newFixture(t)
	in := interp.New(store, idx)

	err := in.RunGraph(&interp.Graph{Outputs: []*interp.Node{
		interp.Mutate(ref, interp.Const(value.NewInt64(42))),
	}})
	require.NoError(t, err)

	got, err := in.Evaluate(interp.Retrieve(ref))
	require.NoError(t, err)
	v, err := value.GetInt64(got)
	require.NoError(t, err)
	assert.EqualValues(t, 42, v)
}

func TestRunGraphAbortsOnFirstFailureNoRollback(t *testing.T) {
	store, idx, _, ref := newFixture(t)
	in := interp.New(store, idx)

	bad := ecs.AttributeRef{Component: "Pos", Entity: ref.Entity, Attribute: "nope"}
	err := in.RunGraph(&interp.Graph{Outputs: []*interp.Node{
		interp.Mutate(ref, interp.Const(value.NewInt64(7))),
		interp.Mutate(bad, interp.Const(value.NewInt64(1))),
	}})
	require.Error(t, err)

	got, err := in.Evaluate(interp.Retrieve(ref))
	require.NoError(t, err)
	v, _ := value.GetInt64(got)
	assert.EqualValues(t, 7, v, "the first Mutate is not rolled back")
}

func TestDivIntegerTruncatesTowardZero(t *testing.T) {
	store, idx, _, _ := newFixture(t)
	in := interp.New(store, idx)
	got, err := in.Evaluate(interp.Binary(interp.OpDiv, interp.Const(value.NewInt32(-7)), interp.Const(value.NewInt32(2))))
	require.NoError(t, err)
	v, _ := value.GetInt32(got)
	assert.EqualValues(t, -3, v)
}

func TestDivIntegerByZeroIsDomainError(t *testing.T) {
	store, idx, _, _ := newFixture(t)
	in := interp.New(store, idx)
	_, err := in.Evaluate(interp.Binary(interp.OpDiv, interp.Const(value.NewInt64(1)), interp.Const(value.NewInt64(0))))
	require.Error(t, err)
	assert.True(t, simerr.Of(err, simerr.DomainError))
}

func TestModFollowsDividendSign(t *testing.T) {
	store, idx, _, _ := newFixture(t)
	in := interp.New(store, idx)
	got, err := in.Evaluate(interp.Binary(interp.OpMod, interp.Const(value.NewInt32(-7)), interp.Const(value.NewInt32(3))))
	require.NoError(t, err)
	v, _ := value.GetInt32(got)
	assert.EqualValues(t, -1, v)
}

func TestModRejectsFloatOperands(t *testing.T) {
	store, idx, _, _ := newFixture(t)
	in := interp.New(store, idx)
	_, err := in.Evaluate(interp.Binary(interp.OpMod, interp.Const(value.NewFloat64(1.5)), interp.Const(value.NewInt64(2))))
	require.Error(t, err)
	assert.True(t, simerr.Of(err, simerr.DomainError))
}

func TestArcSinWithinDomain(t *testing.T) {
	store, idx, _, _ := newFixture(t)
	in := interp.New(store, idx)
	got, err := in.Evaluate(interp.Unary(interp.OpArcSin, interp.Const(value.NewFloat64(1.0))))
	require.NoError(t, err)
	v, _ := value.GetFloat64(got)
	assert.InDelta(t, math.Pi/2, v, 1e-9)
}

func TestArcSinOutsideDomainFails(t *testing.T) {
	store, idx, _, _ := newFixture(t)
	in := interp.New(store, idx)
	_, err := in.Evaluate(interp.Unary(interp.OpArcSin, interp.Const(value.NewFloat64(2.0))))
	require.Error(t, err)
	assert.True(t, simerr.Of(err, simerr.DomainError))
}

func TestRandomEqualBoundsReturnsExactValue(t *testing.T) {
	store, idx, _, _ := newFixture(t)
	in := interp.New(store, idx)
	in.Rand = rand.New(rand.NewSource(1))
	got, err := in.Evaluate(interp.Random(interp.Const(value.NewFloat64(5.0)), interp.Const(value.NewFloat64(5.0))))
	require.NoError(t, err)
	v, _ := value.GetFloat64(got)
	assert.Equal(t, 5.0, v)
}

func TestRandomRejectsIntegerBounds(t *testing.T) {
	store, idx, _, _ := newFixture(t)
	in := interp.New(store, idx)
	_, err := in.Evaluate(interp.Random(interp.Const(value.NewInt32(0)), interp.Const(value.NewInt32(1))))
	require.Error(t, err)
	assert.True(t, simerr.Of(err, simerr.DomainError))
}

func TestMaxMinPromoteAcrossTags(t *testing.T) {
	store, idx, _, _ := newFixture(t)
	in := interp.New(store, idx)
	got, err := in.Evaluate(interp.Binary(interp.OpMax, interp.Const(value.NewInt32(3)), interp.Const(value.NewInt64(9))))
	require.NoError(t, err)
	assert.Equal(t, value.Int64, got.Declared().Tag)
	v, _ := value.GetInt64(got)
	assert.EqualValues(t, 9, v)
}

func TestEqNumericCrossTag(t *testing.T) {
	store, idx, _, _ := newFixture(t)
	in := interp.New(store, idx)
	got, err := in.Evaluate(interp.Binary(interp.OpEq, interp.Const(value.NewInt32(5)), interp.Const(value.NewInt64(5))))
	require.NoError(t, err)
	b, _ := value.GetBool(got)
	assert.True(t, b)
}

func TestEqRejectsMismatchedNonNumericTags(t *testing.T) {
	store, idx, _, _ := newFixture(t)
	in := interp.New(store, idx)
	_, err := in.Evaluate(interp.Binary(interp.OpEq, interp.Const(value.NewBool(true)), interp.Const(value.NewString("true"))))
	require.Error(t, err)
	assert.True(t, simerr.Of(err, simerr.TypeMismatch))
}

func TestSwitchEvaluatesOnlyChosenBranch(t *testing.T) {
	store, idx, _, ref := newFixture(t)
	in := interp.New(store, idx)
	bad := ecs.AttributeRef{Component: "Pos", Entity: ref.Entity, Attribute: "nope"}
	got, err := in.Evaluate(interp.Switch(
		interp.Const(value.NewBool(true)),
		interp.Const(value.NewInt64(1)),
		interp.Retrieve(bad), // would error if evaluated
	))
	require.NoError(t, err)
	v, _ := value.GetInt64(got)
	assert.EqualValues(t, 1, v)
}

func TestAndOrNotDomainErrorOnNonBool(t *testing.T) {
	store, idx, _, _ := newFixture(t)
	in := interp.New(store, idx)
	_, err := in.Evaluate(interp.Binary(interp.OpAnd, interp.Const(value.NewInt32(1)), interp.Const(value.NewBool(true))))
	require.Error(t, err)
	assert.True(t, simerr.Of(err, simerr.DomainError))
}

func TestCompareRejectsNonNumeric(t *testing.T) {
	store, idx, _, _ := newFixture(t)
	in := interp.New(store, idx)
	_, err := in.Evaluate(interp.Binary(interp.OpGt, interp.Const(value.NewString("a")), interp.Const(value.NewString("b"))))
	require.Error(t, err)
	assert.True(t, simerr.Of(err, simerr.DomainError))
}
