package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeltio/simforge/internal/ecs"
	"github.com/joeltio/simforge/internal/simerr"
	"github.com/joeltio/simforge/internal/value"
)

func posDef() *ecs.ComponentDef {
	return &ecs.ComponentDef{Name: "Pos", Schema: map[string]value.Type{
		"height": value.Primitive(value.Int64),
	}}
}

func TestResolveUniqueMatch(t *testing.T) {
	store := ecs.NewStore()
	idx := ecs.NewIndexStore()

	typeIdx := idx.Types.AddType("Pos")
	entity := idx.Entities.NewEntity()
	h := store.Add(ecs.NewUserComponent(posDef()), typeIdx)
	idx.Entities.Attach(entity, h)

	got, err := idx.Resolve(store, ecs.AttributeRef{Component: "Pos", Entity: entity, Attribute: "height"})
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestResolveNoMatchIsAttrNotFound(t *testing.T) {
	store := ecs.NewStore()
	idx := ecs.NewIndexStore()
	idx.Types.AddType("Pos")
	entity := idx.Entities.NewEntity()

	_, err := idx.Resolve(store, ecs.AttributeRef{Component: "Pos", Entity: entity, Attribute: "height"})
	require.Error(t, err)
	assert.True(t, simerr.Of(err, simerr.AttrNotFound))
}

func TestResolveAmbiguousIsAttrNotFound(t *testing.T) {
	// S5: two live components of the same type attached to one entity.
	store := ecs.NewStore()
	idx := ecs.NewIndexStore()
	typeIdx := idx.Types.AddType("Pos")
	entity := idx.Entities.NewEntity()

	h1 := store.Add(ecs.NewUserComponent(posDef()), typeIdx)
	h2 := store.Add(ecs.NewUserComponent(posDef()), typeIdx)
	idx.Entities.Attach(entity, h1)
	idx.Entities.Attach(entity, h2)

	_, err := idx.Resolve(store, ecs.AttributeRef{Component: "Pos", Entity: entity, Attribute: "height"})
	require.Error(t, err)
	assert.True(t, simerr.Of(err, simerr.AttrNotFound))
}

func TestAddTypeIdempotent(t *testing.T) {
	r := ecs.NewTypeRegistry()
	a := r.AddType("Pos")
	b := r.AddType("Pos")
	assert.Equal(t, a, b)
}

func TestUserComponentSetSchemaViolation(t *testing.T) {
	c := ecs.NewUserComponent(posDef())
	err := c.Set("width", value.NewInt64(1))
	require.Error(t, err)
	assert.True(t, simerr.Of(err, simerr.SchemaViolation))
}

func TestUserComponentSetCoercesAndGet(t *testing.T) {
	c := ecs.NewUserComponent(posDef())
	require.NoError(t, c.Set("height", value.NewInt32(5)))
	got, err := c.Get("height")
	require.NoError(t, err)
	assert.Equal(t, value.Int64, got.Declared().Tag)
	iv, _ := value.GetInt64(got)
	assert.EqualValues(t, 5, iv)
}
