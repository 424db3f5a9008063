package ecs

import (
	"github.com/joeltio/simforge/internal/simerr"
	"github.com/joeltio/simforge/internal/value"
)

// ComponentDef describes a named component schema: a mapping from
// attribute name to declared type (spec §3).
type ComponentDef struct {
	Name   string
	Schema map[string]value.Type
}

// UserComponent is one component instance: a type name, the schema it was
// created from, and a map of attribute values (spec §3). Every key in
// Values must be a key in Def.Schema, and every Values[k] must carry
// declared type Def.Schema[k] after coercion.
type UserComponent struct {
	TypeName string
	Def      *ComponentDef
	Values   map[string]value.Value
}

// NewUserComponent materializes a component instance with every schema
// attribute set to its zero value (spec §4.5, step 3).
func NewUserComponent(def *ComponentDef) UserComponent {
	values := make(map[string]value.Value, len(def.Schema))
	for name, t := range def.Schema {
		values[name] = value.Zero(t)
	}
	return UserComponent{TypeName: def.Name, Def: def, Values: values}
}

// Get returns the current value of an attribute, or AttrNotFound if the
// attribute is not in the component's schema.
func (c *UserComponent) Get(attr string) (value.Value, error) {
	v, ok := c.Values[attr]
	if !ok {
		return value.Value{}, simerr.New(simerr.AttrNotFound, "component %s has no attribute %q", c.TypeName, attr)
	}
	return v, nil
}

// Set assigns v into the named attribute, coercing it to the schema's
// declared type for that attribute (spec §4.1). It rejects attributes
// outside the component's schema with SchemaViolation (spec §7).
func (c *UserComponent) Set(attr string, v value.Value) error {
	declared, ok := c.Def.Schema[attr]
	if !ok {
		return simerr.New(simerr.SchemaViolation, "attribute %q is not part of component %s's schema", attr, c.TypeName)
	}
	coerced, err := value.CoerceTo(declared, v)
	if err != nil {
		return err
	}
	c.Values[attr] = coerced
	return nil
}
