package ecs

import "github.com/joeltio/simforge/internal/simerr"

// IndexStore bundles the entity index and the component-type index (spec
// §3, §4.4): the two lookup structures the graph interpreter needs to turn
// an AttributeRef into a concrete store slot.
type IndexStore struct {
	Entities *EntityIndex
	Types    *TypeRegistry
}

// NewIndexStore constructs an empty IndexStore.
func NewIndexStore() *IndexStore {
	return &IndexStore{Entities: NewEntityIndex(), Types: NewTypeRegistry()}
}

// AttributeRef names a single mutable value slot: a component type name, an
// entity id, and an attribute name within that component (spec §4.4).
type AttributeRef struct {
	Component string
	Entity    EntityID
	Attribute string
}

// Resolve finds the unique live component of AttributeRef.Component
// attached to AttributeRef.Entity and returns a handle to it, per spec
// §4.4: "form the set of all live handles in the component store;
// intersect with filter_by_type(component_name) and
// filter_by_entity(entity_id); if cardinality != 1, fail".
func (idx *IndexStore) Resolve(store *Store, ref AttributeRef) (CompStoreId, error) {
	typeIdx, ok := idx.Types.GetType(ref.Component)
	if !ok {
		return CompStoreId{}, simerr.New(simerr.AttrNotFound, "unknown component type %q", ref.Component)
	}
	byEntity := idx.Entities.FilterByEntity(ref.Entity)

	var found []CompStoreId
	store.Pool(typeIdx).IterLive(func(id SlotID, _ *UserComponent) bool {
		h := CompStoreId{TypeIndex: typeIdx, SlotID: id}
		if byEntity(h) {
			found = append(found, h)
		}
		return true
	})

	switch len(found) {
	case 0:
		return CompStoreId{}, simerr.New(simerr.AttrNotFound, "no live component %q attached to entity %d", ref.Component, ref.Entity)
	case 1:
		return found[0], nil
	default:
		return CompStoreId{}, simerr.New(simerr.AttrNotFound, "ambiguous: %d live components %q attached to entity %d", len(found), ref.Component, ref.Entity)
	}
}
