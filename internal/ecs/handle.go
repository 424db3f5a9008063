package ecs

// TypeIndex is a small integer assigned by the component-type index,
// stable for the lifetime of an IndexStore (spec §4.4).
type TypeIndex int

// CompStoreId is an opaque, non-owning handle to one live component: a
// (type_index, slot_id) pair (spec §3). Lookups against a dead or absent
// referent fail; CompStoreId itself carries no liveness guarantee.
type CompStoreId struct {
	TypeIndex TypeIndex
	SlotID    SlotID
}
