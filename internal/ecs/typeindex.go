package ecs

// TypeRegistry assigns stable, small integer indices to component-type
// names (spec §3, §4.4).
type TypeRegistry struct {
	nextIdx TypeIndex
	byName  map[string]TypeIndex
}

// NewTypeRegistry constructs an empty component-type registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{byName: make(map[string]TypeIndex)}
}

// AddType returns the index for name, assigning a fresh one if name
// hasn't been seen before. Idempotent.
func (r *TypeRegistry) AddType(name string) TypeIndex {
	if idx, ok := r.byName[name]; ok {
		return idx
	}
	r.nextIdx++
	idx := r.nextIdx
	r.byName[name] = idx
	return idx
}

// GetType returns the index assigned to name, if any.
func (r *TypeRegistry) GetType(name string) (TypeIndex, bool) {
	idx, ok := r.byName[name]
	return idx, ok
}

// HasType reports whether name has been registered.
func (r *TypeRegistry) HasType(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// FilterByType returns a predicate selecting handles whose TypeIndex
// matches name's assigned index (spec §4.4). If name is unregistered, the
// predicate rejects everything.
func (r *TypeRegistry) FilterByType(name string) func(CompStoreId) bool {
	idx, ok := r.byName[name]
	if !ok {
		return func(CompStoreId) bool { return false }
	}
	return func(h CompStoreId) bool { return h.TypeIndex == idx }
}
