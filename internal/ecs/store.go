package ecs

// Store is the heterogeneous collection of component pools, keyed by
// type_index (spec §3, §4.3). Each pool is exclusively owned by the store;
// a pool is created lazily on first insertion of its type.
type Store struct {
	pools map[TypeIndex]*Pool
}

// NewStore constructs an empty component store.
func NewStore() *Store {
	return &Store{pools: make(map[TypeIndex]*Pool)}
}

// Add inserts c into the pool for typeIdx (creating the pool if this is
// its first component) and returns the resulting handle.
func (s *Store) Add(c UserComponent, typeIdx TypeIndex) CompStoreId {
	pool := s.poolFor(typeIdx)
	id := pool.Add(c)
	return CompStoreId{TypeIndex: typeIdx, SlotID: id}
}

// Get returns a pointer to the live component named by h, or NotFound.
func (s *Store) Get(h CompStoreId) (*UserComponent, error) {
	pool, ok := s.pools[h.TypeIndex]
	if !ok {
		return nil, notFoundSlot(h.SlotID)
	}
	return pool.Get(h.SlotID)
}

// Remove deletes the live component named by h.
func (s *Store) Remove(h CompStoreId) error {
	pool, ok := s.pools[h.TypeIndex]
	if !ok {
		return notFoundSlot(h.SlotID)
	}
	return pool.Remove(h.SlotID)
}

// Pool returns the pool for a type index, creating it if absent. Exposed
// so the index store can iterate all live handles of a given type without
// the store needing to know about indexing concerns.
func (s *Store) Pool(typeIdx TypeIndex) *Pool {
	return s.poolFor(typeIdx)
}

// AllLive calls fn for every live handle across every pool in the store.
// Within one pool handles come in dense order; the order of pools follows
// Go's map iteration over type_index and is not defined. Iteration stops
// early if fn returns false.
func (s *Store) AllLive(fn func(h CompStoreId, c *UserComponent) bool) {
	for typeIdx, pool := range s.pools {
		cont := true
		pool.IterLive(func(id SlotID, c *UserComponent) bool {
			if !fn(CompStoreId{TypeIndex: typeIdx, SlotID: id}, c) {
				cont = false
				return false
			}
			return true
		})
		if !cont {
			return
		}
	}
}

func (s *Store) poolFor(typeIdx TypeIndex) *Pool {
	pool, ok := s.pools[typeIdx]
	if !ok {
		pool = NewPool()
		s.pools[typeIdx] = pool
	}
	return pool
}
