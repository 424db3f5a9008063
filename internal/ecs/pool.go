package ecs

import "github.com/joeltio/simforge/internal/simerr"

// SlotID is a per-pool, monotonically assigned identifier for one
// component instance. SlotIDs are never reused, even when the dense cell
// backing them is recycled after removal (spec §4.2).
type SlotID uint64

// Pool is a dense, per-component-type store of UserComponents (spec §4.2).
// All component instances share the same Go representation (UserComponent),
// so — unlike the teacher's type-erased, unsafe-pointer-walked pools — a
// single concrete Pool type serves every component type in the simulation;
// heterogeneity only shows up one level up, in Store, which keys a Pool per
// type_index.
type Pool struct {
	bySlot   map[SlotID]int // live slot_id -> dense index
	dense    []UserComponent
	slotOf   []SlotID // dense index -> slot_id, for IterLive
	active   []bool
	freeList []int // tombstone queue of reusable dense indices
	nextID   SlotID
}

// NewPool constructs an empty component pool.
func NewPool() *Pool {
	return &Pool{bySlot: make(map[SlotID]int)}
}

// Add inserts a live component and returns its fresh slot id. A freed dense
// index is reused if one is queued; otherwise the pool grows.
func (p *Pool) Add(c UserComponent) SlotID {
	p.nextID++
	id := p.nextID

	var idx int
	if n := len(p.freeList); n > 0 {
		idx = p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		p.dense[idx] = c
		p.slotOf[idx] = id
		p.active[idx] = true
	} else {
		idx = len(p.dense)
		p.dense = append(p.dense, c)
		p.slotOf = append(p.slotOf, id)
		p.active = append(p.active, true)
	}
	p.bySlot[id] = idx
	return id
}

// Remove marks a slot dead and enqueues its dense index for reuse. The
// slot id becomes unreachable: subsequent Get/Remove calls fail NotFound.
func (p *Pool) Remove(id SlotID) error {
	idx, ok := p.liveIndex(id)
	if !ok {
		return notFoundSlot(id)
	}
	p.active[idx] = false
	p.freeList = append(p.freeList, idx)
	delete(p.bySlot, id)
	return nil
}

// Get returns a pointer to the live component at id, or NotFound.
func (p *Pool) Get(id SlotID) (*UserComponent, error) {
	idx, ok := p.liveIndex(id)
	if !ok {
		return nil, notFoundSlot(id)
	}
	return &p.dense[idx], nil
}

// Len returns the number of live slots.
func (p *Pool) Len() int {
	return len(p.bySlot)
}

// IterLive calls fn for every live (slot_id, component) pair in dense
// order. Iteration stops early if fn returns false.
func (p *Pool) IterLive(fn func(id SlotID, c *UserComponent) bool) {
	for idx := range p.dense {
		if !p.active[idx] {
			continue
		}
		if !fn(p.slotOf[idx], &p.dense[idx]) {
			return
		}
	}
}

func (p *Pool) liveIndex(id SlotID) (int, bool) {
	idx, ok := p.bySlot[id]
	if !ok || !p.active[idx] {
		return 0, false
	}
	return idx, true
}

func notFoundSlot(id SlotID) error {
	return simerr.New(simerr.NotFound, "component slot %d not found or removed", id)
}
