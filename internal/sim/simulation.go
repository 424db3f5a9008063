package sim

import (
	"errors"
	"sort"
	"sync"

	"github.com/joeltio/simforge/internal/ecs"
	"github.com/joeltio/simforge/internal/interp"
	"github.com/joeltio/simforge/internal/simerr"
	"github.com/joeltio/simforge/internal/value"
)

// Simulation is one running (or still-Draft) simulation: its component
// store, indices, installed systems, and lock state (spec §4.5, §4.6). All
// exported methods take Simulation's own mutex, so a *Simulation may be
// called from multiple goroutines and runs one operation at a time; the
// facade in internal/service relies on this mutex and holds no per-name
// lock of its own (spec §5).
type Simulation struct {
	mu sync.Mutex

	store *ecs.Store
	index *ecs.IndexStore
	eval  *interp.Interpreter

	componentDefs map[string]*ComponentDef
	systems       []System
	nextSystemID  int64

	// appliedDef is the most recently accepted SimulationDef, with every
	// id filled in, so GetSimulation can echo it back (spec §6).
	appliedDef *SimulationDef

	locked bool
}

// New constructs an empty, Draft simulation.
func New() *Simulation {
	store := ecs.NewStore()
	index := ecs.NewIndexStore()
	return &Simulation{
		store:         store,
		index:         index,
		eval:          interp.New(store, index),
		componentDefs: make(map[string]*ComponentDef),
	}
}

// Locked reports whether the simulation has taken its first Step and can no
// longer accept Apply calls (spec §4.6).
func (s *Simulation) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// Apply replaces the simulation's entire definition with def (spec §4.5,
// §4.6: "Draft → Draft on ApplySimulation (overwrites def)"): it discards
// whatever component schemas, entities, and systems were previously
// installed, then registers def's component schemas, installs def's
// entities with their initial attribute values, assigns ascending ids to
// def's systems, and finally runs def.Init once, if present. Newly assigned
// entity and system ids are written back into def itself, so the caller
// receives the same def, now fully populated, as the "echoed" result (spec
// §6). Apply is only valid in the Draft state; once the simulation has
// taken its first Step it is Locked and Apply fails with AlreadyExists
// (spec §4.6).
func (s *Simulation) Apply(def *SimulationDef) (*SimulationDef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked {
		return nil, simerr.New(simerr.AlreadyExists, "simulation is locked; no further ApplySimulation calls are accepted")
	}

	s.store = ecs.NewStore()
	s.index = ecs.NewIndexStore()
	s.eval = interp.New(s.store, s.index)
	s.componentDefs = make(map[string]*ComponentDef, len(def.Components))
	s.systems = nil
	s.nextSystemID = 0

	for _, cd := range def.Components {
		s.index.Types.AddType(cd.Name)
		s.componentDefs[cd.Name] = cd
	}

	var ids []ecs.EntityID
	for _, ed := range def.Entities {
		if ed.ID != 0 {
			ids = append(ids, ed.ID)
		}
	}
	s.index.Entities.SetEntityIDs(ids)

	for i := range def.Entities {
		ed := &def.Entities[i]
		if ed.ID == 0 {
			ed.ID = s.index.Entities.NewEntity()
		}
		for compName, overrides := range ed.Components {
			if err := s.attachComponent(ed.ID, compName, overrides); err != nil {
				return nil, err
			}
		}
	}

	for _, sd := range def.Systems {
		if sd.ID > s.nextSystemID {
			s.nextSystemID = sd.ID
		}
	}
	for i := range def.Systems {
		sd := &def.Systems[i]
		if sd.ID == 0 {
			s.nextSystemID++
			sd.ID = s.nextSystemID
		}
		s.systems = append(s.systems, System{ID: sd.ID, Name: sd.Name, Graph: sd.Graph})
	}

	s.appliedDef = def

	if def.Init != nil {
		if err := s.eval.RunGraph(def.Init); err != nil {
			return nil, err
		}
	}

	return def, nil
}

// Def returns the most recently applied SimulationDef, with every id
// filled in, for GetSimulation to echo back (spec §6).
func (s *Simulation) Def() (*SimulationDef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appliedDef == nil {
		return nil, simerr.New(simerr.NotFound, "simulation has no applied definition yet")
	}
	return s.appliedDef, nil
}

func (s *Simulation) attachComponent(id ecs.EntityID, compName string, overrides map[string]value.Value) error {
	cdef, ok := s.componentDefs[compName]
	if !ok {
		return simerr.New(simerr.NotFound, "unknown component type %q", compName)
	}
	typeIdx, _ := s.index.Types.GetType(compName)

	uc := ecs.NewUserComponent(cdef)
	for attr, v := range overrides {
		if err := uc.Set(attr, v); err != nil {
			return err
		}
	}
	h := s.store.Add(uc, typeIdx)
	s.index.Entities.Attach(id, h)
	return nil
}

// Step runs every installed system's graph once, in ascending system.id
// order (spec §4.6). The first call to Step locks the simulation, so
// further Apply calls fail with AlreadyExists; subsequent Step calls remain
// valid. A system that fails aborts the step immediately — later systems in
// the same Step do not run — and the returned error is annotated with the
// offending system's id (spec §7).
func (s *Simulation) Step() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.locked = true

	sorted := append([]System(nil), s.systems...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, sys := range sorted {
		if err := s.eval.RunGraph(sys.Graph); err != nil {
			return withSystemID(err, sys.ID)
		}
	}
	return nil
}

// GetAttribute evaluates a Retrieve against the live store (used by the
// service facade's GetAttribute RPC).
func (s *Simulation) GetAttribute(ref ecs.AttributeRef) (value.Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eval.Evaluate(interp.Retrieve(ref))
}

// SetAttribute writes v into ref via the same Mutate path the interpreter
// uses internally, so it benefits from the same implicit coercion rules
// (spec §4.1, §8 property 4).
func (s *Simulation) SetAttribute(ref ecs.AttributeRef, v value.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.eval.Evaluate(interp.Mutate(ref, interp.Const(v)))
	return err
}

func withSystemID(err error, id int64) error {
	var se *simerr.Error
	if errors.As(err, &se) {
		return se.WithSystem(id)
	}
	return simerr.Wrap(err, simerr.Internal, "system %d failed: %s", id, err).WithSystem(id)
}

