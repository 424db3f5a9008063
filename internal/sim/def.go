// Package sim assembles the ECS store, index, and graph interpreter into a
// single simulation object and implements its Draft/Locked lifecycle (spec
// §4.5, §4.6).
package sim

import (
	"github.com/joeltio/simforge/internal/ecs"
	"github.com/joeltio/simforge/internal/interp"
	"github.com/joeltio/simforge/internal/value"
)

// ComponentDef aliases the ECS layer's component schema so callers assembling
// a SimulationDef don't need to import two packages for one concept.
type ComponentDef = ecs.ComponentDef

// EntityDef describes one entity to materialize: an optional pre-existing
// id (0 means "assign a fresh one") and, per attached component type, the
// attribute values that override that component's zero-initialized state
// (spec §4.5 step 3).
type EntityDef struct {
	ID         ecs.EntityID
	Components map[string]map[string]value.Value
}

// SystemDef describes one system: an optional pre-existing id (0 means
// "assign the next ascending one", mirroring EntityDef.ID), a name (for
// logging/diagnostics), and the graph run once per Step, in ascending id
// order (spec §4.6).
type SystemDef struct {
	ID    int64
	Name  string
	Graph *interp.Graph
}

// SimulationDef is the wire-level shape a caller submits to ApplySimulation:
// the complete set of component schemas, entities, and systems, and an
// optional one-shot initialization graph (spec §4.5, §6). Each Apply
// replaces any previously applied def wholesale.
type SimulationDef struct {
	Components []*ComponentDef
	Entities   []EntityDef
	Systems    []SystemDef
	Init       *interp.Graph
}

// System is an installed system: its assigned id, name, and graph.
type System struct {
	ID    int64
	Name  string
	Graph *interp.Graph
}
