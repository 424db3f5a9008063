// Package service is the simulation engine's request/response facade: a
// process-global registry of named simulations, exposed through the
// EngineService interface (spec §4.7, §6).
package service

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/joeltio/simforge/internal/ecs"
	"github.com/joeltio/simforge/internal/sim"
	"github.com/joeltio/simforge/internal/simerr"
	"github.com/joeltio/simforge/internal/value"
)

// buildID is set by a linker flag (e.g. -ldflags "-X ...service.buildID=...").
var buildID = "dev"

// EngineService is the engine's external surface (spec §4.7, §6): create,
// list, inspect, step, and drop simulations, and read/write individual
// attributes between steps.
type EngineService interface {
	ApplySimulation(name string, def *sim.SimulationDef) (*sim.SimulationDef, error)
	GetSimulation(name string) (*sim.SimulationDef, error)
	ListSimulation() []string
	DropSimulation(name string) error
	StepSimulation(name string) error
	GetAttribute(name string, ref ecs.AttributeRef) (value.Value, error)
	SetAttribute(name string, ref ecs.AttributeRef, v value.Value) error
	GetVersion() string
}

// Registry is the process-global home for every named simulation (spec §5,
// §6). It guards the name->simulation map with a sync.RWMutex; each
// *sim.Simulation additionally serializes its own operations, so a
// Registry's methods may be called concurrently by multiple callers without
// two operations ever interleaving on the same simulation.
type Registry struct {
	log *zap.Logger

	mu   sync.RWMutex
	sims map[string]*sim.Simulation
}

// NewRegistry constructs an empty registry. log must not be nil; use
// zap.NewNop() in tests that don't care about log output.
func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{log: log, sims: make(map[string]*sim.Simulation)}
}

var _ EngineService = (*Registry)(nil)

// ApplySimulation replaces whatever simulation is currently registered
// under name with a fresh one built from def (spec §4.6: "Draft → Draft on
// ApplySimulation (overwrites def)"; §4.7: "else replace entry"). A locked
// (already-stepped) entry rejects the call with AlreadyExists instead of
// being replaced. The returned def is the same def, with every id filled
// in, echoed back to the caller (spec §6).
func (r *Registry) ApplySimulation(name string, def *sim.SimulationDef) (*sim.SimulationDef, error) {
	reqID := uuid.NewString()
	log := r.log.With(zap.String("request_id", reqID), zap.String("simulation", name))

	r.mu.Lock()
	if existing, ok := r.sims[name]; ok && existing.Locked() {
		r.mu.Unlock()
		err := simerr.New(simerr.AlreadyExists, "simulation %q is locked; no further ApplySimulation calls are accepted", name)
		logFailure(log, "ApplySimulation", err)
		return nil, toStatus(err)
	}
	s := sim.New()
	r.sims[name] = s
	r.mu.Unlock()

	applied, err := s.Apply(def)
	if err != nil {
		logFailure(log, "ApplySimulation", err)
		return nil, toStatus(err)
	}
	log.Info("ApplySimulation ok")
	return applied, nil
}

// GetSimulation returns the most recently applied def for name, with every
// id filled in (spec §6).
func (r *Registry) GetSimulation(name string) (*sim.SimulationDef, error) {
	s, err := r.lookup(name)
	if err != nil {
		return nil, toStatus(err)
	}
	def, err := s.Def()
	if err != nil {
		return nil, toStatus(err)
	}
	return def, nil
}

func (r *Registry) ListSimulation() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.sims))
	for name := range r.sims {
		names = append(names, name)
	}
	return names
}

func (r *Registry) DropSimulation(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sims[name]; !ok {
		return toStatus(simerr.New(simerr.NotFound, "no such simulation %q", name))
	}
	delete(r.sims, name)
	r.log.Info("DropSimulation ok", zap.String("simulation", name))
	return nil
}

func (r *Registry) StepSimulation(name string) error {
	log := r.log.With(zap.String("simulation", name))
	s, err := r.lookup(name)
	if err != nil {
		return toStatus(err)
	}
	if err := s.Step(); err != nil {
		logFailure(log, "StepSimulation", err)
		return toStatus(err)
	}
	log.Info("StepSimulation ok")
	return nil
}

func (r *Registry) GetAttribute(name string, ref ecs.AttributeRef) (value.Value, error) {
	s, err := r.lookup(name)
	if err != nil {
		return value.Value{}, toStatus(err)
	}
	v, err := s.GetAttribute(ref)
	if err != nil {
		logFailure(r.log.With(zap.String("simulation", name)), "GetAttribute", err)
		return value.Value{}, toStatus(err)
	}
	return v, nil
}

func (r *Registry) SetAttribute(name string, ref ecs.AttributeRef, v value.Value) error {
	s, err := r.lookup(name)
	if err != nil {
		return toStatus(err)
	}
	if err := s.SetAttribute(ref, v); err != nil {
		logFailure(r.log.With(zap.String("simulation", name)), "SetAttribute", err)
		return toStatus(err)
	}
	return nil
}

// GetVersion returns the build id baked in at link time.
func (r *Registry) GetVersion() string {
	return buildID
}

func (r *Registry) lookup(name string) (*sim.Simulation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sims[name]
	if !ok {
		return nil, simerr.New(simerr.NotFound, "no such simulation %q", name)
	}
	return s, nil
}

// logFailure records an engine-level failure with the offending system id
// when the interpreter attached one (spec §7, SPEC_FULL §6.1).
func logFailure(log *zap.Logger, op string, err error) {
	var se *simerr.Error
	if ok := simerr.As(err, &se); ok && se.SystemID != nil {
		log.Error(op+" failed", zap.Error(err), zap.Int64p("system_id", se.SystemID))
		return
	}
	log.Error(op+" failed", zap.Error(err))
}

// toStatus maps a simerr.Kind onto the gRPC status code spec §6/§7's
// failure codes literally name, so that a future gRPC transport only needs
// to call status.FromError on what this facade already returns.
func toStatus(err error) error {
	var se *simerr.Error
	if !simerr.As(err, &se) {
		return status.Error(codes.Internal, err.Error())
	}
	var code codes.Code
	switch se.Kind {
	case simerr.NotFound:
		code = codes.NotFound
	case simerr.AlreadyExists:
		code = codes.AlreadyExists
	case simerr.TypeMismatch, simerr.DomainError, simerr.SchemaViolation:
		code = codes.InvalidArgument
	case simerr.AttrNotFound:
		code = codes.NotFound
	default:
		code = codes.Internal
	}
	return status.Error(code, se.Error())
}
