package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/joeltio/simforge/internal/ecs"
	"github.com/joeltio/simforge/internal/interp"
	"github.com/joeltio/simforge/internal/service"
	"github.com/joeltio/simforge/internal/sim"
	"github.com/joeltio/simforge/internal/value"
)

func counterDef() *sim.ComponentDef {
	return &sim.ComponentDef{Name: "Counter", Schema: map[string]value.Type{
		"count": value.Primitive(value.Int64),
	}}
}

func newRegistry() *service.Registry {
	return service.NewRegistry(zap.NewNop())
}

func TestApplyCreatesAndListsSimulation(t *testing.T) {
	r := newRegistry()
	_, err := r.ApplySimulation("demo", &sim.SimulationDef{Components: []*sim.ComponentDef{counterDef()}})
	require.NoError(t, err)
	assert.Equal(t, []string{"demo"}, r.ListSimulation())

	def, err := r.GetSimulation("demo")
	require.NoError(t, err)
	assert.Equal(t, "Counter", def.Components[0].Name)
}

// Property 6: ApplySimulation echoes the def back with assigned ids, and a
// later GetSimulation returns the same materialized def.
func TestApplySimulationEchoesAssignedIds(t *testing.T) {
	r := newRegistry()
	applied, err := r.ApplySimulation("demo", &sim.SimulationDef{
		Components: []*sim.ComponentDef{counterDef()},
		Entities: []sim.EntityDef{{
			Components: map[string]map[string]value.Value{"Counter": {"count": value.NewInt64(0)}},
		}},
		Systems: []sim.SystemDef{{Name: "noop", Graph: &interp.Graph{}}},
	})
	require.NoError(t, err)
	require.Len(t, applied.Entities, 1)
	assert.NotZero(t, applied.Entities[0].ID)
	require.Len(t, applied.Systems, 1)
	assert.NotZero(t, applied.Systems[0].ID)

	got, err := r.GetSimulation("demo")
	require.NoError(t, err)
	assert.Equal(t, applied.Entities[0].ID, got.Entities[0].ID)
	assert.Equal(t, applied.Systems[0].ID, got.Systems[0].ID)
}

// Property 7: re-applying on a draft replaces the entry instead of
// accumulating entities across calls.
func TestApplySimulationReplacesRatherThanMerges(t *testing.T) {
	r := newRegistry()
	_, err := r.ApplySimulation("demo", &sim.SimulationDef{
		Components: []*sim.ComponentDef{counterDef()},
		Entities: []sim.EntityDef{{
			Components: map[string]map[string]value.Value{"Counter": {"count": value.NewInt64(0)}},
		}},
	})
	require.NoError(t, err)

	applied, err := r.ApplySimulation("demo", &sim.SimulationDef{
		Components: []*sim.ComponentDef{counterDef()},
		Entities: []sim.EntityDef{{
			Components: map[string]map[string]value.Value{"Counter": {"count": value.NewInt64(0)}},
		}},
	})
	require.NoError(t, err)
	assert.Len(t, applied.Entities, 1, "second ApplySimulation must replace, not append to, the first")
	assert.EqualValues(t, 1, applied.Entities[0].ID, "a replaced simulation assigns entity ids from 1 again")
}

func TestGetSimulationUnknownIsNotFoundStatus(t *testing.T) {
	r := newRegistry()
	_, err := r.GetSimulation("nope")
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

// S3: once locked, a second ApplySimulation call is rejected.
func TestApplyAfterStepIsAlreadyExistsStatus(t *testing.T) {
	r := newRegistry()
	_, err := r.ApplySimulation("demo", &sim.SimulationDef{Components: []*sim.ComponentDef{counterDef()}})
	require.NoError(t, err)
	require.NoError(t, r.StepSimulation("demo"))

	_, err = r.ApplySimulation("demo", &sim.SimulationDef{Components: []*sim.ComponentDef{counterDef()}})
	require.Error(t, err)
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
}

// S6: dropping a simulation frees its resources — a later lookup fails.
func TestDropThenLookupFails(t *testing.T) {
	r := newRegistry()
	_, err := r.ApplySimulation("demo", &sim.SimulationDef{})
	require.NoError(t, err)
	require.NoError(t, r.DropSimulation("demo"))

	_, err = r.GetSimulation("demo")
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.NotContains(t, r.ListSimulation(), "demo")
}

func TestDropUnknownIsNotFoundStatus(t *testing.T) {
	r := newRegistry()
	err := r.DropSimulation("nope")
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestSetAndGetAttributeRoundTrip(t *testing.T) {
	r := newRegistry()
	applied, err := r.ApplySimulation("demo", &sim.SimulationDef{
		Components: []*sim.ComponentDef{counterDef()},
		Entities: []sim.EntityDef{{
			Components: map[string]map[string]value.Value{"Counter": {"count": value.NewInt64(0)}},
		}},
	})
	require.NoError(t, err)
	ref := ecs.AttributeRef{Component: "Counter", Entity: applied.Entities[0].ID, Attribute: "count"}

	require.NoError(t, r.SetAttribute("demo", ref, value.NewInt32(41)))
	got, err := r.GetAttribute("demo", ref)
	require.NoError(t, err)
	v, _ := value.GetInt64(got)
	assert.EqualValues(t, 41, v)
}

func TestGetVersionReturnsBuildID(t *testing.T) {
	r := newRegistry()
	assert.NotEmpty(t, r.GetVersion())
}
