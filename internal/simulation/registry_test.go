package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ciso-sim/internal/domain"
)

func TestRegistryLifecycle(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	scenario := detectScenario(domain.Outcome{Description: "ok"})

	session := registry.Create("s-1", scenario, []domain.CharacterSpec{analystSpec(150)}, DefaultSettings())
	require.NotNil(t, session)
	assert.Equal(t, "s-1", session.ID)
	assert.Equal(t, 1, registry.Len())

	got, ok := registry.Get("s-1")
	require.True(t, ok)
	assert.Same(t, session, got)

	_, ok = registry.Get("missing")
	assert.False(t, ok)

	registry.Delete("s-1")
	assert.Equal(t, 0, registry.Len())
	registry.Delete("s-1") // idempotent
	assert.Equal(t, 0, registry.Len())
}

func TestRegistryCreateReplacesExisting(t *testing.T) {
	registry := NewRegistry(nil)
	scenario := detectScenario(domain.Outcome{Description: "ok"})

	first := registry.Create("s-1", scenario, nil, DefaultSettings())
	second := registry.Create("s-1", scenario, nil, DefaultSettings())

	got, ok := registry.Get("s-1")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.NotSame(t, first, got)
	assert.Equal(t, 1, registry.Len())
}

func TestSessionDelegatesToEngine(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	scenario := detectScenario(domain.Outcome{Description: "ok", BudgetDelta: intp(10)})
	session := registry.Create("s-1", scenario, nil, DefaultSettings(),
		WithRand(&scriptedRand{floats: []float64{0.0}}))

	presentable, err := session.CurrentPresentable()
	require.NoError(t, err)
	assert.Equal(t, "detect", presentable.ID)

	result, err := session.ApplyOption("investigate")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, result.State, session.State())
}
