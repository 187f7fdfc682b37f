package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type velocity struct{ DX, DY float64 }

func TestWorldCreateAllocatesDistinctEntities(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	a := w.Create()
	b := w.Create()
	assert.NotEqual(t, a, b)
	assert.True(t, w.Alive(a))
	assert.True(t, w.Alive(b))
}

func TestWorldDestroyBumpsGenerationOnReuse(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	a := w.Create()
	w.Destroy(a)
	assert.False(t, w.Alive(a))

	b := w.Create()
	assert.Equal(t, a.Index(), b.Index())
	assert.NotEqual(t, a.Generation(), b.Generation())
	assert.False(t, w.Alive(a), "the stale handle must never become valid again")
	assert.True(t, w.Alive(b))
}

func TestWorldDestroyRemovesFromEveryComponentSet(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	positions := Storage[position](w)
	velocities := Storage[velocity](w)

	e := w.Create()
	require.NoError(t, positions.Insert(e, position{X: 1, Y: 1}))
	require.NoError(t, velocities.Insert(e, velocity{DX: 1}))

	w.Destroy(e)

	assert.False(t, positions.Contains(e))
	assert.False(t, velocities.Contains(e))
}

func TestStorageReturnsSameSetForSameType(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	a := Storage[position](w)
	b := Storage[position](w)
	assert.Same(t, a, b)
}

func TestWorldDestroyOfUnknownEntityIsNoOp(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	ghost := NewEntity(99, 0)
	assert.NotPanics(t, func() { w.Destroy(ghost) })
}

func TestWorldMetricsDisabledWhenConfigSaysSo(t *testing.T) {
	cfg := DefaultWorldConfig()
	cfg.EnableMetrics = false
	w := NewWorld(cfg)
	assert.Nil(t, w.Metrics())
}

func TestWorldMetricsRecordsEntityLifecycle(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())

	a := w.Create()
	w.Create()
	w.Destroy(a)

	snapshot := w.Metrics().Snapshot()
	assert.Equal(t, int64(2), snapshot["ecs.entities.allocated"])
	assert.Equal(t, int64(1), snapshot["ecs.entities.destroyed"])
}
