package query

import (
	"testing"

	"ecsforge/internal/core/ecs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type qPosition struct{ X, Y float64 }
type qVelocity struct{ DX, DY float64 }
type qDead struct{}

func TestView2IteratesOnlyEntitiesWithBothComponents(t *testing.T) {
	w := ecs.NewWorld(ecs.DefaultWorldConfig())
	positions := ecs.Storage[qPosition](w)
	velocities := ecs.Storage[qVelocity](w)

	moving := w.Create()
	require.NoError(t, positions.Insert(moving, qPosition{X: 1}))
	require.NoError(t, velocities.Insert(moving, qVelocity{DX: 1}))

	still := w.Create()
	require.NoError(t, positions.Insert(still, qPosition{X: 2}))

	view := NewView2[qPosition, qVelocity](w, nil, nil)

	var seen []ecs.Entity
	view.ForEach(func(e ecs.Entity, p *qPosition, v *qVelocity) bool {
		seen = append(seen, e)
		return true
	})

	assert.Equal(t, []ecs.Entity{moving}, seen)
	assert.True(t, view.Contains(moving))
	assert.False(t, view.Contains(still))
}

func TestView2ExcludesMatchingExcludedSet(t *testing.T) {
	w := ecs.NewWorld(ecs.DefaultWorldConfig())
	positions := ecs.Storage[qPosition](w)
	velocities := ecs.Storage[qVelocity](w)
	dead := ecs.Storage[qDead](w)

	alive := w.Create()
	require.NoError(t, positions.Insert(alive, qPosition{}))
	require.NoError(t, velocities.Insert(alive, qVelocity{}))

	corpse := w.Create()
	require.NoError(t, positions.Insert(corpse, qPosition{}))
	require.NoError(t, velocities.Insert(corpse, qVelocity{}))
	require.NoError(t, dead.Insert(corpse, qDead{}))

	view := NewView2[qPosition, qVelocity](w, nil, []ecs.GenericComponentSet{dead})

	var seen []ecs.Entity
	view.ForEach(func(e ecs.Entity, p *qPosition, v *qVelocity) bool {
		seen = append(seen, e)
		return true
	})

	assert.Equal(t, []ecs.Entity{alive}, seen)
}

func TestView2ForEachHaltsOnFalseReturn(t *testing.T) {
	w := ecs.NewWorld(ecs.DefaultWorldConfig())
	positions := ecs.Storage[qPosition](w)
	velocities := ecs.Storage[qVelocity](w)

	for i := 0; i < 3; i++ {
		e := w.Create()
		require.NoError(t, positions.Insert(e, qPosition{}))
		require.NoError(t, velocities.Insert(e, qVelocity{}))
	}

	view := NewView2[qPosition, qVelocity](w, nil, nil)
	count := 0
	view.ForEach(func(e ecs.Entity, p *qPosition, v *qVelocity) bool {
		count++
		return false
	})

	assert.Equal(t, 1, count)
}

type qShield struct{ Amount int }

func TestView2OptionalReturnsNilWhenAbsentAndValueWhenPresent(t *testing.T) {
	w := ecs.NewWorld(ecs.DefaultWorldConfig())
	positions := ecs.Storage[qPosition](w)
	velocities := ecs.Storage[qVelocity](w)
	shields := ecs.Storage[qShield](w)

	shielded := w.Create()
	require.NoError(t, positions.Insert(shielded, qPosition{}))
	require.NoError(t, velocities.Insert(shielded, qVelocity{}))
	require.NoError(t, shields.Insert(shielded, qShield{Amount: 10}))

	bare := w.Create()
	require.NoError(t, positions.Insert(bare, qPosition{}))
	require.NoError(t, velocities.Insert(bare, qVelocity{}))

	view := NewView2[qPosition, qVelocity](w, []ecs.GenericComponentSet{shields}, nil)

	assert.True(t, view.Contains(bare), "an absent optional component must not exclude the entity")

	got := Optional[qShield](view, shielded)
	require.NotNil(t, got)
	assert.Equal(t, 10, got.Amount)

	assert.Nil(t, Optional[qShield](view, bare))
}
