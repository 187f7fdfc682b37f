package query

import (
	"testing"

	"ecsforge/internal/core/ecs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bPosition struct{ X float64 }
type bVelocity struct{ DX float64 }

func TestBuilderFinalizeAcceptsIncludedOptional(t *testing.T) {
	w := ecs.NewWorld(ecs.DefaultWorldConfig())
	b := NewBuilder(w, false)
	Include[bPosition](b)
	Include[bVelocity](b)
	Optional[bVelocity](b)

	include, optional, exclude, err := b.Finalize()
	require.NoError(t, err)
	assert.Len(t, include, 2)
	assert.Len(t, optional, 1)
	assert.Empty(t, exclude)
}

func TestBuilderFinalizeRejectsOptionalWithoutInclude(t *testing.T) {
	w := ecs.NewWorld(ecs.DefaultWorldConfig())
	b := NewBuilder(w, false)
	Optional[bVelocity](b)

	_, _, _, err := b.Finalize()
	assert.ErrorIs(t, err, ErrOptionalWithoutInclude)
}

func TestBuilderOrderByOnReadOnlyWorldFails(t *testing.T) {
	w := ecs.NewWorld(ecs.DefaultWorldConfig())
	b := NewBuilder(w, true)
	OrderBy[bPosition](b)

	_, _, _, err := b.Finalize()
	assert.ErrorIs(t, err, ErrReadOnlyWorld)
}

func TestBuilderFinalizeRejectsTypeInBothIncludeAndExclude(t *testing.T) {
	w := ecs.NewWorld(ecs.DefaultWorldConfig())
	b := NewBuilder(w, false)
	Include[bPosition](b)
	Exclude[bPosition](b)

	_, _, _, err := b.Finalize()
	assert.ErrorIs(t, err, ErrConflictingConstraint)
}

func TestBuilderRequiresCollectionWhenOrdered(t *testing.T) {
	w := ecs.NewWorld(ecs.DefaultWorldConfig())
	b := NewBuilder(w, false)
	Include[bPosition](b)
	OrderBy[bPosition](b)

	assert.True(t, b.RequiresCollection())
}

func TestBuildView2MaterializesOverBuilderIncludes(t *testing.T) {
	w := ecs.NewWorld(ecs.DefaultWorldConfig())
	positions := ecs.Storage[bPosition](w)
	velocities := ecs.Storage[bVelocity](w)

	b := NewBuilder(w, false)
	Include[bPosition](b)
	Include[bVelocity](b)

	view, err := BuildView2[bPosition, bVelocity](b)
	require.NoError(t, err)

	e := w.Create()
	require.NoError(t, positions.Insert(e, bPosition{X: 1}))
	require.NoError(t, velocities.Insert(e, bVelocity{DX: 2}))

	assert.True(t, view.Contains(e))
}

func TestBuildView2RejectsArityMismatch(t *testing.T) {
	w := ecs.NewWorld(ecs.DefaultWorldConfig())
	b := NewBuilder(w, false)
	Include[bPosition](b)

	_, err := BuildView2[bPosition, bVelocity](b)
	assert.ErrorIs(t, err, ErrArityMismatch)
}

func TestBuildCollectionMaterializesOverOrderedType(t *testing.T) {
	w := ecs.NewWorld(ecs.DefaultWorldConfig())
	b := NewBuilder(w, false)
	Include[bPosition](b)
	OrderBy[bPosition](b)

	collection, err := BuildCollection[bPosition](b)
	require.NoError(t, err)

	e := w.Create()
	require.NoError(t, ecs.Storage[bPosition](w).Insert(e, bPosition{X: 5}))

	assert.Equal(t, 1, collection.Len())
	assert.True(t, collection.Contains(e))
}

func TestBuildCollection2MaterializesOverBothOrderedTypes(t *testing.T) {
	w := ecs.NewWorld(ecs.DefaultWorldConfig())
	b := NewBuilder(w, false)
	Include[bPosition](b)
	Include[bVelocity](b)
	OrderBy[bPosition](b)
	OrderBy[bVelocity](b)

	collection, err := BuildCollection2[bPosition, bVelocity](b)
	require.NoError(t, err)

	e := w.Create()
	require.NoError(t, ecs.Storage[bPosition](w).Insert(e, bPosition{X: 1}))
	require.NoError(t, ecs.Storage[bVelocity](w).Insert(e, bVelocity{DX: 2}))

	assert.Equal(t, 1, collection.Len())
	a, v := collection.Get(e)
	assert.Equal(t, 1.0, a.X)
	assert.Equal(t, 2.0, v.DX)
}
