package query

import (
	"testing"

	"ecsforge/internal/core/ecs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cHealth struct{ Current int }
type cFlagged struct{}

func TestCollectionPromotesOnCollectedCreate(t *testing.T) {
	w := ecs.NewWorld(ecs.DefaultWorldConfig())
	c := NewCollection[cHealth](w, nil, nil)

	e := w.Create()
	require.NoError(t, ecs.Storage[cHealth](w).Insert(e, cHealth{Current: 10}))

	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Contains(e))
	assert.Equal(t, 10, c.Get(e).Current)
}

func TestCollectionRequiresIncludedComponent(t *testing.T) {
	w := ecs.NewWorld(ecs.DefaultWorldConfig())
	flags := ecs.Storage[cFlagged](w)
	c := NewCollection[cHealth](w, []ecs.GenericComponentSet{flags}, nil)

	e := w.Create()
	require.NoError(t, ecs.Storage[cHealth](w).Insert(e, cHealth{Current: 1}))
	assert.Equal(t, 0, c.Len(), "missing included component must not count as a member")

	require.NoError(t, flags.Insert(e, cFlagged{}))
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Contains(e))
}

func TestCollectionDemotesWhenExcludedComponentAdded(t *testing.T) {
	w := ecs.NewWorld(ecs.DefaultWorldConfig())
	flags := ecs.Storage[cFlagged](w)
	c := NewCollection[cHealth](w, nil, []ecs.GenericComponentSet{flags})

	e := w.Create()
	require.NoError(t, ecs.Storage[cHealth](w).Insert(e, cHealth{Current: 1}))
	assert.Equal(t, 1, c.Len())

	require.NoError(t, flags.Insert(e, cFlagged{}))
	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Contains(e))
}

func TestCollectionMaintainsPrefixAcrossMultipleMembers(t *testing.T) {
	w := ecs.NewWorld(ecs.DefaultWorldConfig())
	c := NewCollection[cHealth](w, nil, nil)
	health := ecs.Storage[cHealth](w)

	var entities []ecs.Entity
	for i := 0; i < 5; i++ {
		e := w.Create()
		require.NoError(t, health.Insert(e, cHealth{Current: i}))
		entities = append(entities, e)
	}

	removed := entities[2]
	w.Destroy(removed)

	assert.Equal(t, 4, c.Len())
	assert.False(t, c.Contains(removed))

	var seen []int
	c.ForEach(func(e ecs.Entity, v *cHealth) bool {
		seen = append(seen, v.Current)
		return true
	})
	assert.Len(t, seen, 4)
}

func TestCollectionDetachStopsTrackingUpdates(t *testing.T) {
	w := ecs.NewWorld(ecs.DefaultWorldConfig())
	c := NewCollection[cHealth](w, nil, nil)
	c.Detach()

	e := w.Create()
	require.NoError(t, ecs.Storage[cHealth](w).Insert(e, cHealth{Current: 1}))

	assert.Equal(t, 0, c.Len())
}

type cShield struct{ Amount int }

func TestCollection2RequiresBothCollectedTypes(t *testing.T) {
	w := ecs.NewWorld(ecs.DefaultWorldConfig())
	health := ecs.Storage[cHealth](w)
	shields := ecs.Storage[cShield](w)
	c := NewCollection2[cHealth, cShield](w, nil, nil)

	e := w.Create()
	require.NoError(t, health.Insert(e, cHealth{Current: 10}))
	assert.Equal(t, 0, c.Len(), "only one of the two collected types must not count as a member")

	require.NoError(t, shields.Insert(e, cShield{Amount: 3}))
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Contains(e))

	h, s := c.Get(e)
	assert.Equal(t, 10, h.Current)
	assert.Equal(t, 3, s.Amount)
}

func TestCollection2MaintainsSyncedPrefixAcrossMembers(t *testing.T) {
	w := ecs.NewWorld(ecs.DefaultWorldConfig())
	health := ecs.Storage[cHealth](w)
	shields := ecs.Storage[cShield](w)
	c := NewCollection2[cHealth, cShield](w, nil, nil)

	var entities []ecs.Entity
	for i := 0; i < 5; i++ {
		e := w.Create()
		require.NoError(t, health.Insert(e, cHealth{Current: i}))
		require.NoError(t, shields.Insert(e, cShield{Amount: i * 10}))
		entities = append(entities, e)
	}

	removed := entities[2]
	w.Destroy(removed)

	assert.Equal(t, 4, c.Len())
	assert.False(t, c.Contains(removed))

	var seen int
	c.ForEach(func(e ecs.Entity, h *cHealth, s *cShield) bool {
		assert.Equal(t, h.Current*10, s.Amount, "a and b must stay aligned at the same prefix position")
		seen++
		return true
	})
	assert.Equal(t, 4, seen)
}

func TestCollection2DemotesWhenOneCollectedTypeRemoved(t *testing.T) {
	w := ecs.NewWorld(ecs.DefaultWorldConfig())
	health := ecs.Storage[cHealth](w)
	shields := ecs.Storage[cShield](w)
	c := NewCollection2[cHealth, cShield](w, nil, nil)

	e := w.Create()
	require.NoError(t, health.Insert(e, cHealth{Current: 1}))
	require.NoError(t, shields.Insert(e, cShield{Amount: 1}))
	assert.Equal(t, 1, c.Len())

	shields.RemoveEntity(e)
	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Contains(e))
}
