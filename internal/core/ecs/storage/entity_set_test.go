package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntitySetInsertFindContains(t *testing.T) {
	s := NewEntitySet()
	a := NewEntity(1, 0)
	b := NewEntity(2, 0)

	s.PushBack(a)
	s.PushBack(b)

	assert.True(t, s.Contains(a))
	assert.True(t, s.Contains(b))
	assert.Equal(t, 2, s.Len())

	pos, ok := s.Find(b)
	require.True(t, ok)
	assert.Equal(t, b, s.At(pos))
}

func TestEntitySetEraseSwapsWithLast(t *testing.T) {
	s := NewEntitySet()
	a, b, c := NewEntity(1, 0), NewEntity(2, 0), NewEntity(3, 0)
	s.PushBack(a)
	s.PushBack(b)
	s.PushBack(c)

	s.Erase(a)

	assert.False(t, s.Contains(a))
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(b))
	assert.True(t, s.Contains(c))
}

func TestEntitySetFixedEraseThreadsFreeList(t *testing.T) {
	s := NewEntitySet()
	a, b := NewEntity(1, 0), NewEntity(2, 0)
	s.PushBack(a)
	s.PushBack(b)

	s.FixedErase(a)
	assert.False(t, s.Contains(a))
	assert.True(t, s.Contains(b))

	// the freed slot is reused by the next Insert
	c := NewEntity(3, 0)
	s.Insert(c)
	assert.True(t, s.Contains(c))
	pos, _ := s.Find(c)
	assert.Equal(t, 0, pos)
}

func TestEntitySetPackRemovesTombstones(t *testing.T) {
	s := NewEntitySet()
	a, b, c := NewEntity(1, 0), NewEntity(2, 0), NewEntity(3, 0)
	s.PushBack(a)
	s.PushBack(b)
	s.PushBack(c)
	s.FixedErase(b)

	s.Pack()

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(a))
	assert.True(t, s.Contains(c))
	for i, e := range s.Dense() {
		assert.False(t, e.IsTombstone(), "unexpected tombstone at %d", i)
	}
}

func TestEntitySetRespectReordersToMatchOther(t *testing.T) {
	s := NewEntitySet()
	a, b, c := NewEntity(1, 0), NewEntity(2, 0), NewEntity(3, 0)
	s.PushBack(a)
	s.PushBack(b)
	s.PushBack(c)

	other := NewEntitySet()
	other.PushBack(c)
	other.PushBack(a)
	other.PushBack(b)

	s.Respect(other)

	assert.Equal(t, []Entity{c, a, b}, s.Dense())
}

func TestEntitySetSortOrdersByComparator(t *testing.T) {
	s := NewEntitySet()
	a, b, c := NewEntity(3, 0), NewEntity(1, 0), NewEntity(2, 0)
	s.PushBack(a)
	s.PushBack(b)
	s.PushBack(c)

	s.Sort(-1, func(x, y Entity) bool { return x.Index() < y.Index() })

	assert.Equal(t, []Entity{b, c, a}, s.Dense())
}
