package storage

// EntitySet is the sparse/dense entity index shared by every component set:
// a paged sparse map from an entity's index field to its dense position,
// and a dense array of entities in insertion (or packing/sort) order.
// Tombstones left by FixedErase thread a singly-linked free list through
// the dense array, with the head kept in freeHead.
type EntitySet struct {
	sparse   []Entity // index field -> dense position (as an Entity), or Tombstone
	dense    []Entity // dense array of live entities and interleaved tombstones
	freeHead int32    // index of the first tombstone in the free list, or -1
}

// NewEntitySet returns an empty entity set.
func NewEntitySet() *EntitySet {
	return &EntitySet{freeHead: -1}
}

func (s *EntitySet) sparseSlot(index uint32) Entity {
	if int(index) >= len(s.sparse) {
		return Tombstone
	}
	return s.sparse[index]
}

func (s *EntitySet) ensureSparse(index uint32) {
	if int(index) < len(s.sparse) {
		return
	}
	grown := make([]Entity, index+1)
	for i := range grown {
		grown[i] = Tombstone
	}
	copy(grown, s.sparse)
	s.sparse = grown
}

// Contains reports whether e is present in the set with its current
// generation.
func (s *EntitySet) Contains(e Entity) bool {
	slot := s.sparseSlot(e.Index())
	return !slot.IsTombstone() && slot.Generation() == e.Generation()
}

// Find returns the dense position of e and true, or (0, false) if absent.
func (s *EntitySet) Find(e Entity) (int, bool) {
	slot := s.sparseSlot(e.Index())
	if slot.IsTombstone() || slot.Generation() != e.Generation() {
		return 0, false
	}
	return int(slot.Index()), true
}

// At returns the entity stored at dense position p.
func (s *EntitySet) At(p int) Entity {
	return s.dense[p]
}

// Len returns the number of live entities in the set.
func (s *EntitySet) Len() int {
	return len(s.dense) - s.tombstoneCount()
}

func (s *EntitySet) tombstoneCount() int {
	count := 0
	for cursor := s.freeHead; cursor != -1; {
		count++
		next := s.dense[cursor].Index()
		if next == indexMask {
			break
		}
		cursor = int32(next)
	}
	return count
}

// Insert adds e, reusing a free-listed dense slot if one is available.
// Inserting an already-present entity is a documented precondition
// violation; callers must guard with Contains.
func (s *EntitySet) Insert(e Entity) {
	if s.freeHead == -1 {
		s.PushBack(e)
		return
	}
	slot := s.freeHead
	next := s.dense[slot].Index()
	if next == indexMask {
		s.freeHead = -1
	} else {
		s.freeHead = int32(next)
	}
	s.dense[slot] = e
	s.ensureSparse(e.Index())
	s.sparse[e.Index()] = NewEntity(uint32(slot), e.Generation())
}

// PushBack always appends e, bypassing the free list.
func (s *EntitySet) PushBack(e Entity) {
	pos := len(s.dense)
	s.dense = append(s.dense, e)
	s.ensureSparse(e.Index())
	s.sparse[e.Index()] = NewEntity(uint32(pos), e.Generation())
}

// Erase removes e via swap-with-last then pop. The generation stored in
// the sparse slot of the moved entity is preserved.
func (s *EntitySet) Erase(e Entity) {
	pos, ok := s.Find(e)
	if !ok {
		return
	}
	last := len(s.dense) - 1
	if pos != last {
		moved := s.dense[last]
		s.dense[pos] = moved
		s.sparse[moved.Index()] = NewEntity(uint32(pos), moved.Generation())
	}
	s.dense = s.dense[:last]
	s.sparse[e.Index()] = Tombstone
}

// FixedErase removes e in place: the dense slot becomes a tombstone linked
// at the head of the free list.
func (s *EntitySet) FixedErase(e Entity) {
	pos, ok := s.Find(e)
	if !ok {
		return
	}
	nextLink := uint32(indexMask)
	if s.freeHead != -1 {
		nextLink = uint32(s.freeHead)
	}
	s.dense[pos] = NewEntity(nextLink, tombstoneGeneration)
	s.freeHead = int32(pos)
	s.sparse[e.Index()] = Tombstone
}

// Pack removes all tombstones, preserving the relative order of live
// entities, and fixes every sparse back-pointer. After packing the free
// list is empty.
func (s *EntitySet) Pack() {
	write := 0
	for read := 0; read < len(s.dense); read++ {
		if s.dense[read].IsTombstone() {
			continue
		}
		if write != read {
			s.dense[write] = s.dense[read]
		}
		s.sparse[s.dense[write].Index()] = NewEntity(uint32(write), s.dense[write].Generation())
		write++
	}
	s.dense = s.dense[:write]
	s.freeHead = -1
}

// Update rewrites the stored entity's generation without moving it.
func (s *EntitySet) Update(e Entity, generation uint32) {
	pos, ok := s.Find(e)
	if !ok {
		return
	}
	updated := e.WithGeneration(generation)
	s.dense[pos] = updated
	s.sparse[e.Index()] = NewEntity(uint32(pos), generation)
}

// Swap exchanges the entities at dense positions a and b, preserving
// sparse back-pointers. Only entities move; a caller with parallel
// storage swaps it alongside (see ComponentSet.SwapPositions).
func (s *EntitySet) Swap(a, b int) {
	if a == b {
		return
	}
	s.dense[a], s.dense[b] = s.dense[b], s.dense[a]
	if !s.dense[a].IsTombstone() {
		s.sparse[s.dense[a].Index()] = NewEntity(uint32(a), s.dense[a].Generation())
	}
	if !s.dense[b].IsTombstone() {
		s.sparse[s.dense[b].Index()] = NewEntity(uint32(b), s.dense[b].Generation())
	}
}

// Sort orders the first n dense slots (or all, if n < 0) using cmp, then
// rewrites sparse back-pointers. Callers must Pack() first; Sort does not
// handle tombstones.
func (s *EntitySet) Sort(n int, less func(a, b Entity) bool) {
	if n < 0 || n > len(s.dense) {
		n = len(s.dense)
	}
	// insertion sort: the sets this module targets are small to moderate,
	// and this keeps the comparator contract (stable relative order on
	// ties) simple to reason about without pulling in sort.Slice's
	// unstable partitioning for a type this small.
	for i := 1; i < n; i++ {
		for j := i; j > 0 && less(s.dense[j], s.dense[j-1]); j-- {
			s.Swap(j, j-1)
		}
	}
}

// Respect reorders this set's dense array to match the relative order of
// entities in other, ignoring entities of other that are not in this set.
func (s *EntitySet) Respect(other *EntitySet) {
	pos := 0
	for _, e := range other.dense {
		if e.IsTombstone() {
			continue
		}
		p, ok := s.Find(e)
		if !ok {
			continue
		}
		if p != pos {
			s.Swap(p, pos)
		}
		pos++
	}
}

// ForEach iterates live entities in dense order. A false return from fn
// halts iteration.
func (s *EntitySet) ForEach(fn func(e Entity) bool) {
	for _, e := range s.dense {
		if e.IsTombstone() {
			continue
		}
		if !fn(e) {
			return
		}
	}
}

// Dense exposes the raw dense slice, tombstones included, for component
// pools that must mirror swap/pack operations positionally.
func (s *EntitySet) Dense() []Entity {
	return s.dense
}
