// Package storage implements the entity set and component pool layers that
// back the ecs package: a sparse/dense entity index with tombstone-threaded
// free lists, and paged component storage with per-slot lock/enable flags.
package storage

import "fmt"

// Entity is a packed identifier: the low bits hold the index used to
// locate the entity within sparse sets, the high bits hold a generation
// counter that distinguishes a reused index from whatever previously
// occupied it.
type Entity uint32

const (
	// indexBits is the width of the index field. 20 bits supports a little
	// over one million live entities at once.
	indexBits      = 20
	generationBits = 32 - indexBits

	indexMask      = (1 << indexBits) - 1
	generationMask = (1 << generationBits) - 1
)

// tombstoneGeneration is the reserved generation value that marks an
// Entity as a tombstone. Real entities are bumped modulo this value (see
// BumpGeneration) so they never collide with it. A tombstone's
// index sub-field is repurposed to store the entity set's free-list
// "next" pointer (indexMask marks the end of the list), per the index
// tombstone described in the data model.
const tombstoneGeneration = generationMask

// Tombstone is the sentinel Entity value meaning "absent": an entity with
// the reserved tombstone generation and an index field pointing nowhere
// (indexMask, the end-of-free-list marker).
const Tombstone Entity = Entity(indexMask) | (Entity(tombstoneGeneration) << indexBits)

// NewEntity packs an index and generation into an Entity.
func NewEntity(index, generation uint32) Entity {
	return Entity((generation&generationMask)<<indexBits | (index & indexMask))
}

// Index returns the index sub-field.
func (e Entity) Index() uint32 {
	return uint32(e) & indexMask
}

// Generation returns the generation sub-field.
func (e Entity) Generation() uint32 {
	return (uint32(e) >> indexBits) & generationMask
}

// WithGeneration returns a copy of e with its generation replaced.
func (e Entity) WithGeneration(generation uint32) Entity {
	return NewEntity(e.Index(), generation)
}

// IsTombstone reports whether e carries the reserved tombstone
// generation. A free-list-linked tombstone's index field holds the
// "next" pointer rather than indexMask, so only the generation field is
// authoritative here.
func (e Entity) IsTombstone() bool {
	return e.Generation() == tombstoneGeneration
}

// BumpGeneration returns the next generation after g, skipping over the
// reserved tombstone generation.
func BumpGeneration(g uint32) uint32 {
	next := (g + 1) & generationMask
	if next == tombstoneGeneration {
		next = (next + 1) & generationMask
	}
	return next
}

// Valid is the complement of IsTombstone.
func (e Entity) Valid() bool {
	return !e.IsTombstone()
}

// Less gives entities a total order over their raw bits.
func (e Entity) Less(other Entity) bool {
	return uint32(e) < uint32(other)
}

func (e Entity) String() string {
	if e.IsTombstone() {
		return "entity(tombstone)"
	}
	return fmt.Sprintf("entity(%d#%d)", e.Index(), e.Generation())
}
