package ecs

import "ecsforge/internal/core/ecs/storage"

// Entity, Tombstone and NewEntity are re-exported from storage so that
// ecs callers never need to import the storage package directly just to
// name an entity. The packed representation itself lives in storage,
// since the storage package (entity sets, pools) must not import ecs.
type Entity = storage.Entity

// Tombstone is the sentinel Entity value meaning "absent".
const Tombstone = storage.Tombstone

// NewEntity packs an index and generation into an Entity.
func NewEntity(index, generation uint32) Entity {
	return storage.NewEntity(index, generation)
}
