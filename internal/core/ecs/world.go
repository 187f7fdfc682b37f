package ecs

import (
	"reflect"
	"sync"

	"ecsforge/internal/core/ecs/storage"
)

// World owns every component set and the entity index/generation
// allocator shared across them. A World is the single point of entity
// identity: Create/Destroy here are authoritative, and every
// ComponentSet[T] obtained through Storage shares the same generation
// counters, so a stale Entity handle from before a Destroy can never
// alias the index's next occupant.
type World struct {
	mu sync.RWMutex

	sets map[reflect.Type]GenericComponentSet

	generations []uint32
	freeList    []uint32

	config  WorldConfig
	metrics MetricsCollector
}

// NewWorld constructs an empty World with the given configuration. A
// metrics collector is created only when cfg.EnableMetrics is set.
func NewWorld(cfg WorldConfig) *World {
	var metrics MetricsCollector
	if cfg.EnableMetrics {
		metrics = NewMetricsCollector()
	}
	return &World{
		sets:    map[reflect.Type]GenericComponentSet{},
		config:  cfg,
		metrics: metrics,
	}
}

// Metrics returns the world's metrics collector, or nil if metrics are
// disabled.
func (w *World) Metrics() MetricsCollector { return w.metrics }

// Storage returns the ComponentSet for T, creating it on first access.
// All ComponentSet[T] instances for the same World and T are identical;
// callers never need to route access through World once they hold the
// pointer.
func Storage[T any](w *World) *ComponentSet[T] {
	t := reflect.TypeFor[T]()

	w.mu.RLock()
	if existing, ok := w.sets[t]; ok {
		w.mu.RUnlock()
		return existing.(*ComponentSet[T])
	}
	w.mu.RUnlock()

	w.mu.Lock()
	defer w.mu.Unlock()
	if existing, ok := w.sets[t]; ok {
		return existing.(*ComponentSet[T])
	}
	set := NewComponentSet[T]()
	w.sets[t] = set
	return set
}

// Create allocates a fresh entity, reusing the most recently freed index
// (whose generation Destroy already bumped) if one exists, or else
// growing the index space by one.
func (w *World) Create() Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	if n := len(w.freeList); n > 0 {
		index := w.freeList[n-1]
		w.freeList = w.freeList[:n-1]
		return NewEntity(index, w.generations[index])
	}

	index := uint32(len(w.generations))
	w.generations = append(w.generations, 0)
	if w.metrics != nil {
		w.metrics.RecordGauge("ecs.entities.allocated", int64(len(w.generations)))
	}
	return NewEntity(index, 0)
}

// Alive reports whether e's generation matches the world's live
// generation for its index.
func (w *World) Alive(e Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.alive(e)
}

func (w *World) alive(e Entity) bool {
	idx := e.Index()
	return int(idx) < len(w.generations) && w.generations[idx] == e.Generation()
}

// Destroy removes e from every component set it belongs to and returns
// its index to the free list with a bumped generation, so any
// previously-copied handle to e becomes stale. Destroying an already-dead
// or unknown entity is a no-op.
func (w *World) Destroy(e Entity) {
	w.mu.Lock()
	if !w.alive(e) {
		w.mu.Unlock()
		return
	}
	sets := make([]GenericComponentSet, 0, len(w.sets))
	for _, s := range w.sets {
		sets = append(sets, s)
	}
	idx := e.Index()
	w.generations[idx] = storage.BumpGeneration(e.Generation())
	w.freeList = append(w.freeList, idx)
	if w.metrics != nil {
		w.metrics.RecordCounter("ecs.entities.destroyed", 1)
	}
	w.mu.Unlock()

	for _, s := range sets {
		if s.Contains(e) {
			s.RemoveEntity(e)
		}
	}
}

// Len returns the number of live entities (including ones with no
// components); indices on the free list awaiting reuse are not counted.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.generations) - len(w.freeList)
}
