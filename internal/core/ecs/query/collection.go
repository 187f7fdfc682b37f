package query

import "ecsforge/internal/core/ecs"

type releaseHandle interface{ Release() }

// Collection is a stateful projection over one collected component type
// plus arbitrary included/excluded sets: it keeps every member entity at
// a prefix of the collected set's dense array, so Get and iteration over
// members are O(1)/O(size) with no per-access filtering. A fully general
// design would collect over an arbitrary number of collected types at
// once; this module, like View2/View3, specializes to fixed small
// arities (this one collected type, plus Collection2 below for two)
// since Go generics cannot express the fully variadic form.
type Collection[T any] struct {
	collected *ecs.ComponentSet[T]
	included  []ecs.GenericComponentSet
	excluded  []ecs.GenericComponentSet

	members map[ecs.Entity]struct{}
	size    int

	handles []releaseHandle
}

// NewCollection constructs a collection over the collected component
// type T, requiring every included set and forbidding every excluded
// set. T must not be registered as a fixed-storage component, since
// maintaining the prefix invariant requires swapping its slots. Entities
// that already qualify when the collection is built become members
// immediately.
func NewCollection[T any](w *ecs.World, included, excluded []ecs.GenericComponentSet) *Collection[T] {
	c := &Collection[T]{
		collected: ecs.Storage[T](w),
		included:  included,
		excluded:  excluded,
		members:   map[ecs.Entity]struct{}{},
	}
	c.attach()
	c.collected.ForEachEntity(func(e ecs.Entity) bool { c.recheck(e); return true })
	return c
}

func (c *Collection[T]) attach() {
	c.handles = append(c.handles,
		c.collected.OnCreate().Subscribe(func(e ecs.Entity) bool { c.recheck(e); return true }),
		c.collected.OnRemove().Subscribe(func(e ecs.Entity) bool { c.forceDemote(e); return true }),
	)
	for _, inc := range c.included {
		c.handles = append(c.handles,
			inc.OnCreate().Subscribe(func(e ecs.Entity) bool { c.recheck(e); return true }),
			inc.OnRemove().Subscribe(func(e ecs.Entity) bool { c.forceDemote(e); return true }),
		)
	}
	for _, exc := range c.excluded {
		c.handles = append(c.handles,
			exc.OnCreate().Subscribe(func(e ecs.Entity) bool { c.forceDemote(e); return true }),
			exc.OnRemove().Subscribe(func(e ecs.Entity) bool { c.recheck(e); return true }),
		)
	}
}

// Detach unsubscribes the collection from every set it observes. Call
// this when a collection is no longer needed; a detached collection's
// membership is frozen at its last known state.
func (c *Collection[T]) Detach() {
	for _, h := range c.handles {
		h.Release()
	}
	c.handles = nil
}

func (c *Collection[T]) isCandidate(e ecs.Entity) bool {
	if !c.collected.Contains(e) {
		return false
	}
	for _, inc := range c.included {
		if !inc.Contains(e) {
			return false
		}
	}
	for _, exc := range c.excluded {
		if exc.Contains(e) {
			return false
		}
	}
	return true
}

func (c *Collection[T]) recheck(e ecs.Entity) {
	_, wasMember := c.members[e]
	if wasMember {
		return
	}
	if c.isCandidate(e) {
		c.promote(e)
	}
}

func (c *Collection[T]) forceDemote(e ecs.Entity) {
	if _, ok := c.members[e]; ok {
		c.demote(e)
	}
}

func (c *Collection[T]) promote(e ecs.Entity) {
	pos, ok := c.collected.PositionOf(e)
	if !ok {
		return
	}
	target := c.size
	if pos != target {
		if err := c.collected.SwapPositions(pos, target); err != nil {
			return
		}
	}
	c.members[e] = struct{}{}
	c.size++
}

func (c *Collection[T]) demote(e ecs.Entity) {
	pos, ok := c.collected.PositionOf(e)
	if !ok {
		delete(c.members, e)
		c.size--
		return
	}
	last := c.size - 1
	if pos != last {
		_ = c.collected.SwapPositions(pos, last)
	}
	delete(c.members, e)
	c.size--
}

// Len returns the number of entities currently in the collection.
func (c *Collection[T]) Len() int { return c.size }

// Contains reports whether e is currently a member.
func (c *Collection[T]) Contains(e ecs.Entity) bool {
	_, ok := c.members[e]
	return ok
}

// Get returns a pointer to e's collected component. Panics if e does not
// hold T; membership in the collection itself is not checked.
func (c *Collection[T]) Get(e ecs.Entity) *T {
	return c.collected.GetPtr(e)
}

// ForEach walks the collection's prefix range. A false return from fn
// halts iteration.
func (c *Collection[T]) ForEach(fn func(e ecs.Entity, value *T) bool) {
	for pos := 0; pos < c.size; pos++ {
		e := c.collected.At(pos)
		if !fn(e, c.collected.GetPtr(e)) {
			return
		}
	}
}

// Collection2 is a stateful projection over two collected component
// types, A and B, plus arbitrary included/excluded sets: membership
// requires both A and B (and every included set, and none of the
// excluded sets), and the collection keeps every member entity at the
// same prefix position in both A's and B's dense arrays, so Get and
// iteration are O(1)/O(size) with no per-access filtering.
type Collection2[A, B any] struct {
	collectedA *ecs.ComponentSet[A]
	collectedB *ecs.ComponentSet[B]
	included   []ecs.GenericComponentSet
	excluded   []ecs.GenericComponentSet

	members map[ecs.Entity]struct{}
	size    int

	handles []releaseHandle
}

// NewCollection2 constructs a collection over the collected component
// types A and B, requiring every included set and forbidding every
// excluded set. Neither A nor B may be registered as a fixed-storage
// component, since maintaining the shared prefix invariant requires
// swapping their slots in lockstep. Entities that already qualify when
// the collection is built become members immediately.
func NewCollection2[A, B any](w *ecs.World, included, excluded []ecs.GenericComponentSet) *Collection2[A, B] {
	c := &Collection2[A, B]{
		collectedA: ecs.Storage[A](w),
		collectedB: ecs.Storage[B](w),
		included:   included,
		excluded:   excluded,
		members:    map[ecs.Entity]struct{}{},
	}
	c.attach()
	c.collectedA.ForEachEntity(func(e ecs.Entity) bool { c.recheck(e); return true })
	return c
}

func (c *Collection2[A, B]) attach() {
	c.handles = append(c.handles,
		c.collectedA.OnCreate().Subscribe(func(e ecs.Entity) bool { c.recheck(e); return true }),
		c.collectedA.OnRemove().Subscribe(func(e ecs.Entity) bool { c.forceDemote(e); return true }),
		c.collectedB.OnCreate().Subscribe(func(e ecs.Entity) bool { c.recheck(e); return true }),
		c.collectedB.OnRemove().Subscribe(func(e ecs.Entity) bool { c.forceDemote(e); return true }),
	)
	for _, inc := range c.included {
		c.handles = append(c.handles,
			inc.OnCreate().Subscribe(func(e ecs.Entity) bool { c.recheck(e); return true }),
			inc.OnRemove().Subscribe(func(e ecs.Entity) bool { c.forceDemote(e); return true }),
		)
	}
	for _, exc := range c.excluded {
		c.handles = append(c.handles,
			exc.OnCreate().Subscribe(func(e ecs.Entity) bool { c.forceDemote(e); return true }),
			exc.OnRemove().Subscribe(func(e ecs.Entity) bool { c.recheck(e); return true }),
		)
	}
}

// Detach unsubscribes the collection from every set it observes.
func (c *Collection2[A, B]) Detach() {
	for _, h := range c.handles {
		h.Release()
	}
	c.handles = nil
}

func (c *Collection2[A, B]) isCandidate(e ecs.Entity) bool {
	if !c.collectedA.Contains(e) || !c.collectedB.Contains(e) {
		return false
	}
	for _, inc := range c.included {
		if !inc.Contains(e) {
			return false
		}
	}
	for _, exc := range c.excluded {
		if exc.Contains(e) {
			return false
		}
	}
	return true
}

func (c *Collection2[A, B]) recheck(e ecs.Entity) {
	if _, wasMember := c.members[e]; wasMember {
		return
	}
	if c.isCandidate(e) {
		c.promote(e)
	}
}

func (c *Collection2[A, B]) forceDemote(e ecs.Entity) {
	if _, ok := c.members[e]; ok {
		c.demote(e)
	}
}

// promote moves e into both collectedA's and collectedB's prefix at the
// same index, so the two dense arrays stay aligned for O(1) Get.
func (c *Collection2[A, B]) promote(e ecs.Entity) {
	posA, okA := c.collectedA.PositionOf(e)
	posB, okB := c.collectedB.PositionOf(e)
	if !okA || !okB {
		return
	}
	target := c.size
	if posA != target {
		if err := c.collectedA.SwapPositions(posA, target); err != nil {
			return
		}
	}
	if posB != target {
		if err := c.collectedB.SwapPositions(posB, target); err != nil {
			return
		}
	}
	c.members[e] = struct{}{}
	c.size++
}

func (c *Collection2[A, B]) demote(e ecs.Entity) {
	last := c.size - 1
	if posA, ok := c.collectedA.PositionOf(e); ok && posA != last {
		_ = c.collectedA.SwapPositions(posA, last)
	}
	if posB, ok := c.collectedB.PositionOf(e); ok && posB != last {
		_ = c.collectedB.SwapPositions(posB, last)
	}
	delete(c.members, e)
	c.size--
}

// Len returns the number of entities currently in the collection.
func (c *Collection2[A, B]) Len() int { return c.size }

// Contains reports whether e is currently a member.
func (c *Collection2[A, B]) Contains(e ecs.Entity) bool {
	_, ok := c.members[e]
	return ok
}

// Get returns pointers to e's collected A and B components. Panics if e
// is not a member of either underlying set.
func (c *Collection2[A, B]) Get(e ecs.Entity) (*A, *B) {
	return c.collectedA.GetPtr(e), c.collectedB.GetPtr(e)
}

// ForEach walks the collection's prefix range. A false return from fn
// halts iteration.
func (c *Collection2[A, B]) ForEach(fn func(e ecs.Entity, a *A, b *B) bool) {
	for pos := 0; pos < c.size; pos++ {
		e := c.collectedA.At(pos)
		a, b := c.Get(e)
		if !fn(e, a, b) {
			return
		}
	}
}
