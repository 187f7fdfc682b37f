package query

import "ecsforge/internal/core/ecs"

// excludedBy reports whether e is present in any of the excluded sets.
func excludedBy(e ecs.Entity, excluded []ecs.GenericComponentSet) bool {
	for _, x := range excluded {
		if x.Contains(e) {
			return true
		}
	}
	return false
}

// optionalHolder is implemented by every view/collection arity so the
// package-level generic Optional accessor can find the right set without
// each arity needing its own typed accessor method (Go disallows generic
// methods).
type optionalHolder interface {
	OptionalSets() []ecs.GenericComponentSet
}

// Optional looks up T among h's optional sets and returns a pointer to
// e's component if both the set is registered as optional on h and e
// currently holds it; otherwise it returns nil rather than excluding e
// from iteration, per SPEC_FULL §4.4's optional-component semantics.
func Optional[T any](h optionalHolder, e ecs.Entity) *T {
	for _, s := range h.OptionalSets() {
		cs, ok := s.(*ecs.ComponentSet[T])
		if !ok {
			continue
		}
		if !cs.Contains(e) {
			return nil
		}
		return cs.GetPtr(e)
	}
	return nil
}

// View2 is a stateless projection over two required component sets, an
// optional set list, and an exclude list. Go generics do not support
// variadic type parameters, so higher arities are distinct named types
// (View3, ...) rather than one variadic View[...Ts].
type View2[A, B any] struct {
	a        *ecs.ComponentSet[A]
	b        *ecs.ComponentSet[B]
	optional []ecs.GenericComponentSet
	exclude  []ecs.GenericComponentSet
}

// NewView2 constructs a view over A and B. optional sets are carried
// through to Optional[T] lookups but never gate membership; exclude sets
// remove any entity they contain from the view entirely. Either slice
// may be nil.
func NewView2[A, B any](w *ecs.World, optional, exclude []ecs.GenericComponentSet) *View2[A, B] {
	return &View2[A, B]{a: ecs.Storage[A](w), b: ecs.Storage[B](w), optional: optional, exclude: exclude}
}

// OptionalSets implements optionalHolder.
func (v *View2[A, B]) OptionalSets() []ecs.GenericComponentSet { return v.optional }

// driving returns whichever of a/b currently holds fewer entities, since
// that bounds the number of candidates the view has to filter.
func (v *View2[A, B]) driving() (ecs.GenericComponentSet, func(func(ecs.Entity) bool)) {
	if v.a.Len() <= v.b.Len() {
		return v.a, v.a.ForEachEntity
	}
	return v.b, v.b.ForEachEntity
}

// Contains reports whether e satisfies the view: present in both A and
// B, absent from every excluded set. Optional sets never affect this.
func (v *View2[A, B]) Contains(e ecs.Entity) bool {
	return v.a.Contains(e) && v.b.Contains(e) && !excludedBy(e, v.exclude)
}

// SizeHint returns the driving set's size, an upper bound on the number
// of accepted entities once exclusion is applied.
func (v *View2[A, B]) SizeHint() int {
	driving, _ := v.driving()
	return driving.Len()
}

// Get returns pointers to e's A and B components. Callers should check
// Contains first; Get panics if e lacks either component.
func (v *View2[A, B]) Get(e ecs.Entity) (*A, *B) {
	return v.a.GetPtr(e), v.b.GetPtr(e)
}

// ForEach walks the driving set and invokes fn for every accepted
// entity. A false return from fn halts iteration.
func (v *View2[A, B]) ForEach(fn func(e ecs.Entity, a *A, b *B) bool) {
	_, each := v.driving()
	each(func(e ecs.Entity) bool {
		if !v.Contains(e) {
			return true
		}
		a, b := v.Get(e)
		return fn(e, a, b)
	})
}

// View3 projects three required component sets plus optional and
// exclude lists.
type View3[A, B, C any] struct {
	a        *ecs.ComponentSet[A]
	b        *ecs.ComponentSet[B]
	c        *ecs.ComponentSet[C]
	optional []ecs.GenericComponentSet
	exclude  []ecs.GenericComponentSet
}

// NewView3 constructs a view over A, B and C.
func NewView3[A, B, C any](w *ecs.World, optional, exclude []ecs.GenericComponentSet) *View3[A, B, C] {
	return &View3[A, B, C]{a: ecs.Storage[A](w), b: ecs.Storage[B](w), c: ecs.Storage[C](w), optional: optional, exclude: exclude}
}

// OptionalSets implements optionalHolder.
func (v *View3[A, B, C]) OptionalSets() []ecs.GenericComponentSet { return v.optional }

func (v *View3[A, B, C]) driving() (ecs.GenericComponentSet, func(func(ecs.Entity) bool)) {
	smallest, each := ecs.GenericComponentSet(v.a), v.a.ForEachEntity
	if v.b.Len() < smallest.Len() {
		smallest, each = v.b, v.b.ForEachEntity
	}
	if v.c.Len() < smallest.Len() {
		smallest, each = v.c, v.c.ForEachEntity
	}
	return smallest, each
}

// Contains reports whether e satisfies the view.
func (v *View3[A, B, C]) Contains(e ecs.Entity) bool {
	return v.a.Contains(e) && v.b.Contains(e) && v.c.Contains(e) && !excludedBy(e, v.exclude)
}

// SizeHint returns the driving set's size.
func (v *View3[A, B, C]) SizeHint() int {
	driving, _ := v.driving()
	return driving.Len()
}

// Get returns pointers to e's A, B and C components.
func (v *View3[A, B, C]) Get(e ecs.Entity) (*A, *B, *C) {
	return v.a.GetPtr(e), v.b.GetPtr(e), v.c.GetPtr(e)
}

// ForEach walks the driving set and invokes fn for every accepted
// entity.
func (v *View3[A, B, C]) ForEach(fn func(e ecs.Entity, a *A, b *B, c *C) bool) {
	_, each := v.driving()
	each(func(e ecs.Entity) bool {
		if !v.Contains(e) {
			return true
		}
		a, b, c := v.Get(e)
		return fn(e, a, b, c)
	})
}
