package ecs

import (
	"reflect"

	"ecsforge/internal/core/delegate"
	"ecsforge/internal/core/ecs/storage"
	"ecsforge/internal/core/rtti"
)

// GenericComponentSet is the type-erased base every ComponentSet[T]
// satisfies: the entity-set surface plus value access through rtti.Any,
// so a World can hold heterogeneous component sets in one map keyed by
// reflect.Type.
type GenericComponentSet interface {
	Contains(e Entity) bool
	Len() int
	RemoveEntity(e Entity)
	GetAny(e Entity) rtti.Any
	ReplaceAny(e Entity, v rtti.Any) error
	InsertAny(e Entity, v rtti.Any) error
	Type() reflect.Type
	OnCreate() delegate.Proxy[Entity]
	OnRemove() delegate.Proxy[Entity]
}

// pool abstracts over storage.Pool[T] and storage.EmptyPool so
// ComponentSet[T] can share one implementation for both.
type pool[T any] interface {
	Emplace(i int, value T)
	Erase(i int)
	Get(i int) T
	Set(i int, value T)
	IsLocked(i int) bool
	SetLocked(i int, locked bool) bool
	IsEnabled(i int) bool
	SetEnabled(i int, enabled bool) bool
	MoveValue(to, from int)
	SwapValue(a, b int)
}

// valuePool adapts *storage.Pool[T] to the pool[T] interface.
type valuePool[T any] struct{ *storage.Pool[T] }

// emptyPool adapts *storage.EmptyPool to pool[T] for zero-size T: values
// are never actually stored, only the enabled/locked-always-false bits.
type emptyPool[T any] struct{ *storage.EmptyPool }

func (p emptyPool[T]) Emplace(i int, value T) { p.EmptyPool.Emplace(i) }
func (p emptyPool[T]) Get(i int) T            { var zero T; return zero }
func (p emptyPool[T]) Set(i int, value T)     {}
func (p emptyPool[T]) MoveValue(to, from int) { p.EmptyPool.MoveValue(to, from) }
func (p emptyPool[T]) SwapValue(a, b int)     { p.EmptyPool.SwapValue(a, b) }

// ComponentSet is the type-safe, fixed-component-type storage described
// in SPEC_FULL §4.3: an EntitySet plus a typed pool plus the five
// create/modify/remove/lock/enable events.
type ComponentSet[T any] struct {
	typ reflect.Type

	entities *storage.EntitySet
	values   pool[T]
	fixed    bool
	empty    bool

	onCreate delegate.Event[Entity]
	onModify delegate.Event[Entity]
	onRemove delegate.Event[Entity]
	onLock   delegate.Event[lockToggle]
	onEnable delegate.Event[enableToggle]
}

type lockToggle struct {
	Entity Entity
	Locked bool
}

type enableToggle struct {
	Entity  Entity
	Enabled bool
}

// NewComponentSet constructs an empty ComponentSet for T using the page
// size and fixed-storage trait registered for T (see traits.go).
func NewComponentSet[T any]() *ComponentSet[T] {
	traits := TraitsOf[T]()
	empty := isEmptyType[T]()
	var values pool[T]
	if empty {
		values = emptyPool[T]{storage.NewEmptyPool(traits.PageSize)}
	} else {
		values = valuePool[T]{storage.NewPool[T](traits.PageSize)}
	}
	return &ComponentSet[T]{
		typ:      reflect.TypeFor[T](),
		entities: storage.NewEntitySet(),
		values:   values,
		fixed:    traits.Fixed,
		empty:    empty,
	}
}

// Type returns the reflect.Type this set stores components for.
func (s *ComponentSet[T]) Type() reflect.Type { return s.typ }

// Len returns the number of entities currently holding this component.
func (s *ComponentSet[T]) Len() int { return s.entities.Len() }

// Contains reports whether e currently holds this component.
func (s *ComponentSet[T]) Contains(e Entity) bool { return s.entities.Contains(e) }

// ForEachEntity walks the entities holding this component in dense
// order, independent of their component values. This is the primitive
// views use to walk whichever set they pick as the driving set.
func (s *ComponentSet[T]) ForEachEntity(fn func(Entity) bool) {
	s.entities.ForEach(fn)
}

// OnCreate exposes the create-event subscription surface.
func (s *ComponentSet[T]) OnCreate() delegate.Proxy[Entity] { return delegate.NewProxy(&s.onCreate) }

// OnModify exposes the modify-event subscription surface.
func (s *ComponentSet[T]) OnModify() delegate.Proxy[Entity] { return delegate.NewProxy(&s.onModify) }

// OnRemove exposes the remove-event subscription surface.
func (s *ComponentSet[T]) OnRemove() delegate.Proxy[Entity] { return delegate.NewProxy(&s.onRemove) }

// Get returns the component value bound to e. Panics if e is not a
// member, matching the unchecked direct-index access pattern used for
// the common hot-path case; callers that need safety should check
// Contains first or use Apply.
func (s *ComponentSet[T]) Get(e Entity) T {
	pos, ok := s.entities.Find(e)
	if !ok {
		panic(ErrMissingEntityFor(e, s.typ.String()))
	}
	return s.values.Get(pos)
}

// GetPtr returns a pointer to the component value bound to e, suitable
// for in-place mutation without going through Replace. Panics if e is
// not a member.
func (s *ComponentSet[T]) GetPtr(e Entity) *T {
	pos, ok := s.entities.Find(e)
	if !ok {
		panic(ErrMissingEntityFor(e, s.typ.String()))
	}
	if vp, ok := s.values.(valuePool[T]); ok {
		return vp.GetPtr(pos)
	}
	v := s.values.Get(pos)
	return &v
}

// Emplace constructs the component for e in place, with automatic
// constructor-panic rollback: if fn panics, the provisional entity
// registration is undone via the entity set's swap-and-pop erase and
// the panic is re-raised, so no create event is ever emitted for a
// component that failed to construct.
func (s *ComponentSet[T]) Emplace(e Entity, fn func() T) (err error) {
	if s.entities.Contains(e) {
		return ErrDuplicateInsertFor(e, s.typ.String())
	}
	s.entities.Insert(e)
	pos, _ := s.entities.Find(e)
	defer func() {
		if r := recover(); r != nil {
			s.entities.Erase(e)
			panic(r)
		}
	}()
	value := fn()
	s.values.Emplace(pos, value)
	s.onCreate.Dispatch(e)
	return nil
}

// Insert is a convenience wrapper over Emplace for a pre-built value.
func (s *ComponentSet[T]) Insert(e Entity, value T) error {
	return s.Emplace(e, func() T { return value })
}

// PushBack appends the component for e without checking for an existing
// membership (the caller already knows e is new), matching the source's
// uncontested fast-insert path used when iterating a just-created batch.
func (s *ComponentSet[T]) PushBack(e Entity, value T) {
	s.entities.PushBack(e)
	pos, _ := s.entities.Find(e)
	s.values.Emplace(pos, value)
	s.onCreate.Dispatch(e)
}

// Replace overwrites the component bound to e and fires OnModify.
func (s *ComponentSet[T]) Replace(e Entity, value T) error {
	pos, ok := s.entities.Find(e)
	if !ok {
		return ErrMissingEntityFor(e, s.typ.String())
	}
	s.values.Set(pos, value)
	s.onModify.Dispatch(e)
	return nil
}

// Apply mutates the component bound to e in place via fn and fires
// OnModify.
func (s *ComponentSet[T]) Apply(e Entity, fn func(*T)) error {
	pos, ok := s.entities.Find(e)
	if !ok {
		return ErrMissingEntityFor(e, s.typ.String())
	}
	if vp, ok := s.values.(valuePool[T]); ok {
		fn(vp.GetPtr(pos))
	} else {
		v := s.values.Get(pos)
		fn(&v)
		s.values.Set(pos, v)
	}
	s.onModify.Dispatch(e)
	return nil
}

// RemoveEntity erases e's component per the erase policy in SPEC_FULL
// §4.3: locked or fixed-trait components degrade to FixedErase (tombstoned
// in place); otherwise swap-and-pop is used. The remove event fires
// before either erase strategy runs, so listeners observe the dying
// component at its live position.
func (s *ComponentSet[T]) RemoveEntity(e Entity) {
	pos, ok := s.entities.Find(e)
	if !ok {
		return
	}
	s.onRemove.Dispatch(e)
	// Listeners (collections) may have moved e to another position.
	pos, ok = s.entities.Find(e)
	if !ok {
		return
	}

	if s.fixed || s.values.IsLocked(pos) {
		s.values.Erase(pos)
		s.entities.FixedErase(e)
		return
	}

	last := s.entities.Len() - 1
	if pos != last {
		s.values.MoveValue(pos, last)
	}
	s.values.Erase(last)
	s.entities.Erase(e)
}

// IsLocked reports whether e's component is locked against relocation.
func (s *ComponentSet[T]) IsLocked(e Entity) bool {
	pos, ok := s.entities.Find(e)
	if !ok {
		return false
	}
	return s.values.IsLocked(pos)
}

// SetLocked toggles e's lock bit and fires OnLock after the toggle.
// Empty component types never emit lock events, since locking is a
// permanent no-op for them.
func (s *ComponentSet[T]) SetLocked(e Entity, locked bool) error {
	pos, ok := s.entities.Find(e)
	if !ok {
		return ErrMissingEntityFor(e, s.typ.String())
	}
	s.values.SetLocked(pos, locked)
	if !s.empty {
		s.onLock.Dispatch(lockToggle{Entity: e, Locked: locked})
	}
	return nil
}

// IsEnabled reports whether e's component is currently enabled.
func (s *ComponentSet[T]) IsEnabled(e Entity) bool {
	pos, ok := s.entities.Find(e)
	if !ok {
		return false
	}
	return s.values.IsEnabled(pos)
}

// SetEnabled toggles e's enabled bit and fires OnEnable after the
// toggle.
func (s *ComponentSet[T]) SetEnabled(e Entity, enabled bool) error {
	pos, ok := s.entities.Find(e)
	if !ok {
		return ErrMissingEntityFor(e, s.typ.String())
	}
	s.values.SetEnabled(pos, enabled)
	s.onEnable.Dispatch(enableToggle{Entity: e, Enabled: enabled})
	return nil
}

// PositionOf returns e's dense position within this set, for callers
// (collections) that need to reorder the set directly.
func (s *ComponentSet[T]) PositionOf(e Entity) (int, bool) {
	return s.entities.Find(e)
}

// At returns the entity stored at dense position pos, for callers
// walking a prefix range directly.
func (s *ComponentSet[T]) At(pos int) Entity {
	return s.entities.At(pos)
}

// SwapPositions exchanges the entities (and their component values) at
// dense positions a and b. Used by collections to maintain the
// membership prefix invariant; rejected for fixed or locked components,
// since the whole point of those traits is that a component's position
// never moves.
func (s *ComponentSet[T]) SwapPositions(a, b int) error {
	if s.fixed {
		return ErrOrderViolationFor(Tombstone, s.typ.String())
	}
	if s.values.IsLocked(a) || s.values.IsLocked(b) {
		return ErrOrderViolationFor(Tombstone, s.typ.String())
	}
	s.entities.Swap(a, b)
	s.values.SwapValue(a, b)
	return nil
}

// GetAny returns e's component boxed as a non-const rtti.Any reference.
// For non-empty component types the reference points at the pool's live
// storage slot; mutating through it is visible to subsequent Get calls
// without going through Replace (and so does not fire OnModify).
func (s *ComponentSet[T]) GetAny(e Entity) rtti.Any {
	if !s.entities.Contains(e) {
		return rtti.Any{}
	}
	return rtti.NewAnyRef(s.GetPtr(e), false)
}

// ReplaceAny type-checks v against T and replaces e's component.
func (s *ComponentSet[T]) ReplaceAny(e Entity, v rtti.Any) error {
	value, ok := rtti.As[T](v)
	if !ok {
		return ErrTypeMismatch
	}
	return s.Replace(e, value)
}

// InsertAny type-checks v against T and inserts it for e.
func (s *ComponentSet[T]) InsertAny(e Entity, v rtti.Any) error {
	value, ok := rtti.As[T](v)
	if !ok {
		return ErrTypeMismatch
	}
	return s.Insert(e, value)
}

// ApplyAny applies fn against a boxed copy of e's component, type-checks
// the Any that fn returns against T, and writes it back as the new
// component value.
func (s *ComponentSet[T]) ApplyAny(e Entity, fn func(rtti.Any) rtti.Any) error {
	pos, ok := s.entities.Find(e)
	if !ok {
		return ErrMissingEntityFor(e, s.typ.String())
	}
	current := s.values.Get(pos)
	result := fn(rtti.NewAny(current))
	value, ok := rtti.As[T](result)
	if !ok {
		return ErrTypeMismatch
	}
	return s.Replace(e, value)
}
