package query

import (
	"errors"
	"fmt"

	"ecsforge/internal/core/ecs"
)

// ErrReadOnlyWorld is returned by Finalize when OrderBy was called on a
// read-only builder.
var ErrReadOnlyWorld = errors.New("query: cannot create component sets on a read-only world")

// ErrOptionalWithoutInclude is returned when Optional names a type that
// was never passed to Include.
var ErrOptionalWithoutInclude = errors.New("query: optional component must also be included")

// ErrConflictingConstraint is returned when a type appears in both the
// included and excluded sets of the same query.
var ErrConflictingConstraint = errors.New("query: component cannot be both included and excluded")

// Builder accumulates a query's Include/Optional/Exclude/OrderBy lists
// against a world, ready to be materialized into a View2/View3 or a
// Collection by the caller once the accumulated types are known. The
// builder itself is untyped (it just tracks type identity through the
// component sets it fetches); the concrete Build call is made by the
// caller with the type parameters filled in, since Go generics cannot
// express "build a view over whatever types got accumulated" on an
// untyped builder.
type Builder struct {
	world *ecs.World

	readOnly bool

	include  []ecs.GenericComponentSet
	optional []ecs.GenericComponentSet
	exclude  []ecs.GenericComponentSet
	ordered  []ecs.GenericComponentSet

	includeTypes  map[string]bool
	optionalTypes map[string]bool

	includeSig Signature
	excludeSig Signature

	err error
}

// NewBuilder starts a query against w. A read-only builder rejects only
// OrderBy (ErrReadOnlyWorld at Finalize time); Include, Optional and
// Exclude fetch their component sets through ecs.Storage on every
// builder, which creates any set the world does not have yet.
func NewBuilder(w *ecs.World, readOnly bool) *Builder {
	return &Builder{
		world:         w,
		readOnly:      readOnly,
		includeTypes:  map[string]bool{},
		optionalTypes: map[string]bool{},
	}
}

func storageFor[T any](b *Builder) *ecs.ComponentSet[T] {
	return ecs.Storage[T](b.world)
}

// Include adds T to the required set.
func Include[T any](b *Builder) *Builder {
	set := storageFor[T](b)
	b.include = append(b.include, set)
	b.includeTypes[set.Type().String()] = true
	b.includeSig = b.includeSig.Or(SignatureOf(set.Type()))
	return b
}

// Optional adds T to the optional set; T must also have been passed to
// Include (SPEC_FULL §4.6), since "optional" here means "present or
// absent, but tracked" rather than "maybe not even included".
func Optional[T any](b *Builder) *Builder {
	set := storageFor[T](b)
	b.optional = append(b.optional, set)
	b.optionalTypes[set.Type().String()] = true
	return b
}

// Exclude adds T to the excluded set.
func Exclude[T any](b *Builder) *Builder {
	set := storageFor[T](b)
	b.exclude = append(b.exclude, set)
	b.excludeSig = b.excludeSig.Or(SignatureOf(set.Type()))
	return b
}

// OrderBy marks T as a type the resulting query must be materialized as
// a Collection over (collections, not views, maintain iteration order).
func OrderBy[T any](b *Builder) *Builder {
	if b.readOnly {
		b.err = fmt.Errorf("%w: OrderBy requires a collection", ErrReadOnlyWorld)
		return b
	}
	set := storageFor[T](b)
	b.ordered = append(b.ordered, set)
	return b
}

// RequiresCollection reports whether any OrderBy call was made, meaning
// the caller must materialize this builder as a Collection rather than
// a View.
func (b *Builder) RequiresCollection() bool { return len(b.ordered) > 0 }

// Finalize validates the accumulated constraints: every optional type
// must also be included, and OrderBy against a read-only world is
// rejected. Returns the validated include/exclude lists for the caller
// to pass into NewView2/NewView3/NewCollection, or for the BuildView2/
// BuildView3/BuildCollection/BuildCollection2 helpers below to
// materialize directly.
func (b *Builder) Finalize() (include, optional, exclude []ecs.GenericComponentSet, err error) {
	if b.err != nil {
		return nil, nil, nil, b.err
	}
	for typeName := range b.optionalTypes {
		if !b.includeTypes[typeName] {
			return nil, nil, nil, fmt.Errorf("%w: %s", ErrOptionalWithoutInclude, typeName)
		}
	}
	if b.includeSig.Intersects(b.excludeSig) {
		return nil, nil, nil, ErrConflictingConstraint
	}
	return b.include, b.optional, b.exclude, nil
}

// ErrArityMismatch is returned by a Build* materialization call when the
// builder's accumulated Include/OrderBy types don't match the compile-time
// type parameters the caller asked for.
var ErrArityMismatch = errors.New("query: builder's accumulated types do not match the requested arity")

func hasType[T any](sets []ecs.GenericComponentSet) bool {
	for _, s := range sets {
		if _, ok := s.(*ecs.ComponentSet[T]); ok {
			return true
		}
	}
	return false
}

func withoutType[T any](sets []ecs.GenericComponentSet) []ecs.GenericComponentSet {
	filtered := make([]ecs.GenericComponentSet, 0, len(sets))
	for _, s := range sets {
		if _, ok := s.(*ecs.ComponentSet[T]); ok {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}

// BuildView2 finalizes b and materializes a View2 over A and B, which
// must be exactly the builder's two included types.
func BuildView2[A, B any](b *Builder) (*View2[A, B], error) {
	include, optional, exclude, err := b.Finalize()
	if err != nil {
		return nil, err
	}
	if len(include) != 2 || !hasType[A](include) || !hasType[B](include) {
		return nil, ErrArityMismatch
	}
	return NewView2[A, B](b.world, optional, exclude), nil
}

// BuildView3 finalizes b and materializes a View3 over A, B and C, which
// must be exactly the builder's three included types.
func BuildView3[A, B, C any](b *Builder) (*View3[A, B, C], error) {
	include, optional, exclude, err := b.Finalize()
	if err != nil {
		return nil, err
	}
	if len(include) != 3 || !hasType[A](include) || !hasType[B](include) || !hasType[C](include) {
		return nil, ErrArityMismatch
	}
	return NewView3[A, B, C](b.world, optional, exclude), nil
}

// BuildCollection finalizes b and materializes a Collection over T,
// which must be the builder's single OrderBy type. Any other included
// types become the collection's required (non-collected) set list.
func BuildCollection[T any](b *Builder) (*Collection[T], error) {
	include, _, exclude, err := b.Finalize()
	if err != nil {
		return nil, err
	}
	if len(b.ordered) != 1 || !hasType[T](b.ordered) {
		return nil, ErrArityMismatch
	}
	return NewCollection[T](b.world, withoutType[T](include), exclude), nil
}

// BuildCollection2 finalizes b and materializes a Collection2 over A and
// B, which must be exactly the builder's two OrderBy types.
func BuildCollection2[A, B any](b *Builder) (*Collection2[A, B], error) {
	include, _, exclude, err := b.Finalize()
	if err != nil {
		return nil, err
	}
	if len(b.ordered) != 2 || !hasType[A](b.ordered) || !hasType[B](b.ordered) {
		return nil, ErrArityMismatch
	}
	remaining := withoutType[B](withoutType[A](include))
	return NewCollection2[A, B](b.world, remaining, exclude), nil
}
