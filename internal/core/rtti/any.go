package rtti

import "reflect"

// Any is a type-erased value container built on Go's native interface{}
// and the standard reflect package. Go's interface value already carries
// a type descriptor and a data pointer, so there is no separate vtable
// to instantiate; see DESIGN.md for why no hand-rolled vtable or
// third-party reflection library is used here.
//
// An owning Any stores its payload directly in value. A reference Any
// (constructed via NewAnyRef) stores a pointer to the payload instead, so
// mutation through Data()/a live ComponentSet slot is visible to later
// reads, but Type()/As/Equal must see through that pointer to the
// logical type and value, never *T.
type Any struct {
	value   any
	isRef   bool
	isConst bool
}

// NewAny constructs an owning Any holding v.
func NewAny(v any) Any {
	return Any{value: v}
}

// NewAnyRef constructs a reference-type Any pointing at an external
// value. ptr must be a pointer; const is preserved by the caller not
// passing a pointer it intends to keep mutating through this Any.
func NewAnyRef(ptr any, isConst bool) Any {
	return Any{value: ptr, isRef: true, isConst: isConst}
}

// payload returns the logical value a holds: the stored value itself for
// an owning Any, or the pointee for a reference Any.
func (a Any) payload() any {
	if a.value == nil {
		return nil
	}
	if a.isRef {
		rv := reflect.ValueOf(a.value)
		if rv.Kind() == reflect.Pointer && !rv.IsNil() {
			return rv.Elem().Interface()
		}
	}
	return a.value
}

// Type returns the logical type of the stored value (never a pointer
// type for a reference Any, even though the reference is held as a
// pointer internally), or nil if empty.
func (a Any) Type() reflect.Type {
	if a.value == nil {
		return nil
	}
	t := reflect.TypeOf(a.value)
	if a.isRef && t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// Empty reports whether a holds no value.
func (a Any) Empty() bool { return a.value == nil }

// IsRef reports whether a was constructed as a reference.
func (a Any) IsRef() bool { return a.isRef }

// IsLocal reports whether a owns its storage locally (the complement of
// IsRef in this implementation, since Go does not distinguish inline vs.
// heap storage at this layer the way the source's vtable does).
func (a Any) IsLocal() bool { return !a.isRef }

// IsConst reports whether a is a const reference.
func (a Any) IsConst() bool { return a.isConst }

// Data returns the logical stored value, or nil for an empty or
// const-reference Any (mirroring the source's "null for const
// references" rule).
func (a Any) Data() any {
	if a.isConst {
		return nil
	}
	return a.payload()
}

// CData always returns the logical stored value, bypassing the const
// guard.
func (a Any) CData() any { return a.payload() }

// Ref returns a non-const reference-type Any pointing at a's payload.
func (a Any) Ref() Any { return NewAnyRef(a.value, false) }

// CRef returns a const reference-type Any pointing at a's payload.
func (a Any) CRef() Any { return NewAnyRef(a.value, true) }

// As returns the stored value as T iff its logical dynamic type is
// exactly T. For a reference Any this dereferences the internal pointer
// rather than failing the assertion against *T.
func As[T any](a Any) (T, bool) {
	if a.isRef {
		ptr, ok := a.value.(*T)
		if !ok || ptr == nil {
			var zero T
			return zero, false
		}
		return *ptr, true
	}
	v, ok := a.value.(T)
	return v, ok
}

// TryCast returns the stored value as T, first by direct type assertion
// and then, for T interface types, by structural satisfaction (Go's
// native interface assertion already performs the "compatible base" check
// a manual parent-chain walk would otherwise be needed for).
func TryCast[T any](a Any) (T, bool) {
	return As[T](a)
}

// Cast returns TryCast's result or ErrTypeMismatch.
func Cast[T any](a Any) (T, error) {
	v, ok := TryCast[T](a)
	if !ok {
		var zero T
		return zero, ErrTypeMismatch
	}
	return v, nil
}

// Convert attempts, in order: identity (a's type already matches name),
// a one-hop parent upcast, a registered conversion, then recursion
// through parents. Returns an empty Any on failure.
func Convert(a Any, name string) Any {
	if a.Empty() {
		return Any{}
	}
	ti, ok := infoForType(a.Type())
	if !ok {
		return Any{}
	}
	if ti.Name() == name {
		return a
	}
	return convertVia(ti, a, name)
}

func convertVia(ti *TypeInfo, a Any, name string) Any {
	ti.mu.RLock()
	parents := append([]parentNode(nil), ti.parents...)
	conversions := append([]conversionNode(nil), ti.conversions...)
	ti.mu.RUnlock()

	for _, p := range parents {
		if p.name == name {
			return a
		}
	}
	for _, c := range conversions {
		if c.name == name {
			if out, err := c.fn(a.payload()); err == nil {
				return NewAny(out)
			}
		}
	}
	for _, p := range parents {
		if pi, ok := infoForType(p.typ); ok {
			if out := convertVia(pi, a, name); !out.Empty() {
				return out
			}
		}
	}
	return Any{}
}

// Equal reports any-level equality: two empty Anys are equal; otherwise
// the dynamic types must match and reflect.DeepEqual must hold on the
// payloads, which is this module's default vtable-provided value
// equality (types without a more specific notion of equality degrade to
// this rather than to pointer identity, since Go's interface comparison
// already is value comparison for comparable types). Comparing a
// reference Any against an owning Any of the same logical type and value
// is equal, since payload() sees through the reference.
func Equal(a, b Any) bool {
	if a.Empty() && b.Empty() {
		return true
	}
	if a.Empty() != b.Empty() {
		return false
	}
	if a.Type() != b.Type() {
		return false
	}
	return reflect.DeepEqual(a.payload(), b.payload())
}

// Invoke looks up a function registered on a's logical dynamic type and
// calls it with a's payload as the receiver.
func Invoke(a Any, name string, args ...any) (Any, error) {
	if a.Empty() {
		return Any{}, ErrTypeMismatch
	}
	ti, ok := infoForType(a.Type())
	if !ok {
		return Any{}, ErrTypeMismatch
	}
	out, err := ti.Invoke(a.payload(), name, args...)
	if err != nil {
		return Any{}, err
	}
	return NewAny(out), nil
}
