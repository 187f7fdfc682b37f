package ecs

import (
	"reflect"
	"sync"
)

// ComponentTraits are the per-type compile-time constants the ECS reads
// when building a component set: the pool's page size, and whether the
// type is fixed-storage (forcing in-place erasure and forbidding
// ordering/sorting/collection).
type ComponentTraits struct {
	PageSize int
	Fixed    bool
}

// DefaultComponentTraits is applied to any type that has not called
// RegisterTraits.
var DefaultComponentTraits = ComponentTraits{PageSize: 1024, Fixed: false}

var (
	traitsMu sync.RWMutex
	traits   = map[reflect.Type]ComponentTraits{}
)

// RegisterTraits installs traits for T. It must be called before the
// first ComponentSet[T] is created for any world; traits are read once
// when a component set is constructed.
func RegisterTraits[T any](t ComponentTraits) {
	if t.PageSize <= 0 {
		t.PageSize = DefaultComponentTraits.PageSize
	}
	traitsMu.Lock()
	defer traitsMu.Unlock()
	traits[reflect.TypeFor[T]()] = t
}

// TraitsOf returns the registered traits for T, or DefaultComponentTraits
// if none were registered.
func TraitsOf[T any]() ComponentTraits {
	traitsMu.RLock()
	defer traitsMu.RUnlock()
	if t, ok := traits[reflect.TypeFor[T]()]; ok {
		return t
	}
	return DefaultComponentTraits
}

// isEmptyType reports whether T has zero size, making it eligible for
// the zero-cost empty component pool specialization.
func isEmptyType[T any]() bool {
	var zero T
	return reflect.TypeOf(&zero).Elem().Size() == 0
}
