package rtti

import "reflect"

// Constructor0 registers a zero-argument constructor for T.
func Constructor0[T any](fn func() T) {
	ti := Get[T]()
	addConstructor(ti, nil, func(args []any) (any, error) {
		return fn(), nil
	})
}

// Constructor1 registers a one-argument constructor for T.
func Constructor1[T any, A1 any](fn func(A1) T) {
	ti := Get[T]()
	argTypes := []reflect.Type{reflect.TypeFor[A1]()}
	addConstructor(ti, argTypes, func(args []any) (any, error) {
		return fn(args[0].(A1)), nil
	})
}

// Constructor2 registers a two-argument constructor for T.
func Constructor2[T any, A1 any, A2 any](fn func(A1, A2) T) {
	ti := Get[T]()
	argTypes := []reflect.Type{reflect.TypeFor[A1](), reflect.TypeFor[A2]()}
	addConstructor(ti, argTypes, func(args []any) (any, error) {
		return fn(args[0].(A1), args[1].(A2)), nil
	})
}

// Constructor3 registers a three-argument constructor for T.
func Constructor3[T any, A1 any, A2 any, A3 any](fn func(A1, A2, A3) T) {
	ti := Get[T]()
	argTypes := []reflect.Type{reflect.TypeFor[A1](), reflect.TypeFor[A2](), reflect.TypeFor[A3]()}
	addConstructor(ti, argTypes, func(args []any) (any, error) {
		return fn(args[0].(A1), args[1].(A2), args[2].(A3)), nil
	})
}

func addConstructor(ti *TypeInfo, argTypes []reflect.Type, fn func([]any) (any, error)) {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	for _, c := range ti.constructors {
		if sameTypes(c.argTypes, argTypes) {
			return
		}
	}
	ti.constructors = append(ti.constructors, constructorNode{argTypes: argTypes, fn: fn})
}

func sameTypes(a, b []reflect.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
