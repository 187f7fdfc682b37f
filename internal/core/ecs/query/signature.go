// Package query implements views, collections and the query builder DSL
// that sit on top of ecs component sets.
package query

import (
	"reflect"
	"sync"
)

// Signature is a bitset over component types, used by the query builder
// to check that no type is both included and excluded. Bit positions are assigned dynamically the first time a type
// is seen rather than fixed at compile time, since this module's
// component set is open-ended.
type Signature uint64

var (
	bitMu   sync.Mutex
	bitPos  = map[reflect.Type]int{}
	nextBit = 0
)

func bitFor(t reflect.Type) (int, bool) {
	bitMu.Lock()
	defer bitMu.Unlock()
	if pos, ok := bitPos[t]; ok {
		return pos, true
	}
	if nextBit >= 64 {
		return 0, false
	}
	pos := nextBit
	bitPos[t] = pos
	nextBit++
	return pos, true
}

// SignatureOf builds a Signature from the given types. Types beyond the
// 64th distinct type ever seen by this process are silently dropped from
// the signature rather than returning an error.
func SignatureOf(types ...reflect.Type) Signature {
	var s Signature
	for _, t := range types {
		if pos, ok := bitFor(t); ok {
			s |= 1 << pos
		}
	}
	return s
}

// Has reports whether t's bit is set in s.
func (s Signature) Has(t reflect.Type) bool {
	pos, ok := bitPos[t]
	if !ok {
		return false
	}
	return s&(1<<pos) != 0
}

// Intersects reports whether s and other share any bit.
func (s Signature) Intersects(other Signature) bool {
	return s&other != 0
}

// Disjoint reports whether s and other share no bit.
func (s Signature) Disjoint(other Signature) bool {
	return s&other == 0
}

// Or returns the union of s and other.
func (s Signature) Or(other Signature) Signature {
	return s | other
}
