// Package delegate implements the type-erased callable, ordered event and
// scoped message queue primitives the ECS component sets and the plugin
// registry are built on.
package delegate

// ID identifies a subscription independent of its position in an Event's
// subscriber list. Go closures cannot be compared structurally the way a
// C++ (function pointer, bound data pointer) pair can, so this module
// uses a monotonic id assigned at Subscribe time as the unit of identity
// for Unsubscribe/SubscribeBefore/SubscribeAfter (see DESIGN.md).
type ID uint64

// Func is the subscriber signature shared by every Event: it receives the
// dispatched value and returns whether dispatch should continue. Plain
// notifications (component create/modify/remove events) always return
// true; veto-capable dispatch (message queue send/receive) treats a
// false return as "stop here".
type Func[T any] func(T) bool

type subscriber[T any] struct {
	id ID
	fn Func[T]
}

// Event is an ordered sequence of delegates sharing a signature T.
type Event[T any] struct {
	subs   []subscriber[T]
	nextID ID
}

// Handle is returned by Subscribe and unsubscribes its delegate when
// Release is called. Calling Release more than once, or after the event
// itself has unsubscribed the id by other means, is a safe no-op.
type Handle[T any] struct {
	id    ID
	event *Event[T]
}

// Release unsubscribes the delegate this handle refers to.
func (h Handle[T]) Release() {
	if h.event != nil {
		h.event.Unsubscribe(h.id)
	}
}

// ID returns the stable subscription id behind this handle.
func (h Handle[T]) ID() ID {
	return h.id
}

// Subscribe appends fn to the end of the subscriber list and returns a
// handle carrying its stable id.
func (e *Event[T]) Subscribe(fn Func[T]) Handle[T] {
	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, subscriber[T]{id: id, fn: fn})
	return Handle[T]{id: id, event: e}
}

func (e *Event[T]) indexOf(id ID) int {
	for i, s := range e.subs {
		if s.id == id {
			return i
		}
	}
	return -1
}

// SubscribeBefore inserts fn immediately before the subscriber
// identified by before, or at the front if before is not found.
func (e *Event[T]) SubscribeBefore(before ID, fn Func[T]) Handle[T] {
	e.nextID++
	id := e.nextID
	sub := subscriber[T]{id: id, fn: fn}
	idx := e.indexOf(before)
	if idx < 0 {
		e.subs = append([]subscriber[T]{sub}, e.subs...)
	} else {
		e.subs = append(e.subs, subscriber[T]{})
		copy(e.subs[idx+1:], e.subs[idx:])
		e.subs[idx] = sub
	}
	return Handle[T]{id: id, event: e}
}

// SubscribeAfter inserts fn immediately after the subscriber identified
// by after, or at the end if after is not found.
func (e *Event[T]) SubscribeAfter(after ID, fn Func[T]) Handle[T] {
	e.nextID++
	id := e.nextID
	sub := subscriber[T]{id: id, fn: fn}
	idx := e.indexOf(after)
	if idx < 0 {
		e.subs = append(e.subs, sub)
		return Handle[T]{id: id, event: e}
	}
	e.subs = append(e.subs, subscriber[T]{})
	copy(e.subs[idx+2:], e.subs[idx+1:])
	e.subs[idx+1] = sub
	return Handle[T]{id: id, event: e}
}

// Unsubscribe removes the subscriber with the given id, if present. O(n).
func (e *Event[T]) Unsubscribe(id ID) {
	idx := e.indexOf(id)
	if idx < 0 {
		return
	}
	e.subs = append(e.subs[:idx], e.subs[idx+1:]...)
}

// Dispatch invokes every subscriber in order, ignoring their return
// value. Used for plain notifications such as component lifecycle
// events, which are not vetoable.
func (e *Event[T]) Dispatch(v T) {
	for _, s := range e.subs {
		s.fn(v)
	}
}

// DispatchVeto invokes subscribers in order and stops at the first one
// that returns false. It reports whether every subscriber allowed the
// value through (true) or one of them vetoed it (false). Used by message
// queue send/receive events.
func (e *Event[T]) DispatchVeto(v T) bool {
	for _, s := range e.subs {
		if !s.fn(v) {
			return false
		}
	}
	return true
}

// Len reports the number of active subscribers.
func (e *Event[T]) Len() int {
	return len(e.subs)
}

// Proxy restricts an Event to its subscription surface: external callers
// may (un)subscribe but not dispatch, matching the message queue's send
// and receive event proxies.
type Proxy[T any] struct {
	event *Event[T]
}

// NewProxy wraps event for exposure to code that should not be able to
// dispatch it directly.
func NewProxy[T any](event *Event[T]) Proxy[T] {
	return Proxy[T]{event: event}
}

func (p Proxy[T]) Subscribe(fn Func[T]) Handle[T] { return p.event.Subscribe(fn) }
func (p Proxy[T]) SubscribeBefore(before ID, fn Func[T]) Handle[T] {
	return p.event.SubscribeBefore(before, fn)
}
func (p Proxy[T]) SubscribeAfter(after ID, fn Func[T]) Handle[T] {
	return p.event.SubscribeAfter(after, fn)
}
func (p Proxy[T]) Unsubscribe(id ID) { p.event.Unsubscribe(id) }
