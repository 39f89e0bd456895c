// Package emitter provides a typed publish/subscribe primitive.
//
// Every component of graphview that notifies listeners (graph changes,
// scene pointer events, view events, viewport gestures) owns one
// Emitter per event payload type instead of a string-keyed event bus.
//
// Emitter is NOT safe for concurrent use. It is meant to be driven from
// a single event loop.
package emitter

import "slices"

// handler is one registered listener.
type handler[E any] struct {
	fn   func(E)
	once bool
	dead bool
}

// Emitter dispatches events of type E to registered listeners in
// registration order. The zero value is ready to use.
type Emitter[E any] struct {
	handlers []*handler[E]
}

// On registers fn and returns a function that removes it.
// The returned function is idempotent.
func (e *Emitter[E]) On(fn func(E)) (off func()) {
	return e.add(fn, false)
}

// Once registers fn for a single delivery. The listener is removed before
// it is invoked, so an Emit from inside fn does not reach it again.
func (e *Emitter[E]) Once(fn func(E)) (off func()) {
	return e.add(fn, true)
}

func (e *Emitter[E]) add(fn func(E), once bool) func() {
	h := &handler[E]{fn: fn, once: once}
	e.handlers = append(e.handlers, h)
	return func() { e.remove(h) }
}

func (e *Emitter[E]) remove(h *handler[E]) {
	if h.dead {
		return
	}
	h.dead = true
	e.handlers = slices.DeleteFunc(e.handlers, func(x *handler[E]) bool { return x == h })
}

// Emit delivers ev to every listener registered at the time of the call.
// Listeners removed while the dispatch is running are skipped.
func (e *Emitter[E]) Emit(ev E) {
	if len(e.handlers) == 0 {
		return
	}
	snapshot := slices.Clone(e.handlers)
	for _, h := range snapshot {
		if h.dead {
			continue
		}
		if h.once {
			e.remove(h)
		}
		h.fn(ev)
	}
}

// Len returns the number of registered listeners.
func (e *Emitter[E]) Len() int {
	return len(e.handlers)
}

// Clear removes all listeners.
func (e *Emitter[E]) Clear() {
	for _, h := range e.handlers {
		h.dead = true
	}
	e.handlers = nil
}
