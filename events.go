package graphview

import (
	"fmt"

	"github.com/gogpu/graphview/internal/emitter"
	"github.com/gogpu/graphview/scene"
)

// EventType identifies an entity event emitted by a GraphView.
type EventType uint8

// Entity events.
const (
	NodeClick EventType = iota
	NodeMousemove
	NodeMouseover
	NodeMouseout
	NodeMousedown
	NodeMouseup
	EdgeClick
	EdgeMousemove
	EdgeMouseover
	EdgeMouseout
	EdgeMousedown
	EdgeMouseup

	numEventTypes
)

var eventTypeNames = [...]string{
	NodeClick:     "nodeClick",
	NodeMousemove: "nodeMousemove",
	NodeMouseover: "nodeMouseover",
	NodeMouseout:  "nodeMouseout",
	NodeMousedown: "nodeMousedown",
	NodeMouseup:   "nodeMouseup",
	EdgeClick:     "edgeClick",
	EdgeMousemove: "edgeMousemove",
	EdgeMouseover: "edgeMouseover",
	EdgeMouseout:  "edgeMouseout",
	EdgeMousedown: "edgeMousedown",
	EdgeMouseup:   "edgeMouseup",
}

func (t EventType) String() string {
	if t < numEventTypes {
		return eventTypeNames[t]
	}
	return "unknown"
}

// MarshalText encodes the event name.
func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (t *EventType) UnmarshalText(b []byte) error {
	v, ok := ParseEventType(string(b))
	if !ok {
		return fmt.Errorf("graphview: unknown event type %q", b)
	}
	*t = v
	return nil
}

// ParseEventType is the inverse of String.
func ParseEventType(s string) (EventType, bool) {
	for i, name := range eventTypeNames {
		if name == s {
			return EventType(i), true
		}
	}
	return 0, false
}

// Event is an entity event. Pointer is the device event that caused it.
type Event struct {
	Type    EventType          `json:"type"`
	Key     string             `json:"key"`
	Pointer scene.PointerEvent `json:"pointer"`
}

// pointerEvents maps a view pointer type to the node and edge events it
// is re-emitted as.
var pointerEvents = map[scene.PointerType][2]EventType{
	scene.PointerMove: {NodeMousemove, EdgeMousemove},
	scene.PointerOver: {NodeMouseover, EdgeMouseover},
	scene.PointerOut:  {NodeMouseout, EdgeMouseout},
	scene.PointerDown: {NodeMousedown, EdgeMousedown},
	scene.PointerUp:   {NodeMouseup, EdgeMouseup},
}

type eventBus struct {
	byType [numEventTypes]emitter.Emitter[Event]
	all    emitter.Emitter[Event]
}

func (b *eventBus) emit(ev Event) {
	b.byType[ev.Type].Emit(ev)
	b.all.Emit(ev)
}

func (b *eventBus) clear() {
	for i := range b.byType {
		b.byType[i].Clear()
	}
	b.all.Clear()
}

// On registers fn for events of type t and returns a function removing it.
func (gv *GraphView) On(t EventType, fn func(Event)) (off func()) {
	if t >= numEventTypes {
		return func() {}
	}
	return gv.events.byType[t].On(fn)
}

// OnAny registers fn for every entity event.
func (gv *GraphView) OnAny(fn func(Event)) (off func()) {
	return gv.events.all.On(fn)
}
