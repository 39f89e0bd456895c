package scene

import (
	"fmt"
	"time"
)

// PointerType identifies a pointer event.
type PointerType uint8

// Pointer event types.
const (
	// PointerDown is a button press over the node.
	PointerDown PointerType = iota
	// PointerUp is a button release over the node.
	PointerUp
	// PointerUpOutside is a release anywhere else after a press on the node.
	PointerUpOutside
	// PointerMove is a move while the pointer is over the node.
	PointerMove
	// PointerOver is delivered when the pointer enters the node's hit area.
	PointerOver
	// PointerOut is delivered when the pointer leaves the node's hit area.
	PointerOut
	// PointerWheel is a wheel or trackpad scroll step.
	PointerWheel
	// PointerCancel aborts the pointer (for example the window lost focus).
	PointerCancel

	numPointerTypes
)

var pointerTypeNames = [...]string{
	PointerDown:      "down",
	PointerUp:        "up",
	PointerUpOutside: "upoutside",
	PointerMove:      "move",
	PointerOver:      "over",
	PointerOut:       "out",
	PointerWheel:     "wheel",
	PointerCancel:    "cancel",
}

// String returns the lowercase event name.
func (t PointerType) String() string {
	if int(t) < len(pointerTypeNames) {
		return pointerTypeNames[t]
	}
	return "unknown"
}

// ParsePointerType is the inverse of String.
func ParsePointerType(s string) (PointerType, bool) {
	for i, name := range pointerTypeNames {
		if name == s {
			return PointerType(i), true
		}
	}
	return 0, false
}

// MarshalText encodes the event name.
func (t PointerType) MarshalText() ([]byte, error) {
	if t >= numPointerTypes {
		return nil, fmt.Errorf("scene: unknown pointer type %d", t)
	}
	return []byte(t.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (t *PointerType) UnmarshalText(b []byte) error {
	v, ok := ParsePointerType(string(b))
	if !ok {
		return fmt.Errorf("scene: unknown pointer type %q", b)
	}
	*t = v
	return nil
}

// PointerEvent is a device pointer event in canvas coordinates (CSS-style
// pixels, before the device pixel ratio is applied).
type PointerEvent struct {
	Type PointerType `json:"type"`

	// ID distinguishes simultaneous pointers (touch points).
	ID int `json:"id"`

	X float64 `json:"x"`
	Y float64 `json:"y"`

	Button int `json:"button"`

	// DeltaY is the wheel delta in pixels; positive scrolls down (zoom out).
	DeltaY float64 `json:"deltaY,omitempty"`

	Time time.Time `json:"time"`

	// Target is the node the event was dispatched to. Set by Interaction.
	Target *Node `json:"-"`
}
