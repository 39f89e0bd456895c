package scene

import (
	"math"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/graphview/internal/emitter"
)

// Deceleration and wheel tuning.
const (
	Friction         = 0.95 // velocity kept per 16.67ms frame
	MinSpeed         = 0.01 // px/ms below which inertia stops
	WheelPercent     = 0.1
	inertiaWindow    = 100 * time.Millisecond
	frameMillis      = 1000.0 / 60
	wheelDeltaFactor = 500
)

// ViewportEvent describes a viewport change.
type ViewportEvent struct {
	// Source is what caused the change: "drag", "pinch", "wheel",
	// "decelerate", "zoom", "fit", "move" or "resize".
	Source   string
	Viewport *Viewport
}

// Viewport is a pan/zoom camera over a world container.
//
// Screen coordinates are logical canvas pixels; world coordinates are the
// coordinate space of World's children. A world point w is shown at
// screen point w*Scale + (X, Y).
//
// Input arrives through HandlePointer; Update advances inertia. Moved is
// emitted on every change, MovedEnd when a pan settles and ZoomedEnd when
// a zoom gesture ends. Programmatic changes emit Moved and MovedEnd.
type Viewport struct {
	// World holds the viewport transform; add content as its children.
	World *Node

	ScreenWidth, ScreenHeight float64
	WorldWidth, WorldHeight   float64

	Moved     emitter.Emitter[ViewportEvent]
	MovedEnd  emitter.Emitter[ViewportEvent]
	ZoomedEnd emitter.Emitter[ViewportEvent]

	minScale, maxScale float64
	paused             bool
	dirty              bool

	pointers  map[int]gg.Point
	last      gg.Point
	lastMove  time.Time
	pinchDist float64
	pinching  bool
	dragging  bool
	velocity  gg.Point
	inertia   bool
}

// NewViewport creates a viewport at scale 1 with the world origin at the
// top left of the screen.
func NewViewport(screenWidth, screenHeight, worldWidth, worldHeight float64) *Viewport {
	return &Viewport{
		World:        NewContainer("viewport"),
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		WorldWidth:   worldWidth,
		WorldHeight:  worldHeight,
		pointers:     make(map[int]gg.Point),
	}
}

// Scale returns the zoom factor.
func (v *Viewport) Scale() float64 { return v.World.ScaleX }

// Position returns the screen position of the world origin.
func (v *Viewport) Position() (x, y float64) { return v.World.X, v.World.Y }

// SetPosition moves the world origin to screen (x, y).
func (v *Viewport) SetPosition(x, y float64) {
	v.World.X, v.World.Y = x, y
	v.changed("move", true)
}

// ToWorld converts a screen point to world coordinates.
func (v *Viewport) ToWorld(sx, sy float64) (x, y float64) {
	s := v.Scale()
	return (sx - v.World.X) / s, (sy - v.World.Y) / s
}

// ToScreen converts a world point to screen coordinates.
func (v *Viewport) ToScreen(x, y float64) (sx, sy float64) {
	s := v.Scale()
	return x*s + v.World.X, y*s + v.World.Y
}

// ScreenWorldWidth returns how many world units fit across the screen.
func (v *Viewport) ScreenWorldWidth() float64 { return v.ScreenWidth / v.Scale() }

// ScreenWorldHeight returns how many world units fit down the screen.
func (v *Viewport) ScreenWorldHeight() float64 { return v.ScreenHeight / v.Scale() }

// VisibleBounds returns the world rectangle covered by the screen.
func (v *Viewport) VisibleBounds() Rect {
	x0, y0 := v.ToWorld(0, 0)
	return RectXYWH(x0, y0, v.ScreenWorldWidth(), v.ScreenWorldHeight())
}

// Center returns the world point shown at the screen center.
func (v *Viewport) Center() (x, y float64) {
	return v.ToWorld(v.ScreenWidth/2, v.ScreenHeight/2)
}

// MoveCenter pans so world (x, y) is at the screen center.
func (v *Viewport) MoveCenter(x, y float64) {
	s := v.Scale()
	v.World.X = v.ScreenWidth/2 - x*s
	v.World.Y = v.ScreenHeight/2 - y*s
	v.changed("move", true)
}

// ClampZoom bounds the scale. Zero leaves a side unbounded.
func (v *Viewport) ClampZoom(minScale, maxScale float64) {
	v.minScale, v.maxScale = minScale, maxScale
	s := v.clamp(v.Scale())
	if s != v.Scale() {
		v.zoomAt(s, v.ScreenWidth/2, v.ScreenHeight/2)
		v.changed("zoom", true)
	}
}

func (v *Viewport) clamp(s float64) float64 {
	if v.minScale > 0 && s < v.minScale {
		s = v.minScale
	}
	if v.maxScale > 0 && s > v.maxScale {
		s = v.maxScale
	}
	return s
}

// zoomAt sets the scale keeping the world point under screen (sx, sy)
// fixed.
func (v *Viewport) zoomAt(scale, sx, sy float64) {
	wx, wy := v.ToWorld(sx, sy)
	scale = v.clamp(scale)
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return
	}
	v.World.ScaleX, v.World.ScaleY = scale, scale
	v.World.X = sx - wx*scale
	v.World.Y = sy - wy*scale
}

// SetZoom sets the scale. With center the screen center stays on the same
// world point, otherwise the world origin stays in place.
func (v *Viewport) SetZoom(scale float64, center bool) {
	if center {
		v.zoomAt(scale, v.ScreenWidth/2, v.ScreenHeight/2)
	} else {
		v.zoomAt(scale, v.World.X, v.World.Y)
	}
	v.changed("zoom", true)
}

// Zoom changes the visible world width by change units (negative zooms
// in).
func (v *Viewport) Zoom(change float64, center bool) {
	w := v.ScreenWorldWidth() + change
	if w <= 0 {
		return
	}
	v.SetZoom(v.ScreenWidth/w, center)
}

// Fit scales so a width x height world area fills the screen.
func (v *Viewport) Fit(center bool, width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	scale := math.Min(v.ScreenWidth/width, v.ScreenHeight/height)
	if center {
		v.zoomAt(scale, v.ScreenWidth/2, v.ScreenHeight/2)
	} else {
		v.zoomAt(scale, v.World.X, v.World.Y)
	}
	v.changed("fit", true)
}

// Resize updates the screen and world sizes without moving the world.
func (v *Viewport) Resize(screenWidth, screenHeight, worldWidth, worldHeight float64) {
	v.ScreenWidth, v.ScreenHeight = screenWidth, screenHeight
	if worldWidth > 0 {
		v.WorldWidth = worldWidth
	}
	if worldHeight > 0 {
		v.WorldHeight = worldHeight
	}
	v.changed("resize", true)
}

// Pause stops the viewport from reacting to input.
func (v *Viewport) Pause() {
	v.paused = true
	v.dragging = false
	v.pinching = false
	v.inertia = false
}

// Resume re-enables input.
func (v *Viewport) Resume() { v.paused = false }

// Paused reports whether input is ignored.
func (v *Viewport) Paused() bool { return v.paused }

// Moving reports whether a gesture or inertia is in progress.
func (v *Viewport) Moving() bool { return v.dragging || v.pinching || v.inertia }

// Dirty reports whether the viewport changed since the last ClearDirty.
func (v *Viewport) Dirty() bool { return v.dirty }

// ClearDirty resets the dirty flag.
func (v *Viewport) ClearDirty() { v.dirty = false }

func (v *Viewport) changed(source string, end bool) {
	v.dirty = true
	ev := ViewportEvent{Source: source, Viewport: v}
	v.Moved.Emit(ev)
	if end {
		v.MovedEnd.Emit(ev)
	}
}

// HandlePointer applies drag, pinch and wheel gestures. It reports
// whether the event changed the viewport or its gesture state.
func (v *Viewport) HandlePointer(ev PointerEvent) bool {
	pt := gg.Pt(ev.X, ev.Y)
	now := ev.Time
	if now.IsZero() {
		now = time.Now()
	}

	switch ev.Type {
	case PointerDown:
		if v.paused {
			return false
		}
		v.pointers[ev.ID] = pt
		v.inertia = false
		v.velocity = gg.Point{}
		switch len(v.pointers) {
		case 1:
			v.dragging = true
			v.last = pt
			v.lastMove = now
		case 2:
			v.dragging = false
			v.pinching = true
			a, b := v.pinchPoints()
			v.pinchDist = math.Hypot(b.X-a.X, b.Y-a.Y)
			v.last = gg.Pt((a.X+b.X)/2, (a.Y+b.Y)/2)
		}
		return true

	case PointerMove:
		if _, ok := v.pointers[ev.ID]; !ok || v.paused {
			return false
		}
		v.pointers[ev.ID] = pt
		if v.pinching {
			v.pinchMove()
			return true
		}
		if !v.dragging {
			return false
		}
		dx, dy := pt.X-v.last.X, pt.Y-v.last.Y
		if dx == 0 && dy == 0 {
			return false
		}
		v.World.X += dx
		v.World.Y += dy
		if ms := float64(now.Sub(v.lastMove)) / float64(time.Millisecond); ms > 0 {
			v.velocity = gg.Pt(dx/ms, dy/ms)
		}
		v.last = pt
		v.lastMove = now
		v.changed("drag", false)
		return true

	case PointerUp, PointerUpOutside, PointerCancel:
		if _, ok := v.pointers[ev.ID]; !ok {
			return false
		}
		delete(v.pointers, ev.ID)
		if v.pinching {
			if len(v.pointers) < 2 {
				v.pinching = false
				v.ZoomedEnd.Emit(ViewportEvent{Source: "pinch", Viewport: v})
				// remaining finger continues as a drag
				for _, p := range v.pointers {
					v.dragging = !v.paused
					v.last = p
					v.lastMove = now
				}
			}
			return true
		}
		if len(v.pointers) == 0 && v.dragging {
			v.dragging = false
			if now.Sub(v.lastMove) <= inertiaWindow && speed(v.velocity) >= MinSpeed && !v.paused {
				v.inertia = true
			} else {
				v.velocity = gg.Point{}
				v.MovedEnd.Emit(ViewportEvent{Source: "drag", Viewport: v})
			}
		}
		return true

	case PointerWheel:
		if v.paused || ev.DeltaY == 0 {
			return false
		}
		step := -ev.DeltaY / wheelDeltaFactor
		change := math.Pow(2, (1+WheelPercent)*step)
		v.zoomAt(v.Scale()*change, ev.X, ev.Y)
		v.dirty = true
		e := ViewportEvent{Source: "wheel", Viewport: v}
		v.Moved.Emit(e)
		v.ZoomedEnd.Emit(e)
		v.MovedEnd.Emit(e)
		return true
	}
	return false
}

func (v *Viewport) pinchPoints() (a, b gg.Point) {
	i := 0
	for _, p := range v.pointers {
		if i == 0 {
			a = p
		} else {
			b = p
		}
		i++
		if i == 2 {
			break
		}
	}
	return a, b
}

func (v *Viewport) pinchMove() {
	a, b := v.pinchPoints()
	dist := math.Hypot(b.X-a.X, b.Y-a.Y)
	mid := gg.Pt((a.X+b.X)/2, (a.Y+b.Y)/2)
	if v.pinchDist > 0 && dist > 0 {
		v.zoomAt(v.Scale()*dist/v.pinchDist, v.last.X, v.last.Y)
	}
	v.World.X += mid.X - v.last.X
	v.World.Y += mid.Y - v.last.Y
	v.pinchDist = dist
	v.last = mid
	v.changed("pinch", false)
}

// Update advances inertia by dt. It reports whether the viewport moved.
func (v *Viewport) Update(dt time.Duration) bool {
	if !v.inertia || dt <= 0 {
		return false
	}
	ms := float64(dt) / float64(time.Millisecond)
	v.World.X += v.velocity.X * ms
	v.World.Y += v.velocity.Y * ms
	decay := math.Pow(Friction, ms/frameMillis)
	v.velocity = gg.Pt(v.velocity.X*decay, v.velocity.Y*decay)
	if speed(v.velocity) < MinSpeed {
		v.inertia = false
		v.velocity = gg.Point{}
		v.changed("decelerate", true)
		return true
	}
	v.changed("decelerate", false)
	return true
}

func speed(p gg.Point) float64 {
	return math.Max(math.Abs(p.X), math.Abs(p.Y))
}
