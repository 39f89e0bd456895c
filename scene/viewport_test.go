package scene

import (
	"testing"
	"time"
)

func TestViewportRoundTrip(t *testing.T) {
	v := NewViewport(800, 600, 1000, 1000)
	v.SetZoom(2, false)
	v.SetPosition(30, -40)

	x, y := v.ToWorld(130, 60)
	if !near(x, 50) || !near(y, 50) {
		t.Errorf("ToWorld = (%v, %v), want (50, 50)", x, y)
	}
	sx, sy := v.ToScreen(x, y)
	if !near(sx, 130) || !near(sy, 60) {
		t.Errorf("ToScreen = (%v, %v), want (130, 60)", sx, sy)
	}
}

func TestViewportMoveCenter(t *testing.T) {
	v := NewViewport(800, 600, 1000, 1000)
	v.SetZoom(0.5, false)
	v.MoveCenter(100, 200)
	x, y := v.Center()
	if !near(x, 100) || !near(y, 200) {
		t.Errorf("Center = (%v, %v), want (100, 200)", x, y)
	}
}

func TestViewportFitClamp(t *testing.T) {
	v := NewViewport(800, 600, 0, 0)
	v.ClampZoom(0, 1)
	v.MoveCenter(0, 0)

	v.Fit(true, 200, 100)
	if v.Scale() != 1 {
		t.Errorf("Scale = %v, want clamped 1", v.Scale())
	}
	v.Fit(true, 1600, 600)
	if !near(v.Scale(), 0.5) {
		t.Errorf("Scale = %v, want 0.5", v.Scale())
	}
	if x, y := v.Center(); !near(x, 0) || !near(y, 0) {
		t.Errorf("Fit moved the center to (%v, %v)", x, y)
	}
}

func TestViewportZoomChange(t *testing.T) {
	v := NewViewport(800, 600, 0, 0)
	v.Zoom(800, true)
	if !near(v.Scale(), 0.5) {
		t.Errorf("Scale = %v, want 0.5", v.Scale())
	}
	v.Zoom(-v.ScreenWorldWidth()/2, true)
	if !near(v.Scale(), 1) {
		t.Errorf("Scale = %v, want 1", v.Scale())
	}
}

func TestViewportDrag(t *testing.T) {
	v := NewViewport(800, 600, 0, 0)
	ends := 0
	v.MovedEnd.On(func(ViewportEvent) { ends++ })

	t0 := time.Unix(0, 0)
	v.HandlePointer(PointerEvent{Type: PointerDown, X: 10, Y: 10, Time: t0})
	v.HandlePointer(PointerEvent{Type: PointerMove, X: 30, Y: 15, Time: t0.Add(10 * time.Millisecond)})
	if x, y := v.Position(); x != 20 || y != 5 {
		t.Errorf("Position = (%v, %v), want (20, 5)", x, y)
	}
	// Released long after the last move: no inertia.
	v.HandlePointer(PointerEvent{Type: PointerUp, X: 30, Y: 15, Time: t0.Add(time.Second)})
	if v.Moving() {
		t.Error("still moving after slow release")
	}
	if ends != 1 {
		t.Errorf("MovedEnd fired %d times, want 1", ends)
	}
}

func TestViewportInertia(t *testing.T) {
	v := NewViewport(800, 600, 0, 0)
	ends := 0
	v.MovedEnd.On(func(ViewportEvent) { ends++ })

	t0 := time.Unix(0, 0)
	v.HandlePointer(PointerEvent{Type: PointerDown, X: 0, Y: 0, Time: t0})
	v.HandlePointer(PointerEvent{Type: PointerMove, X: 10, Y: 0, Time: t0.Add(10 * time.Millisecond)})
	v.HandlePointer(PointerEvent{Type: PointerUp, X: 10, Y: 0, Time: t0.Add(20 * time.Millisecond)})
	if !v.Moving() {
		t.Fatal("no inertia after a fast release")
	}

	x0, _ := v.Position()
	for i := 0; i < 1000 && v.Moving(); i++ {
		v.Update(16 * time.Millisecond)
	}
	x1, _ := v.Position()
	if x1 <= x0 {
		t.Errorf("inertia did not continue the pan: %v -> %v", x0, x1)
	}
	if v.Moving() || ends != 1 {
		t.Errorf("Moving = %v, MovedEnd = %d; want settled once", v.Moving(), ends)
	}
}

func TestViewportPausedIgnoresInput(t *testing.T) {
	v := NewViewport(800, 600, 0, 0)
	v.Pause()
	v.HandlePointer(PointerEvent{Type: PointerDown, X: 0, Y: 0})
	v.HandlePointer(PointerEvent{Type: PointerMove, X: 50, Y: 50})
	if x, y := v.Position(); x != 0 || y != 0 {
		t.Errorf("paused viewport moved to (%v, %v)", x, y)
	}
}

func TestViewportWheelZoomsAboutPointer(t *testing.T) {
	v := NewViewport(800, 600, 0, 0)
	zoomed := 0
	v.ZoomedEnd.On(func(ViewportEvent) { zoomed++ })

	wx, wy := v.ToWorld(200, 100)
	v.HandlePointer(PointerEvent{Type: PointerWheel, X: 200, Y: 100, DeltaY: -100})
	if v.Scale() <= 1 {
		t.Errorf("Scale = %v, want > 1 after wheel up", v.Scale())
	}
	gx, gy := v.ToWorld(200, 100)
	if !near(gx, wx) || !near(gy, wy) {
		t.Errorf("pointer world point moved (%v,%v) -> (%v,%v)", wx, wy, gx, gy)
	}
	if zoomed != 1 {
		t.Errorf("ZoomedEnd fired %d times", zoomed)
	}
}

func TestViewportPinch(t *testing.T) {
	v := NewViewport(800, 600, 0, 0)
	v.HandlePointer(PointerEvent{Type: PointerDown, ID: 1, X: 100, Y: 100})
	v.HandlePointer(PointerEvent{Type: PointerDown, ID: 2, X: 200, Y: 100})
	v.HandlePointer(PointerEvent{Type: PointerMove, ID: 2, X: 300, Y: 100})
	if !near(v.Scale(), 2) {
		t.Errorf("Scale = %v, want 2", v.Scale())
	}
}
