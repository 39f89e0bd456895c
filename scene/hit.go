package scene

import "math"

// HitShape is a hit area in a node's local coordinates.
type HitShape interface {
	// Contains reports whether the local point is inside the shape.
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area.
type HitRect struct {
	X, Y          float64 // Top-left corner
	Width, Height float64
}

// Contains returns true if the point (x, y) is inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area.
type HitCircle struct {
	CX, CY float64
	Radius float64
}

// Contains returns true if the point (x, y) is inside the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx, dy := x-c.CX, y-c.CY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a closed polygon hit area given as x0, y0, x1, y1, ...
type HitPolygon []float64

// Contains uses the even-odd ray casting rule.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p) / 2
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := p[2*i], p[2*i+1]
		xj, yj := p[2*j], p[2*j+1]
		if (yi > y) != (yj > y) {
			cross := (xj-xi)*(y-yi)/(yj-yi) + xi
			if x < cross {
				inside = !inside
			}
		}
	}
	return inside
}

// HitSegment is a thick line segment between two local points.
type HitSegment struct {
	X1, Y1, X2, Y2 float64
	Width          float64
}

// Contains reports whether the point is within Width/2 of the segment.
func (s HitSegment) Contains(x, y float64) bool {
	dx, dy := s.X2-s.X1, s.Y2-s.Y1
	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = ((x-s.X1)*dx + (y-s.Y1)*dy) / lenSq
		t = math.Max(0, math.Min(1, t))
	}
	px, py := s.X1+t*dx, s.Y1+t*dy
	return math.Hypot(x-px, y-py) <= s.Width/2
}
