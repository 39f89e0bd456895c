package view

import "math"

// ZoomSteps are the zoom thresholds of the LOD levels: the level is the
// index of the first step the scale does not exceed.
var ZoomSteps = [...]float64{0.1, 0.2, 0.4, math.Inf(1)}

// LOD returns the level of detail for a zoom scale, from 0 (base shapes
// only) to len(ZoomSteps)-1 (everything).
func LOD(scale float64) int {
	for i, step := range ZoomSteps {
		if scale <= step {
			return i
		}
	}
	return len(ZoomSteps) - 1
}
