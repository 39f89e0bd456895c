package graphview

import (
	"fmt"
	"time"

	"github.com/gogpu/graphview/scene"
)

// Frame advances viewport inertia by dt and draws if a render was
// requested since the last frame. It reports whether it drew.
func (gv *GraphView) Frame(dt time.Duration) bool {
	if gv.destroyed {
		return false
	}
	if gv.viewport.Update(dt) {
		gv.requestRender()
	}
	if !gv.renderRequested {
		return false
	}
	gv.Render()
	return true
}

// RenderRequested reports whether the next Frame will draw.
func (gv *GraphView) RenderRequested() bool { return gv.renderRequested }

// Render draws the scene now. Visibility is recomputed first when it is
// due and the viewport is at rest.
func (gv *GraphView) Render() {
	if gv.destroyed {
		return
	}
	if gv.visibilityDue && !gv.viewport.Moving() {
		gv.updateVisibility()
	}
	dc := gv.canvas.Context()
	if dc == nil {
		return
	}
	dc.ClearWithColor(gv.background)
	scene.Render(dc, gv.stage, gv.opts.resolution)
	gv.canvas.MarkDirty()
	gv.renderRequested = false
	gv.viewport.ClearDirty()
}

// Resize tells the view the canvas now has the given size in device
// pixels. The world stays where it is; visibility is recomputed.
func (gv *GraphView) Resize(width, height int) error {
	if gv.destroyed {
		return ErrDestroyed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidContainer, width, height)
	}
	res := gv.opts.resolution
	gv.viewport.Resize(float64(width)/res, float64(height)/res, 0, 0)
	gv.log.Debug("graphview: resized", "width", width, "height", height)
	return nil
}
