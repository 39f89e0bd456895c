package canvas

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gpucontext"
)

// Window is a canvas presented on a GPU surface. The device comes from
// the host's window loop, for example gogpu.App.GPUContextProvider().
//
// Window is not safe for concurrent use.
type Window struct {
	gc     *ggcanvas.Canvas
	opts   ggcanvas.RenderOptions
	frames int
}

// NewWindow creates a window canvas of the given size in device pixels.
func NewWindow(provider gpucontext.DeviceProvider, width, height int) (*Window, error) {
	gc, err := ggcanvas.New(provider, width, height)
	if err != nil {
		return nil, fmt.Errorf("canvas: window: %w", err)
	}
	return &Window{gc: gc, opts: ggcanvas.DefaultRenderOptions()}, nil
}

// Context returns the drawing context, or nil once closed.
func (w *Window) Context() *gg.Context {
	if w == nil {
		return nil
	}
	return w.gc.Context()
}

// Size returns the size in device pixels.
func (w *Window) Size() (width, height int) { return w.gc.Size() }

// MarkDirty flags the frame for upload on the next Present.
func (w *Window) MarkDirty() {
	w.gc.MarkDirty()
	w.frames++
}

// Dirty reports whether a frame awaits upload.
func (w *Window) Dirty() bool { return w.gc.IsDirty() }

// Frames returns the number of frames drawn.
func (w *Window) Frames() int { return w.frames }

// SetOpacity sets the opacity the canvas is composited with.
func (w *Window) SetOpacity(alpha float32) { w.opts.Alpha = alpha }

// Present uploads the frame if needed and draws it at the origin of dc,
// typically gogpu.Context.AsTextureDrawer() inside the draw callback.
func (w *Window) Present(dc gpucontext.TextureDrawer) error {
	if err := w.gc.RenderToEx(dc, w.opts); err != nil {
		return fmt.Errorf("canvas: present: %w", err)
	}
	return nil
}

// Resize changes the canvas size, for example after a window resize.
func (w *Window) Resize(width, height int) error {
	if err := w.gc.Resize(width, height); err != nil {
		return fmt.Errorf("canvas: window: %w", err)
	}
	return nil
}

// Close releases the GPU texture and the drawing context.
func (w *Window) Close() error { return w.gc.Close() }
