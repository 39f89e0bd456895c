package canvas

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/gogpu/gg"
)

// Common errors returned by canvases.
var (
	// ErrClosed is returned by operations on a closed canvas.
	ErrClosed = errors.New("canvas: closed")

	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("canvas: invalid dimensions")
)

// Offscreen is an in-memory canvas.
//
// Offscreen is not safe for concurrent use.
type Offscreen struct {
	dc     *gg.Context
	dirty  bool
	frames int
}

// NewOffscreen creates a canvas of the given size in device pixels.
func NewOffscreen(width, height int) (*Offscreen, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	return &Offscreen{dc: gg.NewContext(width, height)}, nil
}

// Context returns the drawing context, or nil once closed.
func (o *Offscreen) Context() *gg.Context {
	if o == nil {
		return nil
	}
	return o.dc
}

// Size returns the size in device pixels.
func (o *Offscreen) Size() (width, height int) {
	if o == nil || o.dc == nil {
		return 0, 0
	}
	return o.dc.Width(), o.dc.Height()
}

// MarkDirty records that a new frame was drawn.
func (o *Offscreen) MarkDirty() {
	o.dirty = true
	o.frames++
}

// Dirty reports whether a frame was drawn since the last encode.
func (o *Offscreen) Dirty() bool { return o.dirty }

// Frames returns the number of frames drawn.
func (o *Offscreen) Frames() int { return o.frames }

// Resize changes the canvas size. The content is cleared.
func (o *Offscreen) Resize(width, height int) error {
	if o.dc == nil {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if err := o.dc.Resize(width, height); err != nil {
		return fmt.Errorf("canvas: resize: %w", err)
	}
	o.dirty = true
	return nil
}

// Image returns a copy of the current frame.
func (o *Offscreen) Image() (image.Image, error) {
	if o.dc == nil {
		return nil, ErrClosed
	}
	if err := o.dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("canvas: flush: %w", err)
	}
	return o.dc.Image(), nil
}

// EncodePNG writes the current frame as PNG and clears the dirty flag.
func (o *Offscreen) EncodePNG(w io.Writer) error {
	if o.dc == nil {
		return ErrClosed
	}
	if err := o.dc.FlushGPU(); err != nil {
		return fmt.Errorf("canvas: flush: %w", err)
	}
	if err := o.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("canvas: encode: %w", err)
	}
	o.dirty = false
	return nil
}

// SavePNG writes the current frame to a PNG file.
func (o *Offscreen) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("canvas: %w", err)
	}
	if err := o.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Close releases the drawing context. Close is idempotent.
func (o *Offscreen) Close() error {
	if o.dc == nil {
		return nil
	}
	err := o.dc.Close()
	o.dc = nil
	return err
}
