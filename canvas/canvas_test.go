package canvas

import (
	"bytes"
	"errors"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/gogpu/gg/integration/ggcanvas"
)

func TestNewOffscreen(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr error
	}{
		{"valid", 64, 32, nil},
		{"zero width", 0, 32, ErrInvalidDimensions},
		{"negative height", 64, -1, ErrInvalidDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewOffscreen(tt.w, tt.h)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewOffscreen() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewOffscreen() error = %v", err)
			}
			defer o.Close()
			if w, h := o.Size(); w != tt.w || h != tt.h {
				t.Errorf("Size() = %dx%d, want %dx%d", w, h, tt.w, tt.h)
			}
			if o.Context() == nil {
				t.Error("Context() = nil")
			}
			if o.Dirty() {
				t.Error("new canvas is dirty")
			}
		})
	}
}

func TestOffscreenEncodePNG(t *testing.T) {
	o, err := NewOffscreen(20, 10)
	if err != nil {
		t.Fatal(err)
	}
	defer o.Close()

	dc := o.Context()
	dc.SetRGBA(0, 0, 1, 1)
	dc.DrawRectangle(0, 0, 20, 10)
	_ = dc.Fill()
	o.MarkDirty()
	if !o.Dirty() || o.Frames() != 1 {
		t.Fatalf("Dirty() = %v, Frames() = %d after MarkDirty", o.Dirty(), o.Frames())
	}

	var buf bytes.Buffer
	if err := o.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	if o.Dirty() {
		t.Error("Dirty() = true after encode")
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("decoded size = %v, want 20x10", b)
	}
	r, g, bl, a := img.At(10, 5).RGBA()
	if r != 0 || g != 0 || bl>>8 != 0xff || a>>8 != 0xff {
		t.Errorf("center pixel = %d,%d,%d,%d, want opaque blue", r>>8, g>>8, bl>>8, a>>8)
	}
}

func TestOffscreenSavePNG(t *testing.T) {
	o, err := NewOffscreen(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	defer o.Close()
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := o.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
	if err := o.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("SavePNG() into a missing directory succeeded")
	}
}

func TestOffscreenResizeAndClose(t *testing.T) {
	o, err := NewOffscreen(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if err := o.Resize(16, 4); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if w, h := o.Size(); w != 16 || h != 4 {
		t.Errorf("Size() = %dx%d after resize, want 16x4", w, h)
	}
	if err := o.Resize(0, 4); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Resize(0, 4) error = %v, want ErrInvalidDimensions", err)
	}

	if err := o.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := o.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if o.Context() != nil {
		t.Error("Context() != nil after Close")
	}
	if err := o.EncodePNG(&bytes.Buffer{}); !errors.Is(err, ErrClosed) {
		t.Errorf("EncodePNG() after Close error = %v, want ErrClosed", err)
	}
	if w, h := o.Size(); w != 0 || h != 0 {
		t.Errorf("Size() after Close = %dx%d, want 0x0", w, h)
	}
}

func TestNilOffscreenContext(t *testing.T) {
	var o *Offscreen
	if o.Context() != nil {
		t.Error("nil canvas has a context")
	}
}

func TestNewWindowNilProvider(t *testing.T) {
	_, err := NewWindow(nil, 100, 100)
	if !errors.Is(err, ggcanvas.ErrNilProvider) {
		t.Errorf("NewWindow(nil) error = %v, want ErrNilProvider", err)
	}
}
