package csscolor

import (
	"errors"
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in        string
		wantRGB   uint32
		wantAlpha float64
	}{
		{"#ff0000", 0xff0000, 1},
		{"#FF0000", 0xff0000, 1},
		{"#f00", 0xff0000, 1},
		{"#0f08", 0x00ff00, 136.0 / 255},
		{"#11223380", 0x112233, 128.0 / 255},
		{"rgba(0,0,0,0.5)", 0x000000, 0.5},
		{"rgb(255, 128, 0)", 0xff8000, 1},
		{"rgb(100%, 0%, 0%)", 0xff0000, 1},
		{"rgb(0 0 255 / 25%)", 0x0000ff, 0.25},
		{"rgba(300, -5, 0, 2)", 0xff0000, 1},
		{"hsl(120, 100%, 50%)", 0x00ff00, 1},
		{"hsla(240deg, 100%, 50%, 0.3)", 0x0000ff, 0.3},
		{"hsl(0 0% 100%)", 0xffffff, 1},
		{"red", 0xff0000, 1},
		{"  White ", 0xffffff, 1},
		{"rebeccapurple", 0x663399, 1},
		{"transparent", 0x000000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			rgb, alpha, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if rgb != tt.wantRGB {
				t.Errorf("rgb = %#06x, want %#06x", rgb, tt.wantRGB)
			}
			if math.Abs(alpha-tt.wantAlpha) > 1e-9 {
				t.Errorf("alpha = %v, want %v", alpha, tt.wantAlpha)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	inputs := []string{
		"",
		"notacolor",
		"#ff00",
		"#gg0000",
		"#12345",
		"rgb(1,2)",
		"rgb(1,2,3,4,5)",
		"rgb(a,b,c)",
		"rgb(1, 2, 3 / 0.5)",
		"hsl(10%, 50%, 50%)",
		"hsl(10, 50, 50%)",
		"cmyk(0,0,0,0)",
		"rgb(1,,3)",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, _, err := Parse(in)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", in)
			}
			if !errors.Is(err, ErrInvalidColor) {
				t.Errorf("error %v does not match ErrInvalidColor", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) || pe.Input != in {
				t.Errorf("error %v is not a ParseError for %q", err, in)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic on invalid input")
		}
	}()
	MustParse("bogus")
}

func TestPackUnpack(t *testing.T) {
	rgb := Pack(0x12, 0x34, 0x56)
	if rgb != 0x123456 {
		t.Fatalf("Pack = %#06x", rgb)
	}
	r, g, b := Unpack(rgb)
	if r != 0x12 || g != 0x34 || b != 0x56 {
		t.Errorf("Unpack = %x %x %x", r, g, b)
	}
}

func TestToRGBA(t *testing.T) {
	c := ToRGBA(0xff0000, 0.5)
	if c.R != 1 || c.G != 0 || c.B != 0 || c.A != 0.5 {
		t.Errorf("ToRGBA = %+v", c)
	}
}
