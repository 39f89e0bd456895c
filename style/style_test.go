package style

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/gogpu/graphview/text"
)

func TestResolveDefaults(t *testing.T) {
	st, err := Resolve([]Definition{Defaults()}, nil)
	if err != nil {
		t.Fatalf("Resolve(Defaults): %v", err)
	}
	if st.Node.Size != 15 || st.Node.Color != "#000000" {
		t.Errorf("node = %v %q", st.Node.Size, st.Node.Color)
	}
	if st.Node.Border.Width != 2 || st.Node.Border.Color != "#ffffff" {
		t.Errorf("border = %+v", st.Node.Border)
	}
	if st.Node.Icon.Type != text.PlainText || st.Node.Icon.FontSize != 20 {
		t.Errorf("icon = %+v", st.Node.Icon)
	}
	if st.Node.Label.Padding != 4 || st.Node.Label.Color != "#333333" {
		t.Errorf("label = %+v", st.Node.Label)
	}
	if st.Edge.Width != 1 || st.Edge.Color != "#cccccc" {
		t.Errorf("edge = %+v", st.Edge)
	}
}

func TestResolveLayering(t *testing.T) {
	user := Partial{
		"node": Partial{
			"size": Func(func(attrs Attributes) Definition {
				return Value(attrs["weight"])
			}),
			"color": Attribute("color", "#00ff00"),
		},
	}
	hover := Partial{
		"node": Partial{"color": Value("#ff0000")},
	}

	st, err := Resolve([]Definition{Defaults(), user}, Attributes{"weight": 20})
	if err != nil {
		t.Fatal(err)
	}
	if st.Node.Size != 20 || st.Node.Color != "#00ff00" {
		t.Errorf("user layer: size %v color %q", st.Node.Size, st.Node.Color)
	}
	if st.Node.Border.Width != 2 {
		t.Errorf("untouched default lost: border width %v", st.Node.Border.Width)
	}

	st, err = Resolve([]Definition{Defaults(), user, hover}, Attributes{"weight": 20, "color": "#0000ff"})
	if err != nil {
		t.Fatal(err)
	}
	if st.Node.Color != "#ff0000" {
		t.Errorf("hover layer color = %q, want #ff0000", st.Node.Color)
	}
	if st.Node.Size != 20 {
		t.Errorf("hover lost user size: %v", st.Node.Size)
	}
}

func TestResolveOne(t *testing.T) {
	def := Partial{
		"a": Value(1),
		"b": Nil,
		"c": Func(func(Attributes) Definition { return Partial{"d": Value("x")} }),
	}
	got := ResolveOne(def, nil)
	want := map[string]any{"a": 1, "c": map[string]any{"d": "x"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveOne = %v, want %v", got, want)
	}
	if ResolveOne(Nil, nil) != nil {
		t.Error("Nil resolved to a value")
	}
}

func TestResolveManyDoesNotAlias(t *testing.T) {
	base := Literal{Value: map[string]any{"node": map[string]any{"size": 1}}}
	over := Partial{"node": Partial{"size": Value(2)}}

	ResolveMany([]Definition{base, over}, nil)
	again := ResolveMany([]Definition{base}, nil)
	if got := again["node"].(map[string]any)["size"]; got != 1 {
		t.Errorf("merge mutated a literal: size = %v", got)
	}
}

func TestFuncsAreNotMemoized(t *testing.T) {
	calls := 0
	def := Partial{"x": Func(func(Attributes) Definition {
		calls++
		return Value(calls)
	})}
	ResolveOne(def, nil)
	ResolveOne(def, nil)
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestLiteralRoundTrip(t *testing.T) {
	st, err := Resolve([]Definition{Defaults()}, nil)
	if err != nil {
		t.Fatal(err)
	}
	st.Node.Label.Content = "hello"
	st.Node.Icon.Type = text.BitmapText

	got, err := Resolve([]Definition{FromStyle(st)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != st {
		t.Errorf("round trip = %+v, want %+v", got, st)
	}
}

func TestResolveIncomplete(t *testing.T) {
	_, err := Resolve([]Definition{Partial{"edge": Partial{"width": Value(1)}}}, nil)
	if !errors.Is(err, ErrIncompleteStyle) {
		t.Fatalf("err = %v, want ErrIncompleteStyle", err)
	}
	if !strings.Contains(err.Error(), "edge.color") {
		t.Errorf("error %q does not name edge.color", err)
	}
}

func TestResolveInvalidType(t *testing.T) {
	bad := Partial{"node": Partial{"size": Value(map[string]any{"x": 1})}}
	_, err := Resolve([]Definition{Defaults(), bad}, nil)
	if !errors.Is(err, ErrInvalidStyle) {
		t.Errorf("err = %v, want ErrInvalidStyle", err)
	}
}

func TestResolveModeFromString(t *testing.T) {
	user := Partial{"node": Partial{"label": Partial{"type": Value("BITMAP_TEXT")}}}
	st, err := Resolve([]Definition{Defaults(), user}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if st.Node.Label.Type != text.BitmapText {
		t.Errorf("label type = %v", st.Node.Label.Type)
	}
}
