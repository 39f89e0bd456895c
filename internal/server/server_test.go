package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gogpu/graphview"
	"github.com/gogpu/graphview/canvas"
	"github.com/gogpu/graphview/graph"
)

type fixture struct {
	srv   *Server
	view  *graphview.GraphView
	graph *graph.Graph
	ts    *httptest.Server
}

func setup(t *testing.T) *fixture {
	t.Helper()

	g := graph.New()
	for i, k := range []string{"a", "b"} {
		if err := g.AddNode(k, graph.Attributes{"x": float64(100 * i), "y": 0.0}); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.AddEdgeWithKey("ab", "a", "b", nil); err != nil {
		t.Fatal(err)
	}

	c, err := canvas.NewOffscreen(200, 100)
	if err != nil {
		t.Fatal(err)
	}
	gv, err := graphview.New(c, g)
	if err != nil {
		t.Fatalf("graphview.New() error: %v", err)
	}
	s := New(gv, c, g, nil)
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(func() {
		ts.Close()
		s.Close()
		gv.Destroy()
		_ = c.Close()
	})
	return &fixture{srv: s, view: gv, graph: g, ts: ts}
}

func (f *fixture) post(t *testing.T, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(f.ts.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (f *fixture) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(f.ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (f *fixture) state(t *testing.T) State {
	t.Helper()
	var st State
	if err := json.NewDecoder(f.get(t, "/state").Body).Decode(&st); err != nil {
		t.Fatalf("decoding state: %v", err)
	}
	return st
}

// pointerAt posts a pointer event at the screen position of node key and
// returns the names of the events it caused.
func (f *fixture) pointerAt(t *testing.T, typ, key string) []string {
	t.Helper()
	x, y := f.view.Viewport().ToScreen(nodePos(t, f.graph, key))
	resp := f.post(t, "/pointer", fmt.Sprintf(`{"type":%q,"x":%g,"y":%g}`, typ, x, y))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /pointer: status %d", resp.StatusCode)
	}
	var recs []Recorded
	if err := json.NewDecoder(resp.Body).Decode(&recs); err != nil {
		t.Fatalf("decoding events: %v", err)
	}
	names := make([]string, len(recs))
	for i, r := range recs {
		names[i] = r.Type.String() + ":" + r.Key
	}
	return names
}

func nodePos(t *testing.T, g *graph.Graph, key string) (float64, float64) {
	t.Helper()
	x, y, err := g.Position(key)
	if err != nil {
		t.Fatal(err)
	}
	return x, y
}

func contains(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}

func TestHealth(t *testing.T) {
	f := setup(t)
	resp := f.get(t, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %s", body["status"])
	}
}

func TestFrame(t *testing.T) {
	f := setup(t)
	resp := f.get(t, "/frame.png")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("frame size = %v, want 200x100", b)
	}
	if st := f.state(t); st.Frames != 1 {
		t.Errorf("Frames = %d, want 1", st.Frames)
	}
}

func TestPointerClick(t *testing.T) {
	f := setup(t)

	if got := f.pointerAt(t, "move", "a"); !contains(got, "nodeMouseover:a") {
		t.Errorf("move caused %v, want nodeMouseover:a", got)
	}
	if got := f.pointerAt(t, "down", "a"); !contains(got, "nodeMousedown:a") {
		t.Errorf("down caused %v, want nodeMousedown:a", got)
	}
	if st := f.state(t); st.Dragging != "a" {
		t.Errorf("Dragging = %q, want a", st.Dragging)
	}
	got := f.pointerAt(t, "up", "a")
	if !contains(got, "nodeMouseup:a") || !contains(got, "nodeClick:a") {
		t.Errorf("up caused %v, want nodeMouseup:a and nodeClick:a", got)
	}

	var recs []Recorded
	if err := json.NewDecoder(f.get(t, "/events").Body).Decode(&recs); err != nil {
		t.Fatal(err)
	}
	if len(recs) == 0 || recs[len(recs)-1].Type != graphview.NodeClick {
		t.Fatalf("history = %+v, want click last", recs)
	}

	last := recs[len(recs)-1].Seq
	var after []Recorded
	if err := json.NewDecoder(f.get(t, fmt.Sprintf("/events?since=%d", last)).Body).Decode(&after); err != nil {
		t.Fatal(err)
	}
	if len(after) != 0 {
		t.Errorf("events since %d = %+v, want none", last, after)
	}
}

func TestBadRequests(t *testing.T) {
	f := setup(t)
	tests := []struct {
		name string
		do   func() *http.Response
	}{
		{"invalid json", func() *http.Response { return f.post(t, "/pointer", `{invalid`) }},
		{"unknown pointer type", func() *http.Response { return f.post(t, "/pointer", `{"type":"press"}`) }},
		{"invalid since", func() *http.Response { return f.get(t, "/events?since=x") }},
		{"invalid size", func() *http.Response { return f.post(t, "/resize", `{"width":0,"height":10}`) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := tt.do().StatusCode; code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", code)
			}
		})
	}
}

func TestZoomAndReset(t *testing.T) {
	f := setup(t)
	initial := f.state(t).Scale

	if code := f.post(t, "/zoom/in", "").StatusCode; code != http.StatusNoContent {
		t.Fatalf("zoom in: status %d", code)
	}
	if s := f.state(t).Scale; s <= initial {
		t.Errorf("scale after zoom in = %g, want > %g", s, initial)
	}

	f.post(t, "/zoom/out", "")
	f.post(t, "/zoom/out", "")
	if s := f.state(t).Scale; s >= initial {
		t.Errorf("scale after zoom out = %g, want < %g", s, initial)
	}

	f.post(t, "/reset", "")
	if s := f.state(t).Scale; s != initial {
		t.Errorf("scale after reset = %g, want %g", s, initial)
	}
}

func TestUpdate(t *testing.T) {
	f := setup(t)
	err := f.srv.Update(func(g *graph.Graph) error {
		return g.AddNode("c", graph.Attributes{"x": 50.0, "y": 50.0})
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if _, ok := f.view.NodeView("c"); !ok {
		t.Error("view did not follow the graph")
	}

	var s graph.Serialized
	if err := json.NewDecoder(f.get(t, "/graph").Body).Decode(&s); err != nil {
		t.Fatal(err)
	}
	if len(s.Nodes) != 3 || len(s.Edges) != 1 {
		t.Errorf("exported %d nodes, %d edges; want 3, 1", len(s.Nodes), len(s.Edges))
	}

	f.view.Destroy()
	if err := f.srv.Update(func(*graph.Graph) error { return nil }); err != graphview.ErrDestroyed {
		t.Errorf("Update() after destroy = %v, want ErrDestroyed", err)
	}
	if code := f.post(t, "/pointer", `{"type":"move"}`).StatusCode; code != http.StatusGone {
		t.Errorf("pointer after destroy: status %d, want 410", code)
	}
}

func TestDestroyWaitsForUpdate(t *testing.T) {
	f := setup(t)

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		var once bool
		for i := 0; ; i++ {
			err := f.srv.Update(func(g *graph.Graph) error {
				if !once {
					once = true
					close(started)
				}
				return g.SetNodeAttribute("a", "x", float64(i))
			})
			if err != nil {
				done <- err
				return
			}
		}
	}()

	<-started
	f.srv.Destroy()
	if err := <-done; err != graphview.ErrDestroyed {
		t.Fatalf("Update() during destroy = %v, want ErrDestroyed", err)
	}
	if !f.view.Destroyed() {
		t.Error("view not destroyed")
	}
	if code := f.post(t, "/pointer", `{"type":"move"}`).StatusCode; code != http.StatusGone {
		t.Errorf("pointer after destroy: status %d, want 410", code)
	}
}

func TestResize(t *testing.T) {
	f := setup(t)
	if code := f.post(t, "/resize", `{"width":320,"height":240}`).StatusCode; code != http.StatusNoContent {
		t.Fatalf("resize: status %d", code)
	}
	st := f.state(t)
	if st.Width != 320 || st.Height != 240 {
		t.Errorf("size = %dx%d, want 320x240", st.Width, st.Height)
	}

	img, err := png.Decode(bytes.NewReader(readAll(t, f.get(t, "/frame.png"))))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Errorf("frame size = %v", b)
	}
}

func readAll(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
