// Package server exposes a live graph view over HTTP.
//
// The view renders into an offscreen canvas; clients fetch frames as PNG
// and post pointer events, which go through the same interaction path as
// a windowed host. All access to the view and its graph is serialized by
// one mutex, so graph reloads can run concurrently with requests.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gogpu/graphview"
	"github.com/gogpu/graphview/canvas"
	"github.com/gogpu/graphview/graph"
	"github.com/gogpu/graphview/scene"
)

// DefaultHistory is the number of view events kept for GET /events.
const DefaultHistory = 256

// Recorded is a view event with its sequence number.
type Recorded struct {
	Seq uint64 `json:"seq"`
	graphview.Event
}

// State is the viewport summary returned by GET /state.
type State struct {
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Scale    float64 `json:"scale"`
	CenterX  float64 `json:"centerX"`
	CenterY  float64 `json:"centerY"`
	LOD      int     `json:"lod"`
	Dragging string  `json:"dragging,omitempty"`
	Nodes    int     `json:"nodes"`
	Edges    int     `json:"edges"`
	Frames   int     `json:"frames"`
}

// Server serves one graph view.
type Server struct {
	mu      sync.Mutex
	view    *graphview.GraphView
	canvas  *canvas.Offscreen
	graph   *graph.Graph
	history []Recorded
	limit   int
	seq     uint64
	last    time.Time
	off     func()
	log     *slog.Logger
}

// New wraps a view drawing into c and bound to g. A nil logger discards
// log output.
func New(view *graphview.GraphView, c *canvas.Offscreen, g *graph.Graph, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		view:   view,
		canvas: c,
		graph:  g,
		limit:  DefaultHistory,
		last:   time.Now(),
		log:    logger,
	}
	s.off = view.OnAny(s.record)
	return s
}

// record runs with s.mu held: view events only fire from calls made by
// handlers or Update.
func (s *Server) record(ev graphview.Event) {
	s.seq++
	s.history = append(s.history, Recorded{Seq: s.seq, Event: ev})
	if over := len(s.history) - s.limit; over > 0 {
		s.history = append(s.history[:0], s.history[over:]...)
	}
}

// Update runs fn with exclusive access to the graph. The view follows the
// graph's events as usual.
func (s *Server) Update(fn func(g *graph.Graph) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view.Destroyed() {
		return graphview.ErrDestroyed
	}
	return fn(s.graph)
}

// Close stops recording events. The view is left to its owner.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.off != nil {
		s.off()
		s.off = nil
	}
}

// Destroy stops recording events and destroys the view while holding the
// lock, so no Update or request is running against it.
func (s *Server) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.off != nil {
		s.off()
		s.off = nil
	}
	s.view.Destroy()
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(s.log.Handler(), slog.LevelDebug),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	r.Get("/healthz", s.health)
	r.Get("/frame.png", s.frame)
	r.Get("/state", s.state)
	r.Get("/graph", s.exportGraph)
	r.Get("/events", s.events)
	r.Post("/pointer", s.pointer)
	r.Route("/zoom", func(r chi.Router) {
		r.Post("/in", s.viewAction((*graphview.GraphView).ZoomIn))
		r.Post("/out", s.viewAction((*graphview.GraphView).ZoomOut))
	})
	r.Post("/reset", s.viewAction((*graphview.GraphView).ResetView))
	r.Post("/resize", s.resize)

	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("serving graph view", "addr", "http://"+addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// frame advances the view by the time since the previous frame and
// returns the canvas as PNG.
func (s *Server) frame(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	now := time.Now()
	if !s.view.Frame(now.Sub(s.last)) && s.canvas.Frames() == 0 {
		s.view.Render()
	}
	s.last = now

	var buf bytes.Buffer
	err := s.canvas.EncodePNG(&buf)
	s.mu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	vp := s.view.Viewport()
	width, height := s.canvas.Size()
	cx, cy := vp.Center()
	st := State{
		Width:    width,
		Height:   height,
		Scale:    vp.Scale(),
		CenterX:  cx,
		CenterY:  cy,
		LOD:      s.view.LOD(),
		Dragging: s.view.Dragging(),
		Nodes:    s.graph.Order(),
		Edges:    s.graph.Size(),
		Frames:   s.canvas.Frames(),
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, st)
}

func (s *Server) exportGraph(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	exported := s.graph.Export()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, exported)
}

// events returns the recorded events with a sequence number above the
// since query parameter.
func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	var since uint64
	if v := r.URL.Query().Get("since"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			http.Error(w, "invalid since parameter", http.StatusBadRequest)
			return
		}
		since = n
	}

	s.mu.Lock()
	out := make([]Recorded, 0, len(s.history))
	for _, ev := range s.history {
		if ev.Seq > since {
			out = append(out, ev)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

// pointer feeds one pointer event to the view and returns the view events
// it caused.
func (s *Server) pointer(w http.ResponseWriter, r *http.Request) {
	var ev scene.PointerEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}

	s.mu.Lock()
	if s.view.Destroyed() {
		s.mu.Unlock()
		http.Error(w, graphview.ErrDestroyed.Error(), http.StatusGone)
		return
	}
	from := s.seq
	s.view.HandlePointer(ev)
	var caused []Recorded
	for _, rec := range s.history {
		if rec.Seq > from {
			caused = append(caused, rec)
		}
	}
	s.mu.Unlock()

	if caused == nil {
		caused = []Recorded{}
	}
	writeJSON(w, http.StatusOK, caused)
}

func (s *Server) viewAction(action func(*graphview.GraphView)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		if !s.view.Destroyed() {
			action(s.view)
		}
		s.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}
}

type resizeRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) resize(w http.ResponseWriter, r *http.Request) {
	var req resizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.canvas.Resize(req.Width, req.Height); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.view.Resize(req.Width, req.Height); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
