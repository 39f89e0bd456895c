package cli

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gogpu/graphview"
	"github.com/gogpu/graphview/canvas"
	"github.com/gogpu/graphview/graph"
	"github.com/gogpu/graphview/internal/config"
	"github.com/gogpu/graphview/internal/layout"
	"github.com/gogpu/graphview/style"
)

// addViewFlags registers the flags shared by render and serve. Their
// defaults mirror config.Defaults so an unset flag never masks the config
// file.
func addViewFlags(f *pflag.FlagSet) {
	d := config.Defaults()
	f.Int("width", d["width"].(int), "view width in logical pixels")
	f.Int("height", d["height"].(int), "view height in logical pixels")
	f.Float64("resolution", d["resolution"].(float64), "device pixels per logical pixel")
	f.String("background", d["background"].(string), "background color")
	f.String("theme", d["theme"].(string), "TOML theme file with style and hover definitions")
	f.String("layout", d["layout"].(string), "Graphviz engine for graphs without positions: "+strings.Join(config.Engines, ", "))
}

// loadConfig merges the configuration for cmd and applies its verbosity
// to the context logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cmd.Flags(), path)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		loggerFromContext(cmd.Context()).SetLevel(charmlog.DebugLevel)
	}
	return cfg, nil
}

// loadGraph reads a graph file. .dot and .gv files are laid out by
// Graphviz; anything else is graphology JSON, laid out only when a node
// lacks a position.
func loadGraph(ctx context.Context, path, engine string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".dot", ".gv":
		g, err := layout.LoadDOT(ctx, data, engine)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return g, nil
	}

	g, err := graph.ReadJSON(bytes.NewReader(data), graph.WithEdgeKeys(sequentialKeys()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if layout.NeedsLayout(g) {
		loggerFromContext(ctx).Debug("laying out graph", "engine", engine, "nodes", g.Order())
		if err := layout.Apply(ctx, g, engine); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return g, nil
}

// sequentialKeys names keyless edges by position, so reloading an
// unchanged file keeps their keys.
func sequentialKeys() func() string {
	n := 0
	return func() string {
		key := fmt.Sprintf("_e%d", n)
		n++
		return key
	}
}

// viewOptions turns cfg into graph view options.
func viewOptions(ctx context.Context, cfg *config.Config) ([]graphview.Option, error) {
	opts := []graphview.Option{
		graphview.WithResolution(cfg.Resolution),
		graphview.WithBackground(cfg.Background),
		graphview.WithLogger(slogger(loggerFromContext(ctx))),
	}
	if cfg.Theme != "" {
		th, err := style.LoadThemeFile(cfg.Theme)
		if err != nil {
			return nil, err
		}
		opts = append(opts, graphview.WithStyle(th.Style), graphview.WithHoverStyle(th.Hover))
	}
	return opts, nil
}

// newView creates an offscreen canvas sized for cfg and a view of g on it.
func newView(ctx context.Context, cfg *config.Config, g *graph.Graph) (*graphview.GraphView, *canvas.Offscreen, error) {
	opts, err := viewOptions(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	w := int(math.Round(float64(cfg.Width) * cfg.Resolution))
	h := int(math.Round(float64(cfg.Height) * cfg.Resolution))
	c, err := canvas.NewOffscreen(w, h)
	if err != nil {
		return nil, nil, err
	}
	gv, err := graphview.New(c, g, opts...)
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	return gv, c, nil
}
