package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/graphview"
	"github.com/gogpu/graphview/internal/config"
)

// errBadHover is returned for a --hover value that is not node:<key> or
// edge:<key>, or names a missing entity.
var errBadHover = errors.New("invalid --hover")

func newRenderCmd() *cobra.Command {
	var hovers []string

	cmd := &cobra.Command{
		Use:   "render <graph>",
		Short: "Render a graph file to PNG",
		Long:  `Render draws a graphology JSON or Graphviz DOT file through an offscreen graph view and writes the frame as PNG.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], cfg, hovers)
		},
	}

	addViewFlags(cmd.Flags())
	cmd.Flags().StringP("output", "o", config.Defaults()["output"].(string), "output PNG file")
	cmd.Flags().StringArrayVar(&hovers, "hover", nil, "draw an entity hovered: node:<key> or edge:<key> (repeatable)")

	return cmd
}

func runRender(ctx context.Context, path string, cfg *config.Config, hovers []string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	g, err := loadGraph(ctx, path, cfg.Layout)
	if err != nil {
		return err
	}
	logger.Debug("loaded graph", "path", path, "nodes", g.Order(), "edges", g.Size())

	gv, c, err := newView(ctx, cfg, g)
	if err != nil {
		return err
	}
	defer c.Close()
	defer gv.Destroy()

	for _, h := range hovers {
		if err := applyHover(gv, h); err != nil {
			return err
		}
	}

	gv.Render()
	if err := c.SavePNG(cfg.Output); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d nodes and %d edges to %s", g.Order(), g.Size(), cfg.Output))
	return nil
}

func applyHover(gv *graphview.GraphView, spec string) error {
	kind, key, ok := strings.Cut(spec, ":")
	if !ok || key == "" {
		return fmt.Errorf("%w %q: want node:<key> or edge:<key>", errBadHover, spec)
	}
	var found bool
	switch kind {
	case "node":
		found = gv.HoverNode(key)
	case "edge":
		found = gv.HoverEdge(key)
	default:
		return fmt.Errorf("%w %q: unknown kind %q", errBadHover, spec, kind)
	}
	if !found {
		return fmt.Errorf("%w: no %s %q", errBadHover, kind, key)
	}
	return nil
}
