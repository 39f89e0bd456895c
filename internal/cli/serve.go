package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gogpu/graphview/graph"
	"github.com/gogpu/graphview/internal/config"
	"github.com/gogpu/graphview/internal/server"
	"github.com/gogpu/graphview/internal/watch"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve <graph>",
		Short: "Serve a live graph view over HTTP",
		Long: `Serve keeps a graph view in memory and exposes it over HTTP:

  GET  /frame.png   current frame
  GET  /state       viewport summary
  GET  /graph       graph as graphology JSON
  GET  /events      recent view events (?since=<seq>)
  POST /pointer     pointer event, e.g. {"type":"down","x":10,"y":20}
  POST /zoom/in, /zoom/out, /reset, /resize

With --watch the graph file is reloaded when it changes and only the
differences are applied to the live graph.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), args[0], cfg)
		},
	}

	d := config.Defaults()
	addViewFlags(cmd.Flags())
	cmd.Flags().String("listen", d["listen"].(string), "address to listen on")
	cmd.Flags().BoolP("watch", "w", d["watch"].(bool), "reload the graph file when it changes")

	return cmd
}

func runServe(ctx context.Context, path string, cfg *config.Config) error {
	logger := loggerFromContext(ctx)

	g, err := loadGraph(ctx, path, cfg.Layout)
	if err != nil {
		return err
	}
	gv, c, err := newView(ctx, cfg, g)
	if err != nil {
		return err
	}
	defer c.Close()

	srv := server.New(gv, c, g, slogger(logger))
	defer srv.Destroy()

	if cfg.Watch {
		fw, err := watch.NewFileWatcher(path, 0, slogger(logger))
		if err != nil {
			return err
		}
		wctx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		fw.Start(wctx)
		go func() {
			defer close(done)
			reloadLoop(wctx, fw, srv, path, cfg.Layout)
		}()
		// Runs before srv.Destroy.
		defer func() {
			cancel()
			<-done
		}()
	}

	return srv.ListenAndServe(ctx, cfg.Listen)
}

// reloadLoop applies every reported change of path to the served graph
// until the watcher stops.
func reloadLoop(ctx context.Context, fw *watch.FileWatcher, srv *server.Server, path, engine string) {
	logger := loggerFromContext(ctx)
	for range fw.Events() {
		next, err := loadGraph(ctx, path, engine)
		if err != nil {
			logger.Warn("reload failed", "path", path, "err", err)
			continue
		}
		var st watch.Stats
		err = srv.Update(func(g *graph.Graph) error {
			var syncErr error
			st, syncErr = watch.Sync(g, next)
			return syncErr
		})
		if err != nil {
			logger.Error("applying reload", "err", err)
			continue
		}
		if st.Empty() {
			logger.Debug("graph file unchanged", "path", path)
			continue
		}
		logger.Info("reloaded graph", "path", path, "changes", st.String())
	}
}
