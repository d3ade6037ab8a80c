package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"git.home.luguber.info/inful/mirview/internal/artifact"
	"git.home.luguber.info/inful/mirview/internal/funcnames"
	"git.home.luguber.info/inful/mirview/internal/logfields"
	"git.home.luguber.info/inful/mirview/internal/metrics"
	"git.home.luguber.info/inful/mirview/internal/render"
	"git.home.luguber.info/inful/mirview/internal/server/httpserver"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	DataDir   string `name:"data-dir" short:"d" help:"Directory holding func_names and the <id>.log/<id>.mir artifacts"`
	Port      int    `name:"port" short:"p" help:"Listen port (default from config, 3000)"`
	ViewsDir  string `name:"views-dir" help:"Directory with index.html and page.html templates"`
	AssetsDir string `name:"assets-dir" help:"Directory served at the site root (style.css)"`
	NoMetrics bool   `name:"no-metrics" help:"Do not expose /metrics"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv, err := s.newServer(root)
	if err != nil {
		return err
	}
	if err := srv.Start(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.out(), "Serving on http://%s\n", srv.Addr())

	<-ctx.Done()
	slog.Info("Shutdown signal received")
	stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stopCancel()
	return srv.Stop(stopCtx)
}

// newServer resolves flags against the configuration and loads the
// function-name index once; a missing index aborts before binding.
func (s *ServeCmd) newServer(root *CLI) (*httpserver.Server, error) {
	cfg := root.config()
	dataDir := firstNonEmpty(s.DataDir, cfg.DataDir)
	port := cfg.Server.Port
	if s.Port > 0 {
		port = s.Port
	}

	names, err := funcnames.Load(filepath.Join(dataDir, funcnames.FileName))
	if err != nil {
		return nil, err
	}
	renderer, err := render.NewTemplateRenderer(firstNonEmpty(s.ViewsDir, cfg.ViewsDir))
	if err != nil {
		return nil, err
	}

	opts := httpserver.Options{
		Addr:    fmt.Sprintf(":%d", port),
		DataDir: dataDir,
		Assets:  render.Assets(firstNonEmpty(s.AssetsDir, cfg.AssetsDir)),
		Metrics: metrics.NoopRecorder{},
	}
	if cfg.Server.MetricsEnabled() && !s.NoMetrics {
		reg := metrics.NewRegistry()
		opts.Metrics = metrics.NewPrometheusRecorder(reg)
		opts.MetricsHandler = metrics.HTTPHandler(reg)
	}

	loader := &artifact.DirLoader{Dir: dataDir, Failures: opts.Metrics}
	opts.Pipeline = render.NewPipeline(artifact.NewDirScanner(dataDir), names, loader, renderer)
	opts.Pipeline.Metrics = opts.Metrics

	slog.Info("Loaded function-name index", logfields.File(funcnames.FileName), slog.Int("names", names.Len()))
	return httpserver.New(opts), nil
}
