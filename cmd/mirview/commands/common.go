// Package commands implements the mirview subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mirview/internal/config"
	"git.home.luguber.info/inful/mirview/internal/observability"
)

// Global carries process-wide state into subcommands.
type Global struct {
	Logger *slog.Logger
	// Out receives user-facing output (defaults to stdout).
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default mirview.yaml when present)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Serve   ServeCmd   `cmd:"" help:"Serve the artifact catalog over HTTP, rescanning on every request"`
	Build   BuildCmd   `cmd:"" help:"Render the catalog to a static site"`
	Subpath SubpathCmd `cmd:"" help:"Derive a subpath-hostable copy of a built static site"`
	Names   NamesCmd   `cmd:"" help:"Print the function-name index"`

	// Loaded is the configuration resolved in AfterApply.
	Loaded *config.Config `kong:"-"`
}

// AfterApply runs after flag parsing; it loads the configuration and sets up logging once.
func (c *CLI) AfterApply(g *Global) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	c.Loaded = cfg

	level := cfg.Logging.Level.SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := observability.NewLogger(os.Stderr, level, cfg.Logging.Format == config.LogFormatJSON)
	slog.SetDefault(logger)
	if g != nil {
		g.Logger = logger
	}
	return nil
}

// config returns the loaded configuration, or defaults when AfterApply has not run.
func (c *CLI) config() *config.Config {
	if c == nil || c.Loaded == nil {
		return config.Default()
	}
	return c.Loaded
}

// firstNonEmpty returns the flag value when set, otherwise the configured one.
func firstNonEmpty(flag, configured string) string {
	if flag != "" {
		return flag
	}
	return configured
}
