package commands

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/mirview/internal/publish"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	DataDir       string `name:"data-dir" short:"d" help:"Directory holding func_names and the <id>.log/<id>.mir artifacts"`
	Output        string `short:"o" help:"Output directory for the root-hosted site (default from config, ./dist)"`
	ViewsDir      string `name:"views-dir" help:"Directory with index.html and page.html templates"`
	AssetsDir     string `name:"assets-dir" help:"Directory copied to the site root"`
	Concurrency   int    `name:"concurrency" help:"Pages rendered in parallel"`
	Subpath       bool   `name:"subpath" help:"Also derive the subpath-hostable copy"`
	SubpathOutput string `name:"subpath-output" help:"Output directory for the subpath copy (default from config, ./dist-github)"`
	Verify        bool   `name:"verify" help:"Fail if the subpath copy still contains absolute-rooted links"`
	Watch         bool   `name:"watch" short:"w" help:"Rebuild whenever the data directory changes"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	site := publish.NewSite(b.siteConfig(root))
	build := func(ctx context.Context) error {
		report, err := site.Build(ctx)
		if err != nil {
			return err
		}
		printReport(g.out(), report)
		return nil
	}

	if err := build(ctx); err != nil {
		return err
	}
	if !b.Watch {
		return nil
	}
	w := &publish.Watcher{Dir: b.siteConfig(root).DataDir, Build: build}
	return w.Run(ctx)
}

func (b *BuildCmd) siteConfig(root *CLI) publish.SiteConfig {
	cfg := root.config()
	concurrency := cfg.Output.Concurrency
	if b.Concurrency > 0 {
		concurrency = b.Concurrency
	}
	return publish.SiteConfig{
		DataDir:     firstNonEmpty(b.DataDir, cfg.DataDir),
		ViewsDir:    firstNonEmpty(b.ViewsDir, cfg.ViewsDir),
		AssetsDir:   firstNonEmpty(b.AssetsDir, cfg.AssetsDir),
		OutputDir:   firstNonEmpty(b.Output, cfg.Output.Directory),
		Concurrency: concurrency,
		Subpath:     b.Subpath || b.SubpathOutput != "",
		SubpathDir:  firstNonEmpty(b.SubpathOutput, cfg.Output.SubpathDirectory),
		Verify:      b.Verify,
	}
}

func printReport(w io.Writer, report *publish.BuildReport) {
	if report.Root != nil {
		_, _ = fmt.Fprintf(w, "Static site generated in %s (%d entries, %d pages)\n",
			report.Root.OutputDir, report.Root.Groups, report.Root.Pages)
	}
	if report.Subpath != nil {
		_, _ = fmt.Fprintf(w, "Subpath site generated in %s (%d pages rewritten)\n",
			report.Subpath.OutputDir, report.Subpath.Pages)
	}
}
