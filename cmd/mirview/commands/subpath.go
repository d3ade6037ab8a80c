package commands

import (
	"context"

	"git.home.luguber.info/inful/mirview/internal/publish"
)

// SubpathCmd implements the 'subpath' command.
type SubpathCmd struct {
	Source string `name:"source" short:"s" help:"Root-hosted site to copy (default from config, ./dist)"`
	Output string `short:"o" help:"Output directory (default from config, ./dist-github)"`
	Verify bool   `name:"verify" help:"Fail if the copy still contains absolute-rooted links"`
}

func (s *SubpathCmd) Run(g *Global, root *CLI) error {
	cfg := root.config()
	ctx := context.Background()

	p := &publish.SubpathPublisher{
		SourceDir: firstNonEmpty(s.Source, cfg.Output.Directory),
		OutputDir: firstNonEmpty(s.Output, cfg.Output.SubpathDirectory),
	}
	res, err := p.Publish(ctx)
	if err != nil {
		return err
	}
	if s.Verify {
		if err := publish.VerifyClean(ctx, res.OutputDir); err != nil {
			return err
		}
	}
	printReport(g.out(), &publish.BuildReport{Subpath: res})
	return nil
}
