package publish

import (
	"context"
	"path/filepath"

	"git.home.luguber.info/inful/mirview/internal/artifact"
	"git.home.luguber.info/inful/mirview/internal/foundation/errors"
	"git.home.luguber.info/inful/mirview/internal/funcnames"
	"git.home.luguber.info/inful/mirview/internal/logfields"
	"git.home.luguber.info/inful/mirview/internal/metrics"
	"git.home.luguber.info/inful/mirview/internal/observability"
	"git.home.luguber.info/inful/mirview/internal/render"
)

// SiteConfig describes one complete static build.
type SiteConfig struct {
	DataDir     string
	ViewsDir    string // empty: built-in templates
	AssetsDir   string // empty: built-in stylesheet
	OutputDir   string
	Concurrency int

	// Subpath enables the second stage writing SubpathDir.
	Subpath    bool
	SubpathDir string
	// Verify fails the build if the subpath tree still has absolute-rooted links.
	Verify bool

	Metrics metrics.Recorder
}

// BuildReport holds the result of each stage that ran.
type BuildReport struct {
	BuildID string
	Root    *Result
	Subpath *Result
}

// Site runs full static builds. Every Build reloads the function-name index
// and rescans the data directory.
type Site struct {
	cfg SiteConfig
}

// NewSite returns a Site for cfg.
func NewSite(cfg SiteConfig) *Site {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NoopRecorder{}
	}
	return &Site{cfg: cfg}
}

// Build renders the root-hosted tree and, when enabled, the subpath tree.
func (s *Site) Build(ctx context.Context) (*BuildReport, error) {
	report := &BuildReport{BuildID: observability.NewBuildID()}
	ctx = observability.WithBuildID(ctx, report.BuildID)
	observability.InfoContext(ctx, "Starting static build", logfields.Dir(s.cfg.DataDir))

	pipeline, err := s.pipeline()
	if err != nil {
		return nil, err
	}

	static := &StaticPublisher{
		Pipeline:    pipeline,
		Assets:      render.Assets(s.cfg.AssetsDir),
		DataDir:     s.cfg.DataDir,
		OutputDir:   s.cfg.OutputDir,
		Concurrency: s.cfg.Concurrency,
		Metrics:     s.cfg.Metrics,
	}
	if report.Root, err = static.Publish(ctx); err != nil {
		return nil, err
	}

	if !s.cfg.Subpath {
		return report, nil
	}
	sub := &SubpathPublisher{SourceDir: s.cfg.OutputDir, OutputDir: s.cfg.SubpathDir, Metrics: s.cfg.Metrics}
	if report.Subpath, err = sub.Publish(ctx); err != nil {
		return nil, err
	}
	if s.cfg.Verify {
		if err := VerifyClean(ctx, s.cfg.SubpathDir); err != nil {
			return nil, err
		}
	}
	return report, nil
}

func (s *Site) pipeline() (*render.Pipeline, error) {
	names, err := funcnames.Load(filepath.Join(s.cfg.DataDir, funcnames.FileName))
	if err != nil {
		return nil, err
	}
	renderer, err := render.NewTemplateRenderer(s.cfg.ViewsDir)
	if err != nil {
		return nil, err
	}
	loader := &artifact.DirLoader{Dir: s.cfg.DataDir, Failures: s.cfg.Metrics}
	p := render.NewPipeline(artifact.NewDirScanner(s.cfg.DataDir), names, loader, renderer)
	p.Metrics = s.cfg.Metrics
	return p, nil
}

// VerifyClean fails when the tree under dir still links to absolute-rooted paths.
func VerifyClean(ctx context.Context, dir string) error {
	findings, err := Verify(dir)
	if err != nil {
		return err
	}
	for _, f := range findings {
		observability.WarnContext(ctx, "Absolute-rooted link in subpath output",
			logfields.File(f.File), logfields.Path(f.Link.URL))
	}
	if len(findings) > 0 {
		return errors.BuildError("subpath output still contains absolute-rooted links").
			WithContext("dir", dir).
			WithContext("count", len(findings)).
			Build()
	}
	return nil
}
