package publish

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/mirview/internal/artifact"
	"git.home.luguber.info/inful/mirview/internal/foundation/errors"
	"git.home.luguber.info/inful/mirview/internal/logfields"
	"git.home.luguber.info/inful/mirview/internal/metrics"
	"git.home.luguber.info/inful/mirview/internal/observability"
	"git.home.luguber.info/inful/mirview/internal/render"
	"git.home.luguber.info/inful/mirview/internal/rewrite"
)

// Build targets, used as metric labels.
const (
	TargetRoot    = "root"
	TargetSubpath = "subpath"
)

const defaultConcurrency = 4

// Result summarises one publish stage.
type Result struct {
	OutputDir string
	Groups    int
	Pages     int
	Duration  time.Duration
}

// StaticPublisher renders the whole catalog to OutputDir for root hosting.
type StaticPublisher struct {
	Pipeline *render.Pipeline
	Assets   fs.FS
	// DataDir is the artifact directory; OutputDir must not overlap it
	// because OutputDir is wiped before every build.
	DataDir     string
	OutputDir   string
	Concurrency int
	Metrics     metrics.Recorder
}

// Publish clears OutputDir, copies the assets, scans once and writes the
// index plus one page per group. A scan, render or write failure aborts the
// build; pages already written are left in place.
func (p *StaticPublisher) Publish(ctx context.Context) (*Result, error) {
	start := time.Now()
	rec := recorderOr(p.Metrics)
	ctx = observability.WithStage(ctx, TargetRoot)

	res, err := p.publish(ctx)
	rec.ObserveBuildDuration(TargetRoot, time.Since(start))
	rec.IncBuildOutcome(TargetRoot, metrics.Result(err))
	if err != nil {
		return nil, err
	}
	res.Duration = time.Since(start)
	rec.AddPagesWritten(TargetRoot, res.Pages)
	observability.InfoContext(ctx, "Static site generated",
		logfields.Dir(res.OutputDir),
		logfields.Groups(res.Groups),
		logfields.Pages(res.Pages),
		logfields.DurationMS(float64(res.Duration.Microseconds())/1000))
	return res, nil
}

func (p *StaticPublisher) publish(ctx context.Context) (*Result, error) {
	if p.OutputDir == "" {
		return nil, errors.ValidationError("output directory is required").Build()
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := resetDir(p.OutputDir); err != nil {
		return nil, writeError(err, p.OutputDir)
	}
	if p.Assets != nil {
		if err := os.CopyFS(p.OutputDir, p.Assets); err != nil {
			return nil, writeError(err, p.OutputDir)
		}
	}

	groups, err := p.Pipeline.Scan(ctx)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryBuild, "failed to scan artifact directory").Fatal().Build()
	}

	index, err := p.Pipeline.RenderIndex(ctx, groups)
	if err != nil {
		return nil, err
	}
	indexPath := filepath.Join(p.OutputDir, "index.html")
	if err := writeFile(indexPath, []byte(rewrite.RelativeRoot(index, false))); err != nil {
		return nil, writeError(err, indexPath)
	}

	if err := p.writePages(ctx, groups); err != nil {
		return nil, err
	}
	return &Result{OutputDir: p.OutputDir, Groups: len(groups), Pages: len(groups) + 1}, nil
}

func (p *StaticPublisher) validate() error {
	if p.DataDir == "" {
		return nil
	}
	overlap, err := overlaps(p.DataDir, p.OutputDir)
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid output directory").Build()
	}
	if overlap {
		return errors.ValidationError("output directory and data directory must not overlap").
			WithContext("data_dir", p.DataDir).
			WithContext("output", p.OutputDir).
			Build()
	}
	return nil
}

// writePages renders and writes every group's page. Pages are independent,
// so they are produced in parallel up to Concurrency.
func (p *StaticPublisher) writePages(ctx context.Context, groups []artifact.Group) error {
	limit := p.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for _, g := range groups {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			html, err := p.Pipeline.RenderPage(egCtx, g)
			if err != nil {
				return err
			}
			path := filepath.Join(p.OutputDir, rewrite.PagePath(g.ID))
			if err := writeFile(path, []byte(rewrite.RelativeRoot(html, true))); err != nil {
				return writeError(err, path)
			}
			observability.DebugContext(egCtx, "Wrote page", logfields.ArtifactID(g.ID), logfields.Path(path))
			return nil
		})
	}
	return eg.Wait()
}

func writeError(err error, path string) error {
	return errors.WrapError(err, errors.CategoryFileSystem, "failed to write static output").
		Fatal().
		WithContext("path", path).
		Build()
}

func recorderOr(r metrics.Recorder) metrics.Recorder {
	if r == nil {
		return metrics.NoopRecorder{}
	}
	return r
}
