package publish

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/mirview/internal/foundation/errors"
	"git.home.luguber.info/inful/mirview/internal/linkcheck"
	"git.home.luguber.info/inful/mirview/internal/logfields"
	"git.home.luguber.info/inful/mirview/internal/metrics"
	"git.home.luguber.info/inful/mirview/internal/observability"
	"git.home.luguber.info/inful/mirview/internal/rewrite"
)

// SubpathPublisher derives a subpath-hostable copy of a root-hosted tree.
// SourceDir is never modified.
type SubpathPublisher struct {
	SourceDir string
	OutputDir string
	Metrics   metrics.Recorder
}

// Publish copies SourceDir to OutputDir (clearing OutputDir first) and runs
// the subpath rewrite over every .html file in the copy.
func (p *SubpathPublisher) Publish(ctx context.Context) (*Result, error) {
	start := time.Now()
	rec := recorderOr(p.Metrics)
	ctx = observability.WithStage(ctx, TargetSubpath)

	res, err := p.publish()
	rec.ObserveBuildDuration(TargetSubpath, time.Since(start))
	rec.IncBuildOutcome(TargetSubpath, metrics.Result(err))
	if err != nil {
		return nil, err
	}
	res.Duration = time.Since(start)
	rec.AddPagesWritten(TargetSubpath, res.Pages)
	observability.InfoContext(ctx, "Subpath site generated",
		logfields.Dir(res.OutputDir),
		logfields.Pages(res.Pages),
		logfields.DurationMS(float64(res.Duration.Microseconds())/1000))
	return res, nil
}

func (p *SubpathPublisher) publish() (*Result, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := os.RemoveAll(p.OutputDir); err != nil {
		return nil, writeError(err, p.OutputDir)
	}
	if err := copyDir(p.SourceDir, p.OutputDir); err != nil {
		return nil, writeError(err, p.OutputDir)
	}

	pages, err := RewriteTree(p.OutputDir)
	if err != nil {
		return nil, err
	}
	return &Result{OutputDir: p.OutputDir, Pages: pages}, nil
}

func (p *SubpathPublisher) validate() error {
	if p.SourceDir == "" || p.OutputDir == "" {
		return errors.ValidationError("source and output directories are required").Build()
	}
	info, err := os.Stat(p.SourceDir)
	if err != nil || !info.IsDir() {
		return errors.NotFoundError("static output not found, run build first").
			UserAction().
			WithContext("dir", p.SourceDir).
			Build()
	}

	overlap, err := overlaps(p.SourceDir, p.OutputDir)
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid subpath directories").Build()
	}
	if overlap {
		return errors.ValidationError("subpath output and source tree must not overlap").
			WithContext("source", p.SourceDir).
			WithContext("output", p.OutputDir).
			Build()
	}
	return nil
}

// overlaps reports whether a and b are the same directory or one contains the other.
func overlaps(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return within(absA, absB) || within(absB, absA), nil
}

// within reports whether child is parent or lies below it.
func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// RewriteTree applies the subpath rewrite in place to every .html file under
// root and returns how many files it rewrote. Other files are not touched.
func RewriteTree(root string) (int, error) {
	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || filepath.Ext(path) != ".html" {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(rewrite.Subpath(string(data), rewrite.IsNested(rel))), 0o644); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return count, writeError(err, root)
	}
	return count, nil
}

// Verify reports absolute-rooted links left in the tree under dir.
func Verify(dir string) ([]linkcheck.Finding, error) {
	return linkcheck.ScanTree(dir)
}
