// Package render turns scanned artifact groups into HTML pages.
package render

import (
	"context"
	"sync"
	"time"

	"git.home.luguber.info/inful/mirview/internal/artifact"
	"git.home.luguber.info/inful/mirview/internal/foundation/errors"
	"git.home.luguber.info/inful/mirview/internal/funcnames"
	"git.home.luguber.info/inful/mirview/internal/logfields"
	"git.home.luguber.info/inful/mirview/internal/metrics"
	"git.home.luguber.info/inful/mirview/internal/observability"
)

// ErrNotFound is returned (matchable with errors.Is) when no group exists
// for a requested identifier.
var ErrNotFound = errors.NotFoundError("Page not found").Build()

// Pipeline combines the scanner, name index, loader and renderer.
type Pipeline struct {
	Scanner  artifact.Scanner
	Names    *funcnames.Index
	Loader   artifact.ContentLoader
	Renderer Renderer
	Metrics  metrics.Recorder
}

// NewPipeline wires a pipeline with metrics disabled.
func NewPipeline(scanner artifact.Scanner, names *funcnames.Index, loader artifact.ContentLoader, renderer Renderer) *Pipeline {
	return &Pipeline{
		Scanner:  scanner,
		Names:    names,
		Loader:   loader,
		Renderer: renderer,
		Metrics:  metrics.NoopRecorder{},
	}
}

func (p *Pipeline) recorder() metrics.Recorder {
	if p.Metrics == nil {
		return metrics.NoopRecorder{}
	}
	return p.Metrics
}

// Scan enumerates the groups once.
func (p *Pipeline) Scan(ctx context.Context) ([]artifact.Group, error) {
	groups, err := p.Scanner.Scan(ctx)
	p.recorder().IncScan(metrics.Result(err))
	return groups, err
}

// Index scans and renders the overview page.
func (p *Pipeline) Index(ctx context.Context) (string, error) {
	groups, err := p.Scan(ctx)
	if err != nil {
		return "", err
	}
	return p.RenderIndex(ctx, groups)
}

// Page scans and renders the detail page for id.
func (p *Pipeline) Page(ctx context.Context, id int) (string, error) {
	groups, err := p.Scan(ctx)
	if err != nil {
		return "", err
	}
	g, ok := artifact.Find(groups, id)
	if !ok {
		return "", ErrNotFound.WithContext("artifact_id", id)
	}
	return p.RenderPage(ctx, g)
}

// IndexModel summarises already scanned groups.
func (p *Pipeline) IndexModel(groups []artifact.Group) IndexModel {
	summaries := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		name, ok := p.Names.Lookup(g.ID)
		summaries = append(summaries, GroupSummary{
			ID:              g.ID,
			FunctionName:    name,
			HasFunctionName: ok,
			HasLog:          g.HasLog(),
			HasIR:           g.HasIR(),
		})
	}
	return IndexModel{Groups: summaries, FunctionNames: p.Names.Lines()}
}

// RenderIndex renders the overview for already scanned groups.
func (p *Pipeline) RenderIndex(ctx context.Context, groups []artifact.Group) (string, error) {
	return p.render(ctx, TemplateIndex, p.IndexModel(groups))
}

// PageModel loads both artifacts of g concurrently and waits for both.
func (p *Pipeline) PageModel(ctx context.Context, g artifact.Group) PageModel {
	name, hasName := p.Names.Lookup(g.ID)
	model := PageModel{
		ID:              g.ID,
		FunctionName:    name,
		HasFunctionName: hasName,
		HasLog:          g.HasLog(),
		HasIR:           g.HasIR(),
	}

	var wg sync.WaitGroup
	if g.HasLog() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			model.LogContent = p.Loader.Load(ctx, g.LogFile)
		}()
	}
	if g.HasIR() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			model.IRContent = p.Loader.Load(ctx, g.IRFile)
		}()
	}
	wg.Wait()
	return model
}

// RenderPage renders the detail page for a group without rescanning.
func (p *Pipeline) RenderPage(ctx context.Context, g artifact.Group) (string, error) {
	return p.render(ctx, TemplatePage, p.PageModel(ctx, g))
}

func (p *Pipeline) render(ctx context.Context, name string, data any) (string, error) {
	start := time.Now()
	html, err := p.Renderer.Render(name, data)
	p.recorder().ObserveRender(name, time.Since(start), metrics.Result(err))
	if err != nil {
		observability.ErrorContext(ctx, "Template render failed", logfields.Template(name), logfields.Error(err))
		if !errors.IsClassified(err) {
			err = errors.WrapError(err, errors.CategoryRender, "failed to render template").
				WithContext("template", name).
				Build()
		}
		return "", err
	}
	return html, nil
}
