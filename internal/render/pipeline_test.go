package render

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"git.home.luguber.info/inful/mirview/internal/artifact"
	"git.home.luguber.info/inful/mirview/internal/foundation/errors"
	"git.home.luguber.info/inful/mirview/internal/funcnames"
)

// recordingRenderer captures the model handed to each template.
type recordingRenderer struct {
	mu     sync.Mutex
	models map[string]any
	err    error
}

func (r *recordingRenderer) Render(name string, data any) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.models == nil {
		r.models = map[string]any{}
	}
	r.models[name] = data
	if r.err != nil {
		return "", r.err
	}
	return "<" + name + ">", nil
}

type failingScanner struct{}

func (failingScanner) Scan(context.Context) ([]artifact.Group, error) {
	return []artifact.Group{}, errors.FileSystemError("failed to read artifact directory").Build()
}

// newFixture lays out func_names ["alpha","beta"] with 1.log, 1.mir and 2.log.
func newFixture(t *testing.T) (string, *funcnames.Index) {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		funcnames.FileName: "alpha\nbeta\n",
		"1.log":            "log for one",
		"1.mir":            "fn alpha() -> () { bb0: { return; } }",
		"2.log":            "log for two",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	names, err := funcnames.Load(filepath.Join(dir, funcnames.FileName))
	require.NoError(t, err)
	return dir, names
}

func newTestPipeline(dir string, names *funcnames.Index, r Renderer) *Pipeline {
	return NewPipeline(artifact.NewDirScanner(dir), names, artifact.NewDirLoader(dir), r)
}

func TestIndexModel(t *testing.T) {
	dir, names := newFixture(t)
	rec := &recordingRenderer{}

	html, err := newTestPipeline(dir, names, rec).Index(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<index>", html)

	model, ok := rec.models[TemplateIndex].(IndexModel)
	require.True(t, ok)
	assert.Equal(t, []GroupSummary{
		{ID: 1, FunctionName: "alpha", HasFunctionName: true, HasLog: true, HasIR: true},
		{ID: 2, FunctionName: "beta", HasFunctionName: true, HasLog: true, HasIR: false},
	}, model.Groups)
	assert.Equal(t, []string{"alpha", "beta", ""}, model.FunctionNames)
}

func TestPageModelLoadsBothArtifacts(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir, names := newFixture(t)
	rec := &recordingRenderer{}

	_, err := newTestPipeline(dir, names, rec).Page(context.Background(), 1)
	require.NoError(t, err)

	model := rec.models[TemplatePage].(PageModel)
	assert.Equal(t, PageModel{
		ID:              1,
		FunctionName:    "alpha",
		HasFunctionName: true,
		LogContent:      "log for one",
		IRContent:       "fn alpha() -> () { bb0: { return; } }",
		HasLog:          true,
		HasIR:           true,
	}, model)
}

func TestPageModelLogOnly(t *testing.T) {
	dir, names := newFixture(t)
	rec := &recordingRenderer{}

	_, err := newTestPipeline(dir, names, rec).Page(context.Background(), 2)
	require.NoError(t, err)

	model := rec.models[TemplatePage].(PageModel)
	assert.Equal(t, "beta", model.FunctionName)
	assert.True(t, model.HasLog)
	assert.False(t, model.HasIR)
	assert.Empty(t, model.IRContent)
}

func TestPageUnknownIdentifier(t *testing.T) {
	dir, names := newFixture(t)
	rec := &recordingRenderer{}

	_, err := newTestPipeline(dir, names, rec).Page(context.Background(), 3)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrNotFound))
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
	assert.NotContains(t, rec.models, TemplatePage)
}

func TestPageUnreadableArtifactIsContained(t *testing.T) {
	dir, names := newFixture(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "1.log")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing-target"), filepath.Join(dir, "1.log")))
	rec := &recordingRenderer{}

	_, err := newTestPipeline(dir, names, rec).Page(context.Background(), 1)
	require.NoError(t, err)

	model := rec.models[TemplatePage].(PageModel)
	assert.True(t, strings.HasPrefix(model.LogContent, "Error reading file: "), model.LogContent)
	assert.True(t, model.HasLog)
	assert.Equal(t, "fn alpha() -> () { bb0: { return; } }", model.IRContent)
}

func TestScanFailurePropagates(t *testing.T) {
	_, names := newFixture(t)
	p := NewPipeline(failingScanner{}, names, artifact.NewDirLoader(t.TempDir()), &recordingRenderer{})

	_, err := p.Index(context.Background())
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))

	_, err = p.Page(context.Background(), 1)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
	assert.False(t, stderrors.Is(err, ErrNotFound))
}

func TestRenderFailureIsClassified(t *testing.T) {
	dir, names := newFixture(t)
	rec := &recordingRenderer{err: stderrors.New("template exploded")}

	_, err := newTestPipeline(dir, names, rec).Index(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryRender))
}
