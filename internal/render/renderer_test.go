package render

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mirview/internal/foundation/errors"
)

func TestDefaultTemplatesRenderFixture(t *testing.T) {
	dir, names := newFixture(t)
	r, err := NewTemplateRenderer("")
	require.NoError(t, err)
	p := newTestPipeline(dir, names, r)

	index, err := p.Index(context.Background())
	require.NoError(t, err)
	assert.Contains(t, index, `href="/style.css"`)
	assert.Contains(t, index, `<a href="/page/1">1</a>`)
	assert.Contains(t, index, `<a href="/page/2">2</a>`)
	assert.Contains(t, index, "alpha")

	page, err := p.Page(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, page, `<a href="/" class="back-link">`)
	assert.Contains(t, page, "log for one")
	assert.Contains(t, page, "Compiler log")
	assert.Contains(t, page, "MIR")
}

func TestTemplateRendererEscapesArtifactContent(t *testing.T) {
	r, err := NewTemplateRenderer("")
	require.NoError(t, err)

	html, err := r.Render(TemplatePage, PageModel{ID: 4, HasLog: true, LogContent: "<script>alert(1)</script>"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestTemplateRendererFromViewsDir(t *testing.T) {
	views := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(views, "index.html"), []byte(`groups={{len .Groups}}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(views, "page.html"), []byte(`id={{.ID}}`), 0o600))

	r, err := NewTemplateRenderer(views)
	require.NoError(t, err)

	out, err := r.Render(TemplatePage, PageModel{ID: 9})
	require.NoError(t, err)
	assert.Equal(t, "id=9", out)
}

func TestTemplateRendererMissingView(t *testing.T) {
	_, err := NewTemplateRenderer(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestTemplateRendererUnknownTemplate(t *testing.T) {
	r, err := NewTemplateRenderer("")
	require.NoError(t, err)

	_, err = r.Render("missing", nil)
	assert.True(t, errors.HasCategory(err, errors.CategoryRender))
}

func TestDefaultAssetsContainStylesheet(t *testing.T) {
	data, err := fs.ReadFile(DefaultAssets(), "style.css")
	require.NoError(t, err)
	assert.Contains(t, string(data), ".back-link")
}
