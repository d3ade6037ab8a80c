package render

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"os"

	"git.home.luguber.info/inful/mirview/internal/foundation/errors"
)

// Template identifiers understood by every Renderer.
const (
	TemplateIndex = "index"
	TemplatePage  = "page"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

//go:embed assets
var embeddedAssets embed.FS

// Renderer turns a template identifier and its model into HTML text.
// Implementations are responsible for escaping model content.
type Renderer interface {
	Render(name string, data any) (string, error)
}

// TemplateRenderer renders html/template files named <id>.html.
type TemplateRenderer struct {
	templates map[string]*template.Template
}

// NewTemplateRenderer loads index.html and page.html from viewsDir, or the
// built-in templates when viewsDir is empty.
func NewTemplateRenderer(viewsDir string) (*TemplateRenderer, error) {
	var views fs.FS
	if viewsDir == "" {
		sub, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryInternal, "embedded templates unavailable").Build()
		}
		views = sub
	} else {
		views = os.DirFS(viewsDir)
	}
	return NewTemplateRendererFS(views)
}

// NewTemplateRendererFS parses the templates from views.
func NewTemplateRendererFS(views fs.FS) (*TemplateRenderer, error) {
	r := &TemplateRenderer{templates: make(map[string]*template.Template, 2)}
	for _, name := range []string{TemplateIndex, TemplatePage} {
		tmpl, err := template.ParseFS(views, name+".html")
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse template").
				Fatal().
				WithContext("template", name).
				Build()
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

// Render executes the named template.
func (r *TemplateRenderer) Render(name string, data any) (string, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return "", errors.RenderError("unknown template").WithContext("template", name).Build()
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.WrapError(err, errors.CategoryRender, "failed to execute template").
			WithContext("template", name).
			Build()
	}
	return buf.String(), nil
}

// DefaultAssets returns the built-in static assets (the stylesheet).
func DefaultAssets() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

// Assets returns assetsDir as a filesystem, or the built-in assets when empty.
func Assets(assetsDir string) fs.FS {
	if assetsDir == "" {
		return DefaultAssets()
	}
	return os.DirFS(assetsDir)
}
