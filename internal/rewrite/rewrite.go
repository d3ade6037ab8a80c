// Package rewrite retargets root-relative links in generated HTML.
//
// Two passes exist. RelativeRoot runs while a page is rendered and only
// touches the stylesheet reference, because it knows how deep the page will
// be written. Subpath runs afterwards over a finished tree and rewrites every
// root-relative href/src so the site works below a non-root base path.
// Both operate on text and are idempotent.
package rewrite

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Stylesheet is the single root-relative asset the templates reference.
const Stylesheet = "style.css"

// PageDir is the output directory holding per-identifier pages.
const PageDir = "page"

var (
	stylesheetRef = regexp.MustCompile(`(href|src)="/` + regexp.QuoteMeta(Stylesheet) + `"`)
	rootedAttr    = regexp.MustCompile(`(href|src)="/([^"]+)"`)
	backLink      = regexp.MustCompile(`<a\s+href="/"\s+class="back-link">`)
)

// RelativeRoot points the stylesheet reference at the output root:
// ./style.css for the top-level index, ../../style.css for page/<id>/index.html.
func RelativeRoot(html string, nested bool) string {
	prefix := "./"
	if nested {
		prefix = "../../"
	}
	return stylesheetRef.ReplaceAllString(html, `$1="`+prefix+Stylesheet+`"`)
}

// Subpath rewrites href="/x" and src="/x" to "./x". For nested pages the
// back-link to "/" is pointed at ../../index.html.
func Subpath(html string, nested bool) string {
	html = rootedAttr.ReplaceAllString(html, `$1="./$2"`)
	if nested {
		html = backLink.ReplaceAllString(html, `<a href="../../index.html" class="back-link">`)
	}
	return html
}

// IsNested reports whether relPath (relative to the output root) is a
// per-identifier page.
func IsNested(relPath string) bool {
	rel := filepath.ToSlash(filepath.Clean(relPath))
	return strings.HasPrefix(rel, PageDir+"/")
}

// PagePath is the output path of the page for id, relative to the output root.
func PagePath(id int) string {
	return filepath.Join(PageDir, strconv.Itoa(id), "index.html")
}
