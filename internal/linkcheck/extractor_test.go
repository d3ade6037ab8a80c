package linkcheck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLinks(t *testing.T) {
	doc := `<html><head><link rel="stylesheet" href="/style.css"><script src="./app.js"></script></head>
<body><a href="/page/1">1</a><img src="https://example.com/x.png"><a name="anchor">no href</a></body></html>`

	links, err := ExtractLinks(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, []Link{
		{URL: "/style.css", Tag: "link", Attribute: "href"},
		{URL: "./app.js", Tag: "script", Attribute: "src"},
		{URL: "/page/1", Tag: "a", Attribute: "href"},
		{URL: "https://example.com/x.png", Tag: "img", Attribute: "src"},
	}, links)
}

func TestAbsoluteRooted(t *testing.T) {
	links := []Link{
		{URL: "/style.css"},
		{URL: "/"},
		{URL: "//cdn.example.com/x.js"},
		{URL: "./page/1"},
		{URL: "../../index.html"},
	}
	assert.Equal(t, []Link{{URL: "/style.css"}, {URL: "/"}}, AbsoluteRooted(links))
}

func TestScanTree(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "page", "1"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte(`<a href="./page/1">1</a>`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "page", "1", "index.html"), []byte(`<a href="/">back</a>`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "style.css"), []byte(`a[href="/x"]{}`), 0o600))

	findings, err := ScanTree(root)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "page/1/index.html", findings[0].File)
	assert.Equal(t, "/", findings[0].Link.URL)
}

func TestScanTreeMissingRoot(t *testing.T) {
	_, err := ScanTree(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
