// Package linkcheck inspects generated HTML for links that would break when
// the site is hosted below a non-root path.
package linkcheck

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/mirview/internal/foundation/errors"
)

// Link is one href or src attribute found in a document.
type Link struct {
	URL       string
	Tag       string
	Attribute string
}

// Finding is an absolute-rooted link in a file of a tree.
type Finding struct {
	File string // relative to the scanned root
	Link Link
}

// ExtractLinks returns every href and src attribute in document order.
func ExtractLinks(r io.Reader) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").Build()
	}

	var links []Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Namespace == "" && (a.Key == "href" || a.Key == "src") {
					links = append(links, Link{URL: a.Val, Tag: n.Data, Attribute: a.Key})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

// AbsoluteRooted keeps the links whose URL starts with a single "/".
// Protocol-relative URLs ("//host/x") are external and not reported.
func AbsoluteRooted(links []Link) []Link {
	var out []Link
	for _, l := range links {
		if strings.HasPrefix(l.URL, "/") && !strings.HasPrefix(l.URL, "//") {
			out = append(out, l)
		}
	}
	return out
}

// ScanTree reports every absolute-rooted link in the .html files under root.
func ScanTree(root string) ([]Finding, error) {
	var findings []Finding
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || filepath.Ext(path) != ".html" {
			return nil
		}
		f, err := os.Open(filepath.Clean(path))
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()

		links, err := ExtractLinks(f)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		for _, l := range AbsoluteRooted(links) {
			findings = append(findings, Finding{File: filepath.ToSlash(rel), Link: l})
		}
		return nil
	})
	if err != nil {
		if errors.IsClassified(err) {
			return nil, err
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to scan output tree").
			WithContext("dir", root).
			Build()
	}
	return findings, nil
}
