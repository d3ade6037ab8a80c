package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// FileAssertions provides fluent assertions on a generated site tree.
type FileAssertions struct {
	t       testing.TB
	baseDir string
}

// NewFileAssertions creates a new file assertions helper rooted at baseDir.
func NewFileAssertions(t testing.TB, baseDir string) *FileAssertions {
	return &FileAssertions{t: t, baseDir: baseDir}
}

// AssertFileExists validates that a file exists
func (fa *FileAssertions) AssertFileExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	assert.FileExists(fa.t, filepath.Join(fa.baseDir, relativePath))
	return fa
}

// AssertNotExists validates that nothing exists at relativePath.
func (fa *FileAssertions) AssertNotExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	assert.NoFileExists(fa.t, filepath.Join(fa.baseDir, relativePath))
	assert.NoDirExists(fa.t, filepath.Join(fa.baseDir, relativePath))
	return fa
}

// AssertFileContains validates that a file contains expected content
func (fa *FileAssertions) AssertFileContains(relativePath, expected string) *FileAssertions {
	fa.t.Helper()
	assert.Contains(fa.t, fa.Content(relativePath), expected, relativePath)
	return fa
}

// AssertFileNotContains validates that a file does not contain unexpected content
func (fa *FileAssertions) AssertFileNotContains(relativePath, unexpected string) *FileAssertions {
	fa.t.Helper()
	assert.NotContains(fa.t, fa.Content(relativePath), unexpected, relativePath)
	return fa
}

// AssertHTMLCount validates how many .html files the tree holds.
func (fa *FileAssertions) AssertHTMLCount(expected int) *FileAssertions {
	fa.t.Helper()
	count := 0
	err := filepath.WalkDir(fa.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".html" {
			count++
		}
		return nil
	})
	require.NoError(fa.t, err)
	assert.Equal(fa.t, expected, count, "html files under %s", fa.baseDir)
	return fa
}

// Content reads and returns the content of a file
func (fa *FileAssertions) Content(relativePath string) string {
	fa.t.Helper()
	content, err := os.ReadFile(filepath.Join(fa.baseDir, relativePath))
	require.NoError(fa.t, err)
	return string(content)
}
