// Package testutil holds fixtures and assertions shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Catalog is the standard data directory: func_names alpha/beta with
// 1.log, 1.mir and 2.log.
func Catalog() map[string]string {
	return map[string]string{
		"func_names": "alpha\nbeta\n",
		"1.log":      "warning: unused variable",
		"1.mir":      "fn alpha() -> () {}",
		"2.log":      "error: type mismatch",
	}
}

// WriteCatalog writes files into a fresh temporary directory and returns it.
func WriteCatalog(t testing.TB, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}
