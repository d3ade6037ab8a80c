// Package funcnames loads the func_names lookup table that maps an artifact
// identifier n to the symbol named on line n.
package funcnames

import (
	"os"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/mirview/internal/foundation/errors"
)

// FileName is the lookup table's name inside the data directory.
const FileName = "func_names"

var lineBreak = regexp.MustCompile(`\r?\n`)

// Index is an immutable, 1-based table of function names.
type Index struct {
	lines []string
}

// New builds an index from already split lines. Each line is trimmed.
func New(lines []string) *Index {
	trimmed := make([]string, len(lines))
	for i, l := range lines {
		trimmed[i] = strings.TrimSpace(l)
	}
	return &Index{lines: trimmed}
}

// Parse splits raw file content on LF or CRLF line endings.
func Parse(raw string) *Index {
	return New(lineBreak.Split(raw, -1))
}

// Load reads the lookup table at path. The table is required, so any read
// failure is a fatal configuration error.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read function name index").
			Fatal().
			UserAction().
			WithContext("path", path).
			Build()
	}
	return Parse(string(data)), nil
}

// Lookup returns the name for identifier id. Identifiers outside the table
// and blank lines have no name.
func (x *Index) Lookup(id int) (string, bool) {
	if x == nil || id < 1 || id > len(x.lines) {
		return "", false
	}
	name := x.lines[id-1]
	if name == "" {
		return "", false
	}
	return name, true
}

// Lines returns a copy of every entry in file order.
func (x *Index) Lines() []string {
	if x == nil {
		return nil
	}
	out := make([]string, len(x.lines))
	copy(out, x.lines)
	return out
}

// Len is the number of lines in the table, including blank ones.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.lines)
}
