package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/mirview/internal/logfields"
	"git.home.luguber.info/inful/mirview/internal/observability"
)

// ContentLoader reads artifact text. It never fails: read errors come back
// as a readable diagnostic in place of the content.
type ContentLoader interface {
	Load(ctx context.Context, name string) string
}

// ReadFailureObserver is notified when an artifact could not be read.
type ReadFailureObserver interface {
	IncArtifactReadFailure()
}

// DirLoader reads artifacts relative to Dir.
type DirLoader struct {
	Dir      string
	Failures ReadFailureObserver
}

// NewDirLoader returns a loader rooted at dir.
func NewDirLoader(dir string) *DirLoader {
	return &DirLoader{Dir: dir}
}

// Load returns the file's content, or "Error reading file: <reason>".
func (l *DirLoader) Load(ctx context.Context, name string) string {
	data, err := os.ReadFile(filepath.Join(l.Dir, filepath.Base(name)))
	if err != nil {
		observability.WarnContext(ctx, "Failed to read artifact", logfields.File(name), logfields.Error(err))
		if l.Failures != nil {
			l.Failures.IncArtifactReadFailure()
		}
		return ReadErrorText(err)
	}
	return string(data)
}

// ReadErrorText formats the inline diagnostic shown for an unreadable artifact.
func ReadErrorText(err error) string {
	return fmt.Sprintf("Error reading file: %v", err)
}
