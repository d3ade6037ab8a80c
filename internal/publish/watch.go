package publish

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/mirview/internal/artifact"
	"git.home.luguber.info/inful/mirview/internal/foundation/errors"
	"git.home.luguber.info/inful/mirview/internal/funcnames"
	"git.home.luguber.info/inful/mirview/internal/logfields"
	"git.home.luguber.info/inful/mirview/internal/observability"
)

const defaultDebounce = 300 * time.Millisecond

// Watcher reruns Build whenever an artifact or the function-name index in
// Dir changes. Rebuilds are always full builds and never overlap.
type Watcher struct {
	Dir      string
	Debounce time.Duration
	Build    func(ctx context.Context) error
}

// Run blocks until ctx is canceled. Build failures are logged and watching
// continues; only watcher setup errors are returned.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Build()
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(w.Dir); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to watch data directory").
			WithContext("dir", w.Dir).
			Build()
	}
	observability.InfoContext(ctx, "Watching data directory for changes", logfields.Dir(w.Dir))

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			observability.DebugContext(ctx, "Data directory changed", logfields.File(ev.Name))
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			observability.WarnContext(ctx, "File watcher error", logfields.Error(werr))
		case <-fire:
			fire = nil
			if err := w.Build(ctx); err != nil {
				observability.ErrorContext(ctx, "Rebuild failed", logfields.Error(err))
			}
		}
	}
}

// relevant ignores attribute-only changes and files that are not part of the catalog.
func relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Base(ev.Name)
	if name == funcnames.FileName {
		return true
	}
	_, _, ok := artifact.ParseName(name)
	return ok
}
