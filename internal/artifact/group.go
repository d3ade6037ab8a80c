package artifact

import (
	"context"
	"os"
	"sort"

	"git.home.luguber.info/inful/mirview/internal/foundation/errors"
	"git.home.luguber.info/inful/mirview/internal/logfields"
	"git.home.luguber.info/inful/mirview/internal/observability"
)

// Group pairs the artifacts sharing one identifier. At least one of LogFile
// and IRFile is always set.
type Group struct {
	ID      int
	LogFile string
	IRFile  string
}

// HasLog reports whether the group has a compiler log.
func (g Group) HasLog() bool { return g.LogFile != "" }

// HasIR reports whether the group has an IR dump.
func (g Group) HasIR() bool { return g.IRFile != "" }

// Scanner enumerates the artifact groups of a data source.
type Scanner interface {
	Scan(ctx context.Context) ([]Group, error)
}

// DirScanner lists a directory on every call. Nothing is cached between scans.
type DirScanner struct {
	Dir string
}

// NewDirScanner returns a scanner over dir.
func NewDirScanner(dir string) *DirScanner {
	return &DirScanner{Dir: dir}
}

// Scan returns the groups ordered by ascending identifier. If the directory
// cannot be read, the failure is logged and an empty slice is returned with a
// classified filesystem error; callers decide whether that is fatal.
func (s *DirScanner) Scan(ctx context.Context) ([]Group, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		observability.ErrorContext(ctx, "Error reading artifact directory", logfields.Dir(s.Dir), logfields.Error(err))
		return []Group{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to read artifact directory").
			WithContext("dir", s.Dir).
			Build()
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	groups := GroupNames(names)
	observability.DebugContext(ctx, "Scanned artifact directory", logfields.Dir(s.Dir), logfields.Groups(len(groups)))
	return groups, nil
}

// GroupNames merges file names into groups sorted by identifier. Names that
// are not artifacts are ignored.
func GroupNames(names []string) []Group {
	byID := make(map[int]*Group)
	for _, name := range names {
		id, kind, ok := ParseName(name)
		if !ok {
			continue
		}
		g, exists := byID[id]
		if !exists {
			g = &Group{ID: id}
			byID[id] = g
		}
		switch kind {
		case KindLog:
			g.LogFile = name
		case KindIR:
			g.IRFile = name
		}
	}

	ids := make([]int, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	groups := make([]Group, 0, len(ids))
	for _, id := range ids {
		groups = append(groups, *byID[id])
	}
	return groups
}

// Find returns the group with the given identifier.
func Find(groups []Group, id int) (Group, bool) {
	i := sort.Search(len(groups), func(i int) bool { return groups[i].ID >= id })
	if i < len(groups) && groups[i].ID == id {
		return groups[i], true
	}
	return Group{}, false
}
