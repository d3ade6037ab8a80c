package artifact

import (
	"regexp"
	"strconv"
)

// Kind identifies which artifact a file holds.
type Kind string

const (
	KindLog Kind = "log"
	KindIR  Kind = "mir"
)

var namePattern = regexp.MustCompile(`^(\d+)\.(log|mir)$`)

// ParseName extracts the identifier and kind from an artifact file name.
// Leading zeros are dropped ("007.log" is identifier 7), so differently padded
// names with the same value land in the same group. Zero and identifiers that
// overflow int are not artifacts.
func ParseName(name string) (int, Kind, bool) {
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, "", false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil || id <= 0 {
		return 0, "", false
	}
	return id, Kind(m[2]), true
}
