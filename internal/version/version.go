// Package version parses and orders the dotted application versions stored in
// project files.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnparsable is returned when a version string is not of the form
// "<int>.<int>.<int>".
var ErrUnparsable = errors.New("unparsable version")

// Version is a (major, minor, patch) triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse parses a version of exactly three dot-separated non-negative integers.
// Components must be plain decimal digits; signs, whitespace and trailing
// text are rejected.
func Parse(text string) (Version, error) {
	parts := strings.Split(text, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q: expected 3 components, got %d", ErrUnparsable, text, len(parts))
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, strconv.IntSize-1)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: component %d: %v", ErrUnparsable, text, i, err)
		}
		nums[i] = int(n)
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// MustParse is like Parse but panics on error. Use it for constants.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns -1, 0 or 1 comparing a and b by major, then minor, then patch.
func Compare(a, b Version) int {
	switch {
	case a.Major != b.Major:
		return cmpInt(a.Major, b.Major)
	case a.Minor != b.Minor:
		return cmpInt(a.Minor, b.Minor)
	default:
		return cmpInt(a.Patch, b.Patch)
	}
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// Less reports whether v sorts strictly before other.
func (v Version) Less(other Version) bool {
	return Compare(v, other) < 0
}

// String returns the dotted form, e.g. "0.4.0".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
