// Package semver implements the semantic version model used by the revision
// engine. Parsing is deliberately forgiving: version strings coming from
// imported documents are often truncated ("1.2") or carry a "v" prefix, so
// missing or malformed segments default to zero instead of failing.
package semver

import (
	"fmt"
	"strconv"
	"strings"
)

// Bump identifies which version segment an increment advances.
type Bump string

const (
	BumpMajor Bump = "major"
	BumpMinor Bump = "minor"
	BumpPatch Bump = "patch"
)

// Version is a semantic version triple with an optional pre-release label.
type Version struct {
	Major      int    `json:"major"`
	Minor      int    `json:"minor"`
	Patch      int    `json:"patch"`
	PreRelease string `json:"pre_release,omitempty"`
}

// Initial is the version assigned to the first revision of a document.
func Initial() Version {
	return Version{Major: 1, Minor: 0, Patch: 0}
}

// Parse converts a version string into a Version. It accepts an optional
// "v" prefix and a "-pre" suffix; missing or non-numeric segments are
// treated as 0. Parse never fails.
func Parse(s string) Version {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")

	var pre string
	if idx := strings.IndexByte(s, '-'); idx >= 0 {
		pre = s[idx+1:]
		s = s[:idx]
	}

	segment := func(parts []string, i int) int {
		if i >= len(parts) {
			return 0
		}
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 {
			return 0
		}
		return n
	}

	parts := strings.Split(s, ".")
	return Version{
		Major:      segment(parts, 0),
		Minor:      segment(parts, 1),
		Patch:      segment(parts, 2),
		PreRelease: pre,
	}
}

// String formats the version as "major.minor.patch" with an optional
// "-pre" suffix.
func (v Version) String() string {
	if v.PreRelease != "" {
		return fmt.Sprintf("%d.%d.%d-%s", v.Major, v.Minor, v.Patch, v.PreRelease)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1 if a < b, 0 if equal, 1 if a > b. Ordering is by
// major, then minor, then patch; versions differing only in pre-release
// label compare lexicographically with the empty label first, so a release
// sorts before its pre-releases.
func Compare(a, b Version) int {
	if a.Major != b.Major {
		return sign(a.Major - b.Major)
	}
	if a.Minor != b.Minor {
		return sign(a.Minor - b.Minor)
	}
	if a.Patch != b.Patch {
		return sign(a.Patch - b.Patch)
	}
	return strings.Compare(a.PreRelease, b.PreRelease)
}

// CompareStrings parses both arguments and compares them.
func CompareStrings(a, b string) int {
	return Compare(Parse(a), Parse(b))
}

// Increment returns the next version for the given bump. A major bump
// resets minor and patch, a minor bump resets patch. The pre-release label
// is cleared in all cases. Unknown bumps are treated as patch.
func Increment(v Version, bump Bump) Version {
	switch bump {
	case BumpMajor:
		return Version{Major: v.Major + 1}
	case BumpMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
