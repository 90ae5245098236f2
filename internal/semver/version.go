// Package semver implements the three-part version arithmetic used by the
// release pipeline.
//
// The package deliberately implements only what the manifest "version" field
// needs: parse a "major.minor.patch" string, increment one component, and
// serialize back. Pre-release and build metadata are out of scope — editor
// package manifests carry plain triples, and the registry tooling rejects
// anything else.
//
// Parsing is lenient by policy: version strings observed in the wild are not
// validated by the surrounding tooling, so missing or non-numeric components
// are coerced to zero rather than rejected. "1.2" bumps as if it were
// "1.2.0", and "abc" as "0.0.0". This keeps a malformed manifest recoverable
// by a single bump instead of wedging the pipeline.
package semver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/asiloisad/pulsar-fast-publish/internal/model"
)

// Version represents a semantic version with major, minor, and patch
// components. The zero value is "0.0.0".
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse converts a version string into a Version. A leading "v" is tolerated
// and stripped. Components beyond the third are ignored; missing, empty, or
// non-numeric components are coerced to zero. Negative components are also
// coerced to zero, since a bump must always yield non-negative integers.
func Parse(s string) Version {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	parts := strings.Split(s, ".")

	return Version{
		Major: component(parts, 0),
		Minor: component(parts, 1),
		Patch: component(parts, 2),
	}
}

// component extracts the i-th dot-separated component as a non-negative
// integer, applying the coercion policy described in the package comment.
func component(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Bump returns a new Version with the given bump mode applied:
//
//	major: (a+1).0.0
//	minor: a.(b+1).0
//	patch: a.b.(c+1)
//
// The receiver is not modified. An unrecognized mode returns the receiver
// unchanged; callers validate modes via model.ParseBumpMode before reaching
// this point.
func (v Version) Bump(mode model.BumpMode) Version {
	switch mode {
	case model.BumpMajor:
		return Version{Major: v.Major + 1}
	case model.BumpMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	case model.BumpPatch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	default:
		return v
	}
}

// String returns the version in "major.minor.patch" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Tag returns the release tag for the version using the given prefix,
// e.g. Tag("v") on 1.2.3 yields "v1.2.3".
func (v Version) Tag(prefix string) string {
	return prefix + v.String()
}
