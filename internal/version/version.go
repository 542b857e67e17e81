// Package version parses and orders dotted numeric version strings such as
// the "major.minor" pair reported by a Python interpreter.
//
// Ordering is numeric per component, so "3.9" sorts before "3.10". Parsing
// and comparison are delegated to golang.org/x/mod/semver after normalizing
// the input to its "v"-prefixed form.
package version

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrInvalidVersion indicates the input is not a dotted numeric version.
var ErrInvalidVersion = errors.New("invalid version")

// Version is a validated dotted numeric version.
type Version struct {
	raw  string
	norm string
}

// Parse validates s and returns the corresponding Version.
//
// Accepted forms are "N", "N.N" and "N.N.N" where every component is a
// non-negative decimal number without leading zeros. Surrounding whitespace
// is ignored.
func Parse(s string) (Version, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Version{}, fmt.Errorf("%w: empty string", ErrInvalidVersion)
	}

	// semver accepts build and prerelease suffixes, which interpreters never
	// report for major.minor, so only digits and dots are let through.
	for _, r := range raw {
		if (r < '0' || r > '9') && r != '.' {
			return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
		}
	}

	norm := "v" + raw
	if !semver.IsValid(norm) {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	return Version{raw: raw, norm: norm}, nil
}

// MustParse is like Parse but panics on error. Intended for constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version as it was given, minus surrounding whitespace.
func (v Version) String() string {
	return v.raw
}

// MajorMinor returns the "major.minor" prefix, padding a missing minor with 0.
func (v Version) MajorMinor() string {
	return strings.TrimPrefix(semver.MajorMinor(v.norm), "v")
}

// Compare returns -1, 0 or +1 depending on whether a is lower than, equal to,
// or greater than b. Missing components compare as zero, so "3" equals "3.0".
func Compare(a, b Version) int {
	return semver.Compare(a.norm, b.norm)
}

// AtLeast reports whether actual is greater than or equal to minimum.
func AtLeast(actual, minimum string) (bool, error) {
	a, err := Parse(actual)
	if err != nil {
		return false, fmt.Errorf("actual version: %w", err)
	}
	m, err := Parse(minimum)
	if err != nil {
		return false, fmt.Errorf("minimum version: %w", err)
	}
	return Compare(a, m) >= 0, nil
}
