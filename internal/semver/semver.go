// Package semver implements strict MAJOR.MINOR.PATCH version handling
// for component version files.
package semver

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/conn-castle/git-semver/internal/messages"
)

// ErrInvalidVersion reports text that is not exactly three dot-separated
// non-negative integers.
var ErrInvalidVersion = errors.New(messages.InvalidVersion)

// ErrVersionFileNotFound reports a missing component version file.
var ErrVersionFileNotFound = errors.New(messages.VersionFileNotFound)

// Version is an ordered MAJOR.MINOR.PATCH triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse converts text into a Version. No prefixes, prerelease suffixes,
// or extra segments are accepted.
func Parse(text string) (Version, error) {
	parts := strings.Split(text, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, text)
	}
	nums := make([]int, len(parts))
	for i, part := range parts {
		n, ok := parseComponent(part)
		if !ok {
			return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, text)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// parseComponent accepts base-10 digits only, rejecting signs and
// surrounding whitespace that strconv would otherwise tolerate.
func parseComponent(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// String renders the canonical form, the inverse of Parse.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Bump returns the next version for kind (patch, minor, or major),
// applying semantic-versioning reset rules.
func (v Version) Bump(kind string) (Version, error) {
	switch kind {
	case "patch":
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
	case "minor":
		return Version{Major: v.Major, Minor: v.Minor + 1}, nil
	case "major":
		return Version{Major: v.Major + 1}, nil
	default:
		return Version{}, fmt.Errorf(messages.InvalidBumpTypeFmt, kind)
	}
}

// Read loads and parses the version file at path, trimming surrounding
// whitespace including the trailing newline.
func Read(path string) (Version, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Version{}, fmt.Errorf("%w: %s", ErrVersionFileNotFound, path)
		}
		return Version{}, err
	}
	return Parse(strings.TrimSpace(string(data)))
}

// Write stores v at path in the canonical single-line form.
func Write(path string, v Version) error {
	return os.WriteFile(path, []byte(v.String()+"\n"), 0o644)
}
