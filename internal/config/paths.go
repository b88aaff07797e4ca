package config

import (
	"fmt"
	"os"
)

const (
	// DefaultPath is the project-local config location.
	DefaultPath = ".semver/config.json"
	// VendoredPath is preferred over DefaultPath when present, so a
	// vendoring tool can pin the config it installed.
	VendoredPath = ".vendored/configs/git-semver.json"
)

var osStat = os.Stat

// ResolvePath picks the config file to load. An explicit override wins
// and must exist; otherwise the vendored copy is preferred over the
// project default. The decision depends only on the arguments and the
// existence of the two well-known paths.
func ResolvePath(override string) (string, error) {
	if override != "" {
		if _, err := osStat(override); err != nil {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, override)
		}
		return override, nil
	}
	for _, candidate := range []string{VendoredPath, DefaultPath} {
		if _, err := osStat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s or %s", ErrConfigNotFound, VendoredPath, DefaultPath)
}
