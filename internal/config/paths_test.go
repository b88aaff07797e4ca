package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubStat(t *testing.T, existing ...string) {
	t.Helper()
	present := map[string]bool{}
	for _, path := range existing {
		present[path] = true
	}
	orig := osStat
	osStat = func(path string) (os.FileInfo, error) {
		if present[path] {
			return nil, nil
		}
		return nil, os.ErrNotExist
	}
	t.Cleanup(func() { osStat = orig })
}

func TestResolvePathOverride(t *testing.T) {
	stubStat(t, "custom.json")

	path, err := ResolvePath("custom.json")
	require.NoError(t, err)
	assert.Equal(t, "custom.json", path)
}

func TestResolvePathOverrideMissing(t *testing.T) {
	stubStat(t)

	_, err := ResolvePath("custom.json")
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestResolvePathPrefersVendored(t *testing.T) {
	stubStat(t, VendoredPath, DefaultPath)

	path, err := ResolvePath("")
	require.NoError(t, err)
	assert.Equal(t, VendoredPath, path)
}

func TestResolvePathFallsBackToDefault(t *testing.T) {
	stubStat(t, DefaultPath)

	path, err := ResolvePath("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPath, path)
}

func TestResolvePathNothingFound(t *testing.T) {
	stubStat(t)

	_, err := ResolvePath("")
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}
