// Package config loads the hierarchical component configuration: a root
// component plus any number of named subdirectory components, each with
// its own trigger patterns, update targets, and changelog settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/conn-castle/git-semver/internal/messages"
	"github.com/conn-castle/git-semver/internal/updates"
)

// ErrConfigNotFound reports that no config file could be located.
var ErrConfigNotFound = errors.New(messages.ConfigNotFound)

// ErrSubdirNotFound reports a requested subdirectory component that the
// config does not declare.
var ErrSubdirNotFound = errors.New(messages.SubdirNotFound)

// reservedKeys are top-level keys that never name a subdirectory
// component. Keys prefixed "_" are metadata and are skipped as well.
var reservedKeys = map[string]bool{
	"version_file": true,
	"files":        true,
	"updates":      true,
	"changelog":    true,
	"install":      true,
}

// Changelog holds the resolved changelog settings for one component.
type Changelog struct {
	Enabled        bool
	File           string
	IgnorePrefixes []string
}

// Component is one independently versioned unit: the root (Name == "")
// or a named subdirectory.
type Component struct {
	Name        string
	VersionFile string
	Files       []string
	Updates     map[string]updates.Rule
	Changelog   Changelog
}

// DisplayName returns the component name used in user output.
func (c Component) DisplayName() string {
	if c.Name == "" {
		return messages.RootComponentName
	}
	return c.Name
}

// Install carries the CI installation policy flags.
type Install struct {
	// OnMerge enables the push-triggered bump flow.
	OnMerge bool
	// Automerge selects direct commit/tag/push over review requests.
	Automerge bool
	// LatestOnBumpAll moves the floating latest tag on multi-component
	// bump-all passes, not just single-component bumps.
	LatestOnBumpAll bool
}

// Config is the strongly-typed configuration tree, built once per run.
type Config struct {
	Root    Component
	Subdirs []Component
	Install Install
}

// Component returns the root component for name == "", or the named
// subdirectory component.
func (c *Config) Component(name string) (Component, error) {
	if name == "" {
		return c.Root, nil
	}
	for _, sub := range c.Subdirs {
		if sub.Name == name {
			return sub, nil
		}
	}
	return Component{}, fmt.Errorf("%w: %q", ErrSubdirNotFound, name)
}

// Components returns the root component followed by the subdirectory
// components in name order.
func (c *Config) Components() []Component {
	return append([]Component{c.Root}, c.Subdirs...)
}

// LoadResolved resolves the config path (override, vendored, default)
// and loads it.
func LoadResolved(override string) (*Config, error) {
	path, err := ResolvePath(override)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Load reads and validates the config file at path. files and updates
// are optional at every level; a parseable config is a valid config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidFmt, path, err)
	}
	return build(raw)
}

// LoadInstallPolicy reads only the install policy, leniently: a missing
// or unparseable config yields the defaults so the CI entry point can
// always decide how to proceed.
func LoadInstallPolicy(override string) Install {
	defaults := Install{OnMerge: true, Automerge: true}
	path, err := ResolvePath(override)
	if err != nil {
		return defaults
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return defaults
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return defaults
	}
	return parseInstall(raw["install"])
}

func build(raw map[string]json.RawMessage) (*Config, error) {
	rootChangelog, err := parseChangelog(raw["changelog"], "CHANGELOG.md")
	if err != nil {
		return nil, err
	}
	root, err := buildComponent("", raw, rootChangelog)
	if err != nil {
		return nil, err
	}

	var names []string
	for key, value := range raw {
		if reservedKeys[key] || strings.HasPrefix(key, "_") || !isObject(value) {
			continue
		}
		names = append(names, key)
	}
	sort.Strings(names)

	cfg := &Config{Root: root, Install: parseInstall(raw["install"])}
	for _, name := range names {
		var subRaw map[string]json.RawMessage
		if err := json.Unmarshal(raw[name], &subRaw); err != nil {
			return nil, fmt.Errorf(messages.ConfigInvalidKeyFmt, name, err)
		}
		cl, err := subdirChangelog(subRaw["changelog"], name, rootChangelog)
		if err != nil {
			return nil, err
		}
		sub, err := buildComponent(name, subRaw, cl)
		if err != nil {
			return nil, err
		}
		cfg.Subdirs = append(cfg.Subdirs, sub)
	}
	return cfg, nil
}

func buildComponent(name string, raw map[string]json.RawMessage, cl Changelog) (Component, error) {
	comp := Component{Name: name, VersionFile: defaultVersionFile(name), Changelog: cl}
	if v, ok := raw["version_file"]; ok {
		if err := json.Unmarshal(v, &comp.VersionFile); err != nil {
			return Component{}, fmt.Errorf(messages.ConfigInvalidKeyFmt, "version_file", err)
		}
	}
	if v, ok := raw["files"]; ok {
		if err := json.Unmarshal(v, &comp.Files); err != nil {
			return Component{}, fmt.Errorf(messages.ConfigInvalidKeyFmt, "files", err)
		}
	}
	if v, ok := raw["updates"]; ok {
		if err := json.Unmarshal(v, &comp.Updates); err != nil {
			return Component{}, fmt.Errorf(messages.ConfigInvalidKeyFmt, "updates", err)
		}
	}
	return comp, nil
}

func defaultVersionFile(name string) string {
	if name == "" {
		return "VERSION"
	}
	return name + "/VERSION"
}

// parseChangelog resolves one changelog value: absent means enabled
// with the default file, a boolean toggles the default, and the object
// form supplies file and ignore_prefixes with per-field defaults.
func parseChangelog(raw json.RawMessage, defaultFile string) (Changelog, error) {
	if raw == nil {
		return Changelog{Enabled: true, File: defaultFile}, nil
	}
	var enabled bool
	if err := json.Unmarshal(raw, &enabled); err == nil {
		if !enabled {
			return Changelog{}, nil
		}
		return Changelog{Enabled: true, File: defaultFile}, nil
	}
	var obj struct {
		File           string   `json:"file"`
		IgnorePrefixes []string `json:"ignore_prefixes"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Changelog{}, errors.New(messages.ConfigBadChangelog)
	}
	file := obj.File
	if file == "" {
		file = defaultFile
	}
	return Changelog{Enabled: true, File: file, IgnorePrefixes: obj.IgnorePrefixes}, nil
}

// subdirChangelog applies the inheritance rule: a subdir-local key is
// authoritative, otherwise the enabled flag and ignore prefixes come
// from the root while the file path is always recomputed for the
// subdirectory, never inherited from a root-level custom filename.
func subdirChangelog(raw json.RawMessage, name string, root Changelog) (Changelog, error) {
	defaultFile := name + "/CHANGELOG.md"
	if raw != nil {
		return parseChangelog(raw, defaultFile)
	}
	inherited := Changelog{Enabled: root.Enabled, IgnorePrefixes: root.IgnorePrefixes}
	if inherited.Enabled {
		inherited.File = defaultFile
	}
	return inherited, nil
}

func parseInstall(raw json.RawMessage) Install {
	out := Install{OnMerge: true, Automerge: true}
	if raw == nil {
		return out
	}
	var obj struct {
		OnMerge         *bool `json:"on_merge"`
		Automerge       *bool `json:"automerge"`
		LatestOnBumpAll *bool `json:"latest_on_bump_all"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return out
	}
	if obj.OnMerge != nil {
		out.OnMerge = *obj.OnMerge
	}
	if obj.Automerge != nil {
		out.Automerge = *obj.Automerge
	}
	if obj.LatestOnBumpAll != nil {
		out.LatestOnBumpAll = *obj.LatestOnBumpAll
	}
	return out
}

// isObject reports whether a raw JSON value is an object, which is the
// marker distinguishing a subdirectory component from scalar metadata.
func isObject(raw json.RawMessage) bool {
	trimmed := strings.TrimLeft(string(raw), " \t\r\n")
	return strings.HasPrefix(trimmed, "{")
}
