package changelog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedNow(t *testing.T) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time {
		return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	}
	t.Cleanup(func() { timeNow = orig })
}

func writeChangelog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestUpdateInsertsBeforeFirstEntry(t *testing.T) {
	fixedNow(t)
	path := writeChangelog(t, "# Changelog\n\n## [1.0.0] - 2025-01-01\n\n- initial release\n")
	var out bytes.Buffer
	opts := Options{Commits: []string{"add feature", "fix bug"}}
	if err := Update(path, "1.1.0", opts, &out); err != nil {
		t.Fatalf("Update: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got := string(data)
	newIdx := strings.Index(got, "## [1.1.0] - 2026-03-14")
	oldIdx := strings.Index(got, "## [1.0.0]")
	if newIdx < 0 || oldIdx < 0 || newIdx > oldIdx {
		t.Fatalf("new entry not before old entry:\n%s", got)
	}
	if !strings.Contains(got, "- add feature\n- fix bug\n") {
		t.Fatalf("missing bullets:\n%s", got)
	}
	if !strings.HasPrefix(got, "# Changelog\n") {
		t.Fatalf("header lost:\n%s", got)
	}
}

func TestUpdateAppendsWhenNoEntries(t *testing.T) {
	fixedNow(t)
	path := writeChangelog(t, "# Changelog")
	var out bytes.Buffer
	if err := Update(path, "0.1.0", Options{Commits: []string{"first"}}, &out); err != nil {
		t.Fatalf("Update: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "# Changelog\n\n## [0.1.0] - 2026-03-14\n\n- first\n"
	if string(data) != want {
		t.Fatalf("content = %q, want %q", data, want)
	}
}

func TestUpdateDescriptionOverridesCommits(t *testing.T) {
	fixedNow(t)
	path := writeChangelog(t, "# Changelog\n")
	var out bytes.Buffer
	opts := Options{Commits: []string{"noise"}, Description: "Security fixes"}
	if err := Update(path, "1.0.1", opts, &out); err != nil {
		t.Fatalf("Update: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, "- Security fixes\n") || strings.Contains(got, "noise") {
		t.Fatalf("content = %q", got)
	}
}

func TestUpdateIgnorePrefixes(t *testing.T) {
	fixedNow(t)
	path := writeChangelog(t, "# Changelog\n")
	var out bytes.Buffer
	opts := Options{
		Commits:        []string{"chore: bump version to v1.0.0", "add parser"},
		IgnorePrefixes: []string{"chore:"},
	}
	if err := Update(path, "1.0.1", opts, &out); err != nil {
		t.Fatalf("Update: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got := string(data)
	if strings.Contains(got, "chore:") || !strings.Contains(got, "- add parser\n") {
		t.Fatalf("content = %q", got)
	}
}

func TestUpdateAllCommitsFiltered(t *testing.T) {
	fixedNow(t)
	path := writeChangelog(t, "# Changelog\n")
	var out bytes.Buffer
	opts := Options{Commits: []string{"chore: release"}, IgnorePrefixes: []string{"chore:"}}
	if err := Update(path, "1.0.1", opts, &out); err != nil {
		t.Fatalf("Update: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "- No notable changes\n") {
		t.Fatalf("content = %q", data)
	}
}

func TestUpdateMissingFileIsNotice(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "CHANGELOG.md")
	var out bytes.Buffer
	if err := Update(missing, "1.0.0", Options{}, &out); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !strings.Contains(out.String(), "skipping changelog update") {
		t.Fatalf("notice = %q", out.String())
	}
}
