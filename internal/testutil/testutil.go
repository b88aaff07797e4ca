// Package testutil provides shared helpers for exercising command
// execution without touching a real git repository.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/conn-castle/git-semver/internal/gitcmd"
)

// Call records one command dispatched through a FakeSystem.
type Call struct {
	Name string
	Args []string
}

// Line renders the call the way it would appear on a shell.
func (c Call) Line() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// FakeSystem records every command and answers from canned responses
// keyed by command prefix. The longest matching prefix wins, so a test
// can set a broad default and override one specific invocation.
type FakeSystem struct {
	Calls     []Call
	responses map[string]gitcmd.Result
}

// NewFakeSystem returns an empty FakeSystem; unmatched commands
// succeed with no output.
func NewFakeSystem() *FakeSystem {
	return &FakeSystem{responses: map[string]gitcmd.Result{}}
}

// Respond registers a canned result for commands whose rendered line
// starts with prefix.
func (f *FakeSystem) Respond(prefix string, res gitcmd.Result) {
	f.responses[prefix] = res
}

// Run implements gitcmd.System.
func (f *FakeSystem) Run(name string, args []string, opts gitcmd.RunOptions) (gitcmd.Result, error) {
	call := Call{Name: name, Args: args}
	f.Calls = append(f.Calls, call)
	line := call.Line()
	var best string
	var res gitcmd.Result
	for prefix, r := range f.responses {
		if strings.HasPrefix(line, prefix) && len(prefix) > len(best) {
			best = prefix
			res = r
		}
	}
	return res, nil
}

// CommandLines returns every recorded call rendered as a shell line.
func (f *FakeSystem) CommandLines() []string {
	lines := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		lines = append(lines, c.Line())
	}
	return lines
}

// HasCommand reports whether any recorded call starts with prefix.
func (f *FakeSystem) HasCommand(prefix string) bool {
	for _, c := range f.Calls {
		if strings.HasPrefix(c.Line(), prefix) {
			return true
		}
	}
	return false
}

// WriteFile creates a file under dir, making parent directories as
// needed, and fails the test on error.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// ReadFile reads a file and fails the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// Chdir switches into dir for the duration of the test.
func Chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("chdir back: %v", err)
		}
	})
}
