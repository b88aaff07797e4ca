// Package gitcmd shells out to git and the release tooling behind a
// replaceable System seam, and wraps the git queries and mutations the
// bump and release flows consume.
package gitcmd

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/conn-castle/git-semver/internal/messages"
)

// ErrCommandFailed wraps a nonzero exit from a delegated command when
// the caller asked for failure-on-nonzero.
var ErrCommandFailed = errors.New(messages.CommandFailed)

// RunOptions adjust how a command is executed.
type RunOptions struct {
	// Check turns a nonzero exit into an error at the Git helper level.
	Check bool
	// Capture collects stdout/stderr instead of inheriting the parent's.
	Capture bool
}

// Result carries the outcome of one command invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// System executes external commands. Implementations fail only on
// launch problems; nonzero exits are reported through Result so callers
// decide whether they are fatal.
type System interface {
	Run(name string, args []string, opts RunOptions) (Result, error)
}

// RealSystem runs commands with os/exec.
type RealSystem struct{}

// Run implements System.
func (RealSystem) Run(name string, args []string, opts RunOptions) (Result, error) {
	cmd := exec.Command(name, args...)
	var stdout, stderr strings.Builder
	if opts.Capture {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}
	return res, nil
}
