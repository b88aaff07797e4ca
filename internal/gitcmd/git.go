package gitcmd

import (
	"fmt"
	"strings"
)

const initialCommitRef = "0000000000000000000000000000000000000000"

// Git issues git commands through a System.
type Git struct {
	Sys System
}

// New returns a Git backed by the real process runner.
func New() *Git {
	return &Git{Sys: RealSystem{}}
}

// Run executes git with the given arguments, capturing output and
// failing on a nonzero exit.
func (g *Git) Run(args ...string) (Result, error) {
	return g.RunOpts(RunOptions{Check: true, Capture: true}, args...)
}

// RunOpts executes git with explicit run options.
func (g *Git) RunOpts(opts RunOptions, args ...string) (Result, error) {
	res, err := g.Sys.Run("git", args, opts)
	if err != nil {
		return res, err
	}
	if opts.Check && res.ExitCode != 0 {
		return res, fmt.Errorf("%w: git %s: %s", ErrCommandFailed, strings.Join(args, " "), strings.TrimSpace(res.Stderr))
	}
	return res, nil
}

// ChangedFiles lists the paths touched between since and HEAD. The
// all-zero ref git sends for a branch's first push has no parent to
// diff against, so the HEAD commit's own tree is listed instead.
func (g *Git) ChangedFiles(since string) ([]string, error) {
	var res Result
	var err error
	if since == initialCommitRef {
		res, err = g.Run("diff-tree", "--no-commit-id", "--name-only", "-r", "HEAD")
	} else {
		res, err = g.Run("diff", "--name-only", since, "HEAD")
	}
	if err != nil {
		return nil, err
	}
	return splitLines(res.Stdout), nil
}

// CommitsSinceTag returns the subjects of commits made after the most
// recent tag matching the component's tag prefix. When no such tag
// exists the full history is used.
func (g *Git) CommitsSinceTag(subdir string) ([]string, error) {
	prefix := "v"
	if subdir != "" {
		prefix = subdir + "/v"
	}
	res, err := g.RunOpts(RunOptions{Capture: true}, "describe", "--tags", "--abbrev=0", "--match", prefix+"*")
	logArgs := []string{"log", "--pretty=%s"}
	if err == nil && res.ExitCode == 0 {
		tag := strings.TrimSpace(res.Stdout)
		if tag != "" {
			logArgs = []string{"log", "--pretty=%s", tag + "..HEAD"}
		}
	}
	out, err := g.Run(logArgs...)
	if err != nil {
		return nil, err
	}
	return splitLines(out.Stdout), nil
}

// TagsMatching lists tags matching a glob, e.g. "v*" or "app/v*".
func (g *Git) TagsMatching(glob string) ([]string, error) {
	res, err := g.Run("tag", "-l", glob)
	if err != nil {
		return nil, err
	}
	return splitLines(res.Stdout), nil
}

// TagsAtHead lists all tags pointing at HEAD.
func (g *Git) TagsAtHead() ([]string, error) {
	res, err := g.Run("tag", "--points-at", "HEAD")
	if err != nil {
		return nil, err
	}
	return splitLines(res.Stdout), nil
}

// Head returns the current commit hash.
func (g *Git) Head() (string, error) {
	res, err := g.Run("rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// LastSubject returns the subject line of the HEAD commit.
func (g *Git) LastSubject() (string, error) {
	res, err := g.Run("log", "-1", "--pretty=%s")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// TagAtHeadExact returns the tag exactly at HEAD, or "" when HEAD is
// untagged.
func (g *Git) TagAtHeadExact() (string, error) {
	res, err := g.RunOpts(RunOptions{Capture: true}, "describe", "--tags", "--exact-match", "HEAD")
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", nil
	}
	return strings.TrimSpace(res.Stdout), nil
}

// ConfigureUser sets the repository commit identity.
func (g *Git) ConfigureUser(name, email string) error {
	if _, err := g.Run("config", "user.name", name); err != nil {
		return err
	}
	_, err := g.Run("config", "user.email", email)
	return err
}

// AddAll stages every change in the working tree.
func (g *Git) AddAll() error {
	_, err := g.Run("add", "-A")
	return err
}

// Commit records the staged changes with the given subject.
func (g *Git) Commit(subject string) error {
	_, err := g.Run("commit", "-m", subject)
	return err
}

// TagAnnotated creates an annotated tag whose message is the tag name.
func (g *Git) TagAnnotated(tag string) error {
	_, err := g.Run("tag", "-a", tag, "-m", tag)
	return err
}

// TagForce moves (or creates) a tag at HEAD.
func (g *Git) TagForce(tag string) error {
	_, err := g.Run("tag", "-f", tag)
	return err
}

// Push pushes the current branch.
func (g *Git) Push() error {
	_, err := g.Run("push")
	return err
}

// PushTags pushes tags, forcing so a moved tag like "latest" updates.
func (g *Git) PushTags() error {
	_, err := g.Run("push", "--tags", "--force")
	return err
}

// PushBranch pushes a new branch and sets its upstream.
func (g *Git) PushBranch(branch string) error {
	_, err := g.Run("push", "-u", "origin", branch)
	return err
}

// CheckoutNewBranch creates and switches to a branch.
func (g *Git) CheckoutNewBranch(branch string) error {
	_, err := g.Run("checkout", "-b", branch)
	return err
}

// PullFFOnly attempts a fast-forward pull and reports whether it
// succeeded.
func (g *Git) PullFFOnly() (bool, error) {
	res, err := g.RunOpts(RunOptions{Capture: true}, "pull", "--ff-only")
	if err != nil {
		return false, err
	}
	return res.ExitCode == 0, nil
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
