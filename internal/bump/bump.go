// Package bump resolves component versions, applies configured file
// and changelog updates, and records the result in git.
package bump

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/conn-castle/git-semver/internal/changelog"
	"github.com/conn-castle/git-semver/internal/config"
	"github.com/conn-castle/git-semver/internal/gitcmd"
	"github.com/conn-castle/git-semver/internal/messages"
	"github.com/conn-castle/git-semver/internal/pattern"
	sv "github.com/conn-castle/git-semver/internal/semver"
	"github.com/conn-castle/git-semver/internal/updates"
)

// ErrMissingArgument marks a bump request lacking a required input.
var ErrMissingArgument = errors.New(messages.MissingArgument)

// Bumper performs version bumps against a git working tree.
type Bumper struct {
	Git *gitcmd.Git
	Out io.Writer
}

// New returns a Bumper writing progress to out.
func New(git *gitcmd.Git, out io.Writer) *Bumper {
	return &Bumper{Git: git, Out: out}
}

// Result describes one bumped component.
type Result struct {
	Subdir string
	Old    sv.Version
	New    sv.Version
	Tag    string
}

// FormatTag builds the release tag for a version: "v1.2.3" at the
// root, "name/v1.2.3" for a subdirectory.
func FormatTag(v sv.Version, subdir string) string {
	if subdir == "" {
		return "v" + v.String()
	}
	return subdir + "/v" + v.String()
}

// tagGlob is the tag -l pattern covering a component's release tags.
func tagGlob(subdir string) string {
	if subdir == "" {
		return "v*"
	}
	return subdir + "/v*"
}

// tagVersion extracts the version from a component's tag, or "" when
// the tag does not carry a parseable version.
func tagVersion(tag, subdir string) string {
	prefix := "v"
	if subdir != "" {
		prefix = subdir + "/v"
	}
	rest, ok := strings.CutPrefix(tag, prefix)
	if !ok {
		return ""
	}
	if _, err := sv.Parse(rest); err != nil {
		return ""
	}
	return rest
}

// ReconcileBaseline returns the version to bump from. When an existing
// release tag for the component is ahead of the version file, the tag
// wins so a re-run never re-issues an already-published version.
func (b *Bumper) ReconcileBaseline(fileVersion sv.Version, subdir string) (sv.Version, error) {
	tags, err := b.Git.TagsMatching(tagGlob(subdir))
	if err != nil {
		return sv.Version{}, err
	}
	best := ""
	bestTag := ""
	for _, tag := range tags {
		v := tagVersion(tag, subdir)
		if v == "" {
			continue
		}
		if best == "" || semver.Compare("v"+v, "v"+best) > 0 {
			best = v
			bestTag = tag
		}
	}
	if best == "" {
		return fileVersion, nil
	}
	if semver.Compare("v"+best, "v"+fileVersion.String()) <= 0 {
		return fileVersion, nil
	}
	fmt.Fprintf(b.Out, messages.BaselineAdjustedFmt, bestTag, fileVersion)
	baseline, err := sv.Parse(best)
	if err != nil {
		return sv.Version{}, err
	}
	return baseline, nil
}

// Component bumps one component: reads its version file, reconciles
// against existing tags, bumps, rewrites the version file, applies the
// configured file updates, and prepends a changelog entry.
func (b *Bumper) Component(cfg *config.Config, subdir, kind, description string) (Result, error) {
	comp, err := cfg.Component(subdir)
	if err != nil {
		return Result{}, err
	}
	fileVersion, err := sv.Read(comp.VersionFile)
	if err != nil {
		return Result{}, err
	}
	baseline, err := b.ReconcileBaseline(fileVersion, subdir)
	if err != nil {
		return Result{}, err
	}
	next, err := baseline.Bump(kind)
	if err != nil {
		return Result{}, err
	}
	if err := sv.Write(comp.VersionFile, next); err != nil {
		return Result{}, err
	}
	if err := updates.Apply(comp.Updates, next.String(), b.Out); err != nil {
		return Result{}, err
	}
	if comp.Changelog.Enabled {
		commits, err := b.Git.CommitsSinceTag(subdir)
		if err != nil {
			return Result{}, err
		}
		opts := changelog.Options{
			Commits:        commits,
			Description:    description,
			IgnorePrefixes: comp.Changelog.IgnorePrefixes,
		}
		if err := changelog.Update(comp.Changelog.File, next.String(), opts, b.Out); err != nil {
			return Result{}, err
		}
	}
	fmt.Fprintf(b.Out, messages.BumpedFmt, comp.DisplayName(), fileVersion, next)
	return Result{Subdir: subdir, Old: fileVersion, New: next, Tag: FormatTag(next, subdir)}, nil
}

// CommitTagPush commits a single bump, tags it, moves the latest tag,
// and pushes when asked.
func (b *Bumper) CommitTagPush(res Result, push bool) error {
	if err := b.Git.AddAll(); err != nil {
		return err
	}
	subject := fmt.Sprintf(messages.CommitSubjectSingleFmt, res.Tag)
	if err := b.Git.Commit(subject); err != nil {
		return err
	}
	fmt.Fprintf(b.Out, messages.CommittedFmt, subject)
	if err := b.Git.TagAnnotated(res.Tag); err != nil {
		return err
	}
	if err := b.Git.TagForce("latest"); err != nil {
		return err
	}
	fmt.Fprintf(b.Out, messages.TaggedLatestFmt, res.Tag)
	if !push {
		fmt.Fprint(b.Out, messages.NoPushNotice)
		return nil
	}
	if err := b.Git.Push(); err != nil {
		return err
	}
	if err := b.Git.PushTags(); err != nil {
		return err
	}
	fmt.Fprint(b.Out, messages.PushedNotice)
	return nil
}

// AllOptions configure a multi-component bump pass.
type AllOptions struct {
	// Since is the ref changed files are computed against. Required.
	Since string
	// Kind is the bump type applied to every triggered component.
	Kind string
	// Commit records the changes in a single commit with per-component
	// tags. When false only the files are rewritten.
	Commit bool
	// Push pushes the commit and tags. Ignored when Commit is false.
	Push bool
}

// All bumps every component whose files patterns match a path changed
// since opts.Since, then commits, tags, and pushes the batch.
func (b *Bumper) All(cfg *config.Config, opts AllOptions, description string) ([]Result, error) {
	if opts.Since == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingArgument, messages.SinceRequired)
	}
	changed, err := b.Git.ChangedFiles(opts.Since)
	if err != nil {
		return nil, err
	}
	if len(changed) == 0 {
		fmt.Fprintf(b.Out, messages.NoFilesChangedSinceFmt, opts.Since)
		return nil, nil
	}
	var results []Result
	for _, comp := range cfg.Components() {
		if len(comp.Files) == 0 {
			continue
		}
		matches := pattern.CheckFilesChanged(changed, comp.Files)
		if len(matches) == 0 {
			continue
		}
		fmt.Fprintf(b.Out, messages.ComponentMatchedFmt, comp.DisplayName())
		for _, m := range matches {
			fmt.Fprintf(b.Out, messages.MatchEvidenceFmt, m.Path, m.Pattern)
		}
		res, err := b.Component(cfg, comp.Name, opts.Kind, description)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	if len(results) == 0 {
		fmt.Fprint(b.Out, messages.NoComponentsTriggered)
		return nil, nil
	}
	if !opts.Commit {
		fmt.Fprint(b.Out, messages.NoCommitNotice)
		return results, nil
	}
	if err := b.commitBatch(cfg, results, opts.Push); err != nil {
		return nil, err
	}
	return results, nil
}

func (b *Bumper) commitBatch(cfg *config.Config, results []Result, push bool) error {
	if err := b.Git.AddAll(); err != nil {
		return err
	}
	subject := batchSubject(results)
	if err := b.Git.Commit(subject); err != nil {
		return err
	}
	fmt.Fprintf(b.Out, messages.CommittedFmt, subject)
	for _, res := range results {
		if err := b.Git.TagAnnotated(res.Tag); err != nil {
			return err
		}
		fmt.Fprintf(b.Out, messages.TaggedFmt, res.Tag)
	}
	if cfg.Install.LatestOnBumpAll {
		if err := b.Git.TagForce("latest"); err != nil {
			return err
		}
	}
	if !push {
		fmt.Fprint(b.Out, messages.NoPushNotice)
		return nil
	}
	if err := b.Git.Push(); err != nil {
		return err
	}
	if err := b.Git.PushTags(); err != nil {
		return err
	}
	fmt.Fprint(b.Out, messages.PushedNotice)
	return nil
}

// batchSubject builds the commit subject for a bump pass: the single
// form for one component, the tag list form for several.
func batchSubject(results []Result) string {
	if len(results) == 1 {
		return fmt.Sprintf(messages.CommitSubjectSingleFmt, results[0].Tag)
	}
	tags := make([]string, 0, len(results))
	for _, res := range results {
		tags = append(tags, res.Tag)
	}
	return fmt.Sprintf(messages.CommitSubjectMultiFmt, strings.Join(tags, ", "))
}
