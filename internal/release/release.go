// Package release drives the CI entry point: it reads the workflow
// event environment, selects a bump flow from the trigger and the
// install policy, and publishes the outcome as GitHub releases or a
// review pull request.
package release

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/conn-castle/git-semver/internal/bump"
	"github.com/conn-castle/git-semver/internal/config"
	"github.com/conn-castle/git-semver/internal/gitcmd"
	"github.com/conn-castle/git-semver/internal/messages"
)

// Trigger identifies the workflow event that started the run.
type Trigger string

// Mode selects how a bump lands: pushed directly or through review.
type Mode string

const (
	TriggerPush     Trigger = "push"
	TriggerDispatch Trigger = "workflow_dispatch"

	ModeAutomerge Mode = "automerge"
	ModeReview    Mode = "review"
)

// Env carries the workflow event inputs.
type Env struct {
	EventName   string
	Before      string
	SHA         string
	BumpType    string
	Subdir      string
	Description string
}

// Getenv looks up one environment variable, matching os.Getenv.
type Getenv func(string) string

// EnvFromOS reads the workflow environment through getenv.
func EnvFromOS(getenv Getenv) Env {
	return Env{
		EventName:   getenv("GITHUB_EVENT_NAME"),
		Before:      getenv("GITHUB_EVENT_BEFORE"),
		SHA:         getenv("GITHUB_SHA"),
		BumpType:    getenv("INPUT_BUMP_TYPE"),
		Subdir:      getenv("INPUT_SUBDIRECTORY"),
		Description: getenv("INPUT_CHANGELOG_DESCRIPTION"),
	}
}

// Orchestrator runs one release pass.
type Orchestrator struct {
	Sys        gitcmd.System
	Out        io.Writer
	Env        Env
	ConfigPath string
}

type flowKey struct {
	trigger Trigger
	mode    Mode
}

// Run executes the flow selected by the trigger and install policy.
func (o *Orchestrator) Run() error {
	policy := config.LoadInstallPolicy(o.ConfigPath)
	trigger, err := parseTrigger(o.Env.EventName)
	if err != nil {
		return err
	}
	if trigger == TriggerPush && !policy.OnMerge {
		fmt.Fprint(o.Out, messages.ReleaseSkipOnMerge)
		return nil
	}
	mode := ModeReview
	if policy.Automerge {
		mode = ModeAutomerge
	}
	flows := map[flowKey]func() error{
		{TriggerPush, ModeAutomerge}:     o.pushAutomerge,
		{TriggerPush, ModeReview}:        o.pushReview,
		{TriggerDispatch, ModeAutomerge}: o.dispatchAutomerge,
		{TriggerDispatch, ModeReview}:    o.dispatchReview,
	}
	return flows[flowKey{trigger, mode}]()
}

func parseTrigger(event string) (Trigger, error) {
	switch Trigger(event) {
	case TriggerPush:
		return TriggerPush, nil
	case TriggerDispatch:
		return TriggerDispatch, nil
	}
	return "", fmt.Errorf(messages.ReleaseUnknownEventFmt, event)
}

func (o *Orchestrator) git() *gitcmd.Git {
	return &gitcmd.Git{Sys: o.Sys}
}

func (o *Orchestrator) bumper(git *gitcmd.Git) *bump.Bumper {
	return bump.New(git, o.Out)
}

// pushAutomerge bumps every component touched by the pushed commits
// and publishes releases directly.
func (o *Orchestrator) pushAutomerge() error {
	if o.Env.Before == "" {
		return fmt.Errorf("%w: %s", bump.ErrMissingArgument, messages.BeforeRequired)
	}
	git := o.git()
	if err := git.ConfigureUser(messages.GitUserName, messages.GitUserEmail); err != nil {
		return err
	}
	ok, err := git.PullFFOnly()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprint(o.Out, color.YellowString(messages.WarnPullFailed))
	}
	cfg, err := config.LoadResolved(o.ConfigPath)
	if err != nil {
		return err
	}
	opts := bump.AllOptions{Since: o.Env.Before, Kind: "patch", Commit: true, Push: true}
	results, err := o.bumper(git).All(cfg, opts, o.Env.Description)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}
	return o.createReleases(git)
}

// pushReview bumps touched components on a branch and opens a pull
// request instead of pushing to the default branch.
func (o *Orchestrator) pushReview() error {
	if o.Env.Before == "" {
		return fmt.Errorf("%w: %s", bump.ErrMissingArgument, messages.BeforeRequired)
	}
	git := o.git()
	if err := git.ConfigureUser(messages.GitUserName, messages.GitUserEmail); err != nil {
		return err
	}
	cfg, err := config.LoadResolved(o.ConfigPath)
	if err != nil {
		return err
	}
	opts := bump.AllOptions{Since: o.Env.Before, Kind: "patch", Commit: true, Push: false}
	if _, err := o.bumper(git).All(cfg, opts, o.Env.Description); err != nil {
		return err
	}
	head, err := git.Head()
	if err != nil {
		return err
	}
	if head == o.Env.SHA {
		fmt.Fprint(o.Out, messages.ReleaseNoChanges)
		return nil
	}
	return o.openPullRequest(git)
}

// dispatchAutomerge bumps the requested component directly and
// publishes its release.
func (o *Orchestrator) dispatchAutomerge() error {
	git := o.git()
	if err := o.runSingleBump(git, true); err != nil {
		return err
	}
	return o.createReleases(git)
}

// dispatchReview bumps the requested component on a branch and opens
// a pull request.
func (o *Orchestrator) dispatchReview() error {
	git := o.git()
	if err := o.runSingleBump(git, false); err != nil {
		return err
	}
	return o.openPullRequest(git)
}

func (o *Orchestrator) runSingleBump(git *gitcmd.Git, push bool) error {
	if err := git.ConfigureUser(messages.GitUserName, messages.GitUserEmail); err != nil {
		return err
	}
	cfg, err := config.LoadResolved(o.ConfigPath)
	if err != nil {
		return err
	}
	kind := o.Env.BumpType
	if kind == "" {
		kind = "patch"
	}
	res, err := o.bumper(git).Component(cfg, o.Env.Subdir, kind, o.Env.Description)
	if err != nil {
		return err
	}
	return o.bumper(git).CommitTagPush(res, push)
}

// openPullRequest pushes HEAD to a version-bump branch and opens a PR
// titled with the bump commit's subject.
func (o *Orchestrator) openPullRequest(git *gitcmd.Git) error {
	subject, err := git.LastSubject()
	if err != nil {
		return err
	}
	tag, err := git.TagAtHeadExact()
	if err != nil {
		return err
	}
	if tag == "" {
		tag = messages.ReleaseUnknownTag
	}
	branch := messages.ReleaseBranchPrefix + strings.ReplaceAll(tag, "/", "-")
	if err := git.CheckoutNewBranch(branch); err != nil {
		return err
	}
	if err := git.PushBranch(branch); err != nil {
		return err
	}
	body := fmt.Sprintf(messages.ReleasePRBodyFmt, subject)
	if err := o.run("gh", "pr", "create", "--title", subject, "--body", body); err != nil {
		return err
	}
	fmt.Fprintf(o.Out, messages.ReleasePROpenedFmt, branch)
	return nil
}

// createReleases publishes one GitHub release per tag at HEAD. The
// floating latest tag is a pointer, not a release.
func (o *Orchestrator) createReleases(git *gitcmd.Git) error {
	tags, err := git.TagsAtHead()
	if err != nil {
		return err
	}
	created := false
	for _, tag := range tags {
		if tag == "latest" {
			continue
		}
		fmt.Fprintf(o.Out, messages.ReleaseCreatingFmt, tag)
		notes := fmt.Sprintf(messages.ReleaseNotesFmt, tag)
		if err := o.run("gh", "release", "create", tag, "--title", tag, "--notes", notes); err != nil {
			return err
		}
		created = true
	}
	if !created {
		fmt.Fprint(o.Out, messages.ReleaseNoTagAtHead)
	}
	return nil
}

func (o *Orchestrator) run(name string, args ...string) error {
	res, err := o.Sys.Run(name, args, gitcmd.RunOptions{Check: true, Capture: true})
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("%w: %s %s: %s", gitcmd.ErrCommandFailed, name, strings.Join(args, " "), strings.TrimSpace(res.Stderr))
	}
	return nil
}
