package gitcmd_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/conn-castle/git-semver/internal/gitcmd"
	"github.com/conn-castle/git-semver/internal/testutil"
)

func newGit(fake *testutil.FakeSystem) *gitcmd.Git {
	return &gitcmd.Git{Sys: fake}
}

func TestRealSystemCapturesOutput(t *testing.T) {
	res, err := gitcmd.RealSystem{}.Run("sh", []string{"-c", "echo out; echo err 1>&2"}, gitcmd.RunOptions{Capture: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Stdout != "out\n" || res.Stderr != "err\n" || res.ExitCode != 0 {
		t.Fatalf("result = %+v", res)
	}
}

func TestRealSystemReportsExitCode(t *testing.T) {
	res, err := gitcmd.RealSystem{}.Run("sh", []string{"-c", "exit 3"}, gitcmd.RunOptions{Capture: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.ExitCode != 3 {
		t.Fatalf("exit code = %d", res.ExitCode)
	}
}

func TestRunCheckedFailure(t *testing.T) {
	fake := testutil.NewFakeSystem()
	fake.Respond("git push", gitcmd.Result{ExitCode: 1, Stderr: "rejected"})
	git := newGit(fake)

	err := git.Push()
	if !errors.Is(err, gitcmd.ErrCommandFailed) {
		t.Fatalf("err = %v, want ErrCommandFailed", err)
	}
}

func TestChangedFiles(t *testing.T) {
	fake := testutil.NewFakeSystem()
	fake.Respond("git diff --name-only abc123 HEAD", gitcmd.Result{Stdout: "a.go\n\nsrc/b.go\n"})
	git := newGit(fake)

	files, err := git.ChangedFiles("abc123")
	if err != nil {
		t.Fatalf("ChangedFiles: %v", err)
	}
	if !reflect.DeepEqual(files, []string{"a.go", "src/b.go"}) {
		t.Fatalf("files = %v", files)
	}
}

func TestChangedFilesInitialCommit(t *testing.T) {
	zero := "0000000000000000000000000000000000000000"
	fake := testutil.NewFakeSystem()
	fake.Respond("git diff-tree --no-commit-id --name-only -r HEAD", gitcmd.Result{Stdout: "first.go\n"})
	git := newGit(fake)

	files, err := git.ChangedFiles(zero)
	if err != nil {
		t.Fatalf("ChangedFiles: %v", err)
	}
	if !reflect.DeepEqual(files, []string{"first.go"}) {
		t.Fatalf("files = %v", files)
	}
	if fake.HasCommand("git diff --name-only") {
		t.Fatal("plain diff must not run for the all-zero ref")
	}
}

func TestCommitsSinceTag(t *testing.T) {
	fake := testutil.NewFakeSystem()
	fake.Respond("git describe --tags --abbrev=0 --match v*", gitcmd.Result{Stdout: "v1.2.0\n"})
	fake.Respond("git log --pretty=%s v1.2.0..HEAD", gitcmd.Result{Stdout: "fix parser\nadd docs\n"})
	git := newGit(fake)

	subjects, err := git.CommitsSinceTag("")
	if err != nil {
		t.Fatalf("CommitsSinceTag: %v", err)
	}
	if !reflect.DeepEqual(subjects, []string{"fix parser", "add docs"}) {
		t.Fatalf("subjects = %v", subjects)
	}
}

func TestCommitsSinceTagNoTagFallsBackToFullLog(t *testing.T) {
	fake := testutil.NewFakeSystem()
	fake.Respond("git describe", gitcmd.Result{ExitCode: 128, Stderr: "no tags"})
	fake.Respond("git log --pretty=%s", gitcmd.Result{Stdout: "initial commit\n"})
	git := newGit(fake)

	subjects, err := git.CommitsSinceTag("app")
	if err != nil {
		t.Fatalf("CommitsSinceTag: %v", err)
	}
	if !reflect.DeepEqual(subjects, []string{"initial commit"}) {
		t.Fatalf("subjects = %v", subjects)
	}
	if !fake.HasCommand("git describe --tags --abbrev=0 --match app/v*") {
		t.Fatalf("describe match glob missing: %v", fake.CommandLines())
	}
}

func TestTagAtHeadExactUntagged(t *testing.T) {
	fake := testutil.NewFakeSystem()
	fake.Respond("git describe --tags --exact-match HEAD", gitcmd.Result{ExitCode: 128})
	git := newGit(fake)

	tag, err := git.TagAtHeadExact()
	if err != nil {
		t.Fatalf("TagAtHeadExact: %v", err)
	}
	if tag != "" {
		t.Fatalf("tag = %q, want empty", tag)
	}
}

func TestPullFFOnly(t *testing.T) {
	fake := testutil.NewFakeSystem()
	fake.Respond("git pull --ff-only", gitcmd.Result{ExitCode: 1})
	git := newGit(fake)

	ok, err := git.PullFFOnly()
	if err != nil {
		t.Fatalf("PullFFOnly: %v", err)
	}
	if ok {
		t.Fatal("expected failed pull to report false")
	}
}

func TestMutationCommandShapes(t *testing.T) {
	fake := testutil.NewFakeSystem()
	git := newGit(fake)

	if err := git.ConfigureUser("bot", "bot@example.com"); err != nil {
		t.Fatalf("ConfigureUser: %v", err)
	}
	if err := git.AddAll(); err != nil {
		t.Fatalf("AddAll: %v", err)
	}
	if err := git.Commit("chore: bump version to v1.0.1"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := git.TagAnnotated("v1.0.1"); err != nil {
		t.Fatalf("TagAnnotated: %v", err)
	}
	if err := git.TagForce("latest"); err != nil {
		t.Fatalf("TagForce: %v", err)
	}
	if err := git.CheckoutNewBranch("version-bump/v1.0.1"); err != nil {
		t.Fatalf("CheckoutNewBranch: %v", err)
	}
	if err := git.PushBranch("version-bump/v1.0.1"); err != nil {
		t.Fatalf("PushBranch: %v", err)
	}

	want := []string{
		"git config user.name bot",
		"git config user.email bot@example.com",
		"git add -A",
		"git commit -m chore: bump version to v1.0.1",
		"git tag -a v1.0.1 -m v1.0.1",
		"git tag -f latest",
		"git checkout -b version-bump/v1.0.1",
		"git push -u origin version-bump/v1.0.1",
	}
	if !reflect.DeepEqual(fake.CommandLines(), want) {
		t.Fatalf("commands = %v, want %v", fake.CommandLines(), want)
	}
}
