// Command bump-and-release is the CI entry point: it inspects the
// workflow event environment and runs the matching bump and release
// flow.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/conn-castle/git-semver/internal/gitcmd"
	"github.com/conn-castle/git-semver/internal/messages"
	"github.com/conn-castle/git-semver/internal/release"
)

func main() {
	runMain(os.Getenv, os.Stdout, os.Stderr, os.Exit)
}

func runMain(getenv release.Getenv, stdout io.Writer, stderr io.Writer, exit func(int)) {
	orch := &release.Orchestrator{
		Sys: gitcmd.RealSystem{},
		Out: stdout,
		Env: release.EnvFromOS(getenv),
	}
	if err := orch.Run(); err != nil {
		_, _ = fmt.Fprintln(stderr, color.RedString(messages.ErrorFmt, err))
		exit(1)
	}
}
