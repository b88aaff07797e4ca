package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/git-semver/internal/bump"
	"github.com/conn-castle/git-semver/internal/config"
	"github.com/conn-castle/git-semver/internal/gitcmd"
	"github.com/conn-castle/git-semver/internal/messages"
)

func newBumpCmd() *cobra.Command {
	var subdir string
	var description string
	var noCommit bool
	var noPush bool
	cmd := &cobra.Command{
		Use:   messages.BumpUse,
		Short: messages.BumpShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadResolved(configFlag)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			bumper := bump.New(gitcmd.New(), out)
			res, err := bumper.Component(cfg, subdir, bumpKindArg(args), description)
			if err != nil {
				return err
			}
			if noCommit {
				fmt.Fprint(out, messages.NoCommitNotice)
				return nil
			}
			return bumper.CommitTagPush(res, !noPush)
		},
	}
	cmd.Flags().StringVar(&subdir, "subdir", "", messages.FlagSubdir)
	cmd.Flags().StringVar(&description, "description", "", messages.FlagDescription)
	cmd.Flags().BoolVar(&noCommit, "no-commit", false, messages.FlagNoCommit)
	cmd.Flags().BoolVar(&noPush, "no-push", false, messages.FlagNoPush)
	return cmd
}
