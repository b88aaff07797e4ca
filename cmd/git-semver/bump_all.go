package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/git-semver/internal/bump"
	"github.com/conn-castle/git-semver/internal/config"
	"github.com/conn-castle/git-semver/internal/gitcmd"
	"github.com/conn-castle/git-semver/internal/messages"
)

func newBumpAllCmd() *cobra.Command {
	var since string
	var description string
	var noCommit bool
	var noPush bool
	cmd := &cobra.Command{
		Use:   messages.BumpAllUse,
		Short: messages.BumpAllShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadResolved(configFlag)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			bumper := bump.New(gitcmd.New(), out)
			opts := bump.AllOptions{
				Since:  since,
				Kind:   bumpKindArg(args),
				Commit: !noCommit,
				Push:   !noPush,
			}
			_, err = bumper.All(cfg, opts, description)
			return err
		},
	}
	cmd.Flags().StringVar(&since, "since", "", messages.FlagSince)
	cmd.Flags().StringVar(&description, "description", "", messages.FlagDescription)
	cmd.Flags().BoolVar(&noCommit, "no-commit", false, messages.FlagNoCommit)
	cmd.Flags().BoolVar(&noPush, "no-push", false, messages.FlagNoPush)
	return cmd
}
