package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/git-semver/internal/messages"
)

// configFlag is the --config override shared by every subcommand.
var configFlag string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configFlag, "config", "", messages.RootFlagConfig)
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newBumpCmd())
	cmd.AddCommand(newBumpAllCmd())
	return cmd
}

// bumpKindArg returns the positional bump type, defaulting to patch.
func bumpKindArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "patch"
}
