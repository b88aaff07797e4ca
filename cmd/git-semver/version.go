package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/git-semver/internal/config"
	"github.com/conn-castle/git-semver/internal/messages"
	"github.com/conn-castle/git-semver/internal/semver"
)

func newVersionCmd() *cobra.Command {
	var subdir string
	cmd := &cobra.Command{
		Use:   messages.VersionUse,
		Short: messages.VersionShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadResolved(configFlag)
			if err != nil {
				return err
			}
			comp, err := cfg.Component(subdir)
			if err != nil {
				return err
			}
			v, err := semver.Read(comp.VersionFile)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
	cmd.Flags().StringVar(&subdir, "subdir", "", messages.FlagSubdir)
	return cmd
}
