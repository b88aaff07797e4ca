package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/git-semver/internal/config"
	"github.com/conn-castle/git-semver/internal/gitcmd"
	"github.com/conn-castle/git-semver/internal/messages"
	"github.com/conn-castle/git-semver/internal/pattern"
)

func newCheckCmd() *cobra.Command {
	var subdir string
	var since string
	cmd := &cobra.Command{
		Use:   messages.CheckUse,
		Short: messages.CheckShort,
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
			if len(comp.Files) == 0 {
				return errors.New(messages.CheckNoPatterns)
			}
			out := cmd.OutOrStdout()
			git := gitcmd.New()
			changed, err := git.ChangedFiles(since)
			if err != nil {
				return err
			}
			if len(changed) == 0 {
				fmt.Fprint(out, messages.CheckNoChanges)
				return &SilentExitError{Code: 1}
			}
			matches := pattern.CheckFilesChanged(changed, comp.Files)
			if len(matches) == 0 {
				fmt.Fprint(out, messages.CheckNoMatch)
				return &SilentExitError{Code: 1}
			}
			fmt.Fprint(out, messages.CheckMatchedHeader)
			for _, m := range matches {
				fmt.Fprintf(out, messages.MatchEvidenceFmt, m.Path, m.Pattern)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&subdir, "subdir", "", messages.FlagSubdir)
	cmd.Flags().StringVar(&since, "since", "HEAD~1", messages.FlagSince)
	return cmd
}
