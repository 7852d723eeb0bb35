package app

import (
	"github.com/spf13/cobra"

	"github.com/andyballingall/fmtree/internal/fsh"
	"github.com/andyballingall/fmtree/internal/repo"
)

func NewChangedCmd(mgr Manager, flags *rootFlags, env fsh.EnvProvider) *cobra.Command {
	var dirs []string

	cmd := &cobra.Command{
		Use:   ChangedCmdName + " [revision]",
		Short: "Format only the source files that differ from a git revision",
		Long: `
Format the source files under the configured roots (or --dir) which have been added or
modified since the given git revision, including untracked files. The revision
defaults to HEAD, so by default only uncommitted work is formatted.`,
		Example: `
fmtree changed             - format files with uncommitted changes
fmtree changed main        - format files that differ from the main branch
fmtree changed --dir src   - only look under src`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rev := repo.DefaultRevision
			if len(args) > 0 {
				rev = repo.Revision(args[0])
			}
			return mgr.FormatChanged(cmd.Context(), rev, dirs, flags.outputOptions(cmd, env))
		},
	}

	cmd.Flags().StringSliceVar(&dirs, "dir", nil, "directory to search (repeatable; defaults to the configured roots)")

	return cmd
}
