package app

import (
	"github.com/spf13/cobra"

	"github.com/andyballingall/fmtree/internal/fsh"
)

func NewWatchCmd(mgr Manager, flags *rootFlags, env fsh.EnvProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   WatchCmdName + " [dir...]",
		Short: "Format the project tree, then reformat source files as they change",
		Long: `
Format every source file in the given directories (or the configured roots), then
keep watching them. Each time a source file is written or created, it is formatted
again and reported. Press Ctrl+C to stop.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mgr.Watch(cmd.Context(), args, flags.outputOptions(cmd, env), nil)
		},
	}

	return cmd
}
