package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andyballingall/fmtree/internal/config"
	"github.com/andyballingall/fmtree/internal/fsh"
)

// NewInitCmd returns a command which writes a default configuration file into the
// working directory.
func NewInitCmd(pathResolver fsh.PathResolver) *cobra.Command {
	cmd := &cobra.Command{
		Use:   InitCmdName,
		Short: "Create a default " + config.YAMLConfigFile + " in the working directory",
		Long: `
Write a commented default configuration file into the working directory. Edit it to
change the formatter, the source file extensions or the directories to format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.WriteDefault(".")
			if err != nil {
				return err
			}

			abs, err := pathResolver.Abs(path)
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", path, err)
			}
			cmd.Printf("Created %s\n", abs)
			return nil
		},
	}

	return cmd
}
