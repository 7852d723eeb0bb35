package app

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andyballingall/fmtree/internal/fsh"
	"github.com/andyballingall/fmtree/internal/repo"
)

func TestRootCmd(t *testing.T) {
	t.Parallel()

	setup := func() (*MockManager, *slog.LevelVar, *cobra.Command) {
		mgr := &MockManager{}
		lazy := &LazyManager{inner: mgr}
		logLevel := &slog.LevelVar{}
		var stdout, stderr bytes.Buffer
		rootCmd := NewRootCmd(lazy, logLevel, &stdout, &stderr, fsh.NewEnvProvider())
		return mgr, logLevel, rootCmd
	}

	t.Run("execute help", func(t *testing.T) {
		t.Parallel()
		_, _, rootCmd := setup()
		rootCmd.SetArgs([]string{"--help"})
		err := rootCmd.Execute()
		require.NoError(t, err)
	})

	t.Run("test version flag", func(t *testing.T) {
		t.Parallel()
		_, _, rootCmd := setup()
		rootCmd.SetArgs([]string{"--version"})
		err := rootCmd.Execute()
		require.NoError(t, err)
	})

	t.Run("test debug flag", func(t *testing.T) {
		t.Parallel()
		mgr, logLevel, rootCmd := setup()
		mgr.On("Format", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		rootCmd.SetArgs([]string{"--debug"})
		err := rootCmd.Execute()
		require.NoError(t, err)
		assert.Equal(t, slog.LevelDebug, logLevel.Level())
	})

	t.Run("root command passes directories and output options", func(t *testing.T) {
		t.Parallel()
		mgr, _, rootCmd := setup()
		opts := OutputOptions{Format: OutputJSON, UseColour: false}
		mgr.On("Format", mock.Anything, []string{"lib", "tools"}, opts).Return(nil)
		rootCmd.SetArgs([]string{"-o", "json", "lib", "tools"})
		err := rootCmd.Execute()
		require.NoError(t, err)
		mgr.AssertExpectations(t)
	})

	t.Run("root command without directories", func(t *testing.T) {
		t.Parallel()
		mgr, _, rootCmd := setup()
		noDirs := mock.MatchedBy(func(dirs []string) bool { return len(dirs) == 0 })
		mgr.On("Format", mock.Anything, noDirs, OutputOptions{Format: OutputText}).Return(nil)
		rootCmd.SetArgs([]string{"--nocolour"})
		err := rootCmd.Execute()
		require.NoError(t, err)
		mgr.AssertExpectations(t)
	})

	t.Run("invalid output format", func(t *testing.T) {
		t.Parallel()
		_, _, rootCmd := setup()
		rootCmd.SetArgs([]string{"-o", "xml"})
		err := rootCmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be 'text' or 'json'")
	})

	t.Run("changed defaults to HEAD", func(t *testing.T) {
		t.Parallel()
		mgr, _, rootCmd := setup()
		mgr.On("FormatChanged", mock.Anything, repo.DefaultRevision, mock.Anything, mock.Anything).Return(nil)
		rootCmd.SetArgs([]string{ChangedCmdName})
		err := rootCmd.Execute()
		require.NoError(t, err)
		mgr.AssertExpectations(t)
	})

	t.Run("changed with revision and directories", func(t *testing.T) {
		t.Parallel()
		mgr, _, rootCmd := setup()
		mgr.On("FormatChanged", mock.Anything, repo.Revision("main"), []string{"src", "include"},
			mock.Anything).Return(nil)
		rootCmd.SetArgs([]string{ChangedCmdName, "main", "--dir", "src", "--dir", "include"})
		err := rootCmd.Execute()
		require.NoError(t, err)
		mgr.AssertExpectations(t)
	})

	t.Run("changed rejects extra arguments", func(t *testing.T) {
		t.Parallel()
		_, _, rootCmd := setup()
		rootCmd.SetArgs([]string{ChangedCmdName, "main", "other"})
		err := rootCmd.Execute()
		require.Error(t, err)
	})

	t.Run("watch", func(t *testing.T) {
		t.Parallel()
		mgr, _, rootCmd := setup()
		mgr.On("Watch", mock.Anything, []string{"src"}, OutputOptions{Format: OutputText},
			(chan<- struct{})(nil)).Return(nil)
		rootCmd.SetArgs([]string{WatchCmdName, "src"})
		err := rootCmd.Execute()
		require.NoError(t, err)
		mgr.AssertExpectations(t)
	})

	t.Run("test completion command", func(t *testing.T) {
		t.Parallel()
		_, _, rootCmd := setup()
		rootCmd.SetArgs([]string{"completion", "bash"})
		err := rootCmd.Execute()
		require.NoError(t, err)
	})

	t.Run("test completion subcommand skips initialisation", func(t *testing.T) {
		t.Parallel()
		lazy := &LazyManager{} // Empty lazy manager, no inner manager
		logLevel := &slog.LevelVar{}
		var stdout, stderr bytes.Buffer
		rootCmd := NewRootCmd(lazy, logLevel, &stdout, &stderr, fsh.NewEnvProvider())

		rootCmd.SetArgs([]string{"completion", "zsh"})
		// This should not fail even though no formatter has been configured,
		// because PersistentPreRunE should skip initialization for completion.
		err := rootCmd.Execute()
		require.NoError(t, err)
		assert.False(t, lazy.HasInner(), "Manager should not have been initialised")
	})

	t.Run("test alternate flag spellings", func(t *testing.T) {
		t.Parallel()
		// Test that alternate spellings don't cause "unknown flag" errors
		variants := []string{"--nocolor", "--noColor", "--noColour", "-c"}
		for _, variant := range variants {
			t.Run(variant, func(t *testing.T) {
				t.Parallel()
				_, _, rootCmd := setup()
				// flags are processed before PersistentPreRunE
				rootCmd.SetArgs([]string{"help", variant})
				err := rootCmd.Execute()
				require.NoError(t, err, "Flag %s should be recognised", variant)
			})
		}
	})

	t.Run("test help command", func(t *testing.T) {
		t.Parallel()
		_, _, rootCmd := setup()
		rootCmd.SetArgs([]string{"help"})
		err := rootCmd.Execute()
		require.NoError(t, err)
	})
}
