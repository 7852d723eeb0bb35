package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/andyballingall/fmtree/internal/config"
	"github.com/andyballingall/fmtree/internal/formatter"
	"github.com/andyballingall/fmtree/internal/fsh"
	"github.com/andyballingall/fmtree/internal/repo"
	"github.com/andyballingall/fmtree/internal/source"
	"github.com/andyballingall/fmtree/internal/validator"
)

// Version is the current version of fmtree, set at build time.
var Version = "dev"

const (
	InitCmdName    = "init"
	WatchCmdName   = "watch"
	ChangedCmdName = "changed"

	ConfigEnvVar = "FMTREE_CONFIG"
)

var LongDescription = `
fmtree runs a source code formatter (clang-format by default) over every source
file in your project's include, src and test directories. Each file is reported
with ✓ if it was already formatted, or X if it was rewritten.
`

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	debug      bool
	noColour   bool
	check      bool
	configPath pathValue
	command    string
	output     outputValue
}

func (f *rootFlags) outputOptions(cmd *cobra.Command, env fsh.EnvProvider) OutputOptions {
	return OutputOptions{
		Format:    string(f.output),
		UseColour: useColour(cmd.OutOrStdout(), f.noColour, env),
	}
}

// NewRootCmd creates the root command and wires up dependencies.
func NewRootCmd(lazy *LazyManager, ll *slog.LevelVar, stdout, stderr io.Writer,
	envProvider fsh.EnvProvider,
) *cobra.Command {
	flags := &rootFlags{output: OutputText}

	rootCmd := &cobra.Command{
		Use:           "fmtree [dir...]",
		Short:         "Format every source file in a project tree",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Long:          LongDescription,
		Example: `
fmtree                     - format include, src and test (or the configured roots)
fmtree lib tools           - format the given directories instead
fmtree --check             - report files that need formatting without changing them
fmtree -o json             - print a JSON report when done`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if flags.debug {
				ll.Set(slog.LevelDebug)
			}

			// Skip initialization for help, completion and init commands
			if cmd.Name() == "help" || isCompletionCommand(cmd) || cmd.Name() == InitCmdName {
				return nil
			}
			// Skip if already initialised (e.g., in tests)
			if lazy.HasInner() {
				return nil
			}

			mgr, err := buildManager(flags, ll, stdout, stderr, envProvider)
			if err != nil {
				return err
			}
			lazy.SetInner(mgr)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return lazy.Format(cmd.Context(), args, flags.outputOptions(cmd, envProvider))
		},
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flags.debug, "debug", "d", false, "Enable debug logging")
	pf.BoolVar(&flags.check, "check", false,
		"Report files that need formatting without changing them (fails if any do)")
	pf.VarP(&flags.configPath, "config", "f",
		fmt.Sprintf("path to config file (overrides %s and %s in the working directory)",
			config.YAMLConfigFile, config.TOMLConfigFile))
	pf.StringVar(&flags.command, "formatter", "", "formatter executable (overrides config)")
	pf.VarP(&flags.output, "output", "o", "Output format (text, json)")

	pf.BoolVarP(&flags.noColour, "nocolour", "c", false, "Disable colour in output")
	// Support alternate spellings
	pf.BoolVar(&flags.noColour, "nocolor", false, "")
	pf.BoolVar(&flags.noColour, "noColor", false, "")
	pf.BoolVar(&flags.noColour, "noColour", false, "")
	_ = pf.MarkHidden("nocolor")
	_ = pf.MarkHidden("noColor")
	_ = pf.MarkHidden("noColour")

	// Subcommands
	rootCmd.AddCommand(NewInitCmd(fsh.NewPathResolver()))
	rootCmd.AddCommand(NewWatchCmd(lazy, flags, envProvider))
	rootCmd.AddCommand(NewChangedCmd(lazy, flags, envProvider))

	return rootCmd
}

// buildManager loads the configuration and builds the real Manager.
func buildManager(flags *rootFlags, ll *slog.LevelVar, stdout, stderr io.Writer,
	env fsh.EnvProvider,
) (*CLIManager, error) {
	configPath := string(flags.configPath)
	if configPath == "" {
		configPath = env.Get(ConfigEnvVar)
	}

	cfg, err := config.Load(".", configPath, validator.NewSanthoshCompiler())
	if err != nil {
		return nil, fmt.Errorf("configuration failed: %w", err)
	}
	if flags.command != "" {
		cfg.Formatter.Command = flags.command
	}

	logPath := env.Get(LogEnvVar)
	if logPath == "" {
		logPath = cfg.LogFile
	}
	logger, _, err := setupLogger(stderr, ll, logPath)
	if err != nil {
		logger.Warn("logging to file disabled", "error", err)
	}
	if cfg.Path != "" {
		logger.Debug("loaded config", "path", cfg.Path)
	}

	runner := formatter.NewExecRunner(cfg.Formatter.Command, cfg.Formatter.Args...)
	resolved, err := runner.LookPath()
	if err != nil {
		return nil, err
	}
	logger.Debug("using formatter", "command", resolved, "args", cfg.Formatter.Args)

	f := formatter.New(runner, logger,
		formatter.WithTempDir(cfg.TempDir),
		formatter.WithCheckOnly(flags.check),
	)

	return NewCLIManager(
		logger,
		cfg,
		source.NewClassifier(cfg.Extensions...),
		f,
		repo.NewCLIGitter(""),
		flags.check,
		stdout,
	), nil
}

// isCompletionCommand returns true if the command or any of its parents is the "completion" command.
func isCompletionCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return true
		}
	}
	return false
}
