// Package cmd provides the CLI commands for mandex.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mandex/mandex/internal/config"
	"github.com/mandex/mandex/internal/index"
	"github.com/mandex/mandex/internal/logging"
	"github.com/mandex/mandex/pkg/version"
)

// Debug logging flag
var (
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the mandex CLI.
// Invoked with a mnemonic argument it behaves like 'mandex open'.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mandex [mnemonic]",
		Short: "Look up processor instructions in the manual",
		Long: `Mandex locates an instruction's documentation page in the processor
manual and opens a PDF viewer at that page.

The page index is built from a plain-text rendering of the manual and
cached by content hash, so it is rebuilt only when the text changes.

Just run 'mandex ADD' to jump to the ADD instruction.`,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runOpen(cmd, args[0])
		},
		ValidArgsFunction: completeMnemonics,
	}

	cmd.SetVersionTemplate("mandex version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.mandex/logs/")
	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newOpenCmd())
	cmd.AddCommand(newPageCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newRebuildCmd())
	cmd.AddCommand(newExtractCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging sets up file logging, at debug level if --debug is set.
func startLogging(_ *cobra.Command, _ []string) error {
	logCfg := logging.DefaultConfig()
	if debugMode {
		logCfg = logging.DebugConfig()
	}
	// Keep stdio clean for scripting; logs go to the file.
	logCfg.WriteToStderr = false

	logger, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		if debugMode {
			return fmt.Errorf("failed to setup debug logging: %w", err)
		}
		// File logging is best-effort for normal runs.
		return nil
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)

	if debugMode {
		slog.Info("debug logging enabled",
			slog.String("log_file", logging.DefaultLogPath()),
			slog.String("version", version.Version))
	}
	return nil
}

// stopLogging flushes and closes the log file.
func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig loads the effective configuration from the current directory.
func loadConfig() (*config.Config, error) {
	return config.Load(".")
}

// configuredRules converts configured expansion rules, falling back to the
// built-in condition-code rules when none are configured.
func configuredRules(cfg *config.Config) ([]index.Rule, error) {
	if len(cfg.Rules) == 0 {
		return index.DefaultRules(), nil
	}
	rules := make([]index.Rule, 0, len(cfg.Rules))
	for _, rc := range cfg.Rules {
		rule, err := index.NewRule(rc.Pattern, rc.Suffixes)
		if err != nil {
			return nil, fmt.Errorf("invalid rule %q: %w", rc.Pattern, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// ensureIndex returns the mnemonic index for the configured manual text,
// building and caching it if needed.
func ensureIndex(cfg *config.Config, force bool) (*index.Index, error) {
	rules, err := configuredRules(cfg)
	if err != nil {
		return nil, err
	}
	builder := index.NewBuilder(cfg.Manual.PageOffset, rules).
		WithHeadingLine(cfg.Manual.HeadingLine)
	cache := index.NewFileCache(cfg.Cache.Dir)
	return cache.Ensure(builder, cfg.Manual.Text, force)
}

// completeMnemonics provides shell completion from the cached index.
func completeMnemonics(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ix, err := ensureIndex(cfg, false)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return ix.Mnemonics(), cobra.ShellCompDirectiveNoFileComp
}
