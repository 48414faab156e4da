// Package root provides the root command for the md2docx CLI.
package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md2docx/internal/cmd/check"
	"github.com/open-cli-collective/md2docx/internal/cmd/completion"
	"github.com/open-cli-collective/md2docx/internal/cmd/configcmd"
	"github.com/open-cli-collective/md2docx/internal/cmd/convert"
	initcmd "github.com/open-cli-collective/md2docx/internal/cmd/init"
	"github.com/open-cli-collective/md2docx/internal/config"
	"github.com/open-cli-collective/md2docx/internal/logging"
	"github.com/open-cli-collective/md2docx/internal/version"
	"github.com/open-cli-collective/md2docx/internal/view"
)

// NewCmdRoot creates the root command for md2docx.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "md2docx",
		Short: "Convert Markdown documents to Word .docx files",
		Long: `md2docx converts Markdown (and HTML) documents into Word .docx packages.

It converts single files or whole directory trees, keeping the folder
structure, and reports per-document success or failure.

Get started by running: md2docx convert <dir>`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           version.Version,
		PersistentPreRunE: setupLogging,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/md2docx/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().String("log-format", "", "log format: text, json")

	_ = cmd.RegisterFlagCompletionFunc("output", fixedCompletions(view.ValidFormats()...))
	_ = cmd.RegisterFlagCompletionFunc("log-level", fixedCompletions(logging.ValidLevels...))
	_ = cmd.RegisterFlagCompletionFunc("log-format", fixedCompletions(logging.ValidFormats...))

	// Set version template
	cmd.SetVersionTemplate(version.String() + "\n")

	// Subcommands
	cmd.AddCommand(convert.NewCmdConvert())
	cmd.AddCommand(check.NewCmdCheck())
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}

// setupLogging installs the default logger. Flags win over the config file
// and environment; without either only warnings are logged. A config file
// that fails to load is reported by the command that needs it.
func setupLogging(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")

	if cfg, err := config.LoadWithEnv(config.ResolvePath(configPath)); err == nil {
		if level == "" {
			level = cfg.LogLevel
		}
		if format == "" {
			format = cfg.LogFormat
		}
	}

	if level == "" {
		level = "warn"
	}

	if _, err := logging.Setup(os.Stderr, level, format); err != nil {
		return fmt.Errorf("invalid logging flags: %w", err)
	}
	return nil
}

func fixedCompletions(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
