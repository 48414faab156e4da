// Package init provides the init command for md2docx.
package init

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md2docx/internal/config"
	"github.com/open-cli-collective/md2docx/internal/logging"
	"github.com/open-cli-collective/md2docx/internal/view"
)

type initOptions struct {
	configPath string
	defaults   bool
	force      bool
	out        io.Writer
}

// answers holds the form values before they are applied to a config.
type answers struct {
	outputDir    string
	engine       string
	workers      string
	title        bool
	logLevel     string
	outputFormat string
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize md2docx configuration",
		Long: `Initialize md2docx with your preferred conversion defaults.

This command will guide you through choosing an output directory, the
Markdown engine, the number of parallel workers and the report format.
The configuration will be saved to ~/.config/md2docx/config.yml.

Every setting can later be overridden with a flag or an MD2DOCX_*
environment variable.`,
		Example: `  # Interactive setup
  md2docx init

  # Write the default configuration without prompting
  md2docx init --defaults`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.out = cmd.OutOrStdout()
			return runInit(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.defaults, "defaults", false, "Write the default configuration without prompting")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing configuration without asking")

	return cmd
}

func runInit(opts *initOptions) error {
	configPath := config.ResolvePath(opts.configPath)
	out := opts.out
	if out == nil {
		out = os.Stdout
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !opts.force {
		if opts.defaults {
			return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", configPath)
		}
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(out, "Initialization cancelled.")
			return nil
		}
	}

	a := defaultAnswers()
	if !opts.defaults {
		if err := newForm(&a).Run(); err != nil {
			return err
		}
	}

	cfg, err := a.apply()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nConfiguration saved to %s\n", configPath)
	fmt.Fprintln(out, "\nYou're all set! Try running:")
	fmt.Fprintln(out, "  md2docx convert docs/")
	fmt.Fprintln(out, "  md2docx check <export-dir>")

	return nil
}

func defaultAnswers() answers {
	return answers{
		engine:       config.EngineNative,
		workers:      "0",
		logLevel:     "warn",
		outputFormat: string(view.FormatTable),
	}
}

func newForm(a *answers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory (optional)").
				Description("Leave empty to write a timestamped export next to the source").
				Placeholder("~/Documents/converted").
				Value(&a.outputDir),

			huh.NewSelect[string]().
				Title("Markdown engine").
				Description("native follows the line-based rules; commonmark is a full CommonMark parser").
				Options(
					huh.NewOption("native", config.EngineNative),
					huh.NewOption("commonmark", config.EngineCommonMark),
				).
				Value(&a.engine),

			huh.NewInput().
				Title("Parallel workers").
				Description("0 uses one worker per CPU").
				Value(&a.workers).
				Validate(validateWorkers),

			huh.NewConfirm().
				Title("Use front matter titles?").
				Description("Insert the front matter title as a leading heading").
				Value(&a.title),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions(logging.ValidLevels...)...).
				Value(&a.logLevel),

			huh.NewSelect[string]().
				Title("Report format").
				Options(huh.NewOptions(view.ValidFormats()...)...).
				Value(&a.outputFormat),
		),
	)
}

func validateWorkers(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("workers must be a number")
	}
	if n < 0 || n > config.MaxWorkers {
		return fmt.Errorf("workers must be between 0 and %d", config.MaxWorkers)
	}
	return nil
}

// apply turns the answers into a validated config.
func (a answers) apply() (*config.Config, error) {
	if err := validateWorkers(a.workers); err != nil {
		return nil, err
	}
	workers, _ := strconv.Atoi(strings.TrimSpace(a.workers))

	cfg := &config.Config{
		OutputDir:            strings.TrimSpace(a.outputDir),
		Engine:               a.engine,
		Workers:              workers,
		TitleFromFrontMatter: a.title,
		LogLevel:             a.logLevel,
		OutputFormat:         a.outputFormat,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
