package configcmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md2docx/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective md2docx configuration with the source of each value.`,
		Example: `  # Show current config
  md2docx config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			configFlag, _ := cmd.Flags().GetString("config")
			return runShow(cmd.OutOrStdout(), config.ResolvePath(configFlag), noColor)
		},
	}

	return cmd
}

func runShow(w io.Writer, configPath string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, key, value, fileValue string) {
		_, _ = bold.Fprintf(w, "%-14s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(w, "-")
			return
		}

		fmt.Fprint(w, value)

		source := "config"
		for _, envVar := range envVars[key] {
			if os.Getenv(envVar) != "" && fileValue != value {
				source = envVar
				break
			}
		}
		if source == "config" && (fileErr != nil || fileValue != value) {
			source = "-"
		}

		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	printField("Output dir", "output_dir", cfg.OutputDir, fileCfg.OutputDir)
	printField("Engine", "engine", cfg.Engine, fileCfg.Engine)
	printField("Workers", "workers", intValue(cfg.Workers), intValue(fileCfg.Workers))
	printField("Title", "title_from_frontmatter", boolValue(cfg.TitleFromFrontMatter), boolValue(fileCfg.TitleFromFrontMatter))
	printField("Log level", "log_level", cfg.LogLevel, fileCfg.LogLevel)
	printField("Log format", "log_format", cfg.LogFormat, fileCfg.LogFormat)
	printField("Output", "output_format", cfg.OutputFormat, fileCfg.OutputFormat)

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}

// intValue renders zero as unset.
func intValue(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func boolValue(b bool) string {
	if !b {
		return ""
	}
	return "true"
}
