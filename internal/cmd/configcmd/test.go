package configcmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md2docx/internal/config"
	"github.com/open-cli-collective/md2docx/pkg/docx"
)

// sampleDocument exercises every block kind the converter emits.
const sampleDocument = "# Heading\n" +
	"Some **bold**, *italic*, ~~struck~~ and `code` with a [link](https://example.com).\n" +
	"> A quote\n" +
	"- bullet\n" +
	"1. numbered\n" +
	"---\n" +
	"```\ncode <block> & more\n```\n"

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the current configuration",
		Long: `Test that md2docx can convert with the current configuration.

The settings are validated, a sample document is converted with the
configured engine and the resulting package is verified. When an output
directory is configured it must be writable.`,
		Example: `  # Test configuration
  md2docx config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			configFlag, _ := cmd.Flags().GetString("config")
			return runTest(cmd.OutOrStdout(), config.ResolvePath(configFlag), noColor)
		},
	}

	return cmd
}

func runTest(w io.Writer, configPath string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w (run 'md2docx init' to configure)", err)
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	if err := cfg.Validate(); err != nil {
		_, _ = red.Fprintln(w, "✗ Invalid configuration:", err)
		fmt.Fprintln(w, "\nCheck your settings with: md2docx config show")
		fmt.Fprintln(w, "Reconfigure with: md2docx init")
		return fmt.Errorf("invalid config: %w", err)
	}
	_, _ = green.Fprintln(w, "✓ Configuration is valid")

	engine := docx.Engine(cfg.Engine)
	if engine == "" {
		engine = docx.EngineNative
	}
	fmt.Fprintf(w, "Converting a sample document with the %s engine...\n", engine)

	pkg, err := docx.Convert([]byte(sampleDocument), docx.Options{Engine: engine})
	if err == nil {
		err = docx.Verify(pkg)
	}
	if err != nil {
		_, _ = red.Fprintln(w, "✗ Sample conversion failed:", err)
		return fmt.Errorf("sample conversion failed: %w", err)
	}
	_, _ = green.Fprintln(w, "✓ Sample document converted and verified")

	if cfg.OutputDir != "" {
		if err := checkWritable(cfg.OutputDir); err != nil {
			_, _ = red.Fprintln(w, "✗ Output directory is not writable:", err)
			return fmt.Errorf("output directory not writable: %w", err)
		}
		_, _ = green.Fprintf(w, "✓ Output directory %s is writable\n", cfg.OutputDir)
	}

	return nil
}

// checkWritable creates dir if needed and writes a probe file into it.
func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".md2docx-probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
