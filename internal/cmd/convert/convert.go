// Package convert provides the convert command.
package convert

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md2docx/internal/batch"
	"github.com/open-cli-collective/md2docx/internal/config"
	"github.com/open-cli-collective/md2docx/internal/view"
	"github.com/open-cli-collective/md2docx/pkg/docx"
)

// checksumLen is how much of the BLAKE3 checksum the report shows.
const checksumLen = 12

type convertOptions struct {
	inputs     []string
	outputDir  string
	engine     string
	workers    int
	bundle     string
	title      bool
	configPath string
	output     string
	noColor    bool

	// changed records which flags were set explicitly.
	changed map[string]bool
	out     io.Writer
}

// NewCmdConvert creates the convert command.
func NewCmdConvert() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:     "convert [path...]",
		Aliases: []string{"c"},
		Short:   "Convert Markdown files to .docx",
		Long: `Convert Markdown files, or every Markdown file below a directory, to .docx.

Directories are scanned recursively for .md, .markdown, .mdown, .mkd, .html
and .htm files; hidden files and directories are skipped. The folder
structure is kept in the output directory, which defaults to a timestamped
<source>_DOCX_Export_<YYYYMMDD_HHMMSS> directory next to the first input.

A document that fails does not stop the others. The command exits non-zero
when any document failed.`,
		Example: `  # Convert everything under docs/
  md2docx convert docs/

  # Convert into a chosen directory with the CommonMark engine
  md2docx convert notes/ -d converted/ --engine commonmark

  # Also write every document into one zip file
  md2docx convert docs/ --bundle docs.zip

  # Machine-readable report
  md2docx convert docs/ -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.inputs = args
			if len(opts.inputs) == 0 {
				opts.inputs = []string{"."}
			}
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.changed = map[string]bool{}
			for _, name := range []string{"output-dir", "engine", "workers", "title-from-frontmatter"} {
				opts.changed[name] = cmd.Flags().Changed(name)
			}
			opts.out = cmd.OutOrStdout()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runConvert(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "d", "", "Output directory (default: timestamped export directory)")
	cmd.Flags().StringVarP(&opts.engine, "engine", "e", "", "Markdown engine: native, commonmark (default native)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "j", 0, "Documents converted at once (default: number of CPUs)")
	cmd.Flags().StringVar(&opts.bundle, "bundle", "", "Also write every converted document into this zip file")
	cmd.Flags().BoolVar(&opts.title, "title-from-frontmatter", false, "Insert the front matter title as a leading heading")

	_ = cmd.RegisterFlagCompletionFunc("engine", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return docx.ValidEngines, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.MarkFlagDirname("output-dir")

	return cmd
}

// settings merges the config file and environment with explicit flags.
func (opts *convertOptions) settings() (*config.Config, error) {
	cfg, err := config.LoadWithEnv(config.ResolvePath(opts.configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.changed["output-dir"] {
		cfg.OutputDir = opts.outputDir
	}
	if opts.changed["engine"] {
		cfg.Engine = opts.engine
	}
	if opts.changed["workers"] {
		cfg.Workers = opts.workers
	}
	if opts.changed["title-from-frontmatter"] {
		cfg.TitleFromFrontMatter = opts.title
	}
	if opts.output != "" {
		cfg.OutputFormat = opts.output
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

func runConvert(ctx context.Context, opts *convertOptions) error {
	cfg, err := opts.settings()
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(cfg.OutputFormat), opts.noColor)
	if opts.out != nil {
		renderer.SetWriter(opts.out)
	}

	report, err := batch.Run(ctx, opts.inputs, batch.Options{
		OutputDir:            cfg.OutputDir,
		Engine:               docx.Engine(cfg.Engine),
		Workers:              cfg.Workers,
		TitleFromFrontMatter: cfg.TitleFromFrontMatter,
		Bundle:               opts.bundle,
		Logger:               slog.Default(),
	})
	if report == nil {
		return err
	}

	if renderer.Format() == view.FormatJSON {
		if jerr := renderer.RenderJSON(newReportJSON(report)); jerr != nil {
			return jerr
		}
	} else {
		renderReport(renderer, report)
	}

	if err != nil {
		return err
	}
	if report.HasFailures() {
		_, failed, _ := report.Counts()
		return fmt.Errorf("%d of %d documents failed", failed, len(report.Results))
	}
	return nil
}

func renderReport(r *view.Renderer, report *batch.Report) {
	if len(report.Results) == 0 {
		r.RenderText("No Markdown files found.")
		return
	}

	headers := []string{"SOURCE", "OUTPUT", "STATUS", "SIZE", "BLAKE3"}
	var rows [][]string
	for _, res := range report.Results {
		rows = append(rows, []string{res.Rel, outputRel(report, res), string(res.Status), sizeText(res), checksumText(res)})
	}
	r.RenderTable(headers, rows)

	if r.Format() == view.FormatPlain {
		return
	}

	r.RenderText("")
	for _, res := range report.Results {
		if res.Status == batch.StatusFailed && res.Err != nil {
			r.Error(fmt.Sprintf("%s: %s", res.Rel, view.Truncate(res.Err.Error(), 120)))
		}
		for _, w := range res.Warnings {
			r.Warning(fmt.Sprintf("%s: %s", res.Rel, w))
		}
	}

	ok, failed, skipped := report.Counts()
	summary := fmt.Sprintf("Converted %d, failed %d, skipped %d", ok, failed, skipped)
	if failed > 0 {
		r.Error(summary)
	} else {
		r.Success(summary)
	}
	r.RenderKeyValue("Output", report.OutputDir)
	if report.Bundle != "" {
		r.RenderKeyValue("Bundle", report.Bundle)
	}
}

func outputRel(report *batch.Report, res batch.Result) string {
	if res.Status != batch.StatusOK {
		return "-"
	}
	rel, err := filepath.Rel(report.OutputDir, res.Output)
	if err != nil {
		return res.Output
	}
	return filepath.ToSlash(rel)
}

func sizeText(res batch.Result) string {
	if res.Status != batch.StatusOK {
		return "-"
	}
	return humanize.Bytes(uint64(res.Size))
}

func checksumText(res batch.Result) string {
	if len(res.Checksum) < checksumLen {
		return "-"
	}
	return res.Checksum[:checksumLen]
}

type documentJSON struct {
	Source   string   `json:"source"`
	Output   string   `json:"output,omitempty"`
	Status   string   `json:"status"`
	Size     int64    `json:"size,omitempty"`
	BLAKE3   string   `json:"blake3,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

type reportJSON struct {
	ID        string         `json:"id"`
	OutputDir string         `json:"output_dir"`
	Bundle    string         `json:"bundle,omitempty"`
	Converted int            `json:"converted"`
	Failed    int            `json:"failed"`
	Skipped   int            `json:"skipped"`
	Documents []documentJSON `json:"documents"`
}

func newReportJSON(report *batch.Report) reportJSON {
	ok, failed, skipped := report.Counts()
	out := reportJSON{
		ID:        report.ID,
		OutputDir: report.OutputDir,
		Bundle:    report.Bundle,
		Converted: ok,
		Failed:    failed,
		Skipped:   skipped,
		Documents: []documentJSON{},
	}
	for _, res := range report.Results {
		doc := documentJSON{
			Source:   res.Rel,
			Status:   string(res.Status),
			Size:     res.Size,
			BLAKE3:   res.Checksum,
			Warnings: res.Warnings,
		}
		if res.Status == batch.StatusOK {
			doc.Output = outputRel(report, res)
		}
		if res.Err != nil {
			doc.Error = res.Err.Error()
		}
		out.Documents = append(out.Documents, doc)
	}
	return out
}
