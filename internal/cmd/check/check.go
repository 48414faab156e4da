// Package check provides the check command.
package check

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md2docx/internal/view"
	"github.com/open-cli-collective/md2docx/pkg/docx"
)

type checkOptions struct {
	paths   []string
	output  string
	noColor bool
	out     io.Writer
}

// fileResult is the outcome of checking one .docx file.
type fileResult struct {
	Path     string   `json:"path"`
	Valid    bool     `json:"valid"`
	Size     int64    `json:"size"`
	Parts    int      `json:"parts"`
	Ordered  int      `json:"ordered_items"`
	Bullets  int      `json:"bullet_items"`
	Problems []string `json:"problems,omitempty"`
}

// NewCmdCheck creates the check command.
func NewCmdCheck() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Verify generated .docx packages",
		Long: `Verify that .docx packages are structurally sound.

Each package must contain every required part, each XML part must be
well-formed, content types and relationships must resolve, and every
paragraph style and numbering id the document uses must be declared.
Directories are searched recursively for .docx files.`,
		Example: `  # Check one document
  md2docx check report.docx

  # Check a whole export
  md2docx check docs_DOCX_Export_20240101_120000/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.paths = args
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			return runCheck(opts)
		},
	}

	return cmd
}

func runCheck(opts *checkOptions) error {
	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.out != nil {
		renderer.SetWriter(opts.out)
	}

	files, err := collectFiles(opts.paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		renderer.RenderText("No .docx files found.")
		return nil
	}

	results := make([]fileResult, 0, len(files))
	invalid := 0
	for _, path := range files {
		res := checkFile(path)
		if !res.Valid {
			invalid++
		}
		results = append(results, res)
	}

	if renderer.Format() == view.FormatJSON {
		if err := renderer.RenderJSON(results); err != nil {
			return err
		}
	} else {
		renderResults(renderer, results)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d packages are invalid", invalid, len(results))
	}
	return nil
}

func renderResults(r *view.Renderer, results []fileResult) {
	headers := []string{"FILE", "STATUS", "SIZE", "PARTS", "ORDERED", "BULLETS"}
	var rows [][]string
	for _, res := range results {
		status := "valid"
		if !res.Valid {
			status = "invalid"
		}
		rows = append(rows, []string{
			res.Path,
			status,
			humanize.Bytes(uint64(res.Size)),
			strconv.Itoa(res.Parts),
			strconv.Itoa(res.Ordered),
			strconv.Itoa(res.Bullets),
		})
	}
	r.RenderTable(headers, rows)

	if r.Format() == view.FormatPlain {
		return
	}
	for _, res := range results {
		for _, p := range res.Problems {
			r.Error(fmt.Sprintf("%s: %s", res.Path, p))
		}
	}
}

// checkFile reads and verifies one package.
func checkFile(path string) fileResult {
	res := fileResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Problems = []string{err.Error()}
		return res
	}
	res.Size = int64(len(data))

	pkg, err := docx.ReadPackage(bytes.NewReader(data), res.Size)
	if err != nil {
		res.Problems = []string{err.Error()}
		return res
	}
	res.Parts = len(pkg.Names())

	if err := docx.Verify(pkg); err != nil {
		var verr *docx.VerifyError
		if errors.As(err, &verr) {
			res.Problems = verr.Problems
		} else {
			res.Problems = []string{err.Error()}
		}
		return res
	}

	document, _ := pkg.Part(docx.PartDocument)
	refs, err := docx.NumberingRefs(document)
	if err != nil {
		res.Problems = []string{err.Error()}
		return res
	}
	res.Ordered = refs[docx.NumOrdered]
	res.Bullets = refs[docx.NumBullet]
	res.Valid = true
	return res
}

// collectFiles expands directories into the .docx files below them.
// Explicit file arguments are kept whatever their extension.
func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if p != path && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".docx") {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", path, err)
		}
	}
	return files, nil
}
