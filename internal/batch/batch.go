// Package batch converts sets of markdown files into .docx packages.
package batch

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
	"golang.org/x/sync/errgroup"

	"github.com/open-cli-collective/md2docx/internal/logging"
	"github.com/open-cli-collective/md2docx/pkg/docx"
	"github.com/open-cli-collective/md2docx/pkg/md"
)

// Status is the outcome of one document.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Options controls a batch run.
type Options struct {
	OutputDir            string // default: DefaultOutputDir of the first input
	Engine               docx.Engine
	Workers              int  // default: number of CPUs
	TitleFromFrontMatter bool // emit a front matter title as a leading heading
	Bundle               string
	Logger               *slog.Logger
	Now                  func() time.Time
}

// Result is the outcome of one job.
type Result struct {
	Job
	Status   Status
	Size     int64
	Checksum string // hex BLAKE3 of the written package
	Warnings []string
	Err      error

	data []byte // kept for the bundle
}

// Report is the outcome of a whole run.
type Report struct {
	ID        string
	OutputDir string
	Bundle    string
	Results   []Result
}

// Counts returns how many documents succeeded, failed and were skipped.
func (r *Report) Counts() (ok, failed, skipped int) {
	for _, res := range r.Results {
		switch res.Status {
		case StatusOK:
			ok++
		case StatusFailed:
			failed++
		case StatusSkipped:
			skipped++
		}
	}
	return ok, failed, skipped
}

// HasFailures reports whether any document failed.
func (r *Report) HasFailures() bool {
	_, failed, _ := r.Counts()
	return failed > 0
}

// Run discovers the documents under inputs and converts them concurrently.
// A failing document never stops the others; its error is recorded in its
// Result. Once ctx is cancelled no further documents are started and the
// remaining ones are reported as skipped. The returned error covers only
// problems with the run as a whole: unusable inputs or a failed bundle.
func Run(ctx context.Context, inputs []string, opts Options) (*Report, error) {
	if len(inputs) == 0 {
		return nil, errors.New("no inputs given")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.OutputDir == "" {
		dir, err := DefaultOutputDir(inputs[0], opts.Now())
		if err != nil {
			return nil, fmt.Errorf("choosing output directory: %w", err)
		}
		opts.OutputDir = dir
	}

	jobs, err := Discover(inputs, opts.OutputDir)
	if err != nil {
		return nil, err
	}

	report := &Report{
		ID:        uuid.New().String(),
		OutputDir: opts.OutputDir,
		Bundle:    opts.Bundle,
		Results:   make([]Result, len(jobs)),
	}
	ctx = logging.WithBatchID(ctx, report.ID)
	logger := logging.FromContext(ctx, opts.Logger)
	logger.Info("starting batch", "documents", len(jobs), "output_dir", opts.OutputDir, "workers", opts.Workers)

	claimed := make(map[string]string, len(jobs))
	var g errgroup.Group
	g.SetLimit(opts.Workers)

	for i, job := range jobs {
		if first, dup := claimed[job.Output]; dup {
			report.Results[i] = Result{Job: job, Status: StatusFailed,
				Err: fmt.Errorf("output %s is already produced by %s", job.Output, first)}
			continue
		}
		claimed[job.Output] = job.Rel

		if ctx.Err() != nil {
			report.Results[i] = Result{Job: job, Status: StatusSkipped, Err: ctx.Err()}
			continue
		}
		g.Go(func() error {
			// A job can wait for a free worker after ctx is cancelled.
			if err := ctx.Err(); err != nil {
				report.Results[i] = Result{Job: job, Status: StatusSkipped, Err: err}
				return nil
			}
			report.Results[i] = runJob(job, opts, opts.Bundle != "")
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range report.Results {
		logResult(logger, res)
	}

	if opts.Bundle != "" {
		if err := writeBundle(opts.Bundle, report.Results); err != nil {
			return report, &PackageError{Path: opts.Bundle, Err: err}
		}
		logger.Info("wrote bundle", "path", opts.Bundle)
	}
	for i := range report.Results {
		report.Results[i].data = nil
	}
	return report, nil
}

func logResult(logger *slog.Logger, res Result) {
	for _, w := range res.Warnings {
		logger.Debug("degraded markup", "file", res.Rel, "warning", w)
	}
	switch res.Status {
	case StatusOK:
		logger.Info("converted", "file", res.Rel, "output", res.Output, "bytes", res.Size)
	case StatusSkipped:
		logger.Info("skipped", "file", res.Rel)
	default:
		logger.Warn("conversion failed", "file", res.Rel, "error", res.Err)
	}
}

// runJob is the per-document pipeline Run schedules.
var runJob = convertJob

// convertJob runs the whole pipeline for one document. It never panics on
// bad input; every failure ends up in the Result.
func convertJob(job Job, opts Options, keep bool) Result {
	res := Result{Job: job, Status: StatusFailed}

	raw, err := os.ReadFile(job.Source)
	if err != nil {
		res.Err = &ReadError{Path: job.Source, Err: err}
		return res
	}
	text, err := Decode(raw)
	if err != nil {
		res.Err = &ReadError{Path: job.Source, Err: err}
		return res
	}

	if md.IsHTML(job.Source) {
		converted, err := md.FromHTML(string(text))
		if err != nil {
			res.Err = fmt.Errorf("converting HTML %s: %w", job.Source, err)
			return res
		}
		text = []byte(converted)
	}

	meta, body, hasMeta := md.StripFrontMatter(text)
	convOpts := docx.Options{Engine: opts.Engine}
	if opts.TitleFromFrontMatter && hasMeta {
		convOpts.Title = meta.Title
	}

	pkg, err := docx.Convert(body, convOpts)
	if err != nil {
		res.Err = err
		return res
	}
	res.Warnings = pkg.Warnings

	data, err := pkg.Bytes()
	if err != nil {
		res.Err = &PackageError{Path: job.Output, Err: err}
		return res
	}
	if err := writeFileAtomic(job.Output, data); err != nil {
		res.Err = &PackageError{Path: job.Output, Err: err}
		return res
	}

	sum := blake3.Sum256(data)
	res.Status = StatusOK
	res.Size = int64(len(data))
	res.Checksum = hex.EncodeToString(sum[:])
	if keep {
		res.data = data
	}
	return res
}

// writeFileAtomic writes data to a temporary file beside path and renames it
// into place, so path never holds a partial package. The temporary file is
// removed on any failure.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Chmod(0644); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
