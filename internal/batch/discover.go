package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/open-cli-collective/md2docx/pkg/md"
)

// exportTimeLayout stamps default output directories.
const exportTimeLayout = "20060102_150405"

// Job is one source document and where its package goes.
type Job struct {
	Source string // path of the source file
	Rel    string // source path relative to its input, slash separated
	Output string // path of the .docx to write
}

// DefaultOutputDir returns the output directory used when none is given:
// a timestamped sibling of the first input, or of its parent directory
// when the input is a file.
func DefaultOutputDir(input string, now time.Time) (string, error) {
	abs, err := filepath.Abs(input)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}
	name := filepath.Base(abs) + "_DOCX_Export_" + now.Format(exportTimeLayout)
	return filepath.Join(filepath.Dir(abs), name), nil
}

// Discover expands inputs into jobs. A directory contributes every
// markdown or HTML file below it, skipping hidden entries and outputDir,
// with its relative structure kept under outputDir. A file argument is
// converted whatever its extension.
func Discover(inputs []string, outputDir string) ([]Job, error) {
	absOut, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("resolving output directory: %w", err)
	}

	var jobs []Job
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", input, err)
		}

		if !info.IsDir() {
			rel := filepath.Base(input)
			jobs = append(jobs, newJob(input, rel, outputDir))
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != input && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if abs, err := filepath.Abs(path); err == nil && abs == absOut {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || !md.IsSource(d.Name()) {
				return nil
			}

			rel, err := filepath.Rel(input, path)
			if err != nil {
				return err
			}
			jobs = append(jobs, newJob(path, rel, outputDir))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", input, err)
		}
	}
	return jobs, nil
}

func newJob(source, rel, outputDir string) Job {
	return Job{
		Source: source,
		Rel:    filepath.ToSlash(rel),
		Output: filepath.Join(outputDir, md.OutputName(rel)),
	}
}
