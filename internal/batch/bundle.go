package batch

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"

	"github.com/open-cli-collective/md2docx/pkg/docx"
	"github.com/open-cli-collective/md2docx/pkg/md"
)

// writeBundle stores every converted document in one zip archive, named by
// its relative output path. Packages are already compressed, so entries
// are stored as is. Entries carry docx.PackageTime, so the same results
// always produce the same archive.
func writeBundle(path string, results []Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create bundle directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create bundle: %w", err)
	}

	zw := zip.NewWriter(f)
	for _, res := range results {
		if res.Status != StatusOK || res.data == nil {
			continue
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     md.OutputName(res.Rel),
			Method:   zip.Store,
			Modified: docx.PackageTime,
		})
		if err != nil {
			f.Close()
			return fmt.Errorf("adding %s: %w", res.Rel, err)
		}
		if _, err := w.Write(res.data); err != nil {
			f.Close()
			return fmt.Errorf("adding %s: %w", res.Rel, err)
		}
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finishing bundle: %w", err)
	}
	return f.Close()
}
