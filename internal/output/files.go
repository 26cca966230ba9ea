package output

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/report"
)

// File is one rendered output file. Path is relative to the provider's
// output directory.
type File struct {
	Path string
	Data []byte
}

// Write stores files under root, creating directories as needed. Files whose
// content already matches are left untouched.
func Write(root, provider string, files []File) ([]report.FileResult, error) {
	results := make([]report.FileResult, 0, len(files))
	for _, f := range files {
		status, err := compare(root, f)
		if err != nil {
			return results, err
		}
		if status != report.StatusUnchanged {
			full := filepath.Join(root, f.Path)
			if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
				return results, fmt.Errorf("create directory for %q: %w", full, err)
			}
			if err := os.WriteFile(full, f.Data, 0o644); err != nil {
				return results, fmt.Errorf("write %q: %w", full, err)
			}
			status = report.StatusWritten
		}
		results = append(results, report.FileResult{Provider: provider, Path: f.Path, Status: status, Bytes: len(f.Data)})
	}
	return results, nil
}

// Check compares files with what is on disk under root without writing.
func Check(root, provider string, files []File) ([]report.FileResult, error) {
	results := make([]report.FileResult, 0, len(files))
	for _, f := range files {
		status, err := compare(root, f)
		if err != nil {
			return results, err
		}
		results = append(results, report.FileResult{Provider: provider, Path: f.Path, Status: status, Bytes: len(f.Data)})
	}
	return results, nil
}

func compare(root string, f File) (report.FileStatus, error) {
	full := filepath.Join(root, f.Path)
	existing, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return report.StatusMissing, nil
		}
		return "", fmt.Errorf("read %q: %w", full, err)
	}
	if bytes.Equal(existing, f.Data) {
		return report.StatusUnchanged, nil
	}
	return report.StatusDrift, nil
}
