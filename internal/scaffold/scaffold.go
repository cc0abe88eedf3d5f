package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/quynhluu-labs/quynhluu/internal/platform"
	"github.com/quynhluu-labs/quynhluu/internal/templates"
)

// FileError records one file that could not be written.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Result holds the outcome of writing a template.
type Result struct {
	OutputDir   string
	Written     []string
	Overwritten []string
	Failed      []FileError
}

// PartialWriteError is returned when some files failed. The Result still
// lists everything that was written.
type PartialWriteError struct {
	Failed int
	Total  int
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("%d of %d files could not be written", e.Failed, e.Total)
}

// Write materializes files into the target directory, creating it if
// needed. Files are written one after another; a failure is recorded and
// the remaining files are still attempted. Nothing is rolled back.
func Write(t *ProjectTarget, files []templates.File) (*Result, error) {
	if err := os.MkdirAll(t.Path, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	result := &Result{OutputDir: t.Path}

	for _, f := range files {
		overwritten, err := writeFile(t.Path, f)
		if err != nil {
			result.Failed = append(result.Failed, FileError{Path: f.Path, Err: err})
			continue
		}
		result.Written = append(result.Written, f.Path)
		if overwritten {
			result.Overwritten = append(result.Overwritten, f.Path)
		}
	}

	if len(result.Failed) > 0 {
		return result, &PartialWriteError{Failed: len(result.Failed), Total: len(files)}
	}
	return result, nil
}

func writeFile(root string, f templates.File) (bool, error) {
	dest := filepath.Join(root, filepath.FromSlash(f.Path))
	if !platform.Within(root, dest) || dest == filepath.Clean(root) {
		return false, fmt.Errorf("path escapes the project directory")
	}
	// A symlinked directory already in the target must not carry writes
	// outside it, so containment is checked again on the resolved path.
	inside, err := platform.ResolvesWithin(root, dest)
	if err != nil {
		return false, fmt.Errorf("resolving path: %w", err)
	}
	if !inside {
		return false, fmt.Errorf("path leaves the project directory through a symlink")
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return false, fmt.Errorf("creating directory: %w", err)
	}

	overwritten := false
	if info, err := os.Stat(dest); err == nil {
		if info.IsDir() {
			return false, fmt.Errorf("a directory already exists at this path")
		}
		overwritten = true
	}

	if err := platform.WriteFile(dest, f.Data, f.Mode); err != nil {
		return false, err
	}
	return overwritten, nil
}
