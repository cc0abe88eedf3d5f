package templates

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/quynhluu-labs/quynhluu/internal/apperr"
)

// Dir loads a template from a local directory, copying its files verbatim.
type Dir struct {
	Path string
}

// Load reads every regular file under d.Path except VCS metadata.
func (d *Dir) Load(ctx context.Context, req Request) (*Template, error) {
	t, err := d.load(ctx)
	if err != nil {
		return nil, &apperr.TemplateFetchError{Source: d.Path, Err: err}
	}
	return t, nil
}

func (d *Dir) load(ctx context.Context) (*Template, error) {
	info, err := os.Stat(d.Path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", d.Path)
	}

	t := &Template{Source: d.Path}
	err = filepath.WalkDir(d.Path, func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			if entry.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(d.Path, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", rel, err)
		}
		if rel == ManifestFile {
			t.applyManifest(data)
			return nil
		}

		fi, err := entry.Info()
		if err != nil {
			return err
		}
		t.Files = append(t.Files, File{Path: rel, Data: data, Mode: normalizeMode(fi.Mode())})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(t.Files) == 0 {
		return nil, fmt.Errorf("template directory %s contains no files", d.Path)
	}
	if t.Name == "" {
		t.Name = filepath.Base(d.Path)
	}

	t.sortFiles()
	return t, nil
}
