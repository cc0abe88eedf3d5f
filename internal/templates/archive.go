package templates

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
)

// maxFileSize caps a single archive entry after decompression.
const maxFileSize = 16 << 20

// FromZip unpacks a template archive held in memory. When every entry sits
// under one top-level directory, that directory is stripped.
func FromZip(data []byte) (*Template, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening zip archive: %w", err)
	}

	var entries []*zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, f)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("archive contains no files")
	}

	names := make([]string, len(entries))
	for i, f := range entries {
		clean, err := safePath(f.Name)
		if err != nil {
			return nil, err
		}
		names[i] = clean
	}
	strip := commonRoot(names)

	t := &Template{}
	for i, f := range entries {
		rel := strings.TrimPrefix(names[i], strip)

		data, err := readEntry(f)
		if err != nil {
			return nil, err
		}

		if rel == ManifestFile {
			t.applyManifest(data)
			continue
		}
		t.Files = append(t.Files, File{Path: rel, Data: data, Mode: normalizeMode(f.Mode())})
	}

	t.sortFiles()
	return t, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	if f.UncompressedSize64 > maxFileSize {
		return nil, fmt.Errorf("archive entry %s is too large (%d bytes)", f.Name, f.UncompressedSize64)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening archive entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading archive entry %s: %w", f.Name, err)
	}
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("archive entry %s is too large", f.Name)
	}
	return data, nil
}

// safePath rejects entries that would land outside the project root.
func safePath(name string) (string, error) {
	name = strings.ReplaceAll(name, `\`, "/")
	if name == "" || strings.HasPrefix(name, "/") || (len(name) > 1 && name[1] == ':') {
		return "", fmt.Errorf("archive entry %q has an absolute path", name)
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return "", fmt.Errorf("archive entry %q escapes the project root", name)
		}
	}
	return path.Clean(name), nil
}

// commonRoot returns "dir/" when every name lives under the same top-level
// directory, and "" otherwise. Dot-directories are project content, never a
// wrapper.
func commonRoot(names []string) string {
	var root string
	for _, n := range names {
		i := strings.Index(n, "/")
		if i < 0 || strings.HasPrefix(n, ".") {
			return ""
		}
		top := n[:i+1]
		if root == "" {
			root = top
		} else if top != root {
			return ""
		}
	}
	return root
}
