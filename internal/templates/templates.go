package templates

import (
	"context"
	"io/fs"
	"sort"
	"time"

	"github.com/quynhluu-labs/quynhluu/internal/agent"
)

// ManifestFile is the optional metadata file at the root of a template. It
// is parsed and validated but never written into a project.
const ManifestFile = "template.yaml"

// File is one file of a materialized template. Path is slash-separated and
// relative to the project root.
type File struct {
	Path string
	Data []byte
	Mode fs.FileMode
}

// Template is a fully loaded template, held in memory so that acquiring it
// can fail without touching the target directory.
type Template struct {
	Name     string
	Version  string
	Source   string
	Files    []File
	Manifest *Manifest
	Warnings []string
}

// Request carries the choices that select and render a template.
type Request struct {
	Agent       agent.Agent
	Script      string
	ProjectName string
	Now         time.Time
}

// Source acquires template content.
type Source interface {
	Load(ctx context.Context, req Request) (*Template, error)
}

func (t *Template) sortFiles() {
	sort.Slice(t.Files, func(i, j int) bool {
		return t.Files[i].Path < t.Files[j].Path
	})
}

// Paths returns the file paths of the template in order.
func (t *Template) Paths() []string {
	paths := make([]string, len(t.Files))
	for i, f := range t.Files {
		paths[i] = f.Path
	}
	return paths
}

// applyManifest parses raw as the template manifest, records validation
// issues as warnings, and fills Name/Version when the source did not.
func (t *Template) applyManifest(raw []byte) {
	m, warnings := LoadManifest(raw)
	t.Warnings = append(t.Warnings, warnings...)
	if m == nil {
		return
	}
	t.Manifest = m
	if t.Name == "" {
		t.Name = m.Name
	}
	if t.Version == "" {
		t.Version = m.Version
	}
}

// normalizeMode keeps only whether a file is executable.
func normalizeMode(mode fs.FileMode) fs.FileMode {
	if mode.Perm()&0111 != 0 {
		return 0755
	}
	return 0644
}
