package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/quynhluu-labs/quynhluu/internal/apperr"
	"github.com/quynhluu-labs/quynhluu/internal/templates"
)

func TestResolveTargetNewProject(t *testing.T) {
	cwd := t.TempDir()

	target, err := ResolveTarget(cwd, "demo", false)
	if err != nil {
		t.Fatalf("ResolveTarget() error: %v", err)
	}
	if target.Path != filepath.Join(cwd, "demo") {
		t.Errorf("Path = %q", target.Path)
	}
	if target.Name != "demo" {
		t.Errorf("Name = %q, want demo", target.Name)
	}
	if target.Exists || target.IsCurrentDir || !target.Empty() {
		t.Errorf("unexpected target state: %+v", target)
	}
}

func TestResolveTargetHereAndDotAreEquivalent(t *testing.T) {
	cwd := t.TempDir()
	os.WriteFile(filepath.Join(cwd, "existing.txt"), []byte("x"), 0644)

	dot, err := ResolveTarget(cwd, ".", false)
	if err != nil {
		t.Fatalf("ResolveTarget(.) error: %v", err)
	}
	here, err := ResolveTarget(cwd, "", true)
	if err != nil {
		t.Fatalf("ResolveTarget(--here) error: %v", err)
	}
	both, err := ResolveTarget(cwd, ".", true)
	if err != nil {
		t.Fatalf("ResolveTarget(. --here) error: %v", err)
	}

	if *dot != *here || *here != *both {
		t.Errorf("targets differ:\n  .      %+v\n  --here %+v\n  both   %+v", dot, here, both)
	}
	if !here.IsCurrentDir || !here.Exists || here.Entries != 1 {
		t.Errorf("unexpected target state: %+v", here)
	}
	if here.Name != filepath.Base(cwd) {
		t.Errorf("Name = %q, want %q", here.Name, filepath.Base(cwd))
	}
}

func TestResolveTargetUsageErrors(t *testing.T) {
	cwd := t.TempDir()
	os.WriteFile(filepath.Join(cwd, "afile"), []byte("x"), 0644)

	tests := []struct {
		name    string
		project string
		here    bool
	}{
		{"name and here", "demo", true},
		{"neither", "", false},
		{"path", "a/b", false},
		{"parent", "..", false},
		{"flag-like", "-rf", false},
		{"padded", " demo", false},
		{"existing file", "afile", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveTarget(cwd, tt.project, tt.here)
			var usage *apperr.UsageError
			if !errors.As(err, &usage) {
				t.Errorf("expected UsageError, got %v", err)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(cwd, "demo")); !os.IsNotExist(err) {
		t.Error("usage errors must not create directories")
	}
}

func TestGuard(t *testing.T) {
	empty := &ProjectTarget{Path: "/p", Entries: 0}
	full := &ProjectTarget{Path: "/p", Exists: true, Entries: 3}

	if err := Guard(empty, false, nil); err != nil {
		t.Errorf("empty target: %v", err)
	}
	if err := Guard(full, true, nil); err != nil {
		t.Errorf("forced: %v", err)
	}

	err := Guard(full, false, nil)
	var exists *apperr.TargetExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("expected TargetExistsError, got %v", err)
	}
	if exists.Entries != 3 {
		t.Errorf("Entries = %d, want 3", exists.Entries)
	}

	var asked string
	yes := func(q string) (bool, error) { asked = q; return true, nil }
	if err := Guard(full, false, yes); err != nil {
		t.Errorf("confirmed: %v", err)
	}
	if !strings.Contains(asked, "not empty") {
		t.Errorf("question = %q", asked)
	}

	no := func(string) (bool, error) { return false, nil }
	if err := Guard(full, false, no); !errors.As(err, &exists) {
		t.Errorf("declined: expected TargetExistsError, got %v", err)
	}

	boom := errors.New("tty gone")
	failing := func(string) (bool, error) { return false, boom }
	if err := Guard(full, false, failing); !errors.Is(err, boom) {
		t.Errorf("confirm error should propagate, got %v", err)
	}
}

func sampleFiles() []templates.File {
	return []templates.File{
		{Path: ".claude/commands/quynhluu.specify.md", Data: []byte("specify"), Mode: 0644},
		{Path: ".quynhluu/memory/constitution.md", Data: []byte("# demo"), Mode: 0644},
		{Path: ".quynhluu/scripts/bash/create-new-feature.sh", Data: []byte("#!/bin/sh"), Mode: 0755},
	}
}

func TestWriteCreatesTarget(t *testing.T) {
	target, err := ResolveTarget(t.TempDir(), "demo", false)
	if err != nil {
		t.Fatal(err)
	}

	result, err := Write(target, sampleFiles())
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	if len(result.Written) != 3 || len(result.Failed) != 0 || len(result.Overwritten) != 0 {
		t.Errorf("unexpected result: %+v", result)
	}

	content := readGenerated(t, target.Path, ".quynhluu/memory/constitution.md")
	assertContains(t, content, "# demo")

	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(target.Path, ".quynhluu/scripts/bash/create-new-feature.sh"))
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0755 {
			t.Errorf("script mode = %o, want 755", info.Mode().Perm())
		}
	}
}

func TestWriteOverwritesWhenMerging(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, ".quynhluu/memory"), 0755)
	os.WriteFile(filepath.Join(dir, ".quynhluu/memory/constitution.md"), []byte("old"), 0600)
	os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("mine"), 0644)

	target, err := ResolveTarget(dir, "", true)
	if err != nil {
		t.Fatal(err)
	}

	result, err := Write(target, sampleFiles())
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if len(result.Overwritten) != 1 || result.Overwritten[0] != ".quynhluu/memory/constitution.md" {
		t.Errorf("Overwritten = %v", result.Overwritten)
	}
	assertContains(t, readGenerated(t, dir, "keep.txt"), "mine")
	assertContains(t, readGenerated(t, dir, ".quynhluu/memory/constitution.md"), "# demo")
}

func TestWriteReportsPartialFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory where a file should go, and a regular file where a
	// directory should go.
	os.MkdirAll(filepath.Join(dir, "blocked.md"), 0755)
	os.WriteFile(filepath.Join(dir, "notadir"), []byte("x"), 0644)

	target, err := ResolveTarget(dir, "", true)
	if err != nil {
		t.Fatal(err)
	}

	files := []templates.File{
		{Path: "a.md", Data: []byte("a")},
		{Path: "blocked.md", Data: []byte("b")},
		{Path: "notadir/c.md", Data: []byte("c")},
		{Path: "d.md", Data: []byte("d")},
	}

	result, err := Write(target, files)
	var partial *PartialWriteError
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialWriteError, got %v", err)
	}
	if partial.Failed != 2 || partial.Total != 4 {
		t.Errorf("partial = %+v", partial)
	}
	if strings.Join(result.Written, ",") != "a.md,d.md" {
		t.Errorf("Written = %v", result.Written)
	}
	if len(result.Failed) != 2 || result.Failed[0].Path != "blocked.md" || result.Failed[1].Path != "notadir/c.md" {
		t.Errorf("Failed = %v", result.Failed)
	}
}

func TestWriteRejectsEscapingPaths(t *testing.T) {
	parent := t.TempDir()
	target, err := ResolveTarget(parent, "demo", false)
	if err != nil {
		t.Fatal(err)
	}

	result, err := Write(target, []templates.File{{Path: "../outside.txt", Data: []byte("x")}})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(result.Failed) != 1 {
		t.Errorf("Failed = %v", result.Failed)
	}
	if _, err := os.Stat(filepath.Join(parent, "outside.txt")); !os.IsNotExist(err) {
		t.Error("file escaped the project directory")
	}
}

func TestWriteRefusesSymlinkedDirLeavingTarget(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on Windows")
	}

	base := t.TempDir()
	dir := filepath.Join(base, "proj")
	outside := filepath.Join(base, "elsewhere")
	os.MkdirAll(dir, 0755)
	os.MkdirAll(outside, 0755)
	if err := os.Symlink(outside, filepath.Join(dir, ".claude")); err != nil {
		t.Fatal(err)
	}

	target, err := ResolveTarget(dir, "", true)
	if err != nil {
		t.Fatal(err)
	}

	result, err := Write(target, []templates.File{
		{Path: ".claude/commands/quynhluu.plan.md", Data: []byte("plan")},
		{Path: "README.md", Data: []byte("readme")},
	})
	var partial *PartialWriteError
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialWriteError, got %v", err)
	}
	if len(result.Failed) != 1 || result.Failed[0].Path != ".claude/commands/quynhluu.plan.md" {
		t.Errorf("Failed = %v", result.Failed)
	}
	if strings.Join(result.Written, ",") != "README.md" {
		t.Errorf("Written = %v", result.Written)
	}
	if _, err := os.Stat(filepath.Join(outside, "commands")); !os.IsNotExist(err) {
		t.Error("a directory was created outside the project through the symlink")
	}
}

// ─── Test Helpers ──────────────────────────────────────────────────

func readGenerated(t *testing.T, dir, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(filename)))
	if err != nil {
		t.Fatalf("reading %s: %v", filename, err)
	}
	return string(data)
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q\n--- content ---\n%s", substr, content)
	}
}
