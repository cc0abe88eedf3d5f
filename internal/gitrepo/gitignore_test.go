package gitrepo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAddToGitignore(t *testing.T) {
	dir := t.TempDir()

	gitignorePath := filepath.Join(dir, IgnoreFile)
	initial := "node_modules/\n.env\n"
	if err := os.WriteFile(gitignorePath, []byte(initial), 0o644); err != nil {
		t.Fatal(err)
	}

	changed, err := AddToGitignore(dir, "agent credentials", ".claude/")
	if err != nil {
		t.Fatalf("AddToGitignore() error = %v", err)
	}
	if !changed {
		t.Error("expected the file to change")
	}

	content, err := os.ReadFile(gitignorePath)
	if err != nil {
		t.Fatal(err)
	}

	want := "node_modules/\n.env\n\n# agent credentials\n.claude/\n"
	if string(content) != want {
		t.Errorf(".gitignore = %q, want %q", content, want)
	}
}

func TestAddToGitignore_Idempotent(t *testing.T) {
	dir := t.TempDir()

	gitignorePath := filepath.Join(dir, IgnoreFile)
	if err := os.WriteFile(gitignorePath, []byte("dist/\n  .claude/  \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	changed, err := AddToGitignore(dir, "", ".claude/")
	if err != nil {
		t.Fatalf("AddToGitignore() error = %v", err)
	}
	if changed {
		t.Error("an existing pattern must be a no-op")
	}

	content, _ := os.ReadFile(gitignorePath)
	if count := strings.Count(string(content), ".claude/"); count != 1 {
		t.Errorf("expected exactly 1 occurrence, found %d in:\n%s", count, content)
	}
}

func TestAddToGitignore_CreatesFileIfMissing(t *testing.T) {
	dir := t.TempDir()

	if _, err := AddToGitignore(dir, "", ".gemini/"); err != nil {
		t.Fatalf("AddToGitignore() error = %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, IgnoreFile))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != ".gemini/\n" {
		t.Errorf(".gitignore = %q", content)
	}
}

func TestAddToGitignore_NoTrailingNewline(t *testing.T) {
	dir := t.TempDir()

	gitignorePath := filepath.Join(dir, IgnoreFile)
	if err := os.WriteFile(gitignorePath, []byte("dist/"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := AddToGitignore(dir, "", ".roo/"); err != nil {
		t.Fatalf("AddToGitignore() error = %v", err)
	}

	content, _ := os.ReadFile(gitignorePath)
	if string(content) != "dist/\n\n.roo/\n" {
		t.Errorf(".gitignore = %q", content)
	}
}
