//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quynhluu-labs/quynhluu/internal/apperr"
	"github.com/quynhluu-labs/quynhluu/internal/cli"
	"github.com/quynhluu-labs/quynhluu/internal/config"
	"github.com/quynhluu-labs/quynhluu/internal/ui"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	ConfigDir string // QUYNHLUU_CONFIG_DIR, settings and the version cache
	WorkDir   string // working directory the CLI runs in
	Stdout    bytes.Buffer
	Stderr    bytes.Buffer
}

// setupTestEnv creates isolated temp directories and points the CLI at them
// through the environment. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		ConfigDir: t.TempDir(),
		WorkDir:   t.TempDir(),
	}

	t.Setenv("QUYNHLUU_CONFIG_DIR", env.ConfigDir)
	t.Setenv("QUYNHLUU_GIT_AUTHOR_NAME", "Integration")
	t.Setenv("QUYNHLUU_GIT_AUTHOR_EMAIL", "integration@example.com")
	for _, k := range []string{"QUYNHLUU_DEFAULT_AGENT", "QUYNHLUU_DEFAULT_SCRIPT", "QUYNHLUU_TEMPLATE_SOURCE"} {
		t.Setenv(k, "")
	}

	return env
}

// run executes argv the way the binary does: settings loaded from the
// environment, a fresh App, and the error mapped to an exit code.
func (env *testEnv) run(t *testing.T, args ...string) int {
	t.Helper()

	settings, err := config.Load(config.Dir())
	if err != nil {
		t.Fatalf("loading settings: %v", err)
	}

	interactive := false
	console := ui.New(ui.Options{
		In:          strings.NewReader(""),
		Out:         &env.Stdout,
		Err:         &env.Stderr,
		Interactive: &interactive,
		NoColor:     true,
	})

	app, err := cli.New(cli.Deps{
		Build:    cli.BuildInfo{Version: "0.0.0-test", Commit: "none", Date: "unknown"},
		Settings: settings,
		Console:  console,
		Getwd:    func() (string, error) { return env.WorkDir, nil },
	})
	if err != nil {
		t.Fatalf("building app: %v", err)
	}

	if err := app.Run(context.Background(), args); err != nil {
		console.Error("%v", err)
		return apperr.ExitCode(err)
	}
	return apperr.ExitOK
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
