package updater

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/quynhluu-labs/quynhluu/internal/github"
)

func releaseServer(t *testing.T, tag string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/quynhluu-labs/quynhluu/releases/latest" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `{"tag_name":%q,"html_url":"https://example.test/releases/%s","assets":[]}`, tag, tag)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckWritesCache(t *testing.T) {
	srv := releaseServer(t, "v1.3.0")
	dir := t.TempDir()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	u := New("1.2.0", "quynhluu-labs/quynhluu",
		github.New(github.WithAPIBase(srv.URL), github.WithHTTPClient(srv.Client())),
		WithClock(func() time.Time { return fixed }))

	result, err := u.Check(context.Background(), dir)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if !result.UpdateAvailable || result.LatestVersion != "v1.3.0" {
		t.Errorf("unexpected result: %+v", result)
	}

	cached, err := LoadCache(dir)
	if err != nil || cached == nil {
		t.Fatalf("LoadCache() = %v, %v", cached, err)
	}
	if !cached.CheckedAt.Equal(fixed) {
		t.Errorf("CheckedAt = %v, want %v", cached.CheckedAt, fixed)
	}
	if cached.ReleaseURL != "https://example.test/releases/v1.3.0" {
		t.Errorf("ReleaseURL = %q", cached.ReleaseURL)
	}
}

func TestCheckOnLatest(t *testing.T) {
	srv := releaseServer(t, "v1.2.0")
	u := New("v1.2.0", "quynhluu-labs/quynhluu",
		github.New(github.WithAPIBase(srv.URL), github.WithHTTPClient(srv.Client())))

	result, err := u.Check(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if result.UpdateAvailable {
		t.Error("expected no update")
	}
}

func TestCheckDevBuild(t *testing.T) {
	srv := releaseServer(t, "v1.2.0")
	u := New("dev", "quynhluu-labs/quynhluu",
		github.New(github.WithAPIBase(srv.URL), github.WithHTTPClient(srv.Client())))

	if _, err := u.Check(context.Background(), t.TempDir()); err == nil {
		t.Error("expected error comparing a dev build")
	}
}

func TestCheckNetworkError(t *testing.T) {
	srv := releaseServer(t, "v1.2.0")
	dir := t.TempDir()
	u := New("1.0.0", "someone/else",
		github.New(github.WithAPIBase(srv.URL), github.WithHTTPClient(srv.Client())))

	if _, err := u.Check(context.Background(), dir); err == nil {
		t.Fatal("expected error for a missing release")
	}
	if cache, _ := LoadCache(dir); cache != nil {
		t.Error("a failed check must not write the cache")
	}
}

func TestPrintNotice(t *testing.T) {
	dir := t.TempDir()
	cache := &VersionCache{
		LatestVersion:   "v1.3.0",
		CurrentVersion:  "1.2.0",
		CheckedAt:       time.Now(),
		UpdateAvailable: true,
	}
	if err := SaveCache(dir, cache); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if !PrintNotice(&buf, dir, "1.2.0") {
		t.Fatal("expected a notice")
	}
	out := buf.String()
	if !strings.Contains(out, "1.2.0 -> v1.3.0") {
		t.Errorf("notice = %q", out)
	}
	if !strings.Contains(out, "releases/latest") {
		t.Errorf("notice should fall back to the releases page: %q", out)
	}

	buf.Reset()
	if PrintNotice(&buf, dir, "1.3.0") {
		t.Error("a cache written by another version must be ignored")
	}

	cache.CheckedAt = time.Now().Add(-StaleNoticeAge - time.Hour)
	SaveCache(dir, cache)
	if PrintNotice(&buf, dir, "1.2.0") {
		t.Error("an old verdict must not be shown")
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestPrintNoticeWithoutCache(t *testing.T) {
	var buf bytes.Buffer
	if PrintNotice(&buf, t.TempDir(), "1.0.0") {
		t.Error("no cache means no notice")
	}
}
