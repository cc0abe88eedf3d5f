package updater

import (
	"fmt"
	"io"

	"github.com/quynhluu-labs/quynhluu/internal/branding"
)

// PrintNotice prints an update notice when the cache says a newer release
// exists for currentVersion. It reads only the cache. A cache written by a
// different binary version is ignored because its verdict may no longer hold.
func PrintNotice(w io.Writer, configDir, currentVersion string) bool {
	cache, err := LoadCache(configDir)
	if err != nil || cache == nil || !cache.UpdateAvailable {
		return false
	}
	if cache.CurrentVersion != currentVersion {
		return false
	}
	if IsCacheStale(cache, StaleNoticeAge) {
		return false
	}
	PrintUpdateBanner(w, cache)
	return true
}

// PrintUpdateBanner prints the update notification to w.
func PrintUpdateBanner(w io.Writer, cache *VersionCache) {
	fmt.Fprintf(w, "\nUpdate available: %s -> %s\n", cache.CurrentVersion, cache.LatestVersion)
	url := cache.ReleaseURL
	if url == "" {
		url = fmt.Sprintf("https://github.com/%s/releases/latest", branding.GitHubRepo())
	}
	fmt.Fprintf(w, "    Download it from %s\n\n", url)
}
