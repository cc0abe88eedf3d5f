package updater

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	cacheFileName = "version-check.json"

	// DefaultCacheMaxAge is how long a check result is considered current.
	DefaultCacheMaxAge = 24 * time.Hour
	// StaleNoticeAge is how long a cached "update available" verdict is
	// still shown without a fresh check.
	StaleNoticeAge = 14 * 24 * time.Hour
)

// VersionCache holds the result of the last version check.
type VersionCache struct {
	LatestVersion   string    `json:"latest_version"`
	CurrentVersion  string    `json:"current_version"`
	ReleaseURL      string    `json:"release_url,omitempty"`
	CheckedAt       time.Time `json:"checked_at"`
	UpdateAvailable bool      `json:"update_available"`
}

// CachePath returns the cache file location inside configDir.
func CachePath(configDir string) string {
	return filepath.Join(configDir, cacheFileName)
}

// LoadCache reads the version cache from the config directory.
// Returns nil, nil if the cache file does not exist (first run).
func LoadCache(configDir string) (*VersionCache, error) {
	data, err := os.ReadFile(CachePath(configDir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading version cache: %w", err)
	}

	var cache VersionCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("parsing version cache: %w", err)
	}
	return &cache, nil
}

// SaveCache writes the version cache to the config directory. The file is
// replaced atomically so a concurrent reader never sees a torn write.
func SaveCache(configDir string, cache *VersionCache) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling version cache: %w", err)
	}

	tmp, err := os.CreateTemp(configDir, cacheFileName+".*")
	if err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing version cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), CachePath(configDir)); err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	return nil
}

// IsCacheStale returns true if the cache is older than maxAge or nil.
func IsCacheStale(cache *VersionCache, maxAge time.Duration) bool {
	if cache == nil {
		return true
	}
	return time.Since(cache.CheckedAt) > maxAge
}
