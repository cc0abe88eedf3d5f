package updater

import (
	"context"
	"fmt"
	"time"

	"github.com/quynhluu-labs/quynhluu/internal/github"
)

// Updater checks the CLI repository for newer releases.
type Updater struct {
	currentVersion string
	repo           string
	client         *github.Client
	now            func() time.Time
}

// Option configures an Updater.
type Option func(*Updater)

// WithClock overrides the time source (useful for testing).
func WithClock(now func() time.Time) Option {
	return func(u *Updater) {
		u.now = now
	}
}

// New creates an Updater for repo ("owner/name") at currentVersion.
func New(currentVersion, repo string, client *github.Client, opts ...Option) *Updater {
	u := &Updater{
		currentVersion: currentVersion,
		repo:           repo,
		client:         client,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Check fetches the latest release, compares it with the running version,
// and stores the result in configDir. A failed cache write is not an error;
// the caller still gets the fresh result.
func (u *Updater) Check(ctx context.Context, configDir string) (*VersionCache, error) {
	release, err := u.client.LatestRelease(ctx, u.repo)
	if err != nil {
		return nil, err
	}

	available, err := IsUpdateAvailable(u.currentVersion, release.Version)
	if err != nil {
		return nil, fmt.Errorf("comparing versions: %w", err)
	}

	cache := &VersionCache{
		LatestVersion:   release.Version,
		CurrentVersion:  u.currentVersion,
		ReleaseURL:      release.HTMLURL,
		CheckedAt:       u.now(),
		UpdateAvailable: available,
	}
	_ = SaveCache(configDir, cache)
	return cache, nil
}
