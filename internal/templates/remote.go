package templates

import (
	"context"

	"github.com/quynhluu-labs/quynhluu/internal/apperr"
	"github.com/quynhluu-labs/quynhluu/internal/github"
)

// Remote loads the template archive published on a GitHub release.
type Remote struct {
	Client *github.Client
	Repo   string // "owner/name"
	Prefix string // asset name prefix
	Tag    string // empty for the latest release
}

// Load resolves the release, downloads the matching archive into memory,
// and unpacks it. Every failure is a TemplateFetchError.
func (r *Remote) Load(ctx context.Context, req Request) (*Template, error) {
	source := "github.com/" + r.Repo

	var (
		release *github.Release
		err     error
	)
	if r.Tag != "" {
		release, err = r.Client.ReleaseByTag(ctx, r.Repo, r.Tag)
	} else {
		release, err = r.Client.LatestRelease(ctx, r.Repo)
	}
	if err != nil {
		return nil, &apperr.TemplateFetchError{Source: source, Err: err}
	}

	asset, err := github.SelectTemplateAsset(release, r.Prefix, req.Agent.Key, req.Script)
	if err != nil {
		return nil, &apperr.TemplateFetchError{Source: source, Err: err}
	}

	data, err := r.Client.Download(ctx, asset)
	if err != nil {
		return nil, &apperr.TemplateFetchError{Source: source, Err: err}
	}

	t, err := FromZip(data)
	if err != nil {
		return nil, &apperr.TemplateFetchError{Source: asset.Name, Err: err}
	}

	t.Source = source + "@" + release.Version
	if t.Name == "" {
		t.Name = asset.Name
	}
	if t.Version == "" {
		t.Version = release.Version
	}
	return t, nil
}
