package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	defaultAPIBase = "https://api.github.com"

	// MaxAssetSize caps how much of a release asset is buffered in memory.
	MaxAssetSize = 64 << 20
)

// Release represents a GitHub release.
type Release struct {
	Version   string    `json:"tag_name"`
	Assets    []Asset   `json:"assets"`
	Published time.Time `json:"published_at"`
	HTMLURL   string    `json:"html_url"`
}

// Asset represents a downloadable file attached to a release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// Client talks to the GitHub releases API.
type Client struct {
	httpClient *http.Client
	apiBase    string
	token      string
	userAgent  string
	log        *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client. Production callers pass the client
// built by tlsctx so every request shares one verified TLS context.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithAPIBase overrides the API root (useful for testing).
func WithAPIBase(base string) Option {
	return func(cl *Client) {
		cl.apiBase = strings.TrimRight(base, "/")
	}
}

// WithToken authenticates requests for higher rate limits.
func WithToken(token string) Option {
	return func(cl *Client) {
		cl.token = token
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// WithLogger routes request diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(cl *Client) {
		cl.log = l
	}
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		apiBase:    defaultAPIBase,
		userAgent:  "quynhluu-cli",
		log:        log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token picks the first non-empty token from explicit, configured, and the
// GH_TOKEN / GITHUB_TOKEN environment variables.
func Token(explicit, configured string) string {
	for _, t := range []string{explicit, configured, os.Getenv("GH_TOKEN"), os.Getenv("GITHUB_TOKEN")} {
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}
	return ""
}

// LatestRelease fetches the latest release of repo ("owner/name").
func (c *Client) LatestRelease(ctx context.Context, repo string) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.apiBase, repo)
	return c.fetchRelease(ctx, url)
}

// ReleaseByTag fetches a release by tag. The tag is tried as given first;
// if no such release exists and it has no "v" prefix, "v"+tag is tried.
func (c *Client) ReleaseByTag(ctx context.Context, repo, tag string) (*Release, error) {
	release, err := c.fetchRelease(ctx, c.tagURL(repo, tag))
	if err == nil || !errors.Is(err, ErrNotFound) || strings.HasPrefix(tag, "v") {
		return release, err
	}
	c.log.Debug("retrying with v prefix", "tag", tag)
	return c.fetchRelease(ctx, c.tagURL(repo, "v"+tag))
}

func (c *Client) tagURL(repo, tag string) string {
	return fmt.Sprintf("%s/repos/%s/releases/tags/%s", c.apiBase, repo, tag)
}

func (c *Client) newRequest(ctx context.Context, url, accept string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) fetchRelease(ctx context.Context, url string) (*Release, error) {
	req, err := c.newRequest(ctx, url, "application/vnd.github+json")
	if err != nil {
		return nil, err
	}

	c.log.Debug("fetching release", "url", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching release: %w", err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, fmt.Errorf("parsing release JSON: %w", err)
	}
	c.log.Debug("release found", "version", release.Version, "assets", len(release.Assets))
	return &release, nil
}

// Download fetches an asset fully into memory. Nothing is written to disk.
func (c *Client) Download(ctx context.Context, asset Asset) ([]byte, error) {
	if asset.Size > MaxAssetSize {
		return nil, fmt.Errorf("asset %s is %d bytes, above the %d byte limit", asset.Name, asset.Size, MaxAssetSize)
	}

	req, err := c.newRequest(ctx, asset.DownloadURL, "application/octet-stream")
	if err != nil {
		return nil, err
	}

	c.log.Debug("downloading asset", "name", asset.Name, "url", asset.DownloadURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", asset.Name, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxAssetSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading download stream: %w", err)
	}
	if len(data) > MaxAssetSize {
		return nil, fmt.Errorf("asset %s exceeds the %d byte limit", asset.Name, MaxAssetSize)
	}
	c.log.Debug("downloaded asset", "name", asset.Name, "bytes", len(data))
	return data, nil
}

// ErrNotFound is wrapped by errors for a 404 response.
var ErrNotFound = errors.New("not found")

func statusError(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w (404) at %s", ErrNotFound, resp.Request.URL)
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		if resp.Header.Get("X-RateLimit-Remaining") == "0" || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("GitHub API rate limit exceeded; set GITHUB_TOKEN or pass --github-token")
		}
		return fmt.Errorf("access denied (%d) at %s", resp.StatusCode, resp.Request.URL)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("GitHub returned status %d", resp.StatusCode)
	}
	return nil
}
