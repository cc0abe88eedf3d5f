// Package tlsctx builds the single certificate-validating TLS configuration
// shared by every outbound HTTPS request in a process run.
package tlsctx

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/quynhluu-labs/quynhluu/internal/apperr"
)

// Provider lazily constructs and caches a *tls.Config. The zero value is not
// usable; call New.
type Provider struct {
	caBundle  string
	loadRoots func() (*x509.CertPool, error)

	once sync.Once
	cfg  *tls.Config
	err  error
}

// Option configures a Provider.
type Option func(*Provider)

// WithCABundle appends the PEM certificates in path to the system roots.
func WithCABundle(path string) Option {
	return func(p *Provider) {
		p.caBundle = path
	}
}

// WithRootLoader replaces the system trust store loader (useful for testing).
func WithRootLoader(fn func() (*x509.CertPool, error)) Option {
	return func(p *Provider) {
		p.loadRoots = fn
	}
}

// New creates a Provider. Nothing is loaded until Config is first called.
func New(opts ...Option) *Provider {
	p := &Provider{loadRoots: x509.SystemCertPool}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Config returns the cached TLS configuration, building it on first use.
// The result is shared; callers must not modify it.
func (p *Provider) Config() (*tls.Config, error) {
	p.once.Do(func() {
		p.cfg, p.err = p.build()
	})
	return p.cfg, p.err
}

func (p *Provider) build() (*tls.Config, error) {
	roots, err := p.loadRoots()
	if err != nil {
		return nil, &apperr.TLSInitError{Err: fmt.Errorf("loading system roots: %w", err)}
	}
	if roots == nil {
		roots = x509.NewCertPool()
	}

	if p.caBundle != "" {
		pem, err := os.ReadFile(p.caBundle)
		if err != nil {
			return nil, &apperr.TLSInitError{Err: fmt.Errorf("reading CA bundle: %w", err)}
		}
		if !roots.AppendCertsFromPEM(pem) {
			return nil, &apperr.TLSInitError{Err: fmt.Errorf("no certificates found in CA bundle %s", p.caBundle)}
		}
	}

	if roots.Equal(x509.NewCertPool()) {
		return nil, &apperr.TLSInitError{Err: errors.New("trust store is empty")}
	}

	return &tls.Config{
		RootCAs:    roots,
		MinVersion: tls.VersionTLS12,
	}, nil
}

// HTTPClient returns a client that verifies peers against the cached TLS
// configuration, honors proxy environment variables, and gives up after
// timeout.
func (p *Provider) HTTPClient(timeout time.Duration) (*http.Client, error) {
	cfg, err := p.Config()
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSClientConfig:       cfg,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}, nil
}
