package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/quynhluu-labs/quynhluu/internal/apperr"
	"github.com/quynhluu-labs/quynhluu/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyTemplateRepo   = "template_repo"
	KeyTemplateSource = "template_source"
	KeyDefaultAgent   = "default_agent"
	KeyDefaultScript  = "default_script"
	KeyHTTPTimeout    = "http_timeout"
	KeyGitHubToken    = "github_token"
	KeyCABundle       = "ca_bundle"
	KeyGitAuthorName  = "git_author_name"
	KeyGitAuthorEmail = "git_author_email"
)

// Template sources accepted by template_source.
const (
	SourceRemote  = "remote"
	SourceBundled = "bundled"
)

// DefaultHTTPTimeout bounds connect and read time of every outbound request.
const DefaultHTTPTimeout = 30 * time.Second

// MinHTTPTimeout is the smallest accepted http_timeout.
const MinHTTPTimeout = time.Second

var knownKeys = map[string]bool{
	KeyTemplateRepo:   true,
	KeyTemplateSource: true,
	KeyDefaultAgent:   true,
	KeyDefaultScript:  true,
	KeyHTTPTimeout:    true,
	KeyGitHubToken:    true,
	KeyCABundle:       true,
	KeyGitAuthorName:  true,
	KeyGitAuthorEmail: true,
}

// Settings is the immutable view of user configuration for one process run.
// It is built once by Load and shared by pointer. Load keeps values it cannot
// use so the config command can still repair them; Validate reports them.
type Settings struct {
	Dir            string
	TemplateRepo   string
	TemplateSource string
	DefaultAgent   string
	DefaultScript  string
	HTTPTimeout    time.Duration
	GitHubToken    string
	CABundle       string
	GitAuthorName  string
	GitAuthorEmail string

	invalid []error
}

// Dir returns the config directory. QUYNHLUU_CONFIG_DIR wins, then the
// platform config dir (e.g. ~/.config/quynhluu on Linux).
func Dir() string {
	if v := os.Getenv(branding.EnvVar("CONFIG_DIR")); v != "" {
		return v
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "."+branding.ConfigDir())
	}
	return filepath.Join(base, branding.ConfigDir())
}

// FilePath returns the config file inside dir.
func FilePath(dir string) string {
	return filepath.Join(dir, fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Keys returns the recognized configuration keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newViper(dir string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(FilePath(dir))
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	v.SetDefault(KeyTemplateRepo, branding.TemplateRepo())
	v.SetDefault(KeyTemplateSource, SourceRemote)
	v.SetDefault(KeyHTTPTimeout, DefaultHTTPTimeout.String())
	return v
}

// readIfPresent loads the config file, treating a missing file as empty.
func readIfPresent(v *viper.Viper, dir string) error {
	if _, err := os.Stat(FilePath(dir)); os.IsNotExist(err) {
		return nil
	}
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %s: %w", FilePath(dir), err)
	}
	return nil
}

// ParseHTTPTimeout reads an http_timeout value. A bare number counts as
// seconds; anything else must be a Go duration such as "45s" or "2m".
func ParseHTTPTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultHTTPTimeout, nil
	}

	var d time.Duration
	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		d = time.Duration(secs * float64(time.Second))
	} else if d, err = time.ParseDuration(raw); err != nil {
		return 0, apperr.Usagef("invalid %s %q: use seconds or a duration like 45s", KeyHTTPTimeout, raw)
	}
	if d < MinHTTPTimeout {
		return 0, apperr.Usagef("invalid %s %q: must be at least %s", KeyHTTPTimeout, raw, MinHTTPTimeout)
	}
	return d, nil
}

func checkTemplateSource(value string) error {
	if value != SourceRemote && value != SourceBundled {
		return apperr.Usagef("invalid %s %q: must be %q or %q", KeyTemplateSource, value, SourceRemote, SourceBundled)
	}
	return nil
}

// Load reads the config file in dir (if any) and the environment into a
// Settings value. Only an unreadable file is an error here; bad values are
// reported by Validate.
func Load(dir string) (*Settings, error) {
	v := newViper(dir)
	if err := readIfPresent(v, dir); err != nil {
		return nil, err
	}

	s := &Settings{
		Dir:            dir,
		TemplateRepo:   v.GetString(KeyTemplateRepo),
		TemplateSource: v.GetString(KeyTemplateSource),
		DefaultAgent:   v.GetString(KeyDefaultAgent),
		DefaultScript:  v.GetString(KeyDefaultScript),
		GitHubToken:    v.GetString(KeyGitHubToken),
		CABundle:       v.GetString(KeyCABundle),
		GitAuthorName:  v.GetString(KeyGitAuthorName),
		GitAuthorEmail: v.GetString(KeyGitAuthorEmail),
	}

	if err := checkTemplateSource(s.TemplateSource); err != nil {
		s.invalid = append(s.invalid, err)
	}
	timeout, err := ParseHTTPTimeout(v.GetString(KeyHTTPTimeout))
	if err != nil {
		s.invalid = append(s.invalid, err)
		timeout = DefaultHTTPTimeout
	}
	s.HTTPTimeout = timeout
	return s, nil
}

// Validate returns the problems Load found, or nil. Each problem is a
// UsageError naming the key to fix.
func (s *Settings) Validate() error {
	if len(s.invalid) == 0 {
		return nil
	}
	err := errors.Join(s.invalid...)
	return &apperr.UsageError{
		Msg: fmt.Sprintf("config %s", FilePath(s.Dir)),
		Err: err,
	}
}

// Get returns the effective value of key (file, env, or default).
func Get(dir, key string) (string, error) {
	if !knownKeys[key] {
		return "", apperr.Usagef("unknown config key %q", key)
	}
	v := newViper(dir)
	if err := readIfPresent(v, dir); err != nil {
		return "", err
	}
	return v.GetString(key), nil
}

// Set writes a config key-value pair and saves the config file. Only values
// already in the file plus the new one are written; defaults and environment
// overrides stay out of it.
func Set(dir, key, value string) error {
	if !knownKeys[key] {
		return apperr.Usagef("unknown config key %q", key)
	}
	switch key {
	case KeyHTTPTimeout:
		if _, err := ParseHTTPTimeout(value); err != nil {
			return err
		}
	case KeyTemplateSource:
		if err := checkTemplateSource(value); err != nil {
			return err
		}
	}

	if err := EnsureDir(dir); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(FilePath(dir))
	v.SetConfigType(fileType)
	if err := readIfPresent(v, dir); err != nil {
		return err
	}

	v.Set(key, value)

	if err := v.WriteConfigAs(FilePath(dir)); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
