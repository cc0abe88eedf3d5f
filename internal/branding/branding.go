// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package and rebuild; Go's //go:embed
// bakes it into the binary. Values are read-only after the first access.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName        string `yaml:"cli_name"`
	DisplayName    string `yaml:"display_name"`
	Description    string `yaml:"description"`
	Tagline        string `yaml:"tagline"`
	Banner         string `yaml:"banner"`
	ConfigDir      string `yaml:"config_dir"`
	EnvPrefix      string `yaml:"env_prefix"`
	GitHubRepo     string `yaml:"github_repo"`
	TemplateRepo   string `yaml:"template_repo"`
	TemplatePrefix string `yaml:"template_prefix"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:        "quynhluu",
			DisplayName:    "Quynhluu",
			Description:    "Setup tool for Quynhluu spec-driven projects",
			Tagline:        "Spec-driven project setup for AI coding agents",
			Banner:         "QUYNHLUU",
			ConfigDir:      "quynhluu",
			EnvPrefix:      "QUYNHLUU",
			GitHubRepo:     "quynhluu-labs/quynhluu",
			TemplateRepo:   "quynhluu-labs/quynhluu-templates",
			TemplatePrefix: "quynhluu",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
		defaults.Banner = strings.TrimRight(defaults.Banner, "\n")
	})
}

// CLIName returns the root command name (e.g., "quynhluu").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Quynhluu").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// Tagline returns the line printed under the banner.
func Tagline() string { load(); return defaults.Tagline }

// Banner returns the multi-line ASCII banner without a trailing newline.
func Banner() string { load(); return defaults.Banner }

// ConfigDir returns the directory name used under the user config dir.
func ConfigDir() string { load(); return defaults.ConfigDir }

// EnvPrefix returns the environment variable prefix (e.g., "QUYNHLUU").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GitHubRepo returns the "owner/repo" the CLI itself is released from.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// TemplateRepo returns the default "owner/repo" that publishes template archives.
func TemplateRepo() string { load(); return defaults.TemplateRepo }

// TemplatePrefix returns the asset name prefix of template archives,
// as in "<prefix>-template-<agent>-<script>-<version>.zip".
func TemplatePrefix() string { load(); return defaults.TemplatePrefix }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("home") → "QUYNHLUU_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
