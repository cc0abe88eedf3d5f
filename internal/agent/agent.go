// Package agent holds the static table of AI coding agents a project can be
// initialized for. The table is fixed at compile time; lookups return copies.
package agent

import "sort"

// Agent describes one supported AI coding assistant.
type Agent struct {
	Key         string // CLI value for --ai, e.g. "claude"
	Name        string // Display name
	Folder      string // Agent folder created in the project, e.g. ".claude/"
	CommandsDir string // Where slash-command files live, relative to the project root
	CommandExt  string // "md" or "toml"
	InstallURL  string // Where to get the agent CLI; empty for IDE-based agents
	RequiresCLI bool   // Whether `check`/`init` look for an executable named Key
}

var table = []Agent{
	{Key: "copilot", Name: "GitHub Copilot", Folder: ".github/", CommandsDir: ".github/prompts", CommandExt: "md"},
	{Key: "claude", Name: "Claude Code", Folder: ".claude/", CommandsDir: ".claude/commands", CommandExt: "md",
		InstallURL: "https://docs.anthropic.com/en/docs/claude-code/setup", RequiresCLI: true},
	{Key: "gemini", Name: "Gemini CLI", Folder: ".gemini/", CommandsDir: ".gemini/commands", CommandExt: "toml",
		InstallURL: "https://github.com/google-gemini/gemini-cli", RequiresCLI: true},
	{Key: "cursor-agent", Name: "Cursor", Folder: ".cursor/", CommandsDir: ".cursor/commands", CommandExt: "md"},
	{Key: "qwen", Name: "Qwen Code", Folder: ".qwen/", CommandsDir: ".qwen/commands", CommandExt: "toml",
		InstallURL: "https://github.com/QwenLM/qwen-code", RequiresCLI: true},
	{Key: "opencode", Name: "opencode", Folder: ".opencode/", CommandsDir: ".opencode/command", CommandExt: "md",
		InstallURL: "https://opencode.ai", RequiresCLI: true},
	{Key: "codex", Name: "Codex CLI", Folder: ".codex/", CommandsDir: ".codex/prompts", CommandExt: "md",
		InstallURL: "https://github.com/openai/codex", RequiresCLI: true},
	{Key: "windsurf", Name: "Windsurf", Folder: ".windsurf/", CommandsDir: ".windsurf/workflows", CommandExt: "md"},
	{Key: "kilocode", Name: "Kilo Code", Folder: ".kilocode/", CommandsDir: ".kilocode/workflows", CommandExt: "md"},
	{Key: "auggie", Name: "Auggie CLI", Folder: ".augment/", CommandsDir: ".augment/commands", CommandExt: "md",
		InstallURL: "https://docs.augmentcode.com/cli/setup-auggie/install-auggie-cli", RequiresCLI: true},
	{Key: "roo", Name: "Roo Code", Folder: ".roo/", CommandsDir: ".roo/commands", CommandExt: "md"},
	{Key: "q", Name: "Amazon Q Developer CLI", Folder: ".amazonq/", CommandsDir: ".amazonq/prompts", CommandExt: "md",
		InstallURL: "https://aws.amazon.com/developer/learning/q-developer-cli/", RequiresCLI: true},
}

var byKey = func() map[string]int {
	m := make(map[string]int, len(table))
	for i, a := range table {
		m[a.Key] = i
	}
	return m
}()

// Lookup returns the agent registered under key.
func Lookup(key string) (Agent, bool) {
	i, ok := byKey[key]
	if !ok {
		return Agent{}, false
	}
	return table[i], true
}

// All returns every agent in menu order.
func All() []Agent {
	out := make([]Agent, len(table))
	copy(out, table)
	return out
}

// Keys returns the agent keys sorted alphabetically, for help text and errors.
func Keys() []string {
	keys := make([]string, 0, len(table))
	for _, a := range table {
		keys = append(keys, a.Key)
	}
	sort.Strings(keys)
	return keys
}

// ScriptTypes lists the supported helper-script flavors.
var ScriptTypes = []string{"sh", "ps"}

// ValidScript reports whether s is a supported script type.
func ValidScript(s string) bool {
	for _, st := range ScriptTypes {
		if st == s {
			return true
		}
	}
	return false
}
