// Package ui renders the banner, status lines, and interactive prompts. All
// terminal output of the commands goes through a Console so tests can
// capture it and non-interactive runs fail fast instead of blocking.
package ui
