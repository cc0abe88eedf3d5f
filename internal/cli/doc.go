// Package cli defines the Cobra command tree for the quynhluu CLI. An App
// owns the root command; registerCommands is the one place subcommands are
// attached, so registration order and duplicate names are explicit. Command
// implementations delegate to internal packages for business logic and only
// handle flag parsing, I/O formatting, and user interaction.
package cli
