package cli

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"
	"github.com/quynhluu-labs/quynhluu/internal/apperr"
	"github.com/quynhluu-labs/quynhluu/internal/branding"
	"github.com/quynhluu-labs/quynhluu/internal/config"
	"github.com/quynhluu-labs/quynhluu/internal/tlsctx"
	"github.com/quynhluu-labs/quynhluu/internal/ui"
	"github.com/quynhluu-labs/quynhluu/internal/updater"
	"github.com/spf13/cobra"
)

// BuildInfo is injected into main via -ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Deps are the process-wide collaborators handed to every command. They are
// built once in Main (or by a test) and never replaced.
type Deps struct {
	Build    BuildInfo
	Settings *config.Settings
	Console  *ui.Console
	TLS      *tlsctx.Provider

	// Getwd resolves the working directory for "init ." and --here.
	Getwd func() (string, error)
	// LookPath finds agent and git executables.
	LookPath func(string) (string, error)
	// HomeDir locates per-user agent installs.
	HomeDir func() (string, error)
	// Now stamps rendered templates.
	Now func() time.Time
	// GitHubAPI overrides the GitHub API root (useful for testing).
	GitHubAPI string
}

func (d *Deps) fillDefaults() {
	if d.Getwd == nil {
		d.Getwd = os.Getwd
	}
	if d.LookPath == nil {
		d.LookPath = exec.LookPath
	}
	if d.HomeDir == nil {
		d.HomeDir = os.UserHomeDir
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Console == nil {
		d.Console = ui.New(ui.Options{})
	}
	if d.TLS == nil {
		d.TLS = tlsctx.New(tlsctx.WithCABundle(d.Settings.CABundle))
	}
}

const exitCodeHelp = `

Exit codes:
  0  success
  1  usage error, invalid config, or files that could not be written
  2  target directory is not empty (use --force to merge)
  3  template download failed
  4  TLS trust store could not be loaded
  5  input required but stdin is not a terminal`

// builtinCommands are attached by cobra itself and cannot be registered.
var builtinCommands = []string{"help", "completion"}

// App is the command registry: a root command plus the subcommands attached
// to it through Register.
type App struct {
	deps  Deps
	root  *cobra.Command
	names map[string]string

	debug      bool
	dispatched bool
}

// New builds the root command and registers every subcommand.
func New(deps Deps) (*App, error) {
	if deps.Settings == nil {
		s, err := config.Load(config.Dir())
		if err != nil {
			return nil, err
		}
		deps.Settings = s
	}
	deps.fillDefaults()

	a := &App{deps: deps, names: map[string]string{}}
	for _, n := range builtinCommands {
		a.names[n] = ""
	}
	a.root = &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` sets up new projects for spec-driven development with AI coding agents.
It writes the agent's slash commands, helper scripts, and document templates
into a new or existing directory.` + exitCodeHelp,
		Version:       deps.Build.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Everything after this point is command logic, not argument parsing.
			a.dispatched = true
			if a.debug {
				a.deps.Console.Log.SetLevel(log.DebugLevel)
			}
			a.deps.Console.Log.Debug("dispatching", "command", cmd.CommandPath(), "args", args)

			if !skipsUpdateNotice(cmd) {
				updater.PrintNotice(a.deps.Console.ErrOut(), a.deps.Settings.Dir, a.deps.Build.Version)
			}
			return nil
		},
	}
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Print diagnostic logs to stderr")
	a.root.SetOut(deps.Console.Out())
	a.root.SetErr(deps.Console.ErrOut())
	a.root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &apperr.UsageError{Msg: cmd.CommandPath(), Err: err}
	})
	a.root.CompletionOptions.HiddenDefaultCmd = true

	if err := registerCommands(a); err != nil {
		return nil, err
	}
	return a, nil
}

// skipsUpdateNotice reports whether cmd, or the top-level command it belongs
// to, manages its own version output.
func skipsUpdateNotice(cmd *cobra.Command) bool {
	for c := cmd; c != nil && c.HasParent(); c = c.Parent() {
		switch c.Name() {
		case "version", "config":
			return true
		}
	}
	return false
}

// Register attaches cmd to the root. A name or alias that is already taken
// fails with DuplicateCommandError and leaves the tree unchanged.
func (a *App) Register(cmd *cobra.Command) error {
	claims := append([]string{cmd.Name()}, cmd.Aliases...)
	for _, n := range claims {
		if _, taken := a.names[n]; taken {
			return &apperr.DuplicateCommandError{Name: n}
		}
	}
	for _, n := range claims {
		a.names[n] = cmd.Name()
	}
	a.root.AddCommand(cmd)
	return nil
}

// Commands returns the names of the registered commands.
func (a *App) Commands() []string {
	var names []string
	for _, c := range a.root.Commands() {
		if owner := a.names[c.Name()]; owner != "" {
			names = append(names, c.Name())
		}
	}
	return names
}

// Run parses argv and dispatches to exactly one command. Errors raised while
// parsing (unknown command, bad flag, wrong argument count) are UsageErrors.
// No command, or --help, prints help and succeeds. Flag values persist on
// the App, so each invocation gets a fresh App.
func (a *App) Run(ctx context.Context, argv []string) error {
	a.dispatched = false
	a.root.SetArgs(argv)
	err := a.root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	if !a.dispatched {
		if _, ok := err.(*apperr.UsageError); !ok {
			return &apperr.UsageError{Msg: "invalid usage", Err: err}
		}
	}
	return err
}
