package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/quynhluu-labs/quynhluu/internal/apperr"
	"github.com/quynhluu-labs/quynhluu/internal/config"
	"github.com/quynhluu-labs/quynhluu/internal/ui"
	"github.com/spf13/cobra"
)

// registerCommands is the single place subcommands are attached to the root.
func registerCommands(a *App) error {
	for _, cmd := range []*cobra.Command{
		newInitCmd(a),
		newCheckCmd(a),
		newVersionCmd(a),
		newConfigCmd(a),
	} {
		if err := a.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Main runs the CLI against the process arguments and returns the exit code.
func Main(build BuildInfo) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	console := ui.New(ui.Options{})

	settings, err := config.Load(config.Dir())
	if err != nil {
		console.Error("%v", err)
		return apperr.ExitCode(err)
	}

	app, err := New(Deps{Build: build, Settings: settings, Console: console})
	if err != nil {
		console.Error("%v", err)
		return apperr.ExitCode(err)
	}

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		console.Error("%v", err)
		return apperr.ExitCode(err)
	}
	return apperr.ExitOK
}
