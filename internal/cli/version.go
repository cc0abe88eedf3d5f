package cli

import (
	"encoding/json"
	"fmt"

	"github.com/quynhluu-labs/quynhluu/internal/branding"
	"github.com/quynhluu-labs/quynhluu/internal/updater"
	"github.com/spf13/cobra"
)

func newVersionCmd(a *App) *cobra.Command {
	var (
		short  bool
		asJSON bool
		check  bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			build := a.deps.Build
			out := a.deps.Console.Out()

			switch {
			case short:
				fmt.Fprintln(out, build.Version)
			case asJSON:
				info := map[string]string{
					"version": build.Version,
					"commit":  build.Commit,
					"date":    build.Date,
				}
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling version info: %w", err)
				}
				fmt.Fprintln(out, string(data))
			default:
				fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n",
					branding.CLIName(), build.Version, build.Commit, build.Date)
			}

			if check {
				return a.checkForUpdate(cmd)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print version number only")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version info as JSON")
	cmd.Flags().BoolVar(&check, "check", false, "Check GitHub for a newer release")
	cmd.MarkFlagsMutuallyExclusive("short", "json")
	return cmd
}

func (a *App) checkForUpdate(cmd *cobra.Command) error {
	console := a.deps.Console
	current := a.deps.Build.Version

	if !updater.IsRelease(current) {
		console.Warn("%s is a development build; skipping the update check", current)
		return nil
	}

	client, err := a.githubClient("")
	if err != nil {
		return err
	}

	result, err := updater.New(current, branding.GitHubRepo(), client).Check(cmd.Context(), a.deps.Settings.Dir)
	if err != nil {
		return fmt.Errorf("checking for updates: %w", err)
	}
	if result.UpdateAvailable {
		updater.PrintUpdateBanner(console.Out(), result)
		return nil
	}
	console.Success("You are running the latest release (%s)", result.LatestVersion)
	return nil
}
