package cli

import (
	"fmt"

	"github.com/quynhluu-labs/quynhluu/internal/agent"
	"github.com/quynhluu-labs/quynhluu/internal/branding"
	"github.com/quynhluu-labs/quynhluu/internal/config"
	"github.com/spf13/cobra"
)

func newCheckCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that required tools are installed",
		Long: `Report whether git and each agent CLI can be found, and whether the TLS
trust store used for template downloads loads.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.runCheck()
			return nil
		},
	}
}

func (a *App) runCheck() {
	console := a.deps.Console
	console.ShowBanner()

	problems := 0
	console.Info("Tools:")
	if !a.reportTool("git", "git", "https://git-scm.com/downloads") {
		problems++
	}
	for _, ag := range agent.All() {
		if !ag.RequiresCLI {
			console.Info("  [ -- ] %s (IDE-based, nothing to check)", ag.Name)
			continue
		}
		a.reportTool(ag.Key, ag.Name, ag.InstallURL)
	}

	console.Info("Environment:")
	if _, err := a.deps.TLS.Config(); err != nil {
		console.Info("  [FAIL] TLS trust store: %v", err)
		problems++
	} else {
		console.Info("  [ OK ] TLS trust store loaded")
	}
	if err := a.deps.Settings.Validate(); err != nil {
		console.Info("  [FAIL] %v", err)
		problems++
	} else {
		console.Info("  [INFO] config file: %s", config.FilePath(a.deps.Settings.Dir))
	}
	console.Info("  [INFO] template source: %s", a.templateOrigin())

	if problems > 0 {
		console.Warn("%d problem(s) found; %s may not be able to initialize projects", problems, branding.DisplayName())
		return
	}
	console.Success("%s CLI is ready to use", branding.DisplayName())
}

// reportTool prints one tool line and reports whether the tool was found.
func (a *App) reportTool(bin, name, installURL string) bool {
	if a.hasTool(bin) {
		a.deps.Console.Info("  [ OK ] %s", name)
		return true
	}
	a.deps.Console.Info("  [MISS] %s not found (install: %s)", name, installURL)
	return false
}

func (a *App) templateOrigin() string {
	if a.deps.Settings.TemplateSource == config.SourceBundled {
		return "bundled"
	}
	return fmt.Sprintf("github.com/%s releases", a.deps.Settings.TemplateRepo)
}
