package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quynhluu-labs/quynhluu/internal/agent"
	"github.com/quynhluu-labs/quynhluu/internal/apperr"
	"github.com/quynhluu-labs/quynhluu/internal/branding"
	"github.com/quynhluu-labs/quynhluu/internal/config"
	"github.com/quynhluu-labs/quynhluu/internal/github"
	"github.com/quynhluu-labs/quynhluu/internal/gitrepo"
	"github.com/quynhluu-labs/quynhluu/internal/platform"
	"github.com/quynhluu-labs/quynhluu/internal/scaffold"
	"github.com/quynhluu-labs/quynhluu/internal/templates"
	"github.com/quynhluu-labs/quynhluu/internal/ui"
	"github.com/spf13/cobra"
)

type initOptions struct {
	here             bool
	force            bool
	ai               string
	script           string
	noGit            bool
	gitignoreAgent   bool
	ignoreAgentTools bool
	githubToken      string
	templateDir      string
	templateVersion  string
	offline          bool
}

func newInitCmd(a *App) *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init [project-name | .]",
		Short: "Initialize a new project from the latest template",
		Long: `Create a new project directory, or set up the current one, with the slash
commands, helper scripts, and document templates for your AI coding agent.

Use "." or --here to initialize the current directory. A directory that
already has files is only merged into after confirmation or with --force.`,
		Example: fmt.Sprintf(`  %[1]s init my-project
  %[1]s init my-project --ai claude --script sh
  %[1]s init . --ai gemini
  %[1]s init --here --force --offline`, branding.CLIName()),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return a.runInit(cmd, name, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.here, "here", false, "Initialize the current directory instead of creating a new one")
	f.BoolVar(&opts.force, "force", false, "Merge into a non-empty directory without asking")
	f.StringVar(&opts.ai, "ai", "", "AI agent to set up: "+strings.Join(agent.Keys(), ", "))
	f.StringVar(&opts.script, "script", "", "Helper script flavor: sh or ps")
	f.BoolVar(&opts.noGit, "no-git", false, "Skip git repository initialization")
	f.BoolVar(&opts.gitignoreAgent, "gitignore-agent", false, "Add the agent folder to .gitignore")
	f.BoolVar(&opts.ignoreAgentTools, "ignore-agent-tools", false, "Skip checking that the agent CLI is installed")
	f.StringVar(&opts.githubToken, "github-token", "", "GitHub token for API requests (defaults to GH_TOKEN or GITHUB_TOKEN)")
	f.StringVar(&opts.templateDir, "template-dir", "", "Use templates from a local directory")
	f.StringVar(&opts.templateVersion, "template-version", "", "Template release tag to fetch (default: latest)")
	f.BoolVar(&opts.offline, "offline", false, "Use the templates bundled with this binary")
	cmd.MarkFlagsMutuallyExclusive("template-dir", "offline")
	cmd.MarkFlagsMutuallyExclusive("template-dir", "template-version")
	cmd.MarkFlagsMutuallyExclusive("offline", "template-version")

	return cmd
}

func (a *App) runInit(cmd *cobra.Command, name string, opts initOptions) error {
	console := a.deps.Console

	cwd, err := a.deps.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	target, err := scaffold.ResolveTarget(cwd, name, opts.here)
	if err != nil {
		return err
	}
	if err := a.deps.Settings.Validate(); err != nil {
		return err
	}

	console.ShowBanner()

	if err := scaffold.Guard(target, opts.force, func(q string) (bool, error) {
		return console.Confirm(q, false)
	}); err != nil {
		return err
	}

	ag, err := a.chooseAgent(opts.ai)
	if err != nil {
		return err
	}
	script, err := a.chooseScript(opts.script)
	if err != nil {
		return err
	}

	console.Step("Project", target.Path)
	console.Step("Agent", ag.Name)
	console.Step("Script", script)

	if !opts.ignoreAgentTools {
		if err := a.requireAgentTool(ag); err != nil {
			return err
		}
	}

	source, err := a.templateSource(opts)
	if err != nil {
		return err
	}

	tmpl, err := source.Load(cmd.Context(), templates.Request{
		Agent:       ag,
		Script:      script,
		ProjectName: target.Name,
		Now:         a.deps.Now(),
	})
	if err != nil {
		return err
	}
	for _, w := range tmpl.Warnings {
		console.Warn("template: %s", w)
	}
	console.Step("Template", describeTemplate(tmpl))

	result, err := scaffold.Write(target, tmpl.Files)
	if result != nil {
		for _, p := range result.Written {
			console.Log.Debug("wrote", "path", p)
		}
	}
	var partial *scaffold.PartialWriteError
	if errors.As(err, &partial) {
		console.Success("Wrote %d of %d files", len(result.Written), partial.Total)
		for _, fe := range result.Failed {
			console.Error("%s", fe.Error())
		}
		return err
	}
	if err != nil {
		return err
	}

	console.Success("Wrote %d files to %s", len(result.Written), result.OutputDir)
	if n := len(result.Overwritten); n > 0 {
		console.Info("  %d existing files were replaced", n)
	}

	if opts.gitignoreAgent {
		changed, err := gitrepo.AddToGitignore(target.Path, ag.Name+" may keep credentials here", ag.Folder)
		switch {
		case err != nil:
			console.Warn("%v", err)
		case changed:
			console.Success("Added %s to %s", ag.Folder, gitrepo.IgnoreFile)
		}
	}

	if !opts.noGit {
		a.initGit(target)
	}

	console.Summary("Next steps", nextSteps(target, ag, tmpl))
	if !opts.gitignoreAgent {
		console.Summary("Security notice", []string{
			fmt.Sprintf("Agents may store credentials or auth tokens in %s.", ag.Folder),
			fmt.Sprintf("Consider adding %s (or parts of it) to .gitignore, or rerun with --gitignore-agent.", ag.Folder),
		})
	}
	return nil
}

// chooseAgent resolves the agent from the flag, then settings, then a prompt.
func (a *App) chooseAgent(flag string) (agent.Agent, error) {
	if flag != "" {
		ag, ok := agent.Lookup(flag)
		if !ok {
			return agent.Agent{}, apperr.Usagef("unknown AI agent %q (choose from: %s)", flag, strings.Join(agent.Keys(), ", "))
		}
		return ag, nil
	}

	if def := a.deps.Settings.DefaultAgent; def != "" {
		ag, ok := agent.Lookup(def)
		if !ok {
			return agent.Agent{}, apperr.Usagef("config %s: unknown AI agent %q", config.KeyDefaultAgent, def)
		}
		return ag, nil
	}

	all := agent.All()
	menu := make([]ui.Choice, 0, len(all))
	for _, ag := range all {
		menu = append(menu, ui.Choice{Key: ag.Key, Label: ag.Name})
	}
	key, err := a.deps.Console.Prompt("Choose your AI agent", menu, "")
	if err != nil {
		return agent.Agent{}, err
	}
	ag, _ := agent.Lookup(key)
	return ag, nil
}

// chooseScript resolves the script flavor from the flag, then settings, then
// a prompt that defaults to the platform's native shell.
func (a *App) chooseScript(flag string) (string, error) {
	if flag != "" {
		if !agent.ValidScript(flag) {
			return "", apperr.Usagef("invalid script type %q (choose from: %s)", flag, strings.Join(agent.ScriptTypes, ", "))
		}
		return flag, nil
	}
	if def := a.deps.Settings.DefaultScript; def != "" {
		if !agent.ValidScript(def) {
			return "", apperr.Usagef("config %s: invalid script type %q", config.KeyDefaultScript, def)
		}
		return def, nil
	}
	return a.deps.Console.Prompt("Choose script type", []ui.Choice{
		{Key: "sh", Label: "POSIX shell (bash/zsh)"},
		{Key: "ps", Label: "PowerShell"},
	}, platform.DefaultScript())
}

// requireAgentTool fails when an agent that needs a CLI does not have one on
// PATH.
func (a *App) requireAgentTool(ag agent.Agent) error {
	if !ag.RequiresCLI {
		return nil
	}
	if a.hasTool(ag.Key) {
		return nil
	}
	return apperr.Usagef("%s not found: install it from %s, or pass --ignore-agent-tools to skip this check", ag.Name, ag.InstallURL)
}

// hasTool looks for an executable on PATH. Claude's migrate-installer puts
// the binary under ~/.claude/local instead, so that location counts too.
func (a *App) hasTool(name string) bool {
	if _, err := a.deps.LookPath(name); err == nil {
		return true
	}
	if name == "claude" {
		if home, err := a.deps.HomeDir(); err == nil {
			if info, err := os.Stat(filepath.Join(home, ".claude", "local", "claude")); err == nil && !info.IsDir() {
				return true
			}
		}
	}
	return false
}

// templateSource picks where template content comes from: an explicit
// directory, the bundled tree, or a GitHub release.
func (a *App) templateSource(opts initOptions) (templates.Source, error) {
	settings := a.deps.Settings

	switch {
	case opts.templateDir != "":
		return &templates.Dir{Path: opts.templateDir}, nil
	case opts.offline || settings.TemplateSource == config.SourceBundled:
		return &templates.Bundled{}, nil
	}

	client, err := a.githubClient(opts.githubToken)
	if err != nil {
		return nil, err
	}
	return &templates.Remote{
		Client: client,
		Repo:   settings.TemplateRepo,
		Prefix: branding.TemplatePrefix(),
		Tag:    opts.templateVersion,
	}, nil
}

// githubClient builds a GitHub client on the shared TLS context. A trust
// store that cannot be loaded surfaces here as TLSInitError.
func (a *App) githubClient(token string) (*github.Client, error) {
	if err := a.deps.Settings.Validate(); err != nil {
		return nil, err
	}
	httpClient, err := a.deps.TLS.HTTPClient(a.deps.Settings.HTTPTimeout)
	if err != nil {
		return nil, err
	}
	opts := []github.Option{
		github.WithHTTPClient(httpClient),
		github.WithToken(github.Token(token, a.deps.Settings.GitHubToken)),
		github.WithUserAgent(branding.CLIName() + "/" + a.deps.Build.Version),
		github.WithLogger(a.deps.Console.Log),
	}
	if a.deps.GitHubAPI != "" {
		opts = append(opts, github.WithAPIBase(a.deps.GitHubAPI))
	}
	return github.New(opts...), nil
}

func (a *App) initGit(target *scaffold.ProjectTarget) {
	console := a.deps.Console
	if gitrepo.IsRepo(target.Path) {
		console.Step("Git", "existing repository detected, skipping init")
		return
	}
	hash, err := gitrepo.Init(target.Path, gitrepo.Author{
		Name:  a.deps.Settings.GitAuthorName,
		Email: a.deps.Settings.GitAuthorEmail,
	}, "")
	if err != nil {
		console.Warn("git repository not initialized: %v", err)
		return
	}
	console.Success("Initialized git repository (%s)", shortHash(hash))
}

func describeTemplate(t *templates.Template) string {
	parts := []string{}
	if t.Name != "" {
		parts = append(parts, t.Name)
	}
	if t.Version != "" {
		parts = append(parts, t.Version)
	}
	if t.Source != "" {
		parts = append(parts, "from "+t.Source)
	}
	return strings.Join(parts, " ")
}

func nextSteps(target *scaffold.ProjectTarget, ag agent.Agent, tmpl *templates.Template) []string {
	var steps []string
	if !target.IsCurrentDir {
		steps = append(steps, "cd "+target.Name)
	}
	steps = append(steps, fmt.Sprintf("Start %s in the project folder.", ag.Name))
	if tmpl.Manifest != nil {
		steps = append(steps, tmpl.Manifest.NextSteps...)
	}

	cmds := []string{"constitution", "specify", "plan", "tasks"}
	for i, c := range cmds {
		cmds[i] = "/" + branding.CLIName() + "." + c
	}
	steps = append(steps, "Slash commands: "+strings.Join(cmds, ", "))

	for i, s := range steps {
		steps[i] = fmt.Sprintf("%d. %s", i+1, s)
	}
	return steps
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}
