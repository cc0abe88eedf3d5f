package templates

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"
	"time"

	"github.com/quynhluu-labs/quynhluu/internal/apperr"
	"github.com/quynhluu-labs/quynhluu/internal/branding"
	"go.yaml.in/yaml/v3"
)

//go:embed all:bundled
var bundledFS embed.FS

const (
	commonDir   = "common"
	scriptsDir  = "scripts"
	commandsDir = "commands"
)

// Bundled renders the template compiled into the binary. It needs no network.
type Bundled struct {
	// FS overrides the embedded tree (useful for testing).
	FS fs.FS
}

// renderData holds the variables available to .tmpl files.
type renderData struct {
	ProjectName string
	AgentKey    string
	AgentName   string
	Script      string
	Date        string
	Year        int
}

// commandMeta is the front matter of a command source file.
type commandMeta struct {
	Description string            `yaml:"description"`
	Scripts     map[string]string `yaml:"scripts"`
}

// Load renders the bundled template for req.
func (b *Bundled) Load(ctx context.Context, req Request) (*Template, error) {
	root, err := b.root()
	if err != nil {
		return nil, &apperr.TemplateFetchError{Source: "bundled", Err: err}
	}

	t, err := renderBundled(root, req)
	if err != nil {
		return nil, &apperr.TemplateFetchError{Source: "bundled", Err: err}
	}
	t.Source = "bundled"
	return t, nil
}

func (b *Bundled) root() (fs.FS, error) {
	if b.FS != nil {
		return b.FS, nil
	}
	return fs.Sub(bundledFS, "bundled")
}

func renderBundled(root fs.FS, req Request) (*Template, error) {
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	data := renderData{
		ProjectName: req.ProjectName,
		AgentKey:    req.Agent.Key,
		AgentName:   req.Agent.Name,
		Script:      req.Script,
		Date:        now.Format("2006-01-02"),
		Year:        now.Year(),
	}

	t := &Template{}

	if raw, err := fs.ReadFile(root, ManifestFile); err == nil {
		t.applyManifest(raw)
	}

	// Shared files, then the helper scripts for the chosen shell.
	for _, dir := range []string{commonDir, path.Join(scriptsDir, req.Script)} {
		files, err := renderTree(root, dir, data)
		if err != nil {
			return nil, err
		}
		t.Files = append(t.Files, files...)
	}

	if req.Agent.CommandsDir == "" {
		return nil, fmt.Errorf("agent %q has no commands directory", req.Agent.Key)
	}
	entries, err := fs.ReadDir(root, commandsDir)
	if err != nil {
		return nil, fmt.Errorf("reading command templates: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		raw, err := fs.ReadFile(root, path.Join(commandsDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading command %s: %w", entry.Name(), err)
		}
		name := strings.TrimSuffix(entry.Name(), ".md")
		out, err := renderCommand(raw, req.Agent.CommandExt, req.Script)
		if err != nil {
			return nil, fmt.Errorf("rendering command %s: %w", name, err)
		}
		t.Files = append(t.Files, File{
			Path: fmt.Sprintf("%s/%s.%s.%s", req.Agent.CommandsDir, branding.CLIName(), name, req.Agent.CommandExt),
			Data: out,
			Mode: 0644,
		})
	}

	if len(t.Files) == 0 {
		return nil, fmt.Errorf("bundled template is empty")
	}
	t.sortFiles()
	return t, nil
}

// renderTree copies every file under dir, executing .tmpl files with data
// and stripping the extension.
func renderTree(root fs.FS, dir string, data renderData) ([]File, error) {
	if _, err := fs.Stat(root, dir); err != nil {
		return nil, fmt.Errorf("template set %q not found: %w", dir, err)
	}

	var files []File
	err := fs.WalkDir(root, dir, func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}

		raw, err := fs.ReadFile(root, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}
		rel := strings.TrimPrefix(p, dir+"/")

		if strings.HasSuffix(rel, ".tmpl") {
			rel = strings.TrimSuffix(rel, ".tmpl")
			tmpl, err := template.New(entry.Name()).Option("missingkey=error").Parse(string(raw))
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", p, err)
			}
			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, data); err != nil {
				return fmt.Errorf("executing template %s: %w", p, err)
			}
			raw = buf.Bytes()
		}

		mode := fs.FileMode(0644)
		if strings.HasSuffix(rel, ".sh") {
			mode = 0755
		}
		files = append(files, File{Path: rel, Data: raw, Mode: mode})
		return nil
	})
	return files, err
}

// renderCommand turns a command source file into the agent's format:
// Markdown with front matter, or TOML for agents that read .toml commands.
func renderCommand(raw []byte, ext, script string) ([]byte, error) {
	meta, body, err := splitFrontMatter(raw)
	if err != nil {
		return nil, err
	}

	argsToken := "$ARGUMENTS"
	if ext == "toml" {
		argsToken = "{{args}}"
	}
	if s, ok := meta.Scripts[script]; ok {
		body = strings.ReplaceAll(body, "{SCRIPT}", s)
	}
	body = strings.ReplaceAll(body, "{ARGS}", argsToken)

	var buf bytes.Buffer
	switch ext {
	case "toml":
		fmt.Fprintf(&buf, "description = %q\n\nprompt = \"\"\"\n%s\n\"\"\"\n", meta.Description, strings.TrimRight(body, "\n"))
	default:
		fm, err := yaml.Marshal(map[string]string{"description": meta.Description})
		if err != nil {
			return nil, fmt.Errorf("encoding front matter: %w", err)
		}
		buf.WriteString("---\n")
		buf.Write(fm)
		buf.WriteString("---\n\n")
		buf.WriteString(body)
	}
	return buf.Bytes(), nil
}

func splitFrontMatter(raw []byte) (commandMeta, string, error) {
	var meta commandMeta
	text := string(raw)
	if !strings.HasPrefix(text, "---\n") {
		return meta, text, nil
	}
	end := strings.Index(text[4:], "\n---\n")
	if end < 0 {
		return meta, "", fmt.Errorf("unterminated front matter")
	}
	if err := yaml.Unmarshal([]byte(text[4:4+end]), &meta); err != nil {
		return meta, "", fmt.Errorf("parsing front matter: %w", err)
	}
	body := strings.TrimLeft(text[4+end+5:], "\n")
	return meta, body, nil
}
