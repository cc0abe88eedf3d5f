package gitrepo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IgnoreFile is the name of the ignore file at the repository root.
const IgnoreFile = ".gitignore"

// AddToGitignore appends pattern to root/.gitignore under a comment header,
// creating the file if needed. It reports whether the file changed; a
// pattern that is already listed is a no-op.
func AddToGitignore(root, comment, pattern string) (bool, error) {
	path := filepath.Join(root, IgnoreFile)

	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("reading %s: %w", IgnoreFile, err)
	}

	for _, l := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(l) == pattern {
			return false, nil
		}
	}

	var b strings.Builder
	if len(content) > 0 {
		if !strings.HasSuffix(string(content), "\n") {
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if comment != "" {
		b.WriteString("# " + comment + "\n")
	}
	b.WriteString(pattern + "\n")

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, fmt.Errorf("opening %s for append: %w", IgnoreFile, err)
	}
	defer f.Close()

	if _, err := f.WriteString(b.String()); err != nil {
		return false, fmt.Errorf("writing %s: %w", IgnoreFile, err)
	}
	return true, nil
}
