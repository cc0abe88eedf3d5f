package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// Within reports whether target resolves inside root. Both paths are
// cleaned; neither needs to exist.
func Within(root, target string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(target))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// ResolvesWithin is Within on the real filesystem: symlinks in the part of
// target that already exists are followed before comparing. A dangling
// link is an error.
func ResolvesWithin(root, target string) (bool, error) {
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return false, err
	}

	existing, rest := filepath.Clean(target), ""
	for {
		if _, err := os.Lstat(existing); err == nil {
			break
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			break
		}
		rest = filepath.Join(filepath.Base(existing), rest)
		existing = parent
	}

	real, err := filepath.EvalSymlinks(existing)
	if err != nil {
		return false, err
	}
	return Within(realRoot, filepath.Join(real, rest)), nil
}
