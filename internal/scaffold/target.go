package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quynhluu-labs/quynhluu/internal/apperr"
)

// ProjectTarget is the destination of one init invocation.
type ProjectTarget struct {
	Path         string // absolute
	Name         string // project name, the directory's base name for --here
	Exists       bool
	IsCurrentDir bool
	Entries      int // number of entries already present
}

// Empty reports whether the target holds nothing that could be overwritten.
func (t *ProjectTarget) Empty() bool {
	return t.Entries == 0
}

// ResolveTarget turns the init arguments into a target. name "." is the same
// as here. Supplying a real name together with here, or neither, is a usage
// error.
func ResolveTarget(cwd, name string, here bool) (*ProjectTarget, error) {
	if name == "." {
		name = ""
		here = true
	}

	switch {
	case here && name != "":
		return nil, apperr.Usagef("cannot use both a project name (%q) and --here", name)
	case !here && name == "":
		return nil, apperr.Usagef("specify a project name, '.' or --here")
	}

	abs, err := filepath.Abs(cwd)
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}

	t := &ProjectTarget{IsCurrentDir: here}
	if here {
		t.Path = abs
		t.Name = filepath.Base(abs)
	} else {
		if err := validateName(name); err != nil {
			return nil, err
		}
		t.Path = filepath.Join(abs, name)
		t.Name = name
	}

	info, err := os.Stat(t.Path)
	switch {
	case os.IsNotExist(err):
		return t, nil
	case err != nil:
		return nil, fmt.Errorf("checking %s: %w", t.Path, err)
	case !info.IsDir():
		return nil, apperr.Usagef("%s exists and is not a directory", t.Path)
	}

	entries, err := os.ReadDir(t.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", t.Path, err)
	}
	t.Exists = true
	t.Entries = len(entries)
	return t, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) != name || name == ".." {
		return apperr.Usagef("invalid project name %q", name)
	}
	if strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return apperr.Usagef("invalid project name %q: must be a single directory name, not a path", name)
	}
	if strings.HasPrefix(name, "-") {
		return apperr.Usagef("invalid project name %q: must not start with '-'", name)
	}
	return nil
}

// Guard refuses a non-empty target unless force is set or confirm approves.
// confirm may be nil, which counts as a refusal.
func Guard(t *ProjectTarget, force bool, confirm func(question string) (bool, error)) error {
	if t.Empty() || force {
		return nil
	}
	if confirm != nil {
		ok, err := confirm(fmt.Sprintf("%s is not empty (%d entries). Merge template files into it?", t.Path, t.Entries))
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return &apperr.TargetExistsError{Path: t.Path, Entries: t.Entries}
}
