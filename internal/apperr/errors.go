// Package apperr defines the error taxonomy surfaced to users and the
// process exit code each class maps to.
package apperr

import (
	"errors"
	"fmt"
)

// Exit codes returned by the quynhluu binary.
const (
	ExitOK             = 0
	ExitUsage          = 1
	ExitTargetExists   = 2
	ExitTemplateFetch  = 3
	ExitTLSInit        = 4
	ExitNonInteractive = 5
)

// UsageError reports bad or missing command-line input.
type UsageError struct {
	Msg string
	Err error
}

func (e *UsageError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *UsageError) Unwrap() error { return e.Err }

// Usagef builds a UsageError from a format string.
func Usagef(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// DuplicateCommandError is returned when two commands claim the same name.
type DuplicateCommandError struct {
	Name string
}

func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("command %q is already registered", e.Name)
}

// TargetExistsError reports a non-empty destination without overwrite consent.
type TargetExistsError struct {
	Path    string
	Entries int
}

func (e *TargetExistsError) Error() string {
	return fmt.Sprintf("directory %s is not empty (%d entries); use --force to merge into it", e.Path, e.Entries)
}

// TemplateFetchError reports a failure to acquire template content.
type TemplateFetchError struct {
	Source string
	Err    error
}

func (e *TemplateFetchError) Error() string {
	return fmt.Sprintf("fetching template from %s: %v (check your network and retry, or use --offline)", e.Source, e.Err)
}

func (e *TemplateFetchError) Unwrap() error { return e.Err }

// TLSInitError reports that no certificate-validating TLS context could be built.
type TLSInitError struct {
	Err error
}

func (e *TLSInitError) Error() string {
	return fmt.Sprintf("initializing TLS trust store: %v", e.Err)
}

func (e *TLSInitError) Unwrap() error { return e.Err }

// NonInteractiveInputError is returned when a prompt needs an answer but
// stdin is not a terminal and no default exists.
type NonInteractiveInputError struct {
	Question string
}

func (e *NonInteractiveInputError) Error() string {
	return fmt.Sprintf("%q requires interactive input but stdin is not a terminal; pass the value as a flag", e.Question)
}

// ExitCode maps err to the process exit code. A nil error maps to ExitOK and
// unclassified errors map to ExitUsage.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		targetErr *TargetExistsError
		fetchErr  *TemplateFetchError
		tlsErr    *TLSInitError
		inputErr  *NonInteractiveInputError
	)

	// TLS failures surface through fetch errors; the more specific class wins.
	switch {
	case errors.As(err, &tlsErr):
		return ExitTLSInit
	case errors.As(err, &fetchErr):
		return ExitTemplateFetch
	case errors.As(err, &targetErr):
		return ExitTargetExists
	case errors.As(err, &inputErr):
		return ExitNonInteractive
	default:
		return ExitUsage
	}
}
