package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/quynhluu-labs/quynhluu/internal/branding"
	"golang.org/x/term"
)

// Options configures a Console.
type Options struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Interactive overrides terminal detection on In when non-nil.
	Interactive *bool
	NoColor     bool
	Debug       bool
}

// Console is the single surface commands use for user-facing output,
// prompts, and diagnostic logging.
type Console struct {
	out         io.Writer
	err         io.Writer
	reader      *bufio.Reader
	interactive bool

	// Log receives diagnostics. It is quiet unless Debug is set.
	Log *log.Logger

	accent  *color.Color
	bold    *color.Color
	dim     *color.Color
	success *color.Color
	warn    *color.Color
	failure *color.Color
}

// New creates a Console. Nil streams default to the process stdio.
func New(opts Options) *Console {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	interactive := isTerminal(opts.In)
	if opts.Interactive != nil {
		interactive = *opts.Interactive
	}

	level := log.WarnLevel
	if opts.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(opts.Err, log.Options{
		Level:  level,
		Prefix: branding.CLIName(),
	})

	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if opts.NoColor {
			c.DisableColor()
		}
		return c
	}

	return &Console{
		out:         opts.Out,
		err:         opts.Err,
		reader:      bufio.NewReader(opts.In),
		interactive: interactive,
		Log:         logger,
		accent:      mk(color.FgHiCyan, color.Bold),
		bold:        mk(color.Bold),
		dim:         mk(color.Faint),
		success:     mk(color.FgHiGreen),
		warn:        mk(color.FgHiYellow),
		failure:     mk(color.FgHiRed, color.Bold),
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Interactive reports whether prompts will block on user input.
func (c *Console) Interactive() bool { return c.interactive }

// Out returns the writer for regular output.
func (c *Console) Out() io.Writer { return c.out }

// ErrOut returns the writer for warnings and errors.
func (c *Console) ErrOut() io.Writer { return c.err }

// ShowBanner prints the banner and tagline. It holds no state, so repeated
// calls print identical output.
func (c *Console) ShowBanner() {
	fmt.Fprintln(c.out)
	for _, line := range strings.Split(branding.Banner(), "\n") {
		c.accent.Fprintln(c.out, line)
	}
	c.dim.Fprintln(c.out, branding.Tagline())
	fmt.Fprintln(c.out)
}

// Info prints a plain status line.
func (c *Console) Info(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Success prints a status line marked as done.
func (c *Console) Success(format string, args ...any) {
	c.success.Fprint(c.out, "✓ ")
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Warn prints a warning to stderr.
func (c *Console) Warn(format string, args ...any) {
	c.warn.Fprint(c.err, "warning: ")
	fmt.Fprintf(c.err, format+"\n", args...)
}

// Error prints an error to stderr.
func (c *Console) Error(format string, args ...any) {
	c.failure.Fprint(c.err, "error: ")
	fmt.Fprintf(c.err, format+"\n", args...)
}

// Step prints one line of a progress checklist.
func (c *Console) Step(label, detail string) {
	c.accent.Fprint(c.out, "• ")
	c.bold.Fprint(c.out, label)
	if detail != "" {
		c.dim.Fprintf(c.out, " (%s)", detail)
	}
	fmt.Fprintln(c.out)
}

// Summary prints a titled block of indented lines.
func (c *Console) Summary(title string, lines []string) {
	fmt.Fprintln(c.out)
	c.bold.Fprintln(c.out, title)
	for _, l := range lines {
		fmt.Fprintf(c.out, "  %s\n", l)
	}
}
