// Package presenter renders user-facing CLI output: status lines, unified
// diffs and tables, with color support and a quiet mode.
package presenter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// Presenter is the CLI output surface
type Presenter interface {
	Error(err error, context string)
	Success(message string)
	Warning(message string)
	Info(message string)
	Section(title string)
	Diff(diff string)
	Table(headers []string, rows [][]string)
	SetQuiet(quiet bool)
	IsQuiet() bool
}

// ColorMode controls whether output is colored
type ColorMode int

const (
	// ColorAuto lets the color package decide based on the terminal
	ColorAuto ColorMode = iota
	// ColorAlways forces colored output
	ColorAlways
	// ColorNever disables colored output
	ColorNever
)

// TerminalPresenter writes to a pair of terminal streams
type TerminalPresenter struct {
	output      io.Writer
	errorOutput io.Writer
	colorMode   ColorMode
	quiet       bool
}

var _ Presenter = (*TerminalPresenter)(nil)

// New creates a TerminalPresenter on stdout and stderr
func New() *TerminalPresenter {
	return NewWithOptions(os.Stdout, os.Stderr, detectColorMode())
}

// NewWithOptions creates a TerminalPresenter with custom writers and color mode
func NewWithOptions(output, errorOutput io.Writer, colorMode ColorMode) *TerminalPresenter {
	switch colorMode {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	case ColorAuto:
	}

	return &TerminalPresenter{
		output:      output,
		errorOutput: errorOutput,
		colorMode:   colorMode,
	}
}

// detectColorMode honours NO_COLOR and AGENTS_MD_COLOR
func detectColorMode() ColorMode {
	if os.Getenv("NO_COLOR") != "" {
		return ColorNever
	}

	switch os.Getenv("AGENTS_MD_COLOR") {
	case "always", "force":
		return ColorAlways
	case "never", "off":
		return ColorNever
	default:
		return ColorAuto
	}
}

// Error writes err to the error stream. Errors are shown even in quiet mode.
func (p *TerminalPresenter) Error(err error, context string) {
	if err == nil {
		return
	}

	errorColor := color.New(color.FgRed, color.Bold)
	if context != "" {
		errorColor.Fprintf(p.errorOutput, "[ERROR] %s: %v\n", context, err)
		return
	}
	errorColor.Fprintf(p.errorOutput, "[ERROR] %v\n", err)
}

// Success writes a success line
func (p *TerminalPresenter) Success(message string) {
	if p.quiet {
		return
	}
	color.New(color.FgGreen, color.Bold).Fprintf(p.output, "✓ %s\n", message)
}

// Warning writes a warning line
func (p *TerminalPresenter) Warning(message string) {
	if p.quiet {
		return
	}
	color.New(color.FgYellow, color.Bold).Fprintf(p.output, "⚠ %s\n", message)
}

// Info writes a plain line
func (p *TerminalPresenter) Info(message string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.output, "%s\n", message)
}

// Section writes an underlined header
func (p *TerminalPresenter) Section(title string) {
	if p.quiet {
		return
	}

	headerColor := color.New(color.Bold)
	headerColor.Fprintf(p.output, "%s\n", title)
	headerColor.Fprintf(p.output, "%s\n", strings.Repeat("-", len(title)))
}

// Diff writes a unified diff, coloring added, removed and hunk lines. Diffs
// are the payload of a dry run, so they are written even in quiet mode.
func (p *TerminalPresenter) Diff(diff string) {
	if diff == "" {
		return
	}

	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	hunk := color.New(color.FgCyan)
	header := color.New(color.Bold)

	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			header.Fprint(p.output, line)
		case strings.HasPrefix(line, "@@"):
			hunk.Fprint(p.output, line)
		case strings.HasPrefix(line, "+"):
			added.Fprint(p.output, line)
		case strings.HasPrefix(line, "-"):
			removed.Fprint(p.output, line)
		default:
			fmt.Fprint(p.output, line)
		}
	}
	if !strings.HasSuffix(diff, "\n") {
		fmt.Fprintln(p.output)
	}
}

// Table writes rows as tab-aligned columns under headers. Tables are
// command payload and are written even in quiet mode.
func (p *TerminalPresenter) Table(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(p.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

// SetQuiet enables or disables quiet mode
func (p *TerminalPresenter) SetQuiet(quiet bool) {
	p.quiet = quiet
}

// IsQuiet reports whether quiet mode is enabled
func (p *TerminalPresenter) IsQuiet() bool {
	return p.quiet
}

var defaultPresenter = New()

// Default returns the presenter used by the package-level functions
func Default() *TerminalPresenter {
	return defaultPresenter
}

// Error writes an error using the default presenter
func Error(err error, context string) {
	defaultPresenter.Error(err, context)
}

// Success writes a success line using the default presenter
func Success(message string) {
	defaultPresenter.Success(message)
}

// Warning writes a warning line using the default presenter
func Warning(message string) {
	defaultPresenter.Warning(message)
}

// Info writes a plain line using the default presenter
func Info(message string) {
	defaultPresenter.Info(message)
}

// Section writes a header using the default presenter
func Section(title string) {
	defaultPresenter.Section(title)
}

// Diff writes a unified diff using the default presenter
func Diff(diff string) {
	defaultPresenter.Diff(diff)
}

// Table writes a table using the default presenter
func Table(headers []string, rows [][]string) {
	defaultPresenter.Table(headers, rows)
}

// SetQuiet toggles quiet mode on the default presenter
func SetQuiet(quiet bool) {
	defaultPresenter.SetQuiet(quiet)
}

// IsQuiet reports whether the default presenter is quiet
func IsQuiet() bool {
	return defaultPresenter.IsQuiet()
}
