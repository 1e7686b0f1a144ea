// Package ui provides consistent styled output for the installer CLI.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Writer provides styled output methods that respect color settings.
type Writer struct {
	out    io.Writer
	errOut io.Writer

	green  *color.Color
	red    *color.Color
	yellow *color.Color
	cyan   *color.Color
	bold   *color.Color
}

// NewWriter creates a Writer that writes to stdout/stderr.
// Color is disabled when noColor is true, NO_COLOR is set, or stdout is not
// a terminal.
func NewWriter(noColor bool) *Writer {
	return NewWriterWithOutputs(os.Stdout, os.Stderr, noColor || color.NoColor)
}

// NewWriterWithOutputs creates a Writer with custom output destinations.
// Intended for testing.
func NewWriterWithOutputs(out, errOut io.Writer, noColor bool) *Writer {
	return &Writer{
		out:    out,
		errOut: errOut,
		green:  newColor(noColor, color.FgGreen),
		red:    newColor(noColor, color.FgRed),
		yellow: newColor(noColor, color.FgYellow),
		cyan:   newColor(noColor, color.FgCyan),
		bold:   newColor(noColor, color.Bold),
	}
}

// newColor pins the color on or off so the global TTY detection in
// fatih/color does not override an explicit choice.
func newColor(noColor bool, attr color.Attribute) *color.Color {
	c := color.New(attr)
	if noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}

	return c
}

// Success prints a success message with a green checkmark prefix.
func (w *Writer) Success(msg string) {
	writeLine(w.out, w.green.Sprint("✔"), msg)
}

// Warning prints a warning message to stderr with a yellow prefix.
func (w *Writer) Warning(msg string) {
	writeLine(w.errOut, w.yellow.Sprint("warning:"), msg)
}

// Error prints an error message to stderr with a red cross prefix.
func (w *Writer) Error(msg string) {
	writeLine(w.errOut, w.red.Sprint("✘"), msg)
}

// Info prints an informational message with a cyan prefix.
func (w *Writer) Info(msg string) {
	writeLine(w.out, w.cyan.Sprint("info:"), msg)
}

// Bold returns text in bold.
func (w *Writer) Bold(msg string) string {
	return w.bold.Sprint(msg)
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Infof prints a formatted informational message.
func (w *Writer) Infof(format string, args ...any) {
	w.Info(fmt.Sprintf(format, args...))
}

// Printf writes unstyled text to stdout.
func (w *Writer) Printf(format string, args ...any) {
	if _, err := fmt.Fprintf(w.out, format, args...); err != nil {
		return
	}
}

func writeLine(out io.Writer, prefix, msg string) {
	if _, err := fmt.Fprintf(out, "%s %s\n", prefix, msg); err != nil {
		// Best-effort output; if stderr fails there's nothing useful to do.
		return
	}
}
