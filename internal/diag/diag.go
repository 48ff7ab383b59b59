// Package diag collects the compiler's ERROR/WARNING stream.
//
// The original tool kept two process-wide ints. A [Sink] replaces them with
// a value the driver owns and queries at the end of a run, so semantic
// analysis stays reentrant: nothing here is package-level mutable state.
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Sink accumulates diagnostics and the running error/warning counts for one
// compilation.
type Sink struct {
	out      io.Writer
	errors   int
	warnings int

	errorTag   *color.Color
	warningTag *color.Color
}

// NewSink returns a Sink writing to w. When useColor is true the ERROR/
// WARNING tags are always colorized; when it is false they never are,
// regardless of whether w is a terminal.
func NewSink(w io.Writer, useColor bool) *Sink {
	errorTag := color.New(color.FgRed, color.Bold)
	warningTag := color.New(color.FgYellow, color.Bold)
	if useColor {
		errorTag.EnableColor()
		warningTag.EnableColor()
	} else {
		errorTag.DisableColor()
		warningTag.DisableColor()
	}
	return &Sink{out: w, errorTag: errorTag, warningTag: warningTag}
}

// Errorf emits "ERROR(line): msg\n" and increments the error count.
func (s *Sink) Errorf(line int, format string, args ...any) {
	s.errors++
	s.errorTag.Fprintf(s.out, "ERROR(%d): ", line)
	fmt.Fprintf(s.out, format+"\n", args...)
}

// Warningf emits "WARNING(line): msg\n" and increments the warning count.
func (s *Sink) Warningf(line int, format string, args ...any) {
	s.warnings++
	s.warningTag.Fprintf(s.out, "WARNING(%d): ", line)
	fmt.Fprintf(s.out, format+"\n", args...)
}

// TaggedError emits "ERROR(tag): msg\n" for a non-line-numbered structural
// error (ARGLIST, LINKER) and increments the error count.
func (s *Sink) TaggedError(tag, format string, args ...any) {
	s.errors++
	s.errorTag.Fprintf(s.out, "ERROR(%s): ", tag)
	fmt.Fprintf(s.out, format+"\n", args...)
}

// Sanity emits "ERROR(tag): msg\n" for an internal invariant violation
// (SymbolTable, SemanticAnalyzer) without incrementing the error count: a
// well-formed pipeline never triggers one, so it should never gate code
// generation on its own.
func (s *Sink) Sanity(tag, format string, args ...any) {
	s.errorTag.Fprintf(s.out, "ERROR(%s): ", tag)
	fmt.Fprintf(s.out, format+"\n", args...)
}

// Errors returns the current error count.
func (s *Sink) Errors() int { return s.errors }

// Warnings returns the current warning count.
func (s *Sink) Warnings() int { return s.warnings }

// Summary writes the always-printed trailer: warning and error totals.
func (s *Sink) Summary() {
	fmt.Fprintf(s.out, "Number of warnings: %d\n", s.warnings)
	fmt.Fprintf(s.out, "Number of errors: %d\n", s.errors)
}
