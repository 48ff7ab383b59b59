package config

import (
	"fmt"
	"strings"
)

// TraceFlag selects one piece of compiler-internal tracing, enabled from
// the command line with -d (scanner and parser) and -D (symbol table).
type TraceFlag uint8

const (
	// TraceScanner echoes each token as the scanner produces it.
	TraceScanner TraceFlag = 1 << iota

	// TraceParse echoes each grammar rule as the parser enters it.
	TraceParse

	// TraceAnalyze names a dump of the annotated syntax tree after semantic
	// analysis. No command-line flag sets it and nothing reads it.
	TraceAnalyze

	// TraceSymtab dumps the symbol table's contents as scopes are left.
	TraceSymtab
)

// TraceFlags is the bitmask of a run's enabled trace flags.
type TraceFlags = BitMask[TraceFlag]

// ColorMode controls whether diagnostic output is colorized.
type ColorMode uint8

const (
	// ColorAuto colorizes only when standard error is a terminal.
	ColorAuto ColorMode = iota

	// ColorAlways colorizes unconditionally.
	ColorAlways

	// ColorNever never colorizes.
	ColorNever
)

// MarshalText implements [encoding.TextMarshaler].
func (c ColorMode) MarshalText() ([]byte, error) {
	switch c {
	case ColorAuto:
		return []byte("auto"), nil
	case ColorAlways:
		return []byte("always"), nil
	case ColorNever:
		return []byte("never"), nil
	default:
		return nil, fmt.Errorf("unknown color mode %d", c)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (c *ColorMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "auto":
		*c = ColorAuto
	case "always", "true", "on":
		*c = ColorAlways
	case "never", "false", "off":
		*c = ColorNever
	default:
		return fmt.Errorf("unknown color mode %q", string(text))
	}
	return nil
}
