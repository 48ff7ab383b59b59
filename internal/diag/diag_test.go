package diag_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ChandlerJayCalkins/cminus/internal/diag"
)

func TestErrorfIncrementsAndFormats(t *testing.T) {
	var sb strings.Builder
	s := diag.NewSink(&sb, false)

	s.Errorf(12, "symbol %q redeclared", "x")

	require.Equal(t, 1, s.Errors())
	require.Equal(t, 0, s.Warnings())
	require.Equal(t, "ERROR(12): symbol \"x\" redeclared\n", sb.String())
}

func TestWarningfIncrementsAndFormats(t *testing.T) {
	var sb strings.Builder
	s := diag.NewSink(&sb, false)

	s.Warningf(3, "variable %q is never used", "tmp")

	require.Equal(t, 0, s.Errors())
	require.Equal(t, 1, s.Warnings())
	require.Equal(t, "WARNING(3): variable \"tmp\" is never used\n", sb.String())
}

func TestTaggedErrorIncrements(t *testing.T) {
	var sb strings.Builder
	s := diag.NewSink(&sb, false)

	s.TaggedError("ARGLIST", "no input file given")

	require.Equal(t, 1, s.Errors())
	require.Equal(t, "ERROR(ARGLIST): no input file given\n", sb.String())
}

func TestSanityDoesNotIncrement(t *testing.T) {
	var sb strings.Builder
	s := diag.NewSink(&sb, false)

	s.Sanity("SymbolTable", "You cannot leave global scope")

	require.Equal(t, 0, s.Errors())
	require.Equal(t, "ERROR(SymbolTable): You cannot leave global scope\n", sb.String())
}

func TestSummary(t *testing.T) {
	var sb strings.Builder
	s := diag.NewSink(&sb, false)

	s.Errorf(1, "bad")
	s.Warningf(2, "meh")
	sb.Reset()

	s.Summary()

	require.Equal(t, "Number of warnings: 1\nNumber of errors: 1\n", sb.String())
}
