package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ChandlerJayCalkins/cminus/internal/scanner"
	"github.com/ChandlerJayCalkins/cminus/internal/token"
)

func collect(src string) []token.Token {
	s := scanner.New(src, nil, false)
	var toks []token.Token
	for {
		tok := s.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestScansKeywordsAndIdent(t *testing.T) {
	toks := collect("int x;")
	require.Equal(t, token.KwInt, toks[0].Kind)
	require.Equal(t, token.Ident, toks[1].Kind)
	require.Equal(t, "x", toks[1].Str)
	require.Equal(t, token.Semi, toks[2].Kind)
	require.Equal(t, token.EOF, toks[3].Kind)
}

func TestScansIntLiteral(t *testing.T) {
	toks := collect("42")
	require.Equal(t, token.IntLit, toks[0].Kind)
	require.Equal(t, 42, toks[0].Num)
}

func TestScansCompoundAssignOperators(t *testing.T) {
	toks := collect("+= -= *= /= ++ --")
	kinds := make([]token.Kind, 0, 6)
	for _, tok := range toks[:6] {
		kinds = append(kinds, tok.Kind)
	}
	require.Equal(t, []token.Kind{
		token.AddAssign, token.SubAssign, token.MulAssign,
		token.DivAssign, token.Inc, token.Dec,
	}, kinds)
}

func TestSkipsLineAndBlockComments(t *testing.T) {
	toks := collect("// comment\nint /* inline */ x;")
	require.Equal(t, token.KwInt, toks[0].Kind)
	require.Equal(t, 2, toks[0].Line)
	require.Equal(t, token.Ident, toks[1].Kind)
}

func TestTracksLineNumbersAcrossNewlines(t *testing.T) {
	toks := collect("int\nx\n;")
	require.Equal(t, 1, toks[0].Line)
	require.Equal(t, 2, toks[1].Line)
	require.Equal(t, 3, toks[2].Line)
}
