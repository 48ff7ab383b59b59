package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ChandlerJayCalkins/cminus/internal/ast"
	"github.com/ChandlerJayCalkins/cminus/internal/codegen"
	"github.com/ChandlerJayCalkins/cminus/internal/diag"
	"github.com/ChandlerJayCalkins/cminus/internal/parser"
	"github.com/ChandlerJayCalkins/cminus/internal/scanner"
	"github.com/ChandlerJayCalkins/cminus/internal/sema"
)

func TestFullPipelineCompilesSimpleProgram(t *testing.T) {
	src := "int main() { output(1 + 2); return 0; }"

	tree := ast.NewTree()
	var diagBuf strings.Builder
	sink := diag.NewSink(&diagBuf, false)

	scan := scanner.New(src, nil, false)
	p := parser.New(scan, tree, sink, nil, false)
	root := p.ParseProgram()
	require.Equal(t, 0, sink.Errors())

	sema.New(tree, sink).Analyze(root)
	require.Equal(t, 0, sink.Errors(), diagBuf.String())

	var asm strings.Builder
	codegen.New(tree, &asm, 0).Emit(root, "test.cm")
	require.Contains(t, asm.String(), "main:")
}

func TestFullPipelineReportsUndeclaredSymbol(t *testing.T) {
	src := "int main() { return y; }"

	tree := ast.NewTree()
	var diagBuf strings.Builder
	sink := diag.NewSink(&diagBuf, false)

	scan := scanner.New(src, nil, false)
	p := parser.New(scan, tree, sink, nil, false)
	root := p.ParseProgram()

	sema.New(tree, sink).Analyze(root)

	require.Equal(t, 1, sink.Errors())
	require.Contains(t, diagBuf.String(), `Symbol "y" is not declared`)
}
