package ast_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/ChandlerJayCalkins/cminus/internal/ast"
)

func TestAddSiblingWalksToTail(t *testing.T) {
	tree := ast.NewTree()
	a := ast.New(tree, ast.KindVar, 1, ast.Int, ast.NotOp, false, false)
	b := ast.New(tree, ast.KindVar, 2, ast.Int, ast.NotOp, false, false)
	c := ast.New(tree, ast.KindVar, 3, ast.Int, ast.NotOp, false, false)

	tree.AddSibling(a, b)
	tree.AddSibling(a, c)

	require.Equal(t, b, tree.Node(a).Sibling)
	require.Equal(t, c, tree.Node(b).Sibling)
	require.Equal(t, ast.InvalidNode, tree.Node(c).Sibling)
}

func TestAddSiblingOnInvalidNodeIsNoop(t *testing.T) {
	tree := ast.NewTree()
	require.NotPanics(t, func() {
		tree.AddSibling(ast.InvalidNode, ast.InvalidNode)
	})
}

func TestFprintConstInt(t *testing.T) {
	tree := ast.NewTree()
	n := ast.New(tree, ast.KindConst, 7, ast.Int, ast.NotOp, false, false)
	tree.Node(n).Value.Num = 42

	var sb strings.Builder
	ast.Fprint(&sb, tree, n, false, false)

	require.Equal(t, "Const 42 [line: 7]\n", sb.String())
}

func TestFprintVarWithTypeAndMem(t *testing.T) {
	tree := ast.NewTree()
	n := ast.New(tree, ast.KindVar, 1, ast.Int, ast.NotOp, true, false)
	tree.Node(n).Value.Str = "a"
	tree.Node(n).MemSpace = ast.MemGlobal
	tree.Node(n).FOffset = -1
	tree.Node(n).Size = 11

	var sb strings.Builder
	ast.Fprint(&sb, tree, n, true, true)

	require.Equal(t, "Var: a of array of type int [mem: Global loc: -1 size: 11] [line: 1]\n", sb.String())
}

func TestNewLeavesUnsetChildSlotsInvalid(t *testing.T) {
	tree := ast.NewTree()
	only := ast.New(tree, ast.KindConst, 1, ast.Int, ast.NotOp, false, false)
	n := ast.New(tree, ast.KindReturn, 2, ast.Void, ast.NotOp, false, false, only)

	got := tree.Node(n)
	want := &ast.Node{
		Kind:     ast.KindReturn,
		Line:     2,
		Children: [ast.MaxChildren]ast.NodeID{only, ast.InvalidNode, ast.InvalidNode},
		Sibling:  ast.InvalidNode,
	}

	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(ast.Node{}, "ExpType", "OpKind")); diff != "" {
		t.Errorf("node mismatch (-want +got):\n%s", diff)
	}
}

func TestFprintChildThenSibling(t *testing.T) {
	tree := ast.NewTree()
	child := ast.New(tree, ast.KindConst, 2, ast.Int, ast.NotOp, false, false)
	tree.Node(child).Value.Num = 1
	sib := ast.New(tree, ast.KindConst, 3, ast.Int, ast.NotOp, false, false)
	tree.Node(sib).Value.Num = 2
	root := ast.New(tree, ast.KindReturn, 1, ast.Void, ast.NotOp, false, false, child)
	tree.AddSibling(root, sib)

	var sb strings.Builder
	ast.Fprint(&sb, tree, root, false, false)

	want := "Return [line: 1]\n" +
		".   Child: 0 Const 1 [line: 2]\n" +
		"Sibling: 1 Const 2 [line: 3]\n"
	require.Equal(t, want, sb.String())
}
