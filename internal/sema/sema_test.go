package sema_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ChandlerJayCalkins/cminus/internal/ast"
	"github.com/ChandlerJayCalkins/cminus/internal/diag"
	"github.com/ChandlerJayCalkins/cminus/internal/sema"
)

func newFunc(tree *ast.Tree, name string, returnType ast.ExpType, body ast.NodeID) ast.NodeID {
	id := ast.New(tree, ast.KindFunc, 1, returnType, ast.NotOp, false, false, ast.InvalidNode, body)
	tree.Node(id).Value.Str = name
	return id
}

func newVar(tree *ast.Tree, name string, line int, t ast.ExpType) ast.NodeID {
	id := ast.New(tree, ast.KindVar, line, t, ast.NotOp, false, false)
	tree.Node(id).Value.Str = name
	return id
}

func TestMissingMainReportsLinkerError(t *testing.T) {
	tree := ast.NewTree()
	var sb strings.Builder
	sink := diag.NewSink(&sb, false)

	f := newFunc(tree, "helper", ast.Void, ast.InvalidNode)

	sema.New(tree, sink).Analyze(f)

	require.Equal(t, 1, sink.Errors())
	require.Contains(t, sb.String(), `A function named 'main' with no parameters must be defined.`)
}

func TestMainPresentReportsNoLinkerError(t *testing.T) {
	tree := ast.NewTree()
	var sb strings.Builder
	sink := diag.NewSink(&sb, false)

	f := newFunc(tree, "main", ast.Void, ast.InvalidNode)

	sema.New(tree, sink).Analyze(f)

	require.Equal(t, 0, sink.Errors())
}

func TestDuplicateDeclarationInSameScopeErrors(t *testing.T) {
	tree := ast.NewTree()
	var sb strings.Builder
	sink := diag.NewSink(&sb, false)

	a1 := newVar(tree, "x", 1, ast.Int)
	a2 := newVar(tree, "x", 2, ast.Int)
	tree.AddSibling(a1, a2)

	body := ast.New(tree, ast.KindCompound, 1, ast.Void, ast.NotOp, false, false, a1)
	f := newFunc(tree, "main", ast.Void, body)

	sema.New(tree, sink).Analyze(f)

	require.Equal(t, 1, sink.Errors())
	require.Contains(t, sb.String(), `Symbol 'x' is already declared at line 1.`)
}

func TestBreakOutsideLoopErrors(t *testing.T) {
	tree := ast.NewTree()
	var sb strings.Builder
	sink := diag.NewSink(&sb, false)

	brk := ast.New(tree, ast.KindBreak, 5, ast.Void, ast.NotOp, false, false)
	body := ast.New(tree, ast.KindCompound, 5, ast.Void, ast.NotOp, false, false, brk)
	f := newFunc(tree, "main", ast.Void, body)

	sema.New(tree, sink).Analyze(f)

	require.Equal(t, 1, sink.Errors())
	require.Contains(t, sb.String(), "Cannot have a break statement outside of a loop")
}

func TestUseOfUndeclaredSymbolErrors(t *testing.T) {
	tree := ast.NewTree()
	var sb strings.Builder
	sink := diag.NewSink(&sb, false)

	ref := ast.New(tree, ast.KindId, 3, ast.Undefined, ast.NotOp, false, false)
	tree.Node(ref).Value.Str = "undeclared"

	ret := ast.New(tree, ast.KindReturn, 3, ast.Void, ast.NotOp, false, false, ref)
	body := ast.New(tree, ast.KindCompound, 1, ast.Void, ast.NotOp, false, false, ret)
	f := newFunc(tree, "main", ast.Void, body)

	sema.New(tree, sink).Analyze(f)

	// The second error is the void main returning a value.
	require.Equal(t, 2, sink.Errors())
	require.Contains(t, sb.String(), `Symbol "undeclared" is not declared`)
}

func newConstInt(tree *ast.Tree, line, num int) ast.NodeID {
	id := ast.New(tree, ast.KindConst, line, ast.Int, ast.NotOp, false, false)
	tree.Node(id).Value.Num = num
	return id
}

func TestVarDeclWithConstantInitializerOfMatchingTypeIsClean(t *testing.T) {
	tree := ast.NewTree()
	var sb strings.Builder
	sink := diag.NewSink(&sb, false)

	init := newConstInt(tree, 1, 7)
	v := ast.New(tree, ast.KindVar, 1, ast.Int, ast.NotOp, false, false, init)
	tree.Node(v).Value.Str = "x"

	body := ast.New(tree, ast.KindCompound, 1, ast.Void, ast.NotOp, false, false, v)
	f := newFunc(tree, "main", ast.Void, body)

	sema.New(tree, sink).Analyze(f)

	require.Equal(t, 0, sink.Errors(), sb.String())
}

func TestVarDeclWithMismatchedInitializerTypeErrors(t *testing.T) {
	tree := ast.NewTree()
	var sb strings.Builder
	sink := diag.NewSink(&sb, false)

	init := ast.New(tree, ast.KindConst, 1, ast.Bool, ast.NotOp, false, false)
	v := ast.New(tree, ast.KindVar, 1, ast.Int, ast.NotOp, false, false, init)
	tree.Node(v).Value.Str = "x"

	body := ast.New(tree, ast.KindCompound, 1, ast.Void, ast.NotOp, false, false, v)
	f := newFunc(tree, "main", ast.Void, body)

	sema.New(tree, sink).Analyze(f)

	require.Equal(t, 1, sink.Errors())
	require.Contains(t, sb.String(), `Initializer for variable "x" of type int is of type bool`)
}

func TestVarDeclWithNonConstantInitializerErrors(t *testing.T) {
	tree := ast.NewTree()
	var sb strings.Builder
	sink := diag.NewSink(&sb, false)

	other := newVar(tree, "y", 1, ast.Int)
	ref := ast.New(tree, ast.KindId, 2, ast.Undefined, ast.NotOp, false, false)
	tree.Node(ref).Value.Str = "y"
	v := ast.New(tree, ast.KindVar, 2, ast.Int, ast.NotOp, false, false, ref)
	tree.Node(v).Value.Str = "x"
	tree.AddSibling(other, v)

	body := ast.New(tree, ast.KindCompound, 1, ast.Void, ast.NotOp, false, false, other)
	f := newFunc(tree, "main", ast.Void, body)

	sema.New(tree, sink).Analyze(f)

	require.Contains(t, sb.String(), `Initializer for variable "x" is not a constant expression`)
}

func TestForLoopIterVarIsNotTreatedAsUninitializedVarDecl(t *testing.T) {
	tree := ast.NewTree()
	var sb strings.Builder
	sink := diag.NewSink(&sb, false)

	lo := newConstInt(tree, 1, 0)
	hi := newConstInt(tree, 1, 10)
	rangeID := ast.New(tree, ast.KindRange, 1, ast.Void, ast.NotOp, false, false, lo, hi)
	iter := ast.New(tree, ast.KindVar, 1, ast.Int, ast.NotOp, false, false, rangeID)
	tree.Node(iter).Value.Str = "i"
	tree.Node(iter).IsIterVar = true

	body := ast.New(tree, ast.KindCompound, 1, ast.Void, ast.NotOp, false, false, ast.InvalidNode)
	forStmt := ast.New(tree, ast.KindFor, 1, ast.Void, ast.NotOp, false, false, iter, body)
	mainBody := ast.New(tree, ast.KindCompound, 1, ast.Void, ast.NotOp, false, false, forStmt)
	f := newFunc(tree, "main", ast.Void, mainBody)

	sema.New(tree, sink).Analyze(f)

	require.Equal(t, 0, sink.Errors(), sb.String())
}

func TestPlainAssignmentRequiresMatchingArrayness(t *testing.T) {
	tree := ast.NewTree()
	var sb strings.Builder
	sink := diag.NewSink(&sb, false)

	arr := ast.New(tree, ast.KindVar, 1, ast.Int, ast.NotOp, true, false)
	tree.Node(arr).Value.Str = "a"
	tree.Node(arr).Value.Num = 5
	x := newVar(tree, "x", 2, ast.Int)
	tree.AddSibling(arr, x)

	lhs := ast.New(tree, ast.KindId, 3, ast.Undefined, ast.NotOp, false, false)
	tree.Node(lhs).Value.Str = "a"
	rhs := ast.New(tree, ast.KindId, 3, ast.Undefined, ast.NotOp, false, false)
	tree.Node(rhs).Value.Str = "x"
	assi := ast.New(tree, ast.KindAssign, 3, ast.Undefined, ast.Assi, false, false, lhs, rhs)

	ret := ast.New(tree, ast.KindReturn, 3, ast.Void, ast.NotOp, false, false)
	tree.AddSibling(assi, ret)
	body := ast.New(tree, ast.KindCompound, 3, ast.Void, ast.NotOp, false, false, assi)
	f := newFunc(tree, "main", ast.Void, body)
	tree.AddSibling(x, f)

	sema.New(tree, sink).Analyze(arr)

	require.Equal(t, 1, sink.Errors())
	require.Contains(t, sb.String(), "Expecting array on left side and not array on right side of assignment operator")
}

func TestCompoundAssignmentRejectsNonInt(t *testing.T) {
	tree := ast.NewTree()
	var sb strings.Builder
	sink := diag.NewSink(&sb, false)

	b := newVar(tree, "b", 1, ast.Bool)

	lhs := ast.New(tree, ast.KindId, 2, ast.Undefined, ast.NotOp, false, false)
	tree.Node(lhs).Value.Str = "b"
	rhs := ast.New(tree, ast.KindId, 2, ast.Undefined, ast.NotOp, false, false)
	tree.Node(rhs).Value.Str = "b"
	assi := ast.New(tree, ast.KindAssign, 2, ast.Undefined, ast.Addas, false, false, lhs, rhs)

	ret := ast.New(tree, ast.KindReturn, 2, ast.Void, ast.NotOp, false, false)
	tree.AddSibling(assi, ret)
	body := ast.New(tree, ast.KindCompound, 2, ast.Void, ast.NotOp, false, false, assi)
	f := newFunc(tree, "main", ast.Void, body)
	tree.AddSibling(b, f)

	sema.New(tree, sink).Analyze(b)

	require.Equal(t, 2, sink.Errors())
	require.Contains(t, sb.String(), "Expecting type int on left side of assignment operator but got type bool")
	require.Contains(t, sb.String(), "Expecting type int on right side of assignment operator but got type bool")
}

func TestUseBeforeInitWarns(t *testing.T) {
	tree := ast.NewTree()
	var sb strings.Builder
	sink := diag.NewSink(&sb, false)

	g := newVar(tree, "x", 1, ast.Int)

	lhs := ast.New(tree, ast.KindId, 3, ast.Undefined, ast.NotOp, false, false)
	tree.Node(lhs).Value.Str = "x"
	rhsID := ast.New(tree, ast.KindId, 3, ast.Undefined, ast.NotOp, false, false)
	tree.Node(rhsID).Value.Str = "x"
	one := newConstInt(tree, 3, 1)
	sum := ast.New(tree, ast.KindOp, 3, ast.Undefined, ast.Add, false, false, rhsID, one)
	assi := ast.New(tree, ast.KindAssign, 3, ast.Undefined, ast.Assi, false, false, lhs, sum)

	ret := ast.New(tree, ast.KindReturn, 3, ast.Void, ast.NotOp, false, false)
	tree.AddSibling(assi, ret)

	body := ast.New(tree, ast.KindCompound, 3, ast.Void, ast.NotOp, false, false, assi)
	f := newFunc(tree, "main", ast.Void, body)
	tree.AddSibling(g, f)

	sema.New(tree, sink).Analyze(g)

	require.Equal(t, 0, sink.Errors())
	require.Equal(t, 1, sink.Warnings())
	require.Contains(t, sb.String(), `WARNING(3):`)
	require.Contains(t, sb.String(), `"x"`)
}

func TestArrayFrameLayout(t *testing.T) {
	tree := ast.NewTree()
	var sb strings.Builder
	sink := diag.NewSink(&sb, false)

	a := ast.New(tree, ast.KindVar, 1, ast.Int, ast.NotOp, true, false)
	tree.Node(a).Value.Str = "a"
	tree.Node(a).Value.Num = 10

	ret := ast.New(tree, ast.KindReturn, 2, ast.Void, ast.NotOp, false, false)
	body := ast.New(tree, ast.KindCompound, 2, ast.Void, ast.NotOp, false, false, ret)
	f := newFunc(tree, "main", ast.Void, body)
	tree.AddSibling(a, f)

	analyzer := sema.New(tree, sink)
	analyzer.Analyze(a)

	aNode := tree.Node(a)
	require.True(t, aNode.IsArray)
	require.Equal(t, 11, aNode.Size)
	require.Equal(t, ast.MemGlobal, aNode.MemSpace)
	require.Equal(t, -1, aNode.FOffset)
	require.Equal(t, -11, analyzer.GlobalFrameSize())
}

func TestFunctionScopeParamOffset(t *testing.T) {
	tree := ast.NewTree()
	var sb strings.Builder
	sink := diag.NewSink(&sb, false)

	p := ast.New(tree, ast.KindParm, 1, ast.Int, ast.NotOp, true, false)
	tree.Node(p).Value.Str = "p"

	q := newVar(tree, "q", 1, ast.Int)
	fRet := ast.New(tree, ast.KindReturn, 1, ast.Void, ast.NotOp, false, false)
	tree.AddSibling(q, fRet)
	fBody := ast.New(tree, ast.KindCompound, 1, ast.Void, ast.NotOp, false, false, q)
	fID := ast.New(tree, ast.KindFunc, 1, ast.Void, ast.NotOp, false, false, p, fBody)
	tree.Node(fID).Value.Str = "f"

	mainRet := ast.New(tree, ast.KindReturn, 1, ast.Void, ast.NotOp, false, false)
	mainBody := ast.New(tree, ast.KindCompound, 1, ast.Void, ast.NotOp, false, false, mainRet)
	mainID := newFunc(tree, "main", ast.Void, mainBody)
	tree.AddSibling(fID, mainID)

	sema.New(tree, sink).Analyze(fID)

	require.Equal(t, 0, sink.Errors(), sb.String())
	require.Equal(t, -2, tree.Node(p).FOffset)
	require.Equal(t, ast.MemParameter, tree.Node(p).MemSpace)
	require.Equal(t, -3, tree.Node(q).FOffset)
	require.Equal(t, ast.MemLocal, tree.Node(q).MemSpace)
	require.Equal(t, -4, tree.Node(fID).Size)
}

func TestGlobalVarOffsetsDecreaseAcrossDeclarations(t *testing.T) {
	tree := ast.NewTree()
	var sb strings.Builder
	sink := diag.NewSink(&sb, false)

	g1 := newVar(tree, "a", 1, ast.Int)
	g2 := newVar(tree, "b", 2, ast.Int)
	tree.AddSibling(g1, g2)
	f := newFunc(tree, "main", ast.Void, ast.InvalidNode)
	tree.AddSibling(g1, f)

	sema.New(tree, sink).Analyze(g1)

	require.Equal(t, ast.MemGlobal, tree.Node(g1).MemSpace)
	require.Equal(t, 0, tree.Node(g1).FOffset)
	require.Equal(t, ast.MemGlobal, tree.Node(g2).MemSpace)
	require.Equal(t, -1, tree.Node(g2).FOffset)
}
