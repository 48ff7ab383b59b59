package sema

import "github.com/ChandlerJayCalkins/cminus/internal/ast"

// addBuiltins declares the language's seven standard-library functions in
// global scope before the user's program is traversed. Their Line is -1 so
// they never collide with a real diagnostic's line number.
func (a *Analyzer) addBuiltins() {
	a.addOutputFunc("output", ast.Int)
	a.addOutputFunc("outputb", ast.Bool)
	a.addOutputFunc("outputc", ast.Char)

	a.addInputFunc("input", ast.Int)
	a.addInputFunc("inputb", ast.Bool)
	a.addInputFunc("inputc", ast.Char)

	a.addInputFunc("outnl", ast.Void)
}

// addOutputFunc declares a one-parameter builtin of the form
// "void name(type value)".
func (a *Analyzer) addOutputFunc(name string, paramType ast.ExpType) {
	parmID := ast.New(a.tree, ast.KindParm, -1, paramType, ast.NotOp, false, false)
	a.tree.Node(parmID).Value.Str = "value"

	funcID := ast.New(a.tree, ast.KindFunc, -1, ast.Void, ast.NotOp, false, false, parmID)
	a.tree.Node(funcID).Value.Str = name

	a.declareFunc(name, funcID, parmID)
}

// addInputFunc declares a parameterless builtin of the form
// "type name(void)".
func (a *Analyzer) addInputFunc(name string, returnType ast.ExpType) {
	funcID := ast.New(a.tree, ast.KindFunc, -1, returnType, ast.NotOp, false, false)
	a.tree.Node(funcID).Value.Str = name

	a.declareFunc(name, funcID, ast.InvalidNode)
}

func (a *Analyzer) declareFunc(name string, funcID, firstParm ast.NodeID) {
	node := a.tree.Node(funcID)
	a.table.InsertGlobal(name, funcID, node)

	a.table.EnterFunc(name)
	if firstParm != ast.InvalidNode {
		pn := a.tree.Node(firstParm)
		pn.Size = 1
		a.table.Insert(pn.Value.Str, firstParm, pn, true)
	}
	a.leaveScope()
}
