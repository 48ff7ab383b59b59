package sema

import (
	"github.com/ChandlerJayCalkins/cminus/internal/ast"
	"github.com/ChandlerJayCalkins/cminus/internal/diag"
	"github.com/ChandlerJayCalkins/cminus/internal/symtab"
)

// Analyzer performs the single traversal that resolves scopes, checks
// types, tracks initialization and break-in-loop validity, and assigns
// frame offsets to every declaration in an [ast.Tree].
type Analyzer struct {
	tree  *ast.Tree
	table *symtab.SymbolTable
	sink  *diag.Sink
	opts  *options

	currentFunc ast.NodeID
}

// New returns an Analyzer over tree, reporting diagnostics to sink and
// applying any given [Option]s.
func New(tree *ast.Tree, sink *diag.Sink, opts ...Option) *Analyzer {
	o := defaultOptions()
	Options(opts).apply(o)
	return &Analyzer{
		tree:        tree,
		table:       symtab.New(),
		sink:        sink,
		opts:        o,
		currentFunc: ast.InvalidNode,
	}
}

// leaveScope dumps the symbol table, when tracing is enabled, and pops the
// current scope.
func (a *Analyzer) leaveScope() {
	if a.opts.traceSymtab {
		a.table.DebugDump(a.opts.log)
	}
	a.table.Leave(a.sink)
}

// Analyze declares the standard-library builtins and checks every
// top-level declaration reachable from root, then reports a missing
// "main" if one was required and never seen.
func (a *Analyzer) Analyze(root ast.NodeID) {
	a.addBuiltins()
	a.traverse(root, Context{ScopeName: "global", CheckInit: true})

	mainID, ok := a.table.LookupGlobal("main")
	validMain := ok
	if ok {
		mainNode := a.tree.Node(mainID)
		validMain = mainNode.Kind == ast.KindFunc && mainNode.Children[0] == ast.InvalidNode
	}
	if !validMain {
		a.sink.TaggedError("LINKER", "A function named 'main' with no parameters must be defined.")
	}

	a.checkUnused(a.table.Top())
}

// GlobalFrameSize returns the offset just past the last global declared,
// the size of the data segment the code generator must reserve.
func (a *Analyzer) GlobalFrameSize() int {
	return a.table.CurrentFrameSize()
}

// traverse dispatches id to its kind-specific handler and then visits its
// sibling under the same context. A missing node is a no-op, matching the
// original recursive descent's use of null children as "absent".
func (a *Analyzer) traverse(id ast.NodeID, ctx Context) {
	if id == ast.InvalidNode {
		return
	}
	n := a.tree.Node(id)

	switch n.Kind {
	case ast.KindVar:
		a.handleVarDecl(id, ctx)
	case ast.KindFunc:
		a.handleFuncDecl(id, ctx)
	case ast.KindParm:
		// Parameters are declared by handleFuncDecl; nothing to do standalone.
	case ast.KindCompound:
		a.handleCompound(id, ctx)
	case ast.KindIf:
		a.handleIfWhile(id, ctx, false)
	case ast.KindWhile:
		a.handleIfWhile(id, ctx, true)
	case ast.KindFor:
		a.handleFor(id, ctx)
	case ast.KindRange:
		a.handleRange(id, ctx)
	case ast.KindReturn:
		a.handleReturn(id, ctx)
	case ast.KindBreak:
		a.handleBreak(id, ctx)
	case ast.KindAssign:
		a.handleAssi(id, ctx)
	case ast.KindOp:
		a.handleOp(id, ctx)
	case ast.KindId:
		a.handleId(id, ctx)
	case ast.KindCall:
		a.handleCall(id, ctx)
	case ast.KindConst:
		a.handleConst(id, ctx)
	}

	a.traverse(n.Sibling, ctx)
}

// callChildren visits id's children left to right under scopeName, marking
// every child's init-check true except the one at ignoreIndex (-1 means
// none are ignored).
func (a *Analyzer) callChildren(id ast.NodeID, scopeName string, ignoreIndex int) {
	n := a.tree.Node(id)
	for i, c := range n.Children {
		if c == ast.InvalidNode {
			continue
		}
		a.traverse(c, Context{ScopeName: scopeName, CheckInit: i != ignoreIndex})
	}
}

// callSibling visits id's sibling under scopeName with init-checking on.
func (a *Analyzer) callSibling(id ast.NodeID, scopeName string) {
	n := a.tree.Node(id)
	a.traverse(n.Sibling, Context{ScopeName: scopeName, CheckInit: true})
}

// checkUnused walks a scope's declarations in order, warning about any
// variable, parameter, or function that was never read or called. A
// required built-in or "main" is exempt even when unused.
func (a *Analyzer) checkUnused(scope *symtab.Scope) {
	for _, name := range scope.Names() {
		id, ok := scope.Lookup(name)
		if !ok {
			continue
		}
		n := a.tree.Node(id)
		if n.Used || (n.Kind == ast.KindFunc && symtab.IsRequiredFunc(name)) {
			continue
		}
		var kind string
		switch n.Kind {
		case ast.KindVar:
			kind = "variable"
		case ast.KindParm:
			kind = "parameter"
		case ast.KindFunc:
			kind = "function"
		default:
			continue
		}
		a.sink.Warningf(n.Line, "The %s '%s' seems not to be used.", kind, name)
	}
}
