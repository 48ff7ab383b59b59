package symtab

import (
	"fmt"
	"log/slog"

	"github.com/ChandlerJayCalkins/cminus/internal/ast"
	"github.com/ChandlerJayCalkins/cminus/internal/diag"
)

// loop-bearing scope names recognized by [SymbolTable.InLoop].
const (
	whileStmt     = "while-stmt"
	whileCmpdStmt = "while-cmpd-stmt"
	forStmt       = "for-stmt"
	forCmpdStmt   = "for-cmpd-stmt"
)

// SymbolTable is a stack of [Scope] frames plus a separate global data
// segment. Statics declared inside any function still land in the global
// segment: their storage outlives the call, only their name is local.
type SymbolTable struct {
	stack []*Scope

	global        *Scope
	stringCounter int
}

// New returns a table with just the global scope pushed.
func New() *SymbolTable {
	g := NewScope("global", 0)
	return &SymbolTable{stack: []*Scope{g}, global: g}
}

// Enter pushes a new nested scope whose offset cursor starts from the
// enclosing scope's current cursor, except a "for-stmt" scope, which
// reserves two extra slots below that for the loop's implicit iterator
// state.
func (t *SymbolTable) Enter(name string) {
	start := t.Top().CurrentOffset()
	if name == forStmt {
		start -= 2
	}
	t.stack = append(t.stack, NewScope(name, start))
}

// EnterFunc pushes a new scope for a function body, whose local frame
// offset starts just below the saved frame pointer and return address.
func (t *SymbolTable) EnterFunc(name string) {
	t.stack = append(t.stack, NewScope(name, -2))
}

// CurrentFrameSize returns the current offset cursor of the top scope,
// which becomes that scope's size once every declaration within it has
// been inserted.
func (t *SymbolTable) CurrentFrameSize() int {
	return t.Top().CurrentOffset()
}

// Leave pops the current scope. Leaving the global scope is a logic error a
// well-formed pipeline never triggers: it is reported through sink's
// [diag.Sink.Sanity] rather than panicking, and the stack is left
// untouched.
func (t *SymbolTable) Leave(sink *diag.Sink) {
	if len(t.stack) <= 1 {
		sink.Sanity("SymbolTable", "Attempted to leave the global scope")
		return
	}
	t.stack = t.stack[:len(t.stack)-1]
}

// AtGlobalScope reports whether the current scope is the outermost one.
func (t *SymbolTable) AtGlobalScope() bool {
	return len(t.stack) == 1
}

// Depth returns the number of live scopes, including the global scope.
func (t *SymbolTable) Depth() int {
	return len(t.stack)
}

// Top returns the innermost scope.
func (t *SymbolTable) Top() *Scope {
	return t.stack[len(t.stack)-1]
}

// Insert allocates storage for node and binds name to it in the current
// scope. A Func node is only ever bound, never assigned a frame slot.
// Static locals are allocated out of the global segment — their name is
// visible only in the declaring scope, but their storage persists for the
// program's lifetime — everything else is allocated out of the current
// scope's own offset cursor.
func (t *SymbolTable) Insert(name string, id ast.NodeID, node *ast.Node, isParameter bool) {
	top := t.Top()
	switch {
	case node.Kind == ast.KindFunc:
		// Functions are bound but never occupy a frame slot.
	case node.IsStatic && !t.AtGlobalScope():
		node.FOffset = t.global.incOffset(node, false)
		node.MemSpace = ast.MemStatic
	case t.AtGlobalScope():
		node.FOffset = t.global.incOffset(node, false)
		node.MemSpace = ast.MemGlobal
	case isParameter:
		node.FOffset = top.incOffset(node, true)
		node.MemSpace = ast.MemParameter
	default:
		node.FOffset = top.incOffset(node, false)
		node.MemSpace = ast.MemLocal
	}
	top.Insert(name, id)
}

// InsertGlobal binds name to node directly in the global scope, regardless
// of which scope is current. Used for declarations — the built-ins — that
// must always live in global scope even though they are declared before
// any user scope is pushed.
func (t *SymbolTable) InsertGlobal(name string, id ast.NodeID, node *ast.Node) {
	if node.Kind != ast.KindFunc {
		node.FOffset = t.global.incOffset(node, false)
		node.MemSpace = ast.MemGlobal
	}
	t.global.Insert(name, id)
}

// Lookup searches from the innermost scope outward, returning the first
// binding found.
func (t *SymbolTable) Lookup(name string) (ast.NodeID, bool) {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if id, ok := t.stack[i].Lookup(name); ok {
			return id, true
		}
	}
	return ast.InvalidNode, false
}

// LookupGlobal searches only the global scope.
func (t *SymbolTable) LookupGlobal(name string) (ast.NodeID, bool) {
	return t.global.Lookup(name)
}

// LookupParm looks sym up in the scope immediately beneath the top one.
// That scope is searched only when it sits at stack index 1 (the function
// scope holding the parameters, with the function body's scope on top) or
// is named "for-stmt"; it is never searched when it is the global scope or
// when isIterVar is true.
func (t *SymbolTable) LookupParm(sym string, isIterVar bool) (ast.NodeID, bool) {
	index := len(t.stack) - 2
	if index < 1 || isIterVar || (index != 1 && t.stack[index].Name() != forStmt) {
		return ast.InvalidNode, false
	}
	return t.stack[index].Lookup(sym)
}

// InLoop reports whether any enclosing scope, including the current one,
// is a loop body or a compound statement directly nested in one.
func (t *SymbolTable) InLoop() bool {
	for i := len(t.stack) - 1; i >= 0; i-- {
		switch t.stack[i].Name() {
		case whileStmt, whileCmpdStmt, forStmt, forCmpdStmt:
			return true
		}
	}
	return false
}

// IsRequiredFunc reports whether name is "main" or one of the seven
// standard-library built-ins, exempt from the unused-symbol audit
// regardless of whether the program ever calls it.
func IsRequiredFunc(name string) bool {
	switch name {
	case "main", "output", "outputb", "outputc", "input", "inputb", "inputc", "outnl":
		return true
	}
	return false
}

// AllocString returns a fresh, unique label for a string literal. It
// reserves no global storage: the global offset cursor is left unchanged.
func (t *SymbolTable) AllocString() string {
	label := fmt.Sprintf("str%d", t.stringCounter)
	t.stringCounter++
	return label
}

// DebugDump logs the name and offset cursor of every live scope, innermost
// first, at debug level. Intended for the -D trace flag.
func (t *SymbolTable) DebugDump(log *slog.Logger) {
	for i := len(t.stack) - 1; i >= 0; i-- {
		s := t.stack[i]
		log.Debug("scope", "depth", i, "name", s.Name(), "offset", s.CurrentOffset(), "symbols", len(s.Names()))
	}
}
