// Package symtab implements the nested-scope symbol table used during
// semantic analysis: a stack of named [Scope] frames, each mapping a
// declared name to the [ast.NodeID] of its declaration.
package symtab

import "github.com/ChandlerJayCalkins/cminus/internal/ast"

// Scope is one lexical frame: a named region (a function body, a compound
// statement, a loop) holding its own declarations and stack-offset cursor.
type Scope struct {
	name string

	currentOffset int
	symbols       map[string]ast.NodeID
	order         []string
}

// NewScope returns an empty scope named name, with its offset cursor
// starting at startOffset.
func NewScope(name string, startOffset int) *Scope {
	return &Scope{
		name:          name,
		currentOffset: startOffset,
		symbols:       make(map[string]ast.NodeID),
	}
}

// CurrentOffset returns the scope's current frame-offset cursor, which
// becomes its final size once every declaration has been inserted.
func (s *Scope) CurrentOffset() int {
	return s.currentOffset
}

// Name returns the scope's label, e.g. "while-stmt" or a function name.
func (s *Scope) Name() string { return s.name }

// Insert records node under name in this scope. It does not check for a
// prior binding; callers that care about redeclaration check first via
// [Scope.Lookup].
func (s *Scope) Insert(name string, id ast.NodeID) {
	if _, ok := s.symbols[name]; !ok {
		s.order = append(s.order, name)
	}
	s.symbols[name] = id
}

// Lookup returns the node bound to name in this scope alone.
func (s *Scope) Lookup(name string) (ast.NodeID, bool) {
	id, ok := s.symbols[name]
	return id, ok
}

// Names returns the declared names in insertion order, for unused-variable
// sweeps that must report in declaration order.
func (s *Scope) Names() []string {
	return s.order
}

// incOffset assigns node its frame offset and advances the cursor by the
// node's size. Arrays that are not parameters are anchored one past the
// cursor so indexing by a non-negative subscript walks down through the
// element slots the array reserved.
func (s *Scope) incOffset(node *ast.Node, isParameter bool) int {
	var foffset int
	if node.IsArray && !isParameter {
		foffset = s.currentOffset - 1
	} else {
		foffset = s.currentOffset
	}
	s.currentOffset -= node.Size
	return foffset
}
