// Package sema implements the single-pass semantic analyzer: type checking,
// scope resolution, initialization tracking and frame-offset assignment
// over an [ast.Tree] already built by the parser.
package sema

// Context carries the two pieces of traversal state the original analyzer
// threaded as separate parameters: which scope a subtree is being checked
// in, and whether reading an uninitialized variable within it should warn.
type Context struct {
	ScopeName string
	CheckInit bool
}
