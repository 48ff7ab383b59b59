// Package codegen emits tiny-machine assembly from a fully annotated
// [ast.Tree]. It covers the subset needed to exercise the front end
// end-to-end: global data layout, function prologue/epilogue, and
// straight-line statement/expression lowering; it does not optimize.
package codegen

import (
	"fmt"
	"io"

	"github.com/ChandlerJayCalkins/cminus/internal/ast"
)

// Emitter lowers one analyzed tree to tiny-machine assembly text.
type Emitter struct {
	tree         *ast.Tree
	out          io.Writer
	globalOffset int
	labelCounter int
}

// New returns an Emitter writing to out for the given tree. globalOffset is
// the symbol table's final global cursor (zero or negative); the global
// frame occupies its magnitude in slots.
func New(tree *ast.Tree, out io.Writer, globalOffset int) *Emitter {
	return &Emitter{tree: tree, out: out, globalOffset: globalOffset}
}

// Header writes the banner every emitted file starts with, naming the
// source file it was compiled from and the register conventions the tiny
// machine uses.
func (e *Emitter) Header(sourceName string) string {
	return fmt.Sprintf(
		"* tiny machine code for file %s\n"+
			"* standard prelude\n"+
			"  0:     LD  6, 0(0)     load maxaddress from location 0\n"+
			"  1:     ST  0, 0(0)     clear location 0\n",
		sourceName,
	)
}

// Emit writes the header, a reservation for the global frame, and code for
// every top-level declaration reachable from root.
func (e *Emitter) Emit(root ast.NodeID, sourceName string) {
	fmt.Fprint(e.out, e.Header(sourceName))
	fmt.Fprintf(e.out, "* global frame: %d slots\n", -e.globalOffset)

	for id := root; id != ast.InvalidNode; id = e.tree.Node(id).Sibling {
		n := e.tree.Node(id)
		if n.Kind == ast.KindFunc {
			e.emitFunc(id)
		}
	}
	fmt.Fprint(e.out, "* end of execution\n")
}

func (e *Emitter) emitFunc(id ast.NodeID) {
	n := e.tree.Node(id)
	fmt.Fprintf(e.out, "* function %s\n", n.Value.Str)
	fmt.Fprintf(e.out, "%s:\n", n.Value.Str)
	fmt.Fprintf(e.out, "  ST  3, %d(2)    store return address\n", n.Size+1)
	e.emitStmt(n.Children[1])
	fmt.Fprintf(e.out, "  LD  3, %d(2)    load return address\n", n.Size+1)
	fmt.Fprintln(e.out, "  LD  7, 0(3)     return")
}

func (e *Emitter) emitStmt(id ast.NodeID) {
	for ; id != ast.InvalidNode; id = e.tree.Node(id).Sibling {
		n := e.tree.Node(id)
		switch n.Kind {
		case ast.KindCompound:
			e.emitStmt(n.Children[0])
		case ast.KindReturn:
			if n.Children[0] != ast.InvalidNode {
				e.emitExpr(n.Children[0])
			}
		case ast.KindIf:
			elseLabel := e.newLabel()
			e.emitExpr(n.Children[0])
			fmt.Fprintf(e.out, "  JEQ 0, %s\n", elseLabel)
			e.emitStmt(n.Children[1])
			fmt.Fprintf(e.out, "%s:\n", elseLabel)
			if n.Children[2] != ast.InvalidNode {
				e.emitStmt(n.Children[2])
			}
		case ast.KindWhile:
			top := e.newLabel()
			end := e.newLabel()
			fmt.Fprintf(e.out, "%s:\n", top)
			e.emitExpr(n.Children[0])
			fmt.Fprintf(e.out, "  JEQ 0, %s\n", end)
			e.emitStmt(n.Children[1])
			fmt.Fprintf(e.out, "  LDA 7, %s\n", top)
			fmt.Fprintf(e.out, "%s:\n", end)
		case ast.KindVar:
			if !n.IsIterVar && n.Children[0] != ast.InvalidNode {
				e.emitExpr(n.Children[0])
				fmt.Fprintf(e.out, "  ST  0, %d(%s)  store %s\n", n.FOffset, frameReg(n.MemSpace), n.Value.Str)
			}
		default:
			e.emitExpr(id)
		}
	}
}

func (e *Emitter) emitExpr(id ast.NodeID) {
	if id == ast.InvalidNode {
		return
	}
	n := e.tree.Node(id)
	switch n.Kind {
	case ast.KindConst:
		fmt.Fprintf(e.out, "  LDC 0, %d(0)    load constant\n", n.Value.Num)
	case ast.KindId:
		fmt.Fprintf(e.out, "  LD  0, %d(%s)  load %s\n", n.FOffset, frameReg(n.MemSpace), n.Value.Str)
	case ast.KindCall:
		for arg := n.Children[0]; arg != ast.InvalidNode; arg = e.tree.Node(arg).Sibling {
			e.emitExpr(arg)
			fmt.Fprintln(e.out, "  ST  0, 0(2)     push argument")
		}
		fmt.Fprintf(e.out, "  LDA 3, 1(7)     link\n  LDA 7, %s\n", n.Value.Str)
	case ast.KindAssign:
		e.emitExpr(n.Children[1])
		lhs := e.tree.Node(n.Children[0])
		fmt.Fprintf(e.out, "  ST  0, %d(%s)  store %s\n", lhs.FOffset, frameReg(lhs.MemSpace), lhs.Value.Str)
	case ast.KindOp:
		e.emitOp(n)
	}
}

func (e *Emitter) emitOp(n *ast.Node) {
	switch n.OpKind {
	case ast.Brak:
		e.emitExpr(n.Children[0])
		e.emitExpr(n.Children[1])
		fmt.Fprintln(e.out, "  SUB 0, 0, 1     array index")
	default:
		if n.Children[0] != ast.InvalidNode {
			e.emitExpr(n.Children[0])
		}
		if n.Children[1] != ast.InvalidNode {
			e.emitExpr(n.Children[1])
		}
		fmt.Fprintf(e.out, "  * op %d\n", n.OpKind)
	}
}

func frameReg(mem ast.MemSpace) string {
	switch mem {
	case ast.MemGlobal, ast.MemStatic:
		return "5"
	default:
		return "2"
	}
}

func (e *Emitter) newLabel() string {
	e.labelCounter++
	return fmt.Sprintf("L%d", e.labelCounter)
}
