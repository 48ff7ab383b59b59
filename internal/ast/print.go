package ast

import (
	"fmt"
	"io"
)

// Fprint renders the subtree rooted at root in the source language's fixed
// pretty-print format: one line per node, ".   " per indent level, a
// relation tag ("", "Child", "Sibling") with index, kind-specific payload,
// optional type/memory annotations, and the node's source line. Children
// print before siblings.
func Fprint(w io.Writer, t *Tree, root NodeID, types, mem bool) {
	fprintNode(w, t, root, 0, "", -1, 0, types, mem)
}

func fprintNode(w io.Writer, t *Tree, id NodeID, level int, relation string, childNum, sibNum int, types, mem bool) {
	if id == InvalidNode {
		return
	}
	n := t.Node(id)

	for i := 0; i < level; i++ {
		fmt.Fprint(w, ".   ")
	}
	fmt.Fprint(w, relation)
	switch {
	case childNum > -1:
		fmt.Fprintf(w, ": %d ", childNum)
	case sibNum > 0:
		fmt.Fprintf(w, ": %d ", sibNum)
	}

	switch n.Kind {
	case KindVar:
		fmt.Fprintf(w, "Var: %s", n.Value.Str)
		printType(w, types, n)
		printMem(w, mem, n)
	case KindFunc:
		fmt.Fprintf(w, "Func: %s returns type %s", n.Value.Str, n.ExpType)
		printMem(w, mem, n)
	case KindParm:
		fmt.Fprintf(w, "Parm: %s", n.Value.Str)
		printType(w, types, n)
		printMem(w, mem, n)
	case KindIf:
		fmt.Fprint(w, "If")
	case KindCompound:
		fmt.Fprint(w, "Compound")
		printMem(w, mem, n)
	case KindWhile:
		fmt.Fprint(w, "While")
	case KindFor:
		fmt.Fprint(w, "For")
		printMem(w, mem, n)
	case KindRange:
		fmt.Fprint(w, "Range")
	case KindReturn:
		fmt.Fprint(w, "Return")
	case KindBreak:
		fmt.Fprint(w, "Break")
	case KindAssign:
		fmt.Fprintf(w, "Assign: %s", n.Value.Str)
		printType(w, types, n)
	case KindOp:
		fmt.Fprintf(w, "Op: %s", n.Value.Str)
		printType(w, types, n)
	case KindId:
		fmt.Fprintf(w, "Id: %s", n.Value.Str)
		printType(w, types, n)
		printMem(w, mem, n)
	case KindCall:
		fmt.Fprintf(w, "Call: %s", n.Value.Str)
		printType(w, types, n)
	case KindConst:
		fmt.Fprint(w, "Const ")
		switch n.ExpType {
		case Int:
			fmt.Fprintf(w, "%d", n.Value.Num)
		case Char:
			if n.IsArray {
				fmt.Fprintf(w, "%s", n.Value.Str)
			} else {
				fmt.Fprintf(w, "'%c'", n.Value.Ch)
			}
		case Bool:
			if n.Value.Num != 0 {
				fmt.Fprint(w, "true")
			} else {
				fmt.Fprint(w, "false")
			}
		default:
			fmt.Fprintf(w, "%s", n.Value.Str)
		}
		printType(w, types, n)
		if n.IsArray {
			printMem(w, mem, n)
		}
	default:
		fmt.Fprint(w, "Unknown Node Type")
	}

	fmt.Fprintf(w, " [line: %d]\n", n.Line)

	for i := 0; i < MaxChildren; i++ {
		if n.Children[i] != InvalidNode {
			fprintNode(w, t, n.Children[i], level+1, "Child", i, 0, types, mem)
		}
	}
	if n.Sibling != InvalidNode {
		fprintNode(w, t, n.Sibling, level, "Sibling", -1, sibNum+1, types, mem)
	}
}

func printType(w io.Writer, enabled bool, n *Node) {
	if !enabled {
		return
	}
	fmt.Fprint(w, " of ")
	if n.IsStatic {
		fmt.Fprint(w, "static ")
	}
	if n.IsArray {
		fmt.Fprint(w, "array of ")
	}
	fmt.Fprintf(w, "type %s", n.ExpType)
}

func printMem(w io.Writer, enabled bool, n *Node) {
	if !enabled {
		return
	}
	fmt.Fprintf(w, " [mem: %s loc: %d size: %d]", n.MemSpace, n.FOffset, n.Size)
}
