package sema

import "github.com/ChandlerJayCalkins/cminus/internal/ast"

// handleId resolves an identifier reference: undeclared-symbol errors,
// use-before-init warnings (gated by ctx.CheckInit, since some callers -
// an assignment's left-hand side chief among them - deliberately skip the
// check), and marks the symbol used for the unused-variable sweep.
func (a *Analyzer) handleId(id ast.NodeID, ctx Context) {
	n := a.tree.Node(id)
	symID, ok := a.table.Lookup(n.Value.Str)
	if !ok {
		symID, ok = a.table.LookupParm(n.Value.Str, n.IsIterVar)
	}
	if !ok {
		a.sink.Errorf(n.Line, "Symbol %q is not declared", n.Value.Str)
		n.ExpType = ast.Undefined
		return
	}
	sym := a.tree.Node(symID)
	if sym.Kind != ast.KindVar && sym.Kind != ast.KindParm {
		a.sink.Errorf(n.Line, "Symbol %q is not a variable", n.Value.Str)
		n.ExpType = ast.Undefined
		return
	}

	n.ExpType = sym.ExpType
	n.IsArray = sym.IsArray
	n.MemSpace = sym.MemSpace
	n.FOffset = sym.FOffset
	sym.Used = true

	if ctx.CheckInit && !sym.Inited && !sym.InitWarned {
		a.sink.Warningf(n.Line, "Variable %q may be used uninitialized", n.Value.Str)
		sym.InitWarned = true
	}
}

// handleConst assigns a const's memory space: string literals live in the
// global data segment even when the const appears inside a function body.
func (a *Analyzer) handleConst(id ast.NodeID, ctx Context) {
	n := a.tree.Node(id)
	if n.ExpType == ast.Char && n.IsArray {
		n.MemSpace = ast.MemGlobal
	}
}

// isMathAssi reports whether op is one of the compound assignment
// operators (+=, -=, *=, /=), which read the left operand's old value
// before writing the new one, as opposed to plain assignment (=).
func isMathAssi(op ast.OpKind) bool {
	switch op {
	case ast.Addas, ast.Subas, ast.Mulas, ast.Divas:
		return true
	}
	return false
}

// handleAssi type-checks an assignment or compound-assignment operator.
// The left-hand side is visited with init-checking suppressed, since
// assigning to a variable is exactly the operation that initializes it,
// not a use of its prior value - except for the compound forms
// (+=, -=, *=, /=), which read the old value before writing the new one.
//
// A compound operator restricts both operands to non-array int, since it
// compiles down to an arithmetic op plus a store. Plain assignment instead
// takes the left operand's type and array-ness as its own and requires the
// right operand to match both.
func (a *Analyzer) handleAssi(id ast.NodeID, ctx Context) {
	n := a.tree.Node(id)
	lhs, rhs := n.Children[0], n.Children[1]

	math := isMathAssi(n.OpKind)
	a.traverse(lhs, Context{ScopeName: ctx.ScopeName, CheckInit: math})
	a.traverse(rhs, Context{ScopeName: ctx.ScopeName, CheckInit: true})

	if lhs == ast.InvalidNode || rhs == ast.InvalidNode {
		return
	}
	lhsNode, rhsNode := a.tree.Node(lhs), a.tree.Node(rhs)

	if math {
		n.ExpType = ast.Int
		if lhsNode.ExpType != ast.Int && lhsNode.ExpType != ast.Undefined {
			a.sink.Errorf(n.Line, "Expecting type int on left side of assignment operator but got type %s", lhsNode.ExpType)
		}
		if rhsNode.ExpType != ast.Int && rhsNode.ExpType != ast.Undefined {
			a.sink.Errorf(n.Line, "Expecting type int on right side of assignment operator but got type %s", rhsNode.ExpType)
		}
		if lhsNode.IsArray || rhsNode.IsArray {
			a.sink.Errorf(n.Line, "Cannot use arrays with assignment operator")
		}
	} else {
		n.ExpType = lhsNode.ExpType
		n.IsArray = lhsNode.IsArray

		if lhsNode.ExpType != rhsNode.ExpType && lhsNode.ExpType != ast.Undefined && rhsNode.ExpType != ast.Undefined {
			a.sink.Errorf(n.Line, "Expecting type %s on right side of assignment operator but got type %s",
				lhsNode.ExpType, rhsNode.ExpType)
		}
		if lhsNode.IsArray != rhsNode.IsArray {
			lhsSide, rhsSide := arraySideStrings(lhsNode.IsArray)
			a.sink.Errorf(n.Line, "Expecting%s array on left side and%s array on right side of assignment operator", lhsSide, rhsSide)
		}
	}

	a.markInited(lhs)
}

// markInited marks the variable named by an Id node (after it has been
// resolved by handleId) as initialized, following it through a Brak index
// expression to the underlying array.
func (a *Analyzer) markInited(id ast.NodeID) {
	n := a.tree.Node(id)
	switch n.Kind {
	case ast.KindId:
		if symID, ok := a.table.Lookup(n.Value.Str); ok {
			a.tree.Node(symID).Inited = true
		}
	case ast.KindOp:
		if n.OpKind == ast.Brak {
			a.markInited(n.Children[0])
		}
	}
}

// handleOp dispatches an Op node to its operator-specific handler.
func (a *Analyzer) handleOp(id ast.NodeID, ctx Context) {
	n := a.tree.Node(id)
	switch n.OpKind {
	case ast.Brak:
		a.handleBracket(id, ctx)
	case ast.Size:
		a.handleSizeof(id, ctx)
	case ast.Inc, ast.Dec:
		a.handleIncOp(id, ctx)
	case ast.Neg, ast.Not:
		a.handleUnary(id, ctx)
	case ast.Rand:
		a.callChildren(id, ctx.ScopeName, -1)
		n.ExpType = ast.Int
	default:
		a.handleBinaryOp(id, ctx)
	}
}

// handleBinaryOp checks both operands' types against the operator class
// and sets the result type: bool for logical and comparison operators,
// the (matching) operand type for arithmetic ones.
func (a *Analyzer) handleBinaryOp(id ast.NodeID, ctx Context) {
	n := a.tree.Node(id)
	a.callChildren(id, ctx.ScopeName, -1)

	lhs, rhs := n.Children[0], n.Children[1]
	if lhs == ast.InvalidNode || rhs == ast.InvalidNode {
		return
	}
	lt, rt := a.tree.Node(lhs).ExpType, a.tree.Node(rhs).ExpType

	switch {
	case isLogOp(n.OpKind):
		n.ExpType = ast.Bool
		if lt != ast.Bool && lt != ast.Undefined {
			a.sink.Errorf(n.Line, "Expecting type bool on left side of logical operator but got type %s", lt)
		}
		if rt != ast.Bool && rt != ast.Undefined {
			a.sink.Errorf(n.Line, "Expecting type bool on right side of logical operator but got type %s", rt)
		}
	case isCompOp(n.OpKind):
		n.ExpType = ast.Bool
		if lt != rt && lt != ast.Undefined && rt != ast.Undefined {
			a.sink.Errorf(n.Line, "Expecting matching types on either side of comparison operator but got types %s and %s", lt, rt)
		}
	default:
		n.ExpType = lt
		if lt != ast.Int && lt != ast.Undefined {
			a.sink.Errorf(n.Line, "Expecting type int on left side of arithmetic operator but got type %s", lt)
		}
		if rt != ast.Int && rt != ast.Undefined {
			a.sink.Errorf(n.Line, "Expecting type int on right side of arithmetic operator but got type %s", rt)
		}
	}

	lArr, rArr := a.tree.Node(lhs).IsArray, a.tree.Node(rhs).IsArray
	if lArr || rArr {
		lhsSide, rhsSide := arraySideStrings(lArr)
		a.sink.Errorf(n.Line, "Expecting%s array on left side and%s array on right side of operator", lhsSide, rhsSide)
	}
}

// handleUnary checks Not's operand is bool and Neg's is int.
func (a *Analyzer) handleUnary(id ast.NodeID, ctx Context) {
	n := a.tree.Node(id)
	a.callChildren(id, ctx.ScopeName, -1)

	operand := n.Children[0]
	if operand == ast.InvalidNode {
		return
	}
	ot := a.tree.Node(operand).ExpType
	if n.OpKind == ast.Not {
		n.ExpType = ast.Bool
		if ot != ast.Bool && ot != ast.Undefined {
			a.sink.Errorf(n.Line, "Expecting type bool in unary not operator but got type %s", ot)
		}
	} else {
		n.ExpType = ast.Int
		if ot != ast.Int && ot != ast.Undefined {
			a.sink.Errorf(n.Line, "Expecting type int in unary negation operator but got type %s", ot)
		}
	}
}

// handleIncOp checks that ++/-- applies to an int operand and marks the
// operand's variable initialized. Like handleAssi and handleUnary, it reads
// the operand's resolved type without first confirming it is an Id node.
func (a *Analyzer) handleIncOp(id ast.NodeID, ctx Context) {
	n := a.tree.Node(id)
	operand := n.Children[0]
	a.traverse(operand, Context{ScopeName: ctx.ScopeName, CheckInit: true})

	n.ExpType = ast.Int
	if operand == ast.InvalidNode {
		return
	}
	if ot := a.tree.Node(operand).ExpType; ot != ast.Int && ot != ast.Undefined {
		a.sink.Errorf(n.Line, "Expecting type int in increment/decrement operator but got type %s", ot)
	}
	a.markInited(operand)
}

// handleSizeof checks its operand is an array and always reports the
// result as int. The guard that the node itself is not an Id is always
// true (a Sizeof node is an Op) and is kept as a pass-through rather than
// special-cased away.
func (a *Analyzer) handleSizeof(id ast.NodeID, ctx Context) {
	n := a.tree.Node(id)
	operand := n.Children[0]
	a.traverse(operand, Context{ScopeName: ctx.ScopeName, CheckInit: true})

	n.ExpType = ast.Int
	if operand == ast.InvalidNode {
		return
	}
	if n.Kind != ast.KindId && !a.tree.Node(operand).IsArray {
		a.sink.Errorf(n.Line, "Expecting array in sizeof operator")
	}
}

// handleBracket checks an array index expression: Children[0] is the
// array, Children[1] is the index. Because the original's
// callChildren(node, true) / callChildren(node, 0) calls both resolve
// through the int-overload by C++'s bool-to-int promotion rather than the
// string-overload its inline comments describe, checkInit==true ignores
// the index child's init check and checkInit==false ignores the array
// child's - the reverse of what the original comments claim. That literal
// behavior is preserved here rather than the commented intent.
func (a *Analyzer) handleBracket(id ast.NodeID, ctx Context) {
	n := a.tree.Node(id)
	if ctx.CheckInit {
		a.callChildren(id, ctx.ScopeName, 1)
	} else {
		a.callChildren(id, ctx.ScopeName, 0)
	}

	arr, idx := n.Children[0], n.Children[1]
	if arr == ast.InvalidNode || idx == ast.InvalidNode {
		return
	}
	arrNode, idxNode := a.tree.Node(arr), a.tree.Node(idx)

	n.ExpType = arrNode.ExpType
	n.MemSpace = arrNode.MemSpace
	n.FOffset = arrNode.FOffset

	if !arrNode.IsArray {
		a.sink.Errorf(n.Line, "Cannot index into %q because it is not an array", arrNode.Value.Str)
	}
	if idxNode.ExpType != ast.Int && idxNode.ExpType != ast.Undefined {
		a.sink.Errorf(n.Line, "Expecting type int in array index but got type %s", idxNode.ExpType)
	}
}
