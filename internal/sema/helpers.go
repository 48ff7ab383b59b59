package sema

import "github.com/ChandlerJayCalkins/cminus/internal/ast"

// arraySideStrings returns the " not"/"" pair used to phrase "expecting
// [not] an array" messages depending on which side of a comparison is the
// array.
func arraySideStrings(isArray bool) (lhs, rhs string) {
	if isArray {
		return "", " not"
	}
	return " not", ""
}

// isLogOp, isCompOp and isMathOp classify an Op node's operator for
// constant-expression folding eligibility.
func isLogOp(op ast.OpKind) bool {
	switch op {
	case ast.Or, ast.And, ast.Not:
		return true
	}
	return false
}

func isCompOp(op ast.OpKind) bool {
	switch op {
	case ast.Less, ast.Leq, ast.Gtr, ast.Geq, ast.Eq, ast.Neq:
		return true
	}
	return false
}

func isMathOp(op ast.OpKind) bool {
	switch op {
	case ast.Add, ast.Sub, ast.Mul, ast.Div, ast.Mod, ast.Neg:
		return true
	}
	return false
}

// isConstExp reports whether node's subtree consists entirely of Const
// leaves combined by logical, comparison or arithmetic operators — the
// form a variable's initializer must take.
func (a *Analyzer) isConstExp(id ast.NodeID) bool {
	if id == ast.InvalidNode {
		return true
	}
	n := a.tree.Node(id)
	switch n.Kind {
	case ast.KindConst:
		return true
	case ast.KindOp:
		if !isLogOp(n.OpKind) && !isCompOp(n.OpKind) && !isMathOp(n.OpKind) {
			return false
		}
		for _, c := range n.Children {
			if c != ast.InvalidNode && !a.isConstExp(c) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// checkParms walks declared parameters and call arguments in lockstep,
// reporting at most one mismatch per argument (wrong type, or an array
// where a scalar was declared or vice versa) and then an argument-count
// mismatch. Parameter positions in diagnostics are 1-based.
func (a *Analyzer) checkParms(callID, parmID ast.NodeID, funcName string, line int) {
	argID := a.tree.Node(callID).Children[0]
	index := 1
	for parmID != ast.InvalidNode {
		parm := a.tree.Node(parmID)
		if argID == ast.InvalidNode {
			a.sink.Errorf(line, "Too few parameters for function %q", funcName)
			return
		}
		arg := a.tree.Node(argID)

		if arg.ExpType != parm.ExpType && arg.ExpType != ast.Undefined && parm.ExpType != ast.Undefined {
			a.sink.Errorf(arg.Line, "Expecting type %s in parameter %d of call to %q but got type %s",
				parm.ExpType, index, funcName, arg.ExpType)
		} else if arg.IsArray && !parm.IsArray {
			a.sink.Errorf(arg.Line, "Not expecting array in parameter %d of call to %q", index, funcName)
		} else if !arg.IsArray && parm.IsArray {
			a.sink.Errorf(arg.Line, "Expecting array in parameter %d of call to %q", index, funcName)
		}

		parmID = parm.Sibling
		argID = arg.Sibling
		index++
	}
	if argID != ast.InvalidNode {
		a.sink.Errorf(line, "Too many parameters for function %q", funcName)
	}
}
