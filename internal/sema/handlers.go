package sema

import "github.com/ChandlerJayCalkins/cminus/internal/ast"

// handleVarDecl recurses into the optional initializer first, checks for
// redeclaration in the current scope, rejects void and array-of-void
// declarations, inserts the symbol (letting the symbol table assign its
// frame offset), and finally validates the initializer against the
// declared type and array-ness.
func (a *Analyzer) handleVarDecl(id ast.NodeID, ctx Context) {
	n := a.tree.Node(id)
	name := n.Value.Str
	init := n.Children[0]

	if init != ast.InvalidNode {
		a.traverse(init, Context{ScopeName: ctx.ScopeName, CheckInit: true})
	}

	if dupeID, exists := a.table.Top().Lookup(name); exists {
		a.sink.Errorf(n.Line, "Symbol '%s' is already declared at line %d.", name, a.tree.Node(dupeID).Line)
		return
	}
	if n.ExpType == ast.Void {
		a.sink.Errorf(n.Line, "Variable %q cannot have type void", name)
		return
	}
	if n.IsArray {
		n.Size = constArraySize(n)
	} else {
		n.Size = 1
	}
	a.table.Insert(name, id, n, false)

	// A for-loop's implicit iteration variable wraps its Range node in
	// this same Children[0] slot; handleRange already type-checks its
	// bounds above, and it is not a variable initializer.
	if init == ast.InvalidNode || n.IsIterVar {
		return
	}
	initNode := a.tree.Node(init)

	if !a.isConstExp(init) {
		a.sink.Errorf(n.Line, "Initializer for variable %q is not a constant expression", name)
	}
	if n.ExpType != initNode.ExpType && initNode.ExpType != ast.Undefined {
		a.sink.Errorf(n.Line, "Initializer for variable %q of type %s is of type %s", name, n.ExpType, initNode.ExpType)
	}
	if n.IsArray != initNode.IsArray {
		lhs, rhs := arraySideStrings(n.IsArray)
		a.sink.Errorf(n.Line, "Initializer for variable %q requires both operands be arrays or not but variable is%s an array and initializer is%s an array", name, lhs, rhs)
	}
}

// constArraySize reads the array length literal stashed in Value.Num by
// the parser and adds the one extra slot reserved to hold that length at
// run time.
func constArraySize(n *ast.Node) int {
	length := n.Value.Num
	if length <= 0 {
		length = 1
	}
	return length + 1
}

// handleFuncDecl checks for redeclaration against the enclosing scope,
// opens the function's own scope, declares its parameters in order, walks
// its body, and closes the scope again.
func (a *Analyzer) handleFuncDecl(id ast.NodeID, ctx Context) {
	n := a.tree.Node(id)
	name := n.Value.Str

	if dupeID, exists := a.table.Top().Lookup(name); exists {
		a.sink.Errorf(n.Line, "Symbol '%s' is already declared at line %d.", name, a.tree.Node(dupeID).Line)
		return
	}
	a.table.Insert(name, id, n, false)

	prevFunc := a.currentFunc
	a.currentFunc = id
	n.Returned = false

	a.table.EnterFunc(name)
	for parmID := n.Children[0]; parmID != ast.InvalidNode; {
		parm := a.tree.Node(parmID)
		if parm.ExpType == ast.Void && !parm.IsArray {
			break
		}
		if parm.IsArray {
			parm.Size = 1
		} else {
			parm.Size = 1
		}
		a.table.Insert(parm.Value.Str, parmID, parm, true)
		parm.Inited = true
		parmID = parm.Sibling
	}

	body := n.Children[1]
	a.traverse(body, Context{ScopeName: name, CheckInit: true})

	if n.ExpType != ast.Void && !n.Returned {
		a.sink.Warningf(n.Line, "Function %q has a return type of %s but does not always return a value", name, n.ExpType)
	}

	// The body's own compound scope, not the function's outer scope,
	// reaches the frame's deepest offset once its locals are inserted.
	n.Size = a.table.CurrentFrameSize()
	if body != ast.InvalidNode {
		n.Size = a.tree.Node(body).Size
	}
	a.checkUnused(a.table.Top())
	a.leaveScope()
	a.currentFunc = prevFunc
}

// handleCompound opens and closes an anonymous nested scope around the
// statement list in Children[0]. Its name marks it as a loop body's
// compound statement when the enclosing scope is itself a loop, which is
// what makes a break two levels deep from a while/for still legal.
func (a *Analyzer) handleCompound(id ast.NodeID, ctx Context) {
	n := a.tree.Node(id)

	scopeName := "compound-stmt"
	switch ctx.ScopeName {
	case "while-stmt":
		scopeName = "while-cmpd-stmt"
	case "for-stmt":
		scopeName = "for-cmpd-stmt"
	case "if-stmt":
		scopeName = "if-cmpd-stmt"
	}

	a.table.Enter(scopeName)
	a.traverse(n.Children[0], Context{ScopeName: scopeName, CheckInit: true})
	n.Size = a.table.CurrentFrameSize()
	a.checkUnused(a.table.Top())
	a.leaveScope()
}

// handleIfWhile checks the condition is boolean, then visits the body (and
// an if-statement's else branch, carried as Children[2]) under a scope name
// that records whether this is a loop for InLoop()/break checking.
func (a *Analyzer) handleIfWhile(id ast.NodeID, ctx Context, isWhile bool) {
	n := a.tree.Node(id)
	cond := n.Children[0]

	a.traverse(cond, Context{ScopeName: ctx.ScopeName, CheckInit: true})
	if cond != ast.InvalidNode {
		ct := a.tree.Node(cond).ExpType
		if ct != ast.Bool && ct != ast.Undefined {
			a.sink.Errorf(n.Line, "Expecting type bool in condition but got type %s", ct)
		}
	}

	scopeName := "if-stmt"
	if isWhile {
		scopeName = "while-stmt"
	}
	a.traverse(n.Children[1], Context{ScopeName: scopeName, CheckInit: true})
	if len(n.Children) > 2 {
		a.traverse(n.Children[2], Context{ScopeName: "if-stmt", CheckInit: true})
	}
}

// handleFor opens the loop's own scope (so its implicit iteration variable
// is visible to [symtab.SymbolTable.LookupParm]) before checking the
// range and walking the body.
func (a *Analyzer) handleFor(id ast.NodeID, ctx Context) {
	n := a.tree.Node(id)

	a.table.Enter("for-stmt")
	a.traverse(n.Children[0], Context{ScopeName: "for-stmt", CheckInit: true})
	a.traverse(n.Children[1], Context{ScopeName: "for-stmt", CheckInit: true})
	n.Size = a.table.CurrentFrameSize()
	a.checkUnused(a.table.Top())
	a.leaveScope()
}

// handleRange checks that both bounds are int.
func (a *Analyzer) handleRange(id ast.NodeID, ctx Context) {
	n := a.tree.Node(id)
	a.callChildren(id, ctx.ScopeName, -1)
	for _, c := range n.Children[:2] {
		if c == ast.InvalidNode {
			continue
		}
		if t := a.tree.Node(c).ExpType; t != ast.Int && t != ast.Undefined {
			a.sink.Errorf(n.Line, "Expecting type int in range bound but got type %s", t)
		}
	}
}

// handleReturn checks the returned expression's type against the
// enclosing function's declared return type and marks the function as
// having returned a value on at least one path.
func (a *Analyzer) handleReturn(id ast.NodeID, ctx Context) {
	n := a.tree.Node(id)
	a.callChildren(id, ctx.ScopeName, -1)

	if a.currentFunc == ast.InvalidNode {
		return
	}
	fn := a.tree.Node(a.currentFunc)
	expr := n.Children[0]

	if expr == ast.InvalidNode {
		if fn.ExpType != ast.Void {
			a.sink.Errorf(n.Line, "Expecting to return type %s but no return value was specified", fn.ExpType)
		}
		return
	}
	fn.Returned = true
	et := a.tree.Node(expr).ExpType
	if fn.ExpType == ast.Void {
		a.sink.Errorf(n.Line, "Function %q is declared void but returns a value", fn.Value.Str)
	} else if et != fn.ExpType && et != ast.Undefined {
		a.sink.Errorf(n.Line, "Expecting to return type %s but returned type %s", fn.ExpType, et)
	}
}

// handleBreak rejects a break statement outside any enclosing loop.
func (a *Analyzer) handleBreak(id ast.NodeID, ctx Context) {
	n := a.tree.Node(id)
	if !a.table.InLoop() {
		a.sink.Errorf(n.Line, "Cannot have a break statement outside of a loop")
	}
}

// handleCall resolves the callee, flags an undeclared function, flags a
// call to something that was declared but isn't a function, and otherwise
// checks arguments against the declared parameter list.
func (a *Analyzer) handleCall(id ast.NodeID, ctx Context) {
	n := a.tree.Node(id)
	a.callChildren(id, ctx.ScopeName, -1)

	funcID, ok := a.table.Lookup(n.Value.Str)
	if !ok {
		a.sink.Errorf(n.Line, "Symbol %q is not declared", n.Value.Str)
		n.ExpType = ast.Undefined
		return
	}
	fn := a.tree.Node(funcID)
	if fn.Kind != ast.KindFunc {
		a.sink.Errorf(n.Line, "Cannot call %q because it is not a function", n.Value.Str)
		n.ExpType = ast.Undefined
		return
	}
	fn.Used = true
	n.ExpType = fn.ExpType
	n.Size = fn.Size
	n.MemSpace = fn.MemSpace
	n.FOffset = fn.FOffset
	a.checkParms(id, fn.Children[0], n.Value.Str, n.Line)
}
