package parser

import (
	"github.com/ChandlerJayCalkins/cminus/internal/ast"
	"github.com/ChandlerJayCalkins/cminus/internal/token"
)

// parseExpr parses an assignment expression, the lowest-precedence
// production: "lvalue (= | += | -= | *= | /=) expr" or a fall-through to
// a plain logical-or expression.
func (p *Parser) parseExpr() ast.NodeID {
	lhs := p.parseOr()

	var op ast.OpKind
	switch p.tok.Kind {
	case token.Assign:
		op = ast.Assi
	case token.AddAssign:
		op = ast.Addas
	case token.SubAssign:
		op = ast.Subas
	case token.MulAssign:
		op = ast.Mulas
	case token.DivAssign:
		op = ast.Divas
	default:
		return lhs
	}
	line := p.tok.Line
	p.advance()
	rhs := p.parseExpr()
	return ast.New(p.tree, ast.KindAssign, line, ast.Undefined, op, false, false, lhs, rhs)
}

func (p *Parser) parseOr() ast.NodeID {
	lhs := p.parseAnd()
	for p.tok.Kind == token.Or {
		line := p.tok.Line
		p.advance()
		rhs := p.parseAnd()
		lhs = ast.New(p.tree, ast.KindOp, line, ast.Bool, ast.Or, false, false, lhs, rhs)
	}
	return lhs
}

func (p *Parser) parseAnd() ast.NodeID {
	lhs := p.parseComparison()
	for p.tok.Kind == token.And {
		line := p.tok.Line
		p.advance()
		rhs := p.parseComparison()
		lhs = ast.New(p.tree, ast.KindOp, line, ast.Bool, ast.And, false, false, lhs, rhs)
	}
	return lhs
}

func compareOp(k token.Kind) (ast.OpKind, bool) {
	switch k {
	case token.Less:
		return ast.Less, true
	case token.Leq:
		return ast.Leq, true
	case token.Gtr:
		return ast.Gtr, true
	case token.Geq:
		return ast.Geq, true
	case token.Eq:
		return ast.Eq, true
	case token.Neq:
		return ast.Neq, true
	}
	return ast.NotOp, false
}

func (p *Parser) parseComparison() ast.NodeID {
	lhs := p.parseAdditive()
	if op, ok := compareOp(p.tok.Kind); ok {
		line := p.tok.Line
		p.advance()
		rhs := p.parseAdditive()
		return ast.New(p.tree, ast.KindOp, line, ast.Bool, op, false, false, lhs, rhs)
	}
	return lhs
}

func (p *Parser) parseAdditive() ast.NodeID {
	lhs := p.parseTerm()
	for p.tok.Kind == token.Add || p.tok.Kind == token.Sub {
		op, line := ast.Add, p.tok.Line
		if p.tok.Kind == token.Sub {
			op = ast.Sub
		}
		p.advance()
		rhs := p.parseTerm()
		lhs = ast.New(p.tree, ast.KindOp, line, ast.Int, op, false, false, lhs, rhs)
	}
	return lhs
}

func (p *Parser) parseTerm() ast.NodeID {
	lhs := p.parseUnary()
	for p.tok.Kind == token.Mul || p.tok.Kind == token.Div || p.tok.Kind == token.Mod {
		var op ast.OpKind
		switch p.tok.Kind {
		case token.Mul:
			op = ast.Mul
		case token.Div:
			op = ast.Div
		default:
			op = ast.Mod
		}
		line := p.tok.Line
		p.advance()
		rhs := p.parseUnary()
		lhs = ast.New(p.tree, ast.KindOp, line, ast.Int, op, false, false, lhs, rhs)
	}
	return lhs
}

func (p *Parser) parseUnary() ast.NodeID {
	switch p.tok.Kind {
	case token.Not:
		line := p.tok.Line
		p.advance()
		operand := p.parseUnary()
		return ast.New(p.tree, ast.KindOp, line, ast.Bool, ast.Not, false, false, operand)
	case token.Sub:
		line := p.tok.Line
		p.advance()
		operand := p.parseUnary()
		return ast.New(p.tree, ast.KindOp, line, ast.Int, ast.Neg, false, false, operand)
	case token.Inc, token.Dec:
		op, line := ast.Inc, p.tok.Line
		if p.tok.Kind == token.Dec {
			op = ast.Dec
		}
		p.advance()
		operand := p.parsePostfix()
		return ast.New(p.tree, ast.KindOp, line, ast.Int, op, false, false, operand)
	case token.Sizeof:
		line := p.tok.Line
		p.advance()
		operand := p.parseUnary()
		return ast.New(p.tree, ast.KindOp, line, ast.Int, ast.Size, false, false, operand)
	case token.Rand:
		line := p.tok.Line
		p.advance()
		return ast.New(p.tree, ast.KindOp, line, ast.Int, ast.Rand, false, false)
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() ast.NodeID {
	expr := p.parsePrimary()
	for p.tok.Kind == token.LBracket {
		line := p.tok.Line
		p.advance()
		index := p.parseExpr()
		p.expect(token.RBracket, "']'")
		expr = ast.New(p.tree, ast.KindOp, line, ast.Undefined, ast.Brak, false, false, expr, index)
	}
	return expr
}

func (p *Parser) parsePrimary() ast.NodeID {
	line := p.tok.Line
	switch p.tok.Kind {
	case token.LParen:
		p.advance()
		expr := p.parseExpr()
		p.expect(token.RParen, "')'")
		return expr
	case token.IntLit:
		n := p.tok.Num
		p.advance()
		id := ast.New(p.tree, ast.KindConst, line, ast.Int, ast.NotOp, false, false)
		p.tree.Node(id).Value.Num = n
		return id
	case token.CharLit:
		ch := p.tok.Ch
		p.advance()
		id := ast.New(p.tree, ast.KindConst, line, ast.Char, ast.NotOp, false, false)
		p.tree.Node(id).Value.Ch = ch
		return id
	case token.StringLit:
		str := p.tok.Str
		p.advance()
		id := ast.New(p.tree, ast.KindConst, line, ast.Char, ast.NotOp, true, false)
		n := p.tree.Node(id)
		n.Value.Str = str
		n.Value.Num = len(str)
		return id
	case token.KwTrue, token.KwFalse:
		val := p.tok.Kind == token.KwTrue
		p.advance()
		id := ast.New(p.tree, ast.KindConst, line, ast.Bool, ast.NotOp, false, false)
		if val {
			p.tree.Node(id).Value.Num = 1
		}
		return id
	case token.Ident:
		name := p.tok.Str
		p.advance()
		if p.tok.Kind == token.LParen {
			return p.parseCall(line, name)
		}
		id := ast.New(p.tree, ast.KindId, line, ast.Undefined, ast.NotOp, false, false)
		p.tree.Node(id).Value.Str = name
		return id
	default:
		p.sink.Errorf(line, "Expecting an expression")
		p.advance()
		return ast.New(p.tree, ast.KindConst, line, ast.Undefined, ast.NotOp, false, false)
	}
}

func (p *Parser) parseCall(line int, name string) ast.NodeID {
	p.advance() // '('
	var head, tail ast.NodeID = ast.InvalidNode, ast.InvalidNode
	for p.tok.Kind != token.RParen && p.tok.Kind != token.EOF {
		arg := p.parseExpr()
		if head == ast.InvalidNode {
			head = arg
		} else {
			p.tree.AddSibling(tail, arg)
		}
		tail = arg
		if p.tok.Kind != token.Comma {
			break
		}
		p.advance()
	}
	p.expect(token.RParen, "')'")

	id := ast.New(p.tree, ast.KindCall, line, ast.Undefined, ast.NotOp, false, false, head)
	p.tree.Node(id).Value.Str = name
	return id
}
