// Package parser is a hand-written recursive-descent parser building an
// [ast.Tree] from a [token.Token] stream.
package parser

import (
	"log/slog"

	"github.com/ChandlerJayCalkins/cminus/internal/ast"
	"github.com/ChandlerJayCalkins/cminus/internal/diag"
	"github.com/ChandlerJayCalkins/cminus/internal/scanner"
	"github.com/ChandlerJayCalkins/cminus/internal/token"
)

// Parser consumes tokens from a [scanner.Scanner] and builds nodes into one
// [ast.Tree].
type Parser struct {
	scan *scanner.Scanner
	tree *ast.Tree
	sink *diag.Sink

	tok token.Token

	log   *slog.Logger
	trace bool
}

// New returns a Parser reading from scan, appending nodes to tree, and
// reporting malformed input to sink.
func New(scan *scanner.Scanner, tree *ast.Tree, sink *diag.Sink, log *slog.Logger, trace bool) *Parser {
	p := &Parser{scan: scan, tree: tree, sink: sink, log: log, trace: trace}
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.tok = p.scan.Next()
}

func (p *Parser) trace1(rule string) {
	if p.trace && p.log != nil {
		p.log.Debug("parse", "rule", rule, "line", p.tok.Line)
	}
}

func (p *Parser) expect(k token.Kind, what string) token.Token {
	tok := p.tok
	if tok.Kind != k {
		p.sink.Errorf(tok.Line, "Expecting %s", what)
		return tok
	}
	p.advance()
	return tok
}

func declaredType(k token.Kind) (ast.ExpType, bool) {
	switch k {
	case token.KwInt:
		return ast.Int, true
	case token.KwBool:
		return ast.Bool, true
	case token.KwChar:
		return ast.Char, true
	case token.KwVoid:
		return ast.Void, true
	}
	return ast.Undefined, false
}

// ParseProgram parses a sequence of top-level declarations up to EOF and
// returns the root of the declaration chain.
func (p *Parser) ParseProgram() ast.NodeID {
	p.trace1("program")
	var head, tail ast.NodeID = ast.InvalidNode, ast.InvalidNode
	for p.tok.Kind != token.EOF {
		decl := p.parseDecl()
		if decl == ast.InvalidNode {
			p.advance()
			continue
		}
		if head == ast.InvalidNode {
			head = decl
		} else {
			p.tree.AddSibling(tail, decl)
		}
		tail = decl
	}
	return head
}

// parseDecl parses one top-level "type name ( ... ) { ... }" function or
// "type name [ [N] ] ;" variable declaration, with an optional leading
// "static" keyword.
func (p *Parser) parseDecl() ast.NodeID {
	p.trace1("decl")
	line := p.tok.Line

	isStatic := false
	if p.tok.Kind == token.KwStatic {
		isStatic = true
		p.advance()
	}

	expType, ok := declaredType(p.tok.Kind)
	if !ok {
		p.sink.Errorf(p.tok.Line, "Expecting a type")
		return ast.InvalidNode
	}
	p.advance()

	name := p.expect(token.Ident, "an identifier").Str

	if p.tok.Kind == token.LParen {
		return p.parseFuncDecl(line, name, expType)
	}
	return p.parseVarDecl(line, name, expType, isStatic)
}

func (p *Parser) parseVarDecl(line int, name string, expType ast.ExpType, isStatic bool) ast.NodeID {
	isArray := false
	length := 0
	if p.tok.Kind == token.LBracket {
		isArray = true
		p.advance()
		if p.tok.Kind == token.IntLit {
			length = p.tok.Num
			p.advance()
		}
		p.expect(token.RBracket, "']'")
	}

	init := ast.InvalidNode
	if p.tok.Kind == token.Assign {
		p.advance()
		init = p.parseExpr()
	}
	p.expect(token.Semi, "';'")

	id := ast.New(p.tree, ast.KindVar, line, expType, ast.NotOp, isArray, isStatic, init)
	n := p.tree.Node(id)
	n.Value.Str = name
	n.Value.Num = length
	return id
}

func (p *Parser) parseFuncDecl(line int, name string, returnType ast.ExpType) ast.NodeID {
	p.advance() // '('
	parms := p.parseParms()
	p.expect(token.RParen, "')'")
	body := p.parseCompound()

	id := ast.New(p.tree, ast.KindFunc, line, returnType, ast.NotOp, false, false, parms, body)
	p.tree.Node(id).Value.Str = name
	return id
}

func (p *Parser) parseParms() ast.NodeID {
	if p.tok.Kind == token.KwVoid {
		p.advance()
		return ast.InvalidNode
	}
	var head, tail ast.NodeID = ast.InvalidNode, ast.InvalidNode
	for {
		if p.tok.Kind == token.RParen {
			break
		}
		parm := p.parseParm()
		if head == ast.InvalidNode {
			head = parm
		} else {
			p.tree.AddSibling(tail, parm)
		}
		tail = parm
		if p.tok.Kind != token.Comma {
			break
		}
		p.advance()
	}
	return head
}

func (p *Parser) parseParm() ast.NodeID {
	line := p.tok.Line
	expType, ok := declaredType(p.tok.Kind)
	if !ok {
		p.sink.Errorf(p.tok.Line, "Expecting a parameter type")
	}
	p.advance()
	name := p.expect(token.Ident, "a parameter name").Str

	isArray := false
	if p.tok.Kind == token.LBracket {
		isArray = true
		p.advance()
		p.expect(token.RBracket, "']'")
	}

	id := ast.New(p.tree, ast.KindParm, line, expType, ast.NotOp, isArray, false)
	p.tree.Node(id).Value.Str = name
	return id
}

// parseCompound parses "{ declOrStmt* }".
func (p *Parser) parseCompound() ast.NodeID {
	p.trace1("compound-stmt")
	line := p.tok.Line
	p.expect(token.LBrace, "'{'")

	var head, tail ast.NodeID = ast.InvalidNode, ast.InvalidNode
	for p.tok.Kind != token.RBrace && p.tok.Kind != token.EOF {
		stmt := p.parseLocalItem()
		if stmt == ast.InvalidNode {
			p.advance()
			continue
		}
		if head == ast.InvalidNode {
			head = stmt
		} else {
			p.tree.AddSibling(tail, stmt)
		}
		tail = stmt
	}
	p.expect(token.RBrace, "'}'")

	return ast.New(p.tree, ast.KindCompound, line, ast.Void, ast.NotOp, false, false, head)
}

func (p *Parser) parseLocalItem() ast.NodeID {
	switch p.tok.Kind {
	case token.KwInt, token.KwBool, token.KwChar, token.KwVoid, token.KwStatic:
		return p.parseLocalVarDecl()
	default:
		return p.parseStmt()
	}
}

func (p *Parser) parseLocalVarDecl() ast.NodeID {
	line := p.tok.Line
	isStatic := false
	if p.tok.Kind == token.KwStatic {
		isStatic = true
		p.advance()
	}
	expType, ok := declaredType(p.tok.Kind)
	if !ok {
		p.sink.Errorf(p.tok.Line, "Expecting a type")
		return ast.InvalidNode
	}
	p.advance()
	name := p.expect(token.Ident, "an identifier").Str
	return p.parseVarDecl(line, name, expType, isStatic)
}

func (p *Parser) parseStmt() ast.NodeID {
	switch p.tok.Kind {
	case token.LBrace:
		return p.parseCompound()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwBreak:
		return p.parseBreak()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseIf() ast.NodeID {
	p.trace1("if-stmt")
	line := p.tok.Line
	p.advance()
	p.expect(token.LParen, "'('")
	cond := p.parseExpr()
	p.expect(token.RParen, "')'")
	then := p.parseStmt()

	elseBranch := ast.InvalidNode
	if p.tok.Kind == token.KwElse {
		p.advance()
		elseBranch = p.parseStmt()
	}
	return ast.New(p.tree, ast.KindIf, line, ast.Void, ast.NotOp, false, false, cond, then, elseBranch)
}

func (p *Parser) parseWhile() ast.NodeID {
	p.trace1("while-stmt")
	line := p.tok.Line
	p.advance()
	p.expect(token.LParen, "'('")
	cond := p.parseExpr()
	p.expect(token.RParen, "')'")
	body := p.parseStmt()
	return ast.New(p.tree, ast.KindWhile, line, ast.Void, ast.NotOp, false, false, cond, body)
}

func (p *Parser) parseFor() ast.NodeID {
	p.trace1("for-stmt")
	line := p.tok.Line
	p.advance()
	p.expect(token.LParen, "'('")
	name := p.expect(token.Ident, "a loop variable").Str
	iterLine := p.tok.Line
	p.expect(token.KwIn, "'in'")
	lo := p.parseExpr()
	p.expect(token.Range, "'..'")
	hi := p.parseExpr()
	p.expect(token.RParen, "')'")

	rangeID := ast.New(p.tree, ast.KindRange, iterLine, ast.Void, ast.NotOp, false, false, lo, hi)
	iterID := ast.New(p.tree, ast.KindVar, iterLine, ast.Int, ast.NotOp, false, false, rangeID)
	iterNode := p.tree.Node(iterID)
	iterNode.Value.Str = name
	iterNode.IsIterVar = true

	body := p.parseStmt()
	return ast.New(p.tree, ast.KindFor, line, ast.Void, ast.NotOp, false, false, iterID, body)
}

func (p *Parser) parseReturn() ast.NodeID {
	p.trace1("return-stmt")
	line := p.tok.Line
	p.advance()
	var expr ast.NodeID = ast.InvalidNode
	if p.tok.Kind != token.Semi {
		expr = p.parseExpr()
	}
	p.expect(token.Semi, "';'")
	return ast.New(p.tree, ast.KindReturn, line, ast.Void, ast.NotOp, false, false, expr)
}

func (p *Parser) parseBreak() ast.NodeID {
	line := p.tok.Line
	p.advance()
	p.expect(token.Semi, "';'")
	return ast.New(p.tree, ast.KindBreak, line, ast.Void, ast.NotOp, false, false)
}

func (p *Parser) parseExprStmt() ast.NodeID {
	if p.tok.Kind == token.Semi {
		line := p.tok.Line
		p.advance()
		return ast.New(p.tree, ast.KindCompound, line, ast.Void, ast.NotOp, false, false)
	}
	expr := p.parseExpr()
	p.expect(token.Semi, "';'")
	return expr
}
