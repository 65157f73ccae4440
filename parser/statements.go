package parser

import (
	"github.com/gitofleonardo/soxscript/ast"
	"github.com/gitofleonardo/soxscript/token"
)

// declaration ::= var-decl | fun-decl | stmt
func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.match(token.VAR):
		return p.varDecl()
	case p.match(token.FUN):
		return p.funDecl()
	default:
		return p.statement()
	}
}

// stmt ::= block | if | while | for | return | expr-stmt
func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.L_BRACE):
		return p.block()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	default:
		return p.exprStatement()
	}
}

func (p *Parser) varDecl() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "expected variable name")
	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.expression()
	}
	p.consume(token.SEMICOLON, "expected ';' after variable declaration")
	return &ast.VarDecl{Name: name, Initializer: init}
}

// funDecl ::= 'fun' IDENT '(' params? ')' block
func (p *Parser) funDecl() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "expected function name")
	p.consume(token.L_PAREN, "expected '(' after function name")
	var params []ast.Param
	if !p.check(token.R_PAREN) {
		for {
			vararg := p.match(token.VARARGS)
			pname := p.consume(token.IDENTIFIER, "expected parameter name")
			if vararg && len(params) > 0 && params[len(params)-1].Vararg {
				p.fail(pname, "only the last parameter may be variadic")
			}
			params = append(params, ast.Param{Name: pname, Vararg: vararg})
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	for i, param := range params {
		if param.Vararg && i != len(params)-1 {
			p.fail(param.Name, "variadic parameter must be the last parameter")
		}
	}
	p.consume(token.R_PAREN, "expected ')' after parameters")
	p.consume(token.L_BRACE, "expected '{' before function body")
	body := p.block()
	return &ast.Function{Name: name, Params: params, Body: body}
}

func (p *Parser) block() *ast.Block {
	var stmts []ast.Stmt
	for !p.check(token.R_BRACE) && !p.check(token.FILE_EOF) {
		stmts = append(stmts, p.declaration())
	}
	p.consume(token.R_BRACE, "expected '}' after block")
	return &ast.Block{Stmts: stmts}
}

func (p *Parser) ifStatement() ast.Stmt {
	p.consume(token.L_PAREN, "expected '(' after 'if'")
	cond := p.expression()
	p.consume(token.R_PAREN, "expected ')' after if condition")
	then := p.statement()
	var elseStmt ast.Stmt
	if p.match(token.ELSE) {
		elseStmt = p.statement()
	}
	return &ast.If{Cond: cond, Then: then, Else: elseStmt}
}

func (p *Parser) whileStatement() ast.Stmt {
	p.consume(token.L_PAREN, "expected '(' after 'while'")
	cond := p.expression()
	p.consume(token.R_PAREN, "expected ')' after while condition")
	body := p.statement()
	return &ast.While{Cond: cond, Body: body}
}

// forStatement desugars `for (init; cond; step) body` into
// `{ init; while (cond) { body; step; } }` at parse time, so the resolver
// and evaluator never see a For node.
func (p *Parser) forStatement() ast.Stmt {
	p.consume(token.L_PAREN, "expected '(' after 'for'")

	var init ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		init = nil
	case p.match(token.VAR):
		init = p.varDecl()
	default:
		init = p.exprStatement()
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "expected ';' after for-loop condition")

	var step ast.Expr
	if !p.check(token.R_PAREN) {
		step = p.expression()
	}
	p.consume(token.R_PAREN, "expected ')' after for-loop clauses")

	body := p.statement()

	if cond == nil {
		cond = &ast.Literal{Token: token.New(token.TRUE, "true")}
	}

	if step != nil {
		body = &ast.Block{Stmts: []ast.Stmt{body, &ast.ExprStmt{Expr: step}}}
	}

	loop := ast.Stmt(&ast.While{Cond: cond, Body: body})

	if init != nil {
		loop = &ast.Block{Stmts: []ast.Stmt{init, loop}}
	}
	return loop
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "expected ';' after return value")
	return &ast.Return{Keyword: keyword, Value: value}
}

func (p *Parser) exprStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "expected ';' after expression")
	return &ast.ExprStmt{Expr: expr}
}
