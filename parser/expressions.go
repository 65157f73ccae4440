package parser

import (
	"github.com/gitofleonardo/soxscript/ast"
	"github.com/gitofleonardo/soxscript/token"
)

// expression is the entry point of the precedence ladder, lowest to
// highest: assignment -> or -> and -> ternary -> equality ->
// comparison -> term -> factor -> unary -> call -> primary.
func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment is right-associative; its left-hand side must already have
// parsed down to a Variable (-> Assign) or an Index (-> IndexAssign).
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value}
		case *ast.Index:
			return &ast.IndexAssign{Target: target.Callee, Idx: target.Idx, Value: value, Bracket: target.Bracket}
		default:
			p.fail(equals, "invalid assignment target")
		}
	}
	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		op := p.previous()
		right := p.and()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.ternary()
	for p.match(token.AND) {
		op := p.previous()
		right := p.ternary()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

// ternary implements a deliberately unusual left-associative chaining:
// `a ? b : c ? d : e` groups as `(a ? b : c) ? d : e`.
func (p *Parser) ternary() ast.Expr {
	expr := p.equality()
	for p.match(token.QUESTION_MARK) {
		then := p.equality()
		p.consume(token.COLON, "expected ':' in ternary expression")
		elseExpr := p.equality()
		expr = &ast.Ternary{Cond: expr, Then: then, Else: elseExpr}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.PLUS, token.MINUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.STAR, token.SLASH) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.PLUS, token.MINUS, token.BANG) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Op: op, Right: right}
	}
	return p.call()
}

// call parses postfix '(' and '[' chains: `f(x)[0](y)` is legal.
func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.L_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.L_BRACKET):
			idx := p.expression()
			bracket := p.consume(token.R_BRACKET, "expected ']' after index expression")
			expr = &ast.Index{Callee: expr, Idx: idx, Bracket: bracket}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.R_PAREN) {
		for {
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.R_PAREN, "expected ')' after arguments")
	return &ast.Call{Callee: callee, Args: args, ClosParen: paren}
}

// primary accepts literal tokens, parenthesized groups, identifiers, array
// literals, and map literals. '{' in expression position always begins a
// map: statement position consumes '{' as a block before expression() is
// ever reached (see statement()), so the two never compete here.
func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE, token.TRUE, token.NULL_PTR, token.INT, token.DOUBLE):
		return &ast.Literal{Token: p.previous()}
	case p.match(token.STRING):
		return p.stringLiteral(p.previous())
	case p.match(token.IDENTIFIER):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.L_PAREN):
		inner := p.expression()
		p.consume(token.R_PAREN, "expected ')' after expression")
		return &ast.Grouping{Inner: inner}
	case p.match(token.L_BRACKET):
		return p.arrayLiteral(p.previous())
	case p.match(token.L_BRACE):
		return p.mapLiteral(p.previous())
	}
	p.fail(p.peek(), "expected expression")
	panic("unreachable")
}

func (p *Parser) arrayLiteral(bracket token.Token) ast.Expr {
	var elems []ast.Expr
	if !p.check(token.R_BRACKET) {
		for {
			elems = append(elems, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.R_BRACKET, "expected ']' after array elements")
	return &ast.ArrayLit{Bracket: bracket, Elements: elems}
}

func (p *Parser) mapLiteral(brace token.Token) ast.Expr {
	var entries []ast.MapEntry
	if !p.check(token.R_BRACE) {
		for {
			key := p.expression()
			p.consume(token.COLON, "expected ':' after map key")
			value := p.expression()
			entries = append(entries, ast.MapEntry{Key: key, Value: value})
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.R_BRACE, "expected '}' after map entries")
	return &ast.MapLit{Brace: brace, Entries: entries}
}

// stringLiteral builds a plain Literal for an uninterpolated string, or an
// ast.StringInterp whose Parts alternate literal segments and the
// sub-parsed embedded expressions, for an interpolated one.
func (p *Parser) stringLiteral(tok token.Token) ast.Expr {
	if !tok.IsInterpolated() {
		return &ast.Literal{Token: tok}
	}

	var parts []ast.Expr
	subs := tok.Sub
	i := 0
	for i < len(subs) && subs[i].Kind != token.FILE_EOF {
		t := subs[i]
		if t.Kind == token.STRING {
			parts = append(parts, &ast.Literal{Token: t})
			i++
			continue
		}
		start := i
		for i < len(subs) && subs[i].Kind != token.STRING && subs[i].Kind != token.FILE_EOF {
			i++
		}
		run := make([]token.Token, 0, i-start+1)
		run = append(run, subs[start:i]...)
		run = append(run, token.NewAt(token.FILE_EOF, "", t.Line))
		parts = append(parts, p.parseEmbeddedExpr(run))
	}
	return &ast.StringInterp{Tok: tok, Parts: parts}
}

// parseEmbeddedExpr parses one expression out of an interpolation run,
// folding any of its errors into the outer parser's error list.
func (p *Parser) parseEmbeddedExpr(run []token.Token) (expr ast.Expr) {
	sub := New(run)
	defer func() {
		p.errors = append(p.errors, sub.errors...)
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				expr = &ast.Literal{Token: token.New(token.NULL_PTR, "null")}
				return
			}
			panic(r)
		}
	}()
	return sub.expression()
}
