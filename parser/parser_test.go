package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitofleonardo/soxscript/ast"
	"github.com/gitofleonardo/soxscript/lexer"
	"github.com/gitofleonardo/soxscript/token"
)

func parse(src string) ([]ast.Stmt, *Parser) {
	toks := lexer.New(src).Tokenize()
	p := New(toks)
	return p.Parse(), p
}

func TestParsePrecedenceArithmetic(t *testing.T) {
	stmts, p := parse("1 + 2 * 3;")
	assert.False(t, p.HasErrors())
	assert.Len(t, stmts, 1)

	es := stmts[0].(*ast.ExprStmt)
	bin := es.Expr.(*ast.Binary)
	assert.Equal(t, token.PLUS, bin.Op.Kind)
	_, leftIsLit := bin.Left.(*ast.Literal)
	assert.True(t, leftIsLit)

	right := bin.Right.(*ast.Binary)
	assert.Equal(t, token.STAR, right.Op.Kind)
}

func TestTernaryIsLeftAssociative(t *testing.T) {
	stmts, p := parse("a ? b : c ? d : e;")
	assert.False(t, p.HasErrors())

	es := stmts[0].(*ast.ExprStmt)
	outer := es.Expr.(*ast.Ternary)
	// (a ? b : c) ? d : e -- outer.Cond is itself a Ternary.
	_, condIsTernary := outer.Cond.(*ast.Ternary)
	assert.True(t, condIsTernary)
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	stmts, p := parse("a = b = 1;")
	assert.False(t, p.HasErrors())

	es := stmts[0].(*ast.ExprStmt)
	outer := es.Expr.(*ast.Assign)
	assert.Equal(t, "a", outer.Name.Lexeme)
	inner := outer.Value.(*ast.Assign)
	assert.Equal(t, "b", inner.Name.Lexeme)
}

func TestInvalidAssignmentTargetIsParseError(t *testing.T) {
	_, p := parse("1 = 2;")
	assert.True(t, p.HasErrors())
}

func TestIndexAssignTargetsIndexExpression(t *testing.T) {
	stmts, p := parse("a[0] = 1;")
	assert.False(t, p.HasErrors())

	es := stmts[0].(*ast.ExprStmt)
	ia := es.Expr.(*ast.IndexAssign)
	target := ia.Target.(*ast.Variable)
	assert.Equal(t, "a", target.Name.Lexeme)
}

func TestForDesugarsIntoBlockWrappingWhile(t *testing.T) {
	stmts, p := parse("for (var i = 0; i < 3; i = i + 1) print(i);")
	assert.False(t, p.HasErrors())
	assert.Len(t, stmts, 1)

	outer := stmts[0].(*ast.Block)
	assert.Len(t, outer.Stmts, 2)
	_, initIsVarDecl := outer.Stmts[0].(*ast.VarDecl)
	assert.True(t, initIsVarDecl)

	loop := outer.Stmts[1].(*ast.While)
	body := loop.Body.(*ast.Block)
	assert.Len(t, body.Stmts, 2)
	_, lastIsIncrement := body.Stmts[1].(*ast.ExprStmt)
	assert.True(t, lastIsIncrement)
}

func TestForWithOmittedConditionDefaultsToTrue(t *testing.T) {
	stmts, p := parse("for (;;) { }")
	assert.False(t, p.HasErrors())

	loop := stmts[0].(*ast.While)
	lit := loop.Cond.(*ast.Literal)
	assert.Equal(t, token.TRUE, lit.Token.Kind)
}

func TestFunctionDeclParsesVariadicParam(t *testing.T) {
	stmts, p := parse("fun sum(varargs xs) { return xs; }")
	assert.False(t, p.HasErrors())

	fn := stmts[0].(*ast.Function)
	assert.Equal(t, "sum", fn.Name.Lexeme)
	assert.Len(t, fn.Params, 1)
	assert.True(t, fn.Params[0].Vararg)
}

func TestVariadicParamMustBeLast(t *testing.T) {
	_, p := parse("fun f(varargs xs, y) { }")
	assert.True(t, p.HasErrors())
}

func TestArrayAndMapLiterals(t *testing.T) {
	stmts, p := parse(`[1, 2, 3];`)
	assert.False(t, p.HasErrors())
	arr := stmts[0].(*ast.ExprStmt).Expr.(*ast.ArrayLit)
	assert.Len(t, arr.Elements, 3)

	stmts, p = parse(`var m = { "a": 1, "b": 2 };`)
	assert.False(t, p.HasErrors())
	m := stmts[0].(*ast.VarDecl).Initializer.(*ast.MapLit)
	assert.Len(t, m.Entries, 2)
}

func TestCallChainsWithIndexAndCall(t *testing.T) {
	stmts, p := parse("f(x)[0](y);")
	assert.False(t, p.HasErrors())

	outer := stmts[0].(*ast.ExprStmt).Expr.(*ast.Call)
	idx := outer.Callee.(*ast.Index)
	_, idxOfCall := idx.Callee.(*ast.Call)
	assert.True(t, idxOfCall)
}

func TestInterpolatedStringBuildsPartsAlternatingLiteralsAndExprs(t *testing.T) {
	stmts, p := parse(`"hi $name!";`)
	assert.False(t, p.HasErrors())

	interp := stmts[0].(*ast.ExprStmt).Expr.(*ast.StringInterp)
	assert.Len(t, interp.Parts, 3)
	lit0 := interp.Parts[0].(*ast.Literal)
	assert.Equal(t, "hi ", lit0.Token.Lexeme)
	_, nameIsVariable := interp.Parts[1].(*ast.Variable)
	assert.True(t, nameIsVariable)
	lit2 := interp.Parts[2].(*ast.Literal)
	assert.Equal(t, "!", lit2.Token.Lexeme)
}

func TestPlainStringIsALiteralNotStringInterp(t *testing.T) {
	stmts, p := parse(`"hello";`)
	assert.False(t, p.HasErrors())
	_, isLiteral := stmts[0].(*ast.ExprStmt).Expr.(*ast.Literal)
	assert.True(t, isLiteral)
}

func TestMissingSemicolonIsParseErrorAtEnd(t *testing.T) {
	_, p := parse("var x = 1")
	assert.True(t, p.HasErrors())
	errs := p.Errors()
	assert.Equal(t, "end", errs[len(errs)-1].Where)
}

func TestSynchronizeRecoversAfterErrorAndParsesNextStatement(t *testing.T) {
	stmts, p := parse("1 = 2; var x = 3;")
	assert.True(t, p.HasErrors())
	assert.Len(t, stmts, 1)
	decl := stmts[0].(*ast.VarDecl)
	assert.Equal(t, "x", decl.Name.Lexeme)
}
