package resolver

import "github.com/gitofleonardo/soxscript/ast"

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		r.resolveExpr(s.Expr)
	case *ast.VarDecl:
		r.declare(s.Name.Lexeme, s.Name.Line)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name.Lexeme)
	case *ast.Block:
		r.beginScope()
		for _, st := range s.Stmts {
			r.resolveStmt(st)
		}
		r.endScope()
	case *ast.If:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.While:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	case *ast.Function:
		r.declare(s.Name.Lexeme, s.Name.Line)
		r.declareFunction(s)
	case *ast.Return:
		if r.block != blockFunction {
			r.errorf(s.Keyword.Line, "cannot return from outside a function")
		}
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}
	default:
		panic("resolver: unhandled statement type")
	}
}

// declareFunction defines the function's own name (resolveStmt has already
// declared it), then resolves
// its body under a fresh scope containing the parameters. The body block's
// statements are resolved directly into that same parameter scope (not a
// further nested one), matching the original's resolveFunction, which
// never gives the body its own extra scope layer beyond the parameters.
func (r *Resolver) declareFunction(fn *ast.Function) {
	r.define(fn.Name.Lexeme)

	enclosing := r.block
	r.block = blockFunction
	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param.Name.Lexeme, param.Name.Line)
		r.define(param.Name.Lexeme)
	}
	for _, st := range fn.Body.Stmts {
		r.resolveStmt(st)
	}
	r.endScope()
	r.block = enclosing
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:
		// no sub-expressions
	case *ast.Variable:
		if len(r.scopes) > 0 {
			top := r.scopes[len(r.scopes)-1]
			if defined, ok := top[e.Name.Lexeme]; ok && !defined {
				r.errorf(e.Name.Line, "cannot read local variable in its own initializer: %s", e.Name.Lexeme)
			}
		}
		r.resolveLocal(e, e.Name.Lexeme)
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name.Lexeme)
	case *ast.Grouping:
		r.resolveExpr(e.Inner)
	case *ast.Unary:
		r.resolveExpr(e.Right)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Ternary:
		r.resolveExpr(e.Cond)
		r.resolveExpr(e.Then)
		r.resolveExpr(e.Else)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *ast.ArrayLit:
		for _, el := range e.Elements {
			r.resolveExpr(el)
		}
	case *ast.MapLit:
		for _, entry := range e.Entries {
			r.resolveExpr(entry.Key)
			r.resolveExpr(entry.Value)
		}
	case *ast.Index:
		r.resolveExpr(e.Callee)
		r.resolveExpr(e.Idx)
	case *ast.IndexAssign:
		r.resolveExpr(e.Target)
		r.resolveExpr(e.Idx)
		r.resolveExpr(e.Value)
	case *ast.StringInterp:
		for _, part := range e.Parts {
			r.resolveExpr(part)
		}
	default:
		panic("resolver: unhandled expression type")
	}
}
