package eval

import (
	"github.com/gitofleonardo/soxscript/ast"
	"github.com/gitofleonardo/soxscript/value"
)

func (in *Interpreter) execStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		_, err := in.evalExpr(s.Expr)
		return err
	case *ast.VarDecl:
		return in.execVarDecl(s)
	case *ast.Block:
		return in.execBlock(s.Stmts, value.NewScope(in.current))
	case *ast.If:
		return in.execIf(s)
	case *ast.While:
		return in.execWhile(s)
	case *ast.Function:
		return in.execFunctionDecl(s)
	case *ast.Return:
		return in.execReturn(s)
	default:
		panic("eval: unhandled statement type")
	}
}

func (in *Interpreter) execVarDecl(s *ast.VarDecl) error {
	v := value.Uninitialized
	if s.Initializer != nil {
		var err error
		v, err = in.evalExpr(s.Initializer)
		if err != nil {
			return err
		}
	}
	in.current.Define(s.Name.Lexeme, v)
	return nil
}

// execBlock saves current, runs stmts against scope, then restores current
// on every exit path — including a propagating error or return signal.
func (in *Interpreter) execBlock(stmts []ast.Stmt, scope *value.Scope) error {
	prev := in.current
	in.current = scope
	defer func() { in.current = prev }()

	for _, st := range stmts {
		if err := in.execStmt(st); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execIf(s *ast.If) error {
	cond, err := in.evalExpr(s.Cond)
	if err != nil {
		return err
	}
	if cond.Truthy() {
		return in.execStmt(s.Then)
	}
	if s.Else != nil {
		return in.execStmt(s.Else)
	}
	return nil
}

func (in *Interpreter) execWhile(s *ast.While) error {
	for {
		cond, err := in.evalExpr(s.Cond)
		if err != nil {
			return err
		}
		if !cond.Truthy() {
			return nil
		}
		if err := in.execStmt(s.Body); err != nil {
			return err
		}
	}
}

// execFunctionDecl builds a Callable entry closing over the scope active
// right now, then merges it into any existing overload set bound to the
// same name in this scope.
func (in *Interpreter) execFunctionDecl(s *ast.Function) error {
	params := make([]value.Param, len(s.Params))
	variadic := false
	for i, p := range s.Params {
		params[i] = value.Param{Name: p.Name.Lexeme, Vararg: p.Vararg}
		if p.Vararg {
			variadic = true
		}
	}
	entry := &value.Entry{Params: params, Variadic: variadic, Closure: in.current, Fn: s}

	existing, ok := in.current.Get(s.Name.Lexeme)
	callable, isCallable := existing.(*value.Callable)
	if !ok || !isCallable {
		callable = &value.Callable{Name: s.Name.Lexeme}
	}
	callable.Merge(entry)
	in.current.Define(s.Name.Lexeme, callable)
	return nil
}

func (in *Interpreter) execReturn(s *ast.Return) error {
	v := value.Value(value.Null{})
	if s.Value != nil {
		var err error
		v, err = in.evalExpr(s.Value)
		if err != nil {
			return err
		}
	}
	panic(returnSignal{v})
}
