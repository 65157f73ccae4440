package eval

import (
	"github.com/gitofleonardo/soxscript/ast"
	"github.com/gitofleonardo/soxscript/token"
	"github.com/gitofleonardo/soxscript/value"
)

func (in *Interpreter) evalExpr(expr ast.Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return in.literalValue(e.Token)
	case *ast.Variable:
		return in.evalVariable(e)
	case *ast.Assign:
		return in.evalAssign(e)
	case *ast.Grouping:
		return in.evalExpr(e.Inner)
	case *ast.Unary:
		return in.evalUnary(e)
	case *ast.Binary:
		return in.evalBinary(e)
	case *ast.Logical:
		return in.evalLogical(e)
	case *ast.Ternary:
		return in.evalTernary(e)
	case *ast.Call:
		return in.evalCall(e)
	case *ast.ArrayLit:
		return in.evalArrayLit(e)
	case *ast.MapLit:
		return in.evalMapLit(e)
	case *ast.Index:
		return in.evalIndex(e)
	case *ast.IndexAssign:
		return in.evalIndexAssign(e)
	case *ast.StringInterp:
		return in.evalStringInterp(e)
	default:
		panic("eval: unhandled expression type")
	}
}

func (in *Interpreter) evalVariable(e *ast.Variable) (value.Value, error) {
	scope := in.lookupVar(e)
	v, ok := scope.Get(e.Name.Lexeme)
	if !ok {
		return nil, in.runtimeErrorAt(e.Name, "undefined variable '%s'", e.Name.Lexeme)
	}
	if value.IsUninitialized(v) {
		return nil, in.runtimeErrorAt(e.Name, "variable '%s' used before initialization", e.Name.Lexeme)
	}
	return v, nil
}

func (in *Interpreter) evalAssign(e *ast.Assign) (value.Value, error) {
	v, err := in.evalExpr(e.Value)
	if err != nil {
		return nil, err
	}
	scope := in.lookupVar(e)
	if !scope.Assign(e.Name.Lexeme, v) {
		return nil, in.runtimeErrorAt(e.Name, "assignment to undeclared variable '%s'", e.Name.Lexeme)
	}
	return v, nil
}

func (in *Interpreter) evalUnary(e *ast.Unary) (value.Value, error) {
	right, err := in.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op.Kind {
	case token.BANG:
		return value.Bool(!right.Truthy()), nil
	case token.PLUS:
		if !isNumeric(right) {
			return nil, in.runtimeErrorAt(e.Op, "'+' requires a numeric operand")
		}
		return right, nil
	case token.MINUS:
		switch n := right.(type) {
		case value.Int:
			return -n, nil
		case value.Double:
			return -n, nil
		default:
			return nil, in.runtimeErrorAt(e.Op, "'-' requires a numeric operand")
		}
	default:
		return nil, in.runtimeErrorAt(e.Op, "unhandled unary operator %s", e.Op.Kind)
	}
}

func (in *Interpreter) evalLogical(e *ast.Logical) (value.Value, error) {
	left, err := in.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	switch e.Op.Kind {
	case token.OR:
		if left.Truthy() {
			return left, nil
		}
		return in.evalExpr(e.Right)
	case token.AND:
		if !left.Truthy() {
			return left, nil
		}
		return in.evalExpr(e.Right)
	default:
		return nil, in.runtimeErrorAt(e.Op, "unhandled logical operator %s", e.Op.Kind)
	}
}

// evalTernary evaluates only the selected branch, unlike an earlier
// eager-evaluation variant that ran both branches before picking one (see
// DESIGN.md).
func (in *Interpreter) evalTernary(e *ast.Ternary) (value.Value, error) {
	cond, err := in.evalExpr(e.Cond)
	if err != nil {
		return nil, err
	}
	if cond.Truthy() {
		return in.evalExpr(e.Then)
	}
	return in.evalExpr(e.Else)
}

func (in *Interpreter) evalArrayLit(e *ast.ArrayLit) (value.Value, error) {
	elems := make([]value.Value, len(e.Elements))
	for i, el := range e.Elements {
		v, err := in.evalExpr(el)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return &value.Array{Elements: elems}, nil
}

func (in *Interpreter) evalMapLit(e *ast.MapLit) (value.Value, error) {
	m := value.NewMap()
	for _, entry := range e.Entries {
		k, err := in.evalExpr(entry.Key)
		if err != nil {
			return nil, err
		}
		v, err := in.evalExpr(entry.Value)
		if err != nil {
			return nil, err
		}
		if err := m.Set(k, v); err != nil {
			return nil, in.runtimeErrorf(e.Brace.Line, "%s", err)
		}
	}
	return m, nil
}

func (in *Interpreter) evalIndex(e *ast.Index) (value.Value, error) {
	callee, err := in.evalExpr(e.Callee)
	if err != nil {
		return nil, err
	}
	idx, err := in.evalExpr(e.Idx)
	if err != nil {
		return nil, err
	}
	return in.index(callee, idx, e.Bracket.Line)
}

func (in *Interpreter) index(callee, idx value.Value, line int) (value.Value, error) {
	switch c := callee.(type) {
	case *value.Array:
		i, ok := idx.(value.Int)
		if !ok {
			return nil, in.runtimeErrorf(line, "array index must be an Int")
		}
		if int(i) < 0 || int(i) >= len(c.Elements) {
			return nil, in.runtimeErrorf(line, "array index %d out of range", i)
		}
		return c.Elements[i], nil
	case *value.Map:
		v, ok, err := c.Get(idx)
		if err != nil {
			return nil, in.runtimeErrorf(line, "%s", err)
		}
		if !ok {
			return nil, in.runtimeErrorf(line, "key not found in map")
		}
		return v, nil
	default:
		return nil, in.runtimeErrorf(line, "'%s' is not indexable", callee.Type())
	}
}

func (in *Interpreter) evalIndexAssign(e *ast.IndexAssign) (value.Value, error) {
	callee, err := in.evalExpr(e.Target)
	if err != nil {
		return nil, err
	}
	idx, err := in.evalExpr(e.Idx)
	if err != nil {
		return nil, err
	}
	v, err := in.evalExpr(e.Value)
	if err != nil {
		return nil, err
	}
	switch c := callee.(type) {
	case *value.Array:
		i, ok := idx.(value.Int)
		if !ok {
			return nil, in.runtimeErrorAt(e.Bracket, "array index must be an Int")
		}
		if int(i) < 0 || int(i) >= len(c.Elements) {
			return nil, in.runtimeErrorAt(e.Bracket, "array index %d out of range", i)
		}
		c.Elements[i] = v
		return v, nil
	case *value.Map:
		if err := c.Set(idx, v); err != nil {
			return nil, in.runtimeErrorf(e.Bracket.Line, "%s", err)
		}
		return v, nil
	default:
		return nil, in.runtimeErrorAt(e.Bracket, "'%s' is not indexable", callee.Type())
	}
}

func (in *Interpreter) evalStringInterp(e *ast.StringInterp) (value.Value, error) {
	var b []byte
	for _, part := range e.Parts {
		v, err := in.evalExpr(part)
		if err != nil {
			return nil, err
		}
		b = append(b, v.String()...)
	}
	return value.String(b), nil
}

func isNumeric(v value.Value) bool {
	switch v.(type) {
	case value.Int, value.Double:
		return true
	default:
		return false
	}
}
