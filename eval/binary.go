package eval

import (
	"github.com/gitofleonardo/soxscript/ast"
	"github.com/gitofleonardo/soxscript/token"
	"github.com/gitofleonardo/soxscript/value"
)

func (in *Interpreter) evalBinary(e *ast.Binary) (value.Value, error) {
	left, err := in.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case token.PLUS:
		return in.evalPlus(left, right, e.Op)
	case token.MINUS, token.STAR, token.SLASH:
		return in.evalArith(e.Op.Kind, left, right, e.Op)
	case token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL, token.EQUAL_EQUAL, token.BANG_EQUAL:
		return in.evalCompare(e.Op.Kind, left, right, e.Op)
	default:
		return nil, in.runtimeErrorAt(e.Op, "unhandled binary operator %s", e.Op.Kind)
	}
}

// evalPlus overloads '+': string concatenation if either operand is a
// String, numeric addition (with Int/Double promotion) otherwise.
func (in *Interpreter) evalPlus(left, right value.Value, op token.Token) (value.Value, error) {
	_, leftStr := left.(value.String)
	_, rightStr := right.(value.String)
	if leftStr || rightStr {
		return value.String(left.String() + right.String()), nil
	}
	if !isNumeric(left) || !isNumeric(right) {
		return nil, in.runtimeErrorAt(op, "'+' requires numeric or string operands")
	}
	if isDoubleValue(left) || isDoubleValue(right) {
		return value.Double(toFloat(left) + toFloat(right)), nil
	}
	return value.Int(left.(value.Int) + right.(value.Int)), nil
}

// evalArith implements '-', '*', '/': numeric only, integer division when
// both operands are Int, Double promotion otherwise.
func (in *Interpreter) evalArith(op token.Kind, left, right value.Value, tok token.Token) (value.Value, error) {
	if !isNumeric(left) || !isNumeric(right) {
		return nil, in.runtimeErrorAt(tok, "'%s' requires numeric operands", tok.Kind)
	}
	if isDoubleValue(left) || isDoubleValue(right) {
		l, r := toFloat(left), toFloat(right)
		switch op {
		case token.MINUS:
			return value.Double(l - r), nil
		case token.STAR:
			return value.Double(l * r), nil
		case token.SLASH:
			return value.Double(l / r), nil
		}
	}
	l, r := int64(left.(value.Int)), int64(right.(value.Int))
	switch op {
	case token.MINUS:
		return value.Int(l - r), nil
	case token.STAR:
		return value.Int(l * r), nil
	case token.SLASH:
		if r == 0 {
			return nil, in.runtimeErrorAt(tok, "integer division by zero")
		}
		return value.Int(l / r), nil
	}
	panic("unreachable")
}

// evalCompare coerces both operands to Double via asDouble before
// comparing. This preserves a deliberate surprise: Bool coerces
// (true -> 1.0), so `true == 1` is true, while String/Null/Array/Map/
// Callable do not coerce, so `"1" == 1` is a runtime error, not false.
func (in *Interpreter) evalCompare(op token.Kind, left, right value.Value, tok token.Token) (value.Value, error) {
	l, ok := asDouble(left)
	if !ok {
		return nil, in.runtimeErrorAt(tok, "'%s' is not comparable", left.Type())
	}
	r, ok := asDouble(right)
	if !ok {
		return nil, in.runtimeErrorAt(tok, "'%s' is not comparable", right.Type())
	}
	switch op {
	case token.GREATER:
		return value.Bool(l > r), nil
	case token.GREATER_EQUAL:
		return value.Bool(l >= r), nil
	case token.LESS:
		return value.Bool(l < r), nil
	case token.LESS_EQUAL:
		return value.Bool(l <= r), nil
	case token.EQUAL_EQUAL:
		return value.Bool(l == r), nil
	case token.BANG_EQUAL:
		return value.Bool(l != r), nil
	}
	panic("unreachable")
}

func isDoubleValue(v value.Value) bool {
	_, ok := v.(value.Double)
	return ok
}

func toFloat(v value.Value) float64 {
	switch n := v.(type) {
	case value.Int:
		return float64(n)
	case value.Double:
		return float64(n)
	default:
		panic("toFloat: non-numeric value")
	}
}

// asDouble performs comparison-time numeric coercion: Int and Double
// coerce directly, Bool coerces to 1.0/0.0 (the source of the `true == 1`
// quirk documented on evalCompare), everything else fails.
func asDouble(v value.Value) (float64, bool) {
	switch n := v.(type) {
	case value.Int:
		return float64(n), true
	case value.Double:
		return float64(n), true
	case value.Bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
