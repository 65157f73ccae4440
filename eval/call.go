package eval

import (
	"github.com/gitofleonardo/soxscript/ast"
	"github.com/gitofleonardo/soxscript/value"
)

func (in *Interpreter) evalCall(e *ast.Call) (value.Value, error) {
	callee, err := in.evalExpr(e.Callee)
	if err != nil {
		return nil, err
	}
	callable, ok := callee.(*value.Callable)
	if !ok {
		return nil, in.runtimeErrorf(e.ClosParen.Line, "'%s' is not callable", callee.Type())
	}

	args := make([]value.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	entry := callable.Resolve(len(args))
	if entry == nil {
		return nil, in.runtimeErrorf(e.ClosParen.Line, "no overload of '%s' accepts %d argument(s)", callable.Name, len(args))
	}
	return in.invoke(entry, args, e.ClosParen.Line)
}

// invoke dispatches to either a native builtin or a user-defined function
// entry. User entries push a scope parented to the closure they captured
// at declaration time.
func (in *Interpreter) invoke(entry *value.Entry, args []value.Value, line int) (result value.Value, err error) {
	if entry.Native != nil {
		v, nativeErr := entry.Native(args)
		if nativeErr != nil {
			return nil, in.runtimeErrorf(line, "%s", nativeErr)
		}
		return v, nil
	}

	closure, _ := entry.Closure.(*value.Scope)
	callScope := value.NewScope(closure)

	fixed := entry.FixedArity()
	for i := 0; i < fixed; i++ {
		callScope.Define(entry.Params[i].Name, args[i])
	}
	if entry.Variadic {
		rest := append([]value.Value(nil), args[fixed:]...)
		callScope.Define(entry.Params[fixed].Name, &value.Array{Elements: rest})
	}

	fn, ok := entry.Fn.(*ast.Function)
	if !ok {
		return nil, in.runtimeErrorf(line, "malformed callable entry")
	}

	defer func() {
		if r := recover(); r != nil {
			if rs, ok := r.(returnSignal); ok {
				result, err = rs.value, nil
				return
			}
			panic(r)
		}
	}()

	if execErr := in.execBlock(fn.Body.Stmts, callScope); execErr != nil {
		return nil, execErr
	}
	return value.Null{}, nil
}
