package eval

import (
	"fmt"

	"github.com/gitofleonardo/soxscript/value"
)

// installBuiltins pre-populates the global scope with print, println, and
// length, each a single-entry Callable wrapping a native Go function
// rather than an *ast.Function body.
func (in *Interpreter) installBuiltins() {
	in.defineNative("print", 1, func(args []value.Value) (value.Value, error) {
		in.stdout(args[0].String())
		return value.Null{}, nil
	})
	in.defineNative("println", 1, func(args []value.Value) (value.Value, error) {
		in.stdout(args[0].String() + "\n")
		return value.Null{}, nil
	})
	in.defineNative("length", 1, func(args []value.Value) (value.Value, error) {
		switch v := args[0].(type) {
		case *value.Array:
			return value.Int(len(v.Elements)), nil
		case *value.Map:
			return value.Int(v.Len()), nil
		default:
			return nil, fmt.Errorf("length() requires an Array or Map, got %s", v.Type())
		}
	})
}

func (in *Interpreter) defineNative(name string, arity int, fn func(args []value.Value) (value.Value, error)) {
	params := make([]value.Param, arity)
	for i := range params {
		params[i] = value.Param{Name: fmt.Sprintf("arg%d", i)}
	}
	callable := &value.Callable{Name: name}
	callable.Entries = append(callable.Entries, &value.Entry{Params: params, Native: fn})
	in.global.Define(name, callable)
}
