// Package eval walks a resolved AST and executes it. It carries two scope
// references at all times: global, the fixed scope root, and current, the
// scope active for whatever statement is presently executing.
package eval

import (
	"fmt"

	"github.com/gitofleonardo/soxscript/ast"
	"github.com/gitofleonardo/soxscript/errs"
	"github.com/gitofleonardo/soxscript/resolver"
	"github.com/gitofleonardo/soxscript/token"
	"github.com/gitofleonardo/soxscript/value"
)

// Interpreter evaluates statements and expressions against a live scope
// chain, consulting a resolver.Table built in an earlier pass to resolve
// variable reads/writes without a name-based scope walk.
type Interpreter struct {
	global  *value.Scope
	current *value.Scope
	table   resolver.Table

	stdout func(string)
}

// New creates an Interpreter with a fresh global scope pre-populated with
// the built-ins, consulting table for variable resolution. stdout receives
// every byte print/println would otherwise write to standard output,
// letting callers (tests, the REPL) capture it.
func New(table resolver.Table, stdout func(string)) *Interpreter {
	if table == nil {
		table = make(resolver.Table)
	}
	in := &Interpreter{table: table, stdout: stdout}
	in.global = value.NewScope(nil)
	in.current = in.global
	in.installBuiltins()
	return in
}

// SetTable merges a side table, built by resolving the statements about to
// run, into the one already held. The REPL calls this once per input line,
// since each line is parsed and resolved independently even though they
// share one Interpreter (and its global scope) across the whole session.
// Entries from earlier lines are kept (keys are distinct AST nodes), so a
// function declared on one line still resolves its locals when called later.
func (in *Interpreter) SetTable(table resolver.Table) {
	for expr, hops := range table {
		in.table[expr] = hops
	}
}

// returnSignal unwinds from a Return statement up to the nearest enclosing
// function call frame via Go's native panic/recover, matching the pattern
// the parser already uses for its own internal unwind-to-synchronize
// control flow.
type returnSignal struct{ value value.Value }

func (in *Interpreter) runtimeErrorf(line int, format string, a ...interface{}) *errs.RuntimeError {
	return errs.NewRuntimeError(line, fmt.Sprintf(format, a...))
}

// runtimeErrorAt builds a RuntimeError naming tok's lexeme as the offending
// location.
func (in *Interpreter) runtimeErrorAt(tok token.Token, format string, a ...interface{}) *errs.RuntimeError {
	where := tok.Lexeme
	if tok.Kind == token.FILE_EOF {
		where = "end"
	}
	return errs.NewRuntimeErrorAt(tok.Line, where, fmt.Sprintf(format, a...))
}

// Run executes every statement in order, stopping at (and returning) the
// first runtime error — the file-mode execution contract.
func (in *Interpreter) Run(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := in.RunOne(s); err != nil {
			return err
		}
	}
	return nil
}

// RunOne executes a single top-level statement. The REPL calls this once
// per parsed statement so that one statement's runtime error never aborts
// the session: each REPL statement is independent with respect to errors.
func (in *Interpreter) RunOne(stmt ast.Stmt) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rs, ok := r.(returnSignal); ok {
				_ = rs
				err = in.runtimeErrorf(0, "return outside of a function call")
				return
			}
			panic(r)
		}
	}()
	return in.execStmt(stmt)
}

// lookupVar resolves a Variable/Assign target through the side table,
// falling back to the global scope when expr has no table entry.
func (in *Interpreter) lookupVar(expr ast.Expr) *value.Scope {
	if hops, ok := in.table[expr]; ok {
		return in.current.Ancestor(hops)
	}
	return in.global
}
