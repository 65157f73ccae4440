// Package resolver performs the static scope-depth analysis pass between
// parsing and evaluation. It walks the AST once, tracking a stack of
// lexical scopes, and for every variable read or assignment records the hop
// count (the number of enclosing block/function scopes to ascend at
// evaluation time) in a side table keyed by AST node identity. Absence of
// an entry means "resolve against the global scope".
package resolver

import (
	"fmt"

	"github.com/gitofleonardo/soxscript/ast"
	"github.com/gitofleonardo/soxscript/errs"
)

// blockType tracks whether the resolver is currently inside a function
// body, so that a `return` outside one can be flagged.
type blockType int

const (
	blockGlobal blockType = iota
	blockFunction
)

// scope maps a declared name to whether it has finished its initializer:
// false = declared but not yet defined, true = defined. Reading a name
// while its slot is false is a resolver error (forbids `var x = x;`).
type scope map[string]bool

// Table is the scope-depth side table: ast.Expr identity -> hop count.
// It is built once by Resolve and treated read-only by the evaluator
// afterward.
type Table map[ast.Expr]int

// Resolver walks a statement list once and produces a Table plus any
// resolver errors (redeclaration, return outside a function, reading a
// local in its own initializer).
type Resolver struct {
	scopes    []scope
	block     blockType
	table     Table
	errors    []*errs.RuntimeError
}

// New creates a Resolver with an empty side table.
func New() *Resolver {
	return &Resolver{table: make(Table), block: blockGlobal}
}

// Resolve walks every statement and returns the completed side table. Call
// Errors afterward to check for resolver-time failures.
func (r *Resolver) Resolve(stmts []ast.Stmt) Table {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
	return r.table
}

// Errors returns every resolver error collected during Resolve.
func (r *Resolver) Errors() []*errs.RuntimeError { return r.errors }

func (r *Resolver) errorf(line int, format string, a ...interface{}) {
	r.errors = append(r.errors, errs.NewRuntimeError(line, fmt.Sprintf(format, a...)))
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, scope{}) }
func (r *Resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

// declare marks name as present-but-not-yet-initialized in the *live*
// top-of-stack scope: Go maps are reference types, so mutating the local
// `top` alias mutates the entry r.scopes already points at.
func (r *Resolver) declare(name string, line int) {
	if len(r.scopes) == 0 {
		return
	}
	top := r.scopes[len(r.scopes)-1]
	if _, ok := top[name]; ok {
		r.errorf(line, "variable already declared: %s", name)
	}
	top[name] = false
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

// resolveLocal walks the scope stack inside-out; for the first scope that
// contains name at index k (of a stack of size n), it records hop count
// n-1-k. No match leaves the side table untouched (global lookup).
func (r *Resolver) resolveLocal(expr ast.Expr, name string) {
	n := len(r.scopes)
	for i := n - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.table[expr] = n - 1 - i
			return
		}
	}
}
