// Package value defines the runtime value model soxscript programs operate
// on: Null, Bool, Int, Double, String, Array, Map, and Callable. Scalars and
// Strings are plain Go value types so that Go's native `==` on a Value
// interface already gives the structural equality spec requires for them;
// Array, Map, and Callable are reference types held behind pointers, so the
// same native `==` gives pointer (identity) equality for free.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is satisfied by every runtime value kind. It carries no behavior
// beyond identification and display; arithmetic and comparison live in the
// eval package, which is the only place that needs to branch on kind.
type Value interface {
	Type() string
	String() string
	Truthy() bool
}

// Null is the single absent-value kind. The zero value is the only value.
type Null struct{}

func (Null) Type() string   { return "null" }
func (Null) String() string { return "null" }
func (Null) Truthy() bool   { return false }

// Bool wraps a boolean. Null, Bool(false) and Int(0) are the only falsy
// values; Double is always truthy, even 0.0 (source-accurate per the
// language's documented quirks).
type Bool bool

func (b Bool) Type() string   { return "bool" }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (b Bool) Truthy() bool { return bool(b) }

// Int is a signed integer value.
type Int int64

func (Int) Type() string     { return "int" }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }
func (i Int) Truthy() bool   { return i != 0 }

// Double is a floating-point value. Formatted with six fractional digits,
// matching the platform-default `%f` the original renders with.
type Double float64

func (Double) Type() string   { return "double" }
func (d Double) String() string { return strconv.FormatFloat(float64(d), 'f', 6, 64) }
func (d Double) Truthy() bool { return true }

// String is a text value.
type String string

func (String) Type() string     { return "string" }
func (s String) String() string { return string(s) }
func (s String) Truthy() bool   { return true }

// Array is a mutable, insertion-ordered sequence. Two Arrays are equal only
// if they are the same object (identity equality), even if their elements
// happen to match structurally.
type Array struct {
	Elements []Value
}

func NewArray(elems ...Value) *Array { return &Array{Elements: elems} }

func (*Array) Type() string { return "array" }
func (a *Array) Truthy() bool { return true }
func (a *Array) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range a.Elements {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte(']')
	return b.String()
}

// Callable is an arity-keyed overload set: every user function binding in a
// scope is one Callable, holding one or more Entry values distinguished by
// parameter count. Two Callables are equal only by identity, matching the
// original's CallableHolder pointer-vector semantics.
type Callable struct {
	Name    string
	Entries []*Entry
}

// Entry is one overload: a parameter list and the scope it closes over.
// Fn is an interface{} (an *ast.Function, concretely) to avoid an import
// cycle between value and ast; eval knows how to unwrap it.
type Entry struct {
	Params   []Param
	Variadic bool
	Closure  interface{}
	Fn       interface{}
	Native   func(args []Value) (Value, error)
}

// Param mirrors ast.Param without importing the ast package.
type Param struct {
	Name   string
	Vararg bool
}

func (*Callable) Type() string   { return "callable" }
func (c *Callable) Truthy() bool { return true }
func (c *Callable) String() string {
	return fmt.Sprintf("<fun %s/%d>", c.Name, len(c.Entries))
}

// FixedArity reports e's fixed (non-vararg) parameter count.
func (e *Entry) FixedArity() int {
	if e.Variadic {
		return len(e.Params) - 1
	}
	return len(e.Params)
}

// Accepts reports whether e can be invoked with argc arguments: an exact
// match for a fixed-arity entry, or at-least-fixed for a variadic one.
func (e *Entry) Accepts(argc int) bool {
	if e.Variadic {
		return argc >= e.FixedArity()
	}
	return argc == e.FixedArity()
}

// Resolve finds the first entry accepting argc arguments. Fixed-arity
// entries are matched in insertion order before any variadic entry is
// tried, so a variadic overload only matches when nothing fixed-arity does.
func (c *Callable) Resolve(argc int) *Entry {
	var variadic *Entry
	for _, e := range c.Entries {
		if e.Variadic {
			if variadic == nil {
				variadic = e
			}
			continue
		}
		if e.Accepts(argc) {
			return e
		}
	}
	if variadic != nil && variadic.Accepts(argc) {
		return variadic
	}
	return nil
}

// Merge inserts entry into the overload set, replacing any existing entry
// of the same fixed arity/variadic-ness and otherwise appending, preserving
// insertion order for distinct arities.
func (c *Callable) Merge(entry *Entry) {
	key := entry.FixedArity()
	for i, e := range c.Entries {
		if e.Variadic == entry.Variadic && e.FixedArity() == key {
			c.Entries[i] = entry
			return
		}
	}
	c.Entries = append(c.Entries, entry)
}
