package value

import (
	"fmt"
	"strings"
)

// Map is an insertion-ordered associative value. Lookups go through a Go
// native map for O(1) access; `keys`/`vals` retain the original insertion
// order so re-emission via String (and any future iteration builtin) stays
// stable, which Go's native map does not give.
//
// Keys are compared the way the language's Map semantics require:
// structural for scalars and Strings, identity for Arrays and Callables,
// since those are exactly the equalities Go's `==` on a Value interface
// already produces for those concrete types. A *Map itself is never a
// valid key (see checkKey).
type Map struct {
	index map[Value]int
	keys  []Value
	vals  []Value
}

func NewMap() *Map {
	return &Map{index: make(map[Value]int)}
}

func (*Map) Type() string   { return "map" }
func (m *Map) Truthy() bool { return true }

func (m *Map) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k.String())
		b.WriteString(": ")
		b.WriteString(m.vals[i].String())
	}
	b.WriteByte('}')
	return b.String()
}

// checkKey rejects key kinds that cannot be compared with Go's native `==`
// the way the language needs: a Map key would compare by pointer identity
// under Go's rules, but the language disallows Maps as keys outright rather
// than silently giving them identity semantics.
func checkKey(key Value) error {
	if _, ok := key.(*Map); ok {
		return fmt.Errorf("map cannot be used as a map key")
	}
	return nil
}

// Set inserts or overwrites key's value, preserving key's original
// insertion position on overwrite.
func (m *Map) Set(key, val Value) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if i, ok := m.index[key]; ok {
		m.vals[i] = val
		return nil
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, val)
	return nil
}

// Get looks up key, reporting whether it was present.
func (m *Map) Get(key Value) (Value, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false, nil
	}
	return m.vals[i], true, nil
}

// Len returns the entry count.
func (m *Map) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order. Callers must not mutate the
// returned slice.
func (m *Map) Keys() []Value { return m.keys }
