package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScalarEqualityIsStructural(t *testing.T) {
	var a, b Value = Int(3), Int(3)
	assert.Equal(t, a, b)
	assert.True(t, a == b)

	a, b = String("hi"), String("hi")
	assert.True(t, a == b)

	a, b = Bool(true), Bool(true)
	assert.True(t, a == b)
}

func TestArrayEqualityIsIdentityNotStructural(t *testing.T) {
	a := NewArray(Int(1), Int(2))
	b := NewArray(Int(1), Int(2))
	var av, bv Value = a, b
	assert.False(t, av == bv, "two distinct *Array values with equal contents must not compare equal")

	var selfA Value = a
	assert.True(t, av == selfA)
}

func TestTruthiness(t *testing.T) {
	assert.False(t, Null{}.Truthy())
	assert.False(t, Bool(false).Truthy())
	assert.True(t, Bool(true).Truthy())
	assert.False(t, Int(0).Truthy())
	assert.True(t, Int(1).Truthy())
	// Double(0.0) is truthy: numeric zero-ness does not imply falsiness for
	// floats, unlike Int.
	assert.True(t, Double(0).Truthy())
	assert.True(t, String("").Truthy())
}

func TestCallableMergeReplacesSameArityEntry(t *testing.T) {
	c := &Callable{Name: "f"}
	e1 := &Entry{Params: []Param{{Name: "x"}}}
	e2 := &Entry{Params: []Param{{Name: "y"}}}
	c.Merge(e1)
	c.Merge(e2)
	assert.Len(t, c.Entries, 1)
	assert.Same(t, e2, c.Entries[0])
}

func TestCallableMergeAccumulatesByArity(t *testing.T) {
	c := &Callable{Name: "f"}
	c.Merge(&Entry{Params: []Param{{Name: "x"}}})
	c.Merge(&Entry{Params: []Param{{Name: "x"}, {Name: "y"}}})
	assert.Len(t, c.Entries, 2)
}

func TestCallableResolvePrefersFixedArityOverVariadic(t *testing.T) {
	c := &Callable{Name: "f"}
	fixed := &Entry{Params: []Param{{Name: "x"}}}
	variadic := &Entry{Params: []Param{{Name: "xs", Vararg: true}}, Variadic: true}
	c.Merge(variadic)
	c.Merge(fixed)

	assert.Same(t, fixed, c.Resolve(1))
	assert.Same(t, variadic, c.Resolve(0))
	assert.Same(t, variadic, c.Resolve(5))
}

func TestCallableResolveReturnsNilWhenNoEntryAccepts(t *testing.T) {
	c := &Callable{Name: "f"}
	c.Merge(&Entry{Params: []Param{{Name: "x"}}})
	assert.Nil(t, c.Resolve(2))
}
