package eval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitofleonardo/soxscript/lexer"
	"github.com/gitofleonardo/soxscript/parser"
	"github.com/gitofleonardo/soxscript/resolver"
)

// run lexes, parses, resolves, and evaluates src end to end, returning
// everything print/println wrote and the first runtime error (if any).
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	toks := lexer.New(src).Tokenize()
	p := parser.New(toks)
	stmts := p.Parse()
	require.False(t, p.HasErrors(), "parse errors: %v", p.Errors())

	r := resolver.New()
	table := r.Resolve(stmts)
	require.Empty(t, r.Errors(), "resolver errors: %v", r.Errors())

	var out strings.Builder
	in := New(table, func(s string) { out.WriteString(s) })
	err := in.Run(stmts)
	return out.String(), err
}

func TestArithmeticPrecedence(t *testing.T) {
	out, err := run(t, "println(1 + 2 * 3);")
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestStringConcatenationViaPlus(t *testing.T) {
	out, err := run(t, `println("a" + "b" + 1);`)
	require.NoError(t, err)
	assert.Equal(t, "ab1\n", out)
}

func TestIntegerDivisionByZeroIsRuntimeError(t *testing.T) {
	_, err := run(t, "println(1 / 0);")
	assert.Error(t, err)
}

func TestShadowingInBlockDoesNotLeakOut(t *testing.T) {
	out, err := run(t, `var x = 1; { var x = 2; print(x); } print(x);`)
	require.NoError(t, err)
	assert.Equal(t, "21", out)
}

func TestAssignmentToOuterVariableFromNestedBlock(t *testing.T) {
	out, err := run(t, `var x = 1; { x = 2; } print(x);`)
	require.NoError(t, err)
	assert.Equal(t, "2", out)
}

func TestReadingUninitializedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, "var x; print(x);")
	assert.Error(t, err)
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, "print(nope);")
	assert.Error(t, err)
}

func TestLazyTernaryOnlyEvaluatesSelectedBranch(t *testing.T) {
	out, err := run(t, `fun boom() { return 1/0; } println(true ? 1 : boom());`)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestFunctionOverloadedByArity(t *testing.T) {
	src := `
fun f(x) { println(x); }
fun f(x, y) { println(x + y); }
f(1);
f(1, 2);
`
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "1\n3\n", out)
}

func TestVariadicFunctionCollectsTrailingArgsIntoArray(t *testing.T) {
	src := `
fun sum(varargs xs) {
  var total = 0;
  for (var i = 0; i < length(xs); i = i + 1) {
    total = total + xs[i];
  }
  return total;
}
println(sum(1, 2, 3, 4));
`
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestClosureCapturesDeclarationTimeScope(t *testing.T) {
	src := `
fun makeCounter() {
  var count = 0;
  fun next() {
    count = count + 1;
    return count;
  }
  return next;
}
var counter = makeCounter();
println(counter());
println(counter());
println(counter());
`
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestArrayIndexOutOfRangeIsRuntimeError(t *testing.T) {
	_, err := run(t, "var a = [1, 2]; print(a[5]);")
	assert.Error(t, err)
}

func TestArrayIndexAssignment(t *testing.T) {
	out, err := run(t, `var a = [1, 2, 3]; a[1] = 99; println(a[1]);`)
	require.NoError(t, err)
	assert.Equal(t, "99\n", out)
}

func TestMapLiteralAndIndex(t *testing.T) {
	out, err := run(t, `var m = {"a": 1, "b": 2}; println(m["b"]);`)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestMapCannotBeUsedAsAMapKey(t *testing.T) {
	_, err := run(t, `var m = {}; var bad = {}; m[bad] = 1;`)
	assert.Error(t, err)
}

func TestTypeMismatchInArithmeticIsRuntimeError(t *testing.T) {
	_, err := run(t, `println("a" - 1);`)
	assert.Error(t, err)
}

func TestBoolCoercesToNumberInComparison(t *testing.T) {
	// Comparison coerces Bool through asDouble, so true == 1 is true —
	// a documented, intentionally-preserved surprise.
	out, err := run(t, `println(true == 1);`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestStringEqualToIntIsRuntimeErrorNotFalse(t *testing.T) {
	_, err := run(t, `println("1" == 1);`)
	assert.Error(t, err)
}

func TestDoubleZeroIsTruthy(t *testing.T) {
	out, err := run(t, `if (0.0) { println("truthy"); } else { println("falsy"); }`)
	require.NoError(t, err)
	assert.Equal(t, "truthy\n", out)
}

func TestIntZeroIsFalsy(t *testing.T) {
	out, err := run(t, `if (0) { println("truthy"); } else { println("falsy"); }`)
	require.NoError(t, err)
	assert.Equal(t, "falsy\n", out)
}

func TestForLoopDesugaringExecutesExpectedIterationCount(t *testing.T) {
	out, err := run(t, `for (var i = 0; i < 3; i = i + 1) { print(i); }`)
	require.NoError(t, err)
	assert.Equal(t, "012", out)
}

func TestStringInterpolationIdentifierForm(t *testing.T) {
	out, err := run(t, `var name = "world"; println("hi $name!");`)
	require.NoError(t, err)
	assert.Equal(t, "hi world!\n", out)
}

func TestStringInterpolationBraceExprForm(t *testing.T) {
	out, err := run(t, `println("sum is ${1 + 2}");`)
	require.NoError(t, err)
	assert.Equal(t, "sum is 3\n", out)
}

func TestHexOctalAndBinaryLiteralsEvaluateToExpectedInts(t *testing.T) {
	out, err := run(t, `println(0x1F); println(017); println(0b101);`)
	require.NoError(t, err)
	assert.Equal(t, "31\n15\n5\n", out)
}

func TestLengthBuiltinOnArrayAndMap(t *testing.T) {
	out, err := run(t, `println(length([1,2,3])); println(length({"a":1,"b":2}));`)
	require.NoError(t, err)
	assert.Equal(t, "3\n2\n", out)
}

func TestCallingANonCallableIsRuntimeError(t *testing.T) {
	_, err := run(t, `var x = 1; x();`)
	assert.Error(t, err)
}

func TestNoOverloadAcceptsArgCountIsRuntimeError(t *testing.T) {
	_, err := run(t, `fun f(x) { return x; } f(1, 2);`)
	assert.Error(t, err)
}
