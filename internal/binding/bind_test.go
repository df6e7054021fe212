package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stjude-rust-labs/wdlcore/internal/stdlib"
	"github.com/stjude-rust-labs/wdlcore/internal/types"
)

func intT() types.Type    { return types.Primitive{Kind: types.Int} }
func floatT() types.Type  { return types.Primitive{Kind: types.Float} }
func stringT() types.Type { return types.Primitive{Kind: types.String} }

func TestBindFloorCoercion(t *testing.T) {
	fn, ok := stdlib.Lookup("floor")
	require.True(t, ok)
	// floor wants a Float; an Int argument coerces.
	r := Bind(fn.Signatures()[0], []types.Type{intT()})
	assert.Equal(t, Coercion, r.Outcome)
	assert.Equal(t, "Int", r.Return.String())
}

func TestBindFloorEquivalence(t *testing.T) {
	fn, ok := stdlib.Lookup("floor")
	require.True(t, ok)
	r := Bind(fn.Signatures()[0], []types.Type{floatT()})
	assert.Equal(t, Equivalence, r.Outcome)
}

func TestBindArityErrors(t *testing.T) {
	fn, ok := stdlib.Lookup("sub")
	require.True(t, ok)
	sig := fn.Signatures()[0]
	few := Bind(sig, []types.Type{stringT()})
	assert.Equal(t, TooFewArguments, few.Outcome)
	assert.Equal(t, 3, few.MinArity)
	many := Bind(sig, []types.Type{stringT(), stringT(), stringT(), stringT()})
	assert.Equal(t, TooManyArguments, many.Outcome)
	assert.Equal(t, 3, many.MaxArity)
}

// floor takes exactly one argument; zero and two violate the bounds,
// and an indeterminate argument binds successfully.
func TestBindFloorArityAndUnion(t *testing.T) {
	fn, ok := stdlib.Lookup("floor")
	require.True(t, ok)
	sig := fn.Signatures()[0]

	few := Bind(sig, nil)
	assert.Equal(t, TooFewArguments, few.Outcome)
	assert.Equal(t, 1, few.MinArity)

	many := Bind(sig, []types.Type{stringT(), types.Primitive{Kind: types.Boolean}})
	assert.Equal(t, TooManyArguments, many.Outcome)
	assert.Equal(t, 1, many.MaxArity)

	bad := Bind(sig, []types.Type{stringT()})
	assert.Equal(t, ArgumentTypeMismatch, bad.Outcome)
	assert.Equal(t, 0, bad.Index)
	assert.Equal(t, "`Float`", bad.Expected)

	indeterminate := Bind(sig, []types.Type{types.Union})
	assert.Equal(t, Coercion, indeterminate.Outcome)
	assert.Equal(t, "Int", indeterminate.Return.String())
}

// max(Int, Float) picks the Int/Float overload by Equivalence, ahead of
// the Float/Float overload that Int reaches only by coercion.
func TestResolveMaxEquivalence(t *testing.T) {
	fn, ok := stdlib.Lookup("max")
	require.True(t, ok)
	r := Resolve(fn, []types.Type{intT(), floatT()})
	require.Equal(t, Equivalence, r.Outcome)
	assert.Equal(t, "Float", r.Return.String())
}

// max(String, Int) binds no overload; the aggregated mismatch points at
// index 0 with "Int or Float".
func TestResolveMaxMismatch(t *testing.T) {
	fn, ok := stdlib.Lookup("max")
	require.True(t, ok)
	r := Resolve(fn, []types.Type{stringT(), intT()})
	require.Equal(t, ArgumentTypeMismatch, r.Outcome)
	assert.Equal(t, 0, r.Index)
	assert.Equal(t, "`Int` or `Float`", r.Expected)
}

// select_first(Array[String?]+, Int) fails on the second argument: the
// optional overload wants the unqualified element type at that position.
func TestResolveSelectFirstMismatch(t *testing.T) {
	fn, ok := stdlib.Lookup("select_first")
	require.True(t, ok)
	arr := types.Array{Element: types.Primitive{Kind: types.String, Opt: true}, NonEmpty: true}
	r := Resolve(fn, []types.Type{arr, intT()})
	require.Equal(t, ArgumentTypeMismatch, r.Outcome)
	assert.Equal(t, 1, r.Index)
	assert.Equal(t, "`String`", r.Expected)
}

// select_all strips the optional qualifier off the array's element type.
func TestResolveSelectAll(t *testing.T) {
	fn, ok := stdlib.Lookup("select_all")
	require.True(t, ok)
	arr := types.Array{Element: types.Primitive{Kind: types.String, Opt: true}}
	r := Resolve(fn, []types.Type{arr})
	require.Equal(t, Equivalence, r.Outcome)
	assert.Equal(t, "Array[String]", r.Return.String())
}

// values(Map[String, String]) infers both type parameters and realizes
// Array[String].
func TestResolveValues(t *testing.T) {
	fn, ok := stdlib.Lookup("values")
	require.True(t, ok)
	m := types.Map{Key: stringT(), Value: stringT()}
	r := Resolve(fn, []types.Type{m})
	require.Equal(t, Equivalence, r.Outcome)
	assert.Equal(t, "Array[String]", r.Return.String())
}

// values rejects a Map whose key type is optional: K is constrained to
// a required primitive.
func TestResolveValuesConstraintViolation(t *testing.T) {
	fn, ok := stdlib.Lookup("values")
	require.True(t, ok)
	m := types.Map{Key: types.Primitive{Kind: types.String, Opt: true}, Value: types.Primitive{Kind: types.Boolean}}
	r := Resolve(fn, []types.Type{m})
	require.Equal(t, ArgumentTypeMismatch, r.Outcome)
	assert.Equal(t, 0, r.Index)
	assert.Equal(t, "`Map[K, Boolean]` where `K`: any required primitive type", r.Expected)
}
