package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stjude-rust-labs/wdlcore/internal/gentype"
	"github.com/stjude-rust-labs/wdlcore/internal/types"
)

func TestFloorSignature(t *testing.T) {
	fn, ok := Lookup("floor")
	require.True(t, ok)
	require.False(t, fn.IsPolymorphic())
	sig := fn.Signatures()[0]
	assert.Equal(t, "floor(Float) -> Int", sig.Display("floor"))
}

// The canonical display forms, where-clause included.
func TestSignatureDisplayForms(t *testing.T) {
	sf, ok := Lookup("select_first")
	require.True(t, ok)
	sigs := sf.Signatures()
	require.Len(t, sigs, 2)
	assert.Equal(t, "select_first(Array[X]+) -> X where `X`: any optional type", sigs[0].Display("select_first"))
	assert.Equal(t, "select_first(Array[X], <X>) -> X where `X`: any optional type", sigs[1].Display("select_first"))

	size, ok := Lookup("size")
	require.True(t, ok)
	assert.Equal(t,
		"size(X, <String>) -> Float where `X`: any compound type that recursively contains a `File` or `Directory`",
		size.Signatures()[0].Display("size"))
}

// values with a Map[String?, Boolean] argument fails to bind because
// String? does not satisfy the RequiredPrimitive constraint on K, and the
// diagnostic must render "`Map[K, Boolean]` where `K`: any required
// primitive type".
func TestValuesDisplayMatchesConstraintViolationMessage(t *testing.T) {
	fn, ok := Lookup("values")
	require.True(t, ok)
	sig := fn.Signatures()[0]

	env := sig.Environment()
	mapParam := sig.Params[0]
	arg := types.Map{Key: types.Primitive{Kind: types.String, Opt: true}, Value: boolean}
	gentype.Infer(env, mapParam, arg)

	_, kInferred := env.Inferred("K")
	assert.False(t, kInferred, "K must remain uninferred: String? violates RequiredPrimitive")

	uninferred := env.UninferredReferenced()
	require.Len(t, uninferred, 1)
	assert.Equal(t, "`K`: any required primitive type", gentype.ParamDisplay(uninferred[0]))
	assert.Equal(t, "Map[K, Boolean]", gentype.Partial(env, mapParam).String())
}

// select_all strips the optional qualifier from the array element type.
func TestSelectAllStripsOptionality(t *testing.T) {
	fn, ok := Lookup("select_all")
	require.True(t, ok)
	sig := fn.Signatures()[0]

	env := sig.Environment()
	gentype.Infer(env, sig.Params[0], types.Array{Element: types.Primitive{Kind: types.String, Opt: true}})

	ret, ok := gentype.Realize(env, sig.Return)
	require.True(t, ok)
	assert.Equal(t, "Array[String]", ret.String())
}

// max(Int, Float) resolves to the Float overload; max(String, Int) has no
// matching signature, and the union of expected types at index 0 across
// every signature is "Int or Float".
func TestMaxOverloadResolutionAndMismatch(t *testing.T) {
	fn, ok := Lookup("max")
	require.True(t, ok)
	require.True(t, fn.IsPolymorphic())

	var matched *Signature
	for _, sig := range fn.Signatures() {
		if sig.Params[0].IsGeneric() {
			continue
		}
		if sig.Params[0].String() == "Int" && sig.Params[1].String() == "Float" {
			s := sig
			matched = &s
		}
	}
	require.NotNil(t, matched)
	assert.Equal(t, "Float", matched.Return.String())

	var expected []string
	for _, sig := range fn.Signatures() {
		expected = append(expected, sig.Params[0].String())
	}
	assert.ElementsMatch(t, []string{"Int", "Int", "Float", "Float"}, expected)
	assert.Equal(t, "Int or Float", types.JoinAlternatives([]string{"Int", "Float"}))
}

// select_first's second signature binds Array[String?]+ then Int fails
// against the optional parameter position, which realizes X (already
// inferred String? from the array argument) stripped of its `?`.
func TestSelectFirstSecondSignatureOptionalParamRendersUnqualified(t *testing.T) {
	fn, ok := Lookup("select_first")
	require.True(t, ok)
	sigs := fn.Signatures()
	require.Len(t, sigs, 2)

	second := sigs[1]
	env := second.Environment()
	gentype.Infer(env, second.Params[0], types.Array{Element: types.Primitive{Kind: types.String, Opt: true}})

	realized, ok := gentype.Realize(env, second.Params[1])
	require.True(t, ok)
	assert.Equal(t, "String", realized.String())
	assert.False(t, integer.IsCoercibleTo(realized), "Int must not be coercible to the realized String position")
}
