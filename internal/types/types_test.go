package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveDisplay(t *testing.T) {
	assert.Equal(t, "Boolean", Primitive{Kind: Boolean}.String())
	assert.Equal(t, "Int?", Primitive{Kind: Int, Opt: true}.String())
}

// Every type coerces to itself, except a Call type to itself.
func TestCoercibilityReflexivity(t *testing.T) {
	assert.True(t, Primitive{Kind: Int}.IsCoercibleTo(Primitive{Kind: Int}))
	assert.True(t, Array{Element: Primitive{Kind: String}}.IsCoercibleTo(Array{Element: Primitive{Kind: String}}))

	call := NewCallType(TaskCall, "", "t", map[string]struct{}{}, NewOrderedMap[CallInput](), NewOrderedMap[CallOutput]())
	assert.False(t, call.IsCoercibleTo(call))
}

// A required type coerces to its optional counterpart but not the reverse.
func TestRequiredOptionalAsymmetry(t *testing.T) {
	req := Primitive{Kind: Int}
	opt := Primitive{Kind: Int, Opt: true}
	assert.True(t, req.IsCoercibleTo(opt))
	assert.False(t, opt.IsCoercibleTo(req))
}

// Union coerces to and from every type.
func TestUnionUniversality(t *testing.T) {
	assert.True(t, Union.IsCoercibleTo(Primitive{Kind: Int}))
	assert.True(t, Primitive{Kind: Int}.IsCoercibleTo(Union))
}

// None coerces only into optional types.
func TestNoneOptionality(t *testing.T) {
	assert.True(t, None.IsCoercibleTo(Primitive{Kind: Int, Opt: true}))
	assert.False(t, None.IsCoercibleTo(Primitive{Kind: Int}))
}

// Common type is reflexive and treats Union/None as identity/optional-wrapping elements.
func TestCommonTypeInvolution(t *testing.T) {
	i := Primitive{Kind: Int}
	ty, ok := CommonType(i, i)
	require.True(t, ok)
	assert.True(t, ty.Equal(i))

	ty, ok = CommonType(Union, i)
	require.True(t, ok)
	assert.True(t, ty.Equal(i))

	ty, ok = CommonType(None, i)
	require.True(t, ok)
	assert.True(t, ty.Equal(i.Optional()))
}

func TestIntFloatCommonType(t *testing.T) {
	ty, ok := CommonType(Primitive{Kind: Int}, Primitive{Kind: Float})
	require.True(t, ok)
	assert.Equal(t, "Float", ty.String())
}

func TestStructMapCoercion(t *testing.T) {
	members := NewOrderedMap[Type]()
	members.Set("foo", Primitive{Kind: Int})
	members.Set("bar", Primitive{Kind: Int})
	members.Set("baz", Primitive{Kind: Int})
	st := NewStruct("S", members)

	m := Map{Key: Primitive{Kind: String}, Value: Primitive{Kind: Int}}
	assert.True(t, m.IsCoercibleTo(st))

	mBad := Map{Key: Primitive{Kind: Int}, Value: Primitive{Kind: Int}}
	assert.False(t, mBad.IsCoercibleTo(st))
}

func TestCallTypeIdentity(t *testing.T) {
	outs := NewOrderedMap[CallOutput]()
	outs.Set("o", CallOutput{Type: Primitive{Kind: String}})
	c1 := NewCallType(TaskCall, "", "t", map[string]struct{}{}, NewOrderedMap[CallInput](), outs)
	c2 := NewCallType(TaskCall, "", "t", map[string]struct{}{}, NewOrderedMap[CallInput](), outs)
	assert.False(t, c1.Equal(c2))
	assert.True(t, c1.Equal(c1))
}

func TestPromote(t *testing.T) {
	i := Primitive{Kind: Int}
	arr := Promote(i, Scatter)
	assert.Equal(t, "Array[Int]", arr.String())

	opt := Promote(i, Conditional)
	assert.Equal(t, "Int?", opt.String())
}

func TestScatterThenConditionalPromotion(t *testing.T) {
	// Declaring a binding inside a scatter wraps it in Array on scope exit;
	// inside a conditional it becomes optional.
	s := Primitive{Kind: String}
	scattered := Promote(s, Scatter)
	assert.Equal(t, "Array[String]", scattered.String())

	conditioned := Promote(s, Conditional)
	assert.Equal(t, "String?", conditioned.String())
}

func TestDisplayTypesJoin(t *testing.T) {
	assert.Equal(t, "type `Int`", DisplayTypes([]Type{Primitive{Kind: Int}}))
	assert.Equal(t, "type `Int` or type `Float`", DisplayTypes([]Type{Primitive{Kind: Int}, Primitive{Kind: Float}}))
	assert.Equal(t, "type `Int`, type `Float`, or type `String`", DisplayTypes([]Type{Primitive{Kind: Int}, Primitive{Kind: Float}, Primitive{Kind: String}}))
}
