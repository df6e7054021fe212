package gentype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stjude-rust-labs/wdlcore/internal/types"
)

func TestSelectFirstUnqualifiedParameter(t *testing.T) {
	env := NewEnvironment([]TypeParameter{{Name: "X", Constraint: Optional}})
	g := G(GArray{Element: G(UnqualifiedParameter{Name: "X"})})
	arg := types.Array{Element: types.Primitive{Kind: types.String, Opt: true}}
	Infer(env, g, arg)

	ret, ok := Realize(env, G(UnqualifiedParameter{Name: "X"}))
	require.True(t, ok)
	assert.Equal(t, "String", ret.String())
}

func TestSelectAllReturnsArray(t *testing.T) {
	env := NewEnvironment([]TypeParameter{{Name: "X", Constraint: Optional}})
	param := G(GArray{Element: G(UnqualifiedParameter{Name: "X"})})
	arg := types.Array{Element: types.Primitive{Kind: types.String, Opt: true}}
	Infer(env, param, arg)

	ret, ok := Realize(env, G(GArray{Element: G(UnqualifiedParameter{Name: "X"})}))
	require.True(t, ok)
	assert.Equal(t, "Array[String]", ret.String())
}

func TestFirstWriteWins(t *testing.T) {
	env := NewEnvironment([]TypeParameter{{Name: "X"}})
	ok1 := env.SetInferred("X", types.Primitive{Kind: types.Int})
	ok2 := env.SetInferred("X", types.Primitive{Kind: types.String})
	assert.True(t, ok1)
	assert.False(t, ok2)
	v, _ := env.Inferred("X")
	assert.Equal(t, "Int", v.String())
}

func TestValuesConstraintViolationLeavesUninferred(t *testing.T) {
	env := NewEnvironment([]TypeParameter{{Name: "K", Constraint: RequiredPrimitive}, {Name: "V"}})
	Infer(env, G(Parameter{"K"}), types.Primitive{Kind: types.String, Opt: true})
	_, ok := env.Inferred("K")
	assert.False(t, ok)
}
