package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A well-formed override catalog builds one Function per entry, each
// displaying exactly as its fixture describes, and never touches the
// static catalog.
func TestLoadOverrideFileValid(t *testing.T) {
	fns, err := LoadOverrideFile("testdata/valid_override.yaml")
	require.NoError(t, err)
	require.Len(t, fns, 3)

	double, ok := fns["double"]
	require.True(t, ok)
	assert.Equal(t, "double(Float) -> Float", double.Signatures()[0].Display("double"))

	clamp, ok := fns["clamp"]
	require.True(t, ok)
	assert.Equal(t, "clamp(Float, Float, <Float>) -> Float", clamp.Signatures()[0].Display("clamp"))

	identity, ok := fns["identity"]
	require.True(t, ok)
	assert.True(t, identity.Signatures()[0].IsGeneric())

	_, found := Lookup("double")
	assert.False(t, found, "an override must never leak into the static catalog")
}

// The rule that every parameter/return name reference resolves to a
// declared type parameter, violated here by referencing an undeclared
// type parameter in the return position, is caught and reported as an
// error rather than panicking the loader.
func TestLoadOverrideFileUndeclaredTypeParameter(t *testing.T) {
	_, err := LoadOverrideFile("testdata/invalid_undeclared_param.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad_generic")
}

// A type name that isn't a WDL primitive and isn't a "$"-prefixed
// type-parameter reference is rejected before it ever reaches
// SigBuilder.
func TestLoadOverrideFileUnknownTypeName(t *testing.T) {
	_, err := LoadOverrideFile("testdata/invalid_unknown_type.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Imaginary")
}

func TestLoadOverrideBytesRejectsMalformedYAML(t *testing.T) {
	_, err := LoadOverrideBytes([]byte("functions: [this is not a mapping"))
	assert.Error(t, err)
}
