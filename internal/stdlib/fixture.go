package stdlib

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stjude-rust-labs/wdlcore/internal/config"
	"github.com/stjude-rust-labs/wdlcore/internal/gentype"
)

// FixtureSignature is the YAML shape of one catalog-override entry: a
// monomorphic signature assembled from bare type names (a primitive
// name, or "$Name" for a type-parameter reference), run through the
// same SigBuilder construction-time validation the static
// catalog above uses. This exists so fixture-driven tests can exercise
// that validation against inputs that never live in the Go source,
// without ever touching the static catalog itself.
type FixtureSignature struct {
	Name       string   `yaml:"name"`
	MinVersion string   `yaml:"min_version"`
	TypeParams []string `yaml:"type_params"`
	Params     []string `yaml:"params"`
	Optional   []string `yaml:"optional"`
	Return     string   `yaml:"return"`
}

// FixtureCatalog is the top-level YAML document shape accepted by
// LoadOverrideFile/LoadOverrideBytes.
type FixtureCatalog struct {
	Functions []FixtureSignature `yaml:"functions"`
}

// LoadOverrideFile parses path as a FixtureCatalog and builds one
// Function per entry. It is a testing convenience only: Lookup never
// consults it, and it never mutates the static catalog.
func LoadOverrideFile(path string) (map[string]Function, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadOverrideBytes(data)
}

// LoadOverrideBytes is LoadOverrideFile without the filesystem read, for
// tests that keep their fixture inline.
func LoadOverrideBytes(data []byte) (map[string]Function, error) {
	var fc FixtureCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("stdlib: parsing override catalog: %w", err)
	}
	out := make(map[string]Function, len(fc.Functions))
	for _, f := range fc.Functions {
		fn, err := buildFixtureFunction(f)
		if err != nil {
			return nil, fmt.Errorf("stdlib: function %q: %w", f.Name, err)
		}
		out[f.Name] = fn
	}
	return out, nil
}

// buildFixtureFunction assembles and validates one override entry.
// SigBuilder.Build panics on a catalog-validation violation, by design: those panics
// document a programmer error in the static catalog above, where every
// entry is trusted source. A YAML fixture is untrusted input, so the
// panic is recovered here and turned into the same kind of error a
// malformed file already produces.
func buildFixtureFunction(f FixtureSignature) (fn Function, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	min, ok := parseFixtureVersion(f.MinVersion)
	if !ok {
		return nil, fmt.Errorf("invalid min_version %q", f.MinVersion)
	}
	b := NewSig()
	for _, name := range f.TypeParams {
		b.TypeParam(name, nil)
	}
	required, err := fixtureTypes(f.Params)
	if err != nil {
		return nil, err
	}
	b.Params(required...)
	if len(f.Optional) > 0 {
		optional, err := fixtureTypes(f.Optional)
		if err != nil {
			return nil, err
		}
		b.Optional(optional...)
	}
	ret, err := fixtureType(f.Return)
	if err != nil {
		return nil, err
	}
	b.Returns(ret)
	return NewMonomorphic(min, b.Build()), nil
}

func fixtureTypes(names []string) ([]gentype.GFType, error) {
	out := make([]gentype.GFType, 0, len(names))
	for _, n := range names {
		t, err := fixtureType(n)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// fixtureType resolves one bare type name: "$X" is a generic type-
// parameter reference, anything else must name one of WDL's six
// primitive types.
func fixtureType(name string) (gentype.GFType, error) {
	if rest, ok := strings.CutPrefix(name, "$"); ok {
		return G(gentype.Parameter{Name: rest}), nil
	}
	switch name {
	case "Boolean":
		return C(boolean), nil
	case "Int":
		return C(integer), nil
	case "Float":
		return C(float), nil
	case "String":
		return C(str), nil
	case "File":
		return C(file), nil
	case "Directory":
		return C(directory), nil
	default:
		return nil, fmt.Errorf("unknown type %q", name)
	}
}

func parseFixtureVersion(s string) (config.Version, bool) {
	if s == "" {
		return config.V1_0, true
	}
	major, minor := s, "0"
	if i := strings.IndexByte(s, '.'); i >= 0 {
		major, minor = s[:i], s[i+1:]
	}
	mj, err := strconv.Atoi(major)
	if err != nil {
		return config.Version{}, false
	}
	mn, err := strconv.Atoi(minor)
	if err != nil {
		return config.Version{}, false
	}
	return config.Version{Major: mj, Minor: mn}, true
}
