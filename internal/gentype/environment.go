package gentype

import (
	"github.com/stjude-rust-labs/wdlcore/internal/config"
	"github.com/stjude-rust-labs/wdlcore/internal/types"
)

// TypeParameter is a signature-declared type parameter with an optional
// constraint.
type TypeParameter struct {
	Name       string
	Constraint Constraint // nil if unconstrained
}

// Environment is the bounded type-parameter binding state for a single
// binding attempt: a fixed-size array of inferred types (one
// slot per declared parameter, up to config.MaxTypeParameters) plus a
// bitset of which parameters were *referenced* during the most recent
// operation. The referenced bitset exists purely so error messages can
// mention only the parameters actually consulted, not every parameter
// the signature declares.
type Environment struct {
	params     []TypeParameter
	index      map[string]int
	inferred   [config.MaxTypeParameters]types.Type
	referenced uint8 // bit i set iff params[i] was referenced
}

// NewEnvironment builds an Environment for the given ordered parameter
// list. Panics if more than config.MaxTypeParameters are given, since
// that indicates a malformed signature caught at catalog-construction
// time, not user input.
func NewEnvironment(params []TypeParameter) *Environment {
	if len(params) > config.MaxTypeParameters {
		panic("gentype: too many type parameters for Environment")
	}
	env := &Environment{params: params, index: make(map[string]int, len(params))}
	for i, p := range params {
		env.index[p.Name] = i
	}
	return env
}

// Get returns the parameter's metadata and its currently inferred type
// (nil if un-inferred), marking the parameter referenced.
func (e *Environment) Get(name string) (TypeParameter, types.Type, bool) {
	i, ok := e.index[name]
	if !ok {
		return TypeParameter{}, nil, false
	}
	e.referenced |= 1 << uint(i)
	return e.params[i], e.inferred[i], true
}

// SetInferred implements first-write-wins: a parameter can
// be inferred at most once per binding attempt; later attempts are
// silently ignored. Returns true iff this call actually set the slot.
func (e *Environment) SetInferred(name string, t types.Type) bool {
	i, ok := e.index[name]
	if !ok {
		return false
	}
	if e.inferred[i] != nil {
		return false
	}
	e.inferred[i] = t
	return true
}

// Inferred returns the currently inferred type for name, if any, without
// marking it referenced (used by Realize, which has its own referenced
// bookkeeping need via Get).
func (e *Environment) Inferred(name string) (types.Type, bool) {
	i, ok := e.index[name]
	if !ok {
		return nil, false
	}
	return e.inferred[i], e.inferred[i] != nil
}

// Reset clears the referenced bitset (not the inferred bindings) between
// operations on the same Environment.
func (e *Environment) Reset() {
	e.referenced = 0
}

// Referenced reports whether the parameter was marked referenced since
// the last Reset.
func (e *Environment) Referenced(name string) bool {
	i, ok := e.index[name]
	if !ok {
		return false
	}
	return e.referenced&(1<<uint(i)) != 0
}

// Params returns the declared parameter list in order.
func (e *Environment) Params() []TypeParameter { return e.params }

// UninferredReferenced returns, in declaration order, every referenced
// parameter that has no inferred type yet. Used to build the
// `where \`P\`: <description>` clause in ArgumentTypeMismatch messages.
func (e *Environment) UninferredReferenced() []TypeParameter {
	var out []TypeParameter
	for i, p := range e.params {
		if e.referenced&(1<<uint(i)) != 0 && e.inferred[i] == nil {
			out = append(out, p)
		}
	}
	return out
}
