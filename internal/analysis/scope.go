package analysis

import "github.com/stjude-rust-labs/wdlcore/internal/types"

// scope is one lexical binding environment: document, task, workflow,
// scatter, or conditional. Lookup walks up through parent.
// owned tracks which names were introduced by a statement directly in
// this scope (as opposed to a loop variable bound by bindLocal), since
// only those are subject to scope-exit promotion.
type scope struct {
	parent   *scope
	bindings map[string]types.Type
	owned    []string
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, bindings: map[string]types.Type{}}
}

// lookup searches this scope and its ancestors, innermost first.
func (s *scope) lookup(name string) (types.Type, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if t, ok := cur.bindings[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// bindLocal introduces a name that is visible in this scope but never
// promoted to the parent on exit (the scatter loop variable).
func (s *scope) bindLocal(name string, t types.Type) {
	s.bindings[name] = t
}

// bind introduces a statement-level binding (a declaration or a call's
// effective name) that scope-exit promotion re-exposes to the parent.
func (s *scope) bind(name string, t types.Type) {
	if _, already := s.bindings[name]; !already {
		s.owned = append(s.owned, name)
	}
	s.bindings[name] = t
}

// promoteInto applies kind-promotion to every binding this scope
// itself introduced and installs the promoted binding into parent. Call
// types promote only their outputs, never the call type itself.
func (s *scope) promoteInto(parent *scope, kind types.PromotionKind) {
	for _, name := range s.owned {
		parent.bind(name, promoteBinding(s.bindings[name], kind))
	}
}

func promoteBinding(t types.Type, kind types.PromotionKind) types.Type {
	if c, ok := t.(*types.CallType); ok {
		return c.Promote(kind)
	}
	return types.Promote(t, kind)
}
