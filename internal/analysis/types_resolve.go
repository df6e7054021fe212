package analysis

import (
	"github.com/stjude-rust-labs/wdlcore/internal/ast"
	"github.com/stjude-rust-labs/wdlcore/internal/cst"
	"github.com/stjude-rust-labs/wdlcore/internal/diagnostics"
	"github.com/stjude-rust-labs/wdlcore/internal/types"
)

// resolveType converts a TypeExpr into a concrete types.Type, resolving
// struct-name references against the document's (and its imports')
// struct table. Unresolvable names and malformed type shapes degrade to
// Union rather than aborting the rest of analysis ("errors are
// collected, not thrown").
func (a *analyzer) resolveType(t ast.TypeExpr) types.Type {
	if !t.Valid() {
		return types.Union
	}
	var base types.Type
	switch t.Kind() {
	case cst.PrimitiveType:
		base = types.Primitive{Kind: primitiveKindOf(t.Name())}
	case cst.TypeRef:
		base = a.resolveTypeRef(t)
	case cst.ArrayType:
		params := t.Params()
		elem := types.Type(types.Union)
		if len(params) > 0 {
			elem = a.resolveType(params[0])
		}
		base = types.Array{Element: elem, NonEmpty: t.NonEmpty()}
	case cst.MapType:
		params := t.Params()
		key, val := types.Type(types.Union), types.Type(types.Union)
		if len(params) > 0 {
			key = a.resolveType(params[0])
		}
		if len(params) > 1 {
			val = a.resolveType(params[1])
		}
		base = types.Map{Key: key, Value: val}
	case cst.PairType:
		params := t.Params()
		left, right := types.Type(types.Union), types.Type(types.Union)
		if len(params) > 0 {
			left = a.resolveType(params[0])
		}
		if len(params) > 1 {
			right = a.resolveType(params[1])
		}
		base = types.Pair{Left: left, Right: right}
	default:
		base = types.Union
	}
	if t.Optional() {
		return base.Optional()
	}
	return base
}

func (a *analyzer) resolveTypeRef(t ast.TypeExpr) types.Type {
	name := t.Name()
	if name == "object" {
		return types.Object
	}
	if st, ok := a.lookupStruct(name); ok {
		return st
	}
	a.diags.Add(diagnostics.Newf("T001", t.N.Span(), "unknown type `%s`", name))
	return types.Union
}

func primitiveKindOf(name string) types.PrimitiveKind {
	switch name {
	case "Boolean":
		return types.Boolean
	case "Int":
		return types.Int
	case "Float":
		return types.Float
	case "String":
		return types.String
	case "File":
		return types.File
	case "Directory":
		return types.Directory
	default:
		return types.String
	}
}
