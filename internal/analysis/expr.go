package analysis

import (
	"github.com/stjude-rust-labs/wdlcore/internal/ast"
	"github.com/stjude-rust-labs/wdlcore/internal/binding"
	"github.com/stjude-rust-labs/wdlcore/internal/cst"
	"github.com/stjude-rust-labs/wdlcore/internal/diagnostics"
	"github.com/stjude-rust-labs/wdlcore/internal/span"
	"github.com/stjude-rust-labs/wdlcore/internal/stdlib"
	"github.com/stjude-rust-labs/wdlcore/internal/token"
	"github.com/stjude-rust-labs/wdlcore/internal/types"
)

var boolT = types.Primitive{Kind: types.Boolean}
var intT = types.Primitive{Kind: types.Int}
var floatT = types.Primitive{Kind: types.Float}
var stringT = types.Primitive{Kind: types.String}

// inferExpr dispatches on e.Kind() to type one expression node,
// recording the result in the result's type index (even on failure,
// where it records Union) so cascading consumers see an indeterminate
// type rather than re-deriving the same error.
func (a *analyzer) inferExpr(e ast.Expr, sc *scope) types.Type {
	if !e.Valid() {
		return types.Union
	}
	switch e.Kind() {
	case cst.LiteralExpr:
		return a.setType(e.N, a.inferLiteral(e))
	case cst.NameRefExpr:
		return a.setType(e.N, a.inferNameRef(e, sc))
	case cst.BinaryExpr:
		return a.setType(e.N, a.inferBinary(e, sc))
	case cst.UnaryExpr:
		return a.setType(e.N, a.inferUnary(e, sc))
	case cst.IfExpr:
		return a.setType(e.N, a.inferIf(e, sc))
	case cst.IndexExpr:
		return a.setType(e.N, a.inferIndex(e, sc))
	case cst.AccessExpr:
		return a.setType(e.N, a.inferAccess(e, sc))
	case cst.CallExpr:
		return a.setType(e.N, a.inferCall(e, sc))
	case cst.ArrayLiteralExpr:
		return a.setType(e.N, a.inferArrayLiteral(e, sc))
	case cst.MapLiteralExpr:
		return a.setType(e.N, a.inferMapLiteral(e, sc))
	case cst.PairLiteralExpr:
		l, r := e.PairParts()
		return a.setType(e.N, types.Pair{Left: a.inferExpr(l, sc), Right: a.inferExpr(r, sc)})
	case cst.StructLiteralExpr:
		return a.setType(e.N, a.inferStructLiteral(e, sc))
	case cst.ObjectLiteralExpr:
		for _, v := range e.StructFields() {
			a.inferExpr(v, sc)
		}
		return a.setType(e.N, types.Object)
	case cst.StringLiteralExpr:
		return a.setType(e.N, a.inferStringLiteral(e, sc))
	case cst.ParenExpr:
		return a.setType(e.N, a.inferExpr(e.Inner(), sc))
	default:
		return a.setType(e.N, types.Union)
	}
}

func (a *analyzer) inferLiteral(e ast.Expr) types.Type {
	tok, ok := e.LiteralToken()
	if !ok {
		return types.Union
	}
	switch tok.Kind {
	case token.IntLiteral:
		return intT
	case token.FloatLiteral:
		return floatT
	case token.BooleanLiteral:
		return boolT
	case token.KwNone:
		return types.None
	default:
		return types.Union
	}
}

func (a *analyzer) inferNameRef(e ast.Expr, sc *scope) types.Type {
	name := e.Name()
	if t, ok := sc.lookup(name); ok {
		return t
	}
	a.diags.Add(diagnostics.Newf("T010", e.N.Span(), "undefined name `%s`", name))
	return types.Union
}

func (a *analyzer) inferUnary(e ast.Expr, sc *scope) types.Type {
	operand := a.inferExpr(e.UnaryOperand(), sc)
	switch e.UnaryOp() {
	case token.Bang:
		if types.IsUnion(operand) {
			return boolT
		}
		if !operand.IsCoercibleTo(boolT) {
			a.diags.Add(diagnostics.Newf("T020", e.N.Span(), "operator `!` requires type `Boolean`, found type `%s`", operand.String()))
		}
		return boolT
	case token.Minus:
		if types.IsUnion(operand) {
			return types.Union
		}
		if kind, ok := isNumericPrimitive(operand); ok {
			return types.Primitive{Kind: kind}
		}
		a.diags.Add(diagnostics.Newf("T021", e.N.Span(), "unary `-` requires a numeric type, found type `%s`", operand.String()))
		return types.Union
	default:
		return types.Union
	}
}

func (a *analyzer) inferBinary(e ast.Expr, sc *scope) types.Type {
	lhs, rhs := e.BinaryOperands()
	l := a.inferExpr(lhs, sc)
	r := a.inferExpr(rhs, sc)
	op := e.BinaryOp()
	switch op {
	case token.AmpAmp, token.PipePipe:
		a.requireCoercible(l, boolT, lhs.N.Span(), "T030", "operator `"+op.String()+"`")
		a.requireCoercible(r, boolT, rhs.N.Span(), "T030", "operator `"+op.String()+"`")
		return boolT
	case token.EqualEqual, token.BangEqual:
		if !types.IsUnion(l) && !types.IsUnion(r) {
			if _, ok := types.CommonType(l, r); !ok {
				a.diags.Add(diagnostics.Newf("T031", e.N.Span(), "cannot compare type `%s` to type `%s`", l.String(), r.String()))
			}
		}
		return boolT
	case token.Less, token.LessEqual, token.Greater, token.GreaterEqual:
		if !comparable(l) || !comparable(r) {
			if !types.IsUnion(l) && !types.IsUnion(r) {
				a.diags.Add(diagnostics.Newf("T032", e.N.Span(), "operator `%s` requires numeric or `String` operands", op.String()))
			}
		}
		return boolT
	case token.Plus:
		return a.inferAdd(e, l, r)
	case token.Minus, token.Star, token.Percent, token.Slash:
		return a.inferArith(e, l, r, op)
	case token.StarStar:
		if types.IsUnion(l) || types.IsUnion(r) {
			return types.Union
		}
		if _, ok := isNumericPrimitive(l); !ok {
			a.diags.Add(diagnostics.Newf("T033", lhs.N.Span(), "operator `**` requires a numeric type, found type `%s`", l.String()))
		}
		if _, ok := isNumericPrimitive(r); !ok {
			a.diags.Add(diagnostics.Newf("T033", rhs.N.Span(), "operator `**` requires a numeric type, found type `%s`", r.String()))
		}
		return floatT
	default:
		return types.Union
	}
}

// inferAdd handles `+`, which WDL overloads for numeric addition and
// string concatenation (any String-coercible primitive).
func (a *analyzer) inferAdd(e ast.Expr, l, r types.Type) types.Type {
	if types.IsUnion(l) || types.IsUnion(r) {
		return types.Union
	}
	lk, lNum := isNumericPrimitive(l)
	rk, rNum := isNumericPrimitive(r)
	if lNum && rNum {
		return types.Primitive{Kind: commonNumericKind(lk, rk)}
	}
	if l.IsCoercibleTo(stringT) && r.IsCoercibleTo(stringT) {
		return stringT
	}
	a.diags.Add(diagnostics.Newf("T034", e.N.Span(), "operator `+` requires two numeric operands or two `String`-coercible operands, found type `%s` and type `%s`", l.String(), r.String()))
	return types.Union
}

func (a *analyzer) inferArith(e ast.Expr, l, r types.Type, op token.Kind) types.Type {
	if types.IsUnion(l) || types.IsUnion(r) {
		return types.Union
	}
	lk, lNum := isNumericPrimitive(l)
	rk, rNum := isNumericPrimitive(r)
	if lNum && rNum {
		return types.Primitive{Kind: commonNumericKind(lk, rk)}
	}
	a.diags.Add(diagnostics.Newf("T035", e.N.Span(), "operator `%s` requires two numeric operands, found type `%s` and type `%s`", op.String(), l.String(), r.String()))
	return types.Union
}

func (a *analyzer) inferIf(e ast.Expr, sc *scope) types.Type {
	cond, then, els := e.IfParts()
	condT := a.inferExpr(cond, sc)
	a.requireCoercible(condT, boolT, cond.N.Span(), "T040", "if condition")
	thenT := a.inferExpr(then, sc)
	elsT := a.inferExpr(els, sc)
	common, ok := types.CommonType(thenT, elsT)
	if !ok {
		a.diags.Add(diagnostics.Newf("T041", e.N.Span(), "branches of `if` have no common type: type `%s` and type `%s`", thenT.String(), elsT.String()))
		return types.Union
	}
	return common
}

func (a *analyzer) inferIndex(e ast.Expr, sc *scope) types.Type {
	target := a.inferExpr(e.IndexTarget(), sc)
	idxExpr := e.IndexValue()
	idx := a.inferExpr(idxExpr, sc)
	switch tv := target.(type) {
	case types.Array:
		a.requireCoercible(idx, intT, idxExpr.N.Span(), "T050", "array index")
		return tv.Element
	case types.Map:
		a.requireCoercible(idx, tv.Key, idxExpr.N.Span(), "T051", "map index")
		return tv.Value
	default:
		if !types.IsUnion(target) {
			a.diags.Add(diagnostics.Newf("T052", e.N.Span(), "type `%s` cannot be indexed", target.String()))
		}
		return types.Union
	}
}

func (a *analyzer) inferAccess(e ast.Expr, sc *scope) types.Type {
	target := a.inferExpr(e.AccessTarget(), sc)
	member := e.AccessMember()
	switch tv := target.(type) {
	case types.Struct:
		if ty, ok := tv.Def.Members.Get(member); ok {
			return ty
		}
		a.diags.Add(diagnostics.Newf("T060", e.N.Span(), "struct `%s` has no member `%s`", tv.Def.Name, member))
		return types.Union
	case *types.CallType:
		if out, ok := tv.Outputs.Get(member); ok {
			return out.Type
		}
		a.diags.Add(diagnostics.Newf("T061", e.N.Span(), "%s has no output `%s`", tv.String(), member))
		return types.Union
	default:
		if isObjectType(target) {
			return types.Union
		}
		if !types.IsUnion(target) {
			a.diags.Add(diagnostics.Newf("T062", e.N.Span(), "type `%s` has no member `%s`", target.String(), member))
		}
		return types.Union
	}
}

func isObjectType(t types.Type) bool {
	return t.Equal(types.Object) || t.Equal(types.OptionalObject)
}

func (a *analyzer) inferCall(e ast.Expr, sc *scope) types.Type {
	target := e.CallTarget()
	name := target.Name()
	args := e.CallArgs()
	argTypes := make([]types.Type, len(args))
	for i, arg := range args {
		argTypes[i] = a.inferExpr(arg, sc)
	}
	fn, ok := stdlib.Lookup(name)
	if !ok {
		a.diags.Add(diagnostics.Newf("T070", e.N.Span(), "call to undefined function `%s`", name))
		return types.Union
	}
	if a.version.Less(fn.MinVersion()) {
		a.diags.Add(diagnostics.Newf("V001", e.N.Span(), "function `%s` requires WDL version %s or later (document is %s)", name, fn.MinVersion(), a.version))
		return types.Union
	}
	r := binding.Resolve(fn, argTypes)
	switch r.Outcome {
	case binding.Equivalence, binding.Coercion:
		return r.Return
	case binding.TooFewArguments:
		a.diags.Add(diagnostics.Newf("T071", e.N.Span(), "call to `%s` requires at least %d argument(s), found %d", name, r.MinArity, len(args)))
	case binding.TooManyArguments:
		a.diags.Add(diagnostics.Newf("T072", e.N.Span(), "call to `%s` accepts at most %d argument(s), found %d", name, r.MaxArity, len(args)))
	case binding.Ambiguous:
		a.diags.Add(diagnostics.Newf("T073", e.N.Span(), "call to `%s` is ambiguous between `%s` and `%s`", name, r.FirstSig, r.SecondSig))
	case binding.ArgumentTypeMismatch:
		sp := e.N.Span()
		if r.Index < len(args) {
			sp = args[r.Index].N.Span()
		}
		a.diags.Add(diagnostics.Newf("T074", sp, "argument %d to `%s` expected %s", r.Index+1, name, r.Expected))
	}
	return types.Union
}

func (a *analyzer) inferArrayLiteral(e ast.Expr, sc *scope) types.Type {
	elems := e.Elements()
	if len(elems) == 0 {
		return types.Array{Element: types.Union}
	}
	common := a.inferExpr(elems[0], sc)
	ok := true
	for _, el := range elems[1:] {
		t := a.inferExpr(el, sc)
		next, merged := types.CommonType(common, t)
		if !merged {
			ok = false
			continue
		}
		common = next
	}
	if !ok {
		a.diags.Add(diagnostics.Newf("T080", e.N.Span(), "array elements have no common type"))
	}
	return types.Array{Element: common}
}

func (a *analyzer) inferMapLiteral(e ast.Expr, sc *scope) types.Type {
	entries := e.MapEntries()
	if len(entries) == 0 {
		return types.Map{Key: types.Union, Value: types.Union}
	}
	keyT := a.inferExpr(entries[0][0], sc)
	valT := a.inferExpr(entries[0][1], sc)
	for _, kv := range entries[1:] {
		k := a.inferExpr(kv[0], sc)
		v := a.inferExpr(kv[1], sc)
		if nk, ok := types.CommonType(keyT, k); ok {
			keyT = nk
		} else {
			a.diags.Add(diagnostics.Newf("T081", e.N.Span(), "map keys have no common type"))
		}
		if nv, ok := types.CommonType(valT, v); ok {
			valT = nv
		} else {
			a.diags.Add(diagnostics.Newf("T082", e.N.Span(), "map values have no common type"))
		}
	}
	return types.Map{Key: keyT, Value: valT}
}

func (a *analyzer) inferStructLiteral(e ast.Expr, sc *scope) types.Type {
	fields := e.StructFields()
	name, named := e.StructName()
	if !named {
		for _, v := range fields {
			a.inferExpr(v, sc)
		}
		return types.Object
	}
	st, ok := a.lookupStruct(name)
	if !ok {
		for _, v := range fields {
			a.inferExpr(v, sc)
		}
		a.diags.Add(diagnostics.Newf("T090", e.N.Span(), "unknown struct `%s`", name))
		return types.Union
	}
	st.Def.Members.Each(func(member string, declared types.Type) {
		valExpr, given := fields[member]
		if !given {
			return
		}
		vt := a.inferExpr(valExpr, sc)
		a.requireCoercible(vt, declared, valExpr.N.Span(), "T091", "struct field `"+member+"`")
	})
	return st
}

func (a *analyzer) inferStringLiteral(e ast.Expr, sc *scope) types.Type {
	for _, part := range e.StringParts() {
		n, ok := part.(*cst.Node)
		if !ok || n.Kind != cst.PlaceholderExpr {
			continue
		}
		a.analyzePlaceholder(ast.Placeholder{N: n}, sc)
	}
	return stringT
}

func (a *analyzer) analyzePlaceholder(p ast.Placeholder, sc *scope) {
	t := a.inferExpr(p.Expr(), sc)
	if _, ok := p.Option("sep"); ok {
		if _, isArr := t.(types.Array); !isArr && !types.IsUnion(t) {
			a.diags.Add(diagnostics.Newf("T100", p.N.Span(), "`sep` placeholder option requires an Array, found type `%s`", t.String()))
		}
	}
}

// requireCoercible emits a mismatch diagnostic at sp unless t is Union
// or coercible to target.
func (a *analyzer) requireCoercible(t, target types.Type, sp span.Span, code, what string) {
	if types.IsUnion(t) {
		return
	}
	if !t.IsCoercibleTo(target) {
		a.diags.Add(diagnostics.Newf(code, sp, "%s expects type `%s`, found type `%s`", what, target.String(), t.String()))
	}
}

func isNumericPrimitive(t types.Type) (types.PrimitiveKind, bool) {
	p, ok := t.(types.Primitive)
	if !ok {
		return 0, false
	}
	if p.Kind == types.Int || p.Kind == types.Float {
		return p.Kind, true
	}
	return 0, false
}

func commonNumericKind(a, b types.PrimitiveKind) types.PrimitiveKind {
	if a == types.Float || b == types.Float {
		return types.Float
	}
	return types.Int
}

func comparable(t types.Type) bool {
	if types.IsUnion(t) {
		return true
	}
	p, ok := t.(types.Primitive)
	if !ok {
		return false
	}
	return p.Kind == types.Int || p.Kind == types.Float || p.Kind == types.String
}
