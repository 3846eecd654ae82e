package checker

import (
	"math"
	"strconv"
	"strings"

	"github.com/typec-go/tcheck/internal/ast"
	"github.com/typec-go/tcheck/internal/builtins"
	"github.com/typec-go/tcheck/internal/diag"
	"github.com/typec-go/tcheck/internal/pattern"
	"github.com/typec-go/tcheck/internal/symbols"
	"github.com/typec-go/tcheck/internal/types"
)

func builtinStringType() types.Type { return builtins.String }

// InferExpr is the bidirectional entry point (spec.md §4.3): hint flows
// down from the parent (may be nil), the concrete type is computed
// bottom-up, the two are reconciled through types.Match, and both are
// recorded on the node before returning the inferred type. A node that
// already carries an inferred type returns it unchanged.
func (c *Checker) InferExpr(ctx *symbols.Context, hint types.Type, e ast.Expr) types.Type {
	base := e.Base()
	if base.InferredType != nil {
		return base.InferredType
	}
	base.HintType = hint

	inferred := c.infer(ctx, hint, e)
	base.InferredType = inferred

	if hint != nil && inferred != nil {
		if r := types.Match(hint, inferred, false); !r.Success {
			c.Reporter.Report(diag.New(diag.TypeMismatch, "check", locOf(e), "%s", r.Message))
		}
	}
	return inferred
}

func (c *Checker) infer(ctx *symbols.Context, hint types.Type, e ast.Expr) types.Type {
	switch ex := e.(type) {
	case *ast.Literal:
		return c.inferLiteral(hint, ex)
	case *ast.Element:
		return c.inferElement(ctx, ex)
	case *ast.Member:
		return c.inferMember(ctx, ex)
	case *ast.NullableMember:
		return c.inferNullableMember(ctx, ex)
	case *ast.Index:
		return c.inferIndex(ctx, ex)
	case *ast.IndexSet:
		return c.inferIndexSet(ctx, ex)
	case *ast.Binary:
		return c.inferBinary(ctx, ex)
	case *ast.Unary:
		return c.inferUnary(ctx, ex)
	case *ast.Cast:
		return c.inferCast(ctx, ex)
	case *ast.InstanceCheck:
		c.InferExpr(ctx, nil, ex.Target)
		ex.Type = c.Resolve(ex.Type, ex)
		ex.IsConstant = false
		return types.Bool
	case *ast.New:
		return c.inferNew(ctx, ex)
	case *ast.Spawn:
		return c.inferSpawn(ctx, ex)
	case *ast.MatchExpr:
		return c.inferMatchExpr(ctx, hint, ex)
	case *ast.Lambda:
		return c.inferLambda(ctx, ex)
	case *ast.LetIn:
		return c.inferLetIn(ctx, hint, ex)
	case *ast.Call:
		return c.inferCall(ctx, ex)
	case *ast.ArrayLiteral:
		return c.inferArrayLiteral(ctx, hint, ex)
	case *ast.StructLiteral:
		return c.inferStructLiteral(ctx, hint, ex)
	}
	c.Reporter.Report(diag.New(diag.Unsupported, "check", locOf(e), "unsupported expression node %T", e))
	return types.TheUnset
}

// inferLiteral picks the least-sufficient numeric type for int/float
// literals (spec.md §4.3): signed vs unsigned from a leading '-', width
// from the magnitude, f32 for a float literal within ±3.4e38 and f64
// beyond it, reconciled against hint when one is present and compatible.
func (c *Checker) inferLiteral(hint types.Type, lit *ast.Literal) types.Type {
	lit.IsConstant = true
	switch lit.Kind {
	case ast.NullLit:
		return types.TheNull
	case ast.BoolLit:
		return types.Bool
	case ast.StringLit:
		if et, ok := types.Deref(hint).(*types.EnumType); ok {
			for _, m := range et.Members {
				if m.LiteralKind == "string" && m.StringValue == lit.Raw {
					return hint
				}
			}
		}
		return builtinStringType()
	case ast.BinaryStr:
		return &types.ArrayType{Elem: types.U8}
	case ast.CharLit:
		c.Reporter.Report(diag.New(diag.Unsupported, "check", nil, "char literals have no behavioral contract yet"))
		return types.TheUnset
	case ast.FloatLit:
		if hb, ok := types.Deref(hint).(*types.Basic); ok && hb.IsFloat() {
			return hb
		}
		if v, err := strconv.ParseFloat(strings.TrimRight(lit.Raw, "dD"), 64); err == nil && math.Abs(v) <= 3.4e38 {
			return types.F32
		}
		return types.F64
	case ast.IntLit:
		return leastSufficientInt(hint, lit.Raw)
	}
	return types.TheUnset
}

func leastSufficientInt(hint types.Type, raw string) types.Type {
	negative := strings.HasPrefix(raw, "-")
	trimmed := strings.TrimPrefix(raw, "-")
	val, err := strconv.ParseUint(trimmed, 0, 64)
	if err != nil {
		val = 0
	}
	if hb, ok := types.Deref(hint).(*types.Basic); ok && hb.IsInteger() {
		if fitsBasic(hb, val, negative) {
			return hb
		}
	}
	candidates := []*types.Basic{types.I8, types.I16, types.I32, types.I64}
	if !negative {
		candidates = []*types.Basic{types.U8, types.U16, types.U32, types.U64, types.I64}
	}
	for _, b := range candidates {
		if fitsBasic(b, val, negative) {
			return b
		}
	}
	return types.I64
}

func fitsBasic(b *types.Basic, val uint64, negative bool) bool {
	if negative && !b.IsSigned() {
		return false
	}
	width := types.BitWidth(b.Kind)
	if width == 0 {
		return false
	}
	if negative {
		width--
	}
	if width >= 64 {
		return true
	}
	return val < (uint64(1) << uint(width))
}

func (c *Checker) inferElement(ctx *symbols.Context, el *ast.Element) types.Type {
	sym, found := ctx.Lookup(el.Name)
	if !found {
		if fn, ok := c.Funcs[el.Name]; ok {
			el.IsConstant = true
			return c.instantiateFunction(ctx, fn, el.TypeArgs, el)
		}
		if decl, ok := c.Decls[el.Name]; ok {
			return metaOf(decl)
		}
		c.Reporter.Report(diag.New(diag.UnresolvedReference, "check", locOf(el), "undefined name %q", el.Name))
		return types.TheUnset
	}
	if fn, ok := sym.(*symbols.DeclaredFunction); ok {
		el.IsConstant = true
		return c.instantiateFunction(ctx, fn, el.TypeArgs, el)
	}
	t, _ := symbols.TypeOf(sym)
	el.IsConstant = isConstSymbol(sym)
	return t
}

// instantiateFunction resolves fn's callable type, substituting typeArgs
// through fn's instantiation cache when explicit generic arguments are
// given (spec.md §8 Scenario 1: `id<i32>(3)`); with no type arguments it
// returns fn's uninstantiated prototype, same as any other generic
// reference left unapplied.
func (c *Checker) instantiateFunction(ctx *symbols.Context, fn *symbols.DeclaredFunction, typeArgs []types.Type, at ast.Node) types.Type {
	if len(typeArgs) == 0 {
		return fn.Prototype
	}
	resolved := make([]types.Type, len(typeArgs))
	for i, a := range typeArgs {
		resolved[i] = c.Resolve(a, at)
	}
	instantiated, err := fn.Instantiate(resolved)
	if err != nil {
		c.Reporter.Report(diag.New(diag.ArityMismatch, "check", locOf(at), "%s", err.Error()))
		return fn.Prototype
	}
	return instantiated
}

func isConstSymbol(sym any) bool {
	switch s := sym.(type) {
	case *symbols.DeclaredVariable:
		return s.Const
	case *symbols.VariablePattern:
		return s.Const
	case *symbols.FunctionArgument:
		return !s.Mutable
	}
	return true
}

func metaOf(d *types.DeclaredType) types.Type {
	switch t := d.Type.(type) {
	case *types.ClassType:
		return &types.MetaClass{Of: t}
	case *types.InterfaceType:
		return &types.MetaInterface{Of: t}
	case *types.EnumType:
		return &types.MetaEnum{Of: t}
	case *types.VariantType:
		return &types.MetaVariant{Of: t}
	default:
		return d.Type
	}
}

func (c *Checker) inferMember(ctx *symbols.Context, m *ast.Member) types.Type {
	targetType := c.InferExpr(ctx, nil, m.Target)
	return c.memberType(targetType, m.Name, m, false)
}

func (c *Checker) inferNullableMember(ctx *symbols.Context, m *ast.NullableMember) types.Type {
	targetType := c.InferExpr(ctx, nil, m.Target)
	nullable, isNullable := types.Deref(targetType).(*types.Nullable)
	if !isNullable {
		c.Reporter.Report(diag.New(diag.IllegalNullableTarget, "check", locOf(m), "?. used on non-nullable type %s", types.ShortName(targetType)))
		return types.TheUnset
	}
	result := c.memberType(nullable.Inner, m.Name, m, false)
	if _, isVoid := result.(*types.Void); isVoid {
		return result
	}
	return &types.Nullable{Inner: result}
}

// memberType resolves name against owner (a class/struct/process/meta
// type), reporting UnresolvedReference when absent.
func (c *Checker) memberType(owner types.Type, name string, at ast.Node, static bool) types.Type {
	owner = types.Deref(owner)
	switch t := owner.(type) {
	case *types.ClassType:
		if a, ok := t.AttributeByName(name); ok {
			return a.Type
		}
		if m, ok := t.MethodByName(name); ok {
			return methodValueType(m)
		}
		for _, s := range t.Supertypes {
			if r := c.memberTypeOrNil(s, name); r != nil {
				return r
			}
		}
	case *types.StructType:
		if f, ok := t.FieldByName(name); ok {
			return f.Type
		}
	case *types.ProcessType:
		for _, a := range t.Attributes {
			if a.Name == name {
				return a.Type
			}
		}
		if m, ok := t.MethodByName(name); ok {
			return methodValueType(m)
		}
	case *types.MetaClass:
		for _, a := range t.Of.Attributes {
			if a.Static && a.Name == name {
				return a.Type
			}
		}
		if m, ok := t.Of.MethodByName(name); ok && m.Static {
			return methodValueType(m)
		}
	case *types.MetaEnum:
		if mem, ok := t.Of.MemberByName(name); ok {
			_ = mem
			return t.Of
		}
	case *types.MetaVariant:
		if ctor, ok := t.Of.ConstructorByName(name); ok {
			return ctorValueType(ctor)
		}
	case *types.InterfaceType:
		if m, ok := t.MethodByName(name); ok {
			return methodSigValueType(m)
		}
		for _, s := range t.Supertypes {
			if r := c.memberTypeOrNil(s, name); r != nil {
				return r
			}
		}
	case *types.ArrayType:
		if m, ok := builtins.ArrayMember(t.Elem, name); ok {
			return m
		}
	}
	c.Reporter.Report(diag.New(diag.UnresolvedReference, "check", locOf(at), "no member %q on %s", name, types.ShortName(owner)))
	return types.TheUnset
}

func (c *Checker) memberTypeOrNil(owner types.Type, name string) types.Type {
	owner = types.Deref(owner)
	switch t := owner.(type) {
	case *types.ClassType:
		if a, ok := t.AttributeByName(name); ok {
			return a.Type
		}
		if m, ok := t.MethodByName(name); ok {
			return methodValueType(m)
		}
	case *types.InterfaceType:
		if m, ok := t.MethodByName(name); ok {
			return methodSigValueType(m)
		}
	}
	return nil
}

func methodValueType(m *types.Method) types.Type {
	return &types.FunctionType{Parameters: m.Params, Return: m.Return}
}

func methodSigValueType(m *types.MethodSig) types.Type {
	return &types.FunctionType{Parameters: m.Params, Return: m.Return}
}

func ctorValueType(ctor *types.VariantConstructor) types.Type {
	if len(ctor.Parameters) == 0 {
		return ctor
	}
	return &types.FunctionType{Parameters: ctor.Parameters, Return: ctor}
}

func (c *Checker) inferIndex(ctx *symbols.Context, ix *ast.Index) types.Type {
	targetType := c.InferExpr(ctx, nil, ix.Target)
	arr, isArray := types.Deref(targetType).(*types.ArrayType)
	if !isArray {
		c.Reporter.Report(diag.New(diag.TypeMismatch, "check", locOf(ix), "index access on non-array type %s", types.ShortName(targetType)))
		ix.OverloadState = "builtin"
		return types.TheUnset
	}
	c.InferExpr(ctx, types.U64, ix.Idx)
	ix.OverloadState = "builtin"
	return arr.Elem
}

func (c *Checker) inferIndexSet(ctx *symbols.Context, ix *ast.IndexSet) types.Type {
	targetType := c.InferExpr(ctx, nil, ix.Target)
	arr, isArray := types.Deref(targetType).(*types.ArrayType)
	if !isArray {
		c.Reporter.Report(diag.New(diag.TypeMismatch, "check", locOf(ix), "index assignment on non-array type %s", types.ShortName(targetType)))
		ix.OverloadState = "builtin"
		return types.TheVoid
	}
	c.InferExpr(ctx, types.U64, ix.Idx)
	c.InferExpr(ctx, arr.Elem, ix.Value)
	ix.OverloadState = "builtin"
	return types.TheVoid
}

var arithmetic = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true}
var bitwise = map[string]bool{"&": true, "|": true, "^": true}
var comparison = map[string]bool{"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true}
var logical = map[string]bool{"&&": true, "||": true}

func (c *Checker) inferBinary(ctx *symbols.Context, b *ast.Binary) types.Type {
	if b.Op == "=" {
		return c.inferAssign(ctx, b)
	}
	lt := c.InferExpr(ctx, nil, b.Left)
	rt := c.InferExpr(ctx, nil, b.Right)

	switch {
	case logical[b.Op]:
		c.requireBool(lt, b.Left)
		c.requireBool(rt, b.Right)
		return types.Bool
	case comparison[b.Op]:
		if r := types.Match(lt, rt, false); !r.Success {
			if r2 := types.Match(rt, lt, false); !r2.Success {
				c.Reporter.Report(diag.New(diag.TypeMismatch, "check", locOf(b), "cannot compare %s with %s", types.ShortName(lt), types.ShortName(rt)))
			}
		}
		return types.Bool
	case arithmetic[b.Op], bitwise[b.Op]:
		if isStringType(lt) && b.Op == "+" {
			return lt
		}
		lb, lok := types.Deref(lt).(*types.Basic)
		rb, rok := types.Deref(rt).(*types.Basic)
		if !lok || !rok {
			c.Reporter.Report(diag.New(diag.TypeMismatch, "check", locOf(b), "operator %s requires numeric operands, got %s and %s", b.Op, types.ShortName(lt), types.ShortName(rt)))
			return types.TheUnset
		}
		return widerBasic(lb, rb)
	}
	c.Reporter.Report(diag.New(diag.Unsupported, "check", locOf(b), "unsupported binary operator %q", b.Op))
	return types.TheUnset
}

// inferAssign checks `target = value`: the target must not be a constant
// binding, and value is inferred against the target's type as a hint
// (spec.md §4.3 assignment is an expression producing void).
func (c *Checker) inferAssign(ctx *symbols.Context, b *ast.Binary) types.Type {
	targetType := c.InferExpr(ctx, nil, b.Left)
	if b.Left.Base().IsConstant {
		c.Reporter.Report(diag.New(diag.TypeMismatch, "check", locOf(b.Left), "cannot assign to a constant binding"))
	}
	c.InferExpr(ctx, targetType, b.Right)
	return types.TheVoid
}

func (c *Checker) requireBool(t types.Type, at ast.Node) {
	if b, ok := types.Deref(t).(*types.Basic); !ok || b.Kind != "bool" {
		c.Reporter.Report(diag.New(diag.TypeMismatch, "check", locOf(at), "expected bool, got %s", types.ShortName(t)))
	}
}

func isStringType(t types.Type) bool {
	ct, ok := types.Deref(t).(*types.ClassType)
	return ok && ct.Name == "String"
}

func widerBasic(a, b *types.Basic) *types.Basic {
	if a.IsFloat() || b.IsFloat() {
		if a.Kind == "f64" || b.Kind == "f64" {
			return types.F64
		}
		return types.F32
	}
	aw, bw := types.BitWidth(a.Kind), types.BitWidth(b.Kind)
	if a.IsSigned() != b.IsSigned() {
		// mixed sign widens to the signed kind at max width, per the
		// literal-promotion rule used for arithmetic (spec.md §4.3).
		w := aw
		if bw > w {
			w = bw
		}
		for _, s := range []*types.Basic{types.I8, types.I16, types.I32, types.I64} {
			if types.BitWidth(s.Kind) >= w {
				return s
			}
		}
		return types.I64
	}
	if aw >= bw {
		return a
	}
	return b
}

func (c *Checker) inferUnary(ctx *symbols.Context, u *ast.Unary) types.Type {
	ot := c.InferExpr(ctx, nil, u.Operand)
	switch u.Op {
	case "!":
		c.requireBool(ot, u.Operand)
		return types.Bool
	case "-":
		if b, ok := types.Deref(ot).(*types.Basic); ok && (b.IsInteger() || b.IsFloat()) {
			return b
		}
		c.Reporter.Report(diag.New(diag.TypeMismatch, "check", locOf(u), "unary - requires a numeric operand, got %s", types.ShortName(ot)))
		return types.TheUnset
	}
	return ot
}

func (c *Checker) inferCast(ctx *symbols.Context, cst *ast.Cast) types.Type {
	c.InferExpr(ctx, nil, cst.Target)
	cst.Type = c.Resolve(cst.Type, cst)
	switch cst.Mode {
	case ast.CastSafe:
		return &types.Nullable{Inner: cst.Type}
	default:
		return cst.Type
	}
}

func (c *Checker) inferNew(ctx *symbols.Context, n *ast.New) types.Type {
	n.Type = c.Resolve(n.Type, n)
	ct, ok := types.Deref(n.Type).(*types.ClassType)
	if !ok {
		c.Reporter.Report(diag.New(diag.TypeMismatch, "check", locOf(n), "new requires a class type, got %s", types.ShortName(n.Type)))
		for _, a := range n.Args {
			c.InferExpr(ctx, nil, a)
		}
		return n.Type
	}
	c.checkArgsAgainstAttributes(ctx, ct.Attributes, n.Args, n)
	return ct
}

func (c *Checker) inferSpawn(ctx *symbols.Context, s *ast.Spawn) types.Type {
	s.Type = c.Resolve(s.Type, s)
	pt, ok := types.Deref(s.Type).(*types.ProcessType)
	if !ok {
		c.Reporter.Report(diag.New(diag.TypeMismatch, "check", locOf(s), "spawn requires a process type, got %s", types.ShortName(s.Type)))
		for _, a := range s.Args {
			c.InferExpr(ctx, nil, a)
		}
		return s.Type
	}
	c.checkArgsAgainstAttributes(ctx, pt.Attributes, s.Args, s)
	return pt
}

func (c *Checker) checkArgsAgainstAttributes(ctx *symbols.Context, attrs []types.Attribute, args []ast.Expr, at ast.Node) {
	var nonStatic []types.Attribute
	for _, a := range attrs {
		if !a.Static {
			nonStatic = append(nonStatic, a)
		}
	}
	if len(args) != len(nonStatic) {
		c.Reporter.Report(diag.New(diag.ArityMismatch, "check", locOf(at), "expected %d constructor argument(s), got %d", len(nonStatic), len(args)))
	}
	for i, a := range args {
		var hint types.Type
		if i < len(nonStatic) {
			hint = nonStatic[i].Type
		}
		c.InferExpr(ctx, hint, a)
	}
}

// inferMatchExpr requires at least one arm and a trailing catch-all
// (wildcard or variable pattern), checks every arm's pattern against the
// scrutinee type, lowers it, re-submits the lowered condition/assignments
// for inference, and unifies every arm body's type (spec.md §4.6).
func (c *Checker) inferMatchExpr(ctx *symbols.Context, hint types.Type, m *ast.MatchExpr) types.Type {
	scrutineeType := c.InferExpr(ctx, nil, m.Scrutinee)
	if len(m.Arms) == 0 {
		c.Reporter.Report(diag.New(diag.ExhaustivenessFailure, "check", locOf(m), "match expression has no arms"))
		return types.TheUnset
	}
	last := m.Arms[len(m.Arms)-1]
	if !isCatchAll(last.Pattern) {
		c.Reporter.Report(diag.New(diag.ExhaustivenessFailure, "check", locOf(m), "match expression must end with a wildcard or variable pattern"))
	}

	var result types.Type
	for _, arm := range m.Arms {
		armCtx := ctx.Child(m.Pos)
		if !c.Pattern.Check(arm.Pattern, scrutineeType, armCtx, *locOf(m), false) {
			continue
		}
		arm.Lowered = c.lowerAndRecheck(armCtx, arm.Pattern, m.Scrutinee)
		if arm.Guard != nil {
			c.InferExpr(armCtx, types.Bool, arm.Guard)
		}
		bodyExpr, ok := arm.Body.(ast.Expr)
		if !ok {
			c.Reporter.Report(diag.New(diag.Unsupported, "check", locOf(m), "match-expression arm body must be an expression"))
			continue
		}
		bt := c.InferExpr(armCtx, hint, bodyExpr)
		if result == nil {
			result = bt
		} else if r := types.Match(result, bt, false); !r.Success {
			c.Reporter.Report(diag.New(diag.TypeMismatch, "check", locOf(bodyExpr), "match arm type %s incompatible with preceding arms' %s", types.ShortName(bt), types.ShortName(result)))
		}
	}
	if result == nil {
		return types.TheUnset
	}
	return result
}

func isCatchAll(p ast.Pattern) bool {
	switch p.(type) {
	case *ast.WildcardPattern, *ast.VariablePattern:
		return true
	}
	return false
}

func (c *Checker) lowerAndRecheck(ctx *symbols.Context, pat ast.Pattern, scrutinee ast.Expr) *ast.LoweredArm {
	lowered := pattern.Lower(pat, scrutinee)
	if lowered.Condition != nil {
		c.InferExpr(ctx, types.Bool, lowered.Condition)
	}
	for _, assign := range lowered.Assignments {
		c.InferExpr(ctx, nil, assign.Value)
		assign.Target.Base().InferredType = assign.Value.Base().InferredType
	}
	return lowered
}

func (c *Checker) inferLambda(ctx *symbols.Context, l *ast.Lambda) types.Type {
	child := ctx.Child(l.Pos)
	env := child.Env()
	env.WithinFunction = true
	child.SetEnv(env)
	params := make([]types.Param, len(l.Params))
	for i, p := range l.Params {
		pt := c.Resolve(p.Type, l)
		params[i] = types.Param{Name: p.Name, Type: pt, Mutable: p.Mutable}
		child.AddSymbol(p.Name, &symbols.FunctionArgument{Name: p.Name, Type: pt, Mutable: p.Mutable})
	}
	var ret types.Type
	switch body := l.Body.(type) {
	case ast.Expr:
		ret = c.InferExpr(child, l.ReturnHint, body)
	case *ast.Block:
		c.CheckBlock(child, body)
		ret = c.unifyReturnSites(child, l.ReturnHint, l)
	}
	if l.ReturnHint != nil {
		ret = l.ReturnHint
	}
	return &types.FunctionType{Parameters: params, Return: ret}
}

// unifyReturnSites picks the declared return hint if present, else unifies
// every collected return-site expression's inferred type (spec.md §4.4).
func (c *Checker) unifyReturnSites(ctx *symbols.Context, hint types.Type, at ast.Node) types.Type {
	if hint != nil {
		return hint
	}
	owner := ctx.Owner()
	if owner == nil || len(owner.ReturnSites) == 0 {
		return types.TheVoid
	}
	var result types.Type
	for _, site := range owner.ReturnSites {
		e, ok := site.Expr.(ast.Expr)
		if !ok || e == nil {
			if result == nil {
				result = types.TheVoid
			}
			continue
		}
		t := e.Base().InferredType
		if result == nil {
			result = t
		} else if r := types.Match(result, t, false); !r.Success {
			c.Reporter.Report(diag.New(diag.TypeMismatch, "check", locOf(at), "return sites disagree: %s vs %s", types.ShortName(result), types.ShortName(t)))
		}
	}
	if result == nil {
		return types.TheVoid
	}
	return result
}

func (c *Checker) inferLetIn(ctx *symbols.Context, hint types.Type, l *ast.LetIn) types.Type {
	child := ctx.Child(l.Pos)
	for i := range l.Declarators {
		d := &l.Declarators[i]
		t := c.InferExpr(child, d.Type, d.Init)
		if d.Type == nil {
			d.Type = t
		}
		child.AddSymbol(d.Name, &symbols.DeclaredVariable{Name: d.Name, Type: d.Type, Const: true, Strict: false})
	}
	return c.InferExpr(child, hint, l.Body)
}

func (c *Checker) inferCall(ctx *symbols.Context, call *ast.Call) types.Type {
	// Explicit generic arguments can attach to the callee identifier
	// (`id<i32>(3)`, the only form the parser currently produces) or to the
	// call node itself (`ast.Call.TypeArgs`, reserved for a future
	// member-call generic syntax); fold the latter onto the former so a
	// single instantiation path (inferElement) handles both.
	if len(call.TypeArgs) > 0 {
		if el, ok := call.Callee.(*ast.Element); ok && len(el.TypeArgs) == 0 {
			el.TypeArgs = call.TypeArgs
		}
	}
	calleeType := c.InferExpr(ctx, nil, call.Callee)
	ft, isFunc := types.Deref(calleeType).(*types.FunctionType)
	if !isFunc {
		if ctor, isCtor := types.Deref(calleeType).(*types.VariantConstructor); isCtor {
			return c.inferCtorCall(ctx, ctor, call)
		}
		c.Reporter.Report(diag.New(diag.TypeMismatch, "check", locOf(call), "attempt to call non-function type %s", types.ShortName(calleeType)))
		for _, a := range call.Args {
			c.InferExpr(ctx, nil, a)
		}
		return types.TheUnset
	}
	if len(call.Args) != len(ft.Parameters) {
		c.Reporter.Report(diag.New(diag.ArityMismatch, "check", locOf(call), "expected %d argument(s), got %d", len(ft.Parameters), len(call.Args)))
	}
	for i, a := range call.Args {
		var hint types.Type
		if i < len(ft.Parameters) {
			hint = ft.Parameters[i].Type
		}
		c.InferExpr(ctx, hint, a)
	}
	return ft.Return
}

func (c *Checker) inferCtorCall(ctx *symbols.Context, ctor *types.VariantConstructor, call *ast.Call) types.Type {
	if len(call.Args) != len(ctor.Parameters) {
		c.Reporter.Report(diag.New(diag.ArityMismatch, "check", locOf(call), "constructor %s expects %d argument(s), got %d", ctor.Name, len(ctor.Parameters), len(call.Args)))
	}
	for i, a := range call.Args {
		var hint types.Type
		if i < len(ctor.Parameters) {
			hint = ctor.Parameters[i].Type
		}
		c.InferExpr(ctx, hint, a)
	}
	return ctor
}

func (c *Checker) inferArrayLiteral(ctx *symbols.Context, hint types.Type, a *ast.ArrayLiteral) types.Type {
	var elemHint types.Type
	if ha, ok := types.Deref(hint).(*types.ArrayType); ok {
		elemHint = ha.Elem
	}
	if len(a.Elements) == 0 {
		if elemHint != nil {
			return &types.ArrayType{Elem: elemHint}
		}
		c.Reporter.Report(diag.New(diag.Unsupported, "check", locOf(a), "empty array literal needs a type hint"))
		return &types.ArrayType{Elem: types.TheUnset}
	}
	var elem types.Type
	for _, el := range a.Elements {
		t := c.InferExpr(ctx, elemHint, el)
		if elem == nil {
			elem = t
		} else if r := types.Match(elem, t, false); !r.Success {
			elem = &types.UnionType{A: elem, B: t}
		}
	}
	return &types.ArrayType{Elem: elem}
}

func (c *Checker) inferStructLiteral(ctx *symbols.Context, hint types.Type, s *ast.StructLiteral) types.Type {
	hs, hasHint := types.Deref(hint).(*types.StructType)
	fields := make([]types.Field, len(s.Fields))
	for i, f := range s.Fields {
		var fieldHint types.Type
		if hasHint {
			if hf, ok := hs.FieldByName(f.Name); ok {
				fieldHint = hf.Type
			}
		}
		t := c.InferExpr(ctx, fieldHint, f.Value)
		fields[i] = types.Field{Name: f.Name, Type: t}
	}
	return &types.StructType{Fields: fields}
}
