package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typec-go/tcheck/internal/ast"
	"github.com/typec-go/tcheck/internal/builtins"
	"github.com/typec-go/tcheck/internal/diag"
	"github.com/typec-go/tcheck/internal/symbols"
	"github.com/typec-go/tcheck/internal/types"
)

func newChecker() *Checker {
	return New(diag.NewReporter())
}

func TestInferLiteralIntWithoutHintPicksSmallestUnsignedFit(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	lit := &ast.Literal{Kind: ast.IntLit, Raw: "5"}
	got := c.InferExpr(ctx, nil, lit)
	assert.Equal(t, types.U8, got)
	assert.True(t, lit.IsConstant)
}

func TestInferLiteralNegativeIntPicksSignedWidth(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	lit := &ast.Literal{Kind: ast.IntLit, Raw: "-5"}
	got := c.InferExpr(ctx, nil, lit)
	assert.Equal(t, types.I8, got)
}

func TestInferLiteralIntRespectsWideningHint(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	lit := &ast.Literal{Kind: ast.IntLit, Raw: "5"}
	got := c.InferExpr(ctx, types.I64, lit)
	assert.Equal(t, types.I64, got)
}

func TestInferLiteralOverflowingHintReportsMismatch(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	lit := &ast.Literal{Kind: ast.IntLit, Raw: "500"}
	got := c.InferExpr(ctx, types.I8, lit)
	assert.NotEqual(t, types.I8, got)
	assert.True(t, c.Reporter.HasErrors())
}

func TestInferLiteralStringYieldsBuiltinStringClass(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	lit := &ast.Literal{Kind: ast.StringLit, Raw: "hi"}
	got := c.InferExpr(ctx, nil, lit)
	assert.Equal(t, builtins.String, got)
}

func TestInferLiteralHexIntParsesAsHexNotDecimal(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	lit := &ast.Literal{Kind: ast.IntLit, Raw: "0x19"}
	got := c.InferExpr(ctx, types.I64, lit)
	assert.Equal(t, types.I64, got)
	assert.False(t, c.Reporter.HasErrors())

	wide := &ast.Literal{Kind: ast.IntLit, Raw: "0xFF"}
	gotWide := c.InferExpr(ctx, nil, wide)
	assert.Equal(t, types.U8, gotWide)
}

func TestInferLiteralHexOverflowingHintReportsMismatch(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	lit := &ast.Literal{Kind: ast.IntLit, Raw: "0x1FF"}
	got := c.InferExpr(ctx, types.U8, lit)
	assert.NotEqual(t, types.U8, got)
	assert.True(t, c.Reporter.HasErrors())
}

func TestInferLiteralStringMatchingEnumMemberYieldsEnumType(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	enum := &types.EnumType{
		Name:       "Color",
		TargetKind: "unset",
		Members: []types.EnumMember{
			{Name: "Red", StringValue: "red", LiteralKind: "string"},
			{Name: "Blue", StringValue: "blue", LiteralKind: "string"},
		},
	}
	lit := &ast.Literal{Kind: ast.StringLit, Raw: "red"}
	got := c.InferExpr(ctx, enum, lit)
	assert.Same(t, enum, got)
}

func TestInferLiteralStringNotMatchingEnumMemberYieldsBuiltinString(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	enum := &types.EnumType{
		Name:       "Color",
		TargetKind: "unset",
		Members: []types.EnumMember{
			{Name: "Red", StringValue: "red", LiteralKind: "string"},
		},
	}
	lit := &ast.Literal{Kind: ast.StringLit, Raw: "green"}
	got := c.InferExpr(ctx, enum, lit)
	assert.Equal(t, builtins.String, got)
}

func TestInferElementUndefinedNameReportsUnresolvedReference(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	el := &ast.Element{Name: "missing"}
	c.InferExpr(ctx, nil, el)
	require.True(t, c.Reporter.HasErrors())
	assert.Equal(t, diag.UnresolvedReference, c.Reporter.Reports()[0].Code)
}

func TestInferElementLooksUpBoundVariable(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	ctx.AddSymbol("x", &symbols.DeclaredVariable{Name: "x", Type: types.I64})
	el := &ast.Element{Name: "x"}
	got := c.InferExpr(ctx, nil, el)
	assert.Equal(t, types.I64, got)
	assert.False(t, el.IsConstant)
}

func TestInferElementConstBindingMarksIsConstant(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	ctx.AddSymbol("x", &symbols.DeclaredVariable{Name: "x", Type: types.I64, Const: true})
	el := &ast.Element{Name: "x"}
	c.InferExpr(ctx, nil, el)
	assert.True(t, el.IsConstant)
}

func TestInferAssignToConstBindingReportsTypeMismatch(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	ctx.AddSymbol("x", &symbols.DeclaredVariable{Name: "x", Type: types.I64, Const: true})
	assign := &ast.Binary{Op: "=", Left: &ast.Element{Name: "x"}, Right: &ast.Literal{Kind: ast.IntLit, Raw: "1"}}
	got := c.InferExpr(ctx, nil, assign)
	assert.Equal(t, types.TheVoid, got)
	require.True(t, c.Reporter.HasErrors())
	assert.Equal(t, diag.TypeMismatch, c.Reporter.Reports()[0].Code)
}

func TestInferAssignToMutableVariableSucceeds(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	ctx.AddSymbol("x", &symbols.DeclaredVariable{Name: "x", Type: types.I64})
	assign := &ast.Binary{Op: "=", Left: &ast.Element{Name: "x"}, Right: &ast.Literal{Kind: ast.IntLit, Raw: "1"}}
	c.InferExpr(ctx, nil, assign)
	assert.False(t, c.Reporter.HasErrors())
}

func TestInferBinaryArithmeticWidensToWiderOperand(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	bin := &ast.Binary{Op: "+", Left: &ast.Literal{Kind: ast.IntLit, Raw: "1"}, Right: &ast.Literal{Kind: ast.IntLit, Raw: "70000"}}
	got := c.InferExpr(ctx, nil, bin)
	assert.Equal(t, types.U32, got)
}

func TestInferBinaryComparisonReturnsBool(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	bin := &ast.Binary{Op: "<", Left: &ast.Literal{Kind: ast.IntLit, Raw: "1"}, Right: &ast.Literal{Kind: ast.IntLit, Raw: "2"}}
	got := c.InferExpr(ctx, nil, bin)
	assert.Equal(t, types.Bool, got)
}

func TestInferBinaryLogicalRequiresBoolOperands(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	bin := &ast.Binary{Op: "&&", Left: &ast.Literal{Kind: ast.IntLit, Raw: "1"}, Right: &ast.Literal{Kind: ast.BoolLit, Bool: true}}
	c.InferExpr(ctx, nil, bin)
	assert.True(t, c.Reporter.HasErrors())
}

func TestInferIndexOnArrayReturnsElementType(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	ctx.AddSymbol("xs", &symbols.DeclaredVariable{Name: "xs", Type: &types.ArrayType{Elem: types.I64}})
	idx := &ast.Index{Target: &ast.Element{Name: "xs"}, Idx: &ast.Literal{Kind: ast.IntLit, Raw: "0"}}
	got := c.InferExpr(ctx, nil, idx)
	assert.Equal(t, types.I64, got)
}

func TestInferIndexOnNonArrayReportsTypeMismatch(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	ctx.AddSymbol("x", &symbols.DeclaredVariable{Name: "x", Type: types.I64})
	idx := &ast.Index{Target: &ast.Element{Name: "x"}, Idx: &ast.Literal{Kind: ast.IntLit, Raw: "0"}}
	c.InferExpr(ctx, nil, idx)
	assert.True(t, c.Reporter.HasErrors())
}

func TestInferArrayLiteralInfersElementUnion(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	lit := &ast.ArrayLiteral{Elements: []ast.Expr{
		&ast.Literal{Kind: ast.IntLit, Raw: "1"},
		&ast.Literal{Kind: ast.BoolLit, Bool: true},
	}}
	got := c.InferExpr(ctx, nil, lit)
	arr, ok := got.(*types.ArrayType)
	require.True(t, ok)
	_, isUnion := arr.Elem.(*types.UnionType)
	assert.True(t, isUnion)
}

func TestInferEmptyArrayLiteralWithoutHintReportsUnsupported(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	lit := &ast.ArrayLiteral{}
	c.InferExpr(ctx, nil, lit)
	assert.True(t, c.Reporter.HasErrors())
}

func TestInferCallArityMismatchReported(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	fn := &types.FunctionType{Parameters: []types.Param{{Name: "a", Type: types.I64}}, Return: types.Bool}
	ctx.AddSymbol("f", &symbols.DeclaredVariable{Name: "f", Type: fn, Const: true})
	call := &ast.Call{Callee: &ast.Element{Name: "f"}}
	got := c.InferExpr(ctx, nil, call)
	assert.Equal(t, types.Bool, got)
	require.True(t, c.Reporter.HasErrors())
	assert.Equal(t, diag.ArityMismatch, c.Reporter.Reports()[0].Code)
}

// TestInferCallResolvesTopLevelFunctionByName exercises the real
// Declare->checkDecl path (not a manually seeded ctx binding): a top-level
// function must be callable by name from a sibling declaration's body, the
// same way a class or variant reference resolves (spec.md §4.2).
func TestInferCallResolvesTopLevelFunctionByName(t *testing.T) {
	c := newChecker()
	callee := &ast.FunctionDecl{
		Name:       "add",
		Params:     []ast.ParamDecl{{Name: "a", Type: types.I64}, {Name: "b", Type: types.I64}},
		ReturnType: types.I64,
		Body:       &ast.Literal{Kind: ast.IntLit, Raw: "0"},
	}
	caller := &ast.FunctionDecl{
		Name:       "main",
		ReturnType: types.I64,
		Body: &ast.Call{
			Callee: &ast.Element{Name: "add"},
			Args:   []ast.Expr{&ast.Literal{Kind: ast.IntLit, Raw: "1"}, &ast.Literal{Kind: ast.IntLit, Raw: "2"}},
		},
	}
	f := &ast.File{Decls: []ast.Decl{callee, caller}}
	for _, d := range f.Decls {
		c.Declare(f.Package, d)
	}
	c.CheckBodies(f)
	require.False(t, c.Reporter.HasErrors(), "%v", c.Reporter.Reports())
	assert.Equal(t, types.I64, caller.Body.(*ast.Call).Base().InferredType)
}

// TestInferCallOnUndeclaredFunctionReportsUnresolvedReference guards
// against silently resolving an unknown callee now that function lookup
// has a dedicated fallback path.
func TestInferCallOnUndeclaredFunctionReportsUnresolvedReference(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	call := &ast.Call{Callee: &ast.Element{Name: "nonexistent"}}
	c.InferExpr(ctx, nil, call)
	require.True(t, c.Reporter.HasErrors())
	assert.Equal(t, diag.UnresolvedReference, c.Reporter.Reports()[0].Code)
}

// TestInferCallInstantiatesGenericFunctionFromExplicitTypeArgs is spec.md
// §8 Scenario 1: `id<i32>(3)` must substitute T -> i32 through the
// function's instantiation cache, not leave the prototype's bare Generic
// in place.
func TestInferCallInstantiatesGenericFunctionFromExplicitTypeArgs(t *testing.T) {
	c := newChecker()
	generic := &types.Generic{Name: "T"}
	decl := &ast.FunctionDecl{
		Name:       "id",
		Generics:   []*types.Generic{generic},
		Params:     []ast.ParamDecl{{Name: "x", Type: generic}},
		ReturnType: generic,
		Body:       &ast.Element{Name: "x"},
	}
	f := &ast.File{Decls: []ast.Decl{decl}}
	c.Declare(f.Package, decl)
	c.CheckBodies(f)
	require.False(t, c.Reporter.HasErrors(), "%v", c.Reporter.Reports())

	ctx := symbols.NewRoot(nil)
	call := &ast.Call{
		Callee: &ast.Element{Name: "id", TypeArgs: []types.Type{types.I32}},
		Args:   []ast.Expr{&ast.Literal{Kind: ast.IntLit, Raw: "3"}},
	}
	got := c.InferExpr(ctx, nil, call)
	assert.Equal(t, types.I32, got)
	assert.False(t, c.Reporter.HasErrors(), "%v", c.Reporter.Reports())

	// A second call with the same type argument hits Instantiate's cache
	// and must produce an identical substituted prototype.
	call2 := &ast.Call{
		Callee: &ast.Element{Name: "id", TypeArgs: []types.Type{types.I32}},
		Args:   []ast.Expr{&ast.Literal{Kind: ast.IntLit, Raw: "4"}},
	}
	got2 := c.InferExpr(ctx, nil, call2)
	assert.Equal(t, types.I32, got2)
}

// TestInferCallHonorsCallLevelTypeArgsWhenCalleeHasNone covers the second
// generic-argument attachment point spec.md §8 names: ast.Call.TypeArgs.
func TestInferCallHonorsCallLevelTypeArgsWhenCalleeHasNone(t *testing.T) {
	c := newChecker()
	generic := &types.Generic{Name: "T"}
	decl := &ast.FunctionDecl{
		Name:       "id",
		Generics:   []*types.Generic{generic},
		Params:     []ast.ParamDecl{{Name: "x", Type: generic}},
		ReturnType: generic,
		Body:       &ast.Element{Name: "x"},
	}
	f := &ast.File{Decls: []ast.Decl{decl}}
	c.Declare(f.Package, decl)
	c.CheckBodies(f)
	require.False(t, c.Reporter.HasErrors())

	ctx := symbols.NewRoot(nil)
	call := &ast.Call{
		Callee:   &ast.Element{Name: "id"},
		TypeArgs: []types.Type{types.U8},
		Args:     []ast.Expr{&ast.Literal{Kind: ast.IntLit, Raw: "3"}},
	}
	got := c.InferExpr(ctx, nil, call)
	assert.Equal(t, types.U8, got)
}

func TestInferMatchExprRequiresCatchAllArm(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	m := &ast.MatchExpr{
		Scrutinee: &ast.Literal{Kind: ast.IntLit, Raw: "1"},
		Arms: []*ast.MatchArm{
			{Pattern: &ast.LiteralPattern{Value: &ast.Literal{Kind: ast.IntLit, Raw: "1"}}, Body: &ast.Literal{Kind: ast.BoolLit, Bool: true}},
		},
	}
	c.InferExpr(ctx, nil, m)
	var found bool
	for _, r := range c.Reporter.Reports() {
		if r.Code == diag.ExhaustivenessFailure {
			found = true
		}
	}
	assert.True(t, found)
}

func TestInferMatchExprUnifiesArmTypes(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	m := &ast.MatchExpr{
		Scrutinee: &ast.Literal{Kind: ast.IntLit, Raw: "1"},
		Arms: []*ast.MatchArm{
			{Pattern: &ast.LiteralPattern{Value: &ast.Literal{Kind: ast.IntLit, Raw: "1"}}, Body: &ast.Literal{Kind: ast.BoolLit, Bool: true}},
			{Pattern: &ast.VariablePattern{Name: "_"}, Body: &ast.Literal{Kind: ast.BoolLit, Bool: false}},
		},
	}
	got := c.InferExpr(ctx, nil, m)
	assert.Equal(t, types.Bool, got)
}
