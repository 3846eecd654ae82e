package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typec-go/tcheck/internal/ast"
	"github.com/typec-go/tcheck/internal/diag"
	"github.com/typec-go/tcheck/internal/symbols"
	"github.com/typec-go/tcheck/internal/token"
	"github.com/typec-go/tcheck/internal/types"
)

func TestCheckVarDeclInfersTypeFromInitializer(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	v := &ast.VarDeclStmt{Declarators: []ast.VarDeclarator{
		{Name: "x", Init: &ast.Literal{Kind: ast.IntLit, Raw: "5"}},
	}}
	c.checkVarDecl(ctx, v)
	assert.False(t, c.Reporter.HasErrors())
	assert.Equal(t, types.U8, v.Declarators[0].Type)

	sym, found := ctx.Lookup("x")
	require.True(t, found)
	assert.Equal(t, types.U8, sym.(*symbols.DeclaredVariable).Type)
}

func TestCheckVarDeclStrictRejectsWidening(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	// A struct literal with an extra field is accepted by the non-strict
	// hint match but rejected by the strict declared-type match.
	declared := &types.StructType{Fields: []types.Field{{Name: "x", Type: types.I64}}}
	v := &ast.VarDeclStmt{Declarators: []ast.VarDeclarator{
		{Name: "p", Type: declared, Strict: true, Init: &ast.StructLiteral{Fields: []ast.StructFieldInit{
			{Name: "x", Value: &ast.Literal{Kind: ast.IntLit, Raw: "1"}},
			{Name: "y", Value: &ast.Literal{Kind: ast.IntLit, Raw: "2"}},
		}}},
	}}
	c.checkVarDecl(ctx, v)
	require.True(t, c.Reporter.HasErrors())
	assert.Equal(t, diag.TypeMismatch, c.Reporter.Reports()[0].Code)
}

func TestCheckVarDeclDuplicateInSameScopeReported(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	v := &ast.VarDeclStmt{Declarators: []ast.VarDeclarator{
		{Name: "x", Init: &ast.Literal{Kind: ast.IntLit, Raw: "1"}},
		{Name: "x", Init: &ast.Literal{Kind: ast.IntLit, Raw: "2"}},
	}}
	c.checkVarDecl(ctx, v)
	require.True(t, c.Reporter.HasErrors())
	assert.Equal(t, diag.DuplicateSymbol, c.Reporter.Reports()[0].Code)
}

func TestCheckStmtBreakOutsideLoopReported(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	c.CheckStmt(ctx, &ast.BreakStmt{})
	require.True(t, c.Reporter.HasErrors())
	assert.Equal(t, diag.ControlFlowMisuse, c.Reporter.Reports()[0].Code)
}

func TestCheckStmtBreakInsideLoopAccepted(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	body := &ast.Block{Stmts: []ast.Stmt{&ast.BreakStmt{}}}
	c.CheckStmt(ctx, &ast.WhileStmt{Cond: &ast.Literal{Kind: ast.BoolLit, Bool: true}, Body: body})
	assert.False(t, c.Reporter.HasErrors())
}

func TestCheckReturnOutsideFunctionReported(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	c.CheckStmt(ctx, &ast.ReturnStmt{Value: &ast.Literal{Kind: ast.IntLit, Raw: "1"}})
	require.True(t, c.Reporter.HasErrors())
	assert.Equal(t, diag.ControlFlowMisuse, c.Reporter.Reports()[0].Code)
}

func TestCheckReturnInsideFunctionInfersAgainstPrototype(t *testing.T) {
	c := newChecker()
	root := symbols.NewRoot(nil)
	fn := &symbols.DeclaredFunction{Name: "f", Prototype: &types.FunctionType{Return: types.I64}}
	ctx := root.ChildWithOwner(token.Pos{}, fn)

	ret := &ast.ReturnStmt{Value: &ast.Literal{Kind: ast.IntLit, Raw: "5"}}
	c.CheckStmt(ctx, ret)
	assert.False(t, c.Reporter.HasErrors())
	assert.Equal(t, types.I64, ret.Value.Base().InferredType)
	require.Len(t, ctx.Owner().ReturnSites, 1)
}

func TestCheckForeachOverArrayBindsValueAndIndex(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	ctx.AddSymbol("xs", &symbols.DeclaredVariable{Name: "xs", Type: &types.ArrayType{Elem: types.I64}})

	var capturedValueType types.Type
	body := &ast.Block{Stmts: []ast.Stmt{
		&ast.ExprStmt{Expr: &ast.Element{Name: "v"}},
	}}
	f := &ast.ForeachStmt{IndexName: "i", ValueName: "v", Iterable: &ast.Element{Name: "xs"}, Body: body}
	c.CheckStmt(ctx, f)
	assert.False(t, c.Reporter.HasErrors())

	capturedValueType = body.Stmts[0].(*ast.ExprStmt).Expr.Base().InferredType
	assert.Equal(t, types.I64, capturedValueType)
}

func TestCheckForeachOverNonIterableReported(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	ctx.AddSymbol("x", &symbols.DeclaredVariable{Name: "x", Type: types.I64})
	f := &ast.ForeachStmt{ValueName: "v", Iterable: &ast.Element{Name: "x"}, Body: &ast.Block{}}
	c.CheckStmt(ctx, f)
	require.True(t, c.Reporter.HasErrors())
	assert.Equal(t, diag.TypeMismatch, c.Reporter.Reports()[0].Code)
}

func TestCheckMatchStmtRequiresCatchAllArm(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	m := &ast.MatchStmt{
		Scrutinee: &ast.Literal{Kind: ast.IntLit, Raw: "1"},
		Arms: []*ast.MatchArm{
			{Pattern: &ast.LiteralPattern{Value: &ast.Literal{Kind: ast.IntLit, Raw: "1"}}, Body: &ast.Block{}},
		},
	}
	c.CheckStmt(ctx, m)
	var found bool
	for _, r := range c.Reporter.Reports() {
		if r.Code == diag.ExhaustivenessFailure {
			found = true
			assert.Equal(t, diag.SeverityWarning, r.Severity, "non-exhaustive match *statement* is advisory, not fatal")
		}
	}
	assert.True(t, found)
	assert.False(t, c.Reporter.HasErrors(), "an exhaustiveness warning alone should not count as an error")
}

func TestCheckMatchStmtNonBlockArmBodyReported(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	m := &ast.MatchStmt{
		Scrutinee: &ast.Literal{Kind: ast.IntLit, Raw: "1"},
		Arms: []*ast.MatchArm{
			{Pattern: &ast.VariablePattern{Name: "_"}, Body: &ast.Literal{Kind: ast.IntLit, Raw: "1"}},
		},
	}
	c.CheckStmt(ctx, m)
	require.True(t, c.Reporter.HasErrors())
	assert.Equal(t, diag.Unsupported, c.Reporter.Reports()[0].Code)
}

func TestCheckBlockUsesChildScope(t *testing.T) {
	c := newChecker()
	ctx := symbols.NewRoot(nil)
	block := &ast.Block{Stmts: []ast.Stmt{
		&ast.VarDeclStmt{Declarators: []ast.VarDeclarator{
			{Name: "x", Init: &ast.Literal{Kind: ast.IntLit, Raw: "1"}},
		}},
	}}
	c.CheckBlock(ctx, block)
	_, found := ctx.Lookup("x")
	assert.False(t, found)
}
