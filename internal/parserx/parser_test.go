package parserx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typec-go/tcheck/internal/ast"
)

// cmpOpts ignores position info (file/line/col), which isn't the point of
// these shape assertions.
var cmpOpts = cmpopts.IgnoreFields(ast.ExprBase{}, "Pos")

func mustParseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	p := New(src, "<test>")
	e := p.ParseExpr()
	require.Empty(t, p.Errors(), "unexpected parse errors for %q", src)
	require.NotNil(t, e)
	return e
}

func TestParseBinaryPrecedenceMultiplyBindsTighterThanAdd(t *testing.T) {
	e := mustParseExpr(t, "1 + 2 * 3")
	bin, ok := e.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
	rhs, ok := bin.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "*", rhs.Op)
}

func TestParseBinaryPrecedenceComparisonBindsLooserThanAdd(t *testing.T) {
	e := mustParseExpr(t, "1 + 2 < 3 * 4")
	bin, ok := e.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "<", bin.Op)
	_, leftIsAdd := bin.Left.(*ast.Binary)
	_, rightIsMul := bin.Right.(*ast.Binary)
	assert.True(t, leftIsAdd)
	assert.True(t, rightIsMul)
}

func TestParseBinaryLogicalBindsLoosestOfAll(t *testing.T) {
	e := mustParseExpr(t, "a < b && c < d")
	bin, ok := e.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "&&", bin.Op)
}

func TestParseBinaryIsLeftAssociativeInThisClimber(t *testing.T) {
	// precedence+1 for the recursive call makes left-assoc chains nest left.
	e := mustParseExpr(t, "1 - 2 - 3")
	bin, ok := e.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "-", bin.Op)
	_, leftIsBinary := bin.Left.(*ast.Binary)
	assert.True(t, leftIsBinary, "expected left-nested (1 - 2) - 3")
	_, rightIsLiteral := bin.Right.(*ast.Literal)
	assert.True(t, rightIsLiteral)
}

func TestParseUnaryMinusAndNot(t *testing.T) {
	e := mustParseExpr(t, "-x")
	u, ok := e.(*ast.Unary)
	require.True(t, ok)
	assert.Equal(t, "-", u.Op)

	e = mustParseExpr(t, "!x")
	u, ok = e.(*ast.Unary)
	require.True(t, ok)
	assert.Equal(t, "!", u.Op)
}

func TestParseMemberChain(t *testing.T) {
	e := mustParseExpr(t, "a.b.c")
	outer, ok := e.(*ast.Member)
	require.True(t, ok)
	assert.Equal(t, "c", outer.Name)
	inner, ok := outer.Target.(*ast.Member)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Name)
}

func TestParseNullableMemberAccess(t *testing.T) {
	e := mustParseExpr(t, "a?.b")
	m, ok := e.(*ast.NullableMember)
	require.True(t, ok)
	assert.Equal(t, "b", m.Name)
}

func TestParseIndexExpr(t *testing.T) {
	e := mustParseExpr(t, "xs[0]")
	ix, ok := e.(*ast.Index)
	require.True(t, ok)
	_, targetIsElement := ix.Target.(*ast.Element)
	assert.True(t, targetIsElement)
}

func TestParseIndexWithTrailingAssignProducesIndexSet(t *testing.T) {
	e := mustParseExpr(t, "xs[0] = 1")
	ixSet, ok := e.(*ast.IndexSet)
	require.True(t, ok)
	lit, ok := ixSet.Value.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, "1", lit.Raw)
}

func TestParseCallExprCollectsArgs(t *testing.T) {
	e := mustParseExpr(t, "f(1, 2, 3)")
	call, ok := e.(*ast.Call)
	require.True(t, ok)
	assert.Len(t, call.Args, 3)
}

func TestParseCastModes(t *testing.T) {
	cases := map[string]ast.CastMode{
		"x as i64":  ast.CastRegular,
		"x as! i64": ast.CastForce,
		"x as? i64": ast.CastSafe,
	}
	for src, wantMode := range cases {
		e := mustParseExpr(t, src)
		c, ok := e.(*ast.Cast)
		require.True(t, ok, src)
		assert.Equal(t, wantMode, c.Mode, src)
	}
}

func TestParseInstanceCheck(t *testing.T) {
	e := mustParseExpr(t, "x is i64")
	_, ok := e.(*ast.InstanceCheck)
	assert.True(t, ok)
}

func TestParseArrayLiteral(t *testing.T) {
	e := mustParseExpr(t, "[1, 2, 3]")
	arr, ok := e.(*ast.ArrayLiteral)
	require.True(t, ok)
	assert.Len(t, arr.Elements, 3)
}

func TestParseStringAndIntLiteralsShapeMatchesGoldenAST(t *testing.T) {
	got := mustParseExpr(t, `"hi"`)
	want := &ast.Literal{Kind: ast.StringLit, Raw: "hi"}
	if diff := cmp.Diff(want, got, cmpOpts); diff != "" {
		t.Errorf("string literal AST mismatch (-want +got):\n%s", diff)
	}

	got = mustParseExpr(t, "42")
	want2 := &ast.Literal{Kind: ast.IntLit, Raw: "42"}
	if diff := cmp.Diff(want2, got, cmpOpts); diff != "" {
		t.Errorf("int literal AST mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFileWithNamespaceAndImport(t *testing.T) {
	src := `namespace app.util;
import std.string { String }

fn add(a: i64, b: i64) -> i64 {
    return a + b;
}
`
	p := New(src, "<test>")
	f := p.ParseFile()
	require.Empty(t, p.Errors())
	assert.Equal(t, []string{"app", "util"}, f.Package)
	require.Len(t, f.Imports, 1)
	assert.Equal(t, []string{"std", "string"}, f.Imports[0].Path)
	assert.Equal(t, []string{"String"}, f.Imports[0].Symbols)

	require.Len(t, f.Decls, 1)
	fn, ok := f.Decls[0].(*ast.FunctionDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Len(t, fn.Params, 2)
}

func TestParseClassWithSupertypesAndMethods(t *testing.T) {
	src := `class Worker : Base {
    fn run() -> void {
    }
}
`
	p := New(src, "<test>")
	f := p.ParseFile()
	require.Empty(t, p.Errors())
	require.Len(t, f.Decls, 1)
	cd, ok := f.Decls[0].(*ast.ClassDecl)
	require.True(t, ok)
	assert.Equal(t, "Worker", cd.Name)
	require.Len(t, cd.Supertypes, 1)
	require.Len(t, cd.Methods, 1)
	assert.Equal(t, "run", cd.Methods[0].Name)
}

func TestParseFileSkipsUnexpectedTopLevelTokenAndContinues(t *testing.T) {
	src := `123;

fn ok() -> i64 {
    return 2;
}
`
	p := New(src, "<test>")
	f := p.ParseFile()
	assert.NotEmpty(t, p.Errors())
	var names []string
	for _, d := range f.Decls {
		if fn, ok := d.(*ast.FunctionDecl); ok {
			names = append(names, fn.Name)
		}
	}
	assert.Contains(t, names, "ok")
}

func TestParseEnumWithStringLiteralMembers(t *testing.T) {
	src := `enum Color {
    Red = "red",
    Blue = "blue",
}
`
	p := New(src, "<test>")
	f := p.ParseFile()
	require.Empty(t, p.Errors())
	require.Len(t, f.Decls, 1)
	enum, ok := f.Decls[0].(*ast.EnumDecl)
	require.True(t, ok)
	require.Len(t, enum.Members, 2)
	assert.Equal(t, "Red", enum.Members[0].Name)
	assert.Equal(t, "string", enum.Members[0].LiteralKind)
	assert.Equal(t, "red", enum.Members[0].StringValue)
	assert.Equal(t, "blue", enum.Members[1].StringValue)
}

func TestParseEnumWithIntLiteralMembersStillWorks(t *testing.T) {
	src := `enum Status {
    Ok = 0,
    Err = 1,
}
`
	p := New(src, "<test>")
	f := p.ParseFile()
	require.Empty(t, p.Errors())
	enum, ok := f.Decls[0].(*ast.EnumDecl)
	require.True(t, ok)
	require.Len(t, enum.Members, 2)
	assert.Equal(t, "int", enum.Members[0].LiteralKind)
	require.NotNil(t, enum.Members[1].Value)
	assert.Equal(t, int64(1), *enum.Members[1].Value)
}
