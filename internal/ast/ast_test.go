package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/typec-go/tcheck/internal/token"
)

func TestExprBasePositionAndBaseAccessors(t *testing.T) {
	lit := &Literal{ExprBase: ExprBase{Pos: token.Pos{File: "a.tc", Line: 2, Column: 4}}, Kind: IntLit, Raw: "1"}
	assert.Equal(t, "a.tc", lit.Position().File)
	assert.Same(t, &lit.ExprBase, lit.Base())
}

func TestStmtBasePositionAccessor(t *testing.T) {
	s := &BreakStmt{StmtBase: StmtBase{Pos: token.Pos{File: "b.tc", Line: 5}}}
	assert.Equal(t, 5, s.Position().Line)
}

func TestPatternBasePositionAccessor(t *testing.T) {
	p := &WildcardPattern{PatternBase: PatternBase{Pos: token.Pos{File: "c.tc", Line: 1}}}
	assert.Equal(t, "c.tc", p.Position().File)
}

func TestFilePositionUsesPathWithZeroLineColumn(t *testing.T) {
	f := &File{Path: "main.tc"}
	pos := f.Position()
	assert.Equal(t, "main.tc", pos.File)
	assert.Equal(t, 0, pos.Line)
}

func TestLiteralAndBinaryImplementExprInterface(t *testing.T) {
	var exprs []Expr
	exprs = append(exprs,
		&Literal{Kind: IntLit, Raw: "1"},
		&Element{Name: "x"},
		&Binary{Op: "+", Left: &Element{Name: "a"}, Right: &Element{Name: "b"}},
		&Call{Callee: &Element{Name: "f"}},
	)
	assert.Len(t, exprs, 4)
}

func TestBlockAndVarDeclStmtImplementStmtInterface(t *testing.T) {
	var stmts []Stmt
	stmts = append(stmts,
		&Block{},
		&VarDeclStmt{Declarators: []VarDeclarator{{Name: "x"}}},
		&ReturnStmt{},
		&IfStmt{},
	)
	assert.Len(t, stmts, 4)
}

func TestPatternKindsImplementPatternInterface(t *testing.T) {
	var pats []Pattern
	pats = append(pats,
		&WildcardPattern{},
		&VariablePattern{Name: "x"},
		&LiteralPattern{Value: &Literal{Kind: IntLit, Raw: "1"}},
		&ArrayPattern{},
		&StructPattern{},
		&DatatypePattern{TypeName: "Opt.Some"},
	)
	assert.Len(t, pats, 6)
}
