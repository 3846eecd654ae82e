// Package transform provides AST-to-AST desugaring utilities for foreach
// loops and match-used-as-expression (spec.md §4.4): lowered forms usable
// by a backend that has no native foreach/match-expression construct.
//
// The checker (internal/checker) does not route through this package — it
// assigns foreach/match semantics directly during inference, since it
// needs the scrutinee's resolved type rather than a generic lowering.
// transform exists for consumers downstream of checking (e.g. a bytecode
// emitter built on internal/instr) that want a reduced instruction set to
// walk, grounded on the teacher's internal/transform/desugar.go (a
// tree-rewriting pass run after type checking, before lowering to
// bytecode).
package transform

import "github.com/typec-go/tcheck/internal/ast"

var tempCounter int

func nextTemp(prefix string) string {
	tempCounter++
	return prefix + "$" + itoa(tempCounter)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := [20]byte{}
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits[i:])
}

// DesugarForeach rewrites `foreach i, v in arr { body }` over an array
// target into a counted for-loop:
//
//	for i = 0; i < arr.length; i = i + 1 { v = arr[i]; body }
func DesugarForeach(f *ast.ForeachStmt) *ast.ForStmt {
	idxName := f.IndexName
	if idxName == "" {
		idxName = nextTemp("$i")
	}
	idx := &ast.Element{Name: idxName}
	lengthCall := &ast.Member{Target: f.Iterable, Name: "length"}
	init := &ast.VarDeclStmt{Declarators: []ast.VarDeclarator{{Name: idxName, Init: &ast.Literal{Kind: ast.IntLit, Raw: "0"}}}}
	cond := &ast.Binary{Op: "<", Left: idx, Right: lengthCall}
	increment := &ast.Binary{Op: "+", Left: idx, Right: &ast.Literal{Kind: ast.IntLit, Raw: "1"}}
	post := &ast.ExprStmt{Expr: &ast.Binary{Op: "=", Left: idx, Right: increment}}

	valueDecl := &ast.VarDeclStmt{Declarators: []ast.VarDeclarator{{
		Name: f.ValueName,
		Init: &ast.Index{Target: f.Iterable, Idx: idx},
	}}}
	body := &ast.Block{Stmts: append([]ast.Stmt{valueDecl}, f.Body.Stmts...)}

	return &ast.ForStmt{StmtBase: f.StmtBase, Init: init, Cond: cond, Post: post, Body: body}
}

// DesugarForeachIterable rewrites foreach over an Iterable-protocol target
// into:
//
//	while it.hasNext() { v = it.next(); body }
//
// where `it` is bound once to the iterable expression to avoid
// re-evaluating it on every hasNext()/next() call.
func DesugarForeachIterable(f *ast.ForeachStmt) *ast.Block {
	itName := nextTemp("$it")
	itDecl := &ast.VarDeclStmt{Declarators: []ast.VarDeclarator{{Name: itName, Init: f.Iterable}}}
	itRef := &ast.Element{Name: itName}

	cond := &ast.Call{Callee: &ast.Member{Target: itRef, Name: "hasNext"}}
	valueDecl := &ast.VarDeclStmt{Declarators: []ast.VarDeclarator{{
		Name: f.ValueName,
		Init: &ast.Call{Callee: &ast.Member{Target: itRef, Name: "next"}},
	}}}
	body := &ast.Block{Stmts: append([]ast.Stmt{valueDecl}, f.Body.Stmts...)}
	loop := &ast.WhileStmt{StmtBase: f.StmtBase, Cond: cond, Body: body}

	return &ast.Block{Stmts: []ast.Stmt{itDecl, loop}}
}

// DesugarMatchExpr lowers a match used as an expression into a block that
// assigns its result to a synthetic variable, plus a reference to that
// variable, for backends without a native match-expression construct:
//
//	let $match = <unset>;
//	match scrutinee {
//	  pattern => { $match = <arm body>; }
//	  ...
//	}
//	// use $match in place of the original expression
func DesugarMatchExpr(m *ast.MatchExpr) (*ast.Block, *ast.Element) {
	tempName := nextTemp("$match")
	decl := &ast.VarDeclStmt{Declarators: []ast.VarDeclarator{{Name: tempName}}}

	stmt := &ast.MatchStmt{StmtBase: ast.StmtBase{Pos: m.Pos}, Scrutinee: m.Scrutinee}
	for _, arm := range m.Arms {
		bodyExpr, ok := arm.Body.(ast.Expr)
		var blockBody *ast.Block
		if ok {
			assign := &ast.ExprStmt{Expr: &ast.Binary{Op: "=", Left: &ast.Element{Name: tempName}, Right: bodyExpr}}
			blockBody = &ast.Block{Stmts: []ast.Stmt{assign}}
		} else if b, isBlock := arm.Body.(*ast.Block); isBlock {
			blockBody = b
		}
		stmt.Arms = append(stmt.Arms, &ast.MatchArm{Pattern: arm.Pattern, Guard: arm.Guard, Body: blockBody})
	}

	block := &ast.Block{Stmts: []ast.Stmt{decl, stmt}}
	return block, &ast.Element{Name: tempName}
}
