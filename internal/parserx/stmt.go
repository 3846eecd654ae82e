package parserx

import (
	"github.com/typec-go/tcheck/internal/ast"
	"github.com/typec-go/tcheck/internal/token"
	"github.com/typec-go/tcheck/internal/types"
)

func (p *Parser) parseBlock() *ast.Block {
	pos := p.expect(token.LBRACE, "{").Pos
	b := &ast.Block{StmtBase: ast.StmtBase{Pos: pos}}
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		if s := p.parseStmt(); s != nil {
			b.Stmts = append(b.Stmts, s)
		}
	}
	p.expect(token.RBRACE, "}")
	return b
}

func (p *Parser) parseStmt() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			p.errorf("%v", r)
			p.synchronize()
			stmt = nil
		}
	}()

	switch p.cur().Kind {
	case token.LBRACE:
		return p.parseBlock()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		pos := p.advance().Pos
		p.consumeSemi()
		return &ast.BreakStmt{StmtBase: ast.StmtBase{Pos: pos}}
	case token.CONTINUE:
		pos := p.advance().Pos
		p.consumeSemi()
		return &ast.ContinueStmt{StmtBase: ast.StmtBase{Pos: pos}}
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.DO:
		return p.parseDoWhile()
	case token.FOR:
		return p.parseFor()
	case token.FOREACH:
		return p.parseForeach()
	case token.MATCH:
		return p.parseMatchStmt()
	case token.LET, token.CONST, token.MUT, token.STRICT:
		return p.parseVarDecl()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) consumeSemi() {
	if p.at(token.SEMICOLON) {
		p.advance()
	}
}

func (p *Parser) parseReturn() ast.Stmt {
	pos := p.advance().Pos
	var val ast.Expr
	if !p.at(token.SEMICOLON) && !p.at(token.RBRACE) {
		val = p.parseExpr()
	}
	p.consumeSemi()
	return &ast.ReturnStmt{StmtBase: ast.StmtBase{Pos: pos}, Value: val}
}

func (p *Parser) parseIf() ast.Stmt {
	pos := p.advance().Pos
	cond := p.parseExpr()
	then := p.parseBlock()
	st := &ast.IfStmt{StmtBase: ast.StmtBase{Pos: pos}, Cond: cond, Then: then}
	if p.at(token.ELSE) {
		p.advance()
		if p.at(token.IF) {
			st.Else = p.parseIf()
		} else {
			st.Else = p.parseBlock()
		}
	}
	return st
}

func (p *Parser) parseWhile() ast.Stmt {
	pos := p.advance().Pos
	cond := p.parseExpr()
	body := p.parseBlock()
	return &ast.WhileStmt{StmtBase: ast.StmtBase{Pos: pos}, Cond: cond, Body: body}
}

func (p *Parser) parseDoWhile() ast.Stmt {
	pos := p.advance().Pos
	body := p.parseBlock()
	p.expect(token.WHILE, "while")
	cond := p.parseExpr()
	p.consumeSemi()
	return &ast.DoWhileStmt{StmtBase: ast.StmtBase{Pos: pos}, Body: body, Cond: cond}
}

func (p *Parser) parseFor() ast.Stmt {
	pos := p.advance().Pos
	p.expect(token.LPAREN, "(")
	var init ast.Stmt
	if !p.at(token.SEMICOLON) {
		init = p.parseSimpleStmt()
	}
	p.expect(token.SEMICOLON, ";")
	var cond ast.Expr
	if !p.at(token.SEMICOLON) {
		cond = p.parseExpr()
	}
	p.expect(token.SEMICOLON, ";")
	var post ast.Stmt
	if !p.at(token.RPAREN) {
		post = p.parseSimpleStmt()
	}
	p.expect(token.RPAREN, ")")
	body := p.parseBlock()
	return &ast.ForStmt{StmtBase: ast.StmtBase{Pos: pos}, Init: init, Cond: cond, Post: post, Body: body}
}

// parseSimpleStmt parses a for-loop init/post clause: a var declaration or
// a bare expression statement, without consuming a trailing semicolon
// (the caller owns clause separators).
func (p *Parser) parseSimpleStmt() ast.Stmt {
	if p.at(token.LET) || p.at(token.CONST) || p.at(token.MUT) || p.at(token.STRICT) {
		return p.parseVarDeclNoSemi()
	}
	return p.parseExprStmtNoSemi()
}

func (p *Parser) parseForeach() ast.Stmt {
	pos := p.advance().Pos
	first := p.expect(token.IDENT, "loop variable").Literal
	second := ""
	if p.at(token.COMMA) {
		p.advance()
		second = p.expect(token.IDENT, "loop variable").Literal
	}
	p.expect(token.IN, "in")
	iterable := p.parseExpr()
	body := p.parseBlock()

	idxName, valName := "", first
	if second != "" {
		idxName, valName = first, second
	}
	return &ast.ForeachStmt{StmtBase: ast.StmtBase{Pos: pos}, IndexName: idxName, ValueName: valName, Iterable: iterable, Body: body}
}

func (p *Parser) parseMatchStmt() ast.Stmt {
	pos := p.advance().Pos
	scrutinee := p.parseExpr()
	p.expect(token.LBRACE, "{")
	var arms []*ast.MatchArm
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		pat := p.parsePattern()
		var guard ast.Expr
		if p.at(token.IF) {
			p.advance()
			guard = p.parseExpr()
		}
		p.expect(token.FATARROW, "=>")
		body := p.parseBlock()
		arms = append(arms, &ast.MatchArm{Pattern: pat, Guard: guard, Body: body})
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACE, "}")
	return &ast.MatchStmt{StmtBase: ast.StmtBase{Pos: pos}, Scrutinee: scrutinee, Arms: arms}
}

func (p *Parser) parseVarDecl() ast.Stmt {
	s := p.parseVarDeclNoSemi()
	p.consumeSemi()
	return s
}

func (p *Parser) parseVarDeclNoSemi() ast.Stmt {
	pos := p.cur().Pos
	isConst, strict := false, false
	switch p.cur().Kind {
	case token.LET:
		p.advance()
	case token.CONST:
		isConst = true
		p.advance()
	case token.MUT:
		p.advance()
	case token.STRICT:
		strict = true
		p.advance()
		if p.at(token.LET) || p.at(token.CONST) || p.at(token.MUT) {
			isConst = p.at(token.CONST)
			p.advance()
		}
	}
	st := &ast.VarDeclStmt{StmtBase: ast.StmtBase{Pos: pos}}
	for {
		name := p.expect(token.IDENT, "variable name").Literal
		var typ types.Type
		if p.at(token.COLON) {
			p.advance()
			typ = p.parseTypeExpr()
		}
		var init ast.Expr
		if p.at(token.ASSIGN) {
			p.advance()
			init = p.parseExpr()
		}
		st.Declarators = append(st.Declarators, ast.VarDeclarator{Name: name, Type: typ, Init: init, Const: isConst, Strict: strict})
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return st
}

// parseExprStmt parses an expression statement, recognizing a trailing
// `= value` as a plain-identifier/member assignment (IndexSet already
// covers `target[i] = value` inside parsePostfix).
func (p *Parser) parseExprStmt() ast.Stmt {
	s := p.parseExprStmtNoSemi()
	p.consumeSemi()
	return s
}

func (p *Parser) parseExprStmtNoSemi() ast.Stmt {
	pos := p.cur().Pos
	expr := p.parseExpr()
	if p.at(token.ASSIGN) {
		p.advance()
		value := p.parseExpr()
		expr = &ast.Binary{ExprBase: ast.ExprBase{Pos: pos}, Op: "=", Left: expr, Right: value}
	}
	return &ast.ExprStmt{StmtBase: ast.StmtBase{Pos: pos}, Expr: expr}
}
