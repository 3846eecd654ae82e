package parserx

import (
	"github.com/typec-go/tcheck/internal/ast"
	"github.com/typec-go/tcheck/internal/token"
	"github.com/typec-go/tcheck/internal/types"
)

// precedence levels, lowest to highest, for the binary-operator
// precedence-climbing loop.
var precedence = map[token.Kind]int{
	token.OR: 1, token.AND: 2,
	token.PIPE: 3, token.CARET: 4, token.AMP: 5,
	token.EQ: 6, token.NEQ: 6,
	token.LT: 7, token.GT: 7, token.LTE: 7, token.GTE: 7,
	token.PLUS: 8, token.MINUS: 8,
	token.STAR: 9, token.SLASH: 9, token.PERCENT: 9,
}

var opText = map[token.Kind]string{
	token.OR: "||", token.AND: "&&", token.PIPE: "|", token.CARET: "^", token.AMP: "&",
	token.EQ: "==", token.NEQ: "!=", token.LT: "<", token.GT: ">", token.LTE: "<=", token.GTE: ">=",
	token.PLUS: "+", token.MINUS: "-", token.STAR: "*", token.SLASH: "/", token.PERCENT: "%",
}

// parseExpr parses a full expression at the lowest precedence. A trailing
// `= value` is handled elsewhere: parsePostfix builds IndexSet after `]`,
// and the expression-statement parser builds plain assignments.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseBinary(1)
}

func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnary()
	for {
		prec, isOp := precedence[p.cur().Kind]
		if !isOp || prec < minPrec {
			break
		}
		opKind := p.cur().Kind
		pos := p.advance().Pos
		right := p.parseBinary(prec + 1)
		left = &ast.Binary{ExprBase: ast.ExprBase{Pos: pos}, Op: opText[opKind], Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur().Kind {
	case token.MINUS:
		pos := p.advance().Pos
		return &ast.Unary{ExprBase: ast.ExprBase{Pos: pos}, Op: "-", Operand: p.parseUnary()}
	case token.NOT, token.BANG:
		pos := p.advance().Pos
		return &ast.Unary{ExprBase: ast.ExprBase{Pos: pos}, Op: "!", Operand: p.parseUnary()}
	}
	return p.parsePostfix(p.parsePrimary())
}

// parsePostfix handles member/index/call/cast/is chains, all of which
// bind tighter than any binary operator.
func (p *Parser) parsePostfix(expr ast.Expr) ast.Expr {
	for {
		switch p.cur().Kind {
		case token.DOT:
			pos := p.advance().Pos
			name := p.expect(token.IDENT, "member name").Literal
			expr = &ast.Member{ExprBase: ast.ExprBase{Pos: pos}, Target: expr, Name: name}

		case token.QUESTION_DOT:
			pos := p.advance().Pos
			name := p.expect(token.IDENT, "member name").Literal
			expr = &ast.NullableMember{ExprBase: ast.ExprBase{Pos: pos}, Target: expr, Name: name}

		case token.LBRACKET:
			pos := p.advance().Pos
			idx := p.parseExpr()
			p.expect(token.RBRACKET, "]")
			if p.at(token.ASSIGN) {
				p.advance()
				value := p.parseExpr()
				expr = &ast.IndexSet{ExprBase: ast.ExprBase{Pos: pos}, Target: expr, Idx: idx, Value: value}
			} else {
				expr = &ast.Index{ExprBase: ast.ExprBase{Pos: pos}, Target: expr, Idx: idx}
			}

		case token.LPAREN:
			pos := p.advance().Pos
			var args []ast.Expr
			for !p.at(token.RPAREN) && !p.at(token.EOF) {
				args = append(args, p.parseExpr())
				if p.at(token.COMMA) {
					p.advance()
				}
			}
			p.expect(token.RPAREN, ")")
			expr = &ast.Call{ExprBase: ast.ExprBase{Pos: pos}, Callee: expr, Args: args}

		case token.AS:
			pos := p.advance().Pos
			expr = &ast.Cast{ExprBase: ast.ExprBase{Pos: pos}, Mode: ast.CastRegular, Target: expr, Type: p.parseTypeExpr()}
		case token.AS_BANG:
			pos := p.advance().Pos
			expr = &ast.Cast{ExprBase: ast.ExprBase{Pos: pos}, Mode: ast.CastForce, Target: expr, Type: p.parseTypeExpr()}
		case token.AS_QUESTION:
			pos := p.advance().Pos
			expr = &ast.Cast{ExprBase: ast.ExprBase{Pos: pos}, Mode: ast.CastSafe, Target: expr, Type: p.parseTypeExpr()}

		case token.IS:
			pos := p.advance().Pos
			expr = &ast.InstanceCheck{ExprBase: ast.ExprBase{Pos: pos}, Target: expr, Type: p.parseTypeExpr()}

		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case token.INT_LITERAL, token.HEX_INT_LITERAL, token.OCT_INT_LITERAL, token.BINARY_INT_LITERAL:
		p.advance()
		return &ast.Literal{ExprBase: ast.ExprBase{Pos: tok.Pos}, Kind: ast.IntLit, Raw: tok.Literal}
	case token.FLOAT_LITERAL, token.DOUBLE_LITERAL:
		p.advance()
		return &ast.Literal{ExprBase: ast.ExprBase{Pos: tok.Pos}, Kind: ast.FloatLit, Raw: tok.Literal}
	case token.TRUE:
		p.advance()
		return &ast.Literal{ExprBase: ast.ExprBase{Pos: tok.Pos}, Kind: ast.BoolLit, Bool: true}
	case token.FALSE:
		p.advance()
		return &ast.Literal{ExprBase: ast.ExprBase{Pos: tok.Pos}, Kind: ast.BoolLit, Bool: false}
	case token.NULL:
		p.advance()
		return &ast.Literal{ExprBase: ast.ExprBase{Pos: tok.Pos}, Kind: ast.NullLit}
	case token.STRING_LITERAL:
		p.advance()
		return &ast.Literal{ExprBase: ast.ExprBase{Pos: tok.Pos}, Kind: ast.StringLit, Raw: tok.Literal}
	case token.BINARY_STRING_LITERAL:
		p.advance()
		return &ast.Literal{ExprBase: ast.ExprBase{Pos: tok.Pos}, Kind: ast.BinaryStr, Raw: tok.Literal}
	case token.CHAR_LITERAL:
		p.advance()
		return &ast.Literal{ExprBase: ast.ExprBase{Pos: tok.Pos}, Kind: ast.CharLit, Raw: tok.Literal}
	case token.THIS:
		p.advance()
		return &ast.Element{ExprBase: ast.ExprBase{Pos: tok.Pos}, Name: "this"}
	case token.IDENT:
		return p.parseIdentOrLambda()
	case token.LPAREN:
		return p.parseParenOrLambda()
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseStructLiteral()
	case token.NEW:
		return p.parseNew()
	case token.SPAWN:
		return p.parseSpawn()
	case token.MATCH:
		return p.parseMatchExpr()
	case token.LET:
		return p.parseLetIn()
	}
	p.errorf("unexpected token %s in expression", tok.String())
	p.advance()
	return &ast.Literal{ExprBase: ast.ExprBase{Pos: tok.Pos}, Kind: ast.NullLit}
}

func (p *Parser) parseIdentOrLambda() ast.Expr {
	// A lambda is distinguished from a plain identifier/call by a `(` ...
	// `)` `->`/`=>` lookahead, which this entry point does not attempt to
	// backtrack for; bare single-identifier lambdas (`x => x + 1`) are
	// detected by a one-token lookahead instead.
	if p.peek().Kind == token.FATARROW {
		tok := p.advance()
		p.advance() // =>
		param := ast.LambdaParam{Name: tok.Literal}
		var body ast.Node
		if p.at(token.LBRACE) {
			body = p.parseBlock()
		} else {
			body = p.parseExpr()
		}
		return &ast.Lambda{ExprBase: ast.ExprBase{Pos: tok.Pos}, Params: []ast.LambdaParam{param}, Body: body}
	}
	tok := p.advance()
	el := &ast.Element{ExprBase: ast.ExprBase{Pos: tok.Pos}, Name: tok.Literal}
	if p.at(token.LT) && isTypeArgStart(p) {
		save := p.pos
		p.advance()
		var args []types.Type
		ok := true
		for !p.at(token.GT) {
			if p.at(token.EOF) || p.at(token.SEMICOLON) {
				ok = false
				break
			}
			args = append(args, p.parseTypeExpr())
			if p.at(token.COMMA) {
				p.advance()
			}
		}
		if ok && p.at(token.GT) {
			p.advance()
			el.TypeArgs = args
		} else {
			p.pos = save
		}
	}
	return el
}

// isTypeArgStart is a light heuristic: `name<` starts a type-argument list
// only when followed by something that can start a type.
func isTypeArgStart(p *Parser) bool {
	switch p.peek().Kind {
	case token.IDENT, token.I8, token.I16, token.I32, token.I64, token.U8, token.U16, token.U32, token.U64, token.F32, token.F64:
		return true
	}
	return false
}

// parseParenOrLambda disambiguates `(a: T, b: U) -> V { ... }` /
// `(a, b) => expr` lambdas from a plain parenthesized expression by
// scanning ahead for `)` followed by `->` or `=>`.
func (p *Parser) parseParenOrLambda() ast.Expr {
	if p.looksLikeLambdaParams() {
		return p.parseLambda()
	}
	pos := p.advance().Pos // (
	inner := p.parseExpr()
	p.expect(token.RPAREN, ")")
	_ = pos
	return inner
}

func (p *Parser) looksLikeLambdaParams() bool {
	depth := 0
	for i := p.pos; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				next := token.EOF
				if i+1 < len(p.toks) {
					next = p.toks[i+1].Kind
				}
				return next == token.ARROW || next == token.FATARROW
			}
		case token.SEMICOLON, token.LBRACE, token.EOF:
			if depth <= 1 {
				return false
			}
		}
	}
	return false
}

func (p *Parser) parseLambda() ast.Expr {
	pos := p.cur().Pos
	params := p.parseParamList()
	lambdaParams := make([]ast.LambdaParam, len(params))
	for i, prm := range params {
		lambdaParams[i] = ast.LambdaParam{Name: prm.Name, Type: prm.Type, Mutable: prm.Mutable}
	}
	var ret types.Type
	if p.at(token.ARROW) {
		p.advance()
		ret = p.parseTypeExpr()
	}
	var body ast.Node
	if p.at(token.FATARROW) {
		p.advance()
		body = p.parseExpr()
	} else {
		p.expect(token.ARROW, "-> or =>")
		body = p.parseBlock()
	}
	return &ast.Lambda{ExprBase: ast.ExprBase{Pos: pos}, Params: lambdaParams, ReturnHint: ret, Body: body}
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	pos := p.advance().Pos // [
	lit := &ast.ArrayLiteral{ExprBase: ast.ExprBase{Pos: pos}}
	for !p.at(token.RBRACKET) && !p.at(token.EOF) {
		lit.Elements = append(lit.Elements, p.parseExpr())
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACKET, "]")
	return lit
}

func (p *Parser) parseStructLiteral() ast.Expr {
	pos := p.advance().Pos // {
	lit := &ast.StructLiteral{ExprBase: ast.ExprBase{Pos: pos}}
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		name := p.expect(token.IDENT, "field name").Literal
		p.expect(token.COLON, ":")
		lit.Fields = append(lit.Fields, ast.StructFieldInit{Name: name, Value: p.parseExpr()})
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACE, "}")
	return lit
}

func (p *Parser) parseNew() ast.Expr {
	pos := p.advance().Pos // new
	typ := p.parseTypeExpr()
	var args []ast.Expr
	if p.at(token.LPAREN) {
		p.advance()
		for !p.at(token.RPAREN) && !p.at(token.EOF) {
			args = append(args, p.parseExpr())
			if p.at(token.COMMA) {
				p.advance()
			}
		}
		p.expect(token.RPAREN, ")")
	}
	return &ast.New{ExprBase: ast.ExprBase{Pos: pos}, Type: typ, Args: args}
}

func (p *Parser) parseSpawn() ast.Expr {
	pos := p.advance().Pos // spawn
	typ := p.parseTypeExpr()
	var args []ast.Expr
	if p.at(token.LPAREN) {
		p.advance()
		for !p.at(token.RPAREN) && !p.at(token.EOF) {
			args = append(args, p.parseExpr())
			if p.at(token.COMMA) {
				p.advance()
			}
		}
		p.expect(token.RPAREN, ")")
	}
	return &ast.Spawn{ExprBase: ast.ExprBase{Pos: pos}, Type: typ, Args: args}
}

func (p *Parser) parseMatchExpr() ast.Expr {
	pos := p.advance().Pos // match
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
		var body ast.Node
		if p.at(token.LBRACE) {
			body = p.parseBlock()
		} else {
			body = p.parseExpr()
		}
		arms = append(arms, &ast.MatchArm{Pattern: pat, Guard: guard, Body: body})
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACE, "}")
	return &ast.MatchExpr{ExprBase: ast.ExprBase{Pos: pos}, Scrutinee: scrutinee, Arms: arms}
}

func (p *Parser) parseLetIn() ast.Expr {
	pos := p.advance().Pos // let
	var decls []ast.LetDeclarator
	for {
		name := p.expect(token.IDENT, "binding name").Literal
		var typ types.Type
		if p.at(token.COLON) {
			p.advance()
			typ = p.parseTypeExpr()
		}
		p.expect(token.ASSIGN, "=")
		init := p.parseExpr()
		decls = append(decls, ast.LetDeclarator{Name: name, Init: init, Type: typ})
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.IN, "in")
	body := p.parseExpr()
	return &ast.LetIn{ExprBase: ast.ExprBase{Pos: pos}, Declarators: decls, Body: body}
}

// parsePattern parses one match-arm pattern (spec.md §4.6).
func (p *Parser) parsePattern() ast.Pattern {
	pos := p.cur().Pos
	switch p.cur().Kind {
	case token.WILDCARD:
		p.advance()
		return &ast.WildcardPattern{PatternBase: ast.PatternBase{Pos: pos}}

	case token.INT_LITERAL, token.FLOAT_LITERAL, token.DOUBLE_LITERAL, token.STRING_LITERAL,
		token.TRUE, token.FALSE, token.NULL, token.MINUS:
		lit := p.parseUnary()
		asLit, ok := lit.(*ast.Literal)
		if !ok {
			if u, isUnary := lit.(*ast.Unary); isUnary {
				if inner, isLit := u.Operand.(*ast.Literal); isLit {
					inner.Raw = "-" + inner.Raw
					asLit = inner
				}
			}
		}
		return &ast.LiteralPattern{PatternBase: ast.PatternBase{Pos: pos}, Value: asLit}

	case token.LBRACKET:
		return p.parseArrayPattern()

	case token.LBRACE:
		return p.parseStructPattern()

	case token.IDENT:
		return p.parseIdentOrDatatypePattern()
	}
	p.errorf("unexpected token %s in pattern", p.cur().String())
	p.advance()
	return &ast.WildcardPattern{PatternBase: ast.PatternBase{Pos: pos}}
}

func (p *Parser) parseArrayPattern() ast.Pattern {
	pos := p.advance().Pos // [
	pat := &ast.ArrayPattern{PatternBase: ast.PatternBase{Pos: pos}}
	for !p.at(token.RBRACKET) && !p.at(token.EOF) {
		if p.at(token.DOTDOTDOT) {
			p.advance()
			pat.HasRest = true
			if p.at(token.IDENT) {
				pat.Rest = p.advance().Literal
			}
		} else {
			pat.Elements = append(pat.Elements, p.parsePattern())
		}
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACKET, "]")
	return pat
}

func (p *Parser) parseStructPattern() ast.Pattern {
	pos := p.advance().Pos // {
	pat := &ast.StructPattern{PatternBase: ast.PatternBase{Pos: pos}}
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		if p.at(token.DOTDOTDOT) {
			p.advance()
			pat.HasRest = true
			if p.at(token.IDENT) {
				pat.Rest = p.advance().Literal
			}
		} else {
			name := p.expect(token.IDENT, "field name").Literal
			var sub ast.Pattern
			if p.at(token.COLON) {
				p.advance()
				sub = p.parsePattern()
			} else {
				sub = &ast.VariablePattern{PatternBase: ast.PatternBase{Pos: p.cur().Pos}, Name: name}
			}
			pat.Fields = append(pat.Fields, ast.StructPatternField{Name: name, Pattern: sub})
		}
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACE, "}")
	return pat
}

// parseIdentOrDatatypePattern distinguishes a binding pattern (`x`, `const
// x`) from a datatype pattern (`Type(args...)`, `Type.Case(args...)`) by
// a one/two-token lookahead.
func (p *Parser) parseIdentOrDatatypePattern() ast.Pattern {
	pos := p.cur().Pos
	name := p.advance().Literal
	if p.at(token.DOT) {
		p.advance()
		name = name + "." + p.expect(token.IDENT, "constructor name").Literal
	}
	if p.at(token.LPAREN) {
		p.advance()
		pat := &ast.DatatypePattern{PatternBase: ast.PatternBase{Pos: pos}, TypeName: name}
		for !p.at(token.RPAREN) && !p.at(token.EOF) {
			pat.Args = append(pat.Args, p.parsePattern())
			if p.at(token.COMMA) {
				p.advance()
			}
		}
		p.expect(token.RPAREN, ")")
		return pat
	}
	return &ast.VariablePattern{PatternBase: ast.PatternBase{Pos: pos}, Name: name}
}
