// Package parserx is a recursive-descent, precedence-climbing parser
// building the internal/ast tree the checker consumes.
//
// Grounded on the teacher's internal/parser/parser.go (Pratt expression
// parsing with a prefix/infix table keyed by token.Kind, one parseX method
// per declaration/statement kind, panic-driven error recovery caught at
// the statement/declaration boundary and converted into a diag.Report).
package parserx

import (
	"fmt"

	"github.com/typec-go/tcheck/internal/ast"
	"github.com/typec-go/tcheck/internal/lexer"
	"github.com/typec-go/tcheck/internal/token"
	"github.com/typec-go/tcheck/internal/types"
)

// Parser consumes a pre-scanned token slice for one file.
type Parser struct {
	file   string
	toks   []token.Token
	pos    int
	errors []error
}

// New creates a Parser for src, attributing positions to file.
func New(src, file string) *Parser {
	return &Parser{file: file, toks: lexer.All(src, file)}
}

// Errors returns every parse error accumulated via recovery.
func (p *Parser) Errors() []error { return p.errors }

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}
func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }
func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}
func (p *Parser) expect(k token.Kind, what string) token.Token {
	if !p.at(k) {
		p.errorf("expected %s, got %s", what, p.cur().String())
		return p.cur()
	}
	return p.advance()
}
func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Errorf("%s: %s", p.cur().Pos.String(), fmt.Sprintf(format, args...)))
}

// synchronize skips tokens until a likely statement/declaration boundary,
// used after a parse error so one bad construct doesn't abort the whole
// file (spec.md §7: checking continues where possible).
func (p *Parser) synchronize() {
	for !p.at(token.EOF) {
		if p.at(token.SEMICOLON) {
			p.advance()
			return
		}
		switch p.cur().Kind {
		case token.CLASS, token.FN, token.INTERFACE, token.ENUM, token.VARIANT,
			token.LET, token.CONST, token.MUT, token.IF, token.WHILE, token.FOR,
			token.RETURN, token.RBRACE:
			return
		}
		p.advance()
	}
}

// ParseFile parses a complete compilation unit: an optional `namespace`
// declaration, zero or more imports, then top-level declarations.
func (p *Parser) ParseFile() *ast.File {
	f := &ast.File{Path: p.file}
	if p.at(token.NAMESPACE) {
		p.advance()
		f.Package = p.parseDottedPath()
		if p.at(token.SEMICOLON) {
			p.advance()
		}
	}
	for p.at(token.IMPORT) {
		f.Imports = append(f.Imports, p.parseImport())
	}
	for !p.at(token.EOF) {
		if d := p.parseDecl(); d != nil {
			f.Decls = append(f.Decls, d)
		}
	}
	return f
}

// ParseExpr parses a single standalone expression, for callers (e.g. the
// `repl` command) that want to check one expression at a time rather than
// a whole compilation unit. Returns nil if parsing failed; inspect
// Errors() for why.
func (p *Parser) ParseExpr() (expr ast.Expr) {
	defer func() {
		if r := recover(); r != nil {
			p.errorf("%v", r)
			expr = nil
		}
	}()
	return p.parseExpr()
}

func (p *Parser) parseDottedPath() []string {
	parts := []string{p.expect(token.IDENT, "identifier").Literal}
	for p.at(token.DOT) {
		p.advance()
		parts = append(parts, p.expect(token.IDENT, "identifier").Literal)
	}
	return parts
}

func (p *Parser) parseImport() *ast.ImportDecl {
	pos := p.cur().Pos
	p.advance() // import
	path := p.parseDottedPath()
	imp := &ast.ImportDecl{DeclBase: ast.DeclBase{Pos: pos}, Path: path}
	if p.at(token.LBRACE) {
		p.advance()
		for !p.at(token.RBRACE) && !p.at(token.EOF) {
			imp.Symbols = append(imp.Symbols, p.expect(token.IDENT, "identifier").Literal)
			if p.at(token.COMMA) {
				p.advance()
			}
		}
		p.expect(token.RBRACE, "}")
	}
	if p.at(token.SEMICOLON) {
		p.advance()
	}
	return imp
}

// parseDecl dispatches on the leading keyword of a top-level declaration,
// recovering to the next boundary on a parse error.
func (p *Parser) parseDecl() (decl ast.Decl) {
	defer func() {
		if r := recover(); r != nil {
			p.errorf("%v", r)
			p.synchronize()
			decl = nil
		}
	}()

	doc := p.cur().Doc
	switch p.cur().Kind {
	case token.CLASS:
		return p.parseClass(doc)
	case token.INTERFACE:
		return p.parseInterface(doc)
	case token.ENUM:
		return p.parseEnum(doc)
	case token.VARIANT:
		return p.parseVariant(doc)
	case token.FN, token.CFN, token.COROUTINE:
		return p.parseFunction(doc, false)
	case token.TYPE:
		return p.parseTypeAlias(doc)
	case token.IMPL:
		return p.parseFFI(doc)
	case token.NAMESPACE:
		p.advance()
		p.parseDottedPath()
		if p.at(token.SEMICOLON) {
			p.advance()
		}
		return nil
	default:
		p.errorf("unexpected token %s at top level", p.cur().String())
		p.advance()
		return nil
	}
}

func (p *Parser) parseGenerics() []*types.Generic {
	if !p.at(token.LT) {
		return nil
	}
	p.advance()
	var gens []*types.Generic
	for !p.at(token.GT) && !p.at(token.EOF) {
		name := p.expect(token.IDENT, "generic parameter").Literal
		g := &types.Generic{Name: name}
		if p.at(token.COLON) {
			p.advance()
			g.Constraint = p.parseTypeExpr()
		}
		gens = append(gens, g)
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.GT, ">")
	return gens
}

// parseTypeExpr parses a type annotation into a types.Type tree, leaving
// user-declared names as unresolved *types.Reference for the checker's
// resolve pass (spec.md §4.1).
func (p *Parser) parseTypeExpr() types.Type {
	var base types.Type
	switch p.cur().Kind {
	case token.I8:
		p.advance()
		base = types.I8
	case token.I16:
		p.advance()
		base = types.I16
	case token.I32:
		p.advance()
		base = types.I32
	case token.I64:
		p.advance()
		base = types.I64
	case token.U8:
		p.advance()
		base = types.U8
	case token.U16:
		p.advance()
		base = types.U16
	case token.U32:
		p.advance()
		base = types.U32
	case token.U64:
		p.advance()
		base = types.U64
	case token.F32:
		p.advance()
		base = types.F32
	case token.F64:
		p.advance()
		base = types.F64
	case token.IDENT:
		if p.cur().Literal == "void" {
			p.advance()
			base = types.TheVoid
		} else if p.cur().Literal == "Array" {
			p.advance()
			p.expect(token.LT, "<")
			elem := p.parseTypeExpr()
			p.expect(token.GT, ">")
			base = &types.ArrayType{Elem: elem}
		} else {
			path := p.parseDottedPath()
			ref := &types.Reference{Name: path[len(path)-1], PackagePath: path[:len(path)-1]}
			if p.at(token.LT) {
				p.advance()
				for !p.at(token.GT) && !p.at(token.EOF) {
					ref.TypeArgs = append(ref.TypeArgs, p.parseTypeExpr())
					if p.at(token.COMMA) {
						p.advance()
					}
				}
				p.expect(token.GT, ">")
			}
			base = ref
		}
	case token.LBRACE:
		base = p.parseStructTypeExpr()
	case token.LPAREN:
		base = p.parseFunctionTypeExpr()
	default:
		p.errorf("expected a type, got %s", p.cur().String())
		p.advance()
		return types.TheUnset
	}

	for {
		if p.at(token.QUESTION) && types.AllowedNullable(base) {
			p.advance()
			base = &types.Nullable{Inner: base}
			continue
		}
		if p.at(token.PIPE) {
			p.advance()
			base = &types.UnionType{A: base, B: p.parseTypeExpr()}
			continue
		}
		if p.at(token.AMP) {
			p.advance()
			base = &types.JoinType{A: base, B: p.parseTypeExpr()}
			continue
		}
		break
	}
	return base
}

func (p *Parser) parseStructTypeExpr() types.Type {
	p.expect(token.LBRACE, "{")
	var fields []types.Field
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		name := p.expect(token.IDENT, "field name").Literal
		p.expect(token.COLON, ":")
		fields = append(fields, types.Field{Name: name, Type: p.parseTypeExpr()})
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACE, "}")
	return &types.StructType{Fields: fields}
}

func (p *Parser) parseFunctionTypeExpr() types.Type {
	p.expect(token.LPAREN, "(")
	var params []types.Param
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		params = append(params, types.Param{Type: p.parseTypeExpr()})
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RPAREN, ")")
	p.expect(token.ARROW, "->")
	return &types.FunctionType{Parameters: params, Return: p.parseTypeExpr()}
}

func (p *Parser) parseParamList() []ast.ParamDecl {
	p.expect(token.LPAREN, "(")
	var params []ast.ParamDecl
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		mutable := false
		if p.at(token.MUT) {
			mutable = true
			p.advance()
		}
		name := p.expect(token.IDENT, "parameter name").Literal
		p.expect(token.COLON, ":")
		typ := p.parseTypeExpr()
		params = append(params, ast.ParamDecl{Name: name, Type: typ, Mutable: mutable})
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RPAREN, ")")
	return params
}

func (p *Parser) parseFunction(doc *token.Doc, static bool) *ast.FunctionDecl {
	pos := p.cur().Pos
	override := false
	if p.at(token.STATIC) {
		static = true
		p.advance()
	}
	if p.at(token.OVERRIDE) {
		override = true
		p.advance()
	}
	p.advance() // fn/cfn/coroutine
	name := p.expect(token.IDENT, "function name").Literal
	generics := p.parseGenerics()
	params := p.parseParamList()
	var ret types.Type
	if p.at(token.ARROW) {
		p.advance()
		ret = p.parseTypeExpr()
	}
	decl := &ast.FunctionDecl{
		DeclBase: ast.DeclBase{Pos: pos, Doc: doc}, Name: name, Generics: generics,
		Params: params, ReturnType: ret, Static: static, Override: override,
	}
	if p.at(token.FATARROW) {
		p.advance()
		decl.Body = p.parseExpr()
		if p.at(token.SEMICOLON) {
			p.advance()
		}
	} else if p.at(token.LBRACE) {
		decl.Body = p.parseBlock()
	} else if p.at(token.SEMICOLON) {
		p.advance() // prototype only (interface/FFI method)
	}
	return decl
}

func (p *Parser) parseClass(doc *token.Doc) *ast.ClassDecl {
	pos := p.cur().Pos
	p.advance() // class
	name := p.expect(token.IDENT, "class name").Literal
	generics := p.parseGenerics()
	decl := &ast.ClassDecl{DeclBase: ast.DeclBase{Pos: pos, Doc: doc}, Name: name, Generics: generics}
	if p.at(token.COLON) {
		p.advance()
		decl.Supertypes = append(decl.Supertypes, p.parseTypeExpr())
		for p.at(token.COMMA) {
			p.advance()
			decl.Supertypes = append(decl.Supertypes, p.parseTypeExpr())
		}
	}
	p.expect(token.LBRACE, "{")
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		memberDoc := p.cur().Doc
		if p.at(token.FN) || p.at(token.STATIC) || p.at(token.OVERRIDE) || p.at(token.CFN) || p.at(token.COROUTINE) {
			decl.Methods = append(decl.Methods, p.parseFunction(memberDoc, false))
			continue
		}
		static := false
		if p.at(token.STATIC) {
			static = true
			p.advance()
		}
		attrName := p.expect(token.IDENT, "attribute name").Literal
		p.expect(token.COLON, ":")
		attrType := p.parseTypeExpr()
		attr := ast.AttributeDecl{Name: attrName, Type: attrType, Static: static}
		if p.at(token.ASSIGN) {
			p.advance()
			attr.Init = p.parseExpr()
		}
		decl.Attributes = append(decl.Attributes, attr)
		if p.at(token.SEMICOLON) {
			p.advance()
		}
	}
	p.expect(token.RBRACE, "}")
	return decl
}

func (p *Parser) parseInterface(doc *token.Doc) *ast.InterfaceDecl {
	pos := p.cur().Pos
	p.advance() // interface
	name := p.expect(token.IDENT, "interface name").Literal
	generics := p.parseGenerics()
	decl := &ast.InterfaceDecl{DeclBase: ast.DeclBase{Pos: pos, Doc: doc}, Name: name, Generics: generics}
	if p.at(token.COLON) {
		p.advance()
		decl.Supertypes = append(decl.Supertypes, p.parseTypeExpr())
		for p.at(token.COMMA) {
			p.advance()
			decl.Supertypes = append(decl.Supertypes, p.parseTypeExpr())
		}
	}
	p.expect(token.LBRACE, "{")
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		fn := p.parseFunction(p.cur().Doc, false)
		params := make([]types.Param, len(fn.Params))
		for i, prm := range fn.Params {
			params[i] = types.Param{Name: prm.Name, Type: prm.Type, Mutable: prm.Mutable}
		}
		decl.Methods = append(decl.Methods, types.MethodSig{Name: fn.Name, Params: params, Return: fn.ReturnType})
	}
	p.expect(token.RBRACE, "}")
	return decl
}

func (p *Parser) parseEnum(doc *token.Doc) *ast.EnumDecl {
	pos := p.cur().Pos
	p.advance() // enum
	name := p.expect(token.IDENT, "enum name").Literal
	decl := &ast.EnumDecl{DeclBase: ast.DeclBase{Pos: pos, Doc: doc}, Name: name, TargetKind: "unset"}
	if p.at(token.COLON) {
		p.advance()
		decl.TargetKind = p.parseTypeExpr().String()
	}
	p.expect(token.LBRACE, "{")
	var next int64
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		mname := p.expect(token.IDENT, "enum member").Literal
		m := types.EnumMember{Name: mname}
		if p.at(token.ASSIGN) {
			p.advance()
			if p.at(token.STRING_LITERAL) {
				m.StringValue = p.cur().Literal
				m.LiteralKind = "string"
				p.advance()
			} else {
				lit := p.expect(token.INT_LITERAL, "integer literal").Literal
				var v int64
				fmt.Sscanf(lit, "%d", &v)
				m.Value, m.LiteralKind = &v, "int"
				next = v + 1
			}
		} else {
			v := next
			m.Value, m.LiteralKind = &v, "int"
			next++
		}
		decl.Members = append(decl.Members, m)
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACE, "}")
	return decl
}

func (p *Parser) parseVariant(doc *token.Doc) *ast.VariantDecl {
	pos := p.cur().Pos
	p.advance() // variant
	name := p.expect(token.IDENT, "variant name").Literal
	generics := p.parseGenerics()
	decl := &ast.VariantDecl{DeclBase: ast.DeclBase{Pos: pos, Doc: doc}, Name: name, Generics: generics}
	p.expect(token.LBRACE, "{")
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		cname := p.expect(token.IDENT, "constructor name").Literal
		ctor := ast.VariantCtorDecl{Name: cname}
		if p.at(token.LPAREN) {
			ctor.Parameters = p.parseParamList()
		}
		decl.Constructors = append(decl.Constructors, ctor)
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACE, "}")
	return decl
}

func (p *Parser) parseTypeAlias(doc *token.Doc) *ast.TypeAliasDecl {
	pos := p.cur().Pos
	p.advance() // type
	name := p.expect(token.IDENT, "type name").Literal
	generics := p.parseGenerics()
	p.expect(token.ASSIGN, "=")
	typ := p.parseTypeExpr()
	if p.at(token.SEMICOLON) {
		p.advance()
	}
	return &ast.TypeAliasDecl{DeclBase: ast.DeclBase{Pos: pos, Doc: doc}, Name: name, Generics: generics, Type: typ}
}

func (p *Parser) parseFFI(doc *token.Doc) *ast.FFIDecl {
	pos := p.cur().Pos
	p.advance() // impl
	name := p.expect(token.IDENT, "FFI name").Literal
	p.expect(token.FROM, "from")
	path := p.expect(token.STRING_LITERAL, "source path").Literal
	decl := &ast.FFIDecl{DeclBase: ast.DeclBase{Pos: pos, Doc: doc}, Name: name, SourcePath: path}
	p.expect(token.LBRACE, "{")
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		fn := p.parseFunction(p.cur().Doc, false)
		params := make([]types.Param, len(fn.Params))
		for i, prm := range fn.Params {
			params[i] = types.Param{Name: prm.Name, Type: prm.Type, Mutable: prm.Mutable}
		}
		decl.MethodSigs = append(decl.MethodSigs, types.MethodSig{Name: fn.Name, Params: params, Return: fn.ReturnType})
	}
	p.expect(token.RBRACE, "}")
	return decl
}
