// Package ast defines the AST node set the parser produces and the checker
// annotates in place (spec.md §3, §4.3). Node kinds are a closed tagged
// interface per category (Expr/Stmt/Pattern/Decl), grounded on the
// teacher's internal/ast/ast.go shape (one struct per node kind, a small
// marker method per category), extended with the inferred_type/hint_type/
// is_constant slots spec.md §3 requires directly on the node.
package ast

import (
	"github.com/typec-go/tcheck/internal/symbols"
	"github.com/typec-go/tcheck/internal/token"
	"github.com/typec-go/tcheck/internal/types"
)

// Node is the base of every AST node: it knows where it came from.
type Node interface {
	Position() token.Pos
}

// Expr is any expression node. ExprBase supplies the inferred_type/
// hint_type/is_constant slots spec.md §3 requires.
type Expr interface {
	Node
	exprNode()
	Base() *ExprBase
}

// ExprBase is embedded by every concrete expression node.
type ExprBase struct {
	Pos          token.Pos
	InferredType types.Type // set by the checker; memoization key (spec.md §4.3 step 1)
	HintType     types.Type // set by the parent during top-down inference
	IsConstant   bool       // l-value discipline
	// OverloadState records how an Index/IndexSet node was resolved: ""
	// before checking, "builtin" after it (the checker sets no other value).
	OverloadState string
}

func (b *ExprBase) Position() token.Pos { return b.Pos }
func (b *ExprBase) Base() *ExprBase     { return b }
func (b *ExprBase) exprNode()           {}

// Stmt is any statement node.
type Stmt interface {
	Node
	stmtNode()
}

// StmtBase is embedded by every concrete statement node.
type StmtBase struct {
	Pos token.Pos
}

func (b *StmtBase) Position() token.Pos { return b.Pos }
func (b *StmtBase) stmtNode()           {}

// Pattern is any pattern node (spec.md §4.6).
type Pattern interface {
	Node
	patternNode()
}

// PatternBase is embedded by every concrete pattern node.
type PatternBase struct {
	Pos token.Pos
}

func (b *PatternBase) Position() token.Pos { return b.Pos }
func (b *PatternBase) patternNode()        {}

// Decl is any top-level or class-member declaration.
type Decl interface {
	Node
	declNode()
}

// DeclBase is embedded by every concrete declaration node.
type DeclBase struct {
	Pos token.Pos
	Doc *token.Doc
}

func (b *DeclBase) Position() token.Pos { return b.Pos }
func (b *DeclBase) declNode()           {}

// ---- Expressions ----------------------------------------------------------

// LiteralKind distinguishes the literal categories spec.md §4.3 dispatches
// on.
type LiteralKind string

const (
	IntLit     LiteralKind = "int"
	FloatLit   LiteralKind = "float"
	BoolLit    LiteralKind = "bool"
	NullLit    LiteralKind = "null"
	StringLit  LiteralKind = "string"
	BinaryStr  LiteralKind = "binary_string"
	CharLit    LiteralKind = "char"
)

// Literal is a literal expression; Raw preserves the literal's original
// textual form (needed for the least-sufficient-numeric-type rule, spec.md
// §4.3, which dispatches on sign/hex-ness/fractional-ness of the text).
type Literal struct {
	ExprBase
	Kind LiteralKind
	Raw  string
	Bool bool
}

// Element is an identifier reference.
type Element struct {
	ExprBase
	Name     string
	TypeArgs []types.Type // attached generic arguments, e.g. id<i32>
}

// Member is `a.b` field/method/static access.
type Member struct {
	ExprBase
	Target Expr
	Name   string
}

// NullableMember is `a?.b`.
type NullableMember struct {
	ExprBase
	Target Expr
	Name   string
}

// Index is `a[i]`.
type Index struct {
	ExprBase
	Target Expr
	Idx    Expr
}

// IndexSet is `a[i] = v`.
type IndexSet struct {
	ExprBase
	Target Expr
	Idx    Expr
	Value  Expr
}

// Binary is a binary operator expression.
type Binary struct {
	ExprBase
	Op    string
	Left  Expr
	Right Expr
}

// Unary is a unary operator expression.
type Unary struct {
	ExprBase
	Op      string
	Operand Expr
}

// CastMode distinguishes the three cast forms spec.md §4.3 names.
type CastMode string

const (
	CastRegular CastMode = "regular"
	CastForce   CastMode = "force" // as!
	CastSafe    CastMode = "safe"  // as?
)

// Cast is a type-cast expression.
type Cast struct {
	ExprBase
	Mode   CastMode
	Target Expr
	Type   types.Type
}

// InstanceCheck is `expr is Type`.
type InstanceCheck struct {
	ExprBase
	Target Expr
	Type   types.Type
}

// New is `new Class(args...)`.
type New struct {
	ExprBase
	Type types.Type
	Args []Expr
}

// Spawn is `spawn Process(args...)`.
type Spawn struct {
	ExprBase
	Type types.Type
	Args []Expr
}

// MatchArm is one `pattern [if guard] => body` case, shared by the
// expression and statement forms of match (spec.md §4.4, §4.6).
type MatchArm struct {
	Pattern Pattern
	Guard   Expr // optional
	Body    Node // Expr for match-expression arms, Stmt (*Block) for match-statement arms
	Lowered *LoweredArm
}

// LoweredArm is the pattern lowerer's output for one arm (spec.md §4.6):
// a pure boolean condition (nil for an always-true pattern like wildcard)
// plus assignments that must run only once the condition is known true.
type LoweredArm struct {
	Condition   Expr
	Assignments []*Assignment
}

// Assignment is one binding produced by lowering, `name = expr`. Per
// invariant P2, Target is always a fresh *Element in the arm's scope.
type Assignment struct {
	Target *Element
	Value  Expr
}

// MatchExpr is `match scrutinee { arms... }` used as an expression; it
// requires at least one arm and a trailing wildcard (spec.md §4.6).
type MatchExpr struct {
	ExprBase
	Scrutinee Expr
	Arms      []*MatchArm
}

// LambdaParam is one lambda parameter.
type LambdaParam struct {
	Name    string
	Type    types.Type // may be types.TheUnset pre-inference
	Mutable bool
}

// Lambda introduces a new function scope (spec.md §4.3).
type Lambda struct {
	ExprBase
	Params       []LambdaParam
	ReturnHint   types.Type // nil if omitted
	Body         Node       // Expr (expression-bodied) or *Block
	ReturnSites  []*ReturnStmt
}

// LetDeclarator is one `name = init` binding inside a LetIn.
type LetDeclarator struct {
	Name string
	Init Expr
	Type types.Type // declared type, if annotated
}

// LetIn is `let a = x, b = y in body`: declaration order, no forward
// references, then the body is inferred in that scope (spec.md §4.3).
type LetIn struct {
	ExprBase
	Declarators []LetDeclarator
	Body        Expr
}

// Call is a function/method invocation, with optional explicit generic
// type arguments.
type Call struct {
	ExprBase
	Callee   Expr
	TypeArgs []types.Type
	Args     []Expr
}

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	ExprBase
	Elements []Expr
}

// StructFieldInit is one `name: value` entry of a struct literal.
type StructFieldInit struct {
	Name  string
	Value Expr
}

// StructLiteral is `{ name: value, ... }`.
type StructLiteral struct {
	ExprBase
	Fields []StructFieldInit
}

// ---- Patterns ---------------------------------------------------------

// WildcardPattern is `_`.
type WildcardPattern struct{ PatternBase }

// LiteralPattern matches a literal value.
type LiteralPattern struct {
	PatternBase
	Value *Literal
}

// VariablePattern binds the scrutinee to a fresh name.
type VariablePattern struct {
	PatternBase
	Name   string
	Const  bool
	Symbol *symbols.VariablePattern // bound on first inference, never rebound
}

// ArrayPattern matches an array, optionally with a trailing `...rest`.
type ArrayPattern struct {
	PatternBase
	Elements []Pattern
	Rest     string // "" if no rest pattern
	HasRest  bool
}

// StructPatternField is one `name: pattern` entry.
type StructPatternField struct {
	Name    string
	Pattern Pattern
}

// StructPattern matches a struct, optionally with a trailing `...rest`.
type StructPattern struct {
	PatternBase
	Fields  []StructPatternField
	Rest    string
	HasRest bool
	// RestFields holds the scrutinee's field names not captured by Fields,
	// filled in by pattern.Checker.Check so Lower can build the trimmed
	// struct literal `rest` binds to, without re-deriving the field set.
	RestFields []string
}

// DatatypePattern matches `Type(args...)`: an enum member, variant
// constructor, variant-constructor instance, or class/interface check.
type DatatypePattern struct {
	PatternBase
	TypeName string // as written, e.g. "Opt.Some" or "Shape"
	Args     []Pattern
}

// ---- Statements -------------------------------------------------------

// Block is a sequence of statements introducing a new Context.
type Block struct {
	StmtBase
	Stmts []Stmt
}

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	StmtBase
	Expr Expr
}

// ReturnStmt is `return e` (e may be nil for bare `return`).
type ReturnStmt struct {
	StmtBase
	Value Expr
}

// BreakStmt is `break`.
type BreakStmt struct{ StmtBase }

// ContinueStmt is `continue`.
type ContinueStmt struct{ StmtBase }

// IfStmt is `if cond { then } else { else }`; Else may be nil, a *Block, or
// another *IfStmt (else-if chaining).
type IfStmt struct {
	StmtBase
	Cond Expr
	Then *Block
	Else Stmt
}

// WhileStmt is `while cond { body }`.
type WhileStmt struct {
	StmtBase
	Cond Expr
	Body *Block
}

// DoWhileStmt is `do { body } while cond`.
type DoWhileStmt struct {
	StmtBase
	Body *Block
	Cond Expr
}

// ForStmt is a counted `for init; cond; post { body }`.
type ForStmt struct {
	StmtBase
	Init Stmt
	Cond Expr
	Post Stmt
	Body *Block
}

// ForeachStmt is `foreach i, v in expr { body }`, desugared by
// internal/transform prior to type checking (spec.md §4.4).
type ForeachStmt struct {
	StmtBase
	IndexName string
	ValueName string
	Iterable  Expr
	Body      *Block
}

// MatchStmt is the statement form of match: identical pattern dispatch,
// block-bodied arms (spec.md §4.4).
type MatchStmt struct {
	StmtBase
	Scrutinee Expr
	Arms      []*MatchArm
}

// VarDeclarator is one declarator of a (possibly multi-name) variable
// declaration statement.
type VarDeclarator struct {
	Name    string
	Type    types.Type // declared type if annotated, else nil
	Init    Expr
	Const   bool
	Strict  bool
	Symbol  *symbols.DeclaredVariable
}

// VarDeclStmt is `let/const/mut a = x, b = y;`.
type VarDeclStmt struct {
	StmtBase
	Declarators []VarDeclarator
}

// ---- Declarations -------------------------------------------------------

// ParamDecl is one function/method parameter declaration.
type ParamDecl struct {
	Name    string
	Type    types.Type
	Mutable bool
}

// FunctionDecl is a top-level function or class/interface/process method.
type FunctionDecl struct {
	DeclBase
	Name       string
	Generics   []*types.Generic
	Params     []ParamDecl
	ReturnType types.Type
	Body       Node // *Block, or an Expr for expression-bodied functions
	Static     bool
	Override   bool
	Symbol     *symbols.DeclaredFunction
}

// AttributeDecl is one class/process attribute declaration.
type AttributeDecl struct {
	Name   string
	Type   types.Type
	Static bool
	Init   Expr // optional default
}

// ClassDecl declares a nominal class.
type ClassDecl struct {
	DeclBase
	Name       string
	Generics   []*types.Generic
	Supertypes []types.Type
	Attributes []AttributeDecl
	Methods    []*FunctionDecl
}

// InterfaceDecl declares a nominal interface.
type InterfaceDecl struct {
	DeclBase
	Name       string
	Generics   []*types.Generic
	Supertypes []types.Type
	Methods    []types.MethodSig
}

// ProcessDecl declares a process (structurally a class with the
// event-method discipline, spec.md §3).
type ProcessDecl struct {
	DeclBase
	Name       string
	Attributes []AttributeDecl
	Methods    []*FunctionDecl
}

// TypeAliasDecl declares a named struct/alias type (`type Foo = {...}`).
type TypeAliasDecl struct {
	DeclBase
	Name     string
	Generics []*types.Generic
	Type     types.Type
}

// EnumDecl declares a nominal enum.
type EnumDecl struct {
	DeclBase
	Name       string
	TargetKind string
	Members    []types.EnumMember
}

// VariantDecl declares a tagged union.
type VariantDecl struct {
	DeclBase
	Name         string
	Generics     []*types.Generic
	Constructors []VariantCtorDecl
}

// VariantCtorDecl is one constructor case inside a VariantDecl.
type VariantCtorDecl struct {
	Name       string
	Parameters []ParamDecl
}

// FFIDecl declares an `impl ... from "path"` FFI namespace.
type FFIDecl struct {
	DeclBase
	Name       string
	SourcePath string
	Methods    []ParamDecl // unused; placeholder for method list shape (kept minimal, see spec.md §6)
	MethodSigs []types.MethodSig
}

// ImportDecl is a module import.
type ImportDecl struct {
	DeclBase
	Path    []string
	Symbols []string
}

// File is one parsed compilation unit.
type File struct {
	Path    string
	Package []string
	Imports []*ImportDecl
	Decls   []Decl
}

func (f *File) Position() token.Pos { return token.Pos{File: f.Path} }
