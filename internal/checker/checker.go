package checker

import (
	"github.com/typec-go/tcheck/internal/ast"
	"github.com/typec-go/tcheck/internal/diag"
	"github.com/typec-go/tcheck/internal/symbols"
	"github.com/typec-go/tcheck/internal/types"
)

// CheckFile runs the full two-pass check on one parsed file in isolation:
// Declare every top-level declaration first (so forward references within
// the file resolve), then resolve and check each declaration's bodies
// (spec.md §4.2). Checking a multi-file package should instead Declare
// every file before calling CheckBodies on any of them (see
// internal/module.CheckProgram), so declarations resolve across file
// boundaries too.
func (c *Checker) CheckFile(f *ast.File) {
	for _, d := range f.Decls {
		c.Declare(f.Package, d)
	}
	c.CheckBodies(f)
}

// CheckBodies resolves and checks f's declaration bodies against whatever
// is already in c.Decls, without declaring f's own top-level declarations
// first. Callers checking a package of several files call Declare on every
// file up front, then CheckBodies on each, so cross-file forward
// references resolve regardless of file order.
func (c *Checker) CheckBodies(f *ast.File) {
	root := symbols.NewRoot(f.Package)
	for _, d := range f.Decls {
		c.checkDecl(root, f.Package, d)
	}
}

func (c *Checker) checkDecl(root *symbols.Context, pkg []string, d ast.Decl) {
	switch decl := d.(type) {
	case *ast.FunctionDecl:
		c.checkFunction(root, decl, nil)
	case *ast.ClassDecl:
		c.checkClass(root, pkg, decl)
	case *ast.ProcessDecl:
		c.checkProcess(root, pkg, decl)
	case *ast.InterfaceDecl, *ast.EnumDecl, *ast.VariantDecl, *ast.TypeAliasDecl, *ast.FFIDecl, *ast.ImportDecl:
		// No bodies to check; declarations themselves were registered by
		// Declare. Their member/field types are resolved lazily, the first
		// time a reference to them is matched (spec.md §4.1 resolve-on-use).
	}
}

func (c *Checker) qualify(pkg []string, name string) string {
	joined := ""
	for _, p := range pkg {
		joined += p + "."
	}
	return joined + name
}

func (c *Checker) checkClass(root *symbols.Context, pkg []string, decl *ast.ClassDecl) {
	selfType := c.Decls[c.qualify(pkg, decl.Name)]
	var self types.Type
	if selfType != nil {
		self = selfType.Type
	}
	for _, super := range decl.Supertypes {
		c.Resolve(super, decl)
	}
	for i := range decl.Attributes {
		decl.Attributes[i].Type = c.Resolve(decl.Attributes[i].Type, decl)
	}
	for _, m := range decl.Methods {
		c.checkFunction(root, m, self)
	}
}

func (c *Checker) checkProcess(root *symbols.Context, pkg []string, decl *ast.ProcessDecl) {
	selfType := c.Decls[c.qualify(pkg, decl.Name)]
	var self types.Type
	if selfType != nil {
		self = selfType.Type
	}
	for i := range decl.Attributes {
		decl.Attributes[i].Type = c.Resolve(decl.Attributes[i].Type, decl)
	}
	for _, m := range decl.Methods {
		ctx := root.Child(decl.Pos)
		env := ctx.Env()
		env.WithinProcess = true
		ctx.SetEnv(env)
		c.checkFunction(ctx, m, self)
	}
}

// checkFunction resolves a function/method's signature, binds `this`
// (when self is non-nil) and its parameters into a fresh function scope,
// checks the body, and unifies the declared or inferred return type
// against every collected return site (spec.md §4.2, §4.4).
func (c *Checker) checkFunction(root *symbols.Context, decl *ast.FunctionDecl, self types.Type) {
	decl.ReturnType = c.Resolve(decl.ReturnType, decl)
	for i := range decl.Params {
		decl.Params[i].Type = c.Resolve(decl.Params[i].Type, decl)
	}

	// Top-level functions already have a DeclaredFunction registered by
	// Declare (internal/checker/resolve.go), shared with c.Funcs so calls
	// resolve; reuse it here rather than building a second, divergent one.
	// Methods (ClassDecl/ProcessDecl members) never go through Declare's
	// FunctionDecl case, so they still get a fresh one.
	fn := decl.Symbol
	if fn == nil {
		params := make([]types.Param, len(decl.Params))
		for i := range decl.Params {
			params[i] = types.Param{Name: decl.Params[i].Name, Type: decl.Params[i].Type, Mutable: decl.Params[i].Mutable}
		}
		fn = &symbols.DeclaredFunction{ID: symbols.NewID(), Name: decl.Name, Generics: decl.Generics, Prototype: &types.FunctionType{Parameters: params, Return: decl.ReturnType}}
		decl.Symbol = fn
	}
	proto := fn.Prototype

	ctx := root.ChildWithOwner(decl.Pos, fn)
	if self != nil {
		ctx.AddSymbol("this", &symbols.FunctionArgument{Name: "this", Type: self, Mutable: false})
	}
	for i, p := range decl.Params {
		ctx.AddSymbol(p.Name, &symbols.FunctionArgument{Name: p.Name, Type: p.Type, Mutable: p.Mutable})
	}

	switch body := decl.Body.(type) {
	case *ast.Block:
		c.CheckBlock(ctx, body)
		inferred := c.unifyReturnSites(ctx, decl.ReturnType, decl)
		if decl.ReturnType == nil {
			decl.ReturnType = inferred
			proto.Return = inferred
		}
	case ast.Expr:
		t := c.InferExpr(ctx, decl.ReturnType, body)
		if decl.ReturnType == nil {
			decl.ReturnType = t
			proto.Return = t
		}
	case nil:
		// FFI/interface prototypes with no body.
	default:
		c.Reporter.Report(diag.New(diag.Unsupported, "check", locOf(decl), "unsupported function body kind %T", decl.Body))
	}
}
