// Package checker implements the bidirectional expression and statement
// type checker (spec.md §4.3, §4.4): inferred_type/hint_type reconciliation
// through internal/types.Match, return-site collection, and control-flow
// scope checks.
//
// Grounded on the teacher's internal/checker/checker.go (single-pass
// Context-threaded inference visitor), generalized from the teacher's
// Hindley-Milner unification to this language's hint-then-infer-then-match
// discipline.
package checker

import (
	"github.com/typec-go/tcheck/internal/ast"
	"github.com/typec-go/tcheck/internal/diag"
	"github.com/typec-go/tcheck/internal/pattern"
	"github.com/typec-go/tcheck/internal/symbols"
	"github.com/typec-go/tcheck/internal/types"
)

// Checker holds everything one compilation run needs: the diagnostic sink,
// the declared-type table built by the resolve pass, and the pattern
// sub-checker (kept separate to avoid an ast<->pattern import cycle).
type Checker struct {
	Reporter *diag.Reporter
	Decls    map[string]*types.DeclaredType        // qualified name -> declaration
	Funcs    map[string]*symbols.DeclaredFunction // qualified name -> top-level function
	Pattern  *pattern.Checker
}

// New creates an empty Checker.
func New(r *diag.Reporter) *Checker {
	return &Checker{
		Reporter: r,
		Decls:    map[string]*types.DeclaredType{},
		Funcs:    map[string]*symbols.DeclaredFunction{},
		Pattern:  pattern.New(r),
	}
}

// locOf converts a token-producing node position to a diag.Location. Nodes
// satisfy ast.Node, whose Position() returns token.Pos.
func locOf(n ast.Node) *diag.Location {
	p := n.Position()
	return &diag.Location{File: p.File, Line: p.Line, Column: p.Column, Offset: p.Offset}
}

// Declare registers one top-level declaration from a parsed file into the
// declaration table, ahead of body checking, so forward references within
// and across files in the same package resolve (spec.md §4.2).
func (c *Checker) Declare(pkg []string, d ast.Decl) {
	qualify := func(name string) string {
		if len(pkg) == 0 {
			return name
		}
		joined := ""
		for _, p := range pkg {
			joined += p + "."
		}
		return joined + name
	}

	switch decl := d.(type) {
	case *ast.ClassDecl:
		ct := &types.ClassType{Name: decl.Name, Generics: decl.Generics, Supertypes: decl.Supertypes}
		for _, a := range decl.Attributes {
			ct.Attributes = append(ct.Attributes, types.Attribute{Name: a.Name, Type: a.Type, Static: a.Static})
		}
		for _, m := range decl.Methods {
			ct.Methods = append(ct.Methods, methodOf(m))
		}
		c.Decls[qualify(decl.Name)] = &types.DeclaredType{ID: symbols.NewID(), Name: decl.Name, Generics: decl.Generics, Type: ct, ParentPackage: pkg}

	case *ast.InterfaceDecl:
		it := &types.InterfaceType{Name: decl.Name, Generics: decl.Generics, Supertypes: decl.Supertypes}
		for i := range decl.Methods {
			m := decl.Methods[i]
			it.Methods = append(it.Methods, &m)
		}
		c.Decls[qualify(decl.Name)] = &types.DeclaredType{ID: symbols.NewID(), Name: decl.Name, Generics: decl.Generics, Type: it, ParentPackage: pkg}

	case *ast.EnumDecl:
		et := &types.EnumType{Name: decl.Name, TargetKind: decl.TargetKind, Members: decl.Members}
		c.Decls[qualify(decl.Name)] = &types.DeclaredType{ID: symbols.NewID(), Name: decl.Name, Type: et, ParentPackage: pkg}

	case *ast.VariantDecl:
		vt := &types.VariantType{Name: decl.Name, Generics: decl.Generics}
		for _, ctor := range decl.Constructors {
			params := make([]types.Param, len(ctor.Parameters))
			for i, p := range ctor.Parameters {
				params[i] = types.Param{Name: p.Name, Type: p.Type, Mutable: p.Mutable}
			}
			vt.Constructors = append(vt.Constructors, &types.VariantConstructor{Name: ctor.Name, Parameters: params, Parent: vt})
		}
		c.Decls[qualify(decl.Name)] = &types.DeclaredType{ID: symbols.NewID(), Name: decl.Name, Generics: decl.Generics, Type: vt, ParentPackage: pkg}

	case *ast.TypeAliasDecl:
		c.Decls[qualify(decl.Name)] = &types.DeclaredType{ID: symbols.NewID(), Name: decl.Name, Generics: decl.Generics, Type: decl.Type, ParentPackage: pkg}

	case *ast.ProcessDecl:
		pt := &types.ProcessType{Name: decl.Name}
		for _, a := range decl.Attributes {
			pt.Attributes = append(pt.Attributes, types.Attribute{Name: a.Name, Type: a.Type, Static: a.Static})
		}
		for _, m := range decl.Methods {
			pt.Methods = append(pt.Methods, methodOf(m))
		}
		c.Decls[qualify(decl.Name)] = &types.DeclaredType{ID: symbols.NewID(), Name: decl.Name, Type: pt, ParentPackage: pkg}

	case *ast.FFIDecl:
		ffi := &types.DeclaredFFI{Name: decl.Name, SourcePath: decl.SourcePath}
		for _, m := range decl.MethodSigs {
			ffi.Methods = append(ffi.Methods, types.Method{Name: m.Name, Params: m.Params, Return: m.Return})
		}
		c.Decls[qualify(decl.Name)] = &types.DeclaredType{ID: symbols.NewID(), Name: decl.Name, Type: &types.FFINamespace{Parent: ffi}, ParentPackage: pkg}

	case *ast.FunctionDecl:
		// Top-level functions are registered as DeclaredFunction symbols here
		// (not as DeclaredType, which holds only nominal/structural types),
		// so a sibling declaration's call to this function resolves the same
		// way a reference to a class or variant does (spec.md §4.2). Param/
		// return types may still be unresolved *types.Reference values at
		// this point; Resolve mutates them in place later (checkFunction),
		// so the prototype built here stays in sync without rebuilding it.
		params := make([]types.Param, len(decl.Params))
		for i, p := range decl.Params {
			params[i] = types.Param{Name: p.Name, Type: p.Type, Mutable: p.Mutable}
		}
		proto := &types.FunctionType{Parameters: params, Return: decl.ReturnType}
		fn := &symbols.DeclaredFunction{ID: symbols.NewID(), Name: decl.Name, Generics: decl.Generics, Prototype: proto}
		decl.Symbol = fn
		c.Funcs[qualify(decl.Name)] = fn
	}
}

func methodOf(f *ast.FunctionDecl) *types.Method {
	params := make([]types.Param, len(f.Params))
	for i, p := range f.Params {
		params[i] = types.Param{Name: p.Name, Type: p.Type, Mutable: p.Mutable}
	}
	return &types.Method{Name: f.Name, Params: params, Return: f.ReturnType, Static: f.Static, Override: f.Override}
}

// Resolve walks t, replacing every unresolved *types.Reference with its
// looked-up declaration, recursively through container types, per spec.md
// §4.1's "resolve" pass. Unresolvable references are reported through
// c.Reporter (fatal, since nothing downstream can check against an unknown type) and
// left unresolved so the caller can bail out of this declaration.
func (c *Checker) Resolve(t types.Type, at ast.Node) types.Type {
	switch v := t.(type) {
	case *types.Reference:
		if v.Resolved() {
			return v
		}
		key := v.Name
		if len(v.PackagePath) > 0 {
			joined := ""
			for _, p := range v.PackagePath {
				joined += p + "."
			}
			key = joined + v.Name
		}
		decl, found := c.Decls[key]
		if !found {
			c.Reporter.Fatal(diag.New(diag.UnresolvedReference, "resolve", locOf(at), "unresolved reference to %q", key))
			return v
		}
		v.ResolvedDecl = decl
		if len(v.TypeArgs) > 0 {
			resolvedArgs := make([]types.Type, len(v.TypeArgs))
			for i, a := range v.TypeArgs {
				resolvedArgs[i] = c.Resolve(a, at)
			}
			v.TypeArgs = resolvedArgs
			v.ResolvedBase = decl.Instantiate(resolvedArgs)
		} else {
			v.ResolvedBase = decl.Type
		}
		return v

	case *types.Nullable:
		v.Inner = c.Resolve(v.Inner, at)
		return v
	case *types.ArrayType:
		v.Elem = c.Resolve(v.Elem, at)
		return v
	case *types.UnionType:
		v.A, v.B = c.Resolve(v.A, at), c.Resolve(v.B, at)
		return v
	case *types.JoinType:
		v.A, v.B = c.Resolve(v.A, at), c.Resolve(v.B, at)
		return v
	case *types.FunctionType:
		for i := range v.Parameters {
			v.Parameters[i].Type = c.Resolve(v.Parameters[i].Type, at)
		}
		v.Return = c.Resolve(v.Return, at)
		return v
	case *types.StructType:
		for i := range v.Fields {
			v.Fields[i].Type = c.Resolve(v.Fields[i].Type, at)
		}
		return v
	default:
		return t
	}
}
