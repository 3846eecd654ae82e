package symbols

import (
	"fmt"

	"github.com/typec-go/tcheck/internal/token"
	"github.com/typec-go/tcheck/internal/types"
)

// Env is the environment-flag record spec.md §3 attaches to every Context:
// booleans tracking which constructs currently enclose the scope.
type Env struct {
	WithinFunction bool
	WithinLoop     bool
	WithinClass    bool
	WithinProcess  bool
}

// Owner is the enclosing function/method a Context belongs to, if any.
// return-site registration (spec.md §4.4) appends to Owner.ReturnSites.
type Owner struct {
	Function     *DeclaredFunction
	ReturnSites  []ReturnSite
}

// ReturnSite is one `return` statement registered against its enclosing
// function so the function-return type check can later walk every site
// (spec.md §4.4).
type ReturnSite struct {
	Ctx  *Context
	Expr any // ast.Expr; kept as `any` to avoid an import cycle with ast
}

// Context is one lexical scope: spec.md §3 "Context (lexical scope)".
type Context struct {
	parent   *Context
	names    map[string]any
	pos      token.Pos
	env      Env
	owner    *Owner
	pkg      []string
}

// NewRoot creates the top-level Context for one compilation unit (or one
// package), with an empty environment-flag record and no owner.
func NewRoot(pkg []string) *Context {
	return &Context{names: map[string]any{}, pkg: pkg}
}

// Child creates a nested scope inheriting env flags and owner from parent;
// callers mutate the returned Context's Env fields to flip withinLoop etc.
func (c *Context) Child(pos token.Pos) *Context {
	return &Context{
		parent: c,
		names:  map[string]any{},
		pos:    pos,
		env:    c.env,
		owner:  c.owner,
		pkg:    c.pkg,
	}
}

// ChildWithOwner creates a nested scope for a new function/method body,
// setting WithinFunction and installing a fresh Owner.
func (c *Context) ChildWithOwner(pos token.Pos, fn *DeclaredFunction) *Context {
	child := c.Child(pos)
	child.env.WithinFunction = true
	child.owner = &Owner{Function: fn}
	return child
}

// Env returns the environment-flag record for this scope.
func (c *Context) Env() Env { return c.env }

// SetEnv replaces the environment-flag record (used when entering a loop,
// class body, or process body).
func (c *Context) SetEnv(e Env) { c.env = e }

// Owner returns the enclosing function/method, or nil at top level.
func (c *Context) Owner() *Owner { return c.owner }

// Package returns the current package path.
func (c *Context) Package() []string { return c.pkg }

// AddSymbol binds name to sym in this frame. Per spec.md §4.2, a duplicate
// within the same frame fails; shadowing an outer frame's binding is fine.
func (c *Context) AddSymbol(name string, sym any) error {
	if _, exists := c.names[name]; exists {
		return fmt.Errorf("duplicate symbol %q in this scope", name)
	}
	c.names[name] = sym
	return nil
}

// OverrideSymbol replaces a binding in this frame regardless of whether one
// already exists. Used only for late binding of function declarations that
// need a prototype slot registered before their body is checked (spec.md
// §4.2), so a recursive call inside the body resolves.
func (c *Context) OverrideSymbol(name string, sym any) {
	c.names[name] = sym
}

// Lookup walks from this Context to the root, returning the innermost
// binding visible from the calling site. Bindings added after a lookup do
// not retroactively affect it (spec.md §4.2 invariant).
func (c *Context) Lookup(name string) (any, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if sym, ok := ctx.names[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// FindParentFunction walks up the owner chain to the nearest enclosing
// DeclaredFunction, or nil if none.
func (c *Context) FindParentFunction() *DeclaredFunction {
	if c.owner == nil {
		return nil
	}
	return c.owner.Function
}

// RegisterReturn appends a return site to the current owner so the
// function-return type check can later walk every site.
func (c *Context) RegisterReturn(expr any) {
	if c.owner == nil {
		return
	}
	c.owner.ReturnSites = append(c.owner.ReturnSites, ReturnSite{Ctx: c, Expr: expr})
}

// Clone produces a deep-ish clone used when instantiating a generic
// declaration: every binding's type is substituted through typeMap, except
// pattern-bound variables (VariablePattern), which are deliberately omitted
// so pattern nodes rebind their own symbols on re-inference (spec.md §4.2).
func (c *Context) Clone(typeMap map[string]types.Type) *Context {
	clone := &Context{
		names: map[string]any{},
		pos:   c.pos,
		env:   c.env,
		owner: c.owner,
		pkg:   c.pkg,
	}
	if c.parent != nil {
		clone.parent = c.parent.Clone(typeMap)
	}
	for name, sym := range c.names {
		switch s := sym.(type) {
		case *VariablePattern:
			continue // omitted deliberately
		case *DeclaredVariable:
			clone.names[name] = &DeclaredVariable{Name: s.Name, Type: s.Type.Substitute(typeMap), Const: s.Const, Strict: s.Strict}
		case *FunctionArgument:
			clone.names[name] = &FunctionArgument{Name: s.Name, Type: s.Type.Substitute(typeMap), Mutable: s.Mutable}
		default:
			clone.names[name] = sym
		}
	}
	return clone
}

// TypeOf extracts the types.Type a symbol carries, if any.
func TypeOf(sym any) (types.Type, bool) {
	switch s := sym.(type) {
	case *DeclaredVariable:
		return s.Type, true
	case *FunctionArgument:
		return s.Type, true
	case *VariablePattern:
		return s.Type, true
	case *DeclaredFunction:
		return s.Prototype, true
	case *types.DeclaredType:
		return s.Type, true
	}
	return nil, false
}
