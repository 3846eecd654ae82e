package checker

import (
	"github.com/typec-go/tcheck/internal/ast"
	"github.com/typec-go/tcheck/internal/diag"
	"github.com/typec-go/tcheck/internal/symbols"
	"github.com/typec-go/tcheck/internal/types"
)

// CheckBlock checks a block's statements in a fresh child scope.
func (c *Checker) CheckBlock(ctx *symbols.Context, b *ast.Block) {
	child := ctx.Child(b.Pos)
	for _, stmt := range b.Stmts {
		c.CheckStmt(child, stmt)
	}
}

// CheckStmt dispatches on statement kind (spec.md §4.4).
func (c *Checker) CheckStmt(ctx *symbols.Context, s ast.Stmt) {
	switch st := s.(type) {
	case *ast.ExprStmt:
		c.InferExpr(ctx, nil, st.Expr)

	case *ast.Block:
		c.CheckBlock(ctx, st)

	case *ast.ReturnStmt:
		c.checkReturn(ctx, st)

	case *ast.BreakStmt:
		if !ctx.Env().WithinLoop {
			c.Reporter.Report(diag.New(diag.ControlFlowMisuse, "check", locOf(st), "break outside a loop"))
		}

	case *ast.ContinueStmt:
		if !ctx.Env().WithinLoop {
			c.Reporter.Report(diag.New(diag.ControlFlowMisuse, "check", locOf(st), "continue outside a loop"))
		}

	case *ast.IfStmt:
		c.InferExpr(ctx, types.Bool, st.Cond)
		c.CheckBlock(ctx, st.Then)
		if st.Else != nil {
			c.CheckStmt(ctx, st.Else)
		}

	case *ast.WhileStmt:
		c.InferExpr(ctx, types.Bool, st.Cond)
		c.checkLoopBody(ctx, st.Body)

	case *ast.DoWhileStmt:
		c.checkLoopBody(ctx, st.Body)
		c.InferExpr(ctx, types.Bool, st.Cond)

	case *ast.ForStmt:
		child := ctx.Child(st.Pos)
		if st.Init != nil {
			c.CheckStmt(child, st.Init)
		}
		if st.Cond != nil {
			c.InferExpr(child, types.Bool, st.Cond)
		}
		if st.Post != nil {
			c.CheckStmt(child, st.Post)
		}
		c.checkLoopBody(child, st.Body)

	case *ast.ForeachStmt:
		c.checkForeach(ctx, st)

	case *ast.MatchStmt:
		c.checkMatchStmt(ctx, st)

	case *ast.VarDeclStmt:
		c.checkVarDecl(ctx, st)
	}
}

func (c *Checker) checkLoopBody(ctx *symbols.Context, body *ast.Block) {
	child := ctx.Child(body.Pos)
	env := child.Env()
	env.WithinLoop = true
	child.SetEnv(env)
	for _, stmt := range body.Stmts {
		c.CheckStmt(child, stmt)
	}
}

// checkReturn requires a WithinFunction scope, infers the returned
// expression against the owner's declared return type (if already known),
// and registers the site so the owner's return-type unification can see it
// (spec.md §4.4).
func (c *Checker) checkReturn(ctx *symbols.Context, r *ast.ReturnStmt) {
	if !ctx.Env().WithinFunction {
		c.Reporter.Report(diag.New(diag.ControlFlowMisuse, "check", locOf(r), "return outside a function body"))
		return
	}
	var hint types.Type
	if fn := ctx.FindParentFunction(); fn != nil && fn.Prototype != nil {
		hint = fn.Prototype.Return
	}
	if r.Value != nil {
		c.InferExpr(ctx, hint, r.Value)
		ctx.RegisterReturn(r.Value)
	} else {
		ctx.RegisterReturn(nil)
	}
}

// checkForeach checks `foreach i, v in expr { body }` against either an
// Array (v takes the element type) or a class with hasNext/next methods
// (v takes next's return type), binding i as i64 and checking the body in
// a loop scope; it does not rewrite the loop (internal/transform does).
func (c *Checker) checkForeach(ctx *symbols.Context, f *ast.ForeachStmt) {
	iterableType := c.InferExpr(ctx, nil, f.Iterable)
	child := ctx.Child(f.Pos)
	env := child.Env()
	env.WithinLoop = true
	child.SetEnv(env)

	var valueType types.Type
	switch t := types.Deref(iterableType).(type) {
	case *types.ArrayType:
		valueType = t.Elem
	case *types.ClassType:
		nextM, hasNext := t.MethodByName("next")
		_, hasHasNext := t.MethodByName("hasNext")
		if !hasNext || !hasHasNext {
			c.Reporter.Report(diag.New(diag.TypeMismatch, "check", locOf(f), "foreach target %s implements neither Array nor the Iterable protocol", t.Name))
			valueType = types.TheUnset
		} else {
			valueType = nextM.Return
		}
	default:
		c.Reporter.Report(diag.New(diag.TypeMismatch, "check", locOf(f), "foreach requires an array or Iterable, got %s", types.ShortName(iterableType)))
		valueType = types.TheUnset
	}

	if f.IndexName != "" {
		child.AddSymbol(f.IndexName, &symbols.DeclaredVariable{Name: f.IndexName, Type: types.I64, Const: true})
	}
	child.AddSymbol(f.ValueName, &symbols.DeclaredVariable{Name: f.ValueName, Type: valueType, Const: true})

	for _, stmt := range f.Body.Stmts {
		c.CheckStmt(child, stmt)
	}
}

// checkMatchStmt mirrors inferMatchExpr but for block-bodied arms with no
// result type to unify (spec.md §4.4).
func (c *Checker) checkMatchStmt(ctx *symbols.Context, m *ast.MatchStmt) {
	scrutineeType := c.InferExpr(ctx, nil, m.Scrutinee)
	if len(m.Arms) == 0 {
		c.Reporter.Report(diag.New(diag.ExhaustivenessFailure, "check", locOf(m), "match statement has no arms"))
		return
	}
	last := m.Arms[len(m.Arms)-1]
	if !isCatchAll(last.Pattern) {
		// Non-fatal advisory (spec.md explicitly makes exhaustiveness a
		// non-goal for errors; the match-*expression* form's trailing-wildcard
		// rule above is the one hard failure).
		c.Reporter.Report(diag.New(diag.ExhaustivenessFailure, "check", locOf(m), "match statement does not end with a wildcard or variable pattern; non-matching inputs fall through with no effect").Warn())
	}
	for _, arm := range m.Arms {
		armCtx := ctx.Child(m.Pos)
		if !c.Pattern.Check(arm.Pattern, scrutineeType, armCtx, *locOf(m), false) {
			continue
		}
		arm.Lowered = c.lowerAndRecheck(armCtx, arm.Pattern, m.Scrutinee)
		if arm.Guard != nil {
			c.InferExpr(armCtx, types.Bool, arm.Guard)
		}
		if block, ok := arm.Body.(*ast.Block); ok {
			for _, stmt := range block.Stmts {
				c.CheckStmt(armCtx, stmt)
			}
		} else {
			c.Reporter.Report(diag.New(diag.Unsupported, "check", locOf(m), "match-statement arm body must be a block"))
		}
	}
}

// checkVarDecl handles `let`/`const`/`mut`/`strict` declarators (spec.md
// §4.4): strict forbids width-widening, the others allow it, and an
// omitted declared type is filled in from the initializer's inferred type.
func (c *Checker) checkVarDecl(ctx *symbols.Context, v *ast.VarDeclStmt) {
	for i := range v.Declarators {
		d := &v.Declarators[i]
		t := c.InferExpr(ctx, d.Type, d.Init)
		if d.Type == nil {
			d.Type = t
		} else if d.Strict {
			if r := types.Match(d.Type, t, true); !r.Success {
				c.Reporter.Report(diag.New(diag.TypeMismatch, "check", locOf(d.Init), "strict declaration: %s", r.Message))
			}
		}
		d.Symbol = &symbols.DeclaredVariable{Name: d.Name, Type: d.Type, Const: d.Const, Strict: d.Strict}
		if err := ctx.AddSymbol(d.Name, d.Symbol); err != nil {
			c.Reporter.Report(diag.New(diag.DuplicateSymbol, "check", locOf(d.Init), "%s", err.Error()))
		}
	}
}
