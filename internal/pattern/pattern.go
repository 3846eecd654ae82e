// Package pattern implements pattern checking and lowering (spec.md §4.6):
// matching a pattern against a scrutinee type assigns symbols and produces a
// (condition, assignments[]) pair that the expression checker re-infers.
//
// Grounded on the teacher's internal/checker/pattern.go (recursive descent
// over pattern kinds, building a binding env alongside a boolean test tree),
// adapted from the teacher's algebraic-data-type matching to this language's
// wildcard/literal/variable/array/struct/datatype pattern set.
package pattern

import (
	"fmt"

	"github.com/typec-go/tcheck/internal/ast"
	"github.com/typec-go/tcheck/internal/diag"
	"github.com/typec-go/tcheck/internal/symbols"
	"github.com/typec-go/tcheck/internal/types"
)

// Checker checks and lowers patterns against a scrutinee type.
type Checker struct {
	Reporter *diag.Reporter
}

// New creates a pattern Checker reporting through r.
func New(r *diag.Reporter) *Checker {
	return &Checker{Reporter: r}
}

// Check validates pat against scrutinee and binds pattern variables into
// ctx (each bound variable is const when isConst or the pattern says so),
// per spec.md §4.6. It returns whether the pattern is valid for the
// scrutinee; problems are reported through c.Reporter.
func (c *Checker) Check(pat ast.Pattern, scrutinee types.Type, ctx *symbols.Context, loc diag.Location, isConst bool) bool {
	scrutinee = types.Deref(scrutinee)

	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return true

	case *ast.LiteralPattern:
		return c.checkLiteral(p, scrutinee, loc)

	case *ast.VariablePattern:
		if p.Symbol == nil {
			p.Symbol = &symbols.VariablePattern{Name: p.Name, Type: scrutinee, Const: isConst || p.Const}
		} else {
			p.Symbol.Type = scrutinee
		}
		if err := ctx.AddSymbol(p.Name, p.Symbol); err != nil {
			c.Reporter.Report(diag.New(diag.IllegalPattern, "pattern", &loc, "%s", err.Error()))
			return false
		}
		return true

	case *ast.ArrayPattern:
		return c.checkArray(p, scrutinee, ctx, loc, isConst)

	case *ast.StructPattern:
		return c.checkStruct(p, scrutinee, ctx, loc, isConst)

	case *ast.DatatypePattern:
		return c.checkDatatype(p, scrutinee, ctx, loc, isConst)
	}

	c.Reporter.Report(diag.New(diag.IllegalPattern, "pattern", &loc, "unsupported pattern kind %T", pat))
	return false
}

func (c *Checker) checkLiteral(p *ast.LiteralPattern, scrutinee types.Type, loc diag.Location) bool {
	b, isBasic := scrutinee.(*types.Basic)
	switch p.Value.Kind {
	case ast.IntLit, ast.FloatLit:
		if !isBasic || !(b.IsInteger() || b.IsFloat()) {
			c.Reporter.Report(diag.New(diag.IllegalPattern, "pattern", &loc, "numeric literal pattern against non-numeric type %s", types.ShortName(scrutinee)))
			return false
		}
	case ast.BoolLit:
		if !isBasic || b.Kind != "bool" {
			c.Reporter.Report(diag.New(diag.IllegalPattern, "pattern", &loc, "bool literal pattern against %s", types.ShortName(scrutinee)))
			return false
		}
	case ast.StringLit:
		if r, ok := scrutinee.(*types.ClassType); !ok || r.Name != "String" {
			c.Reporter.Report(diag.New(diag.IllegalPattern, "pattern", &loc, "string literal pattern against %s", types.ShortName(scrutinee)))
			return false
		}
	case ast.NullLit:
		if _, ok := scrutinee.(*types.Nullable); !ok {
			if _, isNull := scrutinee.(*types.Null); !isNull {
				c.Reporter.Report(diag.New(diag.IllegalPattern, "pattern", &loc, "null literal pattern against non-nullable %s", types.ShortName(scrutinee)))
				return false
			}
		}
	}
	return true
}

func (c *Checker) checkArray(p *ast.ArrayPattern, scrutinee types.Type, ctx *symbols.Context, loc diag.Location, isConst bool) bool {
	arr, ok := scrutinee.(*types.ArrayType)
	if !ok {
		c.Reporter.Report(diag.New(diag.IllegalPattern, "pattern", &loc, "array pattern against non-array type %s", types.ShortName(scrutinee)))
		return false
	}
	good := true
	for _, el := range p.Elements {
		if !c.Check(el, arr.Elem, ctx, loc, isConst) {
			good = false
		}
	}
	if p.HasRest && p.Rest != "" {
		sym := &symbols.VariablePattern{Name: p.Rest, Type: arr, Const: isConst}
		if err := ctx.AddSymbol(p.Rest, sym); err != nil {
			c.Reporter.Report(diag.New(diag.IllegalPattern, "pattern", &loc, "%s", err.Error()))
			good = false
		}
	}
	return good
}

func (c *Checker) checkStruct(p *ast.StructPattern, scrutinee types.Type, ctx *symbols.Context, loc diag.Location, isConst bool) bool {
	st, ok := scrutinee.(*types.StructType)
	if !ok {
		c.Reporter.Report(diag.New(diag.IllegalPattern, "pattern", &loc, "struct pattern against non-struct type %s", types.ShortName(scrutinee)))
		return false
	}
	good := true
	captured := map[string]bool{}
	for _, f := range p.Fields {
		field, found := st.FieldByName(f.Name)
		if !found {
			c.Reporter.Report(diag.New(diag.IllegalPattern, "pattern", &loc, "no field %q on %s", f.Name, st.String()))
			good = false
			continue
		}
		captured[f.Name] = true
		if !c.Check(f.Pattern, field.Type, ctx, loc, isConst) {
			good = false
		}
	}
	if p.HasRest && p.Rest != "" {
		var rest []types.Field
		p.RestFields = nil
		for _, f := range st.Fields {
			if !captured[f.Name] {
				rest = append(rest, f)
				p.RestFields = append(p.RestFields, f.Name)
			}
		}
		if len(rest) == 0 {
			c.Reporter.Report(diag.New(diag.IllegalPattern, "pattern", &loc, "no uncaptured field remains for rest binding %q", p.Rest))
			good = false
		}
		sym := &symbols.VariablePattern{Name: p.Rest, Type: &types.StructType{Fields: rest}, Const: isConst}
		if err := ctx.AddSymbol(p.Rest, sym); err != nil {
			c.Reporter.Report(diag.New(diag.IllegalPattern, "pattern", &loc, "%s", err.Error()))
			good = false
		}
	}
	return good
}

// checkDatatype handles `Type(args...)` patterns: a variant constructor,
// an enum member, or a class scrutinee (spec.md §4.6). A class pattern is
// accepted only without arguments and binds nothing; with arguments it
// returns false without a report. Interface scrutinees are reported as
// unsupported.
func (c *Checker) checkDatatype(p *ast.DatatypePattern, scrutinee types.Type, ctx *symbols.Context, loc diag.Location, isConst bool) bool {
	switch t := scrutinee.(type) {
	case *types.VariantType:
		ctor, found := t.ConstructorByName(p.TypeName)
		if !found {
			c.Reporter.Report(diag.New(diag.IllegalPattern, "pattern", &loc, "%s has no constructor %q", t.Name, p.TypeName))
			return false
		}
		if len(p.Args) != len(ctor.Parameters) {
			c.Reporter.Report(diag.New(diag.IllegalPattern, "pattern", &loc, "constructor %s expects %d argument(s), got %d", ctor.Name, len(ctor.Parameters), len(p.Args)))
			return false
		}
		good := true
		for i, arg := range p.Args {
			if !c.Check(arg, ctor.Parameters[i].Type, ctx, loc, isConst) {
				good = false
			}
		}
		return good

	case *types.EnumType:
		if _, found := t.MemberByName(p.TypeName); !found {
			c.Reporter.Report(diag.New(diag.IllegalPattern, "pattern", &loc, "%s has no member %q", t.Name, p.TypeName))
			return false
		}
		if len(p.Args) != 0 {
			c.Reporter.Report(diag.New(diag.IllegalPattern, "pattern", &loc, "enum member pattern takes no arguments"))
			return false
		}
		return true

	case *types.ClassType:
		return len(p.Args) == 0
	}

	c.Reporter.Report(diag.New(diag.IllegalPattern, "pattern", &loc, "datatype pattern against unsupported type %s", types.ShortName(scrutinee)))
	return false
}

// Lower produces the (condition, assignments[]) pair for pat against a
// scrutinee expression, per the exact rules of spec.md §4.6:
//
//   - wildcard                → (nil, [])
//   - literal                 → (scrutinee == literal, [])
//   - variable                → (nil, [name = scrutinee])
//   - array                   → length check AND'd with each element's
//     lowered condition (rebased on scrutinee[i]), plus every element's
//     assignments, plus a rest-slice assignment if present
//   - struct                  → each field's lowered condition AND'd
//     together (rebased on scrutinee.field), plus field assignments, plus
//     a rest-struct assignment if present
//   - datatype                → an `is` check AND'd with each positional
//     argument's lowered condition (rebased on the constructor's field
//     access), plus argument assignments
func Lower(pat ast.Pattern, scrutinee ast.Expr) *ast.LoweredArm {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return &ast.LoweredArm{}

	case *ast.LiteralPattern:
		cond := &ast.Binary{Op: "==", Left: scrutinee, Right: p.Value}
		return &ast.LoweredArm{Condition: cond}

	case *ast.VariablePattern:
		target := &ast.Element{Name: p.Name}
		return &ast.LoweredArm{Assignments: []*ast.Assignment{{Target: target, Value: scrutinee}}}

	case *ast.ArrayPattern:
		return lowerArray(p, scrutinee)

	case *ast.StructPattern:
		return lowerStruct(p, scrutinee)

	case *ast.DatatypePattern:
		return lowerDatatype(p, scrutinee)
	}
	return &ast.LoweredArm{}
}

func lowerArray(p *ast.ArrayPattern, scrutinee ast.Expr) *ast.LoweredArm {
	var cond ast.Expr
	var assigns []*ast.Assignment

	lenCheck := lengthCheck(scrutinee, len(p.Elements), p.HasRest)
	cond = lenCheck

	for i, el := range p.Elements {
		idx := &ast.Index{Target: scrutinee, Idx: &ast.Literal{Kind: ast.IntLit, Raw: fmt.Sprint(i)}}
		sub := Lower(el, idx)
		cond = and(cond, sub.Condition)
		assigns = append(assigns, sub.Assignments...)
	}
	if p.HasRest && p.Rest != "" {
		restTarget := &ast.Element{Name: p.Rest}
		restSlice := &ast.Call{
			Callee: &ast.Member{Target: scrutinee, Name: "slice"},
			Args:   []ast.Expr{&ast.Literal{Kind: ast.IntLit, Raw: fmt.Sprint(len(p.Elements))}},
		}
		assigns = append(assigns, &ast.Assignment{Target: restTarget, Value: restSlice})
	}
	return &ast.LoweredArm{Condition: cond, Assignments: assigns}
}

func lowerStruct(p *ast.StructPattern, scrutinee ast.Expr) *ast.LoweredArm {
	var cond ast.Expr
	var assigns []*ast.Assignment

	for _, f := range p.Fields {
		member := &ast.Member{Target: scrutinee, Name: f.Name}
		sub := Lower(f.Pattern, member)
		cond = and(cond, sub.Condition)
		assigns = append(assigns, sub.Assignments...)
	}
	if p.HasRest && p.Rest != "" {
		lit := &ast.StructLiteral{}
		for _, name := range p.RestFields {
			lit.Fields = append(lit.Fields, ast.StructFieldInit{Name: name, Value: &ast.Member{Target: scrutinee, Name: name}})
		}
		assigns = append(assigns, &ast.Assignment{Target: &ast.Element{Name: p.Rest}, Value: lit})
	}
	return &ast.LoweredArm{Condition: cond, Assignments: assigns}
}

func lowerDatatype(p *ast.DatatypePattern, scrutinee ast.Expr) *ast.LoweredArm {
	isCheck := ast.Expr(&ast.InstanceCheck{Target: scrutinee, Type: &nameOnlyType{p.TypeName}})
	cond := isCheck
	var assigns []*ast.Assignment

	for i, arg := range p.Args {
		access := &ast.Member{Target: scrutinee, Name: fmt.Sprintf("_%d", i)}
		sub := Lower(arg, access)
		cond = and(cond, sub.Condition)
		assigns = append(assigns, sub.Assignments...)
	}
	return &ast.LoweredArm{Condition: cond, Assignments: assigns}
}

// lengthCheck builds `scrutinee.length == n` (exact arrays) or
// `scrutinee.length >= n` (arrays with a rest pattern).
func lengthCheck(scrutinee ast.Expr, n int, hasRest bool) ast.Expr {
	op := "=="
	if hasRest {
		op = ">="
	}
	length := &ast.Member{Target: scrutinee, Name: "length"}
	return &ast.Binary{Op: op, Left: length, Right: &ast.Literal{Kind: ast.IntLit, Raw: fmt.Sprint(n)}}
}

func and(a, b ast.Expr) ast.Expr {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return &ast.Binary{Op: "&&", Left: a, Right: b}
}

// nameOnlyType is a minimal types.Type used purely so the lowerer can build
// an InstanceCheck node before name resolution has happened; the checker
// re-resolves p.TypeName against the live symbol table when it re-infers
// the lowered condition, so this placeholder's Serialize/Substitute are
// never consulted.
type nameOnlyType struct{ name string }

func (t *nameOnlyType) String() string                        { return t.name }
func (t *nameOnlyType) Serialize() string                      { return "name:" + t.name }
func (t *nameOnlyType) Substitute(map[string]types.Type) types.Type { return t }
