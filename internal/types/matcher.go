package types

import "fmt"

// Result is what the matcher returns: success, a diagnostic message on
// failure, and any generic substitutions recorded along the way (spec.md
// §4.1: "(ctx, expected, got, strict=false) → {success, message,
// substitutions?}"). Substitutions accumulate bottom-up through recursive
// calls via the subs parameter rather than through a ctx symbol table —
// supertype links are already resolved directly on ClassType/InterfaceType,
// so the matcher needs no symbol-table access to decide compatibility.
type Result struct {
	Success       bool
	Message       string
	Substitutions map[string]Type
}

func ok() Result { return Result{Success: true} }

func fail(format string, args ...any) Result {
	return Result{Success: false, Message: fmt.Sprintf(format, args...)}
}

// Match checks whether got is compatible with expected, per the rules in
// spec.md §4.1. strict=false allows structural width subtyping (extra
// struct fields, non-exact matches where the language permits them);
// strict=true (used for `strict` variable declarations) forbids widening.
func Match(expected, got Type, strict bool) Result {
	return match(expected, got, strict, map[string]Type{})
}

func match(expected, got Type, strict bool, subs map[string]Type) Result {
	expected = Deref(expected)

	// Generic expected: record/verify substitution regardless of got's kind.
	if g, isGeneric := expected.(*Generic); isGeneric {
		if existing, bound := subs[g.Name]; bound {
			r := match(existing, got, strict, subs)
			if !r.Success {
				return fail("generic %s already bound to %s, incompatible with %s", g.Name, existing.String(), ShortName(got))
			}
			return Result{Success: true, Substitutions: subs}
		}
		if g.Constraint != nil {
			if r := match(g.Constraint, got, false, subs); !r.Success {
				return fail("type %s does not satisfy constraint %s: %s", ShortName(got), g.Constraint.String(), r.Message)
			}
		}
		subs[g.Name] = Deref(got)
		return Result{Success: true, Substitutions: subs}
	}

	got = Deref(got)

	switch exp := expected.(type) {
	case *Basic:
		gb, isBasic := got.(*Basic)
		if !isBasic || gb.Kind != exp.Kind {
			return fail("expected %s, got %s", exp.Kind, ShortName(got))
		}
		return withSubs(ok(), subs)

	case *Void:
		if _, isVoid := got.(*Void); !isVoid {
			return fail("expected void, got %s", ShortName(got))
		}
		return withSubs(ok(), subs)

	case *Null:
		if _, isNull := got.(*Null); !isNull {
			return fail("expected null, got %s", ShortName(got))
		}
		return withSubs(ok(), subs)

	case *Unset:
		return withSubs(ok(), subs)

	case *Nullable:
		if _, isNull := got.(*Null); isNull {
			return withSubs(ok(), subs)
		}
		if gn, isNullable := got.(*Nullable); isNullable {
			return match(exp.Inner, gn.Inner, strict, subs)
		}
		return match(exp.Inner, got, strict, subs)

	case *ArrayType:
		ga, isArray := got.(*ArrayType)
		if !isArray {
			return fail("expected Array(%s), got %s", exp.Elem.String(), ShortName(got))
		}
		return match(exp.Elem, ga.Elem, strict, subs)

	case *StructType:
		return matchStruct(exp, got, strict, subs)

	case *VariantType:
		ctor, isCtor := got.(*VariantConstructor)
		if !isCtor {
			return fail("expected variant %s, got %s", exp.Name, ShortName(got))
		}
		if ctor.Parent == nil || ctor.Parent.Name != exp.Name {
			return fail("constructor %s does not belong to variant %s", ctor.Name, exp.Name)
		}
		return withSubs(ok(), subs)

	case *VariantConstructor:
		gc, isCtor := got.(*VariantConstructor)
		if !isCtor || !Equals(exp, gc) {
			return fail("expected constructor %s, got %s", exp.String(), ShortName(got))
		}
		return withSubs(ok(), subs)

	case *ClassType:
		return matchClass(exp, got, subs)

	case *InterfaceType:
		return matchInterface(exp, got, subs)

	case *ProcessType:
		gp, isProcess := got.(*ProcessType)
		if !isProcess || gp.Name != exp.Name {
			return fail("expected process %s, got %s", exp.Name, ShortName(got))
		}
		return withSubs(ok(), subs)

	case *EnumType:
		ge, isEnum := got.(*EnumType)
		if !isEnum || ge.Name != exp.Name {
			return fail("expected enum %s, got %s", exp.Name, ShortName(got))
		}
		return withSubs(ok(), subs)

	case *FunctionType:
		return matchFunction(exp, got, subs)

	case *UnionType:
		if r := match(exp.A, got, strict, subs); r.Success {
			return r
		}
		if r := match(exp.B, got, strict, subs); r.Success {
			return r
		}
		return fail("%s matches neither %s nor %s", ShortName(got), exp.A.String(), exp.B.String())

	case *JoinType:
		if r := match(exp.A, got, strict, subs); !r.Success {
			return fail("%s does not satisfy %s: %s", ShortName(got), exp.A.String(), r.Message)
		}
		if r := match(exp.B, got, strict, subs); !r.Success {
			return fail("%s does not satisfy %s: %s", ShortName(got), exp.B.String(), r.Message)
		}
		return withSubs(ok(), subs)

	case *FFINamespace:
		gf, isFFI := got.(*FFINamespace)
		if !isFFI || gf.Parent.Name != exp.Parent.Name {
			return fail("expected ffi %s, got %s", exp.Parent.Name, ShortName(got))
		}
		return withSubs(ok(), subs)
	}

	// Union(A,B) ← X: X matches both, when X itself is being matched *as*
	// a union-shaped got against a plain expected (rare, e.g. widening).
	if gu, isUnion := got.(*UnionType); isUnion {
		if r := match(expected, gu.A, strict, subs); !r.Success {
			return fail("union member %s incompatible: %s", gu.A.String(), r.Message)
		}
		if r := match(expected, gu.B, strict, subs); !r.Success {
			return fail("union member %s incompatible: %s", gu.B.String(), r.Message)
		}
		return withSubs(ok(), subs)
	}

	return fail("unsupported expected type %s", ShortName(expected))
}

func withSubs(r Result, subs map[string]Type) Result {
	if r.Success {
		r.Substitutions = subs
	}
	return r
}

func matchStruct(exp *StructType, got Type, strict bool, subs map[string]Type) Result {
	gs, isStruct := got.(*StructType)
	if !isStruct {
		return fail("expected struct %s, got %s", exp.String(), ShortName(got))
	}
	for _, ef := range exp.Fields {
		gf, found := gs.FieldByName(ef.Name)
		if !found {
			return fail("missing field %q", ef.Name)
		}
		if r := match(ef.Type, gf.Type, strict, subs); !r.Success {
			return fail("field %q: %s", ef.Name, r.Message)
		}
	}
	if strict && len(gs.Fields) != len(exp.Fields) {
		return fail("struct has extra fields not permitted in strict mode")
	}
	return withSubs(ok(), subs)
}

// matchClass implements "identical declaration, or got is transitively a
// supertype descendant, with matching type args" (spec.md §4.1). Type args
// are compared via Serialize() identity since both sides should already be
// concrete instantiations by the time matching runs.
func matchClass(exp *ClassType, got Type, subs map[string]Type) Result {
	gc, isClass := got.(*ClassType)
	if !isClass {
		return fail("expected class %s, got %s", exp.Name, ShortName(got))
	}
	if gc.Name == exp.Name {
		return withSubs(ok(), subs)
	}
	for _, super := range gc.Supertypes {
		if sc, isSuperClass := Deref(super).(*ClassType); isSuperClass {
			if r := matchClass(exp, sc, subs); r.Success {
				return r
			}
		}
	}
	return fail("class %s is not %s or a descendant of it", gc.Name, exp.Name)
}

// matchInterface implements the nominal→structural rule: every method of
// exp must be present in got (by name) with a compatible signature
// (spec.md §4.1).
func matchInterface(exp *InterfaceType, got Type, subs map[string]Type) Result {
	gotMethods, err := methodsOf(got)
	if err != "" {
		return fail("expected interface %s, got %s (%s)", exp.Name, ShortName(got), err)
	}
	for _, em := range exp.AllMethods() {
		gm, found := gotMethods[em.Name]
		if !found {
			return fail("missing method %q required by interface %s", em.Name, exp.Name)
		}
		if r := methodSigCompatible(em, gm, subs); !r.Success {
			return fail("method %q: %s", em.Name, r.Message)
		}
	}
	return withSubs(ok(), subs)
}

func methodsOf(t Type) (map[string]*MethodSig, string) {
	switch v := t.(type) {
	case *ClassType:
		out := map[string]*MethodSig{}
		var walk func(c *ClassType)
		walk = func(c *ClassType) {
			for _, m := range c.Methods {
				if _, exists := out[m.Name]; !exists {
					out[m.Name] = &MethodSig{Name: m.Name, Params: m.Params, Return: m.Return}
				}
			}
			for _, s := range c.Supertypes {
				if sc, isClass := Deref(s).(*ClassType); isClass {
					walk(sc)
				}
			}
		}
		walk(v)
		return out, ""
	case *InterfaceType:
		out := map[string]*MethodSig{}
		for _, m := range v.AllMethods() {
			out[m.Name] = m
		}
		return out, ""
	case *ProcessType:
		out := map[string]*MethodSig{}
		for _, m := range v.Methods {
			out[m.Name] = &MethodSig{Name: m.Name, Params: m.Params, Return: m.Return}
		}
		return out, ""
	default:
		return nil, "not a class, interface, or process"
	}
}

func methodSigCompatible(expected *MethodSig, got *MethodSig, subs map[string]Type) Result {
	if len(expected.Params) != len(got.Params) {
		return fail("arity %d != %d", len(expected.Params), len(got.Params))
	}
	for i := range expected.Params {
		// Parameters are contravariant: got's parameter type must accept
		// everything expected's does, so match(got.Param, expected.Param).
		if r := match(got.Params[i].Type, expected.Params[i].Type, false, subs); !r.Success {
			return fail("parameter %d: %s", i, r.Message)
		}
	}
	if r := match(expected.Return, got.Return, false, subs); !r.Success {
		return fail("return type: %s", r.Message)
	}
	return ok()
}

func matchFunction(exp *FunctionType, got Type, subs map[string]Type) Result {
	gf, isFunc := got.(*FunctionType)
	if !isFunc {
		return fail("expected function type, got %s", ShortName(got))
	}
	if len(exp.Parameters) != len(gf.Parameters) {
		return fail("arity %d != %d", len(exp.Parameters), len(gf.Parameters))
	}
	for i := range exp.Parameters {
		// A generic parameter on the expected side binds to got's parameter
		// type; otherwise parameters are contravariant: got must accept what
		// exp accepts.
		var r Result
		if _, isGeneric := Deref(exp.Parameters[i].Type).(*Generic); isGeneric {
			r = match(exp.Parameters[i].Type, gf.Parameters[i].Type, false, subs)
		} else {
			r = match(gf.Parameters[i].Type, exp.Parameters[i].Type, false, subs)
		}
		if !r.Success {
			return fail("parameter %d: %s", i, r.Message)
		}
	}
	// Covariant in return.
	if r := match(exp.Return, gf.Return, false, subs); !r.Success {
		return fail("return type: %s", r.Message)
	}
	return withSubs(ok(), subs)
}
