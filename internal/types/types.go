// Package types is the type lattice: every type node the checker and
// resolver manipulate, plus equality, substitution, and serialization.
//
// Grounded on the teacher's internal/types/types.go: one Go struct per type
// kind implementing a small common interface (String/Equals/Substitute),
// generalized here from the teacher's Hindley-Milner monotypes to this
// language's nominal classes, structural structs, tagged variants, and
// generic declarations (spec.md §3).
package types

import (
	"sort"
	"strings"
)

// Type is the closed tagged-variant interface spec.md §3 describes. Every
// concrete type node in the system implements it.
type Type interface {
	// String renders a short, human-readable diagnostic form (spec.md
	// §4.1 "shortname").
	String() string
	// Serialize renders a stable identity string used for generic-cache
	// keys and type equality (spec.md §4.1 "serialize", §9 design note on
	// string interning).
	Serialize() string
	// Substitute returns a deep clone with every Generic named in subs
	// replaced by its mapped concrete type (spec.md §4.5, invariant 6).
	Substitute(subs map[string]Type) Type
}

// ---- Basic, Void, Null, Unset ----------------------------------------

// Basic is one of the built-in numeric kinds or Boolean.
type Basic struct {
	Kind string // "i8".."i64", "u8".."u64", "f32", "f64", "bool"
}

func (t *Basic) String() string                       { return t.Kind }
func (t *Basic) Serialize() string                    { return "basic:" + t.Kind }
func (t *Basic) Substitute(_ map[string]Type) Type     { return t }

// IsInteger reports whether the basic type is one of the signed/unsigned
// integer kinds.
func (t *Basic) IsInteger() bool {
	switch t.Kind {
	case "i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64":
		return true
	}
	return false
}

// IsSigned reports whether the basic type is a signed integer kind.
func (t *Basic) IsSigned() bool {
	switch t.Kind {
	case "i8", "i16", "i32", "i64":
		return true
	}
	return false
}

// IsFloat reports whether the basic type is f32 or f64.
func (t *Basic) IsFloat() bool { return t.Kind == "f32" || t.Kind == "f64" }

// Predefined basic singletons, reused everywhere a literal needs a concrete
// numeric kind.
var (
	I8  = &Basic{Kind: "i8"}
	I16 = &Basic{Kind: "i16"}
	I32 = &Basic{Kind: "i32"}
	I64 = &Basic{Kind: "i64"}
	U8  = &Basic{Kind: "u8"}
	U16 = &Basic{Kind: "u16"}
	U32 = &Basic{Kind: "u32"}
	U64 = &Basic{Kind: "u64"}
	F32 = &Basic{Kind: "f32"}
	F64 = &Basic{Kind: "f64"}
	Bool = &Basic{Kind: "bool"}
)

// BitWidth returns the storage width in bits for an integer basic type.
func BitWidth(k string) int {
	switch k {
	case "i8", "u8":
		return 8
	case "i16", "u16":
		return 16
	case "i32", "u32":
		return 32
	case "i64", "u64":
		return 64
	}
	return 0
}

// Void is the statement-like "no value" type.
type Void struct{}

func (t *Void) String() string                   { return "void" }
func (t *Void) Serialize() string                { return "void" }
func (t *Void) Substitute(map[string]Type) Type  { return t }

// Null is the type of the `null` literal.
type Null struct{}

func (t *Null) String() string                  { return "null" }
func (t *Null) Serialize() string               { return "null" }
func (t *Null) Substitute(map[string]Type) Type { return t }

// Unset is the pre-resolution placeholder, spec.md §3.
type Unset struct{}

func (t *Unset) String() string                  { return "<unset>" }
func (t *Unset) Serialize() string               { return "unset" }
func (t *Unset) Substitute(map[string]Type) Type { return t }

var (
	TheVoid  = &Void{}
	TheNull  = &Null{}
	TheUnset = &Unset{}
)

// ---- Nullable ----------------------------------------------------------

// Nullable wraps a type that may also be null. Invariant 2: Inner must not
// itself be Nullable or Null.
type Nullable struct {
	Inner Type
}

func (t *Nullable) String() string    { return t.Inner.String() + "?" }
func (t *Nullable) Serialize() string { return "nullable<" + t.Inner.Serialize() + ">" }
func (t *Nullable) Substitute(subs map[string]Type) Type {
	return &Nullable{Inner: t.Inner.Substitute(subs)}
}

// AllowedNullable reports whether t may legally be wrapped in Nullable, per
// spec.md §4.1: classes, structs, interfaces, variants, variant
// constructors, functions, processes — not basic/void/null/enum.
func AllowedNullable(t Type) bool {
	switch Deref(t).(type) {
	case *ClassType, *StructType, *InterfaceType, *VariantType, *VariantConstructor,
		*FunctionType, *ProcessType:
		return true
	default:
		return false
	}
}

// ---- Array ---------------------------------------------------------

// ArrayType is a homogeneous array.
type ArrayType struct {
	Elem Type
}

func (t *ArrayType) String() string    { return "Array(" + t.Elem.String() + ")" }
func (t *ArrayType) Serialize() string { return "array<" + t.Elem.Serialize() + ">" }
func (t *ArrayType) Substitute(subs map[string]Type) Type {
	return &ArrayType{Elem: t.Elem.Substitute(subs)}
}

// ---- Struct (structural) -----------------------------------------------

// Field is one (name, type) pair of an ordered structural struct.
type Field struct {
	Name string
	Type Type
}

// StructType is structural: field order matters for layout, equality is by
// name+type set (spec.md §3).
type StructType struct {
	Fields []Field
}

func (t *StructType) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = f.Name + ": " + f.Type.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (t *StructType) Serialize() string {
	sorted := append([]Field(nil), t.Fields...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	parts := make([]string, len(sorted))
	for i, f := range sorted {
		parts[i] = f.Name + ":" + f.Type.Serialize()
	}
	return "struct{" + strings.Join(parts, ",") + "}"
}

func (t *StructType) Substitute(subs map[string]Type) Type {
	fields := make([]Field, len(t.Fields))
	for i, f := range t.Fields {
		fields[i] = Field{Name: f.Name, Type: f.Type.Substitute(subs)}
	}
	return &StructType{Fields: fields}
}

// FieldByName looks up a field by name, returning (field, true) or a zero
// value and false.
func (t *StructType) FieldByName(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// ---- Enum ---------------------------------------------------------------

// EnumMember is one named constant of an Enum, with an optional literal
// value (defaulting sequentially like a C-style enum when omitted).
type EnumMember struct {
	Name        string
	Value       *int64
	StringValue string
	LiteralKind string // "int", "string", "" when unset
}

// EnumType is a closed set of named members over an integer storage kind
// (or "unset" pre-resolution).
type EnumType struct {
	Name       string
	TargetKind string // one of i8..u64, or "unset"
	Members    []EnumMember
}

func (t *EnumType) String() string    { return "enum " + t.Name }
func (t *EnumType) Serialize() string { return "enum:" + t.Name }
func (t *EnumType) Substitute(map[string]Type) Type { return t }

// MemberByName looks up an enum member by name.
func (t *EnumType) MemberByName(name string) (EnumMember, bool) {
	for _, m := range t.Members {
		if m.Name == name {
			return m, true
		}
	}
	return EnumMember{}, false
}

// ---- Variant / VariantConstructor ---------------------------------------

// VariantConstructor is one named case of a Variant, carrying its own
// parameter list. Invariant 4: Parent is always set to the enclosing
// Variant.
type VariantConstructor struct {
	Name       string
	Parameters []Param
	Parent     *VariantType
}

func (t *VariantConstructor) String() string {
	if t.Parent == nil {
		return t.Name
	}
	return t.Parent.Name + "." + t.Name
}
func (t *VariantConstructor) Serialize() string {
	parent := "?"
	if t.Parent != nil {
		parent = t.Parent.Name
	}
	return "ctor:" + parent + "." + t.Name
}
func (t *VariantConstructor) Substitute(subs map[string]Type) Type {
	params := make([]Param, len(t.Parameters))
	for i, p := range t.Parameters {
		params[i] = Param{Name: p.Name, Type: p.Type.Substitute(subs), Mutable: p.Mutable}
	}
	return &VariantConstructor{Name: t.Name, Parameters: params, Parent: t.Parent}
}

// ParamByName looks up a constructor parameter by name.
func (t *VariantConstructor) ParamByName(name string) (Param, bool) {
	for _, p := range t.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// VariantType is a closed tagged union; its cases are VariantConstructors.
type VariantType struct {
	Name         string
	Generics     []*Generic
	Constructors []*VariantConstructor
}

func (t *VariantType) String() string    { return "variant " + t.Name }
func (t *VariantType) Serialize() string { return "variant:" + t.Name }
func (t *VariantType) Substitute(subs map[string]Type) Type {
	clone := &VariantType{Name: t.Name}
	ctors := make([]*VariantConstructor, len(t.Constructors))
	for i, c := range t.Constructors {
		sub := c.Substitute(subs).(*VariantConstructor)
		sub.Parent = clone
		ctors[i] = sub
	}
	clone.Constructors = ctors
	return clone
}

// ConstructorByName looks up a case by name.
func (t *VariantType) ConstructorByName(name string) (*VariantConstructor, bool) {
	for _, c := range t.Constructors {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// ---- Class / Interface / Process -----------------------------------------

// Param is a (name, type, mutable?) triple shared by function parameters,
// variant-constructor parameters, and FFI method signatures.
type Param struct {
	Name    string
	Type    Type
	Mutable bool
}

// Attribute is a (name, type, static?) class/process field.
type Attribute struct {
	Name   string
	Type   Type
	Static bool
}

// Method is a concrete class/process method signature plus body marker
// (the body itself lives on the owning ast.FunctionDecl; the type lattice
// only needs the signature for matching).
type Method struct {
	Name     string
	Params   []Param
	Return   Type
	Static   bool
	Override bool
}

// MethodSig is an interface method signature (no body).
type MethodSig struct {
	Name   string
	Params []Param
	Return Type
}

// ClassType is a nominal class. Invariant 5: attribute and method names are
// mutually disjoint.
type ClassType struct {
	Name       string
	Generics   []*Generic
	Supertypes []Type // Reference -> Class | Interface, pre-resolution
	Attributes []Attribute
	Methods    []*Method
}

func (t *ClassType) String() string    { return t.Name }
func (t *ClassType) Serialize() string { return "class:" + t.Name }
func (t *ClassType) Substitute(subs map[string]Type) Type {
	clone := &ClassType{Name: t.Name}
	attrs := make([]Attribute, len(t.Attributes))
	for i, a := range t.Attributes {
		attrs[i] = Attribute{Name: a.Name, Type: a.Type.Substitute(subs), Static: a.Static}
	}
	methods := make([]*Method, len(t.Methods))
	for i, m := range t.Methods {
		methods[i] = substituteMethod(m, subs)
	}
	super := make([]Type, len(t.Supertypes))
	for i, s := range t.Supertypes {
		super[i] = s.Substitute(subs)
	}
	clone.Attributes, clone.Methods, clone.Supertypes = attrs, methods, super
	return clone
}

func substituteMethod(m *Method, subs map[string]Type) *Method {
	params := make([]Param, len(m.Params))
	for i, p := range m.Params {
		params[i] = Param{Name: p.Name, Type: p.Type.Substitute(subs), Mutable: p.Mutable}
	}
	return &Method{Name: m.Name, Params: params, Return: m.Return.Substitute(subs), Static: m.Static, Override: m.Override}
}

// MethodByName looks up a method by name (not including supertypes).
func (t *ClassType) MethodByName(name string) (*Method, bool) {
	for _, m := range t.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// AttributeByName looks up an attribute by name (not including supertypes).
func (t *ClassType) AttributeByName(name string) (Attribute, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// InterfaceType is a nominal interface: a set of method signatures plus
// supertype interfaces.
type InterfaceType struct {
	Name       string
	Generics   []*Generic
	Supertypes []Type // Reference -> Interface
	Methods    []*MethodSig
}

func (t *InterfaceType) String() string    { return t.Name }
func (t *InterfaceType) Serialize() string { return "interface:" + t.Name }
func (t *InterfaceType) Substitute(subs map[string]Type) Type {
	clone := &InterfaceType{Name: t.Name}
	methods := make([]*MethodSig, len(t.Methods))
	for i, m := range t.Methods {
		params := make([]Param, len(m.Params))
		for j, p := range m.Params {
			params[j] = Param{Name: p.Name, Type: p.Type.Substitute(subs), Mutable: p.Mutable}
		}
		methods[i] = &MethodSig{Name: m.Name, Params: params, Return: m.Return.Substitute(subs)}
	}
	super := make([]Type, len(t.Supertypes))
	for i, s := range t.Supertypes {
		super[i] = s.Substitute(subs)
	}
	clone.Methods, clone.Supertypes = methods, super
	return clone
}

// MethodByName looks up a method signature by name (not including
// supertypes).
func (t *InterfaceType) MethodByName(name string) (*MethodSig, bool) {
	for _, m := range t.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// AllMethods walks supertype interfaces and returns the full signature set,
// used by the Interface <- Class|Interface matcher rule (spec.md §4.1).
func (t *InterfaceType) AllMethods() []*MethodSig {
	seen := map[string]bool{}
	var out []*MethodSig
	var walk func(i *InterfaceType)
	walk = func(i *InterfaceType) {
		for _, m := range i.Methods {
			if !seen[m.Name] {
				seen[m.Name] = true
				out = append(out, m)
			}
		}
		for _, s := range i.Supertypes {
			if super, ok := Deref(s).(*InterfaceType); ok {
				walk(super)
			}
		}
	}
	walk(t)
	return out
}

// ProcessType is structurally a class with an event-method discipline
// (spec.md §3); it reuses Attribute/Method shapes directly.
type ProcessType struct {
	Name       string
	Attributes []Attribute
	Methods    []*Method
}

func (t *ProcessType) String() string    { return "process " + t.Name }
func (t *ProcessType) Serialize() string { return "process:" + t.Name }
func (t *ProcessType) Substitute(subs map[string]Type) Type {
	clone := &ProcessType{Name: t.Name}
	attrs := make([]Attribute, len(t.Attributes))
	for i, a := range t.Attributes {
		attrs[i] = Attribute{Name: a.Name, Type: a.Type.Substitute(subs), Static: a.Static}
	}
	methods := make([]*Method, len(t.Methods))
	for i, m := range t.Methods {
		methods[i] = substituteMethod(m, subs)
	}
	clone.Attributes, clone.Methods = attrs, methods
	return clone
}

// MethodByName looks up a method by name.
func (t *ProcessType) MethodByName(name string) (*Method, bool) {
	for _, m := range t.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// ---- FunctionType ---------------------------------------------------------

// FunctionType is the type of a function value (lambda or named function).
type FunctionType struct {
	Parameters []Param
	Return     Type
}

func (t *FunctionType) String() string {
	parts := make([]string, len(t.Parameters))
	for i, p := range t.Parameters {
		parts[i] = p.Name + ": " + p.Type.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + t.Return.String()
}
func (t *FunctionType) Serialize() string {
	parts := make([]string, len(t.Parameters))
	for i, p := range t.Parameters {
		parts[i] = p.Type.Serialize()
	}
	return "fn(" + strings.Join(parts, ",") + ")->" + t.Return.Serialize()
}
func (t *FunctionType) Substitute(subs map[string]Type) Type {
	params := make([]Param, len(t.Parameters))
	for i, p := range t.Parameters {
		params[i] = Param{Name: p.Name, Type: p.Type.Substitute(subs), Mutable: p.Mutable}
	}
	return &FunctionType{Parameters: params, Return: t.Return.Substitute(subs)}
}

// ---- Union / Join ---------------------------------------------------------

// UnionType is a set-theoretic union of two types (spec.md §3).
type UnionType struct{ A, B Type }

func (t *UnionType) String() string    { return t.A.String() + " | " + t.B.String() }
func (t *UnionType) Serialize() string { return "union<" + t.A.Serialize() + "," + t.B.Serialize() + ">" }
func (t *UnionType) Substitute(subs map[string]Type) Type {
	return &UnionType{A: t.A.Substitute(subs), B: t.B.Substitute(subs)}
}

// JoinType is a set-theoretic intersection of two types (spec.md §3).
type JoinType struct{ A, B Type }

func (t *JoinType) String() string    { return t.A.String() + " & " + t.B.String() }
func (t *JoinType) Serialize() string { return "join<" + t.A.Serialize() + "," + t.B.Serialize() + ">" }
func (t *JoinType) Substitute(subs map[string]Type) Type {
	return &JoinType{A: t.A.Substitute(subs), B: t.B.Substitute(subs)}
}

// ---- Reference -------------------------------------------------------

// DeclaredType is the symbol-table entry for a user-declared type (class,
// struct alias, interface, enum, variant, or FFI namespace). It lives in
// this package (rather than internal/symbols) because Reference must hold
// a pointer to one, and internal/symbols imports internal/types — not the
// other way around.
type DeclaredType struct {
	ID             string // stable arena index, stamped by internal/symbols
	Name           string
	Generics       []*Generic
	Type           Type // the original, never-mutated declaration (invariant 6)
	ParentPackage  []string
	Instantiations map[string]Type // Serialize(typeArgs) -> cloned, substituted Type
}

// Instantiate returns the cached instantiation for typeArgs if present,
// otherwise builds, caches, and returns a fresh substitution clone. The
// original Type is never mutated (spec.md §4.5, invariant 6).
func (d *DeclaredType) Instantiate(typeArgs []Type) Type {
	if len(d.Generics) == 0 {
		return d.Type
	}
	key := serializeTypeArgs(typeArgs)
	if d.Instantiations == nil {
		d.Instantiations = map[string]Type{}
	}
	if cached, ok := d.Instantiations[key]; ok {
		return cached
	}
	subs := map[string]Type{}
	for i, g := range d.Generics {
		if i < len(typeArgs) {
			subs[g.Name] = typeArgs[i]
		}
	}
	cloned := d.Type.Substitute(subs)
	d.Instantiations[key] = cloned
	return cloned
}

func serializeTypeArgs(args []Type) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Serialize()
	}
	return strings.Join(parts, ",")
}

// DeclaredFFI is the symbol for an `impl ... from "path"` FFI declaration.
type DeclaredFFI struct {
	Name       string
	SourcePath string
	Methods    []Method
}

// FFINamespace is the type of an identifier naming an FFI declaration.
type FFINamespace struct {
	Parent *DeclaredFFI
}

func (t *FFINamespace) String() string { return "ffi:" + t.Parent.Name }
func (t *FFINamespace) Serialize() string { return "ffi:" + t.Parent.Name }
func (t *FFINamespace) Substitute(map[string]Type) Type { return t }

// Reference is the only type form that may appear in source prior to
// resolution (spec.md §3). After the resolve pass, reachable declarations
// replace it with ResolvedBase; ResolvedDecl records where it came from so
// the checker and emitter can still find the declaration, and MetaClass/
// MetaInterface/... construction can recover the declared name.
type Reference struct {
	PackagePath  []string
	Name         string
	TypeArgs     []Type
	ResolvedBase Type
	ResolvedDecl *DeclaredType
}

func (t *Reference) String() string {
	if t.ResolvedBase != nil {
		return t.ResolvedBase.String()
	}
	name := strings.Join(append(append([]string{}, t.PackagePath...), t.Name), ".")
	if len(t.TypeArgs) == 0 {
		return name
	}
	parts := make([]string, len(t.TypeArgs))
	for i, a := range t.TypeArgs {
		parts[i] = a.String()
	}
	return name + "<" + strings.Join(parts, ", ") + ">"
}
func (t *Reference) Serialize() string {
	if t.ResolvedBase != nil {
		return t.ResolvedBase.Serialize()
	}
	return "ref:" + strings.Join(t.PackagePath, ".") + "." + t.Name
}
func (t *Reference) Substitute(subs map[string]Type) Type {
	if t.ResolvedBase != nil {
		return t.ResolvedBase.Substitute(subs)
	}
	return t
}

// Resolved reports whether this reference has been linked to a declaration.
func (t *Reference) Resolved() bool { return t.ResolvedBase != nil }

// ---- Generic ---------------------------------------------------------

// Generic is a placeholder bound within a type-parameter scope (invariant
// 3: every Generic has either a constraint or none, and all appearances of
// the same name within one declaration's scope refer to the same node —
// enforced by symbols.Context handing out one *Generic per name per scope).
type Generic struct {
	Name       string
	Constraint Type
}

func (t *Generic) String() string { return t.Name }
func (t *Generic) Serialize() string {
	if t.Constraint != nil {
		return "generic:" + t.Name + ":" + t.Constraint.Serialize()
	}
	return "generic:" + t.Name
}
func (t *Generic) Substitute(subs map[string]Type) Type {
	if sub, ok := subs[t.Name]; ok {
		return sub
	}
	return t
}

// ---- Meta-types ------------------------------------------------------

// MetaClass is the type of an expression that *names* a class (e.g. the
// bare identifier `ClassName`), used on the left of static member access
// and constructor selection.
type MetaClass struct{ Of *ClassType }

func (t *MetaClass) String() string                  { return "meta<" + t.Of.Name + ">" }
func (t *MetaClass) Serialize() string                { return "meta:class:" + t.Of.Name }
func (t *MetaClass) Substitute(map[string]Type) Type  { return t }

// MetaInterface is the type of an expression naming an interface.
type MetaInterface struct{ Of *InterfaceType }

func (t *MetaInterface) String() string                 { return "meta<" + t.Of.Name + ">" }
func (t *MetaInterface) Serialize() string               { return "meta:interface:" + t.Of.Name }
func (t *MetaInterface) Substitute(map[string]Type) Type { return t }

// MetaEnum is the type of an expression naming an enum.
type MetaEnum struct{ Of *EnumType }

func (t *MetaEnum) String() string                 { return "meta<" + t.Of.Name + ">" }
func (t *MetaEnum) Serialize() string               { return "meta:enum:" + t.Of.Name }
func (t *MetaEnum) Substitute(map[string]Type) Type { return t }

// MetaVariant is the type of an expression naming a variant.
type MetaVariant struct{ Of *VariantType }

func (t *MetaVariant) String() string                 { return "meta<" + t.Of.Name + ">" }
func (t *MetaVariant) Serialize() string               { return "meta:variant:" + t.Of.Name }
func (t *MetaVariant) Substitute(map[string]Type) Type { return t }

// ---- Helpers shared across the lattice ------------------------------------

// Deref follows Reference chains until it reaches a non-Reference type, per
// spec.md §4.1 "dereference".
func Deref(t Type) Type {
	for {
		ref, ok := t.(*Reference)
		if !ok || ref.ResolvedBase == nil {
			return t
		}
		t = ref.ResolvedBase
	}
}

// Equals is structural identity via Serialize, the canonical-identity
// strategy spec.md §9 recommends.
func Equals(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Serialize() == b.Serialize()
}

// ShortName renders a diagnostic-friendly name for t (spec.md §4.1
// "shortname").
func ShortName(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return Deref(t).String()
}

