// Package symbols implements the lexically scoped symbol table (spec.md
// §3 "Context", §4.2) and the declaration kinds it binds.
//
// Grounded on the teacher's internal/types/env.go (TypeEnv: parent-chained
// bindings map, Extend/Lookup), generalized with the environment-flag
// record and owner pointer spec.md §3 requires, and the arena-of-stable-
// indices design note from spec.md §9 (satisfied here with google/uuid
// stamps on each DeclaredType/DeclaredFunction, giving every declaration a
// stable ID independent of pointer identity).
package symbols

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/typec-go/tcheck/internal/types"
)

// DeclaredVariable is a `let`/`const`/`mut` binding.
type DeclaredVariable struct {
	Name   string
	Type   types.Type
	Const  bool
	Strict bool
}

// FunctionArgument is one parameter of a DeclaredFunction.
type FunctionArgument struct {
	Name    string
	Type    types.Type
	Mutable bool
}

// DeclaredFunction is a function or method declaration, including its
// per-type-argument instantiation cache (spec.md §4.5).
type DeclaredFunction struct {
	ID             string
	Name           string
	Generics       []*types.Generic
	Prototype      *types.FunctionType // the original, uninstantiated signature
	Instantiations map[string]*types.FunctionType
}

// Instantiate returns the cached instantiated prototype for typeArgs,
// building and caching it on first use. The original Prototype is never
// mutated (spec.md §4.5).
func (f *DeclaredFunction) Instantiate(typeArgs []types.Type) (*types.FunctionType, error) {
	if len(f.Generics) == 0 {
		return f.Prototype, nil
	}
	if len(typeArgs) != len(f.Generics) {
		return nil, fmt.Errorf("expected %d type argument(s), got %d", len(f.Generics), len(typeArgs))
	}
	key := instKey(typeArgs)
	if f.Instantiations == nil {
		f.Instantiations = map[string]*types.FunctionType{}
	}
	if cached, ok := f.Instantiations[key]; ok {
		return cached, nil
	}
	subs := map[string]types.Type{}
	for i, g := range f.Generics {
		subs[g.Name] = typeArgs[i]
	}
	cloned := f.Prototype.Substitute(subs).(*types.FunctionType)
	f.Instantiations[key] = cloned
	return cloned, nil
}

func instKey(args []types.Type) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += ","
		}
		s += a.Serialize()
	}
	return s
}

// VariablePattern is the symbol bound by a pattern arm (spec.md §3). Its
// SymbolPointer-equivalent identity is the pointer to this struct itself;
// the pattern AST node holds a pointer to exactly one of these, bound on
// first inference and never rebound across clones (spec.md §4.6).
type VariablePattern struct {
	Name  string
	Type  types.Type
	Const bool
}

// NewID mints a stable arena index for a DeclaredType/DeclaredFunction.
func NewID() string {
	return uuid.NewString()
}
