// Package builtins provides the standard-library declarations the checker
// treats as always in scope: std.string.String, std.concurrency.runnable.
// Runnable, and the Iterable protocol foreach desugars against (spec.md
// §4.4, §9 design note on the Open Question "what protocol does foreach
// use for non-array targets").
//
// Grounded on the teacher's internal/builtins/prelude.go (a handful of
// always-registered ClassType/InterfaceType singletons consulted by the
// checker before falling through to a failed lookup).
package builtins

import "github.com/typec-go/tcheck/internal/types"

// String is std.string.String: the class every string literal evaluates
// to. It is immutable (no mutating methods) and structurally opaque
// outside this package — only the methods below are visible to checked
// code.
var String = &types.ClassType{
	Name: "String",
	Methods: []*types.Method{
		{Name: "length", Return: types.I64},
		{Name: "slice", Params: []types.Param{{Name: "start", Type: types.I64}, {Name: "end", Type: types.I64}}, Return: nil},
		{Name: "charAt", Params: []types.Param{{Name: "index", Type: types.I64}}, Return: types.I64},
		{Name: "concat", Params: []types.Param{{Name: "other", Type: nil}}, Return: nil},
		{Name: "equals", Params: []types.Param{{Name: "other", Type: nil}}, Return: types.Bool},
	},
}

// Runnable is std.concurrency.runnable.Runnable: the single-method
// interface a spawned process's entry class must satisfy.
var Runnable = &types.InterfaceType{
	Name: "Runnable",
	Methods: []*types.MethodSig{
		{Name: "run", Return: types.TheVoid},
	},
}

func init() {
	// String's self-referential method signatures (slice returns String,
	// concat/equals take a String) are tied in after the literal, since
	// Go struct literals cannot reference the variable being initialized.
	String.Methods[1].Return = String
	String.Methods[3].Params[0].Type = String
	String.Methods[3].Return = String
	String.Methods[4].Params[0].Type = String
}

// Iterable returns the structural Iterable(elem) interface a foreach
// target must satisfy when it isn't an Array: hasNext() -> bool, next() ->
// elem. A fresh InterfaceType is built per elem type rather than cached,
// since elem varies per call site and InterfaceType carries no identity
// beyond its method set for matching purposes.
func Iterable(elem types.Type) *types.InterfaceType {
	return &types.InterfaceType{
		Name: "Iterable",
		Methods: []*types.MethodSig{
			{Name: "hasNext", Return: types.Bool},
			{Name: "next", Return: elem},
		},
	}
}

// ArrayMember resolves the three intrinsic members every Array(T) carries
// without a user declaration: length (u64), extend(size: u64) -> void, and
// slice(start, end: u64) -> Array(T) (spec.md §4.3, Array is a built-in
// parametric type, not a user class).
func ArrayMember(elem types.Type, name string) (types.Type, bool) {
	switch name {
	case "length":
		return types.U64, true
	case "extend":
		return &types.FunctionType{
			Parameters: []types.Param{{Name: "size", Type: types.U64}},
			Return:     types.TheVoid,
		}, true
	case "slice":
		arr := &types.ArrayType{Elem: elem}
		return &types.FunctionType{
			Parameters: []types.Param{{Name: "start", Type: types.U64}, {Name: "end", Type: types.U64}},
			Return:     arr,
		}, true
	}
	return nil, false
}
