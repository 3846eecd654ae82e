package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typec-go/tcheck/internal/types"
)

func TestStringMethodsTieBackSelfReferentialSignatures(t *testing.T) {
	require.Len(t, String.Methods, 5)

	slice := String.Methods[1]
	assert.Equal(t, "slice", slice.Name)
	assert.Same(t, String, slice.Return)

	concat := String.Methods[3]
	assert.Same(t, String, concat.Params[0].Type)
	assert.Same(t, String, concat.Return)

	equals := String.Methods[4]
	assert.Same(t, String, equals.Params[0].Type)
	assert.Equal(t, types.Bool, equals.Return)
}

func TestRunnableExposesSingleRunMethod(t *testing.T) {
	require.Len(t, Runnable.Methods, 1)
	assert.Equal(t, "run", Runnable.Methods[0].Name)
}

func TestIterableBuildsFreshInterfacePerElementType(t *testing.T) {
	a := Iterable(types.I64)
	b := Iterable(types.U8)
	require.Len(t, a.Methods, 2)
	assert.Equal(t, "hasNext", a.Methods[0].Name)
	assert.Equal(t, types.Bool, a.Methods[0].Return)
	assert.Equal(t, "next", a.Methods[1].Name)
	assert.Equal(t, types.I64, a.Methods[1].Return)
	assert.Equal(t, types.U8, b.Methods[1].Return)
	assert.NotSame(t, a, b)
}

func TestArrayMemberLength(t *testing.T) {
	typ, ok := ArrayMember(types.I64, "length")
	require.True(t, ok)
	assert.Equal(t, types.U64, typ)
}

func TestArrayMemberSliceReturnsArrayOfSameElement(t *testing.T) {
	typ, ok := ArrayMember(types.I64, "slice")
	require.True(t, ok)
	fn, ok := typ.(*types.FunctionType)
	require.True(t, ok)
	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, types.U64, fn.Parameters[0].Type)
	assert.Equal(t, types.U64, fn.Parameters[1].Type)
	arr, ok := fn.Return.(*types.ArrayType)
	require.True(t, ok)
	assert.Equal(t, types.I64, arr.Elem)
}

func TestArrayMemberExtendTakesSizeAndReturnsVoid(t *testing.T) {
	typ, ok := ArrayMember(types.I64, "extend")
	require.True(t, ok)
	fn, ok := typ.(*types.FunctionType)
	require.True(t, ok)
	require.Len(t, fn.Parameters, 1)
	assert.Equal(t, "size", fn.Parameters[0].Name)
	assert.Equal(t, types.U64, fn.Parameters[0].Type)
	assert.Equal(t, types.TheVoid, fn.Return)
}

func TestArrayMemberUnknownNameReportsNotFound(t *testing.T) {
	_, ok := ArrayMember(types.I64, "nonexistent")
	assert.False(t, ok)
}
