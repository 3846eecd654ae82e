package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typec-go/tcheck/internal/ast"
)

func TestDescribeDeclCoversEveryDeclKind(t *testing.T) {
	cases := []struct {
		name string
		decl ast.Decl
		want map[string]any
	}{
		{"function", &ast.FunctionDecl{Name: "f", Params: []ast.ParamDecl{{Name: "a"}}},
			map[string]any{"kind": "function", "name": "f", "params": 1}},
		{"class", &ast.ClassDecl{Name: "C", Methods: []*ast.FunctionDecl{{Name: "m"}}, Attributes: []ast.AttributeDecl{{Name: "x"}}},
			map[string]any{"kind": "class", "name": "C", "methods": 1, "attributes": 1}},
		{"interface", &ast.InterfaceDecl{Name: "I"},
			map[string]any{"kind": "interface", "name": "I", "methods": 0}},
		{"process", &ast.ProcessDecl{Name: "P"},
			map[string]any{"kind": "process", "name": "P", "methods": 0}},
		{"enum", &ast.EnumDecl{Name: "E"},
			map[string]any{"kind": "enum", "name": "E", "members": 0}},
		{"variant", &ast.VariantDecl{Name: "V"},
			map[string]any{"kind": "variant", "name": "V", "constructors": 0}},
		{"type_alias", &ast.TypeAliasDecl{Name: "T"},
			map[string]any{"kind": "type_alias", "name": "T"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, describeDecl(tc.decl))
		})
	}

	importDecl := &ast.ImportDecl{Path: []string{"std", "string"}, Symbols: []string{"String"}}
	got := describeDecl(importDecl)
	require.Equal(t, map[string]any{"kind": "import", "path": []string{"std", "string"}, "symbols": []string{"String"}}, got)

	ffi := &ast.FFIDecl{Name: "native_add", SourcePath: "add.so"}
	gotFFI := describeDecl(ffi)
	require.Equal(t, map[string]any{"kind": "ffi", "name": "native_add", "source": "add.so"}, gotFFI)
}

func TestDescribeDeclUnknownKindFallsBackToGoTypeName(t *testing.T) {
	got := describeDecl(nil)
	assert.Contains(t, got, "kind")
	assert.Equal(t, map[string]any{"kind": "<nil>"}, got)
}

func TestDescribeFileWrapsPackageAndDecls(t *testing.T) {
	f := &ast.File{
		Package: []string{"app", "main"},
		Decls:   []ast.Decl{&ast.FunctionDecl{Name: "main"}},
	}
	got := describeFile(f)
	assert.Equal(t, []string{"app", "main"}, got["package"])
	decls := got["decls"].([]any)
	require.Len(t, decls, 1)
	assert.Equal(t, "main", decls[0].(map[string]any)["name"])
}
