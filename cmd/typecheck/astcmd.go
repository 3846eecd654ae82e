package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/typec-go/tcheck/internal/ast"
	"github.com/typec-go/tcheck/internal/module"
)

func newASTCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <file>",
		Short: "Parse a file and print its syntax tree as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, errs := module.ParseFiles(args)
			for _, e := range errs {
				fmt.Printf("%s %v\n", red("parse error:"), e)
			}
			if len(files) == 0 {
				return fmt.Errorf("no file parsed")
			}
			out, err := yaml.Marshal(describeFile(files[0]))
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		},
	}
}

// describeFile renders a parsed file as a plain nested map, deliberately
// shallow rather than reflecting over the full ast.Node graph: pre-check
// type annotations reference only leaf type.Type values, so this never
// needs to guard against the Parent/Constructors cycle types.VariantType
// grows once the checker resolves declarations.
func describeFile(f *ast.File) map[string]any {
	decls := make([]any, len(f.Decls))
	for i, d := range f.Decls {
		decls[i] = describeDecl(d)
	}
	return map[string]any{
		"package": f.Package,
		"decls":   decls,
	}
}

func describeDecl(d ast.Decl) any {
	switch v := d.(type) {
	case *ast.FunctionDecl:
		return map[string]any{"kind": "function", "name": v.Name, "params": len(v.Params)}
	case *ast.ClassDecl:
		return map[string]any{"kind": "class", "name": v.Name, "methods": len(v.Methods), "attributes": len(v.Attributes)}
	case *ast.InterfaceDecl:
		return map[string]any{"kind": "interface", "name": v.Name, "methods": len(v.Methods)}
	case *ast.ProcessDecl:
		return map[string]any{"kind": "process", "name": v.Name, "methods": len(v.Methods)}
	case *ast.EnumDecl:
		return map[string]any{"kind": "enum", "name": v.Name, "members": len(v.Members)}
	case *ast.VariantDecl:
		return map[string]any{"kind": "variant", "name": v.Name, "constructors": len(v.Constructors)}
	case *ast.TypeAliasDecl:
		return map[string]any{"kind": "type_alias", "name": v.Name}
	case *ast.FFIDecl:
		return map[string]any{"kind": "ffi", "name": v.Name, "source": v.SourcePath}
	case *ast.ImportDecl:
		return map[string]any{"kind": "import", "path": v.Path, "symbols": v.Symbols}
	default:
		return map[string]any{"kind": fmt.Sprintf("%T", d)}
	}
}
