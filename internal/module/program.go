package module

import (
	"github.com/typec-go/tcheck/internal/ast"
	"github.com/typec-go/tcheck/internal/checker"
	"github.com/typec-go/tcheck/internal/diag"
)

// Program is a set of parsed files checked together as one unit: every
// declaration across every file is registered before any body is checked,
// so a function in file B can reference a class declared in file A
// regardless of load order (spec.md §4.2).
type Program struct {
	Files   []*ast.File
	Checker *checker.Checker
}

// CheckProgram declares every top-level declaration in files, then checks
// every file's bodies, returning the reporter holding any diagnostics.
func CheckProgram(files []*ast.File) *Program {
	r := diag.NewReporter()
	c := checker.New(r)
	for _, f := range files {
		for _, d := range f.Decls {
			c.Declare(f.Package, d)
		}
	}
	for _, f := range files {
		c.CheckBodies(f)
	}
	return &Program{Files: files, Checker: c}
}
