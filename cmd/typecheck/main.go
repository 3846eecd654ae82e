// Command typecheck is the CLI front-end for the type checker: it wires
// the lexer/parser/module loader/checker pipeline into a cobra command
// tree, grounded on the teacher's cmd/ailang/main.go (colorized
// subcommand dispatch for run/repl/check/watch).
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// Version is set by ldflags during release builds.
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "typecheck",
		Short:   "Bidirectional type checker",
		Version: Version,
	}
	root.AddCommand(newCheckCmd())
	root.AddCommand(newASTCmd())
	root.AddCommand(newREPLCmd())
	root.AddCommand(newExplainCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		os.Exit(1)
	}
}
