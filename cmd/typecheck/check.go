package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/typec-go/tcheck/internal/diag"
	"github.com/typec-go/tcheck/internal/module"
)

func newCheckCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "check <file> [files...]",
		Short: "Type check one or more source files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args, jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit diagnostics as JSON reports")
	return cmd
}

func runCheck(paths []string, jsonOut bool) error {
	files, parseErrs := module.ParseFiles(paths)
	for _, e := range parseErrs {
		fmt.Printf("%s %v\n", red("parse error:"), e)
	}

	prog := module.CheckProgram(files)
	reports := prog.Checker.Reporter.Reports()

	if len(reports) == 0 && len(parseErrs) == 0 {
		fmt.Printf("%s %d file(s) checked, no errors\n", green("ok"), len(files))
		return nil
	}

	for _, rep := range reports {
		printReport(rep, jsonOut)
	}
	if prog.Checker.Reporter.HasErrors() || len(parseErrs) > 0 {
		return fmt.Errorf("%d diagnostic(s)", len(reports)+len(parseErrs))
	}
	fmt.Printf("%s %d file(s) checked, %d warning(s)\n", yellow("ok"), len(files), len(prog.Checker.Reporter.Warnings()))
	return nil
}

func printReport(rep *diag.Report, jsonOut bool) {
	if jsonOut {
		js, err := rep.ToJSON(true)
		if err != nil {
			fmt.Printf("%s %v\n", red("error:"), err)
			return
		}
		fmt.Println(js)
		return
	}
	loc := "?"
	if rep.Location != nil {
		loc = rep.Location.String()
	}
	label := red(rep.Code)
	if rep.Severity == diag.SeverityWarning {
		label = yellow(rep.Code)
	}
	fmt.Printf("%s %s %s: %s\n", label, dim("["+rep.Phase+"]"), cyan(loc), rep.Message)
}
