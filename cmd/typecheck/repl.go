package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/typec-go/tcheck/internal/checker"
	"github.com/typec-go/tcheck/internal/diag"
	"github.com/typec-go/tcheck/internal/parserx"
	"github.com/typec-go/tcheck/internal/symbols"
)

func newREPLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively infer the type of expressions",
		RunE: func(cmd *cobra.Command, args []string) error {
			runREPL()
			return nil
		},
	}
}

// runREPL infers the type of one expression per line. Interactive
// terminals get liner's history/line-editing; piped input falls back to
// plain bufio.Scanner, mirroring the teacher's REPL which also detects a
// non-TTY stdin to decide whether readline support is worth the overhead.
func runREPL() {
	fmt.Println(bold("tcheck repl") + dim(" — type an expression, Ctrl-D to exit"))

	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		runInteractiveREPL()
		return
	}
	runPipedREPL()
}

func runInteractiveREPL() {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	var history []string
	for {
		input, err := line.Prompt("tc> ")
		if err != nil {
			break
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		history = append(history, input)
		evalAndPrint(input)
	}
	fmt.Printf("\n%s (%d expressions evaluated)\n", dim("goodbye"), len(history))
}

func runPipedREPL() {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		evalAndPrint(input)
	}
}

func evalAndPrint(input string) {
	p := parserx.New(input, "<repl>")
	ex := p.ParseExpr()
	if ex == nil {
		for _, e := range p.Errors() {
			fmt.Printf("%s %v\n", red("parse error:"), e)
		}
		return
	}

	r := diag.NewReporter()
	c := checker.New(r)
	ctx := symbols.NewRoot(nil)
	t := c.InferExpr(ctx, nil, ex)

	for _, rep := range r.Reports() {
		fmt.Printf("%s %s\n", red(rep.Code), rep.Message)
	}
	if t != nil {
		fmt.Printf("%s %s\n", cyan("::"), yellow(t.String()))
	}
}
