package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/typec-go/tcheck/internal/diag"
)

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <code>",
		Short: "Describe a diagnostic code (e.g. TC001)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, ok := diag.Registry[args[0]]
			if !ok {
				return fmt.Errorf("unknown diagnostic code %q", args[0])
			}
			fmt.Printf("%s  %s\n", bold(info.Code), info.Description)
			fmt.Printf("  phase:    %s\n", info.Phase)
			fmt.Printf("  category: %s\n", info.Category)
			fmt.Printf("  fatal:    %v\n", diag.IsFatal(info.Code))
			return nil
		},
	}
}
