// Command wdlcheck runs the document analyzer over one or more WDL
// files and reports their diagnostics.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stjude-rust-labs/wdlcore/internal/stdlib"
)

func main() {
	root := &cobra.Command{
		Use:   "wdlcheck",
		Short: "Static analysis for WDL documents",
		Long:  "wdlcheck parses and type-checks WDL documents without executing them.",
	}

	root.AddCommand(newCheckCommand(), newExplainCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newExplainCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <function>",
		Short: "Print a standard-library function's signature(s)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, ok := stdlib.Lookup(args[0])
			if !ok {
				return fmt.Errorf("no such function %q", args[0])
			}
			fmt.Printf("%s (available from WDL %s)\n", args[0], fn.MinVersion())
			for _, sig := range fn.Signatures() {
				fmt.Println("  " + sig.Display(args[0]))
			}
			return nil
		},
	}
}
