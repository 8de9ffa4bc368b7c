package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askiada/go-flowpilot/internal/imports"
)

func newImportsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imports [root]",
		Short: "Print the import statements found under a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := a.cfg.ScanRoot
			if len(args) == 1 {
				root = args[0]
			}

			anchored, _ := cmd.Flags().GetBool("anchored")

			opts := []imports.Option{imports.Logger(a.logger), imports.Workers(a.cfg.ScanWorkers)}
			if anchored || a.cfg.AnchoredImports {
				opts = append(opts, imports.Anchored())
			}

			found, err := imports.Scan(cmd.Context(), root, opts...)
			if err != nil {
				return err
			}

			for _, imp := range found {
				fmt.Fprintln(cmd.OutOrStdout(), imp)
			}

			return nil
		},
	}

	cmd.Flags().Bool("anchored", false, "only match statements at the start of a line")

	return cmd
}
