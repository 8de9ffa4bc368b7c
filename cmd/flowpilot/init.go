package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/askiada/go-flowpilot/pkg/flowpilot"
	"github.com/askiada/go-flowpilot/pkg/registry"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init [name]",
		Short: "Create a project directory with an empty script per category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.cfg.Project
			if len(args) == 1 {
				name = args[0]
			}

			opts := []flowpilot.Option{
				flowpilot.WithLogger(a.logger),
				flowpilot.WithOutput(cmd.OutOrStdout()),
			}
			if a.cfg.OutputDir != "" {
				opts = append(opts, flowpilot.WithDir(a.cfg.OutputDir))
			}

			if len(a.cfg.Categories) > 0 {
				opts = append(opts, flowpilot.WithCategories(a.cfg.Categories...))
			}

			fp, err := flowpilot.New(name, opts...)
			if err != nil {
				return err
			}

			written, err := fp.WriteCategoryToFile(cmd.Context(), registry.AllCategories, "", registry.Imports(nil))
			if err != nil {
				return err
			}

			a.logger.Info("project initialised", zap.String("project", name), zap.Int("scripts", len(written)))

			for _, path := range written {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}

			return nil
		},
	}
}
