package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-flowpilot/internal/source"
)

func newStripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strip <file>",
		Short: "Print a file with its tagging decorator removed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(err, "unable to read %s", args[0])
			}

			fmt.Fprint(cmd.OutOrStdout(), source.StripDecorator(string(data)))

			return nil
		},
	}
}
