package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/askiada/go-flowpilot/internal/config"
	"github.com/askiada/go-flowpilot/internal/logging"
)

type app struct {
	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:           "flowpilot",
		Short:         "Organise data processing functions into categorised scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfgFile, _ := cmd.Flags().GetString("config")

			err := config.Init(cfgFile)
			if err != nil {
				return err
			}

			a.cfg, err = config.Load()
			if err != nil {
				return err
			}

			a.logger, err = logging.New(a.cfg.Verbose)

			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default .flowpilot.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(
		newImportsCmd(a),
		newInitCmd(a),
		newStripCmd(),
	)

	return rootCmd
}
