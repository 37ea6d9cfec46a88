package main

import (
	"os"

	"github.com/safatanc/vidtube/internal/infrastructures"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "vidtube",
		Short:         "Video sharing API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := infrastructures.LoadConfig()
			infrastructures.SetupLogger(cfg)
		},
	}
	rootCmd.AddCommand(newServeCommand(), newMigrateCommand())

	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
