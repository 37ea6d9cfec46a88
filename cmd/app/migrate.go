package main

import (
	"github.com/safatanc/vidtube/injector"
	"github.com/safatanc/vidtube/internal/infrastructures"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cleanup, err := injector.InitializeDatabase(infrastructures.Config)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := infrastructures.Migrate(db); err != nil {
				return err
			}
			logrus.Info("database migrated")
			return nil
		},
	}
}
