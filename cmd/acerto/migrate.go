package main

import (
	"github.com/spf13/cobra"

	"github.com/acerto/acerto/internal/storage/sqlite"
	"github.com/acerto/acerto/pkg/logging"
)

func migrateCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the SQLite schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load()
			if err != nil {
				return err
			}
			logger := logging.Setup(cfg.LogLevel)

			store, err := sqlite.New(cmd.Context(), cfg.Store.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			logger.Info("Migrations applied", "database", cfg.Store.DBPath)
			return nil
		},
	}
}
