package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		log.Info().Str("dialect", string(cfg.StoreOptions().Dialect)).Msg("schema is up to date")
		return nil
	},
}
