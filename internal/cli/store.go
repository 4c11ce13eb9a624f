package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codegym/product-catalog/app/server"
	"github.com/codegym/product-catalog/migrations"
	"github.com/codegym/product-catalog/models"
)

var skipMigrations bool

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Serve the product data service",
	Long:  "Applies pending migrations to store.database_url and serves the /products and /categories JSON endpoints.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !skipMigrations {
			applied, err := migrations.Run(cmd.Context(), cfg.Store.DatabaseURL)
			if err != nil {
				return fmt.Errorf("migrations failed: %w", err)
			}
			log.Info().Ints64("versions", applied).Msg("migrations applied")
		}

		db, err := models.Open(cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer func() { _ = sqlDB.Close() }()
		log.Info().Msg("db connected")

		h := server.NewStore(db, log, metricsFor("catalog_store"))
		return serve(cmd.Context(), server.New(cfg.Store.Addr, h))
	},
}

func init() {
	storeCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on start")
	rootCmd.AddCommand(storeCmd)
}
