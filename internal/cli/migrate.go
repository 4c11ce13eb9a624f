package cli

import (
	"github.com/spf13/cobra"

	"github.com/codegym/product-catalog/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending migrations",
	Long:  "Applies all migrations that haven't been applied yet to store.database_url",
	RunE: func(cmd *cobra.Command, args []string) error {
		applied, err := migrations.Run(cmd.Context(), cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			log.Info().Msg("no pending migrations")
			return nil
		}
		log.Info().Ints64("versions", applied).Msgf("applied %d migration(s)", len(applied))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
