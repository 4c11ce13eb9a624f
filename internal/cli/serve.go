package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/codegym/product-catalog/app/server"
	"github.com/codegym/product-catalog/catalogapi"
	"github.com/codegym/product-catalog/locale"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog screens",
	Long:  "Serves the product list and add-product form, reading and writing through the data service at service.base_url.",
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := locale.New(cfg.App.Locale, cfg.App.Currency)
		if err != nil {
			return err
		}
		tz, err := cfg.Location()
		if err != nil {
			return err
		}

		client := catalogapi.New(cfg.Service.BaseURL, catalogapi.WithTimeout(cfg.Service.Timeout))
		ui, err := server.NewUI(server.UIOptions{
			Service: client,
			Locale:  loc,
			Now:     func() time.Time { return time.Now().In(tz) },
			Logger:  log,
			Metrics: metricsFor("catalog"),
		})
		if err != nil {
			return fmt.Errorf("build ui: %w", err)
		}

		log.Info().Str("service", cfg.Service.BaseURL).Str("locale", cfg.App.Locale).Msg("catalog screens configured")
		return serve(cmd.Context(), server.New(cfg.HTTP.Addr, ui))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
