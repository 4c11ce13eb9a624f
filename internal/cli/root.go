package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/codegym/product-catalog/app/server"
	"github.com/codegym/product-catalog/config"
	"github.com/codegym/product-catalog/logger"
)

var (
	configPath string
	cfg        config.Config
	log        zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "catalog",
	Short:         "Product catalog screens and data service",
	Long:          "catalog serves the product list and add-product screens, and the JSON data service they talk to.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(".env"); err != nil {
			return err
		}
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		log = logger.New(os.Stderr, cfg.App.Env, cfg.App.LogLevel)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
}

// Execute runs the CLI
func Execute() error {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		// The logger may not be configured yet when config loading fails.
		l := zerolog.New(os.Stderr)
		l.Error().Err(err).Msg("catalog")
		return err
	}
	return nil
}

// serve runs srv until SIGINT or SIGTERM, then shuts it down gracefully.
func serve(ctx context.Context, srv *server.Server) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()
	log.Info().Str("addr", srv.Addr()).Msg("HTTP server started")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("graceful shutdown complete")
	return nil
}

func metricsFor(namespace string) *server.Metrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return server.NewMetrics(namespace)
}
