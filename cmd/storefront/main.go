package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	cartapp "github.com/neeste/storefront/internal/cart/app"
	"github.com/neeste/storefront/internal/cart/infra/sqlite"
	checkoutapp "github.com/neeste/storefront/internal/checkout/app"
	"github.com/neeste/storefront/internal/checkout/infra/adapter"
	checkoutrest "github.com/neeste/storefront/internal/checkout/infra/rest"
	paymentrest "github.com/neeste/storefront/internal/payment/infra/rest"
	"github.com/neeste/storefront/internal/settings"
	"github.com/neeste/storefront/pkg/config"
	"github.com/neeste/storefront/pkg/logger"
)

// deps wires the checkout core for the CLI. The cart lives in a local
// SQLite file so it survives between invocations, mirroring the web
// client's durable cart.
type deps struct {
	cfg      config.Config
	log      *slog.Logger
	store    *sqlite.Store
	cart     *cartapp.Service
	checkout *checkoutapp.Service
	gateway  *paymentrest.Client
	site     *settings.Loader
}

func buildDeps() (*deps, error) {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
		Format:  "text",
	})

	store, err := sqlite.Open(cfg.CartDBPath)
	if err != nil {
		return nil, fmt.Errorf("open cart store: %w", err)
	}

	cartSvc := cartapp.NewService(store)
	api := checkoutrest.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	checkoutSvc := checkoutapp.NewService(adapter.NewCartServiceReader(cartSvc), api, api, api, 0)

	return &deps{
		cfg:      cfg,
		log:      log,
		store:    store,
		cart:     cartSvc,
		checkout: checkoutSvc,
		gateway:  paymentrest.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout),
		site:     settings.NewLoader(cfg.APIBaseURL, cfg.HTTPTimeout),
	}, nil
}

func (d *deps) close() {
	if err := d.store.Close(); err != nil {
		d.log.Error("closing cart store", slog.Any("err", err))
	}
}

func main() {
	var d *deps

	rootCmd := &cobra.Command{
		Use:   "storefront",
		Short: "Neesté storefront checkout client",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			d, err = buildDeps()
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if d != nil {
				d.close()
			}
		},
	}

	rootCmd.AddCommand(cartCmd(&d))
	rootCmd.AddCommand(checkoutCmd(&d))
	rootCmd.AddCommand(confirmCmd(&d))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
