package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/codegym/product-catalog/app/catalog"
	"github.com/codegym/product-catalog/app/navigation"
	"github.com/codegym/product-catalog/app/productform"
	"github.com/codegym/product-catalog/app/web"
	"github.com/codegym/product-catalog/locale"
)

// CatalogService is everything the screens need from the data service.
type CatalogService interface {
	catalog.Source
	productform.Store
}

// UIOptions configures the catalog screens. Now is the clock import dates
// are checked against and defaults to time.Now.
type UIOptions struct {
	Service CatalogService
	Locale  *locale.Locale
	Now     func() time.Time
	Logger  zerolog.Logger
	Metrics *Metrics
}

// NewUI wires the catalog screen and the add-product form onto one router
// sharing a single refresh signal.
func NewUI(opts UIOptions) (http.Handler, error) {
	render, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	signal := navigation.NewSignal()
	var observer productform.SubmitObserver
	if opts.Metrics != nil {
		observer = opts.Metrics
	}

	r := newRouter(opts.Logger, opts.Metrics)
	catalog.NewHandler(catalog.NewView(opts.Service, opts.Locale), signal, render).Routes(r)
	productform.NewHandler(opts.Service, productform.NewValidator(now), signal, render, observer).Routes(r)
	return r, nil
}
