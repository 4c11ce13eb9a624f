// Package productform serves the add-product screen.
package productform

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/codegym/product-catalog/app/navigation"
	"github.com/codegym/product-catalog/app/web"
	"github.com/codegym/product-catalog/catalogapi"
)

// Submission outcomes reported to a SubmitObserver.
const (
	OutcomeCreated = "created"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

const (
	createdNotice      = "Thêm sản phẩm thành công!"
	categoriesFailed   = "Không thể tải danh sách loại sản phẩm. Vui lòng thử lại!"
	submitFailedPrefix = "Không thể lưu sản phẩm: "
)

// Store is the part of the data service the form talks to.
type Store interface {
	ListCategories(ctx context.Context) ([]catalogapi.Category, error)
	CreateProduct(ctx context.Context, p catalogapi.NewProduct) (*catalogapi.Product, error)
}

// SubmitObserver is told the outcome of every submission.
type SubmitObserver interface {
	ObserveSubmit(outcome string)
}

type nopObserver struct{}

func (nopObserver) ObserveSubmit(string) {}

type page struct {
	Notice     string
	Error      string
	Values     Form
	Errors     Errors
	Categories []web.Option
}

type Handler struct {
	store     Store
	validator *Validator
	signal    *navigation.Signal
	render    *web.Renderer
	observer  SubmitObserver
}

// NewHandler builds the form handler. obs may be nil.
func NewHandler(store Store, v *Validator, signal *navigation.Signal, render *web.Renderer, obs SubmitObserver) *Handler {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Handler{store: store, validator: v, signal: signal, render: render, observer: obs}
}

// Routes mounts the form on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/add", h.HandleForm)
	r.Post("/add", h.HandleSubmit)
}

func (h *Handler) HandleForm(w http.ResponseWriter, r *http.Request) {
	p := page{}
	status := http.StatusOK
	if !h.loadCategories(r, &p) {
		status = http.StatusBadGateway
	}
	h.render.Render(w, r, status, web.PageAdd, p)
}

// HandleSubmit validates the posted form and, when every field passes,
// creates the product and sends the user back to the catalog with a
// refresh pending.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := FormFromRequest(r)
	log := hlog.FromRequest(r)

	if errs := h.validator.Validate(form); len(errs) > 0 {
		h.observer.ObserveSubmit(OutcomeInvalid)
		log.Debug().Interface("errors", errs).Msg("product form rejected")
		p := page{Values: form, Errors: errs}
		h.loadCategories(r, &p)
		h.render.Render(w, r, http.StatusUnprocessableEntity, web.PageAdd, p)
		return
	}

	product, err := form.Product()
	if err == nil {
		_, err = h.store.CreateProduct(r.Context(), product)
	}
	if err != nil {
		h.observer.ObserveSubmit(OutcomeFailed)
		log.Error().Err(err).Str("code", form.Code).Msg("create product")

		status := http.StatusBadGateway
		msg := err.Error()
		var se *catalogapi.StatusError
		if errors.As(err, &se) {
			msg = se.Message
			if se.StatusCode >= 400 && se.StatusCode < 500 {
				status = http.StatusUnprocessableEntity
			}
		}
		p := page{Values: form, Error: submitFailedPrefix + msg}
		h.loadCategories(r, &p)
		h.render.Render(w, r, status, web.PageAdd, p)
		return
	}

	h.observer.ObserveSubmit(OutcomeCreated)
	log.Info().Str("code", product.Code).Msg("product submitted")
	h.signal.Request(createdNotice)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// loadCategories fills the category options of p, or its error banner
// when the service cannot be reached.
func (h *Handler) loadCategories(r *http.Request, p *page) bool {
	cats, err := h.store.ListCategories(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("load categories")
		if p.Error == "" {
			p.Error = categoriesFailed
		}
		return false
	}
	p.Categories = make([]web.Option, len(cats))
	for i, c := range cats {
		p.Categories[i] = web.Option{Value: c.ID.String(), Label: c.Name}
	}
	return true
}
