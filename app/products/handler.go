package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/hlog"
	"github.com/shopspring/decimal"

	"github.com/codegym/product-catalog/app/respond"
	"github.com/codegym/product-catalog/models"
)

// Product is the wire form of a stored product.
type Product struct {
	ID         uint    `json:"id"`
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	ImportDate string  `json:"importDate"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	CategoryID uint    `json:"categoryId"`
}

// CreateRequest is the body of POST /products.
type CreateRequest struct {
	Code       string  `json:"code" validate:"required,prodcode"`
	Name       string  `json:"name" validate:"required"`
	ImportDate string  `json:"importDate" validate:"required,datetime=2006-01-02"`
	Quantity   int     `json:"quantity" validate:"gt=0"`
	Price      float64 `json:"price" validate:"gt=0,money"`
	CategoryID uint    `json:"categoryId" validate:"required"`
}

type ProductProvider interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetByCode(ctx context.Context, code string) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
}

type ProductHandler struct {
	repo     ProductProvider
	validate *validator.Validate
}

func NewProductHandler(r ProductProvider) *ProductHandler {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	must := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s: %v", tag, err))
		}
	}
	must("prodcode", func(fl validator.FieldLevel) bool {
		return models.CodePattern.MatchString(fl.Field().String())
	})
	// prices are stored as decimal(14,2)
	must("money", func(fl validator.FieldLevel) bool {
		return decimal.NewFromFloat(fl.Field().Float()).Exponent() >= -2
	})
	return &ProductHandler{
		repo:     r,
		validate: v,
	}
}

// Routes mounts the product endpoints on r.
func (h *ProductHandler) Routes(r chi.Router) {
	r.Get("/products", h.HandleGetAll)
	r.Post("/products", h.HandleCreate)
	r.Get("/products/{code}", h.HandleGetProduct)
}

func toProduct(p models.Product) Product {
	return Product{
		ID:         p.ID,
		Code:       p.Code,
		Name:       p.Name,
		ImportDate: p.ImportDate.Format(models.DateLayout),
		Quantity:   p.Quantity,
		Price:      p.Price.InexactFloat64(),
		CategoryID: p.CategoryID,
	}
}

func (h *ProductHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	res, err := h.repo.GetAllProducts(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list products")
		respond.Error(w, r, http.StatusInternalServerError, "failed to get products")
		return
	}

	products := make([]Product, len(res))
	for i, p := range res {
		products[i] = toProduct(p)
	}
	respond.JSON(w, r, http.StatusOK, products)
}

func (h *ProductHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	product, err := h.repo.GetByCode(r.Context(), code)
	if errors.Is(err, models.ErrProductNotFound) {
		respond.Error(w, r, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("code", code).Msg("get product")
		respond.Error(w, r, http.StatusInternalServerError, "failed to get product")
		return
	}
	respond.JSON(w, r, http.StatusOK, toProduct(*product))
}

func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			respond.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		respond.JSON(w, r, http.StatusBadRequest, respond.ErrorResponse{Error: "Invalid product", Fields: fields})
		return
	}

	importDate, _ := time.Parse(models.DateLayout, input.ImportDate)
	product := &models.Product{
		Code:       input.Code,
		Name:       input.Name,
		ImportDate: importDate,
		Quantity:   input.Quantity,
		Price:      decimal.NewFromFloat(input.Price),
		CategoryID: input.CategoryID,
	}

	err := h.repo.CreateProduct(r.Context(), product)
	switch {
	case errors.Is(err, models.ErrDuplicateCode):
		respond.Error(w, r, http.StatusConflict, "Product code already exists")
		return
	case errors.Is(err, models.ErrCategoryNotFound):
		respond.JSON(w, r, http.StatusBadRequest, respond.ErrorResponse{
			Error:  "Invalid product",
			Fields: map[string]string{"categoryId": "exists"},
		})
		return
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Str("code", input.Code).Msg("create product")
		respond.Error(w, r, http.StatusInternalServerError, "Failed to create product")
		return
	}

	hlog.FromRequest(r).Info().Uint("id", product.ID).Str("code", product.Code).Msg("product created")
	respond.JSON(w, r, http.StatusCreated, toProduct(*product))
}
