package categories

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/codegym/product-catalog/app/respond"
	"github.com/codegym/product-catalog/models"
)

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
}

type CategoryHandler struct {
	repo CategoryProvider
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

// Routes mounts the category endpoints on r.
func (h *CategoryHandler) Routes(r chi.Router) {
	r.Get("/categories", h.HandleGetAll)
	r.Post("/categories", h.HandleCreate)
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list categories")
		respond.Error(w, r, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = CategoryResponse{
			ID:   c.ID,
			Name: c.Name,
		}
	}
	respond.JSON(w, r, http.StatusOK, response)
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if strings.TrimSpace(input.Name) == "" {
		respond.Error(w, r, http.StatusBadRequest, "Missing name")
		return
	}

	category := &models.Category{
		Name: input.Name,
	}

	if err := h.repo.CreateCategory(r.Context(), category); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("name", input.Name).Msg("create category")
		respond.Error(w, r, http.StatusInternalServerError, "Failed to create category")
		return
	}

	respond.JSON(w, r, http.StatusCreated, CategoryResponse{ID: category.ID, Name: category.Name})
}
