package server

import (
	"net/http"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/codegym/product-catalog/app/categories"
	"github.com/codegym/product-catalog/app/products"
	"github.com/codegym/product-catalog/models"
)

// NewStore serves the product and category JSON endpoints backed by db.
// m may be nil.
func NewStore(db *gorm.DB, log zerolog.Logger, m *Metrics) http.Handler {
	r := newRouter(log, m)
	products.NewProductHandler(models.NewProductsRepository(db)).Routes(r)
	categories.NewCategoryHandler(models.NewCategoriesRepository(db)).Routes(r)
	return r
}
