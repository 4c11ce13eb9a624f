package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateCode is returned when a product with the same code exists.
	ErrDuplicateCode = errors.New("product code already exists")
	// ErrCategoryNotFound is returned when a product references an unknown category.
	ErrCategoryNotFound = errors.New("category not found")
)

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// GetAllProducts returns every product ordered by id. The catalog has no
// pagination: clients sort and filter the full list themselves.
func (r *ProductsRepository) GetAllProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).
		Order("id").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductsRepository) GetByCode(ctx context.Context, code string) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("code = ?", code).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

// CreateProduct inserts p and fills in its generated ID.
func (r *ProductsRepository) CreateProduct(ctx context.Context, p *Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&Category{}).Where("id = ?", p.CategoryID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrCategoryNotFound
		}

		if err := tx.Model(&Product{}).Where("code = ?", p.Code).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicateCode
		}

		if err := tx.Omit("Category").Create(p).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateCode
			}
			return err
		}
		return nil
	})
}
