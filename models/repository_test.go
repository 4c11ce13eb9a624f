package models_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/codegym/product-catalog/migrations"
	"github.com/codegym/product-catalog/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := models.Open("sqlite://:memory:")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	applied, err := migrations.Up(context.Background(), sqlDB, models.DialectSQLite)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, applied)
	return db
}

func newProduct(code, name string, categoryID uint) *models.Product {
	return &models.Product{
		Code:       code,
		Name:       name,
		ImportDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Quantity:   10,
		Price:      decimal.NewFromInt(5000),
		CategoryID: categoryID,
	}
}

func TestCategoriesRepository(t *testing.T) {
	ctx := context.Background()
	repo := models.NewCategoriesRepository(setupTestDB(t))

	seeded, err := repo.GetAllCategories(ctx)
	require.NoError(t, err)
	require.Len(t, seeded, 4, "seed migration inserts four categories")
	assert.Equal(t, uint(1), seeded[0].ID)

	cat := &models.Category{Name: "Mỹ phẩm"}
	require.NoError(t, repo.CreateCategory(ctx, cat))
	assert.Equal(t, uint(5), cat.ID)

	all, err := repo.GetAllCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Equal(t, "Mỹ phẩm", all[4].Name)
}

func TestProductsRepository(t *testing.T) {
	ctx := context.Background()
	repo := models.NewProductsRepository(setupTestDB(t))

	t.Run("Create and list", func(t *testing.T) {
		p := newProduct("PROD-0001", "Paracetamol", 1)
		require.NoError(t, repo.CreateProduct(ctx, p))
		assert.NotZero(t, p.ID)

		require.NoError(t, repo.CreateProduct(ctx, newProduct("PROD-0002", "Amoxicillin", 2)))

		all, err := repo.GetAllProducts(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "PROD-0001", all[0].Code)
		assert.Equal(t, 10, all[0].Quantity)
		assert.True(t, decimal.NewFromInt(5000).Equal(all[0].Price))
		assert.Equal(t, "2024-01-01", all[0].ImportDate.Format(models.DateLayout))
	})

	t.Run("Get by code preloads category", func(t *testing.T) {
		p, err := repo.GetByCode(ctx, "PROD-0002")
		require.NoError(t, err)
		assert.Equal(t, "Amoxicillin", p.Name)
		assert.Equal(t, "Kháng sinh", p.Category.Name)
	})

	t.Run("Unknown code", func(t *testing.T) {
		_, err := repo.GetByCode(ctx, "PROD-9999")
		assert.ErrorIs(t, err, models.ErrProductNotFound)
	})

	t.Run("Duplicate code", func(t *testing.T) {
		err := repo.CreateProduct(ctx, newProduct("PROD-0001", "Other", 1))
		assert.ErrorIs(t, err, models.ErrDuplicateCode)
	})

	t.Run("Unknown category", func(t *testing.T) {
		err := repo.CreateProduct(ctx, newProduct("PROD-0003", "Orphan", 42))
		assert.ErrorIs(t, err, models.ErrCategoryNotFound)
	})
}

func TestParseDatabaseURL(t *testing.T) {
	testCases := []struct {
		url     string
		dialect string
		dsn     string
		wantErr bool
	}{
		{url: "sqlite://catalog.db", dialect: models.DialectSQLite, dsn: "catalog.db"},
		{url: "postgres://u:p@localhost:5432/catalog", dialect: models.DialectPostgres, dsn: "postgres://u:p@localhost:5432/catalog"},
		{url: "postgresql://localhost/catalog", dialect: models.DialectPostgres, dsn: "postgresql://localhost/catalog"},
		{url: "sqlite://", wantErr: true},
		{url: "mysql://localhost/catalog", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			dialect, dsn, err := models.ParseDatabaseURL(tc.url)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.dialect, dialect)
			assert.Equal(t, tc.dsn, dsn)
		})
	}
}
