package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegym/product-catalog/catalogapi"
	"github.com/codegym/product-catalog/locale"
)

// --- Fake data service ---

type fakeSource struct {
	mu            sync.Mutex
	products      []catalogapi.Product
	categories    []catalogapi.Category
	productsErr   error
	categoriesErr error
	productCalls  int
	categoryCalls int
}

func (f *fakeSource) ListProducts(_ context.Context) ([]catalogapi.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.productCalls++
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	return append([]catalogapi.Product(nil), f.products...), nil
}

func (f *fakeSource) ListCategories(_ context.Context) ([]catalogapi.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categoryCalls++
	if f.categoriesErr != nil {
		return nil, f.categoriesErr
	}
	return append([]catalogapi.Category(nil), f.categories...), nil
}

func (f *fakeSource) add(p catalogapi.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products = append(f.products, p)
}

// --- Helpers ---

func newTestLocale(t *testing.T) *locale.Locale {
	t.Helper()
	l, err := locale.New("vi", "₫")
	require.NoError(t, err)
	return l
}

func product(id, code, name string, categoryID string, price float64) catalogapi.Product {
	return catalogapi.Product{
		ID:         catalogapi.ID(id),
		Code:       code,
		Name:       name,
		ImportDate: "2024-01-01",
		Quantity:   10,
		Price:      price,
		CategoryID: catalogapi.ID(categoryID),
	}
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		products: []catalogapi.Product{
			product("1", "PROD-0001", "Bò", "1", 5000),
			product("2", "PROD-0002", "Ăn", "2", 1250000),
			product("3", "PROD-0003", "Cá", "1", 12.5),
			product("4", "PROD-0004", "Áo khoác", "2", 300000),
		},
		categories: []catalogapi.Category{
			{ID: "1", Name: "Thực phẩm"},
			{ID: "2", Name: "Thời trang"},
		},
	}
}

func rowNames(st State) []string {
	out := make([]string, len(st.Rows))
	for i, r := range st.Rows {
		out[i] = r.Name
	}
	return out
}

// --- Tests ---

func TestViewLoad(t *testing.T) {
	src := newFakeSource()
	view := NewView(src, newTestLocale(t))
	assert.False(t, view.Loaded())

	require.NoError(t, view.Load(context.Background()))
	assert.True(t, view.Loaded())

	st := view.State()
	assert.Equal(t, []string{"Áo khoác", "Ăn", "Bò", "Cá"}, rowNames(st))
	assert.Equal(t, Row{
		Index:      3,
		Code:       "PROD-0001",
		Name:       "Bò",
		Category:   "Thực phẩm",
		Quantity:   10,
		Price:      "5.000 ₫",
		PriceValue: 5000,
		ImportDate: "1/1/2024",
	}, st.Rows[2])
	assert.Equal(t, "1.250.000 ₫", st.Rows[1].Price)
	assert.Len(t, st.Categories, 2)
}

func TestViewLoadSortsByCollation(t *testing.T) {
	src := &fakeSource{products: []catalogapi.Product{
		product("1", "PROD-0001", "Bò", "1", 1),
		product("2", "PROD-0002", "Ăn", "1", 1),
		product("3", "PROD-0003", "Cá", "1", 1),
	}}
	view := NewView(src, newTestLocale(t))
	require.NoError(t, view.Load(context.Background()))
	assert.Equal(t, []string{"Ăn", "Bò", "Cá"}, rowNames(view.State()))
}

func TestViewUnresolvedCategoryIsBlank(t *testing.T) {
	src := &fakeSource{
		products:   []catalogapi.Product{product("1", "PROD-0001", "Orphan", "99", 1)},
		categories: []catalogapi.Category{{ID: "1", Name: "Thực phẩm"}},
	}
	view := NewView(src, newTestLocale(t))
	require.NoError(t, view.Load(context.Background()))
	assert.Equal(t, "", view.State().Rows[0].Category)
}

func TestViewLoadErrors(t *testing.T) {
	t.Run("Products fail", func(t *testing.T) {
		src := newFakeSource()
		src.productsErr = errors.New("connection refused")
		view := NewView(src, newTestLocale(t))

		err := view.Load(context.Background())
		assert.ErrorIs(t, err, src.productsErr)
		assert.Contains(t, err.Error(), "load products")
		assert.False(t, view.Loaded())
	})

	t.Run("Categories fail keeps previous state", func(t *testing.T) {
		src := newFakeSource()
		view := NewView(src, newTestLocale(t))
		require.NoError(t, view.Load(context.Background()))

		src.categoriesErr = errors.New("timeout")
		src.add(product("5", "PROD-0005", "Dưa", "1", 1))
		err := view.Load(context.Background())
		assert.ErrorIs(t, err, src.categoriesErr)
		assert.Len(t, view.State().Rows, 4)
	})
}

func TestViewSearch(t *testing.T) {
	testCases := []struct {
		name       string
		keyword    string
		categoryID string
		want       []string
	}{
		{name: "Diacritic and case insensitive", keyword: "ao", want: []string{"Áo khoác"}},
		{name: "Upper case keyword", keyword: "BÒ", want: []string{"Bò"}},
		{name: "Keyword is trimmed", keyword: "  ca ", want: []string{"Cá"}},
		{name: "Blank keyword does not filter", keyword: "   ", want: []string{"Áo khoác", "Ăn", "Bò", "Cá"}},
		{name: "Category only", categoryID: "2", want: []string{"Áo khoác", "Ăn"}},
		{name: "Keyword and category", keyword: "a", categoryID: "1", want: []string{"Cá"}},
		{name: "Unknown category", categoryID: "42", want: []string{}},
		{name: "No match", keyword: "xyz", want: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src := newFakeSource()
			view := NewView(src, newTestLocale(t))
			require.NoError(t, view.Load(context.Background()))

			require.NoError(t, view.Search(context.Background(), tc.keyword, tc.categoryID))

			st := view.State()
			assert.Equal(t, tc.want, rowNames(st))
			assert.Equal(t, tc.keyword, st.Keyword)
			assert.Equal(t, tc.categoryID, st.CategoryID)
			for i, r := range st.Rows {
				assert.Equal(t, i+1, r.Index)
			}
		})
	}
}

func TestViewSearchRefetches(t *testing.T) {
	src := newFakeSource()
	view := NewView(src, newTestLocale(t))
	require.NoError(t, view.Load(context.Background()))
	assert.Equal(t, 1, src.productCalls)

	src.add(product("5", "PROD-0005", "Ao dài", "2", 1))
	require.NoError(t, view.Search(context.Background(), "ao", ""))
	assert.Equal(t, 2, src.productCalls)
	assert.Equal(t, 1, src.categoryCalls, "search does not refetch categories")
	assert.Equal(t, []string{"Ao dài", "Áo khoác"}, rowNames(view.State()))
}

func TestViewSearchErrorKeepsDisplayedList(t *testing.T) {
	src := newFakeSource()
	view := NewView(src, newTestLocale(t))
	require.NoError(t, view.Load(context.Background()))

	src.productsErr = errors.New("boom")
	err := view.Search(context.Background(), "ao", "")
	assert.ErrorIs(t, err, src.productsErr)
	assert.Len(t, view.State().Rows, 4)
	assert.Equal(t, "", view.State().Keyword)
}

func TestLoadClearsSearch(t *testing.T) {
	src := newFakeSource()
	view := NewView(src, newTestLocale(t))
	require.NoError(t, view.Load(context.Background()))
	require.NoError(t, view.Search(context.Background(), "ao", "2"))

	require.NoError(t, view.Load(context.Background()))
	st := view.State()
	assert.Len(t, st.Rows, 4)
	assert.Empty(t, st.Keyword)
	assert.Empty(t, st.CategoryID)
}

func TestFilterMatchesStringAndNumericIDs(t *testing.T) {
	products := []catalogapi.Product{
		product("1", "PROD-0001", "A", "1", 1),
		product("2", "PROD-0002", "B", "01", 1),
	}
	got := Filter(products, "", "1")
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)
}
