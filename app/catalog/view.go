package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/codegym/product-catalog/catalogapi"
	"github.com/codegym/product-catalog/locale"
)

// Source is the read side of the data service.
type Source interface {
	ListProducts(ctx context.Context) ([]catalogapi.Product, error)
	ListCategories(ctx context.Context) ([]catalogapi.Category, error)
}

// Row is one rendered line of the product table.
type Row struct {
	Index      int
	Code       string
	Name       string
	Category   string
	Quantity   int
	Price      string
	PriceValue float64
	ImportDate string
}

// State is a consistent copy of what the view currently displays.
type State struct {
	Rows       []Row
	Categories []catalogapi.Category
	Keyword    string
	CategoryID string
}

// View holds the catalog screen's state: the displayed products, the
// categories used to resolve names, and the active search criteria.
// Concurrent loads and searches each replace the state; the last one to
// finish wins.
type View struct {
	src Source
	loc *locale.Locale

	mu         sync.Mutex
	loaded     bool
	products   []catalogapi.Product
	categories []catalogapi.Category
	keyword    string
	categoryID string
}

func NewView(src Source, loc *locale.Locale) *View {
	return &View{src: src, loc: loc}
}

// Loaded reports whether the initial load has succeeded.
func (v *View) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

// Load fetches all products and categories and displays every product
// sorted by name. Active search criteria are cleared.
func (v *View) Load(ctx context.Context) error {
	products, err := v.src.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	categories, err := v.src.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	v.sortByName(products)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.products = products
	v.categories = categories
	v.keyword = ""
	v.categoryID = ""
	v.loaded = true
	return nil
}

// Search re-fetches the product list from the service and displays the
// products matching keyword and categoryID. A blank keyword or an empty
// categoryID does not filter.
func (v *View) Search(ctx context.Context, keyword, categoryID string) error {
	products, err := v.src.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("search products: %w", err)
	}
	filtered := Filter(products, keyword, categoryID)
	v.sortByName(filtered)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.products = filtered
	v.keyword = keyword
	v.categoryID = categoryID
	return nil
}

// Filter keeps the products whose name contains the trimmed keyword,
// ignoring case and diacritics, and whose category is categoryID.
func Filter(products []catalogapi.Product, keyword, categoryID string) []catalogapi.Product {
	keyword = strings.TrimSpace(keyword)
	out := make([]catalogapi.Product, 0, len(products))
	for _, p := range products {
		if keyword != "" && !locale.Contains(p.Name, keyword) {
			continue
		}
		if categoryID != "" && p.CategoryID.String() != categoryID {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (v *View) sortByName(products []catalogapi.Product) {
	locale.SortBy(v.loc, products, func(p catalogapi.Product) string { return p.Name })
}

// State renders the displayed products into table rows. A product whose
// category is not in the category list gets a blank category name.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()

	names := make(map[catalogapi.ID]string, len(v.categories))
	for _, c := range v.categories {
		names[c.ID] = c.Name
	}

	rows := make([]Row, len(v.products))
	for i, p := range v.products {
		rows[i] = Row{
			Index:      i + 1,
			Code:       p.Code,
			Name:       p.Name,
			Category:   names[p.CategoryID],
			Quantity:   p.Quantity,
			Price:      v.loc.FormatPrice(p.Price),
			PriceValue: p.Price,
			ImportDate: v.loc.FormatDate(p.ImportDate),
		}
	}
	return State{
		Rows:       rows,
		Categories: append([]catalogapi.Category(nil), v.categories...),
		Keyword:    v.keyword,
		CategoryID: v.categoryID,
	}
}
