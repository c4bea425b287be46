// Package catalog holds the immutable product list and its search/sort rules.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shoptodo/shoptodo-backend/internal/i18n"
	"github.com/shoptodo/shoptodo-backend/pkg/enums"
	"golang.org/x/text/collate"
)

// Product is a sellable item. Prices are whole yen.
type Product struct {
	ID       int            `json:"id"`
	Name     string         `json:"name"`
	Price    int64          `json:"price"`
	Category enums.Category `json:"category"`
}

// Query narrows and orders a listing. Zero values mean "no filter".
type Query struct {
	Search   string
	Category enums.Category
	Sort     enums.SortKey
	// Language picks the collation and display names for name sorting.
	Language enums.Language
}

type Catalog struct {
	products []Product
	byID     map[int]int
	names    *i18n.ProductNames
}

// New validates products and builds a catalog. names may be nil.
func New(products []Product, names *i18n.ProductNames) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[int]int, len(products)),
		names:    names,
	}
	for _, p := range products {
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %d has negative price", p.ID)
		}
		if !p.Category.IsValid() {
			return nil, fmt.Errorf("product %d has invalid category %q", p.ID, p.Category)
		}
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("product %d has no name", p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Default returns the built-in demo catalog.
func Default() *Catalog {
	c, err := New(defaultProducts, i18n.DefaultProductNames())
	if err != nil {
		panic(err)
	}
	return c
}

var defaultProducts = []Product{
	{ID: 1, Name: "ノートパソコン", Price: 89800, Category: enums.CategoryElectronics},
	{ID: 2, Name: "ワイヤレスイヤホン", Price: 12800, Category: enums.CategoryElectronics},
	{ID: 3, Name: "スマートウォッチ", Price: 34800, Category: enums.CategoryElectronics},
	{ID: 4, Name: "Tシャツ", Price: 2980, Category: enums.CategoryClothing},
	{ID: 5, Name: "ジーンズ", Price: 7980, Category: enums.CategoryClothing},
	{ID: 6, Name: "プログラミング入門", Price: 3200, Category: enums.CategoryBooks},
	{ID: 7, Name: "料理の本", Price: 1800, Category: enums.CategoryBooks},
	{ID: 8, Name: "コーヒーメーカー", Price: 15800, Category: enums.CategoryHome},
	{ID: 9, Name: "デスクランプ", Price: 4500, Category: enums.CategoryHome},
}

// ListAll returns a copy of every product in catalog order.
func (c *Catalog) ListAll() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get looks a product up by id.
func (c *Catalog) Get(id int) (Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// Len reports the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Localize returns p with its name in lang; the primary name is the fallback.
func (c *Catalog) Localize(p Product, lang enums.Language) Product {
	p.Name = c.names.Name(p.ID, lang, p.Name)
	return p
}

// Filter returns a new listing; the catalog itself is never reordered.
// Search, category and sort combine with AND semantics.
func (c *Catalog) Filter(q Query) []Product {
	term := strings.TrimSpace(q.Search)
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if term != "" && !c.matches(p, term) {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case enums.SortKeyPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case enums.SortKeyPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case enums.SortKeyName:
		c.sortByName(out, q.Language)
	}
	return out
}

func (c *Catalog) matches(p Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), strings.ToLower(term)) {
		return true
	}
	return c.names.Matches(p.ID, term)
}

func (c *Catalog) sortByName(products []Product, lang enums.Language) {
	if lang == "" {
		lang = enums.DefaultLanguage
	}
	collator := collate.New(lang.Tag())
	keys := make(map[int]string, len(products))
	for _, p := range products {
		keys[p.ID] = c.names.Name(p.ID, lang, p.Name)
	}
	sort.SliceStable(products, func(i, j int) bool {
		return collator.CompareString(keys[products[i].ID], keys[products[j].ID]) < 0
	})
}
