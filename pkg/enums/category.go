package enums

import (
	"fmt"
	"strings"
)

// Category groups catalog products.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryBooks       Category = "books"
	CategoryHome        Category = "home"
)

var validCategories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryBooks,
	CategoryHome,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	for _, candidate := range validCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCategory accepts any casing. An empty value is rejected; callers treat
// a missing category as "all" before parsing.
func ParseCategory(value string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validCategories {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", value)
}

// Categories lists every category in display order.
func Categories() []Category {
	out := make([]Category, len(validCategories))
	copy(out, validCategories)
	return out
}
