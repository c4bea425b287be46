package enums

import "fmt"

// SortKey orders catalog listings.
type SortKey string

const (
	SortKeyNone      SortKey = ""
	SortKeyName      SortKey = "name"
	SortKeyPriceLow  SortKey = "price-low"
	SortKeyPriceHigh SortKey = "price-high"
)

var validSortKeys = []SortKey{
	SortKeyName,
	SortKeyPriceLow,
	SortKeyPriceHigh,
}

func (s SortKey) String() string {
	return string(s)
}

// IsValid accepts the empty key, which keeps catalog order.
func (s SortKey) IsValid() bool {
	if s == SortKeyNone {
		return true
	}
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

func ParseSortKey(value string) (SortKey, error) {
	if value == "" {
		return SortKeyNone, nil
	}
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}
