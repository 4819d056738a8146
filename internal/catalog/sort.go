package catalog

import (
	"cmp"
	"strings"

	"github.com/five82/tally/internal/inventory"
)

// SortKey names a sortable product field.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByQuantity SortKey = "quantity"
	SortByPrice    SortKey = "price"
)

// SortKeys lists the keys in column order.
var SortKeys = []SortKey{SortByName, SortByQuantity, SortByPrice}

// ParseSortKey accepts a key name, case-insensitively.
func ParseSortKey(s string) (SortKey, bool) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range SortKeys {
		if k == key {
			return k, true
		}
	}
	return "", false
}

// Direction is the sort order.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// SortConfig is the active column and direction.
type SortConfig struct {
	Key       SortKey
	Direction Direction
}

// DefaultSort orders by name, ascending.
func DefaultSort() SortConfig {
	return SortConfig{Key: SortByName, Direction: Ascending}
}

// Toggle applies a header click on key: the active ascending column flips to
// descending, anything else becomes key ascending.
func (c SortConfig) Toggle(key SortKey) SortConfig {
	if c.Key == key && c.Direction == Ascending {
		return SortConfig{Key: key, Direction: Descending}
	}
	return SortConfig{Key: key, Direction: Ascending}
}

func (c SortConfig) compare() func(a, b inventory.Product) int {
	var base func(a, b inventory.Product) int
	switch c.Key {
	case SortByQuantity:
		base = func(a, b inventory.Product) int { return cmp.Compare(a.Quantity, b.Quantity) }
	case SortByPrice:
		base = func(a, b inventory.Product) int { return a.Price.Cmp(b.Price) }
	default:
		base = func(a, b inventory.Product) int { return strings.Compare(a.Name, b.Name) }
	}
	if c.Direction == Descending {
		return func(a, b inventory.Product) int { return base(b, a) }
	}
	return base
}
