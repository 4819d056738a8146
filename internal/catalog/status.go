package catalog

// LowStockThreshold is the highest quantity still counted as low stock.
const LowStockThreshold = 10

// StockStatus is the badge shown next to a quantity.
type StockStatus int

const (
	OutOfStock StockStatus = iota
	LowStock
	InStock
)

func (s StockStatus) String() string {
	switch s {
	case InStock:
		return "In Stock"
	case LowStock:
		return "Low Stock"
	default:
		return "Out of Stock"
	}
}

// StatusFor derives the badge from quantity alone.
func StatusFor(quantity int) StockStatus {
	switch {
	case quantity > LowStockThreshold:
		return InStock
	case quantity > 0:
		return LowStock
	default:
		return OutOfStock
	}
}

// IsLowStock matches the service's lowStockCount rule (0 < q <= 10), so the
// badge and the summary card always agree.
func IsLowStock(quantity int) bool {
	return StatusFor(quantity) == LowStock
}
