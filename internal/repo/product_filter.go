package repo

// ProductFilter narrows a catalog listing. Query matches name or SKU
// case-insensitively; an empty query matches everything.
type ProductFilter struct {
	Query        string
	LowStockOnly bool
	Offset       *int
	Limit        *int
}
