package models

// Product represents a boutique product tracked by the catalog.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	SKU         string  `json:"sku,omitempty"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"` // opaque base64 payload, never interpreted
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// Stock thresholds used for low-stock reporting. Critical is a display-level
// distinction only; both are derived from Quantity on demand.
const (
	LowStockThreshold      = 10
	CriticalStockThreshold = 5
)

// LowStock reports whether the product is below the low-stock threshold.
func (p Product) LowStock() bool {
	return p.Quantity < LowStockThreshold
}

// CriticalStock reports whether the product is below the critical threshold.
func (p Product) CriticalStock() bool {
	return p.Quantity < CriticalStockThreshold
}
