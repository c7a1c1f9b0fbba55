package models

// Sale is one completed transaction in the ledger. ProductName and Price are
// denormalized snapshots taken at sale time, so the record stays accurate even
// if the product is later edited or deleted. Sales are append-only: once
// created they are never mutated or removed.
type Sale struct {
	ID            int     `json:"id"`
	ProductID     int     `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	Total         float64 `json:"total"`
	CustomerName  string  `json:"customer_name,omitempty"`
	CustomerEmail string  `json:"customer_email"`
	Notes         string  `json:"notes,omitempty"`
	Date          string  `json:"date"`
}
