package repo

import "errors"

var (
	// ErrProductNotFound is returned when a product id or name does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrSaleNotFound is returned when a sale id does not exist in the ledger.
	ErrSaleNotFound = errors.New("sale not found")

	// ErrInsufficientStock is returned when a quantity change would take a
	// product's stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)
