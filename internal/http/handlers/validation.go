package handlers

import (
	"strings"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "Name", Description: "Name is required"})
	}
	if p.Price < 0 {
		errs = append(errs, ProductValidationError{Field: "Price", Description: "Price cannot be negative"})
	}
	if p.Quantity < 0 {
		errs = append(errs, ProductValidationError{Field: "Quantity", Description: "Quantity cannot be negative"})
	}
	return errs
}

func validateSale(s SaleRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if s.ProductID <= 0 {
		errs = append(errs, ProductValidationError{Field: "ProductID", Description: "A product must be selected"})
	}
	if s.Quantity < 1 {
		errs = append(errs, ProductValidationError{Field: "Quantity", Description: "Quantity must be at least 1"})
	}
	if strings.TrimSpace(s.CustomerEmail) == "" {
		errs = append(errs, ProductValidationError{Field: "CustomerEmail", Description: "Customer email is required"})
	}
	return errs
}
