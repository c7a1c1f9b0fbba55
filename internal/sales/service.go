// Package sales coordinates the compound sale transaction: resolve the
// product, validate, decrement stock, append to the ledger, dispatch a
// receipt. Either both mutations land or neither does.
package sales

import (
	"errors"
	"log"
	"time"

	"github.com/boutiqueluxe/boutique-tracker/internal/models"
	"github.com/boutiqueluxe/boutique-tracker/internal/receipt"
	"github.com/boutiqueluxe/boutique-tracker/internal/repo"
)

var (
	ErrInvalidQuantity       = errors.New("quantity must be at least 1")
	ErrCustomerEmailRequired = errors.New("customer email is required")
)

// Service owns sale recording and receipt dispatch.
type Service struct {
	products   repo.ProductRepository
	sales      repo.SaleRepository
	dispatcher receipt.Dispatcher
}

func NewService(products repo.ProductRepository, sales repo.SaleRepository, dispatcher receipt.Dispatcher) *Service {
	return &Service{products: products, sales: sales, dispatcher: dispatcher}
}

// SaleInput is everything the operator provides for a sale; product name,
// unit price and total are snapshotted from the catalog at record time.
type SaleInput struct {
	ProductID     int
	Quantity      int
	CustomerName  string
	CustomerEmail string
	Notes         string
}

// RecordSale validates the input, decrements catalog stock and appends the
// sale to the ledger. On any failure neither the stock nor the ledger
// changes. A receipt is dispatched once per successful sale; delivery
// failures are logged, not surfaced.
func (s *Service) RecordSale(input SaleInput) (models.Sale, error) {
	if input.Quantity < 1 {
		return models.Sale{}, ErrInvalidQuantity
	}
	if input.CustomerEmail == "" {
		return models.Sale{}, ErrCustomerEmailRequired
	}

	product, err := s.products.GetByID(input.ProductID)
	if err != nil {
		return models.Sale{}, err
	}
	if input.Quantity > product.Quantity {
		return models.Sale{}, repo.ErrInsufficientStock
	}

	if _, err := s.products.AdjustQuantity(product.ID, -input.Quantity); err != nil {
		return models.Sale{}, err
	}

	sale := models.Sale{
		ProductID:     product.ID,
		ProductName:   product.Name,
		Quantity:      input.Quantity,
		Price:         product.Price,
		Total:         product.Price * float64(input.Quantity),
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		Notes:         input.Notes,
		Date:          time.Now().UTC().Format(time.RFC3339),
	}

	recorded, err := s.sales.Append(sale)
	if err != nil {
		// put the stock back so the failure leaves no trace
		if _, restoreErr := s.products.AdjustQuantity(product.ID, input.Quantity); restoreErr != nil {
			log.Printf("could not restore stock for product %d after failed sale: %v", product.ID, restoreErr)
		}
		return models.Sale{}, err
	}

	if err := s.dispatcher.Send(recorded); err != nil {
		log.Printf("could not send receipt for sale %d: %v", recorded.ID, err)
	}
	return recorded, nil
}

// Resend re-dispatches the receipt for an already-recorded sale. It mutates
// nothing.
func (s *Service) Resend(saleID int) (models.Sale, error) {
	sale, err := s.sales.GetByID(saleID)
	if err != nil {
		return models.Sale{}, err
	}
	if err := s.dispatcher.Send(sale); err != nil {
		log.Printf("could not resend receipt for sale %d: %v", sale.ID, err)
	}
	return sale, nil
}
