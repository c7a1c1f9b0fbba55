package repo

import "github.com/boutiqueluxe/boutique-tracker/internal/models"

// SaleRepository is the append-only ledger of completed sales. Sales are
// never updated or deleted once appended.
type SaleRepository interface {
	Append(sale models.Sale) (models.Sale, error)
	GetByID(id int) (models.Sale, error)
	GetAll(sf SaleFilter) ([]models.Sale, int, error)
}
