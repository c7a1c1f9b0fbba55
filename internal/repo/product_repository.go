package repo

import "github.com/boutiqueluxe/boutique-tracker/internal/models"

// ProductRepository defines the interface for catalog data operations.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	GetByName(name string) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	Delete(id int) error
	AdjustQuantity(productID int, delta int) (models.Product, error)
	Filter(pf ProductFilter) ([]models.Product, int, error)
}
