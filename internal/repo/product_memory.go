package repo

import (
	"strings"

	"github.com/boutiqueluxe/boutique-tracker/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
// Products are kept in insertion order.
type InMemoryProductRepository struct {
	products []models.Product
	nextID   int
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		nextID:   1,
	}
}

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.Query != "" {
		q := strings.ToLower(pf.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.SKU), q) {
			return false
		}
	}
	if pf.LowStockOnly && !p.LowStock() {
		return false
	}
	return true
}

// Filter returns the products matching pf in insertion order, plus the total
// match count before paging.
func (r *InMemoryProductRepository) Filter(pf ProductFilter) ([]models.Product, int, error) {
	filtered := []models.Product{}
	for _, p := range r.products {
		if matchesFilter(p, pf) {
			filtered = append(filtered, p)
		}
	}
	return page(filtered, pf.Offset, pf.Limit), len(filtered), nil
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(product models.Product) (models.Product, error) {
	product.ID = r.nextID
	r.nextID++
	r.products = append(r.products, product)
	return product, nil
}

// GetAll retrieves all products from the repository.
func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	return r.products, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// GetByName retrieves a product by its exact name.
func (r *InMemoryProductRepository) GetByName(name string) (models.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Update modifies an existing product in the repository.
func (r *InMemoryProductRepository) Update(product models.Product) (models.Product, error) {
	for i, p := range r.products {
		if p.ID == product.ID {
			// ID and CreatedAt are immutable
			product.CreatedAt = p.CreatedAt
			r.products[i] = product
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(id int) error {
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

// AdjustQuantity changes a product's stock by delta, which may be negative.
// The quantity never goes below zero: a change that would is rejected with
// ErrInsufficientStock and leaves the product untouched.
func (r *InMemoryProductRepository) AdjustQuantity(productID int, delta int) (models.Product, error) {
	for i, p := range r.products {
		if p.ID == productID {
			if p.Quantity+delta < 0 {
				return models.Product{}, ErrInsufficientStock
			}
			p.Quantity += delta
			r.products[i] = p
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Clear() {
	r.products = []models.Product{}
}
