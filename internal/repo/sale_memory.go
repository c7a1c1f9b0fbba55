package repo

import (
	"time"

	"github.com/boutiqueluxe/boutique-tracker/internal/models"
)

// InMemorySaleRepository holds the ledger in append order and serves reads
// newest-first.
type InMemorySaleRepository struct {
	sales  []models.Sale
	nextID int
}

func NewInMemorySaleRepository() *InMemorySaleRepository {
	return &InMemorySaleRepository{
		sales:  []models.Sale{},
		nextID: 1,
	}
}

// Append records a completed sale and assigns its id.
func (r *InMemorySaleRepository) Append(sale models.Sale) (models.Sale, error) {
	sale.ID = r.nextID
	r.nextID++
	r.sales = append(r.sales, sale)
	return sale, nil
}

// GetByID retrieves a sale by its ID.
func (r *InMemorySaleRepository) GetByID(id int) (models.Sale, error) {
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Sale{}, ErrSaleNotFound
}

// GetAll returns sales in reverse chronological order (most recent first),
// optionally restricted by date range and paginated. Filter bounds are
// normalized to UTC first: stored dates are always UTC, so the string
// comparison is only valid against UTC-rendered bounds.
func (r *InMemorySaleRepository) GetAll(sf SaleFilter) ([]models.Sale, int, error) {
	filtered := []models.Sale{}
	for i := len(r.sales) - 1; i >= 0; i-- {
		s := r.sales[i]
		if (sf.Since != nil && s.Date < sf.Since.UTC().Format(time.RFC3339)) ||
			(sf.Until != nil && s.Date > sf.Until.UTC().Format(time.RFC3339)) {
			continue
		}
		filtered = append(filtered, s)
	}
	return page(filtered, sf.Offset, sf.Limit), len(filtered), nil
}

func (r *InMemorySaleRepository) Clear() {
	r.sales = []models.Sale{}
}
