package repo

type InMemoryMetricsRepository struct {
	productRepo ProductRepository
	saleRepo    SaleRepository
}

func NewInMemoryMetricsRepository() *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{}
}

func (i *InMemoryMetricsRepository) SetRepositories(productRepo ProductRepository, saleRepo SaleRepository) {
	i.productRepo = productRepo
	i.saleRepo = saleRepo
}

// GetDashboardMetrics implements MetricsRepository.
func (i *InMemoryMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	m := Metrics{}

	products, err := i.productRepo.GetAll()
	if err != nil {
		return m, err
	}
	m.TotalProducts = len(products)
	for _, p := range products {
		m.InventoryValue += p.Price * float64(p.Quantity)
		if p.LowStock() {
			m.LowStockCount++
		}
		if p.CriticalStock() {
			m.CriticalStockCount++
		}
	}

	sales, total, err := i.saleRepo.GetAll(SaleFilter{})
	if err != nil {
		return m, err
	}
	m.TotalSales = total
	for _, s := range sales {
		m.SalesValue += s.Total
	}

	return m, nil
}
