package repo

// Metrics are the dashboard aggregates. They are derived on demand from the
// catalog and the ledger, never stored.
type Metrics struct {
	TotalProducts      int     `json:"total_products"`
	InventoryValue     float64 `json:"inventory_value"`
	TotalSales         int     `json:"total_sales"`
	SalesValue         float64 `json:"sales_value"`
	LowStockCount      int     `json:"low_stock_count"`
	CriticalStockCount int     `json:"critical_stock_count"`
}

type MetricsRepository interface {
	GetDashboardMetrics() (Metrics, error)
}
