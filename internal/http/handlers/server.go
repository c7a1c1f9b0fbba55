package handlers

import (
	"github.com/boutiqueluxe/boutique-tracker/internal/redissvc"
	"github.com/boutiqueluxe/boutique-tracker/internal/repo"
	"github.com/boutiqueluxe/boutique-tracker/internal/sales"
)

var (
	productRepo  repo.ProductRepository
	saleRepo     repo.SaleRepository
	metricsRepo  repo.MetricsRepository
	salesService *sales.Service
	redisService *redissvc.RedisService
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetSaleRepo(r repo.SaleRepository) {
	saleRepo = r
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetSalesService(s *sales.Service) {
	salesService = s
}

func SetRedisService(rs *redissvc.RedisService) {
	redisService = rs
}

// invalidateMetricsCache is called after every catalog or ledger mutation.
// Redis is optional; without it the dashboard is recomputed on every read.
func invalidateMetricsCache() {
	if redisService != nil {
		redisService.InvalidateMetrics()
	}
}
