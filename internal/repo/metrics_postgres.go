package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/boutiqueluxe/boutique-tracker/internal/models"
)

type PostgresMetricsRepository struct {
	db *sql.DB
}

func NewPostgresMetricsRepository(db *sql.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

func (r *PostgresMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var m Metrics

	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(price * quantity), 0) FROM products`).
		Scan(&m.TotalProducts, &m.InventoryValue)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(total), 0) FROM sales`).
		Scan(&m.TotalSales, &m.SalesValue)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE quantity < $1`, models.LowStockThreshold).
		Scan(&m.LowStockCount)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE quantity < $1`, models.CriticalStockThreshold).
		Scan(&m.CriticalStockCount)

	return m, nil
}
