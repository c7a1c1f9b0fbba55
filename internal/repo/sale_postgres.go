package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/boutiqueluxe/boutique-tracker/internal/models"
)

type PostgresSaleRepository struct {
	db *sql.DB
}

func NewPostgresSaleRepository(db *sql.DB) *PostgresSaleRepository {
	return &PostgresSaleRepository{db: db}
}

const saleColumns = `id, product_id, product_name, quantity, price, total, customer_name, customer_email, notes, date`

func scanSale(row interface{ Scan(...any) error }) (models.Sale, error) {
	var s models.Sale
	err := row.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.Quantity, &s.Price,
		&s.Total, &s.CustomerName, &s.CustomerEmail, &s.Notes, &s.Date)
	return s, err
}

// Append inserts a completed sale. There is no update or delete path.
func (r *PostgresSaleRepository) Append(sale models.Sale) (models.Sale, error) {
	query := `INSERT INTO sales (product_id, product_name, quantity, price, total, customer_name, customer_email, notes, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, sale.ProductID, sale.ProductName,
		sale.Quantity, sale.Price, sale.Total, sale.CustomerName,
		sale.CustomerEmail, sale.Notes, sale.Date).Scan(&sale.ID)
	if err != nil {
		return models.Sale{}, fmt.Errorf("failed to insert sale: %w", err)
	}
	return sale, nil
}

func (r *PostgresSaleRepository) GetByID(id int) (models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	s, err := scanSale(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sale{}, ErrSaleNotFound
	}
	return s, err
}

// GetAll returns sales newest-first, optionally restricted by date range and
// paginated.
func (r *PostgresSaleRepository) GetAll(sf SaleFilter) ([]models.Sale, int, error) {
	whereClause, args := saleWhereClause(sf)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var total int
	countQuery := "SELECT COUNT(*) FROM sales " + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}

	query := `SELECT ` + saleColumns + ` FROM sales ` + whereClause + ` ORDER BY date DESC, id DESC`
	argIdx := len(args) + 1

	if sf.Limit != nil && *sf.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *sf.Limit)
		argIdx++
	}
	if sf.Offset != nil && *sf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *sf.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sales []models.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, 0, err
		}
		sales = append(sales, s)
	}
	return sales, total, rows.Err()
}

func saleWhereClause(sf SaleFilter) (string, []any) {
	whereClause := "WHERE 1=1"
	args := []any{}
	argIdx := 1

	// bounds rendered in UTC so the text comparison against the UTC date
	// column stays correct for offset-bearing inputs
	if sf.Since != nil {
		whereClause += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, sf.Since.UTC().Format(time.RFC3339))
		argIdx++
	}
	if sf.Until != nil {
		whereClause += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, sf.Until.UTC().Format(time.RFC3339))
	}

	return whereClause, args
}
