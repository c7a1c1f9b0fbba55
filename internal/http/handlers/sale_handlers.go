package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	repo "github.com/boutiqueluxe/boutique-tracker/internal/repo"
	"github.com/boutiqueluxe/boutique-tracker/internal/sales"
)

// RecordSaleHandler godoc
// @Summary Record a sale
// @Description Validates stock, decrements it, appends the sale to the ledger and emails a receipt
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body SaleRequest true "Sale to record"
// @Success 201 {object} SaleResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {string} string "Product not found"
// @Failure 409 {string} string "Insufficient stock"
// @Failure 500 {string} string "Internal error"
// @Router /sales [post]
func RecordSaleHandler(w http.ResponseWriter, r *http.Request) {
	var req SaleRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateSale(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	sale, err := salesService.RecordSale(sales.SaleInput{
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Notes:         req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrInsufficientStock):
			http.Error(w, "not enough stock available", http.StatusConflict)
		case errors.Is(err, sales.ErrInvalidQuantity), errors.Is(err, sales.ErrCustomerEmailRequired):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "could not record sale", http.StatusInternalServerError)
		}
		return
	}
	invalidateMetricsCache()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toSaleResponse(sale))
}

// GetSalesHandler godoc
// @Summary Sales history, most recent first
// @Tags sales
// @Produce json
// @Param since query string false "Filter sales from this timestamp (RFC3339)"
// @Param until query string false "Filter sales until this timestamp (RFC3339)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} SalesSearchResult
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /sales [get]
func GetSalesHandler(w http.ResponseWriter, r *http.Request) {
	since, until, ok := parseDateRange(w, r)
	if !ok {
		return
	}

	var limit, offset *int

	limitStr := r.URL.Query().Get("limit")
	if limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil {
			limit = &v
		} else {
			http.Error(w, "invalid limit format", http.StatusBadRequest)
			return
		}
	}
	if limit != nil && *limit <= 0 {
		http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
		return
	}

	offsetStr := r.URL.Query().Get("offset")
	if offsetStr != "" {
		if v, err := strconv.Atoi(offsetStr); err == nil {
			offset = &v
		} else {
			http.Error(w, "invalid offset format", http.StatusBadRequest)
			return
		}
	}
	if offset != nil && *offset < 0 {
		http.Error(w, "offset must be zero or positive", http.StatusBadRequest)
		return
	}

	results, total, err := saleRepo.GetAll(repo.SaleFilter{Since: since, Until: until, Offset: offset, Limit: limit})
	if err != nil {
		log.Printf("could not retrieve sales: %v", err)
		http.Error(w, "could not retrieve sales", http.StatusInternalServerError)
		return
	}

	response := SalesSearchResult{
		Data: make([]SaleResponse, len(results)),
		Meta: Meta{TotalCount: total},
	}
	for i, s := range results {
		response.Data[i] = toSaleResponse(s)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetSaleByIDHandler godoc
// @Summary Get a sale by ID
// @Tags sales
// @Produce json
// @Param id path int true "Sale ID"
// @Success 200 {object} SaleResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /sales/{id} [get]
func GetSaleByIDHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid sale ID", http.StatusBadRequest)
		return
	}

	sale, err := saleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrSaleNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch sale", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toSaleResponse(sale))
}

// ResendReceiptHandler godoc
// @Summary Resend the receipt for a recorded sale
// @Description Re-dispatches the receipt email; the ledger and catalog are not touched
// @Tags sales
// @Produce json
// @Param id path int true "Sale ID"
// @Success 200 {object} SaleResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /sales/{id}/resend [post]
func ResendReceiptHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid sale ID", http.StatusBadRequest)
		return
	}

	sale, err := salesService.Resend(id)
	if err != nil {
		if errors.Is(err, repo.ErrSaleNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not resend receipt", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toSaleResponse(sale))
}

// ExportSalesHandler godoc
// @Summary Export the sales ledger
// @Tags sales
// @Produce text/csv, application/json
// @Param format query string true "Export format (csv or json)"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /sales/export [get]
func ExportSalesHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}

	since, until, ok := parseDateRange(w, r)
	if !ok {
		return
	}

	results, _, err := saleRepo.GetAll(repo.SaleFilter{Since: since, Until: until})
	if err != nil {
		http.Error(w, "could not retrieve sales", http.StatusInternalServerError)
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="sales.json"`)
		json.NewEncoder(w).Encode(results)

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="sales.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "product_id", "product_name", "quantity", "price", "total", "customer_name", "customer_email", "date"})
		for _, s := range results {
			_ = csvWriter.Write([]string{
				strconv.Itoa(s.ID),
				strconv.Itoa(s.ProductID),
				s.ProductName,
				strconv.Itoa(s.Quantity),
				fmt.Sprintf("%.2f", s.Price),
				fmt.Sprintf("%.2f", s.Total),
				s.CustomerName,
				s.CustomerEmail,
				s.Date,
			})
		}
		csvWriter.Flush()
	}
}

// parseDateRange reads the optional since/until query parameters. It undoes
// the + for space substitution URL query decoding performs on RFC3339 zone
// offsets (2025-07-03T17:44:03+02:00 arrives as 2025-07-03T17:44:03 02:00).
func parseDateRange(w http.ResponseWriter, r *http.Request) (since, until *time.Time, ok bool) {
	sinceStr := r.URL.Query().Get("since")
	untilStr := r.URL.Query().Get("until")

	if len(sinceStr) == len(time.RFC3339) && sinceStr[len(sinceStr)-6] == ' ' {
		sinceStr = sinceStr[:len(sinceStr)-6] + "+" + sinceStr[len(sinceStr)-5:]
	}
	if len(untilStr) == len(time.RFC3339) && untilStr[len(untilStr)-6] == ' ' {
		untilStr = untilStr[:len(untilStr)-6] + "+" + untilStr[len(untilStr)-5:]
	}

	if sinceStr != "" {
		ts, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			log.Printf("could not parse since date %s: %v", sinceStr, err)
			http.Error(w, "invalid since date format", http.StatusBadRequest)
			return nil, nil, false
		}
		since = &ts
	}
	if untilStr != "" {
		ts, err := time.Parse(time.RFC3339, untilStr)
		if err != nil {
			log.Printf("could not parse until date %s: %v", untilStr, err)
			http.Error(w, "invalid until date format", http.StatusBadRequest)
			return nil, nil, false
		}
		until = &ts
	}
	return since, until, true
}
