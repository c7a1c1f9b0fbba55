package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/boutiqueluxe/boutique-tracker/internal/http/handlers"
	rl "github.com/boutiqueluxe/boutique-tracker/internal/http/rate_limiter"
	"github.com/boutiqueluxe/boutique-tracker/internal/http/router"
	"github.com/boutiqueluxe/boutique-tracker/internal/models"
	repo "github.com/boutiqueluxe/boutique-tracker/internal/repo"
	"github.com/boutiqueluxe/boutique-tracker/internal/sales"
)

type recordingDispatcher struct {
	sent []models.Sale
}

func (d *recordingDispatcher) Send(sale models.Sale) error {
	d.sent = append(d.sent, sale)
	return nil
}

var (
	productRepo *repo.InMemoryProductRepository
	saleRepo    *repo.InMemorySaleRepository
	dispatcher  *recordingDispatcher
)

func setupTestRepos(t *testing.T) http.Handler {
	t.Helper()
	rl.CleanupAllVisitors()

	productRepo = repo.NewInMemoryProductRepository()
	saleRepo = repo.NewInMemorySaleRepository()
	metricsRepo := repo.NewInMemoryMetricsRepository()
	metricsRepo.SetRepositories(productRepo, saleRepo)
	dispatcher = &recordingDispatcher{}

	handlers.SetProductRepo(productRepo)
	handlers.SetSaleRepo(saleRepo)
	handlers.SetMetricsRepo(metricsRepo)
	handlers.SetSalesService(sales.NewService(productRepo, saleRepo, dispatcher))

	return router.NewRouter()
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("error marshalling body: %v", err)
		}
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(t *testing.T, r http.Handler, p handlers.ProductRequest) handlers.ProductResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/products", p)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	var resp handlers.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	return resp
}

func TestCreateProductHandler_Valid(t *testing.T) {
	r := setupTestRepos(t)

	resp := createProduct(t, r, handlers.ProductRequest{
		Name: "Silk Scarf", Price: 45.0, Quantity: 3, SKU: "SS-01", Category: "Accessories",
	})

	if resp.Name != "Silk Scarf" {
		t.Errorf("expected name 'Silk Scarf', got %v", resp.Name)
	}
	if resp.Price != 45.0 {
		t.Errorf("expected price 45.0, got %v", resp.Price)
	}
	if resp.Quantity != 3 {
		t.Errorf("expected quantity 3, got %v", resp.Quantity)
	}
	if !resp.LowStock || !resp.CriticalStock {
		t.Errorf("quantity 3 should be low and critical stock: %+v", resp)
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	r := setupTestRepos(t)

	tests := []struct {
		name           string
		payload        handlers.ProductRequest
		expectedErrors []string
	}{
		{
			name:           "Empty name",
			payload:        handlers.ProductRequest{Name: "", Price: 10.0},
			expectedErrors: []string{"Name"},
		},
		{
			name:           "Negative price",
			payload:        handlers.ProductRequest{Name: "Scarf", Price: -5.0},
			expectedErrors: []string{"Price"},
		},
		{
			name:           "Negative quantity",
			payload:        handlers.ProductRequest{Name: "Scarf", Price: 10.0, Quantity: -1},
			expectedErrors: []string{"Quantity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/products", tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			body := w.Body.String()
			for _, field := range tt.expectedErrors {
				if !strings.Contains(body, field) {
					t.Errorf("expected error for field %s in %s", field, body)
				}
			}
		})
	}
}

func TestCreateProductHandler_ZeroPriceIsValid(t *testing.T) {
	r := setupTestRepos(t)
	resp := createProduct(t, r, handlers.ProductRequest{Name: "Sample", Price: 0, Quantity: 1})
	if resp.Price != 0 {
		t.Errorf("expected price 0, got %v", resp.Price)
	}
}

func TestUpdateProductHandler(t *testing.T) {
	r := setupTestRepos(t)
	created := createProduct(t, r, handlers.ProductRequest{Name: "Scarf", Price: 45, Quantity: 3})

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/products/%d", created.Id),
		handlers.ProductRequest{Name: "Silk Scarf", Price: 55, Quantity: 4})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp handlers.ProductResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Name != "Silk Scarf" || resp.Price != 55 || resp.Quantity != 4 {
		t.Errorf("unexpected updated product: %+v", resp)
	}

	w = doJSON(t, r, http.MethodPut, "/products/999", handlers.ProductRequest{Name: "X", Price: 1})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown product, got %d", w.Code)
	}
}

func TestDeleteProductHandler(t *testing.T) {
	r := setupTestRepos(t)
	created := createProduct(t, r, handlers.ProductRequest{Name: "Scarf", Price: 45, Quantity: 3})

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/products/%d", created.Id), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/products/%d", created.Id), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("deleting an unknown product should 404, got %d", w.Code)
	}
}

func TestFilterProductsHandler_LowStock(t *testing.T) {
	r := setupTestRepos(t)
	createProduct(t, r, handlers.ProductRequest{Name: "Silk Scarf", Price: 45, Quantity: 2})
	createProduct(t, r, handlers.ProductRequest{Name: "Leather Bag", Price: 120, Quantity: 50})

	w := doJSON(t, r, http.MethodGet, "/products/search?lowStock=true", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp handlers.ProductsSearchResult
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Data) != 1 || resp.Data[0].Name != "Silk Scarf" {
		t.Errorf("expected exactly the low-stock Silk Scarf, got %+v", resp.Data)
	}
}

func TestAdjustQuantityHandler(t *testing.T) {
	r := setupTestRepos(t)
	created := createProduct(t, r, handlers.ProductRequest{Name: "Scarf", Price: 45, Quantity: 3})

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/products/%d/adjust", created.Id),
		handlers.QuantityAdjustmentRequest{Delta: 5})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp handlers.ProductResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Quantity != 8 {
		t.Errorf("expected quantity 8, got %d", resp.Quantity)
	}

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/products/%d/adjust", created.Id),
		handlers.QuantityAdjustmentRequest{Delta: -20})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 for adjustment below zero, got %d", w.Code)
	}
}

func TestRecordSaleHandler(t *testing.T) {
	r := setupTestRepos(t)
	created := createProduct(t, r, handlers.ProductRequest{Name: "Silk Scarf", Price: 45, Quantity: 3})

	w := doJSON(t, r, http.MethodPost, "/sales", handlers.SaleRequest{
		ProductID:     created.Id,
		Quantity:      2,
		CustomerName:  "Jane",
		CustomerEmail: "jane@x.com",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var sale handlers.SaleResponse
	json.NewDecoder(w.Body).Decode(&sale)
	if sale.Total != 90.0 {
		t.Errorf("expected total 90.0, got %v", sale.Total)
	}
	if sale.ProductName != "Silk Scarf" {
		t.Errorf("expected snapshotted product name, got %q", sale.ProductName)
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/products/%d", created.Id), nil)
	var p handlers.ProductResponse
	json.NewDecoder(w.Body).Decode(&p)
	if p.Quantity != 1 {
		t.Errorf("expected product quantity 1 after sale, got %d", p.Quantity)
	}

	if len(dispatcher.sent) != 1 {
		t.Errorf("expected 1 receipt dispatch, got %d", len(dispatcher.sent))
	}
}

func TestRecordSaleHandler_Errors(t *testing.T) {
	r := setupTestRepos(t)
	created := createProduct(t, r, handlers.ProductRequest{Name: "Silk Scarf", Price: 45, Quantity: 3})

	tests := []struct {
		name       string
		payload    handlers.SaleRequest
		expectCode int
	}{
		{
			name:       "unknown product",
			payload:    handlers.SaleRequest{ProductID: 999, Quantity: 1, CustomerEmail: "a@b.com"},
			expectCode: http.StatusNotFound,
		},
		{
			name:       "insufficient stock",
			payload:    handlers.SaleRequest{ProductID: created.Id, Quantity: 5, CustomerEmail: "a@b.com"},
			expectCode: http.StatusConflict,
		},
		{
			name:       "missing email",
			payload:    handlers.SaleRequest{ProductID: created.Id, Quantity: 1},
			expectCode: http.StatusBadRequest,
		},
		{
			name:       "zero quantity",
			payload:    handlers.SaleRequest{ProductID: created.Id, Quantity: 0, CustomerEmail: "a@b.com"},
			expectCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/sales", tt.payload)
			if w.Code != tt.expectCode {
				t.Errorf("expected %d, got %d: %s", tt.expectCode, w.Code, w.Body.String())
			}
		})
	}

	// every failure must leave stock untouched and the ledger empty
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/products/%d", created.Id), nil)
	var p handlers.ProductResponse
	json.NewDecoder(w.Body).Decode(&p)
	if p.Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", p.Quantity)
	}
	if _, total, _ := saleRepo.GetAll(repo.SaleFilter{}); total != 0 {
		t.Errorf("expected empty ledger, got %d sales", total)
	}
}

func TestGetSalesHandler_NewestFirst(t *testing.T) {
	r := setupTestRepos(t)
	created := createProduct(t, r, handlers.ProductRequest{Name: "Scarf", Price: 45, Quantity: 10})

	for i := 0; i < 3; i++ {
		w := doJSON(t, r, http.MethodPost, "/sales", handlers.SaleRequest{
			ProductID: created.Id, Quantity: 1, CustomerEmail: "a@b.com",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("sale %d: expected 201, got %d", i+1, w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/sales", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp handlers.SalesSearchResult
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Meta.TotalCount != 3 {
		t.Errorf("expected 3 sales, got %d", resp.Meta.TotalCount)
	}
	for i, s := range resp.Data {
		want := 3 - i
		if s.Id != want {
			t.Errorf("position %d: expected sale %d, got %d", i, want, s.Id)
		}
	}
}

func TestResendReceiptHandler(t *testing.T) {
	r := setupTestRepos(t)
	created := createProduct(t, r, handlers.ProductRequest{Name: "Scarf", Price: 45, Quantity: 3})

	w := doJSON(t, r, http.MethodPost, "/sales", handlers.SaleRequest{
		ProductID: created.Id, Quantity: 1, CustomerEmail: "a@b.com",
	})
	var sale handlers.SaleResponse
	json.NewDecoder(w.Body).Decode(&sale)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/sales/%d/resend", sale.Id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(dispatcher.sent) != 2 {
		t.Errorf("expected 2 dispatches after resend, got %d", len(dispatcher.sent))
	}

	w = doJSON(t, r, http.MethodPost, "/sales/999/resend", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown sale, got %d", w.Code)
	}
}

func TestGetDashboardMetricsHandler(t *testing.T) {
	r := setupTestRepos(t)
	created := createProduct(t, r, handlers.ProductRequest{Name: "Silk Scarf", Price: 45, Quantity: 3})
	doJSON(t, r, http.MethodPost, "/sales", handlers.SaleRequest{
		ProductID: created.Id, Quantity: 2, CustomerEmail: "a@b.com",
	})

	w := doJSON(t, r, http.MethodGet, "/metrics/dashboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var m repo.Metrics
	json.NewDecoder(w.Body).Decode(&m)
	if m.TotalProducts != 1 {
		t.Errorf("expected 1 product, got %d", m.TotalProducts)
	}
	if m.InventoryValue != 45.0 { // 1 remaining unit at 45.00
		t.Errorf("expected inventory value 45.0, got %v", m.InventoryValue)
	}
	if m.SalesValue != 90.0 {
		t.Errorf("expected sales value 90.0, got %v", m.SalesValue)
	}
}

func TestImportProductsHandler(t *testing.T) {
	r := setupTestRepos(t)

	var buf bytes.Buffer
	mw := newMultipartCSV(t, &buf, "name,price,quantity,sku\nSilk Scarf,45.00,3,SS-01\n,10.00,1,BAD\n")

	req := httptest.NewRequest(http.MethodPost, "/products/import", &buf)
	req.Header.Set("Content-Type", mw)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var result handlers.ImportProductsResult
	json.NewDecoder(w.Body).Decode(&result)
	if result.ImportedProductsCount != 1 {
		t.Errorf("expected 1 imported product, got %d", result.ImportedProductsCount)
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 row error, got %d", len(result.Errors))
	}
}

func newMultipartCSV(t *testing.T, buf *bytes.Buffer, csvContent string) string {
	t.Helper()
	w := multipart.NewWriter(buf)
	fw, err := w.CreateFormFile("file", "products.csv")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(csvContent)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return w.FormDataContentType()
}
