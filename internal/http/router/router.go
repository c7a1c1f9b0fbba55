package router

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/boutiqueluxe/boutique-tracker/internal/http/handlers"
	rl "github.com/boutiqueluxe/boutique-tracker/internal/http/rate_limiter"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(rateLimit)

	r.Route("/products", func(r chi.Router) {
		r.Post("/", handlers.CreateProductHandler)
		r.Get("/", handlers.GetProductsHandler)
		r.Get("/search", handlers.FilterProductsHandler)
		r.Post("/import", handlers.ImportProductsHandler)
		r.Get("/{id}", handlers.GetProductByIDHandler)
		r.Put("/{id}", handlers.UpdateProductHandler)
		r.Delete("/{id}", handlers.DeleteProductHandler)
		r.Post("/{id}/adjust", handlers.AdjustQuantityHandler)
	})

	r.Route("/sales", func(r chi.Router) {
		r.Post("/", handlers.RecordSaleHandler)
		r.Get("/", handlers.GetSalesHandler)
		r.Get("/export", handlers.ExportSalesHandler)
		r.Get("/{id}", handlers.GetSaleByIDHandler)
		r.Post("/{id}/resend", handlers.ResendReceiptHandler)
	})

	r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)

	return r
}

func rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.GetVisitor(ip).Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
