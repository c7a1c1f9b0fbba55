package main

import (
	"context"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/boutiqueluxe/boutique-tracker/internal/config"
	"github.com/boutiqueluxe/boutique-tracker/internal/db"
	"github.com/boutiqueluxe/boutique-tracker/internal/http/handlers"
	rl "github.com/boutiqueluxe/boutique-tracker/internal/http/rate_limiter"
	"github.com/boutiqueluxe/boutique-tracker/internal/http/router"
	"github.com/boutiqueluxe/boutique-tracker/internal/receipt"
	"github.com/boutiqueluxe/boutique-tracker/internal/redissvc"
	"github.com/boutiqueluxe/boutique-tracker/internal/repo"
	"github.com/boutiqueluxe/boutique-tracker/internal/sales"
)

// @title Boutique Tracker API
// @version 1.0
// @description REST API for boutique inventory, sales recording and email receipts.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Could not load configuration:", err)
	}

	go rl.StartVisitorCleanupLoop()

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx := context.Background()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Could not connect to Redis: %v", err)
		}
		defer rdb.Close()
		handlers.SetRedisService(redissvc.NewRedisService(rdb, ctx))
	}

	var productRepo repo.ProductRepository
	var saleRepo repo.SaleRepository
	var metricsRepo repo.MetricsRepository

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("❌ Could not connect to database:", err)
		}
		defer database.Close()

		productRepo = repo.NewPostgresProductRepository(database)
		saleRepo = repo.NewPostgresSaleRepository(database)
		metricsRepo = repo.NewPostgresMetricsRepository(database)
	} else {
		log.Println("No database configured, state is kept in memory for the process lifetime")
		products := repo.NewInMemoryProductRepository()
		ledger := repo.NewInMemorySaleRepository()
		metrics := repo.NewInMemoryMetricsRepository()
		metrics.SetRepositories(products, ledger)
		productRepo, saleRepo, metricsRepo = products, ledger, metrics
	}

	var dispatcher receipt.Dispatcher
	if cfg.SMTP.Host != "" {
		dispatcher = receipt.NewSMTPDispatcher(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	} else {
		log.Println("No SMTP relay configured, receipts are written to the log")
		dispatcher = receipt.NewLogDispatcher()
	}

	handlers.SetProductRepo(productRepo)
	handlers.SetSaleRepo(saleRepo)
	handlers.SetMetricsRepo(metricsRepo)
	handlers.SetSalesService(sales.NewService(productRepo, saleRepo, dispatcher))

	r := router.NewRouter()
	log.Println("✅ Server running on", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		log.Fatal(err)
	}
}
