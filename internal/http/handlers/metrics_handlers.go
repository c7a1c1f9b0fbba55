package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

const metricsCacheTTL = 30 * time.Second

// GetDashboardMetricsHandler godoc
// @Summary Dashboard aggregates: product count, inventory value, sales value, low-stock counts
// @Tags metrics
// @Produce json
// @Success 200 {object} repo.Metrics
// @Failure 500 {string} string "Internal error"
// @Router /metrics/dashboard [get]
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	if redisService != nil {
		if m, ok := redisService.GetCachedMetrics(); ok {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(m)
			return
		}
	}

	m, err := metricsRepo.GetDashboardMetrics()
	if err != nil {
		http.Error(w, "failed to fetch metrics", http.StatusInternalServerError)
		return
	}

	if redisService != nil {
		redisService.CacheMetrics(m, metricsCacheTTL)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(m); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
