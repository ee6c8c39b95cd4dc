package api

import (
	"log"
	"net/http"
	"time"

	"solartally/internal/production"
)

// ProductionResponse is the payload of /api/production. Complete is
// false while the bulk history range is still resolving; clients are
// expected to poll until it flips.
type ProductionResponse struct {
	Stats    []production.ProductionStat `json:"stats"`
	Complete bool                        `json:"complete"`
	Summary  production.Summary          `json:"summary"`
}

func handleProduction(provider ProductionProvider) http.HandlerFunc {
	return instrument("/api/production", func(w http.ResponseWriter, r *http.Request) int {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return http.StatusMethodNotAllowed
		}
		if provider == nil {
			http.Error(w, "production source not configured", http.StatusServiceUnavailable)
			return http.StatusServiceUnavailable
		}

		stats, complete, err := provider.Stats(r.Context(), time.Now().UTC())
		if err != nil {
			log.Printf("get production stats failed: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return http.StatusInternalServerError
		}

		return writeJSON(w, ProductionResponse{
			Stats:    stats,
			Complete: complete,
			Summary:  production.Summarize(stats),
		})
	})
}
