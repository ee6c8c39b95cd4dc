package api

import (
	"errors"
	"log"
	"net/http"

	"solartally/internal/forecast"
)

// ForecastResponse is the payload of /api/forecast. Provenance names
// the tier that actually supplied the data so the UI can flag stale
// cached forecasts.
type ForecastResponse struct {
	Provenance forecast.Provenance `json:"provenance"`
	Points     []forecast.Point    `json:"points"`
	Days       []forecast.DayTotal `json:"days"`
}

func handleForecast(provider ForecastProvider) http.HandlerFunc {
	return instrument("/api/forecast", func(w http.ResponseWriter, r *http.Request) int {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return http.StatusMethodNotAllowed
		}
		if provider == nil {
			http.Error(w, "forecast source not configured", http.StatusServiceUnavailable)
			return http.StatusServiceUnavailable
		}

		payload, prov, err := provider.Fetch(r.Context())
		if err != nil {
			if errors.Is(err, forecast.ErrNoDataAvailable) {
				http.Error(w, "no forecast available", http.StatusServiceUnavailable)
				return http.StatusServiceUnavailable
			}
			log.Printf("get forecast failed: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return http.StatusInternalServerError
		}

		return writeJSON(w, ForecastResponse{
			Provenance: prov,
			Points:     payload.Result.Points(),
			Days:       payload.Result.DayTotals(),
		})
	})
}
