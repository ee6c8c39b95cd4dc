package api

import (
	"log"
	"net/http"
	"time"
)

// RefreshResponse is the response structure for the refresh endpoint.
type RefreshResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func handleRefresh(refresher Refresher) http.HandlerFunc {
	return instrument("/api/refresh", func(w http.ResponseWriter, r *http.Request) int {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return http.StatusMethodNotAllowed
		}
		if refresher == nil {
			http.Error(w, "refresh not configured", http.StatusServiceUnavailable)
			return http.StatusServiceUnavailable
		}

		if err := refresher.RunOnce(r.Context(), time.Now().UTC()); err != nil {
			log.Printf("manual refresh failed: %v", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			writeJSON(w, RefreshResponse{Status: "error", Error: err.Error()})
			return http.StatusBadGateway
		}

		return writeJSON(w, RefreshResponse{Status: "ok"})
	})
}
