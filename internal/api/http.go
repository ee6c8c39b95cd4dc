// Package api exposes the dashboard's HTTP surface: production stats,
// forecast, rates, settings, and the operational endpoints.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"solartally/internal/forecast"
	"solartally/internal/metrics"
	"solartally/internal/notification"
	"solartally/internal/production"
	"solartally/internal/storage"
	"solartally/internal/tariff"
	"solartally/internal/ui"

	"solartally/internal/api/swagger"
)

// ProductionProvider supplies derived production stats. Implemented by
// production.History.
type ProductionProvider interface {
	Stats(ctx context.Context, now time.Time) ([]production.ProductionStat, bool, error)
}

// ForecastProvider supplies the current forecast with its provenance.
// Implemented by forecast.Fetcher.
type ForecastProvider interface {
	Fetch(ctx context.Context) (*forecast.Payload, forecast.Provenance, error)
}

// Refresher runs one dataset update on demand. Implemented by
// updater.Worker.
type Refresher interface {
	RunOnce(ctx context.Context, now time.Time) error
}

// Deps carries the constructed services the mux serves.
type Deps struct {
	Production   ProductionProvider
	Forecast     ForecastProvider
	Refresher    Refresher
	Storage      storage.Storage
	Notification *notification.Service
	Rates        tariff.RateSchedule
	Calendar     *tariff.HolidayCalendar
}

// NewMux constructs the HTTP mux, wiring in the services, metrics, and
// health endpoints.
func NewMux(deps Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Metrics endpoint.
	mux.Handle("/metrics", promhttp.Handler())

	// Health / readiness / liveness.
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if deps.Storage != nil {
			if err := deps.Storage.Ping(r.Context()); err != nil {
				log.Printf("readyz: storage ping failed: %v", err)
				http.Error(w, "storage not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("live"))
	})

	// Dashboard API.
	mux.HandleFunc("/api/production", handleProduction(deps.Production))
	mux.HandleFunc("/api/forecast", handleForecast(deps.Forecast))
	mux.HandleFunc("/api/rates", handleRates(deps.Rates, deps.Calendar))
	mux.HandleFunc("/api/refresh", handleRefresh(deps.Refresher))
	registerNotificationRoutes(mux, deps.Notification)

	// API docs.
	mux.Handle("/swagger/", http.StripPrefix("/swagger", swagger.Handler()))

	// Web UI
	mux.Handle("/ui/", http.StripPrefix("/ui/", ui.Handler()))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/ui/", http.StatusFound)
	})

	return mux
}

// instrument wraps a handler with the standard request metrics.
func instrument(path string, h func(w http.ResponseWriter, r *http.Request) (status int)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.RequestsTotal.WithLabelValues(path).Inc()
		defer func() {
			metrics.RequestDurationSeconds.WithLabelValues(path).Observe(time.Since(start).Seconds())
		}()

		if status := h(w, r); status >= 400 {
			metrics.RequestErrorsTotal.WithLabelValues(path, strconv.Itoa(status)).Inc()
		}
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) int {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response failed: %v", err)
		return http.StatusInternalServerError
	}
	return http.StatusOK
}
