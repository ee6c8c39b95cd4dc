package api

import (
	"net/http"
	"time"

	"solartally/internal/tariff"
)

// RatesResponse is the payload of /api/rates: the configured schedule
// plus today's season and per-slot bucket classification, which is all
// the UI needs to shade its chart.
type RatesResponse struct {
	Schedule tariff.RateSchedule `json:"schedule"`
	Season   string              `json:"season"`
	Buckets  []string            `json:"buckets"`
}

func handleRates(rates tariff.RateSchedule, cal *tariff.HolidayCalendar) http.HandlerFunc {
	return instrument("/api/rates", func(w http.ResponseWriter, r *http.Request) int {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return http.StatusMethodNotAllowed
		}

		now := time.Now().UTC()
		cls := tariff.Classify(now, cal)
		buckets := make([]string, len(cls))
		for i, b := range cls {
			buckets[i] = b.String()
		}

		return writeJSON(w, RatesResponse{
			Schedule: rates,
			Season:   tariff.SeasonFor(now).String(),
			Buckets:  buckets,
		})
	})
}
