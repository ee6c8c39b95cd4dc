package production

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const statsBody = `{"stats":[{"start_time":1718150400,"production":[100,null,200]}]}`

func TestDailyEnergyParsesStats(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(statsBody))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, SystemID: 2875024})
	start := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)

	records, err := c.DailyEnergy(context.Background(), start, start)
	if err != nil {
		t.Fatalf("DailyEnergy failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.StartTime != 1718150400 {
		t.Errorf("start_time: got %d", rec.StartTime)
	}
	if len(rec.Production) != 3 || rec.Production[1] != nil {
		t.Errorf("null sample not preserved: %+v", rec.Production)
	}
	if rec.Production[2] == nil || *rec.Production[2] != 200 {
		t.Errorf("numeric sample lost: %+v", rec.Production)
	}

	if gotPath != "/pv/public_systems/2875024/daily_energy" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotQuery != "end_date=2024-06-12&start_date=2024-06-12" {
		t.Errorf("unexpected query: %s", gotQuery)
	}
}

func TestDailyEnergyOpenEndedRangeOmitsEndDate(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"stats":[]}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, SystemID: 1})
	start := time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC)
	if _, err := c.DailyEnergy(context.Background(), start, time.Time{}); err != nil {
		t.Fatalf("DailyEnergy failed: %v", err)
	}
	if gotQuery != "start_date=2022-06-01" {
		t.Errorf("unexpected query: %s", gotQuery)
	}
}

func TestDailyEnergyRetriesTransientFailures(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"stats":[]}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, SystemID: 1})
	start := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	if _, err := c.DailyEnergy(context.Background(), start, start); err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestDailyEnergyReportsExhaustedRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, SystemID: 1})
	start := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	if _, err := c.DailyEnergy(context.Background(), start, start); err == nil {
		t.Fatalf("expected error after exhausted retries")
	}
}
