package production

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sethvargo/go-retry"

	"solartally/internal/httpx"
)

const dateLayout = "2006-01-02"

// ClientConfig configures the Enlighten daily-energy client.
type ClientConfig struct {
	// BaseURL is the Enlighten endpoint root.
	BaseURL string
	// ProxyURL, when set, is a CORS-style prefix the request URL is
	// appended to (percent-encoded).
	ProxyURL string
	// SystemID identifies the public system to read.
	SystemID int
	// Timeout bounds each HTTP attempt. Defaults to 30s.
	Timeout time.Duration
}

// Client reads raw daily production records from the upstream API.
type Client struct {
	cfg  ClientConfig
	http *http.Client
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://enlighten.enphaseenergy.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{cfg: cfg, http: httpx.NewClient(timeout, false)}
}

// statsEnvelope matches the daily_energy response body.
type statsEnvelope struct {
	Stats []RawDailyRecord `json:"stats"`
}

// DailyEnergy fetches records from start through end inclusive. A zero
// end fetches the open-ended range the upstream defaults to (start
// through today). Transient upstream errors are retried briefly before
// the fetch is reported as failed.
func (c *Client) DailyEnergy(ctx context.Context, start, end time.Time) ([]RawDailyRecord, error) {
	reqURL := c.buildURL(start, end)

	var records []RawDailyRecord
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		got, err := c.fetch(ctx, reqURL)
		if err != nil {
			return retry.RetryableError(err)
		}
		records = got
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("daily energy fetch: %w", err)
	}
	return records, nil
}

// Today fetches only the current day's record(s).
func (c *Client) Today(ctx context.Context, now time.Time) ([]RawDailyRecord, error) {
	day := now.UTC()
	return c.DailyEnergy(ctx, day, day)
}

func (c *Client) buildURL(start, end time.Time) string {
	q := url.Values{}
	q.Set("start_date", start.UTC().Format(dateLayout))
	if !end.IsZero() {
		q.Set("end_date", end.UTC().Format(dateLayout))
	}
	target := fmt.Sprintf("%s/pv/public_systems/%d/daily_energy?%s",
		c.cfg.BaseURL, c.cfg.SystemID, q.Encode())

	if c.cfg.ProxyURL != "" {
		return c.cfg.ProxyURL + url.QueryEscape(target)
	}
	return target
}

func (c *Client) fetch(ctx context.Context, reqURL string) ([]RawDailyRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	var env statsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	return env.Stats, nil
}
