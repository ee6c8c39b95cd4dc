package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"solartally/internal/httpx"
)

// Site describes the installation's panel geometry for the estimate
// endpoints.
type Site struct {
	Latitude  float64
	Longitude float64
	// Declination is the panel tilt passed to the API. When zero it is
	// derived from the sun's declination at startup, matching how the
	// dashboard originally parameterized its panels.
	Declination float64
	// Azimuth is the panel orientation (-180..180, 0 = south).
	Azimuth float64
	// MaxKW is the installation's AC power ceiling in kW.
	MaxKW float64
}

// SolarDeclination approximates the sun's declination angle in degrees
// on the given day using the standard cosine formula.
func SolarDeclination(t time.Time) float64 {
	n := float64(t.YearDay())
	return -23.44 * math.Cos(2*math.Pi/365*(n+10))
}

// ClientConfig configures the forecast.solar client.
type ClientConfig struct {
	// BaseURL is the API root.
	BaseURL string
	Site    Site
	// Timeout bounds each HTTP attempt. Defaults to 30s.
	Timeout time.Duration
}

// Client calls the forecast.solar estimate endpoints.
type Client struct {
	cfg  ClientConfig
	http *http.Client
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.forecast.solar"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{cfg: cfg, http: httpx.NewClient(timeout, false)}
}

// estimateURL builds the personal or public estimate URL. An empty
// apiKey selects the public, rate-limited endpoint.
func (c *Client) estimateURL(apiKey string) string {
	s := c.cfg.Site
	path := fmt.Sprintf("/estimate/%.2f/%.2f/%.2f/%g/%g",
		s.Latitude, s.Longitude, s.Declination, s.Azimuth, s.MaxKW)
	if apiKey != "" {
		return c.cfg.BaseURL + "/" + apiKey + path
	}
	return c.cfg.BaseURL + path
}

// Estimate fetches a forecast. Public-endpoint calls are retried with
// backoff since that tier is rate limited; personal calls get a single
// attempt and fall through to the next tier on failure.
func (c *Client) Estimate(ctx context.Context, apiKey string) (*Payload, error) {
	reqURL := c.estimateURL(apiKey)

	if apiKey != "" {
		return c.fetch(ctx, reqURL)
	}

	var payload *Payload
	backoff := retry.WithMaxRetries(2, retry.NewExponential(time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		got, err := c.fetch(ctx, reqURL)
		if err != nil {
			return retry.RetryableError(err)
		}
		payload = got
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) fetch(ctx context.Context, reqURL string) (*Payload, error) {
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
		return nil, fmt.Errorf("forecast endpoint returned status %d", resp.StatusCode)
	}

	var payload Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode forecast: %w", err)
	}
	return &payload, nil
}
