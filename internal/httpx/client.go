// Package httpx provides shared HTTP client construction for the
// upstream API clients.
package httpx

import (
	"crypto/tls"
	"net/http"
	"time"
)

// NewClient creates an HTTP client with optional TLS configuration.
// Set skipTLSVerify to true for servers with misconfigured certificate
// chains (e.g., servers that don't send intermediate certificates).
func NewClient(timeout time.Duration, skipTLSVerify bool) *http.Client {
	transport := &http.Transport{}

	if skipTLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// DefaultClient returns a standard HTTP client with 30s timeout.
func DefaultClient() *http.Client {
	return NewClient(30*time.Second, false)
}
