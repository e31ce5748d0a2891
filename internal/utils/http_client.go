package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// UserAgent is sent by every backend request of the client.
const UserAgent = "trip-keeper-client"

// HTTPClient is a wrapper around resty.Client.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient with JSON defaults. Automatic retries
// stay disabled: replay of failed mutations is owned by the pending queue.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://trips.example.com", 10*time.Second)
//	resp, err := client.R().Get("/api/trips")
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	c := resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", UserAgent).
		SetRetryCount(0)

	if baseURL != "" {
		c.SetBaseURL(baseURL)
	}
	if timeout > 0 {
		c.SetTimeout(timeout)
	}

	return &HTTPClient{Client: c}
}
