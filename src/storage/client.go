// Package storage talks to the remote media storage server that holds the
// thumbnail and original image files.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/enzococca/pyarchinit-webapp/src/metrics"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultContentType = "image/jpeg"

// Payload is a fetched file.
type Payload struct {
	Data        []byte
	ContentType string
}

// UpstreamError means the storage server answered with a non-success status.
type UpstreamError struct {
	URL        string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("storage server returned status %d for %s", e.StatusCode, e.URL)
}

// TransportError means the storage server could not be reached.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Config configures a Client.
type Config struct {
	APIKey           string
	ThumbnailTimeout time.Duration
	FullTimeout      time.Duration
}

// Client fetches files by absolute URL. Requests are never retried.
type Client struct {
	httpClient *http.Client
	apiKey     string
	thumbTO    time.Duration
	fullTO     time.Duration
	breaker    *gobreaker.CircuitBreaker[*Payload]
}

// NewClient builds a client with an instrumented transport.
func NewClient(cfg Config) *Client {
	return NewClientWithHTTPClient(cfg, &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)})
}

// NewClientWithHTTPClient lets callers supply the *http.Client.
func NewClientWithHTTPClient(cfg Config, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{}
	}
	if cfg.ThumbnailTimeout <= 0 {
		cfg.ThumbnailTimeout = 30 * time.Second
	}
	if cfg.FullTimeout <= 0 {
		cfg.FullTimeout = 60 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[*Payload](gobreaker.Settings{
		Name:        "media-storage",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A 4xx is the storage server working correctly. A caller that gave up
		// says nothing about the server.
		IsSuccessful: func(err error) bool {
			if errors.Is(err, context.Canceled) {
				return true
			}
			var upstream *UpstreamError
			if errors.As(err, &upstream) {
				return upstream.StatusCode < http.StatusInternalServerError
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("storage circuit breaker state changed")
		},
	})

	return &Client{
		httpClient: hc,
		apiKey:     cfg.APIKey,
		thumbTO:    cfg.ThumbnailTimeout,
		fullTO:     cfg.FullTimeout,
		breaker:    breaker,
	}
}

// Fetch downloads url. thumbnail selects the shorter deadline.
func (c *Client) Fetch(ctx context.Context, url string, thumbnail bool) (*Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	start := time.Now()
	payload, err := c.breaker.Execute(func() (*Payload, error) {
		return c.fetch(ctx, url, thumbnail)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = &TransportError{URL: url, Err: err}
	}
	metrics.RecordStorageFetch(outcome(err), time.Since(start))
	return payload, err
}

func (c *Client) fetch(ctx context.Context, url string, thumbnail bool) (*Payload, error) {
	timeout := c.fullTO
	if thumbnail {
		timeout = c.thumbTO
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return nil, &UpstreamError{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}
	return &Payload{Data: data, ContentType: contentType}, nil
}

func outcome(err error) string {
	var upstream *UpstreamError
	var transport *TransportError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &upstream):
		return "upstream_error"
	case errors.As(err, &transport):
		return "transport_error"
	default:
		return "error"
	}
}
