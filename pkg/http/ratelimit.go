package http

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	DefaultRequestsPerSecond = 40
	DefaultBurst             = 20
)

// PacedClient spaces outgoing requests with a token bucket. It never retries:
// whatever the wrapped client returns is handed back unchanged.
type PacedClient struct {
	client  HTTPClient
	limiter *rate.Limiter
}

// ClientOption is a function that can be used to configure a PacedClient
type ClientOption func(*PacedClient)

// NewPacedClient creates a PacedClient, by default allowing DefaultRequestsPerSecond with DefaultBurst
func NewPacedClient(opts ...ClientOption) *PacedClient {
	c := &PacedClient{
		client:  http.DefaultClient,
		limiter: rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), DefaultBurst),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithRate sets the sustained requests per second and the burst size.
// A non positive rps disables pacing.
func WithRate(rps float64, burst int) ClientOption {
	return func(c *PacedClient) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithHTTPClient sets the http client to use for the client
func WithHTTPClient(client HTTPClient) ClientOption {
	return func(c *PacedClient) {
		c.client = client
	}
}

// Do waits for a token, bounded by the request context, and then executes the request.
func (c *PacedClient) Do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("waiting for request slot: %w", err)
	}

	return c.client.Do(req)
}
