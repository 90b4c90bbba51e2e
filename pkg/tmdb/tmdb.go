package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kasuboski/marquee/pkg/cache"
	mhttp "github.com/kasuboski/marquee/pkg/http"
	"github.com/kasuboski/marquee/pkg/logger"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	DefaultLanguage     = "en-US"
	DefaultTimeout      = 8 * time.Second
	maxResponseBytes    = 8 << 20
)

// Freshness windows for cached upstream responses.
const (
	FreshSearch   = 300 * time.Second
	FreshDetail   = 3600 * time.Second
	FreshDiscover = 3600 * time.Second
	FreshPopular  = 86400 * time.Second
)

// ClientInterface fetches raw JSON documents from TMDB.
type ClientInterface interface {
	Fetch(ctx context.Context, path string, params url.Values, freshness time.Duration) ([]byte, error)
}

// RequestEditorFn is applied to every outgoing request before it is sent.
type RequestEditorFn func(ctx context.Context, req *http.Request) error

// SetRequestAPIKey authenticates a request with a TMDB read access token.
func SetRequestAPIKey(apiKey string) RequestEditorFn {
	return func(ctx context.Context, req *http.Request) error {
		req.Header.Set("Authorization", "Bearer "+apiKey)
		req.Header.Set("accept", "application/json")
		return nil
	}
}

// SetUserAgent names the calling application on every request.
func SetUserAgent(userAgent string) RequestEditorFn {
	return func(ctx context.Context, req *http.Request) error {
		req.Header.Set("User-Agent", userAgent)
		return nil
	}
}

// SetLanguage adds the language query parameter unless the request already carries one.
func SetLanguage(language string) RequestEditorFn {
	return func(ctx context.Context, req *http.Request) error {
		q := req.URL.Query()
		if q.Get("language") != "" {
			return nil
		}
		q.Set("language", language)
		req.URL.RawQuery = q.Encode()
		return nil
	}
}

// Client is a thin TMDB client. Each call is bounded by a timeout, answered
// from the freshness cache when possible and never retried.
type Client struct {
	baseURL string
	http    mhttp.HTTPClient
	timeout time.Duration
	editors []RequestEditorFn
	cache   *cache.Cache[string, []byte]
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient sets the transport used for requests
func WithHTTPClient(c mhttp.HTTPClient) ClientOption {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithTimeout bounds every upstream call
func WithTimeout(d time.Duration) ClientOption {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// WithLanguage overrides the default en-US locale
func WithLanguage(language string) ClientOption {
	return func(cl *Client) {
		if language != "" {
			cl.editors[1] = SetLanguage(language)
		}
	}
}

// WithRequestEditorFn appends an editor applied after authentication and language
func WithRequestEditorFn(fn RequestEditorFn) ClientOption {
	return func(cl *Client) {
		cl.editors = append(cl.editors, fn)
	}
}

// WithCache shares a freshness cache between clients
func WithCache(c *cache.Cache[string, []byte]) ClientOption {
	return func(cl *Client) {
		cl.cache = c
	}
}

// New creates a TMDB client for baseURL authenticated with accessToken
func New(baseURL, accessToken string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid tmdb url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid tmdb url %q: scheme and host are required", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimSuffix(u.String(), "/"),
		http:    mhttp.NewPacedClient(),
		timeout: DefaultTimeout,
		editors: []RequestEditorFn{SetRequestAPIKey(accessToken), SetLanguage(DefaultLanguage)},
		cache:   cache.New[string, []byte](),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Fetch issues a GET for path with params. A positive freshness lets a cached
// body answer the call and stores a successful body for that long.
func (c *Client) Fetch(ctx context.Context, path string, params url.Values, freshness time.Duration) ([]byte, error) {
	endpoint := endpointLabel(path)
	log := logger.FromCtx(ctx, zap.String("endpoint", endpoint))

	req, err := c.newRequest(ctx, path, params)
	if err != nil {
		return nil, err
	}

	key := req.URL.String()
	if freshness > 0 {
		if b, ok := c.cache.Get(key); ok {
			cacheHits.WithLabelValues(endpoint).Inc()
			return b, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	req = req.WithContext(ctx)

	start := time.Now()
	res, err := c.http.Do(req)
	requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(endpoint, "error").Inc()
		log.Warnw("tmdb request failed", "error", err)
		return nil, &UpstreamError{Path: path, Message: err.Error(), Err: err}
	}
	defer res.Body.Close()

	requestsTotal.WithLabelValues(endpoint, fmt.Sprint(res.StatusCode)).Inc()

	b, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, &UpstreamError{Status: res.StatusCode, Path: path, Message: "failed to read response body", Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		uerr := &UpstreamError{Status: res.StatusCode, Path: path, Message: statusMessage(b, res.StatusCode)}
		log.Debugw("tmdb returned an error", "status", res.StatusCode, "message", uerr.Message)
		return nil, uerr
	}

	if freshness > 0 {
		c.cache.SetWithTTL(key, b, freshness)
	}

	return b, nil
}

func (c *Client) newRequest(ctx context.Context, path string, params url.Values) (*http.Request, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid tmdb path %q: %w", path, err)
	}

	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	for _, edit := range c.editors {
		if err := edit(ctx, req); err != nil {
			return nil, fmt.Errorf("failed to prepare tmdb request: %w", err)
		}
	}

	return req, nil
}

// statusMessage prefers the status_message TMDB sends with its errors.
func statusMessage(body []byte, status int) string {
	var payload struct {
		StatusMessage string `json:"status_message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.StatusMessage != "" {
		return payload.StatusMessage
	}

	return http.StatusText(status)
}

// endpointLabel replaces numeric path segments so metrics stay low cardinality.
func endpointLabel(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		if s != "" && strings.Trim(s, "0123456789") == "" {
			segments[i] = "{id}"
		}
	}
	return "/" + strings.Join(segments, "/")
}
