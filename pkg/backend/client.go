package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/spacelayout/pkg/catalog"
	"github.com/matzehuels/spacelayout/pkg/errors"
	"github.com/matzehuels/spacelayout/pkg/httputil"
	"github.com/matzehuels/spacelayout/pkg/layout"
	"github.com/matzehuels/spacelayout/pkg/observability"
)

// AnalyzePath is the endpoint of the layout analysis.
const AnalyzePath = "/api/v1/chatbot/analyze-space-layout"

// The model behind the endpoint answers slowly.
const httpTimeout = 60 * time.Second

const (
	defaultAttempts = 3
	defaultDelay    = time.Second
)

// Client talks to the analysis backend. It is safe for concurrent use.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	headers map[string]string
	catalog *catalog.Catalog

	attempts int
	delay    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithHeaders adds headers to every request.
func WithHeaders(h map[string]string) Option {
	return func(c *Client) {
		for k, v := range h {
			c.headers[k] = v
		}
	}
}

// WithCatalog sets the catalog used to classify parking items.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(c *Client) { c.catalog = cat }
}

// WithRetry sets the number of attempts and the initial backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// NewClient creates a client for the backend at baseURL. An empty token
// sends no Authorization header.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{Timeout: httpTimeout},
		baseURL:  strings.TrimRight(baseURL, "/"),
		token:    token,
		headers:  map[string]string{"Accept": "application/json"},
		attempts: defaultAttempts,
		delay:    defaultDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Analyze asks the backend to assess req. Network failures and 5xx
// responses are retried with backoff.
func (c *Client) Analyze(ctx context.Context, req layout.Request) (*Analysis, error) {
	body, err := json.Marshal(NewAnalyzeRequest(req, c.catalog))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode analysis request")
	}

	var out Analysis
	err = httputil.Retry(ctx, c.attempts, c.delay, func() error {
		return c.post(ctx, AnalyzePath, body, &out)
	})
	if err != nil {
		return nil, err
	}
	out.Request = req
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, body []byte, v any) error {
	hooks := observability.HTTP()
	host := hostOf(c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid backend url %q", c.baseURL)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	hooks.OnRequest(ctx, http.MethodPost, host, path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodPost, host, path, err)
		return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "POST %s", path)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodPost, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode analysis response")
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return errors.New(errors.ErrCodeUnauthorized, "backend rejected credentials: status %d", code)
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "analysis endpoint not found")
	case code == http.StatusTooManyRequests:
		retry, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &errors.RateLimitedError{RetryAfter: retry}
	case code >= 500:
		after, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &httputil.RetryableError{
			Err:   errors.New(errors.ErrCodeNetwork, "backend status %d", code),
			After: time.Duration(after) * time.Second,
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "backend rejected request: status %d: %s", code, detail(resp.Body))
	}
}

// detail extracts FastAPI's {"detail": ...} message, or the raw body prefix.
func detail(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, 4096))
	var body struct {
		Detail any `json:"detail"`
	}
	if json.Unmarshal(data, &body) == nil && body.Detail != nil {
		if s, ok := body.Detail.(string); ok {
			return s
		}
		return fmt.Sprint(body.Detail)
	}
	return strings.TrimSpace(string(data))
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Host
}
