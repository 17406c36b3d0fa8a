package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/maxaizer/namaste-jobs/internal/metrics"
	"golang.org/x/time/rate"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://namaste-jobs-backend.onrender.com/api"

// Credentials are the backend cookies of one browser session. They are
// attached to every request and never interpreted.
type Credentials []*http.Cookie

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL     string
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

type response struct {
	body    []byte
	cookies []*http.Cookie
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: &http.Client{}}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	if maxRequestsPerSecond <= 0 {
		c.rateLimiter = nil
		return
	}
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) sendRequest(
	ctx context.Context,
	operation string,
	method string,
	path string,
	query url.Values,
	creds Credentials,
	payload any,
) (*response, error) {

	start := time.Now()
	defer func() {
		metrics.BackendRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}()

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, translateTransportError(ctx, err)
		}
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("error encoding %s payload: %w", operation, err)
		}
		body = bytes.NewReader(encoded)
	}

	apiURL := c.baseURL + path
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range creds {
		req.AddCookie(cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, translateTransportError(ctx, err)
	}
	defer resp.Body.Close()

	return c.handleResponse(ctx, resp)
}

func (c *Client) handleResponse(ctx context.Context, resp *http.Response) (*response, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, translateTransportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload errorPayload
		_ = json.Unmarshal(body, &payload)
		return nil, translateStatusError(resp.StatusCode, payload)
	}

	return &response{body: body, cookies: resp.Cookies()}, nil
}

func decode[T any](operation string, body []byte) (T, error) {
	var value T
	if err := json.Unmarshal(body, &value); err != nil {
		return value, fmt.Errorf("error decoding %s response: %w", operation, err)
	}
	return value, nil
}

// isJSONArray reports whether body holds a bare JSON array.
func isJSONArray(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '['
}
