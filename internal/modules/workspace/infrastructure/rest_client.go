package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"scoutWorkspace/internal/modules/workspace/application/port"
)

const (
	defaultBaseURL  = "http://127.0.0.1:8000"
	errorBodyLimit  = 2048
	requestIDHeader = "X-Request-ID"
)

// RESTClient wraps http.Client with base URL handling and an optional
// outbound rate limit shared by every adapter.
type RESTClient struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

func NewRESTClient(baseURL string, timeout time.Duration, client *http.Client) *RESTClient {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	trimmed = strings.TrimRight(trimmed, "/")
	if client == nil {
		client = &http.Client{Timeout: timeoutOrDefault(timeout)}
	} else if timeout > 0 {
		client.Timeout = timeout
	}
	return &RESTClient{baseURL: trimmed, client: client}
}

// WithRateLimit caps outbound requests per second. A non-positive rate disables the limit.
func (c *RESTClient) WithRateLimit(perSecond float64, burst int) *RESTClient {
	if perSecond <= 0 {
		c.limiter = nil
		return c
	}
	if burst <= 0 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	return c
}

func (c *RESTClient) NewRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(requestIDHeader, uuid.NewString())
	return req, nil
}

func (c *RESTClient) Do(req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	return c.client.Do(req)
}

// call performs a JSON request and maps remote statuses onto the port errors.
// resource names the remote collection in logs and error messages.
func (c *RESTClient) call(ctx context.Context, token, resource, method, path string, query url.Values, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := sonic.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", resource, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := c.NewRequest(ctx, method, path, body)
	if err != nil {
		slog.Error("rest request build failed", slog.String("resource", resource), slog.String("path", path), slog.Any("error", err))
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if trimmed := strings.TrimSpace(token); trimmed != "" {
		req.Header.Set("Authorization", "Bearer "+trimmed)
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	slog.Debug("rest request", slog.String("resource", resource), slog.String("method", method), slog.String("url", req.URL.String()))

	started := time.Now()
	res, err := c.Do(req)
	if err != nil {
		observeRemoteCall(resource, "error", time.Since(started))
		slog.Error("rest request error", slog.String("resource", resource), slog.String("path", path), slog.Any("error", err))
		return nil, fmt.Errorf("%s request failed: %w", resource, err)
	}
	defer res.Body.Close()
	observeRemoteCall(resource, statusClass(res.StatusCode), time.Since(started))
	slog.Debug("rest response", slog.String("resource", resource), slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()))

	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return nil, port.ErrRemoteForbidden
	case res.StatusCode == http.StatusNotFound:
		return nil, port.ErrRemoteNotFound
	case res.StatusCode < 200 || res.StatusCode > 299:
		excerpt, _ := io.ReadAll(io.LimitReader(res.Body, errorBodyLimit))
		slog.Error("rest unexpected status",
			slog.String("resource", resource),
			slog.Int("status", res.StatusCode),
			slog.String("url", req.URL.String()),
			slog.String("body", strings.TrimSpace(string(excerpt))),
		)
		return nil, fmt.Errorf("unexpected %s response %d", resource, res.StatusCode)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", resource, err)
	}
	return data, nil
}

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}

func timeoutOrDefault(value time.Duration) time.Duration {
	if value <= 0 {
		return 10 * time.Second
	}
	return value
}
