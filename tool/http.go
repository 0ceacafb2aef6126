package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	ai "github.com/toolweave/toolweave"
)

// HTTPToolOption configures the HTTP fetch tool.
type HTTPToolOption func(*httpToolConfig)

type httpToolConfig struct {
	client          *http.Client
	allowedHosts    []string
	maxResponseSize int64
	timeout         time.Duration
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) HTTPToolOption {
	return func(cfg *httpToolConfig) {
		cfg.client = c
	}
}

// WithAllowedHosts restricts requests to the given hosts.
// If empty, all hosts are allowed.
func WithAllowedHosts(hosts ...string) HTTPToolOption {
	return func(cfg *httpToolConfig) {
		cfg.allowedHosts = hosts
	}
}

// WithMaxResponseSize limits the response body size in bytes.
// Default is 1 MiB.
func WithMaxResponseSize(n int64) HTTPToolOption {
	return func(cfg *httpToolConfig) {
		cfg.maxResponseSize = n
	}
}

// WithHTTPTimeout sets the per-request timeout. Default is 30 seconds.
func WithHTTPTimeout(d time.Duration) HTTPToolOption {
	return func(cfg *httpToolConfig) {
		cfg.timeout = d
	}
}

type httpFetchArgs struct {
	URL string `json:"url" desc:"Absolute http(s) URL to fetch" required:"true"`
}

// NewHTTPFetchTool creates a tool that fetches the body of an HTTP GET
// request. The result content is the response body, truncated to the
// configured maximum size.
func NewHTTPFetchTool(opts ...HTTPToolOption) Registration {
	cfg := &httpToolConfig{
		maxResponseSize: 1 << 20,
		timeout:         30 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.client == nil {
		cfg.client = &http.Client{Timeout: cfg.timeout}
	}

	handler := func(ctx context.Context, call ai.ToolCall) (string, error) {
		var args httpFetchArgs
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return "", err
		}
		return cfg.fetch(ctx, args.URL)
	}

	return WithHandler(
		"http_fetch",
		"Fetch the contents of a URL via HTTP GET",
		MustSchemaFor[httpFetchArgs](),
		handler,
	)
}

func (cfg *httpToolConfig) fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("tool: invalid url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("tool: unsupported scheme %q", u.Scheme)
	}
	if !cfg.hostAllowed(u.Hostname()) {
		return "", fmt.Errorf("tool: host %q not allowed", u.Hostname())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}

	resp, err := cfg.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("tool: http_fetch got status %d for %s", resp.StatusCode, u.String())
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, cfg.maxResponseSize))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (cfg *httpToolConfig) hostAllowed(host string) bool {
	if len(cfg.allowedHosts) == 0 {
		return true
	}
	for _, allowed := range cfg.allowedHosts {
		if strings.EqualFold(host, allowed) {
			return true
		}
	}
	return false
}
