package fetch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/100.0.4896.127 Safari/537.36"
	crawlerUserAgent = "Googlebot/2.1 (+http://www.google.com/bot.html)"

	// maxBodyBytes caps a single download to prevent runaway reads.
	maxBodyBytes = 10 << 20
)

// Fetcher is the acquisition interface the pipeline depends on.
type Fetcher interface {
	// Fetch GETs a URL with a browser user agent and returns decoded HTML.
	Fetch(ctx context.Context, url string) (string, error)

	// FetchRaw GETs a URL with a crawler user agent and relaxed TLS
	// verification, for pages that block or break the standard path.
	FetchRaw(ctx context.Context, url string) (string, error)
}

// Client fetches pages over HTTP with charset-aware decoding.
type Client struct {
	standard *http.Client
	insecure *http.Client
	ua       string
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for the standard path.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Client) { f.standard = c }
}

// WithUserAgent sets the User-Agent header for the standard path.
func WithUserAgent(ua string) Option {
	return func(f *Client) { f.ua = ua }
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Client) { f.logger = l }
}

// NewClient creates a Client with sensible defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		standard: &http.Client{Timeout: 10 * time.Second},
		insecure: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		ua:     browserUserAgent,
		logger: slog.Default().With("component", "fetch"),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Fetch GETs a URL and returns the decoded HTML. On a TLS failure the
// request is retried once over the relaxed-verification client, since a
// handful of covered outlets serve broken certificate chains.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	html, err := c.get(ctx, c.standard, url, c.ua)
	if err == nil {
		return html, nil
	}
	if !isTLSError(err) {
		return "", err
	}

	c.logger.Debug("retrying over relaxed tls", "url", url, "err", err)
	return c.get(ctx, c.insecure, url, c.ua)
}

// FetchRaw GETs a URL with a crawler user agent over the
// relaxed-verification client and returns the decoded HTML.
func (c *Client) FetchRaw(ctx context.Context, url string) (string, error) {
	return c.get(ctx, c.insecure, url, crawlerUserAgent)
}

func (c *Client) get(ctx context.Context, client *http.Client, url, ua string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("fetch: new request: %w", err)
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s returned %s", ErrBadStatus, url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("fetch: read body: %w", err)
	}

	html := decodeHTML(body, resp.Header.Get("Content-Type"))
	c.logger.Debug("fetched page", "url", url, "status", resp.StatusCode, "bytes", len(body))
	return html, nil
}

func isTLSError(err error) bool {
	if err == nil {
		return false
	}
	var verificationErr *tls.CertificateVerificationError
	if errors.As(err, &verificationErr) {
		return true
	}
	var recordErr tls.RecordHeaderError
	return errors.As(err, &recordErr)
}
