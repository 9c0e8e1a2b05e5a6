package journal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cympfh/shanghai/internal/model"
)

const (
	// ClientTimeout is the total request timeout.
	ClientTimeout = 30 * time.Second
	// DialTimeout is the connection timeout.
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the TLS negotiation timeout.
	TLSHandshakeTimeout = 10 * time.Second
	// ResponseHeaderTimeout is time to wait for response headers.
	ResponseHeaderTimeout = 15 * time.Second

	// maxResponseBody caps how much of an upstream response is read.
	maxResponseBody = 4 << 20 // 4MB
)

// NewHTTPClient creates an HTTP client configured for journal access.
// It has conservative timeouts and does not follow redirects.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: ClientTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   TLSHandshakeTimeout,
			ResponseHeaderTimeout: ResponseHeaderTimeout,
			MaxIdleConns:          10,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
		},
		// The secret key is a URL path segment; never follow a
		// redirect that would replay it elsewhere.
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Client reads and appends journal entries via the upstream journal
// service. The journal URL has the shape {base}/{section}/{secret}.
type Client struct {
	client      *http.Client
	url         string
	redacted    string
	maxAttempts int
}

// NewClient creates a journal client for the given section and secret.
func NewClient(baseURL, section, secretKey string) *Client {
	base := strings.TrimSuffix(baseURL, "/")
	return &Client{
		client:      NewHTTPClient(),
		url:         fmt.Sprintf("%s/%s/%s", base, section, secretKey),
		redacted:    fmt.Sprintf("%s/%s/[redacted]", base, section),
		maxAttempts: DefaultMaxAttempts,
	}
}

// URL returns the journal URL with the secret key redacted, safe for logs.
func (c *Client) URL() string {
	return c.redacted
}

// Fetch retrieves all journal entries. Transport errors and 5xx replies
// are retried with backoff; 4xx replies fail immediately.
func (c *Client) Fetch(ctx context.Context) ([]model.Entry, error) {
	var lastErr error

	for attempt := 0; ; attempt++ {
		body, err := c.fetchOnce(ctx)
		if err == nil {
			return model.DecodeJournal(body)
		}
		lastErr = err

		if !retryable(err) || IsExhausted(attempt+1, c.maxAttempts) {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(NextRetryDelay(attempt)):
		}
	}

	return nil, lastErr
}

func (c *Client) fetchOnce(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "shanghai-ledger/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, redactedErr(err, c.url, c.redacted))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, StatusError(resp.StatusCode)
	}

	return body, nil
}

// Append posts a memo to the journal. Appends are not idempotent
// upstream, so they are never retried.
func (c *Client) Append(ctx context.Context, memo model.Memo) error {
	payload, err := model.EncodeMemo(memo)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "shanghai-ledger/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, redactedErr(err, c.url, c.redacted))
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return StatusError(resp.StatusCode)
	}

	return nil
}

// Ping checks upstream reachability by fetching the journal.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.fetchOnce(ctx)
	return err
}

// retryable reports whether a fetch error is worth another attempt.
func retryable(err error) bool {
	if errors.Is(err, ErrUnavailable) {
		return true
	}
	if errors.Is(err, ErrUpstreamStatus) {
		return StatusCode(err) >= 500
	}
	return false
}

// redactedErr replaces the full journal URL inside transport errors so
// the secret key never reaches a log line.
func redactedErr(err error, secretURL, redacted string) string {
	return strings.ReplaceAll(err.Error(), secretURL, redacted)
}
