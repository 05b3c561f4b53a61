// Package httpcheck implements the group existence check over HTTP.
package httpcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single existence check so a hung authority
// fails the join instead of stalling it forever.
const DefaultTimeout = 5 * time.Second

// maxBody caps how much of the authority's answer we read.
const maxBody = 4 << 10

// Checker performs GET <baseURL><group> against the group authority.
// A 2xx response whose trimmed body contains the token "yes" means the
// group exists; any other 2xx body means it does not.
type Checker struct {
	client *http.Client
}

// New builds a checker with the given per-request timeout; zero means
// DefaultTimeout.
func New(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Checker{client: &http.Client{Timeout: timeout}}
}

// Exists implements validate.Checker.
func (c *Checker) Exists(ctx context.Context, baseURL, group string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+group, nil)
	if err != nil {
		return false, fmt.Errorf("build existence request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("existence request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("existence request: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return false, fmt.Errorf("read existence response: %w", err)
	}

	return strings.Contains(strings.TrimSpace(string(body)), "yes"), nil
}
