package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GetBytes fetches url and returns the body of a 200 response.
func GetBytes(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	client := http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: unexpected status %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
