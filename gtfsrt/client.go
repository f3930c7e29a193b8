package gtfsrt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Client fetches GTFS and GTFS-RT data from URLs or local files.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new fetch client; a zero timeout means none.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch fetches a single feed from a URL or file path and returns raw bytes.
// Returns nil if urlOrPath is empty (allows optional feeds).
func (c *Client) Fetch(ctx context.Context, urlOrPath string) ([]byte, error) {
	if urlOrPath == "" {
		return nil, nil
	}

	// Check if it's a local file path
	if !strings.HasPrefix(urlOrPath, "http://") && !strings.HasPrefix(urlOrPath, "https://") {
		return os.ReadFile(urlOrPath)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlOrPath, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", urlOrPath, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, urlOrPath)
	}

	return io.ReadAll(resp.Body)
}

// FetchAll fetches the trip updates and vehicle positions feeds.
// Empty paths are skipped and return nil for that feed.
func (c *Client) FetchAll(ctx context.Context, tripUpdatesPath, vehiclePositionsPath string) ([]byte, []byte, error) {
	tu, err := c.Fetch(ctx, tripUpdatesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("trip updates: %w", err)
	}

	vp, err := c.Fetch(ctx, vehiclePositionsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("vehicle positions: %w", err)
	}

	return tu, vp, nil
}
