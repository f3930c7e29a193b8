package mbta

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/mbta-board/arrivals"
)

// Client is a small HTTP client for the MBTA V3 JSON:API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	// Debug logs every fetched document
	Debug bool
}

// NewClient creates a client for baseURL authenticating with apiKey.
// A zero timeout leaves requests bounded only by their context.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Route fetches a route by id.
func (c *Client) Route(ctx context.Context, id string) (arrivals.Route, error) {
	doc, err := c.get(ctx, "/routes", url.Values{"filter[id]": {id}})
	if err != nil {
		return arrivals.Route{}, fmt.Errorf("get route %s: %w", id, err)
	}
	route, err := RouteFromDocument(doc)
	if err != nil {
		return arrivals.Route{}, fmt.Errorf("get route %s: %w", id, err)
	}
	return route, nil
}

// Stop fetches a stop by id.
func (c *Client) Stop(ctx context.Context, id string) (arrivals.Stop, error) {
	doc, err := c.get(ctx, "/stops", url.Values{"filter[id]": {id}})
	if err != nil {
		return arrivals.Stop{}, fmt.Errorf("get stop %s: %w", id, err)
	}
	stop, err := StopFromDocument(doc)
	if err != nil {
		return arrivals.Stop{}, fmt.Errorf("get stop %s: %w", id, err)
	}
	return stop, nil
}

// Predictions fetches predictions for a route at a stop, with their vehicles and trips.
func (c *Client) Predictions(ctx context.Context, routeID, stopID string) ([]arrivals.Prediction, error) {
	doc, err := c.get(ctx, "/predictions", url.Values{
		"filter[route]": {routeID},
		"filter[stop]":  {stopID},
		"include":       {"vehicle,trip"},
		"sort":          {"departure_time"},
	})
	if err != nil {
		return nil, fmt.Errorf("get predictions %s@%s: %w", routeID, stopID, err)
	}
	predictions, err := PredictionsFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("get predictions %s@%s: %w", routeID, stopID, err)
	}
	return predictions, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*Document, error) {
	u := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.api+json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if c.Debug {
		log.Printf("mbta: GET %s -> %d %s", path, resp.StatusCode, body)
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, path)
		}
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	// an errors envelope explains a failing status better than the status does
	if len(doc.Errors) == 0 && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, path)
	}
	return &doc, nil
}
