package skanetrafiken

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	SupplierKey  = "skanetrafiken"
	SupplierName = "Skånetrafiken"

	stopAreaType = "STOP_AREA"
)

// PaymentTypes are the payment type keys linked to the supplier on setup.
var PaymentTypes = []struct{ Key, Name string }{
	{Key: "jojo", Name: "Jojo"},
	{Key: "app", Name: "App"},
	{Key: "cash", Name: "Cash"},
}

type Stop struct {
	ID   string
	Name string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	queries    []string
}

type Option func(*Client)

// WithQueries replaces the default two letter search terms.
func WithQueries(q ...string) Option {
	return func(c *Client) { c.queries = q }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		queries: DefaultQueries(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// DefaultQueries returns every two letter combination of a-z and åäö.
func DefaultQueries() []string {
	letters := []rune("abcdefghijklmnopqrstuvwxyzåäö")
	out := make([]string, 0, len(letters)*len(letters))
	for _, a := range letters {
		for _, b := range letters {
			out = append(out, string([]rune{a, b}))
		}
	}
	return out
}

type point struct {
	ID   json.RawMessage `json:"Id"`
	Name string          `json:"Name"`
	Type string          `json:"Type"`
}

type searchResponse struct {
	StartEndPoint []point `json:"StartEndPoint"`
}

// Stops queries the location search for every configured term and returns
// the stop areas, one per id, in first seen order. A failing term is
// logged and skipped.
func (c *Client) Stops(ctx context.Context) ([]Stop, error) {
	seen := make(map[string]struct{})
	var stops []Stop

	for _, q := range c.queries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		points, err := c.search(ctx, q)
		if err != nil {
			slog.Warn("skanetrafiken_search_failed", "query", q, "error", err)
			continue
		}
		for _, p := range points {
			if p.Type != stopAreaType {
				continue
			}
			id := strings.Trim(string(p.ID), `"`)
			if id == "" {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			stops = append(stops, Stop{ID: id, Name: p.Name})
		}
	}
	return stops, nil
}

func (c *Client) search(ctx context.Context, q string) ([]point, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	params := u.Query()
	params.Set("action", "search")
	params.Set("q", q)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed with status: %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return result.StartEndPoint, nil
}
