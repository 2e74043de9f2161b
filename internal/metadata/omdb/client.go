// Package omdb implements the OMDb film search and detail lookups.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const baseURL = "https://www.omdbapi.com/"

// SearchResult is one candidate film from a search response
type SearchResult struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Poster string `json:"Poster"`
	Type   string `json:"Type"`
}

// SearchResponse is the OMDb search envelope. Response=="False" is a normal
// outcome (no matches) and carries the provider's message in Error.
type SearchResponse struct {
	Search       []SearchResult `json:"Search"`
	TotalResults string         `json:"totalResults"`
	Response     string         `json:"Response"`
	Error        string         `json:"Error"`
}

// MovieDetails is the full OMDb record for a single film
type MovieDetails struct {
	ImdbID   string `json:"imdbID"`
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Poster   string `json:"Poster"`
	Genre    string `json:"Genre"`
	Director string `json:"Director"`
	Actors   string `json:"Actors"`
	Plot     string `json:"Plot"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// Found reports whether OMDb matched the request
func (d *MovieDetails) Found() bool {
	return d.Response != "False"
}

// Client is a read-only OMDb API client. One blocking call per operation,
// no retries, no caching.
type Client struct {
	apiKey     string
	baseURL    string
	HTTPClient *http.Client
}

// NewClient creates an OMDb client with the given API key
func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Search looks up film candidates by free-text query. An empty result set is
// a normal response, not an error.
func (c *Client) Search(ctx context.Context, query string, page int) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("s", query)
	params.Set("type", "movie")
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}

	var response SearchResponse
	if err := c.makeRequest(ctx, params, &response); err != nil {
		return nil, fmt.Errorf("OMDb search failed: %w", err)
	}
	return &response, nil
}

// Details fetches the full record for one IMDb id. A non-match comes back
// with Found()==false and the provider's message, not as an error.
func (c *Client) Details(ctx context.Context, imdbID string) (*MovieDetails, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("i", imdbID)
	params.Set("plot", "full")

	var details MovieDetails
	if err := c.makeRequest(ctx, params, &details); err != nil {
		return nil, fmt.Errorf("OMDb details lookup failed: %w", err)
	}
	return &details, nil
}

func (c *Client) makeRequest(ctx context.Context, params url.Values, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("OMDb API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to unmarshal JSON response: %w", err)
	}

	return nil
}
