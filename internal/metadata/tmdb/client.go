// Package tmdb implements the TMDb original-title lookup.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const baseURL = "https://api.themoviedb.org/3"

// OriginalTitle is the subset of a TMDb movie record the service cares about
type OriginalTitle struct {
	OriginalTitle    string `json:"original_title"`
	Title            string `json:"title"`
	OriginalLanguage string `json:"original_language"`
}

type findResponse struct {
	MovieResults []OriginalTitle `json:"movie_results"`
}

// Client is a read-only TMDb API client used for original-title enrichment.
// The lookup is best effort; every failure degrades to an absent result.
type Client struct {
	apiKey     string
	baseURL    string
	HTTPClient *http.Client
}

// NewClient creates a TMDb client with the given API key
func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Enabled reports whether the client has an API key to work with
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// LookupByIMDbID resolves an IMDb id to the film's original title. Returns
// nil on any failure so callers can treat enrichment as optional.
func (c *Client) LookupByIMDbID(ctx context.Context, imdbID string) *OriginalTitle {
	if !c.Enabled() {
		return nil
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("external_source", "imdb_id")

	endpoint := fmt.Sprintf("%s/find/%s?%s", c.baseURL, url.PathEscape(imdbID), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}

	var response findResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil
	}
	if len(response.MovieResults) == 0 {
		return nil
	}

	return &response.MovieResults[0]
}
