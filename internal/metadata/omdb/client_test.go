package omdb

import (
	"context"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client := NewClient("test-key", 5*time.Second)
	httpmock.ActivateNonDefault(client.HTTPClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return client
}

func TestSearch(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponderWithQuery("GET", baseURL,
		map[string]string{"apikey": "test-key", "s": "border", "type": "movie"},
		httpmock.NewStringResponder(200, `{
			"Search": [
				{"imdbID": "tt5501104", "Title": "Border", "Year": "2018", "Type": "movie"}
			],
			"totalResults": "1",
			"Response": "True"
		}`))

	resp, err := client.Search(context.Background(), "border", 1)
	require.NoError(t, err)
	assert.Equal(t, "True", resp.Response)
	require.Len(t, resp.Search, 1)
	assert.Equal(t, "tt5501104", resp.Search[0].ImdbID)
	assert.Equal(t, "Border", resp.Search[0].Title)
}

func TestSearchPagination(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponderWithQuery("GET", baseURL,
		map[string]string{"apikey": "test-key", "s": "alien", "type": "movie", "page": "2"},
		httpmock.NewStringResponder(200, `{"Search": [], "Response": "True"}`))

	_, err := client.Search(context.Background(), "alien", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestSearchNoMatches(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder("GET", baseURL,
		httpmock.NewStringResponder(200, `{"Response": "False", "Error": "Movie not found!"}`))

	// No matches is a normal response, not an error
	resp, err := client.Search(context.Background(), "zzzzzz", 1)
	require.NoError(t, err)
	assert.Equal(t, "False", resp.Response)
	assert.Equal(t, "Movie not found!", resp.Error)
	assert.Empty(t, resp.Search)
}

func TestDetails(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponderWithQuery("GET", baseURL,
		map[string]string{"apikey": "test-key", "i": "tt5501104", "plot": "full"},
		httpmock.NewStringResponder(200, `{
			"imdbID": "tt5501104",
			"Title": "Border",
			"Year": "2018",
			"Poster": "https://example.com/border.jpg",
			"Genre": "Drama, Fantasy",
			"Director": "Ali Abbasi",
			"Plot": "A customs officer with an unusual gift.",
			"Response": "True"
		}`))

	details, err := client.Details(context.Background(), "tt5501104")
	require.NoError(t, err)
	assert.True(t, details.Found())
	assert.Equal(t, "Border", details.Title)
	assert.Equal(t, "Ali Abbasi", details.Director)
}

func TestDetailsMiss(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder("GET", baseURL,
		httpmock.NewStringResponder(200, `{"Response": "False", "Error": "Incorrect IMDb ID."}`))

	details, err := client.Details(context.Background(), "tt0000000")
	require.NoError(t, err)
	assert.False(t, details.Found())
	assert.Equal(t, "Incorrect IMDb ID.", details.Error)
}

func TestDetailsServerError(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder("GET", baseURL,
		httpmock.NewStringResponder(500, "upstream down"))

	_, err := client.Details(context.Background(), "tt5501104")
	assert.Error(t, err)
}
