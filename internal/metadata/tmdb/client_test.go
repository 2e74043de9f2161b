package tmdb

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

func TestLookupByIMDbID(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder("GET", baseURL+"/find/tt5501104",
		httpmock.NewStringResponder(200, `{
			"movie_results": [
				{"original_title": "Gräns", "title": "Border", "original_language": "sv"}
			]
		}`))

	result := client.LookupByIMDbID(context.Background(), "tt5501104")
	require.NotNil(t, result)
	assert.Equal(t, "Gräns", result.OriginalTitle)
	assert.Equal(t, "Border", result.Title)
	assert.Equal(t, "sv", result.OriginalLanguage)
}

func TestLookupNoResults(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder("GET", baseURL+"/find/tt0000000",
		httpmock.NewStringResponder(200, `{"movie_results": []}`))

	assert.Nil(t, client.LookupByIMDbID(context.Background(), "tt0000000"))
}

func TestLookupDegradesOnFailure(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder("GET", baseURL+"/find/tt5501104",
		httpmock.NewStringResponder(500, "upstream down"))

	// Every failure mode is an absent result, never an error
	assert.Nil(t, client.LookupByIMDbID(context.Background(), "tt5501104"))
}

func TestLookupWithoutAPIKey(t *testing.T) {
	client := NewClient("", 5*time.Second)
	httpmock.ActivateNonDefault(client.HTTPClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	assert.False(t, client.Enabled())
	assert.Nil(t, client.LookupByIMDbID(context.Background(), "tt5501104"))
	assert.Zero(t, httpmock.GetTotalCallCount())
}
