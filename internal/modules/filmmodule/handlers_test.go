package filmmodule

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/paradiso/internal/database"
	"github.com/mantonx/paradiso/internal/metadata/omdb"
	"github.com/mantonx/paradiso/internal/metadata/tmdb"
	"github.com/mantonx/paradiso/internal/modules/profilemodule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubDetailsProvider struct {
	details *omdb.MovieDetails
	err     error
}

func (s *stubDetailsProvider) Details(ctx context.Context, imdbID string) (*omdb.MovieDetails, error) {
	return s.details, s.err
}

type stubOriginalTitleProvider struct {
	result *tmdb.OriginalTitle
}

func (s *stubOriginalTitleProvider) LookupByIMDbID(ctx context.Context, imdbID string) *tmdb.OriginalTitle {
	return s.result
}

func setupTestRouter(t *testing.T, db *gorm.DB, details DetailsProvider, originals OriginalTitleProvider) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := NewRepository(db)
	handler := NewHandler(repo, profilemodule.NewRepository(db), nil, details, originals)

	module := &Module{repo: repo, handler: handler}
	r := gin.New()
	module.RegisterRoutes(r)
	return r
}

func performJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddFilmFromProvider(t *testing.T) {
	db := setupTestDB(t)
	details := &stubDetailsProvider{details: &omdb.MovieDetails{
		ImdbID:   "tt5501104",
		Title:    "Border",
		Year:     "2018",
		Poster:   "https://example.com/border.jpg",
		Genre:    "Drama, Fantasy",
		Director: "Ali Abbasi",
		Plot:     "A customs officer with an unusual gift.",
		Response: "True",
	}}
	originals := &stubOriginalTitleProvider{result: &tmdb.OriginalTitle{
		OriginalTitle:    "Gräns",
		OriginalLanguage: "sv",
	}}
	r := setupTestRouter(t, db, details, originals)

	w := performJSON(r, http.MethodPost, "/api/films", gin.H{"imdbId": "tt5501104"})
	require.Equal(t, http.StatusOK, w.Code)

	var film database.Film
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &film))
	assert.Equal(t, "Border", film.Title)
	require.NotNil(t, film.OriginalTitle)
	assert.Equal(t, "Gräns", *film.OriginalTitle)
	require.NotNil(t, film.PosterURL)

	// Trailer search uses the original title when it differs
	assert.Contains(t, film.TrailerURL, "youtube.com/results")
	assert.Contains(t, film.TrailerURL, "Gr%C3%A4ns")

	// Second add of the same title conflicts
	w = performJSON(r, http.MethodPost, "/api/films", gin.H{"imdbId": "tt5501104"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAddFilmProviderMiss(t *testing.T) {
	db := setupTestDB(t)
	details := &stubDetailsProvider{details: &omdb.MovieDetails{
		Response: "False",
		Error:    "Incorrect IMDb ID.",
	}}
	r := setupTestRouter(t, db, details, &stubOriginalTitleProvider{})

	w := performJSON(r, http.MethodPost, "/api/films", gin.H{"imdbId": "tt0000000"})
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Incorrect IMDb ID.", resp["error"])
}

func TestAddFilmSkipsNAPoster(t *testing.T) {
	db := setupTestDB(t)
	details := &stubDetailsProvider{details: &omdb.MovieDetails{
		ImdbID:   "tt0000001",
		Title:    "Obscure",
		Year:     "1931",
		Poster:   "N/A",
		Response: "True",
	}}
	r := setupTestRouter(t, db, details, &stubOriginalTitleProvider{})

	w := performJSON(r, http.MethodPost, "/api/films", gin.H{"imdbId": "tt0000001"})
	require.Equal(t, http.StatusOK, w.Code)

	var film database.Film
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &film))
	assert.Nil(t, film.PosterURL)
	assert.Nil(t, film.OriginalTitle)
	assert.Contains(t, film.TrailerURL, "Obscure+1931+trailer")
}

func TestCastVoteValidation(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(t, db, &stubDetailsProvider{}, &stubOriginalTitleProvider{})

	alice := createTestProfile(t, db, "Alice")
	film := createTestFilm(t, db, "tt0000001", "Border")

	w := performJSON(r, http.MethodPost, "/api/vote", gin.H{
		"filmId": film.ID, "profileId": alice.ID, "vote": 3,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(r, http.MethodPost, "/api/vote", gin.H{
		"filmId": film.ID, "profileId": 9999, "vote": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performJSON(r, http.MethodPost, "/api/vote", gin.H{
		"filmId": 9999, "profileId": alice.ID, "vote": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performJSON(r, http.MethodPost, "/api/vote", gin.H{
		"filmId": film.ID, "profileId": alice.ID, "vote": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Vote created", resp["message"])
}

func TestRatingRequiresArchivedFilm(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(t, db, &stubDetailsProvider{}, &stubOriginalTitleProvider{})

	alice := createTestProfile(t, db, "Alice")
	film := createTestFilm(t, db, "tt0000001", "Border")
	ratingPath := fmt.Sprintf("/api/films/%d/rating", film.ID)

	// Not archived yet
	w := performJSON(r, http.MethodPost, ratingPath, gin.H{"profileId": alice.ID, "rating": 3})
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Film is not archived", resp["error"])

	w = performJSON(r, http.MethodPost, "/api/films/archive/toggle", gin.H{"filmId": film.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(r, http.MethodPost, ratingPath, gin.H{"profileId": alice.ID, "rating": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(r, http.MethodPost, ratingPath, gin.H{"profileId": alice.ID, "rating": 3})
	require.Equal(t, http.StatusOK, w.Code)

	// Re-rating updates in place
	w = performJSON(r, http.MethodPost, ratingPath, gin.H{"profileId": alice.ID, "rating": 4})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), countRows(t, db, &database.ArchiveRating{}))

	w = performJSON(r, http.MethodGet, fmt.Sprintf("/api/films/%d/ratings", film.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var ratings []database.RatingWithProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ratings))
	require.Len(t, ratings, 1)
	assert.Equal(t, 4, ratings[0].Rating)
}

func TestRatingAndCommentReadsRequireFilm(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(t, db, &stubDetailsProvider{}, &stubOriginalTitleProvider{})

	// Reads on a missing film are 404, not an empty 200
	w := performJSON(r, http.MethodGet, "/api/films/9999/ratings", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performJSON(r, http.MethodGet, "/api/films/9999/comments", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// An existing film with no feedback yet still lists empty
	film := createTestFilm(t, db, "tt0000001", "Border")

	w = performJSON(r, http.MethodGet, fmt.Sprintf("/api/films/%d/ratings", film.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var ratings []database.RatingWithProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ratings))
	assert.Empty(t, ratings)

	w = performJSON(r, http.MethodGet, fmt.Sprintf("/api/films/%d/comments", film.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var comments []database.CommentWithProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
	assert.Empty(t, comments)
}

func TestViewedToggleEndpoint(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(t, db, &stubDetailsProvider{}, &stubOriginalTitleProvider{})

	alice := createTestProfile(t, db, "Alice")
	film := createTestFilm(t, db, "tt0000001", "Border")

	w := performJSON(r, http.MethodPost, "/api/viewed/toggle", gin.H{
		"filmId": film.ID, "profileId": alice.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp["viewed"])

	w = performJSON(r, http.MethodPost, "/api/viewed/toggle", gin.H{
		"filmId": film.ID, "profileId": alice.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp["viewed"])
}

func TestListFilmsFilteredEndpointValidation(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(t, db, &stubDetailsProvider{}, &stubOriginalTitleProvider{})

	w := performJSON(r, http.MethodGet, "/api/films/filtered?profileIds=1,abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(r, http.MethodGet, "/api/films/filtered", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
