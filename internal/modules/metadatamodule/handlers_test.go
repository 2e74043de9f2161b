package metadatamodule

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/paradiso/internal/database"
	"github.com/mantonx/paradiso/internal/metadata/omdb"
	"github.com/mantonx/paradiso/internal/metadata/tmdb"
	"github.com/mantonx/paradiso/internal/modules/filmmodule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type stubSearcher struct {
	response *omdb.SearchResponse
	err      error
}

func (s *stubSearcher) Search(ctx context.Context, query string, page int) (*omdb.SearchResponse, error) {
	return s.response, s.err
}

type stubLookup struct {
	results map[string]*tmdb.OriginalTitle
}

func (s *stubLookup) LookupByIMDbID(ctx context.Context, imdbID string) *tmdb.OriginalTitle {
	return s.results[imdbID]
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&database.Profile{}, &database.Film{}, &database.Vote{},
		&database.Viewed{}, &database.ArchiveRating{}, &database.ArchiveComment{}))
	return db
}

func setupTestRouter(t *testing.T, db *gorm.DB, searcher Searcher, originals OriginalTitleLookup) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	module := &Module{handler: NewHandler(filmmodule.NewRepository(db), searcher, originals)}
	r := gin.New()
	module.RegisterRoutes(r)
	return r
}

func perform(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSearchFilms(t *testing.T) {
	db := setupTestDB(t)
	searcher := &stubSearcher{response: &omdb.SearchResponse{
		Search: []omdb.SearchResult{
			{ImdbID: "tt5501104", Title: "Border", Year: "2018"},
		},
		Response: "True",
	}}
	r := setupTestRouter(t, db, searcher, &stubLookup{})

	w := perform(r, http.MethodGet, "/api/search?q=border")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Results []omdb.SearchResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Border", resp.Results[0].Title)
}

func TestSearchFilmsNoMatches(t *testing.T) {
	db := setupTestDB(t)
	searcher := &stubSearcher{response: &omdb.SearchResponse{
		Response: "False",
		Error:    "Movie not found!",
	}}
	r := setupTestRouter(t, db, searcher, &stubLookup{})

	// Provider misses stay 200 with an empty list
	w := perform(r, http.MethodGet, "/api/search?q=zzzzzz")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Results []omdb.SearchResult `json:"results"`
		Error   string              `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Results)
	assert.Equal(t, "Movie not found!", resp.Error)
}

func TestSearchFilmsValidation(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(t, db, &stubSearcher{}, &stubLookup{})

	w := perform(r, http.MethodGet, "/api/search")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodGet, "/api/search?q=border&page=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchFilmsUpstreamFailure(t *testing.T) {
	db := setupTestDB(t)
	searcher := &stubSearcher{err: errors.New("connection refused")}
	r := setupTestRouter(t, db, searcher, &stubLookup{})

	w := perform(r, http.MethodGet, "/api/search?q=border")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestBackfillOriginalTitles(t *testing.T) {
	db := setupTestDB(t)

	existing := "Gräns"
	films := []database.Film{
		{ImdbID: "tt0000001", Title: "Has Original", Year: "2018", OriginalTitle: &existing},
		{ImdbID: "tt0000002", Title: "Needs Update", Year: "2016"},
		{ImdbID: "tt0000003", Title: "Same Title", Year: "2014"},
		{ImdbID: "tt0000004", Title: "Unknown", Year: "2012"},
	}
	for i := range films {
		require.NoError(t, db.Create(&films[i]).Error)
	}

	lookup := &stubLookup{results: map[string]*tmdb.OriginalTitle{
		"tt0000002": {OriginalTitle: "곡성", OriginalLanguage: "ko"},
		"tt0000003": {OriginalTitle: "Same Title", OriginalLanguage: "en"},
	}}
	r := setupTestRouter(t, db, &stubSearcher{}, lookup)

	w := perform(r, http.MethodPost, "/api/admin/backfill-original-titles")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total   int              `json:"total"`
		Counts  map[string]int   `json:"counts"`
		Results []BackfillResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 1, resp.Counts[backfillUpdated])
	assert.Equal(t, 1, resp.Counts[backfillSkipped])
	assert.Equal(t, 1, resp.Counts[backfillUnchanged])
	assert.Equal(t, 1, resp.Counts[backfillNoData])

	var updated database.Film
	require.NoError(t, db.Where("imdb_id = ?", "tt0000002").First(&updated).Error)
	require.NotNil(t, updated.OriginalTitle)
	assert.Equal(t, "곡성", *updated.OriginalTitle)

	// Films the provider cannot resolve stay untouched
	var unknown database.Film
	require.NoError(t, db.Where("imdb_id = ?", "tt0000004").First(&unknown).Error)
	assert.Nil(t, unknown.OriginalTitle)
}
