package metadatamodule

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/mantonx/paradiso/internal/errors"
	"github.com/mantonx/paradiso/internal/logger"
	"github.com/mantonx/paradiso/internal/metadata/omdb"
	"github.com/mantonx/paradiso/internal/metadata/tmdb"
	"github.com/mantonx/paradiso/internal/modules/filmmodule"
)

// Searcher is the slice of the OMDb client the search endpoint needs
type Searcher interface {
	Search(ctx context.Context, query string, page int) (*omdb.SearchResponse, error)
}

// OriginalTitleLookup resolves IMDb ids to original titles for the backfill
type OriginalTitleLookup interface {
	LookupByIMDbID(ctx context.Context, imdbID string) *tmdb.OriginalTitle
}

// Handler serves the metadata HTTP endpoints
type Handler struct {
	films     *filmmodule.Repository
	searcher  Searcher
	originals OriginalTitleLookup
}

// NewHandler creates a metadata handler
func NewHandler(films *filmmodule.Repository, searcher Searcher, originals OriginalTitleLookup) *Handler {
	return &Handler{films: films, searcher: searcher, originals: originals}
}

// SearchFilms handles GET /api/search?q=&page=. An empty provider result is
// a 200 with an empty list and the provider's message, never an error.
func (h *Handler) SearchFilms(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		apperrors.HandleValidationError(c, "Missing search query", "q")
		return
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			apperrors.HandleValidationError(c, "Invalid page format", "page")
			return
		}
		page = parsed
	}

	results, err := h.searcher.Search(c.Request.Context(), query, page)
	if err != nil {
		apperrors.HandleInternalError(c, "Film search failed", err)
		return
	}

	if results.Response == "False" {
		c.JSON(http.StatusOK, gin.H{"results": []omdb.SearchResult{}, "error": results.Error})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results.Search})
}

// Backfill outcomes per film
const (
	backfillUpdated   = "updated"
	backfillSkipped   = "skipped"
	backfillUnchanged = "unchanged"
	backfillNoData    = "no_data"
)

// BackfillResult is one film's outcome in the backfill report
type BackfillResult struct {
	FilmID        uint32  `json:"film_id"`
	Title         string  `json:"title"`
	Outcome       string  `json:"outcome"`
	OriginalTitle *string `json:"original_title,omitempty"`
}

// BackfillOriginalTitles handles POST /api/admin/backfill-original-titles.
// Walks every film and fills in missing original titles from the lookup
// provider. Individual lookup failures degrade to "no_data"; the batch
// always runs to completion.
func (h *Handler) BackfillOriginalTitles(c *gin.Context) {
	films, err := h.films.ListAllFilms()
	if err != nil {
		apperrors.HandleDatabaseError(c, "list films", err)
		return
	}

	results := make([]BackfillResult, 0, len(films))
	counts := map[string]int{
		backfillUpdated:   0,
		backfillSkipped:   0,
		backfillUnchanged: 0,
		backfillNoData:    0,
	}

	for _, film := range films {
		result := BackfillResult{FilmID: film.ID, Title: film.Title}

		switch {
		case film.OriginalTitle != nil && *film.OriginalTitle != "":
			result.Outcome = backfillSkipped
			result.OriginalTitle = film.OriginalTitle

		default:
			original := h.originals.LookupByIMDbID(c.Request.Context(), film.ImdbID)
			if original == nil || original.OriginalTitle == "" {
				result.Outcome = backfillNoData
			} else if original.OriginalTitle == film.Title {
				result.Outcome = backfillUnchanged
			} else {
				if _, err := h.films.UpdateOriginalTitle(film.ID, &original.OriginalTitle); err != nil {
					logger.Warn("Backfill failed to store original title for film %d: %v", film.ID, err)
					result.Outcome = backfillNoData
				} else {
					result.Outcome = backfillUpdated
					result.OriginalTitle = &original.OriginalTitle
				}
			}
		}

		counts[result.Outcome]++
		results = append(results, result)
	}

	logger.Info("Original-title backfill finished: %d updated, %d skipped, %d unchanged, %d without data",
		counts[backfillUpdated], counts[backfillSkipped], counts[backfillUnchanged], counts[backfillNoData])

	c.JSON(http.StatusOK, gin.H{
		"total":   len(films),
		"counts":  counts,
		"results": results,
	})
}
