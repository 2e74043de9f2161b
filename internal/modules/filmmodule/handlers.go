package filmmodule

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/paradiso/internal/database"
	apperrors "github.com/mantonx/paradiso/internal/errors"
	"github.com/mantonx/paradiso/internal/events"
	"github.com/mantonx/paradiso/internal/metadata/omdb"
	"github.com/mantonx/paradiso/internal/metadata/tmdb"
	"gorm.io/gorm"
)

// DetailsProvider fetches full film metadata by IMDb id
type DetailsProvider interface {
	Details(ctx context.Context, imdbID string) (*omdb.MovieDetails, error)
}

// OriginalTitleProvider resolves an IMDb id to the film's original title.
// A nil result means the enrichment is unavailable, which is never an error.
type OriginalTitleProvider interface {
	LookupByIMDbID(ctx context.Context, imdbID string) *tmdb.OriginalTitle
}

// ProfileDirectory is the slice of the profile module the film handlers need
type ProfileDirectory interface {
	GetByID(id uint32) (*database.Profile, error)
}

// Handler serves the film HTTP endpoints
type Handler struct {
	repo      *Repository
	profiles  ProfileDirectory
	eventBus  events.EventBus
	details   DetailsProvider
	originals OriginalTitleProvider
}

// NewHandler creates a film handler
func NewHandler(repo *Repository, profiles ProfileDirectory, eventBus events.EventBus,
	details DetailsProvider, originals OriginalTitleProvider) *Handler {
	return &Handler{
		repo:      repo,
		profiles:  profiles,
		eventBus:  eventBus,
		details:   details,
		originals: originals,
	}
}

// FilmAddRequest is the POST /api/films body
type FilmAddRequest struct {
	ImdbID     string  `json:"imdbId" binding:"required"`
	TeaserText *string `json:"teaserText"`
	ProfileID  *uint32 `json:"profileId"`
}

// GetFilms handles GET /api/films
func (h *Handler) GetFilms(c *gin.Context) {
	h.listFilms(c, false, nil)
}

// GetFilmsFiltered handles GET /api/films/filtered?profileIds=1,2
func (h *Handler) GetFilmsFiltered(c *gin.Context) {
	profileIDs, ok := parseProfileIDsParam(c, c.Query("profileIds"))
	if !ok {
		return
	}
	h.listFilms(c, false, profileIDs)
}

// GetArchivedFilms handles GET /api/films/archived/list
func (h *Handler) GetArchivedFilms(c *gin.Context) {
	h.listFilms(c, true, nil)
}

// GetArchivedFilmsFiltered handles GET /api/films/archived/filtered?profileIds=1,2
func (h *Handler) GetArchivedFilmsFiltered(c *gin.Context) {
	profileIDs, ok := parseProfileIDsParam(c, c.Query("profileIds"))
	if !ok {
		return
	}
	h.listFilms(c, true, profileIDs)
}

func (h *Handler) listFilms(c *gin.Context, archived bool, profileIDs []uint32) {
	films, err := h.repo.ListFilms(archived, profileIDs)
	if err != nil {
		apperrors.HandleDatabaseError(c, "list films", err)
		return
	}
	c.JSON(http.StatusOK, films)
}

// AddFilm handles POST /api/films. The film's metadata comes entirely from
// the details provider; the caller supplies only the IMDb id and optionally
// a teaser.
func (h *Handler) AddFilm(c *gin.Context) {
	var req FilmAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleValidationError(c, "imdbId is required", "imdbId")
		return
	}

	imdbID := strings.TrimSpace(req.ImdbID)
	if imdbID == "" {
		apperrors.HandleValidationError(c, "imdbId is required", "imdbId")
		return
	}

	if req.ProfileID != nil {
		profile, err := h.profiles.GetByID(*req.ProfileID)
		if err != nil {
			apperrors.HandleDatabaseError(c, "lookup profile", err)
			return
		}
		if profile == nil {
			apperrors.HandleNotFound(c, "Profile", strconv.FormatUint(uint64(*req.ProfileID), 10))
			return
		}
	}

	existing, err := h.repo.GetByImdbID(imdbID)
	if err != nil {
		apperrors.HandleDatabaseError(c, "lookup film", err)
		return
	}
	if existing != nil {
		apperrors.HandleConflict(c, "Film already added", "film")
		return
	}

	details, err := h.details.Details(c.Request.Context(), imdbID)
	if err != nil {
		apperrors.HandleInternalError(c, "Failed to fetch film details", err)
		return
	}
	if !details.Found() {
		message := details.Error
		if message == "" {
			message = "Movie not found"
		}
		apperrors.HandleUpstreamNotFound(c, "omdb", message)
		return
	}

	film := h.buildFilm(c.Request.Context(), details, req)

	if err := h.repo.CreateFilm(film); err != nil {
		// Lost a race against a concurrent add of the same title
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			apperrors.HandleConflict(c, "Film already added", "film")
			return
		}
		apperrors.HandleDatabaseError(c, "create film", err)
		return
	}

	if h.eventBus != nil {
		h.eventBus.PublishAsync(events.NewFilmEvent(
			events.EventFilmAdded, film.ID, film.Title,
			fmt.Sprintf("Film '%s' (%s) added", film.Title, film.Year)))
	}

	c.JSON(http.StatusOK, film)
}

func (h *Handler) buildFilm(ctx context.Context, details *omdb.MovieDetails, req FilmAddRequest) *database.Film {
	film := &database.Film{
		ImdbID:   details.ImdbID,
		Title:    details.Title,
		Year:     details.Year,
		Genre:    details.Genre,
		Director: details.Director,
		Actors:   details.Actors,
		Plot:     details.Plot,
	}

	if details.Poster != "" && details.Poster != "N/A" {
		film.PosterURL = &details.Poster
	}

	if h.originals != nil {
		if original := h.originals.LookupByIMDbID(ctx, details.ImdbID); original != nil && original.OriginalTitle != "" {
			film.OriginalTitle = &original.OriginalTitle
		}
	}

	// Search trailers under the original title when it differs, so foreign
	// films find their native-language trailer
	trailerTitle := details.Title
	if film.OriginalTitle != nil && *film.OriginalTitle != details.Title {
		trailerTitle = *film.OriginalTitle
	}
	film.TrailerURL = trailerSearchURL(trailerTitle, details.Year)

	if req.TeaserText != nil {
		if teaser := strings.TrimSpace(*req.TeaserText); teaser != "" {
			film.TeaserText = &teaser
			film.SubmittedByProfileID = req.ProfileID
		}
	}

	return film
}

// DeleteFilm handles DELETE /api/films/:id
func (h *Handler) DeleteFilm(c *gin.Context) {
	id, ok := apperrors.ParseAndValidateID(c, "id")
	if !ok {
		return
	}

	film, err := h.repo.GetByID(id)
	if err != nil {
		apperrors.HandleDatabaseError(c, "lookup film", err)
		return
	}

	existed, err := h.repo.Delete(id)
	if err != nil {
		apperrors.HandleDatabaseError(c, "delete film", err)
		return
	}
	if !existed {
		apperrors.HandleNotFound(c, "Film", c.Param("id"))
		return
	}

	if h.eventBus != nil && film != nil {
		h.eventBus.PublishAsync(events.NewFilmEvent(
			events.EventFilmDeleted, id, film.Title,
			fmt.Sprintf("Film '%s' deleted", film.Title)))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Film deleted successfully"})
}

// TeaserUpdateRequest is the POST /api/films/teaser body
type TeaserUpdateRequest struct {
	FilmID     uint32  `json:"filmId" binding:"required"`
	TeaserText string  `json:"teaserText" binding:"required"`
	ProfileID  *uint32 `json:"profileId"`
}

// UpdateTeaser handles POST /api/films/teaser
func (h *Handler) UpdateTeaser(c *gin.Context) {
	var req TeaserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleValidationError(c, "filmId and teaserText are required", "teaserText")
		return
	}

	existed, err := h.repo.UpdateTeaser(req.FilmID, req.TeaserText, req.ProfileID)
	if err != nil {
		apperrors.HandleDatabaseError(c, "update teaser", err)
		return
	}
	if !existed {
		apperrors.HandleNotFound(c, "Film", strconv.FormatUint(uint64(req.FilmID), 10))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Teaser updated successfully"})
}

// DeleteTeaser handles DELETE /api/films/:id/teaser
func (h *Handler) DeleteTeaser(c *gin.Context) {
	id, ok := apperrors.ParseAndValidateID(c, "id")
	if !ok {
		return
	}

	existed, err := h.repo.DeleteTeaser(id)
	if err != nil {
		apperrors.HandleDatabaseError(c, "delete teaser", err)
		return
	}
	if !existed {
		apperrors.HandleNotFound(c, "Film", c.Param("id"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Teaser deleted successfully"})
}

func trailerSearchURL(title, year string) string {
	params := url.Values{}
	params.Set("search_query", title+" "+year+" trailer")
	return "https://www.youtube.com/results?" + params.Encode()
}

// parseProfileIDsParam parses a comma-separated profile id list. An empty or
// malformed list is a validation failure answered directly on the context.
func parseProfileIDsParam(c *gin.Context, raw string) ([]uint32, bool) {
	ids, err := parseProfileIDs(raw)
	if err != nil {
		apperrors.HandleValidationError(c, err.Error(), "profileIds")
		return nil, false
	}
	return ids, true
}

func parseProfileIDs(raw string) ([]uint32, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("No profile IDs provided")
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint32, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, errors.New("Invalid profile IDs")
		}
		ids = append(ids, uint32(id))
	}
	return ids, nil
}
