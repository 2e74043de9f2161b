package filmmodule

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/paradiso/internal/database"
	apperrors "github.com/mantonx/paradiso/internal/errors"
	"github.com/mantonx/paradiso/internal/events"
)

// ArchiveToggleRequest is the POST /api/films/archive/toggle body
type ArchiveToggleRequest struct {
	FilmID uint32 `json:"filmId" binding:"required"`
}

// ArchiveMetadataRequest is the POST /api/films/archive/metadata body.
// Omitted fields clear their columns.
type ArchiveMetadataRequest struct {
	FilmID            uint32  `json:"filmId" binding:"required"`
	ArchiveDate       *string `json:"archiveDate"`
	ArchiveCommentary *string `json:"archiveCommentary"`
}

// RatingRequest is the POST /api/films/:id/rating body
type RatingRequest struct {
	ProfileID uint32 `json:"profileId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
}

// CommentRequest is the POST /api/films/:id/comment body
type CommentRequest struct {
	ProfileID   uint32 `json:"profileId" binding:"required"`
	CommentText string `json:"commentText" binding:"required"`
}

// ToggleArchive handles POST /api/films/archive/toggle
func (h *Handler) ToggleArchive(c *gin.Context) {
	var req ArchiveToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleValidationError(c, "filmId is required", "filmId")
		return
	}

	archived, existed, err := h.repo.ToggleArchive(req.FilmID)
	if err != nil {
		apperrors.HandleDatabaseError(c, "toggle archive", err)
		return
	}
	if !existed {
		apperrors.HandleNotFound(c, "Film", strconv.FormatUint(uint64(req.FilmID), 10))
		return
	}

	if h.eventBus != nil {
		eventType := events.EventFilmUnarchived
		verb := "unarchived"
		if archived {
			eventType = events.EventFilmArchived
			verb = "archived"
		}
		h.eventBus.PublishAsync(events.NewFilmEvent(
			eventType, req.FilmID, "",
			fmt.Sprintf("Film %d %s", req.FilmID, verb)))
	}

	c.JSON(http.StatusOK, gin.H{"archived": archived})
}

// UpdateArchiveMetadata handles POST /api/films/archive/metadata
func (h *Handler) UpdateArchiveMetadata(c *gin.Context) {
	var req ArchiveMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleValidationError(c, "filmId is required", "filmId")
		return
	}

	existed, err := h.repo.UpdateArchiveMetadata(req.FilmID, req.ArchiveDate, req.ArchiveCommentary)
	if err != nil {
		apperrors.HandleDatabaseError(c, "update archive metadata", err)
		return
	}
	if !existed {
		apperrors.HandleNotFound(c, "Film", strconv.FormatUint(uint64(req.FilmID), 10))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Archive metadata updated successfully"})
}

// UpsertRating handles POST /api/films/:id/rating. Ratings exist only for
// archived films.
func (h *Handler) UpsertRating(c *gin.Context) {
	id, ok := apperrors.ParseAndValidateID(c, "id")
	if !ok {
		return
	}

	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleValidationError(c, "profileId and rating are required", "rating")
		return
	}

	if _, ok := h.requireArchivedFilm(c, id); !ok {
		return
	}

	profile, err := h.profiles.GetByID(req.ProfileID)
	if err != nil {
		apperrors.HandleDatabaseError(c, "lookup profile", err)
		return
	}
	if profile == nil {
		apperrors.HandleNotFound(c, "Profile", strconv.FormatUint(uint64(req.ProfileID), 10))
		return
	}

	outcome, err := h.repo.UpsertRating(id, req.ProfileID, req.Rating)
	if err != nil {
		if errors.Is(err, ErrRatingOutOfRange) {
			apperrors.HandleValidationError(c, "Rating must be between 1 and 5", "rating")
			return
		}
		apperrors.HandleDatabaseError(c, "upsert rating", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rating " + outcome})
}

// GetFilmRatings handles GET /api/films/:id/ratings
func (h *Handler) GetFilmRatings(c *gin.Context) {
	id, ok := apperrors.ParseAndValidateID(c, "id")
	if !ok {
		return
	}
	if !h.requireFilm(c, id) {
		return
	}

	ratings, err := h.repo.GetFilmRatings(id)
	if err != nil {
		apperrors.HandleDatabaseError(c, "list ratings", err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}

// DeleteRating handles DELETE /api/films/:id/rating/:profileId
func (h *Handler) DeleteRating(c *gin.Context) {
	id, ok := apperrors.ParseAndValidateID(c, "id")
	if !ok {
		return
	}
	profileID, ok := apperrors.ParseAndValidateID(c, "profileId")
	if !ok {
		return
	}

	existed, err := h.repo.DeleteRating(id, profileID)
	if err != nil {
		apperrors.HandleDatabaseError(c, "delete rating", err)
		return
	}
	if !existed {
		apperrors.HandleNotFound(c, "Rating", c.Param("profileId"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rating deleted successfully"})
}

// UpsertComment handles POST /api/films/:id/comment. Comments exist only for
// archived films.
func (h *Handler) UpsertComment(c *gin.Context) {
	id, ok := apperrors.ParseAndValidateID(c, "id")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleValidationError(c, "profileId and commentText are required", "commentText")
		return
	}

	if _, ok := h.requireArchivedFilm(c, id); !ok {
		return
	}

	profile, err := h.profiles.GetByID(req.ProfileID)
	if err != nil {
		apperrors.HandleDatabaseError(c, "lookup profile", err)
		return
	}
	if profile == nil {
		apperrors.HandleNotFound(c, "Profile", strconv.FormatUint(uint64(req.ProfileID), 10))
		return
	}

	outcome, err := h.repo.UpsertComment(id, req.ProfileID, req.CommentText)
	if err != nil {
		if errors.Is(err, ErrEmptyComment) {
			apperrors.HandleValidationError(c, "Comment text cannot be empty", "commentText")
			return
		}
		apperrors.HandleDatabaseError(c, "upsert comment", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment " + outcome})
}

// GetFilmComments handles GET /api/films/:id/comments
func (h *Handler) GetFilmComments(c *gin.Context) {
	id, ok := apperrors.ParseAndValidateID(c, "id")
	if !ok {
		return
	}
	if !h.requireFilm(c, id) {
		return
	}

	comments, err := h.repo.GetFilmComments(id)
	if err != nil {
		apperrors.HandleDatabaseError(c, "list comments", err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// DeleteComment handles DELETE /api/films/:id/comment/:profileId
func (h *Handler) DeleteComment(c *gin.Context) {
	id, ok := apperrors.ParseAndValidateID(c, "id")
	if !ok {
		return
	}
	profileID, ok := apperrors.ParseAndValidateID(c, "profileId")
	if !ok {
		return
	}

	existed, err := h.repo.DeleteComment(id, profileID)
	if err != nil {
		apperrors.HandleDatabaseError(c, "delete comment", err)
		return
	}
	if !existed {
		apperrors.HandleNotFound(c, "Comment", c.Param("profileId"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// requireFilm answers a 404 when the referenced film does not exist
func (h *Handler) requireFilm(c *gin.Context, filmID uint32) bool {
	film, err := h.repo.GetByID(filmID)
	if err != nil {
		apperrors.HandleDatabaseError(c, "lookup film", err)
		return false
	}
	if film == nil {
		apperrors.HandleNotFound(c, "Film", strconv.FormatUint(uint64(filmID), 10))
		return false
	}
	return true
}

// requireArchivedFilm answers a 404 when the film is missing or not yet
// archived, since ratings and comments are retrospective by nature
func (h *Handler) requireArchivedFilm(c *gin.Context, filmID uint32) (*database.Film, bool) {
	film, err := h.repo.GetByID(filmID)
	if err != nil {
		apperrors.HandleDatabaseError(c, "lookup film", err)
		return nil, false
	}
	if film == nil {
		apperrors.HandleNotFound(c, "Film", strconv.FormatUint(uint64(filmID), 10))
		return nil, false
	}
	if !film.IsArchived {
		(&apperrors.ParadisoError{
			Code:       "NOT_FOUND",
			Message:    "Film is not archived",
			HTTPStatus: http.StatusNotFound,
			Context:    map[string]interface{}{"film_id": filmID},
		}).ToGinResponse(c)
		return nil, false
	}
	return film, true
}
