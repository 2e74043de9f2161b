package filmmodule

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/mantonx/paradiso/internal/errors"
)

// ViewedToggleRequest is the POST /api/viewed/toggle body
type ViewedToggleRequest struct {
	FilmID    uint32 `json:"filmId" binding:"required"`
	ProfileID uint32 `json:"profileId" binding:"required"`
}

// ToggleViewed handles POST /api/viewed/toggle. Responds with the resulting
// state: viewed true when the mark now exists.
func (h *Handler) ToggleViewed(c *gin.Context) {
	var req ViewedToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleValidationError(c, "filmId and profileId are required", "viewed")
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

	film, err := h.repo.GetByID(req.FilmID)
	if err != nil {
		apperrors.HandleDatabaseError(c, "lookup film", err)
		return
	}
	if film == nil {
		apperrors.HandleNotFound(c, "Film", strconv.FormatUint(uint64(req.FilmID), 10))
		return
	}

	viewed, err := h.repo.ToggleViewed(req.FilmID, req.ProfileID)
	if err != nil {
		apperrors.HandleDatabaseError(c, "toggle viewed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"viewed": viewed})
}

// GetUserViewed handles GET /api/viewed?profileId=. Returns the ids of every
// film the profile has marked viewed.
func (h *Handler) GetUserViewed(c *gin.Context) {
	profileID, ok := parseQueryID(c, "profileId")
	if !ok {
		return
	}

	filmIDs, err := h.repo.GetUserViewed(profileID)
	if err != nil {
		apperrors.HandleDatabaseError(c, "list viewed", err)
		return
	}
	if filmIDs == nil {
		filmIDs = []uint32{}
	}
	c.JSON(http.StatusOK, filmIDs)
}

// GetFilmViewers handles GET /api/films/:id/viewers?profileIds=1,2. The
// profile filter is optional; names come back alphabetically.
func (h *Handler) GetFilmViewers(c *gin.Context) {
	id, ok := apperrors.ParseAndValidateID(c, "id")
	if !ok {
		return
	}

	var profileIDs []uint32
	if raw := c.Query("profileIds"); raw != "" {
		parsed, err := parseProfileIDs(raw)
		if err != nil {
			apperrors.HandleValidationError(c, err.Error(), "profileIds")
			return
		}
		profileIDs = parsed
	}

	viewers, err := h.repo.GetFilmViewers(id, profileIDs)
	if err != nil {
		apperrors.HandleDatabaseError(c, "list viewers", err)
		return
	}
	c.JSON(http.StatusOK, viewers)
}
