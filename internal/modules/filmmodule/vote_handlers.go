package filmmodule

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/mantonx/paradiso/internal/errors"
	"github.com/mantonx/paradiso/internal/events"
)

// VoteRequest is the POST /api/vote body. Vote is 1 (upvote), -1 (downvote),
// 2 (neutral) or 0 (remove).
type VoteRequest struct {
	FilmID    uint32 `json:"filmId" binding:"required"`
	ProfileID uint32 `json:"profileId" binding:"required"`
	Vote      int    `json:"vote"`
}

// CastVote handles POST /api/vote
func (h *Handler) CastVote(c *gin.Context) {
	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleValidationError(c, "filmId and profileId are required", "vote")
		return
	}

	switch req.Vote {
	case 1, -1, 0, 2:
	default:
		apperrors.HandleValidationError(c,
			"Vote must be 1 (upvote), -1 (downvote), 2 (neutral), or 0 (remove)", "vote")
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

	outcome, err := h.repo.UpsertVote(req.FilmID, req.ProfileID, req.Vote)
	if err != nil {
		apperrors.HandleDatabaseError(c, "upsert vote", err)
		return
	}

	if h.eventBus != nil {
		h.eventBus.PublishAsync(events.NewVoteEvent(req.FilmID, req.ProfileID, req.Vote, outcome))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vote " + outcome})
}

// GetUserVotes handles GET /api/vote?profileId=. The response maps film id
// to the profile's vote value; films the profile never voted on are absent.
func (h *Handler) GetUserVotes(c *gin.Context) {
	profileID, ok := parseQueryID(c, "profileId")
	if !ok {
		return
	}

	votes, err := h.repo.GetUserVotes(profileID)
	if err != nil {
		apperrors.HandleDatabaseError(c, "list votes", err)
		return
	}
	c.JSON(http.StatusOK, votes)
}

// GetFilmVoters handles GET /api/films/:id/voters
func (h *Handler) GetFilmVoters(c *gin.Context) {
	id, ok := apperrors.ParseAndValidateID(c, "id")
	if !ok {
		return
	}

	voters, err := h.repo.GetFilmVoters(id)
	if err != nil {
		apperrors.HandleDatabaseError(c, "list voters", err)
		return
	}
	c.JSON(http.StatusOK, voters)
}

// parseQueryID parses a required numeric query parameter, answering a
// validation error on the context when it is missing or malformed
func parseQueryID(c *gin.Context, name string) (uint32, bool) {
	raw := c.Query(name)
	if raw == "" {
		apperrors.HandleValidationError(c, "Missing "+name, name)
		return 0, false
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		apperrors.HandleValidationError(c, "Invalid "+name+" format", name)
		return 0, false
	}
	return uint32(id), true
}
