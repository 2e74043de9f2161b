package profilemodule

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	apperrors "github.com/mantonx/paradiso/internal/errors"
	"github.com/mantonx/paradiso/internal/events"
	"gorm.io/gorm"
)

// Handler serves the profile HTTP endpoints
type Handler struct {
	repo     *Repository
	eventBus events.EventBus
}

// NewHandler creates a profile handler
func NewHandler(repo *Repository, eventBus events.EventBus) *Handler {
	return &Handler{repo: repo, eventBus: eventBus}
}

// ProfileCreateRequest is the POST /api/profiles body
type ProfileCreateRequest struct {
	Name string `json:"name" binding:"required"`
}

// GetProfiles handles GET /api/profiles
func (h *Handler) GetProfiles(c *gin.Context) {
	profiles, err := h.repo.List()
	if err != nil {
		apperrors.HandleDatabaseError(c, "list profiles", err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// CreateProfile handles POST /api/profiles
func (h *Handler) CreateProfile(c *gin.Context) {
	var req ProfileCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleValidationError(c, "Profile name is required", "name")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		apperrors.HandleValidationError(c, "Profile name is required", "name")
		return
	}

	existing, err := h.repo.GetByName(name)
	if err != nil {
		apperrors.HandleDatabaseError(c, "lookup profile", err)
		return
	}
	if existing != nil {
		apperrors.HandleConflict(c, "Profile name already exists", "profile")
		return
	}

	profile, err := h.repo.Create(name)
	if err != nil {
		// Lost a race against a concurrent create of the same name
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			apperrors.HandleConflict(c, "Profile name already exists", "profile")
			return
		}
		apperrors.HandleDatabaseError(c, "create profile", err)
		return
	}

	if h.eventBus != nil {
		h.eventBus.PublishAsync(events.NewProfileEvent(
			events.EventProfileCreated, profile.ID, profile.Name,
			fmt.Sprintf("Profile '%s' created", profile.Name)))
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteProfile handles DELETE /api/profiles/:id
func (h *Handler) DeleteProfile(c *gin.Context) {
	id, ok := apperrors.ParseAndValidateID(c, "id")
	if !ok {
		return
	}

	existed, err := h.repo.Delete(id)
	if err != nil {
		apperrors.HandleDatabaseError(c, "delete profile", err)
		return
	}
	if !existed {
		apperrors.HandleNotFound(c, "Profile", c.Param("id"))
		return
	}

	if h.eventBus != nil {
		h.eventBus.PublishAsync(events.NewProfileEvent(
			events.EventProfileDeleted, id, "",
			fmt.Sprintf("Profile %d deleted", id)))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile deleted successfully"})
}
