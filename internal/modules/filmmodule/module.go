package filmmodule

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/paradiso/internal/config"
	"github.com/mantonx/paradiso/internal/database"
	"github.com/mantonx/paradiso/internal/events"
	"github.com/mantonx/paradiso/internal/logger"
	"github.com/mantonx/paradiso/internal/metadata/omdb"
	"github.com/mantonx/paradiso/internal/metadata/tmdb"
	"github.com/mantonx/paradiso/internal/modules/modulemanager"
	"github.com/mantonx/paradiso/internal/modules/profilemodule"
	"gorm.io/gorm"
)

// Auto-register the module when imported
func init() {
	Register()
}

const (
	// ModuleID is the unique identifier for the film module
	ModuleID = "system.films"

	// ModuleName is the display name for the film module
	ModuleName = "Film Catalog"
)

// Module implements the film catalog, voting, viewed tracking and archive
// feedback as a module
type Module struct {
	db       *gorm.DB
	eventBus events.EventBus

	repo    *Repository
	handler *Handler
}

// Register registers the film module with the module system
func Register() {
	filmModule := &Module{}
	modulemanager.Register(filmModule)
}

// ID returns the unique module identifier
func (m *Module) ID() string {
	return ModuleID
}

// Name returns the module display name
func (m *Module) Name() string {
	return ModuleName
}

// Core returns whether this is a core module
func (m *Module) Core() bool {
	return true
}

// Migrate performs database migrations and clears out rows orphaned by
// databases that predate foreign-key enforcement
func (m *Module) Migrate(db *gorm.DB) error {
	logger.Info("Migrating film database schema")

	if err := db.AutoMigrate(
		&database.Film{},
		&database.Vote{},
		&database.Viewed{},
		&database.ArchiveRating{},
		&database.ArchiveComment{},
	); err != nil {
		return fmt.Errorf("failed to migrate film models: %w", err)
	}

	if err := database.PurgeOrphans(db); err != nil {
		return fmt.Errorf("failed to purge orphaned rows: %w", err)
	}

	return nil
}

// Init initializes the film module
func (m *Module) Init() error {
	logger.Info("Initializing film module")

	if m.db == nil {
		m.db = database.GetDB()
	}
	if m.eventBus == nil {
		m.eventBus = events.GetGlobalEventBus()
	}

	cfg := config.Get()
	omdbClient := omdb.NewClient(cfg.Metadata.OMDbAPIKey, cfg.Metadata.RequestTimeout)
	tmdbClient := tmdb.NewClient(cfg.Metadata.TMDbAPIKey, cfg.Metadata.RequestTimeout)

	m.repo = NewRepository(m.db)
	m.handler = NewHandler(m.repo, profilemodule.NewRepository(m.db), m.eventBus,
		omdbClient, tmdbClient)

	return nil
}

// RegisterRoutes registers HTTP routes
func (m *Module) RegisterRoutes(router *gin.Engine) {
	filmGroup := router.Group("/api/films")
	{
		filmGroup.GET("", m.handler.GetFilms)
		filmGroup.GET("/filtered", m.handler.GetFilmsFiltered)
		filmGroup.GET("/archived/list", m.handler.GetArchivedFilms)
		filmGroup.GET("/archived/filtered", m.handler.GetArchivedFilmsFiltered)
		filmGroup.POST("", m.handler.AddFilm)
		filmGroup.DELETE("/:id", m.handler.DeleteFilm)

		filmGroup.POST("/teaser", m.handler.UpdateTeaser)
		filmGroup.DELETE("/:id/teaser", m.handler.DeleteTeaser)

		filmGroup.GET("/:id/voters", m.handler.GetFilmVoters)
		filmGroup.GET("/:id/viewers", m.handler.GetFilmViewers)

		filmGroup.POST("/archive/toggle", m.handler.ToggleArchive)
		filmGroup.POST("/archive/metadata", m.handler.UpdateArchiveMetadata)

		filmGroup.POST("/:id/rating", m.handler.UpsertRating)
		filmGroup.GET("/:id/ratings", m.handler.GetFilmRatings)
		filmGroup.DELETE("/:id/rating/:profileId", m.handler.DeleteRating)

		filmGroup.POST("/:id/comment", m.handler.UpsertComment)
		filmGroup.GET("/:id/comments", m.handler.GetFilmComments)
		filmGroup.DELETE("/:id/comment/:profileId", m.handler.DeleteComment)
	}

	voteGroup := router.Group("/api/vote")
	{
		voteGroup.POST("", m.handler.CastVote)
		voteGroup.GET("", m.handler.GetUserVotes)
	}

	viewedGroup := router.Group("/api/viewed")
	{
		viewedGroup.POST("/toggle", m.handler.ToggleViewed)
		viewedGroup.GET("", m.handler.GetUserViewed)
	}
}

// Repo exposes the film repository to collaborating modules
func (m *Module) Repo() *Repository {
	return m.repo
}
