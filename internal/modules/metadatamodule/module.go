package metadatamodule

import (
	"github.com/gin-gonic/gin"
	"github.com/mantonx/paradiso/internal/config"
	"github.com/mantonx/paradiso/internal/database"
	"github.com/mantonx/paradiso/internal/logger"
	"github.com/mantonx/paradiso/internal/metadata/omdb"
	"github.com/mantonx/paradiso/internal/metadata/tmdb"
	"github.com/mantonx/paradiso/internal/modules/filmmodule"
	"github.com/mantonx/paradiso/internal/modules/modulemanager"
	"gorm.io/gorm"
)

// Auto-register the module when imported
func init() {
	Register()
}

const (
	// ModuleID is the unique identifier for the metadata module
	ModuleID = "system.metadata"

	// ModuleName is the display name for the metadata module
	ModuleName = "Metadata Lookup"
)

// Module exposes the external metadata surface: film search and the
// original-title backfill
type Module struct {
	db *gorm.DB

	handler *Handler
}

// Register registers the metadata module with the module system
func Register() {
	metadataModule := &Module{}
	modulemanager.Register(metadataModule)
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

// Migrate performs database migrations. The metadata module owns no tables.
func (m *Module) Migrate(db *gorm.DB) error {
	return nil
}

// Init initializes the metadata module
func (m *Module) Init() error {
	logger.Info("Initializing metadata module")

	if m.db == nil {
		m.db = database.GetDB()
	}

	cfg := config.Get()
	m.handler = NewHandler(
		filmmodule.NewRepository(m.db),
		omdb.NewClient(cfg.Metadata.OMDbAPIKey, cfg.Metadata.RequestTimeout),
		tmdb.NewClient(cfg.Metadata.TMDbAPIKey, cfg.Metadata.RequestTimeout),
	)

	return nil
}

// RegisterRoutes registers HTTP routes
func (m *Module) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/search", m.handler.SearchFilms)

	adminGroup := router.Group("/api/admin")
	{
		adminGroup.POST("/backfill-original-titles", m.handler.BackfillOriginalTitles)
	}
}
