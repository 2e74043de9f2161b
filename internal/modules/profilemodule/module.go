package profilemodule

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/paradiso/internal/database"
	"github.com/mantonx/paradiso/internal/events"
	"github.com/mantonx/paradiso/internal/logger"
	"github.com/mantonx/paradiso/internal/modules/modulemanager"
	"gorm.io/gorm"
)

// Auto-register the module when imported
func init() {
	Register()
}

const (
	// ModuleID is the unique identifier for the profile module
	ModuleID = "system.profiles"

	// ModuleName is the display name for the profile module
	ModuleName = "Profile Manager"
)

// Module implements profile management as a module
type Module struct {
	db       *gorm.DB
	eventBus events.EventBus

	repo    *Repository
	handler *Handler
}

// Register registers the profile module with the module system
func Register() {
	profileModule := &Module{}
	modulemanager.Register(profileModule)
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

// Migrate performs database migrations
func (m *Module) Migrate(db *gorm.DB) error {
	logger.Info("Migrating profile database schema")

	if err := db.AutoMigrate(&database.Profile{}); err != nil {
		return fmt.Errorf("failed to migrate profile models: %w", err)
	}

	return nil
}

// Init initializes the profile module
func (m *Module) Init() error {
	logger.Info("Initializing profile module")

	if m.db == nil {
		m.db = database.GetDB()
	}
	if m.eventBus == nil {
		m.eventBus = events.GetGlobalEventBus()
	}

	m.repo = NewRepository(m.db)
	m.handler = NewHandler(m.repo, m.eventBus)

	return nil
}

// RegisterRoutes registers HTTP routes
func (m *Module) RegisterRoutes(router *gin.Engine) {
	profileGroup := router.Group("/api/profiles")
	{
		profileGroup.GET("", m.handler.GetProfiles)
		profileGroup.POST("", m.handler.CreateProfile)
		profileGroup.DELETE("/:id", m.handler.DeleteProfile)
	}
}

// Repo exposes the profile repository to collaborating modules
func (m *Module) Repo() *Repository {
	return m.repo
}
