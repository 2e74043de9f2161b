package server

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/paradiso/internal/config"
	"github.com/mantonx/paradiso/internal/database"
	"github.com/mantonx/paradiso/internal/events"
	"github.com/mantonx/paradiso/internal/middleware"
	"github.com/mantonx/paradiso/internal/modules/modulemanager"

	// Import all modules to trigger their registration
	_ "github.com/mantonx/paradiso/internal/modules/filmmodule"
	_ "github.com/mantonx/paradiso/internal/modules/metadatamodule"
	_ "github.com/mantonx/paradiso/internal/modules/profilemodule"
)

var systemEventBus events.EventBus
var moduleInitialized bool

// SetupRouter configures and returns the main router
func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorLogger())

	if config.Get().Server.EnableCORS {
		r.Use(corsMiddleware())
	}

	if err := initializeEventBus(); err != nil {
		log.Printf("Failed to initialize event bus: %v", err)
	}

	if err := initializeModules(); err != nil {
		log.Fatalf("Failed to initialize modules: %v", err)
	}

	setupRoutes(r)

	return r
}

// corsMiddleware allows the frontend dev server to talk to the API
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// initializeEventBus creates and starts the system event bus
func initializeEventBus() error {
	if systemEventBus != nil {
		return nil
	}

	systemEventBus = events.NewEventBus(events.DefaultEventBusConfig())
	if err := systemEventBus.Start(context.Background()); err != nil {
		return err
	}

	events.SetGlobalEventBus(systemEventBus)
	return nil
}

// initializeModules sets up the module system and loads all modules
func initializeModules() error {
	if moduleInitialized {
		return nil
	}

	db := database.GetDB()

	if err := modulemanager.LoadAll(db); err != nil {
		return err
	}

	moduleInitialized = true
	logModuleStatus()

	return nil
}

// logModuleStatus logs the loaded modules
func logModuleStatus() {
	modules := modulemanager.ListModules()

	log.Printf("Module system initialized with %d modules", len(modules))
	for _, module := range modules {
		log.Printf("  - %s (%s)", module.Name(), module.ID())
	}
}

// GetEventBus returns the global event bus instance
func GetEventBus() events.EventBus {
	return systemEventBus
}
