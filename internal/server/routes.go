package server

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/paradiso/internal/config"
	"github.com/mantonx/paradiso/internal/modules/modulemanager"
)

// setupRoutes wires module routes, the health check and the static frontend
func setupRoutes(r *gin.Engine) {
	r.GET("/api/health", healthCheck)

	modulemanager.RegisterRoutes(r)

	staticDir := config.Get().Static.Dir
	if _, err := os.Stat(staticDir); err == nil {
		r.Static("/static", staticDir)
		r.GET("/", func(c *gin.Context) {
			c.File(filepath.Join(staticDir, "index.html"))
		})
	}
}

// healthCheck reports service liveness
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "paradiso",
	})
}
