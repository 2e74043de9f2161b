package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mantonx/paradiso/internal/config"
	"github.com/mantonx/paradiso/internal/database"
	"github.com/mantonx/paradiso/internal/server"
)

func main() {
	// Local development secrets; absence is fine in production
	if err := godotenv.Load(".env.local"); err == nil {
		log.Println("Loaded environment from .env.local")
	}

	if err := config.Load(os.Getenv("PARADISO_CONFIG")); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	database.Initialize()

	r := server.SetupRouter()

	cfg := config.Get()
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("Starting Paradiso server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if bus := server.GetEventBus(); bus != nil {
		if err := bus.Stop(ctx); err != nil {
			log.Printf("Event bus shutdown: %v", err)
		}
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}

	log.Println("Server stopped")
}
