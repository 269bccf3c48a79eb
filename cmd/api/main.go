package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/robolab-go/internal/api/handlers"
	"github.com/linskybing/robolab-go/internal/api/routes"
	"github.com/linskybing/robolab-go/internal/app"
	"github.com/linskybing/robolab-go/internal/config"
	"github.com/linskybing/robolab-go/internal/scheduler"
)

// @title Robotics Lab Project Review API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables and .env file
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logFile, w := config.InitLogging(cfg.LogFile)
	if logFile != nil {
		defer logFile.Close()
	}
	gin.DefaultWriter = w
	gin.DefaultErrorWriter = w

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, w)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer a.Close()

	if err := a.BootstrapAdmin(ctx); err != nil {
		log.Fatalf("Failed to bootstrap admin: %v", err)
	}

	worker := scheduler.NewWorker(a.Services.Delivery, a.Services.Auth, cfg.Mail.Schedule)
	go func() {
		if err := worker.Start(ctx); err != nil {
			log.Printf("Mail worker error: %v", err)
		}
	}()

	gin.SetMode(cfg.GinMode)
	h := handlers.New(a.Services, cfg.GinMode == gin.ReleaseMode, a.Gateway.Ping)
	router := routes.NewRouter(a.Services, h, cfg.AppURL)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("Starting API server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
