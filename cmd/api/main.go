// Package main provides the entry point for the AuthLedger API server
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"authledger/internal/api/routes"
	"authledger/internal/api/server"
	"authledger/internal/config"
	"authledger/internal/database"
	"authledger/internal/logger"
	"authledger/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Parse command line flags
	envFile := flag.String("env", ".env", "Path to env file")
	flag.Parse()

	// Load environment file
	if err := godotenv.Load(*envFile); err != nil && *envFile != ".env" {
		log.Fatalf("Failed to load %s: %v", *envFile, err)
	}

	// Load configuration
	cfg := &config.Config{}
	if err := cfg.LoadFromEnv(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	if cfg.Log.Env != "development" && cfg.Log.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := validation.Initialize(cfg.Auth.PasswordMinLength); err != nil {
		zlog.Fatal("failed to register validators", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.SetupDatabase(ctx, cfg.Database)
	if err != nil {
		zlog.Fatal("failed to set up database", zap.Error(err))
	}
	defer db.Close()

	srv, err := server.New(routes.NewDependencies(cfg, db, zlog))
	if err != nil {
		zlog.Fatal("failed to build server", zap.Error(err))
	}

	if err := srv.Run(ctx); err != nil {
		zlog.Error("server stopped with error", zap.Error(err))
		return
	}

	zlog.Info("server exiting")
}
