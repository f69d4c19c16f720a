package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/gorilla/mux"
	"github.com/shx/ptax-quote-service/internal/application/service"
	"github.com/shx/ptax-quote-service/internal/config"
	"github.com/shx/ptax-quote-service/internal/infrastructure/api"
	"github.com/shx/ptax-quote-service/internal/infrastructure/db"
	"github.com/shx/ptax-quote-service/internal/infrastructure/handler"
	"github.com/shx/ptax-quote-service/internal/infrastructure/logger"
	"github.com/shx/ptax-quote-service/internal/infrastructure/middleware"
)

func main() {
	cfg := config.Load()

	appLogger := logger.NewJSONLogger(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	logger.SetDefaultLogger(appLogger)

	appLogger.Info("Starting PTAX quote service", map[string]interface{}{
		"port":              cfg.Port,
		"db_path":           cfg.DBPath,
		"max_lookback_days": cfg.MaxLookbackDays,
	})

	// Setup BadgerDB
	if err := os.MkdirAll(cfg.DBPath, 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	badgerOpts := badger.DefaultOptions(cfg.DBPath)
	badgerOpts.Logger = nil // Disable Badger's default logger

	badgerDB, err := badger.Open(badgerOpts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	defer func() {
		if err := badgerDB.Close(); err != nil {
			appLogger.Error("Error closing BadgerDB", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	// Initialize repository and upstream client
	quoteRepo := db.NewBadgerQuoteRepository(badgerDB)

	httpClient := &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutSec) * time.Second}
	ptaxClient := api.NewPTAXClient(httpClient, appLogger)
	ptaxClient.SetBaseURL(cfg.PTAXBaseURL)

	// Initialize services
	resolver := service.NewCurrentQuoteResolver(ptaxClient, cfg.MaxLookbackDays, appLogger)
	quoteService := service.NewQuoteService(ptaxClient, quoteRepo, resolver, appLogger)

	// Initialize handler and router
	quoteHandler := handler.NewQuoteHandler(quoteService, appLogger)

	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(appLogger))
	quoteHandler.RegisterRoutes(router)

	appLogger.Info("Server listening", map[string]interface{}{
		"addr": ":" + cfg.Port,
	})
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
