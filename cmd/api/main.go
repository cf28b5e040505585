package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"diary-ai/internal/archive"
	"diary-ai/internal/config"
	"diary-ai/internal/http"
	"diary-ai/internal/ingest"
	"diary-ai/internal/llm"
	"diary-ai/internal/search"
	"diary-ai/internal/storage"
	"diary-ai/internal/summarizer"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API ingests a personal diary archive into a searchable SQLite store,
// classifies entries by type and serves full-text search over them.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Diary AI API
//   description: |
//     Diary ingestion and search API. Scans a year-per-folder diary archive,
//     recognizes and classifies entries, stores them with a full-text index
//     and serves search, statistics and LLM summary backfill.
//   version: 1.0.0
// schemes:
//   - http
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	entryRepo := storage.NewEntryRepo(db)
	statsRepo := storage.NewStatsRepo(db)

	// Create the ingestion pipeline over the diary archive
	scanner := archive.NewScanner(cfg.DiaryBasePath)
	pipeline := ingest.NewPipeline(scanner, entryRepo, statsRepo)
	slog.Info("Ingestion pipeline initialized", "archive", cfg.DiaryBasePath)

	// Create LLM client (external service layer) and the summarizer on top
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
	backfiller := summarizer.NewBackfiller(entryRepo, llmClient)

	// Create search engine
	engine := search.NewEngine(entryRepo)

	// Create router with dependencies
	deps := &http.Deps{
		DB:           db,
		EntryRepo:    entryRepo,
		StatsRepo:    statsRepo,
		Pipeline:     pipeline,
		SearchEngine: engine,
		Backfiller:   backfiller,
	}
	router := http.NewRouter(deps)

	// Start ingestion in background after router is ready
	go func() {
		ingestCtx := context.Background()
		slog.Info("Starting background ingestion of diary archive")
		report, err := pipeline.Run(ingestCtx)
		if err != nil {
			slog.Error("Ingestion failed", "error", err)
			return
		}
		slog.Info("Ingestion completed",
			"files", report.Files,
			"inserted", report.Inserted,
			"updated", report.Updated,
			"unchanged", report.Unchanged,
			"skipped", len(report.Skipped))
	}()

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
