package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"diary-ai/internal/handlers"
	"diary-ai/internal/ingest"
	"diary-ai/internal/search"
	"diary-ai/internal/storage"
	"diary-ai/internal/summarizer"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	DB           *sql.DB
	EntryRepo    *storage.EntryRepo
	StatsRepo    *storage.StatsRepo
	Pipeline     *ingest.Pipeline
	SearchEngine *search.Engine
	Backfiller   *summarizer.Backfiller
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	searchHandler := handlers.NewSearchHandler(deps.SearchEngine)
	ingestHandler := handlers.NewIngestHandler(deps.Pipeline)
	statsHandler := handlers.NewStatsHandler(deps.StatsRepo)
	summariesHandler := handlers.NewSummariesHandler(deps.Backfiller)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.EntryRepo)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/search", searchHandler)
		r.Method(http.MethodPost, "/ingest", ingestHandler)
		r.Method(http.MethodGet, "/stats", statsHandler)
		r.Method(http.MethodPost, "/summaries/backfill", summariesHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
