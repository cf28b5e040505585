package handlers

import (
	"net/http"
	"sync"

	"diary-ai/internal/contextutil"
	"diary-ai/internal/ingest"
)

// IngestHandler handles HTTP requests that trigger an ingestion run.
// Only one run may be active at a time.
type IngestHandler struct {
	pipeline *ingest.Pipeline
	mu       sync.Mutex
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(pipeline *ingest.Pipeline) *IngestHandler {
	return &IngestHandler{pipeline: pipeline}
}

// ServeHTTP handles HTTP requests that trigger an ingestion run.
//
// swagger:route POST /api/ingest triggerIngest
//
// # Re-ingest the diary archive
//
// Scans the archive and upserts all recognized entries. The run is
// idempotent: unchanged files produce no writes. Returns 409 when another
// run is already in progress.
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Run report with per-file counts, skips and warnings
//	'409':
//	  description: Another ingestion run is in progress
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'500':
//	  description: The run aborted
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if !h.mu.TryLock() {
		writeError(w, http.StatusConflict, "Ingestion already in progress")
		return
	}
	defer h.mu.Unlock()

	report, err := h.pipeline.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "ingestion run failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Ingestion failed")
		return
	}

	writeJSON(w, http.StatusOK, report)
}
