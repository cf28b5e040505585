package handlers

import (
	"net/http"
	"strconv"
	"sync"

	"diary-ai/internal/contextutil"
	"diary-ai/internal/summarizer"
)

// SummariesHandler handles HTTP requests that trigger a summary backfill.
// Only one backfill may be active at a time.
type SummariesHandler struct {
	backfiller *summarizer.Backfiller
	mu         sync.Mutex
}

// NewSummariesHandler creates a new SummariesHandler.
func NewSummariesHandler(backfiller *summarizer.Backfiller) *SummariesHandler {
	return &SummariesHandler{backfiller: backfiller}
}

// ServeHTTP handles HTTP requests that trigger a summary backfill.
//
// swagger:route POST /api/summaries/backfill backfillSummaries
//
// # Backfill entry summaries
//
// Generates summaries for entries that do not have one, through the
// configured LLM. The optional limit query parameter caps how many entries
// one call processes. Returns 409 when a backfill is already in progress.
//
// ---
// produces:
// - application/json
// parameters:
//   - in: query
//     name: limit
//     type: integer
//     required: false
//
// responses:
//
//	'200':
//	  description: Backfill report with processed, written, stale and failed counts
//	'409':
//	  description: Another backfill is in progress
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *SummariesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	if !h.mu.TryLock() {
		writeError(w, http.StatusConflict, "Backfill already in progress")
		return
	}
	defer h.mu.Unlock()

	report, err := h.backfiller.BackfillAll(ctx, limit)
	if err != nil {
		logger.ErrorContext(ctx, "summary backfill failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Backfill failed")
		return
	}

	writeJSON(w, http.StatusOK, report)
}
