package handlers

import (
	"net/http"

	"diary-ai/internal/contextutil"
	"diary-ai/internal/storage"
)

// StatsHandler handles HTTP requests for archive statistics.
type StatsHandler struct {
	stats *storage.StatsRepo
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(stats *storage.StatsRepo) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// YearStatsResponse is one year's aggregates in the HTTP response.
//
// swagger:model YearStatsResponse
type YearStatsResponse struct {
	Year         int    `json:"year"`
	TotalEntries int    `json:"total_entries"`
	TotalWords   int    `json:"total_words"`
	FirstEntry   string `json:"first_entry_date,omitempty"`
	LastEntry    string `json:"last_entry_date,omitempty"`
}

// TypeStatsResponse is one entry type's aggregates in the HTTP response.
//
// swagger:model TypeStatsResponse
type TypeStatsResponse struct {
	EntryType  string `json:"entry_type"`
	Entries    int    `json:"entries"`
	TotalWords int    `json:"total_words"`
}

// StatsResponse represents the statistics response payload.
//
// swagger:model StatsResponse
type StatsResponse struct {
	Yearly []YearStatsResponse `json:"yearly"`
	ByType []TypeStatsResponse `json:"by_type"`
}

// ServeHTTP handles HTTP requests for archive statistics.
//
// swagger:route GET /api/stats getStats
//
// # Archive statistics
//
// Returns per-year entry and word counts plus a breakdown by entry type.
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Aggregated statistics
//	  schema:
//	    "$ref": "#/definitions/StatsResponse"
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	yearly, err := h.stats.Yearly(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load yearly stats", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load statistics")
		return
	}
	byType, err := h.stats.ByType(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load type stats", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load statistics")
		return
	}

	resp := StatsResponse{
		Yearly: make([]YearStatsResponse, 0, len(yearly)),
		ByType: make([]TypeStatsResponse, 0, len(byType)),
	}
	for _, s := range yearly {
		resp.Yearly = append(resp.Yearly, YearStatsResponse{
			Year:         s.Year,
			TotalEntries: s.TotalEntries,
			TotalWords:   s.TotalWords,
			FirstEntry:   s.FirstEntry,
			LastEntry:    s.LastEntry,
		})
	}
	for _, s := range byType {
		resp.ByType = append(resp.ByType, TypeStatsResponse{
			EntryType:  s.EntryType,
			Entries:    s.Entries,
			TotalWords: s.TotalWords,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
