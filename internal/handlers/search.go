package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"diary-ai/internal/contextutil"
	"diary-ai/internal/search"
)

// SearchHandler handles HTTP requests for diary search.
type SearchHandler struct {
	engine *search.Engine
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(engine *search.Engine) *SearchHandler {
	return &SearchHandler{engine: engine}
}

// SearchResponse represents the search response payload.
//
// swagger:model SearchResponse
type SearchResponse struct {
	Query   string           `json:"query"`
	Results []*search.Result `json:"results"`
	Count   int              `json:"count"`
}

// ServeHTTP handles HTTP requests for diary search.
//
// swagger:route GET /api/search searchEntries
//
// # Search diary entries
//
// Runs a full-text search over ingested diary entries. The query text may
// contain a year or year range (e.g. "2023年", "2021-2023"), which narrows
// the search; explicit year_from/year_to parameters take precedence.
//
// ---
// produces:
// - application/json
// parameters:
//   - in: query
//     name: q
//     type: string
//     required: true
//   - in: query
//     name: year_from
//     type: integer
//   - in: query
//     name: year_to
//     type: integer
//   - in: query
//     name: month
//     type: integer
//   - in: query
//     name: types
//     type: string
//     description: Comma-separated entry types to include
//   - in: query
//     name: limit
//     type: integer
//
// responses:
//
//	'200':
//	  description: Matching entries ranked by relevance
//	  schema:
//	    "$ref": "#/definitions/SearchResponse"
//	'400':
//	  description: Missing or invalid query
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	params := r.URL.Query()
	text := strings.TrimSpace(params.Get("q"))
	if text == "" {
		writeError(w, http.StatusBadRequest, "Query parameter q is required")
		return
	}

	query := search.Query{Text: text}
	var err error
	if query.YearFrom, err = intParam(params.Get("year_from")); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year_from")
		return
	}
	if query.YearTo, err = intParam(params.Get("year_to")); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year_to")
		return
	}
	if query.Month, err = intParam(params.Get("month")); err != nil || query.Month < 0 || query.Month > 12 {
		writeError(w, http.StatusBadRequest, "Invalid month")
		return
	}
	if query.Limit, err = intParam(params.Get("limit")); err != nil || query.Limit < 0 {
		writeError(w, http.StatusBadRequest, "Invalid limit")
		return
	}
	if types := strings.TrimSpace(params.Get("types")); types != "" {
		for _, t := range strings.Split(types, ",") {
			if t = strings.TrimSpace(t); t != "" {
				query.Types = append(query.Types, t)
			}
		}
	}

	results, err := h.engine.Search(ctx, query)
	if err != nil {
		logger.ErrorContext(ctx, "search failed", "query", text, "error", err)
		writeError(w, http.StatusInternalServerError, "Search failed")
		return
	}
	if results == nil {
		results = []*search.Result{}
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Query:   text,
		Results: results,
		Count:   len(results),
	})
}

func intParam(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}
