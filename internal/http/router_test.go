package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"diary-ai/internal/archive"
	"diary-ai/internal/ingest"
	"diary-ai/internal/llm"
	"diary-ai/internal/search"
	"diary-ai/internal/storage"
	"diary-ai/internal/summarizer"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	tmp := t.TempDir()

	db, err := storage.New(filepath.Join(tmp, "test.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}

	root := filepath.Join(tmp, "archive")
	if err := os.MkdirAll(filepath.Join(root, "2020"), 0755); err != nil {
		t.Fatalf("failed to create archive: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "2020", "01_15.txt"), []byte("walked in the park"), 0644); err != nil {
		t.Fatalf("failed to write diary file: %v", err)
	}

	entries := storage.NewEntryRepo(db)
	stats := storage.NewStatsRepo(db)
	pipeline := ingest.NewPipeline(archive.NewScanner(root), entries, stats)

	llmServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := llm.ChatResponse{
			Choices: []llm.ChatChoice{{Message: llm.ChatChoiceMessage{Content: "a quiet day"}}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(llmServer.Close)

	return NewRouter(&Deps{
		DB:           db,
		EntryRepo:    entries,
		StatsRepo:    stats,
		Pipeline:     pipeline,
		SearchEngine: search.NewEngine(entries),
		Backfiller:   summarizer.NewBackfiller(entries, llm.NewClient(llmServer.URL, "", "test-model")),
	})
}

func TestRouter_EndToEnd(t *testing.T) {
	router := newTestRouter(t)

	// Ingest the archive.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/ingest", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("POST /api/ingest status = %d, body = %s", w.Code, w.Body.String())
	}
	var report ingest.Report
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("failed to decode ingest report: %v", err)
	}
	if report.Inserted != 1 {
		t.Errorf("ingest inserted = %d, want 1", report.Inserted)
	}

	// Search for the entry.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/search?q=park", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/search status = %d, body = %s", w.Code, w.Body.String())
	}
	var searchResp struct {
		Count   int `json:"count"`
		Results []struct {
			Date      string `json:"date"`
			EntryType string `json:"entry_type"`
		} `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &searchResp); err != nil {
		t.Fatalf("failed to decode search response: %v", err)
	}
	if searchResp.Count != 1 || searchResp.Results[0].Date != "2020-01-15" {
		t.Errorf("search response = %+v", searchResp)
	}

	// Backfill summaries through the fake model.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/summaries/backfill", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("POST /api/summaries/backfill status = %d, body = %s", w.Code, w.Body.String())
	}
	var backfill summarizer.Report
	if err := json.Unmarshal(w.Body.Bytes(), &backfill); err != nil {
		t.Fatalf("failed to decode backfill report: %v", err)
	}
	if backfill.Written != 1 {
		t.Errorf("backfill written = %d, want 1", backfill.Written)
	}

	// Stats reflect the ingested entry.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/stats status = %d", w.Code)
	}
	var stats struct {
		Yearly []struct {
			Year         int `json:"year"`
			TotalEntries int `json:"total_entries"`
		} `json:"yearly"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode stats response: %v", err)
	}
	if len(stats.Yearly) != 1 || stats.Yearly[0].Year != 2020 || stats.Yearly[0].TotalEntries != 1 {
		t.Errorf("stats response = %+v", stats)
	}

	// Health reports the store as consistent.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("GET /api/health status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestRouter_SearchRequiresQuery(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/search", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("GET /api/search without q status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ingest", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/ingest status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}
