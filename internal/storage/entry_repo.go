package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_entry_store.go -package=mocks diary-ai/internal/storage EntryStore

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
	// ErrStale is returned when a summary write loses a fingerprint check
	// because the record's content changed after it was read.
	ErrStale = errors.New("record content changed")
)

// UpsertOutcome describes what an upsert did to the store.
type UpsertOutcome int

const (
	Inserted UpsertOutcome = iota
	Updated
	Unchanged
)

func (o UpsertOutcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	default:
		return "unchanged"
	}
}

// SearchFilters narrows a full-text search with structured columns.
// Zero values mean "no filter".
type SearchFilters struct {
	YearFrom   int
	YearTo     int
	Month      int
	EntryTypes []string
	Limit      int
}

// EntryStore defines the interface for diary record storage operations.
type EntryStore interface {
	// GetByDateAndType gets a record by its (date, entry_type) key.
	// Returns nil and ErrNotFound if not found.
	GetByDateAndType(ctx context.Context, date, entryType string) (*EntryRecord, error)
	// Upsert inserts a new record or refreshes an existing one, keeping the
	// structured row and its full-text shadow in lockstep.
	Upsert(ctx context.Context, entry *EntryRecord) (UpsertOutcome, error)
	// Search runs a full-text query narrowed by structured filters.
	Search(ctx context.Context, query string, filters SearchFilters) ([]*EntryRecord, error)
	// ListMissingSummary returns records without a summary, oldest first.
	ListMissingSummary(ctx context.Context, limit int) ([]*EntryRecord, error)
	// SetSummary writes a summary for a record, guarded by the sha256 hex
	// fingerprint of the content the summary was computed from. Returns
	// ErrStale when the stored content no longer matches.
	SetSummary(ctx context.Context, id int64, summary, contentFingerprint string) error
}

// EntryRepo provides diary record operations over SQLite.
// It implements the EntryStore interface.
type EntryRepo struct {
	db *sql.DB
}

// NewEntryRepo creates a new EntryRepo.
func NewEntryRepo(db *sql.DB) *EntryRepo {
	return &EntryRepo{db: db}
}

// DB exposes the underlying database for aggregate queries.
func (r *EntryRepo) DB() *sql.DB {
	return r.db
}

const (
	entryColumns = `id, date, year, month, day, content, file_source, entry_type, word_count, COALESCE(summary, ''), created_at, updated_at`
	// Same list qualified for queries that join the shadow table.
	entryColumnsE = `e.id, e.date, e.year, e.month, e.day, e.content, e.file_source, e.entry_type, e.word_count, COALESCE(e.summary, ''), e.created_at, e.updated_at`
)

// GetByDateAndType gets a record by its (date, entry_type) key.
// Returns nil and ErrNotFound if not found.
func (r *EntryRepo) GetByDateAndType(ctx context.Context, date, entryType string) (*EntryRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM diary_entries WHERE date = ? AND entry_type = ?`,
		date, entryType,
	)
	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query entry: %w", err)
	}
	return entry, nil
}

// Upsert inserts a new record or refreshes an existing one keyed by
// (date, entry_type). Identical content is a pure no-op. On change, content,
// word_count and file_source are overwritten and updated_at refreshed while
// summary and created_at are left untouched. The structured row and the
// full-text shadow row are written in one transaction.
func (r *EntryRepo) Upsert(ctx context.Context, entry *EntryRecord) (UpsertOutcome, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Unchanged, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var (
		existingID      int64
		existingContent string
	)
	err = tx.QueryRowContext(ctx,
		`SELECT id, content FROM diary_entries WHERE date = ? AND entry_type = ?`,
		entry.Date, entry.EntryType,
	).Scan(&existingID, &existingContent)

	switch {
	case err == sql.ErrNoRows:
		res, err := tx.ExecContext(ctx,
			`INSERT INTO diary_entries (date, year, month, day, content, file_source, entry_type, word_count)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			entry.Date, entry.Year, entry.Month, entry.Day,
			entry.Content, entry.FileSource, entry.EntryType, entry.WordCount,
		)
		if err != nil {
			return Unchanged, fmt.Errorf("failed to insert entry: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return Unchanged, fmt.Errorf("failed to get insert id: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO diary_fts (rowid, date, content, file_source) VALUES (?, ?, ?, ?)`,
			id, entry.Date, entry.Content, entry.FileSource,
		); err != nil {
			return Unchanged, fmt.Errorf("failed to insert fts shadow: %w", err)
		}
		entry.ID = id
		if err := tx.Commit(); err != nil {
			return Unchanged, fmt.Errorf("failed to commit: %w", err)
		}
		return Inserted, nil

	case err != nil:
		return Unchanged, fmt.Errorf("failed to check existing entry: %w", err)

	case existingContent == entry.Content:
		// Re-ingesting identical content leaves the store untouched.
		entry.ID = existingID
		return Unchanged, nil

	default:
		if _, err := tx.ExecContext(ctx,
			`UPDATE diary_entries
			 SET content = ?, file_source = ?, word_count = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ?`,
			entry.Content, entry.FileSource, entry.WordCount, existingID,
		); err != nil {
			return Unchanged, fmt.Errorf("failed to update entry: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE diary_fts SET date = ?, content = ?, file_source = ? WHERE rowid = ?`,
			entry.Date, entry.Content, entry.FileSource, existingID,
		); err != nil {
			return Unchanged, fmt.Errorf("failed to update fts shadow: %w", err)
		}
		entry.ID = existingID
		if err := tx.Commit(); err != nil {
			return Unchanged, fmt.Errorf("failed to commit: %w", err)
		}
		return Updated, nil
	}
}

// Search runs an FTS5 MATCH query joined back to the structured table.
// Ranking is full-text relevance first, date descending as tie-break.
func (r *EntryRepo) Search(ctx context.Context, query string, filters SearchFilters) ([]*EntryRecord, error) {
	sqlStr := `SELECT ` + entryColumnsE + `
		FROM diary_entries e
		JOIN diary_fts ON diary_fts.rowid = e.id
		WHERE diary_fts MATCH ?`
	args := []any{query}

	if filters.YearFrom > 0 {
		sqlStr += " AND e.year >= ?"
		args = append(args, filters.YearFrom)
	}
	if filters.YearTo > 0 {
		sqlStr += " AND e.year <= ?"
		args = append(args, filters.YearTo)
	}
	if filters.Month > 0 {
		sqlStr += " AND e.month = ?"
		args = append(args, filters.Month)
	}
	if len(filters.EntryTypes) > 0 {
		sqlStr += " AND e.entry_type IN (?" + strings.Repeat(", ?", len(filters.EntryTypes)-1) + ")"
		for _, t := range filters.EntryTypes {
			args = append(args, t)
		}
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 30
	}
	sqlStr += " ORDER BY diary_fts.rank, e.date DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search entries: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []*EntryRecord
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return entries, nil
}

// ListMissingSummary returns records without a summary, oldest first.
func (r *EntryRepo) ListMissingSummary(ctx context.Context, limit int) ([]*EntryRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM diary_entries
		 WHERE summary IS NULL OR summary = ''
		 ORDER BY date LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries missing summary: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []*EntryRecord
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return entries, nil
}

// SetSummary writes a summary for a record. The write only lands when the
// stored content still hashes to contentFingerprint; a summary computed from
// outdated content is rejected with ErrStale.
func (r *EntryRepo) SetSummary(ctx context.Context, id int64, summary, contentFingerprint string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var content string
	err = tx.QueryRowContext(ctx, `SELECT content FROM diary_entries WHERE id = ?`, id).Scan(&content)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read entry content: %w", err)
	}

	if Fingerprint(content) != contentFingerprint {
		return ErrStale
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE diary_entries SET summary = ? WHERE id = ?`, summary, id,
	); err != nil {
		return fmt.Errorf("failed to set summary: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// ShadowCounts returns the row counts of the structured table and its
// full-text shadow. The two are equal in a consistent store.
func (r *EntryRepo) ShadowCounts(ctx context.Context) (entries, shadow int, err error) {
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM diary_entries`).Scan(&entries); err != nil {
		return 0, 0, fmt.Errorf("failed to count entries: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM diary_fts`).Scan(&shadow); err != nil {
		return 0, 0, fmt.Errorf("failed to count fts shadow: %w", err)
	}
	return entries, shadow, nil
}

// Fingerprint returns the sha256 hex digest of a record's content. Summary
// writers use it to detect content refreshed under them.
func Fingerprint(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*EntryRecord, error) {
	var (
		entry                    EntryRecord
		createdAtStr, updatedAtStr string
	)
	err := s.Scan(
		&entry.ID, &entry.Date, &entry.Year, &entry.Month, &entry.Day,
		&entry.Content, &entry.FileSource, &entry.EntryType, &entry.WordCount,
		&entry.Summary, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	if entry.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}
	if entry.UpdatedAt, err = parseTimestamp(updatedAtStr); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at timestamp: %w", err)
	}
	return &entry, nil
}

// parseTimestamp handles the DATETIME string formats SQLite may hand back.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
