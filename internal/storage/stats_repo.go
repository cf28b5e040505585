package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// StatsRepo maintains and reads the diary_stats aggregate table.
type StatsRepo struct {
	db *sql.DB
}

// NewStatsRepo creates a new StatsRepo.
func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// Rebuild recomputes diary_stats from diary_entries. Called after an
// ingestion run; safe to call any time.
func (r *StatsRepo) Rebuild(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM diary_stats`); err != nil {
		return fmt.Errorf("failed to clear stats: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO diary_stats (year, total_entries, total_words, first_entry_date, last_entry_date)
		SELECT year, COUNT(*), SUM(word_count), MIN(date), MAX(date)
		FROM diary_entries GROUP BY year`); err != nil {
		return fmt.Errorf("failed to rebuild stats: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Yearly returns the per-year aggregates, ascending by year.
func (r *StatsRepo) Yearly(ctx context.Context) ([]YearStats, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT year, total_entries, total_words,
		       COALESCE(first_entry_date, ''), COALESCE(last_entry_date, '')
		FROM diary_stats ORDER BY year`)
	if err != nil {
		return nil, fmt.Errorf("failed to query yearly stats: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var stats []YearStats
	for rows.Next() {
		var s YearStats
		if err := rows.Scan(&s.Year, &s.TotalEntries, &s.TotalWords, &s.FirstEntry, &s.LastEntry); err != nil {
			return nil, fmt.Errorf("failed to scan yearly stats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return stats, nil
}

// ByType returns entry counts and word totals per entry type, most frequent
// type first.
func (r *StatsRepo) ByType(ctx context.Context) ([]TypeStats, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT entry_type, COUNT(*), SUM(word_count)
		FROM diary_entries GROUP BY entry_type ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query type stats: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var stats []TypeStats
	for rows.Next() {
		var s TypeStats
		if err := rows.Scan(&s.EntryType, &s.Entries, &s.TotalWords); err != nil {
			return nil, fmt.Errorf("failed to scan type stats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return stats, nil
}
