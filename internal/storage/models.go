package storage

import "time"

// EntryRecord is one diary record: one calendar day under one entry type.
type EntryRecord struct {
	ID         int64
	Date       string // Canonical YYYY-MM-DD
	Year       int    // Denormalized from Date for range queries
	Month      int
	Day        int
	Content    string
	FileSource string // Provenance only, not an identity key
	EntryType  string
	WordCount  int
	Summary    string // Written by the summarizer, never by ingestion
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// YearStats is the aggregated row for one year in diary_stats.
type YearStats struct {
	Year         int
	TotalEntries int
	TotalWords   int
	FirstEntry   string
	LastEntry    string
}

// TypeStats is the per-entry-type aggregate breakdown.
type TypeStats struct {
	EntryType  string
	Entries    int
	TotalWords int
}
