package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"diary-ai/internal/archive"
	"diary-ai/internal/diary"
	"diary-ai/internal/storage"
)

// Pipeline orchestrates one ingestion run: scan the archive, recognize each
// file's structure, split multi-day files, classify records and upsert them
// into the store. Runs are idempotent: re-ingesting an unchanged archive
// performs no writes.
type Pipeline struct {
	scanner *archive.Scanner
	entries storage.EntryStore
	stats   *storage.StatsRepo
	logger  *slog.Logger
}

// NewPipeline creates a new ingestion pipeline. stats may be nil to skip the
// aggregate rebuild after a run.
func NewPipeline(scanner *archive.Scanner, entries storage.EntryStore, stats *storage.StatsRepo) *Pipeline {
	return &Pipeline{
		scanner: scanner,
		entries: entries,
		stats:   stats,
		logger:  slog.Default(),
	}
}

// entryKey identifies a record inside one run.
type entryKey struct {
	date      string
	entryType string
}

// Run executes one full ingestion pass over the archive.
// Per-file problems are recorded in the report and never abort the run; only
// a failing archive scan or stats rebuild is fatal.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:     uuid.New().String(),
		StartedAt: time.Now().UTC(),
	}
	logger := p.logger.With("run_id", report.RunID)

	files, err := p.scanner.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan archive: %w", err)
	}
	logger.InfoContext(ctx, "starting ingestion", "total_files", len(files))

	// First pass: collect records from all files. Later occurrences of the
	// same (date, entry_type) replace earlier ones, with a warning.
	collected := make(map[entryKey]*diary.Entry)
	var order []entryKey

	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		report.Files++
		entries, ok := p.processFile(file, report, logger)
		if !ok {
			continue
		}
		for _, entry := range entries {
			key := entryKey{date: entry.Date.Format("2006-01-02"), entryType: string(entry.Type)}
			if prev, dup := collected[key]; dup {
				report.warn(fmt.Sprintf("duplicate record %s (%s): %s replaces %s",
					key.date, key.entryType, entry.FileSource, prev.FileSource))
			} else {
				order = append(order, key)
			}
			collected[key] = entry
		}
	}

	// Second pass: upsert in date order so repeated runs touch the store in
	// a stable sequence.
	sort.Slice(order, func(i, j int) bool {
		if order[i].date != order[j].date {
			return order[i].date < order[j].date
		}
		return order[i].entryType < order[j].entryType
	})

	for _, key := range order {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		entry := collected[key]
		record := p.buildRecord(entry)
		outcome, err := p.entries.Upsert(ctx, record)
		if err != nil {
			// Fatal for this record only; the run continues.
			report.skip(entry.FileSource, ReasonStoreWrite, err.Error())
			logger.ErrorContext(ctx, "failed to upsert record",
				"date", record.Date, "entry_type", record.EntryType, "error", err)
			continue
		}
		switch outcome {
		case storage.Inserted:
			report.Inserted++
		case storage.Updated:
			report.Updated++
		default:
			report.Unchanged++
		}
	}

	if p.stats != nil {
		if err := p.stats.Rebuild(ctx); err != nil {
			return nil, fmt.Errorf("failed to rebuild stats: %w", err)
		}
	}

	report.FinishedAt = time.Now().UTC()
	logger.InfoContext(ctx, "ingestion completed",
		"files", report.Files,
		"inserted", report.Inserted,
		"updated", report.Updated,
		"unchanged", report.Unchanged,
		"skipped", len(report.Skipped),
		"warnings", len(report.Warnings))
	return report, nil
}

// processFile reads and converts one archive file into zero or more records.
// ok is false when the file was skipped entirely.
func (p *Pipeline) processFile(file archive.ScannedFile, report *Report, logger *slog.Logger) ([]*diary.Entry, bool) {
	raw, err := os.ReadFile(file.AbsPath)
	if err != nil {
		report.skip(file.RelPath, ReasonReadFailure, err.Error())
		return nil, false
	}
	content := strings.TrimSpace(string(raw))
	if content == "" {
		report.skip(file.RelPath, ReasonEmptyFile, "")
		return nil, false
	}

	filename := filepath.Base(file.RelPath)
	year := file.Year
	kind := diary.Classify(filename, year, content)

	switch kind {
	case diary.KindUnparseable:
		report.skip(file.RelPath, ReasonUnparseable, "no recognizable date in filename or content")
		return nil, false

	case diary.KindAmbiguous:
		report.skip(file.RelPath, ReasonAmbiguousDate, "date-like tokens could not be resolved")
		return nil, false

	case diary.KindRetrospective:
		// Backfilled memories sit in the year's first slot.
		return []*diary.Entry{{
			Date:       date(year, 1, 1),
			Content:    content,
			Type:       diary.TypeRetrospective,
			FileSource: file.RelPath,
		}}, true

	case diary.KindSummary:
		// Year-level narratives sit in the year's last slot.
		return []*diary.Entry{{
			Date:       date(year, 12, 31),
			Content:    content,
			Type:       diary.TypeSummary,
			FileSource: file.RelPath,
		}}, true

	case diary.KindSingleDay:
		d, _ := diary.ParseFilenameDate(filename, year)
		return []*diary.Entry{{
			Date:       d,
			Content:    content,
			Type:       diary.TypeSingleDay,
			FileSource: file.RelPath,
		}}, true

	case diary.KindMultiDay, diary.KindStockDiary:
		entryType := diary.TypeMultiDay
		if kind == diary.KindStockDiary {
			entryType = diary.TypeStockDiary
		}
		segments, warns := diary.SplitMultiDay(content, year, file.RelPath)
		for _, w := range warns {
			report.warn(w)
		}
		if len(segments) == 0 {
			// Split failed; keep the file whole rather than losing it.
			report.warn(fmt.Sprintf("multi-day split produced no segments, storing %s whole", file.RelPath))
			d, ok := diary.ParseFilenameDate(filename, year)
			if !ok {
				d = date(year, 1, 1)
			}
			return []*diary.Entry{{
				Date:       d,
				Content:    content,
				Type:       entryType,
				FileSource: file.RelPath,
			}}, true
		}
		entries := make([]*diary.Entry, 0, len(segments))
		for _, seg := range segments {
			entries = append(entries, &diary.Entry{
				Date:       seg.Date,
				Content:    seg.Content,
				Type:       entryType,
				FileSource: file.RelPath,
			})
		}
		return entries, true

	default: // diary.KindNote
		d, ok := diary.ParseFilenameDate(filename, year)
		if !ok {
			d = date(year, 1, 1)
		}
		return []*diary.Entry{{
			Date:       d,
			Content:    content,
			Type:       diary.TypeNote,
			FileSource: file.RelPath,
		}}, true
	}
}

// buildRecord converts a domain entry into its storage row. Word counts for
// markdown files run over the extracted plain text, not the markup.
func (p *Pipeline) buildRecord(entry *diary.Entry) *storage.EntryRecord {
	text := entry.Content
	if filepath.Ext(entry.FileSource) == ".md" {
		text = diary.ExtractText([]byte(entry.Content))
	}
	return &storage.EntryRecord{
		Date:       entry.Date.Format("2006-01-02"),
		Year:       entry.Date.Year(),
		Month:      int(entry.Date.Month()),
		Day:        entry.Date.Day(),
		Content:    entry.Content,
		FileSource: entry.FileSource,
		EntryType:  string(entry.Type),
		WordCount:  diary.WordCount(text),
	}
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
