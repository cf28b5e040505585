package ingest

import "time"

// SkipReason says why a file produced no records.
type SkipReason string

const (
	// ReasonUnparseable marks files whose name and content yield no date.
	ReasonUnparseable SkipReason = "unparseable_file"
	// ReasonAmbiguousDate marks files whose only date-like tokens cannot be
	// resolved to real dates.
	ReasonAmbiguousDate SkipReason = "ambiguous_date_marker"
	// ReasonEmptyFile marks files with no content after trimming.
	ReasonEmptyFile SkipReason = "empty_file"
	// ReasonReadFailure marks files that could not be read.
	ReasonReadFailure SkipReason = "read_failure"
	// ReasonStoreWrite marks records lost to a persistence error. The run
	// continues; already committed records stay valid.
	ReasonStoreWrite SkipReason = "store_write_failure"
)

// SkippedFile is one file (or record) excluded from a run, with its reason.
type SkippedFile struct {
	Path   string     `json:"path"`
	Reason SkipReason `json:"reason"`
	Detail string     `json:"detail,omitempty"`
}

// Report is the run-level outcome of one ingestion pass.
type Report struct {
	RunID      string        `json:"run_id"`
	Files      int           `json:"files"`
	Inserted   int           `json:"inserted"`
	Updated    int           `json:"updated"`
	Unchanged  int           `json:"unchanged"`
	Skipped    []SkippedFile `json:"skipped,omitempty"`
	Warnings   []string      `json:"warnings,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
}

func (r *Report) skip(path string, reason SkipReason, detail string) {
	r.Skipped = append(r.Skipped, SkippedFile{Path: path, Reason: reason, Detail: detail})
}

func (r *Report) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
