package diary

import "time"

// EntryType classifies a record's provenance and content category.
type EntryType string

const (
	TypeSingleDay     EntryType = "single_day"
	TypeMultiDay      EntryType = "multi_day"
	TypeStockDiary    EntryType = "stock_diary"
	TypeRetrospective EntryType = "retrospective"
	TypeSummary       EntryType = "summary"
	TypeNote          EntryType = "note"
)

// Entry is one calendar day's record extracted from an archive file,
// before it is persisted.
type Entry struct {
	Date       time.Time
	Content    string
	Type       EntryType
	FileSource string
}
