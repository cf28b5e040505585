package diary

import (
	"path/filepath"
	"strings"
)

// FileKind is the structural hypothesis for an archive file: how its content
// maps onto dated records.
type FileKind int

const (
	// KindUnparseable means neither filename nor content yields a date.
	KindUnparseable FileKind = iota
	// KindAmbiguous means the only date-like tokens cannot be resolved.
	KindAmbiguous
	KindSingleDay
	KindMultiDay
	KindStockDiary
	KindRetrospective
	KindSummary
	KindNote
)

// String returns the skip/record label for the kind.
func (k FileKind) String() string {
	switch k {
	case KindSingleDay:
		return "single_day"
	case KindMultiDay:
		return "multi_day"
	case KindStockDiary:
		return "stock_diary"
	case KindRetrospective:
		return "retrospective"
	case KindSummary:
		return "summary"
	case KindNote:
		return "note"
	case KindAmbiguous:
		return "ambiguous_date_marker"
	default:
		return "unparseable"
	}
}

// Filenames carrying any of these are miscellaneous notes, not daily entries.
var noteKeywords = []string{
	"线下活动", "漫展", "名单", "感想", "规划", "目标",
	"总结", "经验", "简史", "复诊", "帖子", "三角",
	"叫魂", "record",
}

var summaryKeywords = []string{"semester", "term", "vaction"}

// Classify assigns exactly one kind to a file from its name and content.
// Precedence, highest first: path conventions (index.md, 股票, note and
// summary keywords), then the filename date pattern combined with embedded
// marker counting, then embedded markers alone, then a markdown heading
// matching a note keyword. Classification is total: every file gets exactly
// one kind, with KindUnparseable/KindAmbiguous surfacing as skips upstream.
func Classify(filename string, year int, content string) FileKind {
	if filename == "index.md" {
		return KindRetrospective
	}
	if strings.Contains(filename, "股票") {
		return KindStockDiary
	}
	for _, kw := range noteKeywords {
		if strings.Contains(filename, kw) {
			return KindNote
		}
	}
	lower := strings.ToLower(filename)
	for _, kw := range summaryKeywords {
		if strings.Contains(lower, kw) {
			return KindSummary
		}
	}

	markers := CountDateMarkers(content, year)
	if _, ok := ParseFilenameDate(filename, year); ok {
		// A dated filename still holds many days when the content carries
		// two or more markers of its own.
		if markers >= 2 {
			return KindMultiDay
		}
		return KindSingleDay
	}

	if markers >= 1 {
		return KindMultiDay
	}

	// Markdown notes without a dated name can still identify themselves
	// through their top heading.
	if filepath.Ext(filename) == ".md" {
		heading := ExtractHeading([]byte(content))
		for _, kw := range noteKeywords {
			if strings.Contains(heading, kw) {
				return KindNote
			}
		}
	}

	if hasMarkerShapedLine(content) {
		return KindAmbiguous
	}
	return KindUnparseable
}

// hasMarkerShapedLine reports whether any line looks like a date marker even
// though none parsed as one.
func hasMarkerShapedLine(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		if LooksLikeDateMarker(line) {
			return true
		}
	}
	return false
}
