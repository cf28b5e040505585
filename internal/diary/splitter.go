package diary

import (
	"fmt"
	"strings"
	"time"
)

// Segment is one contiguous per-date slice of a multi-day file.
type Segment struct {
	Date    time.Time
	Content string
}

// SplitMultiDay partitions multi-day raw text into per-date segments. Each
// segment runs from its marker line (exclusive) to the line before the next
// marker. Segments left empty after trimming are dropped. Segment order
// follows marker order in the source; no re-sorting by date value.
//
// Returned warnings flag suspected typos: month jumps of more than two months
// between consecutive markers (December wrapping into the new year is
// allowed), and marker-shaped lines that do not resolve to a real date.
func SplitMultiDay(content string, year int, fileSource string) ([]Segment, []string) {
	var (
		segments []Segment
		warnings []string
		curDate  time.Time
		curLines []string
		haveDate bool
	)
	prevMonth := 0

	flush := func() {
		if !haveDate {
			return
		}
		// Drop trailing blank lines kept for paragraph separation
		for len(curLines) > 0 && curLines[len(curLines)-1] == "" {
			curLines = curLines[:len(curLines)-1]
		}
		text := strings.TrimSpace(strings.Join(curLines, "\n"))
		if text != "" {
			segments = append(segments, Segment{Date: curDate, Content: text})
		}
	}

	for _, line := range strings.Split(content, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			// Preserve blank lines inside a segment as paragraph breaks
			if haveDate && len(curLines) > 0 {
				curLines = append(curLines, "")
			}
			continue
		}

		if IsTitleLine(stripped, year) {
			continue
		}

		if d, rest, ok := ParseDateMarker(stripped, year); ok {
			flush()
			if prevMonth != 0 && int(d.Month()) != prevMonth {
				jump := int(d.Month()) - prevMonth
				if jump < 0 {
					jump = -jump
				}
				if jump > 2 && !(prevMonth == 12 && int(d.Month()) <= 2) {
					warnings = append(warnings, fmt.Sprintf(
						"date jump in %s: marker %02d/%02d follows month %d, possible typo",
						fileSource, int(d.Month()), d.Day(), prevMonth))
				}
			}
			prevMonth = int(d.Month())
			curDate = d
			curLines = nil
			haveDate = true
			// Text on the marker line itself belongs to that day.
			if rest != "" {
				curLines = append(curLines, rest)
			}
			continue
		}

		if haveDate && LooksLikeDateMarker(stripped) {
			warnings = append(warnings, fmt.Sprintf(
				"ambiguous date marker in %s: %q kept as content", fileSource, stripped))
		}
		curLines = append(curLines, strings.TrimRight(line, " \t\r"))
	}
	flush()

	return segments, warnings
}
