package diary

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Filename patterns for single-day files: "04_01.txt", "04_01 封城日记.txt",
// "09_01_马来西亚日记 v1.txt".
var (
	filenameExact  = regexp.MustCompile(`^(\d{1,2})_(\d{1,2})\.txt$`)
	filenameSpaced = regexp.MustCompile(`^(\d{1,2})_(\d{1,2})\s`)
	filenameSuffix = regexp.MustCompile(`^(\d{1,2})_(\d{1,2})_`)
)

// Embedded marker patterns: a line starting with "0401", "4_1", "4月1日" or
// "4/1", either alone or followed by that day's text.
var markerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{2})(\d{2})(?:\s+(.*))?$`),
	regexp.MustCompile(`^(\d{1,2})_(\d{1,2})(?:\s+(.*))?$`),
	regexp.MustCompile(`^(\d{1,2})月(\d{1,2})日(?:\s+(.*))?$`),
	regexp.MustCompile(`^(\d{1,2})/(\d{1,2})(?:\s+(.*))?$`),
}

// Title lines like "2025 生活日记" head a yearly file and carry no date.
var titleSuffixes = []string{"生活日记", "炒股日记", "日记"}

// ParseFilenameDate extracts a date from a single-day filename. The year is
// always taken from the enclosing folder, never from the file itself.
func ParseFilenameDate(filename string, year int) (time.Time, bool) {
	for _, re := range []*regexp.Regexp{filenameExact, filenameSpaced, filenameSuffix} {
		if m := re.FindStringSubmatch(filename); m != nil {
			if d, ok := makeDate(year, atoi(m[1]), atoi(m[2])); ok {
				return d, true
			}
		}
	}
	return time.Time{}, false
}

// ParseDateMarker parses an embedded date marker line. The marker token must
// start the line; text after it belongs to that day and is returned as rest.
// ok is false for lines that are not markers and for marker-shaped lines
// whose month/day do not resolve to a real calendar date in the given year.
func ParseDateMarker(line string, year int) (d time.Time, rest string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return time.Time{}, "", false
	}
	for _, re := range markerPatterns {
		if m := re.FindStringSubmatch(line); m != nil {
			d, ok := makeDate(year, atoi(m[1]), atoi(m[2]))
			if !ok {
				return time.Time{}, "", false
			}
			return d, strings.TrimSpace(m[3]), true
		}
	}
	return time.Time{}, "", false
}

// LooksLikeDateMarker reports whether a line has the shape of a date marker,
// regardless of whether it resolves to a valid date. The ingestion layer uses
// this to tell ambiguous markers apart from plain unparseable text.
func LooksLikeDateMarker(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	for _, re := range markerPatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// CountDateMarkers counts lines holding a valid embedded date marker.
func CountDateMarkers(content string, year int) int {
	count := 0
	for _, line := range strings.Split(content, "\n") {
		if _, _, ok := ParseDateMarker(line, year); ok {
			count++
		}
	}
	return count
}

// IsTitleLine reports whether a line is a yearly title heading such as
// "2024 炒股日记".
func IsTitleLine(line string, year int) bool {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), strconv.Itoa(year))
	if !ok {
		return false
	}
	rest = strings.TrimSpace(rest)
	for _, s := range titleSuffixes {
		if strings.HasPrefix(rest, s) {
			return true
		}
	}
	return false
}

// makeDate validates month and day against the real calendar. time.Date
// normalizes out-of-range values (Feb 30 becomes Mar 2), so reject any
// round-trip drift instead of guessing.
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
