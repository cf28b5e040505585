package diary

import (
	"strings"
	"unicode/utf8"
)

// WordCount counts the content units of a record deterministically: the rune
// count of the trimmed text. For the mostly-CJK archive this approximates
// characters written; it is not meant to match any external word counter,
// only to be stable across runs.
func WordCount(content string) int {
	return utf8.RuneCountInString(strings.TrimSpace(content))
}
