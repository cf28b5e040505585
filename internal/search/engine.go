package search

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"diary-ai/internal/storage"
)

// Query is a search request over the diary store. Text is free-form; the
// engine extracts keywords and an optional year range from it.
type Query struct {
	Text     string
	YearFrom int
	YearTo   int
	Month    int
	Types    []string
	Limit    int
}

// Result is one matching entry with the fields a caller presents.
type Result struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	EntryType string `json:"entry_type"`
	Content   string `json:"content"`
	Summary   string `json:"summary,omitempty"`
	WordCount int    `json:"word_count"`
	Source    string `json:"file_source"`
}

// Engine turns free-form queries into full-text searches against the store.
type Engine struct {
	entries storage.EntryStore
	now     func() time.Time
}

// NewEngine creates a search engine over the given store.
func NewEngine(entries storage.EntryStore) *Engine {
	return &Engine{entries: entries, now: time.Now}
}

// Search runs one query. Year bounds given explicitly in the query win over
// bounds extracted from the text.
func (e *Engine) Search(ctx context.Context, q Query) ([]*Result, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return nil, fmt.Errorf("empty query")
	}

	yearFrom, yearTo := q.YearFrom, q.YearTo
	if yearFrom == 0 && yearTo == 0 {
		if from, to, ok := ExtractYearRange(text, e.now()); ok {
			yearFrom, yearTo = from, to
		}
	}

	match := BuildMatchExpr(text)
	records, err := e.entries.Search(ctx, match, storage.SearchFilters{
		YearFrom:   yearFrom,
		YearTo:     yearTo,
		Month:      q.Month,
		EntryTypes: q.Types,
		Limit:      q.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search entries: %w", err)
	}

	results := make([]*Result, 0, len(records))
	for _, rec := range records {
		results = append(results, &Result{
			ID:        rec.ID,
			Date:      rec.Date,
			EntryType: rec.EntryType,
			Content:   rec.Content,
			Summary:   rec.Summary,
			WordCount: rec.WordCount,
			Source:    rec.FileSource,
		})
	}
	return results, nil
}

// maxKeywords caps how many extracted terms go into the match expression.
const maxKeywords = 5

var stopwords = map[string]struct{}{
	// Chinese function words and query filler.
	"的": {}, "了": {}, "是": {}, "我": {}, "在": {}, "有": {}, "和": {},
	"就": {}, "都": {}, "也": {}, "很": {}, "到": {}, "要": {}, "去": {},
	"年": {}, "月": {}, "日": {},
	"什么": {}, "时候": {}, "关于": {}, "哪些": {}, "怎么": {}, "为什么": {},
	"日记": {}, "写过": {}, "记录": {}, "内容": {},
	"今年": {}, "去年": {}, "前年": {},
	// English equivalents.
	"the": {}, "a": {}, "an": {}, "of": {}, "in": {}, "on": {}, "at": {},
	"to": {}, "and": {}, "or": {}, "is": {}, "was": {}, "i": {}, "my": {},
	"what": {}, "when": {}, "about": {}, "did": {}, "diary": {},
}

// Longest stopword, in runes. Bounds the lookahead when segmenting CJK runs.
const maxStopwordLen = 3

// BuildMatchExpr extracts keywords from free-form text and joins them into an
// FTS5 MATCH expression. Terms are quoted so punctuation cannot break the
// query syntax. When nothing survives filtering, the whole text is used as a
// single quoted term.
func BuildMatchExpr(text string) string {
	keywords := ExtractKeywords(text)
	if len(keywords) == 0 {
		keywords = []string{strings.TrimSpace(text)}
	}
	quoted := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		quoted = append(quoted, `"`+strings.ReplaceAll(kw, `"`, ``)+`"`)
	}
	return strings.Join(quoted, " OR ")
}

var yearToken = regexp.MustCompile(`^\d{4}年?$`)

// ExtractKeywords splits text into terms, drops stopwords, year tokens and
// single Latin letters, and caps the result.
func ExtractKeywords(text string) []string {
	tokens := splitTokens(text)

	var keywords []string
	seen := make(map[string]struct{})
	for _, tok := range tokens {
		lower := strings.ToLower(tok)
		if _, stop := stopwords[lower]; stop {
			continue
		}
		if yearToken.MatchString(tok) {
			continue
		}
		if len(tok) == 1 && tok[0] < 0x80 {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		keywords = append(keywords, tok)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

// splitTokens breaks text on whitespace and punctuation. Runs of Latin
// letters or digits become one token each; runs of CJK characters are further
// segmented on embedded stopwords, since Chinese carries no word boundaries.
func splitTokens(text string) []string {
	var tokens []string
	var current []rune
	var currentCJK bool

	flush := func() {
		if len(current) == 0 {
			return
		}
		if currentCJK {
			tokens = append(tokens, segmentCJK(current)...)
		} else {
			tokens = append(tokens, string(current))
		}
		current = nil
	}

	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			if !currentCJK {
				flush()
			}
			current = append(current, r)
			currentCJK = true
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if currentCJK {
				flush()
			}
			current = append(current, r)
			currentCJK = false
		default:
			flush()
		}
	}
	flush()
	return tokens
}

// segmentCJK splits a run of CJK characters at stopword boundaries, longest
// stopword first, dropping the stopwords themselves.
func segmentCJK(run []rune) []string {
	var tokens []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, string(current))
			current = nil
		}
	}

	for i := 0; i < len(run); {
		matched := 0
		for l := maxStopwordLen; l >= 1; l-- {
			if i+l > len(run) {
				continue
			}
			if _, stop := stopwords[string(run[i:i+l])]; stop {
				matched = l
				break
			}
		}
		if matched > 0 {
			flush()
			i += matched
			continue
		}
		current = append(current, run[i])
		i++
	}
	flush()
	return tokens
}

var (
	yearRangeRe  = regexp.MustCompile(`(\d{4})\s*(?:-|—|~|到|至)\s*(\d{4})`)
	singleYearRe = regexp.MustCompile(`(\d{4})\s*年?`)
)

// ExtractYearRange finds a year constraint in free text: an explicit range
// ("2021-2023", "2021到2023"), a single year ("2023年"), or a relative word
// (今年, 去年, 前年) resolved against now.
func ExtractYearRange(text string, now time.Time) (from, to int, ok bool) {
	if m := yearRangeRe.FindStringSubmatch(text); m != nil {
		from, _ = strconv.Atoi(m[1])
		to, _ = strconv.Atoi(m[2])
		if from > to {
			from, to = to, from
		}
		return from, to, true
	}
	if m := singleYearRe.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		if year >= 1900 && year <= 2100 {
			return year, year, true
		}
	}
	switch {
	case strings.Contains(text, "前年"):
		y := now.Year() - 2
		return y, y, true
	case strings.Contains(text, "去年"):
		y := now.Year() - 1
		return y, y, true
	case strings.Contains(text, "今年"):
		y := now.Year()
		return y, y, true
	}
	return 0, 0, false
}
