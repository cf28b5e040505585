package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"diary-ai/internal/llm"
	"diary-ai/internal/storage"
)

// Content longer than headRunes+tailRunes is truncated to its head and tail
// before being sent to the model, to keep prompts inside the context window.
const (
	headRunes = 1500
	tailRunes = 500

	// Entries at or below this length are stored as their own summary
	// without a model call.
	passthroughRunes = 20

	maxSummaryTokens = 200
	temperature      = 0.3
)

// Backfiller generates summaries for entries that do not have one yet.
type Backfiller struct {
	entries storage.EntryStore
	chat    llm.Chatter
	logger  *slog.Logger
}

// NewBackfiller creates a summarizer over the given store and chat client.
func NewBackfiller(entries storage.EntryStore, chat llm.Chatter) *Backfiller {
	return &Backfiller{
		entries: entries,
		chat:    chat,
		logger:  slog.Default(),
	}
}

// Report is the outcome of one backfill pass.
type Report struct {
	Processed int `json:"processed"`
	Written   int `json:"written"`
	Stale     int `json:"stale"`
	Failed    int `json:"failed"`
}

// BackfillAll summarizes up to limit entries missing a summary (limit <= 0
// applies the store's default batch size). Individual failures are counted
// and logged, not fatal. A write
// rejected because the entry's content changed mid-pass counts as stale.
func (b *Backfiller) BackfillAll(ctx context.Context, limit int) (*Report, error) {
	pending, err := b.entries.ListMissingSummary(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries missing summaries: %w", err)
	}

	report := &Report{}
	for _, rec := range pending {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		report.Processed++
		summary, err := b.summarize(ctx, rec)
		if err != nil {
			report.Failed++
			b.logger.ErrorContext(ctx, "failed to summarize entry",
				"id", rec.ID, "date", rec.Date, "error", err)
			continue
		}

		err = b.entries.SetSummary(ctx, rec.ID, summary, storage.Fingerprint(rec.Content))
		switch {
		case errors.Is(err, storage.ErrStale):
			// Content was re-ingested after we read it; the next pass will
			// pick the entry up again.
			report.Stale++
		case err != nil:
			report.Failed++
			b.logger.ErrorContext(ctx, "failed to store summary",
				"id", rec.ID, "date", rec.Date, "error", err)
		default:
			report.Written++
		}
	}

	b.logger.InfoContext(ctx, "summary backfill completed",
		"processed", report.Processed,
		"written", report.Written,
		"stale", report.Stale,
		"failed", report.Failed)
	return report, nil
}

func (b *Backfiller) summarize(ctx context.Context, rec *storage.EntryRecord) (string, error) {
	content := strings.TrimSpace(rec.Content)
	runes := []rune(content)
	if len(runes) <= passthroughRunes {
		return content, nil
	}

	reply, err := b.chat.ChatWithMessages(ctx, []llm.Message{
		{Role: "user", Content: buildPrompt(rec.EntryType, truncate(runes))},
	}, llm.ChatParams{
		MaxTokens:   maxSummaryTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	summary := strings.TrimSpace(reply)
	if summary == "" {
		return "", fmt.Errorf("model returned an empty summary")
	}
	return summary, nil
}

// truncate keeps the head and tail of long content with an elision marker in
// between.
func truncate(runes []rune) string {
	if len(runes) <= headRunes+tailRunes {
		return string(runes)
	}
	return string(runes[:headRunes]) + "\n...(中间省略)...\n" + string(runes[len(runes)-tailRunes:])
}

// buildPrompt picks wording by entry type: notes get a short multi-sentence
// treatment, everything else a single sentence.
func buildPrompt(entryType, content string) string {
	switch entryType {
	case "note":
		return fmt.Sprintf("用2-3句话概括下面这篇笔记的主题和要点,直接输出概括,不要任何前缀:\n\n%s", content)
	case "stock_diary":
		return fmt.Sprintf("用一句话概括下面这篇炒股日记的主要操作和判断,直接输出概括,不要任何前缀:\n\n%s", content)
	case "retrospective", "summary":
		return fmt.Sprintf("用一句话概括下面这篇回顾的主要内容,直接输出概括,不要任何前缀:\n\n%s", content)
	default:
		return fmt.Sprintf("用一句话概括下面这篇日记的主要事件,直接输出概括,不要任何前缀:\n\n%s", content)
	}
}
