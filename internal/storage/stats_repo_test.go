package storage

import (
	"context"
	"testing"
)

func TestStatsRepo_RebuildAndYearly(t *testing.T) {
	db := newTestDB(t)
	entries := NewEntryRepo(db)
	stats := NewStatsRepo(db)
	ctx := context.Background()

	seed := []*EntryRecord{
		{Date: "2020-01-15", Year: 2020, Month: 1, Day: 15, Content: "aaaa", FileSource: "2020/01_15.txt", EntryType: "single_day", WordCount: 4},
		{Date: "2020-06-01", Year: 2020, Month: 6, Day: 1, Content: "bbbbbb", FileSource: "2020/06_01.txt", EntryType: "single_day", WordCount: 6},
		{Date: "2021-02-02", Year: 2021, Month: 2, Day: 2, Content: "cc", FileSource: "2021/notes.txt", EntryType: "multi_day", WordCount: 2},
	}
	for _, e := range seed {
		if _, err := entries.Upsert(ctx, e); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	if err := stats.Rebuild(ctx); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	yearly, err := stats.Yearly(ctx)
	if err != nil {
		t.Fatalf("Yearly() error = %v", err)
	}
	if len(yearly) != 2 {
		t.Fatalf("Yearly() returned %d years, want 2", len(yearly))
	}

	y2020 := yearly[0]
	if y2020.Year != 2020 || y2020.TotalEntries != 2 || y2020.TotalWords != 10 {
		t.Errorf("2020 stats = %+v", y2020)
	}
	if y2020.FirstEntry != "2020-01-15" || y2020.LastEntry != "2020-06-01" {
		t.Errorf("2020 date range = %s..%s", y2020.FirstEntry, y2020.LastEntry)
	}

	// Rebuild again; counts must not double.
	if err := stats.Rebuild(ctx); err != nil {
		t.Fatalf("second Rebuild() error = %v", err)
	}
	yearly, err = stats.Yearly(ctx)
	if err != nil {
		t.Fatalf("Yearly() error = %v", err)
	}
	if len(yearly) != 2 || yearly[0].TotalEntries != 2 {
		t.Errorf("stats drifted after second rebuild: %+v", yearly)
	}
}

func TestStatsRepo_ByType(t *testing.T) {
	db := newTestDB(t)
	entries := NewEntryRepo(db)
	stats := NewStatsRepo(db)
	ctx := context.Background()

	seed := []*EntryRecord{
		{Date: "2021-01-01", Year: 2021, Month: 1, Day: 1, Content: "a", FileSource: "f", EntryType: "multi_day", WordCount: 1},
		{Date: "2021-01-02", Year: 2021, Month: 1, Day: 2, Content: "b", FileSource: "f", EntryType: "multi_day", WordCount: 1},
		{Date: "2021-01-03", Year: 2021, Month: 1, Day: 3, Content: "c", FileSource: "g", EntryType: "note", WordCount: 1},
	}
	for _, e := range seed {
		if _, err := entries.Upsert(ctx, e); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	byType, err := stats.ByType(ctx)
	if err != nil {
		t.Fatalf("ByType() error = %v", err)
	}
	if len(byType) != 2 {
		t.Fatalf("ByType() returned %d rows, want 2", len(byType))
	}
	if byType[0].EntryType != "multi_day" || byType[0].Entries != 2 {
		t.Errorf("most frequent type = %+v, want multi_day x2", byType[0])
	}
}
