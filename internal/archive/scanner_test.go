package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
}

func TestScanner_Scan(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "2020", "01_15.txt"))
	writeFile(t, filepath.Join(root, "2020", "index.md"))
	writeFile(t, filepath.Join(root, "2021", "notes.txt"))

	// Everything below must be skipped.
	writeFile(t, filepath.Join(root, "2020", "README.md"))
	writeFile(t, filepath.Join(root, "2020", ".gitignore"))
	writeFile(t, filepath.Join(root, "2020", "photo.jpg"))
	writeFile(t, filepath.Join(root, "2021", "anime_record"))
	writeFile(t, filepath.Join(root, "merged_diaries", "all.txt"))
	writeFile(t, filepath.Join(root, "not-a-year", "diary.txt"))
	if err := os.MkdirAll(filepath.Join(root, "2021", "subdir"), 0755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}

	files, err := NewScanner(root).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	want := map[string]int{
		"2020/01_15.txt": 2020,
		"2020/index.md":  2020,
		"2021/notes.txt": 2021,
	}
	if len(files) != len(want) {
		t.Fatalf("Scan() found %d files, want %d: %+v", len(files), len(want), files)
	}
	for _, f := range files {
		year, ok := want[f.RelPath]
		if !ok {
			t.Errorf("unexpected file: %s", f.RelPath)
			continue
		}
		if f.Year != year {
			t.Errorf("file %s year = %d, want %d", f.RelPath, f.Year, year)
		}
		if f.AbsPath == "" {
			t.Errorf("file %s has empty AbsPath", f.RelPath)
		}
	}
}

func TestScanner_ScanMissingRoot(t *testing.T) {
	_, err := NewScanner("/nonexistent/archive").Scan(context.Background())
	if err == nil {
		t.Error("Scan() on missing root succeeded, want error")
	}
}

func TestScanner_ScanCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "2020", "01_15.txt"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewScanner(root).Scan(ctx); err != context.Canceled {
		t.Errorf("Scan() error = %v, want context.Canceled", err)
	}
}
