package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ScannedFile is one diary file found under a year folder.
type ScannedFile struct {
	Year    int    // Parsed from the enclosing folder name
	RelPath string // Relative path from the archive root (e.g. "2020/01_15.txt")
	AbsPath string // Absolute file path
}

// Directory and file names inside the archive that are not diary content.
var excludedNames = map[string]struct{}{
	"anime_record":   {},
	"etc":            {},
	"fap":            {},
	"merged_diaries": {},
	"database_tools": {},
	"README.md":      {},
}

// Scanner enumerates diary files in an archive laid out as one folder per
// year with files directly inside.
type Scanner struct {
	root string
}

// NewScanner creates a scanner over the given archive root.
func NewScanner(root string) *Scanner {
	return &Scanner{root: root}
}

// Scan walks the year folders and returns all candidate diary files in
// deterministic (lexical) order. Only .txt and .md files are considered;
// excluded names and dot files are skipped.
func (s *Scanner) Scan(ctx context.Context) ([]ScannedFile, error) {
	dirs, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive root %s: %w", s.root, err)
	}

	var files []ScannedFile
	for _, dir := range dirs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if !dir.IsDir() {
			continue
		}
		year, ok := parseYearFolder(dir.Name())
		if !ok {
			continue
		}

		yearPath := filepath.Join(s.root, dir.Name())
		entries, err := os.ReadDir(yearPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read year folder %s: %w", yearPath, err)
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if _, excluded := excludedNames[name]; excluded {
				continue
			}
			if strings.HasPrefix(name, ".") {
				continue
			}
			ext := filepath.Ext(name)
			if ext != ".txt" && ext != ".md" {
				continue
			}

			files = append(files, ScannedFile{
				Year:    year,
				RelPath: filepath.ToSlash(filepath.Join(dir.Name(), name)),
				AbsPath: filepath.Join(yearPath, name),
			})
		}
	}

	return files, nil
}

// parseYearFolder accepts four-digit folder names in a plausible range.
func parseYearFolder(name string) (int, bool) {
	if len(name) != 4 {
		return 0, false
	}
	year, err := strconv.Atoi(name)
	if err != nil || year < 1900 || year > 2100 {
		return 0, false
	}
	return year, true
}
