package diary

import (
	"testing"
	"time"
)

func TestParseFilenameDate(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		year     int
		want     time.Time
		wantOK   bool
	}{
		{
			name:     "exact MM_DD.txt",
			filename: "01_15.txt",
			year:     2020,
			want:     time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "single digit month and day",
			filename: "4_1.txt",
			year:     2021,
			want:     time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "date prefix with title",
			filename: "04_01 封城日记.txt",
			year:     2020,
			want:     time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "date prefix with underscore suffix",
			filename: "09_01_马来西亚日记 v1.txt",
			year:     2024,
			want:     time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "month out of range",
			filename: "13_01.txt",
			year:     2020,
			wantOK:   false,
		},
		{
			name:     "impossible calendar date",
			filename: "02_30.txt",
			year:     2020,
			wantOK:   false,
		},
		{
			name:     "feb 29 in leap year",
			filename: "02_29.txt",
			year:     2020,
			want:     time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "feb 29 in non-leap year",
			filename: "02_29.txt",
			year:     2021,
			wantOK:   false,
		},
		{
			name:     "not a dated filename",
			filename: "random.txt",
			year:     2020,
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFilenameDate(tt.filename, tt.year)
			if ok != tt.wantOK {
				t.Fatalf("ParseFilenameDate(%q, %d) ok = %v, want %v", tt.filename, tt.year, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseFilenameDate(%q, %d) = %v, want %v", tt.filename, tt.year, got, tt.want)
			}
		})
	}
}

func TestParseDateMarker(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		year     int
		want     time.Time
		wantRest string
		wantOK   bool
	}{
		{
			name:   "four digit form",
			line:   "0401",
			year:   2020,
			want:   time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "underscore form",
			line:   "1_1",
			year:   2020,
			want:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "localized form",
			line:   "1月15日",
			year:   2022,
			want:   time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "slash form",
			line:   "01/03",
			year:   2021,
			want:   time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "surrounding whitespace",
			line:   "  0401  ",
			year:   2020,
			want:   time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "four digits with invalid month",
			line:   "1345",
			year:   2020,
			wantOK: false,
		},
		{
			name:   "four digits with invalid day",
			line:   "0230",
			year:   2020,
			wantOK: false,
		},
		{
			name:     "marker with same-line text",
			line:     "0101 went out",
			year:     2021,
			want:     time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
			wantRest: "went out",
			wantOK:   true,
		},
		{
			name:   "year-number prefix is not a marker",
			line:   "2021 生活日记",
			year:   2021,
			wantOK: false,
		},
		{
			name:   "empty line",
			line:   "",
			year:   2020,
			wantOK: false,
		},
		{
			name:   "plain prose",
			line:   "今天天气不错",
			year:   2020,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest, ok := ParseDateMarker(tt.line, tt.year)
			if ok != tt.wantOK {
				t.Fatalf("ParseDateMarker(%q, %d) ok = %v, want %v", tt.line, tt.year, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDateMarker(%q, %d) = %v, want %v", tt.line, tt.year, got, tt.want)
			}
			if rest != tt.wantRest {
				t.Errorf("ParseDateMarker(%q, %d) rest = %q, want %q", tt.line, tt.year, rest, tt.wantRest)
			}
		})
	}
}

func TestLooksLikeDateMarker(t *testing.T) {
	// An invalid month still has marker shape; prose does not.
	if !LooksLikeDateMarker("1345") {
		t.Error("LooksLikeDateMarker(\"1345\") = false, want true")
	}
	if LooksLikeDateMarker("went out today") {
		t.Error("LooksLikeDateMarker(prose) = true, want false")
	}
}

func TestCountDateMarkers(t *testing.T) {
	content := "2021 生活日记\n0101\nwent out\n0103\nstayed home\n0230\n"
	// 0230 is marker-shaped but invalid, so only two count.
	if got := CountDateMarkers(content, 2021); got != 2 {
		t.Errorf("CountDateMarkers() = %d, want 2", got)
	}
}

func TestIsTitleLine(t *testing.T) {
	tests := []struct {
		line string
		year int
		want bool
	}{
		{"2025 生活日记", 2025, true},
		{"2024炒股日记", 2024, true},
		{"2023 日记", 2023, true},
		{"2025 生活日记", 2024, false},
		{"0101", 2025, false},
		{"今天去了公园", 2025, false},
	}

	for _, tt := range tests {
		if got := IsTitleLine(tt.line, tt.year); got != tt.want {
			t.Errorf("IsTitleLine(%q, %d) = %v, want %v", tt.line, tt.year, got, tt.want)
		}
	}
}
