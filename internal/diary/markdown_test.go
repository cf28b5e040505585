package diary

import (
	"strings"
	"testing"
)

func TestExtractHeading(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "level 1 heading",
			content: "# 旅行感想\n\n正文内容",
			want:    "旅行感想",
		},
		{
			name:    "level 2 when no level 1",
			content: "## 二级标题\n\n正文",
			want:    "二级标题",
		},
		{
			name:    "level 1 preferred over earlier level 2",
			content: "## 小标题\n\n# 大标题\n",
			want:    "大标题",
		},
		{
			name:    "no headings",
			content: "就是普通的一段话",
			want:    "",
		},
		{
			name:    "empty",
			content: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractHeading([]byte(tt.content)); got != tt.want {
				t.Errorf("ExtractHeading() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractText(t *testing.T) {
	content := "# 标题\n\n正文**加粗**内容\n\n- 列表一\n- 列表二\n"
	got := ExtractText([]byte(content))

	for _, want := range []string{"标题", "正文", "加粗", "内容", "列表一", "列表二"} {
		if !strings.Contains(got, want) {
			t.Errorf("ExtractText() = %q, missing %q", got, want)
		}
	}
	for _, markup := range []string{"#", "*", "-"} {
		if strings.Contains(got, markup) {
			t.Errorf("ExtractText() = %q, still contains markup %q", got, markup)
		}
	}
}
