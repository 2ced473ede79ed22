package core

import "testing"

func TestNormalizeSpacing(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "",
			want: "\n",
		},
		{
			name: "collapses blank runs and trims ends",
			in:   "\n\nintro\n\n\n\nbody\n\n\n",
			want: "intro\n\nbody\n",
		},
		{
			name: "pads headings",
			in:   "# Title\n## 27 Monday\n- 09:00 - a\n## 28 Tuesday",
			want: "# Title\n\n## 27 Monday\n\n- 09:00 - a\n\n## 28 Tuesday\n",
		},
		{
			name: "joins list items",
			in:   "- [ ] a\n\n  - [ ] b\n   \n- [x] c\n",
			want: "- [ ] a\n  - [ ] b\n- [x] c\n",
		},
		{
			name: "keeps paragraph spacing after list",
			in:   "- a\n\ntext\n",
			want: "- a\n\ntext\n",
		},
		{
			name: "leaves fenced code alone",
			in:   "text\n```\n\n\n# not a heading\n```\n",
			want: "text\n```\n\n\n# not a heading\n```\n",
		},
		{
			name: "leaves frontmatter alone",
			in:   "---\ntags: []\n\n\n---\n# Title\n",
			want: "---\ntags: []\n\n\n---\n\n# Title\n",
		},
		{
			name: "crlf input",
			in:   "# T\r\n\r\n\r\n- a\r\n",
			want: "# T\n\n- a\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSpacing(tt.in); got != tt.want {
				t.Errorf("NormalizeSpacing(%q) =\n%q\nwant\n%q", tt.in, got, tt.want)
			}
		})
	}
}
