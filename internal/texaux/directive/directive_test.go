package directive

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		line       string
		wantKind   Kind
		wantOffset int
	}{
		{`\bibcite{foo}{1}`, Bibcite, 8},
		{`\newlabel{sec:intro}{{1}{1}{}{section.1}{}}`, Newlabel, 9},
		{`\relax`, None, 0},
		{`\@writefile{toc}{}`, None, 0},
		{``, None, 0},
		{` \newlabel{x}{y}`, None, 0},
		{`\newlabel`, Newlabel, 9},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			kind, offset := Match(tt.line)
			if kind != tt.wantKind {
				t.Errorf("Match(%q) kind = %v, want %v", tt.line, kind, tt.wantKind)
			}
			if offset != tt.wantOffset {
				t.Errorf("Match(%q) offset = %d, want %d", tt.line, offset, tt.wantOffset)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind       Kind
		wantName   string
		wantPrefix string
	}{
		{None, "none", ""},
		{Bibcite, "bibcite", `\bibcite`},
		{Newlabel, "newlabel", `\newlabel`},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.wantName {
			t.Errorf("String() = %q, want %q", got, tt.wantName)
		}
		if got := tt.kind.Prefix(); got != tt.wantPrefix {
			t.Errorf("Prefix() = %q, want %q", got, tt.wantPrefix)
		}
	}
}
