package model

import "testing"

func TestStripTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "soft cotton tee", "soft cotton tee"},
		{"simple paragraph", "<p>soft cotton tee</p>", "soft cotton tee"},
		{"nested markup", "<div><strong>Soft</strong> cotton</div>", "Soft cotton"},
		{"entities decoded", "<p>fit &amp; finish</p>", "fit & finish"},
		{"empty", "", ""},
		{"unclosed tag degrades", "<p>half open", "half open"},
		{"only tags", "<br/><hr/>", ""},
		{"surrounding whitespace", "  <p> padded </p>  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripTags(tt.input)
			if got != tt.want {
				t.Errorf("StripTags(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
