package flow

import "testing"

func TestIsAffirmative(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"yes", true},
		{"Yes, confirm it", true},
		{"ok", true},
		{"sure, proceed", true},
		{"да", true},
		{"подтверждаю", true},
		{"no", false},
		{"cancel", false},
		{"нет, отмена", false},
		{"what is my balance", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isAffirmative(tt.query); got != tt.want {
			t.Errorf("isAffirmative(%q) = %v, ожидали %v", tt.query, got, tt.want)
		}
	}
}
