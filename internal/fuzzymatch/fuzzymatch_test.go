package fuzzymatch_test

import (
	"testing"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/fuzzymatch"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"alice", "alice", 1.0},
		{"Alice", "alice", 1.0},
		{"  alice ", "alice", 1.0},
		{"", "", 1.0},
		{"", "alice", 0},
	}
	for _, tt := range tests {
		if got := fuzzymatch.Ratio(tt.a, tt.b); got != tt.want {
			t.Errorf("Ratio(%q, %q) = %f, ожидали %f", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRatioCloseNames(t *testing.T) {
	// Одна замена в пятибуквенном имени: 1 - 1/5 = 0.8
	if got := fuzzymatch.Ratio("alice", "alise"); got != 0.8 {
		t.Errorf("Ratio(alice, alise) = %f, ожидали 0.8", got)
	}
	if got := fuzzymatch.Ratio("bob", "alexander"); got > 0.3 {
		t.Errorf("непохожие имена получили счёт %f", got)
	}
}

func TestExtractOne(t *testing.T) {
	candidates := []string{"Alice Smith", "Bob Jones", "Charlie Brown"}

	best := fuzzymatch.ExtractOne("alice smith", candidates)
	if best == nil {
		t.Fatal("ожидали совпадение")
	}
	if best.Candidate != "Alice Smith" || best.Score != 1.0 {
		t.Errorf("получили %+v", best)
	}

	if got := fuzzymatch.ExtractOne("anyone", nil); got != nil {
		t.Errorf("для пустого списка ожидали nil, получили %+v", got)
	}
}

func TestExtractWithinAmbiguous(t *testing.T) {
	// Два кандидата на расстоянии одной буквы от запроса
	candidates := []string{"Anna", "Anne", "Viktor"}

	matches := fuzzymatch.ExtractWithin("Ann", candidates, 0.05)
	if len(matches) != 2 {
		t.Fatalf("ожидали 2 неоднозначных совпадения, получили %d: %v", len(matches), matches)
	}
}

func TestExtractWithinSingle(t *testing.T) {
	candidates := []string{"Alice", "Viktor"}

	matches := fuzzymatch.ExtractWithin("Alice", candidates, 0.05)
	if len(matches) != 1 || matches[0].Candidate != "Alice" {
		t.Errorf("ожидали единственное совпадение Alice, получили %v", matches)
	}
}
