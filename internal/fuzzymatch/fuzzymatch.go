package fuzzymatch

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

type Match struct {
	Candidate string
	Score     float64
}

// Ratio возвращает нормированную похожесть двух строк [0,1]
// на основе расстояния Левенштейна, без учёта регистра.
func Ratio(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

// ExtractOne находит лучший вариант среди кандидатов.
// Возвращает nil, если кандидатов нет.
func ExtractOne(query string, candidates []string) *Match {
	var best *Match
	for _, cand := range candidates {
		score := Ratio(query, cand)
		if best == nil || score > best.Score {
			best = &Match{Candidate: cand, Score: score}
		}
	}
	return best
}

// ExtractWithin возвращает всех кандидатов, чей счёт не хуже лучшего
// более чем на tolerance. Используется для выявления неоднозначных совпадений.
func ExtractWithin(query string, candidates []string, tolerance float64) []Match {
	best := ExtractOne(query, candidates)
	if best == nil {
		return nil
	}
	var matches []Match
	for _, cand := range candidates {
		score := Ratio(query, cand)
		if best.Score-score <= tolerance {
			matches = append(matches, Match{Candidate: cand, Score: score})
		}
	}
	return matches
}
