package categorize

import "strings"

// Ключевые слова для определения категории по описанию платежа.
var categoryRules = map[string][]string{
	"groceries":     {"walmart", "kroger", "safeway", "whole foods", "trader joe", "grocery", "supermarket"},
	"transport":     {"uber", "lyft", "taxi", "bus", "metro", "gas station", "shell", "exxon", "chevron"},
	"dining":        {"restaurant", "mcdonald", "starbucks", "pizza", "burger", "cafe", "coffee"},
	"entertainment": {"netflix", "spotify", "movie", "cinema", "theater", "game", "steam"},
	"shopping":      {"amazon", "target", "costco", "mall", "store", "retail"},
	"utilities":     {"electric", "gas", "water", "internet", "phone", "cable"},
	"healthcare":    {"hospital", "pharmacy", "doctor", "medical", "health", "dental"},
	"finance":       {"bank", "atm", "fee", "interest", "loan", "credit"},
	"travel":        {"hotel", "airline", "flight", "booking", "airbnb"},
	"education":     {"school", "university", "tuition", "books", "education"},
}

// Порядок обхода фиксирован, чтобы результат был детерминированным
// при пересечении ключевых слов ("gas" есть и в transport, и в utilities).
var categoryOrder = []string{
	"groceries", "transport", "dining", "entertainment", "shopping",
	"utilities", "healthcare", "finance", "travel", "education",
}

const DefaultCategory = "other"

// Categorize возвращает категорию по описанию платежа.
func Categorize(description string) string {
	if description == "" {
		return DefaultCategory
	}
	d := strings.ToLower(description)
	for _, cat := range categoryOrder {
		for _, kw := range categoryRules[cat] {
			if strings.Contains(d, kw) {
				return cat
			}
		}
	}
	return DefaultCategory
}

// Categories возвращает список известных категорий.
func Categories() []string {
	cats := make([]string, len(categoryOrder), len(categoryOrder)+1)
	copy(cats, categoryOrder)
	return append(cats, DefaultCategory)
}
