package classify

import "strings"

// foldRunes maps the accented Latin-1 letters seen in ledger labels to
// their plain form. Source sheets mix spellings ("salário" vs "salario"),
// so both sides of every keyword match go through Fold first.
var foldRunes = map[rune]rune{
	'á': 'a', 'à': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i',
	'ó': 'o', 'ò': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u',
	'ç': 'c', 'ñ': 'n',
}

// Fold lowercases s and strips diacritics.
func Fold(s string) string {
	return strings.Map(func(r rune) rune {
		if f, ok := foldRunes[r]; ok {
			return f
		}
		return r
	}, strings.ToLower(s))
}

// containsFolded reports whether s contains substr after folding both.
func containsFolded(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}

// matchesAny reports whether s contains any of the keywords after folding.
func matchesAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if containsFolded(s, kw) {
			return true
		}
	}
	return false
}
