package scorers

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// folder performs Unicode-correct case folding for token comparison.
// strings.ToLower is insufficient for international text.
var folder = cases.Fold()

// stopwords are high-frequency English words excluded from text
// tokenization. Skill tokens are never filtered through this list; it
// applies only to free-text tokenization for TF-IDF.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {},
	"or": {}, "that": {}, "the": {}, "to": {}, "was": {}, "were": {},
	"will": {}, "with": {}, "you": {}, "your": {}, "we": {}, "our": {},
	"this": {}, "their": {}, "they": {},
}

// NormalizeToken canonicalizes a skill token for comparison: trims
// surrounding whitespace, case-folds, and collapses internal runs of
// whitespace to single spaces. Multi-word tokens such as "machine
// learning" survive as single tokens.
func NormalizeToken(token string) string {
	return strings.Join(strings.Fields(folder.String(token)), " ")
}

// NormalizeTokens normalizes a token list, dropping entries that
// normalize to empty and deduplicating while preserving first-seen
// order. Order preservation matters because gap reports must list
// missing skills in role-specification order.
func NormalizeTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		n := NormalizeToken(t)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Tokenize splits free text into normalized word tokens for TF-IDF
// vectorization. Words are runs of letters, digits, '+' and '#' so that
// tokens like "c++" and "c#" survive; stopwords and single-character
// alphabetic tokens are dropped.
func Tokenize(text string) []string {
	folded := folder.String(text)
	words := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})

	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := stopwords[w]; stop {
			continue
		}
		if len(w) == 1 && unicode.IsLetter(rune(w[0])) {
			continue
		}
		out = append(out, stem(w))
	}
	return out
}

// stem strips a few common English suffixes so that close word forms
// ("engineering"/"engineer", "databases"/"database") collapse to one
// term. It is intentionally lighter than a full Porter stemmer; the
// fuzzy matcher absorbs the remaining variation.
func stem(word string) string {
	if len(word) <= 4 {
		return word
	}
	for _, suffix := range []string{"ing", "ies", "ed", "s"} {
		if strings.HasSuffix(word, suffix) && len(word)-len(suffix) >= 3 {
			trimmed := word[:len(word)-len(suffix)]
			if suffix == "ies" {
				return trimmed + "y"
			}
			return trimmed
		}
	}
	return word
}

// TokenSet builds a membership set from normalized tokens.
func TokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[NormalizeToken(t)] = struct{}{}
	}
	return set
}
