package normalizer

import (
	"strings"
	"unicode"
)

// Tokenizer splits text into lowercase word tokens and filters them.
// Only tokens made entirely of letters survive: numeric and mixed
// tokens are dropped, as are stopwords.
type Tokenizer struct {
	stopwords map[string]struct{}
}

func NewTokenizer(stopwords []string) *Tokenizer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{stopwords: stops}
}

// Tokenize lowercases the text, splits it on whitespace and punctuation,
// and returns the surviving alphabetic non-stopword tokens in order.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		word := t.processToken(current.String())
		if word != "" {
			tokens = append(tokens, word)
		}
		current.Reset()
	}

	for _, r := range text {
		// Letters and digits stay inside a token so that mixed tokens
		// like "xyz123" arrive whole and can be rejected whole.
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

func (t *Tokenizer) processToken(token string) string {
	if !isAlphabetic(token) {
		return ""
	}
	if t.isStopword(token) {
		return ""
	}
	return token
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

func (t *Tokenizer) isStopword(word string) bool {
	_, ok := t.stopwords[word]
	return ok
}
