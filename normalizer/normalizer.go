package normalizer

import (
	"log/slog"
	"strings"
)

// Normalizer reduces raw email text to its canonical token form:
// lowercase, tokenized, alphabetic-only, stopword-free, lemmatized.
// The result is the classification input; reply generation never sees
// it.
type Normalizer struct {
	tokenizer  *Tokenizer
	stemmer    *Stemmer
	lemmatizer *Lemmatizer
	logger     *slog.Logger
}

func New(logger *slog.Logger) *Normalizer {
	return &Normalizer{
		tokenizer:  NewTokenizer(DefaultStopwords()),
		stemmer:    NewStemmer(),
		lemmatizer: NewLemmatizer(),
		logger:     logger,
	}
}

// Normalize runs the full pass. Empty input, or input whose tokens are
// all filtered out, yields an empty string.
func (n *Normalizer) Normalize(text string) string {
	tokens := n.tokenizer.Tokenize(text)
	if len(tokens) == 0 {
		return ""
	}

	// The stem pass runs over the filtered tokens but the output is
	// driven by the lemmatizer over the pre-stem token join.
	stems := n.stemmer.StemAll(tokens)
	n.logger.Debug("Stemmed token pass",
		slog.Int("tokens", len(tokens)),
		slog.Int("stems", len(stems)))

	lemmas := n.lemmatizer.Lemmatize(strings.Join(tokens, " "))
	return strings.Join(lemmas, " ")
}
