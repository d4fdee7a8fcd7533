package normalizer

import (
	"strings"
	"unicode/utf8"
)

// Stemmer is a rule-based Portuguese suffix stripper following the RSLP
// step order: plural, feminine, adverb, augmentative, noun, verb, and a
// final themed-vowel removal.
type Stemmer struct{}

func NewStemmer() *Stemmer {
	return &Stemmer{}
}

type stemRule struct {
	suffix      string
	minStemSize int
	replacement string
	exceptions  map[string]struct{}
	// skipSuffixes defers words carrying a longer derivational suffix
	// to a later rule set instead of stripping here.
	skipSuffixes []string
}

func exceptions(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

var pluralRules = []stemRule{
	{suffix: "ns", minStemSize: 1, replacement: "m"},
	{suffix: "ões", minStemSize: 3, replacement: "ão"},
	{suffix: "ães", minStemSize: 1, replacement: "ão", exceptions: exceptions("mães")},
	{suffix: "ais", minStemSize: 1, replacement: "al", exceptions: exceptions("cais", "mais")},
	{suffix: "éis", minStemSize: 2, replacement: "el"},
	{suffix: "eis", minStemSize: 2, replacement: "el"},
	{suffix: "óis", minStemSize: 2, replacement: "ol"},
	{suffix: "is", minStemSize: 2, replacement: "il", exceptions: exceptions("lápis", "cais", "mais", "crúcis", "biquínis", "pois", "depois", "dois", "leis")},
	{suffix: "les", minStemSize: 3, replacement: "l"},
	{suffix: "res", minStemSize: 3, replacement: "r"},
	{suffix: "s", minStemSize: 2, replacement: "", exceptions: exceptions("aliás", "pires", "lápis", "cais", "mais", "mas", "menos", "férias", "fezes", "pêsames", "crúcis", "gás", "atrás", "moisés", "través", "convés", "ês", "país", "após", "ambas", "ambos", "messias")},
}

var feminineRules = []stemRule{
	{suffix: "ona", minStemSize: 3, replacement: "ão", exceptions: exceptions("abandona", "lona", "iona", "cortisona", "monótona", "maratona", "acetona", "detona", "carona")},
	{suffix: "ora", minStemSize: 3, replacement: "or"},
	{suffix: "na", minStemSize: 4, replacement: "no", exceptions: exceptions("carona", "abandona", "lona", "iona", "cortisona", "monótona", "maratona", "acetona", "detona", "guiana", "campana", "grana", "caravana", "banana", "paisana")},
	{suffix: "inha", minStemSize: 3, replacement: "inho", exceptions: exceptions("rainha", "linha", "minha")},
	{suffix: "esa", minStemSize: 3, replacement: "ês", exceptions: exceptions("mesa", "obesa", "princesa", "turquesa", "ilesa", "pesa", "presa")},
	{suffix: "osa", minStemSize: 3, replacement: "oso", exceptions: exceptions("mucosa", "prosa")},
	{suffix: "íaca", minStemSize: 3, replacement: "íaco"},
	{suffix: "ica", minStemSize: 3, replacement: "ico", exceptions: exceptions("dica")},
	{suffix: "ada", minStemSize: 2, replacement: "ado", exceptions: exceptions("pitada")},
	{suffix: "ida", minStemSize: 3, replacement: "ido", exceptions: exceptions("vida", "dúvida")},
	{suffix: "eira", minStemSize: 3, replacement: "eiro", exceptions: exceptions("beira", "cadeira", "frigideira", "bandeira", "feira", "capoeira", "barreira", "fronteira", "besteira", "poeira")},
}

var adverbRules = []stemRule{
	{suffix: "mente", minStemSize: 4, replacement: "", exceptions: exceptions("experimente")},
}

var augmentativeRules = []stemRule{
	{suffix: "díssimo", minStemSize: 5, replacement: ""},
	{suffix: "íssimo", minStemSize: 3, replacement: ""},
	{suffix: "ésimo", minStemSize: 3, replacement: ""},
	{suffix: "zinho", minStemSize: 2, replacement: ""},
	{suffix: "zinha", minStemSize: 2, replacement: ""},
	{suffix: "inho", minStemSize: 3, replacement: "", exceptions: exceptions("caminho", "cominho")},
	{suffix: "inha", minStemSize: 3, replacement: "", exceptions: exceptions("rainha", "linha", "minha")},
	{suffix: "zão", minStemSize: 2, replacement: "", exceptions: exceptions("coalizão")},
	{suffix: "ão", minStemSize: 3, replacement: "", skipSuffixes: []string{"ção", "são"}, exceptions: exceptions("camarão", "chimarrão", "canção", "coração", "embrião", "grotão", "glutão", "ficção", "fogão", "feição", "furacão", "gamão", "lampião", "leão", "macacão", "nação", "órfão", "orgão", "patrão", "portão", "quinhão", "rincão", "tração", "falcão", "espião", "mamão", "folião", "cordão", "aversão", "divisão", "versão", "fusão", "ocasião", "decisão")},
}

var nounRules = []stemRule{
	{suffix: "encialista", minStemSize: 4, replacement: ""},
	{suffix: "alista", minStemSize: 5, replacement: ""},
	{suffix: "agem", minStemSize: 3, replacement: "", exceptions: exceptions("coragem", "chantagem", "vantagem", "carruagem")},
	{suffix: "iamento", minStemSize: 4, replacement: ""},
	{suffix: "amento", minStemSize: 3, replacement: "", exceptions: exceptions("firmamento", "fundamento", "departamento")},
	{suffix: "imento", minStemSize: 3, replacement: ""},
	{suffix: "alizado", minStemSize: 4, replacement: ""},
	{suffix: "atizado", minStemSize: 4, replacement: ""},
	{suffix: "izado", minStemSize: 5, replacement: "", exceptions: exceptions("organizado", "pulverizado")},
	{suffix: "ativo", minStemSize: 4, replacement: "", exceptions: exceptions("pejorativo", "relativo")},
	{suffix: "ionar", minStemSize: 5, replacement: ""},
	{suffix: "adora", minStemSize: 3, replacement: ""},
	{suffix: "adores", minStemSize: 3, replacement: ""},
	{suffix: "ação", minStemSize: 3, replacement: "", exceptions: exceptions("equação", "relação", "ação")},
	{suffix: "ção", minStemSize: 3, replacement: "", exceptions: exceptions("coalizão")},
	{suffix: "ador", minStemSize: 3, replacement: ""},
	{suffix: "idade", minStemSize: 4, replacement: "", exceptions: exceptions("autoridade", "comunidade")},
	{suffix: "ismo", minStemSize: 3, replacement: "", exceptions: exceptions("cinismo")},
	{suffix: "ista", minStemSize: 4, replacement: ""},
	{suffix: "oso", minStemSize: 3, replacement: "", exceptions: exceptions("precioso")},
	{suffix: "osa", minStemSize: 3, replacement: "", exceptions: exceptions("mucosa", "prosa")},
	{suffix: "ente", minStemSize: 4, replacement: "", exceptions: exceptions("frequente", "alimente", "acrescente", "permanente", "oriente", "aparente")},
	{suffix: "ivo", minStemSize: 4, replacement: "", exceptions: exceptions("passivo", "possessivo", "pejorativo", "positivo")},
	{suffix: "eza", minStemSize: 3, replacement: ""},
	{suffix: "ura", minStemSize: 4, replacement: "", exceptions: exceptions("imatura", "acupuntura", "costura")},
	{suffix: "al", minStemSize: 4, replacement: "", exceptions: exceptions("afinal", "animal", "estatal", "bissexual", "desleal", "fiscal", "formal", "pessoal", "liberal", "postal", "virtual", "visual", "sideral", "sucursal")},
}

var verbRules = []stemRule{
	{suffix: "aríamos", minStemSize: 2, replacement: ""},
	{suffix: "eríamos", minStemSize: 2, replacement: ""},
	{suffix: "iríamos", minStemSize: 2, replacement: ""},
	{suffix: "ássemos", minStemSize: 2, replacement: ""},
	{suffix: "êssemos", minStemSize: 2, replacement: ""},
	{suffix: "íssemos", minStemSize: 2, replacement: ""},
	{suffix: "aremos", minStemSize: 2, replacement: ""},
	{suffix: "eremos", minStemSize: 2, replacement: ""},
	{suffix: "iremos", minStemSize: 2, replacement: ""},
	{suffix: "ariam", minStemSize: 2, replacement: ""},
	{suffix: "eriam", minStemSize: 2, replacement: ""},
	{suffix: "iriam", minStemSize: 2, replacement: ""},
	{suffix: "assem", minStemSize: 2, replacement: ""},
	{suffix: "essem", minStemSize: 2, replacement: ""},
	{suffix: "issem", minStemSize: 2, replacement: ""},
	{suffix: "amos", minStemSize: 2, replacement: ""},
	{suffix: "emos", minStemSize: 2, replacement: ""},
	{suffix: "imos", minStemSize: 2, replacement: ""},
	{suffix: "aria", minStemSize: 2, replacement: ""},
	{suffix: "eria", minStemSize: 2, replacement: ""},
	{suffix: "iria", minStemSize: 2, replacement: ""},
	{suffix: "asse", minStemSize: 2, replacement: ""},
	{suffix: "esse", minStemSize: 2, replacement: "", exceptions: exceptions("interesse")},
	{suffix: "isse", minStemSize: 2, replacement: ""},
	{suffix: "aste", minStemSize: 2, replacement: ""},
	{suffix: "este", minStemSize: 2, replacement: "", exceptions: exceptions("agreste", "faroeste")},
	{suffix: "iste", minStemSize: 4, replacement: ""},
	{suffix: "ando", minStemSize: 2, replacement: ""},
	{suffix: "endo", minStemSize: 3, replacement: ""},
	{suffix: "indo", minStemSize: 3, replacement: ""},
	{suffix: "aram", minStemSize: 2, replacement: ""},
	{suffix: "eram", minStemSize: 2, replacement: ""},
	{suffix: "iram", minStemSize: 3, replacement: ""},
	{suffix: "arei", minStemSize: 2, replacement: ""},
	{suffix: "erei", minStemSize: 2, replacement: ""},
	{suffix: "irei", minStemSize: 3, replacement: ""},
	{suffix: "arás", minStemSize: 2, replacement: ""},
	{suffix: "ava", minStemSize: 2, replacement: "", exceptions: exceptions("agrava")},
	{suffix: "iam", minStemSize: 3, replacement: "", exceptions: exceptions("enfiam", "ampliam", "elogiam", "ensaiam")},
	{suffix: "iei", minStemSize: 3, replacement: ""},
	{suffix: "aqui", minStemSize: 3, replacement: ""},
	{suffix: "amo", minStemSize: 3, replacement: ""},
	{suffix: "ara", minStemSize: 2, replacement: "", exceptions: exceptions("arara", "prepara")},
	{suffix: "erá", minStemSize: 2, replacement: ""},
	{suffix: "ear", minStemSize: 4, replacement: "", exceptions: exceptions("alardear", "nuclear")},
	{suffix: "iar", minStemSize: 5, replacement: "", exceptions: exceptions("ampliar", "auxiliar")},
	{suffix: "ar", minStemSize: 2, replacement: "", exceptions: exceptions("azar", "bazaar", "patamar")},
	{suffix: "er", minStemSize: 2, replacement: "", exceptions: exceptions("éter", "pier")},
	{suffix: "ir", minStemSize: 3, replacement: "", exceptions: exceptions("freixo")},
	{suffix: "eu", minStemSize: 3, replacement: "", exceptions: exceptions("chapeu")},
	{suffix: "iu", minStemSize: 3, replacement: ""},
	{suffix: "ou", minStemSize: 3, replacement: ""},
	{suffix: "em", minStemSize: 2, replacement: "", exceptions: exceptions("alem", "virgem")},
	{suffix: "o", minStemSize: 3, replacement: "", exceptions: exceptions("ão")},
	{suffix: "i", minStemSize: 3, replacement: ""},
}

var vowelRules = []stemRule{
	{suffix: "a", minStemSize: 3, replacement: "", exceptions: exceptions("ásia")},
	{suffix: "e", minStemSize: 3, replacement: ""},
	{suffix: "o", minStemSize: 3, replacement: "", exceptions: exceptions("ão")},
}

// Stem reduces a single lowercase word to its stem.
func (s *Stemmer) Stem(word string) string {
	if word == "" {
		return word
	}

	if strings.HasSuffix(word, "s") {
		word = applyRules(word, pluralRules)
	}
	if strings.HasSuffix(word, "a") {
		word = applyRules(word, feminineRules)
	}
	word = applyRules(word, augmentativeRules)
	word = applyRules(word, adverbRules)

	reduced := applyRules(word, nounRules)
	if reduced == word {
		reduced = applyRules(word, verbRules)
		if reduced == word {
			reduced = applyRules(word, vowelRules)
		}
	}

	return reduced
}

// StemAll stems every token, preserving order.
func (s *Stemmer) StemAll(words []string) []string {
	stems := make([]string, len(words))
	for i, w := range words {
		stems[i] = s.Stem(w)
	}
	return stems
}

func applyRules(word string, rules []stemRule) string {
	for _, r := range rules {
		if !strings.HasSuffix(word, r.suffix) {
			continue
		}
		if deferred(word, r.skipSuffixes) {
			continue
		}
		if r.exceptions != nil {
			if _, ok := r.exceptions[word]; ok {
				continue
			}
		}
		stem := strings.TrimSuffix(word, r.suffix)
		if utf8.RuneCountInString(stem) < r.minStemSize {
			continue
		}
		return stem + r.replacement
	}
	return word
}

func deferred(word string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(word, s) {
			return true
		}
	}
	return false
}
