package normalizer

import "strings"

// Lemmatizer maps inflected Portuguese forms onto dictionary lemmas.
// Lookup goes through an inflection table first; forms the table does
// not know fall back to morphological plural reduction.
type Lemmatizer struct {
	forms map[string]string
}

// inflectionTable covers the conjugated verbs and inflected adjectives
// common in corporate email traffic. Values are fixed points of the
// lemmatizer.
var inflectionTable = map[string]string{
	// verbs, first/third person forms → infinitive
	"preciso":      "precisar",
	"precisa":      "precisar",
	"precisam":     "precisar",
	"precisamos":   "precisar",
	"gostaria":     "gostar",
	"gostaríamos":  "gostar",
	"pode":         "poder",
	"podem":        "poder",
	"podemos":      "poder",
	"poderia":      "poder",
	"poderiam":     "poder",
	"quero":        "querer",
	"queremos":     "querer",
	"peço":         "pedir",
	"pedimos":      "pedir",
	"solicito":     "solicitar",
	"solicita":     "solicitar",
	"solicitamos":  "solicitar",
	"envio":        "enviar",
	"envie":        "enviar",
	"enviem":       "enviar",
	"enviamos":     "enviar",
	"enviei":       "enviar",
	"segue":        "seguir",
	"seguem":       "seguir",
	"anexo":        "anexar",
	"anexei":       "anexar",
	"agradeço":     "agradecer",
	"agradecemos":  "agradecer",
	"desejo":       "desejar",
	"desejamos":    "desejar",
	"aguardo":      "aguardar",
	"aguardamos":   "aguardar",
	"informo":      "informar",
	"informe":      "informar",
	"informamos":   "informar",
	"verifique":    "verificar",
	"verifiquem":   "verificar",
	"confirmo":     "confirmar",
	"confirme":     "confirmar",
	"confirmamos":  "confirmar",
	"retorno":      "retornar",
	"retornem":     "retornar",
	"funciona":     "funcionar",
	"funcionando":  "funcionar",
	"consigo":      "conseguir",
	"conseguimos":  "conseguir",
	"ocorreu":      "ocorrer",
	"aconteceu":    "acontecer",
	"apresentou":   "apresentar",
	"recebi":       "receber",
	"recebemos":    "receber",

	// inflected adjectives and participles → masculine singular
	"obrigada":  "obrigado",
	"obrigadas": "obrigado",
	"obrigados": "obrigado",
	"boa":       "bom",
	"boas":      "bom",
	"bons":      "bom",
	"anexada":   "anexado",
	"enviada":   "enviado",
	"enviadas":  "enviado",
	"enviados":  "enviado",
	"prezada":   "prezado",
	"prezadas":  "prezado",
	"prezados":  "prezado",
	"atenciosa": "atencioso",
	"grata":     "grato",
	"gratas":    "grato",
	"gratos":    "grato",
}

// pluralExceptions are s-final words that are already singular.
var pluralExceptions = map[string]struct{}{
	"país":    {},
	"mês":     {},
	"ônibus":  {},
	"vírus":   {},
	"lápis":   {},
	"pires":   {},
	"status":  {},
	"atrás":   {},
	"através": {},
	"parabéns": {},
}

func NewLemmatizer() *Lemmatizer {
	return &Lemmatizer{forms: inflectionTable}
}

// Lemmatize runs the lemma pass over a space-joined token string and
// returns one lemma per input token.
func (l *Lemmatizer) Lemmatize(text string) []string {
	words := strings.Fields(text)
	lemmas := make([]string, len(words))
	for i, w := range words {
		lemmas[i] = l.Lemma(w)
	}
	return lemmas
}

// Lemma maps a single lowercase token onto its lemma.
func (l *Lemmatizer) Lemma(word string) string {
	if lemma, ok := l.forms[word]; ok {
		return lemma
	}
	return reducePlural(word)
}

func reducePlural(word string) string {
	if !strings.HasSuffix(word, "s") {
		return word
	}
	if _, ok := pluralExceptions[word]; ok {
		return word
	}
	if len([]rune(word)) <= 3 {
		return word
	}

	switch {
	case strings.HasSuffix(word, "ções"):
		return strings.TrimSuffix(word, "ções") + "ção"
	case strings.HasSuffix(word, "sões"):
		return strings.TrimSuffix(word, "sões") + "são"
	case strings.HasSuffix(word, "ões"):
		return strings.TrimSuffix(word, "ões") + "ão"
	case strings.HasSuffix(word, "ães"):
		return strings.TrimSuffix(word, "ães") + "ão"
	case strings.HasSuffix(word, "ais"):
		return strings.TrimSuffix(word, "ais") + "al"
	case strings.HasSuffix(word, "éis"):
		return strings.TrimSuffix(word, "éis") + "el"
	case strings.HasSuffix(word, "óis"):
		return strings.TrimSuffix(word, "óis") + "ol"
	case strings.HasSuffix(word, "ns"):
		return strings.TrimSuffix(word, "ns") + "m"
	case strings.HasSuffix(word, "res"), strings.HasSuffix(word, "ses"):
		return strings.TrimSuffix(word, "es")
	default:
		return strings.TrimSuffix(word, "s")
	}
}
