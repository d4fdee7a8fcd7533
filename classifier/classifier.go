package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/autou/mailtriage/llm_service"
)

// Category is the closed two-value taxonomy for triaged email.
type Category string

const (
	CategoryProductive   Category = "Produtivo"
	CategoryUnproductive Category = "Improdutivo"
)

// ErrUnrecognizedCategory reports an inference response outside the
// allowed category literals.
var ErrUnrecognizedCategory = errors.New("unrecognized category literal")

const classifyPromptTemplate = `
Classifique este email em 'Produtivo' ou 'Improdutivo':

Exemplos IMPRODUTIVO:
Email: "Feliz Natal e próspero ano novo!"
Classificação: Improdutivo

Email: "Bom dia, obrigado pelo apoio ontem."
Classificação: Improdutivo

Toda e qualquer felicitação e agradecimento classificam o email como IMPRODUTIVO.

Exemplos PRODUTIVO:
Email: "Prezados, preciso de uma atualização sobre o contrato XYZ."
Classificação: Produtivo

Email: "Olá, podem me enviar o relatório de vendas do mês passado?"
Classificação: Produtivo

Solicitações de suporte técnico, atualização sobre casos em aberto, dúvidas sobre o sistema sempre classificam o email como PRODUTIVO.

O email que você deve analisar é o seguinte: "%s"

A classificação deve ser apenas os termos 'Produtivo' ou 'Improdutivo'. Não inclua explicações ou justificativas.`

// Classifier maps normalized email text onto a Category through the
// inference service, with the output domain constrained to the two
// category literals.
type Classifier struct {
	llm    llm_service.LLMService
	logger *slog.Logger
}

func New(llm llm_service.LLMService, logger *slog.Logger) *Classifier {
	return &Classifier{
		llm:    llm,
		logger: logger,
	}
}

func (c *Classifier) Classify(ctx context.Context, normalizedText string) (Category, error) {
	prompt := fmt.Sprintf(classifyPromptTemplate, normalizedText)
	allowed := []string{string(CategoryProductive), string(CategoryUnproductive)}

	response, err := c.llm.GenerateConstrained(ctx, prompt, allowed)
	if err != nil {
		return "", fmt.Errorf("classification request failed: %w", err)
	}

	category, err := ParseCategory(response)
	if err != nil {
		c.logger.Error("Inference returned an out-of-domain category",
			slog.String("response", response))
		return "", err
	}

	return category, nil
}

// ParseCategory takes the last non-blank line of a raw inference
// response as the category literal. The schema constraint should
// already guarantee a bare literal; the line scan guards against
// leading explanation text.
func ParseCategory(response string) (Category, error) {
	literal := lastNonBlankLine(response)

	switch strings.ToLower(strings.Trim(literal, `"'. `)) {
	case "produtivo":
		return CategoryProductive, nil
	case "improdutivo":
		return CategoryUnproductive, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedCategory, literal)
	}
}

func lastNonBlankLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
