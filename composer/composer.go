package composer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/autou/mailtriage/classifier"
	"github.com/autou/mailtriage/llm_service"
)

const productivePromptTemplate = `
Você é um assistente profissional. O email do cliente é:
"%s"

Padronize uma resposta formal automática, curta (no máximo 100 palavras), respondendo diretamente as informações solicitadas pelo email.
NÃO inclua lacunas entre colchetes, do tipo [inserir data]/[inserir nome da etapa]/[inserir documento/item] para inserção de QUAISQUER informações SOB NENHUMA CIRCUNSTÂNCIA.
Finalize sua resposta seguindo ESTE formato:

Prezado(a) cliente (Inclua o nome do cliente se ele foi enviado no corpo do email),

[texto da resposta]

(Duas quebras de linha)

Atenciosamente,
AutoU.`

const unproductivePromptTemplate = `
Você é um assistente educado. O email recebido é:
"%s"

Responda com:

- "Prezado(a),"

- Uma frase de agradecimento ou retribuição do que foi desejado.

Atenciosamente,
AutoU.`

// Composer builds a category-conditioned reply against the original
// (not normalized) email text: the model needs names, punctuation and
// politeness cues to sound natural.
type Composer struct {
	llm    llm_service.LLMService
	logger *slog.Logger
}

func New(llm llm_service.LLMService, logger *slog.Logger) *Composer {
	return &Composer{
		llm:    llm,
		logger: logger,
	}
}

func (c *Composer) Compose(ctx context.Context, category classifier.Category, originalText string) (string, error) {
	var prompt string
	if category == classifier.CategoryProductive {
		prompt = fmt.Sprintf(productivePromptTemplate, originalText)
	} else {
		prompt = fmt.Sprintf(unproductivePromptTemplate, originalText)
	}

	reply, err := c.llm.GenerateFree(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("reply generation failed: %w", err)
	}

	reply = strings.TrimSpace(reply)
	c.logger.Debug("Composed reply",
		slog.String("category", string(category)),
		slog.Int("reply_length", len(reply)))

	return reply, nil
}
