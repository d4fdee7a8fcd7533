package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/autou/mailtriage/classifier"
	"github.com/autou/mailtriage/composer"
	"github.com/autou/mailtriage/extractor"
	"github.com/autou/mailtriage/llm_service"
	"github.com/autou/mailtriage/normalizer"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingLLM wraps the mock service and counts outbound calls.
type countingLLM struct {
	llm_service.MockLLMService
	calls int
}

func (c *countingLLM) GenerateConstrained(ctx context.Context, prompt string, allowed []string) (string, error) {
	c.calls++
	return c.MockLLMService.GenerateConstrained(ctx, prompt, allowed)
}

func (c *countingLLM) GenerateFree(ctx context.Context, prompt string) (string, error) {
	c.calls++
	return c.MockLLMService.GenerateFree(ctx, prompt)
}

func newCoordinator(llm llm_service.LLMService) *Coordinator {
	logger := testLogger()
	return NewCoordinator(
		extractor.NewDocumentExtractor(logger),
		normalizer.New(logger),
		classifier.New(llm, logger),
		composer.New(llm, logger),
		nil,
		logger,
	)
}

func TestRun_SeasonalGreeting(t *testing.T) {
	llm := &countingLLM{
		MockLLMService: llm_service.MockLLMService{
			GenerateConstrainedFunc: func(ctx context.Context, prompt string, allowed []string) (string, error) {
				if !strings.Contains(prompt, "feliz natal próspero ano novo") {
					t.Errorf("classification prompt does not embed the normalized text:\n%s", prompt)
				}
				return "Improdutivo", nil
			},
			GenerateFreeFunc: func(ctx context.Context, prompt string) (string, error) {
				if !strings.Contains(prompt, "Feliz Natal e próspero ano novo!") {
					t.Errorf("generation prompt does not embed the original text:\n%s", prompt)
				}
				return "Prezado(a),\n\nAgradecemos a mensagem e desejamos um excelente ano novo.\n\nAtenciosamente,\nAutoU.", nil
			},
		},
	}

	c := newCoordinator(llm)
	result, err := c.Run(context.Background(), Submission{InlineText: "Feliz Natal e próspero ano novo!"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Category != classifier.CategoryUnproductive {
		t.Errorf("expected Improdutivo, got %q", result.Category)
	}
	if !strings.HasPrefix(result.Reply, "Prezado(a),") {
		t.Errorf("reply does not open with the fixed salutation: %q", result.Reply)
	}
	if !strings.HasSuffix(result.Reply, "Atenciosamente,\nAutoU.") {
		t.Errorf("reply does not end with the signature block: %q", result.Reply)
	}
	if result.OriginalText != "Feliz Natal e próspero ano novo!" {
		t.Errorf("original text not preserved: %q", result.OriginalText)
	}
	if result.RunID == "" {
		t.Error("expected a run ID")
	}
}

func TestRun_StatusRequest(t *testing.T) {
	llm := &countingLLM{
		MockLLMService: llm_service.MockLLMService{
			GenerateConstrainedFunc: func(ctx context.Context, prompt string, allowed []string) (string, error) {
				return "Produtivo", nil
			},
			GenerateFreeFunc: func(ctx context.Context, prompt string) (string, error) {
				return "Prezado(a) cliente,\n\nRecebemos sua solicitação sobre o contrato XYZ e retornaremos com a atualização em breve.\n\nAtenciosamente,\nAutoU.", nil
			},
		},
	}

	c := newCoordinator(llm)
	result, err := c.Run(context.Background(), Submission{InlineText: "Prezados, preciso de uma atualização sobre o contrato XYZ."})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Category != classifier.CategoryProductive {
		t.Errorf("expected Produtivo, got %q", result.Category)
	}
	if words := len(strings.Fields(result.Reply)); words > 100 {
		t.Errorf("reply exceeds 100 words: %d", words)
	}
	if strings.Contains(result.Reply, "[") && strings.Contains(result.Reply, "]") {
		t.Errorf("reply contains placeholder brackets: %q", result.Reply)
	}
	if !strings.HasPrefix(result.Reply, "Prezado(a)") {
		t.Errorf("reply does not open with a salutation: %q", result.Reply)
	}
}

func TestRun_EmptyInlineText(t *testing.T) {
	llm := &countingLLM{}

	c := newCoordinator(llm)
	_, err := c.Run(context.Background(), Submission{InlineText: "   "})
	if err == nil {
		t.Fatal("expected an error")
	}
	if KindOf(err) != KindEmptyInput {
		t.Errorf("expected empty input kind, got %q", KindOf(err))
	}
	if llm.calls != 0 {
		t.Errorf("expected no inference calls, got %d", llm.calls)
	}
}

func TestRun_UnsupportedFileFormat(t *testing.T) {
	llm := &countingLLM{}

	c := newCoordinator(llm)
	_, err := c.Run(context.Background(), Submission{
		Filename: "memo.xyz",
		FileData: []byte{0xde, 0xad, 0xbe, 0xef},
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if KindOf(err) != KindEmptyInput {
		t.Errorf("expected empty input kind, got %q", KindOf(err))
	}
	if llm.calls != 0 {
		t.Errorf("expected no inference calls, got %d", llm.calls)
	}
}

func TestRun_MalformedPDF(t *testing.T) {
	llm := &countingLLM{}

	c := newCoordinator(llm)
	_, err := c.Run(context.Background(), Submission{
		Filename: "broken.pdf",
		FileData: []byte("not really a pdf"),
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if KindOf(err) != KindExtraction {
		t.Errorf("expected extraction kind, got %q", KindOf(err))
	}
	if llm.calls != 0 {
		t.Errorf("expected no inference calls, got %d", llm.calls)
	}
}

func TestRun_TextFileSubmission(t *testing.T) {
	llm := &countingLLM{
		MockLLMService: llm_service.MockLLMService{
			GenerateConstrainedFunc: func(ctx context.Context, prompt string, allowed []string) (string, error) {
				return "Produtivo", nil
			},
			GenerateFreeFunc: func(ctx context.Context, prompt string) (string, error) {
				return "Prezado(a) cliente,\n\nSegue o relatório solicitado.\n\nAtenciosamente,\nAutoU.", nil
			},
		},
	}

	c := newCoordinator(llm)
	result, err := c.Run(context.Background(), Submission{
		Filename: "pedido.txt",
		FileData: []byte("Olá, podem me enviar o relatório de vendas do mês passado?"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OriginalText != "Olá, podem me enviar o relatório de vendas do mês passado?" {
		t.Errorf("unexpected original text: %q", result.OriginalText)
	}
	if llm.calls != 2 {
		t.Errorf("expected 2 inference calls, got %d", llm.calls)
	}
}

func TestRun_UnrecognizedCategoryLiteral(t *testing.T) {
	llm := &countingLLM{
		MockLLMService: llm_service.MockLLMService{
			GenerateConstrainedFunc: func(ctx context.Context, prompt string, allowed []string) (string, error) {
				return "Neutro", nil
			},
		},
	}

	c := newCoordinator(llm)
	_, err := c.Run(context.Background(), Submission{InlineText: "Preciso de ajuda."})
	if err == nil {
		t.Fatal("expected an error")
	}
	if KindOf(err) != KindClassification {
		t.Errorf("expected classification kind, got %q", KindOf(err))
	}
}

func TestRun_GenerationFailure(t *testing.T) {
	llm := &countingLLM{
		MockLLMService: llm_service.MockLLMService{
			GenerateConstrainedFunc: func(ctx context.Context, prompt string, allowed []string) (string, error) {
				return "Produtivo", nil
			},
			GenerateFreeFunc: func(ctx context.Context, prompt string) (string, error) {
				return "", errors.New("service unavailable")
			},
		},
	}

	c := newCoordinator(llm)
	_, err := c.Run(context.Background(), Submission{InlineText: "Preciso de ajuda."})
	if err == nil {
		t.Fatal("expected an error")
	}
	if KindOf(err) != KindGeneration {
		t.Errorf("expected generation kind, got %q", KindOf(err))
	}
}
