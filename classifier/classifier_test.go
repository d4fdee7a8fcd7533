package classifier

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/autou/mailtriage/llm_service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		llmResponse  string
		llmError     error
		wantCategory Category
		wantErr      bool
	}{
		{
			name:         "productive literal",
			llmResponse:  "Produtivo",
			wantCategory: CategoryProductive,
		},
		{
			name:         "unproductive literal",
			llmResponse:  "Improdutivo",
			wantCategory: CategoryUnproductive,
		},
		{
			name:         "leading explanation lines are ignored",
			llmResponse:  "Analisando o conteúdo do email.\n\nImprodutivo",
			wantCategory: CategoryUnproductive,
		},
		{
			name:         "case and punctuation tolerated",
			llmResponse:  `"produtivo".`,
			wantCategory: CategoryProductive,
		},
		{
			name:        "out-of-domain literal",
			llmResponse: "Neutro",
			wantErr:     true,
		},
		{
			name:        "blank response",
			llmResponse: "\n  \n",
			wantErr:     true,
		},
		{
			name:     "service failure",
			llmError: errors.New("connection refused"),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &llm_service.MockLLMService{
				GenerateConstrainedFunc: func(ctx context.Context, prompt string, allowed []string) (string, error) {
					if len(allowed) != 2 {
						t.Errorf("expected 2 allowed values, got %v", allowed)
					}
					if tt.llmError != nil {
						return "", tt.llmError
					}
					return tt.llmResponse, nil
				},
			}

			c := New(mock, testLogger())
			got, err := c.Classify(context.Background(), "precisar atualização contrato")

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.wantCategory {
				t.Errorf("expected %q, got %q", tt.wantCategory, got)
			}
		})
	}
}

func TestClassify_PromptEmbedsNormalizedText(t *testing.T) {
	var gotPrompt string
	mock := &llm_service.MockLLMService{
		GenerateConstrainedFunc: func(ctx context.Context, prompt string, allowed []string) (string, error) {
			gotPrompt = prompt
			return "Produtivo", nil
		},
	}

	c := New(mock, testLogger())
	if _, err := c.Classify(context.Background(), "precisar atualização contrato"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(gotPrompt, `"precisar atualização contrato"`) {
		t.Errorf("prompt does not embed the normalized text: %q", gotPrompt)
	}
}

func TestParseCategory_UnrecognizedLiteralError(t *testing.T) {
	_, err := ParseCategory("Talvez")
	if !errors.Is(err, ErrUnrecognizedCategory) {
		t.Errorf("expected ErrUnrecognizedCategory, got %v", err)
	}
}
