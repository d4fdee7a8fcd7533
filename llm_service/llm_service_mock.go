package llm_service

import (
	"context"
)

type MockLLMService struct {
	GenerateConstrainedFunc func(ctx context.Context, prompt string, allowed []string) (string, error)
	GenerateFreeFunc        func(ctx context.Context, prompt string) (string, error)
}

func (m *MockLLMService) GenerateConstrained(ctx context.Context, prompt string, allowed []string) (string, error) {
	if m.GenerateConstrainedFunc != nil {
		return m.GenerateConstrainedFunc(ctx, prompt, allowed)
	}
	return "mock response", nil
}

func (m *MockLLMService) GenerateFree(ctx context.Context, prompt string) (string, error) {
	if m.GenerateFreeFunc != nil {
		return m.GenerateFreeFunc(ctx, prompt)
	}
	return "mock response", nil
}
