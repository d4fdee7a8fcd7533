package llm_service

import "context"

// LLMService is the boundary to the external inference capability.
// GenerateConstrained restricts the model output to one of the allowed
// literal values; GenerateFree returns unconstrained text.
type LLMService interface {
	GenerateConstrained(ctx context.Context, prompt string, allowed []string) (string, error)
	GenerateFree(ctx context.Context, prompt string) (string, error)
}
