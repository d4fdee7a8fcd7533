package llm_service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/autou/mailtriage/metrics"
	"github.com/autou/mailtriage/resilience"
)

type GeminiService struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	model      string
	executor   *resilience.Executor
	metrics    *metrics.TriageMetrics
	logger     *slog.Logger
}

func NewGeminiService(apiURL, apiKey, model string, executor *resilience.Executor, m *metrics.TriageMetrics, logger *slog.Logger) *GeminiService {
	return &GeminiService{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		apiURL:     apiURL,
		apiKey:     apiKey,
		model:      model,
		executor:   executor,
		metrics:    m,
		logger:     logger,
	}
}

func (s *GeminiService) GenerateConstrained(ctx context.Context, prompt string, allowed []string) (string, error) {
	generationConfig := map[string]interface{}{
		"temperature":      0.0,
		"maxOutputTokens":  64.0,
		"responseMimeType": "text/x.enum",
		"responseSchema": map[string]interface{}{
			"type": "STRING",
			"enum": allowed,
		},
	}
	return s.generate(ctx, "generate_constrained", prompt, generationConfig)
}

func (s *GeminiService) GenerateFree(ctx context.Context, prompt string) (string, error) {
	generationConfig := map[string]interface{}{
		"temperature":      1.0,
		"topK":             64.0,
		"topP":             0.95,
		"maxOutputTokens":  8192.0,
		"responseMimeType": "text/plain",
	}
	return s.generate(ctx, "generate_free", prompt, generationConfig)
}

func (s *GeminiService) generate(ctx context.Context, operation, prompt string, generationConfig map[string]interface{}) (string, error) {
	var response string
	start := time.Now()

	err := s.executor.Execute(ctx, operation, func(ctx context.Context) error {
		var callErr error
		response, callErr = s.callGemini(ctx, prompt, generationConfig)
		return callErr
	})

	if s.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		s.metrics.LLMRequestsTotal.WithLabelValues(operation, status).Inc()
		s.metrics.LLMLatencySeconds.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}

	if err != nil {
		s.logger.Error("Error calling Gemini API",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to call Gemini API: %w", err)
	}

	return response, nil
}

func (s *GeminiService) callGemini(ctx context.Context, prompt string, generationConfig map[string]interface{}) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.apiURL, s.model, s.apiKey)

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": generationConfig,
	}

	requestBody, err := json.Marshal(payload)
	if err != nil {
		return "", resilience.Permanent(fmt.Errorf("error marshaling request body: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", resilience.Permanent(fmt.Errorf("error creating request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		httpErr := extractGeminiErrorDetails(resp)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// Client-side failures will not heal on retry
			return "", resilience.Permanent(httpErr)
		}
		return "", httpErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %w", err)
	}

	candidates, ok := result["candidates"].([]interface{})
	if !ok || len(candidates) == 0 {
		return "", fmt.Errorf("unexpected response format from Gemini API")
	}

	content, ok := candidates[0].(map[string]interface{})["content"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("content not found in Gemini API response")
	}

	parts, ok := content["parts"].([]interface{})
	if !ok || len(parts) == 0 {
		return "", fmt.Errorf("parts not found in Gemini API response")
	}

	text, ok := parts[0].(map[string]interface{})["text"].(string)
	if !ok {
		return "", fmt.Errorf("text not found in Gemini API response")
	}

	return text, nil
}
