package llm_service

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// GeminiError represents the error structure returned by the Gemini API
type GeminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

type GeminiHTTPError struct {
	StatusCode int
	Message    string
	Status     string
	RawBody    string
}

func (e *GeminiHTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("Gemini API error (HTTP %d): %s (Status: %s)", e.StatusCode, e.Message, e.Status)
	}
	return fmt.Sprintf("Gemini API error (HTTP %d)", e.StatusCode)
}

// extractGeminiErrorDetails extracts error information from Gemini API responses
func extractGeminiErrorDetails(resp *http.Response) *GeminiHTTPError {
	httpErr := &GeminiHTTPError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return httpErr
	}
	httpErr.RawBody = string(body)

	var geminiErr GeminiError
	if err := json.Unmarshal(body, &geminiErr); err == nil && geminiErr.Error.Message != "" {
		httpErr.Message = geminiErr.Error.Message
		httpErr.Status = geminiErr.Error.Status
	}

	return httpErr
}
