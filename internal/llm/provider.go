package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// CompletionRequest represents a request to the LLM
type CompletionRequest struct {
	Model    string
	Messages []Message
	// MaxTokens is omitted from the wire body when zero
	MaxTokens int
	// Temperature is omitted from the wire body when nil
	Temperature *float64
}

// Message represents a chat message
type Message struct {
	Role    string
	Content string
}

// CompletionResponse represents the full response
type CompletionResponse struct {
	Content      string
	Model        string
	FinishReason string
	Usage        Usage
}

// Usage tracks token usage
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ErrMalformedResponse is returned when a 2xx body lacks the expected fields
var ErrMalformedResponse = errors.New("malformed completion response")

// APIError is a non-2xx answer from the endpoint
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	status := fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Message == "" {
		return status
	}
	return status + ": " + e.Message
}

// Unauthorized reports whether the endpoint rejected the credential
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Temperature returns a pointer for CompletionRequest.Temperature
func Temperature(t float64) *float64 {
	return &t
}
