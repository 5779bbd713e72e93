package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// pingPrompt is the probe message sent by Ping
const pingPrompt = "Hello"

const maxErrorBody = 64 << 10

// Client talks to an OpenAI-compatible /chat/completions endpoint
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client. An empty apiKey is sent as-is; the endpoint
// decides whether that is acceptable. A zero timeout leaves the HTTP
// client's default in place.
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Model() string {
	return c.model
}

// Ping sends a minimal one-turn request. Any 2xx answer counts as success;
// the body is not inspected.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.post(ctx, openAIRequest{
		Model:     c.model,
		Messages:  []openAIMessage{{Role: "user", Content: pingPrompt}},
		MaxTokens: 10,
	})
	return err
}

// Complete sends one blocking completion request and returns the first
// choice's content verbatim
func (c *Client) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	data, err := c.post(ctx, openAIRequest{
		Model:       model,
		Messages:    toOpenAIMessages(req.Messages),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, err
	}

	var apiResp openAIResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(apiResp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}
	choice := apiResp.Choices[0]
	if choice.Message == nil || choice.Message.Content == nil {
		return nil, fmt.Errorf("%w: choice has no message content", ErrMalformedResponse)
	}

	if apiResp.Model != "" {
		model = apiResp.Model
	}

	return &CompletionResponse{
		Content:      *choice.Message.Content,
		Model:        model,
		FinishReason: choice.FinishReason,
		Usage: Usage{
			PromptTokens:     apiResp.Usage.PromptTokens,
			CompletionTokens: apiResp.Usage.CompletionTokens,
			TotalTokens:      apiResp.Usage.TotalTokens,
		},
	}, nil
}

// post sends apiReq and returns the full body of a 2xx answer
func (c *Client) post(ctx context.Context, apiReq openAIRequest) ([]byte, error) {
	id := uuid.NewString()
	start := time.Now()

	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions",
		bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	log.Printf("llm: request id=%s model=%s messages=%d max_tokens=%d", id, apiReq.Model, len(apiReq.Messages), apiReq.MaxTokens)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Printf("llm: request id=%s failed after %s: %v", id, time.Since(start).Round(time.Millisecond), err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("llm: response id=%s status=%d elapsed=%s", id, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return data, nil
}

// errorMessage extracts {"error":{"message":...}} from an error body,
// falling back to the trimmed raw body
func errorMessage(data []byte) string {
	var errResp openAIErrorResponse
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	return strings.TrimSpace(string(data))
}

// OpenAI-compatible wire types
type openAIRequest struct {
	Messages    []openAIMessage `json:"messages"`
	Model       string          `json:"model"`
	Temperature *float64        `json:"temperature,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Stream      bool            `json:"stream"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message *struct {
			Role    string  `json:"role"`
			Content *string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type openAIErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func toOpenAIMessages(msgs []Message) []openAIMessage {
	out := make([]openAIMessage, len(msgs))
	for i, m := range msgs {
		out[i] = openAIMessage{Role: m.Role, Content: m.Content}
	}
	return out
}
