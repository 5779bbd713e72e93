// Package writer turns a mode and raw text into one completion request and
// hands back the reply.
package writer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sant0-9/quill/internal/config"
	"github.com/sant0-9/quill/internal/llm"
	"github.com/sant0-9/quill/internal/prompts"
)

// Completer is the part of llm.Client the writer needs
type Completer interface {
	Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error)
	Ping(ctx context.Context) error
}

// Settings are the fixed request parameters
type Settings struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// DefaultSettings are the config defaults: temperature 0.7, 2000 max tokens
func DefaultSettings() Settings {
	return Settings{Temperature: config.DefaultTemperature, MaxTokens: config.DefaultMaxTokens}
}

// Writer generates replies for the form
type Writer struct {
	catalog   *prompts.Catalog
	completer Completer
	settings  Settings
}

// NewWriter creates a new writer
func NewWriter(catalog *prompts.Catalog, completer Completer, settings Settings) *Writer {
	return &Writer{
		catalog:   catalog,
		completer: completer,
		settings:  settings,
	}
}

// Catalog returns the prompt catalogue requests are built from
func (w *Writer) Catalog() *prompts.Catalog {
	return w.catalog
}

// Build creates the two-turn request for text under mode m. The system turn
// is the mode's persona and the user turn is the mode's template with text
// inserted verbatim.
func (w *Writer) Build(m prompts.Mode, text string) *llm.CompletionRequest {
	return &llm.CompletionRequest{
		Model: w.settings.Model,
		Messages: []llm.Message{
			{Role: "system", Content: w.catalog.System(m)},
			{Role: "user", Content: w.catalog.Prompt(m, text)},
		},
		MaxTokens:   w.settings.MaxTokens,
		Temperature: llm.Temperature(w.settings.Temperature),
	}
}

// Reply sends one request for text under mode m. Failures never escape as
// errors or panics; they are carried in the returned Reply.
func (w *Writer) Reply(ctx context.Context, m prompts.Mode, text string) Reply {
	req := w.Build(m, text)

	start := time.Now()
	resp, err := w.complete(ctx, req)
	if err != nil {
		log.Printf("writer: mode=%s failed after %s: %v", m, time.Since(start).Round(time.Millisecond), err)
		return w.Failure(err)
	}

	log.Printf("writer: mode=%s chars_in=%d chars_out=%d tokens=%d elapsed=%s",
		m, len(text), len(resp.Content), resp.Usage.TotalTokens, time.Since(start).Round(time.Millisecond))
	return Reply{Text: resp.Content, Usage: resp.Usage, prefix: w.catalog.UI().ErrorPrefix}
}

// Failure wraps err as a failed Reply carrying the catalogue's error prefix
func (w *Writer) Failure(err error) Reply {
	return Reply{Err: err, prefix: w.catalog.UI().ErrorPrefix}
}

// GetReply is the plain-string form of Reply: the reply text on success,
// "<error prefix>: <details>" on failure.
func (w *Writer) GetReply(ctx context.Context, text string, m prompts.Mode) string {
	return w.Reply(ctx, m, text).String()
}

// CheckConnection runs the startup probe
func (w *Writer) CheckConnection(ctx context.Context) error {
	if err := w.completer.Ping(ctx); err != nil {
		log.Printf("writer: connection check failed: %v", err)
		return err
	}
	log.Printf("writer: connection check ok")
	return nil
}

func (w *Writer) complete(ctx context.Context, req *llm.CompletionRequest) (resp *llm.CompletionResponse, err error) {
	defer func() {
		if p := recover(); p != nil {
			resp, err = nil, fmt.Errorf("completion panicked: %v", p)
		}
	}()
	return w.completer.Complete(ctx, req)
}
