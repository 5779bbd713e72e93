package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// estimateTokens returns approximate token count: ~4 bytes per token for
// Latin text, ~2 tokens per 3 characters for CJK text
func estimateTokens(text string) int {
	var cjk, other int
	for _, r := range text {
		if isCJK(r) {
			cjk++
		} else {
			other += utf8.RuneLen(r)
		}
	}
	return (other+3)/4 + (cjk*2+2)/3
}

// isCJK reports whether r is a Chinese, Japanese or Korean character,
// including CJK and full-width punctuation
func isCJK(r rune) bool {
	switch {
	case unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul):
		return true
	case r >= 0x3000 && r <= 0x303F: // CJK symbols and punctuation
		return true
	case r >= 0xFF00 && r <= 0xFFEF: // full-width forms
		return true
	}
	return false
}

// getContextLimit returns the context window size for a model
func getContextLimit(model string) int {
	model = strings.ToLower(model)

	// DeepSeek
	if strings.Contains(model, "deepseek") {
		return 64000
	}

	// GPT-4 variants
	if strings.Contains(model, "gpt-4o") || strings.Contains(model, "gpt-4-turbo") {
		return 128000
	}
	if strings.Contains(model, "gpt-4") {
		return 8000
	}

	// Llama variants
	if strings.Contains(model, "llama-3") || strings.Contains(model, "llama3") {
		return 128000
	}
	if strings.Contains(model, "llama") {
		return 8000
	}

	if strings.Contains(model, "mixtral") {
		return 32000
	}

	if strings.Contains(model, "qwen") {
		return 32000
	}

	// Default fallback
	return 8000
}
