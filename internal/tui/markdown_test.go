package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdownPlainProseIsExact(t *testing.T) {
	for _, text := range []string{"I am happy.", "我很高兴。"} {
		assert.Equal(t, text, renderMarkdown(DefaultMarkdownStyle, 80, text))
	}
}

func TestRenderMarkdownFormats(t *testing.T) {
	out := renderMarkdown(DefaultMarkdownStyle, 80, "# Title\n\n- one\n- two")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "two")
	assert.NotContains(t, out, "- one")
}

func TestTrimRendered(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"margin and padding", "\n  I am happy.      \n\n", "I am happy."},
		{"keeps relative indent", "\n  a\n    b\n", "a\n  b"},
		{"inner blank lines kept", "  a\n\n  b", "a\n\nb"},
		{"empty", "\n\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trimRendered(tt.in))
		})
	}
}
