package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllStartsWithDefault(t *testing.T) {
	modes := All()
	require.Len(t, modes, 4)
	assert.Equal(t, WritingAssistant, modes[0])
	assert.Equal(t, []Mode{WritingAssistant, Polish, GrammarCheck, PunctuationCheck}, modes)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", WritingAssistant, false},
		{"writing", WritingAssistant, false},
		{"Polish", Polish, false},
		{" grammar ", GrammarCheck, false},
		{"punctuation", PunctuationCheck, false},
		{"summarize", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextPrevWrap(t *testing.T) {
	assert.Equal(t, Polish, WritingAssistant.Next())
	assert.Equal(t, WritingAssistant, PunctuationCheck.Next())
	assert.Equal(t, PunctuationCheck, WritingAssistant.Prev())
	assert.Equal(t, GrammarCheck, PunctuationCheck.Prev())
}

func TestString(t *testing.T) {
	assert.Equal(t, "grammar", GrammarCheck.String())
	assert.Equal(t, "mode(9)", Mode(9).String())
	assert.False(t, Mode(9).Valid())
}
