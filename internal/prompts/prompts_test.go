package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedCatalogsLoad(t *testing.T) {
	names := Locales()
	require.Equal(t, []string{"en", "zh"}, names)

	for _, locale := range names {
		t.Run(locale, func(t *testing.T) {
			c, err := Load(locale)
			require.NoError(t, err)
			assert.Equal(t, locale, c.Locale())

			for _, m := range All() {
				assert.NotEmpty(t, c.System(m), "system for %s", m)
				assert.NotEmpty(t, c.Label(m), "label for %s", m)
				assert.NotEmpty(t, c.Description(m), "description for %s", m)
				assert.NotEqual(t, c.System(m), c.Description(m), "hint must differ from persona for %s", m)
				assert.Equal(t, 1, strings.Count(c.Template(m), Placeholder))
			}
		})
	}
}

func TestLoadDefaultsToEnglish(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "en", c.Locale())
	assert.Equal(t, "AI feedback", c.UI().Heading)
	assert.Equal(t, "An error occurred", c.UI().ErrorPrefix)
}

func TestLoadUnknownLocale(t *testing.T) {
	_, err := Load("fr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown locale "fr"`)
}

func TestPromptInsertsTextVerbatim(t *testing.T) {
	c := MustLoad("en")

	tests := []struct {
		name string
		text string
	}{
		{"plain", "I is happy"},
		{"surrounding whitespace", "  spaced out \n"},
		{"placeholder in input", "literal {{text}} stays"},
		{"empty", ""},
		{"multiline", "line one\nline two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, m := range All() {
				want := strings.Replace(c.Template(m), Placeholder, tt.text, 1)
				assert.Equal(t, want, c.Prompt(m, tt.text))
			}
		})
	}
}

func TestGrammarTemplate(t *testing.T) {
	c := MustLoad("en")
	assert.Equal(t,
		"Please check and correct the grammar errors in the following text:\n\nI is happy",
		c.Prompt(GrammarCheck, "I is happy"))
}

func TestChineseCatalogStrings(t *testing.T) {
	c := MustLoad("zh")
	assert.Equal(t, "我是一个语法检查专家，将帮助检查并修正文章中的语法错误。", c.System(GrammarCheck))
	assert.Equal(t, "请检查并修正以下文本中的语法错误：\n\nI is happy", c.Prompt(GrammarCheck, "I is happy"))
	assert.Equal(t, "当前模式: 语法检查 - 检查并修正语法错误", c.CurrentMode(GrammarCheck))
	assert.Equal(t, "请输入文本内容", c.UI().EmptyWarning)
}

func TestLookupOfUndefinedModePanics(t *testing.T) {
	c := MustLoad("en")
	assert.Panics(t, func() { c.System(Mode(42)) })
	assert.Panics(t, func() { c.Prompt(Mode(-1), "x") })
}

func TestParseRejectsIncompleteCatalog(t *testing.T) {
	base := `
ui:
  title: t
  connecting: c
  probe_failed: p
  unavailable: u
  mode_label: m
  current_mode: "%s - %s"
  input_label: i
  placeholder: ph
  submit: s
  busy: b
  heading: h
  empty_warning: w
  error_prefix: e
  copied: cp
modes:
`
	mode := func(key, tmpl string) string {
		return "  " + key + ":\n    label: l\n    description: d\n    system: s\n    template: \"" + tmpl + "\"\n"
	}
	complete := mode("writing", "a {{text}}") + mode("polish", "b {{text}}") +
		mode("grammar", "c {{text}}") + mode("punctuation", "d {{text}}")

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name: "valid",
			data: base + complete,
		},
		{
			name:    "missing mode",
			data:    base + mode("writing", "a {{text}}") + mode("polish", "b {{text}}") + mode("grammar", "c {{text}}"),
			wantErr: `missing mode "punctuation"`,
		},
		{
			name:    "template without placeholder",
			data:    base + mode("writing", "a") + mode("polish", "b {{text}}") + mode("grammar", "c {{text}}") + mode("punctuation", "d {{text}}"),
			wantErr: "exactly once",
		},
		{
			name:    "unknown mode key",
			data:    base + complete + mode("summarize", "e {{text}}"),
			wantErr: `unknown mode "summarize"`,
		},
		{
			name:    "missing ui string",
			data:    strings.Replace(base, "  heading: h\n", "", 1) + complete,
			wantErr: `missing ui string "heading"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse("test", []byte(tt.data))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
