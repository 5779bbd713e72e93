package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads and restores them after the test
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		APIKeyEnv, PathEnv, "QUILL_PROVIDER", "QUILL_BASE_URL", "QUILL_MODEL",
		"QUILL_LOCALE", "QUILL_MODE", "QUILL_LOG", "QUILL_TIMEOUT", "QUILL_MAX_TOKENS",
	}
	for _, p := range Providers {
		if p.KeyEnv != "" {
			keys = append(keys, p.KeyEnv)
		}
	}
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := load(filepath.Join(dir, ".env"), filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "deepseek", cfg.Provider)
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.BaseURL)
	assert.Equal(t, "deepseek-chat", cfg.Model)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 2000, cfg.MaxTokens)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Equal(t, "en", cfg.Locale)
	assert.Empty(t, cfg.APIKey, "missing key is not an error")
}

func TestLoadReadsKeyFromProviderEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEEPSEEK_API_KEY", "sk-deepseek-123456")
	dir := t.TempDir()

	cfg, err := load(filepath.Join(dir, ".env"), filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sk-deepseek-123456", cfg.APIKey)
	assert.Equal(t, "DEEPSEEK_API_KEY", cfg.KeySource())
}

func TestLoadGenericKeyOverridesProviderKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEEPSEEK_API_KEY", "provider-key")
	t.Setenv(APIKeyEnv, "generic-key")
	dir := t.TempDir()

	cfg, err := load(filepath.Join(dir, ".env"), filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "generic-key", cfg.APIKey)
	assert.Equal(t, APIKeyEnv, cfg.KeySource())
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "DEEPSEEK_API_KEY=from-dotenv\nQUILL_LOCALE=zh\n")

	cfg, err := load(envFile, filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.APIKey)
	assert.Equal(t, "zh", cfg.Locale)
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEEPSEEK_API_KEY", "from-env")
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "DEEPSEEK_API_KEY=from-dotenv\n")

	cfg, err := load(envFile, filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey)
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
provider: openai
model: gpt-4o
temperature: 0.2
max_tokens: 512
timeout: 45s
locale: zh
mode: grammar
log_file: /tmp/quill.log
`)

	cfg, err := load(filepath.Join(dir, ".env"), path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "https://api.openai.com/v1", cfg.BaseURL)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, 0.2, cfg.Temperature)
	assert.Equal(t, 512, cfg.MaxTokens)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, "zh", cfg.Locale)
	assert.Equal(t, "grammar", cfg.Mode)
	assert.Equal(t, "/tmp/quill.log", cfg.LogFile)
	assert.Equal(t, "sk-openai", cfg.APIKey)
}

func TestLoadYAMLIgnoresAPIKeyField(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "api_key: should-not-be-read\n")

	cfg, err := load(filepath.Join(dir, ".env"), path)
	require.NoError(t, err)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "model: from-file\nmax_tokens: 100\n")
	t.Setenv("QUILL_MODEL", "from-env")
	t.Setenv("QUILL_MAX_TOKENS", "300")
	t.Setenv("QUILL_TIMEOUT", "2m")

	cfg, err := load(filepath.Join(dir, ".env"), path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Model)
	assert.Equal(t, 300, cfg.MaxTokens)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     map[string]string
		wantErr string
	}{
		{name: "unknown provider", yaml: "provider: nope\n", wantErr: "unknown provider: nope"},
		{name: "custom without base url", yaml: "provider: custom\nmodel: m\n", wantErr: "requires base_url"},
		{name: "custom without model", yaml: "provider: custom\nbase_url: http://x\n", wantErr: "requires model"},
		{name: "temperature out of range", yaml: "temperature: 3\n", wantErr: "temperature"},
		{name: "zero max tokens", yaml: "max_tokens: 0\n", wantErr: "max_tokens"},
		{name: "malformed yaml", yaml: "provider: [\n", wantErr: "parse"},
		{name: "bad timeout env", env: map[string]string{"QUILL_TIMEOUT": "soon"}, wantErr: "QUILL_TIMEOUT"},
		{name: "bad max tokens env", env: map[string]string{"QUILL_MAX_TOKENS": "many"}, wantErr: "QUILL_MAX_TOKENS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			dir := t.TempDir()
			path := writeFile(t, dir, "config.yaml", tt.yaml)

			_, err := load(filepath.Join(dir, ".env"), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigPathHonoursEnv(t *testing.T) {
	t.Setenv(PathEnv, "/etc/quill.yaml")
	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/quill.yaml", path)
}

func TestMaskedAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", "Not set"},
		{"short", "****"},
		{"sk-1234567890abcd", "sk-1****abcd"},
	}
	for _, tt := range tests {
		c := &Config{APIKey: tt.key}
		assert.Equal(t, tt.want, c.MaskedAPIKey())
	}
}

func TestGetProvider(t *testing.T) {
	p := GetProvider("deepseek")
	require.NotNil(t, p)
	assert.Equal(t, "DEEPSEEK_API_KEY", p.KeyEnv)
	assert.Nil(t, GetProvider("missing"))
}

func TestProvidersAreConsistent(t *testing.T) {
	for _, p := range Providers {
		t.Run(p.ID, func(t *testing.T) {
			assert.NotEmpty(t, p.Name)
			assert.NotEmpty(t, p.Description)
			if p.KeyEnv != "" {
				assert.NotEmpty(t, p.SignupURL, "hosted providers point at their key page")
			}
			if p.DefaultModel != "" {
				assert.Contains(t, p.Models, p.DefaultModel)
			}
		})
	}
}
