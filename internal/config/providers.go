package config

// ProviderInfo describes an OpenAI-compatible chat-completion endpoint
type ProviderInfo struct {
	ID           string
	Name         string
	Description  string
	BaseURL      string
	KeyEnv       string // environment variable holding the API key
	SignupURL    string
	Models       []string
	DefaultModel string
}

var Providers = []ProviderInfo{
	{
		ID:           "deepseek",
		Name:         "DeepSeek",
		Description:  "Default, cheap and capable",
		BaseURL:      "https://api.deepseek.com/v1",
		KeyEnv:       "DEEPSEEK_API_KEY",
		SignupURL:    "https://platform.deepseek.com/api_keys",
		Models:       []string{"deepseek-chat", "deepseek-reasoner"},
		DefaultModel: "deepseek-chat",
	},
	{
		ID:           "openai",
		Name:         "OpenAI",
		Description:  "GPT-4o, most capable",
		BaseURL:      "https://api.openai.com/v1",
		KeyEnv:       "OPENAI_API_KEY",
		SignupURL:    "https://platform.openai.com/api-keys",
		Models:       []string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo"},
		DefaultModel: "gpt-4o-mini",
	},
	{
		ID:           "groq",
		Name:         "Groq",
		Description:  "Very fast, cheap",
		BaseURL:      "https://api.groq.com/openai/v1",
		KeyEnv:       "GROQ_API_KEY",
		SignupURL:    "https://console.groq.com/keys",
		Models:       []string{"llama-3.1-70b-versatile", "llama-3.1-8b-instant", "mixtral-8x7b-32768"},
		DefaultModel: "llama-3.1-70b-versatile",
	},
	{
		ID:           "openrouter",
		Name:         "OpenRouter",
		Description:  "Access all models",
		BaseURL:      "https://openrouter.ai/api/v1",
		KeyEnv:       "OPENROUTER_API_KEY",
		SignupURL:    "https://openrouter.ai/keys",
		Models:       []string{"deepseek/deepseek-chat", "openai/gpt-4o", "meta-llama/llama-3.1-70b-instruct"},
		DefaultModel: "deepseek/deepseek-chat",
	},
	{
		ID:           "ollama",
		Name:         "Ollama",
		Description:  "Local, free, private",
		BaseURL:      "http://localhost:11434/v1",
		Models:       []string{"llama3.1:8b", "qwen2.5:7b", "mistral:7b"},
		DefaultModel: "llama3.1:8b",
	},
	{
		ID:          "custom",
		Name:        "Custom",
		Description: "Any OpenAI-compatible endpoint (set base_url)",
	},
}

func GetProvider(id string) *ProviderInfo {
	for _, p := range Providers {
		if p.ID == id {
			return &p
		}
	}
	return nil
}
