package completion

import "time"

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderGroq   = "groq"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// Config is the completion credential pair plus model options. An empty
// APIKey leaves the completion tier unavailable.
type Config struct {
	Provider    string        `envconfig:"COMPLETION_PROVIDER" default:"gemini"`
	APIKey      string        `envconfig:"COMPLETION_API_KEY"`
	BaseURL     string        `envconfig:"COMPLETION_BASE_URL"`
	Model       string        `envconfig:"COMPLETION_MODEL"`
	MaxTokens   int           `envconfig:"COMPLETION_MAX_TOKENS" default:"500"`
	Temperature float32       `envconfig:"COMPLETION_TEMPERATURE" default:"0.5"`
	Timeout     time.Duration `envconfig:"COMPLETION_TIMEOUT" default:"20s"`
}

// ModelName returns the configured model or the provider default.
func (c Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderGroq:
		return "llama-3.1-8b-instant"
	default:
		return "gemini-2.5-flash-lite"
	}
}
