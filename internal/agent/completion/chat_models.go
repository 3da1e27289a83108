package completion

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"

	logx "github.com/stor-a-gentic/server/pkg/logger"
)

// NewChatModel creates the chat model for the configured provider.
func NewChatModel(ctx context.Context, config Config) (einomodel.BaseChatModel, error) {
	switch config.Provider {
	case ProviderGemini, "":
		return newGeminiChatModel(ctx, config)
	case ProviderOpenAI:
		return newOpenAIChatModel(config.APIKey, config.BaseURL, config.ModelName(), config.MaxTokens, config.Temperature), nil
	case ProviderGroq:
		baseURL := config.BaseURL
		if baseURL == "" {
			baseURL = groqBaseURL
		}
		return newOpenAIChatModel(config.APIKey, baseURL, config.ModelName(), config.MaxTokens, config.Temperature), nil
	default:
		return nil, fmt.Errorf("unknown completion provider %q", config.Provider)
	}
}

func newGeminiChatModel(ctx context.Context, config Config) (*gemini.ChatModel, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	temperature := config.Temperature
	maxTokens := config.MaxTokens
	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.ModelName(),
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini chat model")
		return nil, fmt.Errorf("error creating Gemini chat model: %w", err)
	}
	return chatModel, nil
}
