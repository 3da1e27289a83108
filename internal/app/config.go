package app

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/stor-a-gentic/server/internal/agent/completion"
	"github.com/stor-a-gentic/server/internal/agent/model"
	"github.com/stor-a-gentic/server/internal/core"
	"github.com/stor-a-gentic/server/internal/storage"
	logx "github.com/stor-a-gentic/server/pkg/logger"
	pkgredis "github.com/stor-a-gentic/server/pkg/redis"
)

// Config defines all configurable parameters, sourced from environment
// variables (loaded from .env for local runs). It is read once at startup.
type Config struct {
	Environment core.Environment `envconfig:"APP_ENV" default:"development"`
	HTTPAddr    string           `envconfig:"HTTP_ADDR" default:":8080"`

	// Infrastructure
	Store storage.Config
	Redis pkgredis.Config

	// Assistant
	Completion completion.Config
	Prompt     model.ResponsePromptConfig
	Knowledge  model.KnowledgeConfig
	Inquiry    model.InquiryConfig
}

// LoadConfig reads envFiles (a missing file is only a warning) and then the
// process environment.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			logx.Debug().Err(err).Str("file", f).Msg("could not load env file")
		}
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
