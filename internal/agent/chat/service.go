// Package chat is the conversation entry point: resolve the message, hand
// the reply back, then log the exchange.
package chat

import (
	"context"
	"strings"

	"github.com/stor-a-gentic/server/internal/agent/model"
	logx "github.com/stor-a-gentic/server/pkg/logger"
)

type Resolver interface {
	Resolve(ctx context.Context, query string) model.ResolutionResult
}

type InquiryLogger interface {
	Log(message, response, userID string)
}

type Service struct {
	resolver Resolver
	logger   InquiryLogger
}

func New(resolver Resolver, logger InquiryLogger) *Service {
	return &Service{resolver: resolver, logger: logger}
}

// Ask answers message. Blank messages are skipped and ok is false; nothing
// is resolved or logged for them.
func (s *Service) Ask(ctx context.Context, message, userID string) (res model.ResolutionResult, ok bool) {
	if strings.TrimSpace(message) == "" {
		return model.ResolutionResult{}, false
	}
	res = s.resolver.Resolve(ctx, message)
	logx.Debug().Str("source", string(res.Source)).Str("user_id", userID).Msg("message answered")
	if s.logger != nil {
		s.logger.Log(message, res.Text, userID)
	}
	return res, true
}
