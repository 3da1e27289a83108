package completion

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"
	einomodel "github.com/cloudwego/eino/components/model"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	"github.com/stor-a-gentic/server/internal/agent/model"
	logx "github.com/stor-a-gentic/server/pkg/logger"
)

// newObserver logs prompt rendering and model calls, including token cost
// when the model reports usage.
func newObserver(modelName string) einocb.Handler {
	return callbackHelper.NewHandlerHelper().
		ChatModel(newModelHandler(modelName)).
		Prompt(newPromptHandler()).
		Handler()
}

func newModelHandler(modelName string) *callbackHelper.ModelCallbackHandler {
	pricing := model.ResolvePricing(modelName)
	return &callbackHelper.ModelCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *einomodel.CallbackInput) context.Context {
			n := 0
			if input != nil {
				n = len(input.Messages)
			}
			logx.Debug().Str("component", info.Name).Str("model", modelName).Int("messages", n).Msg("completion started")
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *einomodel.CallbackOutput) context.Context {
			if output == nil || output.Message == nil || output.Message.ResponseMeta == nil {
				return ctx
			}
			usage := output.Message.ResponseMeta.Usage
			if usage == nil {
				return ctx
			}
			_, _, total := model.ComputeCost(usage, pricing)
			logx.Debug().
				Str("model", modelName).
				Int("prompt_tokens", usage.PromptTokens).
				Int("completion_tokens", usage.CompletionTokens).
				Float64("cost_usd", total).
				Msg("completion finished")
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Warn().Err(err).Str("component", info.Name).Str("model", modelName).Msg("completion failed")
			return ctx
		},
	}
}

func newPromptHandler() *callbackHelper.PromptCallbackHandler {
	return &callbackHelper.PromptCallbackHandler{
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Error().Err(err).Str("component", info.Name).Msg("prompt render failed")
			return ctx
		},
	}
}
