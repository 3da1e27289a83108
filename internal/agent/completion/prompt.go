package completion

import (
	_ "embed"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/stor-a-gentic/server/internal/agent/model"
)

//go:embed template/system_prompt.txt
var coreSystemPrompt string

const queryVar = "Query"

// newChatTemplate renders the system prompt and the visitor's message. Only
// the current message is sent; there is no conversation history.
func newChatTemplate() prompt.ChatTemplate {
	return prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(coreSystemPrompt),
		schema.UserMessage("{{."+queryVar+"}}"),
	)
}

func templateVars(config model.ResponsePromptConfig, query string) map[string]any {
	return map[string]any{
		"BusinessName": config.BusinessName,
		"BusinessType": config.BusinessType,
		queryVar:       query,
	}
}
