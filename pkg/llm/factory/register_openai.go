//go:build !noopenai

package factory

import (
	"doc-assistant-be/pkg/llm"
	"doc-assistant-be/pkg/llm/openai"
)

func init() {
	Register(llm.ProviderOpenAI, func(cfg llm.Config) (llm.LLMProvider, error) {
		return openai.NewOpenAIProvider(cfg)
	})
}
