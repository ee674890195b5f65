//go:build !noollama

package factory

import (
	"doc-assistant-be/pkg/llm"
	"doc-assistant-be/pkg/llm/ollama"
)

func init() {
	Register(llm.ProviderOllama, func(cfg llm.Config) (llm.LLMProvider, error) {
		return ollama.NewOllamaProvider(cfg), nil
	})
}
