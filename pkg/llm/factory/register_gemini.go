//go:build !nogemini

package factory

import (
	"doc-assistant-be/pkg/llm"
	"doc-assistant-be/pkg/llm/gemini"
)

func init() {
	Register(llm.ProviderGemini, func(cfg llm.Config) (llm.LLMProvider, error) {
		return gemini.NewGeminiProvider(cfg)
	})
}
