//go:build !noanthropic

package factory

import (
	"doc-assistant-be/pkg/llm"
	"doc-assistant-be/pkg/llm/anthropic"
)

func init() {
	Register(llm.ProviderAnthropic, func(cfg llm.Config) (llm.LLMProvider, error) {
		return anthropic.NewAnthropicProvider(cfg)
	})
}
