package testutil

import (
	"context"
	"sync"

	"doc-assistant-be/pkg/llm"
)

// FakeLLM is a recording llm.LLMProvider. It returns Reply, or Err when set.
type FakeLLM struct {
	Reply string
	Err   error

	mu      sync.Mutex
	prompts []string
}

var _ llm.LLMProvider = &FakeLLM{}

func (f *FakeLLM) Name() string  { return "fake" }
func (f *FakeLLM) Model() string { return "fake-model" }

func (f *FakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(history) > 0 {
		f.prompts = append(f.prompts, history[len(history)-1].Content)
	}
	if f.Err != nil {
		return "", f.Err
	}
	return f.Reply, nil
}

func (f *FakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

// Prompts returns every prompt received, oldest first.
func (f *FakeLLM) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}
