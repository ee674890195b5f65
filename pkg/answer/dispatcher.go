package answer

import (
	"context"
	"errors"

	"doc-assistant-be/pkg/llm"
	"doc-assistant-be/pkg/llm/factory"
)

// Dispatcher sends prompts to exactly one backend chosen at startup. When the
// configured provider is unknown or compiled out, every Send returns that
// selection error without touching the network.
type Dispatcher struct {
	provider string
	backend  llm.LLMProvider
	err      error
}

// NewDispatcher resolves the backend for cfg. Unknown or unavailable
// providers are deferred to call time; any other failure, such as a missing
// API key, is returned so startup can abort.
func NewDispatcher(cfg llm.Config) (*Dispatcher, error) {
	provider := factory.NormalizeProvider(cfg.Provider)
	backend, err := factory.NewLLMProvider(cfg)
	if err != nil {
		if errors.Is(err, llm.ErrUnsupportedProvider) || errors.Is(err, llm.ErrProviderUnavailable) {
			return &Dispatcher{provider: provider, err: err}, nil
		}
		return nil, err
	}
	return &Dispatcher{provider: provider, backend: backend}, nil
}

// NewDispatcherFor wraps an already constructed backend.
func NewDispatcherFor(backend llm.LLMProvider) *Dispatcher {
	return &Dispatcher{provider: backend.Name(), backend: backend}
}

// Err reports the provider selection error, if any.
func (d *Dispatcher) Err() error {
	return d.err
}

func (d *Dispatcher) Provider() string {
	return d.provider
}

func (d *Dispatcher) Model() string {
	if d.backend == nil {
		return ""
	}
	return d.backend.Model()
}

// Send makes a single attempt; there are no retries.
func (d *Dispatcher) Send(ctx context.Context, prompt string) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	return d.backend.Generate(ctx, prompt, llm.WithSystemPrompt(SystemPrompt))
}
