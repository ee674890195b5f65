package llm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedProvider means the configured identifier names no known backend.
	ErrUnsupportedProvider = errors.New("unsupported LLM provider")
	// ErrProviderUnavailable means the backend is known but was compiled out.
	ErrProviderUnavailable = errors.New("LLM provider unavailable")
	// ErrProvider matches every *ProviderError.
	ErrProvider = errors.New("LLM provider error")
	// ErrEmptyResponse is wrapped in a ProviderError when a backend returns no text.
	ErrEmptyResponse = errors.New("empty response from model")
)

func UnsupportedProvider(name string) error {
	return fmt.Errorf("%w: %s. Supported providers: %s", ErrUnsupportedProvider, name, strings.Join(KnownProviders, ", "))
}

func ProviderUnavailable(name string) error {
	return fmt.Errorf("%w: %s support is not available in this build", ErrProviderUnavailable, name)
}

// ProviderError wraps a transport or SDK failure from one backend. The
// underlying message is preserved.
type ProviderError struct {
	Provider string
	Err      error
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s API error: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}
