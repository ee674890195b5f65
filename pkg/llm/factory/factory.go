// Package factory builds the configured LLM backend. Adapters register
// themselves from build-tagged files, so a backend compiled out with its tag
// is reported as unavailable rather than unknown.
package factory

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"doc-assistant-be/pkg/llm"
)

// Constructor builds one backend from its configuration.
type Constructor func(cfg llm.Config) (llm.LLMProvider, error)

var (
	mu       sync.RWMutex
	registry = map[string]Constructor{}
)

// Register makes a backend constructor available under name.
func Register(name string, c Constructor) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = c
}

// Registered lists the backends compiled into this build.
func Registered() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NormalizeProvider lower-cases and trims a provider identifier.
func NormalizeProvider(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func NewLLMProvider(cfg llm.Config) (llm.LLMProvider, error) {
	name := NormalizeProvider(cfg.Provider)

	mu.RLock()
	constructor, ok := registry[name]
	mu.RUnlock()

	if !ok {
		if llm.IsKnownProvider(name) {
			return nil, llm.ProviderUnavailable(name)
		}
		return nil, llm.UnsupportedProvider(cfg.Provider)
	}
	if cfg.APIKey == "" {
		return nil, errors.New("LLM API key is required")
	}

	cfg.Provider = name
	return constructor(cfg)
}
