package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-assistant-be/pkg/llm"
)

func TestChat_ShapesRequestAndTrimsAnswer(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4-turbo-preview",
			"choices": [{"index": 0, "finish_reason": "stop",
				"message": {"role": "assistant", "content": "  The deadline is Friday.  "}}]
		}`))
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider(llm.Config{APIKey: "sk-test", BaseURL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, p.Model())

	text, err := p.Generate(context.Background(), "What is the deadline?", llm.WithSystemPrompt("be helpful"))
	require.NoError(t, err)
	assert.Equal(t, "The deadline is Friday.", text)

	assert.Equal(t, DefaultModel, got["model"])
	assert.EqualValues(t, DefaultMaxTokens, got["max_tokens"])
	assert.InDelta(t, DefaultTemperature, got["temperature"], 1e-9)
	messages := got["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
}

func TestChat_HTTPFailureIsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider(llm.Config{APIKey: "sk-bad", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrProvider))
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	_, err := NewOpenAIProvider(llm.Config{})
	assert.Error(t, err)
}
