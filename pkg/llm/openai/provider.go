package openai

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"doc-assistant-be/pkg/llm"
)

const (
	DefaultModel       = "gpt-4-turbo-preview"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
)

type OpenAIProvider struct {
	client openai.Client
	model  string
}

// Ensure OpenAIProvider implements LLMProvider
var _ llm.LLMProvider = &OpenAIProvider{}

func NewOpenAIProvider(cfg llm.Config) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(cfg.HTTPClient()),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIProvider{
		client: openai.NewClient(opts...),
		model:  cfg.ModelOr(DefaultModel),
	}, nil
}

func (p *OpenAIProvider) Name() string  { return llm.ProviderOpenAI }
func (p *OpenAIProvider) Model() string { return p.model }

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(llm.Options{Model: p.model, MaxTokens: DefaultMaxTokens}, opts...)
	temperature := DefaultTemperature
	if options.Temperature != nil {
		temperature = *options.Temperature
	}

	params := openai.ChatCompletionNewParams{
		Model:       options.Model,
		Messages:    convertMessages(options.SystemPrompt, history),
		MaxTokens:   openai.Int(int64(options.MaxTokens)),
		Temperature: openai.Float(temperature),
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", llm.NewProviderError(llm.ProviderOpenAI, err)
	}
	if len(resp.Choices) == 0 {
		return "", llm.NewProviderError(llm.ProviderOpenAI, llm.ErrEmptyResponse)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", llm.NewProviderError(llm.ProviderOpenAI, llm.ErrEmptyResponse)
	}
	return text, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func convertMessages(systemPrompt string, history []llm.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	if systemPrompt != "" {
		result = append(result, openai.SystemMessage(systemPrompt))
	}
	for _, msg := range history {
		switch msg.Role {
		case "system":
			result = append(result, openai.SystemMessage(msg.Content))
		case "assistant", "model":
			result = append(result, openai.AssistantMessage(msg.Content))
		default:
			result = append(result, openai.UserMessage(msg.Content))
		}
	}
	return result
}
