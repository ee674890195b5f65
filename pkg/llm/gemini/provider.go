package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"doc-assistant-be/pkg/llm"
)

const (
	DefaultModel     = "gemini-pro"
	DefaultBaseURL   = "https://generativelanguage.googleapis.com"
	DefaultMaxTokens = 1024
)

const (
	roleUser  = "user"
	roleModel = "model"
)

type GeminiProvider struct {
	BaseURL   string
	APIKey    string
	ModelName string
	Client    *http.Client
}

// Ensure GeminiProvider implements LLMProvider
var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(cfg llm.Config) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GeminiProvider{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		APIKey:    cfg.APIKey,
		ModelName: cfg.ModelOr(DefaultModel),
		Client:    cfg.HTTPClient(),
	}, nil
}

func (g *GeminiProvider) Name() string  { return llm.ProviderGemini }
func (g *GeminiProvider) Model() string { return g.ModelName }

// --- Request/Response structs (Internal to this package) ---

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content *geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// --- Interface Implementation ---

func (g *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(llm.Options{Model: g.ModelName, MaxTokens: DefaultMaxTokens}, opts...)

	payload := geminiRequest{}
	if options.SystemPrompt != "" {
		payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: options.SystemPrompt}}}
	}
	for _, msg := range history {
		switch msg.Role {
		case "system":
			payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: msg.Content}}}
		case "assistant", roleModel:
			payload.Contents = append(payload.Contents, geminiContent{Role: roleModel, Parts: []geminiPart{{Text: msg.Content}}})
		default:
			payload.Contents = append(payload.Contents, geminiContent{Role: roleUser, Parts: []geminiPart{{Text: msg.Content}}})
		}
	}
	payload.GenerationConfig = &geminiGenerationConfig{
		Temperature:     options.Temperature,
		MaxOutputTokens: options.MaxTokens,
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.BaseURL, options.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.Client.Do(req)
	if err != nil {
		return "", llm.NewProviderError(llm.ProviderGemini, err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", llm.NewProviderError(llm.ProviderGemini, fmt.Errorf("read response: %w", err))
	}

	if res.StatusCode != http.StatusOK {
		return "", llm.NewProviderError(llm.ProviderGemini, fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		))
	}

	var geminiRes geminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", llm.NewProviderError(llm.ProviderGemini, fmt.Errorf("unmarshal response: %w", err))
	}

	var sb strings.Builder
	if len(geminiRes.Candidates) > 0 && geminiRes.Candidates[0].Content != nil {
		for _, part := range geminiRes.Candidates[0].Content.Parts {
			sb.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", llm.NewProviderError(llm.ProviderGemini, llm.ErrEmptyResponse)
	}
	return text, nil
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return g.Chat(ctx, []llm.Message{{Role: roleUser, Content: prompt}}, opts...)
}
