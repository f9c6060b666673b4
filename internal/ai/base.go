package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// BaseProvider implements Provider for OpenAI-compatible chat APIs using the
// official openai-go SDK. OpenAI itself and Groq both go through it; they
// differ only in base URL and model names.
type BaseProvider struct {
	config ProviderConfig
	opts   []option.RequestOption
}

// NewBaseProvider creates a provider for any OpenAI-compatible endpoint.
func NewBaseProvider(config ProviderConfig) *BaseProvider {
	opts := []option.RequestOption{option.WithAPIKey(config.APIKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}
	return &BaseProvider{config: config, opts: opts}
}

// NewOpenAIProvider creates the OpenAI provider (GPT-4o for text and vision).
func NewOpenAIProvider(apiKey string) *BaseProvider {
	return NewBaseProvider(ProviderConfig{
		Name:        "OpenAI",
		APIKey:      apiKey,
		TextModel:   "gpt-4o",
		VisionModel: "gpt-4o",
	})
}

// NewGroqProvider creates the Groq provider (Llama models, OpenAI-compatible API).
func NewGroqProvider(apiKey string) *BaseProvider {
	return NewBaseProvider(ProviderConfig{
		Name:        "Groq",
		BaseURL:     "https://api.groq.com/openai/v1",
		APIKey:      apiKey,
		TextModel:   "llama-3.3-70b-versatile",
		VisionModel: "llama-3.2-90b-vision-preview",
	})
}

func (p *BaseProvider) Name() string {
	return p.config.Name
}

// AnalyzeImage sends a vision request with the image as a data URI.
func (p *BaseProvider) AnalyzeImage(ctx context.Context, imageB64, prompt string) (string, error) {
	if p.config.VisionModel == "" {
		return "", fmt.Errorf("vision model not configured for %s", p.config.Name)
	}

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(prompt),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: EnsureDataURI(imageB64),
		}),
	}

	return p.send(ctx, "Vision", openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.config.VisionModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(parts),
		},
		MaxTokens: openai.Int(1000),
	})
}

// GenerateText sends a plain chat completion request.
func (p *BaseProvider) GenerateText(ctx context.Context, system, prompt string, opts TextOptions) (string, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if system != "" {
		msgs = append(msgs, openai.SystemMessage(system))
	}
	msgs = append(msgs, openai.UserMessage(prompt))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.config.TextModel),
		Messages: msgs,
	}
	if opts.Temperature > 0 {
		params.Temperature = openai.Float(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}

	return p.send(ctx, "Text", params)
}

func (p *BaseProvider) send(ctx context.Context, operation string, params openai.ChatCompletionNewParams) (string, error) {
	log.Printf("[%s.%s] Sending request (model=%s)...", p.config.Name, operation, params.Model)

	client := openai.NewClient(p.opts...)
	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	log.Printf("[%s.%s] Success, response length: %d", p.config.Name, operation, len(content))
	return content, nil
}
