package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

// GeminiProvider implements Provider using the Google GenAI SDK.
type GeminiProvider struct {
	config ProviderConfig
}

func NewGeminiProvider(apiKey string) *GeminiProvider {
	return &GeminiProvider{config: ProviderConfig{
		Name:        "Gemini",
		APIKey:      apiKey,
		TextModel:   "gemini-2.0-flash",
		VisionModel: "gemini-2.0-flash",
	}}
}

func (p *GeminiProvider) Name() string {
	return p.config.Name
}

func (p *GeminiProvider) client(ctx context.Context) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: p.config.APIKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return client, nil
}

func (p *GeminiProvider) AnalyzeImage(ctx context.Context, imageB64, prompt string) (string, error) {
	client, err := p.client(ctx)
	if err != nil {
		return "", err
	}

	raw, err := DecodeImage(imageB64)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	log.Printf("[Gemini.Vision] Sending request (model=%s)...", p.config.VisionModel)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(raw, "image/png"),
		}, genai.RoleUser),
	}
	resp, err := client.Models.GenerateContent(ctx, p.config.VisionModel, contents, &genai.GenerateContentConfig{
		MaxOutputTokens: 1000,
	})
	if err != nil {
		return "", fmt.Errorf("generate content failed: %w", err)
	}

	reply := strings.TrimSpace(resp.Text())
	log.Printf("[Gemini.Vision] Success, response length: %d", len(reply))
	return reply, nil
}

func (p *GeminiProvider) GenerateText(ctx context.Context, system, prompt string, opts TextOptions) (string, error) {
	client, err := p.client(ctx)
	if err != nil {
		return "", err
	}

	log.Printf("[Gemini.Text] Sending request (model=%s)...", p.config.TextModel)

	cfg := &genai.GenerateContentConfig{}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if opts.Temperature > 0 {
		cfg.Temperature = genai.Ptr[float32](float32(opts.Temperature))
	}
	if opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxTokens)
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	resp, err := client.Models.GenerateContent(ctx, p.config.TextModel, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("generate content failed: %w", err)
	}

	reply := strings.TrimSpace(resp.Text())
	log.Printf("[Gemini.Text] Success, response length: %d", len(reply))
	return reply, nil
}
