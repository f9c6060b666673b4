package ai

import (
	"context"
	"encoding/base64"
	"strings"
)

// Provider defines the vendor capability surface: vision analysis and text
// generation. One implementation exists per vendor, selected at startup.
type Provider interface {
	Name() string
	// AnalyzeImage sends a vision prompt together with a base64-encoded
	// image (no data-URI prefix) and returns the raw model reply.
	AnalyzeImage(ctx context.Context, imageB64, prompt string) (string, error)
	// GenerateText sends a text prompt (with optional system prompt) and
	// returns the raw model reply.
	GenerateText(ctx context.Context, system, prompt string, opts TextOptions) (string, error)
}

// TextOptions tunes a text generation call.
type TextOptions struct {
	Temperature float64
	MaxTokens   int
}

// ProviderConfig holds configuration for a provider
type ProviderConfig struct {
	Name        string
	BaseURL     string
	APIKey      string
	TextModel   string
	VisionModel string
}

// CleanJSONReply strips markdown code-fence wrapping from a model reply so
// it can be fed to a JSON parser.
func CleanJSONReply(reply string) string {
	reply = strings.TrimSpace(reply)
	if strings.HasPrefix(reply, "```json") {
		reply = reply[len("```json"):]
	} else if strings.HasPrefix(reply, "```") {
		reply = reply[len("```"):]
	}
	if strings.HasSuffix(reply, "```") {
		reply = reply[:len(reply)-len("```")]
	}
	return strings.TrimSpace(reply)
}

// EnsureDataURI prefixes raw base64 image data with a PNG data-URI marker.
// Providers with OpenAI-style vision APIs expect the URI form.
func EnsureDataURI(imageB64 string) string {
	if strings.HasPrefix(imageB64, "data:") {
		return imageB64
	}
	return "data:image/png;base64," + imageB64
}

// DecodeImage strips any data-URI prefix and decodes the base64 payload.
// Providers with bytes-based vision APIs expect the raw form.
func DecodeImage(imageB64 string) ([]byte, error) {
	if strings.HasPrefix(imageB64, "data:") {
		if _, rest, ok := strings.Cut(imageB64, ","); ok {
			imageB64 = rest
		}
	}
	return base64.StdEncoding.DecodeString(imageB64)
}
