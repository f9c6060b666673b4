package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	translateTTSURL  = "https://translate.google.com/translate_tts"
	translateMaxText = 200
)

// translateLangs remaps neural-voice locales to the codes the translate
// endpoint understands. Unlisted locales fall back to their bare language.
var translateLangs = map[string]string{
	"en-US": "en",
	"en-GB": "en",
	"pt":    "pt",
	"zh":    "zh-CN",
	"zh-CN": "zh-CN",
}

// TranslateEngine is the HTTP fallback synthesizer. It ignores voice, rate
// and volume; only the language is honored.
type TranslateEngine struct {
	client *http.Client
}

func NewTranslateEngine() *TranslateEngine {
	return &TranslateEngine{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (e *TranslateEngine) Name() string {
	return "translate"
}

func (e *TranslateEngine) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	lang := translateLang(req.Language)
	chunks := splitText(req.Text, translateMaxText)
	log.Printf("[TTS.Translate] Synthesizing %d chunk(s), lang=%s", len(chunks), lang)

	var buf bytes.Buffer
	for _, chunk := range chunks {
		audio, err := e.fetchChunk(ctx, chunk, lang)
		if err != nil {
			return nil, err
		}
		buf.Write(audio)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("no audio data received")
	}
	return buf.Bytes(), nil
}

// SynthesizeStream is not supported; the endpoint returns whole files only.
func (e *TranslateEngine) SynthesizeStream(ctx context.Context, req Request, w io.Writer) error {
	return fmt.Errorf("streaming not supported by translate engine")
}

func (e *TranslateEngine) fetchChunk(ctx context.Context, text, lang string) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("q", text)
	q.Set("tl", lang)
	q.Set("client", "tw-ob")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, translateTTSURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch audio: unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func translateLang(language string) string {
	if language == "" {
		return "en"
	}
	if mapped, ok := translateLangs[language]; ok {
		return mapped
	}
	if i := strings.Index(language, "-"); i > 0 {
		return language[:i]
	}
	return language
}

// splitText breaks text into chunks of at most max bytes, cutting at word
// boundaries. A single word longer than max gets its own chunk.
func splitText(text string, max int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+1+len(word) > max {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
