package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talespring/backend/internal/ai"
	"github.com/talespring/backend/internal/config"
	"github.com/talespring/backend/internal/models"
	"github.com/talespring/backend/internal/tts"
)

// ErrAudioNotFound signals an unknown audio id.
var ErrAudioNotFound = errors.New("audio not found")

// Bytes per second assumed for the 48kbit mp3 output; duration estimates
// divide file size by this, they are approximations.
const audioBytesPerSecond = 16000

var voiceMap = map[string]string{
	"en":    "en-US-AriaNeural",
	"en-US": "en-US-AriaNeural",
	"en-GB": "en-GB-SoniaNeural",
	"es":    "es-ES-ElviraNeural",
	"fr":    "fr-FR-DeniseNeural",
	"de":    "de-DE-KatjaNeural",
	"it":    "it-IT-ElsaNeural",
	"pt":    "pt-BR-FranciscaNeural",
	"zh":    "zh-CN-XiaoxiaoNeural",
	"ja":    "ja-JP-NanamiNeural",
	"ko":    "ko-KR-SunHiNeural",
	"hi":    "hi-IN-SwaraNeural",
	"ar":    "ar-SA-ZariyahNeural",
	"ru":    "ru-RU-SvetlanaNeural",
}

var childVoices = map[string]string{
	"en": "en-US-AnaNeural",
	"es": "es-MX-DaliaNeural",
	"fr": "fr-FR-EloiseNeural",
	"de": "de-DE-GiselaNeural",
}

// SpeechCore owns audio synthesis and the audio file store.
type SpeechCore struct {
	primary  tts.Engine
	fallback tts.Engine

	audioDir      string
	defaultVoice  string
	defaultRate   string
	defaultVolume string
	childVoice    bool
}

func NewSpeechCore(primary, fallback tts.Engine, cfg config.Config) *SpeechCore {
	return &SpeechCore{
		primary:       primary,
		fallback:      fallback,
		audioDir:      cfg.AudioDir,
		defaultVoice:  cfg.TTSVoice,
		defaultRate:   cfg.TTSRate,
		defaultVolume: cfg.TTSVolume,
		childVoice:    cfg.TTSChildVoice,
	}
}

// resolveVoice picks the voice to use: an explicit caller choice wins, then
// the child-friendly table when enabled, then the per-language table, then
// the configured default.
func (s *SpeechCore) resolveVoice(explicit, language string) string {
	if explicit != "" {
		return explicit
	}
	bare := language
	if i := strings.Index(bare, "-"); i > 0 {
		bare = bare[:i]
	}
	if s.childVoice {
		if v, ok := childVoices[language]; ok {
			return v
		}
		if v, ok := childVoices[bare]; ok {
			return v
		}
	}
	if v, ok := voiceMap[language]; ok {
		return v
	}
	if v, ok := voiceMap[bare]; ok {
		return v
	}
	return s.defaultVoice
}

// voiceLocale derives the SSML locale from a neural voice id
// (en-US-AriaNeural -> en-US).
func voiceLocale(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) >= 2 {
		return parts[0] + "-" + parts[1]
	}
	return "en-US"
}

// Generate synthesizes text into an mp3 file and returns its metadata.
// If the primary engine fails, the fallback engine is tried before giving up.
func (s *SpeechCore) Generate(ctx context.Context, req models.AudioRequest) (*models.AudioResponse, error) {
	voice := s.resolveVoice(req.Voice, req.Language)
	rate := req.Rate
	if rate == "" {
		rate = s.defaultRate
	}

	data, err := s.synthesize(ctx, tts.Request{
		Text:     req.Text,
		Voice:    voice,
		Rate:     rate,
		Volume:   s.defaultVolume,
		Language: voiceLocale(voice),
	})
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.audioDir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio dir: %w", err)
	}
	audioID := uuid.NewString()
	path := s.audioPath(audioID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write audio file: %w", err)
	}

	duration := math.Round(float64(len(data))/audioBytesPerSecond*100) / 100
	log.Printf("[Speech.Generate] id=%s voice=%s bytes=%d duration=%.2fs", audioID, voice, len(data), duration)

	return &models.AudioResponse{
		AudioID:         audioID,
		AudioURL:        "/api/audio/" + audioID,
		DurationSeconds: duration,
		Format:          "mp3",
	}, nil
}

func (s *SpeechCore) synthesize(ctx context.Context, req tts.Request) ([]byte, error) {
	data, err := s.primary.Synthesize(ctx, req)
	if err == nil {
		return data, nil
	}
	log.Printf("[Speech.synthesize] %s engine failed, trying %s: %v", s.primary.Name(), s.fallback.Name(), err)

	data, fbErr := s.fallback.Synthesize(ctx, req)
	if fbErr != nil {
		return nil, &ai.APICallError{
			Message:  fmt.Sprintf("speech synthesis failed (%s: %v)", s.primary.Name(), err),
			Provider: s.fallback.Name(),
			Err:      fbErr,
		}
	}
	return data, nil
}

// Stream forwards audio chunks to w as they arrive, bypassing file storage.
// A primary engine failure degrades to synthesizing the whole clip on the
// fallback engine and writing it in one piece.
func (s *SpeechCore) Stream(ctx context.Context, req models.AudioRequest, w io.Writer) error {
	voice := s.resolveVoice(req.Voice, req.Language)
	rate := req.Rate
	if rate == "" {
		rate = s.defaultRate
	}
	ttsReq := tts.Request{
		Text:     req.Text,
		Voice:    voice,
		Rate:     rate,
		Volume:   s.defaultVolume,
		Language: voiceLocale(voice),
	}

	err := s.primary.SynthesizeStream(ctx, ttsReq, w)
	if err == nil {
		return nil
	}
	log.Printf("[Speech.Stream] %s engine failed, trying %s: %v", s.primary.Name(), s.fallback.Name(), err)

	data, fbErr := s.fallback.Synthesize(ctx, ttsReq)
	if fbErr != nil {
		return fmt.Errorf("speech synthesis failed (%s: %v; %s: %v)", s.primary.Name(), err, s.fallback.Name(), fbErr)
	}
	_, err = w.Write(data)
	return err
}

// GetAudioFile returns the path of a stored audio file.
func (s *SpeechCore) GetAudioFile(audioID string) (string, error) {
	path := s.audioPath(audioID)
	if path == "" {
		return "", ErrAudioNotFound
	}
	if _, err := os.Stat(path); err != nil {
		return "", ErrAudioNotFound
	}
	return path, nil
}

// DeleteAudio removes a stored audio file.
func (s *SpeechCore) DeleteAudio(audioID string) error {
	path := s.audioPath(audioID)
	if path == "" {
		return ErrAudioNotFound
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrAudioNotFound
		}
		return fmt.Errorf("delete audio file: %w", err)
	}
	return nil
}

// CleanupOldFiles deletes audio files whose modification time is strictly
// older than maxAgeHours. A file aged exactly at the threshold survives.
func (s *SpeechCore) CleanupOldFiles(maxAgeHours int) (int, error) {
	entries, err := os.ReadDir(s.audioDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read audio dir: %w", err)
	}

	cutoff := time.Now().Add(-time.Duration(maxAgeHours) * time.Hour)
	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".mp3") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.audioDir, entry.Name())); err == nil {
				deleted++
			}
		}
	}
	if deleted > 0 {
		log.Printf("[Speech.CleanupOldFiles] Deleted %d file(s) older than %dh", deleted, maxAgeHours)
	}
	return deleted, nil
}

// Voices lists available voices, optionally filtered by language prefix.
func (s *SpeechCore) Voices(language string) []tts.Voice {
	all := tts.Catalog()
	if language == "" {
		return all
	}
	filtered := make([]tts.Voice, 0, len(all))
	for _, v := range all {
		if strings.HasPrefix(v.Language, language) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// audioPath maps an id to its file path, rejecting path traversal attempts.
func (s *SpeechCore) audioPath(audioID string) string {
	if audioID == "" || audioID != filepath.Base(audioID) || strings.Contains(audioID, "..") {
		return ""
	}
	return filepath.Join(s.audioDir, audioID+".mp3")
}
