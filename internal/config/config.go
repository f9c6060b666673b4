package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	Host        string
	Port        string
	GinMode     string
	CORSOrigins string

	// Optional JSON file overriding the built-in curriculum topics.
	CurriculumPath string

	AIProvider   string // openai | gemini | groq
	OpenAIAPIKey string
	GoogleAPIKey string
	GroqAPIKey   string

	TTSVoice      string
	TTSRate       string
	TTSVolume     string
	TTSChildVoice bool
	AudioDir      string

	// Cron spec for the audio cleanup sweep; empty disables the worker.
	CleanupSchedule string
	CleanupMaxAge   int // hours
}

// Load loads configuration from environment variables
func Load() Config {
	return Config{
		Host:        getEnv("HOST", "0.0.0.0"),
		Port:        getEnv("PORT", "8000"),
		GinMode:     getEnv("GIN_MODE", "release"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"),

		CurriculumPath: os.Getenv("CURRICULUM_PATH"),

		AIProvider:   getEnv("AI_PROVIDER", "openai"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),
		GroqAPIKey:   os.Getenv("GROQ_API_KEY"),

		TTSVoice:      getEnv("TTS_VOICE", "en-US-AriaNeural"),
		TTSRate:       getEnv("TTS_RATE", "+0%"),
		TTSVolume:     getEnv("TTS_VOLUME", "+0%"),
		TTSChildVoice: getEnvBool("TTS_CHILD_VOICE", false),
		AudioDir:      getEnv("AUDIO_DIR", "audio_output"),

		CleanupSchedule: getEnv("CLEANUP_SCHEDULE", "0 3 * * *"),
		CleanupMaxAge:   getEnvInt("CLEANUP_MAX_AGE_HOURS", 24),
	}
}

// APIKey returns the credential for the active AI provider.
func (c Config) APIKey() string {
	switch c.AIProvider {
	case "openai":
		return c.OpenAIAPIKey
	case "groq":
		return c.GroqAPIKey
	}
	return c.GoogleAPIKey
}

// CORSOriginList splits the configured origins into a list.
func (c Config) CORSOriginList() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
