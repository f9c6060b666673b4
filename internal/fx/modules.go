package fx

import (
	"log"

	"go.uber.org/fx"

	"github.com/talespring/backend/internal/ai"
	"github.com/talespring/backend/internal/config"
	"github.com/talespring/backend/internal/core"
	"github.com/talespring/backend/internal/curriculum"
	"github.com/talespring/backend/internal/storycache"
	"github.com/talespring/backend/internal/tts"
	"github.com/talespring/backend/internal/worker"
)

// ============================================================================
// FX MODULES - Group related providers together
// ============================================================================

// ConfigModule provides application configuration
var ConfigModule = fx.Module("config",
	fx.Provide(config.Load),
)

// CurriculumModule provides the curriculum knowledge base
var CurriculumModule = fx.Module("curriculum",
	fx.Provide(NewCurriculumKB),
)

// AIModule provides the active AI provider
var AIModule = fx.Module("ai",
	fx.Provide(NewAIProvider),
)

// TTSModule provides the speech synthesis engines
var TTSModule = fx.Module("tts",
	fx.Provide(NewTTSEngines),
)

// CoreModule provides business logic cores
var CoreModule = fx.Module("core",
	fx.Provide(
		core.NewAnalysisCore,
		core.NewStoryCore,
		core.NewQuizCore,
		NewSpeechCore,
	),
)

// CacheModule provides the in-memory story cache
var CacheModule = fx.Module("cache",
	fx.Provide(storycache.New),
)

// WorkerModule provides the audio cleanup worker
var WorkerModule = fx.Module("worker",
	fx.Provide(worker.NewCleanupWorker),
)

// ============================================================================
// PROVIDER FUNCTIONS - Constructors that FX will call automatically
// ============================================================================

// NewCurriculumKB loads the curriculum knowledge base
func NewCurriculumKB(cfg config.Config) (*curriculum.KB, error) {
	kb, err := curriculum.NewKB(cfg.CurriculumPath)
	if err != nil {
		return nil, err
	}
	log.Printf("[FX] Curriculum KB initialized (%d topics)", len(kb.AllTopics()))
	return kb, nil
}

// NewAIProvider creates the configured AI provider
func NewAIProvider(cfg config.Config) (ai.Provider, error) {
	provider, err := ai.NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("[FX] AIProvider initialized (%s)", provider.Name())
	return provider, nil
}

// TTSEngines groups the primary and fallback synthesis engines
type TTSEngines struct {
	fx.Out
	Primary  tts.Engine `name:"primary"`
	Fallback tts.Engine `name:"fallback"`
}

// NewTTSEngines creates both speech engines
func NewTTSEngines() TTSEngines {
	log.Printf("[FX] TTS engines initialized (edge + translate fallback)")
	return TTSEngines{
		Primary:  tts.NewEdgeEngine(),
		Fallback: tts.NewTranslateEngine(),
	}
}

// SpeechCoreParams groups dependencies for SpeechCore
type SpeechCoreParams struct {
	fx.In
	Primary  tts.Engine `name:"primary"`
	Fallback tts.Engine `name:"fallback"`
	Config   config.Config
}

// NewSpeechCore creates the speech service
func NewSpeechCore(p SpeechCoreParams) *core.SpeechCore {
	c := core.NewSpeechCore(p.Primary, p.Fallback, p.Config)
	log.Printf("[FX] SpeechCore initialized (audio dir: %s)", p.Config.AudioDir)
	return c
}
