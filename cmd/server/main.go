package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	appfx "github.com/talespring/backend/internal/fx"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		appfx.ConfigModule,     // Provides: config.Config
		appfx.CurriculumModule, // Provides: *curriculum.KB
		appfx.AIModule,         // Provides: ai.Provider
		appfx.TTSModule,        // Provides: tts.Engine (named: "primary", "fallback")
		appfx.CoreModule,       // Provides: analysis, story, quiz and speech cores
		appfx.CacheModule,      // Provides: *storycache.Cache
		appfx.WorkerModule,     // Provides: *worker.CleanupWorker
		appfx.ServerModule,     // Starts HTTP server and cleanup worker

		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ConsoleLogger{W: log.Writer()}
		}),
	)

	// Run blocks until the app receives a shutdown signal
	app.Run()
}
