package fx

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"go.uber.org/fx"

	"github.com/talespring/backend/internal/config"
	"github.com/talespring/backend/internal/core"
	"github.com/talespring/backend/internal/server"
	"github.com/talespring/backend/internal/storycache"
	"github.com/talespring/backend/internal/worker"
)

// ServerModule starts the HTTP server and background worker
var ServerModule = fx.Module("server",
	fx.Invoke(
		StartServer,
		StartCleanupWorker,
	),
)

// ServerParams groups everything the HTTP server needs
type ServerParams struct {
	fx.In
	Lifecycle fx.Lifecycle
	Config    config.Config
	Analysis  *core.AnalysisCore
	Story     *core.StoryCore
	Quiz      *core.QuizCore
	Speech    *core.SpeechCore
	Stories   *storycache.Cache
}

// StartServer wires the router into an http.Server with lifecycle management
func StartServer(p ServerParams) {
	router := server.NewRouter(server.Deps{
		Config:   p.Config,
		Analysis: p.Analysis,
		Story:    p.Story,
		Quiz:     p.Quiz,
		Speech:   p.Speech,
		Stories:  p.Stories,
	})

	addr := net.JoinHostPort(p.Config.Host, p.Config.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			lis, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			go func() {
				log.Printf("[FX] HTTP Server listening on %s", addr)
				if err := srv.Serve(lis); err != nil && err != http.ErrServerClosed {
					log.Printf("[FX] HTTP Server error: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Printf("[FX] Shutting down HTTP server...")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

// StartCleanupWorker starts the audio cleanup worker
func StartCleanupWorker(lc fx.Lifecycle, w *worker.CleanupWorker) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return w.Start()
		},
		OnStop: func(ctx context.Context) error {
			w.Stop()
			return nil
		},
	})
}
