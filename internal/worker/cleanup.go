// Package worker runs background maintenance jobs.
package worker

import (
	"log"

	"github.com/robfig/cron/v3"

	"github.com/talespring/backend/internal/config"
	"github.com/talespring/backend/internal/core"
)

// CleanupWorker periodically removes audio files past the configured age.
type CleanupWorker struct {
	speech   *core.SpeechCore
	schedule string
	maxAge   int
	cron     *cron.Cron
}

func NewCleanupWorker(speech *core.SpeechCore, cfg config.Config) *CleanupWorker {
	return &CleanupWorker{
		speech:   speech,
		schedule: cfg.CleanupSchedule,
		maxAge:   cfg.CleanupMaxAge,
	}
}

// Start registers the sweep on the cron schedule. An empty schedule disables
// the worker.
func (w *CleanupWorker) Start() error {
	if w.schedule == "" {
		log.Printf("[Worker.Cleanup] Disabled (no schedule configured)")
		return nil
	}

	w.cron = cron.New()
	if _, err := w.cron.AddFunc(w.schedule, w.sweep); err != nil {
		return err
	}
	w.cron.Start()
	log.Printf("[Worker.Cleanup] Scheduled %q, max age %dh", w.schedule, w.maxAge)
	return nil
}

// Stop halts the scheduler; a sweep already running completes.
func (w *CleanupWorker) Stop() {
	if w.cron != nil {
		w.cron.Stop()
	}
}

func (w *CleanupWorker) sweep() {
	deleted, err := w.speech.CleanupOldFiles(w.maxAge)
	if err != nil {
		log.Printf("[Worker.Cleanup] Sweep failed: %v", err)
		return
	}
	log.Printf("[Worker.Cleanup] Sweep done, deleted %d file(s)", deleted)
}
