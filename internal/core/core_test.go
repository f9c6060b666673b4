package core

import (
	"context"
	"testing"
	"time"

	"github.com/talespring/backend/internal/ai"
	"github.com/talespring/backend/internal/curriculum"
	"github.com/talespring/backend/internal/retry"
)

// fakeProvider is a scriptable ai.Provider for orchestration tests.
type fakeProvider struct {
	name string

	analyzeReply string
	analyzeErr   error
	analyzeCalls int

	textReply string
	textErr   error
	textCalls int

	lastSystem string
	lastPrompt string
}

func (f *fakeProvider) Name() string {
	if f.name == "" {
		return "Fake"
	}
	return f.name
}

func (f *fakeProvider) AnalyzeImage(ctx context.Context, imageB64, prompt string) (string, error) {
	f.analyzeCalls++
	f.lastPrompt = prompt
	return f.analyzeReply, f.analyzeErr
}

func (f *fakeProvider) GenerateText(ctx context.Context, system, prompt string, opts ai.TextOptions) (string, error) {
	f.textCalls++
	f.lastSystem = system
	f.lastPrompt = prompt
	return f.textReply, f.textErr
}

func testKB(t *testing.T) *curriculum.KB {
	t.Helper()
	kb, err := curriculum.NewKB("")
	if err != nil {
		t.Fatalf("NewKB failed: %v", err)
	}
	return kb
}

// fastRetry keeps failing-vendor tests quick.
func fastRetry() retry.Config {
	return retry.Config{
		MaxAttempts: 2,
		InitialWait: time.Millisecond,
		MaxWait:     2 * time.Millisecond,
		Multiplier:  2.0,
	}
}
