// Package tts synthesizes speech for story narration. The primary engine
// speaks the Microsoft Edge read-aloud websocket protocol; a Google Translate
// HTTP engine serves as fallback when the websocket service is unreachable.
package tts

import (
	"context"
	"io"
)

// Request describes a single synthesis job.
type Request struct {
	Text     string
	Voice    string
	Rate     string
	Volume   string
	Language string
}

// Engine turns text into encoded audio (MP3).
type Engine interface {
	Name() string
	Synthesize(ctx context.Context, req Request) ([]byte, error)
	SynthesizeStream(ctx context.Context, req Request, w io.Writer) error
}

// Voice describes an available neural voice.
type Voice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language"`
	Gender   string `json:"gender"`
	Child    bool   `json:"child"`
}
