package core

import (
	"context"
	"strings"
	"testing"

	"github.com/talespring/backend/internal/models"
)

func TestParseStoryReplyFullMarkers(t *testing.T) {
	reply := "TITLE: The Sunny Garden\nSTORY:\nOnce upon a time a little seed woke up.\nIt grew and grew.\nSUMMARY:\nA seed grows into a plant."

	title, content, summary := parseStoryReply(reply)
	if title != "The Sunny Garden" {
		t.Errorf("title = %q", title)
	}
	if !strings.Contains(content, "little seed") || strings.Contains(content, "SUMMARY") {
		t.Errorf("content = %q", content)
	}
	if summary != "A seed grows into a plant." {
		t.Errorf("summary = %q", summary)
	}
}

func TestParseStoryReplyCaseInsensitiveSections(t *testing.T) {
	reply := "TITLE: Hello\nstory:\nbody text here\nsummary:\nshort version"

	_, content, summary := parseStoryReply(reply)
	if content != "body text here" {
		t.Errorf("content = %q", content)
	}
	if summary != "short version" {
		t.Errorf("summary = %q", summary)
	}
}

func TestParseStoryReplyDecoratedMarkers(t *testing.T) {
	reply := "**STORY:**\nA fox learned to count.\nHere is the SUMMARY:\nA fox counts."

	_, content, summary := parseStoryReply(reply)
	if content != "A fox learned to count." {
		t.Errorf("content = %q, want markers recognized anywhere in the line", content)
	}
	if summary != "A fox counts." {
		t.Errorf("summary = %q", summary)
	}
}

func TestParseStoryReplyMarkerLineTextDropped(t *testing.T) {
	reply := "STORY: same-line text\nnext-line text\nSUMMARY: tail"

	_, content, summary := parseStoryReply(reply)
	if content != "next-line text" {
		t.Errorf("content = %q, want it to start on the line after the marker", content)
	}
	// Nothing follows the SUMMARY line, so the summary is synthesized.
	if summary != "next-line text..." {
		t.Errorf("summary = %q", summary)
	}
}

func TestParseStoryReplyFirstTitleWins(t *testing.T) {
	reply := "TITLE: First\nTITLE: Second\nSTORY:\nbody"

	title, _, _ := parseStoryReply(reply)
	if title != "First" {
		t.Errorf("title = %q, want the first TITLE line", title)
	}
}

func TestParseStoryReplyMarkdownTitleFallback(t *testing.T) {
	reply := "# The Shape Kingdom\nSTORY: Circles and squares lived together."

	title, _, _ := parseStoryReply(reply)
	if title != "The Shape Kingdom" {
		t.Errorf("title = %q", title)
	}
}

func TestParseStoryReplyDefaultTitle(t *testing.T) {
	title, _, _ := parseStoryReply("STORY: no title anywhere")
	if title != "An Amazing Adventure" {
		t.Errorf("title = %q", title)
	}
}

func TestParseStoryReplyNoStoryMarker(t *testing.T) {
	reply := "Once there was a dragon who loved math."

	_, content, _ := parseStoryReply(reply)
	if content != reply {
		t.Errorf("content = %q, want the whole reply", content)
	}
}

func TestParseStoryReplySynthesizedSummary(t *testing.T) {
	words := make([]string, 80)
	for i := range words {
		words[i] = "word"
	}
	reply := "STORY:\n" + strings.Join(words, " ")

	_, _, summary := parseStoryReply(reply)
	if !strings.HasSuffix(summary, "...") {
		t.Errorf("summary %q missing ellipsis", summary)
	}
	if got := len(strings.Fields(summary)); got != 50 {
		t.Errorf("summary has %d words, want 50", got)
	}
}

func TestGenerateWordCountAndDefaults(t *testing.T) {
	provider := &fakeProvider{textReply: "TITLE: T\nSTORY:\none two three four five\nSUMMARY:\ns"}
	c := NewStoryCore(provider, testKB(t))

	analysis := &models.ImageAnalysisResult{
		SceneDescription:    "a garden",
		DetectedObjects:     []string{"plant"},
		EducationalConcepts: []string{"growth", "light", "soil", "water"},
	}
	story, err := c.Generate(context.Background(), analysis, "not-a-bracket", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if story.AgeGroup != "8-10" {
		t.Errorf("age group = %q, want default 8-10", story.AgeGroup)
	}
	if story.WordCount != 5 {
		t.Errorf("word count = %d, want 5", story.WordCount)
	}
	if story.StoryID == "" {
		t.Error("missing story id")
	}
	if story.Quiz != nil || story.AudioAvailable {
		t.Error("quiz/audio must start unset")
	}
	if len(story.ConceptsCovered) != 4 {
		t.Errorf("concepts covered = %v, want all four", story.ConceptsCovered)
	}
	// The prompt itself carries at most three concepts.
	if strings.Contains(provider.lastPrompt, "water") {
		t.Error("prompt should only embed the first three concepts")
	}
}

func TestGenerateCapsConceptsCovered(t *testing.T) {
	provider := &fakeProvider{textReply: "TITLE: T\nSTORY:\nbody\nSUMMARY:\ns"}
	c := NewStoryCore(provider, testKB(t))

	analysis := &models.ImageAnalysisResult{
		SceneDescription:    "a lab",
		EducationalConcepts: []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7"},
	}
	story, err := c.Generate(context.Background(), analysis, "8-10", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(story.ConceptsCovered) != 5 {
		t.Errorf("concepts covered = %v, want the first five", story.ConceptsCovered)
	}
	if story.ConceptsCovered[4] != "c5" {
		t.Errorf("concepts covered out of order: %v", story.ConceptsCovered)
	}
}

func TestThemeHintsFromCurriculum(t *testing.T) {
	c := NewStoryCore(&fakeProvider{}, testKB(t))

	hints := c.themeHints([]string{"plant"})
	if len(hints) == 0 || len(hints) > 3 {
		t.Fatalf("hints = %v, want 1..3 entries", hints)
	}
	if hints[0] != "magical garden" {
		t.Errorf("hints[0] = %q, want the photosynthesis themes first", hints[0])
	}
}

func TestThemeHintsFallbackToBracket(t *testing.T) {
	provider := &fakeProvider{textReply: "TITLE: T\nSTORY: x\nSUMMARY: s"}
	c := NewStoryCore(provider, testKB(t))

	analysis := &models.ImageAnalysisResult{SceneDescription: "abstract art", SuggestedTopics: []string{"zzyzx"}}
	if _, err := c.Generate(context.Background(), analysis, "5-7", "en"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(provider.lastPrompt, "friendship") {
		t.Errorf("prompt should fall back to the bracket themes, got %q", provider.lastPrompt)
	}
}
