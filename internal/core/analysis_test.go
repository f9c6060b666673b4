package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/talespring/backend/internal/ai"
	"github.com/talespring/backend/internal/models"
)

func TestProcessKeywordsCurriculumShortCircuit(t *testing.T) {
	provider := &fakeProvider{}
	c := NewAnalysisCore(provider, testKB(t))

	result, err := c.ProcessKeywords(context.Background(), []string{"plant", "sun"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.textCalls != 0 || provider.analyzeCalls != 0 {
		t.Error("vendor was called despite curriculum match")
	}
	if result.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", result.Confidence)
	}
	if result.SceneDescription != "Keywords: plant, sun" {
		t.Errorf("scene = %q", result.SceneDescription)
	}
	if len(result.DetectedObjects) != 0 {
		t.Errorf("objects = %v, want empty", result.DetectedObjects)
	}
	if len(result.SuggestedTopics) == 0 || result.SuggestedTopics[0] != "Photosynthesis" {
		t.Errorf("topics = %v, want Photosynthesis first", result.SuggestedTopics)
	}
	hasObjective := false
	for _, concept := range result.EducationalConcepts {
		if concept == "Photosynthesis" {
			t.Errorf("concepts %v hold the topic name, want learning objectives", result.EducationalConcepts)
		}
		if concept == "Identify parts of a plant" {
			t.Errorf("concepts %v hold a third objective, want at most two per topic", result.EducationalConcepts)
		}
		if concept == "Understand how plants produce food" {
			hasObjective = true
		}
	}
	if !hasObjective {
		t.Errorf("concepts %v missing the matched topic's objectives", result.EducationalConcepts)
	}
}

func TestProcessKeywordsAIFallbackOnFailure(t *testing.T) {
	provider := &fakeProvider{textErr: errors.New("vendor down")}
	c := NewAnalysisCore(provider, testKB(t))
	c.retryCfg = fastRetry()

	keywords := []string{"zzyzx", "qwfp"}
	result, err := c.ProcessKeywords(context.Background(), keywords)
	if err != nil {
		t.Fatalf("fallback should not error, got %v", err)
	}
	if provider.textCalls == 0 {
		t.Fatal("expected vendor call for unmatched keywords")
	}
	if result.Confidence != 0.5 {
		t.Errorf("confidence = %v, want 0.5", result.Confidence)
	}
	if result.SceneDescription != "Topic: zzyzx, qwfp" {
		t.Errorf("scene = %q", result.SceneDescription)
	}
	if len(result.EducationalConcepts) != 2 || result.EducationalConcepts[0] != "zzyzx" {
		t.Errorf("concepts = %v, want the input keywords", result.EducationalConcepts)
	}
	if len(result.SuggestedTopics) != 1 || result.SuggestedTopics[0] != "General Learning" {
		t.Errorf("topics = %v", result.SuggestedTopics)
	}
}

func TestProcessKeywordsAIPath(t *testing.T) {
	provider := &fakeProvider{textReply: `{
		"detected_objects": ["volcano"],
		"scene_description": "A volcano erupting",
		"educational_concepts": ["geology"],
		"suggested_topics": ["earth science"],
		"confidence": 0.8
	}`}
	c := NewAnalysisCore(provider, testKB(t))

	result, err := c.ProcessKeywords(context.Background(), []string{"zzyzx"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SceneDescription != "A volcano erupting" {
		t.Errorf("scene = %q", result.SceneDescription)
	}
	if result.Confidence != 0.8 {
		t.Errorf("confidence = %v", result.Confidence)
	}
}

func TestAnalyzeImageParsesAndEnriches(t *testing.T) {
	provider := &fakeProvider{analyzeReply: "```json\n" + `{
		"detected_objects": ["plant", "sun"],
		"scene_description": "A plant growing in sunlight",
		"educational_concepts": ["growth"],
		"suggested_topics": ["nature"],
		"confidence": 0.95
	}` + "\n```"}
	c := NewAnalysisCore(provider, testKB(t))

	result, err := c.AnalyzeImage(context.Background(), "aGVsbG8=", models.InputSketch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Confidence != 0.95 {
		t.Errorf("confidence = %v", result.Confidence)
	}

	foundTopic := false
	for _, topic := range result.SuggestedTopics {
		if topic == "Photosynthesis" {
			foundTopic = true
		}
	}
	if !foundTopic {
		t.Errorf("topics %v not enriched with Photosynthesis", result.SuggestedTopics)
	}
	if result.SuggestedTopics[0] != "nature" {
		t.Errorf("topics %v should keep the provider's entries first", result.SuggestedTopics)
	}

	foundObjective := false
	seen := map[string]int{}
	for _, concept := range result.EducationalConcepts {
		seen[strings.ToLower(concept)]++
		if concept == "Understand how plants produce food" {
			foundObjective = true
		}
		if concept == "Photosynthesis" {
			t.Errorf("concepts %v hold the topic name, want it in suggested topics", result.EducationalConcepts)
		}
	}
	if !foundObjective {
		t.Errorf("concepts %v not enriched with learning objectives", result.EducationalConcepts)
	}
	for concept, n := range seen {
		if n > 1 {
			t.Errorf("concept %q duplicated %d times", concept, n)
		}
	}
}

func TestEnrichMatchesOnSuggestedTopics(t *testing.T) {
	c := NewAnalysisCore(&fakeProvider{}, testKB(t))

	result := &models.ImageAnalysisResult{
		DetectedObjects:     []string{"zzyzx"},
		EducationalConcepts: []string{"qwfp"},
		SuggestedTopics:     []string{"water", "rain"},
	}
	c.enrich(result)

	found := false
	for _, topic := range result.SuggestedTopics {
		if topic == "Water Cycle" {
			found = true
		}
	}
	if !found {
		t.Errorf("topics %v: suggested topics were not fed to the matcher", result.SuggestedTopics)
	}
}

func TestAnalyzeImagePromptFramesInputType(t *testing.T) {
	provider := &fakeProvider{analyzeReply: `{"scene_description": "x", "confidence": 0.8}`}
	c := NewAnalysisCore(provider, testKB(t))

	if _, err := c.AnalyzeImage(context.Background(), "aGVsbG8=", models.InputSketch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(provider.lastPrompt, "This is a child's sketch drawing.") {
		t.Errorf("sketch prompt starts with %q", firstLine(provider.lastPrompt))
	}

	if _, err := c.AnalyzeImage(context.Background(), "aGVsbG8=", models.InputDiagram); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(provider.lastPrompt, "This is a textbook diagram or educational image.") {
		t.Errorf("diagram prompt starts with %q", firstLine(provider.lastPrompt))
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func TestAnalyzeImageBadJSONFallback(t *testing.T) {
	provider := &fakeProvider{analyzeReply: "I think this is a drawing of a cat playing with yarn."}
	c := NewAnalysisCore(provider, testKB(t))

	result, err := c.AnalyzeImage(context.Background(), "aGVsbG8=", models.InputSketch)
	if err != nil {
		t.Fatalf("parse failure must degrade, got error %v", err)
	}
	if len(result.DetectedObjects) != 1 || result.DetectedObjects[0] != "drawing" {
		t.Errorf("objects = %v", result.DetectedObjects)
	}
	if result.SceneDescription != provider.analyzeReply {
		t.Errorf("scene = %q", result.SceneDescription)
	}
	if result.Confidence != 0.5 {
		t.Errorf("confidence = %v", result.Confidence)
	}
}

func TestAnalyzeImageVendorFailure(t *testing.T) {
	provider := &fakeProvider{analyzeErr: errors.New("boom")}
	c := NewAnalysisCore(provider, testKB(t))
	c.retryCfg = fastRetry()

	_, err := c.AnalyzeImage(context.Background(), "aGVsbG8=", models.InputSketch)
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *ai.APICallError
	if !errors.As(err, &apiErr) {
		t.Errorf("error %T is not an APICallError", err)
	}
	if provider.analyzeCalls != 2 {
		t.Errorf("vendor called %d times, want 2 (retry budget)", provider.analyzeCalls)
	}
}

func TestParseAnalysisReplyClampsConfidence(t *testing.T) {
	result := parseAnalysisReply(`{"scene_description": "x", "confidence": 1.7}`)
	if result.Confidence != 1 {
		t.Errorf("confidence = %v, want clamped to 1", result.Confidence)
	}
	result = parseAnalysisReply(`{"scene_description": "x", "confidence": -0.2}`)
	if result.Confidence != 0 {
		t.Errorf("confidence = %v, want clamped to 0", result.Confidence)
	}
}

func TestTruncateLongReply(t *testing.T) {
	long := strings.Repeat("ab", 300)
	result := parseAnalysisReply(long)
	if got := len([]rune(result.SceneDescription)); got != 200 {
		t.Errorf("scene length = %d, want 200", got)
	}
}
