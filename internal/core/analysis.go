// Package core contains the orchestration layer: it turns raw input into
// analysis results, analysis into stories, stories into quizzes and audio.
package core

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/talespring/backend/internal/ai"
	"github.com/talespring/backend/internal/curriculum"
	"github.com/talespring/backend/internal/models"
	"github.com/talespring/backend/internal/retry"
	"github.com/talespring/backend/prompts"
)

const keywordMatchConfidence = 0.9

// AnalysisCore interprets drawings, diagrams and keywords into a structured
// analysis that the story engine consumes.
type AnalysisCore struct {
	provider ai.Provider
	kb       *curriculum.KB
	retryCfg retry.Config
}

func NewAnalysisCore(provider ai.Provider, kb *curriculum.KB) *AnalysisCore {
	return &AnalysisCore{
		provider: provider,
		kb:       kb,
		retryCfg: retry.DefaultConfig(),
	}
}

// AnalyzeImage runs vision analysis on a base64-encoded image and enriches
// the result with matching curriculum topics. The input type steers the
// vision prompt: a sketch and a textbook diagram are framed differently.
func (c *AnalysisCore) AnalyzeImage(ctx context.Context, imageB64 string, inputType models.InputType) (*models.ImageAnalysisResult, error) {
	prompt := prompts.ImageAnalysis()
	if inputType == models.InputSketch {
		prompt = "This is a child's sketch drawing.\n\n" + prompt
	} else {
		prompt = "This is a textbook diagram or educational image.\n\n" + prompt
	}

	reply, err := retry.Do(ctx, "AnalyzeImage", c.retryCfg, func() (string, error) {
		return c.provider.AnalyzeImage(ctx, imageB64, prompt)
	})
	if err != nil {
		return nil, ai.WrapVendorError(c.provider.Name(), "image analysis failed", err)
	}

	result := parseAnalysisReply(reply)
	c.enrich(result)
	log.Printf("[Analysis.AnalyzeImage] objects=%d concepts=%d confidence=%.2f",
		len(result.DetectedObjects), len(result.EducationalConcepts), result.Confidence)
	return result, nil
}

// ProcessKeywords interprets free-form keywords. When the curriculum already
// covers them the AI is not consulted at all.
func (c *AnalysisCore) ProcessKeywords(ctx context.Context, keywords []string) (*models.ImageAnalysisResult, error) {
	joined := strings.Join(keywords, ", ")
	matched := c.kb.FindMatching(keywords, 3)
	if len(matched) > 0 {
		names := make([]string, 0, len(matched))
		objectives := make([]string, 0, 2*len(matched))
		for _, t := range matched {
			names = append(names, t.Name)
			for i, obj := range t.LearningObjectives {
				if i >= 2 {
					break
				}
				objectives = append(objectives, obj)
			}
		}
		log.Printf("[Analysis.ProcessKeywords] Matched %d curriculum topic(s)", len(matched))
		return &models.ImageAnalysisResult{
			DetectedObjects:     []string{},
			SceneDescription:    "Keywords: " + joined,
			EducationalConcepts: objectives,
			SuggestedTopics:     names,
			Confidence:          keywordMatchConfidence,
		}, nil
	}

	reply, err := retry.Do(ctx, "ProcessKeywords", c.retryCfg, func() (string, error) {
		return c.provider.GenerateText(ctx, "", prompts.KeywordInterpretation(joined), ai.TextOptions{
			Temperature: 0.7,
			MaxTokens:   500,
		})
	})
	if err != nil {
		log.Printf("[Analysis.ProcessKeywords] AI interpretation failed, using keywords as-is: %v", err)
		return &models.ImageAnalysisResult{
			DetectedObjects:     []string{},
			SceneDescription:    "Topic: " + joined,
			EducationalConcepts: keywords,
			SuggestedTopics:     []string{"General Learning"},
			Confidence:          0.5,
		}, nil
	}

	result := parseAnalysisReply(reply)
	c.enrich(result)
	return result, nil
}

// parseAnalysisReply decodes the provider's JSON reply. A reply that is not
// valid JSON still produces a usable result instead of an error.
func parseAnalysisReply(reply string) *models.ImageAnalysisResult {
	cleaned := ai.CleanJSONReply(reply)

	var result models.ImageAnalysisResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		log.Printf("[Analysis.parseAnalysisReply] Invalid JSON from provider: %v", err)
		return &models.ImageAnalysisResult{
			DetectedObjects:     []string{"drawing"},
			SceneDescription:    truncate(reply, 200),
			EducationalConcepts: []string{"general learning"},
			SuggestedTopics:     []string{"creative expression"},
			Confidence:          0.5,
		}
	}

	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}
	return &result
}

// enrich folds matching curriculum topics into the analysis: topic names join
// the suggested topics and up to two learning objectives per topic join the
// educational concepts, both deduplicated against what is there.
func (c *AnalysisCore) enrich(result *models.ImageAnalysisResult) {
	terms := make([]string, 0,
		len(result.DetectedObjects)+len(result.EducationalConcepts)+len(result.SuggestedTopics))
	terms = append(terms, result.DetectedObjects...)
	terms = append(terms, result.EducationalConcepts...)
	terms = append(terms, result.SuggestedTopics...)

	matched := c.kb.FindMatching(terms, 3)
	if len(matched) == 0 {
		return
	}

	seenTopics := make(map[string]bool, len(result.SuggestedTopics))
	for _, topic := range result.SuggestedTopics {
		seenTopics[strings.ToLower(topic)] = true
	}
	seenConcepts := make(map[string]bool, len(result.EducationalConcepts))
	for _, concept := range result.EducationalConcepts {
		seenConcepts[strings.ToLower(concept)] = true
	}

	for _, topic := range matched {
		if key := strings.ToLower(topic.Name); !seenTopics[key] {
			seenTopics[key] = true
			result.SuggestedTopics = append(result.SuggestedTopics, topic.Name)
		}
		for i, obj := range topic.LearningObjectives {
			if i >= 2 {
				break
			}
			if key := strings.ToLower(obj); !seenConcepts[key] {
				seenConcepts[key] = true
				result.EducationalConcepts = append(result.EducationalConcepts, obj)
			}
		}
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
