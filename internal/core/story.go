package core

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/talespring/backend/internal/ai"
	"github.com/talespring/backend/internal/curriculum"
	"github.com/talespring/backend/internal/models"
	"github.com/talespring/backend/internal/retry"
	"github.com/talespring/backend/prompts"
)

const defaultStoryTitle = "An Amazing Adventure"

// ageSettings is the writing profile for one age bracket.
type ageSettings struct {
	MinWords       int
	MaxWords       int
	Vocabulary     string
	SentenceLength string
	Themes         []string
}

var ageProfiles = map[string]ageSettings{
	"5-7": {
		MinWords: 150, MaxWords: 300,
		Vocabulary: "simple", SentenceLength: "short",
		Themes: []string{"friendship", "family", "animals", "nature", "helping others"},
	},
	"8-10": {
		MinWords: 300, MaxWords: 500,
		Vocabulary: "intermediate", SentenceLength: "medium",
		Themes: []string{"adventure", "teamwork", "problem-solving", "curiosity", "courage"},
	},
	"11-13": {
		MinWords: 500, MaxWords: 800,
		Vocabulary: "advanced", SentenceLength: "varied",
		Themes: []string{"discovery", "challenges", "identity", "innovation", "responsibility"},
	},
}

// StoryCore turns an analysis result into an age-appropriate story.
type StoryCore struct {
	provider ai.Provider
	kb       *curriculum.KB
	retryCfg retry.Config
}

func NewStoryCore(provider ai.Provider, kb *curriculum.KB) *StoryCore {
	return &StoryCore{
		provider: provider,
		kb:       kb,
		retryCfg: retry.DefaultConfig(),
	}
}

// Generate produces a story for the given analysis, age group and language.
// Quiz and audio fields are left for downstream callers to fill.
func (c *StoryCore) Generate(ctx context.Context, analysis *models.ImageAnalysisResult, ageGroup, language string) (*models.StoryResponse, error) {
	settings, ok := ageProfiles[ageGroup]
	if !ok {
		ageGroup = models.DefaultAgeGroup
		settings = ageProfiles[ageGroup]
	}

	themes := c.themeHints(analysis.SuggestedTopics)
	if len(themes) == 0 {
		themes = settings.Themes
	}

	concepts := analysis.EducationalConcepts
	if len(concepts) > 3 {
		concepts = concepts[:3]
	}

	prompt := prompts.Story(ageGroup, analysis.SceneDescription, analysis.DetectedObjects,
		concepts, themes, settings.MinWords, settings.MaxWords,
		settings.Vocabulary, settings.SentenceLength)
	if language != "" && language != "en" {
		prompt += fmt.Sprintf("\n\nWrite the story in the language with code %q.", language)
	}

	reply, err := retry.Do(ctx, "GenerateStory", c.retryCfg, func() (string, error) {
		return c.provider.GenerateText(ctx, prompts.StorySystem(), prompt, ai.TextOptions{
			Temperature: 0.8,
			MaxTokens:   2000,
		})
	})
	if err != nil {
		return nil, ai.WrapVendorError(c.provider.Name(), "story generation failed", err)
	}

	covered := analysis.EducationalConcepts
	if len(covered) > 5 {
		covered = covered[:5]
	}

	title, content, summary := parseStoryReply(reply)
	story := &models.StoryResponse{
		StoryID:         uuid.NewString(),
		Title:           title,
		Content:         content,
		Summary:         summary,
		ConceptsCovered: covered,
		AgeGroup:        ageGroup,
		WordCount:       len(strings.Fields(content)),
	}
	log.Printf("[Story.Generate] id=%s title=%q words=%d", story.StoryID, story.Title, story.WordCount)
	return story, nil
}

// themeHints matches each suggested topic individually against the curriculum
// and collects up to three story themes from the first matches.
func (c *StoryCore) themeHints(topics []string) []string {
	var hints []string
	for _, topic := range topics {
		if len(hints) >= 3 {
			break
		}
		matched := c.kb.FindMatching([]string{topic}, 1)
		if len(matched) == 0 {
			continue
		}
		for _, theme := range matched[0].StoryThemes {
			if len(hints) >= 3 {
				break
			}
			hints = append(hints, theme)
		}
	}
	return hints
}

// parseStoryReply splits a reply into title, content and summary. The title
// is the first line starting with TITLE: (case-sensitive) or a markdown
// heading. Content runs from the line after a STORY: marker up to a SUMMARY:
// marker, both matched as case-insensitive substrings anywhere in the line;
// the summary is everything after the first SUMMARY: line. A reply without a
// STORY marker is kept whole as content; a missing summary is synthesized
// from the first 50 words of content.
func parseStoryReply(reply string) (title, content, summary string) {
	title = defaultStoryTitle
	content = reply

	lines := strings.Split(strings.TrimSpace(reply), "\n")

	for _, line := range lines {
		if strings.HasPrefix(line, "TITLE:") {
			title = strings.TrimSpace(strings.ReplaceAll(line, "TITLE:", ""))
			break
		}
		if strings.HasPrefix(line, "# ") {
			title = strings.TrimSpace(line[2:])
			break
		}
	}

	storyStart := -1
	storyEnd := len(lines)
	for i, line := range lines {
		upper := strings.ToUpper(line)
		if strings.Contains(upper, "STORY:") {
			storyStart = i + 1
		} else if strings.Contains(upper, "SUMMARY:") && storyStart >= 0 {
			storyEnd = i
			break
		}
	}
	if storyStart >= 0 {
		content = strings.TrimSpace(strings.Join(lines[storyStart:storyEnd], "\n"))
	}

	for i, line := range lines {
		if strings.Contains(strings.ToUpper(line), "SUMMARY:") {
			summary = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
			break
		}
	}
	if summary == "" {
		words := strings.Fields(content)
		if len(words) > 50 {
			words = words[:50]
		}
		summary = strings.Join(words, " ") + "..."
	}
	return title, content, summary
}
