package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/talespring/backend/internal/ai"
	"github.com/talespring/backend/internal/models"
	"github.com/talespring/backend/internal/retry"
	"github.com/talespring/backend/prompts"
)

const (
	minQuestions      = 1
	maxQuestions      = 5
	placeholderOption = "Not applicable"
)

var difficultyByAge = map[string]string{
	"5-7":   "easy",
	"8-10":  "medium",
	"11-13": "hard",
}

var difficultyGuidance = map[string]string{
	"easy":   "Use very simple wording. Ask about things that happened directly in the story.",
	"medium": "Mix recall questions with simple why and how questions.",
	"hard":   "Include why and how questions that require connecting ideas from different parts of the story.",
}

// QuizCore generates comprehension quizzes for stories.
type QuizCore struct {
	provider ai.Provider
	retryCfg retry.Config
}

func NewQuizCore(provider ai.Provider) *QuizCore {
	return &QuizCore{
		provider: provider,
		retryCfg: retry.DefaultConfig(),
	}
}

// Generate builds a quiz for the story. numQuestions is clamped to [1,5].
// A malformed vendor reply degrades to a single generic question; the result
// always satisfies the quiz shape guarantees.
func (c *QuizCore) Generate(ctx context.Context, story *models.StoryResponse, numQuestions int) (*models.QuizResponse, error) {
	if numQuestions < minQuestions {
		numQuestions = minQuestions
	}
	if numQuestions > maxQuestions {
		numQuestions = maxQuestions
	}

	difficulty, ok := difficultyByAge[story.AgeGroup]
	if !ok {
		difficulty = "medium"
	}

	prompt := prompts.Quiz(numQuestions, story.AgeGroup, difficulty,
		difficultyGuidance[difficulty], story.Title, story.Content, story.ConceptsCovered)

	reply, err := retry.Do(ctx, "GenerateQuiz", c.retryCfg, func() (string, error) {
		return c.provider.GenerateText(ctx, prompts.QuizSystem(), prompt, ai.TextOptions{
			Temperature: 0.7,
			MaxTokens:   1500,
		})
	})
	if err != nil {
		return nil, ai.WrapVendorError(c.provider.Name(), "quiz generation failed", err)
	}

	questions := parseQuizReply(reply)
	if len(questions) > numQuestions {
		questions = questions[:numQuestions]
	}
	if len(questions) < numQuestions {
		log.Printf("[Quiz.Generate] Got %d of %d requested questions", len(questions), numQuestions)
	}

	return &models.QuizResponse{
		Questions:  questions,
		StoryID:    story.StoryID,
		Difficulty: difficulty,
	}, nil
}

// rawQuestion mirrors the vendor JSON; CorrectAnswer is a pointer so a
// missing field is distinguishable from index 0.
type rawQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// parseQuizReply decodes and repairs the vendor's question list. Unusable
// questions are dropped; an unparseable reply yields one generic question.
func parseQuizReply(reply string) []models.QuizQuestion {
	cleaned := ai.CleanJSONReply(reply)

	var raw []rawQuestion
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		log.Printf("[Quiz.parseQuizReply] Invalid JSON from provider: %v", err)
		return []models.QuizQuestion{fallbackQuestion()}
	}

	questions := make([]models.QuizQuestion, 0, len(raw))
	for _, q := range raw {
		if q.Question == "" || len(q.Options) == 0 || q.CorrectAnswer == nil {
			continue
		}
		options := q.Options
		for len(options) < 4 {
			options = append(options, placeholderOption)
		}
		if len(options) > 4 {
			options = options[:4]
		}
		answer := *q.CorrectAnswer
		if answer < 0 || answer > 3 {
			answer = 0
		}
		questions = append(questions, models.QuizQuestion{
			Question:      q.Question,
			Options:       options,
			CorrectAnswer: answer,
			Explanation:   q.Explanation,
		})
	}
	if len(questions) == 0 {
		return []models.QuizQuestion{fallbackQuestion()}
	}
	return questions
}

func fallbackQuestion() models.QuizQuestion {
	return models.QuizQuestion{
		Question: "What did you learn from this story?",
		Options: []string{
			"Something new and interesting",
			"I'm not sure",
			"Nothing new",
			"I need to read it again",
		},
		CorrectAnswer: 0,
		Explanation:   "Every story teaches us something new!",
	}
}

// Validate checks a quiz for structural soundness. It is a sanity gate for
// callers, not run automatically during generation.
func (c *QuizCore) Validate(quiz *models.QuizResponse) error {
	if len(quiz.Questions) == 0 {
		return fmt.Errorf("quiz has no questions")
	}
	for i, q := range quiz.Questions {
		if q.Question == "" {
			return fmt.Errorf("question %d has empty text", i)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("question %d has answer index %d out of bounds", i, q.CorrectAnswer)
		}
		for j, opt := range q.Options {
			if opt == "" {
				return fmt.Errorf("question %d option %d is empty", i, j)
			}
		}
	}
	return nil
}
