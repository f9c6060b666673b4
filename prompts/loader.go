// Package prompts holds the instruction templates sent to AI providers.
// Templates live in .txt files embedded at build time so they can be tuned
// without touching Go code.
package prompts

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed *.txt
var files embed.FS

func load(name string) string {
	data, err := files.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("embedded prompt %s: %v", name, err))
	}
	return strings.TrimSpace(string(data))
}

// ImageAnalysis is the vision prompt for analyzing a child's drawing.
func ImageAnalysis() string {
	return load("image_analysis.txt")
}

// KeywordInterpretation builds the prompt for interpreting story keywords.
func KeywordInterpretation(keywords string) string {
	return fmt.Sprintf(load("keyword_interpretation.txt"), keywords)
}

// StorySystem is the system prompt for story generation.
func StorySystem() string {
	return load("story_system.txt")
}

// Story builds the user prompt for story generation.
func Story(ageGroup, scene string, objects, concepts, themes []string, minWords, maxWords int, vocabulary, sentenceLength string) string {
	return fmt.Sprintf(load("story_user.txt"),
		ageGroup,
		scene,
		joinOrNone(objects),
		joinOrNone(concepts),
		joinOrNone(themes),
		minWords,
		maxWords,
		vocabulary,
		sentenceLength,
	)
}

// QuizSystem is the system prompt for quiz generation.
func QuizSystem() string {
	return load("quiz_system.txt")
}

// Quiz builds the user prompt for quiz generation.
func Quiz(numQuestions int, ageGroup, difficulty, guidance, title, story string, concepts []string) string {
	return fmt.Sprintf(load("quiz_user.txt"),
		numQuestions,
		ageGroup,
		difficulty,
		guidance,
		title,
		story,
		joinOrNone(concepts),
	)
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none specified"
	}
	return strings.Join(items, ", ")
}
