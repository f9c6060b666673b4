package models

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// InputType identifies what kind of input the client sent.
type InputType string

const (
	InputSketch  InputType = "sketch"
	InputDiagram InputType = "diagram"
	InputKeyword InputType = "keyword"
)

// ParseInputType validates a raw input type string.
func ParseInputType(s string) (InputType, error) {
	switch InputType(s) {
	case InputSketch, InputDiagram, InputKeyword:
		return InputType(s), nil
	}
	return "", fmt.Errorf("invalid input_type %q (must be sketch, diagram or keyword)", s)
}

// IsImage reports whether the input type carries image data.
func (t InputType) IsImage() bool {
	return t == InputSketch || t == InputDiagram
}

// AgeGroups are the supported target brackets, youngest first.
var AgeGroups = []string{"5-7", "8-10", "11-13"}

const DefaultAgeGroup = "8-10"

// ValidAgeGroup reports whether s is one of the known brackets.
func ValidAgeGroup(s string) bool {
	for _, g := range AgeGroups {
		if g == s {
			return true
		}
	}
	return false
}

// StoryRequest is the body of /api/input/analyze and /api/story/generate.
type StoryRequest struct {
	InputType string `json:"input_type"`
	ImageData string `json:"image_data,omitempty"`
	Keywords  string `json:"keywords,omitempty"`
	AgeGroup  string `json:"age_group,omitempty"`
	Language  string `json:"language,omitempty"`
}

// keywordSanitizer strips characters that have no business in keyword input.
var keywordSanitizer = strings.NewReplacer("<", "", ">", "", "{", "", "}", "", "[", "", "]", "", "\\", "")

// Normalize validates the request in place: it checks the input type,
// enforces the type's required field, strips any data-URI prefix from the
// image payload (verifying the base64 body), sanitizes keywords and applies
// defaults for age group and language.
func (r *StoryRequest) Normalize() error {
	t, err := ParseInputType(r.InputType)
	if err != nil {
		return err
	}

	if r.ImageData != "" {
		data := r.ImageData
		if strings.HasPrefix(data, "data:") {
			if _, rest, ok := strings.Cut(data, ","); ok {
				data = rest
			}
		}
		if _, err := base64.StdEncoding.DecodeString(data); err != nil {
			return fmt.Errorf("invalid base64 image data")
		}
		r.ImageData = data
	}
	if r.Keywords != "" {
		r.Keywords = strings.TrimSpace(keywordSanitizer.Replace(r.Keywords))
	}

	if t.IsImage() && r.ImageData == "" {
		return fmt.Errorf("image_data is required for input_type %q", r.InputType)
	}
	if t == InputKeyword && r.Keywords == "" {
		return fmt.Errorf("keywords is required for input_type %q", r.InputType)
	}

	if r.AgeGroup == "" {
		r.AgeGroup = DefaultAgeGroup
	} else if !ValidAgeGroup(r.AgeGroup) {
		return fmt.Errorf("invalid age_group %q (must be one of %s)", r.AgeGroup, strings.Join(AgeGroups, ", "))
	}
	if r.Language == "" {
		r.Language = "en"
	}
	if len(r.Language) > 10 {
		return fmt.Errorf("language code too long")
	}
	if len(r.Keywords) > 500 {
		return fmt.Errorf("keywords too long (max 500 characters)")
	}
	return nil
}

// ImageAnalysisResult is what the AI processor produces for any input.
type ImageAnalysisResult struct {
	DetectedObjects     []string `json:"detected_objects"`
	SceneDescription    string   `json:"scene_description"`
	EducationalConcepts []string `json:"educational_concepts"`
	SuggestedTopics     []string `json:"suggested_topics"`
	Confidence          float64  `json:"confidence"`
}

// QuizQuestion is a single multiple-choice question.
// Options always has exactly 4 entries and CorrectAnswer is in [0,3].
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// QuizResponse holds 1-5 questions for a story.
type QuizResponse struct {
	Questions  []QuizQuestion `json:"questions"`
	StoryID    string         `json:"story_id"`
	Difficulty string         `json:"difficulty"`
}

// StoryResponse is a generated story with optional embedded quiz.
type StoryResponse struct {
	StoryID         string        `json:"story_id"`
	Title           string        `json:"title"`
	Content         string        `json:"content"`
	Summary         string        `json:"summary"`
	ConceptsCovered []string      `json:"concepts_covered"`
	AgeGroup        string        `json:"age_group"`
	WordCount       int           `json:"word_count"`
	Quiz            *QuizResponse `json:"quiz,omitempty"`
	AudioAvailable  bool          `json:"audio_available"`
}

// AudioRequest is the body of /api/audio/generate and /api/audio/stream.
type AudioRequest struct {
	Text     string `json:"text"`
	Voice    string `json:"voice,omitempty"`
	Language string `json:"language,omitempty"`
	Rate     string `json:"rate,omitempty"`
}

// Normalize validates the audio request and applies defaults.
func (r *AudioRequest) Normalize() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("text is required for audio generation")
	}
	if len(r.Text) > 10000 {
		return fmt.Errorf("text too long (max 10000 characters)")
	}
	if r.Language == "" {
		r.Language = "en"
	}
	return nil
}

// AudioResponse describes a generated audio file.
type AudioResponse struct {
	AudioID         string  `json:"audio_id"`
	AudioURL        string  `json:"audio_url"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
	Format          string  `json:"format"`
}

// ErrorResponse is the error envelope shared by every endpoint.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
