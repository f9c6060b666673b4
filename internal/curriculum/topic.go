package curriculum

// Topic is a single curriculum entry. Topics are immutable after load.
type Topic struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Subject            string   `json:"subject"`
	GradeRange         string   `json:"grade_range"`
	Description        string   `json:"description"`
	Keywords           []string `json:"keywords"`
	LearningObjectives []string `json:"learning_objectives"`
	RelatedTopics      []string `json:"related_topics"`
	StoryThemes        []string `json:"story_themes"`
}
