package curriculum

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
)

// KB is the in-memory curriculum knowledge base. It stands in for a real
// semantic index: matching is plain keyword overlap over a fixed topic list.
type KB struct {
	topics map[string]Topic
	order  []string // insertion order, used as the tie-break for ranking
}

// NewKB loads topics from the JSON file at path, or falls back to the
// built-in defaults when the file is absent or path is empty.
func NewKB(path string) (*KB, error) {
	kb := &KB{topics: make(map[string]Topic)}

	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			var payload struct {
				Topics []Topic `json:"topics"`
			}
			if err := json.Unmarshal(data, &payload); err != nil {
				return nil, fmt.Errorf("failed to parse curriculum data %s: %w", path, err)
			}
			for _, t := range payload.Topics {
				kb.add(t)
			}
			log.Printf("[Curriculum] Loaded %d topics from %s", len(kb.order), path)
			return kb, nil
		}
	}

	for _, t := range defaultTopics() {
		kb.add(t)
	}
	log.Printf("[Curriculum] Loaded %d built-in topics", len(kb.order))
	return kb, nil
}

func (kb *KB) add(t Topic) {
	if _, exists := kb.topics[t.ID]; !exists {
		kb.order = append(kb.order, t.ID)
	}
	kb.topics[t.ID] = t
}

// Scoring weights for keyword matching.
const (
	scoreExactKeyword = 10
	scorePartialMatch = 5
	scoreNameMatch    = 8
	scoreDescription  = 3
)

// FindMatching ranks topics against the given keywords and returns up to
// maxResults of them, best first. A keyword can contribute several bonuses
// to the same topic; topics with a zero score are excluded. Ties keep the
// knowledge base's insertion order.
func (kb *KB) FindMatching(keywords []string, maxResults int) []Topic {
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			normalized = append(normalized, kw)
		}
	}

	type scored struct {
		id    string
		score int
		pos   int
	}
	var results []scored

	for pos, id := range kb.order {
		topic := kb.topics[id]
		score := 0
		name := strings.ToLower(topic.Name)
		desc := strings.ToLower(topic.Description)

		for _, kw := range normalized {
			for _, topicKW := range topic.Keywords {
				topicKW = strings.ToLower(topicKW)
				if kw == topicKW {
					score += scoreExactKeyword
				}
				if strings.Contains(topicKW, kw) || strings.Contains(kw, topicKW) {
					score += scorePartialMatch
				}
			}
			if strings.Contains(name, kw) {
				score += scoreNameMatch
			}
			if strings.Contains(desc, kw) {
				score += scoreDescription
			}
		}

		if score > 0 {
			results = append(results, scored{id: id, score: score, pos: pos})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	matches := make([]Topic, len(results))
	for i, r := range results {
		matches[i] = kb.topics[r.id]
	}
	return matches
}

// TopicByID returns a topic and whether it exists.
func (kb *KB) TopicByID(id string) (Topic, bool) {
	t, ok := kb.topics[id]
	return t, ok
}

// AllTopics returns every topic in insertion order.
func (kb *KB) AllTopics() []Topic {
	topics := make([]Topic, len(kb.order))
	for i, id := range kb.order {
		topics[i] = kb.topics[id]
	}
	return topics
}

// StoryThemes collects the deduplicated story themes of the given topic ids.
func (kb *KB) StoryThemes(topicIDs []string) []string {
	seen := make(map[string]bool)
	var themes []string
	for _, id := range topicIDs {
		topic, ok := kb.topics[id]
		if !ok {
			continue
		}
		for _, theme := range topic.StoryThemes {
			if !seen[theme] {
				seen[theme] = true
				themes = append(themes, theme)
			}
		}
	}
	return themes
}
