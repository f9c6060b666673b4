// Package storycache keeps generated stories in memory for later retrieval.
// Stories are never persisted; the cache lives for the process lifetime.
package storycache

import (
	"sync"

	"github.com/talespring/backend/internal/models"
)

// Cache is a concurrency-safe story store keyed by story id.
type Cache struct {
	mu      sync.RWMutex
	stories map[string]*models.StoryResponse
}

func New() *Cache {
	return &Cache{stories: make(map[string]*models.StoryResponse)}
}

// Put stores or replaces a story.
func (c *Cache) Put(story *models.StoryResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stories[story.StoryID] = story
}

// Get returns the story for id, or nil if absent.
func (c *Cache) Get(id string) *models.StoryResponse {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stories[id]
}

// List returns up to limit cached stories in arbitrary order.
// limit <= 0 returns all.
func (c *Cache) List(limit int) []*models.StoryResponse {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*models.StoryResponse, 0, len(c.stories))
	for _, s := range c.stories {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, s)
	}
	return out
}

// Len reports the number of cached stories.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.stories)
}
