package storycache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/talespring/backend/internal/models"
)

func TestPutGet(t *testing.T) {
	c := New()
	story := &models.StoryResponse{StoryID: "abc", Title: "T"}
	c.Put(story)

	if got := c.Get("abc"); got != story {
		t.Errorf("Get returned %+v", got)
	}
	if got := c.Get("missing"); got != nil {
		t.Errorf("missing id returned %+v", got)
	}
}

func TestPutOverwrites(t *testing.T) {
	c := New()
	c.Put(&models.StoryResponse{StoryID: "abc", Title: "old"})
	c.Put(&models.StoryResponse{StoryID: "abc", Title: "new"})

	if got := c.Get("abc"); got.Title != "new" {
		t.Errorf("title = %q, want new", got.Title)
	}
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}
}

func TestListLimit(t *testing.T) {
	c := New()
	for i := 0; i < 5; i++ {
		c.Put(&models.StoryResponse{StoryID: fmt.Sprintf("s%d", i)})
	}

	if got := c.List(3); len(got) != 3 {
		t.Errorf("List(3) returned %d", len(got))
	}
	if got := c.List(100); len(got) != 5 {
		t.Errorf("List(100) returned %d", len(got))
	}
	if got := c.List(0); len(got) != 5 {
		t.Errorf("List(0) returned %d, want all", len(got))
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i)
			c.Put(&models.StoryResponse{StoryID: id})
			c.Get(id)
			c.List(10)
		}(i)
	}
	wg.Wait()

	if c.Len() != 50 {
		t.Errorf("len = %d, want 50", c.Len())
	}
}
