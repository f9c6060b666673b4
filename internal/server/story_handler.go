package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/talespring/backend/internal/core"
	"github.com/talespring/backend/internal/models"
	"github.com/talespring/backend/internal/storycache"
)

const defaultQuizQuestions = 3

// StoryHandler serves the /api/story endpoints.
type StoryHandler struct {
	analysis *core.AnalysisCore
	story    *core.StoryCore
	quiz     *core.QuizCore
	stories  *storycache.Cache
}

// Generate handles POST /api/story/generate: analysis, story and quiz in one
// call, cached for later retrieval.
func (h *StoryHandler) Generate(c *gin.Context) {
	req, ok := bindStoryRequest(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var (
		analysis *models.ImageAnalysisResult
		err      error
	)
	if t := models.InputType(req.InputType); t.IsImage() {
		analysis, err = h.analysis.AnalyzeImage(ctx, req.ImageData, t)
	} else {
		analysis, err = h.analysis.ProcessKeywords(ctx, splitKeywords(req.Keywords))
	}
	if err != nil {
		respondCoreError(c, err)
		return
	}

	story, err := h.story.Generate(ctx, analysis, req.AgeGroup, req.Language)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	quiz, err := h.quiz.Generate(ctx, story, defaultQuizQuestions)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	story.Quiz = quiz

	h.stories.Put(story)
	c.JSON(http.StatusOK, story)
}

// FromAnalysis handles POST /api/story/from-analysis: the caller already has
// an analysis result and wants just the story (quiz optional).
func (h *StoryHandler) FromAnalysis(c *gin.Context) {
	var analysis models.ImageAnalysisResult
	if err := c.ShouldBindJSON(&analysis); err != nil {
		badRequest(c, "invalid analysis body: "+err.Error())
		return
	}

	ageGroup := c.DefaultQuery("age_group", models.DefaultAgeGroup)
	language := c.DefaultQuery("language", "en")
	includeQuiz := c.DefaultQuery("include_quiz", "true") == "true"
	ctx := c.Request.Context()

	story, err := h.story.Generate(ctx, &analysis, ageGroup, language)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	if includeQuiz {
		quiz, err := h.quiz.Generate(ctx, story, defaultQuizQuestions)
		if err != nil {
			respondCoreError(c, err)
			return
		}
		story.Quiz = quiz
	}

	h.stories.Put(story)
	c.JSON(http.StatusOK, story)
}

// Get handles GET /api/story/{id}.
func (h *StoryHandler) Get(c *gin.Context) {
	story := h.stories.Get(c.Param("id"))
	if story == nil {
		notFound(c, "story not found")
		return
	}
	c.JSON(http.StatusOK, story)
}

// RegenerateQuiz handles POST /api/story/{id}/quiz: builds a fresh quiz and
// overwrites the cached one.
func (h *StoryHandler) RegenerateQuiz(c *gin.Context) {
	story := h.stories.Get(c.Param("id"))
	if story == nil {
		notFound(c, "story not found")
		return
	}

	numQuestions := defaultQuizQuestions
	if raw := c.Query("num_questions"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "num_questions must be an integer")
			return
		}
		numQuestions = n
	}

	quiz, err := h.quiz.Generate(c.Request.Context(), story, numQuestions)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	story.Quiz = quiz
	h.stories.Put(story)
	c.JSON(http.StatusOK, quiz)
}

// List handles GET /api/story?limit=N.
func (h *StoryHandler) List(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		limit = n
	}

	stories := h.stories.List(limit)
	c.JSON(http.StatusOK, gin.H{
		"stories": stories,
		"count":   len(stories),
	})
}
