// Package server is the HTTP layer: routing, request validation and the
// translation of orchestration errors into the shared error envelope.
package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/talespring/backend/internal/config"
	"github.com/talespring/backend/internal/core"
	"github.com/talespring/backend/internal/models"
	"github.com/talespring/backend/internal/storycache"
)

const appVersion = "1.0.0"

// Deps are the singletons the router hands to its handlers.
type Deps struct {
	Config   config.Config
	Analysis *core.AnalysisCore
	Story    *core.StoryCore
	Quiz     *core.QuizCore
	Speech   *core.SpeechCore
	Stories  *storycache.Cache
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(deps Deps) *gin.Engine {
	gin.SetMode(deps.Config.GinMode)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("[Server] Panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		respondError(c, http.StatusInternalServerError, "internal_error", "unexpected error", nil)
	}))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.Config.CORSOriginList(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "TaleSpring API",
			"version": appVersion,
			"docs":    "/api",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": appVersion})
	})
	r.GET("/api", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version": appVersion,
			"endpoints": gin.H{
				"input": []string{"POST /api/input/analyze", "POST /api/input/upload", "POST /api/input/keywords"},
				"story": []string{"POST /api/story/generate", "POST /api/story/from-analysis", "GET /api/story/{id}", "POST /api/story/{id}/quiz", "GET /api/story"},
				"audio": []string{"POST /api/audio/generate", "GET /api/audio/{id}", "POST /api/audio/stream", "DELETE /api/audio/{id}", "GET /api/audio/voices/list", "POST /api/audio/cleanup"},
			},
		})
	})

	api := r.Group("/api")

	inputHandler := &InputHandler{analysis: deps.Analysis}
	input := api.Group("/input")
	{
		input.POST("/analyze", inputHandler.Analyze)
		input.POST("/upload", inputHandler.Upload)
		input.POST("/keywords", inputHandler.Keywords)
	}

	storyHandler := &StoryHandler{
		analysis: deps.Analysis,
		story:    deps.Story,
		quiz:     deps.Quiz,
		stories:  deps.Stories,
	}
	story := api.Group("/story")
	{
		story.POST("/generate", storyHandler.Generate)
		story.POST("/from-analysis", storyHandler.FromAnalysis)
		story.GET("", storyHandler.List)
		story.GET("/:id", storyHandler.Get)
		story.POST("/:id/quiz", storyHandler.RegenerateQuiz)
	}

	audioHandler := &AudioHandler{speech: deps.Speech}
	audio := api.Group("/audio")
	{
		audio.POST("/generate", audioHandler.Generate)
		audio.POST("/stream", audioHandler.Stream)
		audio.POST("/cleanup", audioHandler.Cleanup)
		audio.GET("/voices/list", audioHandler.Voices)
		audio.GET("/:id", audioHandler.Get)
		audio.DELETE("/:id", audioHandler.Delete)
	}

	return r
}

// bindStoryRequest binds and validates the shared analyze/generate body.
func bindStoryRequest(c *gin.Context) (*models.StoryRequest, bool) {
	var req models.StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return nil, false
	}
	if err := req.Normalize(); err != nil {
		badRequest(c, err.Error())
		return nil, false
	}
	return &req, true
}
