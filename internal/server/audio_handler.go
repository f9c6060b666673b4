package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/talespring/backend/internal/core"
	"github.com/talespring/backend/internal/models"
)

// AudioHandler serves the /api/audio endpoints.
type AudioHandler struct {
	speech *core.SpeechCore
}

// Generate handles POST /api/audio/generate.
func (h *AudioHandler) Generate(c *gin.Context) {
	var req models.AudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := req.Normalize(); err != nil {
		badRequest(c, err.Error())
		return
	}

	resp, err := h.speech.Generate(c.Request.Context(), req)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/audio/{id}: streams the stored mp3.
func (h *AudioHandler) Get(c *gin.Context) {
	path, err := h.speech.GetAudioFile(c.Param("id"))
	if err != nil {
		respondCoreError(c, err)
		return
	}
	c.Header("Content-Type", "audio/mpeg")
	c.File(path)
}

// Stream handles POST /api/audio/stream: chunked audio, no file storage.
func (h *AudioHandler) Stream(c *gin.Context) {
	var req models.AudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := req.Normalize(); err != nil {
		badRequest(c, err.Error())
		return
	}

	c.Header("Content-Type", "audio/mpeg")
	c.Header("Transfer-Encoding", "chunked")
	c.Status(http.StatusOK)
	if err := h.speech.Stream(c.Request.Context(), req, c.Writer); err != nil {
		// Headers are already out; all we can do is log and cut the stream.
		log.Printf("[Server] Audio stream failed: %v", err)
	}
}

// Delete handles DELETE /api/audio/{id}.
func (h *AudioHandler) Delete(c *gin.Context) {
	audioID := c.Param("id")
	if err := h.speech.DeleteAudio(audioID); err != nil {
		respondCoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true, "audio_id": audioID})
}

// Voices handles GET /api/audio/voices/list.
func (h *AudioHandler) Voices(c *gin.Context) {
	voices := h.speech.Voices(c.Query("language"))
	c.JSON(http.StatusOK, gin.H{"voices": voices, "count": len(voices)})
}

// Cleanup handles POST /api/audio/cleanup?max_age_hours=N.
func (h *AudioHandler) Cleanup(c *gin.Context) {
	maxAge := 24
	if raw := c.Query("max_age_hours"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "max_age_hours must be an integer")
			return
		}
		maxAge = n
	}
	if maxAge < 1 || maxAge > 168 {
		badRequest(c, "max_age_hours must be between 1 and 168")
		return
	}

	deleted, err := h.speech.CleanupOldFiles(maxAge)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted, "max_age_hours": maxAge})
}
