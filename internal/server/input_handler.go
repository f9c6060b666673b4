package server

import (
	"encoding/base64"
	"io"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"

	"github.com/talespring/backend/internal/core"
	"github.com/talespring/backend/internal/models"
)

var allowedUploadTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
}

// InputHandler serves the /api/input endpoints.
type InputHandler struct {
	analysis *core.AnalysisCore
}

// Analyze handles POST /api/input/analyze.
func (h *InputHandler) Analyze(c *gin.Context) {
	req, ok := bindStoryRequest(c)
	if !ok {
		return
	}

	result, err := h.analyzeRequest(c, req)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Upload handles POST /api/input/upload (multipart image).
func (h *InputHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		badRequest(c, "file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		badRequest(c, "unsupported file type "+contentType+" (png and jpeg only)")
		return
	}

	inputType := c.PostForm("input_type")
	if inputType == "" {
		inputType = string(models.InputDiagram)
	}
	t, err := models.ParseInputType(inputType)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if !t.IsImage() {
		badRequest(c, "input_type must be sketch or diagram for uploads")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		badRequest(c, "could not read uploaded file")
		return
	}

	result, err := h.analysis.AnalyzeImage(c.Request.Context(), base64.StdEncoding.EncodeToString(data), t)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Keywords handles POST /api/input/keywords (form field).
func (h *InputHandler) Keywords(c *gin.Context) {
	keywords := strings.TrimSpace(c.PostForm("keywords"))
	if len(keywords) < 2 {
		badRequest(c, "keywords must be at least 2 characters")
		return
	}

	result, err := h.analysis.ProcessKeywords(c.Request.Context(), splitKeywords(keywords))
	if err != nil {
		respondCoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *InputHandler) analyzeRequest(c *gin.Context, req *models.StoryRequest) (*models.ImageAnalysisResult, error) {
	ctx := c.Request.Context()
	if t := models.InputType(req.InputType); t.IsImage() {
		return h.analysis.AnalyzeImage(ctx, req.ImageData, t)
	}
	return h.analysis.ProcessKeywords(ctx, splitKeywords(req.Keywords))
}

// splitKeywords breaks raw keyword input on commas and whitespace.
func splitKeywords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
