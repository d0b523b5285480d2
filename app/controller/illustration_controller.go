package controller

import (
	"encoding/json"
	"net/http"

	"deckforge/logger"
	"deckforge/models"
	"deckforge/service"
)

// Illustrator attaches generated illustrations to slides
type Illustrator interface {
	Illustrate(slide models.Slide, prompt string) (models.Slide, error)
}

var _ Illustrator = (*service.IllustrationService)(nil)

type illustrationRequest struct {
	Slide  models.Slide `json:"slide"`
	Prompt string       `json:"prompt"`
}

type illustrationResponse struct {
	Slide models.Slide `json:"slide"`
	URL   string       `json:"url"`
}

// IllustrationController handles HTTP requests for slide illustrations
type IllustrationController struct {
	illustrator Illustrator
	log         *logger.Logger
}

// NewIllustrationController creates a new IllustrationController
func NewIllustrationController(illustrator Illustrator, log *logger.Logger) *IllustrationController {
	return &IllustrationController{illustrator: illustrator, log: log}
}

// Illustrate handles POST /illustrations. The prompt defaults to the slide title.
func (c *IllustrationController) Illustrate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	data, err := readBody(r)
	if err != nil {
		writeError(w, c.log, "illustrate", err)
		return
	}
	var req illustrationRequest
	if err := json.Unmarshal(data, &req); err != nil {
		writeError(w, c.log, "illustrate", &models.ParseError{Err: err})
		return
	}

	slide, err := c.illustrator.Illustrate(req.Slide, req.Prompt)
	if err != nil {
		writeError(w, c.log, "illustrate", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, illustrationResponse{Slide: slide, URL: slide.Image})
}
