package controller

import (
	"fmt"
	"net/http"

	"deckforge/logger"
	"deckforge/models"
	"deckforge/templates"
	"deckforge/theme"
)

// ThemeController serves the theme catalog and the starter templates
type ThemeController struct {
	themes *theme.Registry
	log    *logger.Logger
}

// NewThemeController creates a new ThemeController
func NewThemeController(themes *theme.Registry, log *logger.Logger) *ThemeController {
	if themes == nil {
		themes = theme.Default()
	}
	return &ThemeController{themes: themes, log: log}
}

// ListThemes handles GET /themes
func (c *ThemeController) ListThemes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, c.log, http.StatusOK, c.themes.Summaries())
}

// GetTheme handles GET /themes/{id}
func (c *ThemeController) GetTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	id := r.PathValue("id")
	t, ok := c.themes.Lookup(id)
	if !ok {
		writeError(w, c.log, "get theme", fmt.Errorf("theme %q: %w", id, models.ErrNotFound))
		return
	}
	writeJSON(w, c.log, http.StatusOK, t)
}

// ListTemplates handles GET /templates
func (c *ThemeController) ListTemplates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, c.log, http.StatusOK, templates.List())
}

// GetTemplate handles GET /templates/{id}
func (c *ThemeController) GetTemplate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	tpl, err := templates.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, c.log, "get template", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, tpl)
}
