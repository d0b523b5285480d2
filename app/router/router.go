package router

import (
	"net/http"

	"deckforge/app/controller"
	"deckforge/logger"
	"deckforge/metrics"
)

type Controllers struct {
	Theme        *controller.ThemeController
	Deck         *controller.DeckController
	Export       *controller.ExportController
	Illustration *controller.IllustrationController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// New registers every route on a fresh mux and wraps it with the request
// body limit and the metrics middleware.
func New(controllers *Controllers, log *logger.Logger, maxBodyBytes int64) http.Handler {
	mux := http.NewServeMux()

	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Prometheus metrics
	mux.Handle("/metrics", metrics.Handler())

	// Themes and starter templates
	mux.HandleFunc("/themes", controllers.Theme.ListThemes)
	mux.HandleFunc("/themes/{id}", controllers.Theme.GetTheme)
	mux.HandleFunc("/templates", controllers.Theme.ListTemplates)
	mux.HandleFunc("/templates/{id}", controllers.Theme.GetTemplate)

	// Stored decks
	mux.HandleFunc("/decks", controllers.Deck.Collection)
	mux.HandleFunc("/decks/validate", controllers.Deck.Validate)
	mux.HandleFunc("/decks/{id}", controllers.Deck.Item)
	mux.HandleFunc("/decks/{id}/exports", controllers.Deck.Exports)
	mux.HandleFunc("/decks/{id}/export", controllers.Deck.Export)

	// Stateless exports
	mux.HandleFunc("/export", controllers.Export.Export)
	mux.HandleFunc("/export/plan", controllers.Export.Plan)
	mux.HandleFunc("/export/png", controllers.Export.Page)

	// Illustrations
	mux.HandleFunc("/illustrations", controllers.Illustration.Illustrate)

	return instrument(limitBody(mux, maxBodyBytes), log)
}
