package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"deckforge/models"
)

// Registry maps theme ids to themes. It starts with the built-in catalog and
// may be extended with themes loaded from files; themes never change once registered.
type Registry struct {
	mu     sync.RWMutex
	themes map[string]models.Theme
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// NewRegistry creates a registry holding the built-in themes plus the given extras
func NewRegistry(extra ...models.Theme) *Registry {
	r := &Registry{themes: make(map[string]models.Theme, len(builtin)+len(extra))}
	for _, t := range builtin {
		r.themes[t.ID] = t
	}
	for _, t := range extra {
		r.themes[t.ID] = Complete(t)
	}
	return r
}

// Default returns the shared registry of built-in themes
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Resolve returns the theme registered under id, or the default theme when
// the id is empty or unknown. It never fails.
func (r *Registry) Resolve(id string) models.Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.themes[strings.ToLower(strings.TrimSpace(id))]; ok {
		return t
	}
	return r.themes[DefaultID]
}

// Lookup returns the theme registered under id and whether it exists
func (r *Registry) Lookup(id string) (models.Theme, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.themes[strings.ToLower(strings.TrimSpace(id))]
	return t, ok
}

// Select picks the theme for an export: an inline theme wins over the id
func (r *Registry) Select(id string, inline *models.Theme) models.Theme {
	if inline != nil {
		return Complete(*inline)
	}
	return r.Resolve(id)
}

// Register adds a theme. Built-in ids cannot be replaced.
func (r *Registry) Register(t models.Theme) error {
	if t.ID == "" {
		return &models.ValidationError{Field: "theme.id", Message: "is required"}
	}
	if err := models.ValidateTheme(&t); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := strings.ToLower(t.ID)
	for _, b := range builtin {
		if b.ID == id {
			return fmt.Errorf("theme %q is built in and cannot be replaced", id)
		}
	}
	t.ID = id
	r.themes[id] = Complete(t)
	return nil
}

// LoadDir registers every *.yaml, *.yml and *.json theme file of dir
func (r *Registry) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read themes directory: %w", err)
	}

	loaded := 0
	for _, e := range entries {
		if e.IsDir() || !isThemeFile(e.Name()) {
			continue
		}
		t, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return loaded, err
		}
		if t.ID == "" {
			t.ID = strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		}
		if err := r.Register(*t); err != nil {
			return loaded, fmt.Errorf("failed to register theme from %s: %w", e.Name(), err)
		}
		loaded++
	}
	return loaded, nil
}

// All returns every registered theme sorted by id, built-ins first
func (r *Registry) All() []models.Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Theme, 0, len(r.themes))
	for _, b := range builtin {
		out = append(out, r.themes[b.ID])
	}
	var custom []models.Theme
	for id, t := range r.themes {
		if !isBuiltin(id) {
			custom = append(custom, t)
		}
	}
	sort.Slice(custom, func(i, j int) bool { return custom[i].ID < custom[j].ID })
	return append(out, custom...)
}

// Summaries returns the listing form of All
func (r *Registry) Summaries() []models.ThemeSummary {
	all := r.All()
	out := make([]models.ThemeSummary, len(all))
	for i, t := range all {
		out[i] = models.ThemeSummary{ID: t.ID, Name: t.Name, Decor: t.Decor}
	}
	return out
}

// Resolve resolves id against the built-in catalog
func Resolve(id string) models.Theme {
	return Default().Resolve(id)
}

// IDs returns the built-in theme ids in catalog order
func IDs() []string {
	ids := make([]string, len(builtin))
	for i, t := range builtin {
		ids[i] = t.ID
	}
	return ids
}

// Complete fills every role missing from t with the default theme's value
func Complete(t models.Theme) models.Theme {
	def := builtin[0]
	c := &t.Colors
	fill := func(dst *string, v string) {
		*dst = strings.ToUpper(strings.TrimPrefix(*dst, "#"))
		if *dst == "" {
			*dst = v
		}
	}
	fill(&c.Primary, def.Colors.Primary)
	fill(&c.Secondary, def.Colors.Secondary)
	fill(&c.Accent, def.Colors.Accent)
	fill(&c.Background, def.Colors.Background)
	fill(&c.BackgroundAlt, def.Colors.BackgroundAlt)
	fill(&c.TextMain, def.Colors.TextMain)
	fill(&c.TextLight, def.Colors.TextLight)
	fill(&c.ShapeFill, def.Colors.ShapeFill)

	if t.Fonts.Main == "" {
		t.Fonts.Main = def.Fonts.Main
	}
	if t.Fonts.Heading == "" {
		t.Fonts.Heading = t.Fonts.Main
	}
	if t.Decor == "" {
		t.Decor = models.DecorNone
	}
	if t.ID == "" {
		t.ID = "custom"
	}
	if t.Name == "" {
		t.Name = "Custom"
	}
	return t
}

func isBuiltin(id string) bool {
	for _, b := range builtin {
		if b.ID == id {
			return true
		}
	}
	return false
}

func isThemeFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
