package main

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDeck = `{
	"title": "CLI Deck",
	"themeId": "minimal",
	"slides": [
		{"title": "Welcome", "layout": "title", "content": ["Hi"]},
		{"title": "Plan", "layout": "bullets", "content": ["One", "Two"], "speakerNotes": "say hi"},
		{"title": "Cards", "layout": "grid_2", "gridItems": [{"title": "A", "content": "a"}, {"title": "B", "content": "b"}]}
	]
}`

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), err
}

// isolate points every path the runtime touches into a temp dir
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	t.Setenv("ASSETS_CACHE_DIR", filepath.Join(dir, "cache"))
	t.Setenv("ASSETS_BACKGROUND_BASE", filepath.Join(dir, "static"))
	t.Setenv("RENDER_THEMES_DIR", "")
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func writeDeck(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "deck.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	originalVersion, originalCommit, originalDate := version, commit, date
	t.Cleanup(func() {
		version, commit, date = originalVersion, originalCommit, originalDate
	})
	version, commit, date = "1.2.3", "abcdef1", "2025-10-03"

	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "deckforge 1.2.3")
	assert.Contains(t, out, "abcdef1")
	assert.Contains(t, out, "2025-10-03")
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := executeCommand(t, "validate", writeDeck(t, dir, testDeck))
	require.NoError(t, err)
	assert.Contains(t, out, `"CLI Deck", 3 slides`)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"title": "x", "slides": [{"title": "a", "layout": "grid_7"}]}`), 0o644))
	_, err = executeCommand(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slides[0].layout")

	_, err = executeCommand(t, "validate", filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	_, err = executeCommand(t, "validate")
	require.Error(t, err)
}

func TestTemplatesCommand(t *testing.T) {
	out, err := executeCommand(t, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "pitch_deck")
	assert.Contains(t, out, "quarterly_review")

	out, err = executeCommand(t, "templates", "education")
	require.NoError(t, err)
	assert.Contains(t, out, `"slides"`)

	path := filepath.Join(t.TempDir(), "pitch.json")
	out, err = executeCommand(t, "templates", "pitch_deck", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "written to")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"layout"`)

	_, err = executeCommand(t, "templates", "nope")
	require.Error(t, err)
}

func TestThemesCommand(t *testing.T) {
	isolate(t)

	out, err := executeCommand(t, "themes")
	require.NoError(t, err)
	for _, id := range []string{"premium", "minimal", "nature", "pop", "cyber", "luxury", "japanese", "sky"} {
		assert.Contains(t, out, id)
	}

	out, err = executeCommand(t, "themes", "--json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "["))
}

func TestExportCommandWritesArtifacts(t *testing.T) {
	dir := isolate(t)
	deckPath := writeDeck(t, dir, testDeck)
	pptxPath := filepath.Join(dir, "out", "deck.pptx")
	htmlPath := filepath.Join(dir, "out", "deck.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(pptxPath), 0o755))

	out, err := executeCommand(t, "export", deckPath, "--pptx", pptxPath, "--html", htmlPath, "--offline", "--date", "2024-03-01")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ PPTX written")
	assert.Contains(t, out, "✓ HTML written")
	assert.Contains(t, out, "3 slides, 0 degraded")

	zr, err := zip.OpenReader(pptxPath)
	require.NoError(t, err)
	defer zr.Close()
	names := map[string]bool{}
	notes := 0
	for _, f := range zr.File {
		names[f.Name] = true
		if strings.HasPrefix(f.Name, "ppt/notesSlides/notesSlide") {
			notes++
		}
	}
	assert.True(t, names["ppt/presentation.xml"])
	assert.Equal(t, 1, notes)

	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "CLI Deck")
	assert.Contains(t, string(html), "Mar 1, 2024")
}

func TestExportCommandDefaultOutput(t *testing.T) {
	dir := isolate(t)
	deckPath := writeDeck(t, dir, testDeck)

	out, err := executeCommand(t, "export", deckPath, "--offline")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "CLI_Deck.pptx"))
	_, err = os.Stat(filepath.Join(dir, "CLI_Deck.pptx"))
	require.NoError(t, err)
}

func TestExportCommandThemeFile(t *testing.T) {
	dir := isolate(t)
	deckPath := writeDeck(t, dir, testDeck)
	themePath := filepath.Join(dir, "brand.yaml")
	require.NoError(t, os.WriteFile(themePath, []byte("id: brand\nname: Brand\ncolors:\n  primary: \"123456\"\n  accent: \"FF8800\"\n"), 0o644))
	htmlPath := filepath.Join(dir, "deck.html")

	_, err := executeCommand(t, "export", deckPath, "--html", htmlPath, "--theme-file", themePath, "--offline")
	require.NoError(t, err)
	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(string(html)), "#ff8800")
}

func TestExportCommandErrors(t *testing.T) {
	dir := isolate(t)
	deckPath := writeDeck(t, dir, testDeck)

	_, err := executeCommand(t, "export", deckPath, "--date", "March 1st", "--offline")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")

	_, err = executeCommand(t, "export", deckPath, "--theme-file", filepath.Join(dir, "none.yaml"))
	require.Error(t, err)

	_, err = executeCommand(t, "export", filepath.Join(dir, "none.json"))
	require.Error(t, err)
}
