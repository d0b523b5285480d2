package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"deckforge/models"
)

// LoadFile reads an inline theme from a YAML or JSON file. Relative paths
// are resolved against the working directory.
func LoadFile(path string) (*models.Theme, error) {
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path = filepath.Join(wd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	t, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme file %s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// Parse decodes a theme document; ext selects JSON (".json") or YAML
func Parse(data []byte, ext string) (*models.Theme, error) {
	var t models.Theme
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}

	if err := models.ValidateTheme(&t); err != nil {
		return nil, err
	}
	return &t, nil
}
