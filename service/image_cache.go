package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"deckforge/utils"
)

// ImageCache stores optimized fetched images on disk keyed by reference
type ImageCache struct {
	dir string
}

// NewImageCache creates a cache rooted at dir. An empty dir disables caching.
func NewImageCache(dir string) *ImageCache {
	return &ImageCache{dir: dir}
}

// EnsureDir ensures the cache directory exists, creates it if it doesn't
func (c *ImageCache) EnsureDir() error {
	if c == nil || c.dir == "" {
		return nil
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// Path returns the cache file path for a reference
func (c *ImageCache) Path(ref string) string {
	sum := sha256.Sum256([]byte(ref))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:16])+".img")
}

// Read returns the cached bytes of ref and whether they exist
func (c *ImageCache) Read(ref string) ([]byte, bool) {
	if c == nil || c.dir == "" {
		return nil, false
	}
	data, err := os.ReadFile(c.Path(ref))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Save stores data for ref
func (c *ImageCache) Save(ref string, data []byte) error {
	if c == nil || c.dir == "" {
		return nil
	}
	if err := utils.WriteFileAtomic(c.Path(ref), data, 0o644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}
