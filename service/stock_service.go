package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"deckforge/logger"
	"deckforge/utils"
)

// StockPrompts holds the background prompts of each theme. Variant i of a
// theme is stored as "<theme>_<i>.jpg".
var StockPrompts = map[string][]string{
	"premium":  {"dark blue geometric", "indigo refined texture", "slate modern abstract", "corporate dark tech", "subtle navy mesh"},
	"minimal":  {"white uneven concrete", "light gray paper texture", "soft white shadows", "minimalist architecture detail", "clean white marble"},
	"nature":   {"blurred forest foliage", "soft morning sunlight leaves", "green gradient organic", "calm lake reflection", "wood grain texture"},
	"pop":      {"vibrant abstract shapes", "yellow pink gradient", "colorful memphis pattern", "bright orange curves", "playful confetti abstract"},
	"cyber":    {"neon blue grid", "cyberpunk city bokeh", "digital circuit board blue", "matrix rain abstract", "futuristic hexagon pattern"},
	"luxury":   {"black and gold marble", "dark silk texture", "gold dust on black", "luxury leather texture", "premium geometric gold lines"},
	"japanese": {"washi paper texture", "seigaiha pattern subtle", "bamboo texture", "cherry blossom soft blur", "japanese indigo fabric"},
	"sky":      {"blue sky white clouds", "beautiful sunrise gradient", "soft blue sky texture", "starry night sky", "golden hour sky"},
}

// StockResult tallies a stock population run
type StockResult struct {
	Total      int      `json:"total"`
	Downloaded int      `json:"downloaded"`
	Skipped    int      `json:"skipped"`
	Errors     []string `json:"errors,omitempty"`
}

// StockService populates the local stock background library, either by
// generating images or by mirroring a Drive folder.
type StockService struct {
	illustrations *IllustrationService
	fetcher       Fetcher
	drive         DriveServiceInterface
	maxDim        int
	quality       int
	log           *logger.Logger
}

// NewStockService creates a new StockService instance. drive may be nil.
func NewStockService(illustrations *IllustrationService, fetcher Fetcher, drive DriveServiceInterface, maxDim, quality int, log *logger.Logger) *StockService {
	return &StockService{illustrations: illustrations, fetcher: fetcher, drive: drive, maxDim: maxDim, quality: quality, log: log}
}

// Generate renders the stock prompts of the given themes (all when empty)
// into dir, skipping files that already exist.
func (s *StockService) Generate(ctx context.Context, dir string, themes []string) (StockResult, error) {
	if len(themes) == 0 {
		for id := range StockPrompts {
			themes = append(themes, id)
		}
		sort.Strings(themes)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return StockResult{}, fmt.Errorf("failed to create stock directory: %w", err)
	}

	var res StockResult
	for _, id := range themes {
		prompts, ok := StockPrompts[id]
		if !ok {
			res.Errors = append(res.Errors, fmt.Sprintf("unknown theme %q", id))
			continue
		}
		for i, prompt := range prompts {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			res.Total++
			path := filepath.Join(dir, fmt.Sprintf("%s_%d.jpg", id, i+1))
			if _, err := os.Stat(path); err == nil {
				s.log.Debugf("⏭️  Skipping %s (already exists on disk)", path)
				res.Skipped++
				continue
			}

			data, ref, err := s.illustrations.Fetch(ctx, s.illustrations.StockRequest(prompt))
			if err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", ref, err))
				continue
			}
			if err := s.save(path, data); err != nil {
				res.Errors = append(res.Errors, err.Error())
				continue
			}
			s.log.Infof("✓ Stock background saved: %s", path)
			res.Downloaded++
		}
	}
	return res, nil
}

// Mirror downloads every image of a Drive folder into dir, skipping files
// that already exist.
func (s *StockService) Mirror(ctx context.Context, folderID, dir string) (StockResult, error) {
	if s.drive == nil {
		return StockResult{}, fmt.Errorf("drive is not configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return StockResult{}, fmt.Errorf("failed to create stock directory: %w", err)
	}

	files, err := s.drive.ListImages(ctx, folderID)
	if err != nil {
		return StockResult{}, fmt.Errorf("failed to list drive folder: %w", err)
	}

	res := StockResult{Total: len(files)}
	used := make(map[string]bool, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		name := strings.TrimSuffix(f.Name, filepath.Ext(f.Name)) + ".jpg"
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil || used[name] {
			res.Skipped++
			continue
		}
		used[name] = true

		data, err := s.drive.Download(ctx, f.ID)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s (%s): %v", f.Name, f.ID, err))
			continue
		}
		if err := s.save(path, data); err != nil {
			res.Errors = append(res.Errors, err.Error())
			continue
		}
		res.Downloaded++
	}
	s.log.Infof("🎉 Mirror completed: %d downloaded, %d skipped, %d failed out of %d", res.Downloaded, res.Skipped, len(res.Errors), res.Total)
	return res, nil
}

func (s *StockService) save(path string, data []byte) error {
	payload, err := OptimizeImage(data, s.maxDim, s.quality)
	if err != nil {
		return fmt.Errorf("failed to optimize %s: %w", filepath.Base(path), err)
	}
	if payload.MIME != "image/jpeg" {
		// stock files are always JPEG so that their names stay predictable
		payload, err = toJPEG(payload.Data, s.quality)
		if err != nil {
			return fmt.Errorf("failed to convert %s: %w", filepath.Base(path), err)
		}
	}
	return utils.WriteFileAtomic(path, payload.Data, 0o644)
}
