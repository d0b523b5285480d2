package service

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deckforge/logger"
)

func TestStockGenerate(t *testing.T) {
	t.Parallel()

	png := encodePNG(t, solidImage(64, 36, color.NRGBA{R: 30, G: 60, B: 90, A: 255}))
	fetcher := anyFetcher{data: png}
	svc := NewStockService(testIllustrations(fetcher), fetcher, nil, 1920, 80, logger.Nop())
	dir := filepath.Join(t.TempDir(), "stock")

	res, err := svc.Generate(context.Background(), dir, []string{"premium", "nope"})
	require.NoError(t, err)
	assert.Equal(t, len(StockPrompts["premium"]), res.Total)
	assert.Equal(t, res.Total, res.Downloaded)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "nope")

	data, err := os.ReadFile(filepath.Join(dir, "premium_1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8}, data[:2], "stored as JPEG")

	res, err = svc.Generate(context.Background(), dir, []string{"premium"})
	require.NoError(t, err)
	assert.Equal(t, res.Total, res.Skipped)
	assert.Zero(t, res.Downloaded)
}

func TestStockGenerateCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := NewStockService(testIllustrations(anyFetcher{}), anyFetcher{}, nil, 0, 80, logger.Nop())
	_, err := svc.Generate(ctx, t.TempDir(), []string{"sky"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestStockMirror(t *testing.T) {
	t.Parallel()

	png := encodePNG(t, solidImage(8, 8, color.NRGBA{G: 90, A: 255}))
	drive := &fakeDrive{
		folders: map[string][]DriveFile{"F": {
			{ID: "1", Name: "premium_1.png"},
			{ID: "2", Name: "premium_2.jpg"},
			{ID: "3", Name: "premium_1.jpeg"},
		}},
		files: map[string][]byte{"1": png, "3": png},
	}
	svc := NewStockService(nil, nil, drive, 0, 80, logger.Nop())
	dir := t.TempDir()

	res, err := svc.Mirror(context.Background(), "F", dir)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.Downloaded)
	assert.Equal(t, 1, res.Skipped, "same target name is only written once")
	require.Len(t, res.Errors, 1, "file 2 cannot be downloaded")
	assert.FileExists(t, filepath.Join(dir, "premium_1.jpg"))

	_, err = svc.Mirror(context.Background(), "missing", dir)
	require.Error(t, err)

	_, err = NewStockService(nil, nil, nil, 0, 80, nil).Mirror(context.Background(), "F", dir)
	require.ErrorContains(t, err, "drive is not configured")
}
