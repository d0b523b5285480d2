package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// mapFetcher serves fixed bytes per reference and counts calls
type mapFetcher struct {
	mu    sync.Mutex
	data  map[string][]byte
	calls map[string]int
}

func newMapFetcher(data map[string][]byte) *mapFetcher {
	return &mapFetcher{data: data, calls: map[string]int{}}
}

func (f *mapFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[ref]++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := f.data[ref]
	if !ok {
		return nil, fmt.Errorf("not found: %s", ref)
	}
	return data, nil
}

func (f *mapFetcher) count(ref string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[ref]
}

// anyFetcher answers every reference with the same bytes
type anyFetcher struct {
	data []byte
}

func (f anyFetcher) Fetch(ctx context.Context, _ string) ([]byte, error) {
	return f.data, ctx.Err()
}

// blockingFetcher waits for cancellation
type blockingFetcher struct {
	started chan struct{}
	once    sync.Once
}

func (f *blockingFetcher) Fetch(ctx context.Context, _ string) ([]byte, error) {
	f.once.Do(func() { close(f.started) })
	<-ctx.Done()
	return nil, ctx.Err()
}

type fakeDrive struct {
	folders map[string][]DriveFile
	files   map[string][]byte
}

func (d *fakeDrive) ListImages(_ context.Context, folderID string) ([]DriveFile, error) {
	files, ok := d.folders[folderID]
	if !ok {
		return nil, fmt.Errorf("folder %s not found", folderID)
	}
	return files, nil
}

func (d *fakeDrive) Download(_ context.Context, fileID string) ([]byte, error) {
	data, ok := d.files[fileID]
	if !ok {
		return nil, fmt.Errorf("file %s not found", fileID)
	}
	return data, nil
}

func solidImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func testIllustrations(fetcher Fetcher) *IllustrationService {
	return NewIllustrationService(PollinationsProvider{BaseURL: "https://img.test/prompt/"}, fetcher, IllustrationConfig{
		StyleSuffix: ", flat vector",
		Width:       800,
		Height:      600,
		SlideSuffix: ", high quality, 8k",
		SlideSize:   1024,
		StockSuffix: ", high quality, 8k, wallpaper, no text",
		StockWidth:  1920,
		StockHeight: 1080,
	})
}
