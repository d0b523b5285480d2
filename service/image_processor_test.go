package service

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deckforge/models"
)

func TestDecodeDataURI(t *testing.T) {
	t.Parallel()

	raw := []byte("hello")
	enc := base64.StdEncoding.EncodeToString(raw)

	data, mime, err := DecodeDataURI("data:image/png;base64," + enc)
	require.NoError(t, err)
	assert.Equal(t, raw, data)
	assert.Equal(t, "image/png", mime)

	data, mime, err = DecodeDataURI(enc)
	require.NoError(t, err)
	assert.Equal(t, raw, data)
	assert.Empty(t, mime)

	_, _, err = DecodeDataURI("data:image/png,plain")
	require.Error(t, err)
	_, _, err = DecodeDataURI("data:image/png;base64")
	require.Error(t, err)
	_, _, err = DecodeDataURI("!!not base64!!")
	require.Error(t, err)

	assert.True(t, IsDataURI(" data:image/png;base64,xx"))
	assert.False(t, IsDataURI("https://x"))
}

// halfWhite is a 100x50 image: red left half, white right half
func halfWhite() *image.NRGBA {
	img := solidImage(100, 50, color.NRGBA{R: 220, G: 20, B: 20, A: 255})
	for x := 50; x < 100; x++ {
		for y := 0; y < 50; y++ {
			img.Set(x, y, color.NRGBA{R: 250, G: 250, B: 250, A: 255})
		}
	}
	return img
}

func decodeNRGBA(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestCropRegion(t *testing.T) {
	t.Parallel()

	source := encodePNG(t, halfWhite())

	left, err := CropRegion(source, models.Element{X: 0, Y: 0, W: 50, H: 100}, 230)
	require.NoError(t, err)
	assert.Equal(t, "image/png", left.MIME)
	assert.Equal(t, 50, left.Width)
	assert.Equal(t, 50, left.Height)
	_, _, _, a := decodeNRGBA(t, left.Data).At(10, 10).RGBA()
	assert.Equal(t, uint32(0xffff), a)

	right, err := CropRegion(source, models.Element{X: 50, Y: 50, W: 50, H: 50}, 230)
	require.NoError(t, err)
	assert.Equal(t, 50, right.Width)
	assert.Equal(t, 25, right.Height)
	_, _, _, a = decodeNRGBA(t, right.Data).At(10, 10).RGBA()
	assert.Zero(t, a, "near-white pixels become transparent")

	kept, err := CropRegion(source, models.Element{X: 50, W: 50, H: 100}, 254)
	require.NoError(t, err)
	_, _, _, a = decodeNRGBA(t, kept.Data).At(10, 10).RGBA()
	assert.Equal(t, uint32(0xffff), a, "threshold above the pixel value keeps it")

	// averages just above the threshold count, exact averages do not
	tests := []struct {
		name  string
		pixel color.NRGBA
		alpha uint8
	}{
		{"fractional average above", color.NRGBA{R: 231, G: 230, B: 230, A: 255}, 0},
		{"average equal", color.NRGBA{R: 230, G: 230, B: 230, A: 255}, 255},
		{"fractional average below", color.NRGBA{R: 229, G: 230, B: 230, A: 255}, 255},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cleared := ClearNearWhite(solidImage(2, 2, tc.pixel), 230)
			assert.Equal(t, tc.alpha, cleared.NRGBAAt(0, 0).A)

			crop, err := CropRegion(encodePNG(t, solidImage(4, 4, tc.pixel)), models.Element{W: 100, H: 100}, 230)
			require.NoError(t, err)
			_, _, _, a := decodeNRGBA(t, crop.Data).At(1, 1).RGBA()
			assert.Equal(t, uint32(tc.alpha)*0x101, a)
		})
	}
}

func TestCropRegionErrors(t *testing.T) {
	t.Parallel()

	source := encodePNG(t, halfWhite())

	_, err := CropRegion(source, models.Element{X: 10, Y: 10, W: 0, H: 10}, 230)
	require.ErrorIs(t, err, ErrEmptyCrop)

	_, err = CropRegion(source, models.Element{X: 120, Y: 0, W: 10, H: 10}, 230)
	require.ErrorIs(t, err, ErrEmptyCrop)

	_, err = CropRegion([]byte("not an image"), models.Element{W: 10, H: 10}, 230)
	require.Error(t, err)
}

func TestOptimizeImage(t *testing.T) {
	t.Parallel()

	big := encodePNG(t, solidImage(400, 100, color.NRGBA{B: 255, A: 255}))
	out, err := OptimizeImage(big, 200, 80)
	require.NoError(t, err)
	assert.Equal(t, "image/png", out.MIME)
	assert.Equal(t, 200, out.Width)
	assert.Equal(t, 50, out.Height)

	small := encodeJPEG(t, solidImage(20, 40, color.NRGBA{G: 255, A: 255}))
	out, err = OptimizeImage(small, 200, 80)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", out.MIME)
	assert.Equal(t, small, out.Data)

	tall := encodeJPEG(t, solidImage(50, 300, color.NRGBA{R: 255, A: 255}))
	out, err = OptimizeImage(tall, 100, 80)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", out.MIME)
	assert.Equal(t, 100, out.Height)

	_, err = OptimizeImage([]byte("junk"), 100, 80)
	require.Error(t, err)
}

func TestToJPEG(t *testing.T) {
	t.Parallel()

	out, err := toJPEG(encodePNG(t, solidImage(8, 6, color.NRGBA{A: 0})), 80)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", out.MIME)
	assert.Equal(t, 8, out.Width)
	assert.Equal(t, 6, out.Height)
	assert.Equal(t, []byte{0xFF, 0xD8}, out.Data[:2])
}
