package service

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"strings"

	"github.com/disintegration/imaging"

	"deckforge/models"
)

// ErrEmptyCrop is returned when a crop rectangle covers no pixels
var ErrEmptyCrop = errors.New("crop rectangle is empty")

// DecodeDataURI decodes a "data:<mime>;base64,<payload>" reference. A bare
// base64 string is accepted too.
func DecodeDataURI(ref string) ([]byte, string, error) {
	mime := ""
	payload := strings.TrimSpace(ref)
	if strings.HasPrefix(payload, "data:") {
		header, data, ok := strings.Cut(payload, ",")
		if !ok {
			return nil, "", fmt.Errorf("malformed data URI")
		}
		if !strings.HasSuffix(header, ";base64") {
			return nil, "", fmt.Errorf("data URI is not base64 encoded")
		}
		mime = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		payload = data
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, "", fmt.Errorf("failed to decode base64 image: %w", err)
		}
	}
	return data, mime, nil
}

// IsDataURI reports whether ref carries its image inline
func IsDataURI(ref string) bool {
	return strings.HasPrefix(strings.TrimSpace(ref), "data:")
}

// CropRegion cuts the percentage rectangle of an element out of the source
// image, measured against the source image's own pixel size, clears near-white
// pixels and encodes the result as PNG.
func CropRegion(source []byte, e models.Element, whiteThreshold uint8) (*models.ImagePayload, error) {
	img, _, err := image.Decode(bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("failed to decode source image: %w", err)
	}

	b := img.Bounds()
	rect := image.Rect(
		b.Min.X+int(math.Round(e.X/100*float64(b.Dx()))),
		b.Min.Y+int(math.Round(e.Y/100*float64(b.Dy()))),
		b.Min.X+int(math.Round((e.X+e.W)/100*float64(b.Dx()))),
		b.Min.Y+int(math.Round((e.Y+e.H)/100*float64(b.Dy()))),
	).Intersect(b)
	if rect.Empty() {
		return nil, ErrEmptyCrop
	}

	cropped := ClearNearWhite(imaging.Crop(img, rect), whiteThreshold)

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropped); err != nil {
		return nil, fmt.Errorf("failed to encode crop: %w", err)
	}
	return &models.ImagePayload{
		MIME:   "image/png",
		Data:   buf.Bytes(),
		Width:  cropped.Bounds().Dx(),
		Height: cropped.Bounds().Dy(),
	}, nil
}

// ClearNearWhite makes every pixel whose average channel value is above
// threshold fully transparent.
func ClearNearWhite(img image.Image, threshold uint8) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		// sum against 3*threshold keeps the fractional part of the average
		if int(c.R)+int(c.G)+int(c.B) > 3*int(threshold) {
			c.A = 0
		}
		return c
	})
}

// OptimizeImage downscales an image so that neither side exceeds maxDim.
// Images with transparency stay PNG, everything else becomes JPEG.
func OptimizeImage(imageData []byte, maxDim, quality int) (*models.ImagePayload, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	var resized image.Image = img
	if maxDim > 0 && (width > maxDim || height > maxDim) {
		if width > height {
			resized = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
		} else {
			resized = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
		}
	} else if format == "jpeg" || format == "png" {
		// already small enough and in an embeddable format
		return &models.ImagePayload{MIME: "image/" + format, Data: imageData, Width: width, Height: height}, nil
	}

	var buf bytes.Buffer
	mime := "image/jpeg"
	if format == "png" || format == "gif" {
		mime = "image/png"
		err = png.Encode(&buf, resized)
	} else {
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	rb := resized.Bounds()
	return &models.ImagePayload{MIME: mime, Data: buf.Bytes(), Width: rb.Dx(), Height: rb.Dy()}, nil
}

// toJPEG re-encodes an image as JPEG on a white background
func toJPEG(imageData []byte, quality int) (*models.ImagePayload, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	b := img.Bounds()
	flat := imaging.Overlay(imaging.New(b.Dx(), b.Dy(), color.White), img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return &models.ImagePayload{MIME: "image/jpeg", Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}
