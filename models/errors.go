package models

import (
	"errors"
	"fmt"
)

// Layout conditions. A failing slide degrades to a fallback block, the deck
// itself is never aborted.
var (
	ErrUnsupportedLayout    = errors.New("unsupported layout")
	ErrUnsupportedGridArity = errors.New("unsupported grid arity")
)

// Asset conditions. Both are recoverable: the asset is omitted and the
// rest of the slide renders.
var (
	ErrMissingSourceImage = errors.New("missing source image")
	ErrImageUnavailable   = errors.New("image unavailable")
)

// ErrNotFound is returned by stores when a record does not exist
var ErrNotFound = errors.New("not found")

// ValidationError describes a schema violation found at the boundary
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error on field %q: %s", e.Field, e.Message)
}

// ParseError wraps a failure to decode a deck document
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse deck: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LayoutError ties a layout condition to the slide that raised it
type LayoutError struct {
	SlideID string
	Layout  Layout
	Err     error
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("slide %q layout %q: %v", e.SlideID, e.Layout, e.Err)
}

func (e *LayoutError) Unwrap() error {
	return e.Err
}

// AssetError ties an asset condition to the asset that raised it
type AssetError struct {
	Key     string
	SlideID string
	Source  AssetKind
	Err     error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("asset %s (%s): %v", e.Key, e.Source, e.Err)
}

func (e *AssetError) Unwrap() error {
	return e.Err
}
