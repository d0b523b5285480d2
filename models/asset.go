package models

// AssetKind is where an asset request comes from
type AssetKind string

const (
	AssetCrop       AssetKind = "crop"
	AssetGenerated  AssetKind = "generated"
	AssetSlideImage AssetKind = "slide_image"
	AssetBackground AssetKind = "background"
)

// AssetState is the outcome of resolving one asset
type AssetState string

const (
	AssetOK                 AssetState = "ok"
	AssetMissingSourceImage AssetState = "missing_source_image"
	AssetImageUnavailable   AssetState = "image_unavailable"
)

// AssetRequest is one image the plan may need
type AssetRequest struct {
	Key        string    `json:"key"`
	Kind       AssetKind `json:"kind"`
	SlideID    string    `json:"slideId,omitempty"`
	SlideIndex int       `json:"slideIndex"`
	// Element is set for crop and generated requests
	Element *Element `json:"element,omitempty"`
	// Reference is the slide image reference or the illustration prompt
	Reference string `json:"reference,omitempty"`
	// Candidates are tried in order for backgrounds
	Candidates []string `json:"candidates,omitempty"`
}

// ImagePayload is a resolved image ready to be embedded
type ImagePayload struct {
	Key       string `json:"key"`
	MIME      string `json:"mime"`
	Data      []byte `json:"-"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Reference string `json:"reference,omitempty"`
}

// Extension returns the file extension matching the payload MIME type
func (p *ImagePayload) Extension() string {
	switch p.MIME {
	case "image/jpeg":
		return "jpeg"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}

// AssetStatus reports how one asset request resolved
type AssetStatus struct {
	Key     string     `json:"key"`
	Kind    AssetKind  `json:"kind"`
	SlideID string     `json:"slideId,omitempty"`
	State   AssetState `json:"state"`
	Error   string     `json:"error,omitempty"`
}

// Assets is the resolved asset set of one export, keyed by request key
type Assets map[string]*ImagePayload

// Has reports whether the asset resolved
func (a Assets) Has(key string) bool {
	if a == nil {
		return false
	}
	p, ok := a[key]
	return ok && p != nil && len(p.Data) > 0
}
