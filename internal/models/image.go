package models

// PlaceholderImagePath is served by the frontend's static assets and is the
// result of every failed or unconfigured generation attempt.
const PlaceholderImagePath = "/static/images/placeholder.jpg"

// GeneratedImage is the result of an image generation request: exactly one
// of PlaceholderImage, PassthroughImage or StoredImage.
type GeneratedImage interface {
	// ImageURL is the path or URL a renderer can put straight into a slide.
	ImageURL() string
}

// PlaceholderImage is returned whenever no provider is configured or any
// step of acquisition failed.
type PlaceholderImage struct{}

func (PlaceholderImage) ImageURL() string { return PlaceholderImagePath }

// PassthroughImage carries an upstream-hosted URL returned verbatim.
type PassthroughImage struct {
	URL string
}

func (p PassthroughImage) ImageURL() string { return p.URL }

// StoredImage represents bytes persisted to object storage, retrievable via
// a time-limited signed URL.
type StoredImage struct {
	SignedURL   string
	UserID      string
	Prompt      string
	ThemePrompt string
}

func (s StoredImage) ImageURL() string { return s.SignedURL }
