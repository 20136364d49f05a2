package models

import "time"

type GenerateImageResponse struct {
	URL string `json:"url"`
	// Placeholder is true when generation was unavailable or failed
	Placeholder bool   `json:"placeholder"`
	AssetID     string `json:"asset_id,omitempty"`
}

type ImageAssetResponse struct {
	ID        string                 `json:"id"`
	Path      string                 `json:"path"`
	Extras    map[string]interface{} `json:"extras,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type ImageAssetListResponse struct {
	Assets []ImageAssetResponse `json:"assets"`
}

type UploadFileResponse struct {
	Key       string `json:"key"`
	SignedURL string `json:"signed_url"`
	Size      int64  `json:"size"`
}

type PresentationResponse struct {
	ID        string                 `json:"id"`
	Title     string                 `json:"title"`
	Content   map[string]interface{} `json:"content,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type PresentationListResponse struct {
	Presentations []PresentationResponse `json:"presentations"`
}

type HealthResponse struct {
	Status    string  `json:"status"`
	Service   string  `json:"service,omitempty"`
	Timestamp float64 `json:"timestamp,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
