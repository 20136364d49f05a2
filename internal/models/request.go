package models

type GenerateImageRequest struct {
	// Prompt describes the image subject
	Prompt string `json:"prompt" binding:"required" example:"a red fox"`
	// Theme optionally styles generative output (ignored for stock providers)
	Theme string `json:"theme,omitempty" example:"watercolor"`
}

type CreatePresentationRequest struct {
	Title string `json:"title" binding:"required"`
	// Optional slide content to store with the presentation
	Content map[string]interface{} `json:"content,omitempty"`
}

type DeleteFileRequest struct {
	// Key is the full storage key, e.g. users/<id>/uploads/<file>
	Key string `json:"key" binding:"required"`
}
