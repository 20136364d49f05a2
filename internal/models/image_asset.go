package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ImageAsset is a stored or uploaded file owned by a user. Path holds the
// signed URL (generated images) or storage key (uploads); Extras carries
// provenance such as the generation prompt.
type ImageAsset struct {
	ID        uuid.UUID
	UserID    string
	Path      string
	Extras    json.RawMessage
	CreatedAt time.Time
}

type Presentation struct {
	ID        uuid.UUID
	UserID    string
	Title     string
	Content   json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}
