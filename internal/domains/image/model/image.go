package model

import (
	"time"

	"github.com/google/uuid"
)

// Allowed entity types live in internal/shared; images attach to any
// of them through the entity_id + entity_type pair.
type Image struct {
	ID           int64     `json:"-" db:"id"`
	ExternalID   uuid.UUID `json:"id" db:"external_id"`
	EntityID     uuid.UUID `json:"entity_id" db:"entity_id"`
	EntityType   string    `json:"entity_type" db:"entity_type"`
	StorageKey   string    `json:"-" db:"storage_key"`
	URL          string    `json:"url" db:"url"`
	MediumURL    string    `json:"medium_url" db:"medium_url"`
	ThumbnailURL string    `json:"thumbnail_url" db:"thumbnail_url"`
	ContentType  string    `json:"content_type" db:"content_type"`
	SizeBytes    int64     `json:"size_bytes" db:"size_bytes"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ImageResponse is the public image shape.
type ImageResponse struct {
	ID           uuid.UUID `json:"id"`
	EntityID     uuid.UUID `json:"entity_id"`
	EntityType   string    `json:"entity_type"`
	URL          string    `json:"url"`
	MediumURL    string    `json:"medium_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
}

func (i *Image) ToResponse() *ImageResponse {
	return &ImageResponse{
		ID:           i.ExternalID,
		EntityID:     i.EntityID,
		EntityType:   i.EntityType,
		URL:          i.URL,
		MediumURL:    i.MediumURL,
		ThumbnailURL: i.ThumbnailURL,
		ContentType:  i.ContentType,
		SizeBytes:    i.SizeBytes,
		CreatedAt:    i.CreatedAt,
	}
}
