package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	authormodel "collections-backend/internal/domains/author/model"
)

// Status is the publishing state of a collection.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Validation limits
const (
	MaxTitleLength       = 255
	MinTitleLength       = 1
	MaxDescriptionLength = 10000
)

// Collection is a curated set of stories. The bigserial ID stays
// internal; the API only ever exposes ExternalID.
//
// PublishedAt is set exactly once, on the transition into the
// published status. Re-publishing an archived collection keeps the
// original timestamp.
type Collection struct {
	ID          int64      `json:"-" db:"id"`
	ExternalID  uuid.UUID  `json:"id" db:"external_id"`
	Title       string     `json:"title" db:"title"`
	Slug        string     `json:"slug" db:"slug"`
	Description *string    `json:"description,omitempty" db:"description"`
	Status      Status     `json:"status" db:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`
	// PublishAt schedules a future automatic publish; picked up by the worker.
	PublishAt *time.Time `json:"publish_at,omitempty" db:"publish_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`

	// Loaded relations
	Authors []authormodel.Author `json:"authors,omitempty" db:"-"`
}

// CreateCollectionRequest - POST /v1/collections
// Slug is optional, generated from the title when absent.
type CreateCollectionRequest struct {
	Title       string      `json:"title"`
	Slug        string      `json:"slug,omitempty"`
	Description *string     `json:"description,omitempty"`
	AuthorIDs   []uuid.UUID `json:"author_ids,omitempty"`
	PublishAt   *time.Time  `json:"publish_at,omitempty"`
}

func (r CreateCollectionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(MinTitleLength, MaxTitleLength)),
		validation.Field(&r.Description, validation.Length(0, MaxDescriptionLength)),
	)
}

// UpdateCollectionRequest - PUT /v1/collections/:id
// All fields optional for partial updates. AuthorIDs, when present,
// fully replaces the linked authors (disconnect-all-then-connect).
type UpdateCollectionRequest struct {
	Title       *string      `json:"title,omitempty"`
	Slug        *string      `json:"slug,omitempty"`
	Description *string      `json:"description,omitempty"`
	Status      *Status      `json:"status,omitempty"`
	AuthorIDs   *[]uuid.UUID `json:"author_ids,omitempty"`
	PublishAt   *time.Time   `json:"publish_at,omitempty"`
}

func (r UpdateCollectionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(MinTitleLength, MaxTitleLength)),
		validation.Field(&r.Slug, validation.NilOrNotEmpty),
		validation.Field(&r.Description, validation.Length(0, MaxDescriptionLength)),
	)
}

// CollectionResponse is the public collection shape.
type CollectionResponse struct {
	ID          uuid.UUID                    `json:"id"`
	Title       string                       `json:"title"`
	Slug        string                       `json:"slug"`
	Description *string                      `json:"description,omitempty"`
	Status      Status                       `json:"status"`
	PublishedAt *time.Time                   `json:"published_at,omitempty"`
	PublishAt   *time.Time                   `json:"publish_at,omitempty"`
	Authors     []authormodel.AuthorResponse `json:"authors"`
	CreatedAt   time.Time                    `json:"created_at"`
	UpdatedAt   time.Time                    `json:"updated_at"`
}

func (c *Collection) ToResponse() *CollectionResponse {
	authors := make([]authormodel.AuthorResponse, len(c.Authors))
	for i := range c.Authors {
		authors[i] = *c.Authors[i].ToResponse()
	}
	return &CollectionResponse{
		ID:          c.ExternalID,
		Title:       c.Title,
		Slug:        c.Slug,
		Description: c.Description,
		Status:      c.Status,
		PublishedAt: c.PublishedAt,
		PublishAt:   c.PublishAt,
		Authors:     authors,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CollectionFilter - query parameters for listing.
type CollectionFilter struct {
	Status Status `form:"status"`
	Search string `form:"search"`
	SortBy string `form:"sort_by"` // title, created_at, updated_at, published_at
	Order  string `form:"order"`   // asc, desc
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// CollectionListResponse - paginated list response.
type CollectionListResponse struct {
	Data       []CollectionResponse       `json:"data"`
	Pagination authormodel.PaginationMeta `json:"pagination"`
}

// CleanupImagesPayload is the asynq payload enqueued when a collection
// or story is deleted so the worker can drop its stored images.
type CleanupImagesPayload struct {
	EntityID   uuid.UUID `json:"entity_id"`
	EntityType string    `json:"entity_type"`
}
