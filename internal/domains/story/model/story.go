package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/lib/pq"

	authormodel "collections-backend/internal/domains/author/model"
)

// Validation limits
const (
	MaxTitleLength   = 255
	MinTitleLength   = 1
	MaxExcerptLength = 5000
	MaxURLLength     = 2048
)

// Story is a single entry inside a collection. Like collections, the
// bigserial ID stays internal and the API exposes only ExternalID.
//
// Authors are ordered: the position of each author id in a request
// becomes its sort_order in the story_authors join table.
type Story struct {
	ID           int64          `json:"-" db:"id"`
	ExternalID   uuid.UUID      `json:"id" db:"external_id"`
	CollectionID int64          `json:"-" db:"collection_id"`
	Title        string         `json:"title" db:"title"`
	URL          string         `json:"url" db:"url"`
	Excerpt      *string        `json:"excerpt,omitempty" db:"excerpt"`
	ImageURL     *string        `json:"image_url,omitempty" db:"image_url"`
	Publisher    *string        `json:"publisher,omitempty" db:"publisher"`
	Tags         pq.StringArray `json:"tags,omitempty" db:"tags"`
	SortOrder    int            `json:"sort_order" db:"sort_order"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`

	// Loaded relations, ordered by their sort_order
	Authors []authormodel.Author `json:"authors,omitempty" db:"-"`
}

// CreateStoryRequest - POST /v1/collections/:id/stories
type CreateStoryRequest struct {
	Title     string      `json:"title"`
	URL       string      `json:"url"`
	Excerpt   *string     `json:"excerpt,omitempty"`
	ImageURL  *string     `json:"image_url,omitempty"`
	Publisher *string     `json:"publisher,omitempty"`
	Tags      []string    `json:"tags,omitempty"`
	SortOrder *int        `json:"sort_order,omitempty"`
	AuthorIDs []uuid.UUID `json:"author_ids,omitempty"`
}

func (r CreateStoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(MinTitleLength, MaxTitleLength)),
		validation.Field(&r.URL, validation.Required, validation.Length(1, MaxURLLength), is.URL),
		validation.Field(&r.Excerpt, validation.Length(0, MaxExcerptLength)),
	)
}

// UpdateStoryRequest - PUT /v1/stories/:id
// AuthorIDs, when present, fully replaces the story's ordered authors.
type UpdateStoryRequest struct {
	Title     *string      `json:"title,omitempty"`
	URL       *string      `json:"url,omitempty"`
	Excerpt   *string      `json:"excerpt,omitempty"`
	ImageURL  *string      `json:"image_url,omitempty"`
	Publisher *string      `json:"publisher,omitempty"`
	Tags      *[]string    `json:"tags,omitempty"`
	SortOrder *int         `json:"sort_order,omitempty"`
	AuthorIDs *[]uuid.UUID `json:"author_ids,omitempty"`
}

func (r UpdateStoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(MinTitleLength, MaxTitleLength)),
		validation.Field(&r.URL, validation.NilOrNotEmpty, validation.Length(0, MaxURLLength)),
		validation.Field(&r.Excerpt, validation.Length(0, MaxExcerptLength)),
	)
}

// StoryResponse is the public story shape.
type StoryResponse struct {
	ID        uuid.UUID                    `json:"id"`
	Title     string                       `json:"title"`
	URL       string                       `json:"url"`
	Excerpt   *string                      `json:"excerpt,omitempty"`
	ImageURL  *string                      `json:"image_url,omitempty"`
	Publisher *string                      `json:"publisher,omitempty"`
	Tags      []string                     `json:"tags,omitempty"`
	SortOrder int                          `json:"sort_order"`
	Authors   []authormodel.AuthorResponse `json:"authors"`
	CreatedAt time.Time                    `json:"created_at"`
	UpdatedAt time.Time                    `json:"updated_at"`
}

func (s *Story) ToResponse() *StoryResponse {
	authors := make([]authormodel.AuthorResponse, len(s.Authors))
	for i := range s.Authors {
		authors[i] = *s.Authors[i].ToResponse()
	}
	return &StoryResponse{
		ID:        s.ExternalID,
		Title:     s.Title,
		URL:       s.URL,
		Excerpt:   s.Excerpt,
		ImageURL:  s.ImageURL,
		Publisher: s.Publisher,
		Tags:      s.Tags,
		SortOrder: s.SortOrder,
		Authors:   authors,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// StoryListResponse - stories of one collection, ordered by sort_order.
type StoryListResponse struct {
	Data []StoryResponse `json:"data"`
}
