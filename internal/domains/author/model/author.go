package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// Validation limits
const (
	MaxNameLength = 255
	MinNameLength = 2
	MaxBioLength  = 5000
)

// Author is a collection author. The bigserial ID stays internal;
// the API only ever exposes ExternalID.
type Author struct {
	ID         int64     `json:"-" db:"id"`
	ExternalID uuid.UUID `json:"id" db:"external_id"`
	Name       string    `json:"name" db:"name"`
	Slug       string    `json:"slug" db:"slug"`
	Bio        *string   `json:"bio,omitempty" db:"bio"`
	ImageURL   *string   `json:"image_url,omitempty" db:"image_url"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// CreateAuthorRequest - POST /v1/authors
// Slug is optional: when absent it is derived from the name.
type CreateAuthorRequest struct {
	Name     string  `json:"name"`
	Slug     string  `json:"slug,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(MinNameLength, MaxNameLength)),
		validation.Field(&r.Bio, validation.Length(0, MaxBioLength)),
		validation.Field(&r.ImageURL, is.URL),
	)
}

// UpdateAuthorRequest - PUT /v1/authors/:id
// All fields optional for partial updates.
type UpdateAuthorRequest struct {
	Name     *string `json:"name,omitempty"`
	Slug     *string `json:"slug,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(MinNameLength, MaxNameLength)),
		validation.Field(&r.Slug, validation.NilOrNotEmpty),
		validation.Field(&r.Bio, validation.Length(0, MaxBioLength)),
		validation.Field(&r.ImageURL, is.URL),
	)
}

// ApplyToEntity applies the update request to an existing Author.
func (r *UpdateAuthorRequest) ApplyToEntity(a *Author) {
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.Slug != nil {
		a.Slug = *r.Slug
	}
	if r.Bio != nil {
		a.Bio = r.Bio
	}
	if r.ImageURL != nil {
		a.ImageURL = r.ImageURL
	}
}

// AuthorResponse is the public author shape.
type AuthorResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Bio       *string   `json:"bio,omitempty"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Author) ToResponse() *AuthorResponse {
	return &AuthorResponse{
		ID:        a.ExternalID,
		Name:      a.Name,
		Slug:      a.Slug,
		Bio:       a.Bio,
		ImageURL:  a.ImageURL,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AuthorFilter - query parameters for listing.
type AuthorFilter struct {
	Search string `form:"search"`
	SortBy string `form:"sort_by"` // name, created_at, updated_at
	Order  string `form:"order"`   // asc, desc
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// PaginationMeta - reusable pagination metadata.
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

// AuthorListResponse - paginated list response.
type AuthorListResponse struct {
	Data       []AuthorResponse `json:"data"`
	Pagination PaginationMeta   `json:"pagination"`
}
