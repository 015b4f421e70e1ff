package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"collections-backend/internal/domains/author/model"
	"collections-backend/internal/domains/author/repository"
	"collections-backend/internal/shared/utils"
)

// authorService implements ServiceInterface.
type authorService struct {
	repo repository.RepositoryInterface
}

func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{repo: repo}
}

// Create validates the request and inserts the author.
// The slug defaults to the normalized name when not provided.
func (s *authorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.ErrInvalidName
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.GenerateSlug(name)
	}
	if slug == "" {
		return nil, model.ErrInvalidName
	}

	// Application-level uniqueness check; the unique constraint is the backstop
	count, err := s.repo.CountBySlug(ctx, slug, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug uniqueness: %w", err)
	}
	if count > 0 {
		return nil, model.ErrDuplicateSlug
	}

	newAuthor := &model.Author{
		Name:     name,
		Slug:     slug,
		Bio:      req.Bio,
		ImageURL: req.ImageURL,
	}

	created, err := s.repo.Create(ctx, newAuthor)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *authorService) GetByExternalID(ctx context.Context, externalID uuid.UUID) (*model.Author, error) {
	if externalID == uuid.Nil {
		return nil, model.ErrAuthorNotFound
	}
	return s.repo.GetByExternalID(ctx, externalID)
}

func (s *authorService) GetBySlug(ctx context.Context, slug string) (*model.Author, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, model.ErrAuthorNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *authorService) GetAll(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	// Sanitize pagination
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	// Whitelist sort columns to keep injection out of ORDER BY
	allowedSortColumns := map[string]bool{
		"name":       true,
		"created_at": true,
		"updated_at": true,
	}
	if filter.SortBy == "" {
		filter.SortBy = "created_at"
	}
	if !allowedSortColumns[filter.SortBy] {
		return nil, 0, fmt.Errorf("invalid sort column: %s", filter.SortBy)
	}
	if filter.Order != "asc" {
		filter.Order = "desc"
	}

	return s.repo.GetAll(ctx, filter)
}

// Update applies a partial update. A slug change is re-checked for
// uniqueness excluding the record's own row.
func (s *authorService) Update(ctx context.Context, externalID uuid.UUID, req *model.UpdateAuthorRequest) (*model.Author, error) {
	if externalID == uuid.Nil {
		return nil, model.ErrAuthorNotFound
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil {
		newSlug := strings.TrimSpace(*req.Slug)
		if newSlug == "" {
			name := existing.Name
			if req.Name != nil {
				name = strings.TrimSpace(*req.Name)
			}
			newSlug = utils.GenerateSlug(name)
		}
		if newSlug != existing.Slug {
			count, err := s.repo.CountBySlug(ctx, newSlug, existing.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check slug uniqueness: %w", err)
			}
			if count > 0 {
				return nil, model.ErrDuplicateSlug
			}
		}
		req.Slug = &newSlug
	}

	req.ApplyToEntity(existing)

	return s.repo.Update(ctx, existing)
}

func (s *authorService) Delete(ctx context.Context, externalID uuid.UUID) error {
	if externalID == uuid.Nil {
		return model.ErrAuthorNotFound
	}
	return s.repo.Delete(ctx, externalID)
}
