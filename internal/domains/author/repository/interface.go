package repository

import (
	"context"

	"github.com/google/uuid"

	"collections-backend/internal/domains/author/model"
)

// RepositoryInterface is the author data-access contract.
type RepositoryInterface interface {
	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	GetByExternalID(ctx context.Context, externalID uuid.UUID) (*model.Author, error)
	GetBySlug(ctx context.Context, slug string) (*model.Author, error)
	GetAll(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error)
	Update(ctx context.Context, a *model.Author) (*model.Author, error)
	Delete(ctx context.Context, externalID uuid.UUID) error

	// CountBySlug counts authors holding slug, excluding excludeID
	// (0 excludes nothing). Backs the application-level uniqueness check.
	CountBySlug(ctx context.Context, slug string, excludeID int64) (int64, error)
}
