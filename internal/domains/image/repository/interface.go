package repository

import (
	"context"

	"github.com/google/uuid"

	"collections-backend/internal/domains/image/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, image *model.Image) (*model.Image, error)
	GetByExternalID(ctx context.Context, externalID uuid.UUID) (*model.Image, error)
	GetByEntity(ctx context.Context, entityID uuid.UUID, entityType string) ([]model.Image, error)
	Delete(ctx context.Context, externalID uuid.UUID) error
	// DeleteByEntity removes every image row for an entity and
	// returns their storage keys so the caller can drop the objects.
	DeleteByEntity(ctx context.Context, entityID uuid.UUID, entityType string) ([]string, error)
	// DeleteOrphans removes image rows whose owning entity no longer
	// exists and returns their storage keys.
	DeleteOrphans(ctx context.Context) ([]string, error)
}
