package service

import (
	"context"

	"github.com/google/uuid"

	"collections-backend/internal/domains/collection/model"
)

type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateCollectionRequest) (*model.Collection, error)
	GetByExternalID(ctx context.Context, externalID uuid.UUID) (*model.Collection, error)
	GetBySlug(ctx context.Context, slug string) (*model.Collection, error)
	GetAll(ctx context.Context, filter model.CollectionFilter) ([]model.Collection, int64, error)
	Update(ctx context.Context, externalID uuid.UUID, req model.UpdateCollectionRequest) (*model.Collection, error)
	Publish(ctx context.Context, externalID uuid.UUID) (*model.Collection, error)
	Unpublish(ctx context.Context, externalID uuid.UUID) (*model.Collection, error)
	Archive(ctx context.Context, externalID uuid.UUID) (*model.Collection, error)
	Delete(ctx context.Context, externalID uuid.UUID) error
	PublishDue(ctx context.Context, limit int) ([]model.Collection, error)
}
