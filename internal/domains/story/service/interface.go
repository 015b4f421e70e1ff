package service

import (
	"context"

	"github.com/google/uuid"

	"collections-backend/internal/domains/story/model"
)

type ServiceInterface interface {
	Create(ctx context.Context, collectionExternalID uuid.UUID, req model.CreateStoryRequest) (*model.Story, error)
	GetByExternalID(ctx context.Context, externalID uuid.UUID) (*model.Story, error)
	GetByCollection(ctx context.Context, collectionExternalID uuid.UUID) ([]model.Story, error)
	Update(ctx context.Context, externalID uuid.UUID, req model.UpdateStoryRequest) (*model.Story, error)
	Delete(ctx context.Context, externalID uuid.UUID) error
}
