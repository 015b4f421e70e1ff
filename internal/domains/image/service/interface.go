package service

import (
	"context"

	"github.com/google/uuid"

	"collections-backend/internal/domains/image/model"
)

type ServiceInterface interface {
	// Upload validates the payload, stores resized variants and
	// records the image against the entity.
	Upload(ctx context.Context, entityID uuid.UUID, entityType string, data []byte, contentType string) (*model.Image, error)
	GetByEntity(ctx context.Context, entityID uuid.UUID, entityType string) ([]model.Image, error)
	Delete(ctx context.Context, externalID uuid.UUID) error
	// CleanupEntity drops every image of an entity from both the
	// database and object storage. Called by the worker.
	CleanupEntity(ctx context.Context, entityID uuid.UUID, entityType string) error
	// SweepOrphans drops images whose owning entity is gone. Called
	// by the worker on a schedule.
	SweepOrphans(ctx context.Context) (int, error)
}
