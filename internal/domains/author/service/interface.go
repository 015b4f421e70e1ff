package service

import (
	"context"

	"github.com/google/uuid"

	"collections-backend/internal/domains/author/model"
)

// ServiceInterface is the author business-logic contract.
type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)
	GetByExternalID(ctx context.Context, externalID uuid.UUID) (*model.Author, error)
	GetBySlug(ctx context.Context, slug string) (*model.Author, error)
	GetAll(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error)
	Update(ctx context.Context, externalID uuid.UUID, req *model.UpdateAuthorRequest) (*model.Author, error)
	Delete(ctx context.Context, externalID uuid.UUID) error
}
