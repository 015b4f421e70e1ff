package repository

import (
	"context"

	"github.com/google/uuid"

	"collections-backend/internal/domains/story/model"
)

// RepositoryInterface defines story persistence.
//
// Delete must remove the story's story_authors join rows before the
// story row itself, in one transaction, so the join table never holds
// dangling references.
type RepositoryInterface interface {
	// Create inserts the story and its ordered author links in one
	// transaction. The index of each id in authorIDs becomes its
	// sort_order.
	Create(ctx context.Context, story *model.Story, authorIDs []int64) (*model.Story, error)
	GetByExternalID(ctx context.Context, externalID uuid.UUID) (*model.Story, error)
	// GetByCollection returns the collection's stories ordered by
	// sort_order, then creation time.
	GetByCollection(ctx context.Context, collectionID int64) ([]model.Story, error)
	Update(ctx context.Context, story *model.Story) (*model.Story, error)
	// ReplaceAuthors removes every existing author link then inserts
	// the given ordered set, in one transaction.
	ReplaceAuthors(ctx context.Context, storyID int64, authorIDs []int64) error
	Delete(ctx context.Context, externalID uuid.UUID) error
	// ResolveCollectionID maps a public collection UUID to its
	// internal id.
	ResolveCollectionID(ctx context.Context, externalID uuid.UUID) (int64, error)
	// ResolveAuthorIDs maps public author UUIDs to internal ids,
	// preserving order.
	ResolveAuthorIDs(ctx context.Context, externalIDs []uuid.UUID) ([]int64, error)
}
