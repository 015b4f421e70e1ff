package repository

import (
	"context"

	"github.com/google/uuid"

	"collections-backend/internal/domains/collection/model"
)

// RepositoryInterface is the collection data-access contract.
type RepositoryInterface interface {
	// Create inserts the collection and links the given authors
	// (internal IDs) in one transaction.
	Create(ctx context.Context, c *model.Collection, authorIDs []int64) (*model.Collection, error)

	GetByExternalID(ctx context.Context, externalID uuid.UUID) (*model.Collection, error)
	GetBySlug(ctx context.Context, slug string) (*model.Collection, error)
	GetAll(ctx context.Context, filter model.CollectionFilter) ([]model.Collection, int64, error)

	Update(ctx context.Context, c *model.Collection) (*model.Collection, error)

	// ReplaceAuthors applies full-replace semantics: every existing
	// author link is removed, then the given set is inserted.
	ReplaceAuthors(ctx context.Context, collectionID int64, authorIDs []int64) error

	// Delete removes the collection and its dependents in order:
	// story_authors rows, stories, author links, then the collection
	// row, all in one transaction. Returns the external IDs of the
	// deleted stories so callers can clean up their images.
	Delete(ctx context.Context, externalID uuid.UUID) (storyExternalIDs []uuid.UUID, err error)

	// CountBySlug counts collections holding slug, excluding excludeID
	// (0 excludes nothing).
	CountBySlug(ctx context.Context, slug string, excludeID int64) (int64, error)

	// ResolveAuthorIDs maps public author UUIDs to internal IDs,
	// failing with model.ErrAuthorNotFound when any is unknown.
	ResolveAuthorIDs(ctx context.Context, externalIDs []uuid.UUID) ([]int64, error)

	// PublishDue transitions draft collections whose publish_at has
	// passed into published, stamping published_at only when unset.
	// Returns the collections that were published.
	PublishDue(ctx context.Context, limit int) ([]model.Collection, error)
}
