package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"collections-backend/internal/domains/collection/model"
	"collections-backend/internal/domains/collection/repository"
	"collections-backend/internal/shared"
	"collections-backend/internal/shared/utils"
	"collections-backend/pkg/logger"
)

type collectionService struct {
	repo        repository.RepositoryInterface
	asynqClient *asynq.Client
}

func NewCollectionService(repo repository.RepositoryInterface, asynqClient *asynq.Client) ServiceInterface {
	return &collectionService{
		repo:        repo,
		asynqClient: asynqClient,
	}
}

// Create builds a new collection. New collections always start as
// drafts with no published timestamp; the slug defaults to a slugified
// title when the request leaves it empty.
func (s *collectionService) Create(ctx context.Context, req model.CreateCollectionRequest) (*model.Collection, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, model.ErrInvalidTitle
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.GenerateSlug(title)
	}

	count, err := s.repo.CountBySlug(ctx, slug, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, model.ErrDuplicateSlug
	}

	authorIDs, err := s.repo.ResolveAuthorIDs(ctx, req.AuthorIDs)
	if err != nil {
		return nil, err
	}

	collection := &model.Collection{
		Title:       title,
		Slug:        slug,
		Description: req.Description,
		Status:      model.StatusDraft,
		PublishAt:   req.PublishAt,
	}

	created, err := s.repo.Create(ctx, collection, authorIDs)
	if err != nil {
		return nil, err
	}

	logger.Info("collection created", map[string]interface{}{
		"collection_id": created.ExternalID.String(),
		"slug":          created.Slug,
	})

	return created, nil
}

func (s *collectionService) GetByExternalID(ctx context.Context, externalID uuid.UUID) (*model.Collection, error) {
	if externalID == uuid.Nil {
		return nil, model.ErrMissingExternalID
	}
	return s.repo.GetByExternalID(ctx, externalID)
}

func (s *collectionService) GetBySlug(ctx context.Context, slug string) (*model.Collection, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *collectionService) GetAll(ctx context.Context, filter model.CollectionFilter) ([]model.Collection, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, model.ErrInvalidStatus
	}

	return s.repo.GetAll(ctx, filter)
}

// Update applies a partial update. Status transitions into published
// stamp PublishedAt only when it is still unset, so the timestamp
// survives unpublish/republish cycles. A present AuthorIDs list fully
// replaces the linked authors.
func (s *collectionService) Update(ctx context.Context, externalID uuid.UUID, req model.UpdateCollectionRequest) (*model.Collection, error) {
	if externalID == uuid.Nil {
		return nil, model.ErrMissingExternalID
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, model.ErrInvalidTitle
		}
		existing.Title = title
	}

	if req.Slug != nil {
		newSlug := strings.TrimSpace(*req.Slug)
		if newSlug == "" {
			newSlug = utils.GenerateSlug(existing.Title)
		}
		if newSlug != existing.Slug {
			count, err := s.repo.CountBySlug(ctx, newSlug, existing.ID)
			if err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, model.ErrDuplicateSlug
			}
		}
		existing.Slug = newSlug
	}

	if req.Description != nil {
		existing.Description = req.Description
	}

	if req.PublishAt != nil {
		existing.PublishAt = req.PublishAt
	}

	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, model.ErrInvalidStatus
		}
		s.applyStatus(existing, *req.Status)
	}

	if req.AuthorIDs != nil {
		authorIDs, err := s.repo.ResolveAuthorIDs(ctx, *req.AuthorIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceAuthors(ctx, existing.ID, authorIDs); err != nil {
			return nil, err
		}
	}

	return s.repo.Update(ctx, existing)
}

// applyStatus mutates the status, stamping PublishedAt on the first
// transition into published only.
func (s *collectionService) applyStatus(c *model.Collection, status model.Status) {
	if status == model.StatusPublished && c.PublishedAt == nil {
		now := time.Now().UTC()
		c.PublishedAt = &now
	}
	c.Status = status
}

func (s *collectionService) Publish(ctx context.Context, externalID uuid.UUID) (*model.Collection, error) {
	return s.transition(ctx, externalID, model.StatusPublished)
}

func (s *collectionService) Unpublish(ctx context.Context, externalID uuid.UUID) (*model.Collection, error) {
	return s.transition(ctx, externalID, model.StatusDraft)
}

func (s *collectionService) Archive(ctx context.Context, externalID uuid.UUID) (*model.Collection, error) {
	return s.transition(ctx, externalID, model.StatusArchived)
}

func (s *collectionService) transition(ctx context.Context, externalID uuid.UUID, status model.Status) (*model.Collection, error) {
	if externalID == uuid.Nil {
		return nil, model.ErrMissingExternalID
	}

	existing, err := s.repo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	s.applyStatus(existing, status)

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	logger.Info("collection status changed", map[string]interface{}{
		"collection_id": updated.ExternalID.String(),
		"status":        string(updated.Status),
	})

	return updated, nil
}

// Delete removes the collection and its stories, then enqueues image
// cleanup for everything that went away.
func (s *collectionService) Delete(ctx context.Context, externalID uuid.UUID) error {
	if externalID == uuid.Nil {
		return model.ErrMissingExternalID
	}

	storyExternalIDs, err := s.repo.Delete(ctx, externalID)
	if err != nil {
		return err
	}

	s.enqueueImageCleanup(externalID, shared.EntityTypeCollection)
	for _, storyID := range storyExternalIDs {
		s.enqueueImageCleanup(storyID, shared.EntityTypeStory)
	}

	logger.Info("collection deleted", map[string]interface{}{
		"collection_id": externalID.String(),
		"stories":       len(storyExternalIDs),
	})

	return nil
}

// PublishDue is called by the worker's scheduled task.
func (s *collectionService) PublishDue(ctx context.Context, limit int) ([]model.Collection, error) {
	if limit <= 0 {
		limit = 50
	}

	published, err := s.repo.PublishDue(ctx, limit)
	if err != nil {
		return nil, err
	}

	if len(published) > 0 {
		logger.Info("scheduled collections published", map[string]interface{}{
			"count": len(published),
		})
	}

	return published, nil
}

func (s *collectionService) enqueueImageCleanup(entityID uuid.UUID, entityType string) {
	if s.asynqClient == nil {
		return
	}

	payload, err := json.Marshal(model.CleanupImagesPayload{
		EntityID:   entityID,
		EntityType: entityType,
	})
	if err != nil {
		logger.Error("failed to marshal cleanup payload", err)
		return
	}

	task := asynq.NewTask(shared.TypeCleanupEntityImages, payload)
	if _, err := s.asynqClient.Enqueue(task, asynq.Queue(shared.QueueLow), asynq.MaxRetry(3)); err != nil {
		logger.Error("failed to enqueue image cleanup task", err)
	}
}
