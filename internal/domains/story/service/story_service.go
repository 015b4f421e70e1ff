package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	collectionmodel "collections-backend/internal/domains/collection/model"
	"collections-backend/internal/domains/story/model"
	"collections-backend/internal/domains/story/repository"
	"collections-backend/internal/shared"
	"collections-backend/pkg/logger"
)

type storyService struct {
	repo        repository.RepositoryInterface
	asynqClient *asynq.Client
}

func NewStoryService(repo repository.RepositoryInterface, asynqClient *asynq.Client) ServiceInterface {
	return &storyService{
		repo:        repo,
		asynqClient: asynqClient,
	}
}

func (s *storyService) Create(ctx context.Context, collectionExternalID uuid.UUID, req model.CreateStoryRequest) (*model.Story, error) {
	if collectionExternalID == uuid.Nil {
		return nil, model.ErrCollectionNotFound
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	collectionID, err := s.repo.ResolveCollectionID(ctx, collectionExternalID)
	if err != nil {
		return nil, err
	}

	authorIDs, err := s.repo.ResolveAuthorIDs(ctx, req.AuthorIDs)
	if err != nil {
		return nil, err
	}

	story := &model.Story{
		CollectionID: collectionID,
		Title:        strings.TrimSpace(req.Title),
		URL:          strings.TrimSpace(req.URL),
		Excerpt:      req.Excerpt,
		ImageURL:     req.ImageURL,
		Publisher:    req.Publisher,
		Tags:         req.Tags,
	}
	if req.SortOrder != nil {
		story.SortOrder = *req.SortOrder
	}

	created, err := s.repo.Create(ctx, story, authorIDs)
	if err != nil {
		return nil, err
	}

	logger.Info("story created", map[string]interface{}{
		"story_id":      created.ExternalID.String(),
		"collection_id": collectionExternalID.String(),
	})

	return created, nil
}

func (s *storyService) GetByExternalID(ctx context.Context, externalID uuid.UUID) (*model.Story, error) {
	if externalID == uuid.Nil {
		return nil, model.ErrMissingExternalID
	}
	return s.repo.GetByExternalID(ctx, externalID)
}

func (s *storyService) GetByCollection(ctx context.Context, collectionExternalID uuid.UUID) ([]model.Story, error) {
	collectionID, err := s.repo.ResolveCollectionID(ctx, collectionExternalID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByCollection(ctx, collectionID)
}

// Update applies a partial update. A present AuthorIDs list fully
// replaces the story's ordered authors.
func (s *storyService) Update(ctx context.Context, externalID uuid.UUID, req model.UpdateStoryRequest) (*model.Story, error) {
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
	if req.URL != nil {
		url := strings.TrimSpace(*req.URL)
		if url == "" {
			return nil, model.ErrInvalidURL
		}
		existing.URL = url
	}
	if req.Excerpt != nil {
		existing.Excerpt = req.Excerpt
	}
	if req.ImageURL != nil {
		existing.ImageURL = req.ImageURL
	}
	if req.Publisher != nil {
		existing.Publisher = req.Publisher
	}
	if req.Tags != nil {
		existing.Tags = *req.Tags
	}
	if req.SortOrder != nil {
		existing.SortOrder = *req.SortOrder
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

func (s *storyService) Delete(ctx context.Context, externalID uuid.UUID) error {
	if externalID == uuid.Nil {
		return model.ErrMissingExternalID
	}

	if err := s.repo.Delete(ctx, externalID); err != nil {
		return err
	}

	s.enqueueImageCleanup(externalID)

	logger.Info("story deleted", map[string]interface{}{
		"story_id": externalID.String(),
	})

	return nil
}

func (s *storyService) enqueueImageCleanup(entityID uuid.UUID) {
	if s.asynqClient == nil {
		return
	}

	payload, err := json.Marshal(collectionmodel.CleanupImagesPayload{
		EntityID:   entityID,
		EntityType: shared.EntityTypeStory,
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
