package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"collections-backend/internal/domains/image/model"
	"collections-backend/internal/domains/image/repository"
	"collections-backend/internal/infrastructure/storage"
	"collections-backend/internal/shared"
	"collections-backend/pkg/logger"
)

type imageService struct {
	repo      repository.RepositoryInterface
	storage   *storage.MinIOStorage
	processor *storage.ImageProcessor
}

func NewImageService(repo repository.RepositoryInterface, store *storage.MinIOStorage, processor *storage.ImageProcessor) ServiceInterface {
	return &imageService{
		repo:      repo,
		storage:   store,
		processor: processor,
	}
}

func validEntityType(entityType string) bool {
	switch entityType {
	case shared.EntityTypeCollection, shared.EntityTypeStory, shared.EntityTypeAuthor:
		return true
	}
	return false
}

// Upload stores large/medium/thumbnail variants under one key prefix
// so a single prefix delete removes all of them.
func (s *imageService) Upload(ctx context.Context, entityID uuid.UUID, entityType string, data []byte, contentType string) (*model.Image, error) {
	if !validEntityType(entityType) {
		return nil, model.ErrInvalidEntityType
	}
	if len(data) == 0 {
		return nil, model.ErrMissingFile
	}

	if err := s.processor.ValidateImage(data); err != nil {
		if strings.Contains(err.Error(), "exceeds") {
			return nil, model.ErrFileTooLarge
		}
		return nil, model.ErrUnsupportedFormat
	}

	variants, err := s.processor.ProcessImage(data)
	if err != nil {
		return nil, model.ErrUnsupportedFormat
	}

	keyPrefix := fmt.Sprintf("images/%s/%s/%s", entityType, entityID.String(), uuid.New().String())

	urls := make(map[string]string, len(variants))
	for name, payload := range variants {
		url, err := s.storage.Upload(ctx, keyPrefix+"/"+name+".jpg", payload, "image/jpeg")
		if err != nil {
			// Best effort rollback of already stored variants
			s.storage.DeleteByPrefix(ctx, keyPrefix)
			return nil, fmt.Errorf("failed to store image variant: %w", err)
		}
		urls[name] = url
	}

	image := &model.Image{
		EntityID:     entityID,
		EntityType:   entityType,
		StorageKey:   keyPrefix,
		URL:          urls["large"],
		MediumURL:    urls["medium"],
		ThumbnailURL: urls["thumbnail"],
		ContentType:  contentType,
		SizeBytes:    int64(len(data)),
	}

	created, err := s.repo.Create(ctx, image)
	if err != nil {
		s.storage.DeleteByPrefix(ctx, keyPrefix)
		return nil, err
	}

	logger.Info("image uploaded", map[string]interface{}{
		"image_id":    created.ExternalID.String(),
		"entity_id":   entityID.String(),
		"entity_type": entityType,
	})

	return created, nil
}

func (s *imageService) GetByEntity(ctx context.Context, entityID uuid.UUID, entityType string) ([]model.Image, error) {
	if !validEntityType(entityType) {
		return nil, model.ErrInvalidEntityType
	}
	return s.repo.GetByEntity(ctx, entityID, entityType)
}

func (s *imageService) Delete(ctx context.Context, externalID uuid.UUID) error {
	image, err := s.repo.GetByExternalID(ctx, externalID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, externalID); err != nil {
		return err
	}

	if err := s.storage.DeleteByPrefix(ctx, image.StorageKey); err != nil {
		logger.Error("failed to delete image objects", err)
	}

	return nil
}

func (s *imageService) CleanupEntity(ctx context.Context, entityID uuid.UUID, entityType string) error {
	keys, err := s.repo.DeleteByEntity(ctx, entityID, entityType)
	if err != nil {
		return err
	}

	for _, key := range keys {
		if err := s.storage.DeleteByPrefix(ctx, key); err != nil {
			logger.Error("failed to delete image objects", err)
		}
	}

	if len(keys) > 0 {
		logger.Info("entity images cleaned up", map[string]interface{}{
			"entity_id":   entityID.String(),
			"entity_type": entityType,
			"count":       len(keys),
		})
	}

	return nil
}

func (s *imageService) SweepOrphans(ctx context.Context) (int, error) {
	keys, err := s.repo.DeleteOrphans(ctx)
	if err != nil {
		return 0, err
	}

	for _, key := range keys {
		if err := s.storage.DeleteByPrefix(ctx, key); err != nil {
			logger.Error("failed to delete image objects", err)
		}
	}

	return len(keys), nil
}
