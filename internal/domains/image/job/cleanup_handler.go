package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	collectionmodel "collections-backend/internal/domains/collection/model"
	imageService "collections-backend/internal/domains/image/service"
)

// CleanupEntityImagesHandler removes the stored images of a deleted
// collection, story or author.
type CleanupEntityImagesHandler struct {
	imageService imageService.ServiceInterface
}

func NewCleanupEntityImagesHandler(imageService imageService.ServiceInterface) *CleanupEntityImagesHandler {
	return &CleanupEntityImagesHandler{
		imageService: imageService,
	}
}

func (h *CleanupEntityImagesHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload collectionmodel.CleanupImagesPayload

	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal CleanupEntityImages payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Str("entity_id", payload.EntityID.String()).
		Str("entity_type", payload.EntityType).
		Msg("Cleaning up entity images")

	if err := h.imageService.CleanupEntity(ctx, payload.EntityID, payload.EntityType); err != nil {
		log.Error().
			Err(err).
			Str("entity_id", payload.EntityID.String()).
			Msg("Failed to clean up entity images")
		return fmt.Errorf("cleanup images: %w", err)
	}

	return nil
}

// SweepOrphanImagesHandler runs the scheduled sweep for images whose
// owning entity no longer exists.
type SweepOrphanImagesHandler struct {
	imageService imageService.ServiceInterface
}

func NewSweepOrphanImagesHandler(imageService imageService.ServiceInterface) *SweepOrphanImagesHandler {
	return &SweepOrphanImagesHandler{
		imageService: imageService,
	}
}

func (h *SweepOrphanImagesHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	count, err := h.imageService.SweepOrphans(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sweep orphan images")
		return fmt.Errorf("sweep orphans: %w", err)
	}

	if count > 0 {
		log.Info().Int("count", count).Msg("Orphan images swept")
	}

	return nil
}
