package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	collectionService "collections-backend/internal/domains/collection/service"
)

// PublishDuePayload is the scheduled task payload.
type PublishDuePayload struct {
	Limit int `json:"limit"`
}

// PublishDueHandler transitions scheduled drafts whose publish_at has
// passed into the published status.
type PublishDueHandler struct {
	collectionService collectionService.ServiceInterface
}

func NewPublishDueHandler(collectionService collectionService.ServiceInterface) *PublishDueHandler {
	return &PublishDueHandler{
		collectionService: collectionService,
	}
}

func (h *PublishDueHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishDuePayload

	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal PublishDue payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	published, err := h.collectionService.PublishDue(ctx, payload.Limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to publish due collections")
		return fmt.Errorf("publish due: %w", err)
	}

	for _, c := range published {
		log.Info().
			Str("collection_id", c.ExternalID.String()).
			Str("slug", c.Slug).
			Msg("Scheduled collection published")
	}

	return nil
}
