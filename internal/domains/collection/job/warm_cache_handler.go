package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"collections-backend/internal/domains/collection/model"
	collectionService "collections-backend/internal/domains/collection/service"
)

// WarmCachePayload is the scheduled task payload.
type WarmCachePayload struct {
	Limit int `json:"limit"`
}

// WarmCacheHandler pre-loads the most recently published collections
// into the cache so reader traffic hits warm entries.
type WarmCacheHandler struct {
	collectionService collectionService.ServiceInterface
}

func NewWarmCacheHandler(collectionService collectionService.ServiceInterface) *WarmCacheHandler {
	return &WarmCacheHandler{
		collectionService: collectionService,
	}
}

func (h *WarmCacheHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload WarmCachePayload

	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal WarmCache payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	limit := payload.Limit
	if limit <= 0 {
		limit = 20
	}

	collections, _, err := h.collectionService.GetAll(ctx, model.CollectionFilter{
		Status: model.StatusPublished,
		SortBy: "published_at",
		Order:  "desc",
		Limit:  limit,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to list collections for cache warm")
		return fmt.Errorf("warm cache: %w", err)
	}

	// Single fetches populate the per-collection cache entries.
	for _, c := range collections {
		if _, err := h.collectionService.GetByExternalID(ctx, c.ExternalID); err != nil {
			log.Error().
				Err(err).
				Str("collection_id", c.ExternalID.String()).
				Msg("Failed to warm collection cache entry")
		}
	}

	log.Info().Int("count", len(collections)).Msg("Collection cache warmed")

	return nil
}
