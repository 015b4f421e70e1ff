package main

import (
	"github.com/hibiken/asynq"

	collectionJob "collections-backend/internal/domains/collection/job"
	imageJob "collections-backend/internal/domains/image/job"
	"collections-backend/internal/shared"
	"collections-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	publishDue    *collectionJob.PublishDueHandler
	warmCache     *collectionJob.WarmCacheHandler
	cleanupEntity *imageJob.CleanupEntityImagesHandler
	sweepOrphans  *imageJob.SweepOrphanImagesHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		publishDue:    collectionJob.NewPublishDueHandler(c.CollectionService),
		warmCache:     collectionJob.NewWarmCacheHandler(c.CollectionService),
		cleanupEntity: imageJob.NewCleanupEntityImagesHandler(c.ImageService),
		sweepOrphans:  imageJob.NewSweepOrphanImagesHandler(c.ImageService),
	}
}

// RegisterHandlers registers all handlers with the mux.
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypePublishDue, h.publishDue.ProcessTask)
	mux.HandleFunc(shared.TypeWarmCollectionCache, h.warmCache.ProcessTask)
	mux.HandleFunc(shared.TypeCleanupEntityImages, h.cleanupEntity.ProcessTask)
	mux.HandleFunc(shared.TypeSweepOrphanImages, h.sweepOrphans.ProcessTask)
}
