package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"collections-backend/internal/config"
	collectionJob "collections-backend/internal/domains/collection/job"
	"collections-backend/internal/shared"
	"collections-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

// RegisterJobs registers all periodic jobs.
func (s *Scheduler) RegisterJobs() error {
	if err := s.registerPublishDueJob(); err != nil {
		return err
	}

	if err := s.registerImageSweepJob(); err != nil {
		return err
	}

	if err := s.registerCacheWarmJob(); err != nil {
		return err
	}

	return nil
}

// Publish scheduled collections. Runs every few minutes so a
// publish_at timestamp takes effect close to on time.
func (s *Scheduler) registerPublishDueJob() error {
	payload, err := json.Marshal(collectionJob.PublishDuePayload{
		Limit: s.jobConfig.PublishBatchSize,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypePublishDue, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.PublishDueCron,
		task,
		asynq.Queue(shared.QueueHigh),
		asynq.MaxRetry(2),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register PublishDue job", err)
		return err
	}

	logger.Info("Registered PublishDue job", map[string]interface{}{
		"cron": s.jobConfig.PublishDueCron,
	})
	return nil
}

// Sweep orphaned images during low-traffic hours.
func (s *Scheduler) registerImageSweepJob() error {
	task := asynq.NewTask(shared.TypeSweepOrphanImages, nil)

	_, err := s.scheduler.Register(
		s.jobConfig.ImageSweepCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register SweepOrphanImages job", err)
		return err
	}

	logger.Info("Registered SweepOrphanImages job", map[string]interface{}{
		"cron": s.jobConfig.ImageSweepCron,
	})
	return nil
}

// Keep published collections warm in the cache.
func (s *Scheduler) registerCacheWarmJob() error {
	payload, err := json.Marshal(collectionJob.WarmCachePayload{Limit: 20})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeWarmCollectionCache, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.CacheWarmCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register WarmCollectionCache job", err)
		return err
	}

	logger.Info("Registered WarmCollectionCache job", map[string]interface{}{
		"cron": s.jobConfig.CacheWarmCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
