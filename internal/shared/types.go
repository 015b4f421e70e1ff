package shared

// Asynq task types
const (
	TypeCleanupEntityImages = "image:cleanup_entity"
	TypeSweepOrphanImages   = "image:sweep_orphans"
	TypePublishDue          = "collection:publish_due"
	TypeWarmCollectionCache = "collection:warm_cache"
)

// Asynq queues
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// Image owner entity types for the polymorphic association.
const (
	EntityTypeCollection = "collection"
	EntityTypeStory      = "story"
	EntityTypeAuthor     = "author"
)
