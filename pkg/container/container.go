package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"collections-backend/internal/config"
	infraCache "collections-backend/internal/infrastructure/cache"
	"collections-backend/internal/infrastructure/database"
	"collections-backend/internal/infrastructure/storage"
	"collections-backend/pkg/cache"
	"collections-backend/pkg/jwt"

	authHandler "collections-backend/internal/domains/auth/handler"
	authService "collections-backend/internal/domains/auth/service"
	authorHandler "collections-backend/internal/domains/author/handler"
	authorRepo "collections-backend/internal/domains/author/repository"
	authorService "collections-backend/internal/domains/author/service"
	collectionHandler "collections-backend/internal/domains/collection/handler"
	collectionRepo "collections-backend/internal/domains/collection/repository"
	collectionService "collections-backend/internal/domains/collection/service"
	imageHandler "collections-backend/internal/domains/image/handler"
	imageRepo "collections-backend/internal/domains/image/repository"
	imageService "collections-backend/internal/domains/image/service"
	storyHandler "collections-backend/internal/domains/story/handler"
	storyRepo "collections-backend/internal/domains/story/repository"
	storyService "collections-backend/internal/domains/story/service"
)

// Container is the root of the dependency graph. Everything in it is
// a singleton built once at startup, in dependency order: config,
// infrastructure, repositories, services, handlers.
type Container struct {
	// Infrastructure
	Config         *config.Config
	DB             *database.PostgresDB
	Cache          cache.Cache
	JWTManager     *jwt.Manager
	AsynqClient    *asynq.Client
	Storage        *storage.MinIOStorage
	ImageProcessor *storage.ImageProcessor

	// Repositories
	AuthorRepo     authorRepo.RepositoryInterface
	CollectionRepo collectionRepo.RepositoryInterface
	StoryRepo      storyRepo.RepositoryInterface
	ImageRepo      imageRepo.RepositoryInterface

	// Services
	AuthorService     authorService.ServiceInterface
	CollectionService collectionService.ServiceInterface
	StoryService      storyService.ServiceInterface
	ImageService      imageService.ServiceInterface
	AuthService       authService.ServiceInterface

	// Handlers
	AuthorHandler     *authorHandler.AuthorHandler
	CollectionHandler *collectionHandler.CollectionHandler
	StoryHandler      *storyHandler.StoryHandler
	ImageHandler      *imageHandler.ImageHandler
	AuthHandler       *authHandler.AuthHandler
}

// NewContainer builds the whole dependency graph. Order matters:
// a layer only sees what the previous layers produced.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[Container] Config loaded (environment: %s)", cfg.App.Environment)

	if err := c.initDatabase(); err != nil {
		return nil, err
	}

	if err := c.initCache(); err != nil {
		return nil, err
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("[Container] Initialized")
	return c, nil
}

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	log.Println("[Container] Database connected")
	return nil
}

func (c *Container) initCache() error {
	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	// Redis being down degrades to cache misses, not a startup failure.
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			log.Printf("[Container] Redis connection failed (non-critical): %v", err)
		} else {
			log.Println("[Container] Redis connected")
		}
	}

	c.Cache = redisCache
	return nil
}

func (c *Container) initInfrastructure() error {
	c.JWTManager = jwt.NewManager(c.Config.JWT.Secret, c.Config.JWT.AccessTokenExpiry)

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})

	store, err := storage.NewMinIOStorage(c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = store
	log.Println("[Container] Object storage ready")

	c.ImageProcessor = storage.NewImageProcessor(c.Config.Upload.MaxSizeBytes)

	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.AuthorRepo = authorRepo.NewPostgresRepository(pool, c.Cache)
	c.CollectionRepo = collectionRepo.NewPostgresRepository(pool, c.Cache)
	c.StoryRepo = storyRepo.NewPostgresRepository(pool, c.Cache)
	c.ImageRepo = imageRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.CollectionService = collectionService.NewCollectionService(c.CollectionRepo, c.AsynqClient)
	c.StoryService = storyService.NewStoryService(c.StoryRepo, c.AsynqClient)
	c.ImageService = imageService.NewImageService(c.ImageRepo, c.Storage, c.ImageProcessor)
	c.AuthService = authService.NewAuthService(c.Config.Editor, c.JWTManager, c.Config.JWT.AccessTokenExpiry)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.CollectionHandler = collectionHandler.NewCollectionHandler(c.CollectionService)
	c.StoryHandler = storyHandler.NewStoryHandler(c.StoryService)
	c.ImageHandler = imageHandler.NewImageHandler(c.ImageService)
	c.AuthHandler = authHandler.NewAuthHandler(c.AuthService)
}

// Cleanup releases external connections. Safe to call once at
// shutdown, in reverse initialization order.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("[Container] Asynq client close failed: %v", err)
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("[Container] Redis close failed: %v", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Println("[Container] Cleaned up")
}
