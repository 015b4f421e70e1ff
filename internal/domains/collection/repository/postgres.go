package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	authormodel "collections-backend/internal/domains/author/model"
	"collections-backend/internal/domains/collection/model"
	"collections-backend/internal/shared/utils"
	"collections-backend/pkg/cache"
	"collections-backend/pkg/database"
)

// postgresRepository implements RepositoryInterface with pgxpool and
// Redis read-through caching, mirroring the author repository.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

// Cache key constants
const (
	collectionCacheKeyPrefix = "collection:ext:"
	collectionSlugKeyPrefix  = "collection:slug:"
	collectionListKeyPattern = "collections:list:*"
	cacheTTL                 = 15 * time.Minute
)

const collectionColumns = `id, external_id, title, slug, description, status, published_at, publish_at, created_at, updated_at`

func scanCollection(row pgx.Row, c *model.Collection) error {
	return row.Scan(
		&c.ID,
		&c.ExternalID,
		&c.Title,
		&c.Slug,
		&c.Description,
		&c.Status,
		&c.PublishedAt,
		&c.PublishAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}

// Create inserts the collection and its author links transactionally.
func (r *postgresRepository) Create(ctx context.Context, c *model.Collection, authorIDs []int64) (*model.Collection, error) {
	var created model.Collection

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
            INSERT INTO collections (title, slug, description, status, publish_at)
            VALUES ($1, $2, $3, $4, $5)
            RETURNING ` + collectionColumns

		err := scanCollection(tx.QueryRow(ctx, query, c.Title, c.Slug, c.Description, c.Status, c.PublishAt), &created)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "slug") {
				return model.ErrDuplicateSlug
			}
			return fmt.Errorf("failed to create collection: %w", err)
		}

		for _, authorID := range authorIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO collection_authors_link (collection_id, author_id) VALUES ($1, $2)`,
				created.ID, authorID,
			)
			if err != nil {
				return fmt.Errorf("failed to link author: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	r.invalidateListCache(ctx)

	created.Authors, err = r.loadAuthors(ctx, created.ID)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// loadAuthors fetches the linked authors ordered by name.
func (r *postgresRepository) loadAuthors(ctx context.Context, collectionID int64) ([]authormodel.Author, error) {
	query := `
        SELECT a.id, a.external_id, a.name, a.slug, a.bio, a.image_url, a.created_at, a.updated_at
        FROM collection_authors a
        JOIN collection_authors_link l ON l.author_id = a.id
        WHERE l.collection_id = $1
        ORDER BY a.name ASC
    `

	rows, err := r.pool.Query(ctx, query, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection authors: %w", err)
	}
	defer rows.Close()

	var authors []authormodel.Author
	for rows.Next() {
		var a authormodel.Author
		if err := rows.Scan(&a.ID, &a.ExternalID, &a.Name, &a.Slug, &a.Bio, &a.ImageURL, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan collection author: %w", err)
		}
		authors = append(authors, a)
	}

	return authors, rows.Err()
}

// GetByExternalID retrieves a collection with its authors, cache first.
func (r *postgresRepository) GetByExternalID(ctx context.Context, externalID uuid.UUID) (*model.Collection, error) {
	cacheKey := collectionCacheKeyPrefix + externalID.String()

	var c model.Collection
	if found, err := r.cache.Get(ctx, cacheKey, &c); err == nil && found {
		return &c, nil
	}

	query := `SELECT ` + collectionColumns + ` FROM collections WHERE external_id = $1`

	err := scanCollection(r.pool.QueryRow(ctx, query, externalID), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to get collection by external id: %w", err)
	}

	c.Authors, err = r.loadAuthors(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, cacheKey, &c, cacheTTL)

	return &c, nil
}

// GetBySlug retrieves a collection by slug, cache first.
func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Collection, error) {
	cacheKey := collectionSlugKeyPrefix + slug

	var c model.Collection
	if found, err := r.cache.Get(ctx, cacheKey, &c); err == nil && found {
		return &c, nil
	}

	query := `SELECT ` + collectionColumns + ` FROM collections WHERE slug = $1`

	err := scanCollection(r.pool.QueryRow(ctx, query, slug), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to get collection by slug: %w", err)
	}

	c.Authors, err = r.loadAuthors(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, cacheKey, &c, cacheTTL)
	r.cache.Set(ctx, collectionCacheKeyPrefix+c.ExternalID.String(), &c, cacheTTL)

	return &c, nil
}

// GetAll retrieves a paginated list. Authors are not loaded for lists.
func (r *postgresRepository) GetAll(ctx context.Context, filter model.CollectionFilter) ([]model.Collection, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, filter.Status)
		argPos++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", argPos))
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	where := " WHERE " + utils.JoinWithAnd(conditions)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + collectionColumns + ` FROM collections`)
	queryBuilder.WriteString(where)

	sortColumn := "created_at"
	switch filter.SortBy {
	case "title":
		sortColumn = "title"
	case "updated_at":
		sortColumn = "updated_at"
	case "published_at":
		sortColumn = "published_at"
	}

	sortOrder := "DESC"
	if filter.Order == "asc" {
		sortOrder = "ASC"
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s", sortColumn, sortOrder))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1))
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query collections: %w", err)
	}
	defer rows.Close()

	var collections []model.Collection
	for rows.Next() {
		var c model.Collection
		if err := scanCollection(rows, &c); err != nil {
			return nil, 0, fmt.Errorf("failed to scan collection: %w", err)
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating collections: %w", err)
	}

	// Count with the same filters
	countQuery := `SELECT COUNT(*) FROM collections` + where
	countArgs := args[:len(args)-2]

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count collections: %w", err)
	}

	return collections, total, nil
}

// Update rewrites the mutable columns of a collection.
func (r *postgresRepository) Update(ctx context.Context, c *model.Collection) (*model.Collection, error) {
	query := `
        UPDATE collections
        SET title = $1, slug = $2, description = $3, status = $4,
            published_at = $5, publish_at = $6, updated_at = NOW()
        WHERE id = $7
        RETURNING ` + collectionColumns

	var updated model.Collection
	err := scanCollection(
		r.pool.QueryRow(ctx, query, c.Title, c.Slug, c.Description, c.Status, c.PublishedAt, c.PublishAt, c.ID),
		&updated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCollectionNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "slug") {
			return nil, model.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to update collection: %w", err)
	}

	r.invalidateCollectionCache(ctx, c.ExternalID, c.Slug)
	r.invalidateListCache(ctx)

	updated.Authors, err = r.loadAuthors(ctx, updated.ID)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// ReplaceAuthors applies disconnect-all-then-connect semantics in a
// transaction, per the full-replace update contract.
func (r *postgresRepository) ReplaceAuthors(ctx context.Context, collectionID int64, authorIDs []int64) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM collection_authors_link WHERE collection_id = $1`, collectionID); err != nil {
			return fmt.Errorf("failed to unlink authors: %w", err)
		}

		for _, authorID := range authorIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO collection_authors_link (collection_id, author_id) VALUES ($1, $2)`,
				collectionID, authorID,
			)
			if err != nil {
				return fmt.Errorf("failed to link author: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.invalidateListCache(ctx)
	return nil
}

// deleteCollectionTx removes dependents before parents: story_authors,
// stories, author links, then the collection row. It returns the
// external IDs of the deleted stories so their images can be cleaned
// up afterwards.
func deleteCollectionTx(ctx context.Context, tx pgx.Tx, collectionID int64) ([]uuid.UUID, error) {
	rows, err := tx.Query(ctx, `SELECT id, external_id FROM collection_stories WHERE collection_id = $1`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection stories: %w", err)
	}

	var storyIDs []int64
	var storyExternalIDs []uuid.UUID
	for rows.Next() {
		var id int64
		var extID uuid.UUID
		if err := rows.Scan(&id, &extID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan story: %w", err)
		}
		storyIDs = append(storyIDs, id)
		storyExternalIDs = append(storyExternalIDs, extID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Join rows first, then the stories themselves
	for _, storyID := range storyIDs {
		if _, err := tx.Exec(ctx, `DELETE FROM story_authors WHERE story_id = $1`, storyID); err != nil {
			return nil, fmt.Errorf("failed to delete story authors: %w", err)
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM collection_stories WHERE collection_id = $1`, collectionID); err != nil {
		return nil, fmt.Errorf("failed to delete stories: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM collection_authors_link WHERE collection_id = $1`, collectionID); err != nil {
		return nil, fmt.Errorf("failed to unlink authors: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM collections WHERE id = $1`, collectionID); err != nil {
		return nil, fmt.Errorf("failed to delete collection: %w", err)
	}

	return storyExternalIDs, nil
}

// Delete removes dependents before parents. The store is not relied on
// to cascade.
func (r *postgresRepository) Delete(ctx context.Context, externalID uuid.UUID) ([]uuid.UUID, error) {
	var c model.Collection
	err := scanCollection(
		r.pool.QueryRow(ctx, `SELECT `+collectionColumns+` FROM collections WHERE external_id = $1`, externalID),
		&c,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to look up collection: %w", err)
	}

	var storyExternalIDs []uuid.UUID

	err = database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		storyExternalIDs, err = deleteCollectionTx(ctx, tx, c.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	r.invalidateCollectionCache(ctx, c.ExternalID, c.Slug)
	r.invalidateListCache(ctx)

	return storyExternalIDs, nil
}

// CountBySlug backs the application-level slug uniqueness check.
func (r *postgresRepository) CountBySlug(ctx context.Context, slug string, excludeID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM collections WHERE slug = $1 AND id <> $2`,
		slug, excludeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count collections by slug: %w", err)
	}
	return count, nil
}

// ResolveAuthorIDs maps public author UUIDs to internal IDs.
func (r *postgresRepository) ResolveAuthorIDs(ctx context.Context, externalIDs []uuid.UUID) ([]int64, error) {
	ids := make([]int64, 0, len(externalIDs))
	for _, extID := range externalIDs {
		var id int64
		err := r.pool.QueryRow(ctx, `SELECT id FROM collection_authors WHERE external_id = $1`, extID).Scan(&id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrAuthorNotFound
			}
			return nil, fmt.Errorf("failed to resolve author id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// PublishDue publishes scheduled drafts whose time has come.
// COALESCE keeps published_at set-once.
func (r *postgresRepository) PublishDue(ctx context.Context, limit int) ([]model.Collection, error) {
	query := `
        UPDATE collections
        SET status = $1,
            published_at = COALESCE(published_at, NOW()),
            updated_at = NOW()
        WHERE id IN (
            SELECT id FROM collections
            WHERE status = $2 AND publish_at IS NOT NULL AND publish_at <= NOW()
            ORDER BY publish_at ASC
            LIMIT $3
        )
        RETURNING ` + collectionColumns

	rows, err := r.pool.Query(ctx, query, model.StatusPublished, model.StatusDraft, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to publish due collections: %w", err)
	}
	defer rows.Close()

	var published []model.Collection
	for rows.Next() {
		var c model.Collection
		if err := scanCollection(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan published collection: %w", err)
		}
		published = append(published, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, c := range published {
		r.invalidateCollectionCache(ctx, c.ExternalID, c.Slug)
	}
	if len(published) > 0 {
		r.invalidateListCache(ctx)
	}

	return published, nil
}

func (r *postgresRepository) invalidateCollectionCache(ctx context.Context, externalID uuid.UUID, slug string) {
	r.cache.Delete(ctx, collectionCacheKeyPrefix+externalID.String(), collectionSlugKeyPrefix+slug)
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	r.cache.DeletePattern(ctx, collectionListKeyPattern)
}
