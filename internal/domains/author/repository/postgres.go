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

	"collections-backend/internal/domains/author/model"
	"collections-backend/pkg/cache"
)

// postgresRepository implements RepositoryInterface
// with pgxpool for PostgreSQL and Redis for read-through caching.
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
	authorCacheKeyPrefix = "author:ext:"
	authorSlugKeyPrefix  = "author:slug:"
	authorListKeyPattern = "authors:list:*"
	cacheTTL             = 15 * time.Minute
)

const authorColumns = `id, external_id, name, slug, bio, image_url, created_at, updated_at`

func scanAuthor(row pgx.Row, a *model.Author) error {
	return row.Scan(
		&a.ID,
		&a.ExternalID,
		&a.Name,
		&a.Slug,
		&a.Bio,
		&a.ImageURL,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}

// Create inserts a new author with generated external ID and timestamps.
func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO collection_authors (name, slug, bio, image_url)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + authorColumns

	var created model.Author
	err := scanAuthor(r.pool.QueryRow(ctx, query, a.Name, a.Slug, a.Bio, a.ImageURL), &created)
	if err != nil {
		// Unique constraint on slug backs the application-level check
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "slug") {
			return nil, model.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	r.invalidateListCache(ctx)

	return &created, nil
}

// GetByExternalID retrieves an author by public UUID, cache first.
func (r *postgresRepository) GetByExternalID(ctx context.Context, externalID uuid.UUID) (*model.Author, error) {
	cacheKey := authorCacheKeyPrefix + externalID.String()

	var a model.Author
	if found, err := r.cache.Get(ctx, cacheKey, &a); err == nil && found {
		return &a, nil
	}

	query := `SELECT ` + authorColumns + ` FROM collection_authors WHERE external_id = $1`

	err := scanAuthor(r.pool.QueryRow(ctx, query, externalID), &a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by external id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, &a, cacheTTL)

	return &a, nil
}

// GetBySlug retrieves an author by slug, cache first.
func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Author, error) {
	cacheKey := authorSlugKeyPrefix + slug

	var a model.Author
	if found, err := r.cache.Get(ctx, cacheKey, &a); err == nil && found {
		return &a, nil
	}

	query := `SELECT ` + authorColumns + ` FROM collection_authors WHERE slug = $1`

	err := scanAuthor(r.pool.QueryRow(ctx, query, slug), &a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by slug: %w", err)
	}

	// Cache under both keys
	r.cache.Set(ctx, cacheKey, &a, cacheTTL)
	r.cache.Set(ctx, authorCacheKeyPrefix+a.ExternalID.String(), &a, cacheTTL)

	return &a, nil
}

// GetAll retrieves a paginated list with filtering and sorting.
func (r *postgresRepository) GetAll(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + authorColumns + ` FROM collection_authors WHERE 1=1`)

	args := []interface{}{}
	argPos := 1

	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND name ILIKE $%d", argPos))
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	// Sort column is whitelisted by the service layer
	sortColumn := "created_at"
	switch filter.SortBy {
	case "name":
		sortColumn = "name"
	case "updated_at":
		sortColumn = "updated_at"
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
		return nil, 0, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	var authors []model.Author
	for rows.Next() {
		var a model.Author
		if err := scanAuthor(rows, &a); err != nil {
			return nil, 0, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating authors: %w", err)
	}

	countQuery := `SELECT COUNT(*) FROM collection_authors WHERE 1=1`
	countArgs := []interface{}{}
	if filter.Search != "" {
		countQuery += " AND name ILIKE $1"
		countArgs = append(countArgs, "%"+filter.Search+"%")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	return authors, total, nil
}

// Update rewrites the mutable columns of an author.
func (r *postgresRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        UPDATE collection_authors
        SET name = $1, slug = $2, bio = $3, image_url = $4, updated_at = NOW()
        WHERE id = $5
        RETURNING ` + authorColumns

	var updated model.Author
	err := scanAuthor(r.pool.QueryRow(ctx, query, a.Name, a.Slug, a.Bio, a.ImageURL, a.ID), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "slug") {
			return nil, model.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	r.invalidateAuthorCache(ctx, a.ExternalID, a.Slug)
	r.invalidateListCache(ctx)

	return &updated, nil
}

// Delete removes an author by external ID.
// A foreign key violation means the author is still linked to a
// collection or story and surfaces as ErrAuthorInUse.
func (r *postgresRepository) Delete(ctx context.Context, externalID uuid.UUID) error {
	// Fetch slug first for cache invalidation
	var slug string
	err := r.pool.QueryRow(ctx, `SELECT slug FROM collection_authors WHERE external_id = $1`, externalID).Scan(&slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrAuthorNotFound
		}
		return fmt.Errorf("failed to look up author: %w", err)
	}

	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM collection_authors WHERE external_id = $1`, externalID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return model.ErrAuthorInUse
		}
		return fmt.Errorf("failed to delete author: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	r.invalidateAuthorCache(ctx, externalID, slug)
	r.invalidateListCache(ctx)

	return nil
}

// CountBySlug backs the application-level slug uniqueness check.
func (r *postgresRepository) CountBySlug(ctx context.Context, slug string, excludeID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM collection_authors WHERE slug = $1 AND id <> $2`,
		slug, excludeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count authors by slug: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) invalidateAuthorCache(ctx context.Context, externalID uuid.UUID, slug string) {
	r.cache.Delete(ctx, authorCacheKeyPrefix+externalID.String(), authorSlugKeyPrefix+slug)
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	r.cache.DeletePattern(ctx, authorListKeyPattern)
}
