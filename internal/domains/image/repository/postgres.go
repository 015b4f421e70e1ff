package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"collections-backend/internal/domains/image/model"
)

// Image rows are write-once metadata; no caching layer here.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const imageColumns = `id, external_id, entity_id, entity_type, storage_key, url, medium_url, thumbnail_url, content_type, size_bytes, created_at`

func scanImage(row pgx.Row, i *model.Image) error {
	return row.Scan(
		&i.ID,
		&i.ExternalID,
		&i.EntityID,
		&i.EntityType,
		&i.StorageKey,
		&i.URL,
		&i.MediumURL,
		&i.ThumbnailURL,
		&i.ContentType,
		&i.SizeBytes,
		&i.CreatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, image *model.Image) (*model.Image, error) {
	query := `
        INSERT INTO images (entity_id, entity_type, storage_key, url, medium_url, thumbnail_url, content_type, size_bytes)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + imageColumns

	var created model.Image
	err := scanImage(r.pool.QueryRow(ctx, query,
		image.EntityID, image.EntityType, image.StorageKey,
		image.URL, image.MediumURL, image.ThumbnailURL,
		image.ContentType, image.SizeBytes,
	), &created)
	if err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByExternalID(ctx context.Context, externalID uuid.UUID) (*model.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images WHERE external_id = $1`

	var i model.Image
	err := scanImage(r.pool.QueryRow(ctx, query, externalID), &i)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	return &i, nil
}

func (r *postgresRepository) GetByEntity(ctx context.Context, entityID uuid.UUID, entityType string) ([]model.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images WHERE entity_id = $1 AND entity_type = $2 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, entityID, entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	var images []model.Image
	for rows.Next() {
		var i model.Image
		if err := scanImage(rows, &i); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, i)
	}

	return images, rows.Err()
}

func (r *postgresRepository) Delete(ctx context.Context, externalID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM images WHERE external_id = $1`, externalID)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrImageNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteByEntity(ctx context.Context, entityID uuid.UUID, entityType string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`DELETE FROM images WHERE entity_id = $1 AND entity_type = $2 RETURNING storage_key`,
		entityID, entityType,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to delete entity images: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan storage key: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

func (r *postgresRepository) DeleteOrphans(ctx context.Context) ([]string, error) {
	query := `
        DELETE FROM images i
        WHERE (i.entity_type = 'collection' AND NOT EXISTS (SELECT 1 FROM collections c WHERE c.external_id = i.entity_id))
           OR (i.entity_type = 'story' AND NOT EXISTS (SELECT 1 FROM collection_stories s WHERE s.external_id = i.entity_id))
           OR (i.entity_type = 'author' AND NOT EXISTS (SELECT 1 FROM collection_authors a WHERE a.external_id = i.entity_id))
        RETURNING i.storage_key
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to delete orphan images: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan storage key: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}
