package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	authormodel "collections-backend/internal/domains/author/model"
	"collections-backend/internal/domains/story/model"
	"collections-backend/pkg/cache"
	"collections-backend/pkg/database"
)

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

const (
	storyCacheKeyPrefix = "story:ext:"
	storyListKeyPattern = "stories:list:*"
	cacheTTL            = 15 * time.Minute
)

const storyColumns = `id, external_id, collection_id, title, url, excerpt, image_url, publisher, tags, sort_order, created_at, updated_at`

func scanStory(row pgx.Row, s *model.Story) error {
	return row.Scan(
		&s.ID,
		&s.ExternalID,
		&s.CollectionID,
		&s.Title,
		&s.URL,
		&s.Excerpt,
		&s.ImageURL,
		&s.Publisher,
		&s.Tags,
		&s.SortOrder,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, story *model.Story, authorIDs []int64) (*model.Story, error) {
	created, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Story, error) {
		query := `
            INSERT INTO collection_stories (collection_id, title, url, excerpt, image_url, publisher, tags, sort_order)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
            RETURNING ` + storyColumns

		var s model.Story
		err := scanStory(tx.QueryRow(ctx, query,
			story.CollectionID, story.Title, story.URL, story.Excerpt,
			story.ImageURL, story.Publisher, story.Tags, story.SortOrder,
		), &s)
		if err != nil {
			return nil, fmt.Errorf("failed to create story: %w", err)
		}

		if err := insertAuthorLinks(ctx, tx, s.ID, authorIDs); err != nil {
			return nil, err
		}

		return &s, nil
	})
	if err != nil {
		return nil, err
	}

	r.cache.DeletePattern(ctx, storyListKeyPattern)

	created.Authors, err = r.loadAuthors(ctx, created.ID)
	if err != nil {
		return nil, err
	}

	return created, nil
}

func insertAuthorLinks(ctx context.Context, tx pgx.Tx, storyID int64, authorIDs []int64) error {
	for i, authorID := range authorIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO story_authors (story_id, author_id, sort_order) VALUES ($1, $2, $3)`,
			storyID, authorID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to link story author: %w", err)
		}
	}
	return nil
}

func (r *postgresRepository) loadAuthors(ctx context.Context, storyID int64) ([]authormodel.Author, error) {
	query := `
        SELECT a.id, a.external_id, a.name, a.slug, a.bio, a.image_url, a.created_at, a.updated_at
        FROM collection_authors a
        JOIN story_authors sa ON sa.author_id = a.id
        WHERE sa.story_id = $1
        ORDER BY sa.sort_order ASC
    `

	rows, err := r.pool.Query(ctx, query, storyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query story authors: %w", err)
	}
	defer rows.Close()

	var authors []authormodel.Author
	for rows.Next() {
		var a authormodel.Author
		if err := rows.Scan(&a.ID, &a.ExternalID, &a.Name, &a.Slug, &a.Bio, &a.ImageURL, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan story author: %w", err)
		}
		authors = append(authors, a)
	}

	return authors, rows.Err()
}

func (r *postgresRepository) GetByExternalID(ctx context.Context, externalID uuid.UUID) (*model.Story, error) {
	cacheKey := storyCacheKeyPrefix + externalID.String()

	var s model.Story
	if found, err := r.cache.Get(ctx, cacheKey, &s); err == nil && found {
		return &s, nil
	}

	query := `SELECT ` + storyColumns + ` FROM collection_stories WHERE external_id = $1`

	err := scanStory(r.pool.QueryRow(ctx, query, externalID), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrStoryNotFound
		}
		return nil, fmt.Errorf("failed to get story: %w", err)
	}

	s.Authors, err = r.loadAuthors(ctx, s.ID)
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, cacheKey, &s, cacheTTL)

	return &s, nil
}

func (r *postgresRepository) GetByCollection(ctx context.Context, collectionID int64) ([]model.Story, error) {
	query := `SELECT ` + storyColumns + ` FROM collection_stories WHERE collection_id = $1 ORDER BY sort_order ASC, created_at ASC`

	rows, err := r.pool.Query(ctx, query, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stories: %w", err)
	}
	defer rows.Close()

	var stories []model.Story
	for rows.Next() {
		var s model.Story
		if err := scanStory(rows, &s); err != nil {
			return nil, fmt.Errorf("failed to scan story: %w", err)
		}
		stories = append(stories, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range stories {
		stories[i].Authors, err = r.loadAuthors(ctx, stories[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return stories, nil
}

func (r *postgresRepository) Update(ctx context.Context, story *model.Story) (*model.Story, error) {
	query := `
        UPDATE collection_stories
        SET title = $1, url = $2, excerpt = $3, image_url = $4,
            publisher = $5, tags = $6, sort_order = $7, updated_at = NOW()
        WHERE id = $8
        RETURNING ` + storyColumns

	var updated model.Story
	err := scanStory(r.pool.QueryRow(ctx, query,
		story.Title, story.URL, story.Excerpt, story.ImageURL,
		story.Publisher, story.Tags, story.SortOrder, story.ID,
	), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrStoryNotFound
		}
		return nil, fmt.Errorf("failed to update story: %w", err)
	}

	r.cache.Delete(ctx, storyCacheKeyPrefix+story.ExternalID.String())
	r.cache.DeletePattern(ctx, storyListKeyPattern)

	updated.Authors, err = r.loadAuthors(ctx, updated.ID)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *postgresRepository) ReplaceAuthors(ctx context.Context, storyID int64, authorIDs []int64) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM story_authors WHERE story_id = $1`, storyID); err != nil {
			return fmt.Errorf("failed to unlink story authors: %w", err)
		}
		return insertAuthorLinks(ctx, tx, storyID, authorIDs)
	})
}

// deleteStoryTx removes the story_authors join rows before the story
// row itself; nothing relies on database cascades.
func deleteStoryTx(ctx context.Context, tx pgx.Tx, id int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM story_authors WHERE story_id = $1`, id); err != nil {
		return fmt.Errorf("failed to unlink story authors: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM collection_stories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete story: %w", err)
	}
	return nil
}

// Delete removes the join rows first, then the story, in one
// transaction.
func (r *postgresRepository) Delete(ctx context.Context, externalID uuid.UUID) error {
	var id int64
	err := r.pool.QueryRow(ctx, `SELECT id FROM collection_stories WHERE external_id = $1`, externalID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrStoryNotFound
		}
		return fmt.Errorf("failed to look up story: %w", err)
	}

	err = database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return deleteStoryTx(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	r.cache.Delete(ctx, storyCacheKeyPrefix+externalID.String())
	r.cache.DeletePattern(ctx, storyListKeyPattern)

	return nil
}

func (r *postgresRepository) ResolveCollectionID(ctx context.Context, externalID uuid.UUID) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `SELECT id FROM collections WHERE external_id = $1`, externalID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrCollectionNotFound
		}
		return 0, fmt.Errorf("failed to resolve collection id: %w", err)
	}
	return id, nil
}

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
