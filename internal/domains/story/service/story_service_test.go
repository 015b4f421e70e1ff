package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collections-backend/internal/domains/story/model"
)

type fakeRepo struct {
	createFn            func(ctx context.Context, story *model.Story, authorIDs []int64) (*model.Story, error)
	getByExternalIDFn   func(ctx context.Context, externalID uuid.UUID) (*model.Story, error)
	getByCollectionFn   func(ctx context.Context, collectionID int64) ([]model.Story, error)
	updateFn            func(ctx context.Context, story *model.Story) (*model.Story, error)
	replaceAuthorsFn    func(ctx context.Context, storyID int64, authorIDs []int64) error
	deleteFn            func(ctx context.Context, externalID uuid.UUID) error
	resolveCollectionFn func(ctx context.Context, externalID uuid.UUID) (int64, error)
	resolveAuthorsFn    func(ctx context.Context, externalIDs []uuid.UUID) ([]int64, error)
}

func (f *fakeRepo) Create(ctx context.Context, story *model.Story, authorIDs []int64) (*model.Story, error) {
	return f.createFn(ctx, story, authorIDs)
}

func (f *fakeRepo) GetByExternalID(ctx context.Context, externalID uuid.UUID) (*model.Story, error) {
	return f.getByExternalIDFn(ctx, externalID)
}

func (f *fakeRepo) GetByCollection(ctx context.Context, collectionID int64) ([]model.Story, error) {
	return f.getByCollectionFn(ctx, collectionID)
}

func (f *fakeRepo) Update(ctx context.Context, story *model.Story) (*model.Story, error) {
	return f.updateFn(ctx, story)
}

func (f *fakeRepo) ReplaceAuthors(ctx context.Context, storyID int64, authorIDs []int64) error {
	return f.replaceAuthorsFn(ctx, storyID, authorIDs)
}

func (f *fakeRepo) Delete(ctx context.Context, externalID uuid.UUID) error {
	return f.deleteFn(ctx, externalID)
}

func (f *fakeRepo) ResolveCollectionID(ctx context.Context, externalID uuid.UUID) (int64, error) {
	return f.resolveCollectionFn(ctx, externalID)
}

func (f *fakeRepo) ResolveAuthorIDs(ctx context.Context, externalIDs []uuid.UUID) ([]int64, error) {
	return f.resolveAuthorsFn(ctx, externalIDs)
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		createFn: func(ctx context.Context, story *model.Story, authorIDs []int64) (*model.Story, error) {
			created := *story
			created.ID = 1
			created.ExternalID = uuid.New()
			return &created, nil
		},
		updateFn: func(ctx context.Context, story *model.Story) (*model.Story, error) {
			updated := *story
			return &updated, nil
		},
		resolveCollectionFn: func(ctx context.Context, externalID uuid.UUID) (int64, error) {
			return 5, nil
		},
		resolveAuthorsFn: func(ctx context.Context, externalIDs []uuid.UUID) ([]int64, error) {
			ids := make([]int64, len(externalIDs))
			for i := range externalIDs {
				ids[i] = int64(100 + i)
			}
			return ids, nil
		},
		replaceAuthorsFn: func(ctx context.Context, storyID int64, authorIDs []int64) error {
			return nil
		},
		deleteFn: func(ctx context.Context, externalID uuid.UUID) error {
			return nil
		},
	}
}

func TestCreateLinksAuthorsInRequestOrder(t *testing.T) {
	repo := newFakeRepo()

	var gotAuthorIDs []int64
	repo.createFn = func(ctx context.Context, story *model.Story, authorIDs []int64) (*model.Story, error) {
		gotAuthorIDs = authorIDs
		created := *story
		created.ID = 1
		created.ExternalID = uuid.New()
		return &created, nil
	}

	svc := NewStoryService(repo, nil)

	created, err := svc.Create(context.Background(), uuid.New(), model.CreateStoryRequest{
		Title:     "  The Long Way Home  ",
		URL:       "https://example.com/long-way-home",
		AuthorIDs: []uuid.UUID{uuid.New(), uuid.New(), uuid.New()},
	})
	require.NoError(t, err)

	assert.Equal(t, "The Long Way Home", created.Title)
	assert.Equal(t, int64(5), created.CollectionID)
	assert.Equal(t, []int64{100, 101, 102}, gotAuthorIDs)
}

func TestCreateFailsForUnknownCollection(t *testing.T) {
	repo := newFakeRepo()
	repo.resolveCollectionFn = func(ctx context.Context, externalID uuid.UUID) (int64, error) {
		return 0, model.ErrCollectionNotFound
	}

	svc := NewStoryService(repo, nil)

	_, err := svc.Create(context.Background(), uuid.New(), model.CreateStoryRequest{
		Title: "Orphan",
		URL:   "https://example.com/orphan",
	})
	assert.ErrorIs(t, err, model.ErrCollectionNotFound)
}

func TestCreateRequiresURL(t *testing.T) {
	svc := NewStoryService(newFakeRepo(), nil)

	_, err := svc.Create(context.Background(), uuid.New(), model.CreateStoryRequest{
		Title: "No Link",
	})
	require.Error(t, err)
}

func TestUpdateReplacesAuthorsFully(t *testing.T) {
	repo := newFakeRepo()
	extID := uuid.New()

	repo.getByExternalIDFn = func(ctx context.Context, externalID uuid.UUID) (*model.Story, error) {
		return &model.Story{
			ID:         9,
			ExternalID: extID,
			Title:      "Profile",
			URL:        "https://example.com/profile",
		}, nil
	}

	var replacedStoryID int64
	var replacedWith []int64
	repo.replaceAuthorsFn = func(ctx context.Context, storyID int64, authorIDs []int64) error {
		replacedStoryID = storyID
		replacedWith = authorIDs
		return nil
	}

	svc := NewStoryService(repo, nil)

	authorIDs := []uuid.UUID{uuid.New()}
	_, err := svc.Update(context.Background(), extID, model.UpdateStoryRequest{AuthorIDs: &authorIDs})
	require.NoError(t, err)

	assert.Equal(t, int64(9), replacedStoryID)
	assert.Equal(t, []int64{100}, replacedWith)
}

func TestUpdateRequiresExternalID(t *testing.T) {
	svc := NewStoryService(newFakeRepo(), nil)

	_, err := svc.Update(context.Background(), uuid.Nil, model.UpdateStoryRequest{})
	assert.ErrorIs(t, err, model.ErrMissingExternalID)
}

func TestDeletePropagatesNotFound(t *testing.T) {
	repo := newFakeRepo()
	repo.deleteFn = func(ctx context.Context, externalID uuid.UUID) error {
		return model.ErrStoryNotFound
	}

	svc := NewStoryService(repo, nil)

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrStoryNotFound)
}
