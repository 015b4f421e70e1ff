package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collections-backend/internal/domains/collection/model"
)

// fakeRepo implements repository.RepositoryInterface with overridable
// function fields.
type fakeRepo struct {
	createFn          func(ctx context.Context, c *model.Collection, authorIDs []int64) (*model.Collection, error)
	getByExternalIDFn func(ctx context.Context, externalID uuid.UUID) (*model.Collection, error)
	getBySlugFn       func(ctx context.Context, slug string) (*model.Collection, error)
	getAllFn          func(ctx context.Context, filter model.CollectionFilter) ([]model.Collection, int64, error)
	updateFn          func(ctx context.Context, c *model.Collection) (*model.Collection, error)
	replaceAuthorsFn  func(ctx context.Context, collectionID int64, authorIDs []int64) error
	deleteFn          func(ctx context.Context, externalID uuid.UUID) ([]uuid.UUID, error)
	countBySlugFn     func(ctx context.Context, slug string, excludeID int64) (int64, error)
	resolveAuthorsFn  func(ctx context.Context, externalIDs []uuid.UUID) ([]int64, error)
	publishDueFn      func(ctx context.Context, limit int) ([]model.Collection, error)
}

func (f *fakeRepo) Create(ctx context.Context, c *model.Collection, authorIDs []int64) (*model.Collection, error) {
	return f.createFn(ctx, c, authorIDs)
}

func (f *fakeRepo) GetByExternalID(ctx context.Context, externalID uuid.UUID) (*model.Collection, error) {
	return f.getByExternalIDFn(ctx, externalID)
}

func (f *fakeRepo) GetBySlug(ctx context.Context, slug string) (*model.Collection, error) {
	return f.getBySlugFn(ctx, slug)
}

func (f *fakeRepo) GetAll(ctx context.Context, filter model.CollectionFilter) ([]model.Collection, int64, error) {
	return f.getAllFn(ctx, filter)
}

func (f *fakeRepo) Update(ctx context.Context, c *model.Collection) (*model.Collection, error) {
	return f.updateFn(ctx, c)
}

func (f *fakeRepo) ReplaceAuthors(ctx context.Context, collectionID int64, authorIDs []int64) error {
	return f.replaceAuthorsFn(ctx, collectionID, authorIDs)
}

func (f *fakeRepo) Delete(ctx context.Context, externalID uuid.UUID) ([]uuid.UUID, error) {
	return f.deleteFn(ctx, externalID)
}

func (f *fakeRepo) CountBySlug(ctx context.Context, slug string, excludeID int64) (int64, error) {
	return f.countBySlugFn(ctx, slug, excludeID)
}

func (f *fakeRepo) ResolveAuthorIDs(ctx context.Context, externalIDs []uuid.UUID) ([]int64, error) {
	return f.resolveAuthorsFn(ctx, externalIDs)
}

func (f *fakeRepo) PublishDue(ctx context.Context, limit int) ([]model.Collection, error) {
	return f.publishDueFn(ctx, limit)
}

// newFakeRepo returns a repo whose defaults echo inputs back.
func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		createFn: func(ctx context.Context, c *model.Collection, authorIDs []int64) (*model.Collection, error) {
			created := *c
			created.ID = 1
			created.ExternalID = uuid.New()
			return &created, nil
		},
		updateFn: func(ctx context.Context, c *model.Collection) (*model.Collection, error) {
			updated := *c
			return &updated, nil
		},
		countBySlugFn: func(ctx context.Context, slug string, excludeID int64) (int64, error) {
			return 0, nil
		},
		resolveAuthorsFn: func(ctx context.Context, externalIDs []uuid.UUID) ([]int64, error) {
			ids := make([]int64, len(externalIDs))
			for i := range externalIDs {
				ids[i] = int64(i + 1)
			}
			return ids, nil
		},
		replaceAuthorsFn: func(ctx context.Context, collectionID int64, authorIDs []int64) error {
			return nil
		},
	}
}

func TestCreateDefaultsToDraft(t *testing.T) {
	repo := newFakeRepo()
	svc := NewCollectionService(repo, nil)

	created, err := svc.Create(context.Background(), model.CreateCollectionRequest{
		Title: "Weekend Longreads",
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusDraft, created.Status)
	assert.Nil(t, created.PublishedAt)
	assert.Equal(t, "weekend-longreads", created.Slug)
}

func TestCreateKeepsExplicitSlug(t *testing.T) {
	repo := newFakeRepo()
	svc := NewCollectionService(repo, nil)

	created, err := svc.Create(context.Background(), model.CreateCollectionRequest{
		Title: "Weekend Longreads",
		Slug:  "custom-slug",
	})
	require.NoError(t, err)
	assert.Equal(t, "custom-slug", created.Slug)
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	repo := newFakeRepo()
	repo.countBySlugFn = func(ctx context.Context, slug string, excludeID int64) (int64, error) {
		return 1, nil
	}
	svc := NewCollectionService(repo, nil)

	_, err := svc.Create(context.Background(), model.CreateCollectionRequest{
		Title: "Weekend Longreads",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrDuplicateSlug)
	assert.EqualError(t, err, "collection slug already exists")
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	svc := NewCollectionService(newFakeRepo(), nil)

	_, err := svc.Create(context.Background(), model.CreateCollectionRequest{Title: "   "})
	require.Error(t, err)
}

func TestUpdateRequiresExternalID(t *testing.T) {
	svc := NewCollectionService(newFakeRepo(), nil)

	_, err := svc.Update(context.Background(), uuid.Nil, model.UpdateCollectionRequest{})
	assert.ErrorIs(t, err, model.ErrMissingExternalID)
}

func TestPublishStampsPublishedAtOnce(t *testing.T) {
	repo := newFakeRepo()
	extID := uuid.New()

	stored := &model.Collection{
		ID:         1,
		ExternalID: extID,
		Title:      "Weekend Longreads",
		Slug:       "weekend-longreads",
		Status:     model.StatusDraft,
	}
	repo.getByExternalIDFn = func(ctx context.Context, externalID uuid.UUID) (*model.Collection, error) {
		copy := *stored
		return &copy, nil
	}
	repo.updateFn = func(ctx context.Context, c *model.Collection) (*model.Collection, error) {
		stored = c
		copy := *c
		return &copy, nil
	}

	svc := NewCollectionService(repo, nil)

	published, err := svc.Publish(context.Background(), extID)
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	assert.Equal(t, model.StatusPublished, published.Status)

	firstPublishedAt := *published.PublishedAt

	// Unpublish and republish: the timestamp must not change.
	unpublished, err := svc.Unpublish(context.Background(), extID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, unpublished.Status)
	require.NotNil(t, unpublished.PublishedAt)
	assert.Equal(t, firstPublishedAt, *unpublished.PublishedAt)

	republished, err := svc.Publish(context.Background(), extID)
	require.NoError(t, err)
	require.NotNil(t, republished.PublishedAt)
	assert.Equal(t, firstPublishedAt, *republished.PublishedAt)
}

func TestUpdateStatusToPublishedKeepsExistingTimestamp(t *testing.T) {
	repo := newFakeRepo()
	extID := uuid.New()
	original := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

	repo.getByExternalIDFn = func(ctx context.Context, externalID uuid.UUID) (*model.Collection, error) {
		return &model.Collection{
			ID:          1,
			ExternalID:  extID,
			Title:       "Archive Dive",
			Slug:        "archive-dive",
			Status:      model.StatusArchived,
			PublishedAt: &original,
		}, nil
	}

	svc := NewCollectionService(repo, nil)

	status := model.StatusPublished
	updated, err := svc.Update(context.Background(), extID, model.UpdateCollectionRequest{Status: &status})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	assert.Equal(t, original, *updated.PublishedAt)
}

func TestUpdateSlugExcludesOwnRow(t *testing.T) {
	repo := newFakeRepo()
	extID := uuid.New()

	repo.getByExternalIDFn = func(ctx context.Context, externalID uuid.UUID) (*model.Collection, error) {
		return &model.Collection{
			ID:         7,
			ExternalID: extID,
			Title:      "Weekend Longreads",
			Slug:       "weekend-longreads",
			Status:     model.StatusDraft,
		}, nil
	}

	var gotSlug string
	var gotExcludeID int64
	repo.countBySlugFn = func(ctx context.Context, slug string, excludeID int64) (int64, error) {
		gotSlug = slug
		gotExcludeID = excludeID
		return 0, nil
	}

	svc := NewCollectionService(repo, nil)

	newSlug := "weekend-reads"
	_, err := svc.Update(context.Background(), extID, model.UpdateCollectionRequest{Slug: &newSlug})
	require.NoError(t, err)

	assert.Equal(t, "weekend-reads", gotSlug)
	assert.Equal(t, int64(7), gotExcludeID)
}

func TestUpdateUnchangedSlugSkipsUniquenessCheck(t *testing.T) {
	repo := newFakeRepo()
	extID := uuid.New()

	repo.getByExternalIDFn = func(ctx context.Context, externalID uuid.UUID) (*model.Collection, error) {
		return &model.Collection{
			ID:         7,
			ExternalID: extID,
			Title:      "Weekend Longreads",
			Slug:       "weekend-longreads",
			Status:     model.StatusDraft,
		}, nil
	}

	checked := false
	repo.countBySlugFn = func(ctx context.Context, slug string, excludeID int64) (int64, error) {
		checked = true
		return 1, nil
	}

	svc := NewCollectionService(repo, nil)

	sameSlug := "weekend-longreads"
	_, err := svc.Update(context.Background(), extID, model.UpdateCollectionRequest{Slug: &sameSlug})
	require.NoError(t, err)
	assert.False(t, checked)
}

func TestUpdateReplacesAuthorsFully(t *testing.T) {
	repo := newFakeRepo()
	extID := uuid.New()

	repo.getByExternalIDFn = func(ctx context.Context, externalID uuid.UUID) (*model.Collection, error) {
		return &model.Collection{
			ID:         3,
			ExternalID: extID,
			Title:      "Profiles",
			Slug:       "profiles",
			Status:     model.StatusDraft,
		}, nil
	}

	var replacedWith []int64
	repo.replaceAuthorsFn = func(ctx context.Context, collectionID int64, authorIDs []int64) error {
		replacedWith = authorIDs
		return nil
	}
	repo.resolveAuthorsFn = func(ctx context.Context, externalIDs []uuid.UUID) ([]int64, error) {
		return []int64{11, 12}, nil
	}

	svc := NewCollectionService(repo, nil)

	authorIDs := []uuid.UUID{uuid.New(), uuid.New()}
	_, err := svc.Update(context.Background(), extID, model.UpdateCollectionRequest{AuthorIDs: &authorIDs})
	require.NoError(t, err)
	assert.Equal(t, []int64{11, 12}, replacedWith)
}

func TestUpdateEmptyAuthorListDisconnectsAll(t *testing.T) {
	repo := newFakeRepo()
	extID := uuid.New()

	repo.getByExternalIDFn = func(ctx context.Context, externalID uuid.UUID) (*model.Collection, error) {
		return &model.Collection{
			ID:         3,
			ExternalID: extID,
			Title:      "Profiles",
			Slug:       "profiles",
			Status:     model.StatusDraft,
		}, nil
	}

	called := false
	repo.replaceAuthorsFn = func(ctx context.Context, collectionID int64, authorIDs []int64) error {
		called = true
		assert.Empty(t, authorIDs)
		return nil
	}

	svc := NewCollectionService(repo, nil)

	empty := []uuid.UUID{}
	_, err := svc.Update(context.Background(), extID, model.UpdateCollectionRequest{AuthorIDs: &empty})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestDeleteRequiresExternalID(t *testing.T) {
	svc := NewCollectionService(newFakeRepo(), nil)

	err := svc.Delete(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, model.ErrMissingExternalID)
}

func TestGetAllClampsLimit(t *testing.T) {
	repo := newFakeRepo()
	var gotFilter model.CollectionFilter
	repo.getAllFn = func(ctx context.Context, filter model.CollectionFilter) ([]model.Collection, int64, error) {
		gotFilter = filter
		return nil, 0, nil
	}

	svc := NewCollectionService(repo, nil)

	_, _, err := svc.GetAll(context.Background(), model.CollectionFilter{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 100, gotFilter.Limit)

	_, _, err = svc.GetAll(context.Background(), model.CollectionFilter{})
	require.NoError(t, err)
	assert.Equal(t, 20, gotFilter.Limit)
}

func TestGetAllRejectsUnknownStatus(t *testing.T) {
	svc := NewCollectionService(newFakeRepo(), nil)

	_, _, err := svc.GetAll(context.Background(), model.CollectionFilter{Status: "pending"})
	assert.ErrorIs(t, err, model.ErrInvalidStatus)
}
