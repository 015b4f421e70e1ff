package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collections-backend/internal/domains/author/model"
)

type fakeRepo struct {
	createFn          func(ctx context.Context, a *model.Author) (*model.Author, error)
	getByExternalIDFn func(ctx context.Context, externalID uuid.UUID) (*model.Author, error)
	getBySlugFn       func(ctx context.Context, slug string) (*model.Author, error)
	getAllFn          func(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error)
	updateFn          func(ctx context.Context, a *model.Author) (*model.Author, error)
	deleteFn          func(ctx context.Context, externalID uuid.UUID) error
	countBySlugFn     func(ctx context.Context, slug string, excludeID int64) (int64, error)
}

func (f *fakeRepo) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	return f.createFn(ctx, a)
}

func (f *fakeRepo) GetByExternalID(ctx context.Context, externalID uuid.UUID) (*model.Author, error) {
	return f.getByExternalIDFn(ctx, externalID)
}

func (f *fakeRepo) GetBySlug(ctx context.Context, slug string) (*model.Author, error) {
	return f.getBySlugFn(ctx, slug)
}

func (f *fakeRepo) GetAll(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	return f.getAllFn(ctx, filter)
}

func (f *fakeRepo) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	return f.updateFn(ctx, a)
}

func (f *fakeRepo) Delete(ctx context.Context, externalID uuid.UUID) error {
	return f.deleteFn(ctx, externalID)
}

func (f *fakeRepo) CountBySlug(ctx context.Context, slug string, excludeID int64) (int64, error) {
	return f.countBySlugFn(ctx, slug, excludeID)
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		createFn: func(ctx context.Context, a *model.Author) (*model.Author, error) {
			created := *a
			created.ID = 1
			created.ExternalID = uuid.New()
			return &created, nil
		},
		updateFn: func(ctx context.Context, a *model.Author) (*model.Author, error) {
			updated := *a
			return &updated, nil
		},
		countBySlugFn: func(ctx context.Context, slug string, excludeID int64) (int64, error) {
			return 0, nil
		},
	}
}

func TestCreateDefaultsSlugFromName(t *testing.T) {
	svc := NewAuthorService(newFakeRepo())

	created, err := svc.Create(context.Background(), &model.CreateAuthorRequest{
		Name: "Márta Kovács",
	})
	require.NoError(t, err)
	assert.Equal(t, "marta-kovacs", created.Slug)
}

func TestCreateKeepsExplicitSlug(t *testing.T) {
	svc := NewAuthorService(newFakeRepo())

	created, err := svc.Create(context.Background(), &model.CreateAuthorRequest{
		Name: "Márta Kovács",
		Slug: "m-kovacs",
	})
	require.NoError(t, err)
	assert.Equal(t, "m-kovacs", created.Slug)
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	repo := newFakeRepo()
	repo.countBySlugFn = func(ctx context.Context, slug string, excludeID int64) (int64, error) {
		return 1, nil
	}
	svc := NewAuthorService(repo)

	_, err := svc.Create(context.Background(), &model.CreateAuthorRequest{Name: "Márta Kovács"})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrDuplicateSlug)
	assert.EqualError(t, err, "author slug already exists")
}

func TestUpdateSlugChecksUniquenessExcludingSelf(t *testing.T) {
	repo := newFakeRepo()
	extID := uuid.New()

	repo.getByExternalIDFn = func(ctx context.Context, externalID uuid.UUID) (*model.Author, error) {
		return &model.Author{
			ID:         42,
			ExternalID: extID,
			Name:       "Márta Kovács",
			Slug:       "marta-kovacs",
		}, nil
	}

	var gotExcludeID int64
	repo.countBySlugFn = func(ctx context.Context, slug string, excludeID int64) (int64, error) {
		gotExcludeID = excludeID
		return 0, nil
	}

	svc := NewAuthorService(repo)

	newSlug := "m-kovacs"
	_, err := svc.Update(context.Background(), extID, &model.UpdateAuthorRequest{Slug: &newSlug})
	require.NoError(t, err)
	assert.Equal(t, int64(42), gotExcludeID)
}

func TestUpdateBlankSlugRegeneratesFromName(t *testing.T) {
	repo := newFakeRepo()
	extID := uuid.New()

	repo.getByExternalIDFn = func(ctx context.Context, externalID uuid.UUID) (*model.Author, error) {
		return &model.Author{
			ID:         42,
			ExternalID: extID,
			Name:       "Márta Kovács",
			Slug:       "old-slug",
		}, nil
	}

	svc := NewAuthorService(repo)

	blank := "   "
	updated, err := svc.Update(context.Background(), extID, &model.UpdateAuthorRequest{Slug: &blank})
	require.NoError(t, err)
	assert.Equal(t, "marta-kovacs", updated.Slug)

	// A name change in the same request feeds the regenerated slug.
	name := "New Name"
	updated, err = svc.Update(context.Background(), extID, &model.UpdateAuthorRequest{Name: &name, Slug: &blank})
	require.NoError(t, err)
	assert.Equal(t, "new-name", updated.Slug)
}

func TestGetAllRejectsUnknownSortColumn(t *testing.T) {
	svc := NewAuthorService(newFakeRepo())

	_, _, err := svc.GetAll(context.Background(), model.AuthorFilter{SortBy: "password"})
	require.Error(t, err)
}

func TestDeleteRequiresExternalID(t *testing.T) {
	svc := NewAuthorService(newFakeRepo())

	err := svc.Delete(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}
