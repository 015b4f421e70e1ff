package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storyRef struct {
	id    int64
	extID uuid.UUID
}

// storyRows fakes the collection_stories lookup inside the delete
// transaction.
type storyRows struct {
	stories []storyRef
	pos     int
}

func (r *storyRows) Next() bool {
	r.pos++
	return r.pos <= len(r.stories)
}

func (r *storyRows) Scan(dest ...any) error {
	s := r.stories[r.pos-1]
	*(dest[0].(*int64)) = s.id
	*(dest[1].(*uuid.UUID)) = s.extID
	return nil
}

func (r *storyRows) Close()                                       {}
func (r *storyRows) Err() error                                   { return nil }
func (r *storyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *storyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *storyRows) Values() ([]any, error)                       { return nil, nil }
func (r *storyRows) RawValues() [][]byte                          { return nil }
func (r *storyRows) Conn() *pgx.Conn                              { return nil }

// recordingTx records every Exec statement so tests can assert the
// order deletes run in.
type recordingTx struct {
	stories  []storyRef
	executed []string
	failOn   string
}

func (t *recordingTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	if t.failOn != "" && strings.Contains(sql, t.failOn) {
		return pgconn.CommandTag{}, errors.New("exec failed")
	}
	t.executed = append(t.executed, sql)
	return pgconn.CommandTag{}, nil
}

func (t *recordingTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return &storyRows{stories: t.stories}, nil
}

func (t *recordingTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *recordingTx) Commit(ctx context.Context) error          { return nil }
func (t *recordingTx) Rollback(ctx context.Context) error        { return nil }
func (t *recordingTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *recordingTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *recordingTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *recordingTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *recordingTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *recordingTx) Conn() *pgx.Conn                                               { return nil }

func TestDeleteCollectionRemovesDependentsBeforeParents(t *testing.T) {
	ext1, ext2 := uuid.New(), uuid.New()
	tx := &recordingTx{stories: []storyRef{{id: 10, extID: ext1}, {id: 11, extID: ext2}}}

	storyExternalIDs, err := deleteCollectionTx(context.Background(), tx, 3)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{ext1, ext2}, storyExternalIDs)

	require.Len(t, tx.executed, 5)
	assert.Contains(t, tx.executed[0], "DELETE FROM story_authors")
	assert.Contains(t, tx.executed[1], "DELETE FROM story_authors")
	assert.Contains(t, tx.executed[2], "DELETE FROM collection_stories")
	assert.Contains(t, tx.executed[3], "DELETE FROM collection_authors_link")
	assert.Contains(t, tx.executed[4], "DELETE FROM collections WHERE")
}

func TestDeleteCollectionWithoutStories(t *testing.T) {
	tx := &recordingTx{}

	storyExternalIDs, err := deleteCollectionTx(context.Background(), tx, 3)
	require.NoError(t, err)
	assert.Empty(t, storyExternalIDs)

	require.Len(t, tx.executed, 3)
	assert.Contains(t, tx.executed[0], "DELETE FROM collection_stories")
	assert.Contains(t, tx.executed[1], "DELETE FROM collection_authors_link")
	assert.Contains(t, tx.executed[2], "DELETE FROM collections WHERE")
}

func TestDeleteCollectionStopsWhenStoryDeleteFails(t *testing.T) {
	tx := &recordingTx{
		stories: []storyRef{{id: 10, extID: uuid.New()}},
		failOn:  "collection_stories",
	}

	_, err := deleteCollectionTx(context.Background(), tx, 3)
	require.Error(t, err)

	require.Len(t, tx.executed, 1)
	assert.Contains(t, tx.executed[0], "DELETE FROM story_authors")
}
