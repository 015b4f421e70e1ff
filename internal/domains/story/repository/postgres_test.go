package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTx records every Exec statement so tests can assert the
// order deletes run in.
type recordingTx struct {
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
func (t *recordingTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *recordingTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *recordingTx) Conn() *pgx.Conn                                               { return nil }

func TestDeleteStoryRemovesJoinRowsFirst(t *testing.T) {
	tx := &recordingTx{}

	require.NoError(t, deleteStoryTx(context.Background(), tx, 7))

	require.Len(t, tx.executed, 2)
	assert.Contains(t, tx.executed[0], "DELETE FROM story_authors")
	assert.Contains(t, tx.executed[1], "DELETE FROM collection_stories")
}

func TestDeleteStoryStopsWhenUnlinkFails(t *testing.T) {
	tx := &recordingTx{failOn: "story_authors"}

	err := deleteStoryTx(context.Background(), tx, 7)
	require.Error(t, err)
	assert.Empty(t, tx.executed)
}
