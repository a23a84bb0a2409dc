package postgres

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/crowdsale/internal/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTx struct {
	pgx.Tx
	execErr    error
	statements []string
	args       [][]any
	committed  bool
	rolledBack bool
}

func (t *recordingTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.statements = append(t.statements, sql)
	t.args = append(t.args, args)
	return pgconn.CommandTag{}, t.execErr
}

func (t *recordingTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *recordingTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeDB struct {
	postgres.DB
	tx *recordingTx
}

func (f *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	return f.tx, nil
}

func TestBeginCrowdsaleTxLocks(t *testing.T) {
	ctx := context.Background()
	tx := &recordingTx{}
	repo := NewRepository(&fakeDB{tx: tx})

	txRepo, err := repo.BeginCrowdsaleTx(ctx)
	require.NoError(t, err)
	require.Len(t, tx.statements, 1)
	assert.Contains(t, tx.statements[0], "pg_advisory_xact_lock")
	assert.Equal(t, []any{crowdsaleLockKey}, tx.args[0])

	_, err = txRepo.BeginCrowdsaleTx(ctx)
	assert.ErrorIs(t, err, ErrTxAlreadyExists)

	require.NoError(t, txRepo.Commit(ctx))
	assert.True(t, tx.committed)
	require.NoError(t, txRepo.Rollback(ctx))
	assert.False(t, tx.rolledBack)
}

func TestBeginCrowdsaleTxLockFailure(t *testing.T) {
	tx := &recordingTx{execErr: errors.New("canceling statement due to lock timeout")}
	repo := NewRepository(&fakeDB{tx: tx})

	_, err := repo.BeginCrowdsaleTx(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock timeout")
	assert.True(t, tx.rolledBack)
}
