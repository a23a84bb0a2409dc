package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/crowdsale/modules/crowdsale/datagateway"
	"github.com/gaze-network/crowdsale/pkg/logger"
	"github.com/jackc/pgx/v5"
)

var ErrTxAlreadyExists = errors.New("Transaction already exists. Call Commit() or Rollback() first.")

// crowdsaleLockKey is the advisory lock held by every crowdsale transaction until it ends,
// so writers on different instances run one at a time.
const crowdsaleLockKey int64 = 0x63726f776473616c // "crowdsal"

func (r *Repository) begin(ctx context.Context) (*Repository, error) {
	if r.tx != nil {
		return nil, errors.WithStack(ErrTxAlreadyExists)
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	queries := r.queries.WithTx(tx)
	if err := queries.LockCrowdsale(ctx, crowdsaleLockKey); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			err = errors.CombineErrors(err, rbErr)
		}
		return nil, errors.Wrap(err, "failed to acquire crowdsale lock")
	}
	return &Repository{
		db:      r.db,
		queries: queries,
		tx:      tx,
	}, nil
}

func (r *Repository) BeginCrowdsaleTx(ctx context.Context) (datagateway.CrowdsaleDataGatewayWithTx, error) {
	repo, err := r.begin(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return repo, nil
}

func (r *Repository) Commit(ctx context.Context) error {
	if r.tx == nil {
		return nil
	}
	err := r.tx.Commit(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	r.tx = nil
	return nil
}

func (r *Repository) Rollback(ctx context.Context) error {
	if r.tx == nil {
		return nil
	}
	err := r.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return errors.Wrap(err, "failed to rollback transaction")
	}
	if err == nil {
		logger.DebugContext(ctx, "rolled back transaction")
	}
	r.tx = nil
	return nil
}
