package leveldb

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/crowdsale/modules/crowdsale/datagateway"
)

var _ datagateway.Tx = (*Repository)(nil)

func (r *Repository) begin() (*Repository, error) {
	if r.tx != nil {
		return nil, errors.WithStack(ErrTxAlreadyExists)
	}
	tx, err := r.db.OpenTransaction()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open transaction")
	}
	return &Repository{
		db: r.db,
		tx: tx,
	}, nil
}

func (r *Repository) BeginCrowdsaleTx(ctx context.Context) (datagateway.CrowdsaleDataGatewayWithTx, error) {
	repo, err := r.begin()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return repo, nil
}

func (r *Repository) Commit(ctx context.Context) error {
	if r.tx == nil {
		return nil
	}
	if err := r.tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	r.tx = nil
	return nil
}

func (r *Repository) Rollback(ctx context.Context) error {
	if r.tx == nil {
		return nil
	}
	r.tx.Discard()
	r.tx = nil
	return nil
}
