package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/crowdsale/modules/crowdsale/datagateway"
	"github.com/gaze-network/crowdsale/modules/crowdsale/internal/entity"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gaze-network/crowdsale/pkg/logger"
	"github.com/gaze-network/crowdsale/pkg/logger/slogx"
	"github.com/gaze-network/uint128"
)

// Identity holds the fixed accounts the coordinator works with.
type Identity struct {
	// Owner is the only account allowed to use the admin surface.
	Owner ethcommon.Address
	// SaleAddress holds tokens between minting and delivery, and owns the token
	// ledger until finalization hands it to Owner.
	SaleAddress ethcommon.Address
	// TokenAddress identifies the sale token. RetrieveTokens refuses it.
	TokenAddress ethcommon.Address
	// OneTokenUnit is 10^decimals of the sale token.
	OneTokenUnit uint128.Uint128
}

func (i Identity) Validate() error {
	if i.Owner == (ethcommon.Address{}) {
		return errors.Wrap(errs.InvalidArgument, "owner address is required")
	}
	if i.SaleAddress == (ethcommon.Address{}) {
		return errors.Wrap(errs.InvalidArgument, "sale address is required")
	}
	if i.OneTokenUnit.IsZero() {
		return errors.Wrap(errs.InvalidArgument, "one token unit must be greater than zero")
	}
	return nil
}

// Reporter receives committed sale events. Reporting is best-effort.
type Reporter interface {
	ReportContribution(ctx context.Context, contribution entity.Contribution) error
	ReportFinalization(ctx context.Context, finalization entity.Finalization) error
}

type Option func(*Usecase)

// WithClock overrides the time source used by the sale window.
func WithClock(now func() time.Time) Option {
	return func(u *Usecase) {
		u.now = now
	}
}

func WithReporter(reporter Reporter) Option {
	return func(u *Usecase) {
		u.reporter = reporter
	}
}

// Usecase is the issuance coordinator. Every mutating operation holds mu and
// runs inside a single storage transaction, so a failure leaves no guarded
// state changed.
type Usecase struct {
	mu          sync.Mutex
	crowdsaleDg datagateway.CrowdsaleDataGateway
	identity    Identity
	ownership   sale.Ownership
	reporter    Reporter
	now         func() time.Time
}

func New(crowdsaleDg datagateway.CrowdsaleDataGateway, identity Identity, opts ...Option) *Usecase {
	u := &Usecase{
		crowdsaleDg: crowdsaleDg,
		identity:    identity,
		ownership:   sale.Ownership{Owner: identity.Owner},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Usecase) Identity() Identity {
	return u.identity
}

// mutate runs fn inside a new transaction while holding the coordinator lock.
// The transaction is committed only if fn succeeds.
func (u *Usecase) mutate(ctx context.Context, fn func(ctx context.Context, tx datagateway.CrowdsaleDataGatewayWithTx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	tx, err := u.crowdsaleDg.BeginCrowdsaleTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil {
			logger.WarnContext(ctx, "failed to rollback transaction",
				slogx.Error(err),
				slogx.String("event", "rollback_error"),
			)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return errors.WithStack(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

func loadSale(ctx context.Context, dg datagateway.CrowdsaleReaderDataGateway) (*sale.SaleConfig, *sale.SaleState, error) {
	config, err := dg.GetSaleConfig(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get sale config")
	}
	state, err := dg.GetSaleState(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get sale state")
	}
	return config, state, nil
}

// ledgerActor is the account the coordinator acts as on the token ledger.
func (u *Usecase) ledgerActor(state sale.SaleState) ethcommon.Address {
	if state.MintingFinished {
		return u.identity.Owner
	}
	return u.identity.SaleAddress
}

func withOperation(ctx context.Context, operation string) context.Context {
	return logger.WithContext(ctx, slogx.String("module", "crowdsale"), slogx.String("operation", operation))
}

func issuanceFailed(err error, msg string) error {
	return errors.WithSecondaryError(errors.Wrap(sale.ErrIssuanceFailed, msg), err)
}

func payoutFailed(err error, msg string) error {
	return errors.WithSecondaryError(errors.Wrap(sale.ErrPayoutFailed, msg), err)
}
