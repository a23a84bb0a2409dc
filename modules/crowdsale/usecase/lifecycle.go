package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/modules/crowdsale/datagateway"
	"github.com/gaze-network/crowdsale/modules/crowdsale/ledger"
	"github.com/gaze-network/crowdsale/pkg/logger"
	"github.com/gaze-network/crowdsale/pkg/logger/slogx"
	"github.com/gaze-network/uint128"
)

func (u *Usecase) Pause(ctx context.Context, caller ethcommon.Address) error {
	return u.setPaused(withOperation(ctx, "pause"), caller, true)
}

func (u *Usecase) Unpause(ctx context.Context, caller ethcommon.Address) error {
	return u.setPaused(withOperation(ctx, "unpause"), caller, false)
}

func (u *Usecase) setPaused(ctx context.Context, caller ethcommon.Address, paused bool) error {
	if err := u.ownership.RequireOwner(caller); err != nil {
		return errors.WithStack(err)
	}
	err := u.mutate(ctx, func(ctx context.Context, tx datagateway.CrowdsaleDataGatewayWithTx) error {
		state, err := tx.GetSaleState(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to get sale state")
		}
		state.Paused = paused
		return errors.Wrap(tx.SetSaleState(ctx, *state), "failed to update sale state")
	})
	if err != nil {
		return errors.WithStack(err)
	}
	logger.InfoContext(ctx, "sale pause flag updated", slogx.Bool("paused", paused))
	return nil
}

// AllowTransfer lets token holders transfer their tokens.
func (u *Usecase) AllowTransfer(ctx context.Context, caller ethcommon.Address) error {
	ctx = withOperation(ctx, "allow_transfer")
	if err := u.ownership.RequireOwner(caller); err != nil {
		return errors.WithStack(err)
	}
	err := u.mutate(ctx, func(ctx context.Context, tx datagateway.CrowdsaleDataGatewayWithTx) error {
		state, err := tx.GetSaleState(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to get sale state")
		}
		return errors.WithStack(ledger.New(tx).AllowTransfer(ctx, u.ledgerActor(*state)))
	})
	if err != nil {
		return errors.WithStack(err)
	}
	logger.InfoContext(ctx, "token transfers allowed")
	return nil
}

// TransferTokens moves sale tokens from caller to another holder.
func (u *Usecase) TransferTokens(ctx context.Context, caller, to ethcommon.Address, amount uint128.Uint128) error {
	ctx = withOperation(ctx, "transfer_tokens")
	err := u.mutate(ctx, func(ctx context.Context, tx datagateway.CrowdsaleDataGatewayWithTx) error {
		return errors.WithStack(ledger.New(tx).Transfer(ctx, caller, to, amount))
	})
	if err != nil {
		return errors.WithStack(err)
	}
	logger.InfoContext(ctx, "tokens transferred",
		slogx.Stringer("from", caller),
		slogx.Stringer("to", to),
		slogx.Stringer("amount", amount),
	)
	return nil
}
