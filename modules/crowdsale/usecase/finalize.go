package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/modules/crowdsale/datagateway"
	"github.com/gaze-network/crowdsale/modules/crowdsale/internal/entity"
	"github.com/gaze-network/crowdsale/modules/crowdsale/ledger"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gaze-network/crowdsale/pkg/logger"
	"github.com/gaze-network/crowdsale/pkg/logger/slogx"
)

// Finalize mints the founders and bounty allocations, stops minting for good
// and hands ledger ownership to the sale owner. It succeeds at most once.
func (u *Usecase) Finalize(ctx context.Context, caller ethcommon.Address) (*entity.Finalization, error) {
	ctx = withOperation(ctx, "finalize")
	if err := u.ownership.RequireOwner(caller); err != nil {
		return nil, errors.WithStack(err)
	}

	var finalization entity.Finalization
	err := u.mutate(ctx, func(ctx context.Context, tx datagateway.CrowdsaleDataGatewayWithTx) error {
		config, state, err := loadSale(ctx, tx)
		if err != nil {
			return errors.WithStack(err)
		}
		if err := state.RequireNotPaused(); err != nil {
			return errors.WithStack(err)
		}
		if state.MintingFinished {
			return errors.WithStack(sale.ErrAlreadyFinalized)
		}

		l := ledger.New(tx)
		issuedSupply, err := l.TotalSupply(ctx)
		if err != nil {
			return issuanceFailed(err, "failed to get total supply")
		}
		allocation, err := sale.ComputeAllocation(issuedSupply, config.FoundersTokensPercent, config.BountyTokensPercent, config.PercentRate)
		if err != nil {
			return errors.WithStack(err)
		}

		if err := u.deliverTokens(ctx, l, *state, config.FoundersTokensWallet, allocation.FoundersTokens); err != nil {
			return errors.Wrap(err, "founders allocation")
		}
		if err := u.deliverTokens(ctx, l, *state, config.BountyTokensWallet, allocation.BountyTokens); err != nil {
			return errors.Wrap(err, "bounty allocation")
		}

		actor := u.ledgerActor(*state)
		state.MintingFinished = true
		if err := tx.SetSaleState(ctx, *state); err != nil {
			return errors.Wrap(err, "failed to update sale state")
		}
		if err := l.FinishMinting(ctx, actor); err != nil {
			return issuanceFailed(err, "failed to finish minting")
		}
		if err := l.TransferOwnership(ctx, actor, u.identity.Owner); err != nil {
			return issuanceFailed(err, "failed to transfer token ownership")
		}

		finalization = entity.Finalization{
			IssuedSupply:     allocation.IssuedSupply,
			ExtraTokens:      allocation.ExtraTokens,
			FinalTotalSupply: allocation.FinalTotalSupply,
			FoundersTokens:   allocation.FoundersTokens,
			BountyTokens:     allocation.BountyTokens,
			FinalizedBy:      caller,
			FinalizedAt:      u.now(),
		}
		if err := tx.CreateFinalization(ctx, finalization); err != nil {
			return errors.Wrap(err, "failed to record finalization")
		}
		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	logger.InfoContext(ctx, "sale finalized",
		slogx.Stringer("issuedSupply", finalization.IssuedSupply),
		slogx.Stringer("foundersTokens", finalization.FoundersTokens),
		slogx.Stringer("bountyTokens", finalization.BountyTokens),
		slogx.Stringer("finalTotalSupply", finalization.FinalTotalSupply),
	)
	if u.reporter != nil {
		if err := u.reporter.ReportFinalization(ctx, finalization); err != nil {
			logger.WarnContext(ctx, "failed to report finalization", slogx.Error(err))
		}
	}
	return &finalization, nil
}
