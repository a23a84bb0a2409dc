package usecase

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/crowdsale/modules/crowdsale/internal/entity"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gaze-network/uint128"
)

type SaleInfo struct {
	Config          sale.SaleConfig
	State           sale.SaleState
	End             time.Time
	IsOpen          bool
	IsUnderCap      bool
	TotalSupply     uint128.Uint128
	TransferAllowed bool
	BonusTiers      []sale.BonusTier
	// Finalization is nil until the sale is finalized.
	Finalization *entity.Finalization
}

func (u *Usecase) GetSaleInfo(ctx context.Context) (*SaleInfo, error) {
	config, state, err := loadSale(ctx, u.crowdsaleDg)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	token, err := u.crowdsaleDg.GetTokenState(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get token state")
	}
	tiers, err := u.crowdsaleDg.GetBonusTiers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get bonus tiers")
	}
	finalization, err := u.crowdsaleDg.GetFinalization(ctx)
	if err != nil {
		if !errors.Is(err, errs.NotFound) {
			return nil, errors.Wrap(err, "failed to get finalization")
		}
		finalization = nil
	}

	window := sale.NewWindow(*config, *state)
	return &SaleInfo{
		Config:          *config,
		State:           *state,
		End:             config.End(),
		IsOpen:          window.IsOpen(u.now()),
		IsUnderCap:      window.IsUnderCap(),
		TotalSupply:     token.TotalSupply,
		TransferAllowed: token.TransferAllowed,
		BonusTiers:      tiers,
		Finalization:    finalization,
	}, nil
}

func (u *Usecase) GetBonusTiers(ctx context.Context) ([]sale.BonusTier, error) {
	tiers, err := u.crowdsaleDg.GetBonusTiers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get bonus tiers")
	}
	return tiers, nil
}

func (u *Usecase) GetBalance(ctx context.Context, holder ethcommon.Address) (uint128.Uint128, error) {
	balance, err := u.crowdsaleDg.GetBalance(ctx, holder)
	if err != nil {
		return uint128.Zero, errors.Wrap(err, "failed to get balance")
	}
	return balance, nil
}

func (u *Usecase) GetContributions(ctx context.Context, limit int32, offset int32) ([]*entity.Contribution, error) {
	contributions, err := u.crowdsaleDg.GetContributions(ctx, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get contributions")
	}
	return contributions, nil
}

func (u *Usecase) GetContributionsBySender(ctx context.Context, sender ethcommon.Address, limit int32, offset int32) ([]*entity.Contribution, error) {
	contributions, err := u.crowdsaleDg.GetContributionsBySender(ctx, sender, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get contributions by sender")
	}
	return contributions, nil
}

func (u *Usecase) GetContributionPayouts(ctx context.Context, contributionId uint64) ([]*entity.Payout, error) {
	payouts, err := u.crowdsaleDg.GetPayoutsByContributionId(ctx, contributionId)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get payouts")
	}
	return payouts, nil
}
