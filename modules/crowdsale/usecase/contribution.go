package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/crowdsale/modules/crowdsale/datagateway"
	"github.com/gaze-network/crowdsale/modules/crowdsale/internal/entity"
	"github.com/gaze-network/crowdsale/modules/crowdsale/ledger"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gaze-network/crowdsale/pkg/logger"
	"github.com/gaze-network/crowdsale/pkg/logger/slogx"
	"github.com/gaze-network/uint128"
)

// ProcessContribution accepts amount from sender: the funds are split between the
// second wallet and the multisig wallet, and the tokens owed (bonus included) are
// minted to the sale address and delivered to sender. Either all of it happens or nothing.
func (u *Usecase) ProcessContribution(ctx context.Context, sender ethcommon.Address, amount uint128.Uint128) (*entity.Contribution, error) {
	ctx = withOperation(ctx, "process_contribution")
	if amount.IsZero() {
		return nil, errors.WithStack(sale.ErrInvalidAmount)
	}
	if sender == (ethcommon.Address{}) {
		return nil, errors.Wrap(errs.InvalidArgument, "sender is required")
	}

	var contribution entity.Contribution
	err := u.mutate(ctx, func(ctx context.Context, tx datagateway.CrowdsaleDataGatewayWithTx) error {
		config, state, err := loadSale(ctx, tx)
		if err != nil {
			return errors.WithStack(err)
		}
		now := u.now()
		if err := sale.NewWindow(*config, *state).Admit(now); err != nil {
			return errors.WithStack(err)
		}

		split, err := sale.SplitFunds(amount, config.SecondWalletPercent, config.PercentRate)
		if err != nil {
			return errors.WithStack(err)
		}
		invested, overflow := state.Invested.AddOverflow(amount)
		if overflow {
			return errors.WithStack(sale.ErrArithmeticOverflow)
		}

		tiers, err := tx.GetBonusTiers(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to get bonus tiers")
		}
		bonusPercent := sale.NewBonusSchedule(tiers...).BonusFor(amount)
		issuance, err := sale.ComputeIssuance(amount, bonusPercent, config.Price, config.PercentRate, u.identity.OneTokenUnit)
		if err != nil {
			return errors.WithStack(err)
		}

		contribution = entity.Contribution{
			Sender:       sender,
			Amount:       amount,
			BonusPercent: issuance.BonusPercent,
			BaseTokens:   issuance.BaseTokens,
			BonusTokens:  issuance.BonusTokens,
			TotalTokens:  issuance.TotalTokens,
			SecondShare:  split.Second,
			PrimaryShare: split.Primary,
			CreatedAt:    now,
		}
		contribution.ID, err = tx.CreateContribution(ctx, contribution)
		if err != nil {
			return errors.Wrap(err, "failed to record contribution")
		}

		if err := routeFunds(ctx, tx, contribution, *config); err != nil {
			return errors.WithStack(err)
		}

		state.Invested = invested
		if err := tx.SetSaleState(ctx, *state); err != nil {
			return errors.Wrap(err, "failed to update sale state")
		}

		if err := u.deliverTokens(ctx, ledger.New(tx), *state, sender, issuance.TotalTokens); err != nil {
			return errors.WithStack(err)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	logger.InfoContext(ctx, "contribution processed",
		slogx.Uint64("contributionId", contribution.ID),
		slogx.Stringer("sender", contribution.Sender),
		slogx.Stringer("amount", contribution.Amount),
		slogx.Stringer("tokens", contribution.TotalTokens),
		slogx.Uint64("bonusPercent", contribution.BonusPercent),
	)
	u.reportContribution(ctx, contribution)
	return &contribution, nil
}

// routeFunds records the payouts of a contribution to the second and multisig wallets.
func routeFunds(ctx context.Context, tx datagateway.CrowdsaleWriterDataGateway, contribution entity.Contribution, config sale.SaleConfig) error {
	payouts := []entity.Payout{
		{
			ContributionID: contribution.ID,
			Kind:           entity.PayoutKindSecondWallet,
			Wallet:         config.SecondWallet,
			Amount:         contribution.SecondShare,
			CreatedAt:      contribution.CreatedAt,
		},
		{
			ContributionID: contribution.ID,
			Kind:           entity.PayoutKindMultisigWallet,
			Wallet:         config.MultisigWallet,
			Amount:         contribution.PrimaryShare,
			CreatedAt:      contribution.CreatedAt,
		},
	}
	for _, payout := range payouts {
		if payout.Amount.IsZero() {
			continue
		}
		if payout.Wallet == (ethcommon.Address{}) {
			return payoutFailed(errors.Wrap(errs.InvalidArgument, "wallet is not configured"), string(payout.Kind))
		}
		if err := tx.CreatePayout(ctx, payout); err != nil {
			return payoutFailed(err, string(payout.Kind))
		}
	}
	return nil
}

// deliverTokens mints amount to the sale address and transfers it to recipient.
func (u *Usecase) deliverTokens(ctx context.Context, l *ledger.Ledger, state sale.SaleState, recipient ethcommon.Address, amount uint128.Uint128) error {
	actor := u.ledgerActor(state)
	if err := l.Mint(ctx, actor, u.identity.SaleAddress, amount); err != nil {
		return issuanceFailed(err, "failed to mint tokens")
	}
	if err := l.Transfer(ctx, u.identity.SaleAddress, recipient, amount); err != nil {
		return issuanceFailed(err, "failed to transfer tokens")
	}
	return nil
}

// Quote returns the tokens a contribution of amount would receive right now,
// without checking the sale window.
func (u *Usecase) Quote(ctx context.Context, amount uint128.Uint128) (*sale.Issuance, error) {
	config, err := u.crowdsaleDg.GetSaleConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sale config")
	}
	tiers, err := u.crowdsaleDg.GetBonusTiers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get bonus tiers")
	}
	bonusPercent := sale.NewBonusSchedule(tiers...).BonusFor(amount)
	issuance, err := sale.ComputeIssuance(amount, bonusPercent, config.Price, config.PercentRate, u.identity.OneTokenUnit)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &issuance, nil
}

func (u *Usecase) reportContribution(ctx context.Context, contribution entity.Contribution) {
	if u.reporter == nil {
		return
	}
	if err := u.reporter.ReportContribution(ctx, contribution); err != nil {
		logger.WarnContext(ctx, "failed to report contribution",
			slogx.Error(err),
			slogx.Uint64("contributionId", contribution.ID),
		)
	}
}
