package usecase

import (
	"context"

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

// RetrieveTokens forwards the sale address's whole balance of a foreign token to
// the multisig wallet and returns the amount moved.
func (u *Usecase) RetrieveTokens(ctx context.Context, caller ethcommon.Address, token ethcommon.Address) (uint128.Uint128, error) {
	ctx = withOperation(ctx, "retrieve_tokens")
	if err := u.ownership.RequireOwner(caller); err != nil {
		return uint128.Zero, errors.WithStack(err)
	}
	if token == u.identity.TokenAddress {
		return uint128.Zero, errors.WithStack(sale.ErrOwnTokenRetrieval)
	}

	var amount uint128.Uint128
	err := u.mutate(ctx, func(ctx context.Context, tx datagateway.CrowdsaleDataGatewayWithTx) error {
		config, err := tx.GetSaleConfig(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to get sale config")
		}

		amount, err = tx.GetForeignBalance(ctx, token, u.identity.SaleAddress)
		if err != nil {
			return errors.Wrap(err, "failed to get foreign token balance")
		}
		if amount.IsZero() {
			return nil
		}

		walletBalance, err := tx.GetForeignBalance(ctx, token, config.MultisigWallet)
		if err != nil {
			return errors.Wrap(err, "failed to get multisig foreign token balance")
		}
		walletBalance, overflow := walletBalance.AddOverflow(amount)
		if overflow {
			return errors.WithStack(sale.ErrArithmeticOverflow)
		}

		if err := tx.SetForeignBalance(ctx, token, u.identity.SaleAddress, uint128.Zero); err != nil {
			return payoutFailed(err, "failed to debit sale address")
		}
		if err := tx.SetForeignBalance(ctx, token, config.MultisigWallet, walletBalance); err != nil {
			return payoutFailed(err, "failed to credit multisig wallet")
		}
		if err := tx.CreatePayout(ctx, entity.Payout{
			Kind:      entity.PayoutKindRetrieveTokens,
			Token:     token,
			Wallet:    config.MultisigWallet,
			Amount:    amount,
			CreatedAt: u.now(),
		}); err != nil {
			return payoutFailed(err, "failed to record payout")
		}
		return nil
	})
	if err != nil {
		return uint128.Zero, errors.WithStack(err)
	}

	logger.InfoContext(ctx, "foreign tokens retrieved",
		slogx.Stringer("token", token),
		slogx.Stringer("amount", amount),
	)
	return amount, nil
}

// CreditForeignTokens records an incoming transfer of a token other than the sale
// token to holder. It is owner-only.
func (u *Usecase) CreditForeignTokens(ctx context.Context, caller ethcommon.Address, token, holder ethcommon.Address, amount uint128.Uint128) error {
	ctx = withOperation(ctx, "credit_foreign_tokens")
	if err := u.ownership.RequireOwner(caller); err != nil {
		return errors.WithStack(err)
	}
	if token == u.identity.TokenAddress {
		return errors.Wrap(errs.InvalidArgument, "sale token balances are kept by the ledger")
	}
	if amount.IsZero() {
		return errors.WithStack(sale.ErrInvalidAmount)
	}

	return errors.WithStack(u.mutate(ctx, func(ctx context.Context, tx datagateway.CrowdsaleDataGatewayWithTx) error {
		balance, err := tx.GetForeignBalance(ctx, token, holder)
		if err != nil {
			return errors.Wrap(err, "failed to get foreign token balance")
		}
		balance, overflow := balance.AddOverflow(amount)
		if overflow {
			return errors.WithStack(sale.ErrArithmeticOverflow)
		}
		return errors.WithStack(tx.SetForeignBalance(ctx, token, holder, balance))
	}))
}

func (u *Usecase) GetForeignBalance(ctx context.Context, token, holder ethcommon.Address) (uint128.Uint128, error) {
	balance, err := u.crowdsaleDg.GetForeignBalance(ctx, token, holder)
	if err != nil {
		return uint128.Zero, errors.Wrap(err, "failed to get foreign token balance")
	}
	return balance, nil
}
