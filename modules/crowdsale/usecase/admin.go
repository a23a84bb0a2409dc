package usecase

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/modules/crowdsale/datagateway"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gaze-network/crowdsale/pkg/logger"
	"github.com/gaze-network/crowdsale/pkg/logger/slogx"
	"github.com/gaze-network/uint128"
)

// updateConfig applies fn to the stored sale config on behalf of caller.
func (u *Usecase) updateConfig(ctx context.Context, caller ethcommon.Address, field string, fn func(*sale.SaleConfig)) error {
	ctx = withOperation(ctx, "set_"+field)
	if err := u.ownership.RequireOwner(caller); err != nil {
		return errors.WithStack(err)
	}

	err := u.mutate(ctx, func(ctx context.Context, tx datagateway.CrowdsaleDataGatewayWithTx) error {
		config, err := tx.GetSaleConfig(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to get sale config")
		}
		fn(config)
		if err := tx.SetSaleConfig(ctx, *config); err != nil {
			return errors.Wrap(err, "failed to update sale config")
		}
		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	logger.InfoContext(ctx, "sale config updated", slogx.String("field", field))
	return nil
}

func (u *Usecase) SetStart(ctx context.Context, caller ethcommon.Address, start time.Time) error {
	return u.updateConfig(ctx, caller, "start", func(c *sale.SaleConfig) { c.Start = start.UTC() })
}

func (u *Usecase) SetPeriodDays(ctx context.Context, caller ethcommon.Address, periodDays uint64) error {
	return u.updateConfig(ctx, caller, "period_days", func(c *sale.SaleConfig) { c.PeriodDays = periodDays })
}

func (u *Usecase) SetHardCap(ctx context.Context, caller ethcommon.Address, hardCap uint128.Uint128) error {
	return u.updateConfig(ctx, caller, "hard_cap", func(c *sale.SaleConfig) { c.HardCap = hardCap })
}

func (u *Usecase) SetPrice(ctx context.Context, caller ethcommon.Address, price uint128.Uint128) error {
	return u.updateConfig(ctx, caller, "price", func(c *sale.SaleConfig) { c.Price = price })
}

func (u *Usecase) SetSecondWalletPercent(ctx context.Context, caller ethcommon.Address, percent uint64) error {
	return u.updateConfig(ctx, caller, "second_wallet_percent", func(c *sale.SaleConfig) { c.SecondWalletPercent = percent })
}

func (u *Usecase) SetFoundersTokensPercent(ctx context.Context, caller ethcommon.Address, percent uint64) error {
	return u.updateConfig(ctx, caller, "founders_tokens_percent", func(c *sale.SaleConfig) { c.FoundersTokensPercent = percent })
}

func (u *Usecase) SetBountyTokensPercent(ctx context.Context, caller ethcommon.Address, percent uint64) error {
	return u.updateConfig(ctx, caller, "bounty_tokens_percent", func(c *sale.SaleConfig) { c.BountyTokensPercent = percent })
}

func (u *Usecase) SetSecondWallet(ctx context.Context, caller ethcommon.Address, wallet ethcommon.Address) error {
	return u.updateConfig(ctx, caller, "second_wallet", func(c *sale.SaleConfig) { c.SecondWallet = wallet })
}

func (u *Usecase) SetMultisigWallet(ctx context.Context, caller ethcommon.Address, wallet ethcommon.Address) error {
	return u.updateConfig(ctx, caller, "multisig_wallet", func(c *sale.SaleConfig) { c.MultisigWallet = wallet })
}

func (u *Usecase) SetFoundersTokensWallet(ctx context.Context, caller ethcommon.Address, wallet ethcommon.Address) error {
	return u.updateConfig(ctx, caller, "founders_tokens_wallet", func(c *sale.SaleConfig) { c.FoundersTokensWallet = wallet })
}

func (u *Usecase) SetBountyTokensWallet(ctx context.Context, caller ethcommon.Address, wallet ethcommon.Address) error {
	return u.updateConfig(ctx, caller, "bounty_tokens_wallet", func(c *sale.SaleConfig) { c.BountyTokensWallet = wallet })
}
