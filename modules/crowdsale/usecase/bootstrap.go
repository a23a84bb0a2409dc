package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/crowdsale/modules/crowdsale/datagateway"
	"github.com/gaze-network/crowdsale/modules/crowdsale/internal/entity"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gaze-network/crowdsale/pkg/logger"
	"github.com/gaze-network/crowdsale/pkg/logger/slogx"
)

// Seed is the initial sale setup written to empty storage.
type Seed struct {
	Config     sale.SaleConfig
	BonusTiers []sale.BonusTier
}

// Bootstrap writes seed and an empty token ledger owned by the sale address,
// unless the sale has already been configured. It reports whether seed was written.
func (u *Usecase) Bootstrap(ctx context.Context, seed Seed) (bool, error) {
	ctx = withOperation(ctx, "bootstrap")
	if err := u.identity.Validate(); err != nil {
		return false, errors.WithStack(err)
	}
	if err := seed.Config.Validate(); err != nil {
		return false, errors.WithStack(err)
	}

	seeded := false
	err := u.mutate(ctx, func(ctx context.Context, tx datagateway.CrowdsaleDataGatewayWithTx) error {
		_, err := tx.GetSaleConfig(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, errs.NotFound) {
			return errors.Wrap(err, "failed to get sale config")
		}

		if err := tx.SetSaleConfig(ctx, seed.Config); err != nil {
			return errors.Wrap(err, "failed to set sale config")
		}
		if err := tx.SetSaleState(ctx, sale.SaleState{}); err != nil {
			return errors.Wrap(err, "failed to set sale state")
		}
		if err := tx.SetBonusTiers(ctx, seed.BonusTiers); err != nil {
			return errors.Wrap(err, "failed to set bonus tiers")
		}
		if err := tx.SetTokenState(ctx, entity.TokenState{Owner: u.identity.SaleAddress}); err != nil {
			return errors.Wrap(err, "failed to set token state")
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, errors.WithStack(err)
	}

	if seeded {
		logger.InfoContext(ctx, "sale seeded from configuration",
			slogx.Time("start", seed.Config.Start),
			slogx.Uint64("periodDays", seed.Config.PeriodDays),
			slogx.Int("bonusTiers", len(seed.BonusTiers)),
		)
	} else {
		logger.InfoContext(ctx, "sale already configured, seed skipped")
	}
	return seeded, nil
}
