package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/modules/crowdsale/datagateway"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gaze-network/crowdsale/pkg/logger"
	"github.com/gaze-network/crowdsale/pkg/logger/slogx"
	"github.com/gaze-network/uint128"
)

// updateBonuses applies fn to the stored bonus schedule on behalf of caller.
// The schedule is left untouched when fn fails.
func (u *Usecase) updateBonuses(ctx context.Context, caller ethcommon.Address, operation string, fn func(*sale.BonusSchedule) error) error {
	ctx = withOperation(ctx, operation)
	if err := u.ownership.RequireOwner(caller); err != nil {
		return errors.WithStack(err)
	}

	var count int
	err := u.mutate(ctx, func(ctx context.Context, tx datagateway.CrowdsaleDataGatewayWithTx) error {
		tiers, err := tx.GetBonusTiers(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to get bonus tiers")
		}
		schedule := sale.NewBonusSchedule(tiers...)
		if err := fn(schedule); err != nil {
			return errors.WithStack(err)
		}
		count = schedule.Count()
		if err := tx.SetBonusTiers(ctx, schedule.Tiers()); err != nil {
			return errors.Wrap(err, "failed to update bonus tiers")
		}
		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	logger.InfoContext(ctx, "bonus schedule updated", slogx.Int("count", count))
	return nil
}

func (u *Usecase) AddBonus(ctx context.Context, caller ethcommon.Address, limit uint128.Uint128, bonusPercent uint64) error {
	return u.updateBonuses(ctx, caller, "add_bonus", func(s *sale.BonusSchedule) error {
		s.Append(limit, bonusPercent)
		return nil
	})
}

func (u *Usecase) RemoveBonus(ctx context.Context, caller ethcommon.Address, index int) error {
	return u.updateBonuses(ctx, caller, "remove_bonus", func(s *sale.BonusSchedule) error {
		return s.RemoveAt(index)
	})
}

func (u *Usecase) ChangeBonus(ctx context.Context, caller ethcommon.Address, index int, limit uint128.Uint128, bonusPercent uint64) error {
	return u.updateBonuses(ctx, caller, "change_bonus", func(s *sale.BonusSchedule) error {
		return s.UpdateAt(index, limit, bonusPercent)
	})
}

// InsertBonus places a new tier right after indexAfter.
func (u *Usecase) InsertBonus(ctx context.Context, caller ethcommon.Address, indexAfter int, limit uint128.Uint128, bonusPercent uint64) error {
	return u.updateBonuses(ctx, caller, "insert_bonus", func(s *sale.BonusSchedule) error {
		return s.InsertAfter(indexAfter, limit, bonusPercent)
	})
}

func (u *Usecase) ClearBonuses(ctx context.Context, caller ethcommon.Address) error {
	return u.updateBonuses(ctx, caller, "clear_bonuses", func(s *sale.BonusSchedule) error {
		return s.Clear()
	})
}
