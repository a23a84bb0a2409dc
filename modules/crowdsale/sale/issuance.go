package sale

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
)

// DefaultTokenDecimals is the number of decimals of the sale token and of the
// contributed currency when none are configured.
const DefaultTokenDecimals = 18

// TokenUnit returns 10^decimals, the number of base units in one whole token.
func TokenUnit(decimals uint8) (uint128.Uint128, error) {
	unit := uint128.From64(1)
	ten := uint128.From64(10)
	for i := uint8(0); i < decimals; i++ {
		var overflow bool
		unit, overflow = unit.MulOverflow(ten)
		if overflow {
			return uint128.Zero, errors.Wrapf(ErrArithmeticOverflow, "token decimals %d", decimals)
		}
	}
	return unit, nil
}

// Issuance is the token amount owed for one contribution.
type Issuance struct {
	BonusPercent uint64          `json:"bonusPercent"`
	BaseTokens   uint128.Uint128 `json:"baseTokens"`
	BonusTokens  uint128.Uint128 `json:"bonusTokens"`
	TotalTokens  uint128.Uint128 `json:"totalTokens"`
}

// ComputeIssuance converts a contribution into tokens:
//
//	base  = amount * oneTokenUnit / price
//	bonus = base * bonusPercent / percentRate
//
// Both divisions truncate. Intermediate products are not bounded to 128 bits.
func ComputeIssuance(amount uint128.Uint128, bonusPercent uint64, price uint128.Uint128, percentRate uint64, oneTokenUnit uint128.Uint128) (Issuance, error) {
	if amount.IsZero() {
		return Issuance{}, errors.WithStack(ErrInvalidAmount)
	}
	if price.IsZero() {
		return Issuance{}, errors.Wrap(ErrInvalidConfiguration, "price must be greater than zero")
	}
	if percentRate == 0 {
		return Issuance{}, errors.Wrap(ErrInvalidConfiguration, "percent rate must be greater than zero")
	}

	base, err := mulDiv(amount, oneTokenUnit, price)
	if err != nil {
		return Issuance{}, errors.Wrap(err, "base tokens")
	}
	bonus, err := mulDiv64(base, bonusPercent, percentRate)
	if err != nil {
		return Issuance{}, errors.Wrap(err, "bonus tokens")
	}

	total, overflow := base.AddOverflow(bonus)
	if overflow {
		return Issuance{}, errors.WithStack(ErrArithmeticOverflow)
	}

	return Issuance{
		BonusPercent: bonusPercent,
		BaseTokens:   base,
		BonusTokens:  bonus,
		TotalTokens:  total,
	}, nil
}

// Allocation is the founders and bounty issuance computed at finalization.
type Allocation struct {
	IssuedSupply     uint128.Uint128 `json:"issuedSupply"`
	SummaryPercent   uint64          `json:"summaryPercent"`
	ExtraTokens      uint128.Uint128 `json:"extraTokens"`
	FinalTotalSupply uint128.Uint128 `json:"finalTotalSupply"`
	FoundersTokens   uint128.Uint128 `json:"foundersTokens"`
	BountyTokens     uint128.Uint128 `json:"bountyTokens"`
}

// ComputeAllocation sizes the founders and bounty mints so that together they make up
// (foundersPercent+bountyPercent)/percentRate of the final supply. Founders and bounty
// are computed independently from the final supply and may not sum to ExtraTokens;
// the residue is left unminted.
func ComputeAllocation(issuedSupply uint128.Uint128, foundersPercent, bountyPercent, percentRate uint64) (Allocation, error) {
	summary := foundersPercent + bountyPercent
	if summary < foundersPercent || summary >= percentRate {
		return Allocation{}, errors.Wrapf(ErrInvalidConfiguration, "founders and bounty percent (%d + %d) must be less than percent rate %d", foundersPercent, bountyPercent, percentRate)
	}

	extra, err := mulDiv64(issuedSupply, summary, percentRate-summary)
	if err != nil {
		return Allocation{}, errors.Wrap(err, "extra tokens")
	}

	final, overflow := issuedSupply.AddOverflow(extra)
	if overflow {
		return Allocation{}, errors.WithStack(ErrArithmeticOverflow)
	}

	founders, err := mulDiv64(final, foundersPercent, percentRate)
	if err != nil {
		return Allocation{}, errors.Wrap(err, "founders tokens")
	}
	bounty, err := mulDiv64(final, bountyPercent, percentRate)
	if err != nil {
		return Allocation{}, errors.Wrap(err, "bounty tokens")
	}

	return Allocation{
		IssuedSupply:     issuedSupply,
		SummaryPercent:   summary,
		ExtraTokens:      extra,
		FinalTotalSupply: final,
		FoundersTokens:   founders,
		BountyTokens:     bounty,
	}, nil
}
