package sale

import (
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
)

// mulDiv returns a*b/d truncated. The product is computed at full width, so it
// only fails when the quotient itself does not fit in 128 bits.
func mulDiv(a, b, d uint128.Uint128) (uint128.Uint128, error) {
	if d.IsZero() {
		return uint128.Zero, errors.Wrap(ErrInvalidConfiguration, "division by zero")
	}
	quo := new(big.Int).Mul(a.Big(), b.Big())
	quo.Quo(quo, d.Big())
	if quo.BitLen() > 128 {
		return uint128.Zero, errors.WithStack(ErrArithmeticOverflow)
	}
	result, err := uint128.FromBig(quo)
	if err != nil {
		return uint128.Zero, errors.WithSecondaryError(errors.WithStack(ErrArithmeticOverflow), err)
	}
	return result, nil
}

// mulDiv64 is mulDiv for a per-rate percentage.
func mulDiv64(a uint128.Uint128, percent, percentRate uint64) (uint128.Uint128, error) {
	return mulDiv(a, uint128.From64(percent), uint128.From64(percentRate))
}
