package sale

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
)

// Split is a contribution divided between the second wallet and the multisig wallet.
type Split struct {
	Second  uint128.Uint128 `json:"second"`
	Primary uint128.Uint128 `json:"primary"`
}

// SplitFunds computes second = amount*secondWalletPercent/percentRate (truncating)
// and primary = amount - second, so the two shares always sum to amount.
func SplitFunds(amount uint128.Uint128, secondWalletPercent, percentRate uint64) (Split, error) {
	if amount.IsZero() {
		return Split{}, errors.WithStack(ErrInvalidAmount)
	}
	if percentRate == 0 {
		return Split{}, errors.Wrap(ErrInvalidConfiguration, "percent rate must be greater than zero")
	}

	second, err := mulDiv64(amount, secondWalletPercent, percentRate)
	if err != nil {
		return Split{}, errors.WithStack(err)
	}
	if second.Cmp(amount) > 0 {
		return Split{}, errors.Wrap(ErrInvalidConfiguration, "second wallet percent exceeds percent rate")
	}

	return Split{
		Second:  second,
		Primary: amount.Sub(second),
	}, nil
}
