// Package decimals converts between integer token base units and human readable decimal amounts.
package decimals

import (
	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/uint128"
	"github.com/shopspring/decimal"
)

const (
	DefaultDivPrecision = 36

	// MaxDecimals is the largest number of fractional digits a token can declare.
	MaxDecimals = DefaultDivPrecision
)

func init() {
	decimal.DivisionPrecision = DefaultDivPrecision
}

// MustFromString convert string to decimal.Decimal. Panic if error
// string must be a valid number, not NaN, Inf or empty string.
func MustFromString(s string) decimal.Decimal {
	return utils.Must(decimal.NewFromString(s))
}

// FromUint128 renders an amount of base units as a decimal with the given number of fractional digits.
func FromUint128(amount uint128.Uint128, decimals uint8) decimal.Decimal {
	return decimal.NewFromBigInt(amount.Big(), -int32(decimals))
}

// ToUint128 converts a decimal amount to base units. Amounts that are negative,
// carry more fractional digits than decimals allows, or do not fit in 128 bits are rejected.
func ToUint128(amount decimal.Decimal, decimals uint8) (uint128.Uint128, error) {
	if decimals > MaxDecimals {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "decimals %d exceeds %d", decimals, MaxDecimals)
	}
	if amount.IsNegative() {
		return uint128.Zero, errors.Wrap(errs.InvalidArgument, "amount must not be negative")
	}
	scaled := amount.Mul(PowerOfTen(decimals))
	if !scaled.Equal(scaled.Truncate(0)) {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "amount %s has more than %d decimal places", amount, decimals)
	}
	value, err := uint128.FromBig(scaled.BigInt())
	if err != nil {
		return uint128.Zero, errors.Wrap(errs.OverflowUint128, "amount does not fit in 128 bits")
	}
	return value, nil
}

// ParseUint128 parses a human readable amount such as "1.5" into base units.
func ParseUint128(s string, decimals uint8) (uint128.Uint128, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "invalid amount %q", s)
	}
	return ToUint128(amount, decimals)
}
