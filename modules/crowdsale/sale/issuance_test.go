package sale

import (
	"testing"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenUnit(t *testing.T) {
	unit, err := TokenUnit(0)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(1), unit)

	unit, err = TokenUnit(18)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(1_000_000_000_000_000_000), unit)

	_, err = TokenUnit(39)
	assert.ErrorIs(t, err, ErrArithmeticOverflow)
	assert.ErrorIs(t, err, errs.OverflowUint128)
}

func TestComputeIssuance(t *testing.T) {
	one := uint128.From64(1)

	testCases := []struct {
		name   string
		amount uint64
		bonus  uint64
		price  uint64
		rate   uint64
		unit   uint128.Uint128
		base   uint64
		extra  uint64
	}{
		{"bonus truncated to zero", 100, 50, 10, 1000, one, 10, 0},
		{"with bonus", 1000, 150, 1, 1000, one, 1000, 150},
		{"price truncation", 99, 0, 10, 1000, one, 9, 0},
		{"token unit", 2, 100, 4, 1000, uint128.From64(1000), 500, 50},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			issuance, err := ComputeIssuance(uint128.From64(tc.amount), tc.bonus, uint128.From64(tc.price), tc.rate, tc.unit)
			require.NoError(t, err)
			assert.Equal(t, tc.bonus, issuance.BonusPercent)
			assert.Equal(t, uint128.From64(tc.base), issuance.BaseTokens)
			assert.Equal(t, uint128.From64(tc.extra), issuance.BonusTokens)
			assert.Equal(t, uint128.From64(tc.base+tc.extra), issuance.TotalTokens)
		})
	}
}

func TestComputeIssuanceWideProduct(t *testing.T) {
	unit, err := TokenUnit(18)
	require.NoError(t, err)
	price := utils.Must(uint128.FromString("100000000000000")) // 0.0001 with 18 decimals

	testCases := []struct {
		name   string
		amount string
		bonus  uint64
		base   string
		extra  string
		total  string
	}{
		{"500 whole units", "500000000000000000000", 0, "5000000000000000000000000", "0", "5000000000000000000000000"},
		{"with bonus", "500000000000000000000", 100, "5000000000000000000000000", "500000000000000000000000", "5500000000000000000000000"},
		{"hard cap", "10000000000000000000000", 50, "100000000000000000000000000", "5000000000000000000000000", "105000000000000000000000000"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			issuance, err := ComputeIssuance(utils.Must(uint128.FromString(tc.amount)), tc.bonus, price, 1000, unit)
			require.NoError(t, err)
			assert.Equal(t, tc.base, issuance.BaseTokens.String())
			assert.Equal(t, tc.extra, issuance.BonusTokens.String())
			assert.Equal(t, tc.total, issuance.TotalTokens.String())
		})
	}
}

func TestComputeIssuanceErrors(t *testing.T) {
	one := uint128.From64(1)

	_, err := ComputeIssuance(uint128.Zero, 0, one, 1000, one)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ComputeIssuance(one, 0, uint128.Zero, 1000, one)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = ComputeIssuance(one, 0, one, 0, one)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = ComputeIssuance(uint128.Max, 0, one, 1000, uint128.From64(2))
	assert.ErrorIs(t, err, ErrArithmeticOverflow)

	_, err = ComputeIssuance(uint128.Max, 2, one, 1000, one)
	assert.ErrorIs(t, err, ErrArithmeticOverflow)
}

func TestComputeAllocation(t *testing.T) {
	allocation, err := ComputeAllocation(uint128.From64(1000), 200, 50, 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(250), allocation.SummaryPercent)
	assert.Equal(t, uint128.From64(333), allocation.ExtraTokens)
	assert.Equal(t, uint128.From64(1333), allocation.FinalTotalSupply)
	assert.Equal(t, uint128.From64(266), allocation.FoundersTokens)
	assert.Equal(t, uint128.From64(66), allocation.BountyTokens)

	t.Run("nothing issued", func(t *testing.T) {
		allocation, err := ComputeAllocation(uint128.Zero, 200, 50, 1000)
		require.NoError(t, err)
		assert.True(t, allocation.FinalTotalSupply.IsZero())
		assert.True(t, allocation.FoundersTokens.IsZero())
		assert.True(t, allocation.BountyTokens.IsZero())
	})

	t.Run("invalid configuration", func(t *testing.T) {
		_, err := ComputeAllocation(uint128.From64(1000), 500, 500, 1000)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)

		_, err = ComputeAllocation(uint128.From64(1000), 900, 200, 1000)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)

		_, err = ComputeAllocation(uint128.From64(1000), ^uint64(0), 2, 1000)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("18 decimals supply", func(t *testing.T) {
		allocation, err := ComputeAllocation(utils.Must(uint128.FromString("100000000000000000000000000")), 200, 50, 1000)
		require.NoError(t, err)
		assert.Equal(t, "33333333333333333333333333", allocation.ExtraTokens.String())
		assert.Equal(t, "133333333333333333333333333", allocation.FinalTotalSupply.String())
		assert.Equal(t, "26666666666666666666666666", allocation.FoundersTokens.String())
		assert.Equal(t, "6666666666666666666666666", allocation.BountyTokens.String())
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := ComputeAllocation(uint128.Max, 200, 50, 1000)
		assert.ErrorIs(t, err, ErrArithmeticOverflow)
	})
}
