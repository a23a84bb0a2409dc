package postgres

import (
	"testing"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/crowdsale/modules/crowdsale/internal/entity"
	"github.com/gaze-network/crowdsale/modules/crowdsale/repository/postgres/gen"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gaze-network/uint128"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericUint128(t *testing.T) {
	values := []uint128.Uint128{uint128.Zero, uint128.From64(1), uint128.From64(1000), uint128.Max}
	for _, value := range values {
		t.Run(value.String(), func(t *testing.T) {
			numeric, err := numericFromUint128(value)
			require.NoError(t, err)
			assert.True(t, numeric.Valid)

			actual, err := uint128FromNumeric(numeric)
			require.NoError(t, err)
			assert.Equal(t, value, actual)
		})
	}

	t.Run("null", func(t *testing.T) {
		actual, err := uint128FromNumeric(pgtype.Numeric{})
		require.NoError(t, err)
		assert.True(t, actual.IsZero())
	})
}

func TestInt64FromUint64(t *testing.T) {
	_, err := int64FromUint64(1 << 63)
	assert.ErrorIs(t, err, errs.InvalidArgument)

	v, err := int64FromUint64(42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

func TestMapSaleConfig(t *testing.T) {
	config := sale.SaleConfig{
		Start:                 time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodDays:            30,
		HardCap:               uint128.From64(10_000),
		Price:                 uint128.From64(2),
		PercentRate:           1000,
		SecondWalletPercent:   150,
		FoundersTokensPercent: 200,
		BountyTokensPercent:   50,
		SecondWallet:          ethcommon.HexToAddress("0xa1"),
		MultisigWallet:        ethcommon.HexToAddress("0xa2"),
		FoundersTokensWallet:  ethcommon.HexToAddress("0xa3"),
		BountyTokensWallet:    ethcommon.HexToAddress("0xa4"),
	}
	params, err := mapSaleConfigTypeToParams(config)
	require.NoError(t, err)

	actual, err := mapSaleConfigModelToType(gen.CrowdsaleSaleConfig{
		ID:                    true,
		StartAt:               params.StartAt,
		PeriodDays:            params.PeriodDays,
		HardCap:               params.HardCap,
		Price:                 params.Price,
		PercentRate:           params.PercentRate,
		SecondWalletPercent:   params.SecondWalletPercent,
		FoundersTokensPercent: params.FoundersTokensPercent,
		BountyTokensPercent:   params.BountyTokensPercent,
		SecondWallet:          params.SecondWallet,
		MultisigWallet:        params.MultisigWallet,
		FoundersTokensWallet:  params.FoundersTokensWallet,
		BountyTokensWallet:    params.BountyTokensWallet,
	})
	require.NoError(t, err)
	assert.Equal(t, config, actual)

	t.Run("invalid wallet", func(t *testing.T) {
		_, err := mapSaleConfigModelToType(gen.CrowdsaleSaleConfig{SecondWallet: "not-an-address"})
		assert.Error(t, err)
	})
	t.Run("period too long", func(t *testing.T) {
		config := config
		config.PeriodDays = 1 << 63
		_, err := mapSaleConfigTypeToParams(config)
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
}

func TestMapBonusTiers(t *testing.T) {
	tiers := []sale.BonusTier{
		{Limit: uint128.From64(1000), BonusPercent: 50},
		{Limit: uint128.From64(100), BonusPercent: 100},
	}
	params, err := mapBonusTierTypesToParams(tiers)
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 1}, params.IdxArr)

	models := make([]gen.CrowdsaleBonusTier, 0, len(tiers))
	for i := range params.IdxArr {
		models = append(models, gen.CrowdsaleBonusTier{
			Idx:          params.IdxArr[i],
			LimitAmount:  params.LimitAmountArr[i],
			BonusPercent: params.BonusPercentArr[i],
		})
	}
	actual, err := mapBonusTierModelsToTypes(models)
	require.NoError(t, err)
	assert.Equal(t, tiers, actual)
}

func TestMapPayout(t *testing.T) {
	payout := entity.Payout{
		ContributionID: 3,
		Kind:           entity.PayoutKindSecondWallet,
		Wallet:         ethcommon.HexToAddress("0xa1"),
		Amount:         uint128.From64(15),
		CreatedAt:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	params, err := mapPayoutTypeToParams(payout)
	require.NoError(t, err)
	assert.True(t, params.ContributionID.Valid)

	actual, err := mapPayoutModelToType(gen.CrowdsalePayout{
		ID:             9,
		ContributionID: params.ContributionID,
		Kind:           params.Kind,
		Token:          params.Token,
		Wallet:         params.Wallet,
		Amount:         params.Amount,
		CreatedAt:      params.CreatedAt,
	})
	require.NoError(t, err)
	payout.ID = 9
	assert.Equal(t, payout, actual)

	t.Run("retrieve tokens payout has no contribution", func(t *testing.T) {
		params, err := mapPayoutTypeToParams(entity.Payout{Kind: entity.PayoutKindRetrieveTokens})
		require.NoError(t, err)
		assert.False(t, params.ContributionID.Valid)
	})
}
