package leveldb

import (
	"context"
	"testing"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/crowdsale/modules/crowdsale/internal/entity"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db)
}

var (
	alice = ethcommon.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob   = ethcommon.HexToAddress("0x00000000000000000000000000000000000000b0")
	token = ethcommon.HexToAddress("0x00000000000000000000000000000000000000c0")
)

func TestSaleConfigAndState(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, err := repo.GetSaleConfig(ctx)
	assert.ErrorIs(t, err, errs.NotFound)
	_, err = repo.GetSaleState(ctx)
	assert.ErrorIs(t, err, errs.NotFound)

	config := sale.SaleConfig{
		Start:                 time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		PeriodDays:            45,
		HardCap:               uint128.From64(1_000_000),
		Price:                 uint128.From64(250),
		PercentRate:           1000,
		SecondWalletPercent:   150,
		FoundersTokensPercent: 200,
		BountyTokensPercent:   50,
		SecondWallet:          ethcommon.HexToAddress("0x1"),
		MultisigWallet:        ethcommon.HexToAddress("0x2"),
		FoundersTokensWallet:  ethcommon.HexToAddress("0x3"),
		BountyTokensWallet:    ethcommon.HexToAddress("0x4"),
	}
	require.NoError(t, repo.SetSaleConfig(ctx, config))
	got, err := repo.GetSaleConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, config, *got)

	state := sale.SaleState{Invested: uint128.From64(42), Paused: true}
	require.NoError(t, repo.SetSaleState(ctx, state))
	gotState, err := repo.GetSaleState(ctx)
	require.NoError(t, err)
	assert.Equal(t, state, *gotState)
}

func TestBonusTiers(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	tiers, err := repo.GetBonusTiers(ctx)
	require.NoError(t, err)
	assert.Empty(t, tiers)

	expected := []sale.BonusTier{
		{Limit: uint128.From64(100), BonusPercent: 200},
		{Limit: uint128.From64(50), BonusPercent: 100},
	}
	require.NoError(t, repo.SetBonusTiers(ctx, expected))
	tiers, err = repo.GetBonusTiers(ctx)
	require.NoError(t, err)
	assert.Equal(t, expected, tiers)
}

func TestBalances(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	balance, err := repo.GetBalance(ctx, alice)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	require.NoError(t, repo.SetBalance(ctx, alice, uint128.From64(10)))
	require.NoError(t, repo.SetForeignBalance(ctx, token, alice, uint128.From64(99)))

	balance, err = repo.GetBalance(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(10), balance)

	foreign, err := repo.GetForeignBalance(ctx, token, alice)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(99), foreign)

	require.NoError(t, repo.SetBalance(ctx, alice, uint128.Zero))
	balance, err = repo.GetBalance(ctx, alice)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestContributionsAndPayouts(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	createdAt := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	senders := []ethcommon.Address{alice, bob, alice, alice}
	for i, sender := range senders {
		id, err := repo.CreateContribution(ctx, entity.Contribution{
			Sender:      sender,
			Amount:      uint128.From64(uint64(i + 1)),
			TotalTokens: uint128.From64(uint64(i+1) * 10),
			CreatedAt:   createdAt,
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(i+1), id)
	}

	all, err := repo.GetContributions(ctx, -1, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, uint64(1), all[0].ID)
	assert.Equal(t, createdAt, all[0].CreatedAt)

	page, err := repo.GetContributions(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, uint64(2), page[0].ID)
	assert.Equal(t, uint64(3), page[1].ID)

	byAlice, err := repo.GetContributionsBySender(ctx, alice, -1, 0)
	require.NoError(t, err)
	require.Len(t, byAlice, 3)
	assert.Equal(t, []uint64{1, 3, 4}, []uint64{byAlice[0].ID, byAlice[1].ID, byAlice[2].ID})
	assert.Equal(t, uint128.From64(30), byAlice[1].TotalTokens)

	require.NoError(t, repo.CreatePayout(ctx, entity.Payout{ContributionID: 3, Kind: entity.PayoutKindSecondWallet, Wallet: bob, Amount: uint128.From64(1)}))
	require.NoError(t, repo.CreatePayout(ctx, entity.Payout{ContributionID: 3, Kind: entity.PayoutKindMultisigWallet, Wallet: alice, Amount: uint128.From64(2)}))
	require.NoError(t, repo.CreatePayout(ctx, entity.Payout{Kind: entity.PayoutKindRetrieveTokens, Token: token, Wallet: alice, Amount: uint128.From64(5)}))

	payouts, err := repo.GetPayoutsByContributionId(ctx, 3)
	require.NoError(t, err)
	require.Len(t, payouts, 2)
	assert.Equal(t, entity.PayoutKindSecondWallet, payouts[0].Kind)
	assert.Equal(t, uint128.From64(2), payouts[1].Amount)
}

func TestFinalization(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, err := repo.GetFinalization(ctx)
	assert.ErrorIs(t, err, errs.NotFound)

	finalization := entity.Finalization{
		IssuedSupply:     uint128.From64(1000),
		ExtraTokens:      uint128.From64(333),
		FinalTotalSupply: uint128.From64(1333),
		FoundersTokens:   uint128.From64(266),
		BountyTokens:     uint128.From64(66),
		FinalizedBy:      alice,
		FinalizedAt:      time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.CreateFinalization(ctx, finalization))
	got, err := repo.GetFinalization(ctx)
	require.NoError(t, err)
	assert.Equal(t, finalization, *got)

	assert.ErrorIs(t, repo.CreateFinalization(ctx, finalization), errs.InvalidArgument)
}

func TestTransaction(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	t.Run("rollback discards writes", func(t *testing.T) {
		tx, err := repo.BeginCrowdsaleTx(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.SetBalance(ctx, alice, uint128.From64(7)))

		balance, err := tx.GetBalance(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, uint128.From64(7), balance)

		require.NoError(t, tx.Rollback(ctx))
		require.NoError(t, tx.Rollback(ctx))

		balance, err = repo.GetBalance(ctx, alice)
		require.NoError(t, err)
		assert.True(t, balance.IsZero())
	})

	t.Run("commit persists writes", func(t *testing.T) {
		tx, err := repo.BeginCrowdsaleTx(ctx)
		require.NoError(t, err)
		defer func() { _ = tx.Rollback(ctx) }()

		require.NoError(t, tx.SetBalance(ctx, bob, uint128.From64(3)))
		_, err = tx.CreateContribution(ctx, entity.Contribution{Sender: bob, Amount: uint128.From64(3)})
		require.NoError(t, err)
		require.NoError(t, tx.Commit(ctx))

		balance, err := repo.GetBalance(ctx, bob)
		require.NoError(t, err)
		assert.Equal(t, uint128.From64(3), balance)

		contributions, err := repo.GetContributionsBySender(ctx, bob, -1, 0)
		require.NoError(t, err)
		assert.Len(t, contributions, 1)
	})

	t.Run("nested transaction", func(t *testing.T) {
		tx, err := repo.BeginCrowdsaleTx(ctx)
		require.NoError(t, err)
		defer func() { _ = tx.Rollback(ctx) }()

		_, err = tx.BeginCrowdsaleTx(ctx)
		assert.ErrorIs(t, err, ErrTxAlreadyExists)
	})
}
