package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/crowdsale/modules/crowdsale/datagateway"
	"github.com/gaze-network/crowdsale/modules/crowdsale/internal/entity"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessContribution(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testSeed(), nil)

	contribution, err := env.usecase.ProcessContribution(ctx, alice, uint128.From64(100))
	require.NoError(t, err)

	// bonusFor(100): tier 1 (limit 100) is passed, tier 0 (limit 1000) wins with 50.
	assert.Equal(t, uint64(1), contribution.ID)
	assert.Equal(t, uint64(50), contribution.BonusPercent)
	assert.Equal(t, uint128.From64(100), contribution.BaseTokens)
	assert.Equal(t, uint128.From64(5), contribution.BonusTokens)
	assert.Equal(t, uint128.From64(105), contribution.TotalTokens)
	assert.Equal(t, uint128.From64(15), contribution.SecondShare)
	assert.Equal(t, uint128.From64(85), contribution.PrimaryShare)

	assert.Equal(t, uint128.From64(105), env.balance(t, alice))
	assert.True(t, env.balance(t, saleAddress).IsZero())
	assert.Equal(t, uint128.From64(100), env.state(t).Invested)
	assert.Equal(t, uint128.From64(105), env.tokenState(t).TotalSupply)

	payouts, err := env.usecase.GetContributionPayouts(ctx, contribution.ID)
	require.NoError(t, err)
	require.Len(t, payouts, 2)
	assert.Equal(t, entity.PayoutKindSecondWallet, payouts[0].Kind)
	assert.Equal(t, secondWallet, payouts[0].Wallet)
	assert.Equal(t, uint128.From64(15), payouts[0].Amount)
	assert.Equal(t, multisigWallet, payouts[1].Wallet)
	assert.Equal(t, uint128.From64(85), payouts[1].Amount)

	history, err := env.usecase.GetContributionsBySender(ctx, alice, -1, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, contribution.TotalTokens, history[0].TotalTokens)
}

func TestProcessContributionRejected(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		prepare  func(t *testing.T, env *testEnv)
		amount   uint128.Uint128
		expected error
	}{
		{
			name:     "zero amount",
			amount:   uint128.Zero,
			expected: sale.ErrInvalidAmount,
		},
		{
			name: "before start",
			prepare: func(t *testing.T, env *testEnv) {
				env.clock.now = saleStart.Add(-time.Second)
			},
			amount:   uint128.From64(10),
			expected: sale.ErrSaleNotOpen,
		},
		{
			name: "after end",
			prepare: func(t *testing.T, env *testEnv) {
				env.clock.now = saleStart.Add(30 * 24 * time.Hour)
			},
			amount:   uint128.From64(10),
			expected: sale.ErrSaleNotOpen,
		},
		{
			name: "paused",
			prepare: func(t *testing.T, env *testEnv) {
				require.NoError(t, env.usecase.Pause(ctx, owner))
			},
			amount:   uint128.From64(10),
			expected: sale.ErrSalePaused,
		},
		{
			name: "hard cap exceeded",
			prepare: func(t *testing.T, env *testEnv) {
				require.NoError(t, env.usecase.SetHardCap(ctx, owner, uint128.From64(50)))
				_, err := env.usecase.ProcessContribution(ctx, bob, uint128.From64(60))
				require.NoError(t, err)
			},
			amount:   uint128.From64(10),
			expected: sale.ErrHardCapExceeded,
		},
		{
			name: "zero price",
			prepare: func(t *testing.T, env *testEnv) {
				require.NoError(t, env.usecase.SetPrice(ctx, owner, uint128.Zero))
			},
			amount:   uint128.From64(10),
			expected: sale.ErrInvalidConfiguration,
		},
		{
			name: "overflow",
			prepare: func(t *testing.T, env *testEnv) {
				require.NoError(t, env.usecase.SetHardCap(ctx, owner, uint128.Max))
			},
			amount:   uint128.Max,
			expected: sale.ErrArithmeticOverflow,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, testSeed(), nil)
			if tc.prepare != nil {
				tc.prepare(t, env)
			}
			before := env.state(t)
			supplyBefore := env.tokenState(t).TotalSupply

			_, err := env.usecase.ProcessContribution(ctx, alice, tc.amount)
			assert.ErrorIs(t, err, tc.expected)

			assert.Equal(t, before, env.state(t))
			assert.Equal(t, supplyBefore, env.tokenState(t).TotalSupply)
			assert.True(t, env.balance(t, alice).IsZero())
		})
	}
}

func TestProcessContributionAtomic(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		fault    func(f *faultyDataGateway)
		expected error
	}{
		{
			name:     "payout failure",
			fault:    func(f *faultyDataGateway) { f.failPayout = true },
			expected: sale.ErrPayoutFailed,
		},
		{
			name:     "ledger failure",
			fault:    func(f *faultyDataGateway) { f.failSetBalance = true },
			expected: sale.ErrIssuanceFailed,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var faulty *faultyDataGateway
			env := newTestEnv(t, testSeed(), func(dg datagateway.CrowdsaleDataGateway) datagateway.CrowdsaleDataGateway {
				faulty = &faultyDataGateway{CrowdsaleDataGateway: dg}
				return faulty
			})

			_, err := env.usecase.ProcessContribution(ctx, alice, uint128.From64(100))
			require.NoError(t, err)
			stateBefore := env.state(t)
			tokenBefore := env.tokenState(t)

			tc.fault(faulty)
			_, err = env.usecase.ProcessContribution(ctx, alice, uint128.From64(200))
			assert.ErrorIs(t, err, tc.expected)

			assert.Equal(t, stateBefore, env.state(t))
			assert.Equal(t, tokenBefore, env.tokenState(t))
			assert.Equal(t, uint128.From64(105), env.balance(t, alice))

			contributions, err := env.usecase.GetContributions(ctx, -1, 0)
			require.NoError(t, err)
			assert.Len(t, contributions, 1)
			payouts, err := env.usecase.GetContributionPayouts(ctx, 2)
			require.NoError(t, err)
			assert.Empty(t, payouts)
		})
	}
}

func TestProcessContributionInvestedMonotonic(t *testing.T) {
	ctx := context.Background()
	seed := testSeed()
	seed.Config.HardCap = uint128.From64(250)
	env := newTestEnv(t, seed, nil)

	previous := uint128.Zero
	accepted := uint128.Zero
	for i := 0; i < 6; i++ {
		_, err := env.usecase.ProcessContribution(ctx, alice, uint128.From64(100))
		invested := env.state(t).Invested
		assert.True(t, invested.Cmp(previous) >= 0)
		if err == nil {
			accepted = accepted.Add64(100)
		} else {
			assert.ErrorIs(t, err, sale.ErrHardCapExceeded)
		}
		previous = invested
	}

	// the contribution crossing the cap is accepted, the next one is not
	assert.Equal(t, uint128.From64(300), accepted)
	assert.Equal(t, accepted, env.state(t).Invested)
}

func TestProcessContributionConcurrent(t *testing.T) {
	ctx := context.Background()
	seed := testSeed()
	seed.Config.HardCap = uint128.From64(1000)
	seed.BonusTiers = nil
	env := newTestEnv(t, seed, nil)

	const workers = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.usecase.ProcessContribution(ctx, bob, uint128.From64(100))
			if err != nil {
				assert.True(t, errors.Is(err, sale.ErrHardCapExceeded))
				return
			}
			mu.Lock()
			accepted++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 11, accepted)
	assert.Equal(t, uint128.From64(1100), env.state(t).Invested)
	assert.Equal(t, uint128.From64(1100), env.tokenState(t).TotalSupply)
	assert.Equal(t, uint128.From64(1100), env.balance(t, bob))
}

func TestProcessContributionZeroSender(t *testing.T) {
	env := newTestEnv(t, testSeed(), nil)
	_, err := env.usecase.ProcessContribution(context.Background(), [20]byte{}, uint128.From64(1))
	assert.ErrorIs(t, err, errs.InvalidArgument)
}

func TestQuote(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testSeed(), nil)

	issuance, err := env.usecase.Quote(ctx, uint128.From64(10))
	require.NoError(t, err)
	assert.Equal(t, uint64(100), issuance.BonusPercent)
	assert.Equal(t, uint128.From64(11), issuance.TotalTokens)

	_, err = env.usecase.Quote(ctx, uint128.Zero)
	assert.ErrorIs(t, err, sale.ErrInvalidAmount)

	assert.Equal(t, sale.SaleState{}, env.state(t))
}
