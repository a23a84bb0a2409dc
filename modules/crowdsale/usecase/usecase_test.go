package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/modules/crowdsale/datagateway"
	"github.com/gaze-network/crowdsale/modules/crowdsale/internal/entity"
	crowdsaleleveldb "github.com/gaze-network/crowdsale/modules/crowdsale/repository/leveldb"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/require"
)

var (
	owner          = ethcommon.HexToAddress("0x0000000000000000000000000000000000000001")
	saleAddress    = ethcommon.HexToAddress("0x0000000000000000000000000000000000000002")
	tokenAddress   = ethcommon.HexToAddress("0x0000000000000000000000000000000000000003")
	secondWallet   = ethcommon.HexToAddress("0x00000000000000000000000000000000000000a1")
	multisigWallet = ethcommon.HexToAddress("0x00000000000000000000000000000000000000a2")
	foundersWallet = ethcommon.HexToAddress("0x00000000000000000000000000000000000000a3")
	bountyWallet   = ethcommon.HexToAddress("0x00000000000000000000000000000000000000a4")
	alice          = ethcommon.HexToAddress("0x00000000000000000000000000000000000000b1")
	bob            = ethcommon.HexToAddress("0x00000000000000000000000000000000000000b2")
	foreignToken   = ethcommon.HexToAddress("0x00000000000000000000000000000000000000c1")

	saleStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

func testSeed() Seed {
	return Seed{
		Config: sale.SaleConfig{
			Start:                 saleStart,
			PeriodDays:            30,
			HardCap:               uint128.From64(10_000),
			Price:                 uint128.From64(1),
			PercentRate:           1000,
			SecondWalletPercent:   150,
			FoundersTokensPercent: 200,
			BountyTokensPercent:   50,
			SecondWallet:          secondWallet,
			MultisigWallet:        multisigWallet,
			FoundersTokensWallet:  foundersWallet,
			BountyTokensWallet:    bountyWallet,
		},
		BonusTiers: []sale.BonusTier{
			{Limit: uint128.From64(1000), BonusPercent: 50},
			{Limit: uint128.From64(100), BonusPercent: 100},
		},
	}
}

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

type testEnv struct {
	usecase *Usecase
	repo    *crowdsaleleveldb.Repository
	clock   *clock
}

func newTestEnv(t *testing.T, seed Seed, wrap func(datagateway.CrowdsaleDataGateway) datagateway.CrowdsaleDataGateway) *testEnv {
	t.Helper()
	return newTestEnvWithUnit(t, seed, uint128.From64(1), wrap)
}

func newTestEnvWithUnit(t *testing.T, seed Seed, oneTokenUnit uint128.Uint128, wrap func(datagateway.CrowdsaleDataGateway) datagateway.CrowdsaleDataGateway) *testEnv {
	t.Helper()
	db, err := crowdsaleleveldb.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := crowdsaleleveldb.NewRepository(db)
	var dg datagateway.CrowdsaleDataGateway = repo
	if wrap != nil {
		dg = wrap(repo)
	}

	c := &clock{now: saleStart.Add(24 * time.Hour)}
	u := New(dg, Identity{
		Owner:        owner,
		SaleAddress:  saleAddress,
		TokenAddress: tokenAddress,
		OneTokenUnit: oneTokenUnit,
	}, WithClock(c.Now))

	seeded, err := u.Bootstrap(context.Background(), seed)
	require.NoError(t, err)
	require.True(t, seeded)

	return &testEnv{usecase: u, repo: repo, clock: c}
}

func (e *testEnv) balance(t *testing.T, holder ethcommon.Address) uint128.Uint128 {
	t.Helper()
	balance, err := e.repo.GetBalance(context.Background(), holder)
	require.NoError(t, err)
	return balance
}

func (e *testEnv) state(t *testing.T) sale.SaleState {
	t.Helper()
	state, err := e.repo.GetSaleState(context.Background())
	require.NoError(t, err)
	return *state
}

func (e *testEnv) tokenState(t *testing.T) entity.TokenState {
	t.Helper()
	state, err := e.repo.GetTokenState(context.Background())
	require.NoError(t, err)
	return *state
}

// faultyDataGateway injects storage failures into transactions.
type faultyDataGateway struct {
	datagateway.CrowdsaleDataGateway
	failPayout     bool
	failSetBalance bool
}

func (f *faultyDataGateway) BeginCrowdsaleTx(ctx context.Context) (datagateway.CrowdsaleDataGatewayWithTx, error) {
	tx, err := f.CrowdsaleDataGateway.BeginCrowdsaleTx(ctx)
	if err != nil {
		return nil, err
	}
	return &faultyTx{CrowdsaleDataGatewayWithTx: tx, parent: f}, nil
}

type faultyTx struct {
	datagateway.CrowdsaleDataGatewayWithTx
	parent *faultyDataGateway
}

func (f *faultyTx) CreatePayout(ctx context.Context, payout entity.Payout) error {
	if f.parent.failPayout {
		return errors.New("payout sink unavailable")
	}
	return f.CrowdsaleDataGatewayWithTx.CreatePayout(ctx, payout)
}

func (f *faultyTx) SetBalance(ctx context.Context, holder ethcommon.Address, amount uint128.Uint128) error {
	if f.parent.failSetBalance {
		return errors.New("ledger unavailable")
	}
	return f.CrowdsaleDataGatewayWithTx.SetBalance(ctx, holder, amount)
}
