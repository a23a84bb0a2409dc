package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gaze-network/crowdsale/modules/crowdsale/usecase"
	"github.com/gaze-network/crowdsale/pkg/logger"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintStatus(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	info := &usecase.SaleInfo{
		Config: sale.SaleConfig{
			Start:          start,
			PeriodDays:     30,
			HardCap:        uint128.From64(10_000),
			Price:          uint128.From64(1),
			PercentRate:    1000,
			MultisigWallet: ethcommon.HexToAddress("0xa2"),
		},
		State:       sale.SaleState{Invested: uint128.From64(1234)},
		End:         start.AddDate(0, 0, 30),
		IsOpen:      true,
		IsUnderCap:  true,
		TotalSupply: uint128.From64(150),
		BonusTiers: []sale.BonusTier{
			{Limit: uint128.From64(1000), BonusPercent: 50},
		},
	}

	var out bytes.Buffer
	require.NoError(t, printStatus(&out, info, 2))
	assert.Contains(t, out.String(), "2024-01-31T00:00:00Z")
	assert.Contains(t, out.String(), "1234")
	assert.Contains(t, out.String(), "1.5")

	out.Reset()
	info.BonusTiers = nil
	require.NoError(t, printStatus(&out, info, 0))
	assert.Contains(t, out.String(), "No bonus tiers")
}

func TestVersion(t *testing.T) {
	command := NewVersionCommand()
	var out bytes.Buffer
	command.SetOut(&out)

	require.NoError(t, versionHandler(&versionCmdOptions{Modules: "crowdsale"}, command, nil))
	assert.Equal(t, "v0.1.0\n", out.String())

	err := versionHandler(&versionCmdOptions{Modules: "runes"}, command, nil)
	assert.ErrorIs(t, err, errs.Unsupported)
}

type shutdownFunc func(ctx context.Context) error

func (f shutdownFunc) Shutdown(ctx context.Context) error { return f(ctx) }

func TestCloseCrowdsale(t *testing.T) {
	var buf bytes.Buffer
	ctx := logger.NewContext(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	called := false
	closeCrowdsale(ctx, shutdownFunc(func(context.Context) error {
		called = true
		return errors.New("leveldb: closed")
	}))
	assert.True(t, called)
	assert.Contains(t, buf.String(), "Failed to close crowdsale module")
	assert.Contains(t, buf.String(), "leveldb: closed")

	buf.Reset()
	closeCrowdsale(ctx, shutdownFunc(func(context.Context) error { return nil }))
	assert.Empty(t, buf.String())
}
