package export

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/crowdsale/modules/crowdsale/internal/entity"
	crowdsaleleveldb "github.com/gaze-network/crowdsale/modules/crowdsale/repository/leveldb"
	"github.com/gaze-network/crowdsale/pkg/parquetutils"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/local"
)

func TestExportFile(t *testing.T) {
	ctx := context.Background()
	db, err := crowdsaleleveldb.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := crowdsaleleveldb.NewRepository(db)

	createdAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, amount := range []uint64{100, 2500} {
		_, err := repo.CreateContribution(ctx, entity.Contribution{
			Sender:       ethcommon.HexToAddress("0xb1"),
			Amount:       uint128.From64(amount),
			BonusPercent: 50,
			BaseTokens:   uint128.From64(amount),
			TotalTokens:  uint128.From64(amount),
			SecondShare:  uint128.From64(amount / 10),
			PrimaryShare: uint128.From64(amount - amount/10),
			CreatedAt:    createdAt,
		})
		require.NoError(t, err)
	}

	path := filepath.Join(t.TempDir(), "contributions.parquet")
	n, err := New(repo, 2, Config{}).Export(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	file, err := local.NewLocalFileReader(path)
	require.NoError(t, err)
	defer file.Close()
	rows, err := parquetutils.ReadAll[ContributionRow](file)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2500", rows[1].Amount)
	assert.Equal(t, "25", rows[1].TotalDisplay)
	assert.Equal(t, "250", rows[1].SecondShare)
	assert.Equal(t, createdAt.UnixMilli(), rows[0].CreatedAt)
}

func TestExportInvalidDestination(t *testing.T) {
	db, err := crowdsaleleveldb.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	exporter := New(crowdsaleleveldb.NewRepository(db), 0, Config{})

	_, err = exporter.Export(context.Background(), "")
	assert.ErrorIs(t, err, errs.InvalidArgument)

	_, err = exporter.Export(context.Background(), "s3://no-key")
	assert.ErrorIs(t, err, errs.InvalidArgument)
}
