package reporter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/modules/crowdsale/internal/entity"
	"github.com/gaze-network/crowdsale/pkg/reportingclient"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter(t *testing.T) {
	received := make(map[string]map[string]any)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		received[r.URL.Path] = body
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := reportingclient.New(reportingclient.Config{BaseURL: server.URL, Name: "test-sale"})
	require.NoError(t, err)
	saleAddress := ethcommon.HexToAddress("0x02")
	r := New(client, saleAddress)
	ctx := context.Background()

	err = r.ReportContribution(ctx, entity.Contribution{
		ID:           7,
		Sender:       ethcommon.HexToAddress("0xb1"),
		Amount:       uint128.From64(100),
		BonusPercent: 50,
		TotalTokens:  uint128.From64(105),
		CreatedAt:    time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	contribution := received["/v1/report/contribution"]
	require.NotNil(t, contribution)
	assert.Equal(t, "test-sale", contribution["name"])
	assert.Equal(t, saleAddress.Hex(), contribution["saleAddress"])
	assert.Equal(t, "105", contribution["totalTokens"])
	assert.EqualValues(t, 7, contribution["contributionId"])

	err = r.ReportFinalization(ctx, entity.Finalization{
		IssuedSupply:     uint128.From64(1000),
		FinalTotalSupply: uint128.From64(1333),
		FoundersTokens:   uint128.From64(266),
		BountyTokens:     uint128.From64(66),
	})
	require.NoError(t, err)
	finalization := received["/v1/report/finalization"]
	require.NotNil(t, finalization)
	assert.Equal(t, "1333", finalization["finalTotalSupply"])
}

func TestReporterRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := reportingclient.New(reportingclient.Config{BaseURL: server.URL, Name: "test-sale"})
	require.NoError(t, err)

	err = New(client, ethcommon.HexToAddress("0x02")).ReportFinalization(context.Background(), entity.Finalization{})
	assert.Error(t, err)
}
