package httphandler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	crowdsaleleveldb "github.com/gaze-network/crowdsale/modules/crowdsale/repository/leveldb"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gaze-network/crowdsale/modules/crowdsale/usecase"
	"github.com/gaze-network/crowdsale/pkg/errorhandler"
	"github.com/gaze-network/crowdsale/pkg/middleware/requestcontext"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner        = ethcommon.HexToAddress("0x0000000000000000000000000000000000000001")
	saleAddress  = ethcommon.HexToAddress("0x0000000000000000000000000000000000000002")
	tokenAddress = ethcommon.HexToAddress("0x0000000000000000000000000000000000000003")
	alice        = ethcommon.HexToAddress("0x00000000000000000000000000000000000000b1")
	saleStart    = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := crowdsaleleveldb.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	u := usecase.New(crowdsaleleveldb.NewRepository(db), usecase.Identity{
		Owner:        owner,
		SaleAddress:  saleAddress,
		TokenAddress: tokenAddress,
		OneTokenUnit: uint128.From64(1),
	}, usecase.WithClock(func() time.Time { return saleStart.Add(24 * time.Hour) }))

	_, err = u.Bootstrap(context.Background(), usecase.Seed{
		Config: sale.SaleConfig{
			Start:                 saleStart,
			PeriodDays:            30,
			HardCap:               uint128.From64(10_000),
			Price:                 uint128.From64(1),
			PercentRate:           1000,
			SecondWalletPercent:   150,
			FoundersTokensPercent: 200,
			BountyTokensPercent:   50,
			SecondWallet:          ethcommon.HexToAddress("0xa1"),
			MultisigWallet:        ethcommon.HexToAddress("0xa2"),
			FoundersTokensWallet:  ethcommon.HexToAddress("0xa3"),
			BountyTokensWallet:    ethcommon.HexToAddress("0xa4"),
		},
		BonusTiers: []sale.BonusTier{
			{Limit: uint128.From64(1000), BonusPercent: 50},
			{Limit: uint128.From64(100), BonusPercent: 100},
		},
	})
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: errorhandler.NewHTTPErrorHandler()})
	app.Use(requestcontext.New(requestcontext.WithCaller("")))
	require.NoError(t, New(u, 0).Mount(app))
	return app
}

type response struct {
	Error  *string         `json:"error"`
	Code   string          `json:"code"`
	Result json.RawMessage `json:"result"`
}

func do(t *testing.T, app *fiber.App, method, path string, caller *ethcommon.Address, body string) (int, response) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if caller != nil {
		req.Header.Set(requestcontext.DefaultCallerHeader, caller.Hex())
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

func TestContributionFlow(t *testing.T) {
	app := newTestApp(t)

	status, resp := do(t, app, http.MethodPost, "/v1/crowdsale/contributions", nil,
		`{"sender":"`+alice.Hex()+`","amount":"100"}`)
	require.Equal(t, http.StatusCreated, status)
	var c contribution
	require.NoError(t, json.Unmarshal(resp.Result, &c))
	assert.Equal(t, uint64(50), c.BonusPercent)
	assert.Equal(t, "105", c.TotalTokens.Value)
	assert.Equal(t, "15", c.SecondShare)
	assert.Equal(t, "85", c.PrimaryShare)

	status, resp = do(t, app, http.MethodGet, "/v1/crowdsale/balances/"+alice.Hex(), nil, "")
	require.Equal(t, http.StatusOK, status)
	var balance getBalanceResult
	require.NoError(t, json.Unmarshal(resp.Result, &balance))
	assert.Equal(t, "105", balance.Balance.Value)

	status, resp = do(t, app, http.MethodGet, "/v1/crowdsale/contributions/"+alice.Hex(), nil, "")
	require.Equal(t, http.StatusOK, status)
	var history []contribution
	require.NoError(t, json.Unmarshal(resp.Result, &history))
	require.Len(t, history, 1)

	status, resp = do(t, app, http.MethodGet, "/v1/crowdsale/info", nil, "")
	require.Equal(t, http.StatusOK, status)
	var info getSaleInfoResult
	require.NoError(t, json.Unmarshal(resp.Result, &info))
	assert.Equal(t, "100", info.State.Invested)
	assert.True(t, info.State.IsOpen)
	assert.Equal(t, "105", info.Token.TotalSupply.Value)
}

func TestQuote(t *testing.T) {
	app := newTestApp(t)

	status, resp := do(t, app, http.MethodGet, "/v1/crowdsale/quote?amount=10", nil, "")
	require.Equal(t, http.StatusOK, status)
	var quote getQuoteResult
	require.NoError(t, json.Unmarshal(resp.Result, &quote))
	assert.Equal(t, uint64(100), quote.BonusPercent)
	assert.Equal(t, "11", quote.TotalTokens.Value)

	status, _ = do(t, app, http.MethodGet, "/v1/crowdsale/quote", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestErrors(t *testing.T) {
	app := newTestApp(t)
	stranger := alice

	testCases := []struct {
		name   string
		method string
		path   string
		caller *ethcommon.Address
		body   string
		status int
		code   string
	}{
		{"invalid amount", http.MethodPost, "/v1/crowdsale/contributions", nil, `{"sender":"` + alice.Hex() + `","amount":"abc"}`, http.StatusBadRequest, ""},
		{"zero amount", http.MethodPost, "/v1/crowdsale/contributions", nil, `{"sender":"` + alice.Hex() + `","amount":"0"}`, http.StatusBadRequest, "INVALID_AMOUNT"},
		{"missing caller", http.MethodPut, "/v1/crowdsale/admin/hard-cap", nil, `{"value":"5"}`, http.StatusForbidden, "UNAUTHORIZED"},
		{"not owner", http.MethodPut, "/v1/crowdsale/admin/hard-cap", &stranger, `{"value":"5"}`, http.StatusForbidden, "UNAUTHORIZED"},
		{"bonus index out of range", http.MethodDelete, "/v1/crowdsale/admin/bonuses/5", &owner, "", http.StatusBadRequest, "INDEX_OUT_OF_RANGE"},
		{"own token retrieval", http.MethodPost, "/v1/crowdsale/admin/retrieve-tokens", &owner, `{"token":"` + tokenAddress.Hex() + `"}`, http.StatusBadRequest, "OWN_TOKEN_RETRIEVAL"},
		{"transfer not allowed", http.MethodPost, "/v1/crowdsale/token/transfer", &stranger, `{"to":"` + owner.Hex() + `","amount":"0"}`, http.StatusBadRequest, "TRANSFER_NOT_ALLOWED"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := do(t, app, tc.method, tc.path, tc.caller, tc.body)
			assert.Equal(t, tc.status, status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.code, resp.Code)
		})
	}
}

func TestAdmin(t *testing.T) {
	app := newTestApp(t)

	status, resp := do(t, app, http.MethodPut, "/v1/crowdsale/admin/hard-cap", &owner, `{"value":"500"}`)
	require.Equal(t, http.StatusOK, status)
	var config saleConfig
	require.NoError(t, json.Unmarshal(resp.Result, &config))
	assert.Equal(t, "500", config.HardCap)

	status, resp = do(t, app, http.MethodPut, "/v1/crowdsale/admin/start", &owner, `{"value":"2024-02-01T00:00:00Z"}`)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Result, &config))
	assert.True(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).Equal(config.Start))

	status, resp = do(t, app, http.MethodPost, "/v1/crowdsale/admin/bonuses/0/insert", &owner, `{"limit":"500","bonusPercent":70}`)
	require.Equal(t, http.StatusOK, status)
	var tiers []bonusTier
	require.NoError(t, json.Unmarshal(resp.Result, &tiers))
	require.Len(t, tiers, 3)
	assert.Equal(t, "500", tiers[1].Limit)

	status, _ = do(t, app, http.MethodDelete, "/v1/crowdsale/admin/bonuses", &owner, "")
	require.Equal(t, http.StatusOK, status)
	status, resp = do(t, app, http.MethodDelete, "/v1/crowdsale/admin/bonuses", &owner, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "EMPTY_COLLECTION", resp.Code)
}

func TestFinalize(t *testing.T) {
	app := newTestApp(t)

	status, _ := do(t, app, http.MethodPost, "/v1/crowdsale/admin/pause", &owner, "")
	require.Equal(t, http.StatusOK, status)
	status, resp := do(t, app, http.MethodPost, "/v1/crowdsale/admin/finalize", &owner, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "SALE_PAUSED", resp.Code)

	status, _ = do(t, app, http.MethodPost, "/v1/crowdsale/admin/unpause", &owner, "")
	require.Equal(t, http.StatusOK, status)
	status, resp = do(t, app, http.MethodPost, "/v1/crowdsale/admin/finalize", &owner, "")
	require.Equal(t, http.StatusOK, status)
	var f finalization
	require.NoError(t, json.Unmarshal(resp.Result, &f))
	assert.Equal(t, owner.Hex(), f.FinalizedBy)

	status, resp = do(t, app, http.MethodPost, "/v1/crowdsale/admin/finalize", &owner, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "ALREADY_FINALIZED", resp.Code)
}

func TestForeignTokens(t *testing.T) {
	app := newTestApp(t)
	foreign := ethcommon.HexToAddress("0x00000000000000000000000000000000000000c1")

	status, _ := do(t, app, http.MethodPost, "/v1/crowdsale/admin/foreign-tokens/credit", &owner, `{"token":"`+foreign.Hex()+`","amount":"40"}`)
	require.Equal(t, http.StatusOK, status)

	status, resp := do(t, app, http.MethodPost, "/v1/crowdsale/admin/retrieve-tokens", &owner, `{"token":"`+foreign.Hex()+`"}`)
	require.Equal(t, http.StatusOK, status)
	var retrieved retrieveTokensResult
	require.NoError(t, json.Unmarshal(resp.Result, &retrieved))
	assert.Equal(t, "40", retrieved.Amount)

	multisig := ethcommon.HexToAddress("0xa2")
	status, resp = do(t, app, http.MethodGet, "/v1/crowdsale/foreign-tokens/"+foreign.Hex()+"/balances/"+multisig.Hex(), nil, "")
	require.Equal(t, http.StatusOK, status)
	var balance getForeignBalanceResult
	require.NoError(t, json.Unmarshal(resp.Result, &balance))
	assert.Equal(t, "40", balance.Balance)
}
