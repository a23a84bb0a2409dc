package httphandler

import (
	"net/http"

	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/crowdsale/modules/crowdsale/ledger"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gaze-network/crowdsale/modules/crowdsale/usecase"
	"github.com/gaze-network/crowdsale/pkg/decimals"
	"github.com/gaze-network/crowdsale/pkg/middleware/requestcontext"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
)

type HttpHandler struct {
	usecase       *usecase.Usecase
	tokenDecimals uint8
}

func New(usecase *usecase.Usecase, tokenDecimals uint8) *HttpHandler {
	return &HttpHandler{
		usecase:       usecase,
		tokenDecimals: tokenDecimals,
	}
}

// amount is a token or fund amount in base units, with its decimal rendering for display.
type amount struct {
	Value   string `json:"value"`
	Display string `json:"display"`
}

func (h *HttpHandler) amount(v uint128.Uint128) amount {
	return amount{
		Value:   v.String(),
		Display: decimals.FromUint128(v, h.tokenDecimals).String(),
	}
}

func parseAddress(name string, value string) (ethcommon.Address, error) {
	if !ethcommon.IsHexAddress(value) {
		return ethcommon.Address{}, errs.NewPublicError("'" + name + "' is not a valid address")
	}
	return ethcommon.HexToAddress(value), nil
}

// parseAmount parses an amount in base units.
func parseAmount(name string, value string) (uint128.Uint128, error) {
	if value == "" {
		return uint128.Zero, errs.NewPublicError("'" + name + "' is required")
	}
	v, err := uint128.FromString(value)
	if err != nil {
		return uint128.Zero, errs.NewPublicError("'" + name + "' is not a valid amount")
	}
	return v, nil
}

// caller returns the account acting on the request. Requests without a caller are unauthorized.
func caller(ctx *fiber.Ctx) (ethcommon.Address, error) {
	c := requestcontext.GetCaller(ctx.UserContext())
	if c == "" {
		return ethcommon.Address{}, errs.WithPublicResponse(errors.WithStack(sale.ErrUnauthorized), "caller is required", "UNAUTHORIZED", http.StatusForbidden)
	}
	address, err := parseAddress("caller", c)
	if err != nil {
		return ethcommon.Address{}, errors.WithStack(err)
	}
	return address, nil
}

var publicErrors = []struct {
	err    error
	code   string
	status int
}{
	{sale.ErrUnauthorized, "UNAUTHORIZED", http.StatusForbidden},
	{sale.ErrIndexOutOfRange, "INDEX_OUT_OF_RANGE", http.StatusBadRequest},
	{sale.ErrEmptyCollection, "EMPTY_COLLECTION", http.StatusBadRequest},
	{sale.ErrInvalidAmount, "INVALID_AMOUNT", http.StatusBadRequest},
	{sale.ErrSalePaused, "SALE_PAUSED", http.StatusBadRequest},
	{sale.ErrSaleNotOpen, "SALE_NOT_OPEN", http.StatusBadRequest},
	{sale.ErrHardCapExceeded, "HARD_CAP_EXCEEDED", http.StatusBadRequest},
	{sale.ErrArithmeticOverflow, "ARITHMETIC_OVERFLOW", http.StatusBadRequest},
	{sale.ErrIssuanceFailed, "ISSUANCE_FAILED", http.StatusBadRequest},
	{sale.ErrAlreadyFinalized, "ALREADY_FINALIZED", http.StatusBadRequest},
	{sale.ErrInvalidConfiguration, "INVALID_CONFIGURATION", http.StatusBadRequest},
	{sale.ErrPayoutFailed, "PAYOUT_FAILED", http.StatusBadRequest},
	{sale.ErrOwnTokenRetrieval, "OWN_TOKEN_RETRIEVAL", http.StatusBadRequest},
	{ledger.ErrTransferNotAllowed, "TRANSFER_NOT_ALLOWED", http.StatusBadRequest},
	{ledger.ErrInsufficientBalance, "INSUFFICIENT_BALANCE", http.StatusBadRequest},
	{ledger.ErrZeroAddress, "ZERO_ADDRESS", http.StatusBadRequest},
	{ledger.ErrNotTokenOwner, "UNAUTHORIZED", http.StatusForbidden},
	{ledger.ErrMintingFinished, "MINTING_FINISHED", http.StatusBadRequest},
	{errs.NotFound, "NOT_FOUND", http.StatusNotFound},
	{errs.InvalidArgument, "INVALID_ARGUMENT", http.StatusBadRequest},
}

// publicError exposes known domain errors to the client. Other errors pass through unchanged.
func publicError(err error, op string) error {
	for _, e := range publicErrors {
		if errors.Is(err, e.err) {
			return errs.WithPublicResponse(errors.Wrap(err, op), e.err.Error(), e.code, e.status)
		}
	}
	return errors.Wrapf(err, "error during %s", op)
}
