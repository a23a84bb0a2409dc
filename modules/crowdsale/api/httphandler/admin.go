package httphandler

import (
	"context"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/common"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type setValueRequest struct {
	Value string `json:"value"`
}

type setValueResponse = common.HttpResponse[saleConfig]

// setConfigValue parses the request value, applies set as the caller and responds with the updated config.
func setConfigValue[T any](h *HttpHandler, ctx *fiber.Ctx, op string, parse func(string) (T, error), set func(context.Context, ethcommon.Address, T) error) error {
	from, err := caller(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	var req setValueRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}
	value, err := parse(req.Value)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := set(ctx.UserContext(), from, value); err != nil {
		return publicError(err, op)
	}
	info, err := h.usecase.GetSaleInfo(ctx.UserContext())
	if err != nil {
		return publicError(err, "GetSaleInfo")
	}
	return errors.WithStack(ctx.JSON(setValueResponse{Result: lo.ToPtr(mapSaleConfig(info.Config))}))
}

// parseTime accepts RFC 3339 or unix seconds.
func parseTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	seconds, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, errs.NewPublicError("'value' must be an RFC 3339 time or unix seconds")
	}
	return time.Unix(seconds, 0).UTC(), nil
}

func parseUint64(value string) (uint64, error) {
	v, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errs.NewPublicError("'value' must be a non-negative integer")
	}
	return v, nil
}

func parseAmountValue(value string) (uint128.Uint128, error) {
	return parseAmount("value", value)
}

func parseAddressValue(value string) (ethcommon.Address, error) {
	return parseAddress("value", value)
}

func (h *HttpHandler) SetStart(ctx *fiber.Ctx) error {
	return setConfigValue(h, ctx, "SetStart", parseTime, h.usecase.SetStart)
}

func (h *HttpHandler) SetPeriodDays(ctx *fiber.Ctx) error {
	return setConfigValue(h, ctx, "SetPeriodDays", parseUint64, h.usecase.SetPeriodDays)
}

func (h *HttpHandler) SetHardCap(ctx *fiber.Ctx) error {
	return setConfigValue(h, ctx, "SetHardCap", parseAmountValue, h.usecase.SetHardCap)
}

func (h *HttpHandler) SetPrice(ctx *fiber.Ctx) error {
	return setConfigValue(h, ctx, "SetPrice", parseAmountValue, h.usecase.SetPrice)
}

func (h *HttpHandler) SetSecondWalletPercent(ctx *fiber.Ctx) error {
	return setConfigValue(h, ctx, "SetSecondWalletPercent", parseUint64, h.usecase.SetSecondWalletPercent)
}

func (h *HttpHandler) SetFoundersTokensPercent(ctx *fiber.Ctx) error {
	return setConfigValue(h, ctx, "SetFoundersTokensPercent", parseUint64, h.usecase.SetFoundersTokensPercent)
}

func (h *HttpHandler) SetBountyTokensPercent(ctx *fiber.Ctx) error {
	return setConfigValue(h, ctx, "SetBountyTokensPercent", parseUint64, h.usecase.SetBountyTokensPercent)
}

func (h *HttpHandler) SetSecondWallet(ctx *fiber.Ctx) error {
	return setConfigValue(h, ctx, "SetSecondWallet", parseAddressValue, h.usecase.SetSecondWallet)
}

func (h *HttpHandler) SetMultisigWallet(ctx *fiber.Ctx) error {
	return setConfigValue(h, ctx, "SetMultisigWallet", parseAddressValue, h.usecase.SetMultisigWallet)
}

func (h *HttpHandler) SetFoundersTokensWallet(ctx *fiber.Ctx) error {
	return setConfigValue(h, ctx, "SetFoundersTokensWallet", parseAddressValue, h.usecase.SetFoundersTokensWallet)
}

func (h *HttpHandler) SetBountyTokensWallet(ctx *fiber.Ctx) error {
	return setConfigValue(h, ctx, "SetBountyTokensWallet", parseAddressValue, h.usecase.SetBountyTokensWallet)
}
