package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/crowdsale/common"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type getBalanceRequest struct {
	Address string `params:"address"`
}

type getBalanceResult struct {
	Address string `json:"address"`
	Balance amount `json:"balance"`
}

type getBalanceResponse = common.HttpResponse[getBalanceResult]

func (h *HttpHandler) GetBalance(ctx *fiber.Ctx) (err error) {
	var req getBalanceRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	holder, err := parseAddress("address", req.Address)
	if err != nil {
		return errors.WithStack(err)
	}

	balance, err := h.usecase.GetBalance(ctx.UserContext(), holder)
	if err != nil {
		return publicError(err, "GetBalance")
	}

	return errors.WithStack(ctx.JSON(getBalanceResponse{
		Result: lo.ToPtr(getBalanceResult{
			Address: holder.Hex(),
			Balance: h.amount(balance),
		}),
	}))
}

type getForeignBalanceRequest struct {
	Token   string `params:"token"`
	Address string `params:"address"`
}

type getForeignBalanceResult struct {
	Token   string `json:"token"`
	Address string `json:"address"`
	Balance string `json:"balance"`
}

type getForeignBalanceResponse = common.HttpResponse[getForeignBalanceResult]

func (h *HttpHandler) GetForeignBalance(ctx *fiber.Ctx) (err error) {
	var req getForeignBalanceRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	tokenAddress, err := parseAddress("token", req.Token)
	if err != nil {
		return errors.WithStack(err)
	}
	holder, err := parseAddress("address", req.Address)
	if err != nil {
		return errors.WithStack(err)
	}

	balance, err := h.usecase.GetForeignBalance(ctx.UserContext(), tokenAddress, holder)
	if err != nil {
		return publicError(err, "GetForeignBalance")
	}

	// foreign token decimals are unknown, so only base units are returned
	return errors.WithStack(ctx.JSON(getForeignBalanceResponse{
		Result: lo.ToPtr(getForeignBalanceResult{
			Token:   tokenAddress.Hex(),
			Address: holder.Hex(),
			Balance: balance.String(),
		}),
	}))
}
