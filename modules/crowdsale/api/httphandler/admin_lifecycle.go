package httphandler

import (
	"context"

	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/common"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type okResult struct {
	Ok bool `json:"ok"`
}

type okResponse = common.HttpResponse[okResult]

func (h *HttpHandler) callerAction(ctx *fiber.Ctx, op string, action func(context.Context, ethcommon.Address) error) error {
	from, err := caller(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := action(ctx.UserContext(), from); err != nil {
		return publicError(err, op)
	}
	return errors.WithStack(ctx.JSON(okResponse{Result: lo.ToPtr(okResult{Ok: true})}))
}

func (h *HttpHandler) Pause(ctx *fiber.Ctx) error {
	return h.callerAction(ctx, "Pause", h.usecase.Pause)
}

func (h *HttpHandler) Unpause(ctx *fiber.Ctx) error {
	return h.callerAction(ctx, "Unpause", h.usecase.Unpause)
}

func (h *HttpHandler) AllowTransfer(ctx *fiber.Ctx) error {
	return h.callerAction(ctx, "AllowTransfer", h.usecase.AllowTransfer)
}

type finalizeResponse = common.HttpResponse[finalization]

func (h *HttpHandler) Finalize(ctx *fiber.Ctx) error {
	from, err := caller(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	f, err := h.usecase.Finalize(ctx.UserContext(), from)
	if err != nil {
		return publicError(err, "Finalize")
	}
	return errors.WithStack(ctx.JSON(finalizeResponse{
		Result: lo.ToPtr(finalization{
			IssuedSupply:     h.amount(f.IssuedSupply),
			ExtraTokens:      h.amount(f.ExtraTokens),
			FinalTotalSupply: h.amount(f.FinalTotalSupply),
			FoundersTokens:   h.amount(f.FoundersTokens),
			BountyTokens:     h.amount(f.BountyTokens),
			FinalizedBy:      f.FinalizedBy.Hex(),
			FinalizedAt:      f.FinalizedAt,
		}),
	}))
}

type retrieveTokensRequest struct {
	Token string `json:"token"`
}

type retrieveTokensResult struct {
	Token  string `json:"token"`
	Amount string `json:"amount"`
}

type retrieveTokensResponse = common.HttpResponse[retrieveTokensResult]

func (h *HttpHandler) RetrieveTokens(ctx *fiber.Ctx) error {
	from, err := caller(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	var req retrieveTokensRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}
	tokenAddress, err := parseAddress("token", req.Token)
	if err != nil {
		return errors.WithStack(err)
	}

	retrieved, err := h.usecase.RetrieveTokens(ctx.UserContext(), from, tokenAddress)
	if err != nil {
		return publicError(err, "RetrieveTokens")
	}
	return errors.WithStack(ctx.JSON(retrieveTokensResponse{
		Result: lo.ToPtr(retrieveTokensResult{
			Token:  tokenAddress.Hex(),
			Amount: retrieved.String(),
		}),
	}))
}

type creditForeignTokensRequest struct {
	Token  string `json:"token"`
	Holder string `json:"holder"`
	Amount string `json:"amount"`
}

func (h *HttpHandler) CreditForeignTokens(ctx *fiber.Ctx) error {
	from, err := caller(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	var req creditForeignTokensRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}
	tokenAddress, err := parseAddress("token", req.Token)
	if err != nil {
		return errors.WithStack(err)
	}
	holder := h.usecase.Identity().SaleAddress
	if req.Holder != "" {
		if holder, err = parseAddress("holder", req.Holder); err != nil {
			return errors.WithStack(err)
		}
	}
	value, err := parseAmount("amount", req.Amount)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.CreditForeignTokens(ctx.UserContext(), from, tokenAddress, holder, value); err != nil {
		return publicError(err, "CreditForeignTokens")
	}
	return errors.WithStack(ctx.JSON(okResponse{Result: lo.ToPtr(okResult{Ok: true})}))
}
