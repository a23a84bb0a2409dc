package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/crowdsale/common"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type getQuoteRequest struct {
	Amount string `query:"amount"`
}

type getQuoteResult struct {
	Amount       string `json:"amount"`
	BonusPercent uint64 `json:"bonusPercent"`
	BaseTokens   amount `json:"baseTokens"`
	BonusTokens  amount `json:"bonusTokens"`
	TotalTokens  amount `json:"totalTokens"`
}

type getQuoteResponse = common.HttpResponse[getQuoteResult]

func (h *HttpHandler) GetQuote(ctx *fiber.Ctx) (err error) {
	var req getQuoteRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	value, err := parseAmount("amount", req.Amount)
	if err != nil {
		return errors.WithStack(err)
	}

	issuance, err := h.usecase.Quote(ctx.UserContext(), value)
	if err != nil {
		return publicError(err, "Quote")
	}

	return errors.WithStack(ctx.JSON(getQuoteResponse{
		Result: lo.ToPtr(getQuoteResult{
			Amount:       value.String(),
			BonusPercent: issuance.BonusPercent,
			BaseTokens:   h.amount(issuance.BaseTokens),
			BonusTokens:  h.amount(issuance.BonusTokens),
			TotalTokens:  h.amount(issuance.TotalTokens),
		}),
	}))
}
