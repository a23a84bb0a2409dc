package httphandler

import (
	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/common"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type bonusRequest struct {
	Limit        string `json:"limit"`
	BonusPercent uint64 `json:"bonusPercent"`
}

func (r bonusRequest) parse() (uint128.Uint128, error) {
	return parseAmount("limit", r.Limit)
}

type bonusesResponse = common.HttpResponse[[]bonusTier]

func (h *HttpHandler) respondBonuses(ctx *fiber.Ctx) error {
	tiers, err := h.usecase.GetBonusTiers(ctx.UserContext())
	if err != nil {
		return publicError(err, "GetBonusTiers")
	}
	return errors.WithStack(ctx.JSON(bonusesResponse{Result: lo.ToPtr(mapBonusTiers(tiers))}))
}

func bonusIndex(ctx *fiber.Ctx) (int, error) {
	index, err := ctx.ParamsInt("index", -1)
	if err != nil || index < 0 {
		return 0, errs.NewPublicError("'index' must be a non-negative integer")
	}
	return index, nil
}

// parseBonusRequest resolves the caller and the bonus tier from the request body.
func parseBonusRequest(ctx *fiber.Ctx) (ethcommon.Address, uint128.Uint128, uint64, error) {
	from, err := caller(ctx)
	if err != nil {
		return ethcommon.Address{}, uint128.Zero, 0, errors.WithStack(err)
	}
	var req bonusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ethcommon.Address{}, uint128.Zero, 0, errs.WithPublicMessage(err, "invalid request body")
	}
	limit, err := req.parse()
	if err != nil {
		return ethcommon.Address{}, uint128.Zero, 0, errors.WithStack(err)
	}
	return from, limit, req.BonusPercent, nil
}

func (h *HttpHandler) AddBonus(ctx *fiber.Ctx) error {
	from, limit, bonusPercent, err := parseBonusRequest(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := h.usecase.AddBonus(ctx.UserContext(), from, limit, bonusPercent); err != nil {
		return publicError(err, "AddBonus")
	}
	return h.respondBonuses(ctx)
}

func (h *HttpHandler) ChangeBonus(ctx *fiber.Ctx) error {
	index, err := bonusIndex(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	from, limit, bonusPercent, err := parseBonusRequest(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := h.usecase.ChangeBonus(ctx.UserContext(), from, index, limit, bonusPercent); err != nil {
		return publicError(err, "ChangeBonus")
	}
	return h.respondBonuses(ctx)
}

func (h *HttpHandler) InsertBonus(ctx *fiber.Ctx) error {
	index, err := bonusIndex(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	from, limit, bonusPercent, err := parseBonusRequest(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := h.usecase.InsertBonus(ctx.UserContext(), from, index, limit, bonusPercent); err != nil {
		return publicError(err, "InsertBonus")
	}
	return h.respondBonuses(ctx)
}

func (h *HttpHandler) RemoveBonus(ctx *fiber.Ctx) error {
	index, err := bonusIndex(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	from, err := caller(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := h.usecase.RemoveBonus(ctx.UserContext(), from, index); err != nil {
		return publicError(err, "RemoveBonus")
	}
	return h.respondBonuses(ctx)
}

func (h *HttpHandler) ClearBonuses(ctx *fiber.Ctx) error {
	from, err := caller(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := h.usecase.ClearBonuses(ctx.UserContext(), from); err != nil {
		return publicError(err, "ClearBonuses")
	}
	return h.respondBonuses(ctx)
}
