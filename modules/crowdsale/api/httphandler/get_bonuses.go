package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/crowdsale/common"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type bonusTier struct {
	Index        int    `json:"index"`
	Limit        string `json:"limit"`
	BonusPercent uint64 `json:"bonusPercent"`
}

func mapBonusTiers(tiers []sale.BonusTier) []bonusTier {
	return lo.Map(tiers, func(item sale.BonusTier, index int) bonusTier {
		return bonusTier{
			Index:        index,
			Limit:        item.Limit.String(),
			BonusPercent: item.BonusPercent,
		}
	})
}

type getBonusesResponse = common.HttpResponse[[]bonusTier]

func (h *HttpHandler) GetBonuses(ctx *fiber.Ctx) (err error) {
	tiers, err := h.usecase.GetBonusTiers(ctx.UserContext())
	if err != nil {
		return publicError(err, "GetBonusTiers")
	}
	return errors.WithStack(ctx.JSON(getBonusesResponse{Result: lo.ToPtr(mapBonusTiers(tiers))}))
}
