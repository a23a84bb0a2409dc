package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/crowdsale/common"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/crowdsale/modules/crowdsale/internal/entity"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 1000
)

type contribution struct {
	Id           uint64    `json:"id"`
	Sender       string    `json:"sender"`
	Amount       string    `json:"amount"`
	BonusPercent uint64    `json:"bonusPercent"`
	BaseTokens   amount    `json:"baseTokens"`
	BonusTokens  amount    `json:"bonusTokens"`
	TotalTokens  amount    `json:"totalTokens"`
	SecondShare  string    `json:"secondShare"`
	PrimaryShare string    `json:"primaryShare"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (h *HttpHandler) mapContribution(c *entity.Contribution) contribution {
	return contribution{
		Id:           c.ID,
		Sender:       c.Sender.Hex(),
		Amount:       c.Amount.String(),
		BonusPercent: c.BonusPercent,
		BaseTokens:   h.amount(c.BaseTokens),
		BonusTokens:  h.amount(c.BonusTokens),
		TotalTokens:  h.amount(c.TotalTokens),
		SecondShare:  c.SecondShare.String(),
		PrimaryShare: c.PrimaryShare.String(),
		CreatedAt:    c.CreatedAt,
	}
}

func (h *HttpHandler) mapContributions(items []*entity.Contribution) []contribution {
	return lo.Map(items, func(item *entity.Contribution, _ int) contribution {
		return h.mapContribution(item)
	})
}

type paginationRequest struct {
	Limit  int32 `query:"limit"`
	Offset int32 `query:"offset"`
}

func (r *paginationRequest) Validate() error {
	var errList []error
	if r.Limit < 0 || r.Limit > maxPageLimit {
		errList = append(errList, errors.Errorf("'limit' must not exceed %d", maxPageLimit))
	}
	if r.Offset < 0 {
		errList = append(errList, errors.New("'offset' must not be negative"))
	}
	if r.Limit == 0 {
		r.Limit = defaultPageLimit
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getContributionsResponse = common.HttpResponse[[]contribution]

func (h *HttpHandler) GetContributions(ctx *fiber.Ctx) (err error) {
	var req paginationRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	contributions, err := h.usecase.GetContributions(ctx.UserContext(), req.Limit, req.Offset)
	if err != nil {
		return publicError(err, "GetContributions")
	}
	return errors.WithStack(ctx.JSON(getContributionsResponse{Result: lo.ToPtr(h.mapContributions(contributions))}))
}

type getContributionsBySenderRequest struct {
	paginationRequest
	Address string `params:"address"`
}

func (h *HttpHandler) GetContributionsBySender(ctx *fiber.Ctx) (err error) {
	var req getContributionsBySenderRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := ctx.QueryParser(&req.paginationRequest); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	sender, err := parseAddress("address", req.Address)
	if err != nil {
		return errors.WithStack(err)
	}

	contributions, err := h.usecase.GetContributionsBySender(ctx.UserContext(), sender, req.Limit, req.Offset)
	if err != nil {
		return publicError(err, "GetContributionsBySender")
	}
	return errors.WithStack(ctx.JSON(getContributionsResponse{Result: lo.ToPtr(h.mapContributions(contributions))}))
}

type payout struct {
	Id     uint64    `json:"id"`
	Kind   string    `json:"kind"`
	Wallet string    `json:"wallet"`
	Amount string    `json:"amount"`
	At     time.Time `json:"createdAt"`
}

type getContributionPayoutsResponse = common.HttpResponse[[]payout]

func (h *HttpHandler) GetContributionPayouts(ctx *fiber.Ctx) (err error) {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return errs.NewPublicError("'id' must be a positive integer")
	}

	payouts, err := h.usecase.GetContributionPayouts(ctx.UserContext(), uint64(id))
	if err != nil {
		return publicError(err, "GetContributionPayouts")
	}
	result := lo.Map(payouts, func(item *entity.Payout, _ int) payout {
		return payout{
			Id:     item.ID,
			Kind:   string(item.Kind),
			Wallet: item.Wallet.Hex(),
			Amount: item.Amount.String(),
			At:     item.CreatedAt,
		}
	})
	return errors.WithStack(ctx.JSON(getContributionPayoutsResponse{Result: lo.ToPtr(result)}))
}

type createContributionRequest struct {
	Sender string `json:"sender"`
	Amount string `json:"amount"`
}

type createContributionResponse = common.HttpResponse[contribution]

func (h *HttpHandler) CreateContribution(ctx *fiber.Ctx) (err error) {
	var req createContributionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}
	sender, err := parseAddress("sender", req.Sender)
	if err != nil {
		return errors.WithStack(err)
	}
	value, err := parseAmount("amount", req.Amount)
	if err != nil {
		return errors.WithStack(err)
	}

	c, err := h.usecase.ProcessContribution(ctx.UserContext(), sender, value)
	if err != nil {
		return publicError(err, "ProcessContribution")
	}
	return errors.WithStack(ctx.Status(fiber.StatusCreated).JSON(createContributionResponse{Result: lo.ToPtr(h.mapContribution(c))}))
}

type transferTokensRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type transferTokensResult struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount amount `json:"amount"`
}

type transferTokensResponse = common.HttpResponse[transferTokensResult]

func (h *HttpHandler) TransferTokens(ctx *fiber.Ctx) (err error) {
	from, err := caller(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	var req transferTokensRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}
	to, err := parseAddress("to", req.To)
	if err != nil {
		return errors.WithStack(err)
	}
	value, err := parseAmount("amount", req.Amount)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.TransferTokens(ctx.UserContext(), from, to, value); err != nil {
		return publicError(err, "TransferTokens")
	}
	return errors.WithStack(ctx.JSON(transferTokensResponse{
		Result: lo.ToPtr(transferTokensResult{
			From:   from.Hex(),
			To:     to.Hex(),
			Amount: h.amount(value),
		}),
	}))
}
