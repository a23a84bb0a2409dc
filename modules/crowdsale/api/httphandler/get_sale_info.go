package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/crowdsale/common"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type saleConfig struct {
	Start                 time.Time `json:"start"`
	End                   time.Time `json:"end"`
	PeriodDays            uint64    `json:"periodDays"`
	HardCap               string    `json:"hardCap"`
	Price                 string    `json:"price"`
	PercentRate           uint64    `json:"percentRate"`
	SecondWalletPercent   uint64    `json:"secondWalletPercent"`
	FoundersTokensPercent uint64    `json:"foundersTokensPercent"`
	BountyTokensPercent   uint64    `json:"bountyTokensPercent"`
	SecondWallet          string    `json:"secondWallet"`
	MultisigWallet        string    `json:"multisigWallet"`
	FoundersTokensWallet  string    `json:"foundersTokensWallet"`
	BountyTokensWallet    string    `json:"bountyTokensWallet"`
}

type saleState struct {
	Invested        string `json:"invested"`
	Paused          bool   `json:"paused"`
	MintingFinished bool   `json:"mintingFinished"`
	IsOpen          bool   `json:"isOpen"`
	IsUnderCap      bool   `json:"isUnderCap"`
}

type token struct {
	Address         string `json:"address"`
	Decimals        uint8  `json:"decimals"`
	TotalSupply     amount `json:"totalSupply"`
	TransferAllowed bool   `json:"transferAllowed"`
}

type finalization struct {
	IssuedSupply     amount    `json:"issuedSupply"`
	ExtraTokens      amount    `json:"extraTokens"`
	FinalTotalSupply amount    `json:"finalTotalSupply"`
	FoundersTokens   amount    `json:"foundersTokens"`
	BountyTokens     amount    `json:"bountyTokens"`
	FinalizedBy      string    `json:"finalizedBy"`
	FinalizedAt      time.Time `json:"finalizedAt"`
}

type getSaleInfoResult struct {
	Owner        string        `json:"owner"`
	SaleAddress  string        `json:"saleAddress"`
	Config       saleConfig    `json:"config"`
	State        saleState     `json:"state"`
	Token        token         `json:"token"`
	Bonuses      []bonusTier   `json:"bonuses"`
	Finalization *finalization `json:"finalization,omitempty"`
}

type getSaleInfoResponse = common.HttpResponse[getSaleInfoResult]

func mapSaleConfig(c sale.SaleConfig) saleConfig {
	return saleConfig{
		Start:                 c.Start,
		End:                   c.End(),
		PeriodDays:            c.PeriodDays,
		HardCap:               c.HardCap.String(),
		Price:                 c.Price.String(),
		PercentRate:           c.PercentRate,
		SecondWalletPercent:   c.SecondWalletPercent,
		FoundersTokensPercent: c.FoundersTokensPercent,
		BountyTokensPercent:   c.BountyTokensPercent,
		SecondWallet:          c.SecondWallet.Hex(),
		MultisigWallet:        c.MultisigWallet.Hex(),
		FoundersTokensWallet:  c.FoundersTokensWallet.Hex(),
		BountyTokensWallet:    c.BountyTokensWallet.Hex(),
	}
}

func (h *HttpHandler) GetSaleInfo(ctx *fiber.Ctx) (err error) {
	info, err := h.usecase.GetSaleInfo(ctx.UserContext())
	if err != nil {
		return publicError(err, "GetSaleInfo")
	}
	identity := h.usecase.Identity()

	result := getSaleInfoResult{
		Owner:       identity.Owner.Hex(),
		SaleAddress: identity.SaleAddress.Hex(),
		Config:      mapSaleConfig(info.Config),
		State: saleState{
			Invested:        info.State.Invested.String(),
			Paused:          info.State.Paused,
			MintingFinished: info.State.MintingFinished,
			IsOpen:          info.IsOpen,
			IsUnderCap:      info.IsUnderCap,
		},
		Token: token{
			Address:         identity.TokenAddress.Hex(),
			Decimals:        h.tokenDecimals,
			TotalSupply:     h.amount(info.TotalSupply),
			TransferAllowed: info.TransferAllowed,
		},
		Bonuses: mapBonusTiers(info.BonusTiers),
	}
	if f := info.Finalization; f != nil {
		result.Finalization = &finalization{
			IssuedSupply:     h.amount(f.IssuedSupply),
			ExtraTokens:      h.amount(f.ExtraTokens),
			FinalTotalSupply: h.amount(f.FinalTotalSupply),
			FoundersTokens:   h.amount(f.FoundersTokens),
			BountyTokens:     h.amount(f.BountyTokens),
			FinalizedBy:      f.FinalizedBy.Hex(),
			FinalizedAt:      f.FinalizedAt,
		}
	}

	return errors.WithStack(ctx.JSON(getSaleInfoResponse{Result: lo.ToPtr(result)}))
}
