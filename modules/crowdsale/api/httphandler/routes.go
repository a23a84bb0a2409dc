package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1/crowdsale")

	r.Get("/info", h.GetSaleInfo)
	r.Get("/bonuses", h.GetBonuses)
	r.Get("/quote", h.GetQuote)
	r.Get("/balances/:address", h.GetBalance)
	r.Get("/contributions", h.GetContributions)
	r.Get("/contributions/:address", h.GetContributionsBySender)
	r.Get("/contributions/id/:id/payouts", h.GetContributionPayouts)
	r.Get("/foreign-tokens/:token/balances/:address", h.GetForeignBalance)
	r.Post("/contributions", h.CreateContribution)
	r.Post("/token/transfer", h.TransferTokens)

	admin := r.Group("/admin")
	admin.Put("/start", h.SetStart)
	admin.Put("/period-days", h.SetPeriodDays)
	admin.Put("/hard-cap", h.SetHardCap)
	admin.Put("/price", h.SetPrice)
	admin.Put("/second-wallet-percent", h.SetSecondWalletPercent)
	admin.Put("/founders-tokens-percent", h.SetFoundersTokensPercent)
	admin.Put("/bounty-tokens-percent", h.SetBountyTokensPercent)
	admin.Put("/second-wallet", h.SetSecondWallet)
	admin.Put("/multisig-wallet", h.SetMultisigWallet)
	admin.Put("/founders-tokens-wallet", h.SetFoundersTokensWallet)
	admin.Put("/bounty-tokens-wallet", h.SetBountyTokensWallet)

	admin.Post("/bonuses", h.AddBonus)
	admin.Put("/bonuses/:index", h.ChangeBonus)
	admin.Post("/bonuses/:index/insert", h.InsertBonus)
	admin.Delete("/bonuses/:index", h.RemoveBonus)
	admin.Delete("/bonuses", h.ClearBonuses)

	admin.Post("/pause", h.Pause)
	admin.Post("/unpause", h.Unpause)
	admin.Post("/allow-transfer", h.AllowTransfer)
	admin.Post("/finalize", h.Finalize)
	admin.Post("/retrieve-tokens", h.RetrieveTokens)
	admin.Post("/foreign-tokens/credit", h.CreditForeignTokens)
	return nil
}
