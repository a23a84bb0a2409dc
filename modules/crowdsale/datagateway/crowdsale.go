package datagateway

import (
	"context"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/modules/crowdsale/internal/entity"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gaze-network/uint128"
)

type CrowdsaleDataGateway interface {
	CrowdsaleReaderDataGateway
	CrowdsaleWriterDataGateway

	// BeginCrowdsaleTx returns a new CrowdsaleDataGateway with transaction enabled. All write operations performed in this datagateway must be committed to persist changes.
	BeginCrowdsaleTx(ctx context.Context) (CrowdsaleDataGatewayWithTx, error)
}

type CrowdsaleDataGatewayWithTx interface {
	CrowdsaleDataGateway
	Tx
}

type CrowdsaleReaderDataGateway interface {
	// GetSaleConfig returns errs.NotFound if the sale has not been configured.
	GetSaleConfig(ctx context.Context) (*sale.SaleConfig, error)
	// GetSaleState returns errs.NotFound if the sale has not been configured.
	GetSaleState(ctx context.Context) (*sale.SaleState, error)
	// GetBonusTiers returns the bonus tiers in index order.
	GetBonusTiers(ctx context.Context) ([]sale.BonusTier, error)

	// GetTokenState returns errs.NotFound if the token has not been initialized.
	GetTokenState(ctx context.Context) (*entity.TokenState, error)
	// GetBalance returns the sale token balance of holder, zero if unknown.
	GetBalance(ctx context.Context, holder ethcommon.Address) (uint128.Uint128, error)
	// GetForeignBalance returns the balance of holder in a token other than the sale token, zero if unknown.
	GetForeignBalance(ctx context.Context, token ethcommon.Address, holder ethcommon.Address) (uint128.Uint128, error)

	// GetContributions returns contributions ordered by id. Use limit = -1 as no limit.
	GetContributions(ctx context.Context, limit int32, offset int32) ([]*entity.Contribution, error)
	// GetContributionsBySender returns contributions of sender ordered by id. Use limit = -1 as no limit.
	GetContributionsBySender(ctx context.Context, sender ethcommon.Address, limit int32, offset int32) ([]*entity.Contribution, error)
	// GetPayoutsByContributionId returns the payouts created by the given contribution.
	GetPayoutsByContributionId(ctx context.Context, contributionId uint64) ([]*entity.Payout, error)
	// GetFinalization returns errs.NotFound if the sale has not been finalized.
	GetFinalization(ctx context.Context) (*entity.Finalization, error)
}

type CrowdsaleWriterDataGateway interface {
	SetSaleConfig(ctx context.Context, config sale.SaleConfig) error
	SetSaleState(ctx context.Context, state sale.SaleState) error
	// SetBonusTiers replaces the whole bonus schedule.
	SetBonusTiers(ctx context.Context, tiers []sale.BonusTier) error

	SetTokenState(ctx context.Context, state entity.TokenState) error
	SetBalance(ctx context.Context, holder ethcommon.Address, amount uint128.Uint128) error
	SetForeignBalance(ctx context.Context, token ethcommon.Address, holder ethcommon.Address, amount uint128.Uint128) error

	// CreateContribution stores the contribution and returns its assigned id.
	CreateContribution(ctx context.Context, contribution entity.Contribution) (uint64, error)
	CreatePayout(ctx context.Context, payout entity.Payout) error
	CreateFinalization(ctx context.Context, finalization entity.Finalization) error
}
