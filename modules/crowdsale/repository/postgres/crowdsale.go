package postgres

import (
	"context"
	"math"

	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/crowdsale/modules/crowdsale/internal/entity"
	"github.com/gaze-network/crowdsale/modules/crowdsale/repository/postgres/gen"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gaze-network/uint128"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// limitOrAll maps the -1 "no limit" convention to a value Postgres accepts.
func limitOrAll(limit int32) int32 {
	if limit < 0 {
		return math.MaxInt32
	}
	return limit
}

func notFound(err error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errors.Wrap(errs.NotFound, msg)
	}
	return errors.Wrap(err, msg)
}

func (r *Repository) GetSaleConfig(ctx context.Context) (*sale.SaleConfig, error) {
	model, err := r.queries.GetSaleConfig(ctx)
	if err != nil {
		return nil, notFound(err, "error during query")
	}
	config, err := mapSaleConfigModelToType(model)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse sale config model")
	}
	return &config, nil
}

func (r *Repository) GetSaleState(ctx context.Context) (*sale.SaleState, error) {
	model, err := r.queries.GetSaleState(ctx)
	if err != nil {
		return nil, notFound(err, "error during query")
	}
	state, err := mapSaleStateModelToType(model)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse sale state model")
	}
	return &state, nil
}

func (r *Repository) GetBonusTiers(ctx context.Context) ([]sale.BonusTier, error) {
	models, err := r.queries.GetBonusTiers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	tiers, err := mapBonusTierModelsToTypes(models)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse bonus tier models")
	}
	return tiers, nil
}

func (r *Repository) GetTokenState(ctx context.Context) (*entity.TokenState, error) {
	model, err := r.queries.GetTokenState(ctx)
	if err != nil {
		return nil, notFound(err, "error during query")
	}
	state, err := mapTokenStateModelToType(model)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token state model")
	}
	return &state, nil
}

func (r *Repository) GetBalance(ctx context.Context, holder ethcommon.Address) (uint128.Uint128, error) {
	amount, err := r.queries.GetBalance(ctx, holder.Hex())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uint128.Zero, nil
		}
		return uint128.Zero, errors.Wrap(err, "error during query")
	}
	balance, err := uint128FromNumeric(amount)
	return balance, errors.Wrap(err, "failed to parse balance")
}

func (r *Repository) GetForeignBalance(ctx context.Context, token ethcommon.Address, holder ethcommon.Address) (uint128.Uint128, error) {
	amount, err := r.queries.GetForeignBalance(ctx, gen.GetForeignBalanceParams{
		Token:  token.Hex(),
		Holder: holder.Hex(),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uint128.Zero, nil
		}
		return uint128.Zero, errors.Wrap(err, "error during query")
	}
	balance, err := uint128FromNumeric(amount)
	return balance, errors.Wrap(err, "failed to parse foreign balance")
}

func (r *Repository) GetContributions(ctx context.Context, limit int32, offset int32) ([]*entity.Contribution, error) {
	models, err := r.queries.GetContributions(ctx, gen.GetContributionsParams{
		Limit:  limitOrAll(limit),
		Offset: offset,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	contributions, err := mapContributionModelsToTypes(models)
	return contributions, errors.Wrap(err, "failed to parse contribution models")
}

func (r *Repository) GetContributionsBySender(ctx context.Context, sender ethcommon.Address, limit int32, offset int32) ([]*entity.Contribution, error) {
	models, err := r.queries.GetContributionsBySender(ctx, gen.GetContributionsBySenderParams{
		Sender: sender.Hex(),
		Limit:  limitOrAll(limit),
		Offset: offset,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	contributions, err := mapContributionModelsToTypes(models)
	return contributions, errors.Wrap(err, "failed to parse contribution models")
}

func (r *Repository) GetPayoutsByContributionId(ctx context.Context, contributionId uint64) ([]*entity.Payout, error) {
	id, err := int64FromUint64(contributionId)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	models, err := r.queries.GetPayoutsByContributionId(ctx, pgtype.Int8{Int64: id, Valid: true})
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	payouts := make([]*entity.Payout, 0, len(models))
	for _, model := range models {
		payout, err := mapPayoutModelToType(model)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse payout %d", model.ID)
		}
		payouts = append(payouts, &payout)
	}
	return payouts, nil
}

func (r *Repository) GetFinalization(ctx context.Context) (*entity.Finalization, error) {
	model, err := r.queries.GetFinalization(ctx)
	if err != nil {
		return nil, notFound(err, "error during query")
	}
	finalization, err := mapFinalizationModelToType(model)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse finalization model")
	}
	return &finalization, nil
}

func (r *Repository) SetSaleConfig(ctx context.Context, config sale.SaleConfig) error {
	params, err := mapSaleConfigTypeToParams(config)
	if err != nil {
		return errors.Wrap(err, "failed to map sale config to params")
	}
	return errors.Wrap(r.queries.SetSaleConfig(ctx, params), "error during exec")
}

func (r *Repository) SetSaleState(ctx context.Context, state sale.SaleState) error {
	params, err := mapSaleStateTypeToParams(state)
	if err != nil {
		return errors.Wrap(err, "failed to map sale state to params")
	}
	return errors.Wrap(r.queries.SetSaleState(ctx, params), "error during exec")
}

func (r *Repository) SetBonusTiers(ctx context.Context, tiers []sale.BonusTier) error {
	params, err := mapBonusTierTypesToParams(tiers)
	if err != nil {
		return errors.Wrap(err, "failed to map bonus tiers to params")
	}
	if err := r.queries.ClearBonusTiers(ctx); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	if len(tiers) == 0 {
		return nil
	}
	return errors.Wrap(r.queries.BatchCreateBonusTiers(ctx, params), "error during exec")
}

func (r *Repository) SetTokenState(ctx context.Context, state entity.TokenState) error {
	params, err := mapTokenStateTypeToParams(state)
	if err != nil {
		return errors.Wrap(err, "failed to map token state to params")
	}
	return errors.Wrap(r.queries.SetTokenState(ctx, params), "error during exec")
}

func (r *Repository) SetBalance(ctx context.Context, holder ethcommon.Address, amount uint128.Uint128) error {
	if amount.IsZero() {
		return errors.Wrap(r.queries.DeleteBalance(ctx, holder.Hex()), "error during exec")
	}
	numeric, err := numericFromUint128(amount)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.Wrap(r.queries.SetBalance(ctx, gen.SetBalanceParams{
		Holder: holder.Hex(),
		Amount: numeric,
	}), "error during exec")
}

func (r *Repository) SetForeignBalance(ctx context.Context, token ethcommon.Address, holder ethcommon.Address, amount uint128.Uint128) error {
	if amount.IsZero() {
		return errors.Wrap(r.queries.DeleteForeignBalance(ctx, gen.DeleteForeignBalanceParams{
			Token:  token.Hex(),
			Holder: holder.Hex(),
		}), "error during exec")
	}
	numeric, err := numericFromUint128(amount)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.Wrap(r.queries.SetForeignBalance(ctx, gen.SetForeignBalanceParams{
		Token:  token.Hex(),
		Holder: holder.Hex(),
		Amount: numeric,
	}), "error during exec")
}

func (r *Repository) CreateContribution(ctx context.Context, contribution entity.Contribution) (uint64, error) {
	params, err := mapContributionTypeToParams(contribution)
	if err != nil {
		return 0, errors.Wrap(err, "failed to map contribution to params")
	}
	id, err := r.queries.CreateContribution(ctx, params)
	if err != nil {
		return 0, errors.Wrap(err, "error during exec")
	}
	return uint64(id), nil
}

func (r *Repository) CreatePayout(ctx context.Context, payout entity.Payout) error {
	params, err := mapPayoutTypeToParams(payout)
	if err != nil {
		return errors.Wrap(err, "failed to map payout to params")
	}
	return errors.Wrap(r.queries.CreatePayout(ctx, params), "error during exec")
}

func (r *Repository) CreateFinalization(ctx context.Context, finalization entity.Finalization) error {
	_, err := r.GetFinalization(ctx)
	if err == nil {
		return errors.Wrap(errs.InvalidArgument, "finalization already recorded")
	}
	if !errors.Is(err, errs.NotFound) {
		return errors.WithStack(err)
	}
	params, err := mapFinalizationTypeToParams(finalization)
	if err != nil {
		return errors.Wrap(err, "failed to map finalization to params")
	}
	return errors.Wrap(r.queries.CreateFinalization(ctx, params), "error during exec")
}
