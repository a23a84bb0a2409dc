package postgres

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/crowdsale/modules/crowdsale/internal/entity"
	"github.com/gaze-network/crowdsale/modules/crowdsale/repository/postgres/gen"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gaze-network/uint128"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/samber/lo"
)

func uint128FromNumeric(src pgtype.Numeric) (uint128.Uint128, error) {
	if !src.Valid {
		return uint128.Zero, nil
	}
	bytes, err := src.MarshalJSON()
	if err != nil {
		return uint128.Zero, errors.WithStack(err)
	}
	result, err := uint128.FromString(string(bytes))
	if err != nil {
		return uint128.Zero, errors.WithStack(err)
	}
	return result, nil
}

func numericFromUint128(src uint128.Uint128) (pgtype.Numeric, error) {
	var result pgtype.Numeric
	if err := result.UnmarshalJSON([]byte(src.String())); err != nil {
		return pgtype.Numeric{}, errors.WithStack(err)
	}
	return result, nil
}

// numericsFromUint128 converts amounts in order, stopping at the first failure.
func numericsFromUint128(src ...uint128.Uint128) ([]pgtype.Numeric, error) {
	result := make([]pgtype.Numeric, 0, len(src))
	for _, amount := range src {
		n, err := numericFromUint128(amount)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		result = append(result, n)
	}
	return result, nil
}

func uint128sFromNumeric(src ...pgtype.Numeric) ([]uint128.Uint128, error) {
	result := make([]uint128.Uint128, 0, len(src))
	for _, n := range src {
		amount, err := uint128FromNumeric(n)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		result = append(result, amount)
	}
	return result, nil
}

func int64FromUint64(src uint64) (int64, error) {
	if src > math.MaxInt64 {
		return 0, errors.Wrapf(errs.InvalidArgument, "value %d exceeds int64", src)
	}
	return int64(src), nil
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func timeFromTimestamptz(src pgtype.Timestamptz) time.Time {
	if !src.Valid {
		return time.Time{}
	}
	return src.Time.UTC()
}

func addressFromHex(src string) (ethcommon.Address, error) {
	if !ethcommon.IsHexAddress(src) {
		return ethcommon.Address{}, errors.Errorf("invalid address %q", src)
	}
	return ethcommon.HexToAddress(src), nil
}

func mapSaleConfigModelToType(src gen.CrowdsaleSaleConfig) (sale.SaleConfig, error) {
	amounts, err := uint128sFromNumeric(src.HardCap, src.Price)
	if err != nil {
		return sale.SaleConfig{}, errors.Wrap(err, "failed to parse sale config amounts")
	}
	wallets := make([]ethcommon.Address, 0, 4)
	for _, hex := range []string{src.SecondWallet, src.MultisigWallet, src.FoundersTokensWallet, src.BountyTokensWallet} {
		wallet, err := addressFromHex(hex)
		if err != nil {
			return sale.SaleConfig{}, errors.Wrap(err, "failed to parse sale config wallet")
		}
		wallets = append(wallets, wallet)
	}
	return sale.SaleConfig{
		Start:                 timeFromTimestamptz(src.StartAt),
		PeriodDays:            uint64(src.PeriodDays),
		HardCap:               amounts[0],
		Price:                 amounts[1],
		PercentRate:           uint64(src.PercentRate),
		SecondWalletPercent:   uint64(src.SecondWalletPercent),
		FoundersTokensPercent: uint64(src.FoundersTokensPercent),
		BountyTokensPercent:   uint64(src.BountyTokensPercent),
		SecondWallet:          wallets[0],
		MultisigWallet:        wallets[1],
		FoundersTokensWallet:  wallets[2],
		BountyTokensWallet:    wallets[3],
	}, nil
}

func mapSaleConfigTypeToParams(src sale.SaleConfig) (gen.SetSaleConfigParams, error) {
	amounts, err := numericsFromUint128(src.HardCap, src.Price)
	if err != nil {
		return gen.SetSaleConfigParams{}, errors.WithStack(err)
	}
	ints := make([]int64, 0, 5)
	for _, v := range []uint64{src.PeriodDays, src.PercentRate, src.SecondWalletPercent, src.FoundersTokensPercent, src.BountyTokensPercent} {
		i, err := int64FromUint64(v)
		if err != nil {
			return gen.SetSaleConfigParams{}, errors.WithStack(err)
		}
		ints = append(ints, i)
	}
	return gen.SetSaleConfigParams{
		StartAt:               timestamptz(src.Start),
		PeriodDays:            ints[0],
		HardCap:               amounts[0],
		Price:                 amounts[1],
		PercentRate:           ints[1],
		SecondWalletPercent:   ints[2],
		FoundersTokensPercent: ints[3],
		BountyTokensPercent:   ints[4],
		SecondWallet:          src.SecondWallet.Hex(),
		MultisigWallet:        src.MultisigWallet.Hex(),
		FoundersTokensWallet:  src.FoundersTokensWallet.Hex(),
		BountyTokensWallet:    src.BountyTokensWallet.Hex(),
	}, nil
}

func mapSaleStateModelToType(src gen.CrowdsaleSaleState) (sale.SaleState, error) {
	invested, err := uint128FromNumeric(src.Invested)
	if err != nil {
		return sale.SaleState{}, errors.Wrap(err, "failed to parse invested")
	}
	return sale.SaleState{
		Invested:        invested,
		Paused:          src.Paused,
		MintingFinished: src.MintingFinished,
	}, nil
}

func mapSaleStateTypeToParams(src sale.SaleState) (gen.SetSaleStateParams, error) {
	invested, err := numericFromUint128(src.Invested)
	if err != nil {
		return gen.SetSaleStateParams{}, errors.WithStack(err)
	}
	return gen.SetSaleStateParams{
		Invested:        invested,
		Paused:          src.Paused,
		MintingFinished: src.MintingFinished,
	}, nil
}

func mapBonusTierModelsToTypes(src []gen.CrowdsaleBonusTier) ([]sale.BonusTier, error) {
	tiers := make([]sale.BonusTier, 0, len(src))
	for _, item := range src {
		limit, err := uint128FromNumeric(item.LimitAmount)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse limit of bonus tier %d", item.Idx)
		}
		tiers = append(tiers, sale.BonusTier{
			Limit:        limit,
			BonusPercent: uint64(item.BonusPercent),
		})
	}
	return tiers, nil
}

func mapBonusTierTypesToParams(src []sale.BonusTier) (gen.BatchCreateBonusTiersParams, error) {
	params := gen.BatchCreateBonusTiersParams{
		IdxArr:          make([]int32, 0, len(src)),
		LimitAmountArr:  make([]pgtype.Numeric, 0, len(src)),
		BonusPercentArr: make([]int64, 0, len(src)),
	}
	for i, tier := range src {
		limit, err := numericFromUint128(tier.Limit)
		if err != nil {
			return gen.BatchCreateBonusTiersParams{}, errors.WithStack(err)
		}
		bonus, err := int64FromUint64(tier.BonusPercent)
		if err != nil {
			return gen.BatchCreateBonusTiersParams{}, errors.WithStack(err)
		}
		params.IdxArr = append(params.IdxArr, int32(i))
		params.LimitAmountArr = append(params.LimitAmountArr, limit)
		params.BonusPercentArr = append(params.BonusPercentArr, bonus)
	}
	return params, nil
}

func mapTokenStateModelToType(src gen.CrowdsaleTokenState) (entity.TokenState, error) {
	owner, err := addressFromHex(src.Owner)
	if err != nil {
		return entity.TokenState{}, errors.Wrap(err, "failed to parse token owner")
	}
	supply, err := uint128FromNumeric(src.TotalSupply)
	if err != nil {
		return entity.TokenState{}, errors.Wrap(err, "failed to parse total supply")
	}
	return entity.TokenState{
		Owner:           owner,
		TotalSupply:     supply,
		MintingFinished: src.MintingFinished,
		TransferAllowed: src.TransferAllowed,
	}, nil
}

func mapTokenStateTypeToParams(src entity.TokenState) (gen.SetTokenStateParams, error) {
	supply, err := numericFromUint128(src.TotalSupply)
	if err != nil {
		return gen.SetTokenStateParams{}, errors.WithStack(err)
	}
	return gen.SetTokenStateParams{
		Owner:           src.Owner.Hex(),
		TotalSupply:     supply,
		MintingFinished: src.MintingFinished,
		TransferAllowed: src.TransferAllowed,
	}, nil
}

func mapContributionModelToType(src gen.CrowdsaleContribution) (entity.Contribution, error) {
	sender, err := addressFromHex(src.Sender)
	if err != nil {
		return entity.Contribution{}, errors.Wrap(err, "failed to parse sender")
	}
	amounts, err := uint128sFromNumeric(src.Amount, src.BaseTokens, src.BonusTokens, src.TotalTokens, src.SecondShare, src.PrimaryShare)
	if err != nil {
		return entity.Contribution{}, errors.Wrapf(err, "failed to parse amounts of contribution %d", src.ID)
	}
	return entity.Contribution{
		ID:           uint64(src.ID),
		Sender:       sender,
		Amount:       amounts[0],
		BonusPercent: uint64(src.BonusPercent),
		BaseTokens:   amounts[1],
		BonusTokens:  amounts[2],
		TotalTokens:  amounts[3],
		SecondShare:  amounts[4],
		PrimaryShare: amounts[5],
		CreatedAt:    timeFromTimestamptz(src.CreatedAt),
	}, nil
}

func mapContributionModelsToTypes(src []gen.CrowdsaleContribution) ([]*entity.Contribution, error) {
	contributions := make([]*entity.Contribution, 0, len(src))
	for _, item := range src {
		contribution, err := mapContributionModelToType(item)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		contributions = append(contributions, &contribution)
	}
	return contributions, nil
}

func mapContributionTypeToParams(src entity.Contribution) (gen.CreateContributionParams, error) {
	amounts, err := numericsFromUint128(src.Amount, src.BaseTokens, src.BonusTokens, src.TotalTokens, src.SecondShare, src.PrimaryShare)
	if err != nil {
		return gen.CreateContributionParams{}, errors.WithStack(err)
	}
	bonus, err := int64FromUint64(src.BonusPercent)
	if err != nil {
		return gen.CreateContributionParams{}, errors.WithStack(err)
	}
	return gen.CreateContributionParams{
		Sender:       src.Sender.Hex(),
		Amount:       amounts[0],
		BonusPercent: bonus,
		BaseTokens:   amounts[1],
		BonusTokens:  amounts[2],
		TotalTokens:  amounts[3],
		SecondShare:  amounts[4],
		PrimaryShare: amounts[5],
		CreatedAt:    timestamptz(src.CreatedAt),
	}, nil
}

func mapPayoutModelToType(src gen.CrowdsalePayout) (entity.Payout, error) {
	token, err := addressFromHex(src.Token)
	if err != nil {
		return entity.Payout{}, errors.Wrap(err, "failed to parse payout token")
	}
	wallet, err := addressFromHex(src.Wallet)
	if err != nil {
		return entity.Payout{}, errors.Wrap(err, "failed to parse payout wallet")
	}
	amount, err := uint128FromNumeric(src.Amount)
	if err != nil {
		return entity.Payout{}, errors.Wrap(err, "failed to parse payout amount")
	}
	return entity.Payout{
		ID:             uint64(src.ID),
		ContributionID: uint64(lo.Ternary(src.ContributionID.Valid, src.ContributionID.Int64, 0)),
		Kind:           entity.PayoutKind(src.Kind),
		Token:          token,
		Wallet:         wallet,
		Amount:         amount,
		CreatedAt:      timeFromTimestamptz(src.CreatedAt),
	}, nil
}

func mapPayoutTypeToParams(src entity.Payout) (gen.CreatePayoutParams, error) {
	amount, err := numericFromUint128(src.Amount)
	if err != nil {
		return gen.CreatePayoutParams{}, errors.WithStack(err)
	}
	contributionId, err := int64FromUint64(src.ContributionID)
	if err != nil {
		return gen.CreatePayoutParams{}, errors.WithStack(err)
	}
	return gen.CreatePayoutParams{
		ContributionID: pgtype.Int8{Int64: contributionId, Valid: src.ContributionID != 0},
		Kind:           string(src.Kind),
		Token:          src.Token.Hex(),
		Wallet:         src.Wallet.Hex(),
		Amount:         amount,
		CreatedAt:      timestamptz(src.CreatedAt),
	}, nil
}

func mapFinalizationModelToType(src gen.CrowdsaleFinalization) (entity.Finalization, error) {
	finalizedBy, err := addressFromHex(src.FinalizedBy)
	if err != nil {
		return entity.Finalization{}, errors.Wrap(err, "failed to parse finalized by")
	}
	amounts, err := uint128sFromNumeric(src.IssuedSupply, src.ExtraTokens, src.FinalTotalSupply, src.FoundersTokens, src.BountyTokens)
	if err != nil {
		return entity.Finalization{}, errors.Wrap(err, "failed to parse finalization amounts")
	}
	return entity.Finalization{
		IssuedSupply:     amounts[0],
		ExtraTokens:      amounts[1],
		FinalTotalSupply: amounts[2],
		FoundersTokens:   amounts[3],
		BountyTokens:     amounts[4],
		FinalizedBy:      finalizedBy,
		FinalizedAt:      timeFromTimestamptz(src.FinalizedAt),
	}, nil
}

func mapFinalizationTypeToParams(src entity.Finalization) (gen.CreateFinalizationParams, error) {
	amounts, err := numericsFromUint128(src.IssuedSupply, src.ExtraTokens, src.FinalTotalSupply, src.FoundersTokens, src.BountyTokens)
	if err != nil {
		return gen.CreateFinalizationParams{}, errors.WithStack(err)
	}
	return gen.CreateFinalizationParams{
		IssuedSupply:     amounts[0],
		ExtraTokens:      amounts[1],
		FinalTotalSupply: amounts[2],
		FoundersTokens:   amounts[3],
		BountyTokens:     amounts[4],
		FinalizedBy:      src.FinalizedBy.Hex(),
		FinalizedAt:      timestamptz(src.FinalizedAt),
	}, nil
}
